package workspace

import (
	"bytes"
	"context"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/plow-pm/plow/internal/lockfile"
	"github.com/plow-pm/plow/internal/manifest"
	"github.com/plow-pm/plow/internal/plowerr"
	"github.com/plow-pm/plow/internal/plowpath"
	"github.com/plow-pm/plow/internal/registry"
	"github.com/plow-pm/plow/internal/resolve"
)

// Resolve reconciles root's Plow.lock with rootManifest against reg. A
// valid existing lock (fingerprint matching rootManifest's dependency
// closure) is returned as-is. Otherwise, when frozen, resolution is
// refused and the staleness error surfaces; when not frozen, the resolver
// runs and the fresh lock is written atomically to Plow.lock before being
// returned.
func Resolve(ctx context.Context, fs afero.Fs, root plowpath.AbsolutePath, rootManifest *manifest.Manifest, reg registry.Registry, frozen bool) (*lockfile.LockFile, error) {
	lockPath := root.Join(LockFileName)
	if plowpath.FileExists(fs, lockPath) {
		lf, err := readLock(fs, lockPath)
		if err != nil {
			if frozen {
				return nil, err
			}
		} else if vErr := lf.ValidateFingerprint(rootManifest); vErr != nil {
			if frozen {
				return nil, vErr
			}
		} else {
			return lf, nil
		}
	} else if frozen {
		return nil, &plowerr.ResolverError{
			Kind:   plowerr.InvalidLockFile,
			Detail: "no " + LockFileName + " present and resolution is frozen",
		}
	}

	resolved, err := resolve.New(reg).Resolve(ctx, rootManifest)
	if err != nil {
		return nil, err
	}
	lf := lockfile.FromResolved(rootManifest, resolved)
	if err := WriteLock(fs, root, lf); err != nil {
		return nil, err
	}
	return lf, nil
}

// WriteLock serialises lf and writes it to root's Plow.lock via a staged
// temp file and rename, so a concurrent reader never sees a partial lock.
func WriteLock(fs afero.Fs, root plowpath.AbsolutePath, lf *lockfile.LockFile) error {
	var buf bytes.Buffer
	if err := lf.Encode(&buf); err != nil {
		return err
	}
	return plowpath.WriteFileAtomic(fs, root.Join(LockFileName), buf.Bytes(), 0644, uuid.NewString())
}

func readLock(fs afero.Fs, path plowpath.AbsolutePath) (*lockfile.LockFile, error) {
	raw, err := plowpath.ReadFile(fs, path)
	if err != nil {
		return nil, &plowerr.ResolverError{Kind: plowerr.InvalidLockFile, Detail: "reading " + path.String() + ": " + err.Error()}
	}
	return lockfile.Decode(bytes.NewReader(raw))
}
