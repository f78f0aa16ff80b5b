// Package ondisk is the filesystem-backed Registry realisation: each
// version's artifact bytes live at a content-addressed path derived from
// (namespace, name, version), and a per-package JSON-lines index file lists
// every published index.Record.
package ondisk

import (
	"bufio"
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"sync"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"github.com/plow-pm/plow/internal/index"
	"github.com/plow-pm/plow/internal/lint"
	"github.com/plow-pm/plow/internal/manifest"
	"github.com/plow-pm/plow/internal/ontology"
	"github.com/plow-pm/plow/internal/plowerr"
	"github.com/plow-pm/plow/internal/plowpath"
	"github.com/plow-pm/plow/internal/registry"
	"github.com/plow-pm/plow/internal/ttl"
)

// Registry is a content-addressed, filesystem-backed Registry.
type Registry struct {
	fs   afero.Fs
	root plowpath.AbsolutePath
	mu   sync.Mutex
}

// New constructs a Registry rooted at root on fs. root is created on first
// write if it does not already exist.
func New(fs afero.Fs, root plowpath.AbsolutePath) *Registry {
	return &Registry{fs: fs, root: root}
}

func (r *Registry) indexPath(name string) plowpath.AbsolutePath {
	ns, short := splitName(name)
	return r.root.Join("index", ns, short+".jsonl")
}

func (r *Registry) artifactPath(name, version string) plowpath.AbsolutePath {
	ns, short := splitName(name)
	return r.root.Join("artifacts", ns, short, version+".ttl")
}

func splitName(full string) (namespace, short string) {
	n, err := ontology.ParseName(full)
	if err != nil {
		return "_invalid", full
	}
	return n.Namespace(), n.Short()
}

func (r *Registry) readIndex(name string) ([]index.Record, error) {
	path := r.indexPath(name)
	if !plowpath.FileExists(r.fs, path) {
		return nil, nil
	}
	raw, err := plowpath.ReadFile(r.fs, path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading index for %s", name)
	}
	var out []index.Record
	scanner := bufio.NewScanner(bytes.NewReader(raw))
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var rec index.Record
		if err := json.Unmarshal(line, &rec); err != nil {
			return nil, errors.Wrapf(err, "decoding index entry for %s", name)
		}
		out = append(out, rec)
	}
	return out, nil
}

func (r *Registry) appendIndex(rec index.Record) error {
	existing, err := r.readIndex(rec.Name)
	if err != nil {
		return err
	}
	for _, e := range existing {
		if e.Version == rec.Version {
			return &plowerr.RegistryError{Kind: plowerr.DuplicateVersion, Package: rec.Name, Detail: "version " + rec.Version + " already published"}
		}
	}
	line, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	path := r.indexPath(rec.Name)
	var buf bytes.Buffer
	if existing != nil {
		raw, _ := plowpath.ReadFile(r.fs, path)
		buf.Write(raw)
	}
	buf.Write(line)
	buf.WriteByte('\n')
	return plowpath.WriteFile(r.fs, path, buf.Bytes(), 0644)
}

func (r *Registry) AllAvailableVersions(_ context.Context, name string) ([]index.Record, error) {
	return r.readIndex(name)
}

func (r *Registry) GetPackageVersionMetadata(_ context.Context, pv registry.PackageVersion) (index.Record, error) {
	recs, err := r.readIndex(pv.Name)
	if err != nil {
		return index.Record{}, err
	}
	for _, rec := range recs {
		if rec.Version == pv.Version {
			return rec, nil
		}
	}
	return index.Record{}, &plowerr.RegistryError{Kind: plowerr.NotFound, Package: pv.Name, Detail: "version " + pv.Version + " not found"}
}

func (r *Registry) RetrievePackage(ctx context.Context, pv registry.PackageVersion) ([]byte, error) {
	rec, err := r.GetPackageVersionMetadata(ctx, pv)
	if err != nil {
		return nil, err
	}
	path := r.artifactPath(pv.Name, pv.Version)
	if !plowpath.FileExists(r.fs, path) {
		return nil, &plowerr.RegistryError{Kind: plowerr.NotFound, Package: pv.Name, Detail: "artifact bytes missing from store"}
	}
	raw, err := plowpath.ReadFile(r.fs, path)
	if err != nil {
		return nil, &plowerr.RegistryError{Kind: plowerr.StorageError, Package: pv.Name, Detail: err.Error(), Cause: err}
	}
	sum := sha256.Sum256(raw)
	if hex.EncodeToString(sum[:]) != rec.Cksum {
		return nil, &plowerr.RegistryError{Kind: plowerr.ChecksumMismatch, Package: pv.Name, Detail: "on-disk artifact no longer matches its indexed checksum"}
	}
	return raw, nil
}

func (r *Registry) SubmitPackage(_ context.Context, artifact []byte) (index.Record, error) {
	doc, graph, err := ttl.Parse(artifact)
	if err != nil {
		return index.Record{}, err
	}
	m, err := manifest.Extract(doc, graph)
	if err != nil {
		return index.Record{}, err
	}

	engine := lint.NewEngine()
	report, err := engine.RunSet(&lint.Context{Doc: doc, Graph: graph, Manifest: m}, registry.PublishLintSet())
	if err != nil {
		return index.Record{}, err
	}
	if !report.AllPassed() {
		return index.Record{}, plowerr.NewLintFailure(report.Diagnostics)
	}

	sum := sha256.Sum256(artifact)
	cksum := hex.EncodeToString(sum[:])
	rec, err := index.FromManifest(m, cksum)
	if err != nil {
		return index.Record{}, &plowerr.RegistryError{Kind: plowerr.StorageError, Package: m.PackageName.String(), Detail: err.Error()}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	artifactPath := r.artifactPath(rec.Name, rec.Version)
	if err := plowpath.WriteFileAtomic(r.fs, artifactPath, artifact, 0644, cksum[:12]); err != nil {
		return index.Record{}, &plowerr.RegistryError{Kind: plowerr.StorageError, Package: rec.Name, Detail: err.Error(), Cause: err}
	}
	if err := r.appendIndex(rec); err != nil {
		return index.Record{}, err
	}
	return rec, nil
}

// VerifyIntegrity walks every artifact under the store and confirms its
// SHA-256 digest matches the checksum its package's index recorded,
// returning one problem per mismatch, orphan, or unreadable file.
func (r *Registry) VerifyIntegrity() ([]error, error) {
	artifactsRoot := r.root.Join("artifacts")
	if !plowpath.DirExists(r.fs, artifactsRoot) {
		return nil, nil
	}

	cksumsByPath := make(map[string]string)
	indexRoot := r.root.Join("index")
	if plowpath.DirExists(r.fs, indexRoot) {
		err := afero.Walk(r.fs, indexRoot.String(), func(path string, info os.FileInfo, werr error) error {
			if werr != nil || info.IsDir() {
				return werr
			}
			raw, rerr := afero.ReadFile(r.fs, path)
			if rerr != nil {
				return rerr
			}
			scanner := bufio.NewScanner(bytes.NewReader(raw))
			for scanner.Scan() {
				var rec index.Record
				if jerr := json.Unmarshal(scanner.Bytes(), &rec); jerr != nil {
					continue
				}
				cksumsByPath[r.artifactPath(rec.Name, rec.Version).String()] = rec.Cksum
			}
			return nil
		})
		if err != nil {
			return nil, errors.Wrap(err, "walking index directory")
		}
	}

	var paths []string
	err := afero.Walk(r.fs, artifactsRoot.String(), func(path string, info os.FileInfo, werr error) error {
		if werr != nil || info.IsDir() {
			return werr
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "walking artifacts directory")
	}

	// Hash the artifacts concurrently; slots keep the report in walk order.
	slots := make([]error, len(paths))
	var g errgroup.Group
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			want, known := cksumsByPath[path]
			raw, rerr := afero.ReadFile(r.fs, path)
			if rerr != nil {
				slots[i] = errors.Wrapf(rerr, "reading %s", path)
				return nil
			}
			sum := sha256.Sum256(raw)
			got := hex.EncodeToString(sum[:])
			if !known {
				slots[i] = errors.Errorf("%s: not referenced by any index", path)
				return nil
			}
			if got != want {
				slots[i] = errors.Errorf("%s: checksum mismatch, index says %s, got %s", path, want, got)
			}
			return nil
		})
	}
	_ = g.Wait()

	var problems []error
	for _, p := range slots {
		if p != nil {
			problems = append(problems, p)
		}
	}
	return problems, nil
}
