// Package cache implements the content-addressed artifact cache: a
// filesystem store keyed by checksum, consulted before the registry on
// retrieval and populated with verified bytes on miss.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"

	"github.com/DataDog/zstd"
	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
	"github.com/spf13/afero"

	"github.com/plow-pm/plow/internal/index"
	"github.com/plow-pm/plow/internal/plowerr"
	"github.com/plow-pm/plow/internal/plowpath"
	"github.com/plow-pm/plow/internal/registry"
)

// Cache is a content-addressed store of field artifacts, laid out as
// `<root>/<cksum>/<name>-<version>.ttl.zst`. Entries are
// zstd-compressed on disk and written via stage-to-temp-then-atomic-rename.
type Cache struct {
	fs     afero.Fs
	root   plowpath.AbsolutePath
	logger hclog.Logger
}

// New constructs a Cache rooted at root on fs.
func New(fs afero.Fs, root plowpath.AbsolutePath, logger hclog.Logger) *Cache {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Cache{fs: fs, root: root, logger: logger}
}

func (c *Cache) entryPath(cksum, name, version string) plowpath.AbsolutePath {
	return c.root.Join(cksum, name+"-"+version+".ttl.zst")
}

// Path exposes the on-disk location of a cache entry, for callers (e.g. the
// workspace's RetrievedPackageSet) that need a filesystem path to hand to a
// downstream tool rather than the decompressed bytes.
func (c *Cache) Path(cksum, name, version string) plowpath.AbsolutePath {
	return c.entryPath(cksum, name, version)
}

// Get returns the decompressed artifact bytes for (cksum, name, version), or
// ok=false on a cache miss.
func (c *Cache) Get(cksum, name, version string) (contents []byte, ok bool, err error) {
	path := c.entryPath(cksum, name, version)
	if !plowpath.FileExists(c.fs, path) {
		return nil, false, nil
	}
	compressed, err := plowpath.ReadFile(c.fs, path)
	if err != nil {
		return nil, false, &plowerr.CacheError{Kind: plowerr.CacheIOError, Key: cksum, Detail: "reading cache entry", Cause: err}
	}
	raw, err := zstd.Decompress(nil, compressed)
	if err != nil {
		_ = c.Remove(cksum, name, version)
		return nil, false, &plowerr.CacheError{Kind: plowerr.CacheCorrupt, Key: cksum, Detail: "decompressing cache entry", Cause: err}
	}
	if !checksumMatches(raw, cksum) {
		// A corrupt entry must not survive to fail every later read.
		_ = c.Remove(cksum, name, version)
		return nil, false, &plowerr.CacheError{Kind: plowerr.CacheCorrupt, Key: cksum, Detail: "cache entry no longer matches its key"}
	}
	return raw, true, nil
}

// Put compresses and atomically writes contents into the cache under
// (cksum, name, version). The temp file is suffixed with a fresh uuid so
// concurrent writers of the same entry never collide mid-write; the final
// rename is idempotent since both writers produce identical bytes.
func (c *Cache) Put(cksum, name, version string, contents []byte) error {
	compressed, err := zstd.Compress(nil, contents)
	if err != nil {
		return &plowerr.CacheError{Kind: plowerr.CacheIOError, Key: cksum, Detail: "compressing artifact", Cause: err}
	}
	path := c.entryPath(cksum, name, version)
	if err := plowpath.WriteFileAtomic(c.fs, path, compressed, 0644, uuid.NewString()); err != nil {
		return &plowerr.CacheError{Kind: plowerr.CacheIOError, Key: cksum, Detail: "writing cache entry", Cause: err}
	}
	return nil
}

// Remove deletes a cache entry; Get uses it to drop an entry that fails
// decompression or checksum verification.
func (c *Cache) Remove(cksum, name, version string) error {
	return plowpath.RemoveFile(c.fs, c.entryPath(cksum, name, version))
}

func checksumMatches(raw []byte, cksum string) bool {
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:]) == cksum
}

// Retrieve consults the cache first; on miss, it fetches from reg,
// verifies the bytes against rec's indexed checksum, then populates the
// cache before returning.
func (c *Cache) Retrieve(ctx context.Context, reg registry.Registry, rec index.Record) ([]byte, error) {
	if contents, ok, err := c.Get(rec.Cksum, rec.Name, rec.Version); err != nil {
		return nil, err
	} else if ok {
		c.logger.Debug("cache hit", "package", rec.Name, "version", rec.Version)
		return contents, nil
	}

	c.logger.Debug("cache miss", "package", rec.Name, "version", rec.Version)
	contents, err := reg.RetrievePackage(ctx, registry.PackageVersion{Name: rec.Name, Version: rec.Version})
	if err != nil {
		return nil, err
	}
	if !checksumMatches(contents, rec.Cksum) {
		return nil, &plowerr.CacheError{Kind: plowerr.CacheCorrupt, Key: rec.Cksum, Detail: "retrieved artifact does not match its indexed checksum"}
	}
	if err := c.Put(rec.Cksum, rec.Name, rec.Version, contents); err != nil {
		return nil, err
	}
	return contents, nil
}
