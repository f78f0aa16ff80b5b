// Package plowpath provides a typed absolute-path wrapper used to enforce
// correct path manipulation across the workspace, cache, and config layers.
package plowpath

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// AbsolutePath is a platform-dependent absolute filesystem path.
type AbsolutePath string

// CheckedToAbsolutePath converts s to an AbsolutePath, failing if s is not absolute.
func CheckedToAbsolutePath(s string) (AbsolutePath, error) {
	if filepath.IsAbs(s) {
		return AbsolutePath(s), nil
	}
	return "", errors.Errorf("%v is not an absolute path", s)
}

// UnsafeToAbsolutePath wraps s without checking that it is absolute.
// Callers are responsible for the invariant.
func UnsafeToAbsolutePath(s string) AbsolutePath {
	return AbsolutePath(s)
}

// ResolveUnknownPath returns unknown if it is already absolute, otherwise
// treats it as relative to root.
func ResolveUnknownPath(root AbsolutePath, unknown string) AbsolutePath {
	if filepath.IsAbs(unknown) {
		return AbsolutePath(unknown)
	}
	return root.Join(unknown)
}

func (ap AbsolutePath) String() string {
	return string(ap)
}

// Join appends path segments to this AbsolutePath.
func (ap AbsolutePath) Join(args ...string) AbsolutePath {
	return AbsolutePath(filepath.Join(append([]string{string(ap)}, args...)...))
}

// Dir returns the parent directory of this AbsolutePath.
func (ap AbsolutePath) Dir() AbsolutePath {
	return AbsolutePath(filepath.Dir(string(ap)))
}

// Base returns the final path element.
func (ap AbsolutePath) Base() string {
	return filepath.Base(string(ap))
}

// FileExists reports whether ap exists and is a regular file on fsys.
func FileExists(fsys afero.Fs, ap AbsolutePath) bool {
	info, err := fsys.Stat(string(ap))
	return err == nil && !info.IsDir()
}

// DirExists reports whether ap exists and is a directory on fsys.
func DirExists(fsys afero.Fs, ap AbsolutePath) bool {
	info, err := fsys.Stat(string(ap))
	return err == nil && info.IsDir()
}

// EnsureDir ensures that the directory containing ap exists on fsys.
func EnsureDir(fsys afero.Fs, ap AbsolutePath) error {
	dir := ap.Dir()
	if err := fsys.MkdirAll(string(dir), 0775); err != nil {
		return errors.Wrapf(err, "creating directories at %v", dir)
	}
	return nil
}

// ReadFile reads the contents of ap from fsys.
func ReadFile(fsys afero.Fs, ap AbsolutePath) ([]byte, error) {
	return afero.ReadFile(fsys, string(ap))
}

// WriteFile writes contents to ap on fsys, creating parent directories as needed.
func WriteFile(fsys afero.Fs, ap AbsolutePath, contents []byte, mode os.FileMode) error {
	if err := EnsureDir(fsys, ap); err != nil {
		return err
	}
	return afero.WriteFile(fsys, string(ap), contents, mode)
}

// WriteFileAtomic stages contents at ap+suffix then renames it into place,
// so concurrent readers never observe a partial write.
func WriteFileAtomic(fsys afero.Fs, ap AbsolutePath, contents []byte, mode os.FileMode, tmpSuffix string) error {
	if err := EnsureDir(fsys, ap); err != nil {
		return err
	}
	tmpPath := string(ap) + ".tmp-" + tmpSuffix
	if err := afero.WriteFile(fsys, tmpPath, contents, mode); err != nil {
		return errors.Wrapf(err, "staging write to %v", ap)
	}
	if err := fsys.Rename(tmpPath, string(ap)); err != nil {
		_ = fsys.Remove(tmpPath)
		return errors.Wrapf(err, "renaming staged write into %v", ap)
	}
	return nil
}

// RemoveFile removes ap from fsys. Missing files are not an error.
func RemoveFile(fsys afero.Fs, ap AbsolutePath) error {
	err := fsys.Remove(string(ap))
	if err != nil && !isNotExist(fsys, ap) {
		return err
	}
	return nil
}

func isNotExist(fsys afero.Fs, ap AbsolutePath) bool {
	_, err := fsys.Stat(string(ap))
	return err != nil
}
