// Package registry defines the Registry capability contract over a store
// of versioned packages, realised in three ways: an in-memory
// test double (internal/registry/memory), a content-addressed on-disk store
// (internal/registry/ondisk), and a network client (internal/registry/httpreg).
package registry

import (
	"context"

	"github.com/plow-pm/plow/internal/index"
	"github.com/plow-pm/plow/internal/lint"
)

// PackageVersion identifies one version of one package.
type PackageVersion struct {
	Name    string
	Version string
}

// Registry is the capability interface every realisation implements.
type Registry interface {
	// AllAvailableVersions lists every IndexRecord known for name, in no
	// particular order — callers that need high-to-low enumeration sort
	// the result themselves via internal/semver.Collection.
	AllAvailableVersions(ctx context.Context, name string) ([]index.Record, error)

	// GetPackageVersionMetadata fetches the single IndexRecord for pv.
	// Fails with a RegistryError of kind NotFound when absent.
	GetPackageVersionMetadata(ctx context.Context, pv PackageVersion) (index.Record, error)

	// RetrievePackage fetches the artifact bytes for pv. Fails with
	// RegistryError NotFound or ChecksumMismatch.
	RetrievePackage(ctx context.Context, pv PackageVersion) ([]byte, error)

	// SubmitPackage validates artifact against the publish-required lint
	// set and, if it passes, stores it, returning the IndexRecord the
	// registry computed (including its checksum). Fails with
	// RegistryError DuplicateVersion/StorageError, or a *plowerr.LintFailure.
	SubmitPackage(ctx context.Context, artifact []byte) (index.Record, error)
}

// PublishLintSet is the lint set every Registry realisation's SubmitPackage
// must run before accepting an artifact.
func PublishLintSet() lint.LintSet { return lint.PublishSet() }
