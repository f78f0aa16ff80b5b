package plowerr

// Feedback is implemented by every structured error type in this package.
// Commands render errors through this interface instead of the bare Error()
// string so that future surfaces (TUI, JSON output) can call Render() without
// caring which concrete kind they received.
type Feedback interface {
	error
	Render() string
}

var (
	_ Feedback = (*ManifestError)(nil)
	_ Feedback = (*RegistryError)(nil)
	_ Feedback = (*ResolverError)(nil)
	_ Feedback = (*CacheError)(nil)
	_ Feedback = (*ConfigError)(nil)
	_ Feedback = (*LintFailure)(nil)
)
