package cmd

import (
	"io/ioutil"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/afero"
	"github.com/spf13/pflag"

	"github.com/plow-pm/plow/internal/plowpath"
)

// _envLogLevel overrides the verbosity-derived log level when set.
const _envLogLevel = "PLOW_LOG_LEVEL"

// Helper holds configuration shared by every plow subcommand: filesystem
// abstraction, the resolved cwd, and the verbosity-driven logger.
type Helper struct {
	PlowVersion string
	FS          afero.Fs

	verbosity int
	rawCwd    string
}

// NewHelper constructs a Helper backed by the real OS filesystem.
func NewHelper(plowVersion string) *Helper {
	return &Helper{PlowVersion: plowVersion, FS: afero.NewOsFs()}
}

// AddFlags registers the flags common to every plow subcommand.
func (h *Helper) AddFlags(flags *pflag.FlagSet) {
	flags.CountVarP(&h.verbosity, "verbosity", "v", "verbosity (-v, -vv, -vvv)")
	flags.StringVar(&h.rawCwd, "cwd", "", "the directory to run plow in")
}

// Logger builds an hclog.Logger at the verbosity level selected by -v
// flags, falling back to PLOW_LOG_LEVEL when no flag was given.
func (h *Helper) Logger() (hclog.Logger, error) {
	var level hclog.Level
	switch h.verbosity {
	case 0:
		if v := os.Getenv(_envLogLevel); v != "" {
			level = hclog.LevelFromString(v)
			if level == hclog.NoLevel {
				return nil, &invalidLogLevel{value: v}
			}
		} else {
			level = hclog.NoLevel
		}
	case 1:
		level = hclog.Info
	case 2:
		level = hclog.Debug
	default:
		level = hclog.Trace
	}

	output := ioutil.Discard
	if level != hclog.NoLevel {
		output = os.Stderr
	}
	return hclog.New(&hclog.LoggerOptions{Name: "plow", Level: level, Output: output}), nil
}

// Cwd resolves the directory a subcommand should operate in: --cwd if
// given, otherwise the process's actual working directory.
func (h *Helper) Cwd() (plowpath.AbsolutePath, error) {
	if h.rawCwd != "" {
		return plowpath.CheckedToAbsolutePath(h.rawCwd)
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return plowpath.CheckedToAbsolutePath(wd)
}

type invalidLogLevel struct{ value string }

func (e *invalidLogLevel) Error() string {
	return "PLOW_LOG_LEVEL value " + e.value + " is not a valid log level"
}
