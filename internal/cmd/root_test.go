package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetCmdRegistersCoreSubcommands(t *testing.T) {
	root := getCmd(NewHelper("test-version"))
	names := make(map[string]bool)
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"init", "lint", "resolve", "fetch", "publish", "catalog"} {
		assert.True(t, names[want], "expected subcommand %q to be registered", want)
	}
}
