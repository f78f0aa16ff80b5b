package main

import (
	"os"

	"github.com/plow-pm/plow/internal/cmd"
)

const plowVersion = "0.4.0"

func main() {
	os.Exit(cmd.RunWithArgs(os.Args[1:], plowVersion))
}
