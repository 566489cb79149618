package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/goto/optimus-apitoken/internal/logger"
	"github.com/spf13/pflag"
)

func main() {
	// initiate default logger
	l := logger.NewDefaultLogger()

	// parse flags
	var op string
	var envs []string
	pflag.StringVar(&op, "op", string(OpLoad), "operation: load, exists, describe or save")
	pflag.StringArrayVar(&envs, "env", []string{}, "Pass env as argument (can be used multiple times)")

	// Parse the flags.
	pflag.Parse()

	// run executes one operation on the api token data set and
	// writes its result to stdout.
	if err := run(Op(strings.ToLower(op)), envs, os.Stdout); err != nil {
		l.Error(fmt.Sprintf("error: %s", err.Error()))
		fmt.Fprintf(os.Stderr, "error: %+v\n", err)
		os.Exit(1)
	}
}
