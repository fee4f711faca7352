package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/rshade/tablestate/internal/cli"
	"github.com/rshade/tablestate/internal/config"
	"github.com/rshade/tablestate/internal/pagination"
	"github.com/rshade/tablestate/internal/records"
	"github.com/rshade/tablestate/pkg/version"
)

// Process exit codes.
const (
	exitError       = 1
	exitUsage       = 2 // bad flags, input files, or config
	exitNotTerminal = 3 // browse run without a terminal
)

//nolint:gochecknoglobals // Fixed lookup table.
var usageErrors = []error{
	cli.ErrNoData,
	cli.ErrUnsupportedOutput,
	records.ErrInvalidFilter,
	records.ErrUnsupportedFormat,
	records.ErrNoDataFiles,
	pagination.ErrInvalidPage,
	pagination.ErrInvalidPageSize,
	pagination.ErrInvalidMaxVisiblePages,
	config.ErrUnsupportedConfigVersion,
	config.ErrInvalidOutputFormat,
	config.ErrInvalidLogFormat,
	config.ErrInvalidTableConfig,
	fs.ErrNotExist,
}

func main() {
	os.Exit(run())
}

// run executes the root command and returns the process exit code.
func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCmd(version.GetVersion())
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitCode(err)
	}
	return 0
}

// exitCode maps a command error to a process exit code.
func exitCode(err error) int {
	if errors.Is(err, cli.ErrNotTerminal) {
		return exitNotTerminal
	}
	for _, target := range usageErrors {
		if errors.Is(err, target) {
			return exitUsage
		}
	}
	return exitError
}
