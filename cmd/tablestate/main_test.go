package main

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/tablestate/internal/cli"
	"github.com/rshade/tablestate/internal/config"
	"github.com/rshade/tablestate/internal/pagination"
	"github.com/rshade/tablestate/internal/records"
	"github.com/rshade/tablestate/pkg/version"
)

func TestMainComponents(t *testing.T) {
	t.Run("version available", func(t *testing.T) {
		assert.NotEmpty(t, version.GetVersion())
	})

	t.Run("cli root command", func(t *testing.T) {
		root := cli.NewRootCmd(version.GetVersion())
		require.NotNil(t, root)
		assert.Equal(t, "tablestate", root.Use)

		var names []string
		for _, c := range root.Commands() {
			names = append(names, c.Name())
		}
		assert.Contains(t, names, "page")
		assert.Contains(t, names, "browse")
	})
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "generic error", err: errors.New("boom"), want: exitError},
		{name: "missing data flag", err: cli.ErrNoData, want: exitUsage},
		{name: "wrapped output format", err: fmt.Errorf("%w: csv", cli.ErrUnsupportedOutput), want: exitUsage},
		{name: "bad filter", err: fmt.Errorf("parse: %w", records.ErrInvalidFilter), want: exitUsage},
		{name: "page size", err: pagination.ErrInvalidPageSize, want: exitUsage},
		{name: "config version", err: fmt.Errorf("loading config: %w", config.ErrUnsupportedConfigVersion), want: exitUsage},
		{name: "missing config file", err: fmt.Errorf("loading config: config file x.yaml: %w", fs.ErrNotExist), want: exitUsage},
		{name: "not a terminal", err: cli.ErrNotTerminal, want: exitNotTerminal},
		{name: "joined", err: errors.Join(errors.New("outer"), cli.ErrNotTerminal), want: exitNotTerminal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCode(tt.err))
		})
	}
}
