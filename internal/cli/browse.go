package cli

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rshade/tablestate/internal/pagination"
	"github.com/rshade/tablestate/internal/tui"
)

// ErrNotTerminal is returned when browse runs without an interactive terminal.
var ErrNotTerminal = errors.New("browse requires an interactive terminal; use 'tablestate page' instead")

// NewBrowseCmd creates the browse command, which opens the interactive table.
func NewBrowseCmd() *cobra.Command {
	var flags DataFlags

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Interactively page, search, and select records",
		Long: `Open an interactive table over one or more JSON or YAML record files.

Keys: n/→ next page, p/← previous page, g/G first/last page, ↑↓/jk move,
space toggle row, a select page, A select all matching, c clear selection,
/ search, r reset filters, q quit.`,
		Example: `  tablestate browse --data customers.json --filter status=active`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeBrowse(cmd, flags)
		},
	}

	flags.Bind(cmd)
	return cmd
}

// executeBrowse handles the browse command logic.
func executeBrowse(cmd *cobra.Command, flags DataFlags) error {
	if !isTerminal(os.Stdin) || !isTerminal(os.Stdout) {
		return ErrNotTerminal
	}

	ctx := cmd.Context()
	ctrl, err := flags.buildController(ctx, flags.params(ctx, pagination.DefaultPage))
	if err != nil {
		return err
	}

	program := tea.NewProgram(tui.NewBrowseModel(ctrl),
		tea.WithContext(ctx),
		tea.WithAltScreen(),
	)
	if _, err = program.Run(); err != nil {
		return fmt.Errorf("running browse: %w", err)
	}
	return nil
}
