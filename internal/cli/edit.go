package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/f4ah6o/kicad-keyboard-grinner/pkg/errors"
	"github.com/f4ah6o/kicad-keyboard-grinner/pkg/grin"
	"github.com/f4ah6o/kicad-keyboard-grinner/pkg/kicad"
	"github.com/f4ah6o/kicad-keyboard-grinner/pkg/params"
)

// editCommand creates the edit command for re-running a saved row.
func (c *CLI) editCommand() *cobra.Command {
	var (
		rowName  string
		rowIndex int
		dryRun   bool
	)
	flags := builtinLayout()
	opts := grin.Options{}

	cmd := &cobra.Command{
		Use:   "edit BOARD",
		Short: "Re-run a saved row with tweaked parameters",
		Long: `Re-run a saved row with tweaked parameters.

Every apply saves its parameters on the row's first footprint. The edit
command reads those records back, lets you pick a row (interactively, or
directly with --row or --index), and re-runs the arrangement over the
same footprints. Curve flags you pass override the saved values;
everything else stays as recorded.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			boardPath := args[0]
			if err := errors.ValidateBoardPath(boardPath); err != nil {
				return err
			}
			saved, err := c.pickRow(boardPath, rowName, rowIndex)
			if err != nil || saved == nil {
				return err
			}

			cfg, _, err := loadConfig()
			if err != nil {
				return err
			}
			applyConfigOutput(cmd, cfg, &opts)

			layout := saved.Record.Config()
			overrideLayoutFlags(cmd, flags, &layout)

			opts.BoardPath = boardPath
			opts.Refs = saved.Record.Footprints
			opts.Layout = layout
			opts.DryRun = dryRun
			return c.runApply(cmd.Context(), opts)
		},
	}

	addLayoutFlags(cmd, &flags)
	addOutputFlags(cmd, &opts)
	cmd.Flags().StringVar(&rowName, "row", "", "saved row to edit (name or first reference)")
	cmd.Flags().IntVar(&rowIndex, "index", 0, "saved row to edit by position (1-based, as listed by rows)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "solve and report without writing the board")

	return cmd
}

// pickRow resolves which saved row to edit. A nil row with a nil error
// means the picker was dismissed without choosing. --row takes priority
// over --index when both are given.
func (c *CLI) pickRow(boardPath, rowName string, index int) (*params.SavedRow, error) {
	board, err := kicad.Load(boardPath)
	if err != nil {
		return nil, err
	}

	if rowName != "" {
		saved, err := params.FindRow(board, rowName)
		if err != nil {
			return nil, err
		}
		return &saved, nil
	}

	rows := params.FindRows(board)
	if index > 0 {
		if index > len(rows) {
			return nil, errors.New(errors.ErrCodeRowNotFound, "row index %d out of range: board has %d saved row(s)", index, len(rows))
		}
		return &rows[index-1], nil
	}
	switch len(rows) {
	case 0:
		return nil, errors.New(errors.ErrCodeRowNotFound, "no saved rows on board %s", boardPath)
	case 1:
		printInfo("Editing %s", StyleHighlight.Render(rows[0].Record.Label()))
		return &rows[0], nil
	}

	m := newRowPickerModel(rows)
	p := tea.NewProgram(m)
	finalModel, err := p.Run()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "running row picker")
	}
	fm, ok := finalModel.(rowPickerModel)
	if !ok || fm.Selected == nil {
		printDetail("No selection made")
		return nil, nil
	}
	return fm.Selected, nil
}
