package cli

import (
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/f4ah6o/kicad-keyboard-grinner/pkg/errors"
	"github.com/f4ah6o/kicad-keyboard-grinner/pkg/kicad"
	"github.com/f4ah6o/kicad-keyboard-grinner/pkg/params"
)

// rowsCommand creates the rows command for listing saved rows.
func (c *CLI) rowsCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "rows BOARD",
		Short: "List the rows saved on a board",
		Long: `List the rows saved on a board.

Each applied row stores its parameters on the row's first footprint.
The rows command scans the board and prints every record it finds, in
board order. The # column is the index accepted by edit --index.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRows(cmd, args[0], asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print records as JSON")

	return cmd
}

func (c *CLI) runRows(cmd *cobra.Command, boardPath string, asJSON bool) error {
	if err := errors.ValidateBoardPath(boardPath); err != nil {
		return err
	}

	p := newProgress(c.Logger)
	board, err := kicad.Load(boardPath)
	if err != nil {
		return err
	}
	rows := params.FindRows(board)
	p.done(fmt.Sprintf("Found %d saved rows", len(rows)))

	if asJSON {
		records := make([]params.Record, len(rows))
		for i, r := range rows {
			records[i] = r.Record
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}

	if len(rows) == 0 {
		printWarning("No saved rows on this board")
		printNextStep("Arrange a row first", fmt.Sprintf("%s apply %s", appName, boardPath))
		return nil
	}

	printNewline()
	fmt.Println(StyleTitle.Render(fmt.Sprintf("  Saved rows on %s", boardPath)))
	printNewline()
	fmt.Println(renderRowsTable(rows))
	printNewline()
	printNextStep("Re-edit a row", fmt.Sprintf("%s edit %s --index N", appName, boardPath))

	return nil
}

// renderRowsTable formats saved rows as an aligned table.
func renderRowsTable(rows []params.SavedRow) string {
	cells := make([][]string, len(rows))
	for i, r := range rows {
		name := r.Record.RowName
		if name == "" {
			name = r.First.Reference()
		}
		asym := "no"
		if r.Record.AsymmetricCurve {
			asym = "yes"
		}
		cells[i] = []string{
			fmt.Sprintf(" %d ", i+1),
			" " + name + " ",
			fmt.Sprintf(" %d ", len(r.Record.Footprints)),
			fmt.Sprintf(" %.1f ", r.Record.SagMM),
			fmt.Sprintf(" %d ", r.Record.EndFlat),
			" " + r.Record.Profile + " ",
			" " + asym + " ",
			" " + r.Record.Version + " ",
		}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(" # ", " Row ", " Keys ", " Sag (mm) ", " End flat ", " Profile ", " Asym ", " Version ").
		Rows(cells...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			switch col {
			case 1:
				return StyleValue
			case 5, 6, 7:
				return StyleDim
			}
			return StyleNumber
		})

	return t.Render()
}
