package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/f4ah6o/kicad-keyboard-grinner/pkg/errors"
	"github.com/f4ah6o/kicad-keyboard-grinner/pkg/geom"
	"github.com/f4ah6o/kicad-keyboard-grinner/pkg/grin"
	"github.com/f4ah6o/kicad-keyboard-grinner/pkg/row"
	"github.com/f4ah6o/kicad-keyboard-grinner/pkg/units"
)

// solvedPlacement is the JSON shape for one placed key.
type solvedPlacement struct {
	Ref      string  `json:"ref"`
	XMM      float64 `json:"x_mm"`
	YMM      float64 `json:"y_mm"`
	AngleDeg float64 `json:"angle_deg"`
}

// solveSpec describes a synthetic row solved without a board.
type solveSpec struct {
	count  int
	widths []string
	height string
	anchor string
}

// solveCommand creates the solve command for previewing placements.
func (c *CLI) solveCommand() *cobra.Command {
	var (
		refs   []string
		asJSON bool
		spec   solveSpec
	)
	opts := grin.Options{Layout: builtinLayout()}

	cmd := &cobra.Command{
		Use:   "solve [BOARD]",
		Short: "Compute placements without touching a board",
		Long: `Compute placements without touching a board.

With a BOARD argument, the solve command runs the same arrangement as
apply but never writes: it prints the center and angle every switch
would get. Useful for checking a sag value before committing to it.

Without a board it solves a synthetic row instead: --count places
identical 1u keys, --widths names each key's width ("1.5u,1u,1u"), and
the row starts at --anchor. This exercises the engine standalone.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig()
			if err != nil {
				return err
			}
			applyConfigLayout(cmd, cfg, &opts.Layout)

			if len(args) == 0 {
				return c.runStandaloneSolve(cmd, opts.Layout, spec, asJSON)
			}

			opts.BoardPath = args[0]
			opts.Refs = refs
			opts.DryRun = true
			opts.NoBackup = true

			result, err := c.newRunner().Execute(cmd.Context(), opts)
			if err != nil {
				return err
			}

			placements := make([]solvedPlacement, len(result.Refs))
			for i, ref := range result.Refs {
				p := result.Placements[i]
				placements[i] = solvedPlacement{Ref: ref, XMM: p.Center.X, YMM: p.Center.Y, AngleDeg: p.AngleDeg}
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(placements)
			}

			printInfo("Solved %s", StyleHighlight.Render(result.Record.Label()))
			printRowStats(len(result.Refs), result.Record.SagMM, result.Record.Profile, false)
			printNewline()
			fmt.Println(renderPlacementTable(placements))
			printNewline()
			printNextStep("Write it to the board", fmt.Sprintf("%s apply %s", appName, opts.BoardPath))
			return nil
		},
	}

	addLayoutFlags(cmd, &opts.Layout)
	cmd.Flags().StringSliceVarP(&refs, "refs", "r", nil, "switch references forming the row (default: every SW footprint)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print placements as JSON")
	cmd.Flags().IntVar(&spec.count, "count", 0, "solve N identical 1u keys instead of reading a board")
	cmd.Flags().StringSliceVar(&spec.widths, "widths", nil, "per-key widths for a synthetic row (e.g. 1.5u,1u,1u)")
	cmd.Flags().StringVar(&spec.height, "height", "", "key height for a synthetic row (default 1u)")
	cmd.Flags().StringVar(&spec.anchor, "anchor", "0,0", "board position X,Y of the first synthetic key")

	return cmd
}

// runStandaloneSolve solves a synthetic row and prints it like a board run.
func (c *CLI) runStandaloneSolve(cmd *cobra.Command, layout row.Config, spec solveSpec, asJSON bool) error {
	if err := grin.NormalizeLayout(&layout); err != nil {
		return err
	}
	slots, keyRefs, err := standaloneSlots(spec)
	if err != nil {
		return err
	}
	solved, err := row.Solve(slots, layout)
	if err != nil {
		return err
	}

	placements := make([]solvedPlacement, len(keyRefs))
	for i, ref := range keyRefs {
		p := solved[i]
		placements[i] = solvedPlacement{Ref: ref, XMM: p.Center.X, YMM: p.Center.Y, AngleDeg: p.AngleDeg}
	}

	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(placements)
	}

	printInfo("Solved %s", StyleHighlight.Render(fmt.Sprintf("%d synthetic keys", len(keyRefs))))
	printRowStats(len(keyRefs), layout.SagMM, layout.Profile, false)
	printNewline()
	fmt.Println(renderPlacementTable(placements))
	return nil
}

// standaloneSlots builds the slot sequence for a board-less solve. Keys
// are laid out end to end from the anchor, which is exactly the flat
// arrangement the engine bends.
func standaloneSlots(spec solveSpec) ([]row.Slot, []string, error) {
	var widths []float64
	switch {
	case len(spec.widths) > 0:
		widths = make([]float64, len(spec.widths))
		for i, text := range spec.widths {
			v, ok := units.ParseValue(text)
			if !ok {
				return nil, nil, errors.New(errors.ErrCodeInvalidInput, "cannot parse key width %q", text)
			}
			widths[i] = v
		}
	case spec.count > 0:
		widths = make([]float64, spec.count)
		for i := range widths {
			widths[i] = units.UnitMM
		}
	default:
		return nil, nil, errors.New(errors.ErrCodeInvalidInput, "standalone solve needs --count or --widths (or a BOARD argument)")
	}

	height := units.UnitMM
	if spec.height != "" {
		v, ok := units.ParseValue(spec.height)
		if !ok {
			return nil, nil, errors.New(errors.ErrCodeInvalidInput, "cannot parse key height %q", spec.height)
		}
		height = v
	}

	origin, err := parseAnchor(spec.anchor)
	if err != nil {
		return nil, nil, err
	}

	slots := make([]row.Slot, len(widths))
	keyRefs := make([]string, len(widths))
	x := origin.X
	for i, w := range widths {
		if i > 0 {
			x += (widths[i-1] + w) / 2
		}
		slots[i] = row.Slot{WidthMM: w, HeightMM: height, Anchor: geom.Pt(x, origin.Y)}
		keyRefs[i] = fmt.Sprintf("K%d", i+1)
	}
	return slots, keyRefs, nil
}

// parseAnchor reads an "X,Y" flag value in board millimeters.
func parseAnchor(text string) (geom.Point, error) {
	xs, ys, ok := strings.Cut(text, ",")
	if !ok {
		return geom.Point{}, errors.New(errors.ErrCodeInvalidInput, "anchor must be X,Y, got %q", text)
	}
	x, errX := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	y, errY := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if errX != nil || errY != nil {
		return geom.Point{}, errors.New(errors.ErrCodeInvalidInput, "anchor must be X,Y, got %q", text)
	}
	return geom.Pt(x, y), nil
}

// renderPlacementTable formats placements as an aligned table.
func renderPlacementTable(placements []solvedPlacement) string {
	rows := make([][]string, len(placements))
	for i, p := range placements {
		rows[i] = []string{
			" " + p.Ref + " ",
			fmt.Sprintf(" %9.3f ", p.XMM),
			fmt.Sprintf(" %9.3f ", p.YMM),
			fmt.Sprintf(" %7.2f ", p.AngleDeg),
		}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(" Ref ", " X (mm) ", " Y (mm) ", " Angle (deg) ").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 0 {
				return StyleValue
			}
			return StyleNumber
		})

	return t.Render()
}
