package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/f4ah6o/kicad-keyboard-grinner/pkg/grin"
	"github.com/f4ah6o/kicad-keyboard-grinner/pkg/row"
)

// builtinLayout returns the curve parameters used before config and flags
// are applied.
func builtinLayout() row.Config {
	return row.Config{
		SagMM:   grin.DefaultSagMM,
		EndFlat: grin.DefaultEndFlat,
		Profile: row.ProfileCosine,
	}
}

// addLayoutFlags registers the shared curve parameter flags.
func addLayoutFlags(cmd *cobra.Command, layout *row.Config) {
	cmd.Flags().Float64Var(&layout.SagMM, "sag", layout.SagMM, "downward sag at the row midpoint in mm")
	cmd.Flags().IntVar(&layout.EndFlat, "end-flat", layout.EndFlat, "flat keys at each end of the row (0-2)")
	cmd.Flags().StringVar(&layout.Profile, "profile", layout.Profile, "angle profile: cosine, bezier, quadratic")
	cmd.Flags().BoolVar(&layout.AsymmetricCurve, "asymmetric", layout.AsymmetricCurve, "pull the curve toward the wider end key")
}

// addOutputFlags registers the flags controlling how a run writes back.
func addOutputFlags(cmd *cobra.Command, opts *grin.Options) {
	cmd.Flags().BoolVar(&opts.NoBackup, "no-backup", false, "skip the timestamped board backup")
	cmd.Flags().BoolVar(&opts.Guides.Curve, "guide-curve", false, "draw the row curve as guide lines")
	cmd.Flags().BoolVar(&opts.Guides.Squares, "guide-squares", false, "outline each placed key as guide lines")
	cmd.Flags().StringVar(&opts.Guides.Layer, "guide-layer", grin.DefaultGuideLayer, "layer receiving guide lines")
}

// overrideLayoutFlags copies explicitly set flag values over base. Used
// where the starting point is a saved record rather than the defaults.
func overrideLayoutFlags(cmd *cobra.Command, flags row.Config, base *row.Config) {
	if cmd.Flags().Changed("sag") {
		base.SagMM = flags.SagMM
	}
	if cmd.Flags().Changed("end-flat") {
		base.EndFlat = flags.EndFlat
	}
	if cmd.Flags().Changed("profile") {
		base.Profile = flags.Profile
	}
	if cmd.Flags().Changed("asymmetric") {
		base.AsymmetricCurve = flags.AsymmetricCurve
	}
}

// applyCommand creates the apply command for arranging a row.
func (c *CLI) applyCommand() *cobra.Command {
	var (
		refs   []string
		dryRun bool
	)
	opts := grin.Options{Layout: builtinLayout()}

	cmd := &cobra.Command{
		Use:   "apply BOARD",
		Short: "Arrange switch footprints along the row curve",
		Long: `Arrange switch footprints along the row curve.

The apply command reads a .kicad_pcb file, gathers the switch footprints
(every SW<number> footprint, or only those named with --refs), solves the
sagging row with corner contact, writes the new positions and angles back,
and saves the parameters on the row's first footprint so the row can be
re-edited later with 'edit'.

The first footprint in reference order stays where it is; the rest of the
row is arranged relative to it. The board file is replaced atomically and
a timestamped backup is written next to it unless --no-backup is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig()
			if err != nil {
				return err
			}
			applyConfigLayout(cmd, cfg, &opts.Layout)
			applyConfigOutput(cmd, cfg, &opts)

			opts.BoardPath = args[0]
			opts.Refs = refs
			opts.DryRun = dryRun
			return c.runApply(cmd.Context(), opts)
		},
	}

	addLayoutFlags(cmd, &opts.Layout)
	addOutputFlags(cmd, &opts)
	cmd.Flags().StringSliceVarP(&refs, "refs", "r", nil, "switch references forming the row (default: every SW footprint)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "solve and report without writing the board")

	return cmd
}

// runApply executes the run and reports the outcome.
func (c *CLI) runApply(ctx context.Context, opts grin.Options) error {
	result, err := c.newRunner().Execute(ctx, opts)
	if err != nil {
		return err
	}
	printRunResult(result)
	return nil
}

// printRunResult summarizes a finished run.
func printRunResult(result *grin.Result) {
	rec := result.Record
	if result.Written {
		printSuccess("Arranged %s", StyleHighlight.Render(rec.Label()))
	} else {
		printInfo("Would arrange %s", StyleHighlight.Render(rec.Label()))
	}
	printRowStats(len(result.Refs), rec.SagMM, rec.Profile, result.Written)

	if !result.Written {
		return
	}
	printFile(result.BoardPath)
	if result.BackupPath != "" {
		printDetail("backup %s", result.BackupPath)
	}
	printNextStep("Re-edit this row", fmt.Sprintf("%s edit %s --row %s", appName, result.BoardPath, result.RowName))
}
