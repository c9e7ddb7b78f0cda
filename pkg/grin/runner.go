// Package grin arranges keyboard switch footprints on a KiCad board along
// a sagging row curve.
//
// The package ties the pure layout engine to real board files: it gathers
// the target footprints, infers each key's size from footprint metadata,
// solves the row, writes positions and angles back, optionally draws
// guide geometry, and records the parameters on the board so the row can
// be re-solved later.
//
// # Usage
//
// Create a Runner and execute one run:
//
//	runner := grin.NewRunner(logger)
//	result, err := runner.Execute(ctx, grin.Options{
//	    BoardPath: "keyboard.kicad_pcb",
//	    Layout:    row.Config{SagMM: 20, EndFlat: 1, Profile: row.ProfileCosine},
//	})
//
// The same entry point serves fresh runs and re-runs of saved rows; an
// edit flow loads the saved record, tweaks it, and executes with the
// recorded references.
package grin

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/f4ah6o/kicad-keyboard-grinner/pkg/errors"
	"github.com/f4ah6o/kicad-keyboard-grinner/pkg/kicad"
	"github.com/f4ah6o/kicad-keyboard-grinner/pkg/observability"
	"github.com/f4ah6o/kicad-keyboard-grinner/pkg/params"
	"github.com/f4ah6o/kicad-keyboard-grinner/pkg/row"
)

// Default layout parameters shared by CLI flags and the config scaffold.
const (
	DefaultSagMM   = 20.0
	DefaultEndFlat = 1
)

// validProfiles is the set of accepted angle profile keys.
var validProfiles = map[string]bool{
	row.ProfileCosine:    true,
	row.ProfileBezier:    true,
	row.ProfileQuadratic: true,
}

// NormalizeLayout clamps layout parameters into their documented ranges
// and resolves an empty profile to the cosine default. Out-of-range values
// are clamped rather than rejected, matching how saved records treat them;
// an unknown profile is an error so a typo fails before any board is read.
func NormalizeLayout(layout *row.Config) error {
	if layout.SagMM < 0 {
		layout.SagMM = 0
	}
	if layout.EndFlat < 0 {
		layout.EndFlat = 0
	}
	if layout.EndFlat > 2 {
		layout.EndFlat = 2
	}
	if layout.Profile == "" {
		layout.Profile = row.ProfileCosine
	}
	if !validProfiles[layout.Profile] {
		return errors.New(errors.ErrCodeInvalidInput,
			"unknown angle profile %q (valid: %s, %s, %s)",
			layout.Profile, row.ProfileCosine, row.ProfileBezier, row.ProfileQuadratic)
	}
	return nil
}

// Options configures one row layout run.
type Options struct {
	// BoardPath is the .kicad_pcb file to read and write.
	BoardPath string

	// Refs names the switch footprints forming the row, in any order.
	// Empty means every SW<number> footprint on the board.
	Refs []string

	// Layout carries the curve parameters.
	Layout row.Config

	// DryRun solves and reports without writing the board file.
	DryRun bool

	// NoBackup skips the timestamped backup copy written next to the
	// board before overwriting it.
	NoBackup bool

	// Guides selects debug geometry drawn with the row.
	Guides GuideOptions
}

// ValidateAndSetDefaults checks the options and fills defaults in place.
func (o *Options) ValidateAndSetDefaults() error {
	if err := errors.ValidateBoardPath(o.BoardPath); err != nil {
		return err
	}
	if err := NormalizeLayout(&o.Layout); err != nil {
		return err
	}
	return o.Guides.validate()
}

// Stats records per-stage timing for one run.
type Stats struct {
	LoadTime  time.Duration
	SolveTime time.Duration
	SaveTime  time.Duration
}

// Result reports what one run did.
type Result struct {
	// RowName is the display name of the arranged row.
	RowName string
	// Refs are the arranged footprint references in row order.
	Refs []string
	// Placements are the solved poses, parallel to Refs.
	Placements []row.Placement
	// Record is the parameter record saved on the row's first footprint.
	Record params.Record
	// BoardPath is the board file the run targeted.
	BoardPath string
	// BackupPath is the backup copy written before saving, or empty.
	BackupPath string
	// Written reports whether the board file was actually rewritten.
	Written bool

	Stats Stats
}

// Runner executes row layout runs against board files.
//
// The Runner holds no per-run state; the same instance can serve many
// boards in sequence.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. A nil logger falls back to the default.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Execute runs one complete layout: load, gather, solve, apply, record
// and save. On error the board file is left untouched; all mutation
// happens in memory until the final atomic save.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{BoardPath: opts.BoardPath}

	// Stage 1: Load
	loadStart := time.Now()
	observability.Run().OnLoadStart(ctx, opts.BoardPath)
	board, err := kicad.Load(opts.BoardPath)
	if err != nil {
		observability.Run().OnLoadComplete(ctx, opts.BoardPath, 0, time.Since(loadStart), err)
		return nil, err
	}
	result.Stats.LoadTime = time.Since(loadStart)
	observability.Run().OnLoadComplete(ctx, opts.BoardPath, len(board.Footprints()), result.Stats.LoadTime, nil)
	r.Logger.Info("loaded board",
		"path", opts.BoardPath,
		"footprints", len(board.Footprints()),
		"duration", result.Stats.LoadTime)

	// Stage 2: Gather and solve
	fps, err := GatherTargets(board, opts.Refs)
	if err != nil {
		return nil, err
	}
	if len(fps) == 0 {
		return nil, errors.New(errors.ErrCodeFootprintNotFound, "no switch footprints (SW<number>) found on board")
	}

	solveStart := time.Now()
	observability.Run().OnSolveStart(ctx, len(fps))
	slots := make([]row.Slot, len(fps))
	for i, fp := range fps {
		w, h := InferKeySize(fp)
		slots[i] = row.Slot{WidthMM: w, HeightMM: h, Anchor: fp.Position()}
	}
	placements, err := row.Solve(slots, opts.Layout)
	if err != nil {
		observability.Run().OnSolveComplete(ctx, len(fps), time.Since(solveStart), err)
		return nil, err
	}
	result.Stats.SolveTime = time.Since(solveStart)
	observability.Run().OnSolveComplete(ctx, len(fps), result.Stats.SolveTime, nil)
	r.Logger.Info("solved row",
		"slots", len(slots),
		"sag", opts.Layout.SagMM,
		"end_flat", opts.Layout.EndFlat,
		"profile", opts.Layout.Profile,
		"duration", result.Stats.SolveTime)

	// Stage 3: Apply to the board
	for i, fp := range fps {
		fp.SetPosition(placements[i].Center)
		fp.SetOrientationDeg(placements[i].AngleDeg)
		fp.SetLocked(false)
	}

	if opts.Guides.enabled() {
		if !board.HasLayer(opts.Guides.Layer) {
			return nil, errors.New(errors.ErrCodeInvalidLayer, "board has no layer %q", opts.Guides.Layer)
		}
		curve, err := row.Curve(slots, opts.Layout)
		if err != nil {
			return nil, err
		}
		drawGuides(board, curve, placements, slots, opts.Guides)
		r.Logger.Debug("drew guides", "layer", opts.Guides.Layer)
	}

	refs := refsOf(fps)
	rec := params.FromConfig(opts.Layout, refs)
	if err := params.SaveRow(fps[0], rec); err != nil {
		return nil, err
	}

	result.Refs = refs
	result.Placements = placements
	result.Record = rec
	result.RowName = rec.RowName

	if opts.DryRun {
		r.Logger.Info("dry run, board not written", "path", opts.BoardPath, "row", rec.RowName)
		return result, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "run canceled before save")
	}

	// Stage 4: Save
	saveStart := time.Now()
	observability.Run().OnWriteStart(ctx, opts.BoardPath)
	if !opts.NoBackup {
		backupPath, err := backupBoard(opts.BoardPath)
		if err != nil {
			observability.Run().OnWriteComplete(ctx, opts.BoardPath, time.Since(saveStart), err)
			return nil, err
		}
		result.BackupPath = backupPath
		r.Logger.Debug("wrote backup", "path", backupPath)
	}
	if err := board.Save(opts.BoardPath); err != nil {
		observability.Run().OnWriteComplete(ctx, opts.BoardPath, time.Since(saveStart), err)
		return nil, err
	}
	result.Written = true
	result.Stats.SaveTime = time.Since(saveStart)
	observability.Run().OnWriteComplete(ctx, opts.BoardPath, result.Stats.SaveTime, nil)
	r.Logger.Info("wrote board",
		"path", opts.BoardPath,
		"row", rec.RowName,
		"duration", result.Stats.SaveTime)

	return result, nil
}

// backupBoard copies the board file to a timestamped sibling before it
// gets overwritten, and returns the backup path.
func backupBoard(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeIO, err, "reading board for backup")
	}
	backupPath := fmt.Sprintf("%s.%s.bak", path, time.Now().Format("20060102-150405"))
	if err := os.WriteFile(backupPath, data, 0o644); err != nil {
		return "", errors.Wrap(errors.ErrCodeIO, err, "writing backup %s", backupPath)
	}
	return backupPath, nil
}
