// Package cli implements the grinner command-line interface.
//
// This package provides commands for arranging keyboard switch footprints
// along a sagging row curve, re-editing rows saved on a board, listing
// those rows, and inspecting a solve without writing anything. The CLI is
// built using cobra and supports verbose logging via the charmbracelet/log
// library.
//
// # Commands
//
// The main commands are:
//   - apply: Arrange switch footprints along the row curve and save the board
//   - edit: Re-run a saved row with tweaked parameters
//   - rows: List the rows saved on a board
//   - solve: Compute placements and print them without touching a board
//   - config: Show or create the configuration file
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The shared
// logger lives on the CLI struct and feeds the layout runner directly.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/f4ah6o/kicad-keyboard-grinner/pkg/buildinfo"
	"github.com/f4ah6o/kicad-keyboard-grinner/pkg/grin"
)

// appName is the application name used for directories and display.
const appName = "grinner"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Grinner arranges keyboard switch footprints along a sagging row",
		Long: `Grinner is a CLI tool for KiCad keyboard layouts: it places switch
footprints along a downward-sagging curve with neighboring keys touching
corner to corner, the way Grin-style keyboards are built. Parameters are
saved on the board itself, so any row can be re-edited later.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.applyCommand())
	root.AddCommand(c.editCommand())
	root.AddCommand(c.rowsCommand())
	root.AddCommand(c.solveCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newRunner creates a layout runner for CLI use.
func (c *CLI) newRunner() *grin.Runner {
	return grin.NewRunner(c.Logger)
}

// configDir returns the configuration directory using the XDG standard
// (~/.config/grinner/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}
