package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/f4ah6o/kicad-keyboard-grinner/pkg/errors"
	"github.com/f4ah6o/kicad-keyboard-grinner/pkg/grin"
	"github.com/f4ah6o/kicad-keyboard-grinner/pkg/row"
)

const (
	// configFileName is the config file inside the config directory.
	configFileName = "config.toml"
	// configEnv overrides the config file location entirely.
	configEnv = "GRINNER_CONFIG"
)

// fileConfig is the on-disk configuration. All fields are optional;
// omitted values keep their built-in defaults. Pointer fields distinguish
// "not set" from a deliberate zero, since a sag of 0 is a valid choice.
type fileConfig struct {
	Defaults layoutDefaults `toml:"defaults"`
	Output   outputDefaults `toml:"output"`
}

// layoutDefaults overrides the built-in curve parameters.
type layoutDefaults struct {
	Sag        *float64 `toml:"sag"`
	EndFlat    *int     `toml:"end_flat"`
	Profile    string   `toml:"profile"`
	Asymmetric *bool    `toml:"asymmetric"`
}

// outputDefaults overrides how runs write their results.
type outputDefaults struct {
	GuideLayer string `toml:"guide_layer"`
	NoBackup   bool   `toml:"no_backup"`
}

// configPath resolves the config file location: the GRINNER_CONFIG
// environment variable wins, otherwise the XDG config directory.
func configPath() (string, error) {
	if path := os.Getenv(configEnv); path != "" {
		return path, nil
	}
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// loadConfig reads the config file. A missing file is not an error; it
// yields the zero config so built-in defaults apply.
func loadConfig() (fileConfig, string, error) {
	var cfg fileConfig
	path, err := configPath()
	if err != nil {
		return cfg, "", err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, path, nil
	}
	if err != nil {
		return cfg, path, errors.Wrap(errors.ErrCodeConfig, err, "reading config %s", path)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, path, errors.Wrap(errors.ErrCodeConfig, err, "parsing config %s", path)
	}
	return cfg, path, nil
}

// effectiveLayout resolves the curve parameters from built-ins overlaid
// with the config file.
func effectiveLayout(cfg fileConfig) row.Config {
	layout := row.Config{
		SagMM:   grin.DefaultSagMM,
		EndFlat: grin.DefaultEndFlat,
		Profile: row.ProfileCosine,
	}
	d := cfg.Defaults
	if d.Sag != nil {
		layout.SagMM = *d.Sag
	}
	if d.EndFlat != nil {
		layout.EndFlat = *d.EndFlat
	}
	if d.Profile != "" {
		layout.Profile = d.Profile
	}
	if d.Asymmetric != nil {
		layout.AsymmetricCurve = *d.Asymmetric
	}
	return layout
}

// applyConfigLayout fills layout values from the config file for every
// flag the user did not set explicitly. Flags beat config, config beats
// built-ins.
func applyConfigLayout(cmd *cobra.Command, cfg fileConfig, layout *row.Config) {
	d := cfg.Defaults
	if !cmd.Flags().Changed("sag") && d.Sag != nil {
		layout.SagMM = *d.Sag
	}
	if !cmd.Flags().Changed("end-flat") && d.EndFlat != nil {
		layout.EndFlat = *d.EndFlat
	}
	if !cmd.Flags().Changed("profile") && d.Profile != "" {
		layout.Profile = d.Profile
	}
	if !cmd.Flags().Changed("asymmetric") && d.Asymmetric != nil {
		layout.AsymmetricCurve = *d.Asymmetric
	}
}

// applyConfigOutput fills output options from the config file for flags
// the user did not set.
func applyConfigOutput(cmd *cobra.Command, cfg fileConfig, opts *grin.Options) {
	o := cfg.Output
	if !cmd.Flags().Changed("guide-layer") && o.GuideLayer != "" {
		opts.Guides.Layer = o.GuideLayer
	}
	if !cmd.Flags().Changed("no-backup") && o.NoBackup {
		opts.NoBackup = true
	}
}

// configCommand creates the config command group.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or create the configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runConfigShow()
		},
	}

	cmd.AddCommand(c.configInitCommand())
	cmd.AddCommand(c.configPathCommand())

	return cmd
}

// runConfigShow prints the resolved configuration.
func (c *CLI) runConfigShow() error {
	cfg, path, err := loadConfig()
	if err != nil {
		return err
	}

	if _, statErr := os.Stat(path); os.IsNotExist(statErr) {
		printInfo("No config file, using built-in defaults")
		printDetail("would be read from %s", path)
	} else {
		printInfo("Config file: %s", StyleHighlight.Render(path))
	}
	printNewline()

	layout := effectiveLayout(cfg)
	printKeyValue("sag", fmt.Sprintf("%.1f mm", layout.SagMM))
	printKeyValue("end flat", fmt.Sprintf("%d", layout.EndFlat))
	printKeyValue("profile", layout.Profile)
	printKeyValue("asymmetric", fmt.Sprintf("%t", layout.AsymmetricCurve))

	guideLayer := cfg.Output.GuideLayer
	if guideLayer == "" {
		guideLayer = grin.DefaultGuideLayer
	}
	printKeyValue("guide layer", guideLayer)
	printKeyValue("backups", fmt.Sprintf("%t", !cfg.Output.NoBackup))

	return nil
}

// configInitCommand creates the "config init" subcommand.
func (c *CLI) configInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the current defaults",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := configPath()
			if err != nil {
				return err
			}
			if _, err := os.Stat(path); err == nil && !force {
				return errors.New(errors.ErrCodeConfig, "config file already exists at %s (use --force to overwrite)", path)
			}

			sag := grin.DefaultSagMM
			endFlat := grin.DefaultEndFlat
			asymmetric := false
			cfg := fileConfig{
				Defaults: layoutDefaults{
					Sag:        &sag,
					EndFlat:    &endFlat,
					Profile:    row.ProfileCosine,
					Asymmetric: &asymmetric,
				},
				Output: outputDefaults{
					GuideLayer: grin.DefaultGuideLayer,
				},
			}
			data, err := toml.Marshal(cfg)
			if err != nil {
				return errors.Wrap(errors.ErrCodeConfig, err, "encoding config")
			}

			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return errors.Wrap(errors.ErrCodeIO, err, "creating config directory")
			}
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return errors.Wrap(errors.ErrCodeIO, err, "writing config %s", path)
			}

			printSuccess("Wrote config")
			printFile(path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")

	return cmd
}

// configPathCommand creates the "config path" subcommand.
func (c *CLI) configPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file location",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := configPath()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}
