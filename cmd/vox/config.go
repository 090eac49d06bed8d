package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ShayCichocki/vox/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config [key] [value]",
	Short: "Manage configuration",
	Long: `View or modify vox configuration.

Without arguments, displays every key with its effective value.
With one argument (key), displays the value for that key.
With two arguments (key value), sets the value in the config file.

Configuration is stored at ~/.config/vox/config.yaml
Project-specific overrides can be placed in .vox.yaml
Secrets are masked when displayed.`,
	Args: cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		switch len(args) {
		case 0:
			return displayAllConfig(cmd)
		case 1:
			value, err := config.Lookup(configPath, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(out, config.DisplayValue(args[0], value))
			return nil
		default:
			return setConfigKey(cmd, args[0], args[1])
		}
	},
}

// displayAllConfig prints every known key with its effective value.
func displayAllConfig(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	for _, key := range config.Keys() {
		value, err := config.Lookup(configPath, key)
		if err != nil {
			return err
		}
		display := config.DisplayValue(key, value)
		if display == "" {
			display = "(not set)"
		}
		fmt.Fprintf(out, "%s: %s\n", key, display)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "\nAPI key source: %s\n", config.GetAPIKeySource(cfg))
	return nil
}

// setConfigKey writes key to --config when given, else the user config.
func setConfigKey(cmd *cobra.Command, key, value string) error {
	path := config.GetUserConfigPath()
	if configPath != "" {
		path = configPath
	}
	if err := config.SetValueIn(path, key, value); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, config.DisplayValue(key, value))
	return nil
}
