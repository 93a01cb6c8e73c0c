package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long: `View and edit ecoreport configuration.

Settings are layered: built-in defaults, then the config file, then
ECOREPORT_* environment variables (a .env file in the working directory is
loaded first), then command-line flags.

Keys:
  output.format    table, markdown, json, yaml, csv or xlsx
  output.color     auto, always or never
  input.delimiter  single character separating fields in .csv/.txt files
  log.verbose      true or false`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective settings",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

var configUnsetCmd = &cobra.Command{
	Use:   "unset <key>",
	Short: "Remove a configuration value, restoring the default",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigUnset,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	Args:  cobra.NoArgs,
	RunE:  runConfigPath,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configUnsetCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

func requireSettings() error {
	if services == nil || services.Settings == nil {
		return errors.New("settings service not configured")
	}
	return nil
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if err := requireSettings(); err != nil {
		return err
	}

	settings, err := services.Settings.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Current Settings")
	fmt.Fprintln(out, "================")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "[Output]")
	fmt.Fprintf(out, "  Format: %s (%s)\n", settings.Output.Format, settings.Output.Format.Description())
	fmt.Fprintf(out, "  Color: %s\n", settings.Output.Color)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "[Input]")
	fmt.Fprintf(out, "  Delimiter: %q\n", settings.Input.Delimiter)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "[Log]")
	fmt.Fprintf(out, "  Verbose: %t\n", settings.Verbose)
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Config file: %s\n", services.Settings.Path())
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if err := requireSettings(); err != nil {
		return err
	}

	key, value := args[0], args[1]
	if err := services.Settings.Set(key, value); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, value)
	return nil
}

func runConfigUnset(cmd *cobra.Command, args []string) error {
	if err := requireSettings(); err != nil {
		return err
	}

	if err := services.Settings.Unset(args[0]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Unset %s\n", args[0])
	return nil
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	if err := requireSettings(); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), services.Settings.Path())
	return nil
}
