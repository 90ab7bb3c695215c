package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change the settings stored in the config file.

Keys:
  database.driver  - sqlite or postgres
  database.path    - SQLite database file
  database.url     - PostgreSQL connection string (DATABASE_URL overrides it)
  log.level        - debug, info, warn or error
  log.format       - text or json`,
	Args: cobra.NoArgs,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting",
	Args:  cobra.ExactArgs(2),
	RunE:  runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	svc, err := getServices()
	if err != nil {
		return err
	}
	if svc.Settings == nil {
		return errors.New("settings service not configured")
	}

	settings, err := svc.Settings.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Database]")
	cmd.Printf("  Driver: %s\n", settings.Database.Driver.Description())
	cmd.Printf("  Path: %s\n", settings.Database.Path)
	if settings.Database.URL != "" {
		cmd.Printf("  URL: %s\n", maskURL(settings.Database.URL))
	} else {
		cmd.Println("  URL: (not set)")
	}
	cmd.Println()

	cmd.Println("[Log]")
	cmd.Printf("  Level: %s\n", settings.Log.Level)
	cmd.Printf("  Format: %s\n", settings.Log.Format)

	if path := svc.Settings.Path(); path != "" {
		cmd.Println()
		cmd.Printf("Config file: %s\n", path)
	}
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	svc, err := getServices()
	if err != nil {
		return err
	}
	if svc.Settings == nil {
		return errors.New("settings service not configured")
	}

	key, value := args[0], args[1]
	if err := svc.Settings.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}

	if key == "database.url" {
		value = maskURL(value)
	}
	cmd.Printf("%s = %s\n", key, value)
	return nil
}

// maskURL hides the password of a connection string.
func maskURL(raw string) string {
	scheme, rest, ok := strings.Cut(raw, "://")
	if !ok {
		return "****"
	}
	userinfo, host, ok := strings.Cut(rest, "@")
	if !ok {
		return raw
	}
	user, _, hasPassword := strings.Cut(userinfo, ":")
	if !hasPassword {
		return raw
	}
	return scheme + "://" + user + ":****@" + host
}
