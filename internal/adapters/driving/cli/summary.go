package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show how many rows the database holds",
	Args:  cobra.NoArgs,
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, _ []string) error {
	svc, err := getServices()
	if err != nil {
		return err
	}
	if svc.Summariser == nil {
		return errors.New("summary service not configured")
	}

	counts, err := svc.Summariser.Summary(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to read database: %w", err)
	}

	cmd.Printf("Database: %s (%s)\n", svc.Database.Target(), svc.Database.Driver.Description())
	cmd.Printf("  Cities:    %d\n", counts.Cities)
	cmd.Printf("  Foods:     %d\n", counts.Foods)
	cmd.Printf("  Distances: %d\n", counts.Distances)
	return nil
}
