package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/stax/internal/infrastructure/sqlite"
	"github.com/zjrosen/stax/internal/stacks/application"
)

var journalLimit int

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Show recent history mutations",
	Long:  `Print the newest entries of the mutation journal: every amend, move, and squash stax has dispatched, with its outcome.`,
	RunE:  runJournal,
}

func init() {
	journalCmd.Flags().IntVar(&journalLimit, "limit", 20, "number of entries to show")
	rootCmd.AddCommand(journalCmd)
}

func runJournal(cmd *cobra.Command, args []string) error {
	db, err := sqlite.NewDB(journalPath())
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	records, err := db.JournalRepository().Recent(journalLimit)
	if err != nil {
		return fmt.Errorf("reading journal: %w", err)
	}

	if len(records) == 0 {
		fmt.Println("No mutations recorded yet.")
		return nil
	}

	for _, rec := range records {
		line := fmt.Sprintf("%s  %-14s %-7s %s",
			rec.CreatedAt.Format("2006-01-02 15:04:05"), rec.Kind, rec.Status, rec.StackID)
		if !rec.Source.Uncommitted() {
			line += "  " + rec.Source.Short()
		}
		if !rec.Dest.Uncommitted() {
			line += " -> " + rec.Dest.Short()
		}
		fmt.Println(line)
		if rec.Status == application.StatusFailed && rec.Error != "" {
			fmt.Printf("    %s\n", rec.Error)
		}
	}
	return nil
}
