package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hiddenclip/tubescope/pkg/storage"
)

// importCmd represents the import command
var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import user patterns from a JSON array",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		modeFlag, _ := cmd.Flags().GetString("mode")
		mode, err := storage.ParseImportMode(modeFlag)
		if err != nil {
			return err
		}

		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}

		db, err := openStore(false)
		if err != nil {
			return err
		}
		defer db.Close()

		report, err := db.Import(context.Background(), data, mode)
		if err != nil {
			return err
		}
		fmt.Printf("Imported %d pattern(s), skipped %d invalid record(s)\n", report.Imported, report.Skipped)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.Flags().String("mode", "merge", "Import mode: merge or replace")
}
