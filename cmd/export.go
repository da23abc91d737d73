package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hiddenclip/tubescope/internal/utils"
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export user patterns as a JSON array (stdout by default)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openStore(true)
		if err != nil {
			return err
		}
		defer db.Close()

		data, err := db.Export(context.Background())
		if err != nil {
			return err
		}

		if len(args) == 0 {
			fmt.Println(string(data))
			return nil
		}
		if err := os.WriteFile(args[0], data, 0o644); err != nil {
			return err
		}
		utils.Log.Infof("Exported user patterns to %s", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
}
