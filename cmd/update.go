package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hiddenclip/tubescope/internal/utils"
	"github.com/hiddenclip/tubescope/pkg/remote"
)

// updateCmd represents the update command
var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Download the community catalog into the local cache",
	RunE: func(cmd *cobra.Command, args []string) error {
		url, _ := cmd.Flags().GetString("url")
		if url == "" {
			url = viper.GetString("catalog.url")
		}

		patterns, skipped, err := remote.Fetch(url)
		if err != nil {
			return err
		}
		if skipped > 0 {
			utils.Log.Warnf("Skipped %d invalid record(s) in the remote catalog", skipped)
		}

		path := catalogCachePath()
		if err := remote.SaveCache(path, patterns); err != nil {
			return err
		}
		fmt.Printf("Cached %d pattern(s) from %s to %s\n", len(patterns), url, path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(updateCmd)
	updateCmd.Flags().String("url", "", "Catalog URL (default from config catalog.url)")
}
