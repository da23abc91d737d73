package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hiddenclip/tubescope/internal/utils"
	"github.com/hiddenclip/tubescope/pkg/pattern"
)

// rmCmd represents the rm command
var rmCmd = &cobra.Command{
	Use:   "rm",
	Short: "Remove a user pattern (or one of its specifiers) from the store",
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		ageFlag, _ := cmd.Flags().GetString("age")
		specifier, _ := cmd.Flags().GetString("specifier")

		age, ok := pattern.ParseAge(ageFlag)
		if !ok {
			return fmt.Errorf("invalid age %q (want any, new or old)", ageFlag)
		}

		db, err := openStore(true)
		if err != nil {
			return err
		}
		defer db.Close()

		ctx := context.Background()
		var removed bool
		if cmd.Flags().Changed("specifier") {
			removed, err = db.RemoveSpecifier(ctx, name, age, specifier)
		} else {
			removed, err = db.Remove(ctx, name, age)
		}
		if err != nil {
			return err
		}
		if !removed {
			return fmt.Errorf("no stored pattern matches name %q", name)
		}
		utils.Log.Infof("Removed pattern %q", name)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(rmCmd)

	rmCmd.Flags().String("name", "", "Base text of the pattern to remove")
	rmCmd.Flags().StringP("age", "a", "any", "Age hint of the stored pattern")
	rmCmd.Flags().String("specifier", "", "Only remove this specifier, keep the rest")
	_ = rmCmd.MarkFlagRequired("name")
}
