package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hiddenclip/tubescope/internal/utils"
	"github.com/hiddenclip/tubescope/pkg/pattern"
)

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a user pattern to the local store",
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		specifiers, _ := cmd.Flags().GetStringArray("specifier")
		category, _ := cmd.Flags().GetString("category")
		ageFlag, _ := cmd.Flags().GetString("age")
		years, _ := cmd.Flags().GetIntSlice("years")
		rangeFlag, _ := cmd.Flags().GetString("range")
		beforeFlag, _ := cmd.Flags().GetString("before")
		afterFlag, _ := cmd.Flags().GetString("after")

		age, ok := pattern.ParseAge(ageFlag)
		if !ok {
			return fmt.Errorf("invalid age %q (want any, new or old)", ageFlag)
		}

		p := pattern.Pattern{
			Name:        name,
			Specifiers:  specifiers,
			Category:    category,
			Age:         age,
			UserCreated: true,
		}
		p.Constraints.Years = years
		if rangeFlag != "" {
			p.Constraints.Range = pattern.ParseRange(rangeFlag)
			if p.Constraints.Range == nil {
				utils.Log.Warnf("Ignoring malformed range %q", rangeFlag)
			}
		}
		if beforeFlag != "" {
			p.Constraints.Before = pattern.ParseDate(beforeFlag)
			if p.Constraints.Before == nil {
				utils.Log.Warnf("Ignoring malformed before date %q", beforeFlag)
			}
		}
		if afterFlag != "" {
			p.Constraints.After = pattern.ParseDate(afterFlag)
			if p.Constraints.After == nil {
				utils.Log.Warnf("Ignoring malformed after date %q", afterFlag)
			}
		}

		if !p.Valid() {
			return errors.New("a pattern needs --name or at least one non-empty --specifier")
		}

		db, err := openStore(false)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := db.Upsert(context.Background(), p); err != nil {
			return err
		}
		utils.Log.Infof("Stored pattern %q", p.Name)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(addCmd)

	addCmd.Flags().String("name", "", "Base text of the pattern")
	addCmd.Flags().StringArray("specifier", nil, "Template specifier (repeatable)")
	addCmd.Flags().String("category", "", "Category label")
	addCmd.Flags().StringP("age", "a", "any", "Age hint: any, new or old")
	addCmd.Flags().IntSlice("years", nil, "Admissible years, comma separated")
	addCmd.Flags().String("range", "", "Numeric-run bound as min-max (hex if letters present)")
	addCmd.Flags().String("before", "", "Explicit before date bound (YYYY-MM-DD)")
	addCmd.Flags().String("after", "", "Explicit after date bound (YYYY-MM-DD)")
}
