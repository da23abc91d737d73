package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hiddenclip/tubescope/internal/utils"
	"github.com/hiddenclip/tubescope/pkg/engine"
	"github.com/hiddenclip/tubescope/pkg/pattern"
	"github.com/hiddenclip/tubescope/pkg/picker"
	"github.com/hiddenclip/tubescope/pkg/random"
)

// findCmd represents the find command
var findCmd = &cobra.Command{
	Use:   "find",
	Short: "Pick a random pattern and print its search URL",
	RunE: func(cmd *cobra.Command, args []string) error {
		categoriesFlag, _ := cmd.Flags().GetString("categories")
		namesFlag, _ := cmd.Flags().GetString("names")
		ageFlag, _ := cmd.Flags().GetString("age")
		dateFlag, _ := cmd.Flags().GetString("date")
		count, _ := cmd.Flags().GetInt("count")
		seed, _ := cmd.Flags().GetUint64("seed")
		outputFlags, _ := cmd.Flags().GetString("output")
		delimiter, _ := cmd.Flags().GetString("delimiter")

		age, ok := pattern.ParseAge(ageFlag)
		if !ok {
			return fmt.Errorf("invalid age %q (want any, new or old)", ageFlag)
		}

		override := pattern.ParseDate(dateFlag)
		if dateFlag != "" && override == nil {
			return fmt.Errorf("invalid date %q (want YYYY-MM-DD)", dateFlag)
		}

		catalog, err := loadCatalog(context.Background(), true)
		if err != nil {
			return err
		}

		fs := picker.NewFilterState(
			utils.SplitCSV(categoriesFlag),
			resolveNameKeys(catalog, utils.SplitCSV(namesFlag)),
			age,
		)

		opts := engine.Options{
			BaseURL:   viper.GetString("search.base_url"),
			SortParam: viper.GetString("search.sort_param"),
			Override:  override,
		}
		if seed != 0 {
			opts.Rand = random.NewSeeded(seed)
		}

		for i := 0; i < count; i++ {
			res, err := engine.Find(catalog, fs, opts)
			if err != nil {
				if errors.Is(err, picker.ErrNoEligible) {
					return errors.New("no matches - adjust your filters")
				}
				return err
			}
			fmt.Println(findLine(res, outputFlags, delimiter))
		}
		return nil
	},
}

func findLine(r engine.Result, outputFlags, delimiter string) string {
	var line string
	for _, f := range outputFlags {
		switch f {
		case 'u':
			line += r.URL + delimiter
		case 't':
			line += r.Text + delimiter
		case 'q':
			line += r.Qualifier + delimiter
		case 'n':
			line += r.Unit.Name + delimiter
		case 'c':
			line += r.Unit.Category + delimiter
		default:
			utils.Log.Fatal("Invalid output flag")
		}
	}
	return strings.TrimSuffix(line, delimiter)
}

func init() {
	rootCmd.AddCommand(findCmd)

	findCmd.Flags().StringP("categories", "c", "", "Active categories, comma separated (empty: all)")
	findCmd.Flags().StringP("names", "n", "", "Active pattern names or name|specifier keys, comma separated (empty: all)")
	findCmd.Flags().StringP("age", "a", "any", "Age mode: any, new or old")
	findCmd.Flags().String("date", "", "Render with this date (YYYY-MM-DD) instead of a random one")
	findCmd.Flags().Int("count", 1, "How many URLs to produce")
	findCmd.Flags().Uint64("seed", 0, "Seed the randomizer for a reproducible run")
	findCmd.Flags().StringP("output", "o", "u", "Output flags: u=url, t=text, q=qualifier, n=name, c=category")
	findCmd.Flags().StringP("delimiter", "d", " ", "Delimiter between output fields")
}
