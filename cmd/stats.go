package cmd

import (
	"context"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/hiddenclip/tubescope/pkg/pattern"
)

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show unit counts per category",
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := loadCatalog(context.Background(), true)
		if err != nil {
			return err
		}

		counts := make(map[string]int)
		total := 0
		for _, u := range pattern.Expand(catalog) {
			cat := u.Category
			if cat == "" {
				cat = "(uncategorized)"
			}
			counts[cat]++
			total++
		}

		cats := make([]string, 0, len(counts))
		for c := range counts {
			cats = append(cats, c)
		}
		sort.Strings(cats)

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "CATEGORY\tUNITS")
		for _, c := range cats {
			fmt.Fprintf(w, "%s\t%d\n", c, counts[c])
		}
		fmt.Fprintf(w, "TOTAL\t%d\n", total)
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
