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

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List every selectable pattern unit",
	RunE: func(cmd *cobra.Command, args []string) error {
		categoriesOnly, _ := cmd.Flags().GetBool("categories")

		catalog, err := loadCatalog(context.Background(), true)
		if err != nil {
			return err
		}

		if categoriesOnly {
			cats := pattern.Categories(catalog)
			sort.Strings(cats)
			for _, c := range cats {
				fmt.Println(c)
			}
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tSPECIFIER\tCATEGORY\tAGE\tCONSTRAINTS\tSOURCE")
		for _, u := range pattern.Expand(catalog) {
			age := string(u.Age)
			if age == "" {
				age = "any"
			}
			source := "builtin"
			if u.UserCreated {
				source = "user"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				u.Name, u.Specifier, u.Category, age, u.Constraints.String(), source)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().Bool("categories", false, "Only print the distinct category names")
}
