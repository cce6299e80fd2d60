package cmd

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/listinglens/dashboard/internal/infrastructure/csvload"
	"github.com/listinglens/dashboard/internal/usecase"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories <csv>",
	Short: "List the main categories found in a CSV with row counts",
	Args:  cobra.ExactArgs(1),
	RunE:  runCategories,
}

var categoriesJSON bool // Output as JSON

func init() {
	categoriesCmd.Flags().BoolVar(&categoriesJSON, "json", false, "Output categories as JSON")
	rootCmd.AddCommand(categoriesCmd)
}

type categoryCount struct {
	Category string `json:"category"`
	Rows     int    `json:"rows"`
}

func runCategories(cmd *cobra.Command, args []string) error {
	upload, f, err := openUpload(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	table, err := csvload.NewParser().Parse(upload.Reader)
	if err != nil {
		return describe(err)
	}
	usecase.Derive(table)

	counts := make([]categoryCount, 0)
	for _, dist := range usecase.PriceDistribution(table.Rows) {
		counts = append(counts, categoryCount{Category: dist.Category, Rows: dist.Count})
	}

	if categoriesJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(counts)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CATEGORY\tROWS")
	for _, c := range counts {
		fmt.Fprintf(w, "%s\t%d\n", c.Category, c.Rows)
	}
	return w.Flush()
}
