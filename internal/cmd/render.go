package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/listinglens/dashboard/internal/delivery/page"
	"github.com/listinglens/dashboard/internal/infrastructure/charts"
	"github.com/listinglens/dashboard/internal/infrastructure/csvload"
	"github.com/listinglens/dashboard/internal/usecase"
)

var renderCmd = &cobra.Command{
	Use:   "render <csv>",
	Short: "Render the dashboard for a CSV into a standalone HTML file",
	Long: `Render runs the full pipeline (parse, derive, analyse, chart) and writes
the dashboard page with every chart embedded inline.

Use --out - to write the page to stdout.`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

var (
	renderOut    string
	renderWidth  int
	renderHeight int
)

func init() {
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "dashboard.html", "output file, - for stdout")
	renderCmd.Flags().IntVar(&renderWidth, "width", 640, "chart width in points")
	renderCmd.Flags().IntVar(&renderHeight, "height", 480, "chart height in points")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	upload, f, err := openUpload(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	service := usecase.NewDashboardService(
		csvload.NewParser(),
		charts.NewRenderer(renderWidth, renderHeight),
		nil,
		nil,
		usecase.DashboardServiceConfig{},
	)

	report, err := service.Build(cmd.Context(), upload)
	if err != nil {
		return describe(err)
	}
	view := page.Rendered(report, "")

	if renderOut == "-" {
		return page.Render(cmd.OutOrStdout(), view)
	}

	out, err := os.Create(renderOut)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", renderOut, err)
	}
	if err := page.Render(out, view); err != nil {
		out.Close()
		return fmt.Errorf("failed to write %s: %w", renderOut, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", renderOut, err)
	}

	log.Info().Str("out", renderOut).Int("rows", report.RowCount).Msg("dashboard written")
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d rows, %d categories)\n", renderOut, report.RowCount, len(report.Categories))
	return nil
}
