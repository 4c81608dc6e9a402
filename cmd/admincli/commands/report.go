package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/tienda-admin-api/cmd/admincli/output"
)

const chartWidth = 40

var reportYear int

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Gráficos del dashboard en la terminal",
}

var reportCategoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Ventas por categoría",
	RunE: func(cmd *cobra.Command, _ []string) error {
		out, err := container.Dashboard.GetCategories(cmd.Context())
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		output.Section(w, "Ventas por categoría")
		fmt.Fprint(w, output.BarChart(out.Items, chartWidth))
		fmt.Fprintf(w, "\nTotal: %s\n", out.Total.StringFixed(2))
		return nil
	},
}

var reportMonthlyCmd = &cobra.Command{
	Use:   "monthly",
	Short: "Ventas mensuales de un año",
	Long: `Muestra los 12 meses del año indicado.

Examples:
  admincli report monthly
  admincli report monthly --year 2020`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		out, err := container.Dashboard.GetMonthly(cmd.Context(), reportYear)
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		output.Section(w, fmt.Sprintf("Ventas mensuales %d", out.Year))
		fmt.Fprint(w, output.BarChart(out.Items, chartWidth))
		fmt.Fprintf(w, "\nTotal: %s\n", out.Total.StringFixed(2))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.AddCommand(reportCategoriesCmd, reportMonthlyCmd)

	reportMonthlyCmd.Flags().IntVarP(&reportYear, "year", "y", 0, "Año (default: REPORT_YEAR)")
}
