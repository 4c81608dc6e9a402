package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/tienda-admin-api/cmd/admincli/output"
)

var (
	exportOut      string
	exportEncoding string
	exportYear     int
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Exportar ventas",
}

var exportCSVCmd = &cobra.Command{
	Use:   "csv",
	Short: "Exportar las ventas a CSV (una fila por línea de orden)",
	Long: `Exporta las ventas a CSV con columnas fijas.

Examples:
  admincli export csv --out ventas.csv
  admincli export csv --encoding windows-1252 --out ventas-excel.csv
  admincli export csv > ventas.csv`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withOutput(cmd, exportOut, func(w io.Writer) error {
			enc, err := container.Export.CSV(cmd.Context(), w, exportEncoding)
			if err == nil && exportOut != "" {
				output.Success(cmd.ErrOrStderr(), "CSV escrito en %s (%s)", exportOut, enc)
			}
			return err
		})
	},
}

var exportPDFCmd = &cobra.Command{
	Use:   "pdf",
	Short: "Generar el reporte de ventas en PDF",
	Long: `Genera el reporte de ventas del año indicado.

Examples:
  admincli export pdf --out reporte.pdf
  admincli export pdf --year 2020 --out reporte-2020.pdf`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if exportOut == "" {
			return fmt.Errorf("--out es obligatorio para el PDF")
		}
		data, err := container.Export.PDF(cmd.Context(), exportYear)
		if err != nil {
			return err
		}
		if err := os.WriteFile(exportOut, data, 0o644); err != nil {
			return fmt.Errorf("escribir %s: %w", exportOut, err)
		}
		output.Success(cmd.ErrOrStderr(), "PDF escrito en %s (%d bytes)", exportOut, len(data))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.AddCommand(exportCSVCmd, exportPDFCmd)

	exportCSVCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Archivo de salida (default: stdout)")
	exportCSVCmd.Flags().StringVarP(&exportEncoding, "encoding", "e", "utf-8", "utf-8 | windows-1252")
	exportPDFCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Archivo de salida")
	exportPDFCmd.Flags().IntVarP(&exportYear, "year", "y", 0, "Año del reporte (default: REPORT_YEAR)")
}

// withOutput abre el destino (archivo o stdout) y lo cierra al terminar. Si fn falla
// el archivo parcial se elimina.
func withOutput(cmd *cobra.Command, path string, fn func(io.Writer) error) error {
	if path == "" {
		bw := bufio.NewWriter(cmd.OutOrStdout())
		if err := fn(bw); err != nil {
			return err
		}
		return bw.Flush()
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(f)
	err = fn(bw)
	if err == nil {
		err = bw.Flush()
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
	}
	return err
}
