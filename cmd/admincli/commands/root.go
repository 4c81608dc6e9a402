// Package commands implementa los comandos de admincli.
package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/tienda-admin-api/internal/app"
	"github.com/jhoicas/tienda-admin-api/pkg/config"
	"github.com/jhoicas/tienda-admin-api/pkg/logger"
)

var (
	// Flags globales
	verbose bool

	container *app.Container
)

// rootCmd comando base
var rootCmd = &cobra.Command{
	Use:   "admincli",
	Short: "Administración de la tienda desde la terminal",
	Long: `admincli opera sobre la misma caché local que la API HTTP:
exporta ventas a CSV o PDF, muestra los gráficos del dashboard en la terminal
y administra las colecciones cacheadas.

La configuración se lee de las mismas variables de entorno que la API
(CACHE_DRIVER, CACHE_DIR, REMOTE_BASE_URL, REPORT_YEAR, ...).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		level := "warn"
		if verbose {
			level = "debug"
		}
		log := logger.New(logger.Config{Env: cfg.App.Env, Level: level, Service: "admincli", Out: os.Stderr})
		container, err = app.New(cmd.Context(), cfg, log)
		if err != nil {
			return fmt.Errorf("inicializar: %w", err)
		}
		return nil
	},
}

// Execute ejecuta el comando raíz.
func Execute() {
	if err := run(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run cierra el contenedor también cuando el comando falla: cobra no ejecuta
// PersistentPostRun si RunE devuelve error.
func run(ctx context.Context, args []string) error {
	rootCmd.SetArgs(args)
	defer closeContainer()
	return rootCmd.ExecuteContext(ctx)
}

func closeContainer() {
	if container != nil {
		container.Close()
		container = nil
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Logs de depuración en stderr")
}
