package commands

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jhoicas/tienda-admin-api/cmd/admincli/output"
	"github.com/jhoicas/tienda-admin-api/internal/application/dto"
)

const allCollections = "all"

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Administrar la caché local",
}

var cacheStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Estado de las colecciones cacheadas",
	RunE: func(cmd *cobra.Command, _ []string) error {
		printInfo(cmd, container.Cache.Info())
		return nil
	},
}

var cacheRefreshCmd = &cobra.Command{
	Use:   "refresh <orders|products|users|all>",
	Short: "Recargar una colección desde la API remota (descarta cambios locales)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := strings.ToLower(args[0])
		if name == allCollections {
			infos, err := container.Cache.RefreshAll(cmd.Context())
			if err != nil {
				return err
			}
			printInfo(cmd, infos)
			return nil
		}
		info, err := container.Cache.Refresh(cmd.Context(), name)
		if err != nil {
			return err
		}
		output.Success(cmd.OutOrStdout(), "%s: %d items (versión %d)", info.Collection, info.Items, info.Version)
		return nil
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear <orders|products|users|all>",
	Short: "Borrar el snapshot de una colección",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		names := []string{strings.ToLower(args[0])}
		if names[0] == allCollections {
			names = container.Cache.Collections()
		}
		for _, name := range names {
			if err := container.Cache.Clear(cmd.Context(), name); err != nil {
				return err
			}
			output.Success(cmd.OutOrStdout(), "%s: snapshot borrado", name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cacheStatusCmd, cacheRefreshCmd, cacheClearCmd)
}

func printInfo(cmd *cobra.Command, infos []dto.CacheInfoDTO) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "COLECCIÓN\tCARGADA\tITEMS\tVERSIÓN\tGUARDADO")
	for _, i := range infos {
		saved := "-"
		if !i.SavedAt.IsZero() {
			saved = i.SavedAt.Local().Format("2006-01-02 15:04:05")
		}
		fmt.Fprintf(w, "%s\t%t\t%d\t%d\t%s\n", i.Collection, i.Loaded, i.Items, i.Version, saved)
	}
	_ = w.Flush()
}
