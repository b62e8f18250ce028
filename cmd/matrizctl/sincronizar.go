package main

import (
	"errors"

	"github.com/spf13/cobra"
)

type sincronizarFlags struct {
	empresa      string
	todas        bool
	concurrencia int
}

func newSincronizarCmd(c *cli) *cobra.Command {
	var flags sincronizarFlags
	cmd := &cobra.Command{
		Use:   "sincronizar",
		Short: "Crea los registros de cumplimiento de las normas que aplican a una o todas las empresas",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if flags.todas == (flags.empresa != "") {
				return withCode(exitUsage, errors.New("indique --empresa o --todas"))
			}
			if flags.todas {
				out, err := c.app.Matriz.SyncAll(cmd.Context(), flags.concurrencia)
				if err != nil {
					return err
				}
				return c.printJSON(out)
			}
			out, err := c.app.Matriz.Sync(cmd.Context(), flags.empresa)
			if err != nil {
				return err
			}
			return c.printJSON(out)
		},
	}
	cmd.Flags().StringVar(&flags.empresa, "empresa", "", "ID de la empresa")
	cmd.Flags().BoolVar(&flags.todas, "todas", false, "Sincronizar todas las empresas activas")
	cmd.Flags().IntVar(&flags.concurrencia, "concurrencia", 4, "Empresas en paralelo con --todas")
	return cmd
}

func newEstadisticasCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "estadisticas <empresa-id>",
		Short: "Estadísticas de cumplimiento de la empresa",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.app.Matriz.Estadisticas(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return c.printJSON(out)
		},
	}
}
