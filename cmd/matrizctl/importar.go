package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

func newPreviewCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "preview <archivo>",
		Short: "Analiza un archivo de normas (.xlsx o .csv) sin escribir",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := leer(args[0])
			if err != nil {
				return err
			}
			out, err := c.app.Importacion.Preview(cmd.Context(), data)
			if err != nil {
				return err
			}
			return c.printJSON(out)
		},
	}
}

type importarFlags struct {
	sobrescribir bool
	usuario      string
}

func newImportarCmd(c *cli) *cobra.Command {
	var flags importarFlags
	cmd := &cobra.Command{
		Use:   "importar <archivo>",
		Short: "Importa normas al catálogo; las filas inválidas se reportan y el resto se escribe",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := leer(args[0])
			if err != nil {
				return err
			}
			out, err := c.app.Importacion.Commit(cmd.Context(), filepath.Base(args[0]), data, flags.sobrescribir, flags.usuario)
			if err != nil {
				return err
			}
			return c.printJSON(out)
		},
	}
	cmd.Flags().BoolVar(&flags.sobrescribir, "sobrescribir", false, "Actualizar normas que ya existen en el catálogo")
	cmd.Flags().StringVar(&flags.usuario, "usuario", "", "Identidad registrada como creado_por")
	return cmd
}

func leer(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, withCode(exitUsage, fmt.Errorf("leer %s: %w", path, err))
	}
	return data, nil
}
