package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Bernah2o/sst-matriz-legal/internal/domain/repository"
)

func newExportarCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exportar",
		Short: "Exporta el catálogo o la matriz de una empresa",
	}
	cmd.AddCommand(newExportarCatalogoCmd(c), newExportarEmpresaCmd(c))
	return cmd
}

type catalogoFlags struct {
	out           string
	clasificacion string
	sector        string
}

func newExportarCatalogoCmd(c *cli) *cobra.Command {
	var flags catalogoFlags
	cmd := &cobra.Command{
		Use:   "catalogo",
		Short: "Catálogo de normas en Excel (reimportable)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var buf bytes.Buffer
			filter := repository.NormaFilter{Clasificacion: flags.clasificacion, SectorEconomicoID: flags.sector}
			if err := c.app.Importacion.ExportarCatalogo(cmd.Context(), filter, &buf); err != nil {
				return err
			}
			return c.escribir(flags.out, buf.Bytes())
		},
	}
	cmd.Flags().StringVar(&flags.out, "out", "catalogo_normas.xlsx", "Archivo de salida")
	cmd.Flags().StringVar(&flags.clasificacion, "clasificacion", "", "Filtrar por clasificación")
	cmd.Flags().StringVar(&flags.sector, "sector", "", "Filtrar por sector económico")
	return cmd
}

type empresaFlags struct {
	out                 string
	pdf                 bool
	incluirNoAplicables bool
}

func newExportarEmpresaCmd(c *cli) *cobra.Command {
	var flags empresaFlags
	cmd := &cobra.Command{
		Use:   "empresa <empresa-id>",
		Short: "Matriz legal de la empresa en Excel o reporte PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				data   []byte
				nombre string
			)
			if flags.pdf {
				doc, n, err := c.app.Matriz.ReportePDF(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				data, nombre = doc, n
			} else {
				var buf bytes.Buffer
				n, err := c.app.Matriz.ExportarEmpresa(cmd.Context(), args[0], flags.incluirNoAplicables, &buf)
				if err != nil {
					return err
				}
				data, nombre = buf.Bytes(), n
			}
			out := flags.out
			if out == "" {
				out = nombre
			}
			return c.escribir(out, data)
		},
	}
	cmd.Flags().StringVar(&flags.out, "out", "", "Archivo de salida (por defecto el nombre sugerido)")
	cmd.Flags().BoolVar(&flags.pdf, "pdf", false, "Generar el reporte PDF en lugar del Excel")
	cmd.Flags().BoolVar(&flags.incluirNoAplicables, "incluir-no-aplicables", false, "Incluir normas que ya no aplican")
	return cmd
}

func (c *cli) escribir(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("escribir %s: %w", path, err)
	}
	fmt.Fprintf(c.out, "%s (%d bytes)\n", path, len(data))
	return nil
}
