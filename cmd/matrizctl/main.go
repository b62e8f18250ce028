// matrizctl tareas de operación de la matriz legal sin pasar por la API: importar el catálogo,
// sincronizar empresas, consultar estadísticas y exportar.
//
// Usa la misma configuración que el servidor (variables de entorno o .env).
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Bernah2o/sst-matriz-legal/internal/bootstrap"
	"github.com/Bernah2o/sst-matriz-legal/pkg/config"
	"github.com/Bernah2o/sst-matriz-legal/pkg/logger"
)

// Códigos de salida.
const (
	exitError  = 1
	exitUsage  = 2
	exitConfig = 3
)

// exitErr lleva el código de salida por el camino de errores de cobra.
type exitErr struct {
	code int
	err  error
}

func (e *exitErr) Error() string { return e.err.Error() }
func (e *exitErr) Unwrap() error { return e.err }

func withCode(code int, err error) error {
	return &exitErr{code: code, err: err}
}

// opener construye los servicios; los tests lo reemplazan por uno en memoria.
type opener func(ctx context.Context) (*bootstrap.App, error)

func abrirDesdeEntorno(ctx context.Context) (*bootstrap.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, App: "matrizctl", Out: os.Stderr})
	return bootstrap.New(ctx, cfg, log.Zerolog())
}

// cli estado compartido por los subcomandos.
type cli struct {
	open opener
	out  io.Writer
	app  *bootstrap.App
}

func newRootCmd(open opener, out io.Writer) *cobra.Command {
	c := &cli{open: open, out: out}
	root := &cobra.Command{
		Use:           "matrizctl",
		Short:         "Operación de la matriz legal SST",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			app, err := c.open(cmd.Context())
			if err != nil {
				return withCode(exitConfig, fmt.Errorf("inicializar: %w", err))
			}
			c.app = app
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if c.app != nil {
				c.app.Close()
			}
		},
	}
	root.AddCommand(
		newPreviewCmd(c),
		newImportarCmd(c),
		newSincronizarCmd(c),
		newEstadisticasCmd(c),
		newExportarCmd(c),
	)
	return root
}

// printJSON escribe v indentado en la salida del comando.
func (c *cli) printJSON(v any) error {
	enc := json.NewEncoder(c.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func main() {
	root := newRootCmd(abrirDesdeEntorno, os.Stdout)
	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		var ee *exitErr
		if errors.As(err, &ee) {
			os.Exit(ee.code)
		}
		os.Exit(exitError)
	}
}
