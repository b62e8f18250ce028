package spreadsheet

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const maxNombreHoja = 31

// XLSXWriter genera un libro xlsx de una hoja con encabezado en negrita y paneles congelados.
// Implementa matriz.HojaWriter e importacion.HojaWriter.
type XLSXWriter struct{}

// NewXLSXWriter construye el escritor.
func NewXLSXWriter() *XLSXWriter { return &XLSXWriter{} }

func (XLSXWriter) Write(w io.Writer, hoja string, filas [][]string) error {
	f := excelize.NewFile()
	defer f.Close()

	hoja = nombreHoja(hoja)
	if err := f.SetSheetName(f.GetSheetName(0), hoja); err != nil {
		return fmt.Errorf("nombrar hoja: %w", err)
	}
	columnas := 0
	for i, fila := range filas {
		celda, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(hoja, celda, &fila); err != nil {
			return fmt.Errorf("fila %d: %w", i+1, err)
		}
		columnas = max(columnas, len(fila))
	}
	if len(filas) == 0 || columnas == 0 {
		return f.Write(w)
	}

	ultima, err := excelize.CoordinatesToCellName(columnas, 1)
	if err != nil {
		return err
	}
	estilo, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
	})
	if err != nil {
		return fmt.Errorf("estilo encabezado: %w", err)
	}
	if err := f.SetCellStyle(hoja, "A1", ultima, estilo); err != nil {
		return err
	}
	if err := f.SetPanes(hoja, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("congelar encabezado: %w", err)
	}
	colFinal, err := excelize.ColumnNumberToName(columnas)
	if err != nil {
		return err
	}
	if err := f.SetColWidth(hoja, "A", colFinal, 22); err != nil {
		return err
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("escribir xlsx: %w", err)
	}
	return nil
}

// nombreHoja recorta al máximo de Excel y reemplaza caracteres prohibidos.
func nombreHoja(s string) string {
	if s == "" {
		return "Hoja1"
	}
	out := make([]rune, 0, len(s))
	for _, r := range s {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			r = '_'
		}
		out = append(out, r)
	}
	if len(out) > maxNombreHoja {
		out = out[:maxNombreHoja]
	}
	return string(out)
}
