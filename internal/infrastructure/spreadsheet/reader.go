// Package spreadsheet lee y escribe hojas de cálculo (xlsx con excelize, csv con encoding/csv).
package spreadsheet

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

var (
	firmaZip = []byte("PK\x03\x04")
	firmaOLE = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}
	bomUTF8  = []byte{0xEF, 0xBB, 0xBF}
)

// ErrFormato el contenido no es xlsx ni csv legible.
var ErrFormato = errors.New("formato de archivo no soportado")

// Reader detecta el formato por contenido: xlsx (zip) o csv. Implementa importacion.TablaReader.
type Reader struct{}

// NewReader construye el lector.
func NewReader() *Reader { return &Reader{} }

// Read devuelve las filas de la primera hoja; la primera fila es el encabezado.
func (r *Reader) Read(data []byte) ([][]string, error) {
	switch {
	case bytes.HasPrefix(data, firmaZip):
		return leerXLSX(data)
	case bytes.HasPrefix(data, firmaOLE):
		return nil, fmt.Errorf("xls (Excel 97-2003): %w, guárdelo como .xlsx", ErrFormato)
	case bytes.IndexByte(data, 0) >= 0:
		return nil, fmt.Errorf("contenido binario: %w", ErrFormato)
	default:
		return leerCSV(data)
	}
}

func leerXLSX(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("abrir xlsx: %w", err)
	}
	defer f.Close()
	hojas := f.GetSheetList()
	if len(hojas) == 0 {
		return nil, fmt.Errorf("xlsx sin hojas: %w", ErrFormato)
	}
	filas, err := f.GetRows(hojas[0])
	if err != nil {
		return nil, fmt.Errorf("leer hoja %s: %w", hojas[0], err)
	}
	return filas, nil
}

func leerCSV(data []byte) ([][]string, error) {
	data = bytes.TrimPrefix(data, bomUTF8)
	var src io.Reader = bytes.NewReader(data)
	if !utf8.Valid(data) {
		// Excel en Windows guarda CSV en cp1252.
		src = transform.NewReader(src, charmap.Windows1252.NewDecoder())
	}
	cr := csv.NewReader(src)
	cr.Comma = separador(data)
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1
	filas, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("leer csv: %w", err)
	}
	return filas, nil
}

// separador elige ';' o ',' según cuál aparece más en la primera línea fuera de comillas.
func separador(data []byte) rune {
	comas, puntoYComa := 0, 0
	entreComillas := false
	for _, b := range data {
		if b == '\n' && !entreComillas {
			break
		}
		switch b {
		case '"':
			entreComillas = !entreComillas
		case ',':
			if !entreComillas {
				comas++
			}
		case ';':
			if !entreComillas {
				puntoYComa++
			}
		}
	}
	if puntoYComa > comas {
		return ';'
	}
	return ','
}
