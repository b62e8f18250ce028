// Package cumplimiento contiene cálculos puros sobre registros de cumplimiento.
package cumplimiento

import "github.com/shopspring/decimal"

var cien = decimal.NewFromInt(100)

// Porcentaje calcula cumple / total * 100 redondeado a 2 decimales.
// Con total <= 0 devuelve 0; el resultado siempre queda en [0, 100].
func Porcentaje(cumple, total int) decimal.Decimal {
	if total <= 0 || cumple <= 0 {
		return decimal.Zero
	}
	if cumple > total {
		cumple = total
	}
	return decimal.NewFromInt(int64(cumple)).Mul(cien).Div(decimal.NewFromInt(int64(total))).Round(2)
}
