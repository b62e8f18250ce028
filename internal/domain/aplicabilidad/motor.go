// Package aplicabilidad contiene el motor que decide qué normas del catálogo aplican a una empresa
// a partir de su perfil de características. Funciones puras: sin estado ni efectos secundarios,
// seguras para invocarse en paralelo para distintas empresas.
package aplicabilidad

import "github.com/Bernah2o/sst-matriz-legal/internal/domain/entity"

// Evaluate devuelve true si la norma es general o si comparte al menos una característica con la empresa.
// Una norma sin ninguna bandera nunca aplica.
func Evaluate(empresa *entity.Empresa, norma *entity.Norma) bool {
	if norma.AplicaGeneral {
		return true
	}
	return norma.Aplica.Comparte(empresa.Caracteristicas)
}

// Resultado conjunto aplicable y normas marcadas por calidad de datos.
type Resultado struct {
	Aplicables map[string]struct{}
	// SinPredicado normas no derogadas sin ninguna bandera de aplicabilidad (no se incluyen).
	SinPredicado []string
}

// Contiene informa si la norma está en el conjunto aplicable.
func (r Resultado) Contiene(normaID string) bool {
	_, ok := r.Aplicables[normaID]
	return ok
}

// ComputeApplicableSet evalúa todas las normas no derogadas del catálogo contra la empresa.
func ComputeApplicableSet(empresa *entity.Empresa, catalogo []*entity.Norma) Resultado {
	res := Resultado{Aplicables: make(map[string]struct{}, len(catalogo))}
	for _, n := range catalogo {
		if n == nil || n.Estado == entity.EstadoNormaDerogada {
			continue
		}
		if n.SinPredicado() {
			res.SinPredicado = append(res.SinPredicado, n.ID)
			continue
		}
		if Evaluate(empresa, n) {
			res.Aplicables[n.ID] = struct{}{}
		}
	}
	return res
}

// Motivos lista las características compartidas que hacen aplicable la norma (vacío si es general).
func Motivos(empresa *entity.Empresa, norma *entity.Norma) []entity.Caracteristica {
	return (norma.Aplica & empresa.Caracteristicas).Lista()
}
