package importacion

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/Bernah2o/sst-matriz-legal/internal/domain/entity"
)

// Alias tabla encabezado normalizado → campo canónico.
type Alias map[string]string

var aliasBase = map[string][]string{
	CampoClasificacion:   {"clasificacion", "clasificacion de la norma", "tipo de requisito", "categoria"},
	CampoTemaGeneral:     {"tema", "tema principal", "eje tematico"},
	CampoSubtema:         {"subtema", "riesgo especifico", "subtema riesgo", "subtema riesgo especifico", "peligro"},
	CampoAnio:            {"ano", "año", "anio expedicion", "ano expedicion", "year", "vigencia ano"},
	CampoTipoNumeroRaw:   {"norma", "tipo y numero", "tipo numero", "tipo de norma y numero", "norma legal", "requisito legal"},
	CampoTipoNorma:       {"tipo", "tipo de norma", "tipo norma legal"},
	CampoNumeroNorma:     {"numero", "no", "nro", "numero de norma", "n"},
	CampoArticulo:        {"art", "articulos", "articulo aplicable", "articulos aplicables"},
	CampoDescripcion:     {"descripcion", "descripcion de la norma", "titulo", "epigrafe", "nombre norma"},
	CampoExigencias:      {"exigencias", "exigencia", "requisitos", "descripcion del articulo", "descripcion articulo", "que exige", "requisito especifico"},
	CampoAmbito:          {"ambito", "ambito de aplicacion", "alcance"},
	CampoSectorTexto:     {"sector", "sector economico", "sector de aplicacion"},
	CampoExpedidaPor:     {"emisor", "entidad", "entidad que expide", "autoridad", "expide"},
	CampoFechaExpedicion: {"fecha", "fecha de expedicion", "fecha expedicion norma"},
	CampoEstado:          {"estado norma", "estado de la norma", "vigente derogada"},
	CampoInfoAdicional:   {"informacion adicional", "notas", "comentarios"},
	CampoAplicaGeneral:   {"general", "aplica a todos", "aplica todas", "todas las empresas"},
}

// camposValidos conjunto de campos canónicos reconocidos.
func camposValidos() map[string]bool {
	out := make(map[string]bool, len(aliasBase)+len(entity.TodasLasCaracteristicas()))
	for campo := range aliasBase {
		out[campo] = true
	}
	for _, c := range entity.TodasLasCaracteristicas() {
		out[c.ColumnaNorma()] = true
	}
	return out
}

// AliasPorDefecto tabla de alias incorporada. Cada campo canónico también se reconoce por su propio nombre.
func AliasPorDefecto() Alias {
	a := Alias{}
	for campo, alias := range aliasBase {
		a.agregar(campo, campo)
		for _, s := range alias {
			a.agregar(campo, s)
		}
	}
	for _, c := range entity.TodasLasCaracteristicas() {
		etiqueta := NormalizarEncabezado(c.Etiqueta())
		a.agregar(c.ColumnaNorma(), c.ColumnaNorma())
		a.agregar(c.ColumnaNorma(), c.Codigo())
		a.agregar(c.ColumnaNorma(), etiqueta)
		a.agregar(c.ColumnaNorma(), "aplica "+etiqueta)
	}
	return a
}

func (a Alias) agregar(campo, encabezado string) {
	if k := NormalizarEncabezado(encabezado); k != "" {
		a[k] = campo
	}
}

// Resolver devuelve el campo canónico del encabezado, o "" si no está mapeado.
func (a Alias) Resolver(encabezado string) string {
	return a[NormalizarEncabezado(encabezado)]
}

// archivoAlias formato YAML:
//
//	alias:
//	  clasificacion_norma: ["grupo", "familia"]
//	  aplica_teletrabajo: ["trabajo remoto"]
type archivoAlias struct {
	Alias map[string][]string `yaml:"alias"`
}

// CargarAlias lee alias adicionales desde un YAML y los agrega a la tabla por defecto.
// Un campo canónico desconocido es un error de configuración.
func CargarAlias(path string) (Alias, error) {
	a := AliasPorDefecto()
	if path == "" {
		return a, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("leer alias %s: %w", path, err)
	}
	var f archivoAlias
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parsear alias %s: %w", path, err)
	}
	validos := camposValidos()
	campos := make([]string, 0, len(f.Alias))
	for campo := range f.Alias {
		campos = append(campos, campo)
	}
	sort.Strings(campos)
	for _, campo := range campos {
		if !validos[campo] {
			return nil, fmt.Errorf("alias %s: campo desconocido %q", path, campo)
		}
		for _, s := range f.Alias[campo] {
			a.agregar(campo, s)
		}
	}
	return a, nil
}
