// Package memory implementa los puertos de persistencia en memoria (protegidos por mutex).
// Se usa en pruebas y con STORAGE_DRIVER=memory; no es persistente.
package memory

import (
	"sync"

	"github.com/Bernah2o/sst-matriz-legal/internal/domain/entity"
)

// Store estado compartido por todos los repositorios en memoria.
type Store struct {
	mu sync.RWMutex

	empresas      map[string]*entity.Empresa
	sectores      map[string]*entity.SectorEconomico
	normas        map[string]*entity.Norma
	claves        map[string]string // clave natural → norma ID
	cumplimientos map[string]*entity.Cumplimiento
	porPar        map[string]string // empresa|norma → cumplimiento ID
	historial     map[string][]*entity.CumplimientoHistorial
	importaciones []*entity.Importacion
}

// NewStore crea un almacenamiento vacío.
func NewStore() *Store {
	return &Store{
		empresas:      make(map[string]*entity.Empresa),
		sectores:      make(map[string]*entity.SectorEconomico),
		normas:        make(map[string]*entity.Norma),
		claves:        make(map[string]string),
		cumplimientos: make(map[string]*entity.Cumplimiento),
		porPar:        make(map[string]string),
		historial:     make(map[string][]*entity.CumplimientoHistorial),
	}
}

// Repos agrupa los repositorios sobre un mismo Store.
type Repos struct {
	Empresas      *EmpresaRepo
	Sectores      *SectorRepo
	Normas        *NormaRepo
	Cumplimientos *CumplimientoRepo
	Importaciones *ImportacionRepo
	Tx            *TxRunner
}

// NewRepos construye todos los repositorios en memoria sobre un Store nuevo.
func NewRepos() *Repos {
	s := NewStore()
	return &Repos{
		Empresas:      &EmpresaRepo{s: s},
		Sectores:      &SectorRepo{s: s},
		Normas:        &NormaRepo{s: s},
		Cumplimientos: &CumplimientoRepo{s: s},
		Importaciones: &ImportacionRepo{s: s},
		Tx:            &TxRunner{s: s},
	}
}

func par(empresaID, normaID string) string { return empresaID + "|" + normaID }
