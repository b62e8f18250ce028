package dto

import "math"

// PageRequest paginación 1-based para listados (page/size como en el frontend).
type PageRequest struct {
	Page int `query:"page"`
	Size int `query:"size"`
}

// DefaultPage aplica valores por defecto y límites. La página se acota para que Offset no desborde.
func (p *PageRequest) DefaultPage(defSize, maxSize int) {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.Size <= 0 {
		p.Size = defSize
	}
	if p.Size > maxSize {
		p.Size = maxSize
	}
	if p.Page > math.MaxInt/p.Size {
		p.Page = math.MaxInt / p.Size
	}
}

// Offset posición del primer elemento de la página.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Size
}

// PaginatedResponse página de resultados.
type PaginatedResponse[T any] struct {
	Items   []T  `json:"items"`
	Total   int  `json:"total"`
	Page    int  `json:"page"`
	Size    int  `json:"size"`
	Pages   int  `json:"pages"`
	HasNext bool `json:"has_next"`
	HasPrev bool `json:"has_prev"`
}

// NewPaginated arma la respuesta con los metadatos calculados.
func NewPaginated[T any](items []T, total int, page PageRequest) PaginatedResponse[T] {
	if items == nil {
		items = []T{}
	}
	pages := 0
	if page.Size > 0 {
		pages = (total + page.Size - 1) / page.Size
	}
	return PaginatedResponse[T]{
		Items:   items,
		Total:   total,
		Page:    page.Page,
		Size:    page.Size,
		Pages:   pages,
		HasNext: page.Page < pages,
		HasPrev: page.Page > 1,
	}
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MessageResponse respuesta simple con mensaje.
type MessageResponse struct {
	Message string `json:"message"`
}
