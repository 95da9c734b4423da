package models

import (
	"encoding/json"
	"time"
)

// Tipos de bloque de contenido. El tipo determina la forma del payload:
// text no lleva payload, artists lleva una lista de Artist y gallery una
// lista de imágenes.
const (
	ContentKindText    = "text"
	ContentKindArtists = "artists"
	ContentKindGallery = "gallery"
)

// ValidContentKind comprueba que el tipo de bloque es conocido.
func ValidContentKind(kind string) bool {
	switch kind {
	case ContentKindText, ContentKindArtists, ContentKindGallery:
		return true
	}
	return false
}

// Artist es el payload de una sección de tipo artists.
type Artist struct {
	Name string `json:"name"`
	Bio  string `json:"bio"`
}

// Content es un bloque de texto dinámico asociado a una sección de la
// página. La sección es única: hay un solo documento por sección.
type Content struct {
	ID        int64           `json:"id"`
	Section   string          `json:"section"`
	Kind      string          `json:"kind"`
	Title     string          `json:"title"`
	Body      string          `json:"body"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	UpdatedAt time.Time       `json:"updatedAt"`
}
