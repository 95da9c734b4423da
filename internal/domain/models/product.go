package models

import "time"

// Categorías del catálogo. Coinciden con las claves de la galería estática.
const (
	CategoryGraphicDesign  = "GraphicDesign"
	CategoryCustomClothing = "CustomClothing"
	CategoryMurals         = "Murals"
)

// ValidCategory comprueba que la categoría es una de las tres conocidas.
func ValidCategory(category string) bool {
	switch category {
	case CategoryGraphicDesign, CategoryCustomClothing, CategoryMurals:
		return true
	}
	return false
}

// Product representa un artículo del catálogo.
type Product struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Price       float64   `json:"price"`
	ImageURL    string    `json:"imageUrl"`
	Description string    `json:"description"`
	Details     []string  `json:"details"`
	CreatedAt   time.Time `json:"createdAt"`
}
