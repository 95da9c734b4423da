// Package gallery sirve la galería estática de imágenes por categoría.
// Es una tabla en memoria a propósito: las secciones "galeria*" del
// contenido dinámico no salen de la base de datos sino de aquí.
package gallery

import "strings"

// SectionPrefix marca las secciones de contenido que se sirven desde
// esta tabla en lugar de la base de datos.
const SectionPrefix = "galeria"

// Image es una entrada de la galería.
type Image struct {
	URL string `json:"imageUrl"`
	Alt string `json:"alt"`
}

var byCategory = map[string][]Image{
	"GraphicDesign": {
		{URL: "/img/gallery/graphic-design/cartel-festival.webp", Alt: "Cartel para festival de música"},
		{URL: "/img/gallery/graphic-design/identidad-cafeteria.webp", Alt: "Identidad visual para cafetería"},
		{URL: "/img/gallery/graphic-design/portada-vinilo.webp", Alt: "Portada de vinilo ilustrada"},
		{URL: "/img/gallery/graphic-design/flyer-exposicion.webp", Alt: "Flyer de exposición colectiva"},
	},
	"CustomClothing": {
		{URL: "/img/gallery/custom-clothing/chaqueta-vaquera.webp", Alt: "Chaqueta vaquera pintada a mano"},
		{URL: "/img/gallery/custom-clothing/camiseta-serigrafia.webp", Alt: "Camiseta con serigrafía original"},
		{URL: "/img/gallery/custom-clothing/zapatillas-custom.webp", Alt: "Zapatillas personalizadas"},
		{URL: "/img/gallery/custom-clothing/sudadera-bordada.webp", Alt: "Sudadera con bordado"},
	},
	"Murals": {
		{URL: "/img/gallery/murals/mural-local.webp", Alt: "Mural interior para local comercial"},
		{URL: "/img/gallery/murals/mural-fachada.webp", Alt: "Mural de fachada"},
		{URL: "/img/gallery/murals/mural-infantil.webp", Alt: "Mural para habitación infantil"},
	},
}

// ForCategory devuelve la galería de una categoría del catálogo.
func ForCategory(category string) ([]Image, bool) {
	images, ok := byCategory[category]
	return images, ok
}

// ForSection resuelve una sección de contenido "galeria<Categoria>"
// contra la tabla estática. Devuelve false si la sección no empieza por
// el prefijo o la categoría no existe.
func ForSection(section string) ([]Image, bool) {
	if !strings.HasPrefix(section, SectionPrefix) {
		return nil, false
	}
	category := strings.TrimPrefix(section, SectionPrefix)
	return ForCategory(category)
}

// IsGallerySection indica si la sección debe servirse desde la tabla
// estática aunque la categoría no resuelva.
func IsGallerySection(section string) bool {
	return strings.HasPrefix(section, SectionPrefix)
}
