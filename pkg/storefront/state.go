package storefront

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
)

// Temas de la interfaz.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// ProductSnapshot es la copia del producto que viaja con cada línea del
// carrito. Si el precio cambia en el catálogo, la línea conserva el que
// vio el usuario; el servidor recalcula el total real en el checkout.
type ProductSnapshot struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	ImageURL string  `json:"imageUrl"`
}

// CartLine es una línea del carrito.
type CartLine struct {
	Product  ProductSnapshot `json:"product"`
	Quantity int             `json:"quantity"`
}

type stateData struct {
	Token string     `json:"token,omitempty"`
	User  *User      `json:"user,omitempty"`
	Cart  []CartLine `json:"cart,omitempty"`
	Theme string     `json:"theme,omitempty"`
}

// State guarda sesión, carrito y tema en un único fichero JSON, el
// equivalente al localStorage del navegador. Todos los métodos son
// seguros para uso concurrente; los mutadores persisten en cada cambio.
type State struct {
	path string

	mu   sync.Mutex
	data stateData
}

// NewState carga el estado desde path, o arranca vacío si el fichero no
// existe todavía.
func NewState(path string) (*State, error) {
	const op = "storefront.NewState"

	s := &State{path: path}

	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: failed to read state file: %w", op, err)
	}
	if err := json.Unmarshal(raw, &s.data); err != nil {
		return nil, fmt.Errorf("%s: failed to decode state file: %w", op, err)
	}
	return s, nil
}

// save escribe el estado en disco. El llamante debe tener el mutex.
func (s *State) save() error {
	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0o600); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}
	return nil
}

// SetSession guarda token y usuario de la sesión.
func (s *State) SetSession(token string, user User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data.Token = token
	s.data.User = &user
	return s.save()
}

// ClearSession borra token y usuario; el carrito y el tema se conservan.
func (s *State) ClearSession() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data.Token = ""
	s.data.User = nil
	return s.save()
}

// Token devuelve el token de la sesión o cadena vacía.
func (s *State) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.Token
}

// User devuelve una copia del usuario de la sesión, o nil.
func (s *State) User() *User {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data.User == nil {
		return nil
	}
	user := *s.data.User
	return &user
}

// AddToCart añade el producto al carrito. Si ya hay una línea con el
// mismo producto, suma cantidades. Las cantidades menores que 1 se
// tratan como 1.
func (s *State) AddToCart(product ProductSnapshot, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity < 1 {
		quantity = 1
	}
	for i := range s.data.Cart {
		if s.data.Cart[i].Product.ID == product.ID {
			s.data.Cart[i].Quantity += quantity
			return s.save()
		}
	}
	s.data.Cart = append(s.data.Cart, CartLine{Product: product, Quantity: quantity})
	return s.save()
}

// SetQuantity fija la cantidad de una línea, con mínimo 1. Si el
// producto no está en el carrito no hace nada.
func (s *State) SetQuantity(productID int64, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity < 1 {
		quantity = 1
	}
	for i := range s.data.Cart {
		if s.data.Cart[i].Product.ID == productID {
			s.data.Cart[i].Quantity = quantity
			return s.save()
		}
	}
	return nil
}

// RemoveFromCart elimina la línea del producto indicado.
func (s *State) RemoveFromCart(productID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.data.Cart {
		if s.data.Cart[i].Product.ID == productID {
			s.data.Cart = append(s.data.Cart[:i], s.data.Cart[i+1:]...)
			return s.save()
		}
	}
	return nil
}

// ClearCart vacía el carrito.
func (s *State) ClearCart() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data.Cart = nil
	return s.save()
}

// CartLines devuelve una copia de las líneas del carrito.
func (s *State) CartLines() []CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := make([]CartLine, len(s.data.Cart))
	copy(lines, s.data.Cart)
	return lines
}

// CartTotal es la reducción pura precio por cantidad sobre las líneas.
func (s *State) CartTotal() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total float64
	for _, line := range s.data.Cart {
		total += line.Product.Price * float64(line.Quantity)
	}
	return total
}

// Theme devuelve el tema actual, "light" por defecto.
func (s *State) Theme() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data.Theme == "" {
		return ThemeLight
	}
	return s.data.Theme
}

// ToggleTheme alterna entre claro y oscuro y devuelve el tema nuevo.
func (s *State) ToggleTheme() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data.Theme == ThemeDark {
		s.data.Theme = ThemeLight
	} else {
		s.data.Theme = ThemeDark
	}
	return s.data.Theme, s.save()
}
