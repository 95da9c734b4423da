// Package storefront es el cliente Go de la API de la tienda. Replica el
// comportamiento del frontend: una envoltura única sobre HTTP que añade
// las cabeceras JSON y el bearer token, y un estado local persistido
// (sesión, carrito y tema) equivalente al localStorage del navegador.
package storefront

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// User es la vista pública de una cuenta.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// Product es un artículo del catálogo.
type Product struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Price       float64  `json:"price"`
	ImageURL    string   `json:"imageUrl"`
	Description string   `json:"description"`
	Details     []string `json:"details"`
}

// GalleryImage es una entrada de la galería estática.
type GalleryImage struct {
	URL string `json:"imageUrl"`
	Alt string `json:"alt"`
}

// CategoryView agrupa productos y galería de una categoría.
type CategoryView struct {
	Products []Product      `json:"products"`
	Gallery  []GalleryImage `json:"gallery"`
}

// OrderItem es una línea de un pedido ya creado.
type OrderItem struct {
	Product   int64   `json:"product"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPriceAtPurchase"`
}

// Order es un pedido ya creado.
type Order struct {
	ID          int64       `json:"id"`
	Reference   string      `json:"reference"`
	Items       []OrderItem `json:"items"`
	TotalAmount float64     `json:"totalAmount"`
	Status      string      `json:"status"`
}

// Content es un bloque de contenido dinámico.
type Content struct {
	Section string          `json:"section"`
	Kind    string          `json:"kind"`
	Title   string          `json:"title"`
	Body    string          `json:"body"`
	Payload json.RawMessage `json:"payload"`
}

type sessionData struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// APIError es un error devuelto por la API con su código de estado y el
// mensaje del sobre.
type APIError struct {
	StatusCode int
	Msg        string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d: %s", e.StatusCode, e.Msg)
}

// Client es la envoltura tipada de la API REST. Todas las llamadas
// aceptan un contexto: cancelarlo equivale a la señal de aborto del
// navegador. No hay reintentos.
type Client struct {
	baseURL string
	httpc   *http.Client
	state   *State
}

func NewClient(baseURL string, state *State) *Client {
	return &Client{
		baseURL: baseURL,
		httpc:   &http.Client{},
		state:   state,
	}
}

// envelope es el sobre fijo {msg, data, status} de la API.
type envelope struct {
	Msg    string          `json:"msg"`
	Data   json.RawMessage `json:"data"`
	Status string          `json:"status"`
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token := c.state.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	if resp.StatusCode >= 400 || env.Status == "error" {
		return &APIError{StatusCode: resp.StatusCode, Msg: env.Msg}
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("failed to decode response data: %w", err)
		}
	}
	return nil
}

// Register da de alta al usuario y guarda la sesión en el estado local.
func (c *Client) Register(ctx context.Context, username, email, password string) (*User, error) {
	var session sessionData
	err := c.do(ctx, http.MethodPost, "/api/auth/register", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	}, &session)
	if err != nil {
		return nil, err
	}
	if err := c.state.SetSession(session.Token, session.User); err != nil {
		return nil, err
	}
	return &session.User, nil
}

// Login autentica y guarda la sesión en el estado local.
func (c *Client) Login(ctx context.Context, email, password string) (*User, error) {
	var session sessionData
	err := c.do(ctx, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &session)
	if err != nil {
		return nil, err
	}
	if err := c.state.SetSession(session.Token, session.User); err != nil {
		return nil, err
	}
	return &session.User, nil
}

// Logout borra token y usuario del estado local; no hay llamada al
// servidor, igual que en el frontend.
func (c *Client) Logout() error {
	return c.state.ClearSession()
}

// Profile devuelve el perfil de la sesión actual.
func (c *Client) Profile(ctx context.Context) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, "/api/auth/profile", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Products lista el catálogo, filtrado por categoría si se indica.
func (c *Client) Products(ctx context.Context, category string) ([]Product, error) {
	path := "/api/products"
	if category != "" {
		path += "?category=" + category
	}
	var products []Product
	if err := c.do(ctx, http.MethodGet, path, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// Category devuelve productos y galería de una categoría.
func (c *Client) Category(ctx context.Context, category string) (*CategoryView, error) {
	var view CategoryView
	if err := c.do(ctx, http.MethodGet, "/api/products/category/"+category, nil, &view); err != nil {
		return nil, err
	}
	return &view, nil
}

// Content devuelve el bloque de una sección.
func (c *Client) Content(ctx context.Context, section string) (*Content, error) {
	var content Content
	if err := c.do(ctx, http.MethodGet, "/api/content/"+section, nil, &content); err != nil {
		return nil, err
	}
	return &content, nil
}

// MyOrders lista los pedidos de la sesión actual.
func (c *Client) MyOrders(ctx context.Context) ([]Order, error) {
	var orders []Order
	if err := c.do(ctx, http.MethodGet, "/api/orders/myorders", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

type checkoutItem struct {
	Product  int64 `json:"product"`
	Quantity int   `json:"quantity"`
}

type checkoutRequest struct {
	OrderItems []checkoutItem `json:"orderItems"`
}

// Checkout crea un pedido con el contenido del carrito y lo vacía si el
// servidor acepta. El total lo calcula siempre el servidor.
func (c *Client) Checkout(ctx context.Context) (*Order, error) {
	lines := c.state.CartLines()
	req := checkoutRequest{}
	for _, line := range lines {
		req.OrderItems = append(req.OrderItems, checkoutItem{
			Product:  line.Product.ID,
			Quantity: line.Quantity,
		})
	}

	var order Order
	if err := c.do(ctx, http.MethodPost, "/api/orders", req, &order); err != nil {
		return nil, err
	}
	if err := c.state.ClearCart(); err != nil {
		return nil, err
	}
	return &order, nil
}
