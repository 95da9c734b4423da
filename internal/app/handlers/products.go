package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/alanCEI/negromate-alanfs-borrador3/internal/domain/models"
	"github.com/alanCEI/negromate-alanfs-borrador3/internal/lib/api/response"
	"github.com/alanCEI/negromate-alanfs-borrador3/internal/service"
	"github.com/go-chi/chi/v5"
)

// CreateProductRequest es el cuerpo de POST /api/products.
type CreateProductRequest struct {
	Name        string   `json:"name" validate:"required"`
	Category    string   `json:"category" validate:"required"`
	Price       float64  `json:"price" validate:"required,gt=0"`
	ImageURL    string   `json:"imageUrl"`
	Description string   `json:"description"`
	Details     []string `json:"details"`
}

// UpdateProductRequest es el cuerpo de PUT /api/products/{id}; solo los
// campos presentes cambian.
type UpdateProductRequest struct {
	Name        *string   `json:"name"`
	Category    *string   `json:"category"`
	Price       *float64  `json:"price" validate:"omitempty,gt=0"`
	ImageURL    *string   `json:"imageUrl"`
	Description *string   `json:"description"`
	Details     *[]string `json:"details"`
}

// ListProductsHandler gestiona GET /api/products con filtro opcional
// ?category=.
func ListProductsHandler(log *slog.Logger, productService service.ProductServiceInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ListProductsHandler"
		logger := log.With(slog.String("op", op))

		products, err := productService.List(r.Context(), r.URL.Query().Get("category"))
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}
		// una lista vacía no es un error, solo un mensaje informativo
		msg := "Productos obtenidos correctamente"
		if len(products) == 0 {
			msg = "No hay productos disponibles"
		}
		response.JSON(w, http.StatusOK, msg, products)
	}
}

// GetProductHandler gestiona GET /api/products/{id}.
func GetProductHandler(log *slog.Logger, productService service.ProductServiceInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.GetProductHandler"
		logger := log.With(slog.String("op", op))

		id, err := idParam(r)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "Identificador inválido")
			return
		}
		product, err := productService.Get(r.Context(), id)
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}
		response.JSON(w, http.StatusOK, "Producto obtenido correctamente", product)
	}
}

// CategoryGalleryHandler gestiona GET /api/products/category/{category}:
// productos de la base de datos más la galería estática de la categoría.
func CategoryGalleryHandler(log *slog.Logger, productService service.ProductServiceInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.CategoryGalleryHandler"
		logger := log.With(slog.String("op", op))

		category := chi.URLParam(r, "category")
		view, err := productService.CategoryWithGallery(r.Context(), category)
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}
		response.JSON(w, http.StatusOK, "Categoría obtenida correctamente", view)
	}
}

// CreateProductHandler gestiona POST /api/products (solo administradores).
func CreateProductHandler(log *slog.Logger, productService service.ProductServiceInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.CreateProductHandler"
		logger := log.With(slog.String("op", op))

		var req CreateProductRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Warn("decoding error", slog.Any("error", err))
			response.Error(w, http.StatusBadRequest, "Cuerpo de la petición inválido")
			return
		}
		if err := validate.Struct(req); err != nil {
			logger.Warn("validation error", slog.Any("error", err))
			response.Error(w, http.StatusBadRequest, "Datos del producto inválidos")
			return
		}

		product, err := productService.Create(r.Context(), &models.Product{
			Name:        req.Name,
			Category:    req.Category,
			Price:       req.Price,
			ImageURL:    req.ImageURL,
			Description: req.Description,
			Details:     req.Details,
		})
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}
		response.JSON(w, http.StatusCreated, "Producto creado correctamente", product)
	}
}

// UpdateProductHandler gestiona PUT /api/products/{id} con semántica de
// actualización parcial; el cuerpo vacío devuelve la fila sin cambios.
func UpdateProductHandler(log *slog.Logger, productService service.ProductServiceInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.UpdateProductHandler"
		logger := log.With(slog.String("op", op))

		id, err := idParam(r)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "Identificador inválido")
			return
		}

		var req UpdateProductRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			logger.Warn("decoding error", slog.Any("error", err))
			response.Error(w, http.StatusBadRequest, "Cuerpo de la petición inválido")
			return
		}
		if err := validate.Struct(req); err != nil {
			logger.Warn("validation error", slog.Any("error", err))
			response.Error(w, http.StatusBadRequest, "Datos del producto inválidos")
			return
		}

		product, err := productService.Update(r.Context(), id, service.ProductUpdate{
			Name:        req.Name,
			Category:    req.Category,
			Price:       req.Price,
			ImageURL:    req.ImageURL,
			Description: req.Description,
			Details:     req.Details,
		})
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}
		response.JSON(w, http.StatusOK, "Producto actualizado correctamente", product)
	}
}

// DeleteProductHandler gestiona DELETE /api/products/{id} (solo
// administradores).
func DeleteProductHandler(log *slog.Logger, productService service.ProductServiceInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.DeleteProductHandler"
		logger := log.With(slog.String("op", op))

		id, err := idParam(r)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "Identificador inválido")
			return
		}
		if err := productService.Delete(r.Context(), id); err != nil {
			writeServiceError(w, logger, err)
			return
		}
		response.JSON(w, http.StatusOK, "Producto eliminado correctamente", nil)
	}
}
