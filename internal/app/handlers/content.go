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

// CreateContentRequest es el cuerpo de POST /api/content.
type CreateContentRequest struct {
	Section string          `json:"section" validate:"required"`
	Kind    string          `json:"kind" validate:"required"`
	Title   string          `json:"title"`
	Body    string          `json:"body"`
	Payload json.RawMessage `json:"payload"`
}

// UpdateContentRequest es el cuerpo de PUT /api/content/{id}; solo los
// campos presentes cambian.
type UpdateContentRequest struct {
	Section *string         `json:"section"`
	Kind    *string         `json:"kind"`
	Title   *string         `json:"title"`
	Body    *string         `json:"body"`
	Payload json.RawMessage `json:"payload"`
}

// ListContentHandler gestiona GET /api/content.
func ListContentHandler(log *slog.Logger, contentService service.ContentServiceInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ListContentHandler"
		logger := log.With(slog.String("op", op))

		contents, err := contentService.List(r.Context())
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}
		response.JSON(w, http.StatusOK, "Contenido obtenido correctamente", contents)
	}
}

// GetSectionHandler gestiona GET /api/content/{sectionName}. Las
// secciones "galeria*" salen de la tabla estática, no de la base de datos.
func GetSectionHandler(log *slog.Logger, contentService service.ContentServiceInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.GetSectionHandler"
		logger := log.With(slog.String("op", op))

		section := chi.URLParam(r, "sectionName")
		content, err := contentService.GetSection(r.Context(), section)
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}
		response.JSON(w, http.StatusOK, "Contenido obtenido correctamente", content)
	}
}

// CreateContentHandler gestiona POST /api/content (solo administradores).
func CreateContentHandler(log *slog.Logger, contentService service.ContentServiceInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.CreateContentHandler"
		logger := log.With(slog.String("op", op))

		var req CreateContentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Warn("decoding error", slog.Any("error", err))
			response.Error(w, http.StatusBadRequest, "Cuerpo de la petición inválido")
			return
		}
		if err := validate.Struct(req); err != nil {
			logger.Warn("validation error", slog.Any("error", err))
			response.Error(w, http.StatusBadRequest, "Datos de contenido inválidos")
			return
		}

		content, err := contentService.Create(r.Context(), &models.Content{
			Section: req.Section,
			Kind:    req.Kind,
			Title:   req.Title,
			Body:    req.Body,
			Payload: req.Payload,
		})
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}
		response.JSON(w, http.StatusCreated, "Contenido creado correctamente", content)
	}
}

// UpdateContentHandler gestiona PUT /api/content/{id} con semántica de
// actualización parcial.
func UpdateContentHandler(log *slog.Logger, contentService service.ContentServiceInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.UpdateContentHandler"
		logger := log.With(slog.String("op", op))

		id, err := idParam(r)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "Identificador inválido")
			return
		}

		var req UpdateContentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			logger.Warn("decoding error", slog.Any("error", err))
			response.Error(w, http.StatusBadRequest, "Cuerpo de la petición inválido")
			return
		}

		content, err := contentService.Update(r.Context(), id, service.ContentUpdate{
			Section: req.Section,
			Kind:    req.Kind,
			Title:   req.Title,
			Body:    req.Body,
			Payload: req.Payload,
		})
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}
		response.JSON(w, http.StatusOK, "Contenido actualizado correctamente", content)
	}
}

// DeleteContentHandler gestiona DELETE /api/content/{id} (solo
// administradores).
func DeleteContentHandler(log *slog.Logger, contentService service.ContentServiceInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.DeleteContentHandler"
		logger := log.With(slog.String("op", op))

		id, err := idParam(r)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "Identificador inválido")
			return
		}
		if err := contentService.Delete(r.Context(), id); err != nil {
			writeServiceError(w, logger, err)
			return
		}
		response.JSON(w, http.StatusOK, "Contenido eliminado correctamente", nil)
	}
}
