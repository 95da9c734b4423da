package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/alanCEI/negromate-alanfs-borrador3/internal/domain/models"
	"github.com/alanCEI/negromate-alanfs-borrador3/internal/gallery"
	"github.com/alanCEI/negromate-alanfs-borrador3/internal/storage"
)

// ContentUpdate lleva los campos opcionales de una actualización parcial
// de un bloque de contenido.
type ContentUpdate struct {
	Section *string
	Kind    *string
	Title   *string
	Body    *string
	Payload json.RawMessage
}

type ContentServiceInterface interface {
	List(ctx context.Context) ([]*models.Content, error)
	GetSection(ctx context.Context, section string) (*models.Content, error)
	Create(ctx context.Context, content *models.Content) (*models.Content, error)
	Update(ctx context.Context, id int64, upd ContentUpdate) (*models.Content, error)
	Delete(ctx context.Context, id int64) error
}

type contentService struct {
	log         *slog.Logger
	contentRepo storage.ContentStorage
}

func NewContentService(log *slog.Logger, contentRepo storage.ContentStorage) ContentServiceInterface {
	return &contentService{log: log, contentRepo: contentRepo}
}

func (s *contentService) List(ctx context.Context) ([]*models.Content, error) {
	const op = "service.ContentService.List"
	contents, err := s.contentRepo.ListContent(ctx)
	if err != nil {
		s.log.Error("failed to list content", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return contents, nil
}

// GetSection resuelve un bloque por nombre de sección. Las secciones
// "galeria*" se sirven desde la tabla estática en memoria y no tocan la
// base de datos; el resto sale de la tabla content. La doble fuente de
// verdad viene de la aplicación original y se mantiene tal cual.
func (s *contentService) GetSection(ctx context.Context, section string) (*models.Content, error) {
	const op = "service.ContentService.GetSection"

	if gallery.IsGallerySection(section) {
		images, ok := gallery.ForSection(section)
		if !ok {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrContentNotFound)
		}
		payload, err := json.Marshal(images)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to encode gallery: %w", op, err)
		}
		return &models.Content{
			Section: section,
			Kind:    models.ContentKindGallery,
			Title:   "Galería",
			Payload: payload,
		}, nil
	}

	content, err := s.contentRepo.GetContentBySection(ctx, section)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return content, nil
}

// validatePayload comprueba que el payload encaja con el tipo del
// bloque: text no lleva payload, artists lleva una lista de Artist y
// gallery una lista de imágenes.
func validatePayload(kind string, payload json.RawMessage) error {
	switch kind {
	case models.ContentKindText:
		if len(payload) > 0 && !bytes.Equal(bytes.TrimSpace(payload), []byte("null")) {
			return ErrBadPayload
		}
	case models.ContentKindArtists:
		var artists []models.Artist
		if err := json.Unmarshal(payload, &artists); err != nil {
			return ErrBadPayload
		}
	case models.ContentKindGallery:
		var images []gallery.Image
		if err := json.Unmarshal(payload, &images); err != nil {
			return ErrBadPayload
		}
	}
	return nil
}

func (s *contentService) Create(ctx context.Context, content *models.Content) (*models.Content, error) {
	const op = "service.ContentService.Create"
	logger := s.log.With(slog.String("op", op), slog.String("section", content.Section))

	if !models.ValidContentKind(content.Kind) {
		return nil, fmt.Errorf("%s: %w", op, ErrBadKind)
	}
	if err := validatePayload(content.Kind, content.Payload); err != nil {
		logger.Warn("payload does not match kind", slog.String("kind", content.Kind))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	created, err := s.contentRepo.CreateContent(ctx, content)
	if err != nil {
		if err == storage.ErrSectionTaken {
			logger.Warn("section already exists")
		} else {
			logger.Error("failed to create content", slog.Any("error", err))
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	logger.Info("content created", slog.Int64("contentID", created.ID))
	return created, nil
}

func (s *contentService) Update(ctx context.Context, id int64, upd ContentUpdate) (*models.Content, error) {
	const op = "service.ContentService.Update"
	logger := s.log.With(slog.String("op", op), slog.Int64("contentID", id))

	content, err := s.contentRepo.GetContentByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if upd.Section != nil {
		content.Section = *upd.Section
	}
	if upd.Kind != nil {
		if !models.ValidContentKind(*upd.Kind) {
			return nil, fmt.Errorf("%s: %w", op, ErrBadKind)
		}
		content.Kind = *upd.Kind
	}
	if upd.Title != nil {
		content.Title = *upd.Title
	}
	if upd.Body != nil {
		content.Body = *upd.Body
	}
	if upd.Payload != nil {
		content.Payload = upd.Payload
	}

	// el payload resultante debe seguir encajando con el tipo
	if err := validatePayload(content.Kind, content.Payload); err != nil {
		logger.Warn("payload does not match kind", slog.String("kind", content.Kind))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.contentRepo.UpdateContent(ctx, content); err != nil {
		logger.Error("failed to update content", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	logger.Info("content updated")
	return content, nil
}

func (s *contentService) Delete(ctx context.Context, id int64) error {
	const op = "service.ContentService.Delete"
	if err := s.contentRepo.DeleteContent(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("content deleted", slog.String("op", op), slog.Int64("contentID", id))
	return nil
}
