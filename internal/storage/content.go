package storage

import (
	"context"
	"database/sql"
	"errors"

	"github.com/alanCEI/negromate-alanfs-borrador3/internal/domain/models"
	"github.com/lib/pq"
)

var (
	ErrContentNotFound = errors.New("content not found")
	ErrSectionTaken    = errors.New("section already exists")
)

// ContentStorage describe los métodos de acceso a la tabla content.
type ContentStorage interface {
	ListContent(ctx context.Context) ([]*models.Content, error)
	GetContentBySection(ctx context.Context, section string) (*models.Content, error)
	GetContentByID(ctx context.Context, id int64) (*models.Content, error)
	CreateContent(ctx context.Context, content *models.Content) (*models.Content, error)
	UpdateContent(ctx context.Context, content *models.Content) error
	DeleteContent(ctx context.Context, id int64) error
}

type contentRepository struct {
	db *sql.DB
}

func NewContentRepository(db *sql.DB) ContentStorage {
	return &contentRepository{db: db}
}

const contentColumns = "id, section, kind, title, body, payload, updated_at"

func scanContent(row *sql.Row) (*models.Content, error) {
	content := &models.Content{}
	var payload []byte
	err := row.Scan(&content.ID, &content.Section, &content.Kind, &content.Title,
		&content.Body, &payload, &content.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrContentNotFound
		}
		return nil, err
	}
	content.Payload = payload
	return content, nil
}

func (r *contentRepository) ListContent(ctx context.Context) ([]*models.Content, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+contentColumns+" FROM content ORDER BY section")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contents []*models.Content
	for rows.Next() {
		content := &models.Content{}
		var payload []byte
		if err := rows.Scan(&content.ID, &content.Section, &content.Kind, &content.Title,
			&content.Body, &payload, &content.UpdatedAt); err != nil {
			return nil, err
		}
		content.Payload = payload
		contents = append(contents, content)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return contents, nil
}

func (r *contentRepository) GetContentBySection(ctx context.Context, section string) (*models.Content, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+contentColumns+" FROM content WHERE section = $1", section)
	return scanContent(row)
}

func (r *contentRepository) GetContentByID(ctx context.Context, id int64) (*models.Content, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+contentColumns+" FROM content WHERE id = $1", id)
	return scanContent(row)
}

func (r *contentRepository) CreateContent(ctx context.Context, content *models.Content) (*models.Content, error) {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO content (section, kind, title, body, payload, updated_at)
		 VALUES ($1, $2, $3, $4, $5, NOW()) RETURNING id, updated_at`,
		content.Section, content.Kind, content.Title, content.Body, []byte(content.Payload),
	).Scan(&content.ID, &content.UpdatedAt)
	if err != nil {
		// 23505: ya existe un documento para la sección
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return nil, ErrSectionTaken
		}
		return nil, err
	}
	return content, nil
}

func (r *contentRepository) UpdateContent(ctx context.Context, content *models.Content) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE content SET section = $1, kind = $2, title = $3, body = $4,
		 payload = $5, updated_at = NOW() WHERE id = $6`,
		content.Section, content.Kind, content.Title, content.Body,
		[]byte(content.Payload), content.ID,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return ErrSectionTaken
		}
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrContentNotFound
	}
	return nil
}

func (r *contentRepository) DeleteContent(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM content WHERE id = $1", id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrContentNotFound
	}
	return nil
}
