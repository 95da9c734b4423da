package storage

import (
	"context"
	"database/sql"
	"errors"

	"github.com/alanCEI/negromate-alanfs-borrador3/internal/domain/models"
	"github.com/lib/pq"
)

var ErrProductNotFound = errors.New("product not found")

// ProductStorage describe los métodos de acceso a la tabla products.
type ProductStorage interface {
	ListProducts(ctx context.Context, category string) ([]*models.Product, error)
	GetProductByID(ctx context.Context, id int64) (*models.Product, error)
	// GetProductByIDTx resuelve un producto dentro de una transacción; se usa
	// al crear pedidos para leer el precio vigente.
	GetProductByIDTx(ctx context.Context, tx *sql.Tx, id int64) (*models.Product, error)
	CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error)
	UpdateProduct(ctx context.Context, product *models.Product) error
	DeleteProduct(ctx context.Context, id int64) error
}

type productRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) ProductStorage {
	return &productRepository{db: db}
}

const productColumns = "id, name, category, price, image_url, description, details, created_at"

func scanProduct(row *sql.Row) (*models.Product, error) {
	product := &models.Product{}
	err := row.Scan(&product.ID, &product.Name, &product.Category, &product.Price,
		&product.ImageURL, &product.Description, pq.Array(&product.Details), &product.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

// ListProducts devuelve el catálogo; con category vacía devuelve todo.
func (r *productRepository) ListProducts(ctx context.Context, category string) ([]*models.Product, error) {
	query := "SELECT " + productColumns + " FROM products"
	var args []interface{}
	if category != "" {
		query += " WHERE category = $1"
		args = append(args, category)
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		product := &models.Product{}
		if err := rows.Scan(&product.ID, &product.Name, &product.Category, &product.Price,
			&product.ImageURL, &product.Description, pq.Array(&product.Details), &product.CreatedAt); err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepository) GetProductByID(ctx context.Context, id int64) (*models.Product, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+productColumns+" FROM products WHERE id = $1", id)
	return scanProduct(row)
}

func (r *productRepository) GetProductByIDTx(ctx context.Context, tx *sql.Tx, id int64) (*models.Product, error) {
	row := tx.QueryRowContext(ctx, "SELECT "+productColumns+" FROM products WHERE id = $1", id)
	return scanProduct(row)
}

func (r *productRepository) CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO products (name, category, price, image_url, description, details, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, NOW()) RETURNING id, created_at`,
		product.Name, product.Category, product.Price, product.ImageURL,
		product.Description, pq.Array(product.Details),
	).Scan(&product.ID, &product.CreatedAt)
	if err != nil {
		return nil, err
	}
	return product, nil
}

func (r *productRepository) UpdateProduct(ctx context.Context, product *models.Product) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE products SET name = $1, category = $2, price = $3, image_url = $4,
		 description = $5, details = $6 WHERE id = $7`,
		product.Name, product.Category, product.Price, product.ImageURL,
		product.Description, pq.Array(product.Details), product.ID,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *productRepository) DeleteProduct(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM products WHERE id = $1", id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrProductNotFound
	}
	return nil
}
