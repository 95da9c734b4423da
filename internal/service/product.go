package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/alanCEI/negromate-alanfs-borrador3/internal/domain/models"
	"github.com/alanCEI/negromate-alanfs-borrador3/internal/gallery"
	"github.com/alanCEI/negromate-alanfs-borrador3/internal/storage"
)

// ProductUpdate lleva los campos opcionales de una actualización parcial
// de producto.
type ProductUpdate struct {
	Name        *string
	Category    *string
	Price       *float64
	ImageURL    *string
	Description *string
	Details     *[]string
}

// CategoryView junta los productos vivos de la base de datos con la
// galería estática de la categoría. La galería es una tabla en memoria,
// no una consulta.
type CategoryView struct {
	Products []*models.Product `json:"products"`
	Gallery  []gallery.Image   `json:"gallery"`
}

type ProductServiceInterface interface {
	List(ctx context.Context, category string) ([]*models.Product, error)
	Get(ctx context.Context, id int64) (*models.Product, error)
	CategoryWithGallery(ctx context.Context, category string) (*CategoryView, error)
	Create(ctx context.Context, product *models.Product) (*models.Product, error)
	Update(ctx context.Context, id int64, upd ProductUpdate) (*models.Product, error)
	Delete(ctx context.Context, id int64) error
}

type productService struct {
	log         *slog.Logger
	productRepo storage.ProductStorage
}

func NewProductService(log *slog.Logger, productRepo storage.ProductStorage) ProductServiceInterface {
	return &productService{log: log, productRepo: productRepo}
}

// List devuelve el catálogo, filtrado por categoría si se indica. Una
// lista vacía no es un error, tampoco con una categoría desconocida:
// simplemente no hay coincidencias.
func (s *productService) List(ctx context.Context, category string) ([]*models.Product, error) {
	const op = "service.ProductService.List"
	products, err := s.productRepo.ListProducts(ctx, category)
	if err != nil {
		s.log.Error("failed to list products", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return products, nil
}

func (s *productService) Get(ctx context.Context, id int64) (*models.Product, error) {
	const op = "service.ProductService.Get"
	product, err := s.productRepo.GetProductByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return product, nil
}

func (s *productService) CategoryWithGallery(ctx context.Context, category string) (*CategoryView, error) {
	const op = "service.ProductService.CategoryWithGallery"
	images, ok := gallery.ForCategory(category)
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, ErrBadCategory)
	}
	products, err := s.productRepo.ListProducts(ctx, category)
	if err != nil {
		s.log.Error("failed to list products", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &CategoryView{Products: products, Gallery: images}, nil
}

func (s *productService) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	const op = "service.ProductService.Create"
	logger := s.log.With(slog.String("op", op), slog.String("name", product.Name))

	if !models.ValidCategory(product.Category) {
		return nil, fmt.Errorf("%s: %w", op, ErrBadCategory)
	}
	created, err := s.productRepo.CreateProduct(ctx, product)
	if err != nil {
		logger.Error("failed to create product", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	logger.Info("product created", slog.Int64("productID", created.ID))
	return created, nil
}

// Update aplica una actualización parcial: solo cambian los campos
// presentes; con el cuerpo vacío devuelve la fila tal cual está.
func (s *productService) Update(ctx context.Context, id int64, upd ProductUpdate) (*models.Product, error) {
	const op = "service.ProductService.Update"
	logger := s.log.With(slog.String("op", op), slog.Int64("productID", id))

	product, err := s.productRepo.GetProductByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if upd.Name != nil {
		product.Name = *upd.Name
	}
	if upd.Category != nil {
		if !models.ValidCategory(*upd.Category) {
			return nil, fmt.Errorf("%s: %w", op, ErrBadCategory)
		}
		product.Category = *upd.Category
	}
	if upd.Price != nil {
		product.Price = *upd.Price
	}
	if upd.ImageURL != nil {
		product.ImageURL = *upd.ImageURL
	}
	if upd.Description != nil {
		product.Description = *upd.Description
	}
	if upd.Details != nil {
		product.Details = *upd.Details
	}

	if err := s.productRepo.UpdateProduct(ctx, product); err != nil {
		logger.Error("failed to update product", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	logger.Info("product updated")
	return product, nil
}

func (s *productService) Delete(ctx context.Context, id int64) error {
	const op = "service.ProductService.Delete"
	if err := s.productRepo.DeleteProduct(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("product deleted", slog.String("op", op), slog.Int64("productID", id))
	return nil
}
