package service

import (
	"context"
	"testing"

	"github.com/alanCEI/negromate-alanfs-borrador3/internal/domain/models"
	"github.com/alanCEI/negromate-alanfs-borrador3/internal/gallery"
	"github.com/alanCEI/negromate-alanfs-borrador3/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductService_List(t *testing.T) {
	repo := newFakeProductRepo(
		&models.Product{ID: 1, Name: "Mural interior", Category: "Murals", Price: 900},
		&models.Product{ID: 2, Name: "Camiseta serigrafiada", Category: "CustomClothing", Price: 35},
	)
	svc := NewProductService(discardLogger(), repo)

	products, err := svc.List(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, products, 2)

	products, err = svc.List(context.Background(), "Murals")
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Mural interior", products[0].Name)
}

func TestProductService_List_UnknownCategoryIsEmptySuccess(t *testing.T) {
	repo := newFakeProductRepo(
		&models.Product{ID: 1, Name: "Mural interior", Category: "Murals", Price: 900},
	)
	svc := NewProductService(discardLogger(), repo)

	// una categoría desconocida no es un error, solo una lista sin coincidencias
	products, err := svc.List(context.Background(), "Sculpture")
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestProductService_List_EmptyCatalogIsNotAnError(t *testing.T) {
	svc := NewProductService(discardLogger(), newFakeProductRepo())

	products, err := svc.List(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestProductService_CategoryWithGallery(t *testing.T) {
	repo := newFakeProductRepo(
		&models.Product{ID: 1, Name: "Mural interior", Category: "Murals", Price: 900},
	)
	svc := NewProductService(discardLogger(), repo)

	view, err := svc.CategoryWithGallery(context.Background(), "Murals")
	require.NoError(t, err)
	require.Len(t, view.Products, 1)

	expected, _ := gallery.ForCategory("Murals")
	assert.Equal(t, expected, view.Gallery)

	_, err = svc.CategoryWithGallery(context.Background(), "Sculpture")
	assert.ErrorIs(t, err, ErrBadCategory)
}

func TestProductService_Create_InvalidCategory(t *testing.T) {
	svc := NewProductService(discardLogger(), newFakeProductRepo())

	_, err := svc.Create(context.Background(), &models.Product{Name: "Escultura", Category: "Sculpture", Price: 100})
	assert.ErrorIs(t, err, ErrBadCategory)
}

func TestProductService_Update_Partial(t *testing.T) {
	repo := newFakeProductRepo(
		&models.Product{ID: 1, Name: "Mural interior", Category: "Murals", Price: 900, Description: "Mural a medida"},
	)
	svc := NewProductService(discardLogger(), repo)

	newPrice := 950.0
	product, err := svc.Update(context.Background(), 1, ProductUpdate{Price: &newPrice})
	require.NoError(t, err)
	assert.Equal(t, 950.0, product.Price)
	assert.Equal(t, "Mural interior", product.Name)
	assert.Equal(t, "Mural a medida", product.Description)

	badCategory := "Sculpture"
	_, err = svc.Update(context.Background(), 1, ProductUpdate{Category: &badCategory})
	assert.ErrorIs(t, err, ErrBadCategory)

	_, err = svc.Update(context.Background(), 99, ProductUpdate{Price: &newPrice})
	assert.ErrorIs(t, err, storage.ErrProductNotFound)
}

func TestProductService_Delete(t *testing.T) {
	repo := newFakeProductRepo(&models.Product{ID: 1, Name: "Mural interior", Category: "Murals", Price: 900})
	svc := NewProductService(discardLogger(), repo)

	require.NoError(t, svc.Delete(context.Background(), 1))
	assert.ErrorIs(t, svc.Delete(context.Background(), 1), storage.ErrProductNotFound)
}
