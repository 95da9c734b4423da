package storage

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alanCEI/negromate-alanfs-borrador3/internal/domain/models"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func TestUserRepository_GetUserByEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	now := time.Now()
	mock.ExpectQuery("SELECT id, username, email, pass_hash, role, created_at FROM users WHERE email =").
		WithArgs("alan@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "pass_hash", "role", "created_at"}).
			AddRow(int64(1), "alan", "alan@example.com", []byte("hash"), models.RoleUser, now))

	user, err := repo.GetUserByEmail(context.Background(), "alan@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, "alan", user.Username)
	assert.Equal(t, models.RoleUser, user.Role)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetUserByEmail_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery("SELECT id, username, email, pass_hash, role, created_at FROM users WHERE email =").
		WithArgs("nadie@example.com").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetUserByEmail(context.Background(), "nadie@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_CreateUser_DuplicateEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery("INSERT INTO users").
		WithArgs("alan", "alan@example.com", []byte("hash"), models.RoleUser).
		WillReturnError(&pq.Error{Code: "23505"})

	_, err := repo.CreateUser(context.Background(), &models.User{
		Username: "alan",
		Email:    "alan@example.com",
		PassHash: []byte("hash"),
		Role:     models.RoleUser,
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_DeleteUser_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectExec("DELETE FROM users WHERE id =").
		WithArgs(int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.DeleteUser(context.Background(), 99)
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_GetProductByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductRepository(db)

	now := time.Now()
	mock.ExpectQuery("SELECT id, name, category, price, image_url, description, details, created_at FROM products WHERE id =").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "category", "price", "image_url", "description", "details", "created_at"}).
			AddRow(int64(1), "Mural interior", "Murals", 900.0, "/img/mural.webp", "Mural a medida",
				"{Incluye boceto previo,Pinturas lavables}", now))

	product, err := repo.GetProductByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Mural interior", product.Name)
	assert.Equal(t, 900.0, product.Price)
	assert.Equal(t, []string{"Incluye boceto previo", "Pinturas lavables"}, product.Details)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_GetProductByID_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductRepository(db)

	mock.ExpectQuery("SELECT id, name, category, price, image_url, description, details, created_at FROM products WHERE id =").
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetProductByID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrProductNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_UpdateProduct_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductRepository(db)

	mock.ExpectExec("UPDATE products SET").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateProduct(context.Background(), &models.Product{ID: 99, Name: "x", Category: "Murals"})
	assert.ErrorIs(t, err, ErrProductNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_CreateOrder_InsertsOrderAndItems(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOrderRepository(db)

	now := time.Now()
	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO orders").
		WithArgs("ref-1", int64(7), 275.0, models.OrderStatusPending).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(4), now))
	mock.ExpectQuery("INSERT INTO order_items").
		WithArgs(int64(4), int64(1), 2, 120.0).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(10)))
	mock.ExpectQuery("INSERT INTO order_items").
		WithArgs(int64(4), int64(2), 1, 35.0).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(11)))
	mock.ExpectCommit()

	tx, err := db.Begin()
	require.NoError(t, err)

	order, err := repo.CreateOrder(context.Background(), tx, &models.Order{
		Reference:   "ref-1",
		UserID:      7,
		TotalAmount: 275.0,
		Status:      models.OrderStatusPending,
		Items: []models.OrderItem{
			{ProductID: 1, Quantity: 2, UnitPrice: 120.0},
			{ProductID: 2, Quantity: 1, UnitPrice: 35.0},
		},
	})
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	assert.Equal(t, int64(4), order.ID)
	assert.Equal(t, int64(4), order.Items[0].OrderID)
	assert.Equal(t, int64(10), order.Items[0].ID)
	assert.Equal(t, int64(11), order.Items[1].ID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_UpdateOrderStatus_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOrderRepository(db)

	mock.ExpectExec("UPDATE orders SET status =").
		WithArgs(models.OrderStatusCompleted, int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateOrderStatus(context.Background(), 99, models.OrderStatusCompleted)
	assert.ErrorIs(t, err, ErrOrderNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContentRepository_GetContentBySection(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewContentRepository(db)

	now := time.Now()
	mock.ExpectQuery("SELECT id, section, kind, title, body, payload, updated_at FROM content WHERE section =").
		WithArgs("about").
		WillReturnRows(sqlmock.NewRows([]string{"id", "section", "kind", "title", "body", "payload", "updated_at"}).
			AddRow(int64(1), "about", models.ContentKindText, "Sobre nosotros", "Estudio de arte.", nil, now))

	content, err := repo.GetContentBySection(context.Background(), "about")
	require.NoError(t, err)
	assert.Equal(t, "Sobre nosotros", content.Title)
	assert.Equal(t, models.ContentKindText, content.Kind)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContentRepository_CreateContent_SectionTaken(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewContentRepository(db)

	mock.ExpectQuery("INSERT INTO content").
		WillReturnError(&pq.Error{Code: "23505"})

	_, err := repo.CreateContent(context.Background(), &models.Content{
		Section: "about", Kind: models.ContentKindText,
	})
	assert.ErrorIs(t, err, ErrSectionTaken)
	assert.NoError(t, mock.ExpectationsWereMet())
}
