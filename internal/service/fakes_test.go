package service

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"time"

	"github.com/alanCEI/negromate-alanfs-borrador3/internal/domain/models"
	"github.com/alanCEI/negromate-alanfs-borrador3/internal/storage"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeUserRepo es una implementación en memoria de storage.UserStorage.
type fakeUserRepo struct {
	users  map[int64]*models.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*models.User)}
}

func (f *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, storage.ErrUserNotFound
}

func (f *fakeUserRepo) GetUserByID(_ context.Context, id int64) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, storage.ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}

func (f *fakeUserRepo) CreateUser(_ context.Context, user *models.User) (*models.User, error) {
	for _, existing := range f.users {
		if existing.Email == user.Email {
			return nil, storage.ErrEmailTaken
		}
	}
	f.nextID++
	user.ID = f.nextID
	user.CreatedAt = time.Now()
	clone := *user
	f.users[user.ID] = &clone
	return user, nil
}

func (f *fakeUserRepo) UpdateUser(_ context.Context, user *models.User) error {
	if _, ok := f.users[user.ID]; !ok {
		return storage.ErrUserNotFound
	}
	for id, existing := range f.users {
		if id != user.ID && existing.Email == user.Email {
			return storage.ErrEmailTaken
		}
	}
	clone := *user
	f.users[user.ID] = &clone
	return nil
}

func (f *fakeUserRepo) ListUsers(_ context.Context) ([]*models.User, error) {
	var users []*models.User
	for _, user := range f.users {
		clone := *user
		users = append(users, &clone)
	}
	return users, nil
}

func (f *fakeUserRepo) DeleteUser(_ context.Context, id int64) error {
	if _, ok := f.users[id]; !ok {
		return storage.ErrUserNotFound
	}
	delete(f.users, id)
	return nil
}

// fakeProductRepo es una implementación en memoria de storage.ProductStorage.
type fakeProductRepo struct {
	products map[int64]*models.Product
	nextID   int64
}

func newFakeProductRepo(products ...*models.Product) *fakeProductRepo {
	f := &fakeProductRepo{products: make(map[int64]*models.Product)}
	for _, product := range products {
		f.products[product.ID] = product
		if product.ID > f.nextID {
			f.nextID = product.ID
		}
	}
	return f
}

func (f *fakeProductRepo) ListProducts(_ context.Context, category string) ([]*models.Product, error) {
	var products []*models.Product
	for _, product := range f.products {
		if category == "" || product.Category == category {
			clone := *product
			products = append(products, &clone)
		}
	}
	return products, nil
}

func (f *fakeProductRepo) GetProductByID(_ context.Context, id int64) (*models.Product, error) {
	product, ok := f.products[id]
	if !ok {
		return nil, storage.ErrProductNotFound
	}
	clone := *product
	return &clone, nil
}

func (f *fakeProductRepo) GetProductByIDTx(ctx context.Context, _ *sql.Tx, id int64) (*models.Product, error) {
	return f.GetProductByID(ctx, id)
}

func (f *fakeProductRepo) CreateProduct(_ context.Context, product *models.Product) (*models.Product, error) {
	f.nextID++
	product.ID = f.nextID
	product.CreatedAt = time.Now()
	clone := *product
	f.products[product.ID] = &clone
	return product, nil
}

func (f *fakeProductRepo) UpdateProduct(_ context.Context, product *models.Product) error {
	if _, ok := f.products[product.ID]; !ok {
		return storage.ErrProductNotFound
	}
	clone := *product
	f.products[product.ID] = &clone
	return nil
}

func (f *fakeProductRepo) DeleteProduct(_ context.Context, id int64) error {
	if _, ok := f.products[id]; !ok {
		return storage.ErrProductNotFound
	}
	delete(f.products, id)
	return nil
}

// fakeOrderRepo es una implementación en memoria de storage.OrderStorage.
type fakeOrderRepo struct {
	orders  map[int64]*models.Order
	nextID  int64
	created int
}

func newFakeOrderRepo(orders ...*models.Order) *fakeOrderRepo {
	f := &fakeOrderRepo{orders: make(map[int64]*models.Order)}
	for _, order := range orders {
		f.orders[order.ID] = order
		if order.ID > f.nextID {
			f.nextID = order.ID
		}
	}
	return f
}

func (f *fakeOrderRepo) CreateOrder(_ context.Context, _ *sql.Tx, order *models.Order) (*models.Order, error) {
	f.created++
	f.nextID++
	order.ID = f.nextID
	order.CreatedAt = time.Now()
	clone := *order
	f.orders[order.ID] = &clone
	return order, nil
}

func (f *fakeOrderRepo) GetOrderByID(_ context.Context, id int64) (*models.Order, error) {
	order, ok := f.orders[id]
	if !ok {
		return nil, storage.ErrOrderNotFound
	}
	clone := *order
	return &clone, nil
}

func (f *fakeOrderRepo) ListOrders(_ context.Context, status string) ([]*models.Order, error) {
	var orders []*models.Order
	for _, order := range f.orders {
		if status == "" || order.Status == status {
			clone := *order
			orders = append(orders, &clone)
		}
	}
	return orders, nil
}

func (f *fakeOrderRepo) ListOrdersByUserID(_ context.Context, userID int64) ([]*models.Order, error) {
	var orders []*models.Order
	for _, order := range f.orders {
		if order.UserID == userID {
			clone := *order
			orders = append(orders, &clone)
		}
	}
	return orders, nil
}

func (f *fakeOrderRepo) UpdateOrderStatus(_ context.Context, id int64, status string) error {
	order, ok := f.orders[id]
	if !ok {
		return storage.ErrOrderNotFound
	}
	order.Status = status
	return nil
}

func (f *fakeOrderRepo) DeleteOrder(_ context.Context, id int64) error {
	if _, ok := f.orders[id]; !ok {
		return storage.ErrOrderNotFound
	}
	delete(f.orders, id)
	return nil
}

// fakeContentRepo es una implementación en memoria de storage.ContentStorage.
type fakeContentRepo struct {
	contents map[int64]*models.Content
	nextID   int64
	getCalls int
}

func newFakeContentRepo(contents ...*models.Content) *fakeContentRepo {
	f := &fakeContentRepo{contents: make(map[int64]*models.Content)}
	for _, content := range contents {
		f.contents[content.ID] = content
		if content.ID > f.nextID {
			f.nextID = content.ID
		}
	}
	return f
}

func (f *fakeContentRepo) ListContent(_ context.Context) ([]*models.Content, error) {
	var contents []*models.Content
	for _, content := range f.contents {
		clone := *content
		contents = append(contents, &clone)
	}
	return contents, nil
}

func (f *fakeContentRepo) GetContentBySection(_ context.Context, section string) (*models.Content, error) {
	f.getCalls++
	for _, content := range f.contents {
		if content.Section == section {
			clone := *content
			return &clone, nil
		}
	}
	return nil, storage.ErrContentNotFound
}

func (f *fakeContentRepo) GetContentByID(_ context.Context, id int64) (*models.Content, error) {
	content, ok := f.contents[id]
	if !ok {
		return nil, storage.ErrContentNotFound
	}
	clone := *content
	return &clone, nil
}

func (f *fakeContentRepo) CreateContent(_ context.Context, content *models.Content) (*models.Content, error) {
	for _, existing := range f.contents {
		if existing.Section == content.Section {
			return nil, storage.ErrSectionTaken
		}
	}
	f.nextID++
	content.ID = f.nextID
	content.UpdatedAt = time.Now()
	clone := *content
	f.contents[content.ID] = &clone
	return content, nil
}

func (f *fakeContentRepo) UpdateContent(_ context.Context, content *models.Content) error {
	if _, ok := f.contents[content.ID]; !ok {
		return storage.ErrContentNotFound
	}
	clone := *content
	f.contents[content.ID] = &clone
	return nil
}

func (f *fakeContentRepo) DeleteContent(_ context.Context, id int64) error {
	if _, ok := f.contents[id]; !ok {
		return storage.ErrContentNotFound
	}
	delete(f.contents, id)
	return nil
}
