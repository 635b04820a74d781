package cart

import (
	"context"
	"testing"

	"shopcore-be/internal/product"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetCartIDByUser(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) EnsureCart(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) GetCart(ctx context.Context, userID int64) (*Cart, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Cart), args.Error(1)
}

func (m *MockRepository) GetItemByCartAndProduct(ctx context.Context, cartID, productID int64) (*CartItem, error) {
	args := m.Called(ctx, cartID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*CartItem), args.Error(1)
}

func (m *MockRepository) GetItemByID(ctx context.Context, itemID int64) (*CartItem, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*CartItem), args.Error(1)
}

func (m *MockRepository) CreateItem(ctx context.Context, cartID, productID int64, quantity int, price decimal.Decimal) (*CartItem, error) {
	args := m.Called(ctx, cartID, productID, quantity, price)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*CartItem), args.Error(1)
}

func (m *MockRepository) UpdateItemQuantity(ctx context.Context, itemID int64, quantity int) error {
	args := m.Called(ctx, itemID, quantity)
	return args.Error(0)
}

func (m *MockRepository) DeleteItem(ctx context.Context, itemID int64) error {
	args := m.Called(ctx, itemID)
	return args.Error(0)
}

func (m *MockRepository) Clear(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockProductRepository is a mock for the product repository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Create(ctx context.Context, params product.ProductParams) (*product.Product, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockProductRepository) GetByID(ctx context.Context, id int64) (*product.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockProductRepository) List(ctx context.Context, filter product.ListFilter) ([]*product.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*product.Product), args.Error(1)
}

func (m *MockProductRepository) Update(ctx context.Context, id int64, params product.ProductParams) (*product.Product, error) {
	args := m.Called(ctx, id, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockProductRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) AdjustStock(ctx context.Context, id int64, delta int) (*product.Product, error) {
	args := m.Called(ctx, id, delta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func activeProduct(stock int) *product.Product {
	return &product.Product{
		ID:            10,
		Name:          "Widget",
		Price:         decimal.RequireFromString("10.00"),
		StockQuantity: stock,
		Active:        true,
	}
}

func TestService_AddToCart_NewItem(t *testing.T) {
	repo := new(MockRepository)
	productRepo := new(MockProductRepository)
	svc := NewService(repo, productRepo)

	p := activeProduct(3)
	productRepo.On("GetByID", mock.Anything, int64(10)).Return(p, nil)
	repo.On("EnsureCart", mock.Anything, int64(1)).Return(int64(5), nil)
	repo.On("GetItemByCartAndProduct", mock.Anything, int64(5), int64(10)).Return(nil, nil)
	repo.On("CreateItem", mock.Anything, int64(5), int64(10), 2, p.Price).
		Return(&CartItem{ID: 1, Quantity: 2, Price: p.Price}, nil)
	repo.On("GetCart", mock.Anything, int64(1)).Return(&Cart{
		ID:          5,
		UserID:      1,
		TotalAmount: decimal.RequireFromString("20.00"),
		Items: []*CartItem{
			{ID: 1, ProductID: 10, Quantity: 2, Price: p.Price},
		},
	}, nil)

	result, err := svc.AddToCart(context.Background(), AddToCartParams{UserID: 1, ProductID: 10, Quantity: 2})
	require.NoError(t, err)
	assert.True(t, result.TotalAmount.Equal(decimal.RequireFromString("20.00")))
	repo.AssertExpectations(t)
}

func TestService_AddToCart_InsufficientStock(t *testing.T) {
	repo := new(MockRepository)
	productRepo := new(MockProductRepository)
	svc := NewService(repo, productRepo)

	productRepo.On("GetByID", mock.Anything, int64(10)).Return(activeProduct(3), nil)
	repo.On("EnsureCart", mock.Anything, int64(1)).Return(int64(5), nil)
	repo.On("GetItemByCartAndProduct", mock.Anything, int64(5), int64(10)).Return(nil, nil)

	_, err := svc.AddToCart(context.Background(), AddToCartParams{UserID: 1, ProductID: 10, Quantity: 5})
	assert.ErrorIs(t, err, ErrInsufficientStock)
	repo.AssertNotCalled(t, "CreateItem")
}

// Adding 2 then 2 more against stock 3 must fail on the second call: the
// quantities sum and the sum is re-validated.
func TestService_AddToCart_AdditiveQuantity(t *testing.T) {
	repo := new(MockRepository)
	productRepo := new(MockProductRepository)
	svc := NewService(repo, productRepo)

	productRepo.On("GetByID", mock.Anything, int64(10)).Return(activeProduct(3), nil)
	repo.On("EnsureCart", mock.Anything, int64(1)).Return(int64(5), nil)
	repo.On("GetItemByCartAndProduct", mock.Anything, int64(5), int64(10)).
		Return(&CartItem{ID: 1, Quantity: 2}, nil)

	_, err := svc.AddToCart(context.Background(), AddToCartParams{UserID: 1, ProductID: 10, Quantity: 2})
	assert.ErrorIs(t, err, ErrInsufficientStock)
	repo.AssertNotCalled(t, "UpdateItemQuantity")
	repo.AssertNotCalled(t, "CreateItem")
}

func TestService_AddToCart_AdditiveWithinStock(t *testing.T) {
	repo := new(MockRepository)
	productRepo := new(MockProductRepository)
	svc := NewService(repo, productRepo)

	productRepo.On("GetByID", mock.Anything, int64(10)).Return(activeProduct(5), nil)
	repo.On("EnsureCart", mock.Anything, int64(1)).Return(int64(5), nil)
	repo.On("GetItemByCartAndProduct", mock.Anything, int64(5), int64(10)).
		Return(&CartItem{ID: 1, Quantity: 2}, nil)
	repo.On("UpdateItemQuantity", mock.Anything, int64(1), 4).Return(nil)
	repo.On("GetCart", mock.Anything, int64(1)).Return(&Cart{ID: 5}, nil)

	_, err := svc.AddToCart(context.Background(), AddToCartParams{UserID: 1, ProductID: 10, Quantity: 2})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestService_AddToCart_InactiveProduct(t *testing.T) {
	repo := new(MockRepository)
	productRepo := new(MockProductRepository)
	svc := NewService(repo, productRepo)

	p := activeProduct(3)
	p.Active = false
	productRepo.On("GetByID", mock.Anything, int64(10)).Return(p, nil)

	_, err := svc.AddToCart(context.Background(), AddToCartParams{UserID: 1, ProductID: 10, Quantity: 1})
	assert.ErrorIs(t, err, ErrProductInactive)
}

func TestService_AddToCart_ProductNotFound(t *testing.T) {
	repo := new(MockRepository)
	productRepo := new(MockProductRepository)
	svc := NewService(repo, productRepo)

	productRepo.On("GetByID", mock.Anything, int64(99)).Return(nil, product.ErrProductNotFound)

	_, err := svc.AddToCart(context.Background(), AddToCartParams{UserID: 1, ProductID: 99, Quantity: 1})
	assert.ErrorIs(t, err, product.ErrProductNotFound)
}

func TestService_AddToCart_InvalidQuantity(t *testing.T) {
	svc := NewService(new(MockRepository), new(MockProductRepository))

	_, err := svc.AddToCart(context.Background(), AddToCartParams{UserID: 1, ProductID: 10, Quantity: 0})
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestService_UpdateItem(t *testing.T) {
	ownedItem := &CartItem{ID: 3, CartID: 5, UserID: 1, ProductID: 10, Quantity: 1}

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		productRepo := new(MockProductRepository)
		svc := NewService(repo, productRepo)

		repo.On("GetItemByID", mock.Anything, int64(3)).Return(ownedItem, nil)
		productRepo.On("GetByID", mock.Anything, int64(10)).Return(activeProduct(3), nil)
		repo.On("UpdateItemQuantity", mock.Anything, int64(3), 3).Return(nil)
		repo.On("GetCart", mock.Anything, int64(1)).Return(&Cart{ID: 5}, nil)

		_, err := svc.UpdateItem(context.Background(), UpdateItemParams{UserID: 1, ItemID: 3, Quantity: 3})
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("ForeignItem", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, new(MockProductRepository))

		foreign := &CartItem{ID: 3, CartID: 9, UserID: 2, ProductID: 10}
		repo.On("GetItemByID", mock.Anything, int64(3)).Return(foreign, nil)

		_, err := svc.UpdateItem(context.Background(), UpdateItemParams{UserID: 1, ItemID: 3, Quantity: 2})
		assert.ErrorIs(t, err, ErrNotOwner)
		repo.AssertNotCalled(t, "UpdateItemQuantity")
	})

	t.Run("ItemNotFound", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, new(MockProductRepository))

		repo.On("GetItemByID", mock.Anything, int64(404)).Return(nil, ErrCartItemNotFound)

		_, err := svc.UpdateItem(context.Background(), UpdateItemParams{UserID: 1, ItemID: 404, Quantity: 2})
		assert.ErrorIs(t, err, ErrCartItemNotFound)
	})

	t.Run("NonPositiveQuantity", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, new(MockProductRepository))

		repo.On("GetItemByID", mock.Anything, int64(3)).Return(ownedItem, nil)

		_, err := svc.UpdateItem(context.Background(), UpdateItemParams{UserID: 1, ItemID: 3, Quantity: 0})
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	})

	t.Run("ExceedsStock", func(t *testing.T) {
		repo := new(MockRepository)
		productRepo := new(MockProductRepository)
		svc := NewService(repo, productRepo)

		repo.On("GetItemByID", mock.Anything, int64(3)).Return(ownedItem, nil)
		productRepo.On("GetByID", mock.Anything, int64(10)).Return(activeProduct(3), nil)

		_, err := svc.UpdateItem(context.Background(), UpdateItemParams{UserID: 1, ItemID: 3, Quantity: 4})
		assert.ErrorIs(t, err, ErrInsufficientStock)
		repo.AssertNotCalled(t, "UpdateItemQuantity")
	})
}

func TestService_RemoveItem_ForeignItem(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, new(MockProductRepository))

	foreign := &CartItem{ID: 3, CartID: 9, UserID: 2}
	repo.On("GetItemByID", mock.Anything, int64(3)).Return(foreign, nil)

	_, err := svc.RemoveItem(context.Background(), 1, 3)
	assert.ErrorIs(t, err, ErrNotOwner)
	repo.AssertNotCalled(t, "DeleteItem")
}

func TestService_RemoveItem_Success(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, new(MockProductRepository))

	owned := &CartItem{ID: 3, CartID: 5, UserID: 1}
	repo.On("GetItemByID", mock.Anything, int64(3)).Return(owned, nil)
	repo.On("DeleteItem", mock.Anything, int64(3)).Return(nil)
	repo.On("GetCart", mock.Anything, int64(1)).Return(&Cart{ID: 5}, nil)

	_, err := svc.RemoveItem(context.Background(), 1, 3)
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestService_ClearCart(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, new(MockProductRepository))

	repo.On("Clear", mock.Anything, int64(1)).Return(nil)

	err := svc.ClearCart(context.Background(), 1)
	require.NoError(t, err)
}
