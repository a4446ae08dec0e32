package service

import (
	"strings"
	"testing"

	"github.com/MechekakYounes/Phones-Store-Management/internal/model"
	"github.com/MechekakYounes/Phones-Store-Management/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newPurchaseService(t *testing.T, db *gorm.DB) PurchaseService {
	t.Helper()
	return NewPurchaseService(
		repository.NewPurchaseRepo(db),
		repository.NewSupplierRepo(db),
		repository.NewProductRepo(db),
		db,
	)
}

func seedSupplier(t *testing.T, db *gorm.DB) *model.Supplier {
	t.Helper()
	supplier := &model.Supplier{Name: "TechDistrib"}
	require.NoError(t, db.Create(supplier).Error)
	return supplier
}

func seedProduct(t *testing.T, db *gorm.DB, quantity int) *model.Product {
	t.Helper()
	product := &model.Product{Name: "iPhone 13 Case", Quantity: quantity}
	require.NoError(t, db.Create(product).Error)
	return product
}

func TestCreatePurchaseComputesTotalAndInvoice(t *testing.T) {
	db := newTestDB(t)
	actor := seedUser(t, db, model.RoleInventory)
	supplier := seedSupplier(t, db)
	svc := newPurchaseService(t, db)

	purchase, err := svc.CreatePurchase(&CreatePurchaseRequest{
		SupplierID: supplier.ID.String(),
		Items: []PurchaseItemRequest{
			{Description: "Cases", Quantity: 10, UnitPrice: decimal.NewFromInt(5)},
			{Description: "Chargers", Quantity: 3, UnitPrice: decimal.NewFromInt(20)},
		},
	}, actor)
	require.NoError(t, err)

	// 10×5 + 3×20 = 110
	assert.True(t, purchase.TotalAmount.Equal(decimal.NewFromInt(110)), "got %s", purchase.TotalAmount)
	assert.Equal(t, model.PurchaseStatusPending, purchase.Status)
	assert.True(t, strings.HasPrefix(purchase.InvoiceNumber, "PUR-"), "got %s", purchase.InvoiceNumber)
	assert.Len(t, purchase.Items, 2)
}

func TestCreatePurchaseUnknownSupplier(t *testing.T) {
	db := newTestDB(t)
	actor := seedUser(t, db, model.RoleInventory)
	svc := newPurchaseService(t, db)

	_, err := svc.CreatePurchase(&CreatePurchaseRequest{
		SupplierID: "00000000-0000-0000-0000-000000000001",
		Items: []PurchaseItemRequest{
			{Description: "Cases", Quantity: 1, UnitPrice: decimal.NewFromInt(5)},
		},
	}, actor)
	assert.ErrorIs(t, err, ErrSupplierNotFound)
}

func TestCompletePurchaseMovesStock(t *testing.T) {
	db := newTestDB(t)
	actor := seedUser(t, db, model.RoleInventory)
	supplier := seedSupplier(t, db)
	product := seedProduct(t, db, 2)
	svc := newPurchaseService(t, db)

	productID := product.ID.String()
	purchase, err := svc.CreatePurchase(&CreatePurchaseRequest{
		SupplierID: supplier.ID.String(),
		Items: []PurchaseItemRequest{
			{ProductID: &productID, Quantity: 5, UnitPrice: decimal.NewFromInt(30)},
		},
	}, actor)
	require.NoError(t, err)

	completed, err := svc.CompletePurchase(purchase.ID, actor)
	require.NoError(t, err)
	assert.Equal(t, model.PurchaseStatusCompleted, completed.Status)

	var reloaded model.Product
	require.NoError(t, db.First(&reloaded, "id = ?", product.ID).Error)
	assert.Equal(t, 7, reloaded.Quantity)

	// Completing twice does not double the stock
	_, err = svc.CompletePurchase(purchase.ID, actor)
	require.NoError(t, err)
	require.NoError(t, db.First(&reloaded, "id = ?", product.ID).Error)
	assert.Equal(t, 7, reloaded.Quantity)
}

func TestCancelCompletedPurchaseReversesStock(t *testing.T) {
	db := newTestDB(t)
	actor := seedUser(t, db, model.RoleInventory)
	supplier := seedSupplier(t, db)
	product := seedProduct(t, db, 0)
	svc := newPurchaseService(t, db)

	productID := product.ID.String()
	purchase, err := svc.CreatePurchase(&CreatePurchaseRequest{
		SupplierID: supplier.ID.String(),
		Items: []PurchaseItemRequest{
			{ProductID: &productID, Quantity: 4, UnitPrice: decimal.NewFromInt(30)},
		},
	}, actor)
	require.NoError(t, err)

	_, err = svc.CompletePurchase(purchase.ID, actor)
	require.NoError(t, err)

	cancelled, err := svc.CancelPurchase(purchase.ID, actor)
	require.NoError(t, err)
	assert.Equal(t, model.PurchaseStatusCancelled, cancelled.Status)

	var reloaded model.Product
	require.NoError(t, db.First(&reloaded, "id = ?", product.ID).Error)
	assert.Equal(t, 0, reloaded.Quantity)
}

func TestCancelPendingPurchaseLeavesStockAlone(t *testing.T) {
	db := newTestDB(t)
	actor := seedUser(t, db, model.RoleInventory)
	supplier := seedSupplier(t, db)
	product := seedProduct(t, db, 3)
	svc := newPurchaseService(t, db)

	productID := product.ID.String()
	purchase, err := svc.CreatePurchase(&CreatePurchaseRequest{
		SupplierID: supplier.ID.String(),
		Items: []PurchaseItemRequest{
			{ProductID: &productID, Quantity: 4, UnitPrice: decimal.NewFromInt(30)},
		},
	}, actor)
	require.NoError(t, err)

	_, err = svc.CancelPurchase(purchase.ID, actor)
	require.NoError(t, err)

	var reloaded model.Product
	require.NoError(t, db.First(&reloaded, "id = ?", product.ID).Error)
	assert.Equal(t, 3, reloaded.Quantity)
}
