package service

import (
	"testing"

	"github.com/MechekakYounes/Phones-Store-Management/internal/model"
	"github.com/MechekakYounes/Phones-Store-Management/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newSaleService(t *testing.T, db *gorm.DB) SaleService {
	t.Helper()
	return NewSaleService(
		repository.NewSaleRepo(db),
		repository.NewBuyPhoneRepo(db),
		repository.NewCustomerRepo(db),
		db,
		newTestHub(),
	)
}

func TestRecordSaleHappyPath(t *testing.T) {
	db := newTestDB(t)
	brand := seedBrand(t, db, "Samsung")
	actor := seedUser(t, db, model.RoleSeller)
	invSvc := newInventoryService(t, db)
	saleSvc := newSaleService(t, db)

	phone, err := invSvc.CreatePhone(createPhoneReq(brand.ID.String(), "good", 100), actor)
	require.NoError(t, err)

	discount := decimal.NewFromInt(10)
	receipt, err := saleSvc.RecordSale(&RecordSaleRequest{
		BuyerName:      "Karim",
		BuyerPhone:     "0550123456",
		BuyerAddress:   "12 Rue Didouche",
		BuyPhoneID:     phone.ID.String(),
		TotalAmount:    decimal.NewFromInt(150),
		DiscountAmount: &discount,
	}, actor)
	require.NoError(t, err)

	assert.Equal(t, "Karim", receipt.BuyerName)
	assert.True(t, receipt.Price.Equal(decimal.NewFromInt(150)))
	assert.True(t, receipt.Discount.Equal(discount))
	assert.True(t, receipt.Total.Equal(decimal.NewFromInt(140)), "got %s", receipt.Total)

	// Phone flipped to sold with sold_to and sold_date
	var reloaded model.BuyPhone
	require.NoError(t, db.First(&reloaded, "id = ?", phone.ID).Error)
	assert.Equal(t, model.PhoneStatusSold, reloaded.Status)
	assert.NotNil(t, reloaded.SoldDate)
	assert.NotNil(t, reloaded.SoldTo)

	// One customer, one paid sale
	var customer model.Customer
	require.NoError(t, db.First(&customer, "phone = ?", "0550123456").Error)
	assert.Equal(t, customer.ID, *reloaded.SoldTo)

	var sale model.Sale
	require.NoError(t, db.First(&sale).Error)
	assert.Equal(t, model.PaymentPaid, sale.PaymentStatus)
	require.NotNil(t, sale.CreatedByID)
	assert.Equal(t, actor.ID, *sale.CreatedByID)
}

func TestRecordSaleReusesCustomerByPhone(t *testing.T) {
	db := newTestDB(t)
	brand := seedBrand(t, db, "Samsung")
	actor := seedUser(t, db, model.RoleSeller)
	invSvc := newInventoryService(t, db)
	saleSvc := newSaleService(t, db)

	for i := 0; i < 2; i++ {
		phone, err := invSvc.CreatePhone(createPhoneReq(brand.ID.String(), "good", 100), actor)
		require.NoError(t, err)

		_, err = saleSvc.RecordSale(&RecordSaleRequest{
			BuyerName:   "Karim",
			BuyerPhone:  "0550123456",
			BuyPhoneID:  phone.ID.String(),
			TotalAmount: decimal.NewFromInt(150),
		}, actor)
		require.NoError(t, err)
	}

	var count int64
	require.NoError(t, db.Model(&model.Customer{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestRecordSaleMissingPhoneRollsBackEverything(t *testing.T) {
	db := newTestDB(t)
	actor := seedUser(t, db, model.RoleSeller)
	saleSvc := newSaleService(t, db)

	_, err := saleSvc.RecordSale(&RecordSaleRequest{
		BuyerName:   "Ghost Buyer",
		BuyerPhone:  "0660999888",
		BuyPhoneID:  uuid.NewString(),
		TotalAmount: decimal.NewFromInt(150),
	}, actor)
	assert.ErrorIs(t, err, ErrPhoneNotFound)

	var sales, customers int64
	require.NoError(t, db.Model(&model.Sale{}).Count(&sales).Error)
	require.NoError(t, db.Model(&model.Customer{}).Count(&customers).Error)
	assert.Zero(t, sales)
	assert.Zero(t, customers)
}

func TestRecordSaleAlreadySoldPhoneRejected(t *testing.T) {
	db := newTestDB(t)
	brand := seedBrand(t, db, "Samsung")
	actor := seedUser(t, db, model.RoleSeller)
	invSvc := newInventoryService(t, db)
	saleSvc := newSaleService(t, db)

	phone, err := invSvc.CreatePhone(createPhoneReq(brand.ID.String(), "good", 100), actor)
	require.NoError(t, err)
	_, err = invSvc.SellPhone(phone.ID, decimal.NewFromInt(150), actor)
	require.NoError(t, err)

	_, err = saleSvc.RecordSale(&RecordSaleRequest{
		BuyerName:   "Second Buyer",
		BuyerPhone:  "0770111222",
		BuyPhoneID:  phone.ID.String(),
		TotalAmount: decimal.NewFromInt(200),
	}, actor)
	assert.ErrorIs(t, err, ErrPhoneAlreadySold)

	// The rejected sale left nothing behind
	var sales int64
	require.NoError(t, db.Model(&model.Sale{}).Count(&sales).Error)
	assert.Zero(t, sales)
}

func TestRecordSaleValidation(t *testing.T) {
	db := newTestDB(t)
	actor := seedUser(t, db, model.RoleSeller)
	saleSvc := newSaleService(t, db)

	_, err := saleSvc.RecordSale(&RecordSaleRequest{
		BuyerPhone:  "0550123456",
		BuyPhoneID:  uuid.NewString(),
		TotalAmount: decimal.NewFromInt(100),
	}, actor)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Fields, "buyer_name")
}
