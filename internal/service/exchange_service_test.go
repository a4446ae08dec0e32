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

func newExchangeService(t *testing.T, db *gorm.DB) ExchangeService {
	t.Helper()
	return NewExchangeService(
		repository.NewExchangeRepo(db),
		repository.NewSaleRepo(db),
		repository.NewBuyPhoneRepo(db),
		repository.NewCustomerRepo(db),
		repository.NewProductRepo(db),
		db,
		newTestHub(),
	)
}

func exchangeReq(brandID, soldPhoneID string) *RecordExchangeRequest {
	return &RecordExchangeRequest{
		CustomerName:      "Amine",
		CustomerPhone:     "0661234567",
		SoldPhoneID:       soldPhoneID,
		SoldPrice:         decimal.NewFromInt(200),
		ReceivedBrandID:   brandID,
		ReceivedModel:     "iPhone 11",
		ReceivedIMEI:      "356938035643809",
		ReceivedCondition: "fair",
		ReceivedValue:     decimal.NewFromInt(80),
	}
}

func TestRecordExchangeCreatesExactlyOneOfEach(t *testing.T) {
	db := newTestDB(t)
	brand := seedBrand(t, db, "Apple")
	actor := seedUser(t, db, model.RoleSeller)
	invSvc := newInventoryService(t, db)
	exSvc := newExchangeService(t, db)

	// Listed resell is 156 (good, 120 buy); the handover is negotiated at 200
	soldPhone, err := invSvc.CreatePhone(createPhoneReq(brand.ID.String(), "good", 120), actor)
	require.NoError(t, err)

	exchange, err := exSvc.RecordExchange(exchangeReq(brand.ID.String(), soldPhone.ID.String()), actor)
	require.NoError(t, err)

	// difference = negotiated sold price minus received value, not the
	// listed resell price
	assert.True(t, exchange.DifferenceAmount.Equal(decimal.NewFromInt(120)), "got %s", exchange.DifferenceAmount)
	assert.Equal(t, model.ExchangeStatusCompleted, exchange.Status)

	var phones, sales, exchanges, customers int64
	require.NoError(t, db.Model(&model.BuyPhone{}).Count(&phones).Error)
	require.NoError(t, db.Model(&model.Sale{}).Count(&sales).Error)
	require.NoError(t, db.Model(&model.Exchange{}).Count(&exchanges).Error)
	require.NoError(t, db.Model(&model.Customer{}).Count(&customers).Error)
	assert.EqualValues(t, 2, phones) // the shop phone plus the trade-in
	assert.EqualValues(t, 1, sales)
	assert.EqualValues(t, 1, exchanges)
	assert.EqualValues(t, 1, customers)

	// Outgoing phone sold, trade-in received
	var outgoing model.BuyPhone
	require.NoError(t, db.First(&outgoing, "id = ?", soldPhone.ID).Error)
	assert.Equal(t, model.PhoneStatusSold, outgoing.Status)
	assert.NotNil(t, outgoing.SoldDate)

	require.NotNil(t, exchange.BuyPhone)
	assert.Equal(t, model.PhoneStatusReceived, exchange.BuyPhone.Status)
	assert.True(t, exchange.BuyPhone.BuyPrice.Equal(decimal.NewFromInt(80)))

	// The customer pays the positive difference
	var sale model.Sale
	require.NoError(t, db.First(&sale).Error)
	assert.True(t, sale.PaidAmount.Equal(decimal.NewFromInt(120)), "got %s", sale.PaidAmount)
	assert.True(t, sale.TotalAmount.Equal(decimal.NewFromInt(200)))
}

func TestRecordExchangeShopOwesCustomer(t *testing.T) {
	db := newTestDB(t)
	brand := seedBrand(t, db, "Apple")
	actor := seedUser(t, db, model.RoleSeller)
	invSvc := newInventoryService(t, db)
	exSvc := newExchangeService(t, db)

	soldPhone, err := invSvc.CreatePhone(createPhoneReq(brand.ID.String(), "good", 50), actor)
	require.NoError(t, err)

	req := exchangeReq(brand.ID.String(), soldPhone.ID.String())
	req.SoldPrice = decimal.NewFromInt(60)
	req.ReceivedValue = decimal.NewFromInt(100)

	exchange, err := exSvc.RecordExchange(req, actor)
	require.NoError(t, err)

	// Negative difference: the shop pays out, the customer pays nothing
	assert.True(t, exchange.DifferenceAmount.Equal(decimal.NewFromInt(-40)), "got %s", exchange.DifferenceAmount)

	var sale model.Sale
	require.NoError(t, db.First(&sale).Error)
	assert.True(t, sale.PaidAmount.IsZero())
}

func TestRecordExchangeMissingSoldPhoneRollsBack(t *testing.T) {
	db := newTestDB(t)
	brand := seedBrand(t, db, "Apple")
	actor := seedUser(t, db, model.RoleSeller)
	exSvc := newExchangeService(t, db)

	_, err := exSvc.RecordExchange(exchangeReq(brand.ID.String(), uuid.NewString()), actor)
	assert.ErrorIs(t, err, ErrPhoneNotFound)

	// Nothing survives the rollback: no trade-in phone, no sale, no
	// exchange, no customer.
	var phones, sales, exchanges, customers int64
	require.NoError(t, db.Model(&model.BuyPhone{}).Count(&phones).Error)
	require.NoError(t, db.Model(&model.Sale{}).Count(&sales).Error)
	require.NoError(t, db.Model(&model.Exchange{}).Count(&exchanges).Error)
	require.NoError(t, db.Model(&model.Customer{}).Count(&customers).Error)
	assert.Zero(t, phones)
	assert.Zero(t, sales)
	assert.Zero(t, exchanges)
	assert.Zero(t, customers)
}

func TestExchangeCancelIsPureStatusFlip(t *testing.T) {
	db := newTestDB(t)
	brand := seedBrand(t, db, "Apple")
	actor := seedUser(t, db, model.RoleSeller)
	invSvc := newInventoryService(t, db)
	exSvc := newExchangeService(t, db)

	soldPhone, err := invSvc.CreatePhone(createPhoneReq(brand.ID.String(), "good", 120), actor)
	require.NoError(t, err)

	exchange, err := exSvc.RecordExchange(exchangeReq(brand.ID.String(), soldPhone.ID.String()), actor)
	require.NoError(t, err)

	cancelled, err := exSvc.Cancel(exchange.ID, actor)
	require.NoError(t, err)
	assert.Equal(t, model.ExchangeStatusCancelled, cancelled.Status)

	// No reversal: the outgoing phone stays sold and the sale stays put
	var outgoing model.BuyPhone
	require.NoError(t, db.First(&outgoing, "id = ?", soldPhone.ID).Error)
	assert.Equal(t, model.PhoneStatusSold, outgoing.Status)

	var sales int64
	require.NoError(t, db.Model(&model.Sale{}).Count(&sales).Error)
	assert.EqualValues(t, 1, sales)
}

func TestExchangeDelete(t *testing.T) {
	db := newTestDB(t)
	brand := seedBrand(t, db, "Apple")
	actor := seedUser(t, db, model.RoleSeller)
	invSvc := newInventoryService(t, db)
	exSvc := newExchangeService(t, db)

	soldPhone, err := invSvc.CreatePhone(createPhoneReq(brand.ID.String(), "good", 120), actor)
	require.NoError(t, err)
	exchange, err := exSvc.RecordExchange(exchangeReq(brand.ID.String(), soldPhone.ID.String()), actor)
	require.NoError(t, err)

	require.NoError(t, exSvc.Delete(exchange.ID, actor))
	_, err = exSvc.GetExchange(exchange.ID)
	assert.ErrorIs(t, err, ErrExchangeNotFound)

	err = exSvc.Delete(uuid.New(), actor)
	assert.ErrorIs(t, err, ErrExchangeNotFound)
}

func TestRecordExchangeDuplicateReceivedIMEI(t *testing.T) {
	db := newTestDB(t)
	brand := seedBrand(t, db, "Apple")
	actor := seedUser(t, db, model.RoleSeller)
	invSvc := newInventoryService(t, db)
	exSvc := newExchangeService(t, db)

	imei := "490154203237518"
	req := createPhoneReq(brand.ID.String(), "good", 120)
	req.IMEI = &imei
	_, err := invSvc.CreatePhone(req, actor)
	require.NoError(t, err)

	soldPhone, err := invSvc.CreatePhone(createPhoneReq(brand.ID.String(), "good", 120), actor)
	require.NoError(t, err)

	exReq := exchangeReq(brand.ID.String(), soldPhone.ID.String())
	exReq.ReceivedIMEI = imei
	_, err = exSvc.RecordExchange(exReq, actor)
	assert.ErrorIs(t, err, ErrDuplicateIMEI)
}

func TestRecordExchangeReceivedResellPriceOverride(t *testing.T) {
	db := newTestDB(t)
	brand := seedBrand(t, db, "Apple")
	actor := seedUser(t, db, model.RoleSeller)
	invSvc := newInventoryService(t, db)
	exSvc := newExchangeService(t, db)

	soldPhone, err := invSvc.CreatePhone(createPhoneReq(brand.ID.String(), "good", 120), actor)
	require.NoError(t, err)

	// Default: the trade-in is listed at its credited value
	exchange, err := exSvc.RecordExchange(exchangeReq(brand.ID.String(), soldPhone.ID.String()), actor)
	require.NoError(t, err)
	require.NotNil(t, exchange.BuyPhone)
	assert.True(t, exchange.BuyPhone.ResellPrice.Equal(decimal.NewFromInt(80)))

	// Explicit resell price wins
	soldPhone2, err := invSvc.CreatePhone(createPhoneReq(brand.ID.String(), "good", 120), actor)
	require.NoError(t, err)
	req := exchangeReq(brand.ID.String(), soldPhone2.ID.String())
	req.ReceivedIMEI = "356938035643810"
	resell := decimal.NewFromInt(95)
	req.ReceivedResellPrice = &resell
	exchange, err = exSvc.RecordExchange(req, actor)
	require.NoError(t, err)
	require.NotNil(t, exchange.BuyPhone)
	assert.True(t, exchange.BuyPhone.ResellPrice.Equal(resell))
	assert.True(t, exchange.BuyPhone.BuyPrice.Equal(decimal.NewFromInt(80)))
}

func TestRecordExchangeRequiredFields(t *testing.T) {
	db := newTestDB(t)
	brand := seedBrand(t, db, "Apple")
	actor := seedUser(t, db, model.RoleSeller)
	exSvc := newExchangeService(t, db)

	req := exchangeReq(brand.ID.String(), uuid.NewString())
	req.CustomerPhone = ""
	req.ReceivedIMEI = ""

	_, err := exSvc.RecordExchange(req, actor)
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Fields, "customer_phone")
	assert.Contains(t, validationErr.Fields, "received_imei")
}
