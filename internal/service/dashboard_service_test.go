package service

import (
	"testing"
	"time"

	"github.com/MechekakYounes/Phones-Store-Management/internal/model"
	"github.com/MechekakYounes/Phones-Store-Management/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedSaleAt(t *testing.T, db *gorm.DB, amount, discount int64, at time.Time) *model.Sale {
	t.Helper()

	sale := &model.Sale{
		TotalAmount:    decimal.NewFromInt(amount),
		DiscountAmount: decimal.NewFromInt(discount),
		PaymentStatus:  model.PaymentPaid,
	}
	sale.CreatedAt = at
	require.NoError(t, db.Create(sale).Error)
	return sale
}

func TestDashboardChangePercentAgainstYesterday(t *testing.T) {
	db := newTestDB(t)
	svc := NewDashboardService(repository.NewSaleRepo(db))

	now := time.Now()
	yesterday := now.AddDate(0, 0, -1)
	seedSaleAt(t, db, 100, 0, yesterday)
	seedSaleAt(t, db, 150, 0, now)

	stats, err := svc.Statistics()
	require.NoError(t, err)
	assert.True(t, stats.TodaySales.Amount.Equal(decimal.NewFromInt(150)))
	assert.True(t, stats.TodaySales.ChangePercent.Equal(decimal.NewFromInt(50)),
		"got %s", stats.TodaySales.ChangePercent)
}

func TestDashboardChangePercentFromZeroIsHundred(t *testing.T) {
	db := newTestDB(t)
	svc := NewDashboardService(repository.NewSaleRepo(db))

	seedSaleAt(t, db, 90, 0, time.Now())

	stats, err := svc.Statistics()
	require.NoError(t, err)
	assert.True(t, stats.TodaySales.ChangePercent.Equal(decimal.NewFromInt(100)))
}

func TestDashboardChangePercentBothZero(t *testing.T) {
	db := newTestDB(t)
	svc := NewDashboardService(repository.NewSaleRepo(db))

	stats, err := svc.Statistics()
	require.NoError(t, err)
	assert.True(t, stats.TodaySales.Amount.IsZero())
	assert.True(t, stats.TodaySales.ChangePercent.IsZero())
	assert.True(t, stats.WeeklySales.ChangePercent.IsZero())
}

func TestDashboardNetOfDiscount(t *testing.T) {
	db := newTestDB(t)
	svc := NewDashboardService(repository.NewSaleRepo(db))

	seedSaleAt(t, db, 150, 10, time.Now())

	stats, err := svc.Statistics()
	require.NoError(t, err)
	assert.True(t, stats.TodaySales.Amount.Equal(decimal.NewFromInt(140)),
		"got %s", stats.TodaySales.Amount)
}

func TestDashboardTodayProfit(t *testing.T) {
	db := newTestDB(t)
	brand := seedBrand(t, db, "Samsung")
	actor := seedUser(t, db, model.RoleSeller)
	invSvc := newInventoryService(t, db)
	saleSvc := newSaleService(t, db)
	svc := NewDashboardService(repository.NewSaleRepo(db))

	phone, err := invSvc.CreatePhone(createPhoneReq(brand.ID.String(), "good", 100), actor)
	require.NoError(t, err)
	_, err = saleSvc.RecordSale(&RecordSaleRequest{
		BuyerName:   "Karim",
		BuyerPhone:  "0550123456",
		BuyPhoneID:  phone.ID.String(),
		TotalAmount: decimal.NewFromInt(150),
	}, actor)
	require.NoError(t, err)

	stats, err := svc.Statistics()
	require.NoError(t, err)
	// 150 sold minus 100 paid for the phone
	assert.True(t, stats.TodayProfit.Equal(decimal.NewFromInt(50)), "got %s", stats.TodayProfit)
}

func TestDashboardRecentSalesCappedAtFour(t *testing.T) {
	db := newTestDB(t)
	svc := NewDashboardService(repository.NewSaleRepo(db))

	now := time.Now()
	for i := 0; i < 6; i++ {
		seedSaleAt(t, db, int64(100+i), 0, now.Add(-time.Duration(i)*time.Minute))
	}

	stats, err := svc.Statistics()
	require.NoError(t, err)
	require.Len(t, stats.RecentSales, 4)
	// Newest first
	assert.True(t, stats.RecentSales[0].CreatedAt.After(stats.RecentSales[1].CreatedAt))
}
