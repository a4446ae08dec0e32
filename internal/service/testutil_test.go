package service

import (
	"testing"

	"github.com/MechekakYounes/Phones-Store-Management/internal/model"
	"github.com/MechekakYounes/Phones-Store-Management/internal/ws"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&model.User{}, &model.Brand{}, &model.Customer{}, &model.Supplier{},
		&model.Product{}, &model.BuyPhone{}, &model.Sale{}, &model.SaleItem{},
		&model.Purchase{}, &model.PurchaseItem{}, &model.Exchange{},
	)
	require.NoError(t, err)

	return db
}

func newTestHub() *ws.Hub {
	hub := ws.NewHub()
	go hub.Run()
	return hub
}

func seedUser(t *testing.T, db *gorm.DB, role string) *model.User {
	t.Helper()

	user := &model.User{
		Name:     "Test " + role,
		Username: role + "-tester",
		Role:     role,
		IsActive: true,
	}
	require.NoError(t, user.SetPassword("secret-pass"))
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedBrand(t *testing.T, db *gorm.DB, name string) *model.Brand {
	t.Helper()

	brand := &model.Brand{Name: name}
	require.NoError(t, db.Create(brand).Error)
	return brand
}
