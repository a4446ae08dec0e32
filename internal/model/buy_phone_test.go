package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestConditionMultiplier(t *testing.T) {
	cases := map[string]string{
		ConditionExcellent: "1.5",
		ConditionVeryGood:  "1.4",
		ConditionGood:      "1.3",
		ConditionFair:      "1.2",
		ConditionDamaged:   "1.1",
		ConditionBroken:    "1",
		"something-else":   "1.3", // unknown falls back to good
	}

	for condition, expected := range cases {
		mult := ConditionMultiplier(condition)
		assert.True(t, mult.Equal(decimal.RequireFromString(expected)),
			"%s: got %s", condition, mult)
	}
}

func TestSuggestedResellPriceRounds(t *testing.T) {
	phone := &BuyPhone{
		BuyPrice:  decimal.RequireFromString("99.99"),
		Condition: ConditionGood,
	}
	// 99.99 × 1.3 = 129.987 → 129.99
	assert.Equal(t, "129.99", phone.SuggestedResellPrice().StringFixed(2))

	phone = &BuyPhone{BuyPrice: decimal.NewFromInt(100), Condition: ConditionGood}
	assert.Equal(t, "130.00", phone.SuggestedResellPrice().StringFixed(2))
}

func TestPhoneStatusHelpers(t *testing.T) {
	phone := &BuyPhone{Status: PhoneStatusReceived}
	assert.True(t, phone.NeedsTesting())
	assert.False(t, phone.IsAvailable())
	assert.False(t, phone.IsSold())

	phone.Status = PhoneStatusTested
	assert.True(t, phone.IsAvailable())

	phone.Status = PhoneStatusListed
	assert.True(t, phone.IsAvailable())

	now := time.Now()
	phone.Status = PhoneStatusSold
	phone.SoldDate = &now
	assert.True(t, phone.IsSold())
	assert.False(t, phone.IsAvailable())
}

func TestDescription(t *testing.T) {
	phone := &BuyPhone{
		Brand:   &Brand{Name: "Samsung"},
		Model:   "Galaxy S21",
		Storage: "128GB",
		Color:   "Black",
	}
	assert.Equal(t, "Samsung Galaxy S21 128GB (Black)", phone.Description())

	bare := &BuyPhone{Model: "Galaxy S21"}
	assert.Equal(t, "Galaxy S21", bare.Description())
}
