package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	SellerName string  `validate:"required,max=255"`
	IMEI       *string `validate:"omitempty,len=15"`
	BuyPrice   string  `validate:"required"`
	Email      string  `validate:"omitempty,email"`
}

func TestValidateStructPasses(t *testing.T) {
	errs := ValidateStruct(&sampleRequest{SellerName: "Ali", BuyPrice: "100"})
	assert.Empty(t, errs)
}

func TestFieldErrorsNamesAndMessages(t *testing.T) {
	short := "123"
	errs := ValidateStruct(&sampleRequest{IMEI: &short, Email: "nope"})
	require.NotEmpty(t, errs)

	fields := FieldErrors(errs)
	assert.Equal(t, "The seller_name field is required", fields["seller_name"])
	assert.Equal(t, "The imei field must be 15 characters", fields["imei"])
	assert.Equal(t, "The email field must be a valid email address", fields["email"])
	assert.Contains(t, fields, "buy_price")
}
