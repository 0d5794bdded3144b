// Package utils provides validation and formatting helpers shared by the
// escrow engine and its callers.
package utils

import (
	"fmt"
	"math/big"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// ValidateStruct validates v using its struct tags.
func ValidateStruct(v interface{}) error {
	return validate.Struct(v)
}

// ValidateFeeBps checks that a fee rate is within 0-10000 basis points.
func ValidateFeeBps(bps uint16) error {
	if bps > 10000 {
		return fmt.Errorf("fee rate %d exceeds 10000 basis points", bps)
	}
	return nil
}

// ValidateAmount checks that a payment amount is nonzero.
func ValidateAmount(amount uint64) error {
	if amount == 0 {
		return fmt.Errorf("amount must be nonzero")
	}
	return nil
}

// FormatTokenAmount renders an atomic token amount as a decimal string for
// the mint's decimal count, e.g. 500000 with 6 decimals -> "0.5".
func FormatTokenAmount(amount uint64, decimals int32) string {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(amount), -decimals).String()
}
