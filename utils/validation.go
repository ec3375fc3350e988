package utils

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/go-playground/validator/v10"

	"github.com/vitwit/inkcall/types"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	// Register custom validators
	_ = validate.RegisterValidation("selector", validateSelectorTag)
}

// ValidateConfig checks cfg against its struct tags.
func ValidateConfig(cfg *types.Config) error {
	if err := validate.Struct(cfg); err != nil {
		return &types.Error{
			Code:    types.ErrInvalidConfig,
			Message: fmt.Sprintf("validation failed: %v", err),
		}
	}
	return nil
}

// ValidateStruct checks v against its struct tags, including the custom
// "selector" tag.
func ValidateStruct(v any) error {
	return validate.Struct(v)
}

// validateSelectorTag accepts 0x-prefixed hex strings of exactly four bytes.
func validateSelectorTag(fl validator.FieldLevel) bool {
	b, err := hexutil.Decode(fl.Field().String())
	return err == nil && len(b) == 4
}
