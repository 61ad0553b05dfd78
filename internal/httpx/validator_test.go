package httpx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateStruct(t *testing.T) {
	type form struct {
		Name   string `validate:"required"`
		Email  string `validate:"required,email"`
		Rating *int   `validate:"omitempty,gte=1,lte=5"`
	}

	t.Run("valid", func(t *testing.T) {
		details := ValidateStruct(form{Name: "Alice", Email: "alice@example.com"})
		assert.Nil(t, details)
	})

	t.Run("missing and malformed fields", func(t *testing.T) {
		details := ValidateStruct(form{Email: "not-an-email"})
		require.Len(t, details, 2)

		assert.Equal(t, "name", details[0].Field)
		assert.Contains(t, details[0].Message, "required")
		assert.Equal(t, "email", details[1].Field)
		assert.Contains(t, details[1].Message, "valid email")
	})

	t.Run("range tags", func(t *testing.T) {
		six := 6
		details := ValidateStruct(form{Name: "Alice", Email: "alice@example.com", Rating: &six})
		require.Len(t, details, 1)
		assert.Equal(t, "rating", details[0].Field)
		assert.Contains(t, details[0].Message, "at most 5")
	})
}
