package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNewSubscriber(t *testing.T) {
	t.Parallel()

	t.Run("valid", func(t *testing.T) {
		got, err := ParseNewSubscriber("Ursula Le Guin", "ursula@example.com")
		require.NoError(t, err)
		assert.Equal(t, "Ursula Le Guin", got.Name.String())
		assert.Equal(t, "ursula@example.com", got.Email.String())
	})

	t.Run("invalid name reported first", func(t *testing.T) {
		_, err := ParseNewSubscriber("", "not-an-email")
		assert.ErrorIs(t, err, ErrInvalidName)
	})

	t.Run("invalid email", func(t *testing.T) {
		_, err := ParseNewSubscriber("Ursula", "not-an-email")
		assert.ErrorIs(t, err, ErrInvalidEmail)
	})
}
