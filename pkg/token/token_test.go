package token_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/fitkit/pkg/token"
)

type claims struct {
	SubscriptionID uuid.UUID `json:"sid"`
	AccountID      uuid.UUID `json:"aid"`
}

func TestGenerateParse(t *testing.T) {
	t.Parallel()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()
		want := claims{SubscriptionID: uuid.New(), AccountID: uuid.New()}

		tok, err := token.Generate(want, "secret")
		require.NoError(t, err)

		got, err := token.Parse[claims](tok, "secret")
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("wrong secret", func(t *testing.T) {
		t.Parallel()
		tok, err := token.Generate(claims{SubscriptionID: uuid.New()}, "secret")
		require.NoError(t, err)

		_, err = token.Parse[claims](tok, "other-secret")
		assert.ErrorIs(t, err, token.ErrSignatureMismatch)
	})

	t.Run("tampered payload", func(t *testing.T) {
		t.Parallel()
		tok, err := token.Generate(claims{SubscriptionID: uuid.New()}, "secret")
		require.NoError(t, err)

		_, err = token.Parse[claims]("x"+tok, "secret")
		assert.Error(t, err)
	})

	t.Run("malformed token", func(t *testing.T) {
		t.Parallel()
		_, err := token.Parse[claims]("not-a-token", "secret")
		assert.ErrorIs(t, err, token.ErrInvalidToken)
	})

	t.Run("empty token", func(t *testing.T) {
		t.Parallel()
		_, err := token.Parse[claims]("", "secret")
		assert.ErrorIs(t, err, token.ErrInvalidToken)
	})
}
