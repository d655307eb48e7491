package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nurpe/rumbos-envios/internal/model"
)

func expiresIn(d time.Duration) jwt.RegisteredClaims {
	return jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(d))}
}

func TestParser(t *testing.T) {
	parser := NewParser("secret")

	t.Run("admin token", func(t *testing.T) {
		want := model.Principal{UserID: uuid.New(), Role: model.UserRoleAdmin}
		token, err := parser.Sign(want, expiresIn(time.Hour))
		require.NoError(t, err)

		got, err := parser.Parse(token)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("driver token carries the driver id", func(t *testing.T) {
		driverID := uuid.New()
		token, err := parser.Sign(model.Principal{UserID: uuid.New(), Role: model.UserRoleDriver, DriverID: &driverID}, expiresIn(time.Hour))
		require.NoError(t, err)

		got, err := parser.Parse(token)
		require.NoError(t, err)
		require.NotNil(t, got.DriverID)
		assert.Equal(t, driverID, *got.DriverID)
	})

	t.Run("driver token without driver id", func(t *testing.T) {
		token, err := parser.Sign(model.Principal{UserID: uuid.New(), Role: model.UserRoleDriver}, expiresIn(time.Hour))
		require.NoError(t, err)
		_, err = parser.Parse(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects expired, unsigned and foreign tokens", func(t *testing.T) {
		principal := model.Principal{UserID: uuid.New(), Role: model.UserRoleOperator}

		expired, err := parser.Sign(principal, expiresIn(-time.Minute))
		require.NoError(t, err)
		_, err = parser.Parse(expired)
		assert.ErrorIs(t, err, ErrInvalidToken)

		noExpiry, err := parser.Sign(principal, jwt.RegisteredClaims{})
		require.NoError(t, err)
		_, err = parser.Parse(noExpiry)
		assert.ErrorIs(t, err, ErrInvalidToken)

		foreign, err := NewParser("other").Sign(principal, expiresIn(time.Hour))
		require.NoError(t, err)
		_, err = parser.Parse(foreign)
		assert.ErrorIs(t, err, ErrInvalidToken)

		_, err = parser.Parse("garbage")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects unknown roles", func(t *testing.T) {
		token, err := parser.Sign(model.Principal{UserID: uuid.New(), Role: "GUEST"}, expiresIn(time.Hour))
		require.NoError(t, err)
		_, err = parser.Parse(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
