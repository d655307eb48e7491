package auth

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/nurpe/rumbos-envios/internal/model"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims is the access-token payload issued by the identity service.
type Claims struct {
	Role     string `json:"role"`
	DriverID string `json:"driver_id,omitempty"`
	jwt.RegisteredClaims
}

type Parser struct {
	secret []byte
}

func NewParser(secret string) *Parser {
	return &Parser{secret: []byte(secret)}
}

func (p *Parser) Parse(tokenString string) (model.Principal, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return p.secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return model.Principal{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return model.Principal{}, fmt.Errorf("%w: subject is not a uuid", ErrInvalidToken)
	}

	principal := model.Principal{UserID: userID, Role: model.UserRole(claims.Role)}
	switch principal.Role {
	case model.UserRoleAdmin, model.UserRoleOperator:
	case model.UserRoleDriver:
		driverID, err := uuid.Parse(claims.DriverID)
		if err != nil {
			return model.Principal{}, fmt.Errorf("%w: driver token without driver_id", ErrInvalidToken)
		}
		principal.DriverID = &driverID
	default:
		return model.Principal{}, fmt.Errorf("%w: unknown role %q", ErrInvalidToken, claims.Role)
	}
	return principal, nil
}

// Sign issues a token for principal. Used by the CLI and tests.
func (p *Parser) Sign(principal model.Principal, claims jwt.RegisteredClaims) (string, error) {
	claims.Subject = principal.UserID.String()
	payload := Claims{Role: string(principal.Role), RegisteredClaims: claims}
	if principal.DriverID != nil {
		payload.DriverID = principal.DriverID.String()
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, payload).SignedString(p.secret)
}
