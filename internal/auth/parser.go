package auth

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/mrwaste/wastecrm/internal/model"
)

var ErrInvalidToken = errors.New("invalid token")

type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type Parser struct {
	secret []byte
}

func NewParser(secret string) *Parser {
	return &Parser{secret: []byte(secret)}
}

// Parse verifies an HS256 access token and returns the staff member it names.
func (p *Parser) Parse(token string) (model.Principal, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return p.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		return model.Principal{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return model.Principal{}, fmt.Errorf("%w: bad subject", ErrInvalidToken)
	}

	role := claims.Role
	if role == "" {
		role = model.RoleStaff
	}
	return model.Principal{UserID: userID, Role: role}, nil
}

// Issue signs a token for userID; used by crmctl and tests.
func (p *Parser) Issue(userID uuid.UUID, role string, claims jwt.RegisteredClaims) (string, error) {
	claims.Subject = userID.String()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{Role: role, RegisteredClaims: claims})
	return token.SignedString(p.secret)
}
