package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/mrwaste/wastecrm/internal/model"
)

func TestIssueAndParse(t *testing.T) {
	p := NewParser("secret")
	userID := uuid.New()

	token, err := p.Issue(userID, model.RoleAdmin, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	principal, err := p.Parse(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if principal.UserID != userID || !principal.IsAdmin() {
		t.Fatalf("unexpected principal %+v", principal)
	}
}

func TestParseRejectsWrongSecretAndExpired(t *testing.T) {
	issuer := NewParser("other")
	token, _ := issuer.Issue(uuid.New(), model.RoleStaff, jwt.RegisteredClaims{})
	if _, err := NewParser("secret").Parse(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}

	p := NewParser("secret")
	expired, _ := p.Issue(uuid.New(), model.RoleStaff, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	})
	if _, err := p.Parse(expired); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestParseDefaultsRole(t *testing.T) {
	p := NewParser("secret")
	token, _ := p.Issue(uuid.New(), "", jwt.RegisteredClaims{})
	principal, err := p.Parse(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if principal.Role != model.RoleStaff {
		t.Fatalf("expected staff role, got %q", principal.Role)
	}
}
