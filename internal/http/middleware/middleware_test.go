package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mrwaste/wastecrm/internal/model"
)

type parserFunc func(string) (model.Principal, error)

func (f parserFunc) Parse(token string) (model.Principal, error) { return f(token) }

func newEngine(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handlers = append(handlers, func(c *gin.Context) { c.Status(http.StatusNoContent) })
	router.GET("/", handlers...)
	return router
}

func serve(router *gin.Engine, header string) int {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec.Code
}

func TestAuthAndRequireRole(t *testing.T) {
	parser := parserFunc(func(token string) (model.Principal, error) {
		switch token {
		case "admin":
			return model.Principal{UserID: uuid.New(), Role: model.RoleAdmin}, nil
		case "staff":
			return model.Principal{UserID: uuid.New(), Role: model.RoleStaff}, nil
		default:
			return model.Principal{}, errors.New("bad token")
		}
	})
	router := newEngine(Auth(parser), RequireRole(model.RoleAdmin))

	cases := []struct {
		header string
		want   int
	}{
		{"", http.StatusUnauthorized},
		{"Token admin", http.StatusUnauthorized},
		{"Bearer nope", http.StatusUnauthorized},
		{"Bearer staff", http.StatusForbidden},
		{"Bearer admin", http.StatusNoContent},
	}
	for _, tc := range cases {
		if got := serve(router, tc.header); got != tc.want {
			t.Errorf("%q: expected %d, got %d", tc.header, tc.want, got)
		}
	}
}

func TestRateLimit(t *testing.T) {
	router := newEngine(RateLimit(0.001, 2, zerolog.Nop()))

	for i := 0; i < 2; i++ {
		if got := serve(router, ""); got != http.StatusNoContent {
			t.Fatalf("request %d: expected %d, got %d", i, http.StatusNoContent, got)
		}
	}
	if got := serve(router, ""); got != http.StatusTooManyRequests {
		t.Fatalf("expected %d, got %d", http.StatusTooManyRequests, got)
	}
}
