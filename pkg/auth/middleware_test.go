package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hugohenrick/billing-dashboard/pkg/owner"
)

func TestJWTAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	s, _ := NewJWTService("test-secret", time.Hour, "")
	token, _ := s.GenerateToken("user-42", "", "")

	router := gin.New()
	router.GET("/me", JWTAuthMiddleware(s), func(c *gin.Context) {
		fromCtx, _ := owner.FromContext(c.Request.Context())
		c.String(http.StatusOK, owner.GetOwnerID(c)+"|"+fromCtx)
	})

	tests := []struct {
		name       string
		target     string
		header     string
		wantStatus int
		wantBody   string
	}{
		{"bearer header", "/me", "Bearer " + token, http.StatusOK, "user-42|user-42"},
		{"query param", "/me?access_token=" + token, "", http.StatusOK, "user-42|user-42"},
		{"missing token", "/me", "", http.StatusUnauthorized, ""},
		{"wrong scheme", "/me", "Basic " + token, http.StatusUnauthorized, ""},
		{"invalid token", "/me", "Bearer nope", http.StatusUnauthorized, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (%s)", w.Code, tt.wantStatus, w.Body.String())
			}
			if tt.wantBody != "" && w.Body.String() != tt.wantBody {
				t.Errorf("body = %q, want %q", w.Body.String(), tt.wantBody)
			}
		})
	}
}
