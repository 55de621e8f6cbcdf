package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestParseRole(t *testing.T) {
	cases := map[string]Role{
		"admin":     RoleAdmin,
		"Registrar": RoleRegistrar,
		" curator ": RoleCurator,
		"visitor":   RoleVisitor,
		"":          RoleVisitor,
		"unknown":   RoleVisitor,
	}

	for in, want := range cases {
		if got := parseRole(in); got != want {
			t.Errorf("parseRole(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestRequireMinRole(t *testing.T) {
	gin.SetMode(gin.TestMode)

	e := gin.New()
	e.Use(RoleMiddleware())
	e.DELETE("/treasures/:id", RequireMinRole(RoleCurator), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	cases := []struct {
		role string
		want int
	}{
		{"", http.StatusForbidden},
		{"visitor", http.StatusForbidden},
		{"curator", http.StatusOK},
		{"registrar", http.StatusOK},
		{"admin", http.StatusOK},
	}

	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodDelete, "/treasures/1", nil)
		if tc.role != "" {
			req.Header.Set("X-Role", tc.role)
		}

		w := httptest.NewRecorder()
		e.ServeHTTP(w, req)

		if w.Code != tc.want {
			t.Errorf("role %q: status = %d, want %d", tc.role, w.Code, tc.want)
		}
	}
}

func TestRoleFromContext(t *testing.T) {
	gin.SetMode(gin.TestMode)

	e := gin.New()
	e.Use(RoleMiddleware())

	var got Role

	e.GET("/probe", func(c *gin.Context) {
		got = RoleFromContext(c.Request.Context())
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("X-Role", "registrar")
	e.ServeHTTP(httptest.NewRecorder(), req)

	if got != RoleRegistrar {
		t.Errorf("RoleFromContext = %v, want %v", got, RoleRegistrar)
	}
}
