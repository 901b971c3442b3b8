package mw

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"room-lease-backend/internal/model"
)

func identityProbe(t *testing.T, headers map[string]string) (string, model.Role) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var gotID string
	var gotRole model.Role

	r := gin.New()
	r.Use(Identity())
	r.GET("/probe", func(c *gin.Context) {
		gotID = CallerID(c)
		gotRole = CallerRole(c)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	r.ServeHTTP(httptest.NewRecorder(), req)
	return gotID, gotRole
}

func TestIdentity(t *testing.T) {
	id, role := identityProbe(t, map[string]string{HeaderUserID: "u-1", HeaderRole: "owner"})
	assert.Equal(t, "u-1", id)
	assert.Equal(t, model.RoleOwner, role)

	id, role = identityProbe(t, map[string]string{HeaderUserID: "u-2", HeaderRole: "tenant"})
	assert.Equal(t, "u-2", id)
	assert.Equal(t, model.RoleTenant, role)
}

func TestIdentity_Anonymous(t *testing.T) {
	_, role := identityProbe(t, nil)
	assert.Equal(t, model.RoleAnonymous, role)

	// A role without an id is not trusted.
	_, role = identityProbe(t, map[string]string{HeaderRole: "owner"})
	assert.Equal(t, model.RoleAnonymous, role)

	// An unknown role collapses to anonymous.
	_, role = identityProbe(t, map[string]string{HeaderUserID: "u-3", HeaderRole: "admin"})
	assert.Equal(t, model.RoleAnonymous, role)
}
