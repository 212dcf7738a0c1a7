package auth

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tenderdesk/procurement-service/internal/domain"
	apperrors "github.com/tenderdesk/procurement-service/pkg/util"
)

func issue(t *testing.T, tm *TokenManager, role domain.Role) string {
	t.Helper()
	token, _, err := tm.Issue(testUser(role))
	require.NoError(t, err)
	return token
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	var de *apperrors.DomainError
	require.True(t, errors.As(err, &de), "expected DomainError, got %v", err)
	assert.Equal(t, code, de.Code)
}

func TestAuthorize(t *testing.T) {
	tm := NewTokenManager("gate-secret", 30*time.Minute)
	gate := NewGate(tm)

	expired := NewTokenManager("gate-secret", 30*time.Minute)
	expired.now = func() time.Time { return time.Now().Add(-time.Hour) }

	adminToken := issue(t, tm, domain.RoleAdmin)
	memberToken := issue(t, tm, domain.RoleMember)
	oddRoleToken := issue(t, tm, domain.Role("auditor"))
	expiredToken := issue(t, expired, domain.RoleAdmin)

	tests := []struct {
		name     string
		header   string
		required domain.Role
		wantCode string
		wantMsg  string
	}{
		{"missing header", "", domain.RoleAdmin, apperrors.CodeUnauthorized, msgMissingToken},
		{"scheme only", "Bearer", domain.RoleAdmin, apperrors.CodeUnauthorized, msgMissingToken},
		{"garbage token", "Bearer abc.def.ghi", domain.RoleAdmin, apperrors.CodeUnauthorized, msgInvalidToken},
		{"expired token", "Bearer " + expiredToken, domain.RoleAdmin, apperrors.CodeUnauthorized, msgInvalidToken},
		{"member on admin gate", "Bearer " + memberToken, domain.RoleAdmin, apperrors.CodeForbidden, msgWrongRole},
		{"admin on member gate", "Bearer " + adminToken, domain.RoleMember, apperrors.CodeForbidden, msgWrongRole},
		{"unknown role in token", "Bearer " + oddRoleToken, domain.RoleMember, apperrors.CodeForbidden, msgWrongRole},
		{"unknown required role", "Bearer " + adminToken, domain.Role("root"), apperrors.CodeForbidden, msgWrongRole},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			user, err := gate.Authorize(tc.header, tc.required)
			assert.Nil(t, user)
			assertCode(t, err, tc.wantCode)
			assert.Equal(t, tc.wantMsg, err.Error())
		})
	}

	t.Run("admin passes admin gate", func(t *testing.T) {
		user, err := gate.Authorize("Bearer "+adminToken, domain.RoleAdmin)
		require.NoError(t, err)
		assert.Equal(t, domain.RoleAdmin, user.Role)
	})

	t.Run("member passes member gate with extra whitespace", func(t *testing.T) {
		user, err := gate.Authorize("Bearer   "+memberToken, domain.RoleMember)
		require.NoError(t, err)
		assert.Equal(t, int64(7), user.ID)
	})
}

func newGateApp(gate *Gate) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			de := apperrors.ToDomainError(err)
			return c.Status(de.HTTPStatus).SendString(de.Message)
		},
	})
	app.Get("/admin/ping", gate.RequireAdmin(), func(c *fiber.Ctx) error {
		_, attached := UserFromContext(c)
		if attached {
			return c.SendString("attached")
		}
		return c.SendString("global")
	})
	app.Get("/member/ping", gate.RequireMember(), func(c *fiber.Ctx) error {
		user, ok := UserFromContext(c)
		if !ok {
			return c.SendStatus(http.StatusInternalServerError)
		}
		return c.SendString(user.Username)
	})
	return app
}

func doGet(t *testing.T, app *fiber.App, path, token string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestRequireAdminAndMember(t *testing.T) {
	tm := NewTokenManager("gate-secret", 30*time.Minute)
	app := newGateApp(NewGate(tm))

	adminToken := issue(t, tm, domain.RoleAdmin)
	memberToken := issue(t, tm, domain.RoleMember)

	status, body := doGet(t, app, "/admin/ping", adminToken)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "global", body)

	status, body = doGet(t, app, "/member/ping", memberToken)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "budi", body)

	status, _ = doGet(t, app, "/admin/ping", memberToken)
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = doGet(t, app, "/member/ping", adminToken)
	assert.Equal(t, http.StatusForbidden, status)

	status, body = doGet(t, app, "/member/ping", "")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, msgMissingToken, body)

	status, body = doGet(t, app, "/admin/ping", "not-a-token")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, msgInvalidToken, body)
}

func TestAuthorize_TokenCarriesIssueTimeSnapshot(t *testing.T) {
	tm := NewTokenManager("gate-secret", 30*time.Minute)
	gate := NewGate(tm)

	account := testUser(domain.RoleMember)
	token, _, err := tm.Issue(account)
	require.NoError(t, err)

	// later changes to the account are invisible to the gate
	account.IsActive = false
	account.Role = domain.RoleAdmin
	account.Username = "renamed"

	user, err := gate.Authorize("Bearer "+token, domain.RoleMember)
	require.NoError(t, err)
	assert.Equal(t, int64(7), user.ID)
	assert.Equal(t, "budi", user.Username)
	assert.Equal(t, domain.RoleMember, user.Role)

	_, err = gate.Authorize("Bearer "+token, domain.RoleAdmin)
	assertCode(t, err, apperrors.CodeForbidden)
}
