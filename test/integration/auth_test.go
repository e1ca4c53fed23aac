package integration_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"dormdesk_backend/internal/auth"
	"dormdesk_backend/test/helpers"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLoginResident(t *testing.T) {
	ts := GetTestServer(t)

	token, user := helpers.CreateAndLoginResident(t, ts)
	assert.NotEmpty(t, token)
	assert.NotEmpty(t, user.ID)

	// Повторная регистрация на тот же email - конфликт
	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/register", "", map[string]interface{}{
		"email":     user.Email,
		"password":  "password123",
		"full_name": "Duplicate",
		"role":      "resident",
	})
	assert.Equal(t, http.StatusConflict, res.StatusCode, "Ответ: "+bodyStr)
}

func TestLoginWrongPassword(t *testing.T) {
	ts := GetTestServer(t)

	_, user := helpers.CreateAndLoginResident(t, ts)

	res, _ := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "", map[string]interface{}{
		"email":    user.Email,
		"password": "wrong_password",
	})
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

func TestAdminRegistrationRequiresConfiguredCredentials(t *testing.T) {
	ts := GetTestServer(t)

	// Чужой email с ролью admin - запрещено
	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/register", "", map[string]interface{}{
		"email":     "fake_admin@test.local",
		"password":  "password123",
		"full_name": "Fake Admin",
		"role":      "admin",
	})
	assert.Equal(t, http.StatusForbidden, res.StatusCode, "Ответ: "+bodyStr)

	// Правильный email, но неверный пароль - тоже запрещено
	res, _ = ts.SendRequest(t, http.MethodPost, "/api/v1/auth/register", "", map[string]interface{}{
		"email":     helpers.AdminEmail,
		"password":  "not_the_configured_password",
		"full_name": "Fake Admin",
		"role":      "admin",
	})
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	// Сконфигурированная пара проходит
	adminToken := helpers.CreateAndLoginAdmin(t, ts)
	assert.NotEmpty(t, adminToken)
}

func TestMeReturnsCurrentUser(t *testing.T) {
	ts := GetTestServer(t)

	token, user := helpers.CreateAndLoginResident(t, ts)

	res, bodyStr := ts.SendRequest(t, http.MethodGet, "/api/v1/auth/me", token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, "Ответ: "+bodyStr)

	var me struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &me))
	assert.Equal(t, user.ID, me.ID)
	assert.Equal(t, user.Email, me.Email)

	// PasswordHash не должен утекать в ответ
	assert.NotContains(t, bodyStr, "password_hash")
}

func TestMeWithoutToken(t *testing.T) {
	ts := GetTestServer(t)

	res, _ := ts.SendRequest(t, http.MethodGet, "/api/v1/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

func TestRoleScoping(t *testing.T) {
	ts := GetTestServer(t)

	residentToken, _ := helpers.CreateAndLoginResident(t, ts)

	// Резидент не должен попадать в админские маршруты
	res, _ := ts.SendRequest(t, http.MethodGet, "/api/v1/admin/complaints", residentToken, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	// И в воркерские
	res, _ = ts.SendRequest(t, http.MethodGet, "/api/v1/worker/tasks", residentToken, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
}

func TestTokenForUnknownSubjectRejected(t *testing.T) {
	ts := GetTestServer(t)

	// Подпись валидна, но subject не существует в таблице пользователей
	token, err := auth.GenerateToken(uuid.NewString(), "resident")
	require.NoError(t, err)

	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/resident/complaints", token, map[string]interface{}{
		"type":        "personal_room",
		"category":    "plumbing",
		"description": "Leaking tap",
	})
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode, "Ответ: "+bodyStr)

	res, _ = ts.SendRequest(t, http.MethodGet, "/api/v1/worker/tasks", token, nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

func TestTokenOfDeletedUserRejected(t *testing.T) {
	ts := GetTestServer(t)

	token, user := helpers.CreateAndLoginResident(t, ts)

	require.NoError(t, ts.DB.Exec("DELETE FROM users WHERE id = ?", user.ID).Error)

	res, _ := ts.SendRequest(t, http.MethodGet, "/api/v1/resident/complaints", token, nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}
