package helpers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"dormdesk_backend/internal/models"

	"github.com/stretchr/testify/require"
)

// Учетные данные админа, прошитые в окружение тестов (см. TestMain)
const (
	AdminEmail    = "admin@test.local"
	AdminPassword = "admin_secret_123"
)

func uniqueEmail(prefix string) string {
	return fmt.Sprintf("%s_%d@test.local", prefix, time.Now().UnixNano())
}

// RegisterAndLogin регистрирует пользователя через API и возвращает токен
// и профиль из ответа
func RegisterAndLogin(t *testing.T, ts *TestServer, role models.UserRole, body map[string]interface{}) (string, *models.User) {
	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/register", "", body)
	require.Equal(t, http.StatusCreated, res.StatusCode, "Регистрация должна быть успешной. Ответ: "+bodyStr)

	var authResponse struct {
		Token string       `json:"token"`
		User  *models.User `json:"user"`
	}
	err := json.Unmarshal([]byte(bodyStr), &authResponse)
	require.NoError(t, err, "Не удалось распарсить JSON ответа регистрации")
	require.NotEmpty(t, authResponse.Token, "Токен не должен быть пустым")
	require.Equal(t, role, authResponse.User.Role)

	return authResponse.Token, authResponse.User
}

// CreateAndLoginResident создает резидента с уникальным email
func CreateAndLoginResident(t *testing.T, ts *TestServer) (string, *models.User) {
	return RegisterAndLogin(t, ts, models.UserRoleResident, map[string]interface{}{
		"email":     uniqueEmail("resident"),
		"password":  "password123",
		"full_name": "Test Resident",
		"role":      "resident",
		"floor":     "3",
		"room":      "312",
	})
}

// CreateAndLoginWorker создает воркера с уникальным email
func CreateAndLoginWorker(t *testing.T, ts *TestServer) (string, *models.User) {
	return RegisterAndLogin(t, ts, models.UserRoleWorker, map[string]interface{}{
		"email":          uniqueEmail("worker"),
		"password":       "password123",
		"full_name":      "Test Worker",
		"role":           "worker",
		"specialization": "plumbing",
	})
}

// CreateAndLoginAdmin логинит сконфигурированного админа, при первом
// обращении регистрируя его
func CreateAndLoginAdmin(t *testing.T, ts *TestServer) string {
	loginBody := map[string]interface{}{
		"email":    AdminEmail,
		"password": AdminPassword,
	}
	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "", loginBody)
	if res.StatusCode != http.StatusOK {
		token, _ := RegisterAndLogin(t, ts, models.UserRoleAdmin, map[string]interface{}{
			"email":     AdminEmail,
			"password":  AdminPassword,
			"full_name": "Test Admin",
			"role":      "admin",
		})
		return token
	}

	var loginResponse struct {
		Token string `json:"token"`
	}
	err := json.Unmarshal([]byte(bodyStr), &loginResponse)
	require.NoError(t, err, "Не удалось распарсить JSON ответа логина")
	return loginResponse.Token
}
