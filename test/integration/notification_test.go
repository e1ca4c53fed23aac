package integration_test

import (
	"encoding/json"
	"net/http"
	"net/url"
	"testing"

	"dormdesk_backend/internal/models"
	"dormdesk_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func listNotifications(t *testing.T, ts *helpers.TestServer, token string) []models.Notification {
	res, bodyStr := ts.SendRequest(t, http.MethodGet, "/api/v1/notifications", token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, "Ответ: "+bodyStr)

	var notifications []models.Notification
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &notifications))
	return notifications
}

// Резидент получает уведомление о назначении жалобы, воркер - о новой задаче
func TestApproveFanOut(t *testing.T) {
	ts := GetTestServer(t)

	residentToken, _ := helpers.CreateAndLoginResident(t, ts)
	complaint := createComplaint(t, ts, residentToken, commonAreaBody("parking", "blocked_exit", "1"))

	adminToken := helpers.CreateAndLoginAdmin(t, ts)
	workerToken, worker := helpers.CreateAndLoginWorker(t, ts)
	approveComplaint(t, ts, adminToken, complaint.ID, worker.ID)

	residentNotifications := listNotifications(t, ts, residentToken)
	require.NotEmpty(t, residentNotifications)
	assert.Equal(t, "complaint_approved", residentNotifications[0].Type)
	assert.Equal(t, complaint.ID, residentNotifications[0].ComplaintID)
	assert.False(t, residentNotifications[0].IsRead)

	workerNotifications := listNotifications(t, ts, workerToken)
	require.NotEmpty(t, workerNotifications)
	assert.Equal(t, "task_assigned", workerNotifications[0].Type)
}

func TestRejectNotifiesResident(t *testing.T) {
	ts := GetTestServer(t)

	residentToken, _ := helpers.CreateAndLoginResident(t, ts)
	complaint := createComplaint(t, ts, residentToken, commonAreaBody("gym", "broken_equipment", "0"))

	adminToken := helpers.CreateAndLoginAdmin(t, ts)
	form := url.Values{}
	form.Set("rejection_reason", "Out of scope")
	res, _ := ts.SendForm(t, http.MethodPut, "/api/v1/admin/complaints/"+complaint.ID+"/reject", adminToken, form)
	require.Equal(t, http.StatusOK, res.StatusCode)

	notifications := listNotifications(t, ts, residentToken)
	require.NotEmpty(t, notifications)
	assert.Equal(t, "complaint_rejected", notifications[0].Type)
	assert.Contains(t, notifications[0].Message, "Out of scope")
}

func TestUnreadCountAndMarkAsRead(t *testing.T) {
	ts := GetTestServer(t)

	residentToken, _ := helpers.CreateAndLoginResident(t, ts)
	complaint := createComplaint(t, ts, residentToken, commonAreaBody("mailroom", "lost_package", "1"))

	adminToken := helpers.CreateAndLoginAdmin(t, ts)
	form := url.Values{}
	form.Set("rejection_reason", "duplicate report")
	ts.SendForm(t, http.MethodPut, "/api/v1/admin/complaints/"+complaint.ID+"/reject", adminToken, form)

	res, bodyStr := ts.SendRequest(t, http.MethodGet, "/api/v1/notifications/unread-count", residentToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)

	var count struct {
		UnreadCount int64 `json:"unread_count"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &count))
	assert.Equal(t, int64(1), count.UnreadCount)

	notifications := listNotifications(t, ts, residentToken)
	require.NotEmpty(t, notifications)

	res, _ = ts.SendRequest(t, http.MethodPut, "/api/v1/notifications/"+notifications[0].ID+"/read", residentToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)

	res, bodyStr = ts.SendRequest(t, http.MethodGet, "/api/v1/notifications/unread-count", residentToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &count))
	assert.Equal(t, int64(0), count.UnreadCount)
}

// Чужое уведомление пометить прочитанным нельзя
func TestMarkAsReadOwnershipEnforced(t *testing.T) {
	ts := GetTestServer(t)

	residentToken, _ := helpers.CreateAndLoginResident(t, ts)
	complaint := createComplaint(t, ts, residentToken, commonAreaBody("basement", "flooding", "0"))

	adminToken := helpers.CreateAndLoginAdmin(t, ts)
	form := url.Values{}
	form.Set("rejection_reason", "test")
	ts.SendForm(t, http.MethodPut, "/api/v1/admin/complaints/"+complaint.ID+"/reject", adminToken, form)

	notifications := listNotifications(t, ts, residentToken)
	require.NotEmpty(t, notifications)

	otherToken, _ := helpers.CreateAndLoginResident(t, ts)
	res, _ := ts.SendRequest(t, http.MethodPut, "/api/v1/notifications/"+notifications[0].ID+"/read", otherToken, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}
