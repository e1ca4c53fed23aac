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

func approveComplaint(t *testing.T, ts *helpers.TestServer, adminToken, complaintID, workerID string) {
	form := url.Values{}
	form.Set("worker_id", workerID)
	form.Set("note", "assigned via test")
	res, bodyStr := ts.SendForm(t, http.MethodPut, "/api/v1/admin/complaints/"+complaintID+"/approve", adminToken, form)
	require.Equal(t, http.StatusOK, res.StatusCode, "Approve должен быть успешным. Ответ: "+bodyStr)
}

func TestAdminApproveAssignsWorker(t *testing.T) {
	ts := GetTestServer(t)

	residentToken, _ := helpers.CreateAndLoginResident(t, ts)
	complaint := createComplaint(t, ts, residentToken, commonAreaBody("elevator", "stuck", "4"))

	adminToken := helpers.CreateAndLoginAdmin(t, ts)
	_, worker := helpers.CreateAndLoginWorker(t, ts)

	approveComplaint(t, ts, adminToken, complaint.ID, worker.ID)

	var updated models.Complaint
	require.NoError(t, ts.DB.First(&updated, "id = ?", complaint.ID).Error)
	assert.Equal(t, models.ComplaintStatusAssigned, updated.Status)
	require.NotNil(t, updated.AssignedTo)
	assert.Equal(t, worker.ID, *updated.AssignedTo)
}

func TestAdminApproveRequiresWorkerID(t *testing.T) {
	ts := GetTestServer(t)

	residentToken, _ := helpers.CreateAndLoginResident(t, ts)
	complaint := createComplaint(t, ts, residentToken, commonAreaBody("elevator", "noisy", "4"))

	adminToken := helpers.CreateAndLoginAdmin(t, ts)

	res, _ := ts.SendForm(t, http.MethodPut, "/api/v1/admin/complaints/"+complaint.ID+"/approve", adminToken, url.Values{})
	assert.Equal(t, http.StatusUnprocessableEntity, res.StatusCode)
}

func TestAdminApproveUnknownComplaint(t *testing.T) {
	ts := GetTestServer(t)

	adminToken := helpers.CreateAndLoginAdmin(t, ts)
	_, worker := helpers.CreateAndLoginWorker(t, ts)

	form := url.Values{}
	form.Set("worker_id", worker.ID)
	res, _ := ts.SendForm(t, http.MethodPut, "/api/v1/admin/complaints/00000000-0000-0000-0000-000000000000/approve", adminToken, form)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

// Повторный approve уже назначенной жалобы - конфликт состояния
func TestAdminApproveTwiceConflicts(t *testing.T) {
	ts := GetTestServer(t)

	residentToken, _ := helpers.CreateAndLoginResident(t, ts)
	complaint := createComplaint(t, ts, residentToken, commonAreaBody("laundry", "machine_down", "1"))

	adminToken := helpers.CreateAndLoginAdmin(t, ts)
	_, worker := helpers.CreateAndLoginWorker(t, ts)

	approveComplaint(t, ts, adminToken, complaint.ID, worker.ID)

	form := url.Values{}
	form.Set("worker_id", worker.ID)
	res, _ := ts.SendForm(t, http.MethodPut, "/api/v1/admin/complaints/"+complaint.ID+"/approve", adminToken, form)
	assert.Equal(t, http.StatusConflict, res.StatusCode)
}

func TestAdminRejectWithReason(t *testing.T) {
	ts := GetTestServer(t)

	residentToken, _ := helpers.CreateAndLoginResident(t, ts)
	complaint := createComplaint(t, ts, residentToken, commonAreaBody("kitchen", "dirty_stove", "6"))

	adminToken := helpers.CreateAndLoginAdmin(t, ts)

	// Без причины - валидация
	res, _ := ts.SendForm(t, http.MethodPut, "/api/v1/admin/complaints/"+complaint.ID+"/reject", adminToken, url.Values{})
	assert.Equal(t, http.StatusUnprocessableEntity, res.StatusCode)

	form := url.Values{}
	form.Set("rejection_reason", "Not dorm property")
	res, bodyStr := ts.SendForm(t, http.MethodPut, "/api/v1/admin/complaints/"+complaint.ID+"/reject", adminToken, form)
	require.Equal(t, http.StatusOK, res.StatusCode, "Ответ: "+bodyStr)

	var updated models.Complaint
	require.NoError(t, ts.DB.First(&updated, "id = ?", complaint.ID).Error)
	assert.Equal(t, models.ComplaintStatusRejected, updated.Status)
	assert.Equal(t, "Not dorm property", updated.RejectionReason)
}

// Завершение представителя каскадно закрывает членов кластера
// с одинаковым resolved_at
func TestAdminReviewCompletedCascades(t *testing.T) {
	ts := GetTestServer(t)

	token1, _ := helpers.CreateAndLoginResident(t, ts)
	rep := createComplaint(t, ts, token1, commonAreaBody("heating", "no_heat", "8"))

	token2, _ := helpers.CreateAndLoginResident(t, ts)
	member := createComplaint(t, ts, token2, commonAreaBody("heating", "no_heat", "8"))

	adminToken := helpers.CreateAndLoginAdmin(t, ts)
	workerToken, worker := helpers.CreateAndLoginWorker(t, ts)
	approveComplaint(t, ts, adminToken, rep.ID, worker.ID)

	// Воркер отчитывается о выполнении
	form := url.Values{}
	form.Set("status", "Resolved")
	form.Set("resolution", "Replaced the valve")
	res, bodyStr := ts.SendForm(t, http.MethodPut, "/api/v1/worker/tasks/"+rep.ID+"/status", workerToken, form)
	require.Equal(t, http.StatusOK, res.StatusCode, "Ответ: "+bodyStr)

	// Админ подтверждает
	form = url.Values{}
	form.Set("action", "Completed")
	res, bodyStr = ts.SendForm(t, http.MethodPut, "/api/v1/admin/complaints/"+rep.ID+"/review", adminToken, form)
	require.Equal(t, http.StatusOK, res.StatusCode, "Ответ: "+bodyStr)

	var updatedRep, updatedMember models.Complaint
	require.NoError(t, ts.DB.First(&updatedRep, "id = ?", rep.ID).Error)
	require.NoError(t, ts.DB.First(&updatedMember, "id = ?", member.ID).Error)

	assert.Equal(t, models.ComplaintStatusCompleted, updatedRep.Status)
	assert.Equal(t, models.ComplaintStatusCompleted, updatedMember.Status)
	require.NotNil(t, updatedRep.ResolvedAt)
	require.NotNil(t, updatedMember.ResolvedAt)
	assert.True(t, updatedRep.ResolvedAt.Equal(*updatedMember.ResolvedAt),
		"представитель и член кластера должны иметь одинаковый resolved_at")
}

func TestAdminReviewRequestedChanges(t *testing.T) {
	ts := GetTestServer(t)

	residentToken, _ := helpers.CreateAndLoginResident(t, ts)
	complaint := createComplaint(t, ts, residentToken, commonAreaBody("lighting", "dark_corridor", "2"))

	adminToken := helpers.CreateAndLoginAdmin(t, ts)
	workerToken, worker := helpers.CreateAndLoginWorker(t, ts)
	approveComplaint(t, ts, adminToken, complaint.ID, worker.ID)

	form := url.Values{}
	form.Set("status", "Resolved")
	ts.SendForm(t, http.MethodPut, "/api/v1/worker/tasks/"+complaint.ID+"/status", workerToken, form)

	form = url.Values{}
	form.Set("action", "RequestedChanges")
	res, _ := ts.SendForm(t, http.MethodPut, "/api/v1/admin/complaints/"+complaint.ID+"/review", adminToken, form)
	require.Equal(t, http.StatusOK, res.StatusCode)

	var updated models.Complaint
	require.NoError(t, ts.DB.First(&updated, "id = ?", complaint.ID).Error)
	assert.Equal(t, models.ComplaintStatusRequestedChanges, updated.Status)
	assert.Nil(t, updated.ResolvedAt)
}

// Review жалобы, которая еще не ждет проверки - конфликт
func TestAdminReviewWrongStateConflicts(t *testing.T) {
	ts := GetTestServer(t)

	residentToken, _ := helpers.CreateAndLoginResident(t, ts)
	complaint := createComplaint(t, ts, residentToken, commonAreaBody("windows", "broken_glass", "3"))

	adminToken := helpers.CreateAndLoginAdmin(t, ts)

	form := url.Values{}
	form.Set("action", "Completed")
	res, _ := ts.SendForm(t, http.MethodPut, "/api/v1/admin/complaints/"+complaint.ID+"/review", adminToken, form)
	assert.Equal(t, http.StatusConflict, res.StatusCode)
}

// Админский список содержит только представителей
func TestAdminListOnlyRepresentatives(t *testing.T) {
	ts := GetTestServer(t)

	token1, _ := helpers.CreateAndLoginResident(t, ts)
	rep := createComplaint(t, ts, token1, commonAreaBody("garbage", "overflow", "10"))

	token2, _ := helpers.CreateAndLoginResident(t, ts)
	member := createComplaint(t, ts, token2, commonAreaBody("garbage", "overflow", "10"))

	adminToken := helpers.CreateAndLoginAdmin(t, ts)
	res, bodyStr := ts.SendRequest(t, http.MethodGet, "/api/v1/admin/complaints", adminToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)

	var complaints []models.Complaint
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &complaints))

	ids := make(map[string]bool)
	for _, c := range complaints {
		ids[c.ID] = true
		assert.Nil(t, c.RepresentativeID, "в админском списке не должно быть членов кластеров")
	}
	assert.True(t, ids[rep.ID])
	assert.False(t, ids[member.ID])
}

func TestAdminListWorkersAndUpdate(t *testing.T) {
	ts := GetTestServer(t)

	adminToken := helpers.CreateAndLoginAdmin(t, ts)
	_, worker := helpers.CreateAndLoginWorker(t, ts)

	res, bodyStr := ts.SendRequest(t, http.MethodGet, "/api/v1/admin/workers", adminToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)

	var workers []struct {
		ID       string `json:"id"`
		IsActive bool   `json:"is_active"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &workers))

	found := false
	for _, w := range workers {
		if w.ID == worker.ID {
			found = true
			assert.True(t, w.IsActive)
		}
	}
	assert.True(t, found, "созданный воркер должен быть в справочнике")

	// Деактивация и смена специализации
	form := url.Values{}
	form.Set("is_active", "false")
	form.Set("specialization", "electricity")
	res, bodyStr = ts.SendForm(t, http.MethodPut, "/api/v1/admin/workers/"+worker.ID, adminToken, form)
	require.Equal(t, http.StatusOK, res.StatusCode, "Ответ: "+bodyStr)

	var updated models.User
	require.NoError(t, ts.DB.First(&updated, "id = ?", worker.ID).Error)
	assert.False(t, updated.IsActive)
	require.NotNil(t, updated.Specialization)
	assert.Equal(t, "electricity", *updated.Specialization)
}
