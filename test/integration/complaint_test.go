package integration_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"dormdesk_backend/internal/models"
	"dormdesk_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createComplaint(t *testing.T, ts *helpers.TestServer, token string, body map[string]interface{}) models.Complaint {
	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/resident/complaints", token, body)
	require.Equal(t, http.StatusCreated, res.StatusCode, "Создание жалобы должно быть успешным. Ответ: "+bodyStr)

	var complaint models.Complaint
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &complaint))
	return complaint
}

func commonAreaBody(category, subcategory, floor string) map[string]interface{} {
	return map[string]interface{}{
		"complaint_type": "common_area",
		"floor":          floor,
		"category":       category,
		"subcategory":    subcategory,
		"description":    "test complaint",
	}
}

func TestCreateComplaintDefaults(t *testing.T) {
	ts := GetTestServer(t)
	token, user := helpers.CreateAndLoginResident(t, ts)

	complaint := createComplaint(t, ts, token, commonAreaBody("electricity", "broken_socket", "2"))
	assert.Equal(t, models.ComplaintStatusPending, complaint.Status)
	assert.Equal(t, models.ComplaintPriorityLow, complaint.Priority)
	assert.Equal(t, 1, complaint.Count)
	assert.Equal(t, user.ID, complaint.ResidentID)
	assert.Nil(t, complaint.RepresentativeID)
}

func TestCreateComplaintValidation(t *testing.T) {
	ts := GetTestServer(t)
	token, _ := helpers.CreateAndLoginResident(t, ts)

	// Неизвестный тип жалобы
	res, _ := ts.SendRequest(t, http.MethodPost, "/api/v1/resident/complaints", token, map[string]interface{}{
		"complaint_type": "parking_lot",
		"floor":          "1",
		"category":       "noise",
		"subcategory":    "loud_music",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, res.StatusCode)

	// Пропущенная категория
	res, _ = ts.SendRequest(t, http.MethodPost, "/api/v1/resident/complaints", token, map[string]interface{}{
		"complaint_type": "common_area",
		"floor":          "1",
		"subcategory":    "loud_music",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, res.StatusCode)
}

// Дубли common_area с одинаковым ключом (категория, подкатегория, этаж)
// сливаются в кластер: представитель накапливает счетчик, приоритет растет.
func TestCommonAreaClustering(t *testing.T) {
	ts := GetTestServer(t)

	token1, _ := helpers.CreateAndLoginResident(t, ts)
	rep := createComplaint(t, ts, token1, commonAreaBody("plumbing", "leaking_pipe", "7"))

	// Второй резидент жалуется на то же самое
	token2, _ := helpers.CreateAndLoginResident(t, ts)
	member := createComplaint(t, ts, token2, commonAreaBody("plumbing", "leaking_pipe", "7"))

	require.NotNil(t, member.RepresentativeID)
	assert.Equal(t, rep.ID, *member.RepresentativeID)

	// Представитель: count=2, приоритет еще Low
	var updated models.Complaint
	require.NoError(t, ts.DB.First(&updated, "id = ?", rep.ID).Error)
	assert.Equal(t, 2, updated.Count)
	assert.Equal(t, models.ComplaintPriorityLow, updated.Priority)

	// Третья жалоба поднимает приоритет до Medium
	token3, _ := helpers.CreateAndLoginResident(t, ts)
	createComplaint(t, ts, token3, commonAreaBody("plumbing", "leaking_pipe", "7"))

	require.NoError(t, ts.DB.First(&updated, "id = ?", rep.ID).Error)
	assert.Equal(t, 3, updated.Count)
	assert.Equal(t, models.ComplaintPriorityMedium, updated.Priority)
}

// Другой этаж - другой кластер
func TestClusterKeyIncludesFloor(t *testing.T) {
	ts := GetTestServer(t)

	token1, _ := helpers.CreateAndLoginResident(t, ts)
	first := createComplaint(t, ts, token1, commonAreaBody("cleaning", "dirty_hall", "1"))

	token2, _ := helpers.CreateAndLoginResident(t, ts)
	second := createComplaint(t, ts, token2, commonAreaBody("cleaning", "dirty_hall", "2"))

	assert.Nil(t, first.RepresentativeID)
	assert.Nil(t, second.RepresentativeID)
}

// Повторная personal_room жалоба той же категории в пределах 24 часов - конфликт
func TestPersonalRoomDuplicateWindow(t *testing.T) {
	ts := GetTestServer(t)
	token, _ := helpers.CreateAndLoginResident(t, ts)

	body := map[string]interface{}{
		"complaint_type": "personal_room",
		"floor":          "3",
		"room":           "312",
		"category":       "furniture",
		"subcategory":    "broken_chair",
	}
	createComplaint(t, ts, token, body)

	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/resident/complaints", token, body)
	assert.Equal(t, http.StatusConflict, res.StatusCode, "Ответ: "+bodyStr)

	// Другая категория проходит
	body["category"] = "heating"
	body["subcategory"] = "cold_radiator"
	createComplaint(t, ts, token, body)
}

// personal_room жалобы в кластеризацию не попадают
func TestPersonalRoomNeverClusters(t *testing.T) {
	ts := GetTestServer(t)

	token1, _ := helpers.CreateAndLoginResident(t, ts)
	first := createComplaint(t, ts, token1, map[string]interface{}{
		"complaint_type": "personal_room",
		"floor":          "5",
		"room":           "501",
		"category":       "internet",
		"subcategory":    "no_connection",
	})

	token2, _ := helpers.CreateAndLoginResident(t, ts)
	second := createComplaint(t, ts, token2, map[string]interface{}{
		"complaint_type": "personal_room",
		"floor":          "5",
		"room":           "502",
		"category":       "internet",
		"subcategory":    "no_connection",
	})

	assert.Nil(t, first.RepresentativeID)
	assert.Nil(t, second.RepresentativeID)
}

// Резидент видит свои жалобы, включая членов кластеров, и не видит чужих
func TestResidentListScoping(t *testing.T) {
	ts := GetTestServer(t)

	token1, _ := helpers.CreateAndLoginResident(t, ts)
	createComplaint(t, ts, token1, commonAreaBody("security", "broken_lock", "9"))

	token2, _ := helpers.CreateAndLoginResident(t, ts)
	member := createComplaint(t, ts, token2, commonAreaBody("security", "broken_lock", "9"))

	res, bodyStr := ts.SendRequest(t, http.MethodGet, "/api/v1/resident/complaints", token2, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)

	var complaints []models.Complaint
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &complaints))
	require.Len(t, complaints, 1)
	assert.Equal(t, member.ID, complaints[0].ID)
	assert.NotNil(t, complaints[0].RepresentativeID)
}
