package appointment

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ksaito/salon-api/internal/model"
	"github.com/ksaito/salon-api/internal/repository/jsonfile"
	"github.com/ksaito/salon-api/internal/service/booking"
)

type apiResponse struct {
	Status  string          `json:"status"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := jsonfile.NewStore(t.TempDir(), nil)
	require.NoError(t, err)

	serviceRepo := jsonfile.NewServiceRepository(store)
	require.NoError(t, serviceRepo.Create(context.Background(), &model.Service{
		ID: "svc-cut", Name: "カット", DurationMinutes: 40, Price: 4500, IsActive: true,
	}))

	svc := booking.NewService(
		jsonfile.NewAppointmentRepository(store),
		jsonfile.NewCustomerRepository(store),
		serviceRepo,
		nil,
	)

	engine := gin.New()
	NewHandler(svc).RegisterRoutes(engine.Group("/api/v1"))
	return engine
}

func doRequest(t *testing.T, engine *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, apiResponse) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	var resp apiResponse
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return w, resp
}

func createAppointment(t *testing.T, engine *gin.Engine) model.Appointment {
	t.Helper()
	w, resp := doRequest(t, engine, http.MethodPost, "/api/v1/appointments", gin.H{
		"start":      time.Date(2026, 9, 10, 10, 0, 0, 0, time.UTC),
		"clientName": "佐藤",
		"services":   []gin.H{{"id": "svc-cut"}},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var apt model.Appointment
	require.NoError(t, json.Unmarshal(resp.Data, &apt))
	return apt
}

func TestCreateAndGetAppointment(t *testing.T) {
	engine := setupRouter(t)

	apt := createAppointment(t, engine)
	assert.Equal(t, "カット", apt.Title)
	assert.Equal(t, 4500, apt.TotalPrice)

	w, resp := doRequest(t, engine, http.MethodGet, "/api/v1/appointments/"+apt.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var got model.Appointment
	require.NoError(t, json.Unmarshal(resp.Data, &got))
	assert.Equal(t, apt.ID, got.ID)
	assert.Equal(t, apt.Services, got.Services)
}

func TestCreateWithoutServicesRejected(t *testing.T) {
	engine := setupRouter(t)

	w, resp := doRequest(t, engine, http.MethodPost, "/api/v1/appointments", gin.H{
		"start":      time.Now(),
		"clientName": "佐藤",
		"services":   []gin.H{},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "error", resp.Status)
}

func TestGetMissingAppointmentIs404(t *testing.T) {
	engine := setupRouter(t)

	w, resp := doRequest(t, engine, http.MethodGet, "/api/v1/appointments/missing", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "error", resp.Status)
}

func TestInvalidTransitionIs409(t *testing.T) {
	engine := setupRouter(t)
	apt := createAppointment(t, engine)

	w, _ := doRequest(t, engine, http.MethodPost, "/api/v1/appointments/"+apt.ID+"/cancel", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, resp := doRequest(t, engine, http.MethodPost, "/api/v1/appointments/"+apt.ID+"/complete", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, resp.Message, "cancelled")
}

func TestEditAfterCancelIs409(t *testing.T) {
	engine := setupRouter(t)
	apt := createAppointment(t, engine)

	w, _ := doRequest(t, engine, http.MethodPost, "/api/v1/appointments/"+apt.ID+"/cancel", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = doRequest(t, engine, http.MethodPut, "/api/v1/appointments/"+apt.ID, gin.H{"note": "edit"})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestDeleteAppointment(t *testing.T) {
	engine := setupRouter(t)
	apt := createAppointment(t, engine)

	w, _ := doRequest(t, engine, http.MethodDelete, "/api/v1/appointments/"+apt.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = doRequest(t, engine, http.MethodGet, "/api/v1/appointments/"+apt.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
