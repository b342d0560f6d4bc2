package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/barber-booking/internal/chat"
	"github.com/BruksfildServices01/barber-booking/internal/config"
	"github.com/BruksfildServices01/barber-booking/internal/infra/memory"
	"github.com/BruksfildServices01/barber-booking/internal/infra/storage"
	"github.com/BruksfildServices01/barber-booking/internal/metrics"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

var brt = time.FixedZone("BRT", -3*60*60)

// Monday 2026-10-19, 08:00 in the shop
var monday8 = time.Date(2026, 10, 19, 8, 0, 0, 0, brt)

const (
	adminEmail    = "admin@barbearia.local"
	adminPassword = "segredo123"
)

func newServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	clock := timezone.Fixed(monday8)
	store := memory.NewSeeded(clock)

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, store.CreateUser(context.Background(), &models.User{
		Name: "Admin", Email: adminEmail, PasswordHash: string(hash), Role: "admin",
	}))

	r := gin.New()
	RegisterRoutes(r, Deps{
		Config: &config.Config{
			JWTSecret:       "test-secret",
			RateLimitPerMin: 1000,
		},
		Log:          zap.NewNop(),
		Clock:        clock,
		Barbers:      store,
		Appointments: store,
		Users:        store,
		AuditLogs:    store,
		Sessions:     chat.NewMemorySessionStore(time.Hour, clock),
		Objects:      storage.NewMemoryStore(AvatarPath),
		Metrics:      metrics.New(),
	})
	return r
}

func do(r http.Handler, method, path string, body any, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Code string `json:"error_code"`
	}
	decode(t, w, &body)
	return body.Code
}

func login(t *testing.T, r http.Handler) string {
	t.Helper()
	w := do(r, http.MethodPost, "/api/auth/login", map[string]string{
		"email": adminEmail, "password": adminPassword,
	}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body struct {
		Token string `json:"token"`
	}
	decode(t, w, &body)
	require.NotEmpty(t, body.Token)
	return body.Token
}

type availabilityBody struct {
	Date    string `json:"date"`
	WorkDay bool   `json:"work_day"`
	Slots   []struct {
		Time      string `json:"time"`
		Available bool   `json:"available"`
	} `json:"slots"`
}

func TestHealth(t *testing.T) {
	r := newServer(t)
	w := do(r, http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestPublicBarbers(t *testing.T) {
	r := newServer(t)

	w := do(r, http.MethodGet, "/api/public/barbers", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Data  []models.Barber `json:"data"`
		Total int             `json:"total"`
	}
	decode(t, w, &list)
	assert.Equal(t, 3, list.Total)

	w = do(r, http.MethodGet, "/api/public/barbers/999", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "barber_not_found", errorCode(t, w))
}

func TestAvailability(t *testing.T) {
	r := newServer(t)

	w := do(r, http.MethodGet, "/api/public/barbers/1/availability?date=2026-10-20", nil, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var av availabilityBody
	decode(t, w, &av)
	assert.Equal(t, "2026-10-20", av.Date)
	assert.True(t, av.WorkDay)
	require.NotEmpty(t, av.Slots)
	assert.Equal(t, "09:00", av.Slots[0].Time)

	w = do(r, http.MethodGet, "/api/public/barbers/1/availability?date=2026-10-25", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &av)
	assert.False(t, av.WorkDay)
	assert.Empty(t, av.Slots)

	w = do(r, http.MethodGet, "/api/public/barbers/1/availability?date=20/10/2026", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_date", errorCode(t, w))

	w = do(r, http.MethodGet, "/api/public/barbers/999/availability?date=2026-10-20", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateAppointment(t *testing.T) {
	r := newServer(t)

	req := map[string]string{
		"barber_id":    "1",
		"client_name":  "Pedro Alves",
		"client_phone": "(11) 98888-7777",
		"date":         "2026-10-20",
		"time":         "09:45",
	}

	w := do(r, http.MethodPost, "/api/public/appointments", req, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var ap models.Appointment
	decode(t, w, &ap)
	assert.Equal(t, "scheduled", ap.Status)
	assert.Equal(t, "09:45", ap.AppointmentTime)

	// the slot is now shown as taken
	w = do(r, http.MethodGet, "/api/public/barbers/1/availability?date=2026-10-20", nil, "")
	var av availabilityBody
	decode(t, w, &av)
	for _, s := range av.Slots {
		if s.Time == "09:45" {
			assert.False(t, s.Available)
		}
	}

	// booking it again conflicts
	w = do(r, http.MethodPost, "/api/public/appointments", req, "")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "slot_unavailable", errorCode(t, w))
}

func TestCreateAppointment_Validation(t *testing.T) {
	r := newServer(t)

	cases := []struct {
		name   string
		body   map[string]string
		status int
		code   string
	}{
		{
			"missing fields",
			map[string]string{"barber_id": "1"},
			http.StatusBadRequest, "invalid_request",
		},
		{
			"short phone",
			map[string]string{"barber_id": "1", "client_name": "Pedro", "client_phone": "1234", "date": "2026-10-20", "time": "09:45"},
			http.StatusBadRequest, "invalid_phone",
		},
		{
			"bad time",
			map[string]string{"barber_id": "1", "client_name": "Pedro", "client_phone": "11988887777", "date": "2026-10-20", "time": "25:00"},
			http.StatusBadRequest, "invalid_date_or_time",
		},
		{
			"unknown barber",
			map[string]string{"barber_id": "999", "client_name": "Pedro", "client_phone": "11988887777", "date": "2026-10-20", "time": "09:45"},
			http.StatusNotFound, "barber_not_found",
		},
		{
			"off grid",
			map[string]string{"barber_id": "1", "client_name": "Pedro", "client_phone": "11988887777", "date": "2026-10-20", "time": "09:10"},
			http.StatusConflict, "slot_unavailable",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := do(r, http.MethodPost, "/api/public/appointments", tc.body, "")
			assert.Equal(t, tc.status, w.Code, w.Body.String())
			assert.Equal(t, tc.code, errorCode(t, w))
		})
	}
}

func TestChatSession(t *testing.T) {
	r := newServer(t)

	w := do(r, http.MethodPost, "/api/public/chat/sessions", nil, "")
	require.Equal(t, http.StatusCreated, w.Code)

	var started struct {
		SessionID string         `json:"session_id"`
		State     string         `json:"state"`
		Messages  []chat.Message `json:"messages"`
	}
	decode(t, w, &started)
	require.NotEmpty(t, started.SessionID)
	assert.Equal(t, "greeting", started.State)
	assert.NotEmpty(t, started.Messages)

	w = do(r, http.MethodPost, "/api/public/chat/sessions/"+started.SessionID+"/messages",
		map[string]string{"message": "quero agendar"}, "")
	require.Equal(t, http.StatusOK, w.Code)

	var reply struct {
		State    string         `json:"state"`
		Messages []chat.Message `json:"messages"`
	}
	decode(t, w, &reply)
	assert.Equal(t, "select_barber", reply.State)
	require.NotEmpty(t, reply.Messages)
	assert.Len(t, reply.Messages[0].Options, 3)

	w = do(r, http.MethodPost, "/api/public/chat/sessions/unknown/messages",
		map[string]string{"message": "oi"}, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "session_not_found", errorCode(t, w))
}

func TestAuth(t *testing.T) {
	r := newServer(t)

	w := do(r, http.MethodGet, "/api/admin/me", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(r, http.MethodGet, "/api/admin/me", nil, "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(r, http.MethodPost, "/api/auth/login", map[string]string{
		"email": adminEmail, "password": "errada",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "invalid_credentials", errorCode(t, w))

	token := login(t, r)
	w = do(r, http.MethodGet, "/api/admin/me", nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	var me struct {
		Email string `json:"email"`
		Role  string `json:"role"`
	}
	decode(t, w, &me)
	assert.Equal(t, adminEmail, me.Email)
	assert.Equal(t, "admin", me.Role)
}

func TestAdminAppointmentLifecycle(t *testing.T) {
	r := newServer(t)
	token := login(t, r)

	w := do(r, http.MethodPost, "/api/admin/appointments", map[string]string{
		"barber_id":    "2",
		"client_name":  "Lucas Lima",
		"client_phone": "11977776666",
		"date":         "2026-10-21",
		"time":         "10:00",
	}, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var ap models.Appointment
	decode(t, w, &ap)

	w = do(r, http.MethodGet, "/api/admin/appointments?date=2026-10-21", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Total int `json:"total"`
		Data  []struct {
			ID          string `json:"id"`
			ClientPhone string `json:"client_phone"`
		} `json:"data"`
	}
	decode(t, w, &list)
	require.Equal(t, 1, list.Total)
	assert.Equal(t, ap.ID, list.Data[0].ID)
	assert.NotEqual(t, "11977776666", list.Data[0].ClientPhone)

	w = do(r, http.MethodGet, "/api/admin/appointments?status=cancelled", nil, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_status", errorCode(t, w))

	w = do(r, http.MethodPatch, "/api/admin/appointments/"+ap.ID+"/reschedule", map[string]string{
		"date": "2026-10-21", "time": "10:45",
	}, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var moved models.Appointment
	decode(t, w, &moved)
	assert.Equal(t, "10:45", moved.AppointmentTime)

	w = do(r, http.MethodPatch, "/api/admin/appointments/"+moved.ID+"/complete", nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodPatch, "/api/admin/appointments/"+moved.ID+"/cancel", nil, token)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "invalid_state", errorCode(t, w))

	w = do(r, http.MethodDelete, "/api/admin/appointments/"+moved.ID, nil, token)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(r, http.MethodDelete, "/api/admin/appointments/"+moved.ID, nil, token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminBarbers(t *testing.T) {
	r := newServer(t)
	token := login(t, r)

	w := do(r, http.MethodPost, "/api/admin/barbers", map[string]any{
		"name":            "Rafael Costa",
		"work_start_time": "09:00",
		"work_end_time":   "17:00",
		"work_days":       []int{1, 2, 3},
		"breaks":          []map[string]string{{"start": "12:00", "end": "13:00"}},
	}, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var b models.Barber
	decode(t, w, &b)
	assert.Equal(t, 45, b.SlotDuration)

	w = do(r, http.MethodPost, "/api/admin/barbers", map[string]any{
		"name":            "Ruim",
		"work_start_time": "18:00",
		"work_end_time":   "09:00",
	}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_schedule", errorCode(t, w))

	w = do(r, http.MethodGet, "/api/admin/dashboard", nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodDelete, "/api/admin/barbers/"+b.ID, nil, token)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(r, http.MethodGet, "/api/admin/barbers/"+b.ID, nil, token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAvatarUploadIsServed(t *testing.T) {
	r := newServer(t)
	token := login(t, r)

	img := image.NewRGBA(image.Rect(0, 0, 40, 20))
	for x := 0; x < 40; x++ {
		for y := 0; y < 20; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 6), G: 80, B: 160, A: 255})
		}
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("avatar", "me.png")
	require.NoError(t, err)
	require.NoError(t, png.Encode(part, img))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPut, "/api/admin/barbers/1/avatar", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var b models.Barber
	decode(t, w, &b)
	require.NotNil(t, b.AvatarURL)

	w = do(r, http.MethodGet, *b.AvatarURL, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/webp", w.Header().Get("Content-Type"))
}

func TestAuditLogs(t *testing.T) {
	r := newServer(t)
	token := login(t, r)

	w := do(r, http.MethodGet, "/api/admin/audit-logs?from=ontem", nil, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodGet, "/api/admin/audit-logs?page=1&limit=10", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	var page struct {
		Page  int   `json:"page"`
		Limit int   `json:"limit"`
		Total int64 `json:"total"`
	}
	decode(t, w, &page)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 10, page.Limit)
}
