package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-booking/internal/chat"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

func respond(t *testing.T, err error) (int, httperr.HTTPError) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	respondError(c, err, "availability_failed", "Erro ao calcular horários.")

	var body httperr.HTTPError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestRespondError_StatusMapping(t *testing.T) {
	cases := []struct {
		code   string
		status int
	}{
		{domain.CodeSlotTaken, http.StatusConflict},
		{domain.CodeSlotUnavailable, http.StatusConflict},
		{domain.CodeInvalidState, http.StatusConflict},
		{domain.CodeRescheduleLost, http.StatusConflict},
		{domain.CodeBarberNotFound, http.StatusNotFound},
		{domain.CodeAppointmentNotFound, http.StatusNotFound},
		{domain.CodeInvalidPhone, http.StatusBadRequest},
		{domain.CodeInvalidName, http.StatusBadRequest},
		{domain.CodeInvalidDate, http.StatusBadRequest},
		{domain.CodeInvalidDateOrTime, http.StatusBadRequest},
		{domain.CodeInvalidSchedule, http.StatusBadRequest},
		{domain.CodeImageTooBig, http.StatusRequestEntityTooLarge},
		{"something_new", http.StatusBadRequest},
	}

	for _, tc := range cases {
		status, body := respond(t, fmt.Errorf("wrapped: %w", httperr.ErrBusiness(tc.code)))
		assert.Equal(t, tc.status, status, tc.code)
		assert.Equal(t, tc.code, body.Code)
		assert.NotEmpty(t, body.Message)
	}
}

func TestRespondError_SlotTakenMessage(t *testing.T) {
	_, body := respond(t, httperr.ErrBusiness(domain.CodeSlotTaken))
	assert.Equal(t, "Este horário acabou de ser reservado. Por favor, escolha outro.", body.Message)
}

func TestRespondError_Internal(t *testing.T) {
	status, body := respond(t, errors.New("connection refused"))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "availability_failed", body.Code)
}

func TestRespondError_SessionNotFound(t *testing.T) {
	status, body := respond(t, chat.ErrSessionNotFound)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "session_not_found", body.Code)
}
