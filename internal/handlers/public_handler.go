package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/infra/storage"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
	ucappointment "github.com/BruksfildServices01/barber-booking/internal/usecase/appointment"
	ucbarber "github.com/BruksfildServices01/barber-booking/internal/usecase/barber"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type PublicHandler struct {
	barbers      *ucbarber.ListBarbers
	availability *ucappointment.GetAvailability
	create       *ucappointment.CreateAppointment
	now          timezone.Clock
}

func NewPublicHandler(
	barbers *ucbarber.ListBarbers,
	availability *ucappointment.GetAvailability,
	create *ucappointment.CreateAppointment,
	now timezone.Clock,
) *PublicHandler {
	return &PublicHandler{
		barbers:      barbers,
		availability: availability,
		create:       create,
		now:          now,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type PublicCreateAppointmentRequest struct {
	BarberID    string `json:"barber_id" binding:"required"`
	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone" binding:"required"`
	Date        string `json:"date" binding:"required"` // YYYY-MM-DD
	Time        string `json:"time" binding:"required"` // HH:mm
}

////////////////////////////////////////////////////////
// BARBERS
////////////////////////////////////////////////////////

func (h *PublicHandler) ListBarbers(c *gin.Context) {
	barbers, err := h.barbers.Execute(c.Request.Context())
	if err != nil {
		respondError(c, err, "failed_to_list_barbers", "Erro ao listar barbeiros.")
		return
	}
	httpresp.List(c, barbers)
}

func (h *PublicHandler) GetBarber(c *gin.Context) {
	b, err := h.barbers.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "failed_to_get_barber", "Erro ao buscar barbeiro.")
		return
	}
	httpresp.OK(c, b)
}

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

// Availability defaults to today in the shop timezone when no date is given.
func (h *PublicHandler) Availability(c *gin.Context) {
	date := strings.TrimSpace(c.Query("date"))
	if date == "" {
		date = domain.FormatDate(h.now())
	}

	av, err := h.availability.Execute(c.Request.Context(), c.Param("id"), date)
	if err != nil {
		respondError(c, err, "availability_failed", "Erro ao calcular horários.")
		return
	}
	httpresp.OK(c, av)
}

////////////////////////////////////////////////////////
// CREATE APPOINTMENT
////////////////////////////////////////////////////////

func (h *PublicHandler) CreateAppointment(c *gin.Context) {
	var req PublicCreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), ucappointment.CreateAppointmentInput{
		BarberID:    req.BarberID,
		ClientName:  req.ClientName,
		ClientPhone: req.ClientPhone,
		Date:        req.Date,
		Time:        req.Time,
		Channel:     ucappointment.ChannelWeb,
	})
	if err != nil {
		respondError(c, err, "failed_to_create_appointment", "Erro ao criar agendamento.")
		return
	}

	httpresp.Created(c, ap)
}

////////////////////////////////////////////////////////
// AVATARS
////////////////////////////////////////////////////////

// ServeAvatar serves pictures kept by the in-process object store. Keys are
// unique per upload, so responses may be cached forever.
func ServeAvatar(objects *storage.MemoryStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := strings.TrimPrefix(c.Param("key"), "/")
		obj, ok := objects.Get(key)
		if !ok {
			httperr.NotFound(c, "avatar_not_found", "Imagem não encontrada.")
			return
		}
		c.Header("Cache-Control", "public, max-age=31536000, immutable")
		c.Data(http.StatusOK, obj.ContentType, obj.Body)
	}
}
