package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	ucappointment "github.com/BruksfildServices01/barber-booking/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	list       *ucappointment.ListAppointments
	create     *ucappointment.CreateAppointment
	status     *ucappointment.ChangeStatus
	reschedule *ucappointment.Reschedule
	delete     *ucappointment.DeleteAppointment
}

func NewAppointmentHandler(
	list *ucappointment.ListAppointments,
	create *ucappointment.CreateAppointment,
	status *ucappointment.ChangeStatus,
	reschedule *ucappointment.Reschedule,
	del *ucappointment.DeleteAppointment,
) *AppointmentHandler {
	return &AppointmentHandler{
		list:       list,
		create:     create,
		status:     status,
		reschedule: reschedule,
		delete:     del,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	BarberID    string `json:"barber_id" binding:"required"`
	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone" binding:"required"`
	Date        string `json:"date" binding:"required"`
	Time        string `json:"time" binding:"required"`
}

type RescheduleRequest struct {
	BarberID string `json:"barber_id"`
	Date     string `json:"date" binding:"required"`
	Time     string `json:"time" binding:"required"`
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	items, err := h.list.Execute(c.Request.Context(), domain.AppointmentFilter{
		Date:     c.Query("date"),
		BarberID: c.Query("barber_id"),
		Status:   c.Query("status"),
	})
	if err != nil {
		respondError(c, err, "failed_to_list_appointments", "Erro ao listar agendamentos.")
		return
	}
	httpresp.List(c, items)
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
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
		Channel:     ucappointment.ChannelAdmin,
		ActorID:     middleware.UserID(c),
	})
	if err != nil {
		respondError(c, err, "failed_to_create_appointment", "Erro ao criar agendamento.")
		return
	}
	httpresp.Created(c, ap)
}

// ======================================================
// STATUS
// ======================================================

func (h *AppointmentHandler) Complete(c *gin.Context) {
	ap, err := h.status.Complete(c.Request.Context(), c.Param("id"), middleware.UserID(c))
	if err != nil {
		respondError(c, err, "failed_to_complete_appointment", "Erro ao concluir agendamento.")
		return
	}
	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	ap, err := h.status.Cancel(c.Request.Context(), c.Param("id"), middleware.UserID(c))
	if err != nil {
		respondError(c, err, "failed_to_cancel_appointment", "Erro ao cancelar agendamento.")
		return
	}
	httpresp.OK(c, ap)
}

// ======================================================
// RESCHEDULE
// ======================================================

func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	var req RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.reschedule.Execute(c.Request.Context(), ucappointment.RescheduleInput{
		AppointmentID: c.Param("id"),
		BarberID:      req.BarberID,
		Date:          req.Date,
		Time:          req.Time,
		ActorID:       middleware.UserID(c),
	})
	if err != nil {
		respondError(c, err, "failed_to_reschedule_appointment", "Erro ao remarcar agendamento.")
		return
	}
	httpresp.OK(c, ap)
}

// ======================================================
// DELETE
// ======================================================

func (h *AppointmentHandler) Delete(c *gin.Context) {
	if err := h.delete.Execute(c.Request.Context(), c.Param("id"), middleware.UserID(c)); err != nil {
		respondError(c, err, "failed_to_delete_appointment", "Erro ao remover agendamento.")
		return
	}
	c.Status(http.StatusNoContent)
}
