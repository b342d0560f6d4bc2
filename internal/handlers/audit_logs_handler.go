package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	store domain.AuditStore
	loc   *time.Location
}

func NewAuditLogsHandler(store domain.AuditStore, loc *time.Location) *AuditLogsHandler {
	return &AuditLogsHandler{store: store, loc: loc}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	filter := domain.AuditFilter{
		Action: c.Query("action"),
		Entity: c.Query("entity"),
		Page:   page,
		Limit:  limit,
	}

	// --------------------------------------------------
	// Período (dias inteiros no fuso da barbearia)
	// --------------------------------------------------

	if s := c.Query("from"); s != "" {
		from, err := domain.ParseDate(s, h.loc)
		if err != nil {
			httperr.BadRequest(c, domain.CodeInvalidDate, "Data inicial inválida.")
			return
		}
		filter.From = &from
	}

	if s := c.Query("to"); s != "" {
		to, err := domain.ParseDate(s, h.loc)
		if err != nil {
			httperr.BadRequest(c, domain.CodeInvalidDate, "Data final inválida.")
			return
		}
		end := to.Add(24*time.Hour - time.Nanosecond)
		filter.To = &end
	}

	logs, total, err := h.store.ListAuditLogs(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err, "audit_list_failed", "Erro ao listar logs.")
		return
	}

	httpresp.Page(c, logs, page, limit, total)
}
