package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	ucbarber "github.com/BruksfildServices01/barber-booking/internal/usecase/barber"
)

// ======================================================
// HANDLER
// ======================================================

type BarberHandler struct {
	list   *ucbarber.ListBarbers
	create *ucbarber.CreateBarber
	update *ucbarber.UpdateBarber
	delete *ucbarber.DeleteBarber
	avatar *ucbarber.UploadAvatar
}

func NewBarberHandler(
	list *ucbarber.ListBarbers,
	create *ucbarber.CreateBarber,
	update *ucbarber.UpdateBarber,
	del *ucbarber.DeleteBarber,
	avatar *ucbarber.UploadAvatar,
) *BarberHandler {
	return &BarberHandler{
		list:   list,
		create: create,
		update: update,
		delete: del,
		avatar: avatar,
	}
}

// ======================================================
// READ
// ======================================================

func (h *BarberHandler) List(c *gin.Context) {
	barbers, err := h.list.Execute(c.Request.Context())
	if err != nil {
		respondError(c, err, "failed_to_list_barbers", "Erro ao listar barbeiros.")
		return
	}
	httpresp.List(c, barbers)
}

func (h *BarberHandler) Get(c *gin.Context) {
	b, err := h.list.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "failed_to_get_barber", "Erro ao buscar barbeiro.")
		return
	}
	httpresp.OK(c, b)
}

// ======================================================
// WRITE
// ======================================================

func (h *BarberHandler) Create(c *gin.Context) {
	var req ucbarber.BarberInput
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	b, err := h.create.Execute(c.Request.Context(), req, middleware.UserID(c))
	if err != nil {
		respondError(c, err, "failed_to_create_barber", "Erro ao cadastrar barbeiro.")
		return
	}
	httpresp.Created(c, b)
}

func (h *BarberHandler) Update(c *gin.Context) {
	var req ucbarber.BarberInput
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	b, err := h.update.Execute(c.Request.Context(), c.Param("id"), req, middleware.UserID(c))
	if err != nil {
		respondError(c, err, "failed_to_update_barber", "Erro ao atualizar barbeiro.")
		return
	}
	httpresp.OK(c, b)
}

func (h *BarberHandler) Delete(c *gin.Context) {
	if err := h.delete.Execute(c.Request.Context(), c.Param("id"), middleware.UserID(c)); err != nil {
		respondError(c, err, "failed_to_delete_barber", "Erro ao remover barbeiro.")
		return
	}
	c.Status(http.StatusNoContent)
}

// ======================================================
// AVATAR
// ======================================================

// UploadAvatar expects a multipart form with the picture in the "avatar" field.
func (h *BarberHandler) UploadAvatar(c *gin.Context) {
	fh, err := c.FormFile("avatar")
	if err != nil {
		httperr.BadRequest(c, "missing_avatar", "Envie a imagem no campo avatar.")
		return
	}

	f, err := fh.Open()
	if err != nil {
		httperr.BadRequest(c, "invalid_image", "Não foi possível ler a imagem.")
		return
	}
	defer f.Close()

	b, err := h.avatar.Execute(c.Request.Context(), c.Param("id"), f, middleware.UserID(c))
	if err != nil {
		respondError(c, err, "failed_to_upload_avatar", "Erro ao salvar a imagem.")
		return
	}
	httpresp.OK(c, b)
}
