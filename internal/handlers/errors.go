package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/chat"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

type businessResponse struct {
	status  int
	message string
}

var businessResponses = map[string]businessResponse{
	domain.CodeBarberNotFound:      {http.StatusNotFound, "Barbeiro não encontrado."},
	domain.CodeAppointmentNotFound: {http.StatusNotFound, "Agendamento não encontrado."},
	domain.CodeSlotTaken:           {http.StatusConflict, "Este horário acabou de ser reservado. Por favor, escolha outro."},
	domain.CodeSlotUnavailable:     {http.StatusConflict, "Este horário não está disponível. Por favor, escolha outro."},
	domain.CodeInvalidState:        {http.StatusConflict, "O agendamento não está mais agendado."},
	domain.CodeRescheduleLost:      {http.StatusConflict, "Não foi possível remarcar e o horário original foi perdido. Verifique o agendamento."},
	domain.CodeInvalidSchedule:     {http.StatusBadRequest, "Horário de trabalho inválido."},
	domain.CodeInvalidDate:         {http.StatusBadRequest, "Data inválida. Use o formato AAAA-MM-DD."},
	domain.CodeInvalidDateOrTime:   {http.StatusBadRequest, "Data ou hora inválida."},
	domain.CodeInvalidName:         {http.StatusBadRequest, "Informe um nome com pelo menos 2 caracteres."},
	domain.CodeInvalidPhone:        {http.StatusBadRequest, "Telefone inválido. Informe DDD e número."},
	domain.CodeInvalidStatus:       {http.StatusBadRequest, "Status inválido."},
	domain.CodeEmailTaken:          {http.StatusConflict, "E-mail já cadastrado."},
	domain.CodeInvalidImage:        {http.StatusBadRequest, "Imagem inválida. Envie JPEG, PNG ou WebP."},
	domain.CodeImageTooBig:         {http.StatusRequestEntityTooLarge, "Imagem muito grande (máximo 5 MB)."},
}

// respondError writes the envelope for err. Business errors get their own
// status and message; anything else becomes a 500 with the given code.
func respondError(c *gin.Context, err error, internalCode, internalMessage string) {
	if code := httperr.BusinessCode(err); code != "" {
		if r, ok := businessResponses[code]; ok {
			httperr.Write(c, r.status, code, r.message)
			return
		}
		httperr.BadRequest(c, code, "Requisição inválida.")
		return
	}

	if errors.Is(err, chat.ErrSessionNotFound) {
		httperr.NotFound(c, "session_not_found", "Conversa não encontrada ou expirada. Comece uma nova.")
		return
	}

	_ = c.Error(err)
	httperr.Internal(c, internalCode, internalMessage)
}
