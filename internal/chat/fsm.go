package chat

import (
	"fmt"
	"strings"
	"time"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/validators"
)

type State string

const (
	StateGreeting     State = "greeting"
	StateSelectBarber State = "select_barber"
	StateSelectDate   State = "select_date"
	StateSelectTime   State = "select_time"
	StateCollectName  State = "collect_name"
	StateCollectPhone State = "collect_phone"
	StateConfirm      State = "confirm"
	StateSaving       State = "saving"
	StateSuccess      State = "success"
	StateError        State = "error"
)

// MaxOfferedTimes caps how many free slots are listed in one message.
const MaxOfferedTimes = 8

// Context is what the dialogue has collected so far.
type Context struct {
	BarberID   string   `json:"barber_id,omitempty"`
	BarberName string   `json:"barber_name,omitempty"`
	Date       string   `json:"date,omitempty"`
	Time       string   `json:"time,omitempty"`
	Name       string   `json:"name,omitempty"`
	Phone      string   `json:"phone,omitempty"`
	Offered    []string `json:"offered,omitempty"`
}

type Message struct {
	Role    string   `json:"role"`
	Content string   `json:"content"`
	Options []string `json:"options,omitempty"`
}

func assistant(content string, options ...string) Message {
	return Message{Role: "assistant", Content: content, Options: options}
}

// Env is the read-only world a transition may look at.
type Env struct {
	Barbers []models.Barber
	Now     time.Time
}

func (e Env) barber(id string) (models.Barber, bool) {
	for _, b := range e.Barbers {
		if b.ID == id {
			return b, true
		}
	}
	return models.Barber{}, false
}

func (e Env) barberNames() []string {
	names := make([]string, 0, len(e.Barbers))
	for _, b := range e.Barbers {
		names = append(names, b.Name)
	}
	return names
}

// ======================================================
// EVENTS
// ======================================================

type Event interface{ event() }

type UserText struct{ Text string }

type SlotsLoaded struct {
	Slots []domain.TimeSlot
	Err   error
}

type SaveSucceeded struct{ AppointmentID string }

// SaveFailed with Conflict set means somebody else took the slot first.
type SaveFailed struct {
	Conflict bool
	Err      error
}

func (UserText) event()      {}
func (SlotsLoaded) event()   {}
func (SaveSucceeded) event() {}
func (SaveFailed) event()    {}

// ======================================================
// EFFECTS
// ======================================================

type Effect interface{ effect() }

type LoadSlots struct {
	BarberID string
	Date     string
}

type SaveAppointment struct {
	BarberID string
	Date     string
	Time     string
	Name     string
	Phone    string
}

func (LoadSlots) effect()       {}
func (SaveAppointment) effect() {}

// Step is the outcome of one transition. Effect, when set, must be run
// and its result fed back as the next event.
type Step struct {
	State    State
	Context  Context
	Messages []Message
	Effect   Effect
}

// Start opens a conversation.
func Start() Step {
	return Step{
		State: StateGreeting,
		Messages: []Message{
			assistant("Olá! Bem-vindo à barbearia. Sou seu assistente virtual. Gostaria de agendar um horário?", "Sim, agendar"),
		},
	}
}

func restart(prefix ...Message) Step {
	return Step{
		State:    StateGreeting,
		Messages: append(prefix, assistant("Como posso ajudar agora?", "Agendar Corte")),
	}
}

func stay(state State, ctx Context, msgs ...Message) Step {
	return Step{State: state, Context: ctx, Messages: msgs}
}

// ======================================================
// TRANSITION
// ======================================================

// Transition is pure: it never performs I/O and depends only on its
// arguments.
func Transition(state State, ctx Context, ev Event, env Env) Step {
	switch e := ev.(type) {
	case UserText:
		return onText(state, ctx, e.Text, env)
	case SlotsLoaded:
		if state != StateSelectTime {
			return stay(state, ctx)
		}
		return onSlots(ctx, e)
	case SaveSucceeded:
		if state != StateSaving {
			return stay(state, ctx)
		}
		return Step{
			State: StateSuccess,
			Messages: []Message{
				assistant("Agendamento confirmado com sucesso! 🎉 Te esperamos lá."),
				assistant("Gostaria de realizar outro agendamento?", "Novo Agendamento"),
			},
		}
	case SaveFailed:
		if state != StateSaving {
			return stay(state, ctx)
		}
		return onSaveFailed(ctx, e)
	}
	return stay(state, ctx)
}

func onText(state State, ctx Context, text string, env Env) Step {
	switch state {
	case StateGreeting:
		return greeting(ctx, text, env)
	case StateSelectBarber:
		return selectBarber(ctx, text, env)
	case StateSelectDate:
		return selectDate(ctx, text, env)
	case StateSelectTime:
		return selectTime(ctx, text)
	case StateCollectName:
		return collectName(ctx, text)
	case StateCollectPhone:
		return collectPhone(ctx, text)
	case StateConfirm:
		return confirm(ctx, text)
	case StateSaving:
		return stay(state, ctx, assistant("Só um instante, estou salvando seu agendamento."))
	case StateSuccess, StateError:
		return restart()
	}
	return restart(assistant("Desculpe, me perdi. Vamos começar de novo?"))
}

func greeting(ctx Context, text string, env Env) Step {
	if !containsAny(fold(text), "agendar", "marcar", "corte", "sim") {
		return stay(StateGreeting, ctx,
			assistant("Olá! Sou o assistente da barbearia. Posso ajudar você a agendar um horário. Digite 'agendar' para começar."))
	}
	if len(env.Barbers) == 0 {
		return stay(StateGreeting, ctx,
			assistant("Desculpe, não encontrei barbeiros disponíveis no momento."))
	}
	return stay(StateSelectBarber, Context{},
		assistant("Claro! Com qual barbeiro você gostaria de cortar?", env.barberNames()...))
}

func selectBarber(ctx Context, text string, env Env) Step {
	in := fold(text)
	if in != "" {
		for _, b := range env.Barbers {
			name := fold(b.Name)
			if strings.Contains(in, name) || strings.Contains(name, in) {
				ctx.BarberID = b.ID
				ctx.BarberName = b.Name
				return stay(StateSelectDate, ctx,
					assistant(fmt.Sprintf("Ótima escolha! O %s é excelente. Para quando você gostaria? (Ex: Hoje, Amanhã, Segunda)", b.Name)))
			}
		}
	}
	return stay(StateSelectBarber, ctx,
		assistant("Não encontrei esse barbeiro. Por favor escolha um da lista:", env.barberNames()...))
}

func selectDate(ctx Context, text string, env Env) Step {
	date, ok := ParseDateInput(text, env.Now)
	if !ok {
		return stay(StateSelectDate, ctx,
			assistant("Não entendi a data. Tente 'Hoje', 'Amanhã' ou um dia da semana."))
	}

	barber, found := env.barber(ctx.BarberID)
	if !found {
		return Step{
			State:    StateError,
			Messages: []Message{assistant("Esse barbeiro não está mais disponível. Digite qualquer coisa para recomeçar.")},
		}
	}

	days := make([]int, 0, len(barber.WorkDays))
	for _, d := range barber.WorkDays {
		days = append(days, int(d))
	}
	if !domain.IsWorkDay(date, days) {
		return stay(StateSelectDate, ctx,
			assistant("Infelizmente o barbeiro não trabalha nesse dia. Tente outra data."))
	}

	ctx.Date = domain.FormatDate(date)
	ctx.Time = ""
	ctx.Offered = nil
	return Step{
		State:   StateSelectTime,
		Context: ctx,
		Effect:  LoadSlots{BarberID: ctx.BarberID, Date: ctx.Date},
	}
}

func onSlots(ctx Context, e SlotsLoaded) Step {
	if e.Err != nil {
		return Step{
			State:    StateError,
			Messages: []Message{assistant("Tive um problema técnico ao buscar os horários. Digite qualquer coisa para recomeçar.")},
		}
	}

	free := domain.AvailableTimes(e.Slots, MaxOfferedTimes)
	if len(free) == 0 {
		ctx.Offered = nil
		return stay(StateSelectDate, ctx,
			assistant("Poxa, não tenho horários livres para esse dia. Tente outra data."))
	}

	ctx.Offered = free
	return stay(StateSelectTime, ctx, assistant("Tenho estes horários livres:", free...))
}

func selectTime(ctx Context, text string) Step {
	hm, ok := ParseTimeInput(text)
	if !ok {
		return stay(StateSelectTime, ctx,
			assistant("Não entendi o horário. Por favor use o formato HH:mm (ex: 14:30)", ctx.Offered...))
	}

	for _, offered := range ctx.Offered {
		if offered == hm {
			ctx.Time = hm
			return stay(StateCollectName, ctx, assistant("Perfeito! Qual o seu nome completo?"))
		}
	}

	return stay(StateSelectTime, ctx,
		assistant("Esse horário não está disponível. Escolha um destes:", ctx.Offered...))
}

func collectName(ctx Context, text string) Step {
	name := strings.TrimSpace(text)
	if !validators.IsValidName(name) {
		return stay(StateCollectName, ctx, assistant("Por favor, digite seu nome completo."))
	}
	ctx.Name = name
	return stay(StateCollectPhone, ctx, assistant("E qual seu telefone para contato? (com DDD, apenas números)"))
}

func collectPhone(ctx Context, text string) Step {
	if !validators.IsValidPhone(text) {
		return stay(StateCollectPhone, ctx, assistant("O telefone parece inválido. Digite novamente com DDD."))
	}
	ctx.Phone = validators.NormalizePhone(text)

	summary := fmt.Sprintf("Confirma o agendamento?\n\n📅 %s\n⏰ %s\n💈 %s\n👤 %s",
		FormatDateBR(ctx.Date), ctx.Time, ctx.BarberName, ctx.Name)
	return stay(StateConfirm, ctx, assistant(summary, "Sim, confirmar", "Cancelar"))
}

func confirm(ctx Context, text string) Step {
	if !containsAny(fold(text), "sim", "confirmar") {
		return restart(assistant("Agendamento cancelado. Podemos começar de novo quando quiser."))
	}
	return Step{
		State:   StateSaving,
		Context: ctx,
		Effect: SaveAppointment{
			BarberID: ctx.BarberID,
			Date:     ctx.Date,
			Time:     ctx.Time,
			Name:     ctx.Name,
			Phone:    ctx.Phone,
		},
	}
}

func onSaveFailed(ctx Context, e SaveFailed) Step {
	if e.Conflict {
		ctx.Time = ""
		ctx.Offered = nil
		return Step{
			State:    StateSelectTime,
			Context:  ctx,
			Messages: []Message{assistant("Poxa, esse horário acabou de ser reservado por outra pessoa. Vou buscar os horários atualizados.")},
			Effect:   LoadSlots{BarberID: ctx.BarberID, Date: ctx.Date},
		}
	}
	return Step{
		State:    StateError,
		Messages: []Message{assistant("Não consegui salvar seu agendamento. Digite qualquer coisa para recomeçar.")},
	}
}
