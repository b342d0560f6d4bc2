package chat

import (
	"context"
	"errors"
	"hash/fnv"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/metrics"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
	ucappointment "github.com/BruksfildServices01/barber-booking/internal/usecase/appointment"
)

// effects chain at most a conflict reload after a save
const maxEffectsPerTurn = 4

const sessionLockStripes = 64

// Agent drives conversations: it feeds user input to Transition, performs
// the effects the machine asks for and persists the session.
type Agent struct {
	barbers      domain.BarberRegistry
	availability *ucappointment.GetAvailability
	create       *ucappointment.CreateAppointment
	sessions     SessionStore
	now          timezone.Clock
	metrics      *metrics.Metrics
	log          *zap.Logger

	// turns of one session run one at a time
	locks [sessionLockStripes]sync.Mutex
}

func NewAgent(
	barbers domain.BarberRegistry,
	availability *ucappointment.GetAvailability,
	create *ucappointment.CreateAppointment,
	sessions SessionStore,
	now timezone.Clock,
	m *metrics.Metrics,
	log *zap.Logger,
) *Agent {
	return &Agent{
		barbers:      barbers,
		availability: availability,
		create:       create,
		sessions:     sessions,
		now:          now,
		metrics:      m,
		log:          log,
	}
}

// Start creates a session and returns the greeting.
func (a *Agent) Start(ctx context.Context) (*Session, []Message, error) {
	step := Start()
	s := &Session{
		ID:      uuid.NewString(),
		State:   step.State,
		Context: step.Context,
	}
	if err := a.sessions.Save(ctx, s); err != nil {
		return nil, nil, err
	}
	return s, step.Messages, nil
}

// Send runs one user turn and returns the assistant's replies.
func (a *Agent) Send(ctx context.Context, sessionID, text string) (*Session, []Message, error) {
	mu := a.sessionLock(sessionID)
	mu.Lock()
	defer mu.Unlock()

	s, err := a.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	a.metrics.ChatMessage()

	barbers, err := a.barbers.ListBarbers(ctx)
	if err != nil {
		return nil, nil, err
	}
	env := Env{Barbers: barbers, Now: a.now()}

	step := Transition(s.State, s.Context, UserText{Text: text}, env)
	messages := step.Messages

	for i := 0; step.Effect != nil && i < maxEffectsPerTurn; i++ {
		ev := a.run(ctx, step.Effect)
		step = Transition(step.State, step.Context, ev, env)
		messages = append(messages, step.Messages...)
	}

	s.State = step.State
	s.Context = step.Context
	if err := a.sessions.Save(ctx, s); err != nil {
		return nil, nil, err
	}
	return s, messages, nil
}

func (a *Agent) sessionLock(id string) *sync.Mutex {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	return &a.locks[h.Sum32()%sessionLockStripes]
}

func (a *Agent) run(ctx context.Context, eff Effect) Event {
	switch e := eff.(type) {
	case LoadSlots:
		avail, err := a.availability.Execute(ctx, e.BarberID, e.Date)
		if err != nil {
			a.log.Warn("chat: load slots failed", zap.String("barber_id", e.BarberID), zap.Error(err))
			return SlotsLoaded{Err: err}
		}
		return SlotsLoaded{Slots: avail.Slots}

	case SaveAppointment:
		ap, err := a.create.Execute(ctx, ucappointment.CreateAppointmentInput{
			BarberID:    e.BarberID,
			ClientName:  e.Name,
			ClientPhone: e.Phone,
			Date:        e.Date,
			Time:        e.Time,
			Channel:     ucappointment.ChannelChat,
		})
		if err != nil {
			conflict := httperr.IsBusiness(err, domain.CodeSlotTaken) ||
				httperr.IsBusiness(err, domain.CodeSlotUnavailable)
			if !conflict {
				a.log.Error("chat: save appointment failed", zap.Error(err))
			}
			return SaveFailed{Conflict: conflict, Err: err}
		}
		return SaveSucceeded{AppointmentID: ap.ID}
	}

	return SaveFailed{Err: errors.New("chat: unknown effect")}
}
