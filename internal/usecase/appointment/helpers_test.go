package appointment

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/infra/memory"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

var brt = time.FixedZone("BRT", -3*60*60)

// Monday 2026-10-19, 08:00 in the shop
var monday8 = time.Date(2026, 10, 19, 8, 0, 0, 0, brt)

type recordingSink struct {
	mu     sync.Mutex
	events []audit.Event
}

func (r *recordingSink) Dispatch(ev audit.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recordingSink) actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, ev := range r.events {
		out = append(out, ev.Action)
	}
	return out
}

type slotChange struct{ barberID, date string }

type recordingPublisher struct {
	mu      sync.Mutex
	changes []slotChange
}

func (p *recordingPublisher) SlotsChanged(barberID, date string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.changes = append(p.changes, slotChange{barberID, date})
}

// staleReads hides every booking from availability checks, so only the
// store's own uniqueness check stands between two bookings.
type staleReads struct {
	*memory.Store
}

func (staleReads) ListAppointments(context.Context, string, string) ([]models.Appointment, error) {
	return nil, nil
}

// slowReads delays every lookup so concurrent writers all act on the
// same snapshot.
type slowReads struct {
	*memory.Store
}

func (s slowReads) GetAppointment(ctx context.Context, id string) (*models.Appointment, error) {
	ap, err := s.Store.GetAppointment(ctx, id)
	time.Sleep(20 * time.Millisecond)
	return ap, err
}

// noRevive refuses to put a canceled appointment back on the schedule.
type noRevive struct {
	*memory.Store
}

func (s noRevive) UpdateAppointmentStatus(
	ctx context.Context,
	id string,
	from domain.Status,
	to domain.Status,
) (*models.Appointment, error) {
	if to == domain.StatusScheduled {
		return nil, errors.New("connection reset")
	}
	return s.Store.UpdateAppointmentStatus(ctx, id, from, to)
}

type fixture struct {
	store     *memory.Store
	sink      *recordingSink
	pub       *recordingPublisher
	avail     *GetAvailability
	create    *CreateAppointment
	status    *ChangeStatus
	resched   *Reschedule
	del       *DeleteAppointment
	list      *ListAppointments
	dashboard *Dashboard
}

func newFixture(t *testing.T, now time.Time) *fixture {
	t.Helper()

	clock := timezone.Fixed(now)
	store := memory.NewSeeded(clock)
	sink := &recordingSink{}
	pub := &recordingPublisher{}

	avail := NewGetAvailability(store, store, clock)
	create := NewCreateAppointment(avail, store, sink, pub, nil)

	return &fixture{
		store:     store,
		sink:      sink,
		pub:       pub,
		avail:     avail,
		create:    create,
		status:    NewChangeStatus(store, sink, pub),
		resched:   NewReschedule(store, create, sink, zap.NewNop()),
		del:       NewDeleteAppointment(store, sink, pub),
		list:      NewListAppointments(store),
		dashboard: NewDashboard(store, store, clock),
	}
}

func booking(date, hm string) CreateAppointmentInput {
	return CreateAppointmentInput{
		BarberID:    "1",
		ClientName:  "Maria Souza",
		ClientPhone: "(11) 98765-4321",
		Date:        date,
		Time:        hm,
	}
}
