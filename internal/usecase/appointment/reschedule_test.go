package appointment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

func TestReschedule_MovesTheClient(t *testing.T) {
	f := newFixture(t, monday8)
	ctx := context.Background()

	orig, err := f.create.Execute(ctx, booking("2026-10-20", "09:00"))
	require.NoError(t, err)

	moved, err := f.resched.Execute(ctx, RescheduleInput{
		AppointmentID: orig.ID,
		Date:          "2026-10-21",
		Time:          "10:30",
		ActorID:       "admin-1",
	})
	require.NoError(t, err)

	assert.NotEqual(t, orig.ID, moved.ID)
	assert.Equal(t, orig.ClientName, moved.ClientName)
	assert.Equal(t, orig.ClientPhone, moved.ClientPhone)
	assert.Equal(t, "2026-10-21", moved.AppointmentDate)
	assert.Equal(t, "10:30", moved.AppointmentTime)

	old, err := f.store.GetAppointment(ctx, orig.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCanceled), old.Status)

	assert.Contains(t, f.sink.actions(), "appointment_rescheduled")
	assert.Contains(t, f.pub.changes, slotChange{"1", "2026-10-20"})
	assert.Contains(t, f.pub.changes, slotChange{"1", "2026-10-21"})
}

func TestReschedule_ToAnotherBarber(t *testing.T) {
	f := newFixture(t, monday8)

	moved, err := f.resched.Execute(context.Background(), RescheduleInput{
		AppointmentID: "1",
		BarberID:      "3",
		Date:          "2026-10-20",
		Time:          "08:00",
	})
	require.NoError(t, err)
	assert.Equal(t, "3", moved.BarberID)
}

func TestReschedule_RestoresOriginalOnFailure(t *testing.T) {
	f := newFixture(t, monday8)
	ctx := context.Background()

	_, err := f.resched.Execute(ctx, RescheduleInput{
		AppointmentID: "1",
		Date:          "2026-10-20",
		Time:          "12:00", // inside the break
	})
	assert.True(t, httperr.IsBusiness(err, domain.CodeSlotUnavailable))

	ap, err := f.store.GetAppointment(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusScheduled), ap.Status)
}

func TestReschedule_ReportsLostOriginal(t *testing.T) {
	f := newFixture(t, monday8)
	uc := NewReschedule(noRevive{f.store}, f.create, f.sink, zap.NewNop())
	ctx := context.Background()

	_, err := uc.Execute(ctx, RescheduleInput{
		AppointmentID: "1",
		Date:          "2026-10-20",
		Time:          "12:00", // inside the break
		ActorID:       "admin-1",
	})
	assert.True(t, httperr.IsBusiness(err, domain.CodeRescheduleLost))

	ap, err := f.store.GetAppointment(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCanceled), ap.Status)

	require.Equal(t, []string{"appointment_reschedule_lost"}, f.sink.actions())
	ev := f.sink.events[0]
	require.NotNil(t, ev.EntityID)
	assert.Equal(t, "1", *ev.EntityID)
	meta, ok := ev.Metadata.(map[string]string)
	require.True(t, ok)
	assert.Equal(t, "10:00", meta["time"])
	assert.Contains(t, f.pub.changes, slotChange{"1", ap.AppointmentDate})
}

func TestReschedule_OnlyScheduled(t *testing.T) {
	f := newFixture(t, monday8)
	ctx := context.Background()

	_, err := f.status.Complete(ctx, "1", "")
	require.NoError(t, err)

	_, err = f.resched.Execute(ctx, RescheduleInput{AppointmentID: "1", Date: "2026-10-20", Time: "09:00"})
	assert.True(t, httperr.IsBusiness(err, domain.CodeInvalidState))

	_, err = f.resched.Execute(ctx, RescheduleInput{AppointmentID: "nope", Date: "2026-10-20", Time: "09:00"})
	assert.True(t, httperr.IsBusiness(err, domain.CodeAppointmentNotFound))
}
