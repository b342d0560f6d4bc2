package barber

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/infra/memory"
	"github.com/BruksfildServices01/barber-booking/internal/infra/storage"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type recordingSink struct {
	mu      sync.Mutex
	actions []string
}

func (r *recordingSink) Dispatch(ev audit.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.actions = append(r.actions, ev.Action)
}

func newStore() *memory.Store {
	return memory.NewSeeded(func() time.Time {
		return time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)
	})
}

func validInput() BarberInput {
	return BarberInput{
		Name:          "  Rafael Lima ",
		WorkStartTime: "09:00:00",
		WorkEndTime:   "17:30",
		WorkDays:      []int{1, 3, 5},
		Breaks:        []models.BreakTime{{Start: "12:00:00", End: "13:00"}},
	}
}

func TestCreateBarber_NormalisesAndDefaults(t *testing.T) {
	store := newStore()
	sink := &recordingSink{}
	uc := NewCreateBarber(store, sink)

	b, err := uc.Execute(context.Background(), validInput(), "admin-1")
	require.NoError(t, err)

	assert.NotEmpty(t, b.ID)
	assert.Equal(t, "Rafael Lima", b.Name)
	assert.Equal(t, "09:00", b.WorkStartTime)
	assert.Equal(t, "17:30", b.WorkEndTime)
	assert.Equal(t, pq.Int64Array{1, 3, 5}, b.WorkDays)
	assert.Equal(t, domain.DefaultSlotDuration, b.SlotDuration)
	assert.Equal(t, []models.BreakTime{{Start: "12:00", End: "13:00"}}, b.Breaks)
	assert.Equal(t, []string{"barber_created"}, sink.actions)

	in := validInput()
	in.Breaks = nil
	b, err = uc.Execute(context.Background(), in, "admin-1")
	require.NoError(t, err)
	assert.NotNil(t, b.Breaks)
	assert.Empty(t, b.Breaks)
}

func TestCreateBarber_Validation(t *testing.T) {
	uc := NewCreateBarber(newStore(), audit.Nop{})

	cases := map[string]struct {
		mutate func(*BarberInput)
		code   string
	}{
		"blank name":     {func(in *BarberInput) { in.Name = " " }, domain.CodeInvalidName},
		"end before":     {func(in *BarberInput) { in.WorkEndTime = "08:00" }, domain.CodeInvalidSchedule},
		"bad time":       {func(in *BarberInput) { in.WorkStartTime = "nove" }, domain.CodeInvalidSchedule},
		"bad weekday":    {func(in *BarberInput) { in.WorkDays = []int{7} }, domain.CodeInvalidSchedule},
		"negative slot":  {func(in *BarberInput) { in.SlotDuration = -30 }, domain.CodeInvalidSchedule},
		"inverted break": {func(in *BarberInput) { in.Breaks = []models.BreakTime{{Start: "13:00", End: "12:00"}} }, domain.CodeInvalidSchedule},
	}

	for name, tc := range cases {
		in := validInput()
		tc.mutate(&in)
		_, err := uc.Execute(context.Background(), in, "")
		assert.True(t, httperr.IsBusiness(err, tc.code), "%s: got %v", name, err)
	}
}

func TestUpdateAndDeleteBarber(t *testing.T) {
	store := newStore()
	sink := &recordingSink{}
	ctx := context.Background()

	in := validInput()
	in.Name = "João Silva"
	in.SlotDuration = 30
	b, err := NewUpdateBarber(store, sink).Execute(ctx, "1", in, "admin-1")
	require.NoError(t, err)
	assert.Equal(t, "1", b.ID)
	assert.Equal(t, 30, b.SlotDuration)

	stored, err := NewListBarbers(store).Get(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "17:30", stored.WorkEndTime)

	_, err = NewUpdateBarber(store, sink).Execute(ctx, "404", in, "")
	assert.True(t, httperr.IsBusiness(err, domain.CodeBarberNotFound))

	require.NoError(t, NewDeleteBarber(store, sink).Execute(ctx, "1", "admin-1"))
	list, err := NewListBarbers(store).Execute(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	assert.Equal(t, []string{"barber_updated", "barber_deleted"}, sink.actions)
}

func TestUploadAvatar(t *testing.T) {
	store := newStore()
	objects := storage.NewMemoryStore("/api/public/avatars")
	uc := NewUploadAvatar(store, objects, audit.Nop{})
	ctx := context.Background()

	img := image.NewRGBA(image.Rect(0, 0, 300, 200))
	img.Set(10, 10, color.RGBA{R: 200, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	b, err := uc.Execute(ctx, "2", &buf, "admin-1")
	require.NoError(t, err)
	require.NotNil(t, b.AvatarURL)
	assert.True(t, strings.HasPrefix(*b.AvatarURL, "/api/public/avatars/barbers/2/"))

	key := strings.TrimPrefix(*b.AvatarURL, "/api/public/avatars/")
	obj, ok := objects.Get(key)
	require.True(t, ok)
	assert.Equal(t, "image/webp", obj.ContentType)

	_, err = uc.Execute(ctx, "2", strings.NewReader("not an image"), "")
	assert.True(t, httperr.IsBusiness(err, domain.CodeInvalidImage))

	_, err = uc.Execute(ctx, "404", strings.NewReader(""), "")
	assert.True(t, httperr.IsBusiness(err, domain.CodeBarberNotFound))
}
