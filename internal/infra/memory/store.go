package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// Store keeps every entity in process memory. It is the demo backend used
// when no database is configured, and the fake used by tests.
type Store struct {
	mu sync.RWMutex

	barbers      map[string]models.Barber
	appointments map[string]models.Appointment
	users        map[string]models.User
	auditLogs    []models.AuditLog

	now func() time.Time
}

func New(now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{
		barbers:      make(map[string]models.Barber),
		appointments: make(map[string]models.Appointment),
		users:        make(map[string]models.User),
		now:          now,
	}
}

// NewSeeded returns a store holding the demo barbers and two bookings for
// the first barber on the current day.
func NewSeeded(now func() time.Time) *Store {
	s := New(now)
	ts := s.now()

	for _, b := range []models.Barber{
		{
			ID: "1", Name: "João Silva",
			WorkStartTime: "09:00", WorkEndTime: "18:00",
			WorkDays:     pq.Int64Array{1, 2, 3, 4, 5, 6},
			SlotDuration: 45,
			Breaks:       []models.BreakTime{{Start: "12:00", End: "13:00"}},
		},
		{
			ID: "2", Name: "Carlos Santos",
			WorkStartTime: "10:00", WorkEndTime: "19:00",
			WorkDays:     pq.Int64Array{1, 2, 3, 4, 5},
			SlotDuration: 45,
			Breaks:       []models.BreakTime{},
		},
		{
			ID: "3", Name: "Miguel Oliveira",
			WorkStartTime: "08:00", WorkEndTime: "17:00",
			WorkDays:     pq.Int64Array{2, 3, 4, 5, 6},
			SlotDuration: 60,
			Breaks:       []models.BreakTime{{Start: "12:00", End: "14:00"}},
		},
	} {
		b.CreatedAt, b.UpdatedAt = ts, ts
		s.barbers[b.ID] = b
	}

	today := domain.FormatDate(ts)
	for _, ap := range []models.Appointment{
		{ID: "1", BarberID: "1", ClientName: "Pedro Almeida", ClientPhone: "11999998888", AppointmentTime: "10:00"},
		{ID: "2", BarberID: "1", ClientName: "José Costa", ClientPhone: "11999997777", AppointmentTime: "14:30"},
	} {
		ap.AppointmentDate = today
		ap.Status = string(domain.StatusScheduled)
		ap.CreatedAt, ap.UpdatedAt = ts, ts
		s.appointments[ap.ID] = ap
	}

	return s
}

// --------------------------------------------------
// Barbers
// --------------------------------------------------

func (s *Store) ListBarbers(ctx context.Context) ([]models.Barber, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Barber, 0, len(s.barbers))
	for _, b := range s.barbers {
		out = append(out, cloneBarber(b))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) GetBarber(ctx context.Context, id string) (*models.Barber, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.barbers[id]
	if !ok {
		return nil, httperr.ErrBusiness(domain.CodeBarberNotFound)
	}
	c := cloneBarber(b)
	return &c, nil
}

func (s *Store) CreateBarber(ctx context.Context, b *models.Barber) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	ts := s.now()
	b.CreatedAt, b.UpdatedAt = ts, ts
	s.barbers[b.ID] = cloneBarber(*b)
	return nil
}

func (s *Store) UpdateBarber(ctx context.Context, b *models.Barber) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.barbers[b.ID]
	if !ok {
		return httperr.ErrBusiness(domain.CodeBarberNotFound)
	}
	b.CreatedAt = cur.CreatedAt
	b.UpdatedAt = s.now()
	s.barbers[b.ID] = cloneBarber(*b)
	return nil
}

func (s *Store) DeleteBarber(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.barbers[id]; !ok {
		return httperr.ErrBusiness(domain.CodeBarberNotFound)
	}
	delete(s.barbers, id)

	// same effect as the ON DELETE CASCADE of the postgres schema
	for apID, ap := range s.appointments {
		if ap.BarberID == id {
			delete(s.appointments, apID)
		}
	}
	return nil
}

// --------------------------------------------------
// Appointments
// --------------------------------------------------

func (s *Store) ListAppointments(
	ctx context.Context,
	barberID string,
	date string,
) ([]models.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Appointment, 0)
	for _, ap := range s.appointments {
		if ap.BarberID == barberID &&
			ap.AppointmentDate == date &&
			ap.Status == string(domain.StatusScheduled) {
			out = append(out, ap)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AppointmentTime < out[j].AppointmentTime })
	return out, nil
}

func (s *Store) SearchAppointments(
	ctx context.Context,
	filter domain.AppointmentFilter,
) ([]models.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Appointment, 0)
	for _, ap := range s.appointments {
		if !matches(ap, filter) {
			continue
		}
		if b, ok := s.barbers[ap.BarberID]; ok {
			c := cloneBarber(b)
			ap.Barber = &c
		}
		out = append(out, ap)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].AppointmentDate != out[j].AppointmentDate {
			return out[i].AppointmentDate > out[j].AppointmentDate
		}
		return out[i].AppointmentTime < out[j].AppointmentTime
	})
	return out, nil
}

func (s *Store) CountAppointments(
	ctx context.Context,
	filter domain.AppointmentFilter,
) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int64
	for _, ap := range s.appointments {
		if matches(ap, filter) {
			n++
		}
	}
	return n, nil
}

func (s *Store) GetAppointment(ctx context.Context, id string) (*models.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ap, ok := s.appointments[id]
	if !ok {
		return nil, httperr.ErrBusiness(domain.CodeAppointmentNotFound)
	}
	if b, ok := s.barbers[ap.BarberID]; ok {
		c := cloneBarber(b)
		ap.Barber = &c
	}
	return &ap, nil
}

// CreateAppointment checks the slot and inserts under the same lock, so of
// two concurrent bookings for one slot exactly one wins.
func (s *Store) CreateAppointment(ctx context.Context, ap *models.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.barbers[ap.BarberID]; !ok {
		return httperr.ErrBusiness(domain.CodeBarberNotFound)
	}

	if ap.Status == "" {
		ap.Status = string(domain.InitialStatus())
	}

	if ap.Status == string(domain.StatusScheduled) {
		for _, other := range s.appointments {
			if other.BarberID == ap.BarberID &&
				other.AppointmentDate == ap.AppointmentDate &&
				other.AppointmentTime == ap.AppointmentTime &&
				other.Status == string(domain.StatusScheduled) {
				return httperr.ErrBusiness(domain.CodeSlotTaken)
			}
		}
	}

	if ap.ID == "" {
		ap.ID = uuid.NewString()
	}
	ts := s.now()
	ap.CreatedAt, ap.UpdatedAt = ts, ts

	stored := *ap
	stored.Barber = nil
	s.appointments[ap.ID] = stored
	return nil
}

func (s *Store) UpdateAppointmentStatus(
	ctx context.Context,
	id string,
	from domain.Status,
	to domain.Status,
) (*models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ap, ok := s.appointments[id]
	if !ok {
		return nil, httperr.ErrBusiness(domain.CodeAppointmentNotFound)
	}
	if ap.Status != string(from) {
		return nil, httperr.ErrBusiness(domain.CodeInvalidState)
	}

	if to == domain.StatusScheduled && from != domain.StatusScheduled {
		for otherID, other := range s.appointments {
			if otherID != id &&
				other.BarberID == ap.BarberID &&
				other.AppointmentDate == ap.AppointmentDate &&
				other.AppointmentTime == ap.AppointmentTime &&
				other.Status == string(domain.StatusScheduled) {
				return nil, httperr.ErrBusiness(domain.CodeSlotTaken)
			}
		}
	}

	ap.Status = string(to)
	ap.UpdatedAt = s.now()
	s.appointments[id] = ap
	return &ap, nil
}

func (s *Store) DeleteAppointment(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.appointments[id]; !ok {
		return httperr.ErrBusiness(domain.CodeAppointmentNotFound)
	}
	delete(s.appointments, id)
	return nil
}

// --------------------------------------------------
// Users
// --------------------------------------------------

func (s *Store) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[strings.ToLower(email)]
	if !ok {
		return nil, httperr.ErrBusiness(domain.CodeUserNotFound)
	}
	return &u, nil
}

func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(u.Email)
	if _, ok := s.users[key]; ok {
		return httperr.ErrBusiness(domain.CodeEmailTaken)
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	ts := s.now()
	u.CreatedAt, u.UpdatedAt = ts, ts
	s.users[key] = *u
	return nil
}

func (s *Store) CountUsers(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.users)), nil
}

// --------------------------------------------------
// Audit
// --------------------------------------------------

func (s *Store) SaveAuditLog(ctx context.Context, entry *models.AuditLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry.ID = uint(len(s.auditLogs) + 1)
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = s.now()
	}
	s.auditLogs = append(s.auditLogs, *entry)
	return nil
}

func (s *Store) ListAuditLogs(
	ctx context.Context,
	filter domain.AuditFilter,
) ([]models.AuditLog, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]models.AuditLog, 0)
	for i := len(s.auditLogs) - 1; i >= 0; i-- {
		l := s.auditLogs[i]
		if filter.Action != "" && l.Action != filter.Action {
			continue
		}
		if filter.Entity != "" && l.Entity != filter.Entity {
			continue
		}
		if filter.From != nil && l.CreatedAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && l.CreatedAt.After(*filter.To) {
			continue
		}
		matched = append(matched, l)
	}

	total := int64(len(matched))
	offset := (filter.Page - 1) * filter.Limit
	if offset < 0 || offset >= len(matched) {
		return []models.AuditLog{}, total, nil
	}
	end := len(matched)
	if filter.Limit > 0 && offset+filter.Limit < end {
		end = offset + filter.Limit
	}
	return matched[offset:end], total, nil
}

func matches(ap models.Appointment, f domain.AppointmentFilter) bool {
	if f.Date != "" && ap.AppointmentDate != f.Date {
		return false
	}
	if f.BarberID != "" && ap.BarberID != f.BarberID {
		return false
	}
	if f.Status != "" && ap.Status != f.Status {
		return false
	}
	return true
}

func cloneBarber(b models.Barber) models.Barber {
	c := b
	c.WorkDays = append(pq.Int64Array(nil), b.WorkDays...)
	c.Breaks = append([]models.BreakTime{}, b.Breaks...)
	if b.AvatarURL != nil {
		v := *b.AvatarURL
		c.AvatarURL = &v
	}
	return c
}

// Compile-time check
var _ domain.Repository = (*Store)(nil)
