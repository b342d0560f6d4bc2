package appointment

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

const (
	DefaultSlotDuration = 45

	dateLayout = "2006-01-02"
)

// TimeOfDay is a wall-clock time expressed in minutes since midnight.
type TimeOfDay int

// ParseTimeOfDay accepts "HH:mm" and "HH:mm:ss"; seconds are ignored.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	s = strings.TrimSpace(s)
	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("invalid time of day %q", s)
	}

	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 || len(parts[0]) > 2 {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 || len(parts[1]) != 2 {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}
	if len(parts) == 3 {
		if sec, err := strconv.Atoi(parts[2]); err != nil || sec < 0 || sec > 59 {
			return 0, fmt.Errorf("invalid second in %q", s)
		}
	}

	return TimeOfDay(h*60 + m), nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// On anchors the time of day to the calendar date of d, in d's location.
func (t TimeOfDay) On(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), int(t)/60, int(t)%60, 0, 0, d.Location())
}

type Break struct {
	Start TimeOfDay
	End   TimeOfDay
}

// Schedule is the per-barber configuration the slot generator walks.
type Schedule struct {
	WorkStart    TimeOfDay
	WorkEnd      TimeOfDay
	WorkDays     []int
	SlotDuration int
	Breaks       []Break
}

// Validate checks the preconditions GenerateSlots relies on. Callers must
// run it before generating; the generator never does.
func (s Schedule) Validate() error {
	if s.WorkStart >= s.WorkEnd {
		return httperr.ErrBusiness(CodeInvalidSchedule)
	}
	if s.SlotDuration <= 0 {
		return httperr.ErrBusiness(CodeInvalidSchedule)
	}
	for _, d := range s.WorkDays {
		if d < 0 || d > 6 {
			return httperr.ErrBusiness(CodeInvalidSchedule)
		}
	}
	for _, b := range s.Breaks {
		if b.Start >= b.End {
			return httperr.ErrBusiness(CodeInvalidSchedule)
		}
	}
	return nil
}

// ScheduleFromBarber converts the stored barber row, applying the defaults
// for a missing slot duration and missing breaks.
func ScheduleFromBarber(b *models.Barber) (Schedule, error) {
	start, err := ParseTimeOfDay(b.WorkStartTime)
	if err != nil {
		return Schedule{}, httperr.ErrBusiness(CodeInvalidSchedule)
	}
	end, err := ParseTimeOfDay(b.WorkEndTime)
	if err != nil {
		return Schedule{}, httperr.ErrBusiness(CodeInvalidSchedule)
	}

	duration := b.SlotDuration
	if duration == 0 {
		duration = DefaultSlotDuration
	}

	days := make([]int, 0, len(b.WorkDays))
	for _, d := range b.WorkDays {
		days = append(days, int(d))
	}

	breaks := make([]Break, 0, len(b.Breaks))
	for _, br := range b.Breaks {
		bs, err := ParseTimeOfDay(br.Start)
		if err != nil {
			return Schedule{}, httperr.ErrBusiness(CodeInvalidSchedule)
		}
		be, err := ParseTimeOfDay(br.End)
		if err != nil {
			return Schedule{}, httperr.ErrBusiness(CodeInvalidSchedule)
		}
		breaks = append(breaks, Break{Start: bs, End: be})
	}

	return Schedule{
		WorkStart:    start,
		WorkEnd:      end,
		WorkDays:     days,
		SlotDuration: duration,
		Breaks:       breaks,
	}, nil
}

// IsWorkDay reports whether date falls on one of workDays (0=Sunday).
func IsWorkDay(date time.Time, workDays []int) bool {
	wd := int(date.Weekday())
	for _, d := range workDays {
		if d == wd {
			return true
		}
	}
	return false
}

// FormatDate renders the storage form YYYY-MM-DD.
func FormatDate(date time.Time) string {
	return date.Format(dateLayout)
}

// ParseDate parses YYYY-MM-DD as midnight in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(dateLayout, strings.TrimSpace(s), loc)
}

// SameDay compares calendar dates, seeing b in a's location.
func SameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.In(a.Location()).Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
