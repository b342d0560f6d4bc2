package appointment

import (
	"time"
)

// ExistingAppointment is what the generator needs to know about a booking.
// Barber and date scoping is the caller's job; only Status and Time are read.
type ExistingAppointment struct {
	BarberID string
	Date     string
	Time     string
	Status   Status
}

type TimeSlot struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

// GenerateSlots walks the working window of date in steps of SlotDuration and
// returns every slot that does not overlap a break, flagging the ones that are
// already past (when date is today) or held by a scheduled appointment.
//
// Only the slot start is compared against WorkEnd, so the last slot may run
// past closing time. The schedule must satisfy Validate.
func GenerateSlots(
	schedule Schedule,
	appointments []ExistingAppointment,
	date time.Time,
	now time.Time,
) []TimeSlot {

	booked := make(map[string]struct{}, len(appointments))
	for _, ap := range appointments {
		if !ap.Status.Occupies() {
			continue
		}
		booked[normalizeTime(ap.Time)] = struct{}{}
	}

	isToday := SameDay(date, now)
	step := TimeOfDay(schedule.SlotDuration)

	slots := make([]TimeSlot, 0)

	for cur := schedule.WorkStart; cur < schedule.WorkEnd; cur += step {
		if overlapsBreak(cur, cur+step, schedule.Breaks) {
			continue
		}

		label := cur.String()
		_, isBooked := booked[label]
		isPast := isToday && cur.On(date).Before(now)

		slots = append(slots, TimeSlot{
			Time:      label,
			Available: !isPast && !isBooked,
		})
	}

	return slots
}

// half-open: a slot may end exactly when a break starts, or start when it ends
func overlapsBreak(start, end TimeOfDay, breaks []Break) bool {
	for _, b := range breaks {
		if start < b.End && end > b.Start {
			return true
		}
	}
	return false
}

func normalizeTime(s string) string {
	if t, err := ParseTimeOfDay(s); err == nil {
		return t.String()
	}
	if len(s) > 5 {
		return s[:5]
	}
	return s
}

// FindSlot returns the emitted slot starting at hm, if any.
func FindSlot(slots []TimeSlot, hm string) (TimeSlot, bool) {
	key := normalizeTime(hm)
	for _, s := range slots {
		if s.Time == key {
			return s, true
		}
	}
	return TimeSlot{}, false
}

// AvailableTimes lists the start times of the available slots, at most limit
// of them when limit > 0.
func AvailableTimes(slots []TimeSlot, limit int) []string {
	out := make([]string, 0)
	for _, s := range slots {
		if !s.Available {
			continue
		}
		out = append(out, s.Time)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}
