package scheduler

import "github.com/julianstephens/hearth/internal/models"

// Slot is a half-open interval [Start, End) of one column, in minutes from midnight.
type Slot struct {
	Start     int
	End       int
	Available bool
	TaskID    string
	// BlockedBy holds the shared task that reserved this slot in a person column.
	BlockedBy string
}

// Free reports whether nothing is written in the slot and it is not off.
func (s Slot) Free() bool {
	return s.Available && s.TaskID == ""
}

// BuildTemplate lays out one day's slots. Slots overlapping the lunch window are
// skipped and a trailing partial slot is dropped.
func BuildTemplate(w models.Window) []Slot {
	if w.SlotMin <= 0 {
		return nil
	}

	var slots []Slot
	for start := w.WorkStart; start+w.SlotMin <= w.WorkEnd; start += w.SlotMin {
		end := start + w.SlotMin
		if start < w.LunchEnd && end > w.LunchStart {
			continue
		}
		slots = append(slots, Slot{Start: start, End: end, Available: true})
	}
	return slots
}

func cloneTemplate(template []Slot, available bool) []Slot {
	out := make([]Slot, len(template))
	for i, s := range template {
		out[i] = Slot{Start: s.Start, End: s.End, Available: available}
	}
	return out
}
