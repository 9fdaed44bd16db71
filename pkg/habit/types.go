package habit

// DayLayout is the layout of history keys: a local calendar day.
const DayLayout = "2006-01-02"

// History is the set of days a habit was completed on. Completion is key
// presence; false values are never written.
type History map[string]bool

// Done reports whether day is marked complete.
func (h History) Done(day string) bool {
	return h[day]
}

// Clone returns an independent copy. A nil history clones to an empty one.
func (h History) Clone() History {
	out := make(History, len(h))
	for k, v := range h {
		out[k] = v
	}
	return out
}

type Habit struct {
	ID      int64   `json:"id"`
	Name    string  `json:"name"`
	History History `json:"history"`
}

// Clone returns a deep copy of h.
func (h Habit) Clone() Habit {
	h.History = h.History.Clone()
	return h
}

// Summary is what a renderer shows for one habit.
type Summary struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Streak    int    `json:"streak"`
	DoneToday bool   `json:"done_today"`
}

// Snapshot is the full set of display values derived after a mutation.
type Snapshot struct {
	Today          string    `json:"today"`
	Habits         []Summary `json:"habits"`
	CompletionRate int       `json:"completion_rate"`
}

// Find returns the summary with the given id.
func (s Snapshot) Find(id int64) (Summary, bool) {
	for _, h := range s.Habits {
		if h.ID == id {
			return h, true
		}
	}
	return Summary{}, false
}
