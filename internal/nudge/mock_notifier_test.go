package nudge

type mockNotifier struct {
	called bool
	habits []string
	hours  int
	err    error
}

func (m *mockNotifier) SendNudge(habits []string, hoursTillExpiry int) error {
	m.called = true
	m.habits = habits
	m.hours = hoursTillExpiry
	return m.err
}
