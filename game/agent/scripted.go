package agent

import "context"

// Scripted replays a fixed sequence of actions, then returns empty actions
// (uneventful turns) once the script is exhausted. Useful for tests and
// offline demos.
type Scripted struct {
	actions []string
	next    int
}

// NewScripted creates a scripted agent over the given actions.
func NewScripted(actions ...string) *Scripted {
	return &Scripted{actions: actions}
}

// Act returns the next scripted action.
func (s *Scripted) Act(ctx context.Context, observation string) (string, error) {
	if s.next >= len(s.actions) {
		return "", nil
	}
	action := s.actions[s.next]
	s.next++
	return action, nil
}
