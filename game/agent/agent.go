// Package agent defines the decision sources that play the game: a human
// at a terminal, a scripted sequence for tests and demos, and a hosted
// chat-completion model reached over HTTP.
package agent

import "context"

// Agent turns an observation string into the next raw action string. The
// engine treats whatever comes back as one action; an empty string simply
// parses to zero commands and yields an uneventful turn.
type Agent interface {
	Act(ctx context.Context, observation string) (string, error)
}
