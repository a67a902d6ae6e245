package engine

// EventKind names the observable outcomes of dispatching one command.
type EventKind string

const (
	EventBroadcast      EventKind = "broadcast"
	EventWhisper        EventKind = "whisper"
	EventOfferCreated   EventKind = "offer_created"
	EventOfferAccepted  EventKind = "offer_accepted"
	EventOfferDenied    EventKind = "offer_denied"
	EventOfferCancelled EventKind = "offer_cancelled"
	EventInvalidMove    EventKind = "invalid_move"
)

// Fault classifies why a command was rejected as an invalid move.
type Fault string

const (
	FaultParse      Fault = "parse"
	FaultAddressing Fault = "addressing"
	FaultResources  Fault = "insufficient_resources"
)

// Event records the outcome of one dispatched command. Invalid moves carry
// a Fault so callers can tell actor error from environment change; an
// offer cancelled because the offering side went broke is EventOfferCancelled,
// never an invalid move against the accepting player.
type Event struct {
	Kind    EventKind `json:"kind"`
	Player  int       `json:"player"`
	Target  int       `json:"target,omitempty"`
	OfferID int       `json:"offer_id,omitempty"`
	Fault   Fault     `json:"fault,omitempty"`
	Message string    `json:"message,omitempty"`
}
