package engine

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// CommandKind classifies a parsed action fragment.
type CommandKind string

const (
	CmdBroadcast CommandKind = "broadcast"
	CmdWhisper   CommandKind = "whisper"
	CmdOffer     CommandKind = "offer"
	CmdAccept    CommandKind = "accept"
	CmdDeny      CommandKind = "deny"
)

// Command is one typed directive extracted from a raw action string.
// Resource lists inside an offer body stay raw here; they are resolved at
// dispatch time so a malformed list becomes an invalid move for that one
// fragment instead of a parse abort.
type Command struct {
	Kind   CommandKind
	Target int    // whisper/offer: player id; accept/deny: offer id
	Text   string // broadcast/whisper message body
	Body   string // offer: raw "<offered> -> <requested>" text
}

// Patterns to extract commands from player actions. Keywords are
// case-insensitive and a leading "to"/"Player" qualifier is tolerated
// before numeric ids.
var (
	broadcastPattern = regexp.MustCompile(`(?i)\[broadcast\s*:?\s*([^\[\]]*)\]`)
	whisperPattern   = regexp.MustCompile(`(?i)\[whisper\s+(?:to\s+)?(?:player\s+)?(\d+)\s*:?\s*([^\[\]]*)\]`)
	offerPattern     = regexp.MustCompile(`(?i)\[offer\s+(?:to\s+)?(?:player\s+)?(\d+)\s*:?\s*([^\[\]]*)\]`)
	acceptPattern    = regexp.MustCompile(`(?i)\[accept\s*#?\s*(\d+)\s*\]`)
	denyPattern      = regexp.MustCompile(`(?i)\[deny\s*#?\s*(\d+)\s*\]`)

	listSeparator = regexp.MustCompile(`(?i),\s*|\s+and\s+`)
	listItem      = regexp.MustCompile(`^(\d+)\s+(.+)$`)
	arrowSplit    = regexp.MustCompile(`\s*->\s*`)
)

// ParseAction extracts every recognized command from one raw action string.
// Each command kind is scanned independently over the whole string; within a
// kind, matches keep their left-to-right textual order. The returned slice
// is ordered by dispatch class: broadcasts, whispers, offers, accepts,
// denies. Unmatched text is ignored.
func ParseAction(action string) []Command {
	var cmds []Command

	for _, m := range broadcastPattern.FindAllStringSubmatch(action, -1) {
		cmds = append(cmds, Command{Kind: CmdBroadcast, Text: strings.TrimSpace(m[1])})
	}
	for _, m := range whisperPattern.FindAllStringSubmatch(action, -1) {
		cmds = append(cmds, Command{Kind: CmdWhisper, Target: parseID(m[1]), Text: strings.TrimSpace(m[2])})
	}
	for _, m := range offerPattern.FindAllStringSubmatch(action, -1) {
		cmds = append(cmds, Command{Kind: CmdOffer, Target: parseID(m[1]), Body: strings.TrimSpace(m[2])})
	}
	for _, m := range acceptPattern.FindAllStringSubmatch(action, -1) {
		cmds = append(cmds, Command{Kind: CmdAccept, Target: parseID(m[1])})
	}
	for _, m := range denyPattern.FindAllStringSubmatch(action, -1) {
		cmds = append(cmds, Command{Kind: CmdDeny, Target: parseID(m[1])})
	}

	return cmds
}

// parseID converts a captured digit run to an id. Overflow maps to -1 so
// the later addressing check rejects it as an invalid target.
func parseID(s string) int {
	id, err := strconv.Atoi(s)
	if err != nil {
		return -1
	}
	return id
}

// ParseOfferBody splits an offer body into its offered and requested
// resource lists. The body must contain exactly one "->" separator with a
// valid resource list on each side.
func ParseOfferBody(body string, known []Resource) (offered, requested ResourceBundle, err error) {
	parts := arrowSplit.Split(body, -1)
	if len(parts) != 2 {
		return nil, nil, fmt.Errorf("cannot parse offer %q: must be like '2 Wheat -> 3 Wood'", body)
	}

	offered, err = ParseResourceList(parts[0], known)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid offered resources in %q: %w", body, err)
	}
	requested, err = ParseResourceList(parts[1], known)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid requested resources in %q: %w", body, err)
	}
	return offered, requested, nil
}

// ParseResourceList parses a comma- or "and"-separated list of
// "<positive integer> <ResourceName>" items into a bundle. Resource names
// match case-insensitively against the known set. Any malformed or unknown
// item invalidates the whole list; there are no partial bundles.
func ParseResourceList(s string, known []Resource) (ResourceBundle, error) {
	canonical := make(map[string]Resource, len(known))
	for _, r := range known {
		canonical[strings.ToLower(string(r))] = r
	}

	bundle := make(ResourceBundle)
	for _, item := range listSeparator.Split(s, -1) {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		m := listItem.FindStringSubmatch(item)
		if m == nil {
			return nil, fmt.Errorf("malformed resource entry %q", item)
		}
		qty, err := strconv.Atoi(m[1])
		if err != nil || qty <= 0 {
			return nil, fmt.Errorf("resource quantity must be a positive integer, got %q", m[1])
		}
		name := strings.ToLower(strings.TrimSpace(m[2]))
		r, ok := canonical[name]
		if !ok {
			return nil, fmt.Errorf("unknown resource %q", m[2])
		}
		bundle[r] += qty
	}

	if len(bundle) == 0 {
		return nil, fmt.Errorf("empty resource list")
	}
	return bundle, nil
}
