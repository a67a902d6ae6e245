package main

import (
	"fmt"
	"strconv"
)

// GreedyStrategy drives every seat of a game toward trades that are
// profitable under each seat's private valuations, with a thumb on the
// scale for one hero player. It proposes single-unit swaps that benefit
// both sides (so the counterpart seat will accept them), accepts any
// pending offer with positive net value, and denies the rest.
type GreedyStrategy struct {
	hero int

	// proposed remembers offer shapes already made, so seats do not spam
	// the same rejected swap every round.
	proposed map[string]bool

	greetings map[int]bool
}

func NewGreedyStrategy(hero int) *GreedyStrategy {
	return &GreedyStrategy{
		hero:      hero,
		proposed:  make(map[string]bool),
		greetings: make(map[int]bool),
	}
}

// NextAction picks the raw action string for player p given the full
// server-side state. Seats are played with open cards; the point is to
// exercise the server, not to model hidden information.
func (s *GreedyStrategy) NextAction(p int, state *GameState) string {
	if state == nil {
		return ""
	}

	have := state.Resources[strconv.Itoa(p)]
	value := state.Valuations[strconv.Itoa(p)]

	// React to offers addressed to this seat first. Accept the most
	// profitable affordable one; deny anything that loses value.
	bestID, bestGain := 0, 0
	worstID := 0
	for _, offer := range state.PendingOffers {
		if offer.To != p {
			continue
		}
		gain := bundleValue(value, offer.Offered) - bundleValue(value, offer.Requested)
		if gain > 0 && covers(have, offer.Requested) {
			if bestID == 0 || gain > bestGain {
				bestID, bestGain = offer.ID, gain
			}
		} else if gain < 0 {
			worstID = offer.ID
		}
	}
	if bestID != 0 {
		return fmt.Sprintf("[Accept #%d]", bestID)
	}
	if worstID != 0 {
		return fmt.Sprintf("[Deny #%d]", worstID)
	}

	// Propose the single-unit swap with the biggest combined gain. The
	// hero's side of the trade is weighted double so the route of trades
	// drifts value toward the hero over the course of a game.
	type proposal struct {
		to         int
		give, want string
		score      int
	}
	var best *proposal

	for q := 0; q < state.NumPlayers; q++ {
		if q == p {
			continue
		}
		theirHave := state.Resources[strconv.Itoa(q)]
		theirValue := state.Valuations[strconv.Itoa(q)]

		for _, give := range state.ResourceNames {
			if have[give] < 1 {
				continue
			}
			for _, want := range state.ResourceNames {
				if want == give || theirHave[want] < 1 {
					continue
				}
				myGain := value[want] - value[give]
				theirGain := theirValue[give] - theirValue[want]
				if myGain <= 0 || theirGain <= 0 {
					continue
				}

				score := myGain + theirGain
				if p == s.hero {
					score += myGain
				} else if q == s.hero {
					score += theirGain
				}

				sig := fmt.Sprintf("%d>%d:%s>%s", p, q, give, want)
				if s.proposed[sig] {
					continue
				}
				if best == nil || score > best.score {
					best = &proposal{to: q, give: give, want: want, score: score}
				}
			}
		}
	}

	if best != nil {
		sig := fmt.Sprintf("%d>%d:%s>%s", p, best.to, best.give, best.want)
		s.proposed[sig] = true
		return fmt.Sprintf("[Offer to Player %d: 1 %s -> 1 %s]", best.to, best.give, best.want)
	}

	// Nothing profitable left. Announce intent once per seat, then pass
	// with empty actions until the game ends.
	if !s.greetings[p] {
		s.greetings[p] = true
		return "[Broadcast: I am open to trades that favor us both.]"
	}
	return ""
}

// bundleValue prices a bundle under one player's private valuations.
func bundleValue(valuation, bundle Bundle) int {
	total := 0
	for resource, qty := range bundle {
		total += valuation[resource] * qty
	}
	return total
}

// covers reports whether have contains at least need of every resource.
func covers(have, need Bundle) bool {
	for resource, qty := range need {
		if have[resource] < qty {
			return false
		}
	}
	return true
}
