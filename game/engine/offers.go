package engine

import "errors"

var (
	ErrOfferNotFound         = errors.New("offer does not exist")
	ErrNotAddressee          = errors.New("offer is not addressed to this player")
	ErrInvalidTarget         = errors.New("invalid target player")
	ErrInsufficientResources = errors.New("insufficient resources")
)

// CreateOffer registers a pending offer from one player to another. The
// offering side must currently hold the offered resources; they are checked
// but not escrowed, so acceptance re-validates later. Ids are sequential
// starting at 1 and are never reused, even after an offer is retired.
func (g *GameState) CreateOffer(from, to int, offered, requested ResourceBundle) (*Offer, error) {
	if !g.ValidPlayer(to) {
		return nil, ErrInvalidTarget
	}
	if !g.Sufficient(from, offered) {
		return nil, ErrInsufficientResources
	}

	g.OfferCounter++
	offer := &Offer{
		ID:        g.OfferCounter,
		From:      from,
		To:        to,
		Offered:   offered.Clone(),
		Requested: requested.Clone(),
	}
	g.PendingOffers[offer.ID] = offer
	return offer, nil
}

// AcceptOffer attempts to execute a pending offer on behalf of `by`.
//
// The cancelled return distinguishes environment fault from actor fault: if
// the offering side can no longer cover the offer, the offer is removed and
// (offer, true, nil) is returned; the world changed, the acceptor did not
// err. If `by` cannot cover the requested side, ErrInsufficientResources is
// returned and the offer stays pending. On success the exchange is applied
// atomically and the offer is removed.
func (g *GameState) AcceptOffer(by, id int) (offer *Offer, cancelled bool, err error) {
	offer, ok := g.PendingOffers[id]
	if !ok {
		return nil, false, ErrOfferNotFound
	}
	if offer.To != by {
		return nil, false, ErrNotAddressee
	}

	if !g.Sufficient(offer.From, offer.Offered) {
		delete(g.PendingOffers, id)
		return offer, true, nil
	}
	if !g.Sufficient(by, offer.Requested) {
		return nil, false, ErrInsufficientResources
	}

	g.Exchange(offer.From, offer.To, offer.Offered, offer.Requested)
	delete(g.PendingOffers, id)
	return offer, false, nil
}

// DenyOffer removes a pending offer without moving any resources. Only the
// addressee may deny it; the same existence and addressing rules as
// AcceptOffer apply.
func (g *GameState) DenyOffer(by, id int) (*Offer, error) {
	offer, ok := g.PendingOffers[id]
	if !ok {
		return nil, ErrOfferNotFound
	}
	if offer.To != by {
		return nil, ErrNotAddressee
	}

	delete(g.PendingOffers, id)
	return offer, nil
}
