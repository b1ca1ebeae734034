package engine

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
)

// Blind auctions. Reserving a modification escrows a sealed bid; when two or
// more players reserve the same card within a turn, resolution defers to a
// blind auction at end of turn: all bids reveal simultaneously, a strictly
// highest bid wins and pays itself, losers are refunded, and a tie among the
// top bids discards the card with everyone refunded.
//
// State machine per card: offered → reserved(1, auto-win at cost)
// | reserved(≥2) → auctioning → resolved(winner | no winner).

// Bid is one player's sealed commitment of pips.
type Bid struct {
	PlayerID uuid.UUID `json:"playerId"`
	Amount   int       `json:"amount"`
}

// Auction tracks the reservations for one contested modification.
type Auction struct {
	ModificationID string `json:"modificationId"`
	Bids           []Bid  `json:"bids"`
}

// bidFor returns the player's bid in this auction, or nil.
func (a *Auction) bidFor(playerID uuid.UUID) *Bid {
	for i := range a.Bids {
		if a.Bids[i].PlayerID == playerID {
			return &a.Bids[i]
		}
	}
	return nil
}

// reserveModification places a reservation with an escrowed default bid of
// the card's cost. Bots supply their final bid eagerly via PlaceAuctionBid;
// a reservation left untouched simply bids the base cost, so resolution
// never waits on a missing bid.
func (g *Game) reserveModification(p *Player, modID string) Result {
	if !g.modificationOffered(modID) {
		return failure("modification %q is not available in this game's market", modID)
	}
	def, _ := ModificationByID(modID)
	if !def.Stackable && p.HasModification(modID) {
		return failure("%s already owns %s", p.Name, def.Name)
	}

	a := g.Auctions[modID]
	if a != nil && a.bidFor(p.ID) != nil {
		return failure("%s has already reserved %s this turn", p.Name, def.Name)
	}
	if !p.canAfford(def.Cost) {
		return failure("not enough pips: need %d, have %d", def.Cost, p.FreePips)
	}

	if a == nil {
		a = &Auction{ModificationID: modID}
		g.Auctions[modID] = a
	}
	p.FreePips -= def.Cost
	p.escrow[modID] = def.Cost
	a.Bids = append(a.Bids, Bid{PlayerID: p.ID, Amount: def.Cost})

	p.recordAction("reserve_modification", modID)
	g.appendLog(p, fmt.Sprintf("%s reserves %s.", p.Name, def.Name))
	return Result{Success: true, Message: fmt.Sprintf("%s reserved", def.Name)}
}

// placeBid revises the player's sealed bid, escrowing the difference.
func (g *Game) placeBid(p *Player, modID string, amount int) Result {
	a := g.Auctions[modID]
	var bid *Bid
	if a != nil {
		bid = a.bidFor(p.ID)
	}
	if bid == nil {
		return failure("%s has not reserved modification %q this turn", p.Name, modID)
	}
	def, _ := ModificationByID(modID)
	if amount < def.Cost {
		return failure("bid must be at least the base cost of %d pips", def.Cost)
	}
	delta := amount - bid.Amount
	if delta > 0 && !p.canAfford(delta) {
		return failure("not enough pips to raise the bid by %d", delta)
	}

	p.FreePips -= delta
	p.escrow[modID] = amount
	bid.Amount = amount

	p.recordAction("place_bid", modID)
	g.appendLog(p, fmt.Sprintf("%s adjusts their sealed bid on %s.", p.Name, def.Name))
	return Result{Success: true, Message: "bid recorded"}
}

// resolveAuctions reveals all sealed bids and settles every outstanding
// reservation. Runs first in end-of-turn processing so no auction ever
// outlives the turn that opened it.
func (g *Game) resolveAuctions() {
	ids := make([]string, 0, len(g.Auctions))
	for id := range g.Auctions {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, modID := range ids {
		a := g.Auctions[modID]
		def, _ := ModificationByID(modID)

		if len(a.Bids) == 1 {
			// Sole reserver auto-wins at base cost; any raised escrow is
			// returned.
			bid := a.Bids[0]
			p := g.playerByID(bid.PlayerID)
			if refund := p.escrow[modID] - def.Cost; refund > 0 {
				p.FreePips += refund
			}
			delete(p.escrow, modID)
			g.awardModification(p, def)
			continue
		}

		top, tied := highestBid(a.Bids)
		if tied {
			for _, bid := range a.Bids {
				g.refundBid(bid.PlayerID, modID, bid.Amount)
			}
			g.removeModificationOffer(modID)
			g.appendLog(nil, fmt.Sprintf("The auction for %s ends in a tie; the card returns to the deck.", def.Name))
			continue
		}

		for _, bid := range a.Bids {
			if bid.PlayerID == top.PlayerID {
				// Winner pays their bid: escrow is simply kept.
				p := g.playerByID(bid.PlayerID)
				delete(p.escrow, modID)
				continue
			}
			g.refundBid(bid.PlayerID, modID, bid.Amount)
		}
		winner := g.playerByID(top.PlayerID)
		g.appendLog(nil, fmt.Sprintf("%s wins the auction for %s at %d pips.", winner.Name, def.Name, top.Amount))
		g.awardModification(winner, def)
	}

	g.Auctions = make(map[string]*Auction)
}

// highestBid finds the strictly highest bid; tied is true when two or more
// bids share the top amount.
func highestBid(bids []Bid) (top Bid, tied bool) {
	for _, b := range bids {
		if b.Amount > top.Amount {
			top = b
			tied = false
		} else if b.Amount == top.Amount {
			tied = true
		}
	}
	return top, tied
}

// refundBid returns a loser's escrowed pips in full.
func (g *Game) refundBid(playerID uuid.UUID, modID string, amount int) {
	p := g.playerByID(playerID)
	p.FreePips += amount
	delete(p.escrow, modID)
}

// awardModification grants the card permanently and applies its purchase
// hook, removing the card from the market.
func (g *Game) awardModification(p *Player, def ModificationDef) {
	p.Modifications = append(p.Modifications, def.ID)
	if def.ID == ModDormitory {
		p.DiceFloor++
	}
	g.removeModificationOffer(def.ID)
	g.appendLog(p, fmt.Sprintf("%s acquires %s.", p.Name, def.Name))
}

// releaseReservations drops the player's outstanding bids without refunding
// escrow. Used by UndoTurn, whose snapshot already restores the pips.
func (g *Game) releaseReservations(p *Player) {
	for modID, a := range g.Auctions {
		for i := range a.Bids {
			if a.Bids[i].PlayerID == p.ID {
				a.Bids = append(a.Bids[:i], a.Bids[i+1:]...)
				break
			}
		}
		if len(a.Bids) == 0 {
			delete(g.Auctions, modID)
		}
	}
	p.escrow = make(map[string]int)
}

// refundReservations drops the player's outstanding bids and returns their
// escrow. Used when a player flees mid-auction.
func (g *Game) refundReservations(p *Player) {
	for modID := range p.escrow {
		g.refundBid(p.ID, modID, p.escrow[modID])
	}
	g.releaseReservations(p)
}
