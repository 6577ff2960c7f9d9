package events

import (
	"fmt"
	"sync"
)

// Type is the closed set of engine event types.
type Type int

const (
	GameReady Type = iota
	GameStarted
	GameEnded
	TurnStarted
	TurnEnded
	PhaseStarted
	PhaseEnded
	PlayerAction
	PlayerAdvance
	PlayerInJail
	PlayerOutOfJail
	PlayerPaidRent
	PlayerPaidTax
	PlayerPassedGo
	PlayerDrewCard
	PlayerRolled
	PlayerBoughtTile
	PlayerInDebt
	PlayerForfeited
	AuctionStarted
	AuctionBid
	AuctionEnded
)

var typeNames = map[Type]string{
	GameReady:        "GAME_READY",
	GameStarted:      "GAME_STARTED",
	GameEnded:        "GAME_ENDED",
	TurnStarted:      "TURN_STARTED",
	TurnEnded:        "TURN_ENDED",
	PhaseStarted:     "PHASE_STARTED",
	PhaseEnded:       "PHASE_ENDED",
	PlayerAction:     "PLAYER_ACTION",
	PlayerAdvance:    "PLAYER_ADVANCE",
	PlayerInJail:     "PLAYER_IN_JAIL",
	PlayerOutOfJail:  "PLAYER_OUT_OF_JAIL",
	PlayerPaidRent:   "PLAYER_PAID_RENT",
	PlayerPaidTax:    "PLAYER_PAID_TAX",
	PlayerPassedGo:   "PLAYER_PASSED_GO",
	PlayerDrewCard:   "PLAYER_DREW_CARD",
	PlayerRolled:     "PLAYER_ROLLED",
	PlayerBoughtTile: "PLAYER_BOUGHT_TILE",
	PlayerInDebt:     "PLAYER_IN_DEBT",
	PlayerForfeited:  "PLAYER_FORFEITED",
	AuctionStarted:   "AUCTION_STARTED",
	AuctionBid:       "AUCTION_BID",
	AuctionEnded:     "AUCTION_ENDED",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("EVENT_%d", int(t))
}

// Types lists every event type in declaration order.
func Types() []Type {
	out := make([]Type, 0, len(typeNames))
	for t := GameReady; t <= AuctionEnded; t++ {
		out = append(out, t)
	}
	return out
}

// Event is one published state change. Seq increases by one per publish on
// a bus, so observers can check causal order.
type Event struct {
	Type    Type
	Seq     int
	Payload interface{}
}

// Handler reacts to an event.
type Handler func(Event)

type subscription struct {
	handle  int
	all     bool
	typ     Type
	handler Handler
}

// Bus is a synchronous publish/subscribe hub owned by one session.
type Bus struct {
	mu   sync.Mutex
	subs []subscription
	next int
	seq  int
}

func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers a handler for one event type and returns its handle.
func (b *Bus) Subscribe(t Type, h Handler) int {
	return b.add(subscription{typ: t, handler: h})
}

// SubscribeAll registers a handler for every event.
func (b *Bus) SubscribeAll(h Handler) int {
	return b.add(subscription{all: true, handler: h})
}

func (b *Bus) add(s subscription) int {
	if s.handler == nil {
		return -1
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	s.handle = b.next
	b.next++
	b.subs = append(b.subs, s)
	return s.handle
}

// Unsubscribe removes the handler with the given handle.
func (b *Bus) Unsubscribe(handle int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, s := range b.subs {
		if s.handle == handle {
			b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
			return
		}
	}
}

// Publish delivers synchronously, in subscription order. Handlers run
// outside the lock and may subscribe or unsubscribe.
func (b *Bus) Publish(t Type, payload interface{}) Event {
	b.mu.Lock()
	b.seq++
	evt := Event{Type: t, Seq: b.seq, Payload: payload}
	subs := make([]subscription, len(b.subs))
	copy(subs, b.subs)
	b.mu.Unlock()

	for _, s := range subs {
		if s.all || s.typ == t {
			s.handler(evt)
		}
	}
	return evt
}

// Recorder collects events; handy for tests and replays.
type Recorder struct {
	mu     sync.Mutex
	Events []Event
}

func (r *Recorder) Handle(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Events = append(r.Events, e)
}

// Types returns the recorded event types in order.
func (r *Recorder) Types() []Type {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Type, len(r.Events))
	for i, e := range r.Events {
		out[i] = e.Type
	}
	return out
}

// OfType returns the recorded events of one type.
func (r *Recorder) OfType(t Type) []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Event
	for _, e := range r.Events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Events = nil
}
