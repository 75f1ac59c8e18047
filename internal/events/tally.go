package events

import (
	"context"
	"sync"
	"time"

	"github.com/TemirB/figurine-cart/internal/domain"
)

type KindStats struct {
	OK       int `json:"ok"`
	Failed   int `json:"failed"`
	Attempts int `json:"attempts"`
}

type TallySnapshot struct {
	Kinds         map[domain.EventKind]KindStats `json:"kinds"`
	Unwinds       int                            `json:"unwinds"`
	SessionResets int                            `json:"sessionResets"`
	ErrorCodes    map[string]int                 `json:"errorCodes"`
	LastEventAt   time.Time                      `json:"lastEventAt"`
}

// Tally aggregates consumed cart events: how often recovery kicked in and
// which failures shoppers saw.
type Tally struct {
	mu    sync.Mutex
	state TallySnapshot
}

func NewTally() *Tally {
	return &Tally{state: TallySnapshot{
		Kinds:      map[domain.EventKind]KindStats{},
		ErrorCodes: map[string]int{},
	}}
}

func (t *Tally) Handle(_ context.Context, ev domain.CartEvent) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	ks := t.state.Kinds[ev.Kind]
	if ev.OK {
		ks.OK++
	} else {
		ks.Failed++
		t.state.ErrorCodes[ev.ErrorCode]++
	}
	ks.Attempts += ev.Attempts
	t.state.Kinds[ev.Kind] = ks

	if ev.Unwound {
		t.state.Unwinds++
	}
	if ev.SessionReset {
		t.state.SessionResets++
	}
	if ev.At.After(t.state.LastEventAt) {
		t.state.LastEventAt = ev.At
	}
	return nil
}

func (t *Tally) Snapshot() TallySnapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := t.state
	out.Kinds = make(map[domain.EventKind]KindStats, len(t.state.Kinds))
	for k, v := range t.state.Kinds {
		out.Kinds[k] = v
	}
	out.ErrorCodes = make(map[string]int, len(t.state.ErrorCodes))
	for k, v := range t.state.ErrorCodes {
		out.ErrorCodes[k] = v
	}
	return out
}
