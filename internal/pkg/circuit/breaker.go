package circuit

import (
	"errors"
	"sync"
	"time"

	"github.com/TemirB/figurine-cart/internal/config"
)

var ErrOpen = errors.New("circuit open")

type State int

const (
	Closed   State = iota // requests flow
	Open                  // requests rejected until the open timeout passes
	HalfOpen              // a limited number of trial requests
)

func (s State) String() string {
	switch s {
	case Open:
		return "open"
	case HalfOpen:
		return "half-open"
	default:
		return "closed"
	}
}

// Breaker opens after Threshold consecutive failures, rejects for OpenTimeout,
// then lets MaxHalfOpen trial requests through. Callers report outcomes with
// Success/Failure.
type Breaker struct {
	mu          sync.Mutex
	state       State
	failures    uint32
	threshold   uint32
	openTimeout time.Duration
	trial       uint32
	maxHalfOpen uint32
	changedAt   time.Time

	onChange func(from, to State)
	now      func() time.Time
}

func New(cfg config.Breaker) *Breaker {
	if cfg.Threshold == 0 {
		cfg.Threshold = 1
	}
	if cfg.MaxHalfOpen == 0 {
		cfg.MaxHalfOpen = 1
	}
	return &Breaker{
		state:       Closed,
		threshold:   cfg.Threshold,
		openTimeout: cfg.OpenTimeout,
		maxHalfOpen: cfg.MaxHalfOpen,
		changedAt:   time.Now(),
		now:         time.Now,
	}
}

// OnStateChange registers a hook called (under the breaker lock) on every transition.
func (b *Breaker) OnStateChange(fn func(from, to State)) {
	b.mu.Lock()
	b.onChange = fn
	b.mu.Unlock()
}

// Allow returns ErrOpen when the request must not be attempted.
func (b *Breaker) Allow() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	switch b.state {
	case Open:
		if now.Sub(b.changedAt) < b.openTimeout {
			return ErrOpen
		}
		b.transitionTo(now, HalfOpen)
		b.trial++
		return nil
	case HalfOpen:
		if b.trial >= b.maxHalfOpen {
			return ErrOpen
		}
		b.trial++
		return nil
	default:
		return nil
	}
}

func (b *Breaker) Success() {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case HalfOpen:
		b.transitionTo(b.now(), Closed)
	case Closed:
		b.failures = 0
	}
}

func (b *Breaker) Failure() {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	switch b.state {
	case HalfOpen:
		b.transitionTo(now, Open)
	case Closed:
		b.failures++
		if b.failures >= b.threshold {
			b.transitionTo(now, Open)
		}
	}
}

func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

func (b *Breaker) transitionTo(now time.Time, next State) {
	prev := b.state
	b.state = next
	b.changedAt = now
	b.trial = 0
	if next == Closed {
		b.failures = 0
	}
	if b.onChange != nil && prev != next {
		b.onChange(prev, next)
	}
}
