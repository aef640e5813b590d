package circuit_breaker

import (
	"errors"
	"sync"
	"time"
)

type State uint8

const (
	Closed   State = 1
	Open     State = 2
	HalfOpen State = 3
)

func (s State) String() string {
	switch s {
	case Closed:
		return "closed"
	case Open:
		return "open"
	case HalfOpen:
		return "half-open"
	}
	return "unknown"
}

var ErrOpen = errors.New("circuit breaker is open")

type CircuitBreaker interface {
	Call(fn func() error) error
	State() State
	Reset()
}

type circuitBreaker struct {
	mu    sync.Mutex
	state State
	// window of the latest call outcomes, true means failed
	window []bool
	pos    int
	// failure ratio in the window that opens the breaker
	threshold float64
	// how long an open breaker rejects calls before probing
	cooldown time.Duration
	openedAt time.Time
	// consecutive successes in half-open needed to close again
	recovery  int
	successes int

	now func() time.Time
}

func New(windowSize int, cooldown time.Duration, threshold float64, recovery int) CircuitBreaker {
	if windowSize < 1 {
		windowSize = 1
	}
	return &circuitBreaker{
		state:     Closed,
		window:    make([]bool, windowSize),
		threshold: threshold,
		cooldown:  cooldown,
		recovery:  recovery,
		now:       time.Now,
	}
}

func (cb *circuitBreaker) Call(fn func() error) error {
	cb.mu.Lock()
	if cb.state == Open {
		if cb.now().Sub(cb.openedAt) <= cb.cooldown {
			cb.mu.Unlock()
			return ErrOpen
		}
		cb.state = HalfOpen
		cb.successes = 0
	}
	cb.mu.Unlock()

	err := fn()

	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.window[cb.pos] = err != nil
	cb.pos = (cb.pos + 1) % len(cb.window)

	if cb.state == HalfOpen {
		if err != nil {
			cb.trip()
			return err
		}
		cb.successes++
		if cb.successes >= cb.recovery {
			cb.reset()
		}
		return nil
	}

	fails := 0
	for _, failed := range cb.window {
		if failed {
			fails++
		}
	}
	if float64(fails)/float64(len(cb.window)) >= cb.threshold {
		cb.trip()
	}
	return err
}

func (cb *circuitBreaker) State() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

func (cb *circuitBreaker) Reset() {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.reset()
}

func (cb *circuitBreaker) trip() {
	cb.state = Open
	cb.successes = 0
	cb.openedAt = cb.now()
}

func (cb *circuitBreaker) reset() {
	for i := range cb.window {
		cb.window[i] = false
	}
	cb.successes = 0
	cb.pos = 0
	cb.state = Closed
}
