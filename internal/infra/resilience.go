// Package infra provides shared infrastructure for the Databricks MCP
// server: a TTL/LRU cache, a circuit breaker, and in-flight request
// deduplication for the upstream API client.
package infra

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// RequestDeduplicator coalesces identical in-flight requests. When
// several tool calls hit the same endpoint with the same parameters at
// once, only one upstream request is made and every waiter receives
// its result.
type RequestDeduplicator struct {
	mu       sync.Mutex
	inflight map[string]*call
}

type call struct {
	done   chan struct{}
	result any
	err    error
}

// NewRequestDeduplicator creates an empty deduplicator.
func NewRequestDeduplicator() *RequestDeduplicator {
	return &RequestDeduplicator{inflight: make(map[string]*call)}
}

// Do runs fn unless a call with the same key is already in flight, in
// which case it waits for that call instead. The bool reports whether
// the result was shared from another caller's request.
func (d *RequestDeduplicator) Do(ctx context.Context, key string, fn func() (any, error)) (any, bool, error) {
	d.mu.Lock()
	if c, ok := d.inflight[key]; ok {
		d.mu.Unlock()
		select {
		case <-c.done:
			return c.result, true, c.err
		case <-ctx.Done():
			return nil, false, ctx.Err()
		}
	}

	c := &call{done: make(chan struct{})}
	d.inflight[key] = c
	d.mu.Unlock()

	c.result, c.err = fn()
	close(c.done)

	d.mu.Lock()
	delete(d.inflight, key)
	d.mu.Unlock()

	return c.result, false, c.err
}

// Inflight returns the number of requests currently in flight.
func (d *RequestDeduplicator) Inflight() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.inflight)
}

// CircuitState is the current state of a CircuitBreaker.
type CircuitState int

const (
	CircuitClosed   CircuitState = iota // normal operation
	CircuitOpen                         // failing fast
	CircuitHalfOpen                     // probing for recovery
)

func (s CircuitState) String() string {
	switch s {
	case CircuitClosed:
		return "closed"
	case CircuitOpen:
		return "open"
	case CircuitHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// CircuitBreaker fails fast when the workspace API is unresponsive.
// After failureThreshold consecutive failures the circuit opens and
// requests are rejected until resetTimeout passes, at which point up
// to halfOpenMax probe requests are allowed through.
type CircuitBreaker struct {
	mu sync.RWMutex

	failureThreshold int
	resetTimeout     time.Duration
	halfOpenMax      int

	state            CircuitState
	consecutiveFails int
	lastFailure      time.Time
	halfOpenCount    int
}

// NewCircuitBreaker returns a breaker with defaults suited to a REST
// API behind a reverse proxy: open after 5 consecutive failures, probe
// again after 30 seconds.
func NewCircuitBreaker() *CircuitBreaker {
	return NewCircuitBreakerWithConfig(5, 30*time.Second, 2)
}

// NewCircuitBreakerWithConfig returns a breaker with explicit tuning.
func NewCircuitBreakerWithConfig(failureThreshold int, resetTimeout time.Duration, halfOpenMax int) *CircuitBreaker {
	return &CircuitBreaker{
		failureThreshold: failureThreshold,
		resetTimeout:     resetTimeout,
		halfOpenMax:      halfOpenMax,
		state:            CircuitClosed,
	}
}

// Allow reports whether a request may proceed, transitioning the
// breaker out of the open state once the reset timeout has elapsed.
func (cb *CircuitBreaker) Allow() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case CircuitClosed:
		return true
	case CircuitOpen:
		if time.Since(cb.lastFailure) > cb.resetTimeout {
			cb.state = CircuitHalfOpen
			cb.halfOpenCount = 1
			return true
		}
		return false
	case CircuitHalfOpen:
		if cb.halfOpenCount < cb.halfOpenMax {
			cb.halfOpenCount++
			return true
		}
		return false
	default:
		return false
	}
}

// RecordSuccess resets the failure count and closes a half-open
// circuit.
func (cb *CircuitBreaker) RecordSuccess() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.consecutiveFails = 0
	if cb.state == CircuitHalfOpen {
		cb.state = CircuitClosed
		cb.halfOpenCount = 0
	}
}

// RecordFailure counts a failure, opening the circuit at the threshold
// or immediately when a half-open probe fails.
func (cb *CircuitBreaker) RecordFailure() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.consecutiveFails++
	cb.lastFailure = time.Now()

	switch cb.state {
	case CircuitClosed:
		if cb.consecutiveFails >= cb.failureThreshold {
			cb.state = CircuitOpen
		}
	case CircuitHalfOpen:
		cb.state = CircuitOpen
		cb.halfOpenCount = 0
	}
}

// State returns the current circuit state.
func (cb *CircuitBreaker) State() CircuitState {
	cb.mu.RLock()
	defer cb.mu.RUnlock()
	return cb.state
}

// ErrCircuitOpen is returned when a request is rejected because the
// circuit is open.
type ErrCircuitOpen struct {
	RetryAt  time.Time
	Failures int
}

func (e *ErrCircuitOpen) Error() string {
	return fmt.Sprintf("circuit breaker is open after %d consecutive failures, retry after %s",
		e.Failures, e.RetryAt.Format(time.RFC3339))
}

// OpenError builds an ErrCircuitOpen reflecting the breaker's current
// state.
func (cb *CircuitBreaker) OpenError() *ErrCircuitOpen {
	cb.mu.RLock()
	defer cb.mu.RUnlock()
	return &ErrCircuitOpen{
		RetryAt:  cb.lastFailure.Add(cb.resetTimeout),
		Failures: cb.consecutiveFails,
	}
}
