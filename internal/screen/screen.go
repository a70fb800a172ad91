// Package screen holds per-screen state for the booking front-ends. Each
// screen owns the only mutable copy of what it shows; everything it renders
// comes out of the pure transforms in package app.
package screen

import (
	"context"
	"errors"
)

// GenericAlert is the one message shown for every failed load.
const GenericAlert = "Something went wrong. Please try again."

// ErrSuperseded is returned by a fetch whose result was dropped because a
// newer fetch on the same screen started after it.
var ErrSuperseded = errors.New("screen: fetch superseded")

// ErrClosed is returned by fetches started after the screen was closed.
var ErrClosed = errors.New("screen: closed")

// fetchGuard tags each fetch with a generation and cancels the one it replaces.
// Callers hold the screen mutex around every method.
type fetchGuard struct {
	gen    uint64
	cancel context.CancelFunc
}

func (g *fetchGuard) begin(parent context.Context) (context.Context, uint64) {
	if g.cancel != nil {
		g.cancel()
	}
	ctx, cancel := context.WithCancel(parent)
	g.gen++
	g.cancel = cancel
	return ctx, g.gen
}

func (g *fetchGuard) current(gen uint64) bool { return gen == g.gen }

// finish releases the context of the current fetch.
func (g *fetchGuard) finish() {
	if g.cancel != nil {
		g.cancel()
		g.cancel = nil
	}
}

// stop cancels any in-flight fetch and invalidates its result.
func (g *fetchGuard) stop() {
	g.finish()
	g.gen++
}

func alertFor(err error) string {
	if err != nil {
		return GenericAlert
	}
	return ""
}
