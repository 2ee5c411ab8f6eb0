package daemon

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// ShutdownSignals stop a running sync process.
var ShutdownSignals = []os.Signal{
	syscall.SIGINT,  // Ctrl+C
	syscall.SIGTERM, // Termination request, sent by 'sync stop'
	syscall.SIGHUP,  // Terminal hangup
}

// SignalHandler waits for a shutdown signal.
type SignalHandler struct {
	signals chan os.Signal
	done    chan struct{}
}

// NewSignalHandler creates a new signal handler.
func NewSignalHandler() *SignalHandler {
	return &SignalHandler{
		signals: make(chan os.Signal, 1),
		done:    make(chan struct{}),
	}
}

// Setup registers for ShutdownSignals.
func (h *SignalHandler) Setup() {
	signal.Notify(h.signals, ShutdownSignals...)
}

// Wait blocks until a shutdown signal arrives, ctx is cancelled or Stop is
// called. It returns nil unless a signal arrived.
func (h *SignalHandler) Wait(ctx context.Context) os.Signal {
	select {
	case sig := <-h.signals:
		return sig
	case <-ctx.Done():
		return nil
	case <-h.done:
		return nil
	}
}

// Stop releases the signals and wakes any Wait call.
func (h *SignalHandler) Stop() {
	signal.Stop(h.signals)
	close(h.done)
}

// Cleanup releases the signals.
func (h *SignalHandler) Cleanup() {
	signal.Stop(h.signals)
}
