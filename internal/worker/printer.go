package worker

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/mpetrik/skydeck/internal/domain"
)

// PrinterQuerier fetches one telemetry snapshot. Implemented by
// moonraker.Client; tests substitute a fake.
type PrinterQuerier interface {
	Query(ctx context.Context) (domain.PrinterRecord, error)
}

// PrinterWorker polls printer telemetry on a fixed interval. The
// backend is plain HTTP, so "connected" here means the last query
// succeeded.
type PrinterWorker struct {
	querier  PrinterQuerier
	interval time.Duration
	logger   *slog.Logger

	state atomic.Int32

	warnedNoBackend bool

	updates chan domain.PrinterRecord
}

// NewPrinterWorker creates a printer worker. A nil querier puts the
// worker into permanent fallback mode.
func NewPrinterWorker(querier PrinterQuerier, interval time.Duration, logger *slog.Logger) *PrinterWorker {
	if logger == nil {
		logger = slog.Default()
	}
	return &PrinterWorker{
		querier:  querier,
		interval: interval,
		logger:   logger,
		updates:  make(chan domain.PrinterRecord, 1),
	}
}

// Updates is the worker's record stream. Only the latest record is
// retained for the consumer.
func (w *PrinterWorker) Updates() <-chan domain.PrinterRecord { return w.updates }

// State reports the current connection state.
func (w *PrinterWorker) State() domain.ConnState {
	return domain.ConnState(w.state.Load())
}

// Run drives the poll loop until ctx is cancelled.
func (w *PrinterWorker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	defer w.state.Store(int32(domain.Disconnected))

	w.tick(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.tick(ctx)
		}
	}
}

func (w *PrinterWorker) tick(ctx context.Context) {
	if w.querier == nil {
		if !w.warnedNoBackend {
			w.logger.Warn("printer backend not configured, publishing mock data")
			w.warnedNoBackend = true
		}
		publish(w.updates, domain.FallbackPrinter())
		return
	}

	if w.State() != domain.Connected {
		w.state.Store(int32(domain.Connecting))
	}

	rec, err := w.querier.Query(ctx)
	if err != nil {
		w.logger.Debug("printer poll failed", "error", err)
		w.state.Store(int32(domain.Disconnected))
		publish(w.updates, domain.FallbackPrinter())
		return
	}

	w.state.Store(int32(domain.Connected))
	publish(w.updates, rec)
}
