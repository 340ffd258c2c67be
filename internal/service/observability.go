package service

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"github.com/alexanderramin/habitquest/internal/app"
)

// UseCaseEvent records one engine request: what ran, how long it took and
// how it ended.
type UseCaseEvent struct {
	Name      string
	StartedAt time.Time
	Duration  time.Duration
	Err       error
	// Code is the engine error code of Err, empty on success or for
	// errors that did not come from the engine.
	Code   app.ErrorCode
	Fields map[string]any
}

func (e UseCaseEvent) Success() bool { return e.Err == nil }

// UseCaseObserver receives use-case execution events.
type UseCaseObserver interface {
	ObserveUseCase(ctx context.Context, event UseCaseEvent)
}

// NoopUseCaseObserver ignores all events.
type NoopUseCaseObserver struct{}

func (NoopUseCaseObserver) ObserveUseCase(context.Context, UseCaseEvent) {}

type logUseCaseObserver struct {
	logger *slog.Logger
}

// NewLogUseCaseObserver reports use-case events through logger. The CLI
// passes logger.Slog(), which renders through the charm logger.
func NewLogUseCaseObserver(logger *slog.Logger) UseCaseObserver {
	if logger == nil {
		return NoopUseCaseObserver{}
	}
	return &logUseCaseObserver{logger: logger}
}

// Rejected input and unknown habits are the caller's doing and log as
// warnings. Everything else that fails logs as an error.
func eventLevel(e UseCaseEvent) slog.Level {
	switch {
	case e.Success():
		return slog.LevelInfo
	case e.Code == app.ErrInvalidInput, e.Code == app.ErrNotFound:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}

func (o *logUseCaseObserver) ObserveUseCase(ctx context.Context, event UseCaseEvent) {
	attrs := []slog.Attr{
		slog.String("use_case", event.Name),
		slog.Int64("duration_ms", event.Duration.Milliseconds()),
		slog.Bool("success", event.Success()),
	}

	// Stable field order keeps log lines diffable.
	keys := make([]string, 0, len(event.Fields))
	for k := range event.Fields {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		attrs = append(attrs, slog.Any(k, event.Fields[k]))
	}

	if event.Err != nil {
		if event.Code != "" {
			attrs = append(attrs, slog.String("code", string(event.Code)))
		}
		attrs = append(attrs, slog.String("error", event.Err.Error()))
	}
	o.logger.LogAttrs(ctx, eventLevel(event), "service_use_case", attrs...)
}

func useCaseObserverOrNoop(observers []UseCaseObserver) UseCaseObserver {
	for _, obs := range observers {
		if obs != nil {
			return obs
		}
	}
	return NoopUseCaseObserver{}
}

// finishUseCase emits the event for a use case that began at startedAt.
func finishUseCase(ctx context.Context, obs UseCaseObserver, name string, startedAt time.Time, fields map[string]any, err error) {
	obs.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		StartedAt: startedAt,
		Duration:  time.Since(startedAt),
		Err:       err,
		Code:      app.CodeOf(err),
		Fields:    fields,
	})
}
