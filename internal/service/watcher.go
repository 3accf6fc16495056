package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Roma7-7-7/homework-notifier/internal/providers"
)

//go:generate mockgen -package mocks -destination mocks/watcher.go . StatusProvider,Messenger

const failurePrefix = "Сбой в работе программы: "

type (
	Clock interface {
		Now() time.Time
	}

	StatusProvider interface {
		HomeworkStatuses(ctx context.Context, fromDate int64) (any, error)
	}

	Messenger interface {
		Notify(ctx context.Context, text string)
	}

	// Watcher polls homework statuses and reports changes and failures.
	// It is not safe for concurrent use.
	Watcher struct {
		provider  StatusProvider
		messenger Messenger
		clock     Clock

		retryPeriod    time.Duration
		requestTimeout time.Duration

		state watchState
		log   *slog.Logger
	}

	// watchState holds the last status and the last failure that were reported.
	watchState struct {
		previousStatus string
		lastError      string
	}
)

func NewWatcher(
	provider StatusProvider,
	messenger Messenger,
	clock Clock,
	retryPeriod time.Duration,
	requestTimeout time.Duration,
	log *slog.Logger,
) *Watcher {
	return &Watcher{
		provider:  provider,
		messenger: messenger,
		clock:     clock,

		retryPeriod:    retryPeriod,
		requestTimeout: requestTimeout,

		log: log.With("component", "service").With("service", "watcher"),
	}
}

// Run checks statuses immediately and then every retry period until ctx is done.
func (w *Watcher) Run(ctx context.Context) {
	defer func() {
		w.log.InfoContext(ctx, "Stopped homework statuses watcher")
	}()

	w.log.InfoContext(ctx, "Starting homework statuses watcher", "retryPeriod", w.retryPeriod)
	for {
		w.Check(ctx)

		select {
		case <-ctx.Done():
			return
		case <-time.After(w.retryPeriod):
		}
	}
}

// Check runs a single poll iteration. Failures are reported, never returned.
func (w *Watcher) Check(ctx context.Context) {
	log := w.log.With("pollID", uuid.NewString())

	if err := w.check(ctx, log); err != nil {
		w.handleError(ctx, err, log)
	}
}

func (w *Watcher) check(ctx context.Context, log *slog.Logger) error {
	timestamp := w.clock.Now().Unix()
	log.DebugContext(ctx, "Checking homework statuses", "fromDate", timestamp)

	resp, err := w.homeworkStatuses(ctx, timestamp)
	if err != nil {
		return err
	}

	result, err := CheckResponse(resp)
	if err != nil {
		return fmt.Errorf("check response: %w", err)
	}

	if result.Empty {
		// sent on every iteration while nothing changes
		w.messenger.Notify(ctx, result.Message())
		return nil
	}

	msg, err := ParseStatus(result.Homework)
	if err != nil {
		return fmt.Errorf("parse status: %w", err)
	}

	if msg == w.state.previousStatus {
		log.DebugContext(ctx, "Homework status has not changed")
		return nil
	}

	log.InfoContext(ctx, "Homework status changed", "status", result.Homework[keyStatus])
	w.messenger.Notify(ctx, msg)
	w.state.previousStatus = msg

	return nil
}

func (w *Watcher) homeworkStatuses(ctx context.Context, timestamp int64) (any, error) {
	ctx, cancel := context.WithTimeout(ctx, w.requestTimeout)
	defer cancel()

	resp, err := w.provider.HomeworkStatuses(ctx, timestamp)
	if err != nil {
		return nil, fmt.Errorf("get homework statuses: %w", err)
	}

	return resp, nil
}

func (w *Watcher) handleError(ctx context.Context, err error, log *slog.Logger) {
	if ctx.Err() != nil && errors.Is(err, context.Canceled) {
		return
	}

	kind := errorKind(err)
	msg := failurePrefix + err.Error()
	if msg == w.state.lastError {
		log.DebugContext(ctx, "Same failure as before, not reporting", "kind", kind)
		return
	}

	switch kind {
	case kindTransport, kindHTTPStatus:
		log.ErrorContext(ctx, "Homework statuses request failed", "kind", kind, "error", err)
	case kindSchema:
		log.ErrorContext(ctx, "Unexpected homework statuses response", "kind", kind, "error", err)
	default:
		log.ErrorContext(ctx, "Failed to check homework statuses", "kind", kind, "error", err)
	}

	w.messenger.Notify(ctx, msg)
	w.state.lastError = msg
}

const (
	kindTransport  = "transport"
	kindHTTPStatus = "http_status"
	kindSchema     = "schema"
	kindUnknown    = "unknown"
)

func errorKind(err error) string {
	switch {
	case errors.Is(err, providers.ErrTransport), errors.Is(err, context.DeadlineExceeded):
		return kindTransport
	case errors.Is(err, providers.ErrHTTPStatus):
		return kindHTTPStatus
	case errors.Is(err, providers.ErrDecode),
		errors.Is(err, ErrInvalidType),
		errors.Is(err, ErrMissingHomeworks),
		errors.Is(err, ErrKey):
		return kindSchema
	default:
		return kindUnknown
	}
}
