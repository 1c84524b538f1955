package sutureext

import (
	"context"
	"errors"
	"log/slog"

	"github.com/thejerf/suture/v4"
)

func NewSimple(name string) *suture.Supervisor {
	return suture.New(name, suture.Spec{
		EventHook: EventHook(slog.Default()),
	})
}

// EventHook logs supervisor events to logger.
func EventHook(logger *slog.Logger) suture.EventHook {
	return func(ei suture.Event) {
		switch e := ei.(type) {
		case suture.EventStopTimeout:
			logger.Warn("Service did not stop in time", "supervisor", e.SupervisorName, "service", e.ServiceName)
		case suture.EventServicePanic:
			// The panic was logged with its event id by the service; the
			// restarted service starts from a new session.
			logger.Error("Service panicked",
				"supervisor", e.SupervisorName,
				"service", e.ServiceName,
				"panic", e.PanicMsg,
				"restarting", e.Restarting,
				"failures", e.CurrentFailures,
				"threshold", e.FailureThreshold)
			logger.Debug(e.Stacktrace, "service", e.ServiceName)
		case suture.EventServiceTerminate:
			logger.Error("Service failed",
				"supervisor", e.SupervisorName,
				"service", e.ServiceName,
				"error", e.Err,
				"restarting", e.Restarting,
				"failures", e.CurrentFailures,
				"threshold", e.FailureThreshold)
		case suture.EventBackoff:
			logger.Warn("Too many service failures, backing off", "supervisor", e.SupervisorName)
		case suture.EventResume:
			logger.Info("Resuming after backoff", "supervisor", e.SupervisorName)
		default:
			logger.Warn("Unknown supervisor event", "type", int(e.Type()), "event", e.Map())
		}
	}
}

// Service forces the use of the String method
type Service interface {
	String() string
	suture.Service
}

func Add(super *suture.Supervisor, service Service) suture.ServiceToken {
	return super.Add(sanitizeService{Service: service})
}

type sanitizeService struct {
	Service
}

func (s sanitizeService) Serve(ctx context.Context) error {
	return SanitizeError(ctx, s.Service.Serve(ctx))
}

// SanitizeError prevents the error from being interpreted as a context error unless it
// really is a context error because suture kills the service when it sees a context error.
func SanitizeError(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if !(errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)) {
		return err
	}

	var newErrs [3]error

	if errors.Is(err, suture.ErrDoNotRestart) {
		newErrs[0] = suture.ErrDoNotRestart
	}

	if errors.Is(err, suture.ErrTerminateSupervisorTree) {
		newErrs[1] = suture.ErrTerminateSupervisorTree
	}

	newErrs[2] = errors.New(err.Error())

	return errors.Join(newErrs[:]...)
}
