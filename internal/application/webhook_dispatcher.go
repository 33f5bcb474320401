package application

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/cvbuilder/api/internal/domain/event"
)

// Strategy applies the side effects of one identity-event type. Each strategy
// is bound to exactly one type via Type().
type Strategy interface {
	Type() event.Type
	Handle(ctx context.Context, evt *event.Event) error
}

// Dispatcher routes a verified event to the strategy registered for its type.
// The mapping is built once at construction and never mutated afterwards.
type Dispatcher struct {
	strategies map[event.Type]Strategy
	logger     *logrus.Logger
}

func NewDispatcher(logger *logrus.Logger, strategies ...Strategy) (*Dispatcher, error) {
	m := make(map[event.Type]Strategy, len(strategies))
	for _, s := range strategies {
		if _, dup := m[s.Type()]; dup {
			return nil, fmt.Errorf("duplicate strategy registration for %q", s.Type())
		}
		m[s.Type()] = s
	}
	return &Dispatcher{strategies: m, logger: logger}, nil
}

// Dispatch invokes the strategy for evt and waits for it to finish. Handler
// failures propagate to the caller; there is no retry here, redelivery is the
// provider's job. Unregistered types are logged and accepted so that new
// provider event types do not break deliveries.
func (d *Dispatcher) Dispatch(ctx context.Context, evt *event.Event) error {
	if evt == nil || evt.Type == "" {
		return ErrInvalidEvent
	}

	s, ok := d.strategies[evt.Type]
	if !ok {
		d.logger.WithField("type", string(evt.Type)).Warn("no strategy registered for event type")
		return nil
	}
	return s.Handle(ctx, evt)
}
