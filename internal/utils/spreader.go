package utils

import (
	"runtime/debug"
	"time"

	"github.com/pkg/errors"

	"github.com/bots-empire/referron-bot/internal/model"
)

const (
	maxParallelHandlers = 512
	slotWaitTimeout     = 10 * time.Second
)

// Spreader caps the number of concurrently running handlers. An update that
// cannot grab a slot within the wait timeout is dropped and counted as lost.
type Spreader struct {
	slots   chan struct{}
	timeout time.Duration

	onLost func()
}

func NewSpreader(onLost func()) *Spreader {
	return &Spreader{
		slots:   make(chan struct{}, maxParallelHandlers),
		timeout: slotWaitTimeout,
		onLost:  onLost,
	}
}

func (s *Spreader) ServeHandler(handler model.Handler, situation *model.Situation, errorHandler func(err error)) {
	go func() {
		select {
		case s.slots <- struct{}{}:
		case <-time.After(s.timeout):
			if s.onLost != nil {
				s.onLost()
			}
			return
		}
		defer func() { <-s.slots }()
		defer func() {
			if msg := recover(); msg != nil {
				errorHandler(errors.Errorf("panic in handler: %v\n%s", msg, debug.Stack()))
			}
		}()

		if err := handler(situation); err != nil {
			errorHandler(err)
		}
	}()
}
