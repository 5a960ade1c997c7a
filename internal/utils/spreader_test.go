package utils

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/bots-empire/referron-bot/internal/model"
)

func TestServeHandlerRunsHandler(t *testing.T) {
	s := NewSpreader(nil)

	done := make(chan struct{})
	s.ServeHandler(func(situation *model.Situation) error {
		close(done)
		return nil
	}, &model.Situation{}, func(err error) {
		t.Errorf("unexpected error: %v", err)
	})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("handler never ran")
	}
}

func TestServeHandlerReportsError(t *testing.T) {
	s := NewSpreader(nil)

	failed := errors.New("handler failed")
	got := make(chan error, 1)

	s.ServeHandler(func(situation *model.Situation) error {
		return failed
	}, &model.Situation{}, func(err error) {
		got <- err
	})

	select {
	case err := <-got:
		require.ErrorIs(t, err, failed)
	case <-time.After(time.Second):
		t.Fatal("error handler never ran")
	}
}

func TestServeHandlerRecoversPanic(t *testing.T) {
	s := NewSpreader(nil)

	got := make(chan error, 1)
	s.ServeHandler(func(situation *model.Situation) error {
		panic("boom")
	}, &model.Situation{}, func(err error) {
		got <- err
	})

	select {
	case err := <-got:
		require.Contains(t, err.Error(), "panic in handler")
		require.Contains(t, err.Error(), "boom")
	case <-time.After(time.Second):
		t.Fatal("panic never reached the error handler")
	}
}

func TestSpreaderDropsWhenSaturated(t *testing.T) {
	lost := make(chan struct{}, 1)
	s := &Spreader{
		slots:   make(chan struct{}, 1),
		timeout: 20 * time.Millisecond,
		onLost:  func() { lost <- struct{}{} },
	}

	gate := make(chan struct{})
	blocker := func(situation *model.Situation) error {
		<-gate
		return nil
	}

	s.ServeHandler(blocker, &model.Situation{}, func(err error) {})
	// give the first handler time to claim the only slot
	time.Sleep(10 * time.Millisecond)

	ran := make(chan struct{}, 1)
	s.ServeHandler(func(situation *model.Situation) error {
		ran <- struct{}{}
		return nil
	}, &model.Situation{}, func(err error) {})

	select {
	case <-lost:
	case <-ran:
		t.Fatal("second handler ran although the slot was taken")
	case <-time.After(time.Second):
		t.Fatal("saturated spreader neither ran nor dropped the handler")
	}

	close(gate)
}
