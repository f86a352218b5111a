package orders

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/multierr"
)

// Compensation action names, also used as metric labels.
const (
	actionRestoreStock = "restore_stock"
	actionDeleteOrder  = "delete_order"
)

type compensation struct {
	action string
	target string
	run    func(ctx context.Context) error
}

// compensationStack holds the undo actions of completed steps, newest last.
type compensationStack struct {
	items []compensation
}

func (s *compensationStack) push(action, target string, run func(ctx context.Context) error) {
	s.items = append(s.items, compensation{action: action, target: target, run: run})
}

func (s *compensationStack) len() int {
	return len(s.items)
}

// unwind pops every compensation in reverse push order. Each one runs on a
// context detached from the caller's cancellation and bounded by timeout, and a
// failure never stops the ones below it. observe sees every outcome.
func (s *compensationStack) unwind(ctx context.Context, timeout time.Duration, observe func(c compensation, err error)) error {
	detached := context.WithoutCancel(ctx)
	var errs error
	for len(s.items) > 0 {
		last := len(s.items) - 1
		c := s.items[last]
		s.items = s.items[:last]

		err := runCompensation(detached, timeout, c)
		if observe != nil {
			observe(c, err)
		}
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s %s: %w", c.action, c.target, err))
		}
	}
	return errs
}

func runCompensation(ctx context.Context, timeout time.Duration, c compensation) (err error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("compensation panicked: %v", r)
		}
	}()
	return c.run(ctx)
}
