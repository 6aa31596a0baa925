package closer_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"

	"github.com/barberia-real/catalog-backend/pkg/closer"
)

func TestCloseLIFO(t *testing.T) {
	c := qt.New(t)

	cl := closer.NewCloser(0)

	var order []int
	for i := 1; i <= 3; i++ {
		cl.Add(func(ctx context.Context) error {
			order = append(order, i)
			return nil
		})
	}

	c.Assert(cl.Close(context.Background()), qt.IsNil)
	c.Assert(order, qt.DeepEquals, []int{3, 2, 1})
}

func TestCloseCollectsErrors(t *testing.T) {
	c := qt.New(t)

	cl := closer.NewCloser(0)
	cl.Add(func(ctx context.Context) error { return nil })
	cl.Add(func(ctx context.Context) error { return errors.New("redis close failed") })

	err := cl.Close(context.Background())
	c.Assert(err, qt.IsNotNil)
	c.Assert(err.Error(), qt.Contains, "redis close failed")
}

func TestCloseOnlyOnce(t *testing.T) {
	c := qt.New(t)

	cl := closer.NewCloser(0)

	calls := 0
	cl.Add(func(ctx context.Context) error {
		calls++
		return nil
	})

	c.Assert(cl.Close(context.Background()), qt.IsNil)
	c.Assert(cl.Close(context.Background()), qt.IsNil)
	c.Assert(calls, qt.Equals, 1)
}

func TestCloseForcedAfterContextCancel(t *testing.T) {
	c := qt.New(t)

	cl := closer.NewCloser(time.Second)

	var interrupted atomic.Int32
	cl.Add(func(ctx context.Context) error {
		select {
		case <-ctx.Done():
			interrupted.Add(1)
			return ctx.Err()
		case <-time.After(10 * time.Second):
			return nil
		}
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := cl.Close(ctx)
	c.Assert(err, qt.IsNotNil)
	c.Assert(err.Error(), qt.Contains, "shutdown interrupted")
	c.Assert(interrupted.Load() >= 1, qt.Equals, true)
}
