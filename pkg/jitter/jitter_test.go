package jitter_test

import (
	"math/rand"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"

	"github.com/barberia-real/catalog-backend/pkg/jitter"
)

func TestDuration(t *testing.T) {
	c := qt.New(t)

	base := time.Second
	for i := 0; i < 100; i++ {
		d := jitter.Duration(base, 0.5)
		c.Assert(d >= base, qt.Equals, true)
		c.Assert(d <= base+base/2, qt.Equals, true)
	}
}

func TestDurationZeroJitter(t *testing.T) {
	c := qt.New(t)

	c.Assert(jitter.Duration(time.Second, 0), qt.Equals, time.Second)
}

func TestDurationWithSeed(t *testing.T) {
	c := qt.New(t)

	first := jitter.DurationWithSeed(time.Second, 0.5, rand.New(rand.NewSource(42)))
	second := jitter.DurationWithSeed(time.Second, 0.5, rand.New(rand.NewSource(42)))
	c.Assert(first, qt.Equals, second)
}

func TestExponentialBackoff(t *testing.T) {
	c := qt.New(t)

	base := 100 * time.Millisecond
	max := time.Second

	// Без джиттера рост строго экспоненциальный до потолка
	c.Assert(jitter.ExponentialBackoff(base, max, 0, 0), qt.Equals, 100*time.Millisecond)
	c.Assert(jitter.ExponentialBackoff(base, max, 1, 0), qt.Equals, 200*time.Millisecond)
	c.Assert(jitter.ExponentialBackoff(base, max, 2, 0), qt.Equals, 400*time.Millisecond)
	c.Assert(jitter.ExponentialBackoff(base, max, 10, 0), qt.Equals, time.Second)
}
