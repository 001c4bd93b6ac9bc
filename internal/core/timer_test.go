package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func TestFixedStepFirstCallSteps(t *testing.T) {
	clock := &fakeClock{t: time.Unix(100, 0)}
	fs := newFixedStep(10, clock.now)

	assert.Equal(t, 100*time.Millisecond, fs.Step())
	assert.True(t, fs.ShouldStep())
	assert.False(t, fs.ShouldStep())
}

func TestFixedStepPacesTicks(t *testing.T) {
	clock := &fakeClock{t: time.Unix(100, 0)}
	fs := newFixedStep(10, clock.now)
	fs.ShouldStep()

	clock.advance(60 * time.Millisecond)
	assert.False(t, fs.ShouldStep())
	clock.advance(40 * time.Millisecond)
	assert.True(t, fs.ShouldStep())
	assert.False(t, fs.ShouldStep())
}

func TestFixedStepCapsBacklog(t *testing.T) {
	clock := &fakeClock{t: time.Unix(100, 0)}
	fs := newFixedStep(10, clock.now)
	fs.ShouldStep()

	clock.advance(5 * time.Second)
	steps := 0
	for fs.ShouldStep() {
		steps++
	}
	assert.Equal(t, 2, steps)
}

func TestFixedStepDefaultsTPS(t *testing.T) {
	fs := NewFixedStep(0)
	assert.Equal(t, time.Second/60, fs.Step())
	fs.SetTPS(20)
	assert.Equal(t, 50*time.Millisecond, fs.Step())
}
