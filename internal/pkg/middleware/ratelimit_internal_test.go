package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIPLimiters_EvictsIdleClients(t *testing.T) {
	clock := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	l := newIPLimiters(2, time.Minute)
	l.now = func() time.Time { return clock }

	assert.True(t, l.allow("10.0.0.1"))
	assert.True(t, l.allow("10.0.0.1"))
	assert.False(t, l.allow("10.0.0.1"))

	clock = clock.Add(30 * time.Second)
	assert.True(t, l.allow("10.0.0.2"))
	assert.Len(t, l.entries, 2)

	// 10.0.0.1 fica ocioso por uma janela inteira; 10.0.0.2 não.
	clock = clock.Add(31 * time.Second)
	assert.True(t, l.allow("10.0.0.2"))
	assert.Len(t, l.entries, 1)
	assert.Contains(t, l.entries, "10.0.0.2")

	// Um cliente descartado volta com o bucket cheio.
	assert.True(t, l.allow("10.0.0.1"))
	assert.True(t, l.allow("10.0.0.1"))
	assert.False(t, l.allow("10.0.0.1"))
}

func TestIPLimiters_SweepKeepsActiveClients(t *testing.T) {
	clock := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	l := newIPLimiters(5, time.Minute)
	l.now = func() time.Time { return clock }

	for _, ip := range []string{"a", "b", "c"} {
		l.allow(ip)
	}
	clock = clock.Add(10 * time.Second)
	assert.Equal(t, 0, l.sweep(clock))

	clock = clock.Add(time.Minute)
	assert.Equal(t, 3, l.sweep(clock))
	assert.Empty(t, l.entries)
}
