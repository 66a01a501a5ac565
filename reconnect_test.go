package kvgate

import (
	"testing"
	"time"
)

func TestNextBackoffDoublesAndCaps(t *testing.T) {
	limit := 30 * time.Second

	cur := 500 * time.Millisecond
	want := []time.Duration{
		1 * time.Second,
		2 * time.Second,
		4 * time.Second,
		8 * time.Second,
		16 * time.Second,
		30 * time.Second, // capped (would be 32s)
		30 * time.Second, // stays at cap
	}
	for i, w := range want {
		cur = nextBackoff(cur, limit)
		if cur != w {
			t.Fatalf("step %d: got %v, want %v", i, cur, w)
		}
	}
}

func TestAddJitterStaysWithinBounds(t *testing.T) {
	base := 1 * time.Second
	lo := time.Duration(float64(base) * 0.8)
	hi := time.Duration(float64(base) * 1.2)

	for i := 0; i < 200; i++ {
		got := addJitter(base)
		if got < lo || got > hi {
			t.Fatalf("jittered %v outside [%v, %v]", got, lo, hi)
		}
	}
}

func TestAddJitterFloorsTinyDelays(t *testing.T) {
	for i := 0; i < 50; i++ {
		if got := addJitter(1 * time.Microsecond); got < time.Millisecond {
			t.Fatalf("jitter floor violated: %v", got)
		}
	}
}
