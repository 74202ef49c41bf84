package summarize

import (
	"testing"
	"time"
)

func newTestGate(interval time.Duration) (*Gate, *[]time.Duration, *time.Time) {
	g := NewGate(interval)
	cur := time.Unix(0, 0)
	var slept []time.Duration

	g.now = func() time.Time { return cur }
	g.sleep = func(d time.Duration) {
		slept = append(slept, d)
		cur = cur.Add(d)
	}
	return g, &slept, &cur
}

func TestGateFirstCallImmediate(t *testing.T) {
	g, slept, _ := newTestGate(time.Second)

	g.Wait()
	if len(*slept) != 0 {
		t.Fatalf("first Wait should not sleep, slept %v", *slept)
	}
}

func TestGateEnforcesMinimumSpacing(t *testing.T) {
	g, slept, cur := newTestGate(time.Second)

	g.Wait()
	*cur = cur.Add(300 * time.Millisecond)
	g.Wait()

	if len(*slept) != 1 || (*slept)[0] != 700*time.Millisecond {
		t.Fatalf("second Wait should sleep the remainder, slept %v", *slept)
	}

	// 紧接着再调一次，需要等满整个间隔
	g.Wait()
	if len(*slept) != 2 || (*slept)[1] != time.Second {
		t.Fatalf("back-to-back Wait should sleep the full interval, slept %v", *slept)
	}
}

func TestGateNoSleepAfterLongIdle(t *testing.T) {
	g, slept, cur := newTestGate(time.Second)

	g.Wait()
	*cur = cur.Add(5 * time.Second)
	g.Wait()

	if len(*slept) != 0 {
		t.Fatalf("Wait after a long idle period should not sleep, slept %v", *slept)
	}
}
