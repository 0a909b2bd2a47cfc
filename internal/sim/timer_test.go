package sim

import (
	"testing"
	"time"
)

func TestTimer_Average(t *testing.T) {
	timer := NewTimer(3)

	timer.Record(10 * time.Millisecond)
	timer.Record(20 * time.Millisecond)
	if _, ok := timer.Average(); ok {
		t.Fatal("Average reported before the window filled")
	}

	timer.Record(30 * time.Millisecond)
	avg, ok := timer.Average()
	if !ok {
		t.Fatal("Average not ready after a full window")
	}
	if avg != 20*time.Millisecond {
		t.Errorf("avg = %v, want 20ms", avg)
	}

	if _, ok := timer.Average(); ok {
		t.Error("Average did not consume the window")
	}
}

func TestTimer_Start(t *testing.T) {
	timer := NewTimer(1)
	stop := timer.Start()
	time.Sleep(time.Millisecond)
	stop()

	avg, ok := timer.Average()
	if !ok || avg < time.Millisecond {
		t.Errorf("Average = %v, %v; want at least 1ms", avg, ok)
	}
}
