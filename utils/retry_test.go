package utils

import (
	"errors"
	"testing"
	"time"
)

func TestRetrySucceedsAfterFailures(t *testing.T) {
	var slept []time.Duration
	r := &RetryConfig{
		MaxAttempts: 4,
		BaseDelay:   10 * time.Millisecond,
		Logger:      NewDiscardLogger(),
		sleep:       func(d time.Duration) { slept = append(slept, d) },
	}

	calls := 0
	err := r.Do("ping", func() error {
		calls++
		if calls < 3 {
			return errors.New("not yet")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 3 {
		t.Errorf("calls: got %d, want 3", calls)
	}
	want := []time.Duration{10 * time.Millisecond, 20 * time.Millisecond}
	if len(slept) != len(want) {
		t.Fatalf("sleeps: got %v, want %v", slept, want)
	}
	for i := range want {
		if slept[i] != want[i] {
			t.Errorf("sleep %d: got %v, want %v", i, slept[i], want[i])
		}
	}
}

func TestRetryGivesUp(t *testing.T) {
	boom := errors.New("down")
	r := &RetryConfig{MaxAttempts: 2, sleep: func(time.Duration) {}}

	err := r.Do("ping", func() error { return boom })
	if !errors.Is(err, boom) {
		t.Errorf("got %v; want wrapped %v", err, boom)
	}
}
