package monitor

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/yildizm/phishscan/internal/analysis"
)

func TestCounter(t *testing.T) {
	counter := NewCounter("test_counter")

	if counter.Get() != 0 {
		t.Errorf("Expected initial value 0, got %d", counter.Get())
	}

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			counter.Inc()
		}()
	}
	wg.Wait()

	if counter.Get() != 50 {
		t.Errorf("Expected 50, got %d", counter.Get())
	}
	if counter.Name() != "test_counter" {
		t.Errorf("Expected name 'test_counter', got %s", counter.Name())
	}
}

func TestGauge(t *testing.T) {
	gauge := NewGauge("in_flight")

	gauge.Add(2)
	gauge.Add(-1)
	if gauge.Get() != 1 {
		t.Errorf("Expected 1, got %v", gauge.Get())
	}
}

func TestTimer(t *testing.T) {
	timer := NewTimer("latency")

	if timer.Min() != 0 || timer.Avg() != 0 {
		t.Errorf("Expected zero durations before any record, got min=%v avg=%v", timer.Min(), timer.Avg())
	}

	for _, d := range []time.Duration{30 * time.Millisecond, 10 * time.Millisecond, 20 * time.Millisecond} {
		timer.Record(d)
	}

	if timer.Count() != 3 {
		t.Errorf("Expected count 3, got %d", timer.Count())
	}
	if timer.Min() != 10*time.Millisecond {
		t.Errorf("Expected min 10ms, got %v", timer.Min())
	}
	if timer.Max() != 30*time.Millisecond {
		t.Errorf("Expected max 30ms, got %v", timer.Max())
	}
	if timer.Avg() != 20*time.Millisecond {
		t.Errorf("Expected avg 20ms, got %v", timer.Avg())
	}
}

func TestScanCollector_Record(t *testing.T) {
	c := New()

	c.Record(&analysis.Result{Classification: analysis.ClassificationPhishing}, nil, 40*time.Millisecond)
	c.Record(&analysis.Result{Classification: analysis.ClassificationSafe}, nil, 20*time.Millisecond)
	c.Record(nil, analysis.NewStatusError("flask", 500, ""), time.Second)
	c.Record(nil, analysis.NewInvalidInputError("empty"), 0)
	c.Record(nil, errors.New("boom"), 0)
	c.Record(nil, nil, 0)

	snap := c.Snapshot()
	if snap.Total != 6 {
		t.Errorf("Expected total 6, got %d", snap.Total)
	}
	if snap.Verdicts["PHISHING"] != 1 || snap.Verdicts["SAFE"] != 1 || snap.Verdicts["SUSPICIOUS"] != 0 {
		t.Errorf("Unexpected verdict counts: %v", snap.Verdicts)
	}

	wantFailures := map[string]int64{
		"transport":          1,
		"invalid_input":      1,
		"malformed_response": 1,
		"other":              1,
	}
	for kind, want := range wantFailures {
		if got := snap.Failures[kind]; got != want {
			t.Errorf("Failures[%s] = %d, want %d", kind, got, want)
		}
	}

	if snap.LatencyMax != (40 * time.Millisecond).String() {
		t.Errorf("Expected failed scans to be left out of latency, got max %s", snap.LatencyMax)
	}
}

func TestScanCollector_Track(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time {
		now = now.Add(time.Second)
		return now
	}
	c := NewWithClock(clock)

	result, err := c.Track(func() (*analysis.Result, error) {
		if got := c.Snapshot().InFlight; got != 1 {
			t.Errorf("Expected one scan in flight, got %d", got)
		}
		return &analysis.Result{Classification: analysis.ClassificationSuspicious}, nil
	})
	if err != nil || result == nil {
		t.Fatalf("Track returned %v, %v", result, err)
	}

	snap := c.Snapshot()
	if snap.InFlight != 0 {
		t.Errorf("Expected nothing in flight, got %d", snap.InFlight)
	}
	if snap.Verdicts["SUSPICIOUS"] != 1 {
		t.Errorf("Expected one suspicious verdict, got %v", snap.Verdicts)
	}
	if snap.LatencyAvg == "0s" {
		t.Error("Expected latency to be recorded")
	}
}
