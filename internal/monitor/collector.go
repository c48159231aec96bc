package monitor

import (
	"strings"
	"time"

	"github.com/yildizm/phishscan/internal/analysis"
)

// failureOther collects errors outside the analysis taxonomy
const failureOther analysis.ErrorType = "other"

// ScanCollector counts scans by verdict and failure kind and times them
type ScanCollector struct {
	started time.Time
	now     func() time.Time

	inFlight *Gauge
	latency  *Timer
	verdicts map[analysis.Classification]*Counter
	failures map[analysis.ErrorType]*Counter
}

// New creates a collector with every counter at zero
func New() *ScanCollector {
	return NewWithClock(time.Now)
}

// NewWithClock creates a collector using now for uptime
func NewWithClock(now func() time.Time) *ScanCollector {
	c := &ScanCollector{
		started:  now(),
		now:      now,
		inFlight: NewGauge("scans_in_flight"),
		latency:  NewTimer("scan_latency"),
		verdicts: make(map[analysis.Classification]*Counter),
		failures: make(map[analysis.ErrorType]*Counter),
	}

	for _, class := range []analysis.Classification{
		analysis.ClassificationSafe,
		analysis.ClassificationSuspicious,
		analysis.ClassificationPhishing,
	} {
		c.verdicts[class] = NewCounter("scans_" + strings.ToLower(class.String()))
	}
	for _, kind := range []analysis.ErrorType{
		analysis.ErrTypeInvalidInput,
		analysis.ErrTypeTransport,
		analysis.ErrTypeMalformedResponse,
		analysis.ErrTypeConfiguration,
		failureOther,
	} {
		c.failures[kind] = NewCounter("failures_" + string(kind))
	}

	return c
}

// Track runs fn and records its outcome
func (c *ScanCollector) Track(fn func() (*analysis.Result, error)) (*analysis.Result, error) {
	c.inFlight.Add(1)
	start := c.now()

	result, err := fn()

	c.inFlight.Add(-1)
	c.Record(result, err, c.now().Sub(start))
	return result, err
}

// Record records one finished scan
func (c *ScanCollector) Record(result *analysis.Result, err error, took time.Duration) {
	if err == nil && result == nil {
		err = analysis.NewMalformedResponseError("", "", "empty result", nil)
	}
	if err != nil {
		counter, ok := c.failures[analysis.TypeOf(err)]
		if !ok {
			counter = c.failures[failureOther]
		}
		counter.Inc()
		return
	}

	// only answered scans count toward latency
	c.latency.Record(took)
	if counter, ok := c.verdicts[result.Classification]; ok {
		counter.Inc()
	}
}

// Snapshot is a point-in-time view of the collector
type Snapshot struct {
	Uptime     string           `json:"uptime"`
	Total      int64            `json:"total"`
	InFlight   int64            `json:"in_flight"`
	Verdicts   map[string]int64 `json:"verdicts"`
	Failures   map[string]int64 `json:"failures"`
	LatencyMin string           `json:"latency_min"`
	LatencyAvg string           `json:"latency_avg"`
	LatencyMax string           `json:"latency_max"`
}

// Snapshot returns the current counters
func (c *ScanCollector) Snapshot() Snapshot {
	snap := Snapshot{
		Uptime:     c.now().Sub(c.started).Round(time.Second).String(),
		InFlight:   int64(c.inFlight.Get()),
		Verdicts:   make(map[string]int64, len(c.verdicts)),
		Failures:   make(map[string]int64, len(c.failures)),
		LatencyMin: c.latency.Min().String(),
		LatencyAvg: c.latency.Avg().String(),
		LatencyMax: c.latency.Max().String(),
	}

	for class, counter := range c.verdicts {
		snap.Verdicts[class.String()] = counter.Get()
		snap.Total += counter.Get()
	}
	for kind, counter := range c.failures {
		snap.Failures[string(kind)] = counter.Get()
		snap.Total += counter.Get()
	}

	return snap
}
