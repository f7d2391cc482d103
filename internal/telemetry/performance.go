package telemetry

import (
	"encoding/json"
	"strings"
	"time"
)

const (
	DefaultMaxMeasurements = 1000
	DefaultSlowThreshold   = time.Second
)

// Measurement is one completed timing. It serializes its duration in
// milliseconds, like Stats.
type Measurement struct {
	Name     string         `json:"name"`
	Start    time.Time      `json:"startTime"`
	Duration time.Duration  `json:"-"`
	Meta     map[string]any `json:"metadata,omitempty"`
}

func (m Measurement) MarshalJSON() ([]byte, error) {
	type plain Measurement
	return json.Marshal(struct {
		plain
		DurationMs float64 `json:"durationMs"`
	}{plain(m), millis(m.Duration)})
}

// Stats summarizes measurements. Durations are in milliseconds for the debug panel.
type Stats struct {
	Total       int           `json:"total"`
	AvgDuration float64       `json:"avgDuration"`
	MinDuration float64       `json:"minDuration"`
	MaxDuration float64       `json:"maxDuration"`
	Entries     []Measurement `json:"entries"`
}

// StatsFilter narrows Stats. Name matches by substring.
type StatsFilter struct {
	Name        string
	MinDuration time.Duration
}

// Performance keeps recent timings and reports slow operations.
type Performance struct {
	buf    *ring[Measurement]
	slow   time.Duration
	onSlow func(Measurement)
	now    func() time.Time
}

func NewPerformance(max int, slow time.Duration, onSlow func(Measurement)) *Performance {
	if max <= 0 {
		max = DefaultMaxMeasurements
	}
	if slow <= 0 {
		slow = DefaultSlowThreshold
	}
	return &Performance{buf: newRing[Measurement](max), slow: slow, onSlow: onSlow, now: time.Now}
}

// Record stores m and reports whether it exceeded the slow threshold.
func (p *Performance) Record(m Measurement) bool {
	p.buf.push(m)
	if m.Duration > p.slow {
		if p.onSlow != nil {
			p.onSlow(m)
		}
		return true
	}
	return false
}

// Track starts timing name; calling the returned func stops and records it.
func (p *Performance) Track(name string, meta map[string]any) func() time.Duration {
	start := p.now()
	return func() time.Duration {
		d := p.now().Sub(start)
		p.Record(Measurement{Name: name, Start: start, Duration: d, Meta: meta})
		return d
	}
}

func (p *Performance) Stats(f StatsFilter) Stats {
	entries := make([]Measurement, 0)
	for _, m := range p.buf.newestFirst() {
		if f.Name != "" && !strings.Contains(m.Name, f.Name) {
			continue
		}
		if f.MinDuration > 0 && m.Duration < f.MinDuration {
			continue
		}
		entries = append(entries, m)
	}
	if len(entries) == 0 {
		return Stats{Entries: entries}
	}

	var sum, min, max time.Duration
	min = entries[0].Duration
	for _, m := range entries {
		sum += m.Duration
		if m.Duration < min {
			min = m.Duration
		}
		if m.Duration > max {
			max = m.Duration
		}
	}
	return Stats{
		Total:       len(entries),
		AvgDuration: millis(sum) / float64(len(entries)),
		MinDuration: millis(min),
		MaxDuration: millis(max),
		Entries:     entries,
	}
}

func (p *Performance) Clear() { p.buf.reset() }

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
