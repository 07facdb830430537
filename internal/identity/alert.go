package identity

import (
	"slices"
	"time"
)

// Priority orders alerts.
type Priority int

const (
	PriorityLow Priority = iota
	PriorityNormal
	PriorityHigh
	PriorityCritical
)

// String implements fmt.Stringer.
func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "low"
	case PriorityHigh:
		return "high"
	case PriorityCritical:
		return "critical"
	default:
		return "normal"
	}
}

// Alert is a message raised for a principal during a request.
type Alert struct {
	Message  string
	Priority Priority
	Raised   time.Time
}

// maxAlerts bounds the per principal queue; the oldest alert is dropped first.
const maxAlerts = 100

func (p *principal) Alert(message string, priority Priority) {
	if message == "" {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.alerts = append(p.alerts, Alert{Message: message, Priority: priority, Raised: p.now()})
	if len(p.alerts) > maxAlerts {
		p.alerts = slices.Delete(p.alerts, 0, len(p.alerts)-maxAlerts)
	}
}

func (p *principal) Alerts() []Alert {
	p.mu.Lock()
	defer p.mu.Unlock()

	return slices.Clone(p.alerts)
}
