// Package alerts evaluates deal metrics against thresholds and emits
// severity-tagged alerts and market-relative insights.
package alerts

import "sort"

// Type is the alert severity class.
type Type string

const (
	TypeError   Type = "error"
	TypeWarning Type = "warning"
	TypeInfo    Type = "info"
	TypeSuccess Type = "success"
)

// Priority orders alerts for display. Higher sorts first.
type Priority int

const (
	PriorityLow    Priority = 1
	PriorityMedium Priority = 2
	PriorityHigh   Priority = 3
)

// Alert is one threshold finding. Stateless and side-effect-free: the
// generators are pure functions over the metrics they are handed.
type Alert struct {
	Type       Type     `json:"type"`
	Priority   Priority `json:"priority"`
	Category   string   `json:"category"`
	Message    string   `json:"message"`
	Suggestion string   `json:"suggestion,omitempty"`
}

// severity ranks alert types for the secondary sort key.
func severity(t Type) int {
	switch t {
	case TypeError:
		return 4
	case TypeWarning:
		return 3
	case TypeInfo:
		return 2
	case TypeSuccess:
		return 1
	default:
		return 0
	}
}

// Sort orders alerts by priority descending, then type severity descending.
// Stable so that same-rank alerts keep generation order.
func Sort(alerts []Alert) {
	sort.SliceStable(alerts, func(i, j int) bool {
		if alerts[i].Priority != alerts[j].Priority {
			return alerts[i].Priority > alerts[j].Priority
		}
		return severity(alerts[i].Type) > severity(alerts[j].Type)
	})
}

// grade applies the shared escalation pattern for minimum thresholds:
// below half the minimum is an error, below the minimum a warning, and
// comfortably above the "great" mark a success. Values in between emit
// nothing.
func grade(value, minimum, great float64) (Type, bool) {
	switch {
	case value < minimum/2:
		return TypeError, true
	case value < minimum:
		return TypeWarning, true
	case value > great:
		return TypeSuccess, true
	default:
		return "", false
	}
}

// priorityFor maps a severity class to its default display priority.
func priorityFor(t Type) Priority {
	switch t {
	case TypeError:
		return PriorityHigh
	case TypeWarning:
		return PriorityMedium
	default:
		return PriorityLow
	}
}
