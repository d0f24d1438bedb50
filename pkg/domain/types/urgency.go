package types

import "fmt"

// Urgency is the submitter-declared urgency of a case. The lifecycle never
// interprets it; only the urgency-aware list ordering does.
type Urgency string

const (
	UrgencyLow    Urgency = "LOW"
	UrgencyMedium Urgency = "MEDIUM"
	UrgencyHigh   Urgency = "HIGH"
)

// AllUrgencies returns all valid urgency levels
func AllUrgencies() []Urgency {
	return []Urgency{
		UrgencyLow,
		UrgencyMedium,
		UrgencyHigh,
	}
}

// IsValid checks if the urgency is valid
func (u Urgency) IsValid() bool {
	switch u {
	case UrgencyLow, UrgencyMedium, UrgencyHigh:
		return true
	default:
		return false
	}
}

// Rank returns the sort weight of the urgency. Unknown values rank lowest.
func (u Urgency) Rank() int {
	switch u {
	case UrgencyHigh:
		return 3
	case UrgencyMedium:
		return 2
	case UrgencyLow:
		return 1
	default:
		return 0
	}
}

// String returns the string representation of the urgency
func (u Urgency) String() string {
	return string(u)
}

// ParseUrgency parses a string into an Urgency
func ParseUrgency(s string) (Urgency, error) {
	urgency := Urgency(s)
	if !urgency.IsValid() {
		return "", fmt.Errorf("invalid urgency: %s", s)
	}
	return urgency, nil
}
