package model

import (
	"fmt"
	"strings"
)

// Objective selects which field ranks candidate scenarios.
// Keep the string values stable; they are part of the API.
type Objective int

const (
	// ObjectiveSerenity maximizes the risk-adjusted ratio.
	ObjectiveSerenity Objective = iota
	// ObjectivePerformance maximizes raw gain.
	ObjectivePerformance
)

// Objectives lists every supported objective in display order.
var Objectives = []Objective{ObjectiveSerenity, ObjectivePerformance}

func (o Objective) String() string {
	switch o {
	case ObjectiveSerenity:
		return "serenity"
	case ObjectivePerformance:
		return "performance"
	default:
		return fmt.Sprintf("objective(%d)", int(o))
	}
}

// Valid reports whether o is one of Objectives.
func (o Objective) Valid() bool {
	return o == ObjectiveSerenity || o == ObjectivePerformance
}

// Label is the French display name.
func (o Objective) Label() string {
	switch o {
	case ObjectiveSerenity:
		return "Sérénité"
	case ObjectivePerformance:
		return "Performance"
	}
	return o.String()
}

// ParseObjective accepts the English names and the French labels used by the dashboard.
func ParseObjective(s string) (Objective, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "serenity", "serenite", "sérénité":
		return ObjectiveSerenity, nil
	case "performance":
		return ObjectivePerformance, nil
	default:
		return 0, fmt.Errorf("unknown objective %q", s)
	}
}

func (o Objective) MarshalText() ([]byte, error) {
	if o.Valid() {
		return []byte(o.String()), nil
	}
	return nil, fmt.Errorf("invalid objective %d", int(o))
}

func (o *Objective) UnmarshalText(b []byte) error {
	v, err := ParseObjective(string(b))
	if err != nil {
		return err
	}
	*o = v
	return nil
}
