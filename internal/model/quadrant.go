package model

import (
	"fmt"
	"strings"
)

type Quadrant string

const (
	QuadrantDoFirst   Quadrant = "Do First"
	QuadrantSchedule  Quadrant = "Schedule"
	QuadrantDelegate  Quadrant = "Delegate"
	QuadrantEliminate Quadrant = "Eliminate"
)

// Classify maps scores to an Eisenhower quadrant. A score of exactly zero
// counts as not important / not urgent.
func Classify(importance, urgency int) Quadrant {
	important := importance > 0
	urgent := urgency > 0
	switch {
	case important && urgent:
		return QuadrantDoFirst
	case important:
		return QuadrantSchedule
	case urgent:
		return QuadrantDelegate
	default:
		return QuadrantEliminate
	}
}

// Quadrants returns the labels in matrix reading order.
func Quadrants() []Quadrant {
	return []Quadrant{QuadrantDoFirst, QuadrantSchedule, QuadrantDelegate, QuadrantEliminate}
}

func ParseQuadrant(s string) (Quadrant, error) {
	norm := strings.ToLower(strings.Join(strings.Fields(s), " "))
	norm = strings.ReplaceAll(norm, "-", " ")
	for _, q := range Quadrants() {
		if strings.ToLower(string(q)) == norm {
			return q, nil
		}
	}
	return "", fmt.Errorf("unknown quadrant: %q", s)
}
