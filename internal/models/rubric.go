package models

import (
	"github.com/google/uuid"
)

// Criterion is one scoring dimension of a rubric.
type Criterion struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	MaxScore float64 `json:"max_score"`
	Weight   float64 `json:"weight"`
}

// Rubric is the judging rubric of an event, with criteria in display order.
// Criterion weights are expected to sum to 100; this is not enforced by the
// store (see Rubric.WeightSum).
type Rubric struct {
	ID       uuid.UUID   `json:"id"`
	EventID  uuid.UUID   `json:"event_id"`
	Criteria []Criterion `json:"criteria"`
}

// WeightSum returns the sum of criterion weights.
func (r *Rubric) WeightSum() float64 {
	var sum float64
	for _, c := range r.Criteria {
		sum += c.Weight
	}
	return sum
}
