package model

import (
	"fmt"
	"time"
)

// Phase is the coarse engagement bucket used to sequence offerings into
// an implementation roadmap. An unset phase defaults to PhaseB when the
// roadmap is composed.
type Phase string

const (
	PhaseA Phase = "A"
	PhaseB Phase = "B"
	PhaseC Phase = "C"
)

// PhaseOrder is the canonical presentation order
var PhaseOrder = []Phase{PhaseA, PhaseB, PhaseC}

// Offering is one service in the catalog ("use case")
type Offering struct {
	Key            string    `json:"key" bson:"key"`
	Title          string    `json:"title" bson:"title"`
	Category       string    `json:"category" bson:"category"`
	SubCategory    string    `json:"subCategory" bson:"subCategory"`
	Phase          Phase     `json:"phase,omitempty" bson:"phase,omitempty"` // empty = unset
	Rationale      string    `json:"rationale,omitempty" bson:"rationale,omitempty"`
	Inclusions     string    `json:"inclusions,omitempty" bson:"inclusions,omitempty"`
	Deliverables   string    `json:"deliverables,omitempty" bson:"deliverables,omitempty"`
	DeliveryMethod string    `json:"deliveryMethod,omitempty" bson:"deliveryMethod,omitempty"`
	DisplayOrder   int       `json:"displayOrder,omitempty" bson:"displayOrder,omitempty"`
	CreatedAt      time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt" bson:"updatedAt"`
}

// Validate checks offering integrity at write time
func (o *Offering) Validate() error {
	if o.Key == "" {
		return fmt.Errorf("offering %q: missing key", o.Title)
	}
	if o.Title == "" {
		return fmt.Errorf("offering %q: missing title", o.Key)
	}
	switch o.Phase {
	case "", PhaseA, PhaseB, PhaseC:
	default:
		return fmt.Errorf("offering %q: unknown phase %q", o.Key, o.Phase)
	}
	return nil
}

// DecisionRule maps one (question, answer value) pair to an offering with
// a weight. The full rule set is the decision matrix.
type DecisionRule struct {
	ID          string `json:"id" bson:"_id,omitempty"`
	QuestionKey string `json:"questionKey" bson:"questionKey"`
	AnswerValue string `json:"answerValue" bson:"answerValue"`
	OfferingKey string `json:"offeringKey" bson:"offeringKey"`
	Weight      int    `json:"weight" bson:"weight"` // >= 1
}

// TripleKey identifies the (question, value, offering) triple, which must
// be unique across the matrix.
func (r DecisionRule) TripleKey() string {
	return r.QuestionKey + "\x00" + r.AnswerValue + "\x00" + r.OfferingKey
}

// OfferingScore is the scoring engine's output row
type OfferingScore struct {
	OfferingKey string `json:"offeringKey"`
	Score       int    `json:"score"`
}

// ScoredOffering is an offering annotated with its accumulated score
type ScoredOffering struct {
	Offering Offering `json:"offering"`
	Score    int      `json:"score"`
}
