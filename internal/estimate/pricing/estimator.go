// Package pricing is the canonical money core. Both entry surfaces, the
// catalog wizard and the conversational flow, route through this package so
// pricing rules exist exactly once.
package pricing

import (
	"fmt"
	"math"

	"antares_backend/internal/catalog"
	"antares_backend/platform/apperr"
	"antares_backend/platform/validator"
)

// Selection is one set of wizard choices against the catalog.
type Selection struct {
	SystemTypeID string   `json:"systemType" binding:"required"`
	ScaleID      string   `json:"scale" binding:"required"`
	FeatureIDs   []string `json:"features"`
	TimelineID   string   `json:"timeline" binding:"required"`
}

// Breakdown exposes every factor that entered the subtotal so the client can
// render an itemized explanation.
type Breakdown struct {
	BaseCost       int64   `json:"baseCost"`
	ScaleFactor    float64 `json:"scaleFactor"`
	FeaturesCost   int64   `json:"featuresCost"`
	TimelineFactor float64 `json:"timelineFactor"`
	Subtotal       int64   `json:"subtotal"`
}

// Estimate is a price range in yen. Min and Max are always derived from the
// breakdown subtotal, never carried independently.
type Estimate struct {
	Min       int64     `json:"min"`
	Max       int64     `json:"max"`
	Breakdown Breakdown `json:"breakdown"`
}

// Calculate prices a selection against the catalog. Every id must resolve;
// an unknown id is a validation failure, never a zero-cost fallback. Duplicate
// feature ids are collapsed so a feature is billed at most once.
func Calculate(sel Selection) (Estimate, error) {
	systemType, ok := catalog.SystemTypeByID(sel.SystemTypeID)
	if !ok {
		return Estimate{}, unknownID("systemType", sel.SystemTypeID)
	}
	scale, ok := catalog.ScaleByID(sel.ScaleID)
	if !ok {
		return Estimate{}, unknownID("scale", sel.ScaleID)
	}
	timeline, ok := catalog.TimelineByID(sel.TimelineID)
	if !ok {
		return Estimate{}, unknownID("timeline", sel.TimelineID)
	}

	var featuresCost int64
	seen := make(map[string]bool, len(sel.FeatureIDs))
	for _, id := range sel.FeatureIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		feature, ok := catalog.FeatureByID(id)
		if !ok {
			return Estimate{}, unknownID("features", id)
		}
		featuresCost += feature.Cost
	}

	subtotal := roundYen(
		(float64(systemType.BaseCost)*scale.Factor + float64(featuresCost)) * timeline.Factor,
	)

	return Estimate{
		Min: roundYen(float64(subtotal) * 0.8),
		Max: roundYen(float64(subtotal) * 1.2),
		Breakdown: Breakdown{
			BaseCost:       systemType.BaseCost,
			ScaleFactor:    scale.Factor,
			FeaturesCost:   featuresCost,
			TimelineFactor: timeline.Factor,
			Subtotal:       subtotal,
		},
	}, nil
}

func unknownID(field, id string) *apperr.Error {
	return apperr.Validation(fmt.Sprintf("unknown %s id %q", field, id)).
		WithDetails([]validator.FieldError{{Path: field, Message: fmt.Sprintf("unknown id %q", id)}})
}

func roundYen(v float64) int64 {
	return int64(math.Round(v))
}
