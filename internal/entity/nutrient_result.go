package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/bloodwork-analyzer/constants"
)

// NutrientResult represents one extracted measurement for data transfer
// between layers.
type NutrientResult struct {
	ID          uuid.UUID             `json:"id"`
	ReportID    uuid.UUID             `json:"report_id"`
	NutrientKey string                `json:"nutrient_key"`
	Value       float64               `json:"value"`
	Unit        string                `json:"unit"`
	Confidence  float64               `json:"confidence"`
	Strategy    constants.Strategy    `json:"strategy"`
	Status      constants.ValueStatus `json:"status"`
	NormalLow   float64               `json:"normal_low"`
	NormalHigh  float64               `json:"normal_high"`
	CreatedAt   time.Time             `json:"created_at"`
}
