package forge

import (
	"encoding/json"
	"fmt"

	"github.com/trigenys/apex-forge/internal/domain"
)

// SimulationHorizonMonths is the fixed horizon of financial
// simulations.
const SimulationHorizonMonths = 24

// SimulationInstruction builds the financial-simulation instruction for
// a free-text scenario.
func SimulationInstruction(scenario, country string) string {
	return fmt.Sprintf(`Simulate the financial data for the next %d months based on the strategic scenario: "%s". Country context: %s. JSON array only.`,
		SimulationHorizonMonths, scenario, orPlaceholder(country))
}

// SimulationSchema describes the month-by-month simulation output.
// Every field is required: a point without all five series is useless
// to the caller's charting.
func SimulationSchema() *domain.ResponseSchema {
	return &domain.ResponseSchema{
		Type: domain.SchemaArray,
		Items: &domain.ResponseSchema{
			Type: domain.SchemaObject,
			Properties: map[string]*domain.ResponseSchema{
				"month":     {Type: domain.SchemaNumber},
				"revenue":   {Type: domain.SchemaNumber},
				"expenses":  {Type: domain.SchemaNumber},
				"stress":    {Type: domain.SchemaNumber},
				"stability": {Type: domain.SchemaNumber},
			},
			Required: []string{"month", "revenue", "expenses", "stress", "stability"},
		},
	}
}

// DecodeSimulation parses a simulation payload.
func DecodeSimulation(raw []byte) ([]domain.SimulationPoint, error) {
	var points []domain.SimulationPoint
	if err := json.Unmarshal(raw, &points); err != nil {
		return nil, fmt.Errorf("decode simulation: %w", err)
	}
	return points, nil
}
