package services

import (
	"fmt"

	"skylens/verdant/internal/emissions"
)

// ScenarioConfigService holds the configured intervention set. Scenarios
// are static configuration selected per analysis run; nothing here mutates
// after construction.
type ScenarioConfigService struct {
	scenarios []emissions.Scenario
	byName    map[string]emissions.Scenario
}

// NewScenarioConfigService validates the configured scenarios up front so
// a bad override fails at boot, not on the first request.
func NewScenarioConfigService(scenarios []emissions.Scenario) (*ScenarioConfigService, error) {
	byName := make(map[string]emissions.Scenario, len(scenarios))
	for _, sc := range scenarios {
		if err := sc.Validate(); err != nil {
			return nil, fmt.Errorf("scenario configuration rejected: %w", err)
		}
		if _, dup := byName[sc.Name]; dup {
			return nil, fmt.Errorf("duplicate scenario name %q", sc.Name)
		}
		byName[sc.Name] = sc
	}
	return &ScenarioConfigService{scenarios: scenarios, byName: byName}, nil
}

// All returns every configured scenario in declaration order.
func (s *ScenarioConfigService) All() []emissions.Scenario {
	out := make([]emissions.Scenario, len(s.scenarios))
	copy(out, s.scenarios)
	return out
}

// Get looks a scenario up by name.
func (s *ScenarioConfigService) Get(name string) (emissions.Scenario, bool) {
	sc, ok := s.byName[name]
	return sc, ok
}
