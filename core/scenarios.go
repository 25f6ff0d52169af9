package core

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/huangsam/pmbench/schema"
	"gopkg.in/yaml.v3"
)

//go:embed scenarios.yaml
var scenariosYAML []byte

// Scenario is one developer-experience exercise with per-tool commands.
type Scenario struct {
	Name        string                 `yaml:"name"`
	Description string                 `yaml:"description"`
	Commands    map[schema.Tool]string `yaml:"commands"`
}

type scenarioFile struct {
	Scenarios []Scenario `yaml:"scenarios"`
}

var (
	scenariosOnce sync.Once
	scenariosList []Scenario
	scenariosErr  error
)

// DXScenarios returns the embedded scenario table, decoded once.
func DXScenarios() ([]Scenario, error) {
	scenariosOnce.Do(func() {
		var file scenarioFile
		if err := yaml.Unmarshal(scenariosYAML, &file); err != nil {
			scenariosErr = fmt.Errorf("cannot decode embedded scenarios: %w", err)
			return
		}
		scenariosList = file.Scenarios
	})
	return scenariosList, scenariosErr
}
