// Package preferences holds the compile-time default answer-ranking
// weights and optimization tuning knobs a conversation starts with before
// any DimensionPreference stanza overrides them.
package preferences

import (
	_ "embed"
	"encoding/json"
	"log"

	"github.com/skylarkvoice/client/protocol"
)

//go:embed defaults.json
var defaultsJSON []byte

// Defaults holds the dimension weights and Pareto-search tuning parameters
// parsed from defaults.json at init.
type Defaults struct {
	SuccessRate    float32 `json:"success_rate"`
	Quality        float32 `json:"quality"`
	Efficiency     float32 `json:"efficiency"`
	Robustness     float32 `json:"robustness"`
	Generalization float32 `json:"generalization"`
	Diversity      float32 `json:"diversity"`
	Innovation     float32 `json:"innovation"`

	ParetoTargetScore     float32 `json:"pareto_target_score"`
	ParetoMaxGenerations  int     `json:"pareto_max_generations"`
	ParetoBranchesPerGen  int     `json:"pareto_branches_per_gen"`
	ParetoArchiveSize     int     `json:"pareto_archive_size"`
	ParetoEnableCrossover bool    `json:"pareto_enable_crossover"`
}

var defaults Defaults

func init() {
	if err := json.Unmarshal(defaultsJSON, &defaults); err != nil {
		log.Fatalf("preferences: failed to parse embedded defaults: %v", err)
	}
}

// Get returns the parsed default tuning parameters.
func Get() Defaults {
	return defaults
}

// DimensionWeights converts the embedded defaults into the wire shape
// carried on a DimensionPreference stanza.
func (d Defaults) DimensionWeights() protocol.DimensionWeights {
	return protocol.DimensionWeights{
		SuccessRate:    d.SuccessRate,
		Quality:        d.Quality,
		Efficiency:     d.Efficiency,
		Robustness:     d.Robustness,
		Generalization: d.Generalization,
		Diversity:      d.Diversity,
		Innovation:     d.Innovation,
	}
}
