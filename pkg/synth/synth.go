// Package synth implements the five biome synthesis pipelines and the
// post-generation validation pass. Each synthesizer is a sequence of phases
// (layout, terrain, structures, interactive, lighting, entities) that mutate
// a Scene in place; the orchestrator selects the synthesizer from a registry,
// runs the phases in order with a cooperative cancellation check between
// them, and finishes with the post-processor.
package synth

import (
	"context"
	"fmt"
	"time"

	"tileforge/pkg/engine/rng"
	"tileforge/pkg/level"
)

// Synthesizer is one biome pipeline. Phases run in declaration order and may
// keep transient working state (rooms, regions) on the implementing struct;
// that state is discarded when the pipeline finishes.
type Synthesizer interface {
	Name() string
	Layout(*Scene)
	Terrain(*Scene)
	Structures(*Scene)
	Interactive(*Scene)
	Lighting(*Scene)
	Entities(*Scene)
}

// registry maps biomes to synthesizer factories. A fresh instance per call
// keeps concurrent generations independent.
var registry = map[level.BiomeType]func() Synthesizer{
	level.BiomeDungeon: func() Synthesizer { return &Dungeon{} },
	level.BiomeCave:    func() Synthesizer { return &Cave{} },
	level.BiomeForest:  func() Synthesizer { return &Forest{} },
	level.BiomeTown:    func() Synthesizer { return &Town{} },
	level.BiomeCastle:  func() Synthesizer { return &Castle{} },
}

// Report is the advisory validation result returned alongside every Level.
// It never blocks generation.
type Report struct {
	HasStartPoint bool `json:"hasStartPoint"`
	HasEndPoint   bool `json:"hasEndPoint"`
	HasTreasures  bool `json:"hasTreasures"`
	HasEnemies    bool `json:"hasEnemies"`
	IsConnected   bool `json:"isConnected"`
}

type phase struct {
	name string
	run  func(*Scene)
}

// Generate runs one full generation for cfg. The only fatal error is a
// *level.ConfigError; an expired or cancelled context returns the partial
// Level built so far together with the context error, and skips
// post-processing. Unrecognized biomes fall back to the dungeon pipeline.
func Generate(ctx context.Context, cfg level.Config) (*level.Level, *Report, error) {
	cfg = cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	effective := cfg.BiomeType
	if !effective.Known() {
		effective = level.BiomeDungeon
	}
	scaffoldCfg := cfg
	scaffoldCfg.BiomeType = effective

	r := rng.New(cfg.Seed)
	lvl, err := level.NewScaffold(scaffoldCfg, r)
	if err != nil {
		return nil, nil, err
	}

	s := &Scene{Level: lvl, Cfg: scaffoldCfg, RNG: r}
	synth := registry[effective]()

	phases := []phase{
		{"layout", synth.Layout},
		{"terrain", synth.Terrain},
		{"structures", synth.Structures},
		{"interactive", synth.Interactive},
		{"lighting", synth.Lighting},
		{"entities", synth.Entities},
	}
	for _, p := range phases {
		if err := ctx.Err(); err != nil {
			return lvl, nil, fmt.Errorf("synth: %s aborted before %s phase: %w", synth.Name(), p.name, err)
		}
		p.run(s)
	}

	if err := ctx.Err(); err != nil {
		return lvl, nil, fmt.Errorf("synth: %s aborted before post-processing: %w", synth.Name(), err)
	}
	report := postProcess(s)
	return lvl, report, nil
}

// GenerateWithTimeout bounds a generation run with a deadline.
func GenerateWithTimeout(cfg level.Config, d time.Duration) (*level.Level, *Report, error) {
	ctx, cancel := context.WithTimeout(context.Background(), d)
	defer cancel()
	return Generate(ctx, cfg)
}
