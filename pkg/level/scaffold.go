package level

import (
	"fmt"
	"time"

	"tileforge/pkg/engine/rng"
)

// Objective and description candidate lists. Scaffold picks 1-3 non-duplicate
// objectives and one description per level.
var objectiveCandidates = []string{
	"Reach the exit",
	"Recover the lost treasure",
	"Clear out the hostiles",
	"Find the hidden passage",
	"Rescue the stranded traveler",
	"Light the way forward",
	"Map the unexplored ground",
}

var descriptionCandidates = []string{
	"An old place, long abandoned and newly dangerous.",
	"Few who enter return, and fewer still return unchanged.",
	"Locals speak of strange lights and stranger sounds.",
	"The air here carries the weight of forgotten years.",
	"Something valuable waits for whoever dares the depths.",
}

// Name fragments per biome, combined adjective + noun.
var nameAdjectives = []string{
	"Forgotten", "Sunken", "Whispering", "Crumbling", "Gloomy",
	"Ancient", "Silent", "Shattered", "Hollow", "Windswept",
}

var nameNouns = map[BiomeType][]string{
	BiomeDungeon: {"Depths", "Catacombs", "Vaults", "Halls"},
	BiomeCave:    {"Caverns", "Grotto", "Hollows", "Chasm"},
	BiomeForest:  {"Woods", "Thicket", "Glade", "Wilds"},
	BiomeTown:    {"Crossing", "Market", "Hamlet", "Quarter"},
	BiomeCastle:  {"Keep", "Bastion", "Citadel", "Stronghold"},
}

// NewScaffold allocates the six layers, an empty entity list and the metadata
// block for a validated config. It consumes stream draws in a fixed order
// (id, name, objectives, description) so scaffolding is deterministic.
func NewScaffold(cfg Config, r *rng.Stream) (*Level, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	w, h := cfg.Width, cfg.Height
	lvl := &Level{
		ID:         fmt.Sprintf("level_%x_%04x", uint64(cfg.Seed), r.IntN(65536)),
		Name:       cfg.Name,
		BiomeType:  cfg.BiomeType,
		Theme:      cfg.Theme,
		Difficulty: cfg.Difficulty,
		Dimensions: Dimensions{Width: w, Height: h, TileSize: cfg.TileSize},
		Layers: Layers{
			Background:  NewGrid(w, h),
			Terrain:     NewGrid(w, h),
			Structures:  NewGrid(w, h),
			Interactive: NewGrid(w, h),
			Lighting:    NewGrid(w, h),
			Effects:     NewGrid(w, h),
		},
		Entities: []Entity{},
		Metadata: Metadata{
			GeneratedAt: time.Now().UTC().Format(time.RFC3339),
			Seed:        cfg.Seed,
		},
	}

	if lvl.Name == "" {
		lvl.Name = generateName(cfg.BiomeType, r)
	}
	lvl.Metadata.Objectives = pickObjectives(r)
	lvl.Metadata.Description = rng.Pick(r, descriptionCandidates)

	return lvl, nil
}

func generateName(biome BiomeType, r *rng.Stream) string {
	nouns, ok := nameNouns[biome]
	if !ok {
		nouns = nameNouns[BiomeDungeon]
	}
	return rng.Pick(r, nameAdjectives) + " " + rng.Pick(r, nouns)
}

// pickObjectives draws 1-3 distinct objectives from the candidate list.
func pickObjectives(r *rng.Stream) []string {
	count := r.Between(1, 3)
	remaining := make([]string, len(objectiveCandidates))
	copy(remaining, objectiveCandidates)

	picked := make([]string, 0, count)
	for i := 0; i < count; i++ {
		idx := r.IntN(len(remaining))
		picked = append(picked, remaining[idx])
		remaining = append(remaining[:idx], remaining[idx+1:]...)
	}
	return picked
}
