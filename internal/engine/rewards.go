package engine

import (
	"math/rand"

	"github.com/verdantapp/sprout/internal/model"
)

// Base rarity rates sum to 100 before the difficulty bonus is applied.
const (
	baseCommonRate    = 60.0
	baseUncommonRate  = 25.0
	baseRareRate      = 12.0
	baseExquisiteRate = 3.0

	commonRateFloor = 20.0
)

// RarityRates returns the perturbed per-tier rates for a difficulty
// bonus. The perturbed rates are compared cumulatively rarest-first and
// are intentionally NOT renormalized to sum to 100, so a high bonus
// skews the cumulative boundaries beyond the base table.
func RarityRates(difficulty float64) (exquisite, rare, uncommon, common float64) {
	exquisite = baseExquisiteRate + difficulty*2
	rare = baseRareRate + difficulty*3
	uncommon = baseUncommonRate + difficulty*5
	common = baseCommonRate - difficulty*10
	if common < commonRateFloor {
		common = commonRateFloor
	}
	return exquisite, rare, uncommon, common
}

// DrawRarity maps a uniform roll in [0,100) onto a rarity tier using the
// cumulative rarest-first boundaries.
func DrawRarity(difficulty float64, roll float64) model.Rarity {
	exquisite, rare, uncommon, _ := RarityRates(difficulty)
	switch {
	case roll < exquisite:
		return model.RarityExquisite
	case roll < exquisite+rare:
		return model.RarityRare
	case roll < exquisite+rare+uncommon:
		return model.RarityUncommon
	default:
		return model.RarityCommon
	}
}

type rewardSpec struct {
	name   string
	rarity model.Rarity
	effect model.Effect
}

var growthTable = []rewardSpec{
	{"Spring Rain", model.RarityCommon, model.Effect{HeightDelta: 0.1, LeafDelta: 2}},
	{"Rich Compost", model.RarityCommon, model.Effect{HeightDelta: 0.1, HealthDelta: 3}},
	{"Morning Dew", model.RarityCommon, model.Effect{LeafDelta: 3}},
	{"Worm Castings", model.RarityUncommon, model.Effect{HeightDelta: 0.2, HealthDelta: 5}},
	{"Mycorrhizal Blend", model.RarityUncommon, model.Effect{HeightDelta: 0.2, LeafDelta: 5}},
	{"Deep Root Tonic", model.RarityRare, model.Effect{HeightDelta: 0.4, LeafDelta: 6, HealthDelta: 6}},
	{"Ancient Loam", model.RarityExquisite, model.Effect{HeightDelta: 0.8, LeafDelta: 10, HealthDelta: 10}},
}

var decorationTable = []rewardSpec{
	{"Pebble Border", model.RarityCommon, model.Effect{BeautyDelta: 2}},
	{"Clay Pot", model.RarityCommon, model.Effect{BeautyDelta: 3}},
	{"Wind Chime", model.RarityCommon, model.Effect{BeautyDelta: 3}},
	{"Paper Lanterns", model.RarityUncommon, model.Effect{BeautyDelta: 5, Style: model.StyleLightLanterns}},
	{"Firefly Jar", model.RarityUncommon, model.Effect{BeautyDelta: 5, Style: model.StyleLightFireflies}},
	{"Sakura Graft", model.RarityRare, model.Effect{BeautyDelta: 8, Style: model.StyleLeafSakura}},
	{"Prism Canopy", model.RarityExquisite, model.Effect{BeautyDelta: 15, Style: model.StyleFxRainbow}},
}

// DrawReward draws exactly one unused reward record: a rarity roll picks
// the tier, a fair coin picks growth promoter versus decoration, and the
// chosen table is filtered by the drawn rarity. A table with no entry of
// that exact rarity falls back to its Common pool; an empty pool means
// the static tables are broken and surfaces ErrEmptyRewardTable.
func DrawReward(rng *rand.Rand, difficulty float64) (model.Reward, error) {
	rarity := DrawRarity(difficulty, rng.Float64()*100)

	kind := model.RewardGrowth
	table := growthTable
	if rng.Intn(2) == 1 {
		kind = model.RewardDecoration
		table = decorationTable
	}

	pool := filterByRarity(table, rarity)
	if len(pool) == 0 {
		rarity = model.RarityCommon
		pool = filterByRarity(table, rarity)
	}
	if len(pool) == 0 {
		return model.Reward{}, ErrEmptyRewardTable
	}

	spec := pool[rng.Intn(len(pool))]
	return model.Reward{
		Name:   spec.name,
		Kind:   kind,
		Rarity: spec.rarity,
		Effect: spec.effect,
	}, nil
}

func filterByRarity(table []rewardSpec, rarity model.Rarity) []rewardSpec {
	out := make([]rewardSpec, 0, len(table))
	for _, spec := range table {
		if spec.rarity == rarity {
			out = append(out, spec)
		}
	}
	return out
}

// toolGrantChance is the probability that completing a task also grants
// a tool.
const toolGrantChance = 0.4

type toolSpec struct {
	name        string
	typ         model.ToolType
	unlockLevel int
	effect      model.Effect
}

var toolCatalog = []toolSpec{
	{"Watering Can", model.ToolWater, 1, model.Effect{HealthDelta: 4}},
	{"Compost Scoop", model.ToolFertilize, 2, model.Effect{HeightDelta: 0.1, HealthDelta: 2}},
	{"Pruning Shears", model.ToolPrune, 3, model.Effect{LeafDelta: -3, HealthDelta: 6}},
	{"Ribbon Set", model.ToolDecorate, 4, model.Effect{BeautyDelta: 4}},
	{"Garden Lamp", model.ToolIlluminate, 6, model.Effect{BeautyDelta: 3, Style: model.StyleLightFairy}},
	{"Bark Brush", model.ToolCustomize, 8, model.Effect{BeautyDelta: 2, Style: model.StyleBarkBirch}},
	{"Growth Serum", model.ToolEnhance, 11, model.Effect{HeightDelta: 0.3, LeafDelta: 5}},
	{"Treehouse Kit", model.ToolBuild, 15, model.Effect{BeautyDelta: 10, HealthDelta: 5}},
}

// GrantTool probabilistically grants a tool on completion. Candidates
// are filtered by an unlock ceiling of the current level plus a
// difficulty bonus (one extra level per 25 difficulty points).
func GrantTool(rng *rand.Rand, level int, difficulty int) (model.Tool, bool) {
	if rng.Float64() >= toolGrantChance {
		return model.Tool{}, false
	}
	ceiling := level + difficulty/25
	candidates := make([]toolSpec, 0, len(toolCatalog))
	for _, spec := range toolCatalog {
		if spec.unlockLevel <= ceiling {
			candidates = append(candidates, spec)
		}
	}
	if len(candidates) == 0 {
		return model.Tool{}, false
	}
	spec := candidates[rng.Intn(len(candidates))]
	return model.Tool{
		Name:        spec.name,
		Type:        spec.typ,
		UnlockLevel: spec.unlockLevel,
		Effect:      spec.effect,
	}, true
}
