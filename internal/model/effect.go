package model

// Effect is the growth-state delta a tool or reward applies exactly once.
// HeightDelta is in meters; the remaining deltas move bounded gauges.
type Effect struct {
	HeightDelta float64
	LeafDelta   int
	HealthDelta int
	BeautyDelta int
	Style       StyleTag
}

// StyleTag is an optional cosmetic selector carried by an effect. Which
// tree field it targets depends on the tool/reward that carries it.
type StyleTag string

const (
	StyleTagNone StyleTag = ""

	StyleLeafClassic StyleTag = "classic-leaves"
	StyleLeafMaple   StyleTag = "maple-leaves"
	StyleLeafSakura  StyleTag = "sakura-blossom"
	StyleLeafGolden  StyleTag = "golden-leaves"

	StyleBarkSmooth StyleTag = "smooth-bark"
	StyleBarkRugged StyleTag = "rugged-bark"
	StyleBarkBirch  StyleTag = "birch-bark"

	StyleLightLanterns  StyleTag = "lanterns"
	StyleLightFireflies StyleTag = "fireflies"
	StyleLightFairy     StyleTag = "fairy-lights"

	StyleFxSparkle  StyleTag = "sparkle"
	StyleFxRainbow  StyleTag = "rainbow"
	StyleFxSnowfall StyleTag = "snowfall"
)

func (s StyleTag) IsLeafStyle() bool {
	switch s {
	case StyleLeafClassic, StyleLeafMaple, StyleLeafSakura, StyleLeafGolden:
		return true
	default:
		return false
	}
}

func (s StyleTag) IsBarkTexture() bool {
	switch s {
	case StyleBarkSmooth, StyleBarkRugged, StyleBarkBirch:
		return true
	default:
		return false
	}
}

func (s StyleTag) IsLighting() bool {
	switch s {
	case StyleLightLanterns, StyleLightFireflies, StyleLightFairy:
		return true
	default:
		return false
	}
}

func (s StyleTag) IsSpecialEffect() bool {
	switch s {
	case StyleFxSparkle, StyleFxRainbow, StyleFxSnowfall:
		return true
	default:
		return false
	}
}
