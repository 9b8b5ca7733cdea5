// Package biome classifies world columns into biome tags from 2D noise and
// exposes the static, read-only-after-init properties table those tags
// index into.
package biome

import (
	"voxelcore/internal/core/block"
	"voxelcore/internal/core/noise"
)

// Type tags a classified biome.
type Type int

const (
	Desert Type = iota
	Plains
	Forest
	Tundra

	count
)

func (t Type) String() string {
	switch t {
	case Desert:
		return "desert"
	case Plains:
		return "plains"
	case Forest:
		return "forest"
	case Tundra:
		return "tundra"
	default:
		return "unknown"
	}
}

// Properties holds the static, read-only-after-init attributes of one biome.
type Properties struct {
	Name            string
	Surface         block.Type
	Subsurface      block.Type
	HeightScale     float64
	TreeDensity     float64
	HasTrees        bool
	HasCacti        bool
	PrimaryTree     TreeKind
	SecondaryTree   TreeKind
	SecondaryChance float64
}

// TreeKind selects which stamp template a tree placement uses.
type TreeKind int

const (
	TreeOak TreeKind = iota
	TreeBirch
	TreeSpruce
	TreeAcacia
)

var table = [count]Properties{
	Desert: {
		Name: "desert", Surface: block.Sand, Subsurface: block.Sand,
		HeightScale: 0.6, TreeDensity: 0, HasTrees: false, HasCacti: true,
		PrimaryTree: TreeAcacia, SecondaryTree: TreeAcacia, SecondaryChance: 0,
	},
	Plains: {
		Name: "plains", Surface: block.Grass, Subsurface: block.Dirt,
		HeightScale: 0.8, TreeDensity: 0.05, HasTrees: true, HasCacti: false,
		PrimaryTree: TreeOak, SecondaryTree: TreeBirch, SecondaryChance: 0.2,
	},
	Forest: {
		Name: "forest", Surface: block.Grass, Subsurface: block.Dirt,
		HeightScale: 1.0, TreeDensity: 0.35, HasTrees: true, HasCacti: false,
		PrimaryTree: TreeOak, SecondaryTree: TreeBirch, SecondaryChance: 0.35,
	},
	Tundra: {
		Name: "tundra", Surface: block.Snow, Subsurface: block.Dirt,
		HeightScale: 0.9, TreeDensity: 0.08, HasTrees: true, HasCacti: false,
		PrimaryTree: TreeSpruce, SecondaryTree: TreeSpruce, SecondaryChance: 0,
	},
}

// Get returns the properties for a biome tag.
func Get(t Type) Properties {
	if int(t) < 0 || int(t) >= int(count) {
		return table[Plains]
	}
	return table[t]
}

// biomeOffset decorrelates biome noise sampling from terrain height/cave
// noise sampled at the same world coordinates.
const biomeOffset = 9000.0

// At classifies the biome at world column (wx, wz) using two-octave fBm
// noise thresholds.
func At(n *noise.Noise, wx, wz int) Type {
	v := n.FBM2(float64(wx)+biomeOffset, float64(wz)+biomeOffset, 2, 0.003, 1, 2, 0.5)
	switch {
	case v < -0.3:
		return Desert
	case v < 0.1:
		return Plains
	case v < 0.5:
		return Forest
	default:
		return Tundra
	}
}
