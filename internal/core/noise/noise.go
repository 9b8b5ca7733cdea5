// Package noise provides deterministic gradient noise seeded once per
// world, with fractional Brownian motion layering on top.
package noise

import (
	"math"

	"voxelcore/pkg/mathutil"
)

var grad3 = [12][3]float64{
	{1, 1, 0}, {-1, 1, 0}, {1, -1, 0}, {-1, -1, 0},
	{1, 0, 1}, {-1, 0, 1}, {1, 0, -1}, {-1, 0, -1},
	{0, 1, 1}, {0, -1, 1}, {0, 1, -1}, {0, -1, -1},
}

// Noise is a seeded gradient-noise source. It is a pure function of seed
// plus coordinates and is safe to share across worker goroutines once
// constructed: the permutation table is written once and never mutated.
type Noise struct {
	perm [512]uint8
}

// New seeds a Noise source from an unsigned 32-bit seed by Fisher-Yates
// shuffling the permutation 0..=255 and duplicating it to 512 entries so
// indexing never needs a modulo.
func New(seed uint32) *Noise {
	base := make([]int, 256)
	for i := range base {
		base[i] = i
	}
	rng := mathutil.NewSeededRNG(int64(seed))
	shuffled := mathutil.Shuffle(rng, base)

	n := &Noise{}
	for i := 0; i < 256; i++ {
		n.perm[i] = uint8(shuffled[i])
		n.perm[i+256] = uint8(shuffled[i])
	}
	return n
}

func (n *Noise) hash(i, j int) int {
	return int(n.perm[(int(n.perm[i&255])+j)&255])
}

func (n *Noise) hash3(i, j, k int) int {
	return int(n.perm[(int(n.perm[(int(n.perm[i&255])+j)&255])+k)&255])
}

func lerp(t, a, b float64) float64 { return a + t*(b-a) }

func fade(t float64) float64 { return t * t * t * (t*(t*6-15) + 10) }

func grad2(hash int, x, y float64) float64 {
	g := grad3[hash%12]
	return g[0]*x + g[1]*y
}

func grad3d(hash int, x, y, z float64) float64 {
	g := grad3[hash%12]
	return g[0]*x + g[1]*y + g[2]*z
}

// Noise2 returns classic Perlin noise in approximately [-1, 1] at (x, y).
func (n *Noise) Noise2(x, y float64) float64 {
	xi := int(math.Floor(x)) & 255
	yi := int(math.Floor(y)) & 255
	xf := x - math.Floor(x)
	yf := y - math.Floor(y)

	u := fade(xf)
	v := fade(yf)

	aa := n.hash(xi, yi)
	ab := n.hash(xi, yi+1)
	ba := n.hash(xi+1, yi)
	bb := n.hash(xi+1, yi+1)

	x1 := lerp(u, grad2(aa, xf, yf), grad2(ba, xf-1, yf))
	x2 := lerp(u, grad2(ab, xf, yf-1), grad2(bb, xf-1, yf-1))
	return lerp(v, x1, x2)
}

// Noise3 returns classic Perlin noise in approximately [-1, 1] at (x, y, z).
func (n *Noise) Noise3(x, y, z float64) float64 {
	xi := int(math.Floor(x)) & 255
	yi := int(math.Floor(y)) & 255
	zi := int(math.Floor(z)) & 255
	xf := x - math.Floor(x)
	yf := y - math.Floor(y)
	zf := z - math.Floor(z)

	u := fade(xf)
	v := fade(yf)
	w := fade(zf)

	aaa := n.hash3(xi, yi, zi)
	aba := n.hash3(xi, yi+1, zi)
	aab := n.hash3(xi, yi, zi+1)
	abb := n.hash3(xi, yi+1, zi+1)
	baa := n.hash3(xi+1, yi, zi)
	bba := n.hash3(xi+1, yi+1, zi)
	bab := n.hash3(xi+1, yi, zi+1)
	bbb := n.hash3(xi+1, yi+1, zi+1)

	x1 := lerp(u, grad3d(aaa, xf, yf, zf), grad3d(baa, xf-1, yf, zf))
	x2 := lerp(u, grad3d(aba, xf, yf-1, zf), grad3d(bba, xf-1, yf-1, zf))
	y1 := lerp(v, x1, x2)

	x3 := lerp(u, grad3d(aab, xf, yf, zf-1), grad3d(bab, xf-1, yf, zf-1))
	x4 := lerp(u, grad3d(abb, xf, yf-1, zf-1), grad3d(bbb, xf-1, yf-1, zf-1))
	y2 := lerp(v, x3, x4)

	return lerp(w, y1, y2)
}

// FBM2 sums octaves of Noise2 with frequency scaled by lacunarity and
// amplitude scaled by persistence per octave.
func (n *Noise) FBM2(x, y float64, octaves int, baseFreq, baseAmp, lacunarity, persistence float64) float64 {
	sum := 0.0
	freq := baseFreq
	amp := baseAmp
	for o := 0; o < octaves; o++ {
		sum += n.Noise2(x*freq, y*freq) * amp
		freq *= lacunarity
		amp *= persistence
	}
	return sum
}

// FBM3 sums octaves of Noise3 with frequency scaled by lacunarity and
// amplitude scaled by persistence per octave.
func (n *Noise) FBM3(x, y, z float64, octaves int, baseFreq, baseAmp, lacunarity, persistence float64) float64 {
	sum := 0.0
	freq := baseFreq
	amp := baseAmp
	for o := 0; o < octaves; o++ {
		sum += n.Noise3(x*freq, y*freq, z*freq) * amp
		freq *= lacunarity
		amp *= persistence
	}
	return sum
}
