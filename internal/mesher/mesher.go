// Package mesher turns a generated chunk into renderable geometry: one
// opaque vertex stream and one transparent stream, with per-vertex ambient
// occlusion and a baked per-cell light value.
package mesher

import (
	"math"

	"voxelcore/internal/core/block"
	"voxelcore/internal/core/chunk"
)

// Face identifies one of the six axis-aligned cube faces.
type Face int

const (
	Top Face = iota
	Bottom
	North
	South
	East
	West
	faceCount
)

// Vertex is the attribute set emitted per mesh vertex, matching the layout
// the render package uploads to the GPU.
type Vertex struct {
	X, Y, Z    float32
	U, V       float32
	NX, NY, NZ float32
	Shade      uint8 // greyscale brightness, 0-255
}

// Buffers holds one mesh stream's raw vertex/index data.
type Buffers struct {
	Vertices []Vertex
	Indices  []uint32
}

// Data is the staged output of a mesh build: one buffer per stream.
type Data struct {
	Opaque      Buffers
	Transparent Buffers
}

// Empty reports whether both streams are empty.
func (d *Data) Empty() bool {
	return len(d.Opaque.Vertices) == 0 && len(d.Transparent.Vertices) == 0
}

// BlockGetter resolves a block at world coordinates, allowing faces to be
// culled correctly against neighboring chunks.
type BlockGetter func(wx, wy, wz int) block.Type

// Atlas resolves the texture-atlas UV rectangle for a (block type, face).
type Atlas interface {
	UV(t block.Type, f Face) (u0, v0, u1, v1 float32)
}

// Uploader turns staged buffers into a GPU-resident mesh. Implemented by the
// render package so this package never touches graphics APIs directly.
type Uploader interface {
	Upload(vertices []Vertex, indices []uint32) chunk.GpuMesh
}

var faceNormals = [faceCount][3]int{
	Top:    {0, 1, 0},
	Bottom: {0, -1, 0},
	North:  {0, 0, -1},
	South:  {0, 0, 1},
	East:   {1, 0, 0},
	West:   {-1, 0, 0},
}

// faceBrightness is the fixed per-direction shading factor.
var faceBrightness = [faceCount]float64{
	Top:    1.0,
	Bottom: 0.8,
	North:  0.9,
	South:  0.9,
	East:   0.95,
	West:   0.95,
}

// faceQuads lists the 4 corner offsets (within the unit cube) for each face,
// wound so the two triangles face outward.
var faceQuads = [faceCount][4][3]float32{
	Top:    {{0, 1, 0}, {0, 1, 1}, {1, 1, 1}, {1, 1, 0}},
	Bottom: {{0, 0, 1}, {0, 0, 0}, {1, 0, 0}, {1, 0, 1}},
	North:  {{1, 0, 0}, {1, 1, 0}, {0, 1, 0}, {0, 0, 0}},
	South:  {{0, 0, 1}, {0, 1, 1}, {1, 1, 1}, {1, 0, 1}},
	East:   {{1, 0, 1}, {1, 1, 1}, {1, 1, 0}, {1, 0, 0}},
	West:   {{0, 0, 0}, {0, 1, 0}, {0, 1, 1}, {0, 0, 1}},
}

// faceAxes gives the two in-plane axes (0=X,1=Y,2=Z) used for AO sampling,
// excluding the face's normal axis.
var faceAxes = [faceCount][2]int{
	Top:    {0, 2},
	Bottom: {0, 2},
	North:  {0, 1},
	South:  {0, 1},
	East:   {2, 1},
	West:   {2, 1},
}

// aoTable maps an occlusion index (0-3) to a brightness multiplier.
var aoTable = [4]float32{0.4, 0.6, 0.8, 1.0}

// Mesher holds reusable build buffers to avoid per-chunk allocation churn.
type Mesher struct {
	opaqueV []Vertex
	opaqueI []uint32
	transV  []Vertex
	transI  []uint32
}

// New creates a mesher with pre-sized buffers.
func New() *Mesher {
	return &Mesher{
		opaqueV: make([]Vertex, 0, 4096),
		opaqueI: make([]uint32, 0, 6144),
		transV:  make([]Vertex, 0, 512),
		transI:  make([]uint32, 0, 768),
	}
}

// GenerateStaged builds raw vertex/index buffers for c without touching the
// GPU, suitable for worker-thread use.
func (m *Mesher) GenerateStaged(c *chunk.Chunk, get BlockGetter, atlas Atlas) *Data {
	m.opaqueV = m.opaqueV[:0]
	m.opaqueI = m.opaqueI[:0]
	m.transV = m.transV[:0]
	m.transI = m.transI[:0]

	wox := int(c.CX) * chunk.Size
	woz := int(c.CZ) * chunk.Size

	for lx := 0; lx < chunk.Size; lx++ {
		for ly := 0; ly < chunk.Height; ly++ {
			for lz := 0; lz < chunk.Size; lz++ {
				bt := c.GetBlock(lx, ly, lz)
				if bt.IsAir() {
					continue
				}
				def := block.Def(bt)
				wx, wy, wz := wox+lx, ly, woz+lz

				for f := Face(0); f < faceCount; f++ {
					off := faceNormals[f]
					nb := get(wx+off[0], wy+off[1], wz+off[2])
					if !faceVisible(bt, nb) {
						continue
					}
					m.emitFace(c, get, atlas, def, bt, f, lx, ly, lz, wx, wy, wz)
				}
			}
		}
	}

	return &Data{
		Opaque:      Buffers{Vertices: append([]Vertex{}, m.opaqueV...), Indices: append([]uint32{}, m.opaqueI...)},
		Transparent: Buffers{Vertices: append([]Vertex{}, m.transV...), Indices: append([]uint32{}, m.transI...)},
	}
}

// GenerateAndUpload builds the mesh and immediately uploads both streams to
// the GPU via uploader.
func (m *Mesher) GenerateAndUpload(c *chunk.Chunk, get BlockGetter, atlas Atlas, uploader Uploader) (opaque, transparent chunk.GpuMesh) {
	data := m.GenerateStaged(c, get, atlas)
	if len(data.Opaque.Vertices) > 0 {
		opaque = uploader.Upload(data.Opaque.Vertices, data.Opaque.Indices)
	}
	if len(data.Transparent.Vertices) > 0 {
		transparent = uploader.Upload(data.Transparent.Vertices, data.Transparent.Indices)
	}
	return opaque, transparent
}

// faceVisible implements §4.6's visibility rule: A solid, and N is either
// non-solid or transparent.
func faceVisible(a, n block.Type) bool {
	if !a.IsSolid() {
		return false
	}
	if !n.IsSolid() {
		return true
	}
	return n.IsTransparent()
}

func (m *Mesher) emitFace(c *chunk.Chunk, get BlockGetter, atlas Atlas, def block.Definition, bt block.Type, f Face, lx, ly, lz, wx, wy, wz int) {
	quad := faceQuads[f]
	normal := faceNormals[f]
	u0, v0, u1, v1 := atlas.UV(bt, f)
	uvs := [4][2]float32{{u0, v0}, {u1, v0}, {u1, v1}, {u0, v1}}

	light := bakedLight(c, lx, ly, lz)
	lightFactor := float64(light) / float64(chunk.LightMax)
	brightness := faceBrightness[f]

	verts := make([]Vertex, 4)
	for i := 0; i < 4; i++ {
		corner := quad[i]
		ao := vertexAO(get, f, wx, wy, wz, corner)
		shade := brightness * float64(ao) * lightFactor * 255.0
		if shade < 0 {
			shade = 0
		}
		if shade > 255 {
			shade = 255
		}
		verts[i] = Vertex{
			X: float32(lx) + corner[0], Y: float32(ly) + corner[1], Z: float32(lz) + corner[2],
			U: uvs[i][0], V: uvs[i][1],
			NX: float32(normal[0]), NY: float32(normal[1]), NZ: float32(normal[2]),
			Shade: uint8(math.Round(shade)),
		}
	}

	var vbuf *[]Vertex
	var ibuf *[]uint32
	if def.Transparent {
		vbuf, ibuf = &m.transV, &m.transI
	} else {
		vbuf, ibuf = &m.opaqueV, &m.opaqueI
	}
	base := uint32(len(*vbuf))
	*vbuf = append(*vbuf, verts...)
	*ibuf = append(*ibuf, base, base+1, base+2, base, base+2, base+3)
}

// vertexAO computes the {0.4,0.6,0.8,1.0} occlusion factor for one corner of
// a face, per §4.6: two side neighbors and one corner neighbor, sampled in
// the plane just outside the face.
func vertexAO(get BlockGetter, f Face, wx, wy, wz int, corner [3]float32) float32 {
	axes := faceAxes[f]
	n := faceNormals[f]

	uAxis, vAxis := axes[0], axes[1]
	su := signFromCorner(corner, uAxis)
	sv := signFromCorner(corner, vAxis)

	base := [3]int{wx + n[0], wy + n[1], wz + n[2]}

	unitU := axisUnit(uAxis)
	unitV := axisUnit(vAxis)

	side1 := offset(base, unitU, su)
	side2 := offset(base, unitV, sv)
	cornerCell := offset(offset(base, unitU, su), unitV, sv)

	s1 := solidAt(get, side1)
	s2 := solidAt(get, side2)
	c := solidAt(get, cornerCell)

	if s1 && s2 {
		return aoTable[0]
	}
	idx := 3 - (boolToInt(s1) + boolToInt(s2) + boolToInt(c))
	if idx < 0 {
		idx = 0
	}
	if idx > 3 {
		idx = 3
	}
	return aoTable[idx]
}

func signFromCorner(corner [3]float32, axis int) int {
	if corner[axis] > 0.5 {
		return 1
	}
	return -1
}

func axisUnit(axis int) [3]int {
	var u [3]int
	u[axis] = 1
	return u
}

func offset(p [3]int, unit [3]int, sign int) [3]int {
	return [3]int{p[0] + unit[0]*sign, p[1] + unit[1]*sign, p[2] + unit[2]*sign}
}

func solidAt(get BlockGetter, p [3]int) bool {
	return get(p[0], p[1], p[2]).IsSolid() && !get(p[0], p[1], p[2]).IsTransparent()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// bakedLight computes a cell's single light value per §4.6: the maximum of
// its six neighbors, lower-bounded at 3. Chunk-edge neighbors assume a
// minimum of 8; cells above the chunk top contribute LightMax.
func bakedLight(c *chunk.Chunk, lx, ly, lz int) uint8 {
	offsets := [6][3]int{{1, 0, 0}, {-1, 0, 0}, {0, 1, 0}, {0, -1, 0}, {0, 0, 1}, {0, 0, -1}}
	var max uint8 = 3

	for _, off := range offsets {
		nx, ny, nz := lx+off[0], ly+off[1], lz+off[2]
		var v uint8
		switch {
		case ny >= chunk.Height:
			v = chunk.LightMax
		case ny < 0:
			v = 0
		case nx < 0 || nx >= chunk.Size || nz < 0 || nz >= chunk.Size:
			v = 8
		default:
			v = c.GetLight(nx, ny, nz)
		}
		if v > max {
			max = v
		}
	}
	return max
}
