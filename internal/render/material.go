package render

import (
	"voxelcore/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

// Material wraps the voxel shader and binds the per-frame environment
// uniforms §6 requires of a TextureAtlas's material(): u_ambient_light,
// u_camera_pos, u_fog_start, u_fog_end, u_fog_color, u_underwater, u_time.
type Material struct {
	shader *Shader
}

// NewMaterial compiles the voxel shader program.
func NewMaterial(vertexSource, fragmentSource string) (*Material, error) {
	shader, err := NewShader(vertexSource, fragmentSource)
	if err != nil {
		return nil, err
	}
	return &Material{shader: shader}, nil
}

// Bind activates the shader and sets every environment uniform for this
// frame. viewDist drives the fog range via world.FogRange: fog starts at 0.8
// and ends at 1.2 times the view distance in blocks.
func (m *Material) Bind(view, projection mgl32.Mat4, cameraPos mgl32.Vec3, timeOfDay float32, viewDist int, underwater bool, t float32) {
	m.shader.Use()
	m.shader.SetMat4("uView", view)
	m.shader.SetMat4("uProjection", projection)
	m.shader.SetVec3("u_camera_pos", cameraPos)

	m.shader.SetVec3("u_ambient_light", world.AmbientColor(timeOfDay))
	m.shader.SetVec3("u_fog_color", world.FogColor(timeOfDay))

	start, end := world.FogRange(viewDist)
	m.shader.SetFloat("u_fog_start", start)
	m.shader.SetFloat("u_fog_end", end)

	m.shader.SetBool("u_underwater", underwater)
	m.shader.SetFloat("u_time", t)
}

// Delete releases the underlying shader program.
func (m *Material) Delete() {
	if m.shader != nil {
		m.shader.Delete()
	}
}

// DefaultVoxelVertexShader and DefaultVoxelFragmentShader are a minimal
// voxel shader matching the mesher.Vertex layout (position, uv, normal,
// shade) and the Material.Bind uniform set. A game can supply its own
// asset-loaded shader instead; these exist so the demo binary in cmd/ has
// something to compile and link without external files.
const DefaultVoxelVertexShader = `
#version 410 core

layout(location = 0) in vec3 aPos;
layout(location = 1) in vec2 aUV;
layout(location = 2) in vec3 aNormal;
layout(location = 3) in float aShade;

uniform mat4 uView;
uniform mat4 uProjection;

out vec2 vUV;
out float vShade;
out vec3 vWorldPos;

void main() {
    vWorldPos = aPos;
    vUV = aUV;
    vShade = aShade;
    gl_Position = uProjection * uView * vec4(aPos, 1.0);
}
` + "\x00"

const DefaultVoxelFragmentShader = `
#version 410 core

in vec2 vUV;
in float vShade;
in vec3 vWorldPos;

uniform vec3 u_camera_pos;
uniform vec3 u_ambient_light;
uniform vec3 u_fog_color;
uniform float u_fog_start;
uniform float u_fog_end;
uniform bool u_underwater;
uniform float u_time;

out vec4 fragColor;

void main() {
    vec3 base = vec3(0.6, 0.6, 0.6) * vShade * u_ambient_light;

    float dist = length(vWorldPos - u_camera_pos);
    float fogFactor = clamp((dist - u_fog_start) / (u_fog_end - u_fog_start), 0.0, 1.0);
    vec3 color = mix(base, u_fog_color, fogFactor);

    if (u_underwater) {
        color = mix(color, vec3(0.1, 0.3, 0.5), 0.4);
    }

    fragColor = vec4(color, 1.0);
}
` + "\x00"
