package world

import (
	"github.com/go-gl/mathgl/mgl32"

	"voxelcore/internal/core/chunk"
)

var (
	dayAmbient    = mgl32.Vec3{1.0, 0.95, 0.9}
	nightAmbient  = mgl32.Vec3{0.3, 0.35, 0.5}
	dayColor      = mgl32.Vec3{0.53, 0.81, 0.98}
	sunriseColor  = mgl32.Vec3{0.98, 0.6, 0.4}
	sunsetColor   = mgl32.Vec3{0.95, 0.45, 0.35}
	nightColor    = mgl32.Vec3{0.05, 0.05, 0.15}
	twilightColor = mgl32.Vec3{0.2, 0.15, 0.35}
)

// SunIntensity returns the sun's contribution to ambient brightness in
// [nightBrightness, 1], full from 8:00-16:00 with a linear dawn/dusk ramp.
func SunIntensity(hour float32) float32 {
	const nightBrightness = 0.15
	switch {
	case hour >= 8.0 && hour <= 16.0:
		return 1.0
	case hour >= 6.0 && hour < 8.0:
		return nightBrightness + (1-nightBrightness)*(hour-6.0)/2.0
	case hour > 16.0 && hour <= 18.0:
		return nightBrightness + (1-nightBrightness)*(18.0-hour)/2.0
	default:
		return nightBrightness
	}
}

// SkyColor returns the sky/horizon tint for hour, blending through dawn,
// day, dusk, and night key colors.
func SkyColor(hour float32) mgl32.Vec3 {
	switch {
	case hour < 5.0:
		return nightColor
	case hour < 6.0:
		return lerpVec3(nightColor, twilightColor, (hour-5.0)*2)
	case hour < 7.0:
		return lerpVec3(twilightColor, sunriseColor, (hour-6.0)*2)
	case hour < 9.0:
		return lerpVec3(sunriseColor, dayColor, (hour-7.0)/2.0)
	case hour < 16.0:
		return dayColor
	case hour < 18.0:
		return lerpVec3(dayColor, sunsetColor, (hour-16.0)/2.0)
	case hour < 20.0:
		return lerpVec3(sunsetColor, twilightColor, (hour-18.0)/2.0)
	case hour < 21.0:
		return lerpVec3(twilightColor, nightColor, hour-20.0)
	default:
		return nightColor
	}
}

// AmbientColor blends night/day ambient light by SunIntensity(hour).
func AmbientColor(hour float32) mgl32.Vec3 {
	return lerpVec3(nightAmbient, dayAmbient, SunIntensity(hour))
}

// FogColor is the sky-horizon tint scaled by ambient brightness, so fogged
// geometry never reads brighter than lit geometry near the camera.
func FogColor(hour float32) mgl32.Vec3 {
	sky := SkyColor(hour)
	brightness := SunIntensity(hour)
	return mgl32.Vec3{sky.X() * brightness, sky.Y() * brightness, sky.Z() * brightness}
}

// FogRange returns the fog start/end distance in blocks for a given chunk
// view distance: fog starts at 0.8 and reaches full density at 1.2 times the
// view distance in blocks, so it begins inside the loaded area and completes
// beyond its edge.
func FogRange(viewDist int) (start, end float32) {
	blocks := float32(viewDist * chunk.Size)
	return blocks * 0.8, blocks * 1.2
}

func lerpVec3(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return mgl32.Vec3{
		a.X() + (b.X()-a.X())*t,
		a.Y() + (b.Y()-a.Y())*t,
		a.Z() + (b.Z()-a.Z())*t,
	}
}
