package render

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/go-gl/gl/v4.1-core/gl"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// DebugHUD bakes a line of text (loaded-chunk/tick counters, typically)
// into an RGBA bitmap and uploads it as a plain 2D texture each frame,
// drawing with golang.org/x/image/font/basicfont so the HUD needs no bundled
// font asset.
type DebugHUD struct {
	textureID   uint32
	width       int
	height      int
	initialized bool
}

// NewDebugHUD allocates an uninitialized HUD; its texture is created lazily
// on the first SetText call once a GL context is current.
func NewDebugHUD() *DebugHUD {
	return &DebugHUD{width: 512, height: 32}
}

// SetText re-bakes the HUD's texture with the given line.
func (h *DebugHUD) SetText(line string) {
	img := image.NewRGBA(image.Rect(0, 0, h.width, h.height))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.RGBA{0, 0, 0, 160}), image.Point{}, draw.Src)

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.White),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(4, 20),
	}
	d.DrawString(line)

	if !h.initialized {
		gl.GenTextures(1, &h.textureID)
		h.initialized = true
	}
	gl.BindTexture(gl.TEXTURE_2D, h.textureID)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(h.width), int32(h.height), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
}

// Texture returns the GL texture id backing the HUD's last baked text.
func (h *DebugHUD) Texture() uint32 { return h.textureID }

// Delete releases the HUD's texture.
func (h *DebugHUD) Delete() {
	if h.initialized {
		gl.DeleteTextures(1, &h.textureID)
		h.initialized = false
	}
}
