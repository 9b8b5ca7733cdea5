// Command voxelcore runs a minimal playable shell around the world
// package: a flying camera over a chunk grid streamed, meshed, and batched
// by internal/world, with left/right click carving and placing blocks via
// the raycast picker.
package main

import (
	"flag"
	"fmt"
	"os"

	"voxelcore/internal/core/block"
	"voxelcore/internal/render"
	"voxelcore/internal/world"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

func main() {
	seed := flag.Int64("seed", 1, "world generation seed")
	viewDistance := flag.Int("view-distance", 8, "chunk streaming radius")
	workers := flag.Int("workers", 0, "worker pool size (0 = derive from CPU count)")
	maxUploads := flag.Int("max-uploads", 4, "GPU uploads per frame")
	batchRebuilds := flag.Int("batch-rebuilds", 2, "batch rebuilds per frame")
	flag.Parse()

	engine, err := render.NewEngine(render.DefaultConfig())
	if err != nil {
		fmt.Fprintf(os.Stderr, "engine init: %v\n", err)
		os.Exit(1)
	}
	defer engine.Cleanup()

	material, err := render.NewMaterial(render.DefaultVoxelVertexShader, render.DefaultVoxelFragmentShader)
	if err != nil {
		fmt.Fprintf(os.Stderr, "shader compile: %v\n", err)
		os.Exit(1)
	}
	defer material.Delete()

	sky, err := render.NewSky()
	if err != nil {
		fmt.Fprintf(os.Stderr, "sky init: %v\n", err)
		os.Exit(1)
	}
	defer sky.Cleanup()

	cfg := world.DefaultConfig(*seed)
	cfg.ViewDistance = *viewDistance
	cfg.WorkerCount = *workers
	cfg.MaxUploadsPerFrame = *maxUploads
	cfg.BatchRebuildsPerFrame = *batchRebuilds

	w := world.New(cfg, render.GridAtlas{}, render.NewUploader(), nil)
	defer w.Close()

	hud := render.NewDebugHUD()
	defer hud.Delete()

	camera := engine.GetCamera()
	camera.SetPosition(mgl32.Vec3{0, 80, 0})

	engine.SetCursorMode(true)

	engine.Run(func(dt float32) {
		sky.Update(dt)

		cx, cz := world.WorldToChunk(int(camera.Position.X()), int(camera.Position.Z()))
		w.Update(int32(cx), int32(cz), dt)

		handleInteraction(w, engine, camera)

		stats := w.GetStats()
		hud.SetText(fmt.Sprintf("chunks=%d dirty=%d batches=%d water=%d decay=%d",
			stats.LoadedChunks, stats.DirtyChunks, stats.BatchCount, stats.WaterPending, stats.DecayPending))
	}, func() {
		view := camera.GetViewMatrix()
		projection := mgl32.Perspective(mgl32.DegToRad(camera.FOV), engine.AspectRatio(), 0.1, 1000.0)

		sky.Render(projection.Mul4(view).Inv(), camera.Position)

		material.Bind(view, projection, camera.Position, sky.TimeOfDay, *viewDistance, isUnderwater(w, camera), float32(glfw.GetTime()))

		for _, d := range w.RenderOpaque(sky.TimeOfDay, [3]float32{camera.Position.X(), camera.Position.Y(), camera.Position.Z()}, false) {
			d.Mesh.Draw()
		}
		for _, d := range w.RenderTransparent(sky.TimeOfDay, [3]float32{camera.Position.X(), camera.Position.Y(), camera.Position.Z()}, false) {
			d.Mesh.Draw()
		}
	})
}

func isUnderwater(w *world.World, camera *render.Camera) bool {
	bx, by, bz := int(camera.Position.X()), int(camera.Position.Y()), int(camera.Position.Z())
	return w.GetBlock(bx, by, bz).IsLiquid()
}

const reachDistance = 6.0

func handleInteraction(w *world.World, engine *render.Engine, camera *render.Camera) {
	input := engine.GetInput()

	hit := w.Raycast(camera.Position, camera.Front, reachDistance)
	if !hit.Hit {
		return
	}

	if input.IsMouseButtonPressed(glfw.MouseButtonLeft) {
		w.SetBlock(hit.BlockPos[0], hit.BlockPos[1], hit.BlockPos[2], block.Air)
	}
	if input.IsMouseButtonPressed(glfw.MouseButtonRight) {
		place := world.PlacementPosition(hit)
		w.SetBlock(place[0], place[1], place[2], block.Stone)
	}
}
