// Package gui is the raylib window for a particle world: preset menu,
// camera controls and a timing overlay.
package gui

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync"
	"sync/atomic"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/plife/internal/audio"
	"github.com/san-kum/plife/internal/camera"
	"github.com/san-kum/plife/internal/compute"
	"github.com/san-kum/plife/internal/config"
	"github.com/san-kum/plife/internal/life"
	"github.com/san-kum/plife/internal/metrics"
	"github.com/san-kum/plife/internal/sim"
)

const (
	screenWidth  = 1280
	screenHeight = 720
	fontPath     = "/usr/share/fonts/liberation/LiberationMono-Regular.ttf"

	RandomForceMin float32 = -0.3
	RandomForceMax float32 = 1.0
	KickAmount     float32 = 50

	maxTelemetry = 200
)

var (
	ColBg      = rl.NewColor(10, 10, 10, 255)
	ColAccent  = rl.NewColor(180, 180, 180, 255)
	ColSelect  = rl.NewColor(255, 255, 255, 255)
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
	ColBorder  = rl.NewColor(30, 30, 30, 255)
)

type Options struct {
	Audio bool
}

type App struct {
	World  *sim.World
	Name   string
	Camera *camera.Camera
	Font   rl.Font
	Audio  *audio.Processor

	InMenu   bool
	Presets  []string
	Selected int
	Err      error

	ShowHUD   bool
	Telemetry []float64

	running   atomic.Bool
	tickTimer *sim.Timer
	drawTimer *sim.Timer
	tickAvg   time.Duration
	drawAvg   time.Duration

	// ticks run on their own goroutine unless the backend needs the GL
	// context of the render thread
	inline bool
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func initWindow() {
	rl.InitWindow(screenWidth, screenHeight, "plife")
	rl.SetTargetFPS(60)
	rl.SetExitKey(0)
}

func loadFont() rl.Font {
	if _, err := os.Stat(fontPath); err != nil {
		return rl.GetFontDefault()
	}
	font := rl.LoadFontEx(fontPath, 32, nil, 0)
	rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
	return font
}

func newApp(opts Options) *App {
	a := &App{
		Camera:    camera.New(),
		Font:      loadFont(),
		Presets:   config.ListPresets(),
		ShowHUD:   true,
		Telemetry: make([]float64, 0, maxTelemetry),
		tickTimer: sim.NewTimer(sim.DefaultTimerWindow),
		drawTimer: sim.NewTimer(sim.DefaultTimerWindow),
	}
	if opts.Audio {
		proc := audio.NewProcessor()
		if err := proc.Start(); err != nil {
			log.Printf("gui: audio disabled: %v", err)
		} else {
			a.Audio = proc
		}
	}
	return a
}

// Run opens a window on the world built from cfg. The world is built after
// the window exists so GPU backends find a current GL context.
func Run(cfg *config.Config, name string, opts Options) error {
	initWindow()
	defer rl.CloseWindow()

	app := newApp(opts)
	defer app.Close()
	if err := app.load(cfg, name); err != nil {
		return err
	}
	app.RunLoop()
	return nil
}

// RunInteractive starts at the preset menu.
func RunInteractive(opts Options) error {
	initWindow()
	defer rl.CloseWindow()

	app := newApp(opts)
	defer app.Close()
	app.InMenu = true
	app.RunLoop()
	return nil
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		if a.Update() {
			return
		}
		a.Draw()
	}
}

func (a *App) load(cfg *config.Config, name string) error {
	world, err := cfg.Build()
	if err != nil {
		return err
	}
	log.Printf("gui: %s with %d particles on %s", name, world.Len(), world.Backend().Name())

	a.World, a.Name = world, name
	a.Camera = camera.New()
	a.Telemetry = a.Telemetry[:0]
	a.tickAvg, a.drawAvg = 0, 0
	a.running.Store(true)
	_, a.inline = world.Backend().(*compute.OpenGLBackend)
	if !a.inline {
		ctx, cancel := context.WithCancel(context.Background())
		a.cancel = cancel
		a.wg.Add(1)
		go a.simulate(ctx)
	}
	return nil
}

// unload stops the tick goroutine and releases the world.
func (a *App) unload() {
	if a.cancel != nil {
		a.cancel()
		a.wg.Wait()
		a.cancel = nil
	}
	if a.World != nil {
		a.World.Close()
		a.World = nil
	}
}

func (a *App) Close() {
	a.unload()
	if a.Audio != nil {
		a.Audio.Stop()
	}
}

func (a *App) simulate(ctx context.Context) {
	defer a.wg.Done()
	for ctx.Err() == nil {
		if !a.running.Load() {
			time.Sleep(10 * time.Millisecond)
			continue
		}
		a.step()
	}
}

func (a *App) step() {
	stop := a.tickTimer.Start()
	a.World.Tick()
	stop()
}

// Update maps input for one frame and reports whether the app should quit.
func (a *App) Update() bool {
	if a.InMenu {
		return a.updateMenu()
	}

	if rl.IsKeyPressed(rl.KeyQ) {
		return true
	}
	if rl.IsKeyPressed(rl.KeyEscape) {
		a.unload()
		a.InMenu = true
		return false
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		a.running.Store(!a.running.Load())
	}
	if rl.IsKeyPressed(rl.KeyOne) {
		a.World.RandomizeForces(RandomForceMin, RandomForceMax)
		a.World.AccelerateAll(KickAmount)
	}
	if rl.IsKeyPressed(rl.KeyTwo) {
		a.World.ResetForces()
	}
	if rl.IsKeyPressed(rl.KeyH) {
		a.ShowHUD = !a.ShowHUD
	}
	if rl.IsKeyPressed(rl.KeyC) {
		p := a.World.Params()
		a.Camera.Center(life.Vec{p.Width / 2, p.Height / 2}, float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight()))
	}

	a.updateCamera()

	if a.inline && a.running.Load() {
		a.step()
	}
	if avg, ok := a.tickTimer.Average(); ok {
		a.tickAvg = avg
	}

	snapshot := a.World.Snapshot()
	a.Telemetry = append(a.Telemetry, metrics.Kinetic(snapshot))
	if len(a.Telemetry) > maxTelemetry {
		a.Telemetry = a.Telemetry[1:]
	}
	if a.Audio != nil {
		a.Audio.Observe(snapshot)
	}
	return false
}

func (a *App) updateCamera() {
	keys := []struct {
		keys []int32
		dir  camera.Direction
	}{
		{[]int32{rl.KeyW, rl.KeyUp}, camera.Up},
		{[]int32{rl.KeyS, rl.KeyDown}, camera.Down},
		{[]int32{rl.KeyA, rl.KeyLeft}, camera.Left},
		{[]int32{rl.KeyD, rl.KeyRight}, camera.Right},
	}
	for _, k := range keys {
		for _, key := range k.keys {
			if rl.IsKeyDown(key) {
				a.Camera.Move(k.dir)
				break
			}
		}
	}

	if rl.IsMouseButtonDown(rl.MouseRightButton) {
		delta := rl.GetMouseDelta()
		a.Camera.Position = a.Camera.Position.Sub(life.Vec{delta.X, delta.Y}.Mul(1 / a.Camera.Scale))
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		a.Camera.Zoom(wheel)
	}
	if rl.IsKeyPressed(rl.KeyEqual) {
		a.Camera.Zoom(1)
	}
	if rl.IsKeyPressed(rl.KeyMinus) {
		a.Camera.Zoom(-1)
	}
}

func (a *App) updateMenu() bool {
	switch {
	case rl.IsKeyPressed(rl.KeyQ):
		return true
	case rl.IsKeyPressed(rl.KeyDown) || rl.IsKeyPressed(rl.KeyJ):
		a.Selected = min(a.Selected+1, len(a.Presets)-1)
	case rl.IsKeyPressed(rl.KeyUp) || rl.IsKeyPressed(rl.KeyK):
		a.Selected = max(a.Selected-1, 0)
	case rl.IsKeyPressed(rl.KeyEnter):
		name := a.Presets[a.Selected]
		if err := a.load(config.GetPreset(name), name); err != nil {
			a.Err = err
			return false
		}
		a.Err = nil
		a.InMenu = false
	}
	return false
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	if a.InMenu {
		a.drawMenu()
	} else {
		stop := a.drawTimer.Start()
		a.drawWorld()
		stop()
		if avg, ok := a.drawTimer.Average(); ok {
			a.drawAvg = avg
		}
		if a.ShowHUD {
			a.DrawHUD()
		}
	}

	rl.EndDrawing()
}

func (a *App) DrawHUD() {
	a.drawText("plife", 30, 30, 24, ColSelect)
	a.drawText(fmt.Sprintf(":: %s", a.Name), 110, 34, 16, ColText)

	status, col := "RUNNING", ColSelect
	if !a.running.Load() {
		status, col = "PAUSED", ColTextDim
	}
	a.drawText(status, 1150, 30, 16, col)

	lines := []string{
		fmt.Sprintf("particles  %d", a.World.Len()),
		fmt.Sprintf("mode       %s", a.World.Mode()),
		fmt.Sprintf("backend    %s", a.World.Backend().Name()),
		fmt.Sprintf("tick       %s", formatAverage(a.tickAvg)),
		fmt.Sprintf("draw       %s", formatAverage(a.drawAvg)),
		fmt.Sprintf("zoom       %.2fx", a.Camera.Scale),
	}
	for i, l := range lines {
		a.drawText(l, 30, 70+i*20, 14, ColText)
	}

	a.DrawTelemetry()

	if a.Audio != nil {
		l := a.Audio.Levels()
		a.drawText(fmt.Sprintf("AUDIO %s", levelBar((l.Bass+l.Mid+l.High)/3, 20)), 30, 650, 14, ColAccent)
	}

	a.drawText("[SPACE] PAUSE  [1] RANDOM  [2] RESET  [WASD] PAN  [+/-] ZOOM  [H] HUD  [ESC] MENU  [Q] QUIT", 420, 680, 14, ColTextDim)
	a.drawText(fmt.Sprintf("%d FPS", rl.GetFPS()), 30, 680, 14, ColTextDim)
}

func (a *App) drawText(text string, x, y int, size int, color rl.Color) {
	rl.DrawTextEx(a.Font, text, rl.NewVector2(float32(x), float32(y)), float32(size), 1, color)
}

func (a *App) drawMenu() {
	a.drawText("plife", 50, 50, 40, ColSelect)
	a.drawText("Select Preset", 50, 100, 16, ColTextDim)

	y := 160
	for i, name := range a.Presets {
		if i == a.Selected {
			a.drawText(fmt.Sprintf("> %s", name), 50, y, 20, ColSelect)
		} else {
			a.drawText(fmt.Sprintf("  %s", name), 50, y, 20, ColText)
		}
		y += 28
	}
	if a.Err != nil {
		a.drawText(a.Err.Error(), 50, y+20, 16, rl.Red)
	}

	a.drawText("ARROWS: NAVIGATE  ENTER: SELECT  Q: QUIT", 850, 680, 14, ColTextDim)
}

func formatAverage(d time.Duration) string {
	if d == 0 {
		return "measuring"
	}
	return d.Round(time.Microsecond).String()
}
