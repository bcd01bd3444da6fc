package main

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	"github.com/kvesten/tankrange/arena"
	"github.com/kvesten/tankrange/common"
	"github.com/kvesten/tankrange/prefab"
)

const (
	baseWidth  = 1280
	baseHeight = 720

	worldScale = 8 // pixels per world unit in the top-down debug view
)

type Game struct {
	frames int

	input   *Input
	arena   *arena.Arena
	watcher *prefab.Watcher

	camX float32
	won  bool
}

func NewGame(watch bool) *Game {
	cfg := arena.DefaultConfig()
	if spec, err := prefab.LoadVehicleSpec(); err != nil {
		log.Printf("Game: vehicle spec: %v, using defaults", err)
	} else {
		cfg.Vehicle = spec.Tuning()
	}
	if spec, err := prefab.LoadProjectileSpec(); err != nil {
		log.Printf("Game: projectile spec: %v, using defaults", err)
	} else {
		cfg.Projectile = spec.Tuning()
	}

	g := &Game{
		input: NewInput(),
	}
	cfg.OnGoal = func() { g.won = true }
	g.arena = arena.New(cfg)

	if watch {
		w, err := prefab.NewWatcher("prefab")
		if err != nil {
			log.Printf("Game: spec watcher: %v, hot reload disabled", err)
		} else {
			g.watcher = w
		}
	}

	return g
}

func (g *Game) Update() error {
	g.frames++

	g.drainSpecEvents()

	g.input.Update()
	g.arena.Step(g.input.Intent(), 1.0/60)

	return nil
}

func (g *Game) drainSpecEvents() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case name, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			log.Printf("Game: spec changed: %s", name)
			if spec, err := prefab.LoadVehicleSpec(); err == nil {
				g.arena.ApplyVehicleTuning(spec.Tuning())
			}
			if spec, err := prefab.LoadProjectileSpec(); err == nil {
				g.arena.ApplyProjectileTuning(spec.Tuning())
			}
		case err, ok := <-g.watcher.Errors:
			if ok {
				log.Printf("Game: spec watcher: %v", err)
			}
			return
		default:
			return
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	vpos := g.arena.Vehicle().Position()
	g.camX = common.Lerp(g.camX, vpos.X(), 0.1)

	// Top-down debug view: world x maps to screen x, world z runs up-screen.
	toScreen := func(x, z float32) (float32, float32) {
		return baseWidth/2 + (x-g.camX)*worldScale, baseHeight - 80 - z*worldScale
	}

	for _, t := range g.arena.Roster().Snapshot() {
		body := t.Body()
		if body == nil {
			continue
		}
		pos := body.Position()
		px, py := toScreen(pos.X(), pos.Z())
		vector.DrawFilledCircle(screen, px, py, worldScale, colornames.Orange, true)
	}

	for _, p := range g.arena.Projectiles() {
		pos := p.Position()
		px, py := toScreen(pos.X(), pos.Z())
		vector.DrawFilledCircle(screen, px, py, worldScale/2, colornames.White, true)
	}

	fwd := g.arena.Vehicle().Forward()
	vx, vy := toScreen(vpos.X(), vpos.Z())
	bodyColor := colornames.Lightgreen
	if !g.arena.CooldownReady() {
		bodyColor = colornames.Gray
	}
	vector.DrawFilledCircle(screen, vx, vy, worldScale, bodyColor, true)
	vector.StrokeLine(screen, vx, vy, vx+fwd.X()*3*worldScale, vy-fwd.Z()*3*worldScale, 2, colornames.Lightgreen, true)

	status := fmt.Sprintf("Frames: %d    FPS: %.2f    Targets: %d", g.frames, ebiten.ActualFPS(), g.arena.Roster().Len())
	if g.won {
		status += "    GOAL!"
	}
	ebitenutil.DebugPrint(screen, status)
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
