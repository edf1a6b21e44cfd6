package main

import (
	"log"
	"path/filepath"
	"time"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/vrviewer/config"
	"github.com/milk9111/vrviewer/ecs/system"
	"github.com/milk9111/vrviewer/scenes"
	"github.com/milk9111/vrviewer/viewer"
)

type Game struct {
	cfg config.Config

	session *viewer.Session
	input   *system.InputSystem
	render  *system.RenderSystem
	ui      *ebitenui.UI
	flat    *FlatUI
	debug   *DebugOverlay
	watcher *scenes.Watcher

	last   time.Time
	frames int
}

func NewGame(cfg config.Config) *Game {
	vc := cfg.Viewer()
	g := &Game{
		cfg:     cfg,
		session: viewer.NewSession(vc),
		input:   system.NewInputSystem(),
		render:  system.NewRenderSystem(vc.DwellThreshold),
	}
	if cfg.Debug {
		g.debug = NewDebugOverlay()
	}

	g.flat = NewFlatUI(g)
	g.ui = g.flat.UI()
	g.session.OnVisibility(g.flat.Apply)

	if cfg.HotReload {
		w, err := scenes.NewWatcher(scenes.Dir, filepath.Join(scenes.Dir, "scripts"))
		if err != nil {
			log.Printf("hot reload disabled: %v", err)
		} else {
			g.watcher = w
		}
	}

	g.session.TransitionTo(cfg.Initial())
	if cfg.Immersive {
		g.setPresenting(true)
	}
	return g
}

func (g *Game) Update() error {
	g.frames++

	now := time.Now()
	dt := time.Second / time.Duration(ebiten.TPS())
	if !g.last.IsZero() {
		dt = now.Sub(g.last)
	}
	g.last = now

	g.handleKeys()
	g.input.Update(g.session.World())
	g.session.OnFrame(dt)
	g.drainWatcher()

	g.ui.Update()
	return nil
}

func (g *Game) handleKeys() {
	if inpututil.IsKeyJustPressed(ebiten.KeyV) {
		g.setPresenting(!g.session.Presenting())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) && g.session.Presenting() {
		g.setPresenting(false)
	}
	if g.debug != nil && inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.debug.CopyCameraPose(g.session)
	}
}

// setPresenting enters or leaves immersive mode. The cursor is captured
// while presenting so mouse motion drives the head.
func (g *Game) setPresenting(on bool) {
	if on {
		ebiten.SetCursorMode(ebiten.CursorModeCaptured)
	} else {
		ebiten.SetCursorMode(ebiten.CursorModeVisible)
	}
	g.session.SetPresenting(on)
}

func (g *Game) drainWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case batch, ok := <-g.watcher.Changes:
			if !ok {
				g.watcher = nil
				return
			}
			for _, path := range batch {
				if g.session.Uses(path) {
					log.Printf("reloading %s after change to %s", g.session.State(), path)
					g.session.Reload()
					break
				}
			}
		case err, ok := <-g.watcher.Errors:
			if ok && err != nil {
				log.Printf("scene watcher: %v", err)
			}
		default:
			return
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.render.Draw(g.session.World(), screen)
	g.ui.Draw(screen)
	if g.debug != nil {
		g.debug.Draw(screen, g.session)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.session.Resize(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

func (g *Game) Close() {
	g.session.Close()
	if g.watcher != nil {
		if err := g.watcher.Close(); err != nil {
			log.Printf("scene watcher close: %v", err)
		}
	}
}
