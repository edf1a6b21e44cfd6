package main

import (
	"fmt"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/milk9111/vrviewer/ecs"
	"github.com/milk9111/vrviewer/ecs/component"
	"github.com/milk9111/vrviewer/scenes"
	"github.com/milk9111/vrviewer/viewer"
	"golang.design/x/clipboard"
)

// DebugOverlay prints the session state and copies the desktop camera pose
// to the clipboard as a scenario snippet.
type DebugOverlay struct {
	clipboardOK bool
	status      string
	statusUntil time.Time
}

func NewDebugOverlay() *DebugOverlay {
	d := &DebugOverlay{}
	if err := clipboard.Init(); err != nil {
		log.Printf("clipboard unavailable: %v", err)
	} else {
		d.clipboardOK = true
	}
	return d
}

func (d *DebugOverlay) CopyCameraPose(s *viewer.Session) {
	t, ok := ecs.Get(s.World(), s.Camera(), component.TransformComponent)
	if !ok {
		return
	}
	target, damping, _ := s.OrbitTarget()
	data, err := scenes.MarshalCameraPose(t.Position, target, damping)
	if err != nil {
		log.Printf("copy camera pose: %v", err)
		return
	}
	if !d.clipboardOK {
		log.Printf("camera pose:\n%s", data)
		d.flash("clipboard unavailable, pose logged")
		return
	}
	clipboard.Write(clipboard.FmtText, data)
	d.flash("camera pose copied")
}

func (d *DebugOverlay) flash(msg string) {
	d.status = msg
	d.statusUntil = time.Now().Add(2 * time.Second)
}

func (d *DebugOverlay) Draw(screen *ebiten.Image, s *viewer.Session) {
	ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.2f    state: %s    presenting: %v    dwell: %3.0f%%",
		ebiten.ActualFPS(), s.State(), s.Presenting(), s.DwellProgress()*100))
	if d.status != "" && time.Now().Before(d.statusUntil) {
		ebitenutil.DebugPrintAt(screen, d.status, 0, 16)
	}
}
