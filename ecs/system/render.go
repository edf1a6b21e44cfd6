package system

import (
	"image/color"
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/vrviewer/ecs"
	"github.com/milk9111/vrviewer/ecs/component"
	"golang.org/x/image/font/basicfont"
)

const (
	panelTexW = 512
	panelTexH = 128
)

var (
	panelInk   = color.NRGBA{R: 0x00, G: 0xff, B: 0xff, A: 0xff}
	reticleInk = color.NRGBA{R: 0x00, G: 0xff, B: 0xff, A: 0xcc}
)

// RenderSystem projects the scene with the camera rig's view and draws it:
// props and models as shaded wireframe boxes, then panels on top of
// everything, then the reticle.
type RenderSystem struct {
	DwellThreshold time.Duration

	face     text.Face
	textures map[string]*ebiten.Image
}

func NewRenderSystem(dwell time.Duration) *RenderSystem {
	return &RenderSystem{
		DwellThreshold: dwell,
		face:           text.NewGoXFace(basicfont.Face7x13),
		textures:       map[string]*ebiten.Image{},
	}
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil {
		return
	}

	if bgEnt, ok := w.First(component.BackgroundComponent.ID()); ok {
		bg, _ := ecs.Get(w, bgEnt, component.BackgroundComponent)
		screen.Fill(bg.Color)
	}

	cam, ok := w.First(component.CameraComponent.ID())
	if !ok {
		return
	}
	bounds := screen.Bounds()
	sw, sh := float64(bounds.Dx()), float64(bounds.Dy())
	vp := ViewProjection(w, cam)
	light := r.lightLevel(w)

	for _, e := range w.Query(component.PropComponent.ID(), component.TransformComponent.ID()) {
		prop, _ := ecs.Get(w, e, component.PropComponent)
		r.drawBox(screen, vp.Mul4(WorldMatrix(w, e)), prop.Size, shade(prop.Color, light), sw, sh)
	}

	for _, e := range w.Query(component.ModelComponent.ID(), component.TransformComponent.ID()) {
		model, _ := ecs.Get(w, e, component.ModelComponent)
		m := WorldMatrix(w, e)
		if anim, ok := ecs.Get(w, e, component.AnimatorComponent); ok && anim.Playing && anim.Duration > 0 {
			bob := model.Extent.Y() * 0.03 * math.Abs(math.Sin(2*math.Pi*anim.Time/anim.Duration*2))
			m = m.Mul4(mgl64.Translate3D(0, bob, 0))
		}
		// boxes are centred; lift the model so its base sits at the origin
		m = m.Mul4(mgl64.Translate3D(0, model.Extent.Y()/2, 0))
		r.drawBox(screen, vp.Mul4(m), model.Extent, shade(model.Color, light), sw, sh)
	}

	r.drawPanels(w, screen, vp, sw, sh)
	r.drawReticle(w, screen, cam, sw, sh)
}

func (r *RenderSystem) lightLevel(w *ecs.World) float64 {
	level := 0.0
	for _, e := range w.Query(component.AmbientLightComponent.ID()) {
		l, _ := ecs.Get(w, e, component.AmbientLightComponent)
		level += l.Intensity
	}
	for _, e := range w.Query(component.DirectionalLightComponent.ID()) {
		l, _ := ecs.Get(w, e, component.DirectionalLightComponent)
		level += l.Intensity * 0.3
	}
	return mgl64.Clamp(level, 0.15, 1)
}

func shade(c color.NRGBA, level float64) color.NRGBA {
	if c.A == 0 {
		c = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	}
	return color.NRGBA{
		R: uint8(float64(c.R) * level),
		G: uint8(float64(c.G) * level),
		B: uint8(float64(c.B) * level),
		A: c.A,
	}
}

func project(mvp mgl64.Mat4, p mgl64.Vec3, sw, sh float64) (float32, float32, bool) {
	clip := mvp.Mul4x1(p.Vec4(1))
	if clip.W() <= 1e-6 {
		return 0, 0, false
	}
	nx, ny := clip.X()/clip.W(), clip.Y()/clip.W()
	return float32((nx + 1) / 2 * sw), float32((1 - ny) / 2 * sh), true
}

var boxEdges = [12][2]int{
	{0, 1}, {1, 3}, {3, 2}, {2, 0},
	{4, 5}, {5, 7}, {7, 6}, {6, 4},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

func (r *RenderSystem) drawBox(screen *ebiten.Image, mvp mgl64.Mat4, size mgl64.Vec3, clr color.Color, sw, sh float64) {
	hx, hy, hz := size.X()/2, size.Y()/2, size.Z()/2
	var xs, ys [8]float32
	var ok [8]bool
	for i := 0; i < 8; i++ {
		corner := mgl64.Vec3{-hx, -hy, -hz}
		if i&1 != 0 {
			corner[0] = hx
		}
		if i&2 != 0 {
			corner[1] = hy
		}
		if i&4 != 0 {
			corner[2] = hz
		}
		xs[i], ys[i], ok[i] = project(mvp, corner, sw, sh)
	}
	for _, edge := range boxEdges {
		a, b := edge[0], edge[1]
		if !ok[a] || !ok[b] {
			continue
		}
		vector.StrokeLine(screen, xs[a], ys[a], xs[b], ys[b], 2, clr, true)
	}
}

func (r *RenderSystem) drawPanels(w *ecs.World, screen *ebiten.Image, vp mgl64.Mat4, sw, sh float64) {
	indices := []uint16{0, 1, 2, 1, 3, 2}
	for _, e := range w.Query(component.PanelComponent.ID(), component.TransformComponent.ID()) {
		if !groupVisible(w, e) {
			continue
		}
		panel, _ := ecs.Get(w, e, component.PanelComponent)
		mvp := vp.Mul4(WorldMatrix(w, e))
		hw, hh := panel.Width/2, panel.Height/2
		corners := [4]mgl64.Vec3{{-hw, hh, 0}, {hw, hh, 0}, {-hw, -hh, 0}, {hw, -hh, 0}}
		src := [4][2]float32{{0, 0}, {panelTexW, 0}, {0, panelTexH}, {panelTexW, panelTexH}}

		vertices := make([]ebiten.Vertex, 0, 4)
		visible := true
		for i, c := range corners {
			x, y, ok := project(mvp, c, sw, sh)
			if !ok {
				visible = false
				break
			}
			vertices = append(vertices, ebiten.Vertex{
				DstX: x, DstY: y,
				SrcX: src[i][0], SrcY: src[i][1],
				ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1,
			})
		}
		if !visible {
			continue
		}
		screen.DrawTriangles(vertices, indices, r.panelTexture(panel.Text), &ebiten.DrawTrianglesOptions{})
	}
}

func (r *RenderSystem) panelTexture(label string) *ebiten.Image {
	if img, ok := r.textures[label]; ok {
		return img
	}
	img := ebiten.NewImage(panelTexW, panelTexH)
	img.Fill(color.Black)
	vector.StrokeRect(img, 7.5, 7.5, panelTexW-15, panelTexH-15, 15, panelInk, false)

	op := &text.DrawOptions{}
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	op.GeoM.Scale(4, 4)
	op.GeoM.Translate(panelTexW/2, panelTexH/2)
	op.ColorScale.ScaleWithColor(panelInk)
	text.Draw(img, label, r.face, op)

	r.textures[label] = img
	return img
}

func (r *RenderSystem) drawReticle(w *ecs.World, screen *ebiten.Image, cam ecs.Entity, sw, sh float64) {
	ret, ok := ecs.Get(w, cam, component.ReticleComponent)
	if !ok || !ret.Visible || ret.Distance <= 0 {
		return
	}
	c, _ := ecs.Get(w, cam, component.CameraComponent)
	fov := c.FOV
	if fov <= 0 {
		fov = 70
	}
	// angular size of a disc of Radius at Distance, in pixels
	px := ret.Radius / ret.Distance / math.Tan(mgl64.DegToRad(fov)/2) * sh / 2
	cx, cy := float32(sw/2), float32(sh/2)
	vector.DrawFilledCircle(screen, cx, cy, float32(math.Max(px, 3)), reticleInk, true)

	cursor, _ := ecs.Get(w, cam, component.GazeCursorComponent)
	if cursor.Target == 0 || r.DwellThreshold <= 0 {
		return
	}
	progress := math.Min(1, float64(cursor.Dwell)/float64(r.DwellThreshold))
	ring := math.Max(px, 3) + 6
	const segments = 48
	n := int(progress * segments)
	for i := 0; i < n; i++ {
		a0 := -math.Pi/2 + 2*math.Pi*float64(i)/segments
		a1 := -math.Pi/2 + 2*math.Pi*float64(i+1)/segments
		vector.StrokeLine(screen,
			cx+float32(ring*math.Cos(a0)), cy+float32(ring*math.Sin(a0)),
			cx+float32(ring*math.Cos(a1)), cy+float32(ring*math.Sin(a1)),
			3, reticleInk, true)
	}
}
