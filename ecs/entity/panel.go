package entity

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/vrviewer/ecs"
	"github.com/milk9111/vrviewer/ecs/component"
)

const (
	PanelWidth   = 1.0
	PanelHeight  = 0.25
	panelTopY    = 0.3
	panelSpacing = 0.3
)

// NewPanelAnchor creates the group every panel of a collection hangs from.
// It starts hidden; the visibility reconciler shows it.
func NewPanelAnchor(w *ecs.World, pos mgl64.Vec3) (ecs.Entity, error) {
	anchor := w.CreateEntity()
	if err := ecs.Add(w, anchor, component.TransformComponent, component.NewTransform(pos)); err != nil {
		return 0, fmt.Errorf("panel anchor: add transform: %w", err)
	}
	if err := ecs.Add(w, anchor, component.InteractableGroupComponent, component.InteractableGroup{}); err != nil {
		return 0, fmt.Errorf("panel anchor: add group: %w", err)
	}
	return anchor, nil
}

// NewPanel adds the order-th panel of a collection. Panels stack downwards
// from 0.3 above the anchor.
func NewPanel(w *ecs.World, anchor ecs.Entity, order int, text string, action component.ActionID, hoverScale float64) (ecs.Entity, error) {
	e := w.CreateEntity()
	pos := mgl64.Vec3{0, panelTopY - float64(order)*panelSpacing, 0}
	if err := ecs.Add(w, e, component.TransformComponent, component.NewTransform(pos)); err != nil {
		return 0, fmt.Errorf("panel %s: add transform: %w", action, err)
	}
	if err := ecs.Add(w, e, component.ParentComponent, component.Parent{Entity: uint64(anchor)}); err != nil {
		return 0, fmt.Errorf("panel %s: add parent: %w", action, err)
	}
	if err := ecs.Add(w, e, component.InteractableComponent, component.Interactable{}); err != nil {
		return 0, fmt.Errorf("panel %s: add interactable: %w", action, err)
	}
	if err := ecs.Add(w, e, component.PanelComponent, component.Panel{
		Text:       text,
		Action:     action,
		Width:      PanelWidth,
		Height:     PanelHeight,
		BaseScale:  1,
		HoverScale: hoverScale,
		Order:      order,
	}); err != nil {
		return 0, fmt.Errorf("panel %s: add panel: %w", action, err)
	}
	return e, nil
}
