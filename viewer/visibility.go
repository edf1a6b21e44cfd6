package viewer

// Visibility says which presentation's UI is shown. Exactly one of the flat
// controls or the 3D collection is visible at any time.
type Visibility struct {
	Presenting       bool
	MenuControls     bool
	ScenarioControls bool
	Interactables    bool
	Reticle          bool

	// SwitchLabel/SwitchTarget drive the flat "other scenario" button.
	SwitchLabel  string
	SwitchTarget State
}

// FlatControls reports whether any flat control group is shown.
func (v Visibility) FlatControls() bool {
	return v.MenuControls || v.ScenarioControls
}

// Reconcile decides the UI for a presentation mode and state.
func Reconcile(presenting bool, st State) Visibility {
	v := Visibility{
		Presenting:    presenting,
		Interactables: presenting,
		Reticle:       presenting,
	}
	if !presenting {
		v.MenuControls = st == StateMenu
		v.ScenarioControls = st.IsScenario()
	}
	switch st {
	case StateMenu:
	case StateScenarioA:
		v.SwitchLabel = "View Character (critter)"
		v.SwitchTarget = StateScenarioB
	case StateScenarioB:
		v.SwitchLabel = "View Scenery (house)"
		v.SwitchTarget = StateScenarioA
	}
	return v
}
