package component

// ActionID is the stable symbolic id a panel triggers when selected.
type ActionID string

const (
	ActionGoToScenarioA ActionID = "btn-to-env1"
	ActionGoToScenarioB ActionID = "btn-to-env2"
	ActionGoToMenu      ActionID = "btn-to-menu"
)

// Panel is a flat, labelled, selectable quad facing +Z in its local space.
type Panel struct {
	Text       string
	Action     ActionID
	Width      float64
	Height     float64
	BaseScale  float64
	HoverScale float64
	Order      int
}

var PanelComponent = NewComponent[Panel]()

// Interactable tags entities the gaze ray is cast against.
type Interactable struct{}

var InteractableComponent = NewComponent[Interactable]()

// InteractableGroup is the anchor every panel of the live collection is
// parented to.
type InteractableGroup struct {
	Visible bool
}

var InteractableGroupComponent = NewComponent[InteractableGroup]()

// SelectionRequest is a one-shot request emitted when a panel is selected.
// The viewer session drains these after the systems have run.
type SelectionRequest struct {
	Action ActionID
	Panel  uint64 // ecs.Entity
}

var SelectionRequestComponent = NewComponent[SelectionRequest]()
