package viewer

import (
	"log"

	"github.com/milk9111/vrviewer/ecs"
	"github.com/milk9111/vrviewer/ecs/component"
)

// stateFor maps a panel action to the state it selects.
func stateFor(action component.ActionID) (State, bool) {
	switch action {
	case component.ActionGoToMenu:
		return StateMenu, true
	case component.ActionGoToScenarioA:
		return StateScenarioA, true
	case component.ActionGoToScenarioB:
		return StateScenarioB, true
	}
	return StateMenu, false
}

// Select performs the transition an action asks for. Unrecognised actions
// are logged and ignored.
func (s *Session) Select(action component.ActionID) bool {
	next, ok := stateFor(action)
	if !ok {
		log.Printf("viewer: ignoring unknown action %q", action)
		return false
	}
	s.TransitionTo(next)
	return true
}

func (s *Session) dispatchSelections() {
	reqs := s.world.Query(component.SelectionRequestComponent.ID())
	if len(reqs) == 0 {
		return
	}
	actions := make([]component.ActionID, 0, len(reqs))
	for _, e := range reqs {
		req, _ := ecs.Get(s.world, e, component.SelectionRequestComponent)
		actions = append(actions, req.Action)
		s.world.DestroyEntity(e)
	}
	for _, action := range actions {
		if s.Select(action) {
			s.disarmGaze()
		}
	}
}
