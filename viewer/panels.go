package viewer

import (
	"log"
	"sort"

	"github.com/milk9111/vrviewer/ecs/component"
	"github.com/milk9111/vrviewer/ecs/entity"
)

type panelDef struct {
	text   string
	action component.ActionID
}

// panelSet is the collection each state shows: the menu offers both
// scenarios; a scenario offers the menu and the other scenario.
func panelSet(st State) []panelDef {
	switch st {
	case StateMenu:
		return []panelDef{
			{"View House", component.ActionGoToScenarioA},
			{"View Character", component.ActionGoToScenarioB},
		}
	case StateScenarioA:
		return []panelDef{
			{"Back to Menu", component.ActionGoToMenu},
			{"View Character", component.ActionGoToScenarioB},
		}
	case StateScenarioB:
		return []panelDef{
			{"Back to Menu", component.ActionGoToMenu},
			{"View Scenery", component.ActionGoToScenarioA},
		}
	}
	return nil
}

func (s *Session) populatePanels(st State) {
	if !s.anchor.Valid() {
		return
	}
	for i, def := range panelSet(st) {
		if _, err := entity.NewPanel(s.world, s.anchor, i, def.text, def.action, s.cfg.HoverScale); err != nil {
			log.Printf("viewer: %s: %v", st, err)
		}
	}
}

func sortPanels(panels []component.Panel) {
	sort.SliceStable(panels, func(i, j int) bool { return panels[i].Order < panels[j].Order })
}
