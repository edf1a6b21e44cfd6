package viewer

import "strconv"

// State is the single source of truth for which content set is active.
type State int

const (
	StateMenu State = iota
	StateScenarioA
	StateScenarioB
)

// States lists every valid state in declaration order.
var States = []State{StateMenu, StateScenarioA, StateScenarioB}

func (s State) String() string {
	switch s {
	case StateMenu:
		return "MENU"
	case StateScenarioA:
		return "SCENARIO_1"
	case StateScenarioB:
		return "SCENARIO_2"
	}
	return "State(" + strconv.Itoa(int(s)) + ")"
}

// Valid reports whether s is one of the declared states.
func (s State) Valid() bool {
	switch s {
	case StateMenu, StateScenarioA, StateScenarioB:
		return true
	}
	return false
}

// IsScenario reports whether s is one of the two content states.
func (s State) IsScenario() bool {
	return s == StateScenarioA || s == StateScenarioB
}

// ParseState accepts the String form or a short alias ("menu", "house",
// "character").
func ParseState(name string) (State, bool) {
	switch name {
	case "MENU", "menu", "":
		return StateMenu, true
	case "SCENARIO_1", "scenario_1", "house", "a":
		return StateScenarioA, true
	case "SCENARIO_2", "scenario_2", "character", "b":
		return StateScenarioB, true
	}
	return StateMenu, false
}

// scenarioFile names the description loaded by the per-state setup.
func scenarioFile(s State) string {
	switch s {
	case StateMenu:
		return "menu.yaml"
	case StateScenarioA:
		return "house.yaml"
	case StateScenarioB:
		return "character.yaml"
	}
	return ""
}
