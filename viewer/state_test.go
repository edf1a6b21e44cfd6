package viewer

import "testing"

func TestParseState(t *testing.T) {
	cases := []struct {
		in   string
		want State
		ok   bool
	}{
		{"", StateMenu, true},
		{"MENU", StateMenu, true},
		{"house", StateScenarioA, true},
		{"SCENARIO_2", StateScenarioB, true},
		{"character", StateScenarioB, true},
		{"garden", StateMenu, false},
	}
	for _, c := range cases {
		got, ok := ParseState(c.in)
		if got != c.want || ok != c.ok {
			t.Fatalf("ParseState(%q) = %s,%v want %s,%v", c.in, got, ok, c.want, c.ok)
		}
	}
}

func TestEveryStateHasContent(t *testing.T) {
	for _, st := range States {
		if scenarioFile(st) == "" {
			t.Fatalf("%s has no scenario file", st)
		}
		if len(panelSet(st)) != 2 {
			t.Fatalf("%s must offer two panels", st)
		}
		for _, def := range panelSet(st) {
			next, ok := stateFor(def.action)
			if !ok || next == st {
				t.Fatalf("%s panel %q must lead to another state", st, def.text)
			}
		}
	}
	if State(9).Valid() || State(9).String() != "State(9)" {
		t.Fatalf("unexpected handling of an undeclared state")
	}
}

func TestEmbeddedScenariosLoad(t *testing.T) {
	for _, st := range States {
		spec, err := loadScenario(st)
		if err != nil {
			t.Fatalf("%s: %v", st, err)
		}
		if spec == nil {
			t.Fatalf("%s: nil scenario", st)
		}
	}
}

func TestSessionUses(t *testing.T) {
	s := newTestSession(t, newFakeLoader())
	s.TransitionTo(StateScenarioA)
	cases := []struct {
		path string
		want bool
	}{
		{"scenes/house.yaml", true},
		{"scenes/character.yaml", false},
		{"scenes/scripts/spin.tengo", true},
		{"scenes/notes.txt", false},
	}
	for _, c := range cases {
		if got := s.Uses(c.path); got != c.want {
			t.Fatalf("Uses(%q) = %v, want %v", c.path, got, c.want)
		}
	}
}
