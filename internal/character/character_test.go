package character

import (
	"testing"

	"tactics/internal/items"
)

func TestNewUnitStartsAtFullHP(t *testing.T) {
	u := NewUnit("seth", "Seth", "player", map[string]int{"HP": 30, "STR": 14})

	if u.HP != 30 || u.MaxHP() != 30 {
		t.Fatalf("Expected HP 30/30, got %d/%d", u.HP, u.MaxHP())
	}
	if !u.Alive() {
		t.Errorf("Expected new unit to be alive")
	}

	u.HP = 0
	if u.Alive() {
		t.Errorf("Expected unit at 0 HP to be dead")
	}
}

func TestActionStateOrdering(t *testing.T) {
	tests := []struct {
		state                            ActionState
		moved, traded, attacked, finished bool
	}{
		{StateNone, false, false, false, false},
		{StateMoved, true, false, false, false},
		{StateTraded, true, true, false, false},
		{StateAttacked, true, true, true, false},
		{StateFinished, true, true, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.state.String(), func(t *testing.T) {
			if tt.state.HasMoved() != tt.moved || tt.state.HasTraded() != tt.traded ||
				tt.state.HasAttacked() != tt.attacked || tt.state.IsFinished() != tt.finished {
				t.Errorf("unexpected implied flags for %s", tt.state)
			}
		})
	}
}

func TestGiveItemSetsOwner(t *testing.T) {
	u := NewUnit("eirika", "Eirika", "player", nil)
	multi := items.New("twin", "Twin")
	multi.AddSubItem(items.New("a", "A"))

	u.GiveItem(multi)

	if u.Item("twin") != multi {
		t.Fatalf("Expected item lookup to find the given item")
	}
	if multi.Owner != "eirika" || multi.SubItems[0].Owner != "eirika" {
		t.Errorf("Expected owner to propagate, got %q / %q", multi.Owner, multi.SubItems[0].Owner)
	}
	if u.Item("missing") != nil {
		t.Errorf("Expected nil for a missing item")
	}
}

func TestSkillsAndTags(t *testing.T) {
	u := NewUnit("garcia", "Garcia", "player", nil)
	u.Skills = append(u.Skills, NewSkill("vantage", "Vantage"))
	u.Tags = []string{"armor"}

	if !u.HasSkill("vantage") || u.HasSkill("canto") {
		t.Errorf("unexpected skill lookup results")
	}
	if !u.HasTag("armor") || u.HasTag("flying") {
		t.Errorf("unexpected tag lookup results")
	}
}

func TestPositionDistance(t *testing.T) {
	a, b := Position{X: 1, Y: 1}, Position{X: 3, Y: 0}
	if d := a.Distance(b); d != 3 {
		t.Errorf("Expected distance 3, got %d", d)
	}
}

func TestRoster(t *testing.T) {
	r := NewRoster()
	first := NewUnit("a", "A", "player", nil)
	r.Add(first)
	r.Add(NewUnit("b", "B", "enemy", nil))
	replacement := NewUnit("a", "A2", "player", nil)
	r.Add(replacement)

	if r.Len() != 2 {
		t.Fatalf("Expected 2 units, got %d", r.Len())
	}
	got, ok := r.Get("a")
	if !ok || got != replacement {
		t.Errorf("Expected replacement unit for id a")
	}
	if r.Units()[0] != replacement {
		t.Errorf("Expected replacement to keep insertion slot")
	}
	if _, ok := r.Get("z"); ok {
		t.Errorf("Expected missing id lookup to fail")
	}
}
