package items

import (
	"testing"
)

type stubComponent string

func (s stubComponent) Nid() string { return string(s) }

func TestGetAndHas(t *testing.T) {
	item := New("iron_sword", "Iron Sword", stubComponent("weapon"), stubComponent("uses"))

	if !item.Has("uses") {
		t.Fatalf("expected uses component to be attached")
	}
	if item.Has("heal") {
		t.Errorf("did not expect heal component")
	}
	c, ok := item.Get("weapon")
	if !ok || c.Nid() != "weapon" {
		t.Errorf("Get(weapon) = %v, %v", c, ok)
	}
}

func TestStrikers(t *testing.T) {
	single := New("bow", "Bow")
	if got := single.Strikers(); len(got) != 1 || got[0] != single {
		t.Errorf("single item should strike as itself, got %v", got)
	}

	multi := New("twin", "Twin Blades")
	multi.Owner = "eirika"
	a, b := New("blade_a", "Blade A"), New("blade_b", "Blade B")
	multi.AddSubItem(a)
	multi.AddSubItem(b)

	got := multi.Strikers()
	if len(got) != 2 || got[0] != a || got[1] != b {
		t.Fatalf("multi item strikers = %v", got)
	}
	if a.Parent != multi || b.Owner != "eirika" {
		t.Errorf("sub-item not linked to parent: parent=%v owner=%q", a.Parent, b.Owner)
	}
}

func TestValue(t *testing.T) {
	item := New("vulnerary", "Vulnerary")
	item.Data["uses"] = 3
	if item.Value("uses") != 3 || item.Value("cooldown") != 0 {
		t.Errorf("unexpected data values: %v", item.Data)
	}

	var bare Item
	if bare.Value("uses") != 0 {
		t.Errorf("nil data bag should read as 0")
	}
}

func TestString(t *testing.T) {
	var none *Item
	tests := []struct {
		item *Item
		want string
	}{
		{none, "<no item>"},
		{New("axe", "Steel Axe"), "Steel Axe"},
		{New("axe", ""), "item(axe)"},
	}
	for _, tt := range tests {
		if got := tt.item.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
