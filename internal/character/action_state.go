package character

// ActionState tracks how far a unit has progressed through its turn.
// The states are totally ordered: a unit that has attacked has also traded
// and moved.
type ActionState int

const (
	StateNone ActionState = iota
	StateMoved
	StateTraded
	StateAttacked
	StateFinished
)

func (s ActionState) String() string {
	switch s {
	case StateNone:
		return "none"
	case StateMoved:
		return "moved"
	case StateTraded:
		return "traded"
	case StateAttacked:
		return "attacked"
	case StateFinished:
		return "finished"
	default:
		return "unknown"
	}
}

func (s ActionState) HasMoved() bool    { return s >= StateMoved }
func (s ActionState) HasTraded() bool   { return s >= StateTraded }
func (s ActionState) HasAttacked() bool { return s >= StateAttacked }
func (s ActionState) IsFinished() bool  { return s >= StateFinished }
