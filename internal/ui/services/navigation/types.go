package navigation

// State holds all navigation-related state. Heights are in terminal rows.
type State struct {
	Cursor         int // -1 when nothing is selected
	ScrollTop      int
	ItemHeight     int // 0 until the first row has been measured
	ViewportHeight int
	Count          int
}

// Direction represents cursor movements
type Direction int

const (
	DirectionUp Direction = iota
	DirectionDown
	DirectionPageUp
	DirectionPageDown
)

func (d Direction) String() string {
	switch d {
	case DirectionUp:
		return "up"
	case DirectionDown:
		return "down"
	case DirectionPageUp:
		return "pageup"
	case DirectionPageDown:
		return "pagedown"
	default:
		return "unknown"
	}
}

// NoSelection is the cursor value when no row is highlighted
const NoSelection = -1
