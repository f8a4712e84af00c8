// Package core defines the domain model for generated planes problems.
package core

// EntityKind classifies the entities placed in a problem area.
type EntityKind int

const (
	KindPlane   EntityKind = iota // Mobile unit with speed and battery
	KindTask                      // Timed unit of work
	KindStation                   // Fixed service point
)

func (k EntityKind) String() string {
	return [...]string{"plane", "task", "station"}[k]
}

// AllKinds returns every entity kind in assembly order.
func AllKinds() []EntityKind {
	return []EntityKind{KindPlane, KindTask, KindStation}
}

// Position is an integer location in the problem area (metres).
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Within reports whether p lies in [0,width) x [0,height).
func (p Position) Within(width, height int) bool {
	return p.X >= 0 && p.X < width && p.Y >= 0 && p.Y < height
}
