package core

const (
	// DefaultSpeedKmh is the cruise speed of a generated plane.
	DefaultSpeedKmh = 50.0

	// DefaultBattery is the battery capacity in simulation seconds.
	// Older generators assigned 3600*3 and then overwrote it with 5000;
	// only the final value is kept.
	DefaultBattery = 5000.0
)

// KmhToMps converts a speed in km/h to the simulation's m/s.
func KmhToMps(kmh float64) float64 {
	return kmh / 3.6
}

// Plane is a mobile unit.
type Plane struct {
	Position
	Speed   float64 `json:"speed"`   // m/s
	Battery float64 `json:"battery"` // seconds of flight
}

// NewPlane creates a plane at pos.
func NewPlane(pos Position, speed, battery float64) *Plane {
	return &Plane{
		Position: pos,
		Speed:    speed,
		Battery:  battery,
	}
}

// Range returns the distance (m) the plane covers on a full battery.
func (p *Plane) Range() float64 {
	return p.Speed * p.Battery
}

// Station is a fixed service point.
type Station struct {
	Position
}

// NewStation creates a station at pos.
func NewStation(pos Position) *Station {
	return &Station{Position: pos}
}
