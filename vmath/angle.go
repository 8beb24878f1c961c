package vmath

// FullTurn is the number of integer degrees in one rotation
const FullTurn = 360

// MaxTilt bounds look up/down in degrees, keeps the horizon on screen
const MaxTilt = 45

// Angle is an integer heading in degrees, always in [0, 360)
// Construct through NormalizeAngle so the range holds structurally
type Angle uint16

// NormalizeAngle wraps any integer degree value into [0, 360)
func NormalizeAngle(deg int) Angle {
	deg %= FullTurn
	if deg < 0 {
		deg += FullTurn
	}
	return Angle(deg)
}

// Add rotates clockwise by deg, wrapping
func (a Angle) Add(deg int) Angle {
	return NormalizeAngle(int(a) + deg)
}

// Sub rotates counter-clockwise by deg, wrapping
func (a Angle) Sub(deg int) Angle {
	return NormalizeAngle(int(a) - deg)
}

// Int returns the angle as a plain int in [0, 360)
func (a Angle) Int() int { return int(a) }

// Tilt is a vertical look angle in degrees, always in [-MaxTilt, MaxTilt]
type Tilt int8

// ClampTilt bounds deg to [-MaxTilt, MaxTilt], no wrap
func ClampTilt(deg int) Tilt {
	if deg > MaxTilt {
		deg = MaxTilt
	}
	if deg < -MaxTilt {
		deg = -MaxTilt
	}
	return Tilt(deg)
}

// Add adjusts tilt by deg and clamps
func (t Tilt) Add(deg int) Tilt {
	return ClampTilt(int(t) + deg)
}

// Int returns the tilt as a plain int
func (t Tilt) Int() int { return int(t) }
