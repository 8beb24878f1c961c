package vmath

import (
	"math"
)

// DefaultTrig is the process-wide table, built once at startup
// Consumers take an explicit *TrigTable; this is the value commands pass in
var DefaultTrig *TrigTable

func init() {
	DefaultTrig = NewTrigTable()
}

// TrigTable holds sine and cosine for every integer degree
// Immutable after NewTrigTable returns, safe for concurrent readers
type TrigTable struct {
	sin [FullTurn]float64
	cos [FullTurn]float64
}

// NewTrigTable computes both sequences once
func NewTrigTable() *TrigTable {
	t := &TrigTable{}
	for i := 0; i < FullTurn; i++ {
		rad := float64(i) * math.Pi / 180.0
		t.sin[i] = math.Sin(rad)
		t.cos[i] = math.Cos(rad)
	}
	return t
}

// Sin returns sine of an integer-degree angle, O(1)
func (t *TrigTable) Sin(a Angle) float64 {
	return t.sin[a]
}

// Cos returns cosine of an integer-degree angle, O(1)
func (t *TrigTable) Cos(a Angle) float64 {
	return t.cos[a]
}

// SinDeg returns sine of a fractional degree value using linear interpolation
// between table entries. Any real value is accepted and wrapped
func (t *TrigTable) SinDeg(deg float64) float64 {
	i0, i1, frac := t.split(deg)
	return t.sin[i0] + (t.sin[i1]-t.sin[i0])*frac
}

// CosDeg returns cosine of a fractional degree value, see SinDeg
func (t *TrigTable) CosDeg(deg float64) float64 {
	i0, i1, frac := t.split(deg)
	return t.cos[i0] + (t.cos[i1]-t.cos[i0])*frac
}

// TanDeg returns tangent of a fractional degree value
// Returns +/-MaxFloat64 where cosine vanishes
func (t *TrigTable) TanDeg(deg float64) float64 {
	c := t.CosDeg(deg)
	s := t.SinDeg(deg)
	if math.Abs(c) < 1e-12 {
		if s < 0 {
			return -math.MaxFloat64
		}
		return math.MaxFloat64
	}
	return s / c
}

// split wraps deg into [0, 360) and returns the two bracketing indices and the weight
func (t *TrigTable) split(deg float64) (int, int, float64) {
	if math.IsNaN(deg) || math.IsInf(deg, 0) {
		return 0, 0, 0
	}
	deg = math.Mod(deg, FullTurn)
	if deg < 0 {
		deg += FullTurn
	}
	fl := math.Floor(deg)
	i0 := int(fl) % FullTurn
	i1 := (i0 + 1) % FullTurn
	return i0, i1, deg - fl
}
