package geometry

import (
	"encoding/json"
	"fmt"
)

// ============================================================
// Model
// ============================================================

// Model owns a single valid polygon. Every edit builds a candidate,
// validates it and either commits it or leaves the current shape untouched.
type Model struct {
	polygon *Polygon
}

func NewModel(numSides int) *Model {
	return &Model{polygon: CreateRegular(numSides)}
}

// Polygon returns a copy of the current shape.
func (m *Model) Polygon() *Polygon {
	return m.polygon.Clone()
}

func (m *Model) NumSides() int {
	return m.polygon.Len()
}

func (m *Model) Angles() []float64 {
	return m.polygon.Angles()
}

func (m *Model) Clone() *Model {
	return &Model{polygon: m.polygon.Clone()}
}

// Reset replaces the shape with a regular polygon.
func (m *Model) Reset(numSides int) {
	m.polygon = CreateRegular(numSides)
}

// Rotate turns the shape by degrees around vertex 0. Rotation preserves
// every angle, so it always applies.
func (m *Model) Rotate(degrees float64) {
	m.polygon = m.polygon.Rotated(degrees)
}

// Stretch scales the shape horizontally by factor.
func (m *Model) Stretch(factor float64) bool {
	return m.commit(m.polygon.Stretched(factor))
}

// SetAngle sets the interior angle at index; the next vertex absorbs the change.
func (m *Model) SetAngle(index int, degrees float64) bool {
	if index < 0 || index >= m.polygon.Len() {
		return false
	}
	return m.commit(m.polygon.WithAngle(index, degrees))
}

func (m *Model) commit(candidate *Polygon) bool {
	if !candidate.IsValid() {
		return false
	}
	m.polygon = candidate
	return true
}

// ============================================================
// Serialization
// ============================================================

func (m *Model) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.polygon)
}

// UnmarshalJSON accepts only shapes that pass validation. Vertices in the
// opposite winding are reordered first.
func (m *Model) UnmarshalJSON(data []byte) error {
	var raw Polygon
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Len() < MinSides {
		return fmt.Errorf("polygon needs at least %d vertices, got %d", MinSides, raw.Len())
	}
	p := raw.Rewound()
	if !p.IsValid() {
		return fmt.Errorf("invalid polygon with %d vertices", p.Len())
	}
	m.polygon = p
	return nil
}
