package models

// ============================================================
// Saved Scheme Model
// ============================================================

// SavedScheme is a persisted parameter set. Scheme holds the
// scheme.Marshal document verbatim.
type SavedScheme struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	NumSides  int    `json:"num_sides"`
	Scheme    []byte `json:"-"`
	CreatedAt string `json:"created_at"`
}
