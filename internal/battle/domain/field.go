package domain

// Side is the per-side battle context: hazards, active entities, and the
// current selection.
type Side struct {
	ID         string         `json:"id"`
	Hazards    map[string]int `json:"hazards,omitempty"`
	ActiveIDs  []string       `json:"activeIds,omitempty"`
	SelectedID string         `json:"selectedId,omitempty"`
}

// Field is the shared, read-mostly battle context. Entity-level derivations
// (ability activation) read it, and it is recomputed when entity changes
// affect team-wide counts.
type Field struct {
	GameType string           `json:"gameType,omitempty"` // singles, doubles
	Weather  string           `json:"weather,omitempty"`
	Terrain  string           `json:"terrain,omitempty"`
	Sides    map[string]*Side `json:"sides,omitempty"`
}

// NewField returns a field with both sides initialized.
func NewField(gameType string) *Field {
	return &Field{
		GameType: gameType,
		Sides: map[string]*Side{
			"p1": {ID: "p1"},
			"p2": {ID: "p2"},
		},
	}
}

// Side returns the side for an id, creating it when absent.
func (f *Field) Side(id string) *Side {
	if f.Sides == nil {
		f.Sides = make(map[string]*Side)
	}
	if s, ok := f.Sides[id]; ok {
		return s
	}
	s := &Side{ID: id}
	f.Sides[id] = s
	return s
}
