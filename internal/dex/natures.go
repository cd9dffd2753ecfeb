package dex

// Nature modifies one stat up and one down by 10%. Neutral natures leave
// every stat untouched.
type Nature struct {
	Name  string
	Plus  Stat
	Minus Stat
}

// Neutral reports whether the nature modifies no stat.
func (n Nature) Neutral() bool {
	return n.Plus == "" && n.Minus == ""
}

// Multiplier returns the nature's multiplier for a stat.
func (n Nature) Multiplier(s Stat) float64 {
	switch s {
	case n.Plus:
		return 1.1
	case n.Minus:
		return 0.9
	}
	return 1
}

// Natures lists every nature ordered by competitive commonality. The spread
// search walks this order, so common natures are recovered first when several
// reproduce the same final stats.
var Natures = []Nature{
	{Name: "Adamant", Plus: Atk, Minus: SpA},
	{Name: "Jolly", Plus: Spe, Minus: SpA},
	{Name: "Modest", Plus: SpA, Minus: Atk},
	{Name: "Timid", Plus: Spe, Minus: Atk},
	{Name: "Bold", Plus: Def, Minus: Atk},
	{Name: "Calm", Plus: SpD, Minus: Atk},
	{Name: "Careful", Plus: SpD, Minus: SpA},
	{Name: "Impish", Plus: Def, Minus: SpA},
	{Name: "Relaxed", Plus: Def, Minus: Spe},
	{Name: "Brave", Plus: Atk, Minus: Spe},
	{Name: "Quiet", Plus: SpA, Minus: Spe},
	{Name: "Sassy", Plus: SpD, Minus: Spe},
	{Name: "Naive", Plus: Spe, Minus: SpD},
	{Name: "Hasty", Plus: Spe, Minus: Def},
	{Name: "Lonely", Plus: Atk, Minus: Def},
	{Name: "Naughty", Plus: Atk, Minus: SpD},
	{Name: "Mild", Plus: SpA, Minus: Def},
	{Name: "Rash", Plus: SpA, Minus: SpD},
	{Name: "Gentle", Plus: SpD, Minus: Def},
	{Name: "Lax", Plus: Def, Minus: SpD},
	{Name: "Hardy"},
	{Name: "Docile"},
	{Name: "Serious"},
	{Name: "Bashful"},
	{Name: "Quirky"},
}

// NatureByName resolves a nature by display name. Unknown names return a
// neutral Hardy nature, matching how unset natures behave.
func NatureByName(name string) Nature {
	id := NormalizeID(name)
	for _, n := range Natures {
		if NormalizeID(n.Name) == id {
			return n
		}
	}
	return Natures[20] // Hardy
}
