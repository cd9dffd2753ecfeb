package dex

// Built-in tables cover the species and moves the engine's defaults and test
// suites exercise. Embedders extend them through RegisterSpecies/RegisterMove
// before sessions start.

var builtinSpecies = []Species{
	{
		Name:      "Pikachu",
		Types:     []string{"Electric"},
		Abilities: []string{"Static", "Lightning Rod"},
		BaseStats: StatTable{HP: 35, Atk: 55, Def: 40, SpA: 50, SpD: 50, Spe: 90},
	},
	{
		Name:      "Tauros",
		Types:     []string{"Normal"},
		Abilities: []string{"Intimidate", "Anger Point", "Sheer Force"},
		BaseStats: StatTable{HP: 75, Atk: 100, Def: 95, SpA: 40, SpD: 70, Spe: 110},
	},
	{
		Name:      "Ditto",
		Types:     []string{"Normal"},
		Abilities: []string{"Limber", "Imposter"},
		BaseStats: StatTable{HP: 48, Atk: 48, Def: 48, SpA: 48, SpD: 48, Spe: 48},
	},
	{
		Name:          "Charizard",
		Types:         []string{"Fire", "Flying"},
		Abilities:     []string{"Blaze", "Solar Power"},
		BaseStats:     StatTable{HP: 78, Atk: 84, Def: 78, SpA: 109, SpD: 85, Spe: 100},
		OtherFormes:   []string{"Charizard-Mega-X", "Charizard-Mega-Y"},
		CanGigantamax: true,
	},
	{
		Name:      "Garchomp",
		Types:     []string{"Dragon", "Ground"},
		Abilities: []string{"Sand Veil", "Rough Skin"},
		BaseStats: StatTable{HP: 108, Atk: 130, Def: 95, SpA: 80, SpD: 85, Spe: 102},
	},
	{
		Name:      "Regigigas",
		Types:     []string{"Normal"},
		Abilities: []string{"Slow Start"},
		BaseStats: StatTable{HP: 110, Atk: 160, Def: 110, SpA: 80, SpD: 110, Spe: 100},
	},
	{
		Name:      "Heatran",
		Types:     []string{"Fire", "Steel"},
		Abilities: []string{"Flash Fire", "Flame Body"},
		BaseStats: StatTable{HP: 91, Atk: 90, Def: 106, SpA: 130, SpD: 106, Spe: 77},
	},
	{
		Name:           "Gastrodon",
		Types:          []string{"Water", "Ground"},
		Abilities:      []string{"Sticky Hold", "Storm Drain", "Sand Force"},
		BaseStats:      StatTable{HP: 111, Atk: 83, Def: 68, SpA: 92, SpD: 82, Spe: 39},
		CosmeticFormes: []string{"Gastrodon-East"},
	},
	{
		Name:      "Flabébé",
		Types:     []string{"Fairy"},
		Abilities: []string{"Flower Veil", "Symbiosis"},
		BaseStats: StatTable{HP: 44, Atk: 38, Def: 39, SpA: 61, SpD: 79, Spe: 42},
	},
	{
		Name:        "Urshifu",
		Types:       []string{"Fighting", "Dark"},
		Abilities:   []string{"Unseen Fist"},
		BaseStats:   StatTable{HP: 100, Atk: 130, Def: 100, SpA: 63, SpD: 60, Spe: 97},
		OtherFormes: []string{"Urshifu-Rapid-Strike"},
	},
	{
		Name:      "Urshifu-Rapid-Strike",
		Types:     []string{"Fighting", "Water"},
		Abilities: []string{"Unseen Fist"},
		BaseStats: StatTable{HP: 100, Atk: 130, Def: 100, SpA: 63, SpD: 60, Spe: 97},
	},
	{
		Name:      "Chi-Yu",
		Types:     []string{"Dark", "Fire"},
		Abilities: []string{"Beads of Ruin"},
		BaseStats: StatTable{HP: 55, Atk: 80, Def: 80, SpA: 135, SpD: 120, Spe: 100},
	},
	{
		Name:      "Chien-Pao",
		Types:     []string{"Dark", "Ice"},
		Abilities: []string{"Sword of Ruin"},
		BaseStats: StatTable{HP: 80, Atk: 120, Def: 80, SpA: 90, SpD: 65, Spe: 135},
	},
	{
		Name:      "Ting-Lu",
		Types:     []string{"Dark", "Ground"},
		Abilities: []string{"Vessel of Ruin"},
		BaseStats: StatTable{HP: 155, Atk: 110, Def: 125, SpA: 55, SpD: 80, Spe: 45},
	},
	{
		Name:      "Wo-Chien",
		Types:     []string{"Dark", "Grass"},
		Abilities: []string{"Tablets of Ruin"},
		BaseStats: StatTable{HP: 85, Atk: 85, Def: 100, SpA: 95, SpD: 135, Spe: 70},
	},
	{
		Name:      "Mew",
		Types:     []string{"Psychic"},
		Abilities: []string{"Synchronize"},
		BaseStats: StatTable{HP: 100, Atk: 100, Def: 100, SpA: 100, SpD: 100, Spe: 100},
	},
	{
		Name:      "Dragapult",
		Types:     []string{"Dragon", "Ghost"},
		Abilities: []string{"Clear Body", "Infiltrator", "Cursed Body"},
		BaseStats: StatTable{HP: 88, Atk: 120, Def: 75, SpA: 100, SpD: 75, Spe: 142},
	},
}

var builtinMoves = []Move{
	// Status
	{Name: "Recover", Type: "Normal", Category: CategoryStatus},
	{Name: "Protect", Type: "Normal", Category: CategoryStatus},
	{Name: "Toxic", Type: "Poison", Category: CategoryStatus},
	{Name: "Swords Dance", Type: "Normal", Category: CategoryStatus},
	{Name: "Thunder Wave", Type: "Electric", Category: CategoryStatus},
	{Name: "Spikes", Type: "Ground", Category: CategoryStatus},
	{Name: "Stealth Rock", Type: "Rock", Category: CategoryStatus},
	{Name: "Will-O-Wisp", Type: "Fire", Category: CategoryStatus},
	{Name: "Transform", Type: "Normal", Category: CategoryStatus},

	// Physical
	{Name: "Earthquake", Type: "Ground", Category: CategoryPhysical},
	{Name: "Dragon Claw", Type: "Dragon", Category: CategoryPhysical},
	{Name: "Outrage", Type: "Dragon", Category: CategoryPhysical},
	{Name: "Scale Shot", Type: "Dragon", Category: CategoryPhysical},
	{Name: "Stone Edge", Type: "Rock", Category: CategoryPhysical},
	{Name: "Ice Spinner", Type: "Ice", Category: CategoryPhysical},
	{Name: "Crunch", Type: "Dark", Category: CategoryPhysical},
	{Name: "Body Slam", Type: "Normal", Category: CategoryPhysical},
	{Name: "Hyper Beam", Type: "Normal", Category: CategoryPhysical},

	// Special
	{Name: "Blizzard", Type: "Ice", Category: CategorySpecial},
	{Name: "Fire Blast", Type: "Fire", Category: CategorySpecial},
	{Name: "Flamethrower", Type: "Fire", Category: CategorySpecial},
	{Name: "Ice Beam", Type: "Ice", Category: CategorySpecial},
	{Name: "Thunderbolt", Type: "Electric", Category: CategorySpecial},
	{Name: "Surf", Type: "Water", Category: CategorySpecial},
	{Name: "Draco Meteor", Type: "Dragon", Category: CategorySpecial},
	{Name: "Shadow Ball", Type: "Ghost", Category: CategorySpecial},
	{Name: "Earth Power", Type: "Ground", Category: CategorySpecial},
	{Name: "Dark Pulse", Type: "Dark", Category: CategorySpecial},
	{Name: "Moonblast", Type: "Fairy", Category: CategorySpecial},

	// Pivots
	{Name: "U-turn", Type: "Bug", Category: CategoryPhysical, Pivot: true},
	{Name: "Volt Switch", Type: "Electric", Category: CategorySpecial, Pivot: true},
	{Name: "Flip Turn", Type: "Water", Category: CategoryPhysical, Pivot: true},
	{Name: "Parting Shot", Type: "Dark", Category: CategoryStatus, Pivot: true},
	{Name: "Baton Pass", Type: "Normal", Category: CategoryStatus, Pivot: true},
	{Name: "Teleport", Type: "Psychic", Category: CategoryStatus, Pivot: true},
}
