package engine

// Trigger names the lifecycle hook a modification reacts to. Modifications
// without a trigger are passive: subsystems read them directly off the owning
// player's modification list when computing costs and formulas.
type Trigger string

const (
	TriggerTurnStart Trigger = "turn_start"
	TriggerTurnEnd   Trigger = "turn_end"
)

// EffectDef describes a purchasable one-time effect. Effects are bought into
// a player's factory hand and consumed when played.
type EffectDef struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Cost        int    `json:"cost"`
}

// ModificationDef describes a purchasable permanent modification. A won
// modification is appended to the player's modification list and stays there
// for the rest of the game.
type ModificationDef struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Cost        int     `json:"cost"`
	Stackable   bool    `json:"stackable"`
	Trigger     Trigger `json:"trigger,omitempty"`
}

// Effect IDs.
const (
	EffectQualityControl = "quality_control"
	EffectRushOrder      = "rush_order"
	EffectOvertime       = "overtime"
	EffectChromePlating  = "chrome_plating"
	EffectPrismCoating   = "prism_coating"
	EffectShoreUp        = "shore_up"
)

// Modification IDs.
const (
	ModAssemblyLine    = "assembly_line"
	ModShortRun        = "short_run"
	ModMatchedTooling  = "matched_tooling"
	ModSalvageHook     = "salvage_hook"
	ModCreditLine      = "credit_line"
	ModLubricatedGears = "lubricated_gears"
	ModDormitory       = "dormitory"
	ModNightShift      = "night_shift"
	ModScrapRecovery   = "scrap_recovery"
)

// effectCatalog is the full pool of effects a game's market is drawn from.
// Order matters: market seeding draws from a shuffled copy of this slice.
var effectCatalog = []EffectDef{
	{ID: EffectQualityControl, Name: "Quality Control", Description: "Reroll every unexhausted die in your pool for free.", Cost: CostEffect},
	{ID: EffectRushOrder, Name: "Rush Order", Description: "Add one d6 to your pool and roll it immediately.", Cost: CostEffect},
	{ID: EffectOvertime, Name: "Overtime", Description: "Gain 1 pip for each die currently in your pool.", Cost: CostEffect},
	{ID: EffectChromePlating, Name: "Chrome Plating", Description: "A die of your choice gains a shiny finish.", Cost: CostEffect},
	{ID: EffectPrismCoating, Name: "Prism Coating", Description: "A die of your choice gains a rainbow finish.", Cost: CostEffect},
	{ID: EffectShoreUp, Name: "Shore Up", Description: "Add a d6 to the collapse pool, steadying the factory.", Cost: CostEffect},
}

// modificationCatalog is the full pool of modifications a game's market is
// drawn from.
var modificationCatalog = []ModificationDef{
	{ID: ModAssemblyLine, Name: "Assembly Line", Description: "Your straights and sets score as if they contained one extra die.", Cost: CostModification},
	{ID: ModShortRun, Name: "Short Run Tooling", Description: "Your straights are legal with only 2 dice.", Cost: CostModification},
	{ID: ModMatchedTooling, Name: "Matched Tooling", Description: "Your sets are legal with only 3 dice.", Cost: CostModification},
	{ID: ModSalvageHook, Name: "Salvage Hook", Description: "The highest die of each trick you score stays in your pool.", Cost: CostModification},
	{ID: ModCreditLine, Name: "Credit Line", Description: "Your free pips may drop as low as -20.", Cost: CostModification},
	{ID: ModLubricatedGears, Name: "Lubricated Gears", Description: "Rerolls cost 1 pip instead of 2.", Cost: CostModification},
	{ID: ModDormitory, Name: "Dormitory", Description: "Your dice floor increases by 1.", Cost: CostModification + 2, Stackable: true},
	{ID: ModNightShift, Name: "Night Shift", Description: "At turn start, every die of yours showing 1 is rerolled.", Cost: CostModification, Trigger: TriggerTurnStart},
	{ID: ModScrapRecovery, Name: "Scrap Recovery", Description: "At turn end, gain 1 pip for each die you exhausted this turn.", Cost: CostModification, Trigger: TriggerTurnEnd},
}

// EffectByID looks up an effect descriptor.
func EffectByID(id string) (EffectDef, bool) {
	for _, e := range effectCatalog {
		if e.ID == id {
			return e, true
		}
	}
	return EffectDef{}, false
}

// ModificationByID looks up a modification descriptor.
func ModificationByID(id string) (ModificationDef, bool) {
	for _, m := range modificationCatalog {
		if m.ID == id {
			return m, true
		}
	}
	return ModificationDef{}, false
}
