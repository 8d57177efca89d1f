package model

// ItemDefID identifies an entry in the static item catalog
type ItemDefID int

// ItemInstanceID identifies a single pickable item placed in the world
type ItemInstanceID string

// ItemStats holds the combat/utility stats of an item definition
type ItemStats struct {
	Attack  int `json:"attack"`
	Defense int `json:"defense"`
	Healing int `json:"healing"`
	Speed   int `json:"speed"`
}

// ItemDefinition is one static catalog entry
type ItemDefinition struct {
	ID               ItemDefID `json:"id"`
	Name             string    `json:"name"`
	Description      string    `json:"description"`
	Type             string    `json:"type"`   // weapon, armor, potion, misc
	Rarity           string    `json:"rarity"` // common, rare, epic, legendary
	Stats            ItemStats `json:"stats"`
	LevelRequirement int       `json:"level_requirement"`
	Icon             string    `json:"icon"`
	MaxDurability    int       `json:"max_durability"`
	Droppable        bool      `json:"is_droppable"`
	Usable           bool      `json:"is_usable"`

	// Initial world placement for the instance spawned from this entry
	SpawnX float64 `json:"x"`
	SpawnY float64 `json:"y"`
}

// ItemInstance is a pickable item currently placed in the world
type ItemInstance struct {
	ID  ItemInstanceID `json:"instance_id"`
	Def ItemDefinition `json:"def"`
	X   float64        `json:"x"`
	Y   float64        `json:"y"`
}

// InventoryEntry is one stored inventory row: a quantity of a catalog item
// owned by a player
type InventoryEntry struct {
	ItemDefID ItemDefID `json:"item_def_id"`
	Quantity  int       `json:"quantity"`
}

// InventoryItem is an inventory entry materialized against the catalog
type InventoryItem struct {
	ItemDefinition
	Quantity int `json:"quantity"`
}
