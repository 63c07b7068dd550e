package models

import (
	"encoding/json"
	"time"
)

// ItemType is the discriminator selecting which system schema applies to an
// item. The set is closed; anything else is rejected at creation time.
type ItemType string

const (
	ItemTypeBackground ItemType = "background"
	ItemTypeClass      ItemType = "class"
	ItemTypeConsumable ItemType = "consumable"
	ItemTypeEquipment  ItemType = "equipment"
	ItemTypeFeat       ItemType = "feat"
	ItemTypeLoot       ItemType = "loot"
	ItemTypeRace       ItemType = "race"
	ItemTypeSpell      ItemType = "spell"
	ItemTypeSubclass   ItemType = "subclass"
	ItemTypeTool       ItemType = "tool"
	ItemTypeWeapon     ItemType = "weapon"

	// ItemTypeContainer is accepted on input but never persisted; the
	// importer sends container items we have no use for.
	ItemTypeContainer ItemType = "container"
)

// KnownItemType reports whether t is one of the eleven persisted tags.
func KnownItemType(t ItemType) bool {
	switch t {
	case ItemTypeBackground, ItemTypeClass, ItemTypeConsumable,
		ItemTypeEquipment, ItemTypeFeat, ItemTypeLoot, ItemTypeRace,
		ItemTypeSpell, ItemTypeSubclass, ItemTypeTool, ItemTypeWeapon:
		return true
	}
	return false
}

// Item is a typed possession or feature attached to exactly one character.
// System holds the type-specific attribute document, normalized through
// DecodeSystem before persistence.
type Item struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Name string `gorm:"size:255;not null" json:"name"`
	// FoundryID keeps the external-origin identifier of imported items; it
	// is never used as the primary key.
	FoundryID   string          `gorm:"size:64" json:"foundryId"`
	Type        ItemType        `gorm:"size:32;not null;index" json:"type"`
	CharacterID uint            `gorm:"index;not null" json:"character"`
	System      json.RawMessage `gorm:"serializer:json" json:"system"`
}

// ClassLevels extracts the level count of a class item. Non-class items
// always report zero.
func (i *Item) ClassLevels() int {
	if i.Type != ItemTypeClass {
		return 0
	}
	var sys ClassSystem
	if err := json.Unmarshal(i.System, &sys); err != nil {
		return 0
	}
	return sys.Levels
}
