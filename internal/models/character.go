package models

import "time"

// Character is a user-owned sheet. The nested System document is stored as a
// single JSON column; Level, Race and Classes are derived from the attached
// items and recomputed after every item mutation.
type Character struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Name   string `gorm:"size:255;not null" json:"name"`
	Type   string `gorm:"size:32;not null;default:character" json:"type"`
	Img    string `gorm:"size:512" json:"img"`
	UserID uint   `gorm:"index;not null" json:"user"`

	// Derived fields, never written directly by clients.
	Level   int    `json:"level"`
	Race    string `gorm:"size:255" json:"race"`
	Classes string `gorm:"size:512" json:"classes"`

	System CharacterSystem `gorm:"serializer:json" json:"system"`
	Items  []Item          `gorm:"foreignKey:CharacterID" json:"items"`
}

// CharacterSummary is the projection used for list views; the heavy System
// and Items columns are excluded.
type CharacterSummary struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Img       string    `json:"img"`
	Level     int       `json:"level"`
	Race      string    `json:"race"`
	Classes   string    `json:"classes"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Summary returns the list-view projection of a character.
func (c *Character) Summary() CharacterSummary {
	return CharacterSummary{
		ID:        c.ID,
		Name:      c.Name,
		Img:       c.Img,
		Level:     c.Level,
		Race:      c.Race,
		Classes:   c.Classes,
		UpdatedAt: c.UpdatedAt,
	}
}

// CharacterSystem is the full 5e sheet document.
type CharacterSystem struct {
	Abilities  Abilities   `json:"abilities"`
	Skills     Skills      `json:"skills"`
	Attributes Attributes  `json:"attributes"`
	Details    Details     `json:"details"`
	Traits     Traits      `json:"traits"`
	Bonuses    Bonuses     `json:"bonuses"`
	Currency   Currency    `json:"currency"`
	Spells     SpellSlots `json:"spells"`
}

type Ability struct {
	Value      int            `json:"value"`
	Proficient int            `json:"proficient"`
	Max        *int           `json:"max"`
	Bonuses    AbilityBonuses `json:"bonuses"`
}

type AbilityBonuses struct {
	Check string `json:"check"`
	Save  string `json:"save"`
}

type Abilities struct {
	Str Ability `json:"str"`
	Dex Ability `json:"dex"`
	Con Ability `json:"con"`
	Int Ability `json:"int"`
	Wis Ability `json:"wis"`
	Cha Ability `json:"cha"`
}

type Skill struct {
	Value   int          `json:"value"`
	Ability string       `json:"ability"`
	Bonuses SkillBonuses `json:"bonuses"`
}

type SkillBonuses struct {
	Check   string `json:"check"`
	Passive string `json:"passive"`
}

type Skills struct {
	Acr Skill `json:"acr"`
	Ani Skill `json:"ani"`
	Arc Skill `json:"arc"`
	Ath Skill `json:"ath"`
	Dec Skill `json:"dec"`
	His Skill `json:"his"`
	Ins Skill `json:"ins"`
	Itm Skill `json:"itm"`
	Inv Skill `json:"inv"`
	Med Skill `json:"med"`
	Nat Skill `json:"nat"`
	Prc Skill `json:"prc"`
	Prf Skill `json:"prf"`
	Per Skill `json:"per"`
	Rel Skill `json:"rel"`
	Slt Skill `json:"slt"`
	Ste Skill `json:"ste"`
	Sur Skill `json:"sur"`
}

type HitPoints struct {
	Value   int  `json:"value"`
	Max     *int `json:"max"`
	Temp    int  `json:"temp"`
	TempMax int  `json:"tempmax"`
}

type Initiative struct {
	Ability string `json:"ability"`
	Bonus   string `json:"bonus"`
}

type Movement struct {
	Burrow *int   `json:"burrow"`
	Climb  *int   `json:"climb"`
	Fly    *int   `json:"fly"`
	Swim   *int   `json:"swim"`
	Walk   *int   `json:"walk"`
	Units  string `json:"units"`
}

type Attunement struct {
	Max int `json:"max"`
}

type Senses struct {
	Darkvision  *int   `json:"darkvision"`
	Blindsight  *int   `json:"blindsight"`
	Tremorsense *int   `json:"tremorsense"`
	Truesight   *int   `json:"truesight"`
	Units       string `json:"units"`
}

type DeathSaves struct {
	Ability string `json:"ability"`
	Success int    `json:"success"`
	Failure int    `json:"failure"`
}

type ArmorClass struct {
	Flat *int   `json:"flat"`
	Calc string `json:"calc"`
}

type Concentration struct {
	Ability string `json:"ability"`
	Limit   int    `json:"limit"`
}

type Attributes struct {
	HP            HitPoints     `json:"hp"`
	Ini           Initiative    `json:"ini"`
	Movement      Movement      `json:"movement"`
	Attunement    Attunement    `json:"attunement"`
	Senses        Senses        `json:"senses"`
	Death         DeathSaves    `json:"death"`
	AC            ArmorClass    `json:"ac"`
	Concentration Concentration `json:"concentration"`
	Inspiration   bool          `json:"inspiration"`
	Spellcasting  string        `json:"spellcasting"`
	Exhaustion    int           `json:"exhaustion"`
}

type Biography struct {
	Value  string `json:"value"`
	Public string `json:"public"`
}

type Experience struct {
	Value int `json:"value"`
}

type Details struct {
	Biography     Biography  `json:"biography"`
	Alignment     string     `json:"alignment"`
	Appearance    string     `json:"appearance"`
	Trait         string     `json:"trait"`
	Ideal         string     `json:"ideal"`
	Bond          string     `json:"bond"`
	Flaw          string     `json:"flaw"`
	Race          string     `json:"race"`
	Background    string     `json:"background"`
	OriginalClass string     `json:"originalClass"`
	Level         int        `json:"level"`
	XP            Experience `json:"xp"`
}

type DamageModifier struct {
	Bypasses []string `json:"bypasses"`
	Value    []string `json:"value"`
	Custom   string   `json:"custom"`
}

type TraitList struct {
	Value  []string `json:"value"`
	Custom string   `json:"custom"`
}

type Traits struct {
	Size       string         `json:"size"`
	DI         DamageModifier `json:"di"`
	DR         DamageModifier `json:"dr"`
	DV         DamageModifier `json:"dv"`
	CI         TraitList      `json:"ci"`
	Languages  TraitList      `json:"languages"`
	WeaponProf TraitList      `json:"weaponProf"`
	ArmorProf  TraitList      `json:"armorProf"`
}

type AttackBonus struct {
	Attack string `json:"attack"`
	Damage string `json:"damage"`
}

type Bonuses struct {
	MWak  AttackBonus `json:"mwak"`
	RWak  AttackBonus `json:"rwak"`
	MSak  AttackBonus `json:"msak"`
	RSak  AttackBonus `json:"rsak"`
	Spell struct {
		DC string `json:"dc"`
	} `json:"spell"`
}

type Currency struct {
	PP int `json:"pp"`
	GP int `json:"gp"`
	EP int `json:"ep"`
	SP int `json:"sp"`
	CP int `json:"cp"`
}

// SpellSlot tracks one tier. Available is defaulted to Value at save time
// when a client never set it.
type SpellSlot struct {
	Value     int  `json:"value"`
	Override  *int `json:"override"`
	Available *int `json:"available"`
}

type SpellSlots struct {
	Spell1 SpellSlot `json:"spell1"`
	Spell2 SpellSlot `json:"spell2"`
	Spell3 SpellSlot `json:"spell3"`
	Spell4 SpellSlot `json:"spell4"`
	Spell5 SpellSlot `json:"spell5"`
	Spell6 SpellSlot `json:"spell6"`
	Spell7 SpellSlot `json:"spell7"`
	Spell8 SpellSlot `json:"spell8"`
	Spell9 SpellSlot `json:"spell9"`
	Pact   SpellSlot `json:"pact"`
}

// NewCharacterSystem returns a sheet with the 5e schema defaults: ability
// scores at 10, the fixed skill-to-ability links, and the usual attribute
// baselines.
func NewCharacterSystem() CharacterSystem {
	ability := Ability{Value: 10}
	return CharacterSystem{
		Abilities: Abilities{
			Str: ability, Dex: ability, Con: ability,
			Int: ability, Wis: ability, Cha: ability,
		},
		Skills: Skills{
			Acr: Skill{Ability: "dex"},
			Ani: Skill{Ability: "wis"},
			Arc: Skill{Ability: "int"},
			Ath: Skill{Ability: "str"},
			Dec: Skill{Ability: "cha"},
			His: Skill{Ability: "int"},
			Ins: Skill{Ability: "wis"},
			Itm: Skill{Ability: "cha"},
			Inv: Skill{Ability: "int"},
			Med: Skill{Ability: "wis"},
			Nat: Skill{Ability: "int"},
			Prc: Skill{Ability: "wis"},
			Prf: Skill{Ability: "cha"},
			Per: Skill{Ability: "cha"},
			Rel: Skill{Ability: "int"},
			Slt: Skill{Ability: "dex"},
			Ste: Skill{Ability: "dex"},
			Sur: Skill{Ability: "wis"},
		},
		Attributes: Attributes{
			Movement:      Movement{Units: "ft"},
			Attunement:    Attunement{Max: 3},
			Senses:        Senses{Units: "ft"},
			AC:            ArmorClass{Calc: "default"},
			Concentration: Concentration{Limit: 1},
		},
		Traits: Traits{Size: "med"},
	}
}
