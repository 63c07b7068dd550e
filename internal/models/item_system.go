package models

import "encoding/json"

// Shared fragments of the item system schemas.

type DescriptionRef struct {
	Value string `json:"value"`
}

type WeightRef struct {
	Value float64 `json:"value"`
	Units string  `json:"units"`
}

type PriceRef struct {
	Value        float64 `json:"value"`
	Denomination string  `json:"denomination"`
}

type DamageDice struct {
	Number       int      `json:"number"`
	Denomination int      `json:"denomination"`
	Bonus        string   `json:"bonus"`
	Types        []string `json:"types"`
}

type SpellcastingProgression struct {
	Progression string `json:"progression"`
	Ability     string `json:"ability"`
	Preparation struct {
		Formula string `json:"formula"`
	} `json:"preparation"`
}

// Per-type system documents. Field sets mirror the importer's 5e data; every
// type carries at least a description and an identifier.

type BackgroundSystem struct {
	Description DescriptionRef `json:"description"`
	Identifier  string         `json:"identifier"`
	Wealth      string         `json:"wealth"`
}

type ClassSystem struct {
	Description  DescriptionRef          `json:"description"`
	Identifier   string                  `json:"identifier"`
	Levels       int                     `json:"levels"`
	Spellcasting SpellcastingProgression `json:"spellcasting"`
	Wealth       string                  `json:"wealth"`
	PrimaryAbility struct {
		Value []string `json:"value"`
		All   bool     `json:"all"`
	} `json:"primaryAbility"`
	HD struct {
		Denomination string `json:"denomination"`
		Spent        int    `json:"spent"`
		Additional   string `json:"additional"`
	} `json:"hd"`
}

type ConsumableSystem struct {
	Description DescriptionRef `json:"description"`
	Identifier  string         `json:"identifier"`
	Quantity    int            `json:"quantity"`
	Weight      WeightRef      `json:"weight"`
	Price       PriceRef       `json:"price"`
	Attunement  string         `json:"attunement"`
	Equipped    bool           `json:"equipped"`
	Rarity      string         `json:"rarity"`
	Attuned     bool           `json:"attuned"`
	Properties  []string       `json:"properties"`
	Type        struct {
		Value   string `json:"value"`
		Subtype string `json:"subtype"`
	} `json:"type"`
	Damage struct {
		Base DamageDice `json:"base"`
	} `json:"damage"`
}

type EquipmentSystem struct {
	Description DescriptionRef `json:"description"`
	Identifier  string         `json:"identifier"`
	Quantity    int            `json:"quantity"`
	Weight      WeightRef      `json:"weight"`
	Price       PriceRef       `json:"price"`
	Attunement  string         `json:"attunement"`
	Equipped    bool           `json:"equipped"`
	Rarity      string         `json:"rarity"`
	Attuned     bool           `json:"attuned"`
	Properties  []string       `json:"properties"`
	Type        struct {
		Value    string `json:"value"`
		BaseItem string `json:"baseItem"`
	} `json:"type"`
	Armor struct {
		Value        int  `json:"value"`
		Dex          int  `json:"dex"`
		MagicalBonus *int `json:"magicalBonus"`
	} `json:"armor"`
	HP struct {
		Value int `json:"value"`
		Max   int `json:"max"`
	} `json:"hp"`
	Speed struct {
		Value int `json:"value"`
	} `json:"speed"`
	Strength   *int `json:"strength"`
	Proficient *int `json:"proficient"`
}

type FeatSystem struct {
	Description DescriptionRef `json:"description"`
	Identifier  string         `json:"identifier"`
	Properties  []string       `json:"properties"`
	Uses        struct {
		Max      string   `json:"max"`
		Recovery []string `json:"recovery"`
		Spent    int      `json:"spent"`
	} `json:"uses"`
	Type struct {
		Value   string `json:"value"`
		Subtype string `json:"subtype"`
	} `json:"type"`
	Requirements string          `json:"requirements"`
	Enchant      json.RawMessage `json:"enchant"`
}

type LootSystem struct {
	Description DescriptionRef `json:"description"`
	Identifier  string         `json:"identifier"`
	Quantity    int            `json:"quantity"`
	Weight      WeightRef      `json:"weight"`
	Price       PriceRef       `json:"price"`
	Rarity      string         `json:"rarity"`
	Properties  []string       `json:"properties"`
	Type        struct {
		Value   string `json:"value"`
		Subtype string `json:"subtype"`
	} `json:"type"`
}

type RaceSystem struct {
	Description DescriptionRef `json:"description"`
	Identifier  string         `json:"identifier"`
	Movement    struct {
		Burrow *int   `json:"burrow"`
		Climb  *int   `json:"climb"`
		Fly    *int   `json:"fly"`
		Swim   *int   `json:"swim"`
		Walk   *int   `json:"walk"`
		Hover  *int   `json:"hover"`
		Units  string `json:"units"`
	} `json:"movement"`
	Senses struct {
		Darkvision  *int   `json:"darkvision"`
		Blindsight  *int   `json:"blindsight"`
		Tremorsense *int   `json:"tremorsense"`
		Truesight   *int   `json:"truesight"`
		Special     *int   `json:"special"`
		Units       string `json:"units"`
	} `json:"senses"`
	Type struct {
		Value   string `json:"value"`
		Subtype string `json:"subtype"`
		Custom  string `json:"custom"`
	} `json:"type"`
	Advancement []json.RawMessage `json:"advancement"`
}

type SpellSystem struct {
	Description DescriptionRef `json:"description"`
	Identifier  string         `json:"identifier"`
	Properties  []string       `json:"properties"`
	Activation  struct {
		Type      string `json:"type"`
		Condition string `json:"condition"`
		Value     int    `json:"value"`
	} `json:"activation"`
	Duration struct {
		Value string `json:"value"`
		Units string `json:"units"`
	} `json:"duration"`
	Range struct {
		Value   string `json:"value"`
		Units   string `json:"units"`
		Special string `json:"special"`
	} `json:"range"`
	Level     int    `json:"level"`
	School    string `json:"school"`
	Materials struct {
		Value    string `json:"value"`
		Consumed bool   `json:"consumed"`
		Cost     int    `json:"cost"`
		Supply   int    `json:"supply"`
	} `json:"materials"`
	Preparation struct {
		Mode     string `json:"mode"`
		Prepared bool   `json:"prepared"`
	} `json:"preparation"`
}

type SubclassSystem struct {
	Description     DescriptionRef          `json:"description"`
	Identifier      string                  `json:"identifier"`
	ClassIdentifier string                  `json:"classIdentifier"`
	Spellcasting    SpellcastingProgression `json:"spellcasting"`
}

type ToolSystem struct {
	Description DescriptionRef `json:"description"`
	Identifier  string         `json:"identifier"`
	Quantity    int            `json:"quantity"`
	Weight      WeightRef      `json:"weight"`
	Price       PriceRef       `json:"price"`
	Attunement  string         `json:"attunement"`
	Equipped    bool           `json:"equipped"`
	Rarity      string         `json:"rarity"`
	Ability     string         `json:"ability"`
	Proficient  *int           `json:"proficient"`
	Bonus       string         `json:"bonus"`
	Type        struct {
		Value    string `json:"value"`
		BaseItem string `json:"baseItem"`
	} `json:"type"`
	Attuned    bool     `json:"attuned"`
	Properties []string `json:"properties"`
}

type WeaponSystem struct {
	Description DescriptionRef `json:"description"`
	Identifier  string         `json:"identifier"`
	Quantity    int            `json:"quantity"`
	Weight      WeightRef      `json:"weight"`
	Price       PriceRef       `json:"price"`
	Attunement  string         `json:"attunement"`
	Equipped    bool           `json:"equipped"`
	Rarity      string         `json:"rarity"`
	Attuned     bool           `json:"attuned"`
	Properties  []string       `json:"properties"`
	Type        struct {
		Value    string `json:"value"`
		BaseItem string `json:"baseItem"`
	} `json:"type"`
	Damage struct {
		Base      DamageDice `json:"base"`
		Versatile DamageDice `json:"versatile"`
	} `json:"damage"`
	Armor struct {
		Value int `json:"value"`
	} `json:"armor"`
	HP struct {
		Value int `json:"value"`
		Max   int `json:"max"`
	} `json:"hp"`
	MagicalBonus *int            `json:"magicalBonus"`
	Ammunition   json.RawMessage `json:"ammunition"`
}

// DecodeSystem validates and normalizes an item's system payload against the
// schema selected by its type tag: the raw document is decoded into the
// typed schema (unknown keys dropped, defaults filled in) and re-encoded.
// The switch is exhaustive over the closed type set; container never reaches
// here.
func DecodeSystem(t ItemType, raw json.RawMessage) (json.RawMessage, error) {
	if len(raw) == 0 {
		raw = json.RawMessage("{}")
	}

	decode := func(sys any) (json.RawMessage, error) {
		if err := json.Unmarshal(raw, sys); err != nil {
			return nil, err
		}
		return json.Marshal(sys)
	}

	switch t {
	case ItemTypeBackground:
		return decode(&BackgroundSystem{})
	case ItemTypeClass:
		sys := ClassSystem{Levels: 1}
		sys.HD.Denomination = "d6"
		sys.PrimaryAbility.All = true
		return decode(&sys)
	case ItemTypeConsumable:
		return decode(&ConsumableSystem{Quantity: 1, Rarity: "commom"})
	case ItemTypeEquipment:
		sys := EquipmentSystem{Quantity: 1, Rarity: "commom"}
		sys.Armor.Value = 10
		sys.HP.Value = 10
		sys.Speed.Value = 10
		return decode(&sys)
	case ItemTypeFeat:
		return decode(&FeatSystem{})
	case ItemTypeLoot:
		return decode(&LootSystem{Quantity: 1, Rarity: "commom"})
	case ItemTypeRace:
		sys := RaceSystem{}
		sys.Movement.Units = "ft"
		sys.Senses.Units = "ft"
		return decode(&sys)
	case ItemTypeSpell:
		sys := SpellSystem{}
		sys.Activation.Value = 1
		return decode(&sys)
	case ItemTypeSubclass:
		return decode(&SubclassSystem{})
	case ItemTypeTool:
		return decode(&ToolSystem{Quantity: 1, Rarity: "commom"})
	case ItemTypeWeapon:
		sys := WeaponSystem{Quantity: 1, Rarity: "commom"}
		sys.Armor.Value = 10
		sys.HP.Value = 10
		return decode(&sys)
	}
	return nil, &UnknownItemTypeError{Type: string(t)}
}
