// Package dnd5e implements the D&D 5e character sheet record
package dnd5e

import (
	"encoding/json"
	"fmt"

	"github.com/KirkDiggler/rpg-toolkit/core"
	"github.com/jinzhu/copier"
	"gopkg.in/yaml.v3"
)

const (
	// AlignmentNeutral is assumed for records written before alignment existed
	AlignmentNeutral = "Neutral"

	// EntityTypeCharacter is the rpg-toolkit entity type of a Character
	EntityTypeCharacter = "character"
)

// Character is one character sheet as persisted by the store.
// NOTE: This is a data-only struct. Nothing here is range-checked; the store is
// schema-tolerant but not schema-enforcing.
type Character struct {
	ID            string        `json:"id" yaml:"id"`
	Name          string        `json:"name" yaml:"name"`
	Race          string        `json:"race" yaml:"race"`
	Subrace       *string       `json:"subrace,omitempty" yaml:"subrace,omitempty"`
	Class         string        `json:"class" yaml:"class"`
	Background    string        `json:"background" yaml:"background"`
	Alignment     string        `json:"alignment" yaml:"alignment"`
	Level         int32         `json:"level" yaml:"level"`
	AbilityScores AbilityScores `json:"ability_scores" yaml:"ability_scores"`
	HitPoints     int32         `json:"hit_points" yaml:"hit_points"`
	MaxHitPoints  *int32        `json:"max_hit_points,omitempty" yaml:"max_hit_points,omitempty"`
	ArmorClass    int32         `json:"armor_class" yaml:"armor_class"`
	Initiative    int32         `json:"initiative" yaml:"initiative"`

	Equipment  []string `json:"equipment" yaml:"equipment"`
	Spells     []string `json:"spells" yaml:"spells"`
	SpellSlots []int32  `json:"spell_slots" yaml:"spell_slots"` // index 0 is 1st level
	Notes      string   `json:"notes" yaml:"notes"`

	// Proficiencies keyed by saving throw / skill name to bonus
	SavingThrowProficiencies map[string]int32 `json:"saving_throw_proficiencies" yaml:"saving_throw_proficiencies"`
	SkillProficiencies       map[string]int32 `json:"skill_proficiencies" yaml:"skill_proficiencies"`

	ArmorProficiencies  []string `json:"armor_proficiencies" yaml:"armor_proficiencies"`
	WeaponProficiencies []string `json:"weapon_proficiencies" yaml:"weapon_proficiencies"`
	ToolProficiencies   []string `json:"tool_proficiencies" yaml:"tool_proficiencies"`
	Languages           []string `json:"languages" yaml:"languages"`

	HeroicInspiration bool     `json:"heroic_inspiration" yaml:"heroic_inspiration"`
	UsedAbilities     []string `json:"used_abilities" yaml:"used_abilities"`

	Currency *Currency `json:"currency,omitempty" yaml:"currency,omitempty"`
}

// AbilityScores holds the six ability scores
type AbilityScores struct {
	Strength     int32 `json:"strength" yaml:"strength"`
	Dexterity    int32 `json:"dexterity" yaml:"dexterity"`
	Constitution int32 `json:"constitution" yaml:"constitution"`
	Intelligence int32 `json:"intelligence" yaml:"intelligence"`
	Wisdom       int32 `json:"wisdom" yaml:"wisdom"`
	Charisma     int32 `json:"charisma" yaml:"charisma"`
}

// Currency is the coin purse; missing denominations read as zero
type Currency struct {
	Platinum int32 `json:"platinum" yaml:"platinum"`
	Gold     int32 `json:"gold" yaml:"gold"`
	Silver   int32 `json:"silver" yaml:"silver"`
	Copper   int32 `json:"copper" yaml:"copper"`
}

// Compile-time check that Character can be handed to rpg-toolkit
var _ core.Entity = (*Character)(nil)

// GetID returns the character's ID
func (c *Character) GetID() string {
	return c.ID
}

// GetType returns the entity type for rpg-toolkit
func (c *Character) GetType() string {
	return EntityTypeCharacter
}

// Normalize replaces nil collections with empty ones so a record always
// serializes with [] and {} instead of null.
func (c *Character) Normalize() {
	c.Equipment = emptyIfNil(c.Equipment)
	c.Spells = emptyIfNil(c.Spells)
	if c.SpellSlots == nil {
		c.SpellSlots = []int32{}
	}
	if c.SavingThrowProficiencies == nil {
		c.SavingThrowProficiencies = map[string]int32{}
	}
	if c.SkillProficiencies == nil {
		c.SkillProficiencies = map[string]int32{}
	}
	c.ArmorProficiencies = emptyIfNil(c.ArmorProficiencies)
	c.WeaponProficiencies = emptyIfNil(c.WeaponProficiencies)
	c.ToolProficiencies = emptyIfNil(c.ToolProficiencies)
	c.Languages = emptyIfNil(c.Languages)
	c.UsedAbilities = emptyIfNil(c.UsedAbilities)
}

// Clone returns a deep copy of the character
func (c *Character) Clone() *Character {
	if c == nil {
		return nil
	}

	out := &Character{}
	if err := copier.CopyWithOption(out, c, copier.Option{DeepCopy: true}); err != nil {
		// Character holds only plain data; copier can only fail on a programming error
		panic(fmt.Sprintf("failed to clone character %s: %v", c.ID, err))
	}
	return out
}

// characterFields has Character's fields without its methods, so the codecs
// below can decode into it without recursing.
type characterFields Character

// MarshalJSON encodes the character with empty collections instead of null
func (c Character) MarshalJSON() ([]byte, error) {
	c.Normalize()
	return json.Marshal(characterFields(c))
}

// UnmarshalJSON decodes a character, filling defaults for fields that older
// records do not have.
func (c *Character) UnmarshalJSON(data []byte) error {
	decoded := characterFields{Alignment: AlignmentNeutral}
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}

	*c = Character(decoded)
	c.Normalize()
	return nil
}

// UnmarshalYAML applies the same defaults as UnmarshalJSON
func (c *Character) UnmarshalYAML(value *yaml.Node) error {
	decoded := characterFields{Alignment: AlignmentNeutral}
	if err := value.Decode(&decoded); err != nil {
		return err
	}

	*c = Character(decoded)
	c.Normalize()
	return nil
}

func emptyIfNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
