// Package builders provides test data builders for creating test fixtures
package builders

import (
	"github.com/KirkDiggler/rpg-sheet-store/internal/entities/dnd5e"
)

// CharacterBuilder provides a fluent interface for building test Character instances
type CharacterBuilder struct {
	char *dnd5e.Character
}

// NewCharacterBuilder creates a builder for a level 1 fighter with every
// collection initialized, matching what the store reads back.
func NewCharacterBuilder() *CharacterBuilder {
	char := &dnd5e.Character{
		ID:         "char-test-123",
		Name:       "Test Hero",
		Race:       "Human",
		Class:      "Fighter",
		Background: "Soldier",
		Alignment:  dnd5e.AlignmentNeutral,
		Level:      1,
		AbilityScores: dnd5e.AbilityScores{
			Strength: 15, Dexterity: 13, Constitution: 14,
			Intelligence: 8, Wisdom: 12, Charisma: 10,
		},
		HitPoints:  12,
		ArmorClass: 16,
		Initiative: 1,
	}
	char.Normalize()
	return &CharacterBuilder{char: char}
}

// WithID sets the character ID
func (b *CharacterBuilder) WithID(id string) *CharacterBuilder {
	b.char.ID = id
	return b
}

// WithName sets the character name
func (b *CharacterBuilder) WithName(name string) *CharacterBuilder {
	b.char.Name = name
	return b
}

// WithLevel sets the level
func (b *CharacterBuilder) WithLevel(level int32) *CharacterBuilder {
	b.char.Level = level
	return b
}

// WithRace sets the race and optionally subrace
func (b *CharacterBuilder) WithRace(race string, subrace ...string) *CharacterBuilder {
	b.char.Race = race
	if len(subrace) > 0 {
		b.char.Subrace = &subrace[0]
	}
	return b
}

// WithClass sets the class
func (b *CharacterBuilder) WithClass(class string) *CharacterBuilder {
	b.char.Class = class
	return b
}

// WithAlignment sets the alignment
func (b *CharacterBuilder) WithAlignment(alignment string) *CharacterBuilder {
	b.char.Alignment = alignment
	return b
}

// WithAbilityScores sets all six ability scores
func (b *CharacterBuilder) WithAbilityScores(scores dnd5e.AbilityScores) *CharacterBuilder {
	b.char.AbilityScores = scores
	return b
}

// WithHitPoints sets current and, when given, maximum hit points
func (b *CharacterBuilder) WithHitPoints(current int32, maximum ...int32) *CharacterBuilder {
	b.char.HitPoints = current
	if len(maximum) > 0 {
		b.char.MaxHitPoints = &maximum[0]
	}
	return b
}

// WithEquipment sets the equipment list
func (b *CharacterBuilder) WithEquipment(items ...string) *CharacterBuilder {
	b.char.Equipment = items
	return b
}

// WithSkill adds a skill proficiency bonus
func (b *CharacterBuilder) WithSkill(skill string, bonus int32) *CharacterBuilder {
	b.char.SkillProficiencies[skill] = bonus
	return b
}

// WithCurrency sets the coin purse
func (b *CharacterBuilder) WithCurrency(platinum, gold, silver, copper int32) *CharacterBuilder {
	b.char.Currency = &dnd5e.Currency{Platinum: platinum, Gold: gold, Silver: silver, Copper: copper}
	return b
}

// Build returns the built character
func (b *CharacterBuilder) Build() *dnd5e.Character {
	return b.char
}
