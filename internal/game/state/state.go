// Package state defines the GameState root aggregate that owns every piece
// of mutable game data for one session.
package state

import (
	"fmt"

	"github.com/wastelandrpg/wasteland/internal/game/character"
	"github.com/wastelandrpg/wasteland/internal/game/combat"
	"github.com/wastelandrpg/wasteland/internal/game/conversation"
	"github.com/wastelandrpg/wasteland/internal/game/worldbook"
)

const (
	// StartingLocation is the location id every new game begins at.
	StartingLocation = "vault_13"
	// StartingQuest seeds the quest log on a new game.
	StartingQuest = "Find a replacement water chip for Vault 13."
)

// GameState is the root aggregate. It exclusively owns the character, the
// combat encounter, the worldbook, and the conversation log; all mutation
// flows through one session at a time.
type GameState struct {
	Character    character.Character       `json:"character"`
	Combat       combat.Encounter          `json:"combat"`
	Conversation conversation.Conversation `json:"conversation"`

	// Story carries legacy plain-text summaries mirrored from the
	// conversation log for older save compatibility.
	Story []string `json:"story"`

	Location  string              `json:"location"`
	Day       int                 `json:"day"`
	QuestLog  []string            `json:"quest_log"`
	Worldbook worldbook.Worldbook `json:"worldbook"`
}

// New creates a fresh GameState owning c, positioned at the starting
// location on day 1 with the canonical opening quest and default worldbook.
func New(c character.Character) *GameState {
	return &GameState{
		Character:    c,
		Combat:       combat.NewEncounter(),
		Conversation: conversation.New(),
		Location:     StartingLocation,
		Day:          1,
		QuestLog:     []string{StartingQuest},
		Worldbook:    *worldbook.WithDefaults(),
	}
}

// RecordPlayerTurn appends a player utterance to both the conversation log
// and the legacy story log.
func (g *GameState) RecordPlayerTurn(message string) {
	g.Conversation.AddPlayerTurn(message)
	g.Story = append(g.Story, "PLAYER: "+message)
}

// RecordDMTurn appends a dungeon-master utterance to both logs.
func (g *GameState) RecordDMTurn(message string) {
	g.Conversation.AddDMTurn(message)
	g.Story = append(g.Story, "DM: "+message)
}

// AddQuest appends an entry to the quest log.
func (g *GameState) AddQuest(quest string) {
	g.QuestLog = append(g.QuestLog, quest)
}

// ValidateInvariants checks every cross-component invariant the save layer
// revalidates on load, collecting all violations.
//
// Postcondition: Returns nil if and only if the state is internally
// consistent.
func (g *GameState) ValidateInvariants() error {
	var errs []error
	if err := g.Character.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := g.Combat.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := g.Worldbook.Validate(); err != nil {
		errs = append(errs, err)
	}
	if g.Day < 1 {
		errs = append(errs, fmt.Errorf("state: day must be >= 1, got %d", g.Day))
	}
	if g.Location == "" {
		errs = append(errs, fmt.Errorf("state: location must be non-empty"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("game state validation failed: %v", errs)
	}
	return nil
}
