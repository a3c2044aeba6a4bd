package session_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wastelandrpg/wasteland/internal/game/dice"
	"github.com/wastelandrpg/wasteland/internal/game/handlers"
	"github.com/wastelandrpg/wasteland/internal/persistence"
	"github.com/wastelandrpg/wasteland/internal/session"
)

func run(t *testing.T, store *persistence.Store, script string) string {
	t.Helper()
	var out strings.Builder
	s := session.New(session.Options{
		Input:        strings.NewReader(script),
		Output:       &out,
		Store:        store,
		Handler:      handlers.New(dice.NewLoggedRoller(dice.NewCryptoSource(), nil), nil),
		AutosaveSlot: "autosave",
	})
	require.NoError(t, s.Start())
	return out.String()
}

func newStore(t *testing.T) *persistence.Store {
	t.Helper()
	return persistence.NewStore(persistence.WithDir(t.TempDir()))
}

func TestSession_NewCharacterAndStatus(t *testing.T) {
	out := run(t, newStore(t), "new Hero\nstatus\nquit\n")

	assert.Contains(t, out, "Hero steps out of the vault.")
	assert.Contains(t, out, "Hero — level 1")
	assert.Contains(t, out, "10mm Pistol")
}

func TestSession_RejectsBadName(t *testing.T) {
	out := run(t, newStore(t), "new bad!name\nquit\n")
	assert.Contains(t, out, "Cannot create character")
}

func TestSession_CommandsNeedGame(t *testing.T) {
	out := run(t, newStore(t), "look\nquit\n")
	assert.Contains(t, out, "No game in progress")
}

func TestSession_SaveAndLoad(t *testing.T) {
	store := newStore(t)

	out := run(t, store, "new Hero\nsave slot1\nquit\n")
	assert.Contains(t, out, `Saved "slot1".`)

	out = run(t, store, "load slot1\nstatus\nquit\n")
	assert.Contains(t, out, `Loaded "slot1"`)
	assert.Contains(t, out, "Hero — level 1")
}

func TestSession_SaveRejectsTraversal(t *testing.T) {
	out := run(t, newStore(t), "new Hero\nsave ../evil\nquit\n")
	assert.Contains(t, out, "Cannot save")
}

func TestSession_Travel(t *testing.T) {
	out := run(t, newStore(t), "new Hero\ntravel wasteland_outskirts\nlook\nquit\n")
	assert.Contains(t, out, "You arrive at Wasteland Outskirts.")
	assert.Contains(t, out, "Cracked earth")
}

func TestSession_HuntStartsCombat(t *testing.T) {
	out := run(t, newStore(t), "new Hero\nhunt\nrest\nquit\n")
	assert.Contains(t, out, "Hostiles!")
	assert.Contains(t, out, "Cannot rest", "resting mid-combat is refused")
}

func TestSession_SayWithoutDM(t *testing.T) {
	out := run(t, newStore(t), "new Hero\nsay hello?\nquit\n")
	assert.Contains(t, out, "The wasteland does not answer.")
}

func TestSession_FinalAutosaveOnQuit(t *testing.T) {
	store := newStore(t)
	run(t, store, "new Hero\nquit\n")

	g, err := store.Load("autosave")
	require.NoError(t, err)
	assert.Equal(t, "Hero", g.Character.Name)
}

func TestSession_IntervalAutosave(t *testing.T) {
	store := newStore(t)
	var out strings.Builder
	s := session.New(session.Options{
		Input:            strings.NewReader("new Hero\nstatus\nquit\n"),
		Output:           &out,
		Store:            store,
		Handler:          handlers.New(dice.NewLoggedRoller(dice.NewCryptoSource(), nil), nil),
		AutosaveInterval: time.Nanosecond,
		AutosaveSlot:     "autosave",
	})
	require.NoError(t, s.Start())

	_, err := store.Load("autosave")
	assert.NoError(t, err)
}

func TestSession_UnknownCommand(t *testing.T) {
	out := run(t, newStore(t), "dance\nquit\n")
	assert.Contains(t, out, "Unknown command")
}
