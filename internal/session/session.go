// Package session runs the interactive terminal loop: it owns the GameState
// for its lifetime and is the only writer to it, per the single-session
// ownership rule. Autosave happens cooperatively between commands, never
// from a background goroutine.
package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/wastelandrpg/wasteland/internal/ai"
	"github.com/wastelandrpg/wasteland/internal/game/character"
	"github.com/wastelandrpg/wasteland/internal/game/combat"
	"github.com/wastelandrpg/wasteland/internal/game/handlers"
	"github.com/wastelandrpg/wasteland/internal/game/special"
	"github.com/wastelandrpg/wasteland/internal/game/state"
	"github.com/wastelandrpg/wasteland/internal/persistence"
)

// Options configures a Session.
type Options struct {
	// Input is the command source, normally os.Stdin.
	Input io.Reader
	// Output is where game text is written, normally os.Stdout.
	Output io.Writer
	// Store persists saves.
	Store *persistence.Store
	// Handler executes game actions.
	Handler *handlers.Handler
	// DM is the optional LLM dungeon master; nil disables narration.
	DM ai.Client
	// AutosaveInterval is how often to autosave between commands; zero
	// disables autosave.
	AutosaveInterval time.Duration
	// AutosaveSlot is the save name used for autosaves.
	AutosaveSlot string
	// Logger receives session diagnostics.
	Logger *zap.Logger
}

// Session is the interactive game loop. It implements server.Service.
type Session struct {
	in     *bufio.Scanner
	out    io.Writer
	store  *persistence.Store
	h      *handlers.Handler
	dm     ai.Client
	logger *zap.Logger

	autosaveInterval time.Duration
	autosaveSlot     string
	lastAutosave     time.Time

	game    *state.GameState
	stopped atomic.Bool
}

// New creates a Session from opts.
//
// Precondition: Input, Output, Store, and Handler are non-nil; a nil Logger
// is replaced by a no-op logger.
func New(opts Options) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		in:               bufio.NewScanner(opts.Input),
		out:              opts.Output,
		store:            opts.Store,
		h:                opts.Handler,
		dm:               opts.DM,
		logger:           logger,
		autosaveInterval: opts.AutosaveInterval,
		autosaveSlot:     opts.AutosaveSlot,
		lastAutosave:     time.Now(),
	}
}

// Start runs the command loop until EOF, "quit", or Stop.
func (s *Session) Start() error {
	s.printf("Welcome to the wasteland.")
	s.printf("Commands: new <name> | load <name> | save <name> | saves | look | status | hunt | attack <n> | use <item> | equip <item> | rest | travel <place> | say <text> | quit")

	for !s.stopped.Load() {
		s.printf("")
		if !s.in.Scan() {
			break
		}
		line := strings.TrimSpace(s.in.Text())
		if line == "" {
			continue
		}
		if s.dispatch(line) {
			break
		}
		s.maybeAutosave()
	}
	s.finalAutosave()
	return s.in.Err()
}

// Stop requests the loop to exit after the current command.
func (s *Session) Stop() {
	s.stopped.Store(true)
}

// dispatch runs one command line; it returns true when the session should
// end.
func (s *Session) dispatch(line string) (quit bool) {
	cmd, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch strings.ToLower(cmd) {
	case "quit", "exit":
		return true
	case "new":
		s.cmdNew(arg)
	case "load":
		s.cmdLoad(arg)
	case "save":
		s.cmdSave(arg)
	case "saves":
		s.cmdSaves()
	case "look":
		s.withGame(func() { s.cmdLook() })
	case "status":
		s.withGame(func() { s.cmdStatus() })
	case "hunt":
		s.withGame(func() { s.cmdHunt() })
	case "attack":
		s.withGame(func() { s.cmdAttack(arg) })
	case "use":
		s.withGame(func() { s.cmdUse(arg) })
	case "equip":
		s.withGame(func() { s.cmdEquip(arg) })
	case "rest":
		s.withGame(func() { s.cmdRest() })
	case "travel":
		s.withGame(func() { s.cmdTravel(arg) })
	case "say":
		s.withGame(func() { s.cmdSay(arg) })
	default:
		s.printf("Unknown command %q.", cmd)
	}
	return false
}

func (s *Session) withGame(fn func()) {
	if s.game == nil {
		s.printf("No game in progress. Use 'new <name>' or 'load <name>' first.")
		return
	}
	fn()
}

func (s *Session) cmdNew(name string) {
	c, err := character.New(name, special.Default())
	if err != nil {
		s.printf("Cannot create character: %v", err)
		return
	}
	s.game = state.New(*c)
	s.printf("%s steps out of the vault. HP %d/%d, AP %d/%d.",
		c.Name, c.HP, c.MaxHP, c.AP, c.MaxAP)
}

func (s *Session) cmdLoad(name string) {
	g, err := s.store.Load(name)
	if err != nil {
		s.printf("Cannot load %q: %v", name, err)
		return
	}
	s.game = g
	s.printf("Loaded %q: %s at %s, day %d.", name, g.Character.Name, g.Location, g.Day)
}

func (s *Session) cmdSave(name string) {
	if s.game == nil {
		s.printf("Nothing to save.")
		return
	}
	if err := s.store.Save(s.game, name); err != nil {
		s.printf("Cannot save %q: %v", name, err)
		return
	}
	s.printf("Saved %q.", name)
}

func (s *Session) cmdSaves() {
	names, err := s.store.List()
	if err != nil {
		s.printf("Cannot list saves: %v", err)
		return
	}
	if len(names) == 0 {
		s.printf("No saves yet.")
		return
	}
	s.printf("Saves: %s", strings.Join(names, ", "))
}

func (s *Session) cmdLook() {
	loc, ok := s.game.Worldbook.Location(s.game.Location)
	if !ok {
		s.printf("You are somewhere off the map (%s).", s.game.Location)
		return
	}
	s.printf("%s — %s", loc.Name, loc.Description)
	if len(loc.ConnectedLocations) > 0 {
		s.printf("Paths lead to: %s", strings.Join(loc.ConnectedLocations, ", "))
	}
	if s.game.Combat.Active {
		for i := range s.game.Combat.Enemies {
			e := &s.game.Combat.Enemies[i]
			s.printf("  [%d] %s — HP %d/%d", i, e.Name, e.CurrentHP, e.MaxHP)
		}
	}
}

func (s *Session) cmdStatus() {
	c := &s.game.Character
	s.printf("%s — level %d (%d XP), HP %d/%d, AP %d/%d, caps %d, day %d",
		c.Name, c.Level, c.Experience, c.HP, c.MaxHP, c.AP, c.MaxAP, c.Caps, s.game.Day)
	for _, it := range c.Inventory {
		s.printf("  %dx %s", it.Quantity, it.Name)
	}
}

// cmdHunt starts a scripted encounter scaled to the character's level.
func (s *Session) cmdHunt() {
	level := s.game.Character.Level
	enemies := []combat.Enemy{combat.Raider(level), combat.Radroach(level)}
	if err := s.h.StartEncounter(s.game, enemies); err != nil {
		s.printf("Cannot start a fight: %v", err)
		return
	}
	s.printf("Hostiles! %d enemies close in.", len(enemies))
}

func (s *Session) cmdAttack(arg string) {
	target := 0
	if arg != "" {
		t, err := strconv.Atoi(arg)
		if err != nil {
			s.printf("Attack which enemy? Use a number.")
			return
		}
		target = t
	}

	report, err := s.h.AttackEnemy(s.game, target)
	if err != nil {
		s.printf("Attack failed: %v", err)
		return
	}
	switch {
	case report.Critical:
		s.printf("Critical hit! %s takes %d damage.", report.TargetName, report.Damage)
	case report.Hit:
		s.printf("%s takes %d damage.", report.TargetName, report.Damage)
	default:
		s.printf("You miss %s.", report.TargetName)
	}
	if report.TargetDown {
		s.printf("%s goes down.", report.TargetName)
	}
	if report.Victory {
		s.printf("Victory! +%d XP.", report.XPAwarded)
		if report.LevelsUp > 0 {
			s.printf("Level up! You are now level %d.", s.game.Character.Level)
		}
		return
	}

	attacks, err := s.h.EnemyPhase(s.game)
	if err != nil {
		s.printf("Enemy phase failed: %v", err)
		return
	}
	for _, atk := range attacks {
		if atk.Hit {
			s.printf("%s hits you for %d.", atk.EnemyName, atk.Damage)
		} else {
			s.printf("%s misses you.", atk.EnemyName)
		}
	}
	if !s.game.Character.IsAlive() {
		s.printf("You have died. The wasteland claims another.")
		s.game.Combat.EndCombat()
	}
}

func (s *Session) cmdUse(id string) {
	msg, err := s.h.UseConsumable(s.game, id)
	if err != nil {
		s.printf("Cannot use %q: %v", id, err)
		return
	}
	s.printf("%s", msg)
}

func (s *Session) cmdEquip(id string) {
	if err := s.game.Character.EquipWeapon(id); err == nil {
		s.printf("Equipped %s.", id)
		return
	}
	if err := s.game.Character.EquipArmor(id); err != nil {
		s.printf("Cannot equip %q: %v", id, err)
		return
	}
	s.printf("Wearing %s.", id)
}

func (s *Session) cmdRest() {
	if err := s.h.Rest(s.game); err != nil {
		s.printf("Cannot rest: %v", err)
		return
	}
	s.printf("You rest. Day %d dawns. HP %d/%d, AP restored.",
		s.game.Day, s.game.Character.HP, s.game.Character.MaxHP)
}

func (s *Session) cmdTravel(dest string) {
	if err := s.h.Travel(s.game, dest); err != nil {
		s.printf("Cannot travel: %v", err)
		return
	}
	loc, _ := s.game.Worldbook.Location(dest)
	s.printf("You arrive at %s.", loc.Name)
}

func (s *Session) cmdSay(text string) {
	if text == "" {
		s.printf("Say what?")
		return
	}
	s.game.RecordPlayerTurn(text)

	if s.dm == nil {
		reply := "The wasteland does not answer."
		s.game.RecordDMTurn(reply)
		s.printf("%s", reply)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()
	reply, err := s.dm.Respond(ctx, ai.BuildSystem(s.game), ai.BuildPrompt(s.game, text))
	if err != nil {
		s.logger.Warn("dm request failed", zap.Error(err))
		s.printf("The DM is silent. (%v)", err)
		return
	}
	s.game.RecordDMTurn(reply)
	s.printf("%s", reply)
}

// maybeAutosave saves to the autosave slot when the interval has elapsed.
// Runs inside the command loop so the single-owner rule holds.
func (s *Session) maybeAutosave() {
	if s.game == nil || s.autosaveInterval <= 0 || s.autosaveSlot == "" {
		return
	}
	if time.Since(s.lastAutosave) < s.autosaveInterval {
		return
	}
	s.autosave()
}

func (s *Session) finalAutosave() {
	if s.game == nil || s.autosaveSlot == "" {
		return
	}
	s.autosave()
}

func (s *Session) autosave() {
	if err := s.store.Save(s.game, s.autosaveSlot); err != nil {
		if !errors.Is(err, persistence.ErrIO) {
			s.logger.Warn("autosave failed", zap.Error(err))
		} else {
			s.logger.Error("autosave io failure", zap.Error(err))
		}
		return
	}
	s.lastAutosave = time.Now()
	s.logger.Debug("autosaved", zap.String("slot", s.autosaveSlot))
}

func (s *Session) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format+"\n", args...)
}
