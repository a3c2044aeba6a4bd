// Package worldbook is the structured world knowledge base: locations, NPCs,
// and events, plus the deterministic text serializer that feeds the dungeon
// master's prompt.
package worldbook

import (
	"fmt"
	"sort"
	"strings"
)

// RecentEventLimit caps how many events the context block emits.
const RecentEventLimit = 10

// UnknownLocation is the sentinel location id for NPCs whose whereabouts are
// not tracked.
const UnknownLocation = "unknown"

// Location is a place the player can know about.
type Location struct {
	Name               string   `json:"name"`
	Description        string   `json:"description"`
	Region             string   `json:"region"`
	NotableFeatures    []string `json:"notable_features"`
	ConnectedLocations []string `json:"connected_locations"`
}

// NPC is a named character in the world.
type NPC struct {
	Name          string   `json:"name"`
	Role          string   `json:"role"`
	LocationID    string   `json:"location_id"`
	Disposition   string   `json:"disposition"`
	DialogueHooks []string `json:"dialogue_hooks"`
}

// Event is something that happened on a given in-game day.
type Event struct {
	Day          int      `json:"day"`
	Summary      string   `json:"summary"`
	Participants []string `json:"participants"`
}

// Worldbook holds three separately-keyed maps. All read paths are
// insertion-order independent so serialized output is reproducible.
type Worldbook struct {
	Locations map[string]Location `json:"locations"`
	NPCs      map[string]NPC      `json:"npcs"`
	Events    map[string]Event    `json:"events"`
}

// New returns an empty Worldbook with initialized maps.
func New() *Worldbook {
	return &Worldbook{
		Locations: make(map[string]Location),
		NPCs:      make(map[string]NPC),
		Events:    make(map[string]Event),
	}
}

// WithDefaults returns a Worldbook seeded with the canonical starting set:
// the home vault, the wasteland outside it, the Overseer, and the opening
// event.
func WithDefaults() *Worldbook {
	w := New()
	w.AddLocation("vault_13", Location{
		Name:               "Vault 13",
		Description:        "An underground survival shelter, home for generations.",
		Region:             "Southern Wastes",
		NotableFeatures:    []string{"water purification chip", "sealed vault door"},
		ConnectedLocations: []string{"wasteland_outskirts"},
	})
	w.AddLocation("wasteland_outskirts", Location{
		Name:               "Wasteland Outskirts",
		Description:        "Cracked earth and rusted wreckage stretching to the horizon.",
		Region:             "Southern Wastes",
		NotableFeatures:    []string{"ruined highway", "radscorpion burrows"},
		ConnectedLocations: []string{"vault_13"},
	})
	w.AddNPC("overseer", NPC{
		Name:          "The Overseer",
		Role:          "vault administrator",
		LocationID:    "vault_13",
		Disposition:   "stern",
		DialogueHooks: []string{"the water chip has failed", "the vault's time is running out"},
	})
	w.AddEvent("vault_door_opened", Event{
		Day:          1,
		Summary:      "The great door of Vault 13 opened for the first time in decades.",
		Participants: []string{"overseer"},
	})
	return w
}

// EnsureMaps replaces nil maps left by sparse JSON with empty ones so
// callers can insert without checking.
func (w *Worldbook) EnsureMaps() {
	if w.Locations == nil {
		w.Locations = make(map[string]Location)
	}
	if w.NPCs == nil {
		w.NPCs = make(map[string]NPC)
	}
	if w.Events == nil {
		w.Events = make(map[string]Event)
	}
}

// AddLocation inserts or replaces a location.
func (w *Worldbook) AddLocation(id string, loc Location) { w.Locations[id] = loc }

// AddNPC inserts or replaces an NPC.
func (w *Worldbook) AddNPC(id string, npc NPC) { w.NPCs[id] = npc }

// AddEvent inserts or replaces an event.
func (w *Worldbook) AddEvent(id string, ev Event) { w.Events[id] = ev }

// Location returns the location with the given id.
func (w *Worldbook) Location(id string) (Location, bool) {
	loc, ok := w.Locations[id]
	return loc, ok
}

// NPC returns the NPC with the given id.
func (w *Worldbook) NPC(id string) (NPC, bool) {
	npc, ok := w.NPCs[id]
	return npc, ok
}

// Event returns the event with the given id.
func (w *Worldbook) Event(id string) (Event, bool) {
	ev, ok := w.Events[id]
	return ev, ok
}

// Validate checks referential integrity: every NPC's location either exists
// or is the "unknown" sentinel.
//
// Postcondition: Returns nil if and only if all references resolve.
func (w *Worldbook) Validate() error {
	var errs []error
	ids := make([]string, 0, len(w.NPCs))
	for id := range w.NPCs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		npc := w.NPCs[id]
		if npc.LocationID == UnknownLocation {
			continue
		}
		if _, ok := w.Locations[npc.LocationID]; !ok {
			errs = append(errs, fmt.Errorf("worldbook: npc %q references unknown location %q", id, npc.LocationID))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("worldbook validation failed: %v", errs)
	}
	return nil
}

// BuildContext renders the worldbook as the fixed-format text block consumed
// by the dungeon master prompt. Output is deterministic: sections in fixed
// order, entries sorted lexicographically by id, events by day ascending then
// id, and only the last 10 events emitted.
//
// Postcondition: identical map contents produce byte-identical output.
func (w *Worldbook) BuildContext() string {
	var b strings.Builder

	b.WriteString("## Known Locations\n")
	for _, id := range sortedKeys(w.Locations) {
		loc := w.Locations[id]
		fmt.Fprintf(&b, "- %s: %s — %s\n", id, loc.Name, loc.Description)
		fmt.Fprintf(&b, "  Region: %s; Features: %s\n", loc.Region, strings.Join(loc.NotableFeatures, ", "))
	}

	b.WriteString("\n## Known NPCs\n")
	for _, id := range sortedKeys(w.NPCs) {
		npc := w.NPCs[id]
		fmt.Fprintf(&b, "- %s: %s (%s) at %s, disposition %s\n", id, npc.Name, npc.Role, npc.LocationID, npc.Disposition)
	}

	b.WriteString("\n## Recent Events (last 10, chronological)\n")
	for _, id := range recentEventIDs(w.Events, RecentEventLimit) {
		ev := w.Events[id]
		fmt.Fprintf(&b, "- Day %d: %s\n", ev.Day, ev.Summary)
	}

	return b.String()
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// recentEventIDs sorts events by day ascending then id and keeps the last n.
func recentEventIDs(events map[string]Event, n int) []string {
	ids := sortedKeys(events)
	sort.SliceStable(ids, func(i, j int) bool {
		return events[ids[i]].Day < events[ids[j]].Day
	})
	if len(ids) > n {
		ids = ids[len(ids)-n:]
	}
	return ids
}
