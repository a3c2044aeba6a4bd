// Package special defines the seven SPECIAL attributes and the point-buy
// allocator used during character creation.
package special

import "fmt"

// Stat bounds and the creation point budget.
const (
	// MinStat is the lowest legal value for any SPECIAL attribute.
	MinStat = 1
	// MaxStat is the highest legal value for any SPECIAL attribute.
	MaxStat = 10
	// PointBudget is the maximum total points spendable across all seven stats.
	PointBudget = 40
	// StatCount is the number of SPECIAL attributes.
	StatCount = 7
)

// Special holds the seven primary character attributes.
// Each value is an integer in [MinStat, MaxStat].
type Special struct {
	Strength     int `json:"strength"`
	Perception   int `json:"perception"`
	Endurance    int `json:"endurance"`
	Charisma     int `json:"charisma"`
	Intelligence int `json:"intelligence"`
	Agility      int `json:"agility"`
	Luck         int `json:"luck"`
}

// Default returns a Special with every attribute at 5.
//
// Postcondition: TotalPoints() == 35 and Validate() == nil.
func Default() Special {
	return Special{
		Strength:     5,
		Perception:   5,
		Endurance:    5,
		Charisma:     5,
		Intelligence: 5,
		Agility:      5,
		Luck:         5,
	}
}

// TotalPoints returns the sum of all seven attributes.
func (s Special) TotalPoints() int {
	return s.Strength + s.Perception + s.Endurance + s.Charisma +
		s.Intelligence + s.Agility + s.Luck
}

// Validate checks that every attribute is in [MinStat, MaxStat] and the
// total does not exceed PointBudget.
//
// Postcondition: Returns nil iff the Special is legal.
func (s Special) Validate() error {
	for i, v := range s.values() {
		if v < MinStat || v > MaxStat {
			return fmt.Errorf("special: %s must be in [%d, %d], got %d",
				StatNames[i], MinStat, MaxStat, v)
		}
	}
	if total := s.TotalPoints(); total > PointBudget {
		return fmt.Errorf("special: total points %d exceed budget %d", total, PointBudget)
	}
	return nil
}

func (s Special) values() [StatCount]int {
	return [StatCount]int{
		s.Strength, s.Perception, s.Endurance, s.Charisma,
		s.Intelligence, s.Agility, s.Luck,
	}
}

// StatNames lists the attribute names in canonical SPECIAL order.
var StatNames = [StatCount]string{
	"strength", "perception", "endurance", "charisma",
	"intelligence", "agility", "luck",
}

// Allocator tracks a mutable set of seven stat values during point-buy
// character creation.
//
// Invariant: PointsSpent() == sum of all stats and is in [7, PointBudget];
// every stat is in [MinStat, MaxStat].
type Allocator struct {
	stats       [StatCount]int
	pointsSpent int
}

// NewAllocator returns an Allocator with every stat at MinStat.
//
// Postcondition: PointsSpent() == StatCount * MinStat.
func NewAllocator() *Allocator {
	a := &Allocator{}
	a.Reset()
	return a
}

// Increase raises stat i by one point.
//
// Precondition: 0 <= i < StatCount.
// Postcondition: Returns true iff the stat was below MaxStat and points
// remained in the budget; on true, both the stat and PointsSpent grew by one.
func (a *Allocator) Increase(i int) bool {
	if a.stats[i] >= MaxStat || a.pointsSpent >= PointBudget {
		return false
	}
	a.stats[i]++
	a.pointsSpent++
	return true
}

// Decrease lowers stat i by one point.
//
// Precondition: 0 <= i < StatCount.
// Postcondition: Returns true iff the stat was above MinStat; on true, both
// the stat and PointsSpent shrank by one.
func (a *Allocator) Decrease(i int) bool {
	if a.stats[i] <= MinStat {
		return false
	}
	a.stats[i]--
	a.pointsSpent--
	return true
}

// Reset returns every stat to MinStat so the allocator can be reused.
func (a *Allocator) Reset() {
	for i := range a.stats {
		a.stats[i] = MinStat
	}
	a.pointsSpent = StatCount * MinStat
}

// Stat returns the current value of stat i.
//
// Precondition: 0 <= i < StatCount.
func (a *Allocator) Stat(i int) int { return a.stats[i] }

// PointsSpent returns the running total of allocated points.
func (a *Allocator) PointsSpent() int { return a.pointsSpent }

// Remaining returns how many points may still be allocated.
//
// Postcondition: result >= 0.
func (a *Allocator) Remaining() int { return PointBudget - a.pointsSpent }

// Special materializes the allocator's current values as a Special.
func (a *Allocator) Special() Special {
	return Special{
		Strength:     a.stats[0],
		Perception:   a.stats[1],
		Endurance:    a.stats[2],
		Charisma:     a.stats[3],
		Intelligence: a.stats[4],
		Agility:      a.stats[5],
		Luck:         a.stats[6],
	}
}
