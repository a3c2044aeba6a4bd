// Package conversation records the dialogue between the player and the
// dungeon master. The log is append-only; turns are never edited.
package conversation

// Role tags who spoke a turn.
type Role string

const (
	RolePlayer Role = "player"
	RoleDM     Role = "dm"
)

// Turn is one utterance in the dialogue.
type Turn struct {
	Role    Role   `json:"role"`
	Message string `json:"message"`
	Number  int    `json:"number"` // 1-based position in the log
}

// Conversation is the ordered, append-only dialogue log. Adjacent same-role
// turns are permitted.
type Conversation struct {
	Turns []Turn `json:"turns"`
}

// New returns an empty conversation.
func New() Conversation {
	return Conversation{}
}

// AddPlayerTurn appends a player utterance.
func (c *Conversation) AddPlayerTurn(message string) {
	c.append(RolePlayer, message)
}

// AddDMTurn appends a dungeon-master utterance.
func (c *Conversation) AddDMTurn(message string) {
	c.append(RoleDM, message)
}

func (c *Conversation) append(role Role, message string) {
	c.Turns = append(c.Turns, Turn{
		Role:    role,
		Message: message,
		Number:  len(c.Turns) + 1,
	})
}

// Recent returns the last n turns, saturating when fewer exist. The returned
// slice aliases the log and must not be mutated.
func (c *Conversation) Recent(n int) []Turn {
	if n <= 0 {
		return nil
	}
	if n >= len(c.Turns) {
		return c.Turns
	}
	return c.Turns[len(c.Turns)-n:]
}

// Len returns the number of turns recorded.
func (c *Conversation) Len() int { return len(c.Turns) }
