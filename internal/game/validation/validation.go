// Package validation holds the input-validation predicates shared by
// character creation and the save layer.
package validation

import (
	"fmt"
	"strings"
)

// Rule identifies which validation rule an input violated.
type Rule string

const (
	RuleEmpty         Rule = "empty"
	RuleTooLong       Rule = "too_long"
	RuleBadCharacter  Rule = "bad_character"
	RulePathTraversal Rule = "path_traversal"
	RuleHiddenFile    Rule = "hidden_file"
)

// Error describes a rejected input.
type Error struct {
	Input   string
	Rule    Rule
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("validation: %s: %s", e.Rule, e.Message)
}

const (
	// MaxCharacterNameLen bounds character names.
	MaxCharacterNameLen = 32
	// MaxSaveNameLen bounds save slot names.
	MaxSaveNameLen = 64
)

// CharacterName validates a character name: 1-32 characters drawn from
// letters, digits, underscore, hyphen, and space.
//
// Postcondition: Returns nil if and only if the name is acceptable.
func CharacterName(name string) error {
	if name == "" {
		return &Error{Input: name, Rule: RuleEmpty, Message: "character name must be non-empty"}
	}
	if len(name) > MaxCharacterNameLen {
		return &Error{Input: name, Rule: RuleTooLong, Message: fmt.Sprintf("character name exceeds %d characters", MaxCharacterNameLen)}
	}
	for _, r := range name {
		if !isCharNameRune(r) {
			return &Error{Input: name, Rule: RuleBadCharacter, Message: fmt.Sprintf("character name contains disallowed character %q", r)}
		}
	}
	return nil
}

// SaveName validates a save slot name: 1-64 characters drawn from letters,
// digits, underscore, and hyphen. Path separators, parent-directory
// references, and leading dots are rejected so a save name can never escape
// the saves directory.
//
// Postcondition: Returns nil if and only if the name is safe to join onto
// the saves directory.
func SaveName(name string) error {
	if name == "" {
		return &Error{Input: name, Rule: RuleEmpty, Message: "save name must be non-empty"}
	}
	if len(name) > MaxSaveNameLen {
		return &Error{Input: name, Rule: RuleTooLong, Message: fmt.Sprintf("save name exceeds %d characters", MaxSaveNameLen)}
	}
	if strings.ContainsAny(name, `/\`) {
		return &Error{Input: name, Rule: RulePathTraversal, Message: "save name must not contain path separators"}
	}
	if strings.Contains(name, "..") {
		return &Error{Input: name, Rule: RulePathTraversal, Message: "save name must not contain parent directory references"}
	}
	if name[0] == '.' {
		return &Error{Input: name, Rule: RuleHiddenFile, Message: "save name must not start with a dot"}
	}
	for _, r := range name {
		if !isSaveNameRune(r) {
			return &Error{Input: name, Rule: RuleBadCharacter, Message: fmt.Sprintf("save name contains disallowed character %q", r)}
		}
	}
	return nil
}

func isCharNameRune(r rune) bool {
	return r == '_' || r == '-' || r == ' ' ||
		(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

func isSaveNameRune(r rune) bool {
	return r == '_' || r == '-' ||
		(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}
