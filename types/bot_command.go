package types

import (
	"encoding/json"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

const (
	commandNameMin        = 1
	commandNameMax        = 32
	commandDescriptionMin = 3
	commandDescriptionMax = 256
)

// BotCommandErrorKind tells which field of a command failed validation.
type BotCommandErrorKind uint8

const (
	BadNameLen BotCommandErrorKind = iota + 1
	BadDescriptionLen
)

// BotCommandError is returned by NewBotCommand when a field length is out of
// bounds. Len is the offending length in characters.
type BotCommandError struct {
	Kind BotCommandErrorKind
	Len  int
}

func (e *BotCommandError) Error() string {
	switch e.Kind {
	case BadNameLen:
		return fmt.Sprintf("command name can have a length of %d up to %d characters, got %d",
			commandNameMin, commandNameMax, e.Len)
	case BadDescriptionLen:
		return fmt.Sprintf("command description can have a length of %d up to %d characters, got %d",
			commandDescriptionMin, commandDescriptionMax, e.Len)
	}
	return fmt.Sprintf("invalid bot command (length %d)", e.Len)
}

// BotCommand is a command shown in the bot's command menu.
type BotCommand struct {
	name        string
	description string
}

// NewBotCommand validates the lengths of name (1 to 32 characters) and
// description (3 to 256 characters). Lengths are counted in characters after
// NFC normalization.
func NewBotCommand(name, description string) (BotCommand, error) {
	name = norm.NFC.String(name)
	description = norm.NFC.String(description)
	if n := utf8.RuneCountInString(name); n < commandNameMin || n > commandNameMax {
		return BotCommand{}, &BotCommandError{Kind: BadNameLen, Len: n}
	}
	if n := utf8.RuneCountInString(description); n < commandDescriptionMin || n > commandDescriptionMax {
		return BotCommand{}, &BotCommandError{Kind: BadDescriptionLen, Len: n}
	}
	return BotCommand{name: name, description: description}, nil
}

func (c BotCommand) Name() string        { return c.name }
func (c BotCommand) Description() string { return c.description }

type botCommandJSON struct {
	Command     string `json:"command"`
	Description string `json:"description"`
}

func (c BotCommand) MarshalJSON() ([]byte, error) {
	return json.Marshal(botCommandJSON{Command: c.name, Description: c.description})
}

// UnmarshalJSON accepts commands as returned by the API without re-validating
// them.
func (c *BotCommand) UnmarshalJSON(data []byte) error {
	var raw botCommandJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*c = BotCommand{name: raw.Command, description: raw.Description}
	return nil
}
