package types

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// ChatID identifies a chat either by its numeric id or by the username of a
// channel or supergroup (in the form "@channelusername").
type ChatID struct {
	id       int64
	username string
}

// ChatIDInt returns a ChatID for a numeric chat identifier.
func ChatIDInt(id int64) ChatID {
	return ChatID{id: id}
}

// ChatIDUsername returns a ChatID for a channel or supergroup username.
func ChatIDUsername(username string) ChatID {
	return ChatID{username: username}
}

// Int returns the numeric id, reporting false when the ChatID is a username.
func (c ChatID) Int() (int64, bool) {
	return c.id, c.username == ""
}

// Username returns the username, reporting false when the ChatID is numeric.
func (c ChatID) Username() (string, bool) {
	return c.username, c.username != ""
}

// String returns the form-field representation of the id.
func (c ChatID) String() string {
	if c.username != "" {
		return c.username
	}
	return strconv.FormatInt(c.id, 10)
}

func (c ChatID) MarshalJSON() ([]byte, error) {
	if c.username != "" {
		return json.Marshal(c.username)
	}
	return []byte(strconv.FormatInt(c.id, 10)), nil
}

func (c *ChatID) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = ChatID{username: s}
		return nil
	}
	var id int64
	if err := json.Unmarshal(data, &id); err != nil {
		return fmt.Errorf("chat id: %w", err)
	}
	*c = ChatID{id: id}
	return nil
}
