package types

import (
	"encoding/json"
	"errors"
	"fmt"
)

// TextEntityKind is the "type" discriminator of a message entity.
type TextEntityKind string

const (
	EntityMention       TextEntityKind = "mention"
	EntityHashtag       TextEntityKind = "hashtag"
	EntityCashtag       TextEntityKind = "cashtag"
	EntityBotCommand    TextEntityKind = "bot_command"
	EntityURL           TextEntityKind = "url"
	EntityEmail         TextEntityKind = "email"
	EntityPhoneNumber   TextEntityKind = "phone_number"
	EntityBold          TextEntityKind = "bold"
	EntityItalic        TextEntityKind = "italic"
	EntityUnderline     TextEntityKind = "underline"
	EntityStrikethrough TextEntityKind = "strikethrough"
	EntitySpoiler       TextEntityKind = "spoiler"
	EntityBlockquote    TextEntityKind = "blockquote"
	EntityCode          TextEntityKind = "code"
	EntityPre           TextEntityKind = "pre"
	EntityTextLink      TextEntityKind = "text_link"
	EntityTextMention   TextEntityKind = "text_mention"
	EntityCustomEmoji   TextEntityKind = "custom_emoji"
)

var knownEntityKinds = map[TextEntityKind]bool{
	EntityMention: true, EntityHashtag: true, EntityCashtag: true, EntityBotCommand: true,
	EntityURL: true, EntityEmail: true, EntityPhoneNumber: true, EntityBold: true,
	EntityItalic: true, EntityUnderline: true, EntityStrikethrough: true, EntitySpoiler: true,
	EntityBlockquote: true, EntityCode: true, EntityPre: true, EntityTextLink: true,
	EntityTextMention: true, EntityCustomEmoji: true,
}

// Causes reported by TextEntityError.
var (
	ErrEntityEmpty       = errors.New("entity has zero length")
	ErrEntityOutOfBounds = errors.New("entity exceeds text length")
	ErrEntityIncomplete  = errors.New("entity is missing a required field")
	ErrEntityUnknown     = errors.New("unknown entity type")
)

// TextEntityError reports an entity that is invalid on its own or relative to
// the text it annotates.
type TextEntityError struct {
	Index  int
	Entity TextEntity
	Err    error
}

func (e *TextEntityError) Error() string {
	return fmt.Sprintf("text entity %d (%s %d+%d): %v", e.Index, e.Entity.Kind, e.Entity.Offset, e.Entity.Length, e.Err)
}

func (e *TextEntityError) Unwrap() error { return e.Err }

// TextEntity annotates a range of a text. Offset and Length are measured in
// UTF-16 code units.
type TextEntity struct {
	Kind   TextEntityKind `json:"type"`
	Offset int            `json:"offset"`
	Length int            `json:"length"`
	// URL is set for text_link.
	URL string `json:"url,omitempty"`
	// User is set for text_mention.
	User *User `json:"user,omitempty"`
	// Language is the optional language of a pre block.
	Language string `json:"language,omitempty"`
	// CustomEmojiID is set for custom_emoji.
	CustomEmojiID string `json:"custom_emoji_id,omitempty"`
}

func entity(kind TextEntityKind, offset, length int) TextEntity {
	return TextEntity{Kind: kind, Offset: offset, Length: length}
}

func EntityBoldAt(offset, length int) TextEntity      { return entity(EntityBold, offset, length) }
func EntityItalicAt(offset, length int) TextEntity    { return entity(EntityItalic, offset, length) }
func EntityUnderlineAt(offset, length int) TextEntity { return entity(EntityUnderline, offset, length) }
func EntityStrikethroughAt(offset, length int) TextEntity {
	return entity(EntityStrikethrough, offset, length)
}
func EntitySpoilerAt(offset, length int) TextEntity { return entity(EntitySpoiler, offset, length) }
func EntityBlockquoteAt(offset, length int) TextEntity {
	return entity(EntityBlockquote, offset, length)
}
func EntityCodeAt(offset, length int) TextEntity { return entity(EntityCode, offset, length) }

// EntityPreAt marks a preformatted block; language may be empty.
func EntityPreAt(offset, length int, language string) TextEntity {
	e := entity(EntityPre, offset, length)
	e.Language = language
	return e
}

// EntityTextLinkAt makes the range a clickable link to url.
func EntityTextLinkAt(offset, length int, url string) TextEntity {
	e := entity(EntityTextLink, offset, length)
	e.URL = url
	return e
}

// EntityTextMentionAt mentions a user without a username.
func EntityTextMentionAt(offset, length int, user User) TextEntity {
	e := entity(EntityTextMention, offset, length)
	e.User = &user
	return e
}

func EntityCustomEmojiAt(offset, length int, emojiID string) TextEntity {
	e := entity(EntityCustomEmoji, offset, length)
	e.CustomEmojiID = emojiID
	return e
}

// Known reports whether the entity kind is one this package can send.
// Received text may carry newer kinds, which are kept as they are.
func (e TextEntity) Known() bool { return knownEntityKinds[e.Kind] }

// End returns the UTF-16 offset just past the entity.
func (e TextEntity) End() int { return e.Offset + e.Length }

// Validate checks the entity in isolation.
func (e TextEntity) Validate() error {
	switch {
	case !knownEntityKinds[e.Kind]:
		return ErrEntityUnknown
	case e.Length <= 0 || e.Offset < 0:
		return ErrEntityEmpty
	case e.Kind == EntityTextLink && e.URL == "",
		e.Kind == EntityTextMention && e.User == nil,
		e.Kind == EntityCustomEmoji && e.CustomEmojiID == "":
		return ErrEntityIncomplete
	}
	return nil
}

func (e TextEntity) MarshalJSON() ([]byte, error) {
	if err := e.Validate(); err != nil {
		return nil, &TextEntityError{Entity: e, Err: err}
	}
	type plain TextEntity
	return json.Marshal(plain(e))
}

// ValidateEntities validates each entity and, when textLen is non-negative,
// checks that it fits in a text of textLen UTF-16 code units.
func ValidateEntities(entities []TextEntity, textLen int) error {
	for i, e := range entities {
		if err := e.Validate(); err != nil {
			return &TextEntityError{Index: i, Entity: e, Err: err}
		}
		if textLen >= 0 && e.End() > textLen {
			return &TextEntityError{Index: i, Entity: e, Err: ErrEntityOutOfBounds}
		}
	}
	return nil
}

// checkRanges checks only that each entity is a non-empty range inside a text
// of textLen UTF-16 code units. It is used for received text, whose entity
// kinds may be newer than the ones known here.
func checkRanges(entities []TextEntity, textLen int) error {
	for i, e := range entities {
		switch {
		case e.Length <= 0 || e.Offset < 0:
			return &TextEntityError{Index: i, Entity: e, Err: ErrEntityEmpty}
		case e.End() > textLen:
			return &TextEntityError{Index: i, Entity: e, Err: ErrEntityOutOfBounds}
		}
	}
	return nil
}

// wireEntity encodes an entity without validation, for records that echo
// back what the server sent.
type wireEntity TextEntity

func wireEntities(entities []TextEntity) []wireEntity {
	if entities == nil {
		return nil
	}
	out := make([]wireEntity, len(entities))
	for i, e := range entities {
		out[i] = wireEntity(e)
	}
	return out
}

// SerializeTextEntities validates entities and encodes them as a JSON array
// for use in a form field.
func SerializeTextEntities(entities []TextEntity) (string, error) {
	if err := ValidateEntities(entities, -1); err != nil {
		return "", err
	}
	data, err := json.Marshal(entities)
	if err != nil {
		return "", &TextEntityError{Index: -1, Err: err}
	}
	return string(data), nil
}
