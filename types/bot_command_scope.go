package types

import (
	"encoding/json"
	"fmt"
)

// BotCommandScopeKind is the "type" discriminator of a BotCommandScope.
type BotCommandScopeKind string

const (
	ScopeDefault               BotCommandScopeKind = "default"
	ScopeAllPrivateChats       BotCommandScopeKind = "all_private_chats"
	ScopeAllGroupChats         BotCommandScopeKind = "all_group_chats"
	ScopeAllChatAdministrators BotCommandScopeKind = "all_chat_administrators"
	ScopeChat                  BotCommandScopeKind = "chat"
	ScopeChatAdministrators    BotCommandScopeKind = "chat_administrators"
	ScopeChatMember            BotCommandScopeKind = "chat_member"
)

// BotCommandScope narrows the users a command list applies to. The zero value
// is the default scope.
type BotCommandScope struct {
	kind   BotCommandScopeKind
	chatID ChatID
	userID int64
}

func ScopeDefaultAll() BotCommandScope { return BotCommandScope{kind: ScopeDefault} }
func ScopeAllPrivate() BotCommandScope { return BotCommandScope{kind: ScopeAllPrivateChats} }
func ScopeAllGroups() BotCommandScope  { return BotCommandScope{kind: ScopeAllGroupChats} }
func ScopeAllAdmins() BotCommandScope  { return BotCommandScope{kind: ScopeAllChatAdministrators} }

// ScopeForChat covers every member of one chat.
func ScopeForChat(chat ChatID) BotCommandScope {
	return BotCommandScope{kind: ScopeChat, chatID: chat}
}

// ScopeForChatAdmins covers the administrators of one group chat.
func ScopeForChatAdmins(chat ChatID) BotCommandScope {
	return BotCommandScope{kind: ScopeChatAdministrators, chatID: chat}
}

// ScopeForChatMember covers one member of a group chat.
func ScopeForChatMember(chat ChatID, userID int64) BotCommandScope {
	return BotCommandScope{kind: ScopeChatMember, chatID: chat, userID: userID}
}

// Kind returns the scope type, ScopeDefault for the zero value.
func (s BotCommandScope) Kind() BotCommandScopeKind {
	if s.kind == "" {
		return ScopeDefault
	}
	return s.kind
}

func (s BotCommandScope) ChatID() ChatID { return s.chatID }
func (s BotCommandScope) UserID() int64  { return s.userID }

type scopeJSON struct {
	Type   BotCommandScopeKind `json:"type"`
	ChatID *ChatID             `json:"chat_id,omitempty"`
	UserID int64               `json:"user_id,omitempty"`
}

func (s BotCommandScope) MarshalJSON() ([]byte, error) {
	out := scopeJSON{Type: s.Kind()}
	switch out.Type {
	case ScopeChat, ScopeChatAdministrators:
		out.ChatID = &s.chatID
	case ScopeChatMember:
		out.ChatID = &s.chatID
		out.UserID = s.userID
	}
	return json.Marshal(out)
}

func (s *BotCommandScope) UnmarshalJSON(data []byte) error {
	var raw scopeJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch raw.Type {
	case ScopeDefault, ScopeAllPrivateChats, ScopeAllGroupChats, ScopeAllChatAdministrators:
		*s = BotCommandScope{kind: raw.Type}
	case ScopeChat, ScopeChatAdministrators, ScopeChatMember:
		if raw.ChatID == nil {
			return fmt.Errorf("bot command scope %q: missing chat_id", raw.Type)
		}
		*s = BotCommandScope{kind: raw.Type, chatID: *raw.ChatID, userID: raw.UserID}
	default:
		return fmt.Errorf("unknown bot command scope %q", raw.Type)
	}
	return nil
}
