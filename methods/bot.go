package methods

import (
	"slices"

	"github.com/nevindra/tgbot/request"
	"github.com/nevindra/tgbot/types"
)

// GetMe returns basic information about the bot.
type GetMe struct {
	Returns[types.User]
}

func NewGetMe() GetMe { return GetMe{} }

func (GetMe) IntoRequest() request.Request { return request.NewEmpty("getMe") }

// LogOut logs the bot out from the cloud Bot API server before launching it
// locally.
type LogOut struct {
	Returns[bool]
}

func NewLogOut() LogOut { return LogOut{} }

func (LogOut) IntoRequest() request.Request { return request.NewEmpty("logOut") }

// Close closes the bot instance before moving it to another local server.
type Close struct {
	Returns[bool]
}

func NewClose() Close { return Close{} }

func (Close) IntoRequest() request.Request { return request.NewEmpty("close") }

type commandTarget struct {
	Scope        *types.BotCommandScope `json:"scope,omitempty"`
	LanguageCode string                 `json:"language_code,omitempty"`
}

// SetMyCommands changes the list of the bot's commands.
type SetMyCommands struct {
	Returns[bool]
	p setMyCommandsParams
}

type setMyCommandsParams struct {
	Commands []types.BotCommand `json:"commands"`
	commandTarget
}

func NewSetMyCommands(commands ...types.BotCommand) SetMyCommands {
	cmds := slices.Clone(commands)
	if cmds == nil {
		cmds = []types.BotCommand{}
	}
	return SetMyCommands{p: setMyCommandsParams{Commands: cmds}}
}

func (m SetMyCommands) Scope(scope types.BotCommandScope) SetMyCommands {
	m.p.Scope = &scope
	return m
}

// LanguageCode restricts the commands to users with this two-letter ISO 639-1
// language code.
func (m SetMyCommands) LanguageCode(code string) SetMyCommands {
	m.p.LanguageCode = code
	return m
}

func (m SetMyCommands) IntoRequest() request.Request { return request.NewJSON("setMyCommands", m.p) }

// GetMyCommands returns the current list of the bot's commands.
type GetMyCommands struct {
	Returns[[]types.BotCommand]
	p commandTarget
}

func NewGetMyCommands() GetMyCommands { return GetMyCommands{} }

func (m GetMyCommands) Scope(scope types.BotCommandScope) GetMyCommands {
	m.p.Scope = &scope
	return m
}

func (m GetMyCommands) LanguageCode(code string) GetMyCommands {
	m.p.LanguageCode = code
	return m
}

func (m GetMyCommands) IntoRequest() request.Request { return request.NewJSON("getMyCommands", m.p) }

// DeleteMyCommands deletes the list of commands for a scope and language.
type DeleteMyCommands struct {
	Returns[bool]
	p commandTarget
}

func NewDeleteMyCommands() DeleteMyCommands { return DeleteMyCommands{} }

func (m DeleteMyCommands) Scope(scope types.BotCommandScope) DeleteMyCommands {
	m.p.Scope = &scope
	return m
}

func (m DeleteMyCommands) LanguageCode(code string) DeleteMyCommands {
	m.p.LanguageCode = code
	return m
}

func (m DeleteMyCommands) IntoRequest() request.Request {
	return request.NewJSON("deleteMyCommands", m.p)
}
