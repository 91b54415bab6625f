package methods

import (
	"github.com/nevindra/tgbot/request"
	"github.com/nevindra/tgbot/types"
)

// SendGame sends a game.
type SendGame struct {
	Returns[types.Message]
	p sendGameParams
}

type sendGameParams struct {
	ChatID                   int64                       `json:"chat_id"`
	GameShortName            string                      `json:"game_short_name"`
	DisableNotification      bool                        `json:"disable_notification,omitempty"`
	ProtectContent           bool                        `json:"protect_content,omitempty"`
	ReplyToMessageID         int64                       `json:"reply_to_message_id,omitempty"`
	AllowSendingWithoutReply bool                        `json:"allow_sending_without_reply,omitempty"`
	ReplyMarkup              *types.InlineKeyboardMarkup `json:"reply_markup,omitempty"`
}

// NewSendGame sends the game registered as gameShortName with @BotFather.
func NewSendGame(chatID int64, gameShortName string) SendGame {
	return SendGame{p: sendGameParams{ChatID: chatID, GameShortName: gameShortName}}
}

func (m SendGame) DisableNotification(v bool) SendGame { m.p.DisableNotification = v; return m }
func (m SendGame) ProtectContent(v bool) SendGame      { m.p.ProtectContent = v; return m }
func (m SendGame) ReplyToMessageID(id int64) SendGame  { m.p.ReplyToMessageID = id; return m }

func (m SendGame) AllowSendingWithoutReply(v bool) SendGame {
	m.p.AllowSendingWithoutReply = v
	return m
}

// ReplyMarkup must start with a button that launches the game.
func (m SendGame) ReplyMarkup(markup types.InlineKeyboardMarkup) SendGame {
	m.p.ReplyMarkup = &markup
	return m
}

func (m SendGame) IntoRequest() request.Request { return request.NewJSON("sendGame", m.p) }

// SetGameScore sets the score of a user in a game message.
type SetGameScore struct {
	Returns[types.EditMessageResult]
	p setGameScoreParams
}

type setGameScoreParams struct {
	UserID int64 `json:"user_id"`
	Score  int   `json:"score"`
	messageTarget
	Force              bool `json:"force,omitempty"`
	DisableEditMessage bool `json:"disable_edit_message,omitempty"`
}

func NewSetGameScore(userID int64, score int, chatID int64, messageID int64) SetGameScore {
	return SetGameScore{p: setGameScoreParams{
		UserID: userID, Score: score,
		messageTarget: chatMessage(types.ChatIDInt(chatID), messageID),
	}}
}

func NewSetInlineGameScore(userID int64, score int, inlineMessageID string) SetGameScore {
	return SetGameScore{p: setGameScoreParams{
		UserID: userID, Score: score,
		messageTarget: messageTarget{InlineMessageID: inlineMessageID},
	}}
}

// Force allows the score to decrease.
func (m SetGameScore) Force(v bool) SetGameScore { m.p.Force = v; return m }

// DisableEditMessage keeps the game message unchanged.
func (m SetGameScore) DisableEditMessage(v bool) SetGameScore {
	m.p.DisableEditMessage = v
	return m
}

func (m SetGameScore) IntoRequest() request.Request { return request.NewJSON("setGameScore", m.p) }

// GetGameHighScores returns the high scores of a user and some neighbours.
type GetGameHighScores struct {
	Returns[[]types.GameHighScore]
	p getGameHighScoresParams
}

type getGameHighScoresParams struct {
	UserID int64 `json:"user_id"`
	messageTarget
}

func NewGetGameHighScores(userID int64, chatID int64, messageID int64) GetGameHighScores {
	return GetGameHighScores{p: getGameHighScoresParams{
		UserID:        userID,
		messageTarget: chatMessage(types.ChatIDInt(chatID), messageID),
	}}
}

func NewGetInlineGameHighScores(userID int64, inlineMessageID string) GetGameHighScores {
	return GetGameHighScores{p: getGameHighScoresParams{
		UserID:        userID,
		messageTarget: messageTarget{InlineMessageID: inlineMessageID},
	}}
}

func (m GetGameHighScores) IntoRequest() request.Request {
	return request.NewJSON("getGameHighScores", m.p)
}
