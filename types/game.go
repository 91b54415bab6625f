package types

import "encoding/json"

// Game is a game attached to a message. Text is the game's own text, shown in
// place of the description after the score is set.
type Game struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Photo       []PhotoSize `json:"photo"`
	Text        *Text       `json:"-"`
	Animation   *Animation  `json:"animation,omitempty"`
}

func (g *Game) UnmarshalJSON(data []byte) error {
	type plain Game
	aux := struct {
		*plain
		Text         *string      `json:"text"`
		TextEntities []TextEntity `json:"text_entities"`
	}{plain: (*plain)(g)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	text, err := decodeText(aux.Text, aux.TextEntities)
	if err != nil {
		return err
	}
	g.Text = text
	return nil
}

func (g Game) MarshalJSON() ([]byte, error) {
	type plain Game
	text, entities := encodeText(g.Text)
	return json.Marshal(struct {
		plain
		Text         *string      `json:"text,omitempty"`
		TextEntities []wireEntity `json:"text_entities,omitempty"`
	}{plain: plain(g), Text: text, TextEntities: entities})
}

// GameHighScore is one row of a game's high score table.
type GameHighScore struct {
	Position int  `json:"position"`
	User     User `json:"user"`
	Score    int  `json:"score"`
}
