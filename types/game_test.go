package types

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGameDecodesText(t *testing.T) {
	const data = `{
		"title":"Tetris","description":"Blocks",
		"photo":[{"file_id":"f","file_unique_id":"u","width":10,"height":10}],
		"text":"best score","text_entities":[{"type":"bold","offset":0,"length":4}]
	}`
	var g Game
	require.NoError(t, json.Unmarshal([]byte(data), &g))
	require.NotNil(t, g.Text)
	assert.Equal(t, "best score", g.Text.Value)
	assert.Equal(t, []TextEntity{EntityBoldAt(0, 4)}, g.Text.Entities)
	assert.Equal(t, "<b>best</b> score", g.Text.ToHTML())
}

func TestGameWithoutText(t *testing.T) {
	var g Game
	require.NoError(t, json.Unmarshal([]byte(`{"title":"t","description":"d","photo":[]}`), &g))
	assert.Nil(t, g.Text)
}

func TestGameRejectsEntityPastText(t *testing.T) {
	var g Game
	err := json.Unmarshal([]byte(`{"title":"t","description":"d","photo":[],"text":"ab","text_entities":[{"type":"bold","offset":1,"length":5}]}`), &g)
	var entErr *TextEntityError
	require.True(t, errors.As(err, &entErr), "got %v", err)
	assert.ErrorIs(t, err, ErrEntityOutOfBounds)
}

func TestGameRoundTrip(t *testing.T) {
	text, err := NewText("hi there", []TextEntity{EntityItalicAt(3, 5)})
	require.NoError(t, err)
	g := Game{
		Title:       "Snake",
		Description: "Eat",
		Photo:       []PhotoSize{{FileID: "p", FileUniqueID: "u", Width: 1, Height: 2}},
		Text:        &text,
		Animation:   &Animation{FileID: "a", FileUniqueID: "b", Width: 3, Height: 4, Duration: 5},
	}
	data, err := json.Marshal(g)
	require.NoError(t, err)

	var back Game
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, g, back)
}
