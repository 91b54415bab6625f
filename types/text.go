package types

import (
	"html"
	"sort"
	"strconv"
	"strings"
	"unicode/utf16"
)

// Text is a string together with the entities formatting it. It is built from
// the parallel text/entities fields of messages, captions and games.
type Text struct {
	Value    string
	Entities []TextEntity
}

// NewText combines a raw string with its entity list, failing with a
// *TextEntityError when an entity is malformed or runs past the end of value.
func NewText(value string, entities []TextEntity) (Text, error) {
	if err := ValidateEntities(entities, UTF16Len(value)); err != nil {
		return Text{}, err
	}
	return Text{Value: value, Entities: entities}, nil
}

// PlainText returns a Text without entities.
func PlainText(value string) Text {
	return Text{Value: value}
}

func (t Text) String() string { return t.Value }

// Len returns the length of the text in UTF-16 code units.
func (t Text) Len() int { return UTF16Len(t.Value) }

// Slice returns the part of the text covered by e.
func (t Text) Slice(e TextEntity) string {
	idx := utf16Index(t.Value)
	end := min(e.End(), len(idx)-1)
	start := min(max(e.Offset, 0), end)
	return t.Value[idx[start]:idx[end]]
}

// Commands returns the bot commands found in the text, without the leading
// slash and the "@botname" suffix.
func (t Text) Commands() []string {
	var out []string
	for _, e := range t.Entities {
		if e.Kind != EntityBotCommand {
			continue
		}
		cmd := strings.TrimPrefix(t.Slice(e), "/")
		if at := strings.IndexByte(cmd, '@'); at >= 0 {
			cmd = cmd[:at]
		}
		out = append(out, cmd)
	}
	return out
}

// UTF16Len returns the length of s in UTF-16 code units, the unit used by
// entity offsets.
func UTF16Len(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}

// utf16Index maps every UTF-16 position of s (including the end) to a byte
// offset. A position in the middle of a surrogate pair maps past its rune.
func utf16Index(s string) []int {
	idx := make([]int, 0, len(s)+1)
	for i, r := range s {
		idx = append(idx, i)
		if utf16.RuneLen(r) == 2 {
			idx = append(idx, i+len(string(r)))
		}
	}
	return append(idx, len(s))
}

// ToHTML renders the text with Telegram's HTML parse mode markup.
func (t Text) ToHTML() string {
	return t.render(htmlMarkup{})
}

// ToMarkdownV2 renders the text with Telegram's MarkdownV2 markup.
func (t Text) ToMarkdownV2() string {
	return t.render(markdownV2Markup{})
}

type markup interface {
	open(e TextEntity) string
	close(e TextEntity) string
	escape(s string, stack []TextEntity) string
}

func (t Text) render(m markup) string {
	idx := utf16Index(t.Value)
	n := len(idx) - 1

	ents := make([]TextEntity, 0, len(t.Entities))
	for _, e := range t.Entities {
		if e.Offset >= 0 && e.Length > 0 && e.End() <= n {
			ents = append(ents, e)
		}
	}
	sort.SliceStable(ents, func(i, j int) bool {
		if ents[i].Offset != ents[j].Offset {
			return ents[i].Offset < ents[j].Offset
		}
		return ents[i].Length > ents[j].Length
	})

	var b strings.Builder
	var stack []TextEntity
	next := 0
	for pos := 0; ; {
		// Close finished entities. Overlapping entities opened later are
		// closed too and reopened, keeping the output well nested.
		for {
			j := -1
			for i, e := range stack {
				if e.End() <= pos {
					j = i
					break
				}
			}
			if j < 0 {
				break
			}
			var reopen []TextEntity
			for i := len(stack) - 1; i >= j; i-- {
				b.WriteString(m.close(stack[i]))
				if i > j && stack[i].End() > pos {
					reopen = append([]TextEntity{stack[i]}, reopen...)
				}
			}
			stack = stack[:j]
			for _, e := range reopen {
				b.WriteString(m.open(e))
				stack = append(stack, e)
			}
		}
		for next < len(ents) && ents[next].Offset <= pos {
			b.WriteString(m.open(ents[next]))
			stack = append(stack, ents[next])
			next++
		}
		if pos >= n {
			break
		}
		end := n
		if next < len(ents) {
			end = min(end, ents[next].Offset)
		}
		for _, e := range stack {
			end = min(end, e.End())
		}
		b.WriteString(m.escape(t.Value[idx[pos]:idx[end]], stack))
		pos = end
	}
	return b.String()
}

type htmlMarkup struct{}

func (htmlMarkup) open(e TextEntity) string {
	switch e.Kind {
	case EntityBold:
		return "<b>"
	case EntityItalic:
		return "<i>"
	case EntityUnderline:
		return "<u>"
	case EntityStrikethrough:
		return "<s>"
	case EntitySpoiler:
		return "<tg-spoiler>"
	case EntityBlockquote:
		return "<blockquote>"
	case EntityCode:
		return "<code>"
	case EntityPre:
		if e.Language != "" {
			return `<pre><code class="language-` + html.EscapeString(e.Language) + `">`
		}
		return "<pre>"
	case EntityTextLink:
		return `<a href="` + html.EscapeString(e.URL) + `">`
	case EntityTextMention:
		if e.User != nil {
			return `<a href="tg://user?id=` + strconv.FormatInt(e.User.ID, 10) + `">`
		}
	case EntityCustomEmoji:
		return `<tg-emoji emoji-id="` + html.EscapeString(e.CustomEmojiID) + `">`
	}
	return ""
}

func (htmlMarkup) close(e TextEntity) string {
	switch e.Kind {
	case EntityBold:
		return "</b>"
	case EntityItalic:
		return "</i>"
	case EntityUnderline:
		return "</u>"
	case EntityStrikethrough:
		return "</s>"
	case EntitySpoiler:
		return "</tg-spoiler>"
	case EntityBlockquote:
		return "</blockquote>"
	case EntityCode:
		return "</code>"
	case EntityPre:
		if e.Language != "" {
			return "</code></pre>"
		}
		return "</pre>"
	case EntityTextLink:
		return "</a>"
	case EntityTextMention:
		if e.User != nil {
			return "</a>"
		}
	case EntityCustomEmoji:
		return "</tg-emoji>"
	}
	return ""
}

var htmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

func (htmlMarkup) escape(s string, _ []TextEntity) string {
	return htmlEscaper.Replace(s)
}

type markdownV2Markup struct{}

func (markdownV2Markup) open(e TextEntity) string {
	switch e.Kind {
	case EntityBold:
		return "*"
	case EntityItalic:
		return "_"
	case EntityUnderline:
		return "__"
	case EntityStrikethrough:
		return "~"
	case EntitySpoiler:
		return "||"
	case EntityBlockquote:
		return ">"
	case EntityCode:
		return "`"
	case EntityPre:
		return "```" + e.Language + "\n"
	case EntityTextLink:
		return "["
	case EntityTextMention:
		if e.User != nil {
			return "["
		}
	case EntityCustomEmoji:
		return "!["
	}
	return ""
}

var markdownURLEscaper = strings.NewReplacer(`\`, `\\`, ")", `\)`)

func (markdownV2Markup) close(e TextEntity) string {
	switch e.Kind {
	case EntityBold:
		return "*"
	case EntityItalic:
		return "_"
	case EntityUnderline:
		return "__"
	case EntityStrikethrough:
		return "~"
	case EntitySpoiler:
		return "||"
	case EntityCode:
		return "`"
	case EntityPre:
		return "\n```"
	case EntityTextLink:
		return "](" + markdownURLEscaper.Replace(e.URL) + ")"
	case EntityTextMention:
		if e.User != nil {
			return "](tg://user?id=" + strconv.FormatInt(e.User.ID, 10) + ")"
		}
	case EntityCustomEmoji:
		return "](tg://emoji?id=" + e.CustomEmojiID + ")"
	}
	return ""
}

var (
	markdownEscaper = strings.NewReplacer(
		`\`, `\\`, "_", `\_`, "*", `\*`, "[", `\[`, "]", `\]`, "(", `\(`, ")", `\)`,
		"~", `\~`, "`", "\\`", ">", `\>`, "#", `\#`, "+", `\+`, "-", `\-`, "=", `\=`,
		"|", `\|`, "{", `\{`, "}", `\}`, ".", `\.`, "!", `\!`,
	)
	markdownCodeEscaper = strings.NewReplacer(`\`, `\\`, "`", "\\`")
)

func (markdownV2Markup) escape(s string, stack []TextEntity) string {
	code, quote := false, false
	for _, e := range stack {
		switch e.Kind {
		case EntityCode, EntityPre:
			code = true
		case EntityBlockquote:
			quote = true
		}
	}
	if code {
		s = markdownCodeEscaper.Replace(s)
	} else {
		s = markdownEscaper.Replace(s)
	}
	if quote {
		s = strings.ReplaceAll(s, "\n", "\n>")
	}
	return s
}

// decodeText builds the Text of a record that carries text and entities in
// two parallel fields. A missing text yields nil. Unknown entity kinds are
// accepted; ranges must still fit the text.
func decodeText(value *string, entities []TextEntity) (*Text, error) {
	if value == nil {
		return nil, nil
	}
	if err := checkRanges(entities, UTF16Len(*value)); err != nil {
		return nil, err
	}
	return &Text{Value: *value, Entities: entities}, nil
}

func encodeText(t *Text) (*string, []wireEntity) {
	if t == nil {
		return nil, nil
	}
	v := t.Value
	return &v, wireEntities(t.Entities)
}
