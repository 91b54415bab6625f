package types

// ParseMode selects how the API parses formatting in text and captions.
type ParseMode string

const (
	ParseModeMarkdown   ParseMode = "Markdown"
	ParseModeMarkdownV2 ParseMode = "MarkdownV2"
	ParseModeHTML       ParseMode = "HTML"
)

func (p ParseMode) String() string { return string(p) }
