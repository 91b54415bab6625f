// Package format converts Markdown into Telegram message text.
package format

import (
	"sort"
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/nevindra/tgbot/types"
)

var markdownParser = goldmark.New(goldmark.WithExtensions(extension.Strikethrough)).Parser()

// Markdown converts standard Markdown into plain text and the entities that
// format it. Headings become bold, list items get bullets or numbers, images
// become links on their alt text. Raw HTML is kept as literal text.
func Markdown(md string) types.Text {
	source := []byte(md)
	doc := markdownParser.Parse(text.NewReader(source))

	b := &textBuilder{source: source}
	_ = ast.Walk(doc, b.visit)
	return b.finish()
}

// MarkdownToHTML converts standard Markdown into Telegram HTML.
func MarkdownToHTML(md string) string {
	return Markdown(md).ToHTML()
}

// MarkdownToV2 converts standard Markdown into Telegram MarkdownV2.
func MarkdownToV2(md string) string {
	return Markdown(md).ToMarkdownV2()
}

type textBuilder struct {
	source   []byte
	buf      strings.Builder
	units    int
	open     []types.TextEntity
	entities []types.TextEntity
	lists    []int
}

func (b *textBuilder) write(s string) {
	b.buf.WriteString(s)
	b.units += types.UTF16Len(s)
}

func (b *textBuilder) start(e types.TextEntity) {
	e.Offset = b.units
	b.open = append(b.open, e)
}

func (b *textBuilder) end() {
	e := b.open[len(b.open)-1]
	b.open = b.open[:len(b.open)-1]
	e.Length = b.units - e.Offset
	if e.Length > 0 {
		b.entities = append(b.entities, e)
	}
}

// block separates a block from the preceding output: a blank line between
// top-level blocks, a line break inside containers.
func (b *textBuilder) block(n ast.Node) {
	if b.buf.Len() == 0 {
		return
	}
	if p := n.Parent(); p != nil && p.Kind() == ast.KindListItem && n.PreviousSibling() == nil {
		return
	}
	s := b.buf.String()
	if !strings.HasSuffix(s, "\n") {
		b.write("\n")
	}
	if p := n.Parent(); p != nil && p.Kind() == ast.KindDocument && !strings.HasSuffix(s, "\n\n") {
		b.write("\n")
	}
}

func (b *textBuilder) lines(n ast.Node) string {
	var sb strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		sb.Write(seg.Value(b.source))
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (b *textBuilder) visit(n ast.Node, entering bool) (ast.WalkStatus, error) {
	switch node := n.(type) {
	case *ast.Document:
	case *ast.Paragraph, *ast.TextBlock:
		if entering {
			b.block(n)
		}
	case *ast.Heading:
		if entering {
			b.block(n)
			b.start(types.TextEntity{Kind: types.EntityBold})
		} else {
			b.end()
		}
	case *ast.Blockquote:
		if entering {
			b.block(n)
			b.start(types.TextEntity{Kind: types.EntityBlockquote})
		} else {
			b.end()
		}
	case *ast.FencedCodeBlock:
		if !entering {
			return ast.WalkContinue, nil
		}
		b.block(n)
		b.start(types.TextEntity{Kind: types.EntityPre, Language: string(node.Language(b.source))})
		b.write(b.lines(n))
		b.end()
		return ast.WalkSkipChildren, nil
	case *ast.CodeBlock:
		if !entering {
			return ast.WalkContinue, nil
		}
		b.block(n)
		b.start(types.TextEntity{Kind: types.EntityPre})
		b.write(b.lines(n))
		b.end()
		return ast.WalkSkipChildren, nil
	case *ast.HTMLBlock:
		if !entering {
			return ast.WalkContinue, nil
		}
		b.block(n)
		b.write(b.lines(n))
		return ast.WalkSkipChildren, nil
	case *ast.ThematicBreak:
		if entering {
			b.block(n)
			b.write("---")
		}
	case *ast.List:
		if entering {
			b.block(n)
			b.lists = append(b.lists, node.Start)
		} else {
			b.lists = b.lists[:len(b.lists)-1]
		}
	case *ast.ListItem:
		if !entering {
			return ast.WalkContinue, nil
		}
		if b.buf.Len() > 0 && !strings.HasSuffix(b.buf.String(), "\n") {
			b.write("\n")
		}
		depth := len(b.lists)
		b.write(strings.Repeat("  ", depth-1))
		if list, ok := n.Parent().(*ast.List); ok && list.IsOrdered() {
			b.write(strconv.Itoa(b.lists[depth-1]) + ". ")
			b.lists[depth-1]++
		} else {
			b.write("• ")
		}
	case *ast.Text:
		if entering {
			b.write(string(node.Segment.Value(b.source)))
			if node.SoftLineBreak() || node.HardLineBreak() {
				b.write("\n")
			}
		}
	case *ast.String:
		if entering {
			b.write(string(node.Value))
		}
	case *ast.CodeSpan:
		b.span(entering, types.TextEntity{Kind: types.EntityCode})
	case *ast.Emphasis:
		kind := types.EntityItalic
		if node.Level == 2 {
			kind = types.EntityBold
		}
		b.span(entering, types.TextEntity{Kind: kind})
	case *extast.Strikethrough:
		b.span(entering, types.TextEntity{Kind: types.EntityStrikethrough})
	case *ast.Link:
		b.link(entering, string(node.Destination))
	case *ast.Image:
		b.link(entering, string(node.Destination))
	case *ast.AutoLink:
		if entering {
			url := string(node.URL(b.source))
			b.start(types.TextEntity{Kind: types.EntityTextLink, URL: url})
			b.write(url)
			b.end()
		}
		return ast.WalkSkipChildren, nil
	case *ast.RawHTML:
		if entering {
			for i := 0; i < node.Segments.Len(); i++ {
				seg := node.Segments.At(i)
				b.write(string(seg.Value(b.source)))
			}
		}
		return ast.WalkSkipChildren, nil
	}
	return ast.WalkContinue, nil
}

func (b *textBuilder) span(entering bool, e types.TextEntity) {
	if entering {
		b.start(e)
	} else {
		b.end()
	}
}

// link formats its children as a text link. Links without a destination stay
// plain text.
func (b *textBuilder) link(entering bool, url string) {
	if url == "" {
		return
	}
	b.span(entering, types.TextEntity{Kind: types.EntityTextLink, URL: url})
}

func (b *textBuilder) finish() types.Text {
	value := strings.TrimRight(b.buf.String(), " \n")
	n := types.UTF16Len(value)

	entities := make([]types.TextEntity, 0, len(b.entities))
	for _, e := range b.entities {
		if e.Offset >= n {
			continue
		}
		if e.End() > n {
			e.Length = n - e.Offset
		}
		entities = append(entities, e)
	}
	sort.SliceStable(entities, func(i, j int) bool {
		if entities[i].Offset != entities[j].Offset {
			return entities[i].Offset < entities[j].Offset
		}
		return entities[i].Length > entities[j].Length
	})
	if len(entities) == 0 {
		entities = nil
	}
	return types.Text{Value: value, Entities: entities}
}
