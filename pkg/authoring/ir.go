// Package authoring compiles Markdown walkthroughs into catalogue documents.
package authoring

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Section is one `##` section of a walkthrough source.
type Section struct {
	Heading    string      // Section heading text
	CodeBlocks []CodeBlock // Fenced blocks, in order
	Paragraphs []string    // Raw Markdown paragraphs and list items
	Line       int         // Source line number (0-based)
}

// CodeBlock represents a fenced code block extracted from Markdown.
type CodeBlock struct {
	Language string
	Content  string
	Line     int
}

// IR is the intermediate representation of a parsed walkthrough.
type IR struct {
	Title    string    // First H1
	Sections []Section // One per H2
}

// Parse walks the Markdown AST and collects the H1 title and the H2
// sections. Deeper headings stay inside the current section as bold lines.
// Content before the first H2 is ignored.
func Parse(source []byte) (*IR, error) {
	parser := goldmark.DefaultParser()
	doc := parser.Parse(text.NewReader(source))

	ir := &IR{}
	var current *Section

	err := ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch n := node.(type) {
		case *ast.Heading:
			heading := extractText(n, source)
			switch {
			case n.Level == 1:
				if ir.Title == "" {
					ir.Title = heading
				}
			case n.Level == 2:
				ir.Sections = append(ir.Sections, Section{Heading: heading, Line: lineNumber(source, n)})
				current = &ir.Sections[len(ir.Sections)-1]
			case current != nil:
				current.Paragraphs = append(current.Paragraphs, "**"+heading+"**")
			}
			return ast.WalkSkipChildren, nil

		case *ast.FencedCodeBlock:
			if current == nil {
				return ast.WalkSkipChildren, nil
			}
			current.CodeBlocks = append(current.CodeBlocks, CodeBlock{
				Language: strings.ToLower(string(n.Language(source))),
				Content:  extractCodeContent(n.Lines(), source),
				Line:     lineNumber(source, n),
			})
			return ast.WalkSkipChildren, nil

		case *ast.CodeBlock:
			// Indented blocks carry no language tag.
			if current != nil {
				current.CodeBlocks = append(current.CodeBlocks, CodeBlock{
					Content: extractCodeContent(n.Lines(), source),
					Line:    lineNumber(source, n),
				})
			}
			return ast.WalkSkipChildren, nil

		case *ast.Paragraph:
			if current == nil {
				return ast.WalkSkipChildren, nil
			}
			if p := rawLines(n, source); p != "" {
				current.Paragraphs = append(current.Paragraphs, p)
			}
			return ast.WalkSkipChildren, nil

		case *ast.ListItem:
			if current == nil {
				return ast.WalkSkipChildren, nil
			}
			if item := extractText(n, source); item != "" {
				current.Paragraphs = append(current.Paragraphs, "- "+item)
			}
			return ast.WalkSkipChildren, nil
		}

		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, err
	}
	return ir, nil
}

// extractText extracts the plain text content of a node.
func extractText(node ast.Node, source []byte) string {
	var sb strings.Builder
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		switch c := child.(type) {
		case *ast.Text:
			sb.Write(c.Segment.Value(source))
			if c.SoftLineBreak() {
				sb.WriteByte(' ')
			}
		case *ast.CodeSpan:
			sb.WriteByte('`')
			for gc := c.FirstChild(); gc != nil; gc = gc.NextSibling() {
				if t, ok := gc.(*ast.Text); ok {
					sb.Write(t.Segment.Value(source))
				}
			}
			sb.WriteByte('`')
		default:
			sb.WriteString(extractText(child, source))
		}
	}
	return strings.TrimSpace(sb.String())
}

// rawLines returns the source of a block node with its inline Markdown
// intact, soft breaks folded into spaces.
func rawLines(node ast.Node, source []byte) string {
	lines := node.Lines()
	parts := make([]string, 0, lines.Len())
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		parts = append(parts, strings.TrimSpace(string(seg.Value(source))))
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

// extractCodeContent extracts the raw content of a code block.
func extractCodeContent(lines *text.Segments, source []byte) string {
	var sb strings.Builder
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		sb.Write(line.Value(source))
	}
	return strings.TrimRight(sb.String(), "\n")
}

// lineNumber returns the 0-based line number for a node.
func lineNumber(source []byte, node ast.Node) int {
	if node.Lines().Len() > 0 {
		return countNewlines(source[:node.Lines().At(0).Start])
	}
	if node.HasChildren() {
		if t, ok := node.FirstChild().(*ast.Text); ok {
			return countNewlines(source[:t.Segment.Start])
		}
	}
	return 0
}

func countNewlines(b []byte) int {
	count := 0
	for _, c := range b {
		if c == '\n' {
			count++
		}
	}
	return count
}
