package ui

import (
	"regexp"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"
)

// inlineTagRe matches the attribute-free inline tags allowed in row text.
var inlineTagRe = regexp.MustCompile(`(?i)^(</?(b|i|em|strong|u|s|del|sub|sup|mark|small)>|<br\s*/?>)$`)

// blankLinesRe matches paragraph breaks; a row is always one paragraph.
var blankLinesRe = regexp.MustCompile(`\n[ \t]*\n\s*`)

// newRowMarkdown builds a converter that only knows paragraphs and inline
// markup. Lines starting with "1999.", "#" or "-" are ordinary speech, so
// list, heading, quote, code and HTML block parsers are left out.
func newRowMarkdown() goldmark.Markdown {
	p := parser.NewParser(
		parser.WithBlockParsers(util.Prioritized(parser.NewParagraphParser(), 1000)),
		parser.WithInlineParsers(parser.DefaultInlineParsers()...),
	)
	return goldmark.New(
		goldmark.WithParser(p),
		goldmark.WithExtensions(extension.Strikethrough, extension.Linkify),
		goldmark.WithRendererOptions(
			renderer.WithNodeRenderers(util.Prioritized(inlineHTMLRenderer{}, 100)),
		),
	)
}

// inlineHTMLRenderer writes allowed inline tags through and escapes any
// other raw HTML so it shows as text.
type inlineHTMLRenderer struct{}

func (r inlineHTMLRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindRawHTML, r.renderRawHTML)
}

func (r inlineHTMLRenderer) renderRawHTML(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkSkipChildren, nil
	}
	n := node.(*ast.RawHTML)
	for i := 0; i < n.Segments.Len(); i++ {
		seg := n.Segments.At(i)
		tag := seg.Value(source)
		if inlineTagRe.Match(tag) {
			_, _ = w.Write(tag)
		} else {
			_, _ = w.Write(util.EscapeHTML(tag))
		}
	}
	return ast.WalkSkipChildren, nil
}
