package web

import (
	"bytes"
	"html/template"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	emoji "github.com/yuin/goldmark-emoji"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// Raw HTML in descriptions is escaped, not passed through. #tag mentions
// link to the tag's section on the Groups page.
var descriptionRenderer = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		emoji.Emoji,
	),
	goldmark.WithParserOptions(
		parser.WithASTTransformers(util.Prioritized(tagLinker{}, 500)),
	),
	goldmark.WithRendererOptions(
		html.WithHardWraps(),
	),
)

func renderMarkdownHTML(src string) template.HTML {
	src = strings.TrimSpace(src)
	if src == "" {
		return ""
	}
	var b bytes.Buffer
	if err := descriptionRenderer.Convert([]byte(src), &b); err != nil {
		return template.HTML("<pre>" + template.HTMLEscapeString(src) + "</pre>")
	}
	return template.HTML(b.String())
}

// tagMention matches "#name" at the start of text or after a character that
// cannot be part of a word or an entity.
var tagMention = regexp.MustCompile(`(?:^|[^\p{L}\p{N}_&/#])(#([\p{L}\p{N}_-]+))`)

func tagAnchor(name string) string { return "tag-" + name }

type tagLinker struct{}

func (tagLinker) Transform(doc *ast.Document, reader text.Reader, _ parser.Context) {
	src := reader.Source()
	var texts []*ast.Text
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n.Kind() {
		case ast.KindLink, ast.KindAutoLink, ast.KindCodeSpan, ast.KindCodeBlock, ast.KindFencedCodeBlock, ast.KindRawHTML:
			return ast.WalkSkipChildren, nil
		}
		if t, ok := n.(*ast.Text); ok {
			texts = append(texts, t)
		}
		return ast.WalkContinue, nil
	})
	for _, t := range texts {
		linkTags(t, src)
	}
}

// linkTags splits t around each mention, inserting a link node per tag. t
// keeps the trailing text so its line-break flags stay in place.
func linkTags(t *ast.Text, src []byte) {
	parent := t.Parent()
	if parent == nil {
		return
	}
	seg := t.Segment
	value := seg.Value(src)
	matches := tagMention.FindAllSubmatchIndex(value, -1)
	if len(matches) == 0 {
		return
	}
	pos := 0
	for _, m := range matches {
		start, end := m[2], m[3]
		name := string(value[m[4]:m[5]])
		if start > pos {
			parent.InsertBefore(parent, t, ast.NewTextSegment(text.NewSegment(seg.Start+pos, seg.Start+start)))
		}
		link := ast.NewLink()
		link.Destination = []byte("/groups#" + tagAnchor(name))
		link.AppendChild(link, ast.NewTextSegment(text.NewSegment(seg.Start+start, seg.Start+end)))
		parent.InsertBefore(parent, t, link)
		pos = end
	}
	t.Segment = text.NewSegment(seg.Start+pos, seg.Stop)
}
