package htmldiff

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var skippedElements = map[atom.Atom]bool{
	atom.Head:     true,
	atom.Script:   true,
	atom.Style:    true,
	atom.Noscript: true,
	atom.Template: true,
}

var blockElements = map[atom.Atom]bool{
	atom.Address:    true,
	atom.Article:    true,
	atom.Aside:      true,
	atom.Blockquote: true,
	atom.Body:       true,
	atom.Caption:    true,
	atom.Dd:         true,
	atom.Details:    true,
	atom.Div:        true,
	atom.Dl:         true,
	atom.Dt:         true,
	atom.Figcaption: true,
	atom.Figure:     true,
	atom.Footer:     true,
	atom.H1:         true,
	atom.H2:         true,
	atom.H3:         true,
	atom.H4:         true,
	atom.H5:         true,
	atom.H6:         true,
	atom.Header:     true,
	atom.Hr:         true,
	atom.Li:         true,
	atom.Main:       true,
	atom.Nav:        true,
	atom.Ol:         true,
	atom.P:          true,
	atom.Section:    true,
	atom.Summary:    true,
	atom.Table:      true,
	atom.Tbody:      true,
	atom.Tfoot:      true,
	atom.Thead:      true,
	atom.Ul:         true,
}

// ExtractBlocks parses an HTML document and returns its visible text, one
// block per block-level element. Whitespace is collapsed except in pre
// elements, where every non-empty line is a block of its own. Table rows
// become their cells joined by " | " and images are replaced by a
// fingerprint of their source.
func ExtractBlocks(r io.Reader) ([]string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse html: %w", err)
	}

	e := &extractor{}
	e.walk(doc)
	e.flush()
	return e.blocks, nil
}

type extractor struct {
	blocks []string
	inline strings.Builder
}

func (e *extractor) walk(n *html.Node) {
	switch n.Type {
	case html.TextNode:
		e.inline.WriteString(n.Data)
		return
	case html.ElementNode:
	case html.DocumentNode:
		e.walkChildren(n)
		return
	default:
		return
	}

	switch {
	case skippedElements[n.DataAtom]:
	case n.DataAtom == atom.Img:
		e.inline.WriteString(" " + imageToken(n) + " ")
	case n.DataAtom == atom.Br:
		e.inline.WriteByte(' ')
	case n.DataAtom == atom.Pre:
		e.flush()
		var b strings.Builder
		preText(n, &b)
		for _, line := range strings.Split(b.String(), "\n") {
			if line = strings.TrimRight(line, " \t\r"); strings.TrimSpace(line) != "" {
				e.blocks = append(e.blocks, line)
			}
		}
	case n.DataAtom == atom.Tr:
		e.flush()
		var cells []string
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && (c.DataAtom == atom.Td || c.DataAtom == atom.Th) {
				cells = append(cells, inlineText(c))
			}
		}
		if row := strings.Join(cells, " | "); strings.Trim(row, " |") != "" {
			e.blocks = append(e.blocks, row)
		}
	case blockElements[n.DataAtom]:
		e.flush()
		e.walkChildren(n)
		e.flush()
	default:
		e.walkChildren(n)
	}
}

func (e *extractor) walkChildren(n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		e.walk(c)
	}
}

func (e *extractor) flush() {
	if text := collapse(e.inline.String()); text != "" {
		e.blocks = append(e.blocks, text)
	}
	e.inline.Reset()
}

// inlineText returns the collapsed text of n, treating nested blocks as spaces.
func inlineText(n *html.Node) string {
	sub := &extractor{}
	sub.walkChildren(n)
	sub.flush()
	return strings.Join(sub.blocks, " ")
}

func preText(n *html.Node, b *strings.Builder) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch {
		case c.Type == html.TextNode:
			b.WriteString(c.Data)
		case c.Type == html.ElementNode && c.DataAtom == atom.Br:
			b.WriteByte('\n')
		case c.Type == html.ElementNode && c.DataAtom == atom.Img:
			b.WriteString(imageToken(c))
		case c.Type == html.ElementNode && !skippedElements[c.DataAtom]:
			preText(c, b)
		}
	}
}

// imageToken identifies an image by its source so that identical plots
// compare equal even when embedded as data URIs.
func imageToken(n *html.Node) string {
	for _, attr := range n.Attr {
		if attr.Key == "src" {
			sum := sha256.Sum256([]byte(strings.TrimSpace(attr.Val)))
			return "[image " + hex.EncodeToString(sum[:])[:12] + "]"
		}
	}
	return "[image]"
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
