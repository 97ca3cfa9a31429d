// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package markup

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/advitiya-sood/RAG-chatbot-frontend-test/internal/model"
)

// CitationLabel is the label shown above a citation body.
const CitationLabel = "Source"

// =============================================================================
// BLOCK TYPES
// =============================================================================

// BlockKind identifies the variant held by a Block.
type BlockKind int

const (
	KindParagraph BlockKind = iota
	KindBulletList
	KindNumberedList
	KindSpacer
	KindCitation
)

// String returns the block kind name.
func (k BlockKind) String() string {
	switch k {
	case KindParagraph:
		return "paragraph"
	case KindBulletList:
		return "bullet-list"
	case KindNumberedList:
		return "numbered-list"
	case KindSpacer:
		return "spacer"
	case KindCitation:
		return "citation"
	default:
		return "unknown"
	}
}

// Citation is the single supporting passage of an answer.
type Citation struct {
	Label string
	// Text is the body with its "[n]" marker removed. It is not inline formatted.
	Text string
	// HasBody is false when the header was not followed by a "[n]" line.
	HasBody bool
	// Preview is sources[0].Preview, regardless of the marker number.
	Preview string
	// HasPreview is false when there are no sources or the preview is empty.
	HasPreview bool
}

// Block is one renderable unit of an answer.
type Block struct {
	Kind     BlockKind
	Segments Segments   // KindParagraph
	Items    []Segments // KindBulletList, KindNumberedList
	Citation *Citation  // KindCitation
}

// =============================================================================
// LINE CLASSIFIER
// =============================================================================

// lineClass is the result of classifying a single line, in priority order.
type lineClass int

const (
	classCitationHeader lineClass = iota
	classCitationRef
	classBullet
	classNumbered
	classBlank
	classText
)

// classifiedLine is a line together with its class and the payload left
// after stripping the class marker.
type classifiedLine struct {
	class lineClass
	rest  string
}

func classify(line string) classifiedLine {
	if line == "Citation:" || line == "Citations:" {
		return classifiedLine{class: classCitationHeader}
	}
	if rest, ok := cutCitationRef(line); ok {
		return classifiedLine{class: classCitationRef, rest: rest}
	}
	if rest, ok := cutBullet(line); ok {
		return classifiedLine{class: classBullet, rest: rest}
	}
	if rest, ok := cutNumbered(line); ok {
		return classifiedLine{class: classNumbered, rest: rest}
	}
	if strings.TrimSpace(line) == "" {
		return classifiedLine{class: classBlank}
	}
	return classifiedLine{class: classText, rest: line}
}

// cutCitationRef matches a leading "[<digits>]" and returns the remainder
// with leading whitespace removed.
func cutCitationRef(line string) (string, bool) {
	if !strings.HasPrefix(line, "[") {
		return "", false
	}
	n := countDigits(line[1:])
	if n == 0 || len(line) < n+2 || line[n+1] != ']' {
		return "", false
	}
	return strings.TrimLeftFunc(line[n+2:], unicode.IsSpace), true
}

// cutBullet matches "-" or "•" followed by exactly one whitespace rune.
func cutBullet(line string) (string, bool) {
	var rest string
	switch {
	case strings.HasPrefix(line, "-"):
		rest = line[len("-"):]
	case strings.HasPrefix(line, "•"):
		rest = line[len("•"):]
	default:
		return "", false
	}
	return cutOneSpace(rest)
}

// cutNumbered matches "<digits>." followed by exactly one whitespace rune.
func cutNumbered(line string) (string, bool) {
	n := countDigits(line)
	if n == 0 || len(line) <= n || line[n] != '.' {
		return "", false
	}
	return cutOneSpace(line[n+1:])
}

func cutOneSpace(s string) (string, bool) {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || !unicode.IsSpace(r) {
		return "", false
	}
	return s[size:], true
}

func countDigits(s string) int {
	n := 0
	for n < len(s) && s[n] >= '0' && s[n] <= '9' {
		n++
	}
	return n
}

// =============================================================================
// PARSER
// =============================================================================

// Parse converts an answer into blocks in encounter order.
//
// Lines are classified with the following precedence: citation header,
// orphan "[n]" line (dropped), bullet, numbered item, blank line, text.
// Consecutive bullet or numbered lines collapse into one list block. A
// citation header always consumes the following line as well; when that
// line starts with "[n]" it becomes the citation body, and when sources
// were supplied sources[0] becomes its preview.
func Parse(text string, sources []model.SourcePreview) []Block {
	lines := splitLines(text)
	blocks := make([]Block, 0, len(lines))

	for i := 0; i < len(lines); {
		line := classify(lines[i])
		switch line.class {
		case classCitationHeader:
			blocks = append(blocks, citationBlock(lines, i+1, sources))
			i += 2

		case classCitationRef:
			i++

		case classBullet, classNumbered:
			kind := KindBulletList
			if line.class == classNumbered {
				kind = KindNumberedList
			}
			var items []Segments
			for i < len(lines) {
				next := classify(lines[i])
				if next.class != line.class {
					break
				}
				items = append(items, FormatInline(next.rest))
				i++
			}
			blocks = append(blocks, Block{Kind: kind, Items: items})

		case classBlank:
			blocks = append(blocks, Block{Kind: KindSpacer})
			i++

		default:
			blocks = append(blocks, Block{Kind: KindParagraph, Segments: FormatInline(line.rest)})
			i++
		}
	}
	return blocks
}

func citationBlock(lines []string, bodyAt int, sources []model.SourcePreview) Block {
	c := &Citation{Label: CitationLabel}
	if bodyAt < len(lines) {
		if body, ok := cutCitationRef(lines[bodyAt]); ok {
			c.Text = body
			c.HasBody = true
			if len(sources) > 0 && sources[0].Preview != "" {
				c.Preview = sources[0].Preview
				c.HasPreview = true
			}
		}
	}
	return Block{Kind: KindCitation, Citation: c}
}

func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// =============================================================================
// COPY TEXT
// =============================================================================

// citationSuffix marks the start of the citation section in an answer.
const citationSuffix = "\n\nCitation:"

// CopyText returns the answer without its citation section, trimmed of
// surrounding whitespace.
func CopyText(text string) string {
	if i := strings.Index(text, citationSuffix); i >= 0 {
		text = text[:i]
	}
	return strings.TrimSpace(text)
}
