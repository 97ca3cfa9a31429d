// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package markup

import (
	"html"
	"strings"
)

// =============================================================================
// STYLE
// =============================================================================

// Style is a bit set of inline text styles.
type Style uint8

const (
	Bold Style = 1 << iota
	Italic
	Code

	// Plain is the absence of any style.
	Plain Style = 0
)

// Has reports whether all bits of other are set in s.
func (s Style) Has(other Style) bool {
	return s&other == other
}

// String returns a compact description such as "bold+code".
func (s Style) String() string {
	if s == Plain {
		return "plain"
	}
	var parts []string
	if s.Has(Bold) {
		parts = append(parts, "bold")
	}
	if s.Has(Italic) {
		parts = append(parts, "italic")
	}
	if s.Has(Code) {
		parts = append(parts, "code")
	}
	return strings.Join(parts, "+")
}

// =============================================================================
// SEGMENTS
// =============================================================================

// Segment is a run of text sharing one style.
type Segment struct {
	Text  string
	Style Style
}

// Segments is the formatted form of one line.
type Segments []Segment

// Plain returns the text with all styling dropped.
func (ss Segments) Plain() string {
	var b strings.Builder
	for _, s := range ss {
		b.WriteString(s.Text)
	}
	return b.String()
}

// HTML renders the segments as HTML. Text is escaped before it is wrapped
// in <strong>, <em> and <code>, so untrusted input cannot inject markup.
func (ss Segments) HTML() string {
	var b strings.Builder
	for _, s := range ss {
		text := html.EscapeString(s.Text)
		if s.Style.Has(Code) {
			text = "<code>" + text + "</code>"
		}
		if s.Style.Has(Italic) {
			text = "<em>" + text + "</em>"
		}
		if s.Style.Has(Bold) {
			text = "<strong>" + text + "</strong>"
		}
		b.WriteString(text)
	}
	return b.String()
}

// =============================================================================
// INLINE FORMATTER
// =============================================================================

// spanRule pairs a delimiter with the style it applies.
type spanRule struct {
	delim []rune
	style Style
}

// spanRules run in this order; "**" has to be consumed before "*".
var spanRules = []spanRule{
	{delim: []rune("**"), style: Bold},
	{delim: []rune("*"), style: Italic},
	{delim: []rune("`"), style: Code},
}

// styledRune is one visible rune together with the styles applied so far.
type styledRune struct {
	r     rune
	style Style
}

// FormatInline splits line into styled segments.
//
// Each rule is one left-to-right pass over the runes left by the previous
// pass. An opening delimiter pairs with the nearest following delimiter;
// both are consumed and the runes between gain the rule's style. An
// opening delimiter with no partner stays as literal text. Text between
// delimiters is never re-read by the same rule.
func FormatInline(line string) Segments {
	runes := make([]styledRune, 0, len(line))
	for _, r := range line {
		runes = append(runes, styledRune{r: r})
	}
	for _, rule := range spanRules {
		runes = applySpanRule(runes, rule)
	}
	return mergeRuns(runes)
}

func applySpanRule(in []styledRune, rule spanRule) []styledRune {
	out := make([]styledRune, 0, len(in))
	n := len(rule.delim)
	for i := 0; i < len(in); {
		if !delimAt(in, i, rule.delim) {
			out = append(out, in[i])
			i++
			continue
		}
		closeAt := -1
		for j := i + n; j+n <= len(in); j++ {
			if delimAt(in, j, rule.delim) {
				closeAt = j
				break
			}
		}
		if closeAt < 0 {
			out = append(out, in[i])
			i++
			continue
		}
		for _, sr := range in[i+n : closeAt] {
			sr.style |= rule.style
			out = append(out, sr)
		}
		i = closeAt + n
	}
	return out
}

func delimAt(in []styledRune, at int, delim []rune) bool {
	if at+len(delim) > len(in) {
		return false
	}
	for k, d := range delim {
		if in[at+k].r != d {
			return false
		}
	}
	return true
}

func mergeRuns(runes []styledRune) Segments {
	var segs Segments
	var b strings.Builder
	current := Plain
	flush := func() {
		if b.Len() > 0 {
			segs = append(segs, Segment{Text: b.String(), Style: current})
			b.Reset()
		}
	}
	for _, sr := range runes {
		if sr.style != current {
			flush()
			current = sr.style
		}
		b.WriteRune(sr.r)
	}
	flush()
	return segs
}
