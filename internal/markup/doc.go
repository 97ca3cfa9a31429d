// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package markup turns assistant answers into renderable blocks.
//
// Answers arrive as a small line-oriented pseudo-markdown: bold, italic and
// inline code spans, "-" and "•" bullets, "1." numbered items, blank-line
// separators and a trailing two-line citation section. The package never
// renders anything itself; callers walk the returned blocks and segments.
//
// # Key Types
//
//   - Segment / Segments: Runs of text carrying a Bold|Italic|Code style mask
//   - Block: Paragraph, BulletList, NumberedList, Spacer or Citation
//   - Citation: Label, body text and optional passage preview
//
// # Usage
//
//	blocks := markup.Parse(msg.Text, msg.Sources)
//	for _, b := range blocks {
//	    switch b.Kind {
//	    case markup.KindParagraph:
//	        render(b.Segments)
//	    case markup.KindCitation:
//	        renderCitation(b.Citation)
//	    }
//	}
//
// Parse is a pure function of its inputs and is total: any string produces
// a block list without panicking.
package markup
