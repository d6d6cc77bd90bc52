package buffer

import (
	"log/slog"

	"github.com/dlclark/regexp2"
	"github.com/gdamore/tcell/v2"
)

type Colorscheme map[Syntax]tcell.Style

// Gets the tcell.Style from the Colorscheme map for the given Syntax.
// If the Syntax cannot be found in the map, either the `Default` Syntax
// is used, or `tcell.StyleDefault` is returned if the Default is not assigned.
func (c *Colorscheme) GetStyle(s Syntax) tcell.Style {
	if c != nil {
		if val, ok := (*c)[s]; ok {
			return val // Try to return the requested value
		} else if s != Default {
			if val, ok := (*c)[Default]; ok {
				return val // Use default colorscheme value, instead
			}
		}
	}

	return tcell.StyleDefault // No value for Default; use default style.
}

// A Span marks the runes [Start, End) of a text as one Syntax. Offsets count
// runes from the beginning of the whole text, not bytes and not per line.
type Span struct {
	Syntax Syntax
	Start  int
	End    int
}

// A Surface is an editable text area that can show styled runs of its text,
// like a TextEdit. Offsets are rune offsets into Text().
type Surface interface {
	// Text returns a snapshot of the entire contents of the Surface.
	Text() string
	// Tags returns every Syntax currently applied to the Surface.
	Tags() []Syntax
	// ClearStyle removes the Syntax from the whole Surface.
	ClearStyle(tag Syntax)
	// ApplyStyle styles the runes [start, end) with the Syntax.
	ApplyStyle(tag Syntax, start, end int)
}

// A pass finds every match of pattern in a text and tags the capture group
// (0 for the whole match) as syntax.
type pass struct {
	pattern *regexp2.Regexp
	group   int
	syntax  Syntax
}

// A Highlighter classifies the text of a Language into Spans. Every call to
// Highlight scans the entire text again; nothing from a previous call is kept.
type Highlighter struct {
	Language    *Language
	Colorscheme *Colorscheme
	Logger      *slog.Logger // Optional

	passes []pass
}

func NewHighlighter(lang *Language, colorscheme *Colorscheme) *Highlighter {
	return &Highlighter{
		Language:    lang,
		Colorscheme: colorscheme,
		passes:      compilePasses(lang),
	}
}

// compilePasses builds one pass per pattern in the order they are applied:
// comments, strings, each keyword, each builtin, numbers, function names.
func compilePasses(lang *Language) []pass {
	passes := make([]pass, 0, len(lang.Keywords)+len(lang.Builtins)+4)

	add := func(pattern string, group int, syntax Syntax) {
		if pattern == "" {
			return
		}
		passes = append(passes, pass{regexp2.MustCompile(pattern, regexp2.None), group, syntax})
	}

	add(lang.CommentPattern, 0, Comment)
	add(lang.StringPattern, 0, String)
	for _, word := range lang.Keywords {
		add(`\b`+regexp2.Escape(word)+`\b`, 0, Keyword)
	}
	for _, word := range lang.Builtins {
		add(`\b`+regexp2.Escape(word)+`\b`, 0, Builtin)
	}
	add(lang.NumberPattern, 0, Number)
	add(lang.FunctionPattern, 1, Function)

	return passes
}

// Highlight scans text once per pattern of the Language and returns a Span for
// every match. Spans are ordered by pass, then by position within a pass, and
// may overlap one another. An empty or unmatched text yields no Spans.
func (h *Highlighter) Highlight(text string) []Span {
	var spans []Span
	if text == "" {
		return spans
	}

	for _, p := range h.passes {
		m, err := p.pattern.FindStringMatch(text)
		for m != nil {
			if g := m.GroupByNumber(p.group); g != nil && len(g.Captures) > 0 {
				spans = append(spans, Span{p.syntax, g.Index, g.Index + g.Length})
			}
			m, err = p.pattern.FindNextMatch(m)
		}
		if err != nil && h.Logger != nil {
			// Keep whatever the pass found; highlighting never fails.
			h.Logger.Warn("highlight pass stopped", "syntax", p.syntax, "pattern", p.pattern.String(), "err", err)
		}
	}

	return spans
}

// Refresh clears every style applied to the Surface, highlights its text, and
// applies the resulting Spans in order. The Spans are returned.
func (h *Highlighter) Refresh(s Surface) []Span {
	for _, tag := range s.Tags() {
		s.ClearStyle(tag)
	}

	spans := h.Highlight(s.Text())
	for _, span := range spans {
		s.ApplyStyle(span.Syntax, span.Start, span.End)
	}

	if h.Logger != nil {
		h.Logger.Debug("highlighted surface", "spans", len(spans))
	}
	return spans
}

// Highlight classifies text with a new Highlighter for lang.
func Highlight(text string, lang *Language) []Span {
	return NewHighlighter(lang, nil).Highlight(text)
}
