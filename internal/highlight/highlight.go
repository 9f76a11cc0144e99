// Package highlight runs a pattern over test text and splits the text into
// plain and matched segments.
//
// Offsets are codepoints. The text is indexed rune by rune; a byte that is
// not valid UTF-8 counts as one codepoint, and segment text is always sliced
// from the original bytes, so joining every segment's Text gives back the
// input exactly.
package highlight

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"
	"unicode/utf16"

	"github.com/dlclark/regexp2"
	"github.com/patrickmn/go-cache"
)

// Kind distinguishes plain gaps from matches.
type Kind int

const (
	Plain Kind = iota
	Match
)

func (k Kind) String() string {
	if k == Match {
		return "match"
	}
	return "plain"
}

// Segment is one piece of the partitioned text.
type Segment struct {
	Kind  Kind
	Start int // codepoint offset, inclusive
	End   int // codepoint offset, exclusive
	Text  string

	// UTF16Start and UTF16End address the same span in UTF-16 code units.
	UTF16Start int
	UTF16End   int

	// Index is the match ordinal for Match segments; Index%2 alternates
	// styling between neighbouring matches. It is -1 for Plain segments.
	Index     int
	ZeroWidth bool
	Groups    []Group
}

// Group is one capture group of a match.
type Group struct {
	Number  int
	Name    string // empty for unnamed groups
	Matched bool
	Start   int
	End     int
	Text    string
}

// Options bounds a highlight run. Zero values mean no limit, except
// CacheTTL which defaults to ten minutes.
type Options struct {
	// MatchTimeout limits each engine call.
	MatchTimeout time.Duration
	// MaxSteps limits the number of engine calls per run.
	MaxSteps int
	// CacheTTL is how long compiled patterns stay cached.
	CacheTTL time.Duration
}

// Highlighter compiles patterns with the regexp2 engine in RE2 mode and
// caches them. It is safe for concurrent use.
type Highlighter struct {
	opts  Options
	cache *cache.Cache
}

// New creates a Highlighter.
func New(opts Options) *Highlighter {
	ttl := opts.CacheTTL
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &Highlighter{
		opts:  opts,
		cache: cache.New(ttl, 2*ttl),
	}
}

// Compile returns the compiled engine pattern, from cache when possible.
func (h *Highlighter) Compile(pattern string) (*regexp2.Regexp, error) {
	if v, ok := h.cache.Get(pattern); ok {
		return v.(*regexp2.Regexp), nil
	}
	re, err := regexp2.Compile(pattern, regexp2.RE2)
	if err != nil {
		return nil, &CompileError{Pattern: pattern, Err: err}
	}
	if h.opts.MatchTimeout > 0 {
		re.MatchTimeout = h.opts.MatchTimeout
	}
	h.cache.Set(pattern, re, cache.DefaultExpiration)
	return re, nil
}

// Highlight partitions text into Plain gaps and Match segments, scanning
// left to right. The returned segments are a valid partition of text even
// when err is non-nil: on a *CompileError the whole text is one Plain
// segment, on a *TimeoutError the segments found so far are followed by the
// unscanned tail.
//
// Empty text yields no segments; an empty pattern yields text unsegmented.
func (h *Highlighter) Highlight(ctx context.Context, pattern, text string) ([]Segment, error) {
	if text == "" {
		return nil, nil
	}
	t := index(text)
	if pattern == "" {
		return []Segment{t.plain(0, t.len())}, nil
	}

	re, err := h.Compile(pattern)
	if err != nil {
		return []Segment{t.plain(0, t.len())}, err
	}

	var segs []Segment
	cursor, last, ordinal := 0, 0, 0
	for steps := 0; cursor <= t.len(); steps++ {
		if err := h.budget(ctx, steps); err != nil {
			if last < t.len() {
				segs = append(segs, t.plain(last, t.len()))
			}
			return segs, &TimeoutError{Pattern: pattern, Matches: ordinal, Err: err}
		}

		m, err := re.FindRunesMatchStartingAt(t.runes, cursor)
		if err != nil {
			if last < t.len() {
				segs = append(segs, t.plain(last, t.len()))
			}
			return segs, &TimeoutError{Pattern: pattern, Matches: ordinal, Err: err}
		}
		if m == nil {
			break
		}

		start, end := m.Index, m.Index+m.Length
		if start > last {
			segs = append(segs, t.plain(last, start))
		}
		segs = append(segs, t.match(m, ordinal))
		ordinal++
		last = end

		if end == start {
			// step over exactly one codepoint
			cursor = end + 1
		} else {
			cursor = end
		}
	}

	if last < t.len() {
		segs = append(segs, t.plain(last, t.len()))
	}
	return segs, nil
}

func (h *Highlighter) budget(ctx context.Context, steps int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if h.opts.MaxSteps > 0 && steps >= h.opts.MaxSteps {
		return fmt.Errorf("step limit %d reached", h.opts.MaxSteps)
	}
	return nil
}

// Matches returns only the Match segments of a Highlight run.
func Matches(segs []Segment) []Segment {
	var out []Segment
	for _, s := range segs {
		if s.Kind == Match {
			out = append(out, s)
		}
	}
	return out
}

// IsTimeout reports whether err is a budget timeout.
func IsTimeout(err error) bool {
	return errors.Is(err, ErrMatchTimeout)
}

// indexedText maps codepoint offsets onto the original bytes.
type indexedText struct {
	text  string
	runes []rune
	bytes []int // byte offset of each codepoint, plus len(text)
	utf16 []int // UTF-16 offset of each codepoint, plus the total
}

func index(text string) *indexedText {
	t := &indexedText{
		text:  text,
		runes: make([]rune, 0, len(text)),
		bytes: make([]int, 0, len(text)+1),
		utf16: make([]int, 0, len(text)+1),
	}
	u := 0
	for i, r := range text {
		t.runes = append(t.runes, r)
		t.bytes = append(t.bytes, i)
		t.utf16 = append(t.utf16, u)
		n := utf16.RuneLen(r)
		if n < 1 {
			n = 1
		}
		u += n
	}
	t.bytes = append(t.bytes, len(text))
	t.utf16 = append(t.utf16, u)
	return t
}

func (t *indexedText) len() int { return len(t.runes) }

func (t *indexedText) slice(start, end int) string {
	return t.text[t.bytes[start]:t.bytes[end]]
}

func (t *indexedText) plain(start, end int) Segment {
	return Segment{
		Kind:       Plain,
		Start:      start,
		End:        end,
		Text:       t.slice(start, end),
		UTF16Start: t.utf16[start],
		UTF16End:   t.utf16[end],
		Index:      -1,
	}
}

func (t *indexedText) match(m *regexp2.Match, ordinal int) Segment {
	start, end := m.Index, m.Index+m.Length
	seg := Segment{
		Kind:       Match,
		Start:      start,
		End:        end,
		Text:       t.slice(start, end),
		UTF16Start: t.utf16[start],
		UTF16End:   t.utf16[end],
		Index:      ordinal,
		ZeroWidth:  start == end,
	}

	groups := m.Groups()
	for i := 1; i < len(groups); i++ {
		g := groups[i]
		grp := Group{Number: i}
		if _, err := strconv.Atoi(g.Name); err != nil {
			grp.Name = g.Name
		}
		if len(g.Captures) > 0 {
			grp.Matched = true
			grp.Start, grp.End = g.Index, g.Index+g.Length
			grp.Text = t.slice(grp.Start, grp.End)
		}
		seg.Groups = append(seg.Groups, grp)
	}
	return seg
}
