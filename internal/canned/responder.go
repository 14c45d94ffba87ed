// Package canned implements the keyword matcher behind the site's
// "emergency assistant" widget. It is a lookup table, not a reasoning
// engine: each entry pairs a set of trigger phrases with a fixed reply,
// and a query is answered by the entry whose triggers best overlap the
// query's token set.
//
// Design:
//   - No logging and no I/O; the service layer decides thresholds and
//     fallback wording
//   - Unicode-aware tokenization with optional stop-word removal
//   - Immutable after construction, safe for concurrent use
//   - Deterministic scoring and tie-breaking (stable answers for
//     identical questions)
//
// Scoring uses Jaccard similarity between the query token set and each
// entry's trigger token set: score = |Q ∩ T| / |Q ∪ T|.
package canned

import (
	"regexp"
	"sort"
	"strings"
)

// Entry pairs trigger phrases with the reply to hand back when they match.
type Entry struct {
	// Triggers are example phrases or keyword lists; all of them are
	// tokenized into one set per entry.
	Triggers []string
	// Reply is the canned response returned verbatim.
	Reply string
}

// Match is a scored reply candidate.
type Match struct {
	Reply string
	Score float64
}

// Responder answers queries from a fixed entry table.
type Responder interface {
	// Best returns the highest-scoring match for query, or ok=false when
	// nothing overlaps at all.
	Best(query string) (Match, bool)
}

type entrySet struct {
	reply  string
	tokens map[string]struct{}
	tLen   int
}

type responder struct {
	stopwords map[string]struct{}
	entries   []entrySet
}

// Option customizes Responder construction.
type Option func(*responder)

// WithStopwords removes the given words from both triggers and queries
// before scoring. Useful for filler like "my", "help", "there".
func WithStopwords(words []string) Option {
	return func(r *responder) {
		m := make(map[string]struct{}, len(words))
		for _, w := range words {
			w = strings.ToLower(strings.TrimSpace(w))
			if w != "" {
				m[w] = struct{}{}
			}
		}
		if len(m) > 0 {
			r.stopwords = m
		}
	}
}

// New builds a Responder from the given entries. Entries whose triggers
// tokenize to nothing are dropped.
func New(entries []Entry, opts ...Option) Responder {
	r := &responder{}
	for _, o := range opts {
		o(r)
	}
	for _, e := range entries {
		toks := make(map[string]struct{})
		for _, trig := range e.Triggers {
			for tok := range tokenize(trig, r.stopwords) {
				toks[tok] = struct{}{}
			}
		}
		if len(toks) == 0 {
			continue
		}
		r.entries = append(r.entries, entrySet{reply: e.Reply, tokens: toks, tLen: len(toks)})
	}
	return r
}

// Best scores every entry against query and returns the winner.
func (r *responder) Best(query string) (Match, bool) {
	if len(r.entries) == 0 {
		return Match{}, false
	}
	qTokens := tokenize(query, r.stopwords)
	if len(qTokens) == 0 {
		return Match{}, false
	}
	qLen := len(qTokens)

	type scored struct {
		reply string
		score float64
	}
	var buf []scored
	for _, e := range r.entries {
		over := overlap(qTokens, e.tokens)
		if over == 0 {
			continue
		}
		union := float64(qLen + e.tLen - over)
		if union <= 0 {
			continue
		}
		buf = append(buf, scored{reply: e.reply, score: float64(over) / union})
	}
	if len(buf) == 0 {
		return Match{}, false
	}
	sort.SliceStable(buf, func(a, b int) bool {
		if buf[a].score != buf[b].score {
			return buf[a].score > buf[b].score
		}
		return buf[a].reply < buf[b].reply
	})
	return Match{Reply: buf[0].reply, Score: buf[0].score}, true
}

var wordRE = regexp.MustCompile(`\p{L}+\p{N}*`)

func tokenize(s string, stop map[string]struct{}) map[string]struct{} {
	s = strings.ToLower(s)
	words := wordRE.FindAllString(s, -1)
	if len(words) == 0 {
		return nil
	}
	out := make(map[string]struct{}, len(words))
	for _, w := range words {
		if stop != nil {
			if _, skip := stop[w]; skip {
				continue
			}
		}
		out[w] = struct{}{}
	}
	return out
}

func overlap(a, b map[string]struct{}) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	if len(a) > len(b) {
		a, b = b, a
	}
	n := 0
	for k := range a {
		if _, ok := b[k]; ok {
			n++
		}
	}
	return n
}
