// Package analytics derives aggregate views from raw conversation
// messages: word-frequency histograms, longest-message rankings, and
// sentiment means. Every view is recomputed from raw rows on each call;
// nothing is cached across calls.
package analytics

import (
	"context"
	"strings"

	"chatmetrics/internal/imessage"
	"chatmetrics/internal/sentiment"
)

// MessageSource is the slice of the message store the analyzer needs.
// *imessage.DB satisfies it.
type MessageSource interface {
	ListConversationIdentifiers(ctx context.Context) ([]string, error)
	FetchMessages(ctx context.Context, identifier string) ([]imessage.Message, error)
}

// WordCount is one entry of a word-frequency histogram.
type WordCount struct {
	Word  string
	Count int
}

// RankedMessage is one entry of a longest-message ranking.
type RankedMessage struct {
	Text   string
	FromMe bool
}

// ConversationScore pairs a conversation identifier with its mean
// sentiment score.
type ConversationScore struct {
	Identifier string
	Score      float64
}

// Options configures view behavior.
type Options struct {
	// FilterAttachmentsInSentiment excludes attachment-flagged messages
	// from MeanSentiment, aligning it with the word and longest views.
	// False scores every message, attachments included.
	FilterAttachmentsInSentiment bool
}

// Analyzer computes aggregate views over a message source.
type Analyzer struct {
	source MessageSource
	score  sentiment.Func
	opts   Options
}

// New creates an Analyzer reading from source and scoring text with score.
func New(source MessageSource, score sentiment.Func, opts Options) *Analyzer {
	return &Analyzer{source: source, score: score, opts: opts}
}

// punctuation is the fixed character set stripped from message text
// before tokenizing. Apostrophes and quotes deliberately pass through so
// contractions stay intact.
const punctuation = ".,-/#!$%^&*;:{}=_~()"

// stripPunctuation removes the fixed punctuation set from s. Everything
// else, whitespace included, passes through untouched.
func stripPunctuation(s string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(punctuation, r) {
			return -1
		}
		return r
	}, s)
}

func textLen(t *string) int {
	if t == nil {
		return 0
	}
	return len(*t)
}

func textOrEmpty(t *string) string {
	if t == nil {
		return ""
	}
	return *t
}
