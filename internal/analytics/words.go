package analytics

import (
	"context"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"chatmetrics/internal/imessage"
)

// WordFrequencies counts word occurrences across a conversation's
// non-attachment messages: punctuation stripped, whitespace split, case
// folded. The result is ordered by descending count; ties break
// lexicographically on the word so output is deterministic.
func (a *Analyzer) WordFrequencies(ctx context.Context, identifier string) ([]WordCount, error) {
	msgs, err := a.source.FetchMessages(ctx, identifier)
	if err != nil {
		return nil, err
	}

	// A cases.Caser is stateful, so build one per call rather than
	// sharing a package-level instance.
	lower := cases.Lower(language.Und)

	counts := make(map[string]int)
	for _, m := range msgs {
		if m.HasAttachment || m.Text == nil {
			continue
		}
		for _, tok := range strings.Fields(stripPunctuation(*m.Text)) {
			counts[lower.String(tok)]++
		}
	}

	out := make([]WordCount, 0, len(counts))
	for word, n := range counts {
		out = append(out, WordCount{Word: word, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Word < out[j].Word
	})
	return out, nil
}

// LongestMessages returns a conversation's non-attachment messages
// ordered by descending text length. Null text sorts with length zero;
// equal lengths keep store order.
func (a *Analyzer) LongestMessages(ctx context.Context, identifier string) ([]RankedMessage, error) {
	msgs, err := a.source.FetchMessages(ctx, identifier)
	if err != nil {
		return nil, err
	}

	kept := make([]imessage.Message, 0, len(msgs))
	for _, m := range msgs {
		if m.HasAttachment {
			continue
		}
		kept = append(kept, m)
	}
	sort.SliceStable(kept, func(i, j int) bool {
		return textLen(kept[i].Text) > textLen(kept[j].Text)
	})

	out := make([]RankedMessage, len(kept))
	for i, m := range kept {
		out[i] = RankedMessage{Text: textOrEmpty(m.Text), FromMe: m.FromMe}
	}
	return out, nil
}
