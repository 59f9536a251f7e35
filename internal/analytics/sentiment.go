package analytics

import (
	"context"
	"math"
	"sort"

	"golang.org/x/sync/errgroup"
)

// rankingConcurrency bounds the per-conversation fan-out in
// ConversationSentimentRanking. The store is a single local SQLite file,
// so a small bound is plenty.
const rankingConcurrency = 8

// MeanSentiment returns the arithmetic mean sentiment score of a
// conversation's messages. Null text scores zero rather than being
// skipped. Attachment-flagged messages are excluded when the analyzer's
// FilterAttachmentsInSentiment option is set. The mean of an empty
// conversation is NaN; callers must handle it.
func (a *Analyzer) MeanSentiment(ctx context.Context, identifier string) (float64, error) {
	msgs, err := a.source.FetchMessages(ctx, identifier)
	if err != nil {
		return 0, err
	}

	var sum float64
	var n int
	for _, m := range msgs {
		if a.opts.FilterAttachmentsInSentiment && m.HasAttachment {
			continue
		}
		if m.Text != nil {
			sum += a.score(*m.Text)
		}
		n++
	}
	if n == 0 {
		return math.NaN(), nil
	}
	return sum / float64(n), nil
}

// ConversationSentimentRanking computes the mean sentiment of every
// known conversation and returns one entry per identifier, sorted by
// descending score. Per-conversation fetches run concurrently with no
// shared mutable state; the first failure cancels the rest and fails the
// whole call, with no partial result.
func (a *Analyzer) ConversationSentimentRanking(ctx context.Context) ([]ConversationScore, error) {
	ids, err := a.source.ListConversationIdentifiers(ctx)
	if err != nil {
		return nil, err
	}

	scores := make([]ConversationScore, len(ids))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(rankingConcurrency)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			mean, err := a.MeanSentiment(ctx, id)
			if err != nil {
				return err
			}
			scores[i] = ConversationScore{Identifier: id, Score: mean}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Descending by score with NaN (empty conversations) last; ties break
	// on the identifier so the ranking is deterministic.
	sort.SliceStable(scores, func(i, j int) bool {
		si, sj := scores[i].Score, scores[j].Score
		switch {
		case math.IsNaN(si) && math.IsNaN(sj):
			return scores[i].Identifier < scores[j].Identifier
		case math.IsNaN(si):
			return false
		case math.IsNaN(sj):
			return true
		case si != sj:
			return si > sj
		default:
			return scores[i].Identifier < scores[j].Identifier
		}
	})
	return scores, nil
}
