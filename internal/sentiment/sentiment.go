// Package sentiment scores text with an embedded valence lexicon.
// Scoring is a pure function of the input text: no I/O, no state.
package sentiment

import (
	"bufio"
	_ "embed"
	"strconv"
	"strings"
)

// Func maps text to a sentiment score. Higher means more positive.
type Func func(text string) float64

//go:embed lexicon.txt
var lexiconData string

// lexicon maps lowercase words to a valence in -5..5.
var lexicon = parseLexicon(lexiconData)

func parseLexicon(data string) map[string]int {
	m := make(map[string]int)
	sc := bufio.NewScanner(strings.NewReader(data))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		word, val, ok := strings.Cut(line, "\t")
		if !ok {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(val))
		if err != nil {
			continue
		}
		m[strings.ToLower(word)] = n
	}
	return m
}

// tokenTrimSet covers the punctuation that commonly clings to words in
// chat text. Trimmed from both ends of each token before lookup.
const tokenTrimSet = ".,!?;:\"'()[]{}<>*~"

// Score sums the valence of every known token in text. Unknown tokens
// contribute nothing; empty text scores zero.
func Score(text string) float64 {
	var sum int
	for _, tok := range strings.Fields(text) {
		tok = strings.ToLower(strings.Trim(tok, tokenTrimSet))
		if v, ok := lexicon[tok]; ok {
			sum += v
		}
	}
	return float64(sum)
}
