package search

import (
	"strings"
	"unicode"
	"unicode/utf8"

	lfuzzy "github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/sahilm/fuzzy"
	"go.seanlatimer.dev/folio/internal/records"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Field weights: title outranks description, then tags, then date.
const (
	titleWeight       = 1.0
	descriptionWeight = 0.9
	tagsWeight        = 0.85
	dateWeight        = 0.8

	// crossFieldWeight scales the score of queries whose tokens are spread
	// over several fields.
	crossFieldWeight = 0.9
)

type preparedQuery struct {
	text   string
	tokens []string
}

func prepareQuery(q string) preparedQuery {
	folded := fold(q)
	return preparedQuery{text: folded, tokens: tokenize(folded)}
}

type scoredField struct {
	text   string
	weight float64
}

func recordFields(rec records.Record) []scoredField {
	fields := []scoredField{
		{text: rec.Title, weight: titleWeight},
		{text: rec.Description, weight: descriptionWeight},
	}
	for _, tag := range rec.Tags {
		fields = append(fields, scoredField{text: tag, weight: tagsWeight})
	}
	if rec.Date != nil {
		fields = append(fields, scoredField{text: *rec.Date, weight: dateWeight})
	}
	return fields
}

// scoreRecord returns a similarity in [0, 1] between the query and the
// best matching field of rec.
func scoreRecord(q preparedQuery, rec records.Record) float64 {
	fields := recordFields(rec)

	best := 0.0
	tokenBest := make([]float64, len(q.tokens))
	for _, f := range fields {
		text := fold(f.text)
		if text == "" {
			continue
		}
		if s := f.weight * fieldScore(q, text); s > best {
			best = s
		}
		fieldTokens := tokenize(text)
		for i, qt := range q.tokens {
			if s, _ := bestTokenMatch(qt, fieldTokens); f.weight*s > tokenBest[i] {
				tokenBest[i] = f.weight * s
			}
		}
	}

	if len(q.tokens) > 1 {
		if cross := crossFieldWeight * mean(tokenBest); cross > best {
			best = cross
		}
	}
	return clamp01(best)
}

// fieldScore combines substring, token and subsequence evidence for one
// folded field value.
func fieldScore(q preparedQuery, text string) float64 {
	if q.text == "" || text == "" {
		return 0
	}
	if text == q.text {
		return 1
	}

	best := 0.0
	if idx := strings.Index(text, q.text); idx >= 0 {
		best = 0.85 + 0.1*anchor(idx, len(text))
	}
	if s := tokenScore(q.tokens, tokenize(text)); s > best {
		best = s
	}
	if s := subsequenceScore(q.text, text); s > best {
		best = s
	}
	return best
}

// tokenScore is the mean per-token similarity scaled by how early the
// first matching token appears.
func tokenScore(queryTokens, fieldTokens []string) float64 {
	if len(queryTokens) == 0 || len(fieldTokens) == 0 {
		return 0
	}
	total := 0.0
	first := -1
	for _, qt := range queryTokens {
		s, pos := bestTokenMatch(qt, fieldTokens)
		total += s
		if s > 0 && (first == -1 || pos < first) {
			first = pos
		}
	}
	if first == -1 {
		return 0
	}
	coverage := total / float64(len(queryTokens))
	return coverage * (0.8 + 0.15*anchor(first, len(fieldTokens)))
}

func bestTokenMatch(qt string, fieldTokens []string) (float64, int) {
	best, pos := 0.0, -1
	for i, ft := range fieldTokens {
		if s := tokenSimilarity(qt, ft); s > best {
			best, pos = s, i
		}
	}
	return best, pos
}

// tokenSimilarity scores two folded words. Prefixes score high; otherwise
// the edit distance must stay within a small typo budget that grows with
// word length.
func tokenSimilarity(qt, ft string) float64 {
	if qt == ft {
		return 1
	}
	ql, fl := utf8.RuneCountInString(qt), utf8.RuneCountInString(ft)
	if ql == 0 || fl == 0 {
		return 0
	}
	if strings.HasPrefix(ft, qt) {
		return 0.7 + 0.3*float64(ql)/float64(fl)
	}

	dist := lfuzzy.LevenshteinDistance(qt, ft)
	if dist == 2 && isAdjacentSwap(qt, ft) {
		dist = 1
	}
	if dist > ql/3 {
		return 0
	}
	longest := ql
	if fl > longest {
		longest = fl
	}
	return 1 - float64(dist)/float64(longest)
}

// isAdjacentSwap reports whether b is a with one pair of neighbouring
// runes transposed.
func isAdjacentSwap(a, b string) bool {
	ra, rb := []rune(a), []rune(b)
	if len(ra) != len(rb) {
		return false
	}
	i := 0
	for i < len(ra) && ra[i] == rb[i] {
		i++
	}
	if i+1 >= len(ra) || ra[i] != rb[i+1] || ra[i+1] != rb[i] {
		return false
	}
	for j := i + 2; j < len(ra); j++ {
		if ra[j] != rb[j] {
			return false
		}
	}
	return true
}

// subsequenceScore rewards query characters matched in order, densely and
// early in the field.
func subsequenceScore(q, text string) float64 {
	matches := fuzzy.Find(q, []string{text})
	if len(matches) == 0 || len(matches[0].MatchedIndexes) == 0 {
		return 0
	}
	idx := matches[0].MatchedIndexes
	first, last := idx[0], idx[len(idx)-1]
	span := utf8.RuneCountInString(text[first:]) - utf8.RuneCountInString(text[last:]) + 1
	density := float64(utf8.RuneCountInString(q)) / float64(span)
	if density > 1 {
		density = 1
	}
	return 0.6*density + 0.2*anchor(first, len(text))
}

func anchor(pos, length int) float64 {
	if length <= 0 {
		return 0
	}
	return 1 - float64(pos)/float64(length)
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total / float64(len(values))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func tokenize(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// fold lowercases and strips combining marks. The transformer chain keeps
// state, so a fresh one is built per call.
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}

// compareFold orders strings case- and accent-insensitively, falling back
// to byte order so the result is total.
func compareFold(a, b string) int {
	if c := strings.Compare(fold(a), fold(b)); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}
