package sentiment

import (
	"context"
	"strings"
	"unicode"
)

// lexiconEntry carries the prior polarity and subjectivity of one word.
type lexiconEntry struct {
	polarity     float64
	subjectivity float64
}

// polarityLexicon is a compact general-purpose opinion lexicon. Values
// follow the usual convention: polarity in [-1,1], subjectivity in [0,1].
var polarityLexicon = map[string]lexiconEntry{
	"amazing":       {0.7, 0.9},
	"awesome":       {0.8, 0.9},
	"awful":         {-0.8, 0.9},
	"bad":           {-0.6, 0.7},
	"beautiful":     {0.7, 0.8},
	"best":          {0.9, 0.7},
	"better":        {0.4, 0.5},
	"boring":        {-0.6, 0.8},
	"brilliant":     {0.8, 0.9},
	"broken":        {-0.4, 0.4},
	"clear":         {0.3, 0.4},
	"confusing":     {-0.4, 0.6},
	"cool":          {0.5, 0.7},
	"disappointing": {-0.6, 0.8},
	"disgusting":    {-0.9, 0.9},
	"dislike":       {-0.5, 0.7},
	"dumb":          {-0.6, 0.8},
	"enjoy":         {0.5, 0.6},
	"enjoyed":       {0.5, 0.6},
	"excellent":     {0.9, 0.9},
	"fail":          {-0.6, 0.5},
	"fantastic":     {0.8, 0.9},
	"favorite":      {0.6, 0.8},
	"fine":          {0.2, 0.4},
	"fun":           {0.5, 0.7},
	"garbage":       {-0.8, 0.8},
	"glad":          {0.5, 0.7},
	"good":          {0.6, 0.6},
	"great":         {0.8, 0.75},
	"happy":         {0.7, 0.8},
	"hate":          {-0.8, 0.9},
	"hated":         {-0.8, 0.9},
	"helpful":       {0.5, 0.5},
	"horrible":      {-0.9, 0.9},
	"impressive":    {0.7, 0.8},
	"incredible":    {0.8, 0.9},
	"informative":   {0.5, 0.4},
	"interesting":   {0.5, 0.6},
	"like":          {0.4, 0.5},
	"liked":         {0.4, 0.5},
	"love":          {0.6, 0.7},
	"loved":         {0.6, 0.7},
	"mediocre":      {-0.3, 0.6},
	"nice":          {0.6, 0.8},
	"okay":          {0.1, 0.3},
	"pathetic":      {-0.8, 0.9},
	"perfect":       {0.9, 0.9},
	"pointless":     {-0.6, 0.7},
	"poor":          {-0.5, 0.6},
	"recommend":     {0.5, 0.5},
	"ridiculous":    {-0.5, 0.8},
	"sad":           {-0.5, 0.8},
	"stupid":        {-0.7, 0.9},
	"terrible":      {-0.9, 0.9},
	"thanks":        {0.4, 0.4},
	"trash":         {-0.7, 0.8},
	"ugly":          {-0.6, 0.8},
	"useful":        {0.5, 0.4},
	"useless":       {-0.6, 0.7},
	"waste":         {-0.6, 0.6},
	"wonderful":     {0.8, 0.9},
	"worse":         {-0.5, 0.6},
	"worst":         {-0.9, 0.8},
	"wow":           {0.4, 0.9},
	"wrong":         {-0.4, 0.5},
}

var negationWords = map[string]bool{
	"not": true, "no": true, "never": true, "neither": true,
	"nobody": true, "nothing": true, "dont": true, "doesnt": true,
	"didnt": true, "isnt": true, "wasnt": true, "cant": true,
	"wont": true, "wouldnt": true, "hardly": true, "barely": true,
}

// intensifiers scale the polarity of the following sentiment word.
var intensifiers = map[string]float64{
	"very": 1.3, "really": 1.3, "absolutely": 1.4, "extremely": 1.5,
	"so": 1.2, "totally": 1.3, "completely": 1.4, "incredibly": 1.5,
	"super": 1.3, "quite": 1.1,
}

// LexiconModel is the default polarity/subjectivity model: a word-lexicon
// scorer with negation and intensifier handling. It exists behind the
// Model interface so a stronger scorer can replace it without touching
// label derivation.
type LexiconModel struct{}

func NewLexiconModel() *LexiconModel { return &LexiconModel{} }

func (m *LexiconModel) Name() string { return "lexicon" }

func (m *LexiconModel) Score(_ context.Context, text string) (Scores, error) {
	words := tokenize(text)

	var polaritySum, subjectivitySum float64
	matched := 0
	negated := false
	boost := 1.0

	for _, w := range words {
		if negationWords[w] {
			negated = true
			boost = 1.0
			continue
		}
		if factor, ok := intensifiers[w]; ok {
			boost *= factor
			continue
		}

		entry, ok := polarityLexicon[w]
		if !ok {
			// Modifiers only reach across one non-sentiment word.
			negated = false
			boost = 1.0
			continue
		}

		p := clamp(entry.polarity*boost, -1, 1)
		if negated {
			p = -p * 0.5 // "not good" is mildly negative, not anti-good
		}
		polaritySum += p
		subjectivitySum += entry.subjectivity
		matched++
		negated = false
		boost = 1.0
	}

	if matched == 0 {
		return Scores{}, nil
	}
	return Scores{
		Polarity:     clamp(polaritySum/float64(matched), -1, 1),
		Subjectivity: clamp(subjectivitySum/float64(matched), 0, 1),
	}, nil
}

func tokenize(text string) []string {
	var words []string
	for _, field := range strings.Fields(strings.ToLower(text)) {
		cleaned := strings.Map(func(r rune) rune {
			if unicode.IsLetter(r) || unicode.IsDigit(r) {
				return r
			}
			return -1
		}, field)
		if cleaned != "" {
			words = append(words, cleaned)
		}
	}
	return words
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
