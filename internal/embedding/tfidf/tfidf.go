package tfidf

import (
	"math"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"helpdesk/internal/embedding"
)

// Model is a TF-IDF vectorizer fitted on a fixed corpus.
// It is read-only after Fit and safe for concurrent use.
type Model struct {
	vocabulary map[string]int
	terms      []string
	idf        []float64
}

var _ embedding.Embedder = (*Model)(nil)

// Fit builds the vocabulary and smoothed IDF weights from the corpus.
// An empty corpus, or one without any indexable token, yields a model of
// dimension zero whose embeddings are always empty.
func Fit(corpus []string) *Model {
	df := make(map[string]int)
	for _, text := range corpus {
		seen := make(map[string]struct{})
		for _, tok := range Tokenize(text) {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}
	// Create stable ordering for vocabulary
	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	m := &Model{
		vocabulary: make(map[string]int, len(terms)),
		terms:      terms,
		idf:        make([]float64, len(terms)),
	}
	n := float64(len(corpus))
	for i, term := range terms {
		m.vocabulary[term] = i
		m.idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1.0
	}
	return m
}

// Name returns the identifier of this embedder implementation.
func (m *Model) Name() string { return "tfidf" }

// Dimension returns the vocabulary size.
func (m *Model) Dimension() int { return len(m.terms) }

// Terms returns the sorted vocabulary.
func (m *Model) Terms() []string {
	out := make([]string, len(m.terms))
	copy(out, m.terms)
	return out
}

// IDF returns the inverse document frequency of term and whether it is in
// the vocabulary.
func (m *Model) IDF(term string) (float64, bool) {
	idx, ok := m.vocabulary[term]
	if !ok {
		return 0, false
	}
	return m.idf[idx], true
}

// Embed computes the L2-normalised TF-IDF vector of text. Terms outside the
// fitted vocabulary are ignored.
func (m *Model) Embed(text string) embedding.Vector {
	tf := make(map[int]int)
	for _, tok := range Tokenize(text) {
		if idx, ok := m.vocabulary[tok]; ok {
			tf[idx]++
		}
	}
	if len(tf) == 0 {
		return nil
	}
	vec := make(embedding.Vector, 0, len(tf))
	for idx, count := range tf {
		vec = append(vec, embedding.Entry{Index: idx, Weight: float64(count) * m.idf[idx]})
	}
	sort.Slice(vec, func(i, j int) bool { return vec[i].Index < vec[j].Index })
	return vec.Normalize()
}

// Tokenize lower-cases text, splits it on anything that is not a letter or a
// digit, and drops stop words and tokens shorter than two characters.
func Tokenize(text string) []string {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	out := words[:0]
	for _, w := range words {
		if utf8.RuneCountInString(w) < 2 {
			continue
		}
		if IsStopword(w) {
			continue
		}
		out = append(out, w)
	}
	return out
}

// IsStopword reports whether w is in the English stop-word list.
func IsStopword(w string) bool {
	_, ok := stopwords[w]
	return ok
}

var stopwords = func() map[string]struct{} {
	words := []string{
		"a", "about", "above", "across", "after", "afterwards", "again", "against", "all", "almost",
		"alone", "along", "already", "also", "although", "always", "am", "among", "amongst", "an",
		"and", "another", "any", "anyhow", "anyone", "anything", "anyway", "anywhere", "are", "around",
		"as", "at", "be", "became", "because", "become", "becomes", "becoming", "been", "before",
		"beforehand", "behind", "being", "below", "beside", "besides", "between", "beyond", "both", "but",
		"by", "can", "cannot", "could", "did", "do", "does", "doing", "done", "down",
		"due", "during", "each", "eg", "either", "else", "elsewhere", "enough", "etc", "even",
		"ever", "every", "everyone", "everything", "everywhere", "except", "few", "for", "former", "formerly",
		"from", "further", "had", "has", "have", "having", "he", "hence", "her", "here",
		"hereafter", "hereby", "herein", "hers", "herself", "him", "himself", "his", "how", "however",
		"i", "ie", "if", "in", "indeed", "into", "is", "it", "its", "itself",
		"just", "keep", "last", "latter", "latterly", "least", "less", "made", "many", "may",
		"me", "meanwhile", "might", "mine", "more", "moreover", "most", "mostly", "much", "must",
		"my", "myself", "namely", "neither", "never", "nevertheless", "next", "no", "nobody", "none",
		"noone", "nor", "not", "nothing", "now", "nowhere", "of", "off", "often", "on",
		"once", "one", "only", "onto", "or", "other", "others", "otherwise", "our", "ours",
		"ourselves", "out", "over", "own", "per", "perhaps", "please", "quite", "rather", "re",
		"same", "see", "seem", "seemed", "seeming", "seems", "several", "she", "should", "since",
		"so", "some", "somehow", "someone", "something", "sometime", "sometimes", "somewhere", "still", "such",
		"than", "that", "the", "their", "theirs", "them", "themselves", "then", "thence", "there",
		"thereafter", "thereby", "therefore", "therein", "thereupon", "these", "they", "this", "those", "though",
		"through", "throughout", "thru", "thus", "to", "together", "too", "toward", "towards", "under",
		"until", "up", "upon", "us", "very", "via", "was", "we", "well", "were",
		"what", "whatever", "when", "whence", "whenever", "where", "whereafter", "whereas", "whereby", "wherein",
		"whereupon", "wherever", "whether", "which", "while", "whither", "who", "whoever", "whole", "whom",
		"whose", "why", "will", "with", "within", "without", "would", "yet", "you", "your",
		"yours", "yourself", "yourselves",
	}
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}()
