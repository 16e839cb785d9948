// Package metrics computes similarity and readability numbers between
// an original statement and its enriched rewrite.
package metrics

import (
	"context"
	"math"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/pkoukk/tiktoken-go"

	"github.com/ShkrSltn/dbot-sub000/llm"
	"github.com/ShkrSltn/dbot-sub000/utils"
)

// Readability holds surface statistics of the enriched text.
type Readability struct {
	WordCount            int     `json:"word_count"`
	CharacterCount       int     `json:"character_count"`
	AvgWordLength        float64 `json:"avg_word_length"`
	AvgSentenceLength    float64 `json:"avg_sentence_length"`
	EstimatedReadingEase float64 `json:"estimated_reading_ease"`
	TokenCount           int     `json:"token_count,omitempty"`
}

// Metrics is the full quality report for an (original, enriched) pair.
type Metrics struct {
	CosineEmbedding float64     `json:"cosine_embedding"`
	CosineTFIDF     float64     `json:"cosine_tfidf"`
	Readability     Readability `json:"readability"`
}

var (
	wordPattern     = regexp.MustCompile(`\w+`)
	sentencePattern = regexp.MustCompile(`[.!?]+`)
)

// Calculator computes Metrics. The embedder must serve a single model
// for the lifetime of the calculator so vector lengths stay consistent.
type Calculator struct {
	embedder llm.EmbeddingModel
	encoding *tiktoken.Tiktoken
	logger   utils.Logger
}

// NewCalculator creates a Calculator. The tokenizer is resolved from
// the chat model id; when that fails the token count is omitted.
func NewCalculator(embedder llm.EmbeddingModel, model string, logger utils.Logger) *Calculator {
	if logger == nil {
		logger = utils.NopLogger{}
	}
	encoding, err := tiktoken.EncodingForModel(model)
	if err != nil {
		encoding, err = tiktoken.EncodingForModel("gpt-4o")
		if err != nil {
			logger.Warn("No tokenizer available, token counts disabled", "model", model)
			encoding = nil
		}
	}
	return &Calculator{
		embedder: embedder,
		encoding: encoding,
		logger:   logger,
	}
}

// Calculate returns the quality metrics for the pair. Both strings must
// be non-empty.
func (c *Calculator) Calculate(ctx context.Context, original, enriched string) (*Metrics, error) {
	if original == "" || enriched == "" {
		return nil, llm.NewPipelineError(llm.ErrorTypeInvalidInput, "original and enriched must be non-empty", nil)
	}

	vectors, err := c.embedder.Embed(ctx, []string{original, enriched})
	if err != nil {
		return nil, err
	}

	m := &Metrics{
		CosineEmbedding: CosineSimilarity(vectors[0], vectors[1]),
		CosineTFIDF:     TermFrequencyCosine(original, enriched),
		Readability:     c.readability(enriched),
	}
	c.logger.Debug("Metrics computed",
		"cosine_embedding", m.CosineEmbedding,
		"cosine_tfidf", m.CosineTFIDF,
		"reading_ease", m.Readability.EstimatedReadingEase)
	return m, nil
}

// CosineSimilarity returns (a·b)/(‖a‖·‖b‖), or 0 when either norm is
// zero.
func CosineSimilarity(a, b []float64) float64 {
	var dot, normA, normB float64
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		dot += a[i] * b[i]
	}
	for _, v := range a {
		normA += v * v
	}
	for _, v := range b {
		normB += v * v
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// TermFrequencyCosine computes the cosine similarity of the two texts'
// lowercased term-frequency vectors.
func TermFrequencyCosine(a, b string) float64 {
	tfA := termFrequencies(a)
	tfB := termFrequencies(b)

	var dot, magA, magB float64
	for _, count := range tfA {
		magA += float64(count * count)
	}
	for _, count := range tfB {
		magB += float64(count * count)
	}
	if magA == 0 || magB == 0 {
		return 0
	}
	for term, count := range tfA {
		dot += float64(count * tfB[term])
	}
	return dot / (math.Sqrt(magA) * math.Sqrt(magB))
}

func termFrequencies(text string) map[string]int {
	tf := make(map[string]int)
	for _, term := range wordPattern.FindAllString(strings.ToLower(text), -1) {
		tf[term]++
	}
	return tf
}

func (c *Calculator) readability(text string) Readability {
	wordCount := len(wordPattern.FindAllString(text, -1))
	charCount := utf8.RuneCountInString(text)
	sentenceCount := len(sentencePattern.FindAllString(text, -1))
	if sentenceCount < 1 {
		sentenceCount = 1
	}

	divWords := wordCount
	if divWords < 1 {
		divWords = 1
	}
	avgWordLength := float64(charCount) / float64(divWords)
	avgSentenceLength := float64(wordCount) / float64(sentenceCount)

	// Flesch-style estimate with word length standing in for syllables.
	ease := 206.835 - 1.015*avgSentenceLength - 84.6*(float64(charCount)/float64(divWords)/5)
	ease = math.Max(0, math.Min(100, ease))

	r := Readability{
		WordCount:            wordCount,
		CharacterCount:       charCount,
		AvgWordLength:        avgWordLength,
		AvgSentenceLength:    avgSentenceLength,
		EstimatedReadingEase: ease,
	}
	if c.encoding != nil {
		r.TokenCount = len(c.encoding.Encode(text, nil, nil))
	}
	return r
}
