package services

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/JNU-econovation/EATceed-AI/apperrors"
	"github.com/JNU-econovation/EATceed-AI/llm"
	"github.com/JNU-econovation/EATceed-AI/logger"
	"github.com/JNU-econovation/EATceed-AI/vectordb"
)

const (
	identifyPromptFile = "food_image_analyze.txt"
	identifyMaxTokens  = 300

	// DefaultTopK and DefaultScoreThreshold bound the similarity search.
	DefaultTopK           = 3
	DefaultScoreThreshold = 0.7
)

// ChatClient generates text from an instruction plus optional image content.
type ChatClient interface {
	Chat(ctx context.Context, messages []llm.Message, maxTokens int, temperature float64) (string, error)
}

// Embedder turns text into a fixed-dimension vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// VectorIndex returns ranked nearest-neighbor matches for a query vector.
type VectorIndex interface {
	Query(ctx context.Context, vector []float32, topK int) ([]vectordb.Match, error)
}

// SimilarFood is one slot of the fixed-size similarity result. Slots without
// a real match above the threshold carry nil fields.
type SimilarFood struct {
	FoodPK   *string  `json:"food_pk"`
	FoodName *string  `json:"food_name"`
	Score    *float64 `json:"score,omitempty"`
}

// FoodImageService identifies a food from a photo and matches the name
// against the catalog's vector index.
type FoodImageService struct {
	chat       ChatClient
	embedder   Embedder
	index      VectorIndex
	promptPath string
	topK       int
	threshold  float64
}

func NewFoodImageService(chat ChatClient, embedder Embedder, index VectorIndex, promptPath string) *FoodImageService {
	return &FoodImageService{
		chat:       chat,
		embedder:   embedder,
		index:      index,
		promptPath: promptPath,
		topK:       DefaultTopK,
		threshold:  DefaultScoreThreshold,
	}
}

// Identify sends the photo to the vision generator with the fixed instruction
// template and returns the food name it produced. Sampling is deterministic;
// retrying on upstream flakiness is the caller's decision.
func (s *FoodImageService) Identify(ctx context.Context, imageBase64 string) (string, error) {
	promptFile := filepath.Join(s.promptPath, identifyPromptFile)
	prompt, err := os.ReadFile(promptFile)
	if err != nil || len(strings.TrimSpace(string(prompt))) == 0 {
		logger.Error("food identification prompt missing", zap.String("path", promptFile))
		return "", apperrors.NewTemplateMissing(promptFile)
	}

	messages := []llm.Message{
		{Role: "system", Content: strings.TrimSpace(string(prompt))},
		{
			Role: "user",
			Content: []llm.ContentPart{
				{
					Type:     "image_url",
					ImageURL: &llm.ImageURL{URL: "data:image/jpeg;base64," + imageBase64},
				},
			},
		},
	}

	result, err := s.chat.Chat(ctx, messages, identifyMaxTokens, 0)
	if err != nil {
		return "", apperrors.NewExternalServiceError("vision generator", err)
	}

	name := strings.TrimSpace(result)
	if name == "" {
		logger.Error("vision generator returned empty food name")
		return "", apperrors.NewIdentificationFailed()
	}

	return name, nil
}

// SearchSimilar embeds the food name and returns exactly topK slots: real
// matches at or above the score threshold in the index's ranking order,
// padded with nil placeholders.
func (s *FoodImageService) SearchSimilar(ctx context.Context, foodName string) ([]SimilarFood, error) {
	// The embedding model behaves better on single-line input.
	query := strings.ReplaceAll(foodName, "\n", " ")

	vector, err := s.embedder.Embed(ctx, query)
	if err != nil {
		logger.Error("food name embedding failed", zap.Error(err))
		return nil, apperrors.NewExternalServiceError("embedding service", err)
	}

	matches, err := s.index.Query(ctx, vector, s.topK)
	if err != nil {
		logger.Error("vector index query failed", zap.Error(err))
		return nil, apperrors.NewExternalServiceError("vector index", err)
	}

	similar := make([]SimilarFood, 0, s.topK)
	for _, m := range matches {
		if m.Score < s.threshold {
			continue
		}
		id := m.ID
		name := m.Metadata["food_name"]
		score := m.Score
		similar = append(similar, SimilarFood{FoodPK: &id, FoodName: &name, Score: &score})
	}

	for len(similar) < s.topK {
		similar = append(similar, SimilarFood{})
	}

	return similar[:s.topK], nil
}
