package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/JNU-econovation/EATceed-AI/apperrors"
	"github.com/JNU-econovation/EATceed-AI/llm"
	"github.com/JNU-econovation/EATceed-AI/utils"
)

// Prompt template files, one per advice field.
const (
	promptWeightPrediction = "weight_prediction.txt"
	promptAdviceCarbo      = "advice_carbohydrate.txt"
	promptAdviceProtein    = "advice_protein.txt"
	promptAdviceFat        = "advice_fat.txt"
	promptSynthesis        = "synthesis_advice.txt"

	adviceMaxTokens   = 500
	adviceTemperature = 0
)

// AdviceResult is the advice-generator output persisted as an EatHabits row.
type AdviceResult struct {
	WeightPrediction   string
	AdviceCarbohydrate string
	AdviceProtein      string
	AdviceFat          string
	SynthesisAdvice    string
}

// AdviceGenerator produces the diet analysis texts from the feature payload.
type AdviceGenerator interface {
	Generate(ctx context.Context, payload utils.AnalysisPayload) (*AdviceResult, error)
}

// LLMAdviceGenerator drives a text generator with one instruction template
// per output field. The synthesis prompt additionally sees the four texts it
// is meant to summarize.
type LLMAdviceGenerator struct {
	chat       ChatClient
	promptPath string
}

func NewLLMAdviceGenerator(chat ChatClient, promptPath string) *LLMAdviceGenerator {
	return &LLMAdviceGenerator{chat: chat, promptPath: promptPath}
}

func (g *LLMAdviceGenerator) Generate(ctx context.Context, payload utils.AnalysisPayload) (*AdviceResult, error) {
	features, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal analysis payload: %w", err)
	}

	result := &AdviceResult{}

	steps := []struct {
		file string
		out  *string
	}{
		{promptWeightPrediction, &result.WeightPrediction},
		{promptAdviceCarbo, &result.AdviceCarbohydrate},
		{promptAdviceProtein, &result.AdviceProtein},
		{promptAdviceFat, &result.AdviceFat},
	}

	for _, step := range steps {
		text, err := g.generateOne(ctx, step.file, string(features))
		if err != nil {
			return nil, err
		}
		*step.out = text
	}

	synthesisInput := fmt.Sprintf(
		"%s\n\nweight_prediction: %s\nadvice_carbohydrate: %s\nadvice_protein: %s\nadvice_fat: %s",
		features, result.WeightPrediction, result.AdviceCarbohydrate,
		result.AdviceProtein, result.AdviceFat,
	)
	synthesis, err := g.generateOne(ctx, promptSynthesis, synthesisInput)
	if err != nil {
		return nil, err
	}
	result.SynthesisAdvice = synthesis

	return result, nil
}

func (g *LLMAdviceGenerator) generateOne(ctx context.Context, promptFile, userContent string) (string, error) {
	path := filepath.Join(g.promptPath, promptFile)
	prompt, err := os.ReadFile(path)
	if err != nil || len(strings.TrimSpace(string(prompt))) == 0 {
		return "", apperrors.NewTemplateMissing(path)
	}

	messages := []llm.Message{
		{Role: "system", Content: strings.TrimSpace(string(prompt))},
		{Role: "user", Content: userContent},
	}

	text, err := g.chat.Chat(ctx, messages, adviceMaxTokens, adviceTemperature)
	if err != nil {
		return "", apperrors.NewExternalServiceError("advice generator", err)
	}
	if strings.TrimSpace(text) == "" {
		return "", apperrors.NewExternalServiceError("advice generator",
			fmt.Errorf("empty generation for %s", promptFile))
	}
	return strings.TrimSpace(text), nil
}
