package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/jogoforca/hangman-backend/internal/entity"
)

const (
	minGeneratedWordLength = 5
	maxGeneratedWordLength = 10
	maxHintLength          = 100

	fallbackHint = "Try to guess!"
)

var ErrEmptyResponse = errors.New("model returned an empty response")

// fallbackWords - used whenever every model fails or returns garbage, so a
// round always gets a valid word.
var fallbackWords = []string{
	"PYTHON", "CODIGO", "PROGRAMA", "COMPUTADOR", "SISTEMA",
	"TECLADO", "MONITOR", "SERVIDOR", "INTERNET", "LINGUAGEM",
}

// OllamaWords - word/hint generator backed by a local Ollama instance. Each
// configured model is tried in order; any failure, timeout or invalid output
// falls through to the next model and finally to the static fallbacks. It
// never returns an error to the engine.
type OllamaWords struct {
	logger *slog.Logger
	client *http.Client
	rnd    entity.Rand

	baseURL     string
	models      []string
	wordTimeout time.Duration
	hintTimeout time.Duration
}

func NewOllamaWords(logger *slog.Logger, rnd entity.Rand, baseURL string, models []string, wordTimeout, hintTimeout time.Duration) *OllamaWords {
	return &OllamaWords{
		logger:      logger.With("component", "ollama-words"),
		client:      &http.Client{},
		rnd:         rnd,
		baseURL:     baseURL,
		models:      models,
		wordTimeout: wordTimeout,
		hintTimeout: hintTimeout,
	}
}

type generateRequest struct {
	Model   string         `json:"model"`
	Prompt  string         `json:"prompt"`
	Stream  bool           `json:"stream"`
	Options map[string]any `json:"options"`
}

type generateResponse struct {
	Response string `json:"response"`
}

// GenerateWord - a 5-10 letter word from the first model that produces one,
// or a fallback word.
func (that *OllamaWords) GenerateWord(ctx context.Context) string {
	for _, model := range that.models {
		word, err := that.tryGenerateWord(ctx, model)
		if err != nil {
			that.logger.Warn("model failed to generate word", "model", model, "error", err)
			continue
		}

		if isValidGeneratedWord(word) {
			return word
		}
	}

	return fallbackWords[that.rnd.Intn(len(fallbackWords))]
}

// GenerateHint - a short hint for the word, or a generic fallback phrase.
func (that *OllamaWords) GenerateHint(ctx context.Context, word string) string {
	for _, model := range that.models {
		hint, err := that.tryGenerateHint(ctx, model, word)
		if err != nil {
			that.logger.Warn("model failed to generate hint", "model", model, "error", err)
			continue
		}

		if hint != "" {
			return hint
		}
	}

	return fallbackHint
}

func (that *OllamaWords) tryGenerateWord(ctx context.Context, model string) (string, error) {
	response, err := that.generate(ctx, model, "A common noun with 5 to 10 letters. Answer with the word only:", 5, that.wordTimeout)
	if err != nil {
		return "", err
	}

	word := strings.ToUpper(strings.TrimSpace(response))

	// strip anything outside the game alphabet
	var cleaned strings.Builder
	for _, r := range word {
		if strings.ContainsRune(entity.Alphabet, r) {
			cleaned.WriteRune(r)
		}
	}

	return cleaned.String(), nil
}

func (that *OllamaWords) tryGenerateHint(ctx context.Context, model, word string) (string, error) {
	prompt := fmt.Sprintf("Give a short hint (at most 10 words) for the word '%s'. Answer with the hint only, without the word:", word)

	response, err := that.generate(ctx, model, prompt, 20, that.hintTimeout)
	if err != nil {
		return "", err
	}

	hint := strings.TrimSpace(response)
	if runes := []rune(hint); len(runes) > maxHintLength {
		hint = string(runes[:maxHintLength])
	}

	return hint, nil
}

func (that *OllamaWords) generate(ctx context.Context, model, prompt string, numPredict int, timeout time.Duration) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	body, err := json.Marshal(generateRequest{
		Model:  model,
		Prompt: prompt,
		Stream: false,
		Options: map[string]any{
			"temperature": 0.7,
			"num_predict": numPredict,
			"top_p":       0.9,
		},
	})
	if err != nil {
		return "", fmt.Errorf("could not marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, that.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("could not build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := that.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status: %s", resp.Status)
	}

	var generated generateResponse
	if err = json.NewDecoder(resp.Body).Decode(&generated); err != nil {
		return "", fmt.Errorf("could not decode response: %w", err)
	}

	if generated.Response == "" {
		return "", ErrEmptyResponse
	}

	return generated.Response, nil
}

func isValidGeneratedWord(word string) bool {
	length := len([]rune(word))

	return length >= minGeneratedWordLength && length <= maxGeneratedWordLength && entity.IsValidWord(word)
}
