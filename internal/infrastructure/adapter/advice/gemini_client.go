package advice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	errs "github.com/amirhossein-jamali/league-wallet/internal/domain/error"
	core "github.com/amirhossein-jamali/league-wallet/internal/domain/port/core"
)

// Defaults of the generateContent endpoint
const (
	DefaultEndpoint = "https://generativelanguage.googleapis.com/v1beta"
	DefaultModel    = "gemini-2.5-flash"

	systemInstruction = "You are a professional Bangladeshi Free Fire gamer and coach. You talk in 'Banglish' - " +
		"a mix of Bangla and English commonly used by the youth in Bangladesh."
	temperature = 0.8

	maxErrorBody = 512
)

// Config addresses one model of the generative language API
type Config struct {
	Endpoint string
	Model    string
	APIKey   string
}

// GeminiClient implements core.TextGenerator over the generateContent REST call
type GeminiClient struct {
	config     Config
	httpClient *http.Client
	logger     core.Logger
}

// NewGeminiClient creates a client; a nil httpClient uses http.DefaultClient.
// Callers set deadlines through ctx.
func NewGeminiClient(config Config, httpClient *http.Client, logger core.Logger) *GeminiClient {
	if config.Endpoint == "" {
		config.Endpoint = DefaultEndpoint
	}
	if config.Model == "" {
		config.Model = DefaultModel
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &GeminiClient{
		config:     config,
		httpClient: httpClient,
		logger:     logger,
	}
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generateRequest struct {
	SystemInstruction content   `json:"systemInstruction"`
	Contents          []content `json:"contents"`
	GenerationConfig  struct {
		Temperature float64 `json:"temperature"`
	} `json:"generationConfig"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// Generate sends prompt and returns the text of the first candidate
func (c *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	body := generateRequest{
		SystemInstruction: content{Parts: []part{{Text: systemInstruction}}},
		Contents:          []content{{Role: "user", Parts: []part{{Text: prompt}}}},
	}
	body.GenerationConfig.Temperature = temperature

	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("encode advice request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", strings.TrimRight(c.config.Endpoint, "/"), c.config.Model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build advice request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.config.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", errs.ErrAdviceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		c.logger.Debug("Advice service returned an error status", map[string]any{
			"status": resp.StatusCode,
			"body":   string(snippet),
		})
		return "", fmt.Errorf("%w: status %d", errs.ErrAdviceUnavailable, resp.StatusCode)
	}

	var decoded generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("%w: decode reply: %v", errs.ErrAdviceUnavailable, err)
	}
	if len(decoded.Candidates) == 0 {
		return "", nil
	}

	var text strings.Builder
	for _, p := range decoded.Candidates[0].Content.Parts {
		text.WriteString(p.Text)
	}
	return text.String(), nil
}

var _ core.TextGenerator = (*GeminiClient)(nil)
