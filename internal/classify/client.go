package classify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Config for the OpenAI-compatible client.
type Config struct {
	APIKey      string // if empty, falls back to env OPENAI_API_KEY
	BaseURL     string // default https://api.openai.com/v1
	Model       string
	Temperature float32
	Timeout     time.Duration
}

type Client struct {
	cfg  Config
	http *http.Client
	log  *slog.Logger
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
		log:  logger,
	}
}

// Classify implements Classifier using text-only chat/completions.
func (c *Client) Classify(ctx context.Context, req Request) (Result, []byte, error) {
	rid := uuid.New().String()
	start := time.Now()

	c.log.Info("classify.request.start",
		"req_id", rid,
		"model", c.cfg.Model,
		"document_id", req.DocumentID,
		"indicator_id", req.IndicatorID,
		"text_len", len(req.Justification),
	)

	schema := BuildResultJSONSchema(SuggestedCategories)
	body := map[string]any{
		"model":           c.cfg.Model,
		"temperature":     c.cfg.Temperature,
		"response_format": map[string]any{"type": "json_object"},
		"messages": []map[string]any{
			{"role": "system", "content": systemPrompt},
			{"role": "user", "content": buildUserPrompt(req)},
			{"role": "system", "content": "JSON Schema:\n" + mustJSON(schema)},
		},
	}

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/chat/completions"
	headers := map[string]string{"Authorization": "Bearer " + c.cfg.APIKey}
	raw, _, err := SendJSON(ctx, c.http, endpoint, body, headers, c.log)
	if err != nil {
		c.log.Error("classify.request.http_error",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return Result{}, raw, err
	}

	var cc struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(raw, &cc); err != nil {
		return Result{}, raw, fmt.Errorf("decode chat response: %w", err)
	}
	if len(cc.Choices) == 0 {
		return Result{}, raw, fmt.Errorf("no choices in chat response")
	}

	content := extractJSONObject(cc.Choices[0].Message.Content)
	if content == "" {
		return Result{}, raw, fmt.Errorf("no JSON object in model output")
	}
	rawContent := []byte(content)

	if err := ValidateAgainstSchema(schema, rawContent); err != nil {
		c.log.Error("classify.request.schema_validation_failed",
			"req_id", rid, "error", err, "content", content,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return Result{}, rawContent, err
	}

	var result Result
	if err := json.Unmarshal(rawContent, &result); err != nil {
		return Result{}, rawContent, fmt.Errorf("decode result: %w", err)
	}

	c.log.Info("classify.request.ok",
		"req_id", rid,
		"category", result.Category,
		"tags", len(result.Tags),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return result, rawContent, nil
}

// extractJSONObject returns the first balanced {...} region of s, tolerating
// models that wrap the object in prose or code fences.
func extractJSONObject(s string) string {
	startIdx := strings.IndexByte(s, '{')
	if startIdx < 0 {
		return ""
	}
	depth := 0
	inString := false
	escaped := false
	for i := startIdx; i < len(s); i++ {
		ch := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[startIdx : i+1]
			}
		}
	}
	return ""
}

func mustJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return string(b)
}
