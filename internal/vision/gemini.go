package vision

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"trustbridge/internal/platform/config"
	dErrors "trustbridge/pkg/domain-errors"
)

// GeminiClient implements Judge against the Gemini generateContent REST API.
type GeminiClient struct {
	apiKey  string
	model   string
	baseURL string
	http    *http.Client
}

// NewGeminiClient builds a Gemini-backed Judge from configuration.
func NewGeminiClient(cfg config.GeminiConfig) *GeminiClient {
	return &GeminiClient{
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: cfg.Timeout},
	}
}

// Request/response shapes for the generateContent endpoint. Only the fields
// this service reads are modeled.
type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inline_data,omitempty"`
}

type geminiInlineData struct {
	MIMEType string `json:"mime_type"`
	Data     string `json:"data"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	Temperature      float64 `json:"temperature"`
	ResponseMIMEType string  `json:"response_mime_type,omitempty"`
}

type geminiRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

func (c *GeminiClient) ExtractIdentity(ctx context.Context, doc Document) (string, error) {
	parts := []geminiPart{
		{Text: identityPrompt},
		{InlineData: &geminiInlineData{MIMEType: doc.MIMEType, Data: base64.StdEncoding.EncodeToString(doc.Bytes)}},
	}
	return c.generate(ctx, parts, "")
}

func (c *GeminiClient) ExtractFinancials(ctx context.Context, doc Document) (string, error) {
	parts := []geminiPart{
		{Text: financialExtractPrompt},
		{InlineData: &geminiInlineData{MIMEType: doc.MIMEType, Data: base64.StdEncoding.EncodeToString(doc.Bytes)}},
	}
	return c.generate(ctx, parts, "")
}

func (c *GeminiClient) ScoreFinancials(ctx context.Context, combined string) (string, error) {
	parts := []geminiPart{
		{Text: fmt.Sprintf(financialScorePrompt, combined)},
	}
	return c.generate(ctx, parts, "")
}

func (c *GeminiClient) CompareFaces(ctx context.Context, live, doc Document) (FaceJudgment, error) {
	parts := []geminiPart{
		{Text: facePrompt},
		{InlineData: &geminiInlineData{MIMEType: live.MIMEType, Data: base64.StdEncoding.EncodeToString(live.Bytes)}},
		{InlineData: &geminiInlineData{MIMEType: doc.MIMEType, Data: base64.StdEncoding.EncodeToString(doc.Bytes)}},
	}

	raw, err := c.generate(ctx, parts, "application/json")
	if err != nil {
		return FaceJudgment{}, err
	}
	return ParseFaceJudgment(raw)
}

// ParseFaceJudgment decodes the model's JSON verdict. The confidence may
// arrive as a float; it is truncated to an integer percentage.
func ParseFaceJudgment(raw string) (FaceJudgment, error) {
	var parsed struct {
		Match      bool    `json:"match"`
		Confidence float64 `json:"confidence"`
		Reason     string  `json:"reason"`
	}
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &parsed); err != nil {
		return FaceJudgment{}, dErrors.Wrap(err, dErrors.CodeUpstreamParse, "face comparison response is not valid JSON")
	}
	return FaceJudgment{
		Match:      parsed.Match,
		Confidence: int(parsed.Confidence),
		Reason:     parsed.Reason,
	}, nil
}

func (c *GeminiClient) generate(ctx context.Context, parts []geminiPart, responseMIMEType string) (string, error) {
	reqBody := geminiRequest{
		Contents: []geminiContent{{Parts: parts}},
		GenerationConfig: geminiGenerationConfig{
			Temperature:      0,
			ResponseMIMEType: responseMIMEType,
		},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal gemini request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build gemini request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeUnavailable, "document AI request failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeUnavailable, "document AI response read failed")
	}
	if resp.StatusCode != http.StatusOK {
		return "", dErrors.Newf(dErrors.CodeUnavailable, "document AI returned status %d", resp.StatusCode)
	}

	var decoded geminiResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeUpstreamParse, "document AI response is not valid JSON")
	}
	if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
		return "", dErrors.New(dErrors.CodeUpstreamParse, "document AI returned no candidates")
	}

	var sb strings.Builder
	for _, part := range decoded.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}
	return strings.TrimSpace(sb.String()), nil
}
