package extract

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"snapagenda-backend/cmd/snapagenda/model"
	"time"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	defaultModel   = "gemini-3-flash-preview"
)

// extractionPrompt is the fixed instruction sent with every image.
const extractionPrompt = "You are an expert event coordinator. Extract event information from this image. " +
	"Return a JSON object with: title, date (in YYYY-MM-DD format if possible), " +
	"time (in HH:mm 24-hour format if possible), location, and a brief description. " +
	"If you can't find a specific piece of information, provide your best guess based on context or leave it as an empty string."

// Client is the boundary around the image-understanding service. One call
// per upload, no retries; every failure mode collapses to a nil result.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
	logger     *slog.Logger
}

func NewClient(baseURL, apiKey, modelName string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if modelName == "" {
		modelName = defaultModel
	}

	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		model:   modelName,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		logger: slog.With("module", "extract"),
	}
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	InlineData *inlineData `json:"inline_data,omitempty"`
	Text       string      `json:"text,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type generationConfig struct {
	ResponseMimeType string         `json:"response_mime_type"`
	ResponseSchema   responseSchema `json:"response_schema"`
}

type responseSchema struct {
	Type       string                    `json:"type"`
	Properties map[string]schemaProperty `json:"properties"`
	Required   []string                  `json:"required"`
}

type schemaProperty struct {
	Type string `json:"type"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// eventSchema requires all five content fields in the response; empty string
// values are allowed but every key must be present.
func eventSchema() responseSchema {
	fields := []string{"title", "date", "time", "location", "description"}

	props := make(map[string]schemaProperty, len(fields))
	for _, f := range fields {
		props[f] = schemaProperty{Type: "STRING"}
	}

	return responseSchema{
		Type:       "OBJECT",
		Properties: props,
		Required:   fields,
	}
}

// Extract submits the image with the fixed instruction and returns the
// service's structured guess, or nil when no extraction is possible. The
// underlying cause is logged, never propagated.
func (c *Client) Extract(ctx context.Context, image []byte, mimeType string) *model.ExtractionResult {
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	reqBody := generateRequest{
		Contents: []content{
			{
				Parts: []part{
					{
						InlineData: &inlineData{
							MimeType: mimeType,
							Data:     base64.StdEncoding.EncodeToString(image),
						},
					},
					{
						Text: extractionPrompt,
					},
				},
			},
		},
		GenerationConfig: generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   eventSchema(),
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		c.logger.Warn("failed to marshal extraction request", "error", err)
		return nil
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		c.logger.Warn("failed to create extraction request", "error", err)
		return nil
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	c.logger.Debug("sending extraction request",
		"model", c.model,
		"image_bytes", len(image),
		"mime_type", mimeType,
	)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("extraction request failed", "error", err)
		return nil
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.logger.Warn("extraction service returned error",
			"status", resp.StatusCode,
			"body", string(body),
		)
		return nil
	}

	var genResp generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		c.logger.Warn("failed to decode extraction response", "error", err)
		return nil
	}

	if len(genResp.Candidates) == 0 || len(genResp.Candidates[0].Content.Parts) == 0 {
		c.logger.Warn("extraction response contained no candidates")
		return nil
	}

	text := genResp.Candidates[0].Content.Parts[0].Text
	if text == "" {
		c.logger.Warn("extraction response contained no text")
		return nil
	}

	var res model.ExtractionResult
	if err := json.Unmarshal([]byte(text), &res); err != nil {
		c.logger.Warn("extraction response text is not valid JSON", "error", err)
		return nil
	}

	c.logger.Info("extraction successful",
		"model", c.model,
		"title", res.Title,
	)

	return &res
}
