package assist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/anatolykoptev/go_recruiter/internal/engine"
)

// parseRemote sends the uploaded document to the configured document-parser
// service and returns the extracted plain text. The service speaks a simple
// multipart-in, JSON-out protocol: {"text": "..."}.
func parseRemote(ctx context.Context, filename string, data []byte) (string, error) {
	engine.IncrParserAPIRequests()

	if engine.Cfg.ParseTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, engine.Cfg.ParseTimeout)
		defer cancel()
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("parser api: build request: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return "", fmt.Errorf("parser api: build request: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("parser api: build request: %w", err)
	}

	resp, err := engine.RetryHTTP(ctx, engine.DefaultRetryConfig, func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, engine.Cfg.ParserAPIURL, bytes.NewReader(body.Bytes()))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", mw.FormDataContentType())
		if engine.Cfg.ParserAPIKey != "" {
			req.Header.Set("Authorization", "Bearer "+engine.Cfg.ParserAPIKey)
		}
		return engine.Cfg.HTTPClient.Do(req)
	})
	if err != nil {
		return "", fmt.Errorf("parser api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("parser api: unexpected status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return "", fmt.Errorf("parser api: read response: %w", err)
	}

	var out struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("parser api: decode response: %w", err)
	}
	if out.Text == "" {
		return "", fmt.Errorf("parser api: empty text in response")
	}
	return engine.NormalizeWhitespace(out.Text), nil
}
