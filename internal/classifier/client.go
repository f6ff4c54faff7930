// Package classifier calls the external VAK text-classification
// microservice.
package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/AndreToral/MVP-PROJECT/internal/logger"
)

const defaultTimeout = 30 * time.Second

type Client struct {
	url        string
	httpClient *http.Client
	log        *logger.Logger
}

func New(url string, log *logger.Logger) *Client {
	return &Client{
		url:        url,
		httpClient: &http.Client{Timeout: defaultTimeout},
		log:        log,
	}
}

type classifyRequest struct {
	Text string `json:"text"`
}

type classifyResponse struct {
	Estilo        string `json:"estilo"`
	TextoRecibido string `json:"texto_recibido"`
	Error         string `json:"error"`
}

// Classify sends English text to the microservice and returns the VAK
// label. The label may be empty when the model yields no prediction;
// callers decide the fallback.
func (c *Client) Classify(ctx context.Context, text string) (string, error) {
	body, err := json.Marshal(classifyRequest{Text: text})
	if err != nil {
		return "", fmt.Errorf("marshal classify request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build classify request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("call classifier service: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read classifier response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.log.Error("classifier service returned an error",
			"status", resp.StatusCode, "body", string(raw))
		return "", fmt.Errorf("classifier service returned status %d", resp.StatusCode)
	}

	var parsed classifyResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("decode classifier response: %w", err)
	}

	return parsed.Estilo, nil
}
