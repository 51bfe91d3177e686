package messaging

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const defaultSendTimeout = 10 * time.Second

// HTTPGateway implements Gateway against a JSON chat API.
type HTTPGateway struct {
	baseURL    string
	token      string
	httpClient *http.Client
	log        *zap.Logger
}

// NewHTTPGateway constructs an HTTPGateway.
func NewHTTPGateway(baseURL, token string, log *zap.Logger) (*HTTPGateway, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, fmt.Errorf("CHAT_API_URL is required")
	}
	return &HTTPGateway{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: defaultSendTimeout},
		log:        log,
	}, nil
}

type sendRequest struct {
	To       string `json:"to"`
	Type     string `json:"type"`
	Text     string `json:"text,omitempty"`
	URL      string `json:"url,omitempty"`
	FileName string `json:"fileName,omitempty"`
	Caption  string `json:"caption,omitempty"`
}

type sendResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// SendText delivers a plain text message.
func (g *HTTPGateway) SendText(ctx context.Context, identity, text string) error {
	return g.send(ctx, sendRequest{To: identity, Type: "text", Text: text})
}

// SendDocument delivers a document by URL with an optional caption.
func (g *HTTPGateway) SendDocument(ctx context.Context, identity, url, caption string) error {
	return g.send(ctx, sendRequest{
		To:       identity,
		Type:     "document",
		URL:      url,
		FileName: "resume.pdf",
		Caption:  caption,
	})
}

func (g *HTTPGateway) send(ctx context.Context, payload sendRequest) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/messages", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if g.token != "" {
		req.Header.Set("Authorization", "Bearer "+g.token)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("chat api request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		g.log.Warn("chat api rejected message",
			zap.Int("status", resp.StatusCode),
			zap.String("type", payload.Type))
		return fmt.Errorf("chat api status %d", resp.StatusCode)
	}

	var parsed sendResponse
	if err := json.Unmarshal(raw, &parsed); err == nil && !parsed.Success && parsed.Error != "" {
		return fmt.Errorf("chat api error: %s", parsed.Error)
	}
	return nil
}

var _ Gateway = (*HTTPGateway)(nil)
