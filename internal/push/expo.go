package push

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"rapidjobs_backend/internal/logger"
)

const (
	defaultExpoEndpoint = "https://exp.host/--/api/v2/push/send"
	expoChunkSize       = 100
	defaultTitle        = "Rapid Jobs"
)

// ExpoGateway talks to the Expo push HTTP API.
type ExpoGateway struct {
	endpoint string
	client   *http.Client
}

func NewExpoGateway(endpoint string) *ExpoGateway {
	if endpoint == "" {
		endpoint = defaultExpoEndpoint
	}
	return &ExpoGateway{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

type expoMessage struct {
	To    string                 `json:"to"`
	Sound string                 `json:"sound"`
	Title string                 `json:"title"`
	Body  string                 `json:"body"`
	Data  map[string]interface{} `json:"data,omitempty"`
}

func (g *ExpoGateway) Send(ctx context.Context, deviceTokens []string, title, message string, data map[string]interface{}) error {
	tokens := filterValidTokens(deviceTokens)
	if len(tokens) == 0 {
		logger.Warn("push: no valid device tokens, skipping")
		return nil
	}

	if title == "" {
		title = defaultTitle
	}

	payload := make([]expoMessage, 0, len(tokens))
	for _, token := range tokens {
		payload = append(payload, expoMessage{
			To:    token,
			Sound: "default",
			Title: title,
			Body:  message,
			Data:  data,
		})
	}

	for _, chunk := range chunkMessages(payload, expoChunkSize) {
		if err := g.sendChunk(ctx, chunk); err != nil {
			return err
		}
	}
	return nil
}

func (g *ExpoGateway) sendChunk(ctx context.Context, chunk []expoMessage) error {
	body, err := json.Marshal(chunk)
	if err != nil {
		return fmt.Errorf("push: marshal chunk: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("push: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("push: send chunk: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("push: gateway returned status %d", resp.StatusCode)
	}
	return nil
}

// IsExpoPushToken reports whether token has the shape the gateway accepts.
func IsExpoPushToken(token string) bool {
	return (strings.HasPrefix(token, "ExponentPushToken[") ||
		strings.HasPrefix(token, "ExpoPushToken[")) &&
		strings.HasSuffix(token, "]")
}

func filterValidTokens(tokens []string) []string {
	var valid []string
	for _, t := range tokens {
		if IsExpoPushToken(t) {
			valid = append(valid, t)
		}
	}
	return valid
}

func chunkMessages(messages []expoMessage, size int) [][]expoMessage {
	var chunks [][]expoMessage
	for size < len(messages) {
		messages, chunks = messages[size:], append(chunks, messages[0:size:size])
	}
	return append(chunks, messages)
}
