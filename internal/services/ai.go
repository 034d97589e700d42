package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/time/rate"

	"github.com/desertthunder/mvx/internal/media"
	"github.com/desertthunder/mvx/internal/models"
	"github.com/desertthunder/mvx/internal/shared"
)

const providerTimeout = 120 * time.Second

// AIClient talks to external AI video generation providers over HTTP.
//
// Providers with a token URL authenticate via the OAuth2 client
// credentials flow, with the stored API key in "client_id:client_secret"
// form. Providers without one send the API key as a bearer token.
type AIClient struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *log.Logger
}

// NewAIClient creates an AIClient with a download rate limiter.
func NewAIClient(httpClient *http.Client, logger *log.Logger) *AIClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: providerTimeout}
	}
	return &AIClient{
		httpClient: httpClient,
		limiter:    rate.NewLimiter(rate.Limit(2), 4),
		logger:     logger,
	}
}

// GenerateResult captures the provider exchange for persistence on the job.
type GenerateResult struct {
	VideoURL       string
	RequestPayload string
	ResponseRaw    string
}

// GenerateRequest names the inputs sent to the provider endpoint.
type GenerateRequest struct {
	Prompt         string
	AudioPath      string
	BackgroundPath string
}

// Generate sends a generation request to the provider and returns the
// URL of the produced video.
//
// The request and raw response bodies are returned even on failure so
// callers can persist them on the job for debugging.
func (c *AIClient) Generate(ctx context.Context, provider *models.Provider, req GenerateRequest) (*GenerateResult, error) {
	if !provider.IsActive() {
		return nil, fmt.Errorf("%w: %s", shared.ErrProviderInactive, provider.Name())
	}

	payload := map[string]any{
		"prompt":     req.Prompt,
		"audio_path": req.AudioPath,
	}
	if req.BackgroundPath != "" {
		payload["background_video_path"] = req.BackgroundPath
	}
	for key, value := range c.parseJSONMap(provider.ExtraPayload()) {
		payload[key] = value
	}

	body, err := shared.MarshalJSON(payload, true)
	if err != nil {
		return nil, fmt.Errorf("failed to encode provider payload: %w", err)
	}

	result := &GenerateResult{RequestPayload: string(body)}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, provider.Endpoint(), bytes.NewReader(body))
	if err != nil {
		return result, fmt.Errorf("failed to create provider request: %w", err)
	}

	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Content-Type", "application/json")
	if provider.TokenURL() == "" && provider.APIKey() != "" {
		httpReq.Header.Set("Authorization", "Bearer "+provider.APIKey())
	}
	for key, value := range c.parseJSONMap(provider.ExtraHeaders()) {
		httpReq.Header.Set(key, fmt.Sprintf("%v", value))
	}

	if c.logger != nil {
		c.logger.Info("sending AI video request", "provider", provider.Name(), "url", provider.Endpoint())
	}

	resp, err := c.clientFor(ctx, provider).Do(httpReq)
	if err != nil {
		return result, fmt.Errorf("%w: %v", shared.ErrProviderRequest, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return result, fmt.Errorf("failed to read provider response: %w", err)
	}
	result.ResponseRaw = string(raw)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return result, fmt.Errorf("%w: status %d", shared.ErrProviderRequest, resp.StatusCode)
	}

	var parsed map[string]any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return result, fmt.Errorf("failed to parse provider response: %w", err)
	}

	videoURL, _ := parsed["video_url"].(string)
	if videoURL == "" {
		return result, fmt.Errorf("%w: response missing video_url field", shared.ErrProviderRequest)
	}

	result.VideoURL = videoURL
	return result, nil
}

// Download fetches the provider's output video into the media store
// and returns the stored root-relative path and its size.
func (c *AIClient) Download(ctx context.Context, videoURL string, store *media.Store, filename string) (string, int64, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", 0, fmt.Errorf("download limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, videoURL, nil)
	if err != nil {
		return "", 0, fmt.Errorf("failed to create download request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", 0, fmt.Errorf("%w: %v", shared.ErrProviderRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", 0, fmt.Errorf("%w: download status %d", shared.ErrProviderRequest, resp.StatusCode)
	}

	rel, err := store.Save(media.DirAIVideos, filename, resp.Body)
	if err != nil {
		return "", 0, err
	}

	size, err := store.Stat(rel)
	if err != nil {
		return "", 0, err
	}

	return rel, size, nil
}

// clientFor returns the HTTP client for a provider, wiring the client
// credentials flow when a token URL is configured.
func (c *AIClient) clientFor(ctx context.Context, provider *models.Provider) *http.Client {
	if provider.TokenURL() == "" {
		return c.httpClient
	}

	clientID, clientSecret, _ := strings.Cut(provider.APIKey(), ":")
	cfg := clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     provider.TokenURL(),
	}

	return cfg.Client(ctx)
}

// parseJSONMap decodes a stored JSON object, treating blank or invalid
// values as empty.
func (c *AIClient) parseJSONMap(raw string) map[string]any {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	var parsed map[string]any
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		if c.logger != nil {
			c.logger.Warn("failed to parse provider JSON field", "error", err)
		}
		return nil
	}

	return parsed
}
