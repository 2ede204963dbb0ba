package generation

import (
	"PixGen-Backend/domain"
	"PixGen-Backend/internal/utils"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// The remote backend is a synchronous RPC: one request, one batch of
// base64 image payloads. Anything but a 2xx within the timeout is a
// failure.
const backendTimeout = 120 * time.Second

type (
	BackendClient interface {
		Generate(ctx context.Context, req domain.GenerateRequest) ([]string, error)
	}

	backendRequest struct {
		Prompt         string  `json:"prompt"`
		NegativePrompt string  `json:"negative_prompt"`
		GuidanceScale  float64 `json:"guidance_scale"`
		Aspect         string  `json:"aspect"`
	}

	backendResponse struct {
		Images []string `json:"images"`
	}

	backendClient struct {
		baseURL    string
		httpClient *http.Client
	}
)

func NewBackendClient() BackendClient {
	return &backendClient{
		baseURL: utils.GetConfig("GENERATION_API_URL"),
		httpClient: &http.Client{
			Timeout: backendTimeout,
		},
	}
}

func (c *backendClient) Generate(ctx context.Context, req domain.GenerateRequest) ([]string, error) {
	body, err := json.Marshal(backendRequest{
		Prompt:         req.Prompt,
		NegativePrompt: "blury",
		GuidanceScale:  7.5,
		Aspect:         req.Aspect,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrGenerationBackend, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrGenerationBackend, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrGenerationBackend, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: unexpected status %d", domain.ErrGenerationBackend, resp.StatusCode)
	}

	var payload backendResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrGenerationBackend, err)
	}

	return payload.Images, nil
}
