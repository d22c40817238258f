package gen

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"stageai/api/internal/config"
)

// diffusionBackend talks to a stable-diffusion webui style server. The
// warmup request in newDiffusionBackend forces the remote model to load,
// which is the expensive part of the cold start.
type diffusionBackend struct {
	endpoint   string
	httpClient *http.Client
	width      int
	height     int
	steps      int
}

func newDiffusionBackend(cfg config.ImageConfig) (*diffusionBackend, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("diffusion endpoint not configured")
	}

	b := &diffusionBackend{
		endpoint:   strings.TrimSuffix(cfg.Endpoint, "/"),
		httpClient: &http.Client{Timeout: cfg.Timeout},
		width:      cfg.Width,
		height:     cfg.Height,
		steps:      cfg.Steps,
	}

	req, err := http.NewRequest(http.MethodGet, b.endpoint+"/sdapi/v1/options", nil)
	if err != nil {
		return nil, fmt.Errorf("warmup request: %w", err)
	}
	resp, err := b.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("warmup: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("warmup: status %d", resp.StatusCode)
	}

	return b, nil
}

type txt2imgRequest struct {
	Prompt string `json:"prompt"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Steps  int    `json:"steps"`
}

type txt2imgResponse struct {
	Images []string `json:"images"`
}

func (b *diffusionBackend) Render(ctx context.Context, prompt string) ([]byte, error) {
	payload, err := json.Marshal(txt2imgRequest{
		Prompt: prompt,
		Width:  b.width,
		Height: b.height,
		Steps:  b.steps,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.endpoint+"/sdapi/v1/txt2img", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("txt2img: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("txt2img: status %d", resp.StatusCode)
	}

	var parsed txt2imgResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}
	if len(parsed.Images) == 0 {
		return nil, fmt.Errorf("no images in response")
	}

	data, err := base64.StdEncoding.DecodeString(parsed.Images[0])
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return data, nil
}
