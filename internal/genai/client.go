// Package genai calls the external job generation service.
package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// GenerateRequest describes the campaign context sent to the generator.
type GenerateRequest struct {
	CampaignName string   `json:"campaign_name"`
	GameSystem   string   `json:"game_system,omitempty"`
	Organization string   `json:"organization,omitempty"`
	MissionType  string   `json:"mission_type,omitempty"`
	Prompt       string   `json:"prompt,omitempty"`
	Tags         []string `json:"tags,omitempty"`
}

// GeneratedJob is the generator's output for a single job posting.
type GeneratedJob struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// JobGenerator produces job postings from campaign context.
type JobGenerator interface {
	Generate(ctx context.Context, req *GenerateRequest) (*GeneratedJob, error)
}

// Client talks to the generation service over HTTP.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

func (c *Client) Generate(ctx context.Context, req *GenerateRequest) (*GeneratedJob, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/generate", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("generator request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("generator returned status %d", resp.StatusCode)
	}

	var job GeneratedJob
	if err := json.NewDecoder(resp.Body).Decode(&job); err != nil {
		return nil, fmt.Errorf("generator response decode failed: %w", err)
	}
	if job.Title == "" || job.Body == "" {
		return nil, fmt.Errorf("generator returned an incomplete job")
	}

	return &job, nil
}
