package summary

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"

	"github.com/quarterlog/quarterlog/internal/core/activity"
	"github.com/quarterlog/quarterlog/internal/util"
)

const defaultRequestTimeout = 120 * time.Second

// OllamaClient talks to an Ollama-compatible local model server. The server
// may be absent (unavailable), present without the model (downloadable), or
// ready (available); Download pulls the model with streamed progress.
type OllamaClient struct {
	host   string
	model  string
	style  Style
	client *http.Client
}

// NewOllamaClient creates a client for the given host (e.g.
// "http://127.0.0.1:11434") and model name
func NewOllamaClient(host, model string, style Style, timeout time.Duration) *OllamaClient {
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	return &OllamaClient{
		host:   strings.TrimRight(host, "/"),
		model:  model,
		style:  style,
		client: &http.Client{Timeout: timeout},
	}
}

type tagsResponse struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}

// CheckAvailability probes the server and the configured model
func (c *OllamaClient) CheckAvailability(ctx context.Context) Availability {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.host+"/api/tags", nil)
	if err != nil {
		return AvailabilityUnavailable
	}

	resp, err := c.client.Do(req)
	if err != nil {
		util.LogDebugf("Model server not reachable at %s: %v", c.host, err)
		return AvailabilityUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return AvailabilityUnavailable
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return AvailabilityUnavailable
	}

	var tags tagsResponse
	if err := sonic.Unmarshal(body, &tags); err != nil {
		return AvailabilityUnavailable
	}

	for _, m := range tags.Models {
		if m.Name == c.model || strings.SplitN(m.Name, ":", 2)[0] == c.model {
			return AvailabilityAvailable
		}
	}
	return AvailabilityDownloadable
}

type pullRequest struct {
	Name string `json:"name"`
}

type pullProgress struct {
	Status    string `json:"status"`
	Total     int64  `json:"total"`
	Completed int64  `json:"completed"`
	Error     string `json:"error"`
}

// Download pulls the model, reporting 0.0-1.0 progress as layers stream in
func (c *OllamaClient) Download(ctx context.Context, progress func(float64)) error {
	payload, err := sonic.Marshal(pullRequest{Name: c.model})
	if err != nil {
		return fmt.Errorf("encode pull request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.host+"/api/pull", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create pull request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	// Pulls can far exceed the generate timeout
	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("pull model: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("pull model: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var p pullProgress
		if err := sonic.Unmarshal(line, &p); err != nil {
			continue
		}
		if p.Error != "" {
			return fmt.Errorf("pull model: %s", p.Error)
		}
		if p.Total > 0 && progress != nil {
			progress(float64(p.Completed) / float64(p.Total))
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read pull stream: %w", err)
	}

	if progress != nil {
		progress(1.0)
	}
	return nil
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Response string `json:"response"`
	Error    string `json:"error"`
}

// Summarize generates the day summary. The capability is re-checked first;
// a server that degraded since the last check fails the request cleanly.
func (c *OllamaClient) Summarize(ctx context.Context, req Request) (activity.Summary, error) {
	if len(req.Lines) == 0 {
		return activity.Summary{}, fmt.Errorf("no activities to summarize")
	}

	if avail := c.CheckAvailability(ctx); avail != AvailabilityAvailable {
		return activity.Summary{}, fmt.Errorf("summarization capability is %s", avail)
	}

	prompt := BuildSummaryPrompt(req)
	if c.style == StylePlain {
		prompt = BuildPlainPrompt(req)
	}

	payload, err := sonic.Marshal(generateRequest{Model: c.model, Prompt: prompt})
	if err != nil {
		return activity.Summary{}, fmt.Errorf("encode generate request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.host+"/api/generate", bytes.NewReader(payload))
	if err != nil {
		return activity.Summary{}, fmt.Errorf("create generate request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return activity.Summary{}, fmt.Errorf("generate summary: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return activity.Summary{}, fmt.Errorf("read generate response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return activity.Summary{}, fmt.Errorf("generate summary: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var gen generateResponse
	if err := sonic.Unmarshal(body, &gen); err != nil {
		return activity.Summary{}, fmt.Errorf("parse generate response: %w", err)
	}
	if gen.Error != "" {
		return activity.Summary{}, fmt.Errorf("generate summary: %s", gen.Error)
	}
	if strings.TrimSpace(gen.Response) == "" {
		return activity.Summary{}, fmt.Errorf("empty summary response")
	}

	return activity.Summary{Text: strings.TrimSpace(gen.Response), IsAI: true}, nil
}
