package grouping

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"google.golang.org/genai"
)

const (
	geminiModel     = "text-embedding-004"
	geminiBatchSize = 100 // batchEmbedContents request limit
)

// GeminiClient embeds task titles through the Gemini API.
type GeminiClient struct {
	apiKey  string
	model   string
	baseURL string
	http    *http.Client

	mu     sync.Mutex
	client *genai.Client
}

type GeminiOption func(*GeminiClient)

// WithBaseURL points the client at another API host.
func WithBaseURL(u string) GeminiOption {
	return func(c *GeminiClient) { c.baseURL = strings.TrimRight(u, "/") }
}

func WithModel(m string) GeminiOption {
	return func(c *GeminiClient) {
		if strings.TrimSpace(m) != "" {
			c.model = strings.TrimSpace(m)
		}
	}
}

func WithHTTPClient(h *http.Client) GeminiOption {
	return func(c *GeminiClient) { c.http = h }
}

func NewGeminiClient(apiKey string, opts ...GeminiOption) *GeminiClient {
	c := &GeminiClient{
		apiKey: strings.TrimSpace(apiKey),
		model:  geminiModel,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// genai builds the SDK client on first use.
func (c *GeminiClient) genai(ctx context.Context) (*genai.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.client != nil {
		return c.client, nil
	}
	cc := &genai.ClientConfig{
		APIKey:     c.apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: c.http,
	}
	if c.baseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: c.baseURL + "/"}
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	c.client = client
	return client, nil
}

// Embed returns one vector per text, batching as needed.
func (c *GeminiClient) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if c.apiKey == "" {
		return nil, ErrUnavailable
	}
	if len(texts) == 0 {
		return nil, nil
	}
	client, err := c.genai(ctx)
	if err != nil {
		return nil, err
	}

	out := make([][]float32, 0, len(texts))
	for i := 0; i < len(texts); i += geminiBatchSize {
		end := min(i+geminiBatchSize, len(texts))
		contents := make([]*genai.Content, 0, end-i)
		for _, t := range texts[i:end] {
			contents = append(contents, genai.NewContentFromText(t, genai.RoleUser))
		}
		resp, err := client.Models.EmbedContent(ctx, c.model, contents, nil)
		if err != nil {
			return nil, fmt.Errorf("embed batch %d-%d: %w", i, end, err)
		}
		if len(resp.Embeddings) != end-i {
			return nil, fmt.Errorf("embed batch %d-%d: expected %d embeddings, got %d", i, end, end-i, len(resp.Embeddings))
		}
		for _, e := range resp.Embeddings {
			out = append(out, e.Values)
		}
	}
	return out, nil
}
