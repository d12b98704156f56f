package persona

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/lurelabs/lurebox/pkg/httputil"
)

// Provider identifies the backend LLM service for the remote generator.
type Provider string

const (
	ProviderOllama     Provider = "ollama"
	ProviderOpenRouter Provider = "openrouter"
	ProviderGroq       Provider = "groq"
)

// RemoteConfig configures the remote generator.
type RemoteConfig struct {
	Provider Provider
	APIKey   string // Optional for Ollama
	Model    string
	BaseURL  string // Optional override
	Timeout  time.Duration
}

// Remote generates replies through an OpenAI-compatible chat-completions
// endpoint. It wraps a Scripted generator and delegates to it on any
// failure (missing credentials, timeout, bad status, malformed payload):
// the conversation never sees a remote error.
type Remote struct {
	client   *http.Client
	provider Provider
	baseURL  string
	apiKey   string
	model    string
	fallback *Scripted
	logger   *zap.Logger
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// NewRemote creates a remote generator wrapping the given scripted fallback.
func NewRemote(cfg RemoteConfig, fallback *Scripted, logger *zap.Logger) *Remote {
	if cfg.Model == "" {
		if cfg.Provider == ProviderOllama {
			cfg.Model = "qwen2.5:7b"
		} else {
			cfg.Model = "meta-llama/llama-3.1-8b-instruct:free"
		}
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		switch cfg.Provider {
		case ProviderOllama:
			baseURL = "http://localhost:11434/v1"
		case ProviderGroq:
			baseURL = "https://api.groq.com/openai/v1"
		default:
			baseURL = "https://openrouter.ai/api/v1"
		}
	}

	client := httputil.MediumClient()
	if cfg.Timeout > 0 {
		client = httputil.ClientWithTimeout(cfg.Timeout)
	}

	return &Remote{
		client:   client,
		provider: cfg.Provider,
		baseURL:  baseURL,
		apiKey:   cfg.APIKey,
		model:    cfg.Model,
		fallback: fallback,
		logger:   logger,
	}
}

// Generate asks the remote model for a reply, falling back to the scripted
// generator on any failure. The returned error is always nil.
func (r *Remote) Generate(ctx context.Context, req Request) (string, error) {
	reply, err := r.generateRemote(ctx, req)
	if err != nil {
		r.logger.Warn("remote generator failed, using scripted reply",
			zap.Error(err),
			zap.Int("turn", req.TurnCount))
		return r.fallback.Generate(ctx, req)
	}
	return reply, nil
}

// Closing delegates to the scripted pool; closing lines gain nothing from
// the remote model.
func (r *Remote) Closing() string {
	return r.fallback.Closing()
}

func (r *Remote) generateRemote(ctx context.Context, req Request) (string, error) {
	if r.provider != ProviderOllama && r.apiKey == "" {
		return "", fmt.Errorf("API key not configured for %s", r.provider)
	}

	body, err := json.Marshal(chatRequest{
		Model: r.model,
		Messages: []chatMessage{
			{Role: "user", Content: buildPrompt(req)},
		},
		Temperature: 0.7,
		MaxTokens:   150,
	})
	if err != nil {
		return "", err
	}

	endpoint := strings.TrimRight(r.baseURL, "/") + "/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if r.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+r.apiKey)
	}

	resp, err := r.client.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer httputil.DrainAndClose(resp.Body)

	respBody, err := httputil.ReadResponseBody(resp.Body, httputil.MaxResponseSize)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API error %d: %s", resp.StatusCode, string(respBody))
	}

	var parsed chatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("unmarshal error: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("no choices returned")
	}

	reply := strings.TrimSpace(parsed.Choices[0].Message.Content)
	reply = strings.Trim(reply, `"`)
	if reply == "" {
		return "", fmt.Errorf("empty reply from model")
	}
	return reply, nil
}

// buildPrompt frames the decoy persona for the remote model, including the
// current stage's goals and the recent exchange.
func buildPrompt(req Request) string {
	stage := StageForTurn(req.TurnCount)

	var b strings.Builder
	b.WriteString("You are roleplaying as a potential scam victim in a decoy scenario. ")
	b.WriteString("Keep the other party engaged without ever revealing the scam was detected.\n\n")
	fmt.Fprintf(&b, "Current stage: %s\n", stageBrief(stage))
	if len(req.Indicators) > 0 {
		fmt.Fprintf(&b, "Detected tactics: %s\n", strings.Join(req.Indicators, ", "))
	}

	b.WriteString("\nConversation so far:\n")
	history := req.History
	if len(history) > 5 {
		history = history[len(history)-5:]
	}
	if len(history) == 0 {
		b.WriteString("(this is the first message)\n")
	}
	for _, turn := range history {
		label := "You"
		if turn.FromActor {
			label = "Scammer"
		}
		fmt.Fprintf(&b, "%s: %s\n", label, turn.Text)
	}

	fmt.Fprintf(&b, "\nScammer's latest message: %s\n\n", req.Text)
	b.WriteString("Reply in 1-2 sentences. Sound like a real person; small imperfections are fine. ")
	b.WriteString("Do not reveal you know this is a scam.")
	return b.String()
}

func stageBrief(s Stage) string {
	switch s {
	case StageInitial:
		return "initial contact - confused and questioning; ask who they are and why they're contacting you"
	case StageConcern:
		return "concern - worried but seeking clarification; ask for more details about the situation"
	case StageCompliance:
		return "compliance - willing to help but hitting technical difficulties; cooperate while introducing delays"
	default:
		return "information gathering - cautious; ask for employee IDs, office addresses or documentation"
	}
}

var _ Generator = (*Remote)(nil)
var _ Generator = (*Scripted)(nil)
