// Package feedback produces narrative text for level outcomes and the start
// screen. Remote failures are never returned to callers; fixed fallback text
// is used instead.
package feedback

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"github.com/verte-zerg/dalgona/internal/model"
)

const (
	// DefaultModel is the Gemini model used when none is configured.
	DefaultModel = "gemini-2.5-flash"

	defaultPerMinute = 10
	defaultBurst     = 3
	maxOutputTokens  = 200
)

// Provider produces player-facing text.
type Provider interface {
	OutcomeMessage(ctx context.Context, outcome model.Outcome, level int, snapshot []byte) string
	IntroMessage(ctx context.Context) string
}

// Static answers every request with the fallback text for its language.
type Static struct {
	Lang Lang
}

// OutcomeMessage implements Provider.
func (s Static) OutcomeMessage(_ context.Context, outcome model.Outcome, _ int, _ []byte) string {
	return outcomeFallback(s.Lang, outcome)
}

// IntroMessage implements Provider.
func (s Static) IntroMessage(context.Context) string {
	return book(s.Lang).introFallback
}

// GeminiConfig configures a Gemini provider.
type GeminiConfig struct {
	APIKey    string
	Model     string
	Lang      Lang
	PerMinute int
	// BaseURL overrides the API endpoint; empty uses the default.
	BaseURL    string
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// Gemini generates text with the Gemini API.
type Gemini struct {
	client   *genai.Client
	model    string
	lang     Lang
	limiter  *rate.Limiter
	fallback Static
	log      *zap.Logger
}

// NewGemini creates a Gemini-backed provider.
func NewGemini(ctx context.Context, cfg GeminiConfig) (*Gemini, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini API key is required")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.PerMinute <= 0 {
		cfg.PerMinute = defaultPerMinute
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      cfg.APIKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPClient:  cfg.HTTPClient,
		HTTPOptions: genai.HTTPOptions{BaseURL: cfg.BaseURL},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &Gemini{
		client:   client,
		model:    cfg.Model,
		lang:     cfg.Lang,
		limiter:  rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.PerMinute)), defaultBurst),
		fallback: Static{Lang: cfg.Lang},
		log:      log.Named("feedback"),
	}, nil
}

// OutcomeMessage implements Provider. The snapshot, when present, is sent as
// a PNG image part.
func (g *Gemini) OutcomeMessage(ctx context.Context, outcome model.Outcome, level int, snapshot []byte) string {
	parts := []*genai.Part{genai.NewPartFromText(outcomePrompt(g.lang, outcome, level))}
	if len(snapshot) > 0 {
		parts = append(parts, genai.NewPartFromBytes(snapshot, "image/png"))
	}
	text, err := g.generate(ctx, parts, 1.0, maxOutputTokens)
	if err != nil {
		g.log.Warn("outcome message failed, using fallback",
			zap.String("outcome", string(outcome)),
			zap.Int("level", level),
			zap.Error(err))
		return g.fallback.OutcomeMessage(ctx, outcome, level, snapshot)
	}
	return text
}

// IntroMessage implements Provider.
func (g *Gemini) IntroMessage(ctx context.Context) string {
	text, err := g.generate(ctx, []*genai.Part{genai.NewPartFromText(book(g.lang).introPrompt)}, 0.8, 0)
	if err != nil {
		g.log.Warn("intro message failed, using fallback", zap.Error(err))
		return g.fallback.IntroMessage(ctx)
	}
	return text
}

// generate sends one request with thinking disabled so the whole output
// budget goes to the reply. A zero maxTokens leaves the length uncapped.
func (g *Gemini) generate(ctx context.Context, parts []*genai.Part, temperature float32, maxTokens int32) (string, error) {
	if !g.limiter.Allow() {
		return "", errors.New("rate limited")
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}
	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(temperature),
		MaxOutputTokens: maxTokens,
		ThinkingConfig:  &genai.ThinkingConfig{ThinkingBudget: genai.Ptr[int32](0)},
	})
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", errors.New("empty response")
	}
	return text, nil
}
