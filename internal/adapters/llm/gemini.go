package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/trigenys/apex-forge/internal/config"
	"github.com/trigenys/apex-forge/internal/domain"
	"google.golang.org/genai"
)

// GeminiGateway implements domain.Generator on Gemini, through Vertex
// or the public API depending on configuration. Every call is bounded
// by the configured timeout so a slow generation cannot hold a
// refinement session open forever.
type GeminiGateway struct {
	client       *genai.Client
	defaultModel string
	timeout      time.Duration
}

// NewGeminiGateway builds the gateway. An API key selects the Gemini
// API backend; otherwise the client authenticates against Vertex with
// the configured project and location.
func NewGeminiGateway(ctx context.Context, cfg *config.Config) (*GeminiGateway, error) {
	cc := &genai.ClientConfig{}
	if cfg.GeminiAPIKey != "" {
		cc.APIKey = cfg.GeminiAPIKey
		cc.Backend = genai.BackendGeminiAPI
	} else {
		cc.Project = cfg.GCPProjectID
		cc.Location = cfg.GCPLocation
		cc.Backend = genai.BackendVertexAI
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}

	return &GeminiGateway{
		client:       client,
		defaultModel: cfg.FlashModel,
		timeout:      cfg.GenerateTimeout,
	}, nil
}

func (g *GeminiGateway) model(opts domain.GenerateOptions) string {
	if opts.Model != "" {
		return opts.Model
	}
	return g.defaultModel
}

func (g *GeminiGateway) baseConfig(opts domain.GenerateOptions) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{}
	if opts.Temperature > 0 {
		temp := opts.Temperature
		cfg.Temperature = &temp
	}
	if opts.ThinkingBudget > 0 {
		budget := opts.ThinkingBudget
		cfg.ThinkingConfig = &genai.ThinkingConfig{ThinkingBudget: &budget}
	}
	return cfg
}

// GenerateText implements domain.Generator in free-text mode.
func (g *GeminiGateway) GenerateText(ctx context.Context, instruction string, opts domain.GenerateOptions) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	contents := []*genai.Content{genai.NewContentFromText(instruction, genai.RoleUser)}

	res, err := g.client.Models.GenerateContent(ctx, g.model(opts), contents, g.baseConfig(opts))
	if err != nil {
		return "", fmt.Errorf("generate text: %w", err)
	}

	text := res.Text()
	if text == "" {
		return "", fmt.Errorf("generate text: empty response")
	}
	return text, nil
}

// GenerateJSON implements domain.Generator in schema-constrained mode.
// The raw payload is returned undecoded; validation stays with the
// caller.
func (g *GeminiGateway) GenerateJSON(ctx context.Context, instruction string, schema *domain.ResponseSchema, opts domain.GenerateOptions) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	cfg := g.baseConfig(opts)
	cfg.ResponseMIMEType = "application/json"
	cfg.ResponseSchema = toGenaiSchema(schema)

	contents := []*genai.Content{genai.NewContentFromText(instruction, genai.RoleUser)}

	res, err := g.client.Models.GenerateContent(ctx, g.model(opts), contents, cfg)
	if err != nil {
		return nil, fmt.Errorf("generate json: %w", err)
	}

	text := res.Text()
	if text == "" {
		return nil, fmt.Errorf("generate json: empty response")
	}
	return []byte(text), nil
}

// toGenaiSchema converts the provider-neutral schema to the genai form.
func toGenaiSchema(s *domain.ResponseSchema) *genai.Schema {
	if s == nil {
		return nil
	}

	out := &genai.Schema{
		Description: s.Description,
		Required:    s.Required,
	}

	switch s.Type {
	case domain.SchemaObject:
		out.Type = genai.TypeObject
	case domain.SchemaArray:
		out.Type = genai.TypeArray
	case domain.SchemaString:
		out.Type = genai.TypeString
	case domain.SchemaNumber:
		out.Type = genai.TypeNumber
	case domain.SchemaInteger:
		out.Type = genai.TypeInteger
	case domain.SchemaBoolean:
		out.Type = genai.TypeBoolean
	}

	if len(s.Properties) > 0 {
		out.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for name, prop := range s.Properties {
			out.Properties[name] = toGenaiSchema(prop)
		}
	}
	out.Items = toGenaiSchema(s.Items)

	return out
}
