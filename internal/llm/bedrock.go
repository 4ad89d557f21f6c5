package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
)

const (
	defaultModelID   = "anthropic.claude-3-sonnet-20240229-v1:0"
	anthropicVersion = "bedrock-2023-05-31"

	// bounded generation, near-zero temperature for stable JSON output
	maxTokens   = 8000
	temperature = 0.1
)

type invokeRequest struct {
	AnthropicVersion string    `json:"anthropic_version"`
	MaxTokens        int       `json:"max_tokens"`
	Temperature      float64   `json:"temperature"`
	Messages         []message `json:"messages"`
}

type message struct {
	Role    string    `json:"role"`
	Content []Segment `json:"content"`
}

// BedrockClient implements Client on the AWS Bedrock runtime.
type BedrockClient struct {
	client  *bedrockruntime.Client
	modelID string
}

func NewBedrockClient(cfg aws.Config) *BedrockClient {
	modelID := os.Getenv("BEDROCK_MODEL_ID")
	if modelID == "" {
		modelID = defaultModelID
	}

	return &BedrockClient{
		client:  bedrockruntime.NewFromConfig(cfg),
		modelID: modelID,
	}
}

// Invoke sends a single-turn request and decodes the provider envelope.
func (b *BedrockClient) Invoke(ctx context.Context, prompt string) (*Response, error) {
	body, err := json.Marshal(invokeRequest{
		AnthropicVersion: anthropicVersion,
		MaxTokens:        maxTokens,
		Temperature:      temperature,
		Messages: []message{
			{
				Role:    "user",
				Content: []Segment{{Type: "text", Text: prompt}},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal bedrock request: %w", err)
	}

	out, err := b.client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(b.modelID),
		ContentType: aws.String("application/json"),
		Accept:      aws.String("application/json"),
		Body:        body,
	})
	if err != nil {
		return nil, fmt.Errorf("bedrock invoke: %w", err)
	}

	var resp Response
	if err := json.Unmarshal(out.Body, &resp); err != nil {
		return nil, fmt.Errorf("decode bedrock response: %w", err)
	}

	return &resp, nil
}
