package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/tfiz/storefront-go/internal/catalog"
)

// Canned replies used when no model is reachable.
const (
	FallbackDisconnected = "Disconnected. Check API Key."
	FallbackError        = "Error connecting to TFiZ AI."
)

// Message is one prior turn of the chat, role "user" or "model".
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Reply is the structured answer the model is constrained to produce.
type Reply struct {
	Text         string   `json:"responseText"`
	SuggestedIDs []string `json:"suggestedProductIds"`
}

// Assistant answers shopper questions grounded in the current catalog.
type Assistant interface {
	Chat(ctx context.Context, history []Message, input string) (Reply, error)
}

// CatalogSource provides the items the assistant may recommend.
type CatalogSource interface {
	List() []catalog.Item
}

// Gemini is the GenAI-backed assistant.
type Gemini struct {
	client *genai.Client
	model  string
	items  CatalogSource
}

// NewGemini creates a Gemini assistant client.
func NewGemini(ctx context.Context, apiKey, model string, items CatalogSource) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("assistant API key is required")
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &Gemini{
		client: client,
		model:  model,
		items:  items,
	}, nil
}

// Chat sends the conversation to the model and decodes its JSON reply.
func (g *Gemini) Chat(ctx context.Context, history []Message, input string) (Reply, error) {
	contents := make([]*genai.Content, 0, len(history)+1)
	for _, m := range history {
		role := genai.Role(genai.RoleUser)
		if m.Role == "model" {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(m.Content, role))
	}
	contents = append(contents, genai.NewContentFromText(input, genai.RoleUser))

	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemInstruction(g.items.List()), genai.RoleUser),
		ResponseMIMEType:  "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"responseText":        {Type: genai.TypeString},
				"suggestedProductIds": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
			},
			Required: []string{"responseText", "suggestedProductIds"},
		},
	}

	result, err := g.client.Models.GenerateContent(ctx, g.model, contents, cfg)
	if err != nil {
		return Reply{}, fmt.Errorf("generate content: %w", err)
	}

	var reply Reply
	if err := json.Unmarshal([]byte(result.Text()), &reply); err != nil {
		return Reply{}, fmt.Errorf("decode assistant reply: %w", err)
	}

	return reply, nil
}

func systemInstruction(items []catalog.Item) string {
	summaries := make([]string, 0, len(items))
	for _, it := range items {
		summaries = append(summaries, fmt.Sprintf("%s: %s ($%d)", it.ID, it.Name, it.Price))
	}
	return fmt.Sprintf(
		"You are 'TFiZ', a GenZ lifestyle and fashion assistant. Use catalog: %s. "+
			"Respond in JSON with responseText and suggestedProductIds.",
		strings.Join(summaries, ", "))
}

// Disabled is the assistant used when no API key is configured. Every chat
// answers with the disconnected message.
type Disabled struct{}

func (Disabled) Chat(context.Context, []Message, string) (Reply, error) {
	return Reply{Text: FallbackDisconnected, SuggestedIDs: []string{}}, nil
}
