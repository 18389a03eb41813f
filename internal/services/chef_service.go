package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/example/freshmarket/internal/models"
)

const (
	// ChefEmptyAnswer is returned when the model answers with no text.
	ChefEmptyAnswer = "I'm having trouble thinking of a recipe right now. Try again!"
	// ChefUnavailable is returned when the assistant cannot be reached.
	ChefUnavailable = "Oops! My kitchen is a bit busy right now. Please try again later."

	emptyCartContext = "The cart is currently empty."
	chefTemperature  = 0.7
)

const chefInstruction = `You are "Chef Fresh", a friendly, knowledgeable and creative assistant for an online grocery store called "FreshMarket".

Your role:
1. Suggest recipes based on the items currently in the user's cart.
2. Answer questions about ingredients, dietary restrictions and cooking tips.
3. Be concise and helpful, and use emojis to keep the conversation fun.
4. When asked for a recipe, give a short ingredient list (bold the ones already in the cart) and brief instructions.

Current user cart:
%s`

// ChefService talks to an OpenAI-compatible chat completions endpoint to
// give cooking advice about the shopper's cart. It never touches the store.
type ChefService struct {
	url    string
	apiKey string
	model  string
	client *http.Client
}

// NewChefService creates a ChefService. An empty url disables the assistant.
func NewChefService(url, apiKey, model string) *ChefService {
	return &ChefService{
		url:    url,
		apiKey: apiKey,
		model:  model,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// CartContext describes the cart as "<qty> <unit> of <name>" entries.
func CartContext(items []models.CartItem) string {
	if len(items) == 0 {
		return emptyCartContext
	}
	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, fmt.Sprintf("%d %s of %s", item.Quantity, item.Unit, item.Name))
	}
	return strings.Join(parts, ", ")
}

// SystemInstruction is the assistant persona with the cart embedded.
func SystemInstruction(items []models.CartItem) string {
	return fmt.Sprintf(chefInstruction, CartContext(items))
}

// ChefPrompt joins earlier turns with the new user message.
func ChefPrompt(prompt string, history []string) string {
	return strings.Join(history, "\n") + "\nUser: " + prompt
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Advise answers prompt in the context of the cart. Failures are logged
// and answered with an apology rather than returned.
func (s *ChefService) Advise(ctx context.Context, prompt string, cart []models.CartItem, history []string) string {
	if s == nil || s.url == "" {
		log.Println("[Chef] Assistant URL not configured")
		return ChefUnavailable
	}

	answer, err := s.complete(ctx, chatRequest{
		Model: s.model,
		Messages: []chatMessage{
			{Role: "system", Content: SystemInstruction(cart)},
			{Role: "user", Content: ChefPrompt(prompt, history)},
		},
		Temperature: chefTemperature,
	})
	if err != nil {
		log.Printf("[Chef] Request failed: %v", err)
		return ChefUnavailable
	}
	if strings.TrimSpace(answer) == "" {
		return ChefEmptyAnswer
	}
	return answer
}

func (s *ChefService) complete(ctx context.Context, payload chatRequest) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("chef request build: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("chef request: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("chef request failed: status %d, body: %s", resp.StatusCode, string(raw))
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("chef unmarshal: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", nil
	}
	return parsed.Choices[0].Message.Content, nil
}
