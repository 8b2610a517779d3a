package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/vothaan/chongi/internal/config"
	"github.com/vothaan/chongi/internal/models"
)

const geminiModel = "gemini-2.5-flash"

var geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta/models"

// Fixed user-facing copy. The suggestion path never shows a failure state, so
// these are the only three messages the client ever substitutes itself.
const (
	ReasonNoData   = "Bạn chưa có dữ liệu nào trong danh mục này để gợi ý!"
	ReasonDefault  = "Dựa trên sở thích của bạn, mình thấy cái này là ổn nhất nè!"
	ReasonFallback = "Hệ thống AI đang bận tí, mình chọn đại cái này cho bạn nhé!"
)

// Service ranks a user's items against their current context by delegating to
// Gemini. It is a total function over its inputs: any failure of the external
// call degrades to a uniform random pick, never to an error.
type Service struct {
	apiKey string
	client *http.Client
	logger *zap.SugaredLogger
}

func NewService(cfg *config.Config, logger *zap.SugaredLogger) *Service {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Service{
		apiKey: cfg.AI.GeminiAPIKey,
		client: &http.Client{Timeout: 30 * time.Second},
		logger: logger,
	}
}

// promptItem is the minimized view of an item sent to the ranking service.
// Note and image URL are deliberately never included in the payload.
type promptItem struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Mood    []string `json:"mood"`
	Budget  string   `json:"budget"`
	Weather []string `json:"weather"`
}

type rankResult struct {
	ItemID string `json:"itemId"`
	Reason string `json:"reason"`
}

// Suggest picks the best-fitting item for the given context.
//
//   - Empty input returns the no-data sentinel without any external call.
//   - A usable model answer is resolved against the input by exact id; an
//     unknown id falls back to the first item with the model's reason intact.
//   - Any failure of the call itself falls back to a uniform random pick with
//     a fixed reason.
//
// It never returns an error; callers need no failure branch.
func (s *Service) Suggest(ctx context.Context, items []models.Item, params models.SuggestionParams) models.SuggestionResult {
	if len(items) == 0 {
		return models.SuggestionResult{Item: nil, Reason: ReasonNoData}
	}

	result, err := s.rank(ctx, items, params)
	if err != nil {
		s.logger.Warnw("AI ranking failed, falling back to random pick", "error", err)
		return models.SuggestionResult{
			Item:   &items[rand.Intn(len(items))],
			Reason: ReasonFallback,
		}
	}

	chosen := &items[0]
	for i := range items {
		if items[i].ID.String() == result.ItemID {
			chosen = &items[i]
			break
		}
	}

	reason := strings.TrimSpace(result.Reason)
	if reason == "" {
		reason = ReasonDefault
	}

	return models.SuggestionResult{Item: chosen, Reason: reason}
}

// rank performs the single request/response exchange with Gemini. No retries,
// no streaming.
func (s *Service) rank(ctx context.Context, items []models.Item, params models.SuggestionParams) (*rankResult, error) {
	if strings.TrimSpace(s.apiKey) == "" {
		return nil, fmt.Errorf("gemini API key not configured")
	}

	minimized := make([]promptItem, 0, len(items))
	for _, item := range items {
		minimized = append(minimized, promptItem{
			ID:      item.ID.String(),
			Name:    item.Name,
			Mood:    item.Moods,
			Budget:  item.Budget,
			Weather: item.Weathers,
		})
	}
	itemsJSON, err := json.Marshal(minimized)
	if err != nil {
		return nil, fmt.Errorf("marshaling items: %w", err)
	}

	prompt := fmt.Sprintf(`Dựa trên danh sách các lựa chọn sau đây:
%s

Và bối cảnh người dùng:
- Tâm trạng: %s
- Ngân sách: %s
- Thời tiết: %s

Hãy chọn ra một lựa chọn (item) phù hợp nhất. Nếu không có cái nào hoàn toàn khớp, hãy chọn cái gần nhất hoặc ngẫu nhiên một cái hợp lý.
Trả về định dạng JSON gồm "itemId" và "reason" (lý do gợi ý bằng tiếng Việt, ngắn gọn, dễ thương).`,
		itemsJSON, params.Mood, params.Budget, params.Weather)

	reqBody := geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: prompt}}},
		},
		GenerationConfig: geminiGenerationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema: &geminiSchema{
				Type: "object",
				Properties: map[string]*geminiSchema{
					"itemId": {Type: "string", Description: "ID của item được chọn"},
					"reason": {Type: "string", Description: "Lý do gợi ý"},
				},
				Required: []string{"itemId", "reason"},
			},
			Temperature: 1.0,
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	url := fmt.Sprintf("%s/%s:generateContent", geminiBaseURL, geminiModel)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling gemini: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gemini returned status %d", resp.StatusCode)
	}

	var geminiResp geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&geminiResp); err != nil {
		return nil, fmt.Errorf("decoding gemini response: %w", err)
	}

	if len(geminiResp.Candidates) == 0 || len(geminiResp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("gemini returned no content")
	}

	text := stripMarkdownCodeBlock(geminiResp.Candidates[0].Content.Parts[0].Text)

	var result rankResult
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		return nil, fmt.Errorf("parsing ranking result: %w", err)
	}

	return &result, nil
}

// Gemini API request/response structs.

type geminiRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
	Role  string       `json:"role,omitempty"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenerationConfig struct {
	ResponseMimeType string        `json:"responseMimeType"`
	ResponseSchema   *geminiSchema `json:"responseSchema,omitempty"`
	Temperature      float64       `json:"temperature"`
}

type geminiSchema struct {
	Type        string                   `json:"type"`
	Description string                   `json:"description,omitempty"`
	Properties  map[string]*geminiSchema `json:"properties,omitempty"`
	Required    []string                 `json:"required,omitempty"`
}

type geminiResponse struct {
	Candidates []geminiCandidate `json:"candidates"`
}

type geminiCandidate struct {
	Content      geminiContent `json:"content"`
	FinishReason string        `json:"finishReason"`
}

// stripMarkdownCodeBlock removes leading/trailing ```json fences that models
// sometimes wrap around structured output.
func stripMarkdownCodeBlock(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimSpace(strings.TrimPrefix(s, "```json"))
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimSpace(strings.TrimPrefix(s, "```"))
	}
	if strings.HasSuffix(s, "```") {
		s = strings.TrimSpace(strings.TrimSuffix(s, "```"))
	}
	return s
}
