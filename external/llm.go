package external

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/curalink/curalink-server/utils"
)

// LLMBaseURL points at an OpenAI-compatible chat completion endpoint.
// Tests substitute an httptest server.
var LLMBaseURL = "https://api.openai.com/v1"

var httpClient = &http.Client{}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// chatCompletion sends one prompt and returns the raw completion text.
func chatCompletion(system, prompt string) (string, error) {
	model := os.Getenv("LLM_MODEL")
	if model == "" {
		model = "gpt-5"
	}

	messages := []chatMessage{}
	if system != "" {
		messages = append(messages, chatMessage{Role: "system", Content: system})
	}
	messages = append(messages, chatMessage{Role: "user", Content: prompt})

	body, err := json.Marshal(chatRequest{Model: model, Messages: messages})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequest(http.MethodPost, LLMBaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+os.Getenv("LLM_API_KEY"))

	resp, err := httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("llm provider returned status %d", resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", err
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("llm provider returned no choices")
	}

	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}

// ExtractConditions asks the model for a JSON array of medical
// conditions found in the raw profile input. On any provider or parse
// failure the raw input is returned verbatim as the only condition.
func ExtractConditions(rawInput string) []string {
	response, err := chatCompletion(
		"You are a medical condition identifier. Extract medical conditions from user input and return as JSON array.",
		fmt.Sprintf("Extract medical conditions from: %s. Return ONLY a JSON array of conditions, nothing else.", rawInput),
	)
	if err != nil {
		utils.Log.Warnf("Condition extraction failed: %v", err)
		return []string{rawInput}
	}

	var conditions []string
	if err := json.Unmarshal([]byte(response), &conditions); err != nil || len(conditions) == 0 {
		return []string{rawInput}
	}
	return conditions
}

// Summarize produces a 2-3 sentence summary of the given text.
func Summarize(text string) string {
	response, err := chatCompletion(
		"You are a medical content summarizer. Provide clear, concise summaries.",
		fmt.Sprintf("Summarize this in 2-3 sentences: %s", text),
	)
	if err != nil {
		utils.Log.Warnf("Summarization failed: %v", err)
		return "Summary not available"
	}
	return response
}

// FavoritesSummary turns a patient's saved items into a short summary
// they can share with their doctor.
func FavoritesSummary(content string) string {
	prompt := fmt.Sprintf(`Create a concise medical summary (2-3 paragraphs) of these saved items that a patient can share with their doctor:

%s

Focus on: treatment approaches, key research areas, and potential next steps.`, content)

	response, err := chatCompletion("", prompt)
	if err != nil {
		utils.Log.Warnf("Favorites summary failed: %v", err)
		return "Unable to generate summary at this time."
	}
	return response
}

// SearchIntent is the model's reading of a free-text search query.
type SearchIntent struct {
	Condition      string `json:"condition"`
	Treatment      string `json:"treatment"`
	SearchType     string `json:"search_type"`
	OptimizedQuery string `json:"optimized_query"`
}

// SmartSearch extracts search intent from a query. Fallback echoes the
// query back as a "general" search.
func SmartSearch(query, userType string) SearchIntent {
	fallback := SearchIntent{
		Condition:      query,
		SearchType:     "general",
		OptimizedQuery: query,
	}

	prompt := fmt.Sprintf(`Analyze this search query from a %s:
"%s"

Extract and return JSON with:
- "condition": main medical condition (if any)
- "treatment": treatment type (if any)
- "search_type": "expert", "trial", "publication", or "general"
- "optimized_query": best search terms for databases

Return ONLY valid JSON.`, userType, query)

	response, err := chatCompletion("", prompt)
	if err != nil {
		utils.Log.Warnf("Smart search intent extraction failed: %v", err)
		return fallback
	}

	var intent SearchIntent
	if err := json.Unmarshal([]byte(response), &intent); err != nil || intent.SearchType == "" {
		return fallback
	}
	return intent
}

// RelevanceScore rates how relevant an item is to a query. The model's
// reply is parsed as a float and clamped to [0,1]; anything
// unparseable scores a neutral 0.5.
func RelevanceScore(query, itemType, context string) float64 {
	prompt := fmt.Sprintf(`Rate the relevance of this %s to the query: "%s"

%s

Return ONLY a number between 0 and 1 (e.g., 0.85 for 85%% match). No explanation.`, itemType, query, context)

	response, err := chatCompletion("", prompt)
	if err != nil {
		utils.Log.Warnf("Relevance scoring failed: %v", err)
		return 0.5
	}

	score, err := strconv.ParseFloat(strings.TrimSpace(response), 64)
	if err != nil {
		return 0.5
	}
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
