package controllers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/curalink/curalink-server/db"
	"github.com/curalink/curalink-server/external"
	"github.com/curalink/curalink-server/models"
	"github.com/curalink/curalink-server/routes"
)

func setupAIApp(t *testing.T) *fiber.App {
	t.Setenv("JWT_SECRET", "test-secret")

	gdb, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(gdb))
	db.DB = gdb

	app := fiber.New()
	routes.SetupAuthRoutes(app)
	routes.SetupAIRoutes(app)
	return app
}

// stubLLMRouter answers intent extraction with the given intent JSON
// and every relevance prompt with the next score from scores.
func stubLLMRouter(t *testing.T, intent string, scores []string) {
	t.Helper()
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		content := intent
		if calls > 0 && calls-1 < len(scores) {
			content = scores[calls-1]
		}
		calls++
		json.NewEncoder(w).Encode(fiber.Map{
			"choices": []fiber.Map{
				{"message": fiber.Map{"role": "assistant", "content": content}},
			},
		})
	}))
	t.Cleanup(server.Close)

	old := external.LLMBaseURL
	external.LLMBaseURL = server.URL
	t.Cleanup(func() { external.LLMBaseURL = old })
}

func TestSummarizeEndpoint(t *testing.T) {
	app := setupAIApp(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(fiber.Map{
			"choices": []fiber.Map{
				{"message": fiber.Map{"role": "assistant", "content": "A short summary."}},
			},
		})
	}))
	t.Cleanup(server.Close)
	old := external.LLMBaseURL
	external.LLMBaseURL = server.URL
	t.Cleanup(func() { external.LLMBaseURL = old })

	token := register(t, app, "patient@x.com", "pw1", "patient")

	resp, body := doJSON(t, app, "POST", "/api/ai/summarize", token, fiber.Map{
		"text": "A very long trial description.",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "A short summary.", body["summary"])
}

func TestSmartSearchRanksByRelevance(t *testing.T) {
	app := setupAIApp(t)

	require.NoError(t, db.DB.Create(&models.HealthExpert{
		Name:      "Dr. Low",
		Specialty: datatypes.JSONSlice[string]{"dermatology"},
	}).Error)
	require.NoError(t, db.DB.Create(&models.HealthExpert{
		Name:      "Dr. High",
		Specialty: datatypes.JSONSlice[string]{"oncology"},
	}).Error)

	stubLLMRouter(t,
		`{"condition": "melanoma", "search_type": "expert", "optimized_query": "melanoma"}`,
		[]string{"0.2", "0.9"},
	)

	token := register(t, app, "patient@x.com", "pw1", "patient")

	resp, body := doJSON(t, app, "POST", "/api/ai/smart-search", token, fiber.Map{
		"query": "who treats melanoma",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	intent, _ := body["intent"].(map[string]interface{})
	require.NotNil(t, intent)
	assert.Equal(t, "expert", intent["search_type"])

	results, _ := body["results"].([]interface{})
	require.Len(t, results, 2)

	first, _ := results[0].(map[string]interface{})
	assert.Equal(t, "expert", first["type"])
	assert.InDelta(t, 0.9, first["score"].(float64), 0.0001)
	item, _ := first["item"].(map[string]interface{})
	assert.Equal(t, "Dr. High", item["name"])
}

func TestSmartSearchRequiresQuery(t *testing.T) {
	app := setupAIApp(t)

	token := register(t, app, "patient@x.com", "pw1", "patient")

	resp, _ := doJSON(t, app, "POST", "/api/ai/smart-search", token, fiber.Map{})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
