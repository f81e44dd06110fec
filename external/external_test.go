package external

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubChat serves a canned chat completion and points LLMBaseURL at it
// for the duration of the test.
func stubChat(t *testing.T, content string) {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": content}},
			},
		})
	}))
	t.Cleanup(server.Close)

	old := LLMBaseURL
	LLMBaseURL = server.URL
	t.Cleanup(func() { LLMBaseURL = old })
}

func stubChatDown(t *testing.T) {
	t.Helper()
	old := LLMBaseURL
	LLMBaseURL = "http://127.0.0.1:1"
	t.Cleanup(func() { LLMBaseURL = old })
}

func TestExtractConditions(t *testing.T) {
	stubChat(t, `["lung cancer", "copd"]`)
	assert.Equal(t, []string{"lung cancer", "copd"}, ExtractConditions("I have lung cancer and COPD"))
}

func TestExtractConditionsUnparseableFallsBack(t *testing.T) {
	stubChat(t, "Sorry, I cannot help with that.")
	assert.Equal(t, []string{"raw text"}, ExtractConditions("raw text"))
}

func TestExtractConditionsProviderDownFallsBack(t *testing.T) {
	stubChatDown(t)
	assert.Equal(t, []string{"raw text"}, ExtractConditions("raw text"))
}

func TestSummarizeFallback(t *testing.T) {
	stubChatDown(t)
	assert.Equal(t, "Summary not available", Summarize("long medical text"))
}

func TestFavoritesSummaryFallback(t *testing.T) {
	stubChatDown(t)
	assert.Equal(t, "Unable to generate summary at this time.", FavoritesSummary("saved items"))
}

func TestSmartSearchIntent(t *testing.T) {
	stubChat(t, `{"condition": "melanoma", "treatment": "immunotherapy", "search_type": "trial", "optimized_query": "melanoma immunotherapy"}`)

	intent := SmartSearch("immunotherapy trials for melanoma", "patient")
	assert.Equal(t, "trial", intent.SearchType)
	assert.Equal(t, "melanoma", intent.Condition)
	assert.Equal(t, "melanoma immunotherapy", intent.OptimizedQuery)
}

func TestSmartSearchFallback(t *testing.T) {
	stubChatDown(t)

	intent := SmartSearch("melanoma", "patient")
	assert.Equal(t, "general", intent.SearchType)
	assert.Equal(t, "melanoma", intent.Condition)
	assert.Equal(t, "melanoma", intent.OptimizedQuery)
}

func TestRelevanceScore(t *testing.T) {
	cases := []struct {
		name     string
		response string
		want     float64
	}{
		{"plain number", "0.85", 0.85},
		{"clamped high", "1.7", 1},
		{"clamped low", "-0.3", 0},
		{"unparseable", "very relevant", 0.5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stubChat(t, tc.response)
			assert.InDelta(t, tc.want, RelevanceScore("melanoma", "trial", "context"), 0.0001)
		})
	}
}

func TestRelevanceScoreProviderDown(t *testing.T) {
	stubChatDown(t)
	assert.InDelta(t, 0.5, RelevanceScore("melanoma", "trial", "context"), 0.0001)
}

func TestSearchPubMedMapsSummaries(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "esearch") {
			assert.Equal(t, "pubmed", r.URL.Query().Get("db"))
			assert.Equal(t, "melanoma", r.URL.Query().Get("term"))
			json.NewEncoder(w).Encode(map[string]interface{}{
				"esearchresult": map[string]interface{}{"idlist": []string{"11111", "22222"}},
			})
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"result": map[string]interface{}{
				"11111": map[string]interface{}{
					"title": "Checkpoint Inhibitors In Advanced Melanoma A Ten Year Follow Up Study Extended",
					"authors": []map[string]string{
						{"name": "A"}, {"name": "B"}, {"name": "C"},
						{"name": "D"}, {"name": "E"}, {"name": "F"}, {"name": "G"},
					},
					"pubdate": "2024 Jan",
				},
				"22222": map[string]interface{}{
					"title":   "Short title",
					"pubdate": "2023 Dec",
				},
			},
		})
	}))
	t.Cleanup(server.Close)

	old := PubMedBaseURL
	PubMedBaseURL = server.URL
	t.Cleanup(func() { PubMedBaseURL = old })

	publications := SearchPubMed("melanoma", 5)
	require.Len(t, publications, 2)

	first := publications[0]
	assert.Equal(t, "PMID11111", first.PubmedID)
	assert.Equal(t, "https://pubmed.ncbi.nlm.nih.gov/11111/", first.URL)
	// Authors cap at five, keywords at ten title words
	assert.Len(t, []string(first.Authors), 5)
	assert.Len(t, []string(first.Keywords), 10)

	assert.Equal(t, "PMID22222", publications[1].PubmedID)
}

func TestSearchPubMedFailureReturnsEmpty(t *testing.T) {
	old := PubMedBaseURL
	PubMedBaseURL = "http://127.0.0.1:1"
	t.Cleanup(func() { PubMedBaseURL = old })

	publications := SearchPubMed("melanoma", 5)
	assert.NotNil(t, publications)
	assert.Empty(t, publications)
}

func TestSearchClinicalTrialsMapsStudies(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "melanoma", r.URL.Query().Get("query.cond"))
		assert.Equal(t, "Boston", r.URL.Query().Get("query.locn"))
		json.NewEncoder(w).Encode(map[string]interface{}{
			"studies": []map[string]interface{}{
				{
					"protocolSection": map[string]interface{}{
						"identificationModule": map[string]interface{}{
							"nctId":         "NCT11111111",
							"briefTitle":    "Brief",
							"officialTitle": "Official title wins",
						},
						"statusModule":      map[string]interface{}{"overallStatus": "RECRUITING"},
						"descriptionModule": map[string]interface{}{"briefSummary": "Summary"},
						"designModule":      map[string]interface{}{"phases": []string{"PHASE2", "PHASE3"}},
						"conditionsModule":  map[string]interface{}{"conditions": []string{"Melanoma"}},
						"contactsModule": map[string]interface{}{
							"centralContacts": []map[string]string{{"email": "pi@site.org"}},
						},
						"locationsModule": map[string]interface{}{
							"locations": []map[string]string{{"city": "Boston", "country": "United States"}},
						},
					},
				},
				{
					"protocolSection": map[string]interface{}{
						"identificationModule": map[string]interface{}{
							"nctId":      "NCT22222222",
							"briefTitle": "Brief only",
						},
					},
				},
			},
		})
	}))
	t.Cleanup(server.Close)

	old := ClinicalTrialsBaseURL
	ClinicalTrialsBaseURL = server.URL
	t.Cleanup(func() { ClinicalTrialsBaseURL = old })

	trials := SearchClinicalTrials("melanoma", "Boston", 5)
	require.Len(t, trials, 2)

	first := trials[0]
	assert.Equal(t, "NCT11111111", first.NCTID)
	assert.Equal(t, "Official title wins", first.Title)
	assert.Equal(t, "PHASE2", first.Phase)
	assert.Equal(t, "Boston, United States", first.Location)
	assert.Equal(t, "pi@site.org", first.Contact)

	second := trials[1]
	assert.Equal(t, "Brief only", second.Title)
	assert.Equal(t, "N/A", second.Phase)
	assert.Equal(t, "Not specified", second.Location)
	assert.Empty(t, second.Contact)
}

func TestSearchClinicalTrialsFailureReturnsEmpty(t *testing.T) {
	old := ClinicalTrialsBaseURL
	ClinicalTrialsBaseURL = "http://127.0.0.1:1"
	t.Cleanup(func() { ClinicalTrialsBaseURL = old })

	trials := SearchClinicalTrials("melanoma", "", 5)
	assert.NotNil(t, trials)
	assert.Empty(t, trials)
}
