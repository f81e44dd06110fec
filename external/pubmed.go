package external

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/curalink/curalink-server/models"
	"github.com/curalink/curalink-server/utils"
)

// PubMedBaseURL points at the NCBI E-utilities root. Tests substitute
// an httptest server.
var PubMedBaseURL = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils"

type pubmedSearchResponse struct {
	ESearchResult struct {
		IDList []string `json:"idlist"`
	} `json:"esearchresult"`
}

type pubmedAuthor struct {
	Name string `json:"name"`
}

type pubmedSummary struct {
	Title    string         `json:"title"`
	Authors  []pubmedAuthor `json:"authors"`
	Abstract string         `json:"abstract"`
	PubDate  string         `json:"pubdate"`
}

// SearchPubMed searches PubMed and maps the results onto the local
// publication shape. Any failure yields an empty slice; callers cannot
// distinguish an upstream outage from no results.
func SearchPubMed(query string, maxResults int) []models.Publication {
	cacheKey := fmt.Sprintf("pubmed:%d:%s", maxResults, query)
	var cached []models.Publication
	if cacheGet(cacheKey, &cached) {
		return cached
	}

	ids, err := pubmedSearchIDs(query, maxResults)
	if err != nil {
		utils.Log.Warnf("PubMed API Error: %v", err)
		return []models.Publication{}
	}
	if len(ids) == 0 {
		return []models.Publication{}
	}

	publications, err := pubmedFetchSummaries(ids)
	if err != nil {
		utils.Log.Warnf("PubMed API Error: %v", err)
		return []models.Publication{}
	}

	cacheSet(cacheKey, publications)
	return publications
}

func pubmedSearchIDs(query string, maxResults int) ([]string, error) {
	params := url.Values{}
	params.Set("db", "pubmed")
	params.Set("term", query)
	params.Set("retmax", fmt.Sprint(maxResults))
	params.Set("retmode", "json")

	resp, err := httpClient.Get(PubMedBaseURL + "/esearch.fcgi?" + params.Encode())
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("esearch returned status %d", resp.StatusCode)
	}

	var parsed pubmedSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	return parsed.ESearchResult.IDList, nil
}

func pubmedFetchSummaries(ids []string) ([]models.Publication, error) {
	params := url.Values{}
	params.Set("db", "pubmed")
	params.Set("id", strings.Join(ids, ","))
	params.Set("retmode", "json")

	resp, err := httpClient.Get(PubMedBaseURL + "/esummary.fcgi?" + params.Encode())
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("esummary returned status %d", resp.StatusCode)
	}

	var parsed struct {
		Result map[string]json.RawMessage `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	publications := []models.Publication{}
	for _, pmid := range ids {
		raw, ok := parsed.Result[pmid]
		if !ok {
			continue
		}
		var summary pubmedSummary
		if err := json.Unmarshal(raw, &summary); err != nil {
			continue
		}

		authors := []string{}
		for i, author := range summary.Authors {
			if i == 5 {
				break
			}
			authors = append(authors, author.Name)
		}

		keywords := strings.Fields(strings.ToLower(summary.Title))
		if len(keywords) > 10 {
			keywords = keywords[:10]
		}

		publications = append(publications, models.Publication{
			PubmedID:      "PMID" + pmid,
			Title:         summary.Title,
			Authors:       authors,
			Abstract:      summary.Abstract,
			URL:           fmt.Sprintf("https://pubmed.ncbi.nlm.nih.gov/%s/", pmid),
			PublishedDate: summary.PubDate,
			Keywords:      keywords,
		})
	}

	return publications, nil
}
