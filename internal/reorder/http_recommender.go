package reorder

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// HTTPRecommender talks to the external recommendation engine over HTTP.
type HTTPRecommender struct {
	baseURL string
	client  *http.Client
}

func NewHTTPRecommender(baseURL string, client *http.Client) *HTTPRecommender {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPRecommender{
		baseURL: baseURL,
		client:  client,
	}
}

func (r *HTTPRecommender) Recommend(ctx context.Context, userID string) ([]Suggestion, error) {
	url := fmt.Sprintf("%s/recommendations/%s", r.baseURL, userID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build recommender request: %w", err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("recommender request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("recommender returned status %d", resp.StatusCode)
	}

	var payload struct {
		Recommendations []Suggestion `json:"recommendations"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode recommendations: %w", err)
	}

	return payload.Recommendations, nil
}
