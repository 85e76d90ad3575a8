package predictor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/transitline/journeyd/internal/core/domain"
)

// HTTPModel calls out to an external delay-scoring service over HTTP,
// batched. It stands in for the learned model the original source fed
// through a Spark pipeline (explicitly out of scope here: the core depends
// only on the DelayPredictor capability, never on a specific model).
type HTTPModel struct {
	BaseURL string
	Client  *http.Client
}

type predictRequest struct {
	Stops []string `json:"stops"`
	Times []int    `json:"times"`
}

type predictResponse struct {
	Delays []float64 `json:"delays"`
}

// NewHTTPModel builds an HTTPModel with a bounded default client.
func NewHTTPModel(baseURL string) *HTTPModel {
	return &HTTPModel{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: 2 * time.Second},
	}
}

// Predict implements ports.DelayPredictor.
func (m *HTTPModel) Predict(ctx context.Context, stops []domain.StopID, times []domain.SecondsSinceMidnight) ([]float64, error) {
	req := predictRequest{
		Stops: make([]string, len(stops)),
		Times: times,
	}
	for i, s := range stops {
		req.Stops[i] = string(s)
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal predict request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, m.BaseURL+"/predict", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build predict request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := m.Client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("predict request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("predict request: unexpected status %d", resp.StatusCode)
	}

	var out predictResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode predict response: %w", err)
	}
	if len(out.Delays) != len(stops) {
		return nil, fmt.Errorf("predict response: got %d delays for %d stops", len(out.Delays), len(stops))
	}

	return out.Delays, nil
}
