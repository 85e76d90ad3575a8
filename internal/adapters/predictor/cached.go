package predictor

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/transitline/journeyd/internal/core/domain"
	"github.com/transitline/journeyd/internal/core/ports"
	"github.com/transitline/journeyd/internal/pkg/metrics"
)

// Cached wraps an inner ports.DelayPredictor with a read-through cache.
// Predictions are cached under a key derived from the (stop, time) batch in
// request order, with a short TTL since delay predictions are time-sensitive.
type Cached struct {
	Inner      ports.DelayPredictor
	Cache      ports.PredictorCache
	TTLSeconds int
}

// Predict implements ports.DelayPredictor.
func (c *Cached) Predict(ctx context.Context, stops []domain.StopID, times []domain.SecondsSinceMidnight) ([]float64, error) {
	if c.Cache == nil {
		return c.Inner.Predict(ctx, stops, times)
	}

	key := batchKey(stops, times)
	if raw, err := c.Cache.Get(ctx, key); err == nil && raw != nil {
		var delays []float64
		if err := json.Unmarshal(raw, &delays); err == nil && len(delays) == len(stops) {
			metrics.PredictorCacheHits.Inc()
			return delays, nil
		}
	}
	metrics.PredictorCacheMisses.Inc()

	delays, err := c.Inner.Predict(ctx, stops, times)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(delays); err == nil {
		ttl := c.TTLSeconds
		if ttl <= 0 {
			ttl = 30
		}
		if err := c.Cache.Set(ctx, key, raw, ttl); err != nil {
			slog.WarnContext(ctx, "predictor cache write failed", "error", err)
		}
	}

	return delays, nil
}

// batchKey derives a cache key from a (stop,time) batch in request order —
// repeated queries for the same journey produce the same leg order, so this
// is stable in practice without an extra sort.
func batchKey(stops []domain.StopID, times []domain.SecondsSinceMidnight) string {
	pairs := make([]string, len(stops))
	for i := range stops {
		pairs[i] = fmt.Sprintf("%s@%d", stops[i], times[i])
	}
	joined := strings.Join(pairs, ",")
	sum := sha256.Sum256([]byte(joined))
	return "predict:" + hex.EncodeToString(sum[:16])
}
