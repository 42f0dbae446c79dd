// internal/adapters/inference/client.go
package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"sentimentpulse/internal/adapters/observability"
	"sentimentpulse/internal/domain"
)

// Client calls a hosted text-classification endpoint that grades text
// on a 5-point scale ("1 star" .. "5 stars") with a confidence score.
// Any server speaking the candidates/score JSON shape below can back
// it; the grade-to-label mapping lives in the analysis package.
type Client struct {
	base string
	hc   *http.Client
	key  string
	rl   *rate.Limiter
}

var _ domain.SentimentModel = (*Client)(nil)

func New(base, key string, rps int) (*Client, error) {
	if base == "" {
		return nil, fmt.Errorf("inference base URL is required")
	}
	if rps <= 0 {
		rps = 5
	}
	return &Client{
		base: strings.TrimRight(base, "/"),
		hc:   &http.Client{Timeout: 20 * time.Second},
		key:  key,
		rl:   rate.NewLimiter(rate.Limit(rps), rps),
	}, nil
}

// Verify performs one throwaway prediction so a dead backend fails the
// process at startup instead of on the first user request.
func (c *Client) Verify(ctx context.Context) error {
	_, err := c.Predict(ctx, "ok")
	return err
}

type candidate struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Predict sends text and returns the backend's top-scoring graded
// prediction.
func (c *Client) Predict(ctx context.Context, text string) (domain.GradedPrediction, error) {
	var raw json.RawMessage
	start := time.Now()
	err := c.post(ctx, c.base, map[string]any{"inputs": text}, &raw)
	observability.ObserveExternal("inference", "predict", observability.LabelErr(err), time.Since(start))
	if err != nil {
		return domain.GradedPrediction{}, err
	}

	top, err := topCandidate(raw)
	if err != nil {
		return domain.GradedPrediction{}, err
	}
	return domain.GradedPrediction{Label: top.Label, Score: top.Score}, nil
}

// topCandidate accepts both [{"label","score"},...] and the nested
// [[...]] form some serving stacks emit for single inputs.
func topCandidate(raw json.RawMessage) (candidate, error) {
	var flat []candidate
	if err := json.Unmarshal(raw, &flat); err != nil || len(flat) == 0 {
		var nested [][]candidate
		if err := json.Unmarshal(raw, &nested); err != nil || len(nested) == 0 || len(nested[0]) == 0 {
			return candidate{}, fmt.Errorf("inference: undecodable prediction payload")
		}
		flat = nested[0]
	}
	sort.SliceStable(flat, func(i, j int) bool { return flat[i].Score > flat[j].Score })
	return flat[0], nil
}

// ---- Internals ----

var (
	ErrUnauthorized = errors.New("inference: unauthorized")
	ErrUnavailable  = errors.New("inference: unavailable")
)

// post performs a POST with client-side rate limiting, retries, and
// JSON decode into out. Retries on 429 and transient 5xx, honoring
// Retry-After when provided.
func (c *Client) post(ctx context.Context, url string, body any, out any) error {
	if err := c.rl.Wait(ctx); err != nil {
		return err
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	var lastErr error
	for i := 0; i < 4; i++ {
		// fresh request each attempt
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
		if err != nil {
			return err
		}
		if c.key != "" {
			req.Header.Set("Authorization", "Bearer "+c.key)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", "sentimentpulse/1.0")

		resp, err := c.hc.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			lastErr = err
			if i < 3 && sleepCtx(ctx, backoff(i)) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return lastErr
		}

		switch resp.StatusCode {
		case http.StatusOK, http.StatusCreated:
			err := json.NewDecoder(resp.Body).Decode(out)
			resp.Body.Close()
			return err

		case http.StatusUnauthorized, http.StatusForbidden:
			resp.Body.Close()
			return ErrUnauthorized

		case http.StatusTooManyRequests, http.StatusInternalServerError,
			http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			// Prefer server-provided Retry-After; otherwise exponential backoff.
			wait := retryAfter(resp)
			resp.Body.Close()
			if wait == 0 {
				wait = backoff(i)
			}
			lastErr = fmt.Errorf("%w: remote %d", ErrUnavailable, resp.StatusCode)
			if i < 3 && sleepCtx(ctx, wait) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return lastErr

		default:
			b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			resp.Body.Close()
			return fmt.Errorf("inference: bad status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
		}
	}

	return lastErr
}

func backoff(attempt int) time.Duration {
	return time.Duration(300*(attempt+1)) * time.Millisecond
}

// sleepCtx waits for d or returns early if ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// retryAfter parses Retry-After (seconds or HTTP-date). Returns 0 if
// absent/invalid.
func retryAfter(resp *http.Response) time.Duration {
	h := resp.Header.Get("Retry-After")
	if h == "" {
		return 0
	}
	if secs, err := strconv.Atoi(strings.TrimSpace(h)); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(h); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}
