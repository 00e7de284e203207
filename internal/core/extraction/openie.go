package extraction

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/agenthands/graphene/internal/core/model"
	"github.com/agenthands/graphene/internal/core/sentence"
)

// OpenIE5 wire format, as returned by GET /getExtraction. Everything the
// parser does not recognize is ignored; records missing any of the three
// arguments are discarded rather than failing the batch.
type openieArgument struct {
	Text string `json:"text"`
}

type openieExtraction struct {
	Arg1  openieArgument   `json:"arg1"`
	Rel   openieArgument   `json:"rel"`
	Arg2s []openieArgument `json:"arg2s"`
}

type openieRecord struct {
	Confidence float64          `json:"confidence"`
	Sentence   string           `json:"sentence"`
	Extraction openieExtraction `json:"extraction"`
}

// OpenIEClient calls an OpenIE 5 HTTP service sentence by sentence.
type OpenIEClient struct {
	BaseURL string
	HTTP    *http.Client
	Retries int
	Backoff time.Duration
}

func NewOpenIEClient(baseURL string, retries int, backoff time.Duration) *OpenIEClient {
	if retries <= 0 {
		retries = 1
	}
	return &OpenIEClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 30 * time.Second},
		Retries: retries,
		Backoff: backoff,
	}
}

// Extract splits text into sentences and extracts each one. A sentence
// that still fails after the retry budget fails the whole document.
func (c *OpenIEClient) Extract(ctx context.Context, text string) ([]model.Triple, error) {
	var triples []model.Triple

	for _, s := range sentence.Split(text) {
		records, err := c.extractSentence(ctx, s)
		if err != nil {
			return nil, fmt.Errorf("%w: sentence %q: %v", ErrService, s, err)
		}
		triples = append(triples, parseRecords(records)...)
	}

	return triples, nil
}

// extractSentence posts one sentence, retrying transient failures with a
// fixed pause between attempts. Context cancellation cuts the loop short.
func (c *OpenIEClient) extractSentence(ctx context.Context, s string) ([]openieRecord, error) {
	var lastErr error

	for attempt := 0; attempt < c.Retries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if attempt > 0 && c.Backoff > 0 {
			select {
			case <-time.After(c.Backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		records, err := c.getExtraction(ctx, s)
		if err == nil {
			return records, nil
		}
		lastErr = err
	}

	return nil, lastErr
}

func (c *OpenIEClient) getExtraction(ctx context.Context, s string) ([]openieRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/getExtraction", strings.NewReader(s))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var records []openieRecord
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("unparsable response: %v", err)
	}
	return records, nil
}

// parseRecords converts service records to canonical triples: one triple
// per object argument, fields normalized, confidence clamped into [0,1].
func parseRecords(records []openieRecord) []model.Triple {
	var triples []model.Triple

	for _, r := range records {
		subject := model.Normalize(r.Extraction.Arg1.Text)
		relation := model.Normalize(r.Extraction.Rel.Text)
		confidence := model.ClampConfidence(r.Confidence)

		for _, arg2 := range r.Extraction.Arg2s {
			t := model.Triple{
				Subject:    subject,
				Relation:   relation,
				Object:     model.Normalize(arg2.Text),
				Confidence: confidence,
			}
			if !t.Complete() {
				continue
			}
			triples = append(triples, t)
		}
	}

	return triples
}
