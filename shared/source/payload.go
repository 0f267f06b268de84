// Package source locates the ytInitialData payload of a saved or served
// watch-history page.
package source

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/tidwall/gjson"

	"history-analyzer/shared/config"
	"history-analyzer/shared/logger"
)

const payloadMarker = "ytInitialData"

// ErrPayloadUnavailable is returned once the attempt budget is spent without
// finding a payload.
var ErrPayloadUnavailable = errors.New("payload unavailable")

var assignmentPattern = regexp.MustCompile(`(?:var\s+ytInitialData|window\[["']ytInitialData["']\])\s*=\s*`)

// Source polls a file path or http(s) URL until it yields a payload.
type Source struct {
	location    string
	maxAttempts int
	interval    time.Duration
	client      *http.Client
}

func NewSource(cfg *config.SourceConfig) *Source {
	return &Source{
		location:    cfg.Location,
		maxAttempts: cfg.MaxAttempts,
		interval:    cfg.PollInterval,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Load retries on a fixed interval until a payload is found, the attempt
// budget is exhausted or ctx is done.
func (s *Source) Load(ctx context.Context) ([]byte, error) {
	log := logger.WithComponent("source")

	attempts := s.maxAttempts
	if attempts < 1 {
		attempts = 1
	}

	for attempt := 1; attempt <= attempts; attempt++ {
		doc, err := s.fetch(ctx)
		if err != nil {
			log.Debugf("Attempt %d/%d: %v", attempt, attempts, err)
		} else if payload, ok := FindPayload(doc); ok {
			log.Infof("%s found in %s (attempt %d)", payloadMarker, s.location, attempt)
			return payload, nil
		} else {
			log.Debugf("Attempt %d/%d: %s not present yet", attempt, attempts, payloadMarker)
		}

		if attempt == attempts {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(s.interval):
		}
	}

	log.Errorf("Failed to find %s after %d attempts", payloadMarker, attempts)
	return nil, fmt.Errorf("%s after %d attempts: %w", s.location, attempts, ErrPayloadUnavailable)
}

func (s *Source) fetch(ctx context.Context) ([]byte, error) {
	if s.location == "" {
		return nil, errors.New("no source configured")
	}
	if !strings.HasPrefix(s.location, "http://") && !strings.HasPrefix(s.location, "https://") {
		return os.ReadFile(s.location)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.location, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("page returned status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// FindPayload returns the ytInitialData JSON from either a raw JSON document
// or an HTML page embedding it in a script tag.
func FindPayload(doc []byte) ([]byte, bool) {
	trimmed := bytes.TrimSpace(doc)
	if len(trimmed) > 0 && trimmed[0] == '{' && gjson.ValidBytes(trimmed) {
		return trimmed, true
	}

	page, err := goquery.NewDocumentFromReader(bytes.NewReader(doc))
	if err != nil {
		logger.WithComponent("source").Warnf("Error parsing page: %v", err)
		return nil, false
	}

	var payload []byte
	page.Find("script").EachWithBreak(func(_ int, script *goquery.Selection) bool {
		text := script.Text()
		if !strings.Contains(text, payloadMarker) {
			return true
		}
		if found, ok := payloadFromScript(text); ok {
			payload = found
			return false
		}
		return true
	})
	return payload, payload != nil
}

// payloadFromScript decodes the single JSON value assigned to ytInitialData.
func payloadFromScript(script string) ([]byte, bool) {
	loc := assignmentPattern.FindStringIndex(script)
	if loc == nil {
		return nil, false
	}

	// The decoder stops after one value, so the trailing ";" and any later
	// statements on the line are left unread.
	var raw json.RawMessage
	if err := json.NewDecoder(strings.NewReader(script[loc[1]:])).Decode(&raw); err != nil {
		logger.WithComponent("source").Warnf("Error parsing %s: %v", payloadMarker, err)
		return nil, false
	}
	if !gjson.ParseBytes(raw).IsObject() {
		logger.WithComponent("source").Warnf("Error parsing %s: not a JSON object", payloadMarker)
		return nil, false
	}
	return raw, true
}
