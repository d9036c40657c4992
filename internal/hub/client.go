// Package hub fetches model metadata from the model hub.
package hub

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/nordtext/scandibench/internal/language"
)

const (
	defaultEndpoint = "https://huggingface.co"
	defaultTimeout  = 30 * time.Second
)

// ModelInfo is the hub's metadata for one model.
type ModelInfo struct {
	ID          string   `json:"id"`
	ModelID     string   `json:"modelId"`
	Tags        []string `json:"tags"`
	PipelineTag string   `json:"pipeline_tag"`
}

// Name returns whichever of the two ID fields the hub populated.
func (m *ModelInfo) Name() string {
	if m == nil {
		return ""
	}
	if v := strings.TrimSpace(m.ID); v != "" {
		return v
	}
	return strings.TrimSpace(m.ModelID)
}

// Client talks to the model hub REST API.
type Client struct {
	endpoint   string
	authToken  string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithEndpoint sets the hub base URL.
func WithEndpoint(endpoint string) Option {
	return func(c *Client) {
		if c == nil {
			return
		}
		endpoint = strings.TrimSpace(endpoint)
		if endpoint == "" {
			return
		}
		c.endpoint = strings.TrimRight(endpoint, "/")
	}
}

// WithAuthToken sets the hub access token for gated models.
func WithAuthToken(token string) Option {
	return func(c *Client) {
		if c == nil {
			return
		}
		c.authToken = strings.TrimSpace(token)
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if c == nil || hc == nil {
			return
		}
		c.httpClient = hc
	}
}

func NewClient(opts ...Option) *Client {
	c := &Client{
		endpoint:   defaultEndpoint,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// SplitModelID separates an optional "@revision" suffix from a model ID,
// defaulting the revision to "main".
func SplitModelID(modelID string) (id, revision string) {
	modelID = strings.TrimSpace(modelID)
	if at := strings.Index(modelID, "@"); at >= 0 {
		rev := strings.TrimSpace(modelID[at+1:])
		if rev == "" {
			rev = "main"
		}
		return strings.TrimSpace(modelID[:at]), rev
	}
	return modelID, "main"
}

// GetModel fetches hub metadata for a single model. The revision suffix, if
// present, is stripped before lookup.
func (c *Client) GetModel(ctx context.Context, modelID string) (*ModelInfo, error) {
	if c == nil {
		return nil, errors.New("hub: nil client")
	}
	if ctx == nil {
		return nil, errors.New("hub: nil context")
	}
	id, _ := SplitModelID(modelID)
	if id == "" {
		return nil, errors.New("hub: empty model id")
	}

	var info ModelInfo
	if err := c.getJSON(ctx, "/api/models/"+id, nil, &info); err != nil {
		return nil, err
	}
	if info.Name() == "" {
		info.ID = id
	}
	return &info, nil
}

// ListModels fetches model IDs from the hub, optionally filtered by language.
// A nil language slice lists models without a language filter.
func (c *Client) ListModels(ctx context.Context, langs []language.Language) (map[string][]string, error) {
	if c == nil {
		return nil, errors.New("hub: nil client")
	}
	if ctx == nil {
		return nil, errors.New("hub: nil context")
	}

	lists := make(map[string][]string)

	// Listing every supported language separately is pointless when no
	// filter was requested; one unfiltered query covers it.
	if len(langs) == 0 || len(langs) >= len(language.All()) {
		ids, err := c.listModelIDs(ctx, "")
		if err != nil {
			return nil, err
		}
		lists["all"] = append(lists["all"], ids...)
	} else {
		for _, lang := range langs {
			ids, err := c.listModelIDs(ctx, lang.Code)
			if err != nil {
				return nil, err
			}
			lists[lang.Code] = append(lists[lang.Code], ids...)
			lists["all"] = append(lists["all"], ids...)
		}
	}

	addCuratedModels(lists, langs)

	for key, ids := range lists {
		lists[key] = dedupeSorted(ids)
	}
	return lists, nil
}

func (c *Client) listModelIDs(ctx context.Context, langCode string) ([]string, error) {
	q := url.Values{}
	if langCode != "" {
		q.Set("language", langCode)
	}

	var models []ModelInfo
	if err := c.getJSON(ctx, "/api/models", q, &models); err != nil {
		return nil, err
	}

	out := make([]string, 0, len(models))
	for i := range models {
		m := &models[i]
		if langCode != "" && !hasTag(m.Tags, langCode) {
			continue
		}
		if name := m.Name(); name != "" {
			out = append(out, name)
		}
	}
	return out, nil
}

func (c *Client) getJSON(ctx context.Context, path string, q url.Values, out any) error {
	u := c.endpoint + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("hub: build request: %w", err)
	}
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return classifyTransportError(err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrModelNotFound
	case resp.StatusCode >= 500:
		return fmt.Errorf("%w (status %d)", ErrHubDown, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("hub: unexpected status %d for %s", resp.StatusCode, path)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("hub: decode response: %w", err)
	}
	return nil
}

func classifyTransportError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return fmt.Errorf("%w: %v", ErrNoInternet, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %v", ErrHubDown, err)
	}
	return fmt.Errorf("%w: %v", ErrNoInternet, err)
}

func hasTag(tags []string, want string) bool {
	for _, t := range tags {
		if strings.EqualFold(strings.TrimSpace(t), want) {
			return true
		}
	}
	return false
}

func dedupeSorted(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
