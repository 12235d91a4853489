package location

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// HTTPProvider talks to a positioning gateway exposing /permission and /fix.
type HTTPProvider struct {
	baseURL    string
	httpClient *http.Client
}

func NewHTTPProvider(baseURL string) *HTTPProvider {
	return &HTTPProvider{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (p *HTTPProvider) RequestPermission(ctx context.Context) error {
	var body struct {
		Granted bool `json:"granted"`
	}
	if err := p.getJSON(ctx, "/permission", &body); err != nil {
		return err
	}
	if !body.Granted {
		return ErrPermissionDenied
	}
	return nil
}

func (p *HTTPProvider) CurrentFix(ctx context.Context) (Fix, error) {
	var fix Fix
	if err := p.getJSON(ctx, "/fix", &fix); err != nil {
		return Fix{}, err
	}
	return fix, nil
}

func (p *HTTPProvider) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: provider status %d", ErrUnavailable, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}
