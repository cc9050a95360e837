package license

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/aboutkit/aboutkit/internal/retry"
	"github.com/aboutkit/aboutkit/pkg/about"
)

// LicenseDB fetches licenses from a ScanCode LicenseDB site, which serves
// <key>.json metadata and <key>.LICENSE texts.
type LicenseDB struct {
	baseURL string
	http    *httpGetter
}

// NewLicenseDB creates a client for baseURL, the public LicenseDB when empty.
func NewLicenseDB(baseURL string, opts ...ClientOption) *LicenseDB {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = about.DefaultLicenseDBURL
	}
	return &LicenseDB{
		baseURL: strings.TrimRight(baseURL, "/") + "/",
		http:    newHTTPGetter(opts...),
	}
}

func (l *LicenseDB) Name() string {
	return "LicenseDB " + l.baseURL
}

func (l *LicenseDB) Fetch(ctx context.Context, key string) (*License, error) {
	meta, err := l.http.get(ctx, l.baseURL+key+".json", nil)
	if err != nil {
		return nil, l.classify(key, err)
	}
	if !gjson.ValidBytes(meta) {
		return nil, fmt.Errorf("%w: invalid JSON for license %s", about.ErrLicenseLibrary, key)
	}

	textURL := l.baseURL + DefaultFilename(key)
	text, err := l.http.get(ctx, textURL, nil)
	if err != nil {
		return nil, l.classify(key, err)
	}

	doc := gjson.ParseBytes(meta)
	name := doc.Get("short_name").String()
	if name == "" {
		name = doc.Get("name").String()
	}
	return &License{
		Key:      key,
		Name:     name,
		SPDXKey:  doc.Get("spdx_license_key").String(),
		URL:      textURL,
		Text:     string(text),
		Filename: DefaultFilename(key),
	}, nil
}

func (l *LicenseDB) classify(key string, err error) error {
	var statusErr *retry.StatusError
	if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %s", ErrUnknownLicense, key)
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	return fmt.Errorf("%w: %v", about.ErrLicenseLibrary, err)
}
