package license

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/aboutkit/aboutkit/internal/retry"
	"github.com/aboutkit/aboutkit/pkg/about"
)

// DejaCode fetches licenses from a DejaCode license API endpoint.
// Requests carry the key both as a query parameter and as a Token header.
type DejaCode struct {
	apiURL string
	apiKey string
	http   *httpGetter
}

// NewDejaCode creates a client for the license endpoint apiURL.
func NewDejaCode(apiURL, apiKey string, opts ...ClientOption) *DejaCode {
	return &DejaCode{
		apiURL: strings.TrimRight(apiURL, "/"),
		apiKey: apiKey,
		http:   newHTTPGetter(opts...),
	}
}

func (d *DejaCode) Name() string {
	return "DejaCode " + d.apiURL
}

func (d *DejaCode) Fetch(ctx context.Context, key string) (*License, error) {
	query := url.Values{}
	query.Set("api_key", d.apiKey)
	query.Set("key", key)
	query.Set("format", "json")
	requestURL := d.apiURL + "/?" + query.Encode()

	header := http.Header{}
	header.Set("Authorization", "Token "+d.apiKey)

	body, err := d.http.get(ctx, requestURL, header)
	if err != nil {
		var statusErr *retry.StatusError
		if errors.As(err, &statusErr) {
			if statusErr.StatusCode == http.StatusUnauthorized || statusErr.StatusCode == http.StatusForbidden {
				return nil, fmt.Errorf("%w: %s", about.ErrUnauthorized, d.apiURL)
			}
		}
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", about.ErrLicenseLibrary, err)
	}

	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: response is not JSON", about.ErrLicenseLibrary)
	}
	doc := gjson.ParseBytes(body)
	results := doc.Get("results").Array()
	if len(results) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownLicense, key)
	}
	if count := doc.Get("count"); count.Exists() && count.Int() != 1 {
		return nil, fmt.Errorf("%w: %s matched %d licenses", ErrUnknownLicense, key, count.Int())
	}

	result := results[0]
	foundKey := result.Get("key").String()
	if foundKey == "" {
		foundKey = key
	}
	name := result.Get("short_name").String()
	if name == "" {
		name = result.Get("name").String()
	}
	return &License{
		Key:      foundKey,
		Name:     name,
		SPDXKey:  result.Get("spdx_license_key").String(),
		Text:     result.Get("full_text").String(),
		URL:      d.licenseURN(foundKey),
		Filename: DefaultFilename(foundKey),
	}, nil
}

// licenseURN returns the DejaCode URN resolver URL for key.
func (d *DejaCode) licenseURN(key string) string {
	u, err := url.Parse(d.apiURL)
	if err != nil || u.Host == "" {
		return ""
	}
	return fmt.Sprintf("%s://%s/urn/?urn=urn:dje:license:%s", u.Scheme, u.Host, key)
}
