package clip

import (
	"fmt"
	"net/url"
	"strings"
)

// ShareURL builds a link that carries content in the "shared" query
// parameter of baseURL. Existing query parameters on baseURL are kept.
func ShareURL(baseURL, content string) (string, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return "", fmt.Errorf("share base url is not configured")
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid share base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("share base url must be absolute: %s", baseURL)
	}

	q := u.Query()
	q.Set("shared", content)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
