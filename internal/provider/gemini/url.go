package gemini

import (
	"errors"
	"fmt"
	"net/url"
	"path"
)

// redactedKey replaces the credential wherever a URL is surfaced.
const redactedKey = "REDACTED"

// buildTargetURL constructs {base}/{version}/models/{model}:generateContent?key={apiKey}.
func buildTargetURL(baseURL, apiVersion, model, apiKey string) (string, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid base URL: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return "", fmt.Errorf("invalid base URL %q: scheme and host are required", baseURL)
	}

	parsed.Path = path.Join("/", parsed.Path, apiVersion, "models", model+":generateContent")
	parsed.RawQuery = url.Values{"key": {apiKey}}.Encode()

	return parsed.String(), nil
}

// redactError strips the credential from errors that embed the request URL.
func redactError(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return &url.Error{Op: urlErr.Op, URL: redactURL(urlErr.URL), Err: urlErr.Err}
	}
	return err
}

func redactURL(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil {
		return "<redacted>"
	}
	q := parsed.Query()
	if q.Has("key") {
		q.Set("key", redactedKey)
		parsed.RawQuery = q.Encode()
	}
	return parsed.String()
}
