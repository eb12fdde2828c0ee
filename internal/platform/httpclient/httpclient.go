package httpclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	DefaultTimeout  = 30 * time.Second
	DefaultMaxBody  = 1 << 20
	errorBodyMaxLen = 512
)

// Client envuelve *http.Client para descargar datasets (seed) por HTTP(S).
type Client struct {
	HTTP *http.Client

	// MaxBody limita el tamaño de la respuesta. 0 => DefaultMaxBody.
	MaxBody int64
}

// New crea un Client con timeout razonable.
func New(timeout time.Duration) *Client {
	return NewWithTransport(timeout, nil)
}

// NewWithTransport permite inyectar un Transport (p.ej. para tests).
func NewWithTransport(timeout time.Duration, tr http.RoundTripper) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if tr == nil {
		tr = http.DefaultTransport
	}
	return &Client{
		HTTP: &http.Client{
			Timeout:   timeout,
			Transport: tr,
		},
	}
}

// HTTPError representa una respuesta no-2xx.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("http error: status=%d", e.StatusCode)
	}
	return fmt.Sprintf("http error: status=%d body=%s", e.StatusCode, e.Body)
}

// ErrTooLarge se devuelve cuando la respuesta supera MaxBody.
var ErrTooLarge = errors.New("httpclient: response too large")

// IsURL indica si s es una URL http(s) absoluta.
func IsURL(s string) bool {
	s = strings.TrimSpace(s)
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// Get descarga el body completo. Retorna *HTTPError si el status no es 2xx.
// accept es opcional.
func (c *Client) Get(ctx context.Context, rawURL, accept string) ([]byte, string, error) {
	if c == nil || c.HTTP == nil {
		return nil, "", errors.New("httpclient: nil client")
	}
	if !IsURL(rawURL) {
		return nil, "", fmt.Errorf("httpclient: not an absolute url: %q", rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimSpace(rawURL), nil)
	if err != nil {
		return nil, "", fmt.Errorf("httpclient: new request: %w", err)
	}
	if accept != "" {
		req.Header.Set("Accept", accept)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("httpclient: do request: %w", err)
	}
	defer resp.Body.Close()

	max := c.MaxBody
	if max <= 0 {
		max = DefaultMaxBody
	}
	// +1 para detectar que se pasó del límite
	raw, err := io.ReadAll(io.LimitReader(resp.Body, max+1))
	if err != nil {
		return nil, "", fmt.Errorf("httpclient: read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body := strings.TrimSpace(string(raw))
		if len(body) > errorBodyMaxLen {
			body = body[:errorBodyMaxLen]
		}
		return nil, "", &HTTPError{StatusCode: resp.StatusCode, Body: body}
	}
	if int64(len(raw)) > max {
		return nil, "", ErrTooLarge
	}

	return raw, resp.Header.Get("Content-Type"), nil
}
