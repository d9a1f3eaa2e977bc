package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/cvelab/collatzmgr/internal/errors"
	"github.com/cvelab/collatzmgr/internal/logger"
)

// sequenceResponse is the compute service success payload
type sequenceResponse struct {
	Number   int   `json:"number"`
	Sequence []int `json:"sequence"`
}

// errorResponse is the compute service error payload
type errorResponse struct {
	Error string `json:"error"`
}

// RemoteBackend computes sequences by calling the compute service over HTTP
type RemoteBackend struct {
	baseURL string
	client  *http.Client
	log     logger.Logger
}

// NewRemoteBackend creates a remote backend against the given base URL.
// The timeout bounds a single round trip; zero means no client timeout.
func NewRemoteBackend(baseURL string, timeout time.Duration) *RemoteBackend {
	return &RemoteBackend{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		log:     logger.New("backend.remote"),
	}
}

// Compute fetches the sequence for n from the compute service.
// Non-2xx responses map to a remote error carrying the service's message,
// malformed bodies map to a decode error.
func (b *RemoteBackend) Compute(ctx context.Context, n int) ([]int, error) {
	endpoint := fmt.Sprintf("%s/collatz?number=%s", b.baseURL, url.QueryEscape(strconv.Itoa(n)))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build compute request", err).WithNumber(n)
	}

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, apperrors.NewRemoteError(0, fmt.Sprintf("compute request failed: %v", err)).WithNumber(n)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.NewRemoteError(resp.StatusCode, fmt.Sprintf("failed to read response: %v", err)).WithNumber(n)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, b.remoteError(n, resp.StatusCode, body)
	}

	var payload sequenceResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, apperrors.NewDecodeError(err).WithNumber(n)
	}
	if len(payload.Sequence) == 0 {
		return nil, apperrors.NewDecodeError(fmt.Errorf("empty sequence in response")).WithNumber(n)
	}

	return payload.Sequence, nil
}

// remoteError maps a non-2xx response to a remote error, preferring the
// service's own error message when the body decodes
func (b *RemoteBackend) remoteError(n, status int, body []byte) error {
	message := fmt.Sprintf("compute service returned status %d", status)

	var payload errorResponse
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
		message = payload.Error
	} else {
		b.log.Debug("undecodable error body from compute service",
			logger.Int("status", status),
			logger.Int("number", n),
		)
	}

	return apperrors.NewRemoteError(status, message).WithNumber(n)
}
