package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/agentstation/tagsync/pkg/errors"
)

// maxErrorBody caps how much of a failed response is kept for diagnostics.
const maxErrorBody = 4 << 10

// NewJSONRequest builds a request whose body is the JSON encoding of body.
// A nil body sends no payload.
func NewJSONRequest(ctx context.Context, method, url string, body any) (*http.Request, error) {
	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, errors.WrapParse("json", "request", err)
		}
		r = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, r)
	if err != nil {
		return nil, errors.WrapResource("create", "request", method+" "+url, err)
	}
	return req, nil
}

// IsSuccess reports whether status is 2xx.
func IsSuccess(status int) bool {
	return status >= 200 && status < 300
}

// DecodeResponse closes resp and decodes a 2xx JSON body into target.
// Non-2xx responses become *errors.APIError. A nil target or an empty
// body skips decoding.
func DecodeResponse(resp *http.Response, target any) error {
	defer resp.Body.Close() //nolint:errcheck

	if !IsSuccess(resp.StatusCode) {
		return ResponseError(resp)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.WrapIO("read", "response body", err)
	}
	if target == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, target); err != nil {
		return errors.WrapParse("json", "response", err)
	}
	return nil
}

// ResponseError converts a failed response into *errors.APIError, keeping
// at most maxErrorBody bytes of its body. It does not close resp.
func ResponseError(resp *http.Response) *errors.APIError {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	method, endpoint := "", ""
	if resp.Request != nil {
		method = resp.Request.Method
		if resp.Request.URL != nil {
			endpoint = resp.Request.URL.Path
		}
	}
	return errors.NewAPIError(method, endpoint, resp.StatusCode, string(bytes.TrimSpace(body)))
}

// Drain discards the rest of resp.Body and closes it so the connection can
// be reused.
func Drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}
