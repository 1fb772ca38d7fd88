package transport

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/agentstation/marksync/pkg/errors"
	"github.com/agentstation/marksync/pkg/logging"
)

// maxErrorBody caps how much of an error body ends up in an error message.
const maxErrorBody = 512

// errorBody covers the error shapes returned by the supported services.
type errorBody struct {
	ErrorMessage string `json:"errorMessage"`
	Error        any    `json:"error"`
}

// DecodeResponse checks the status and decodes a JSON response into target.
// Non-2xx responses become *errors.APIError. A nil target skips decoding.
func DecodeResponse(service, endpoint string, resp *http.Response, target any) error {
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logging.Warn().Err(err).Str("service", service).Msg("Failed to close response body")
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.WrapIO("read", "response body", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return &errors.APIError{
			Service:    service,
			StatusCode: resp.StatusCode,
			Endpoint:   endpoint,
			Message:    errorMessage(body, resp.Status),
		}
	}

	if target == nil || len(strings.TrimSpace(string(body))) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, target); err != nil {
		return errors.WrapParse("json", endpoint, err)
	}
	return nil
}

func errorMessage(body []byte, status string) string {
	var eb errorBody
	if json.Unmarshal(body, &eb) == nil {
		if eb.ErrorMessage != "" {
			return eb.ErrorMessage
		}
		if s, ok := eb.Error.(string); ok && s != "" {
			return s
		}
	}
	msg := strings.TrimSpace(string(body))
	if msg == "" {
		return status
	}
	if len(msg) > maxErrorBody {
		msg = msg[:maxErrorBody] + "..."
	}
	return msg
}
