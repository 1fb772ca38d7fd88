package errors_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	pkgerrors "github.com/agentstation/marksync/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := pkgerrors.New("test error")
	assert.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestNotFoundError(t *testing.T) {
	t.Run("basic error", func(t *testing.T) {
		err := &pkgerrors.NotFoundError{Resource: "collection", ID: "42"}
		assert.Equal(t, "collection with ID 42 not found", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrNotFound))
	})

	t.Run("wrapped error", func(t *testing.T) {
		base := pkgerrors.NewNotFoundError("bookmark", "7")
		wrapped := errors.Join(errors.New("failed"), base)
		assert.True(t, pkgerrors.IsNotFound(wrapped))
	})
}

func TestValidationError(t *testing.T) {
	t.Run("with field", func(t *testing.T) {
		err := pkgerrors.NewValidationError("limit", -1, "must not be negative")
		assert.Equal(t, "validation failed for field limit: must not be negative", err.Error())
		assert.True(t, pkgerrors.IsValidationError(err))
	})

	t.Run("without field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{Message: "bad options"}
		assert.Equal(t, "validation failed: bad options", err.Error())
	})
}

func TestAPIError(t *testing.T) {
	tests := []struct {
		name   string
		status int
		target error
	}{
		{"rate limited", http.StatusTooManyRequests, pkgerrors.ErrRateLimited},
		{"server error", http.StatusBadGateway, pkgerrors.ErrServiceUnavailable},
		{"not found", http.StatusNotFound, pkgerrors.ErrNotFound},
		{"unauthorized", http.StatusUnauthorized, pkgerrors.ErrAuthentication},
		{"forbidden", http.StatusForbidden, pkgerrors.ErrAuthentication},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := pkgerrors.NewAPIError("raindrop", tt.status, "boom")
			assert.True(t, errors.Is(err, tt.target))
		})
	}

	t.Run("bad request matches nothing", func(t *testing.T) {
		err := pkgerrors.NewAPIError("raindrop", http.StatusBadRequest, "bad")
		assert.False(t, pkgerrors.IsRateLimited(err))
		assert.False(t, pkgerrors.IsServiceUnavailable(err))
		assert.False(t, pkgerrors.IsNotFound(err))
	})

	t.Run("message format", func(t *testing.T) {
		err := pkgerrors.NewAPIError("pinboard", 500, "internal")
		assert.Equal(t, "API error from pinboard (status 500): internal", err.Error())

		err = &pkgerrors.APIError{Service: "pinboard", Message: "dial failed"}
		assert.Equal(t, "API error from pinboard: dial failed", err.Error())
	})

	t.Run("unwrap", func(t *testing.T) {
		base := errors.New("connection reset")
		err := pkgerrors.WrapAPI("raindrop", 0, base)
		assert.True(t, errors.Is(err, base))
	})
}

func TestConfigError(t *testing.T) {
	base := errors.New("no such file")
	err := pkgerrors.NewConfigError("rules", "cannot load rules.json", base)

	assert.Equal(t, "configuration error in rules: cannot load rules.json", err.Error())
	assert.True(t, pkgerrors.IsConfig(err))
	assert.True(t, errors.Is(err, base))
	assert.False(t, pkgerrors.IsTransient(err))

	noComponent := &pkgerrors.ConfigError{Message: "missing token"}
	assert.Equal(t, "configuration error: missing token", noComponent.Error())
}

func TestTransientError(t *testing.T) {
	api := pkgerrors.NewAPIError("raindrop", http.StatusServiceUnavailable, "down")
	err := pkgerrors.NewTransientError("create", "https://example.com", api)

	assert.Equal(t, "create failed for https://example.com: API error from raindrop (status 503): down", err.Error())
	assert.True(t, pkgerrors.IsTransient(err))
	assert.True(t, pkgerrors.IsServiceUnavailable(err))

	var apiErr *pkgerrors.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusServiceUnavailable, apiErr.StatusCode)

	noURL := pkgerrors.NewTransientError("list", "", errors.New("eof"))
	assert.Equal(t, "list failed: eof", noURL.Error())
}

func TestDataError(t *testing.T) {
	err := pkgerrors.NewDataError(3, "href", "missing URL")
	assert.Equal(t, "source entry 3: field href: missing URL", err.Error())
	assert.True(t, pkgerrors.IsData(err))
	assert.False(t, pkgerrors.IsTransient(err))

	plain := &pkgerrors.DataError{Index: 0, Message: "unreadable"}
	assert.Equal(t, "source entry 0: unreadable", plain.Error())
}

func TestParseAndIOErrors(t *testing.T) {
	base := errors.New("unexpected token")

	parseErr := pkgerrors.WrapParse("yaml", "rules.yaml", base)
	assert.Equal(t, "parse error in yaml file rules.yaml: unexpected token", parseErr.Error())
	assert.True(t, errors.Is(parseErr, base))

	ioErr := pkgerrors.WrapIO("read", "/tmp/posts.json", base)
	assert.Equal(t, "IO error during read of /tmp/posts.json: unexpected token", ioErr.Error())

	assert.NoError(t, pkgerrors.WrapParse("json", "", nil))
	assert.NoError(t, pkgerrors.WrapIO("read", "", nil))
}

func TestTimeoutError(t *testing.T) {
	err := pkgerrors.NewTimeoutError("GET /raindrops/0", "30s", "deadline exceeded")
	assert.Equal(t, "operation GET /raindrops/0 timed out after 30s: deadline exceeded", err.Error())
	assert.True(t, pkgerrors.IsTimeout(err))
}

func TestWrapTransient(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		assert.NoError(t, pkgerrors.WrapTransient("lookup", "u", nil))
	})

	t.Run("wraps once", func(t *testing.T) {
		first := pkgerrors.WrapTransient("lookup", "https://a", errors.New("boom"))
		second := pkgerrors.WrapTransient("create", "https://a", first)
		assert.Same(t, first, second)
	})

	t.Run("through fmt wrap", func(t *testing.T) {
		err := fmt.Errorf("record 2: %w", pkgerrors.NewTransientError("update", "https://b", errors.New("x")))
		assert.True(t, pkgerrors.IsTransient(err))
	})
}
