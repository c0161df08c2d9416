package constant

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSourceError(t *testing.T) {
	err := fmt.Errorf("获取 gist 列表失败: %w", &SourceError{StatusCode: 401, Message: "Bad credentials"})

	assert.True(t, errors.Is(err, ErrSourceUnavailable))
	assert.False(t, errors.Is(err, ErrNotFound))

	var srcErr *SourceError
	assert.True(t, errors.As(err, &srcErr))
	assert.Equal(t, 401, srcErr.StatusCode)
	assert.Contains(t, err.Error(), "Bad credentials")
}

func TestPostCacheKey(t *testing.T) {
	assert.Equal(t, "gist-abc123", PostCacheKey("abc123"))
}
