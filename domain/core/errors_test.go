package core

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreQueryErrorKeepsCauseInChain(t *testing.T) {
	err := NewStoreQueryError("fetch universe", sql.ErrNoRows)

	assert.True(t, IsStoreError(err))
	assert.True(t, errors.Is(err, sql.ErrNoRows), "underlying driver error must stay matchable")
	assert.Contains(t, err.Error(), "fetch universe")
}

func TestStoreQueryErrorUnwrapsTypedCause(t *testing.T) {
	cause := &opError{op: "dial"}
	err := NewStoreQueryError("connect", cause)

	var target *opError
	require.True(t, errors.As(err, &target))
	assert.Equal(t, "dial", target.op)
}

// opError stands in for a typed driver error.
type opError struct{ op string }

func (e *opError) Error() string { return fmt.Sprintf("%s failed", e.op) }

func TestConfigErrorClassification(t *testing.T) {
	assert.True(t, IsConfigError(NewWeightSumError(0.9)))
	assert.True(t, IsConfigError(NewWeightRangeError("literature", 1.2)))
	assert.True(t, IsConfigError(NewUnknownLayerError("proteomics")))
	assert.False(t, IsConfigError(NewStoreQueryError("fetch", sql.ErrConnDone)))
}
