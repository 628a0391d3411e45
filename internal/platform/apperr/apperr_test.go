// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/dspace-browser/internal/platform/apperr"
)

/*
TestNotFound_Message checks the "<resource> not found" message format.
*/
func TestNotFound_Message(t *testing.T) {
	err := apperr.NotFound("Collection")

	assert.Equal(t, "Collection not found", err.Error())
	assert.Equal(t, http.StatusNotFound, err.HTTPStatus)
	assert.Equal(t, "NOT_FOUND", err.Code)
}

/*
TestAs_WrappedChain verifies extraction through fmt.Errorf wrapping.
*/
func TestAs_WrappedChain(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	wrapped := fmt.Errorf("readiness: %w", apperr.BadGateway(cause))

	ae := apperr.As(wrapped)
	require.NotNil(t, ae)
	assert.Equal(t, http.StatusBadGateway, ae.HTTPStatus)
	assert.ErrorIs(t, wrapped, cause)
}

/*
TestAs_PlainError returns nil for errors outside the taxonomy.
*/
func TestAs_PlainError(t *testing.T) {
	assert.Nil(t, apperr.As(errors.New("boom")))
}
