package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSONResponse(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSONResponse(rec, http.StatusCreated, map[string]string{"hello": "world"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "world", body["hello"])
}

// Business failures ride HTTP 200; the success flag carries the outcome.
func TestWriteMessageAlwaysOK(t *testing.T) {
	for _, success := range []bool{true, false} {
		rec := httptest.NewRecorder()
		WriteMessage(rec, success, "some message")

		assert.Equal(t, http.StatusOK, rec.Code)

		var resp MessageResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, success, resp.Success)
		assert.Equal(t, "some message", resp.Message)
	}
}
