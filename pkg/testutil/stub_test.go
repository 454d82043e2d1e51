package testutil

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStubRecordsRequests(t *testing.T) {
	stub := NewStub(t)
	stub.JSON("/ok", http.StatusOK, map[string]string{"status": "OK"})

	resp, err := http.Post(stub.URL+"/ok?key=abc", "application/json", strings.NewReader(`{"a":1}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "OK", body["status"])

	last := stub.Last(t)
	assert.Equal(t, http.MethodPost, last.Method)
	assert.Equal(t, "/ok", last.Path)
	assert.Equal(t, "abc", last.Query.Get("key"))
	assert.JSONEq(t, `{"a":1}`, string(last.Body))
	assert.Equal(t, 1, stub.Count())
}

func TestStubUnknownPath(t *testing.T) {
	stub := NewStub(t)

	resp, err := http.Get(stub.URL + "/missing")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	var body map[string]map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "NOT_FOUND", body["error"]["status"])
}
