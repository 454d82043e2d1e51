package prompts

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func promptText(t *testing.T, result *mcp.GetPromptResult) string {
	t.Helper()
	require.Len(t, result.Messages, 1)
	text, ok := result.Messages[0].Content.(mcp.TextContent)
	require.True(t, ok, "prompt content should be text")
	return text.Text
}

func TestMapsUsageHandler(t *testing.T) {
	result, err := MapsUsageHandler(context.Background(), mcp.GetPromptRequest{})
	require.NoError(t, err)

	text := promptText(t, result)
	assert.Contains(t, text, "isCoordinates")
	assert.Contains(t, text, "UNSUPPORTED_FILTER")
	assert.Contains(t, text, "INVALID_WAYPOINT")
}

func TestSearchNearbyExamplesHandler(t *testing.T) {
	result, err := SearchNearbyExamplesHandler(context.Background(), mcp.GetPromptRequest{})
	require.NoError(t, err)

	text := promptText(t, result)
	assert.Contains(t, text, `"value": "Osaka, Japan"`)
	assert.Contains(t, text, "tourist_attraction")
}
