package webhook_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func mustPayload(t *testing.T, body []byte) json.RawMessage {
	t.Helper()

	var e struct {
		Payload json.RawMessage `json:"payload"`
	}
	require.NoError(t, json.Unmarshal(body, &e))

	return e.Payload
}
