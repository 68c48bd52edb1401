package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestJSONHandlerCarriesErrorAttr(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriter(envProd, &buf)
	l.With("component", "test").ErrorErr("query failed", errors.New("boom"), "table", "Customer")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	require.Equal(t, "query failed", rec["msg"])
	require.Equal(t, "boom", rec["error"])
	require.Equal(t, "Customer", rec["table"])
	require.Equal(t, "test", rec["component"])
}

func TestProdSuppressesDebug(t *testing.T) {
	var buf bytes.Buffer
	NewWriter(envProd, &buf).Debug("hidden")
	require.Zero(t, buf.Len())
}
