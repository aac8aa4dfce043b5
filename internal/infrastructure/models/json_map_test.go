package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONMap_ValueIsDeterministic(t *testing.T) {
	a := JSONMap{"browser": "Chrome", "os": "iOS"}
	b := JSONMap{"os": "iOS", "browser": "Chrome"}

	va, err := a.Value()
	require.NoError(t, err)
	vb, err := b.Value()
	require.NoError(t, err)
	assert.Equal(t, va, vb, "equal documents must produce identical column values")
}

func TestJSONMap_NilValue(t *testing.T) {
	var m JSONMap
	v, err := m.Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestJSONMap_Scan(t *testing.T) {
	var m JSONMap
	require.NoError(t, m.Scan([]byte(`{"browser":"Chrome"}`)))
	assert.Equal(t, "Chrome", m["browser"])

	var fromString JSONMap
	require.NoError(t, fromString.Scan(`{"os":"iOS"}`))
	assert.Equal(t, "iOS", fromString["os"])

	var fromNil JSONMap
	require.NoError(t, fromNil.Scan(nil))
	assert.Nil(t, fromNil)

	var bad JSONMap
	assert.Error(t, bad.Scan(42))
}
