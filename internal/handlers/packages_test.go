package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleListPackages(t *testing.T) {
	c, rec := NewTestContext(http.MethodGet, "/api/packages", nil)
	require.NoError(t, HandleListPackages(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var packages []Package
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&packages))
	require.Len(t, packages, 3)
	assert.Equal(t, 3000, packages[0].Price)
	assert.True(t, packages[1].IsFeatured)
	assert.Equal(t, 10000, packages[2].Price)
}

func TestFindPackage(t *testing.T) {
	pkg, ok := FindPackage(Packages[1].Name)
	require.True(t, ok)
	assert.Equal(t, 6000, pkg.Price)

	_, ok = FindPackage("no such tier")
	assert.False(t, ok)
}
