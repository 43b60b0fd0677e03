package rendering

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColSpanUnmarshalPlainNumber(t *testing.T) {
	var cs ColSpan
	require.NoError(t, json.Unmarshal([]byte(`6`), &cs))
	assert.Equal(t, ColSpanFixed, cs.Kind)
	assert.Equal(t, 6, cs.Fixed)
}

func TestColSpanUnmarshalPerViewNumbers(t *testing.T) {
	var cs ColSpan
	require.NoError(t, json.Unmarshal([]byte(`{"grid": 3, "list": 12}`), &cs))
	assert.Equal(t, ColSpanPerView, cs.Kind)
	assert.Equal(t, 3, cs.PerView["grid"].Cols)
	assert.Equal(t, 12, cs.PerView["list"].Cols)
}

func TestColSpanUnmarshalPerViewClassString(t *testing.T) {
	var cs ColSpan
	require.NoError(t, json.Unmarshal([]byte(`{"grid": "col-span-2 md:col-span-4"}`), &cs))
	assert.Equal(t, "col-span-2 md:col-span-4", cs.PerView["grid"].Class)
}

func TestColSpanUnmarshalLegacyBreakpointObject(t *testing.T) {
	var cs ColSpan
	require.NoError(t, json.Unmarshal([]byte(`{"grid": {"xs": 12, "md": 6, "xl": 3}}`), &cs))
	assert.Equal(t, "col-span-12 md:col-span-6 xl:col-span-3", cs.PerView["grid"].Class)
}

func TestColSpanUnmarshalNullAndAbsent(t *testing.T) {
	var cs ColSpan
	require.NoError(t, json.Unmarshal([]byte(`null`), &cs))
	assert.Equal(t, ColSpanDefault, cs.Kind)
}

func TestColSpanUnmarshalRejectsGarbage(t *testing.T) {
	var cs ColSpan
	assert.Error(t, json.Unmarshal([]byte(`true`), &cs))
	assert.Error(t, json.Unmarshal([]byte(`{"grid": true}`), &cs))
}

func TestColSpanResolvePrecedence(t *testing.T) {
	fixed := ColSpan{Kind: ColSpanFixed, Fixed: 4}
	cols, class := fixed.Resolve("grid", 12)
	assert.Equal(t, 4, cols)
	assert.Empty(t, class)

	perView := ColSpan{Kind: ColSpanPerView, PerView: map[string]ColSpanValue{
		"grid": {Cols: 3},
		"list": {Class: "col-span-full"},
	}}

	cols, class = perView.Resolve("grid", 12)
	assert.Equal(t, 3, cols)
	assert.Empty(t, class)

	cols, class = perView.Resolve("list", 12)
	assert.Zero(t, cols)
	assert.Equal(t, "col-span-full", class)

	// Unknown view mode falls back to the grid default.
	cols, class = perView.Resolve("carousel", 12)
	assert.Equal(t, 12, cols)
	assert.Empty(t, class)

	var unset ColSpan
	cols, _ = unset.Resolve("grid", 12)
	assert.Equal(t, 12, cols)
}

func TestColSpanMarshalRoundTrip(t *testing.T) {
	var cs ColSpan
	require.NoError(t, json.Unmarshal([]byte(`{"grid": 3, "list": "col-span-full"}`), &cs))

	data, err := json.Marshal(cs)
	require.NoError(t, err)

	var again ColSpan
	require.NoError(t, json.Unmarshal(data, &again))

	cols, _ := again.Resolve("grid", 12)
	assert.Equal(t, 3, cols)
	_, class := again.Resolve("list", 12)
	assert.Equal(t, "col-span-full", class)
}
