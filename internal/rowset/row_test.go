package rowset_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carbonfront/internal/rowset"
)

func TestRow_SetKeepsFirstPosition(t *testing.T) {
	row := rowset.NewRow(2)
	row.Set("b", 1)
	row.Set("a", 2)
	row.Set("b", 3)

	assert.Equal(t, []string{"b", "a"}, row.Keys())
	v, _ := row.Get("b")
	assert.Equal(t, 3, v)
	assert.Equal(t, 2, row.Len())
}

func TestRow_ZeroValue(t *testing.T) {
	var row rowset.Row
	row.Set("k", "v")

	v, ok := row.Get("k")
	assert.True(t, ok)
	assert.Equal(t, "v", v)
}

func TestRow_MarshalJSONKeepsOrder(t *testing.T) {
	rows, err := rowset.Parse([]byte(`[{"z":1,"a":"x","m":null,"n":{"k":[1]}}]`))
	require.NoError(t, err)

	b, err := json.Marshal(rows)
	require.NoError(t, err)
	assert.Equal(t, `[{"z":1,"a":"x","m":null,"n":{"k":[1]}}]`, string(b))
}

func TestRowSet_KeysEmpty(t *testing.T) {
	assert.Nil(t, rowset.RowSet(nil).Keys())
}
