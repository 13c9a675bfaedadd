package dataset

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, "iris.csv",
		"sepal_length,sepal_width,petal_length,petal_width,species\n"+
			"5.1,3.5,1.4,0.2,setosa\n"+
			"4.9,?,1.4,0.2,setosa\n"+
			"6.3,2.8,5.1,1.5,virginica\n")

	meta, err := Lookup("iris")
	require.NoError(t, err)

	data, err := Load(dir, meta)
	require.NoError(t, err)

	rows, cols := data.Dims()
	assert.Equal(t, 3, rows)
	assert.Equal(t, 4, cols)
	assert.Equal(t, 5.1, data.At(0, 0))
	assert.True(t, math.IsNaN(data.At(1, 1)))
	assert.Equal(t, 1.5, data.At(2, 3))
}

func TestLoad_BadCell(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, "iris.csv",
		"a,b,c,d\n"+
			"5.1,3.5,not-a-number,0.2\n")

	meta, err := Lookup("iris")
	require.NoError(t, err)

	_, err = Load(dir, meta)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not-a-number")
}

func TestLoad_MissingFile(t *testing.T) {
	meta, err := Lookup("iris")
	require.NoError(t, err)

	_, err = Load(t.TempDir(), meta)
	assert.Error(t, err)
}

func TestDropMissing(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, "iris.csv",
		"a,b,c,d\n"+
			"5.1,3.5,1.4,0.2\n"+
			"4.9,,1.4,0.2\n"+
			"6.3,2.8,5.1,1.5\n")

	meta, err := Lookup("iris")
	require.NoError(t, err)

	data, err := Load(dir, meta)
	require.NoError(t, err)

	complete, err := DropMissing(data)
	require.NoError(t, err)
	rows, _ := complete.Dims()
	assert.Equal(t, 2, rows)
	assert.Equal(t, 6.3, complete.At(1, 0))
}

func TestLookup_Unknown(t *testing.T) {
	_, err := Lookup("NOTAREALDATASET")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown dataset")
}

func TestNames(t *testing.T) {
	names := Names()
	assert.Len(t, names, 10)
	assert.Contains(t, names, "iris")
	assert.Contains(t, names, "wine-red")
}
