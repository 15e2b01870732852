package barload

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/adan830/vnpy/bardb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dump = `{"data":[
	{"symbol":"rb","contractType":"1905","date":"2019-02-28","open":"3700","high":"3710","low":"3650","close":"3690"},
	{"exchange":"shfe","symbol":"rb","contractType":"1905","date":"2019-03-01","open":3690,"high":3760.5,"low":3690,"close":3750}
]}`

func TestParse(t *testing.T) {
	bars, err := Parse([]byte(dump), "shfe")
	require.NoError(t, err)
	require.Len(t, bars, 2)

	assert.Equal(t, "shfe_rb_1905", bars[0].Sinfo())
	assert.Equal(t, 3710.0, bars[0].High)
	assert.Equal(t, 3650.0, bars[0].Low)
	assert.Equal(t, "2019-03-01", bars[1].Date)
	assert.Equal(t, 3760.5, bars[1].High)
	assert.Equal(t, 3750.0, bars[1].Close)
}

func TestParseErrors(t *testing.T) {
	cases := map[string]string{
		"not json":     `{`,
		"no data":      `{"rows":[]}`,
		"no exchange":  `{"data":[{"symbol":"rb","contractType":"1905","date":"2019-03-01","open":1,"high":1,"low":1,"close":1}]}`,
		"bad date":     `{"data":[{"symbol":"rb","contractType":"1905","date":"20190301","open":1,"high":1,"low":1,"close":1}]}`,
		"missing high": `{"data":[{"symbol":"rb","contractType":"1905","date":"2019-03-01","open":1,"low":1,"close":1}]}`,
		"bad price":    `{"data":[{"symbol":"rb","contractType":"1905","date":"2019-03-01","open":"x","high":1,"low":1,"close":1}]}`,
		"high < low":   `{"data":[{"symbol":"rb","contractType":"1905","date":"2019-03-01","open":1,"high":1,"low":2,"close":1}]}`,
	}
	for name, c := range cases {
		ex := "shfe"
		if name == "no exchange" {
			ex = ""
		}
		_, err := Parse([]byte(c), ex)
		assert.Error(t, err, name)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	fn := filepath.Join(dir, "rb.json")
	require.NoError(t, os.WriteFile(fn, []byte(dump), 0644))

	db, err := bardb.Open(filepath.Join(dir, "bardb"))
	require.NoError(t, err)
	defer db.Close()

	n, err := LoadFile(fn, "shfe", db)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	bar, err := db.FetchDailyBar("shfe_rb_1905", "2019-03-04")
	require.NoError(t, err)
	assert.Equal(t, "2019-03-01", bar.Date)
	assert.Equal(t, 3760.5, bar.High)

	_, err = LoadFile(filepath.Join(dir, "missing.json"), "shfe", db)
	assert.Error(t, err)
}
