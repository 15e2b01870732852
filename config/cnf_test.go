package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCnf = `{
	"appId": 3,
	"log": "/tmp/gap/log/",
	"stg": "/tmp/gap/data/",
	"bardb": "/tmp/gap/bardb",
	"exchanges": "shfe;dce",
	"kafka": {"broker": "127.0.0.1:9092"},
	"strategy": {"settings": "./conf/gaprev.yaml"},
	"monitor": {"addr": ":8090"},
	"replay": {"days": "2019-03-01;2019-03-04"}
}`

func TestLoadConfig(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "app.json")
	require.NoError(t, os.WriteFile(fn, []byte(testCnf), 0644))

	c := newAppCnf()
	require.NoError(t, c.LoadConfig(fn))

	assert.Equal(t, 3, c.AppID)
	assert.Equal(t, "127.0.0.1:9092", c.Broker)
	assert.Equal(t, []string{"shfe", "dce"}, c.Exchanges)
	assert.Equal(t, "/tmp/gap/bardb", c.BarDBPath)
	assert.Equal(t, "./conf/gaprev.yaml", c.Strategy.Settings)
	assert.Equal(t, ":8090", c.Monitor.Addr)
	assert.Equal(t, DEFAULT_TIMEZONE, c.Exchange.Timezone)
	assert.Equal(t, []string{"2019-03-01", "2019-03-04"}, c.Replay.Days)
}

func TestLoadConfigMissing(t *testing.T) {
	c := newAppCnf()
	err := c.LoadConfig(filepath.Join(t.TempDir(), "none.json"))
	assert.Error(t, err)
}

func TestLoadConfigNoExchange(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "app.json")
	require.NoError(t, os.WriteFile(fn, []byte(`{"log": "./log/"}`), 0644))

	c := newAppCnf()
	assert.Error(t, c.LoadConfig(fn))
}
