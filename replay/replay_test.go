package replay

import (
	"fmt"
	"testing"

	"github.com/adan830/vnpy/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/syndtr/goleveldb/leveldb"
)

// 按stg的格式写一个目录
func writeDay(t *testing.T, dir string, ex string, day string, n int) {
	db, err := leveldb.OpenFile(makeupReplayDir(dir, ex, day), nil)
	require.NoError(t, err)
	defer db.Close()

	for i := 0; i < n; i++ {
		require.NoError(t, db.Put(utils.UintTobytes(uint64(i)), []byte(fmt.Sprintf("%s/%s/%d", ex, day, i)), nil))
	}
	require.NoError(t, db.Put(countKey, utils.UintTobytes(uint64(n)), nil))
}

func TestReplay(t *testing.T) {
	dir := t.TempDir() + "/"
	writeDay(t, dir, "shfe", "2019-03-01", 3)
	writeDay(t, dir, "dce", "2019-03-01", 1)
	writeDay(t, dir, "shfe", "2019-03-04", 2)
	writeDay(t, dir, "dce", "2019-03-04", 0)

	ch := make(chan int)
	defer close(ch)
	r, err := StartReplay(dir, []string{"shfe", "dce"}, []string{"2019-03-01", "2019-03-04"}, ch)
	require.NoError(t, err)

	got := []string{}
	for msg := range r.ReadMessages() {
		v := string(msg.Value)
		assert.Equal(t, string(msg.Key), v[:len(msg.Key)])
		got = append(got, v)
	}
	assert.Equal(t, []string{
		"shfe/2019-03-01/0", "shfe/2019-03-01/1", "shfe/2019-03-01/2",
		"dce/2019-03-01/0",
		"shfe/2019-03-04/0", "shfe/2019-03-04/1",
	}, got)
}

func TestReplayMissingDir(t *testing.T) {
	dir := t.TempDir() + "/"
	writeDay(t, dir, "shfe", "2019-03-01", 1)

	_, err := StartReplay(dir, []string{"shfe"}, []string{"2019-03-01", "2019-03-04"}, make(chan int))
	assert.Error(t, err)

	_, err = StartReplay(dir, []string{"shfe"}, nil, make(chan int))
	assert.Error(t, err)
}

func TestReplayStop(t *testing.T) {
	dir := t.TempDir() + "/"
	writeDay(t, dir, "shfe", "2019-03-01", max_ch_len*3)

	ch := make(chan int)
	r, err := StartReplay(dir, []string{"shfe"}, []string{"2019-03-01"}, ch)
	require.NoError(t, err)
	close(ch)

	n := 0
	for range r.ReadMessages() {
		n++
	}
	assert.Less(t, n, max_ch_len*3)
}
