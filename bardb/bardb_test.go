package bardb

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rb(date string, high, low float64) DailyBar {
	return DailyBar{
		Exchange:     "shfe",
		Symbol:       "rb",
		ContractType: "1905",
		Date:         date,
		Open:         low + 10,
		High:         high,
		Low:          low,
		Close:        high - 10,
	}
}

func TestFetchDailyBar(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "bardb"))
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.StoreDailyBar(rb("2019-02-28", 3710, 3650)))
	require.NoError(t, db.StoreDailyBar(rb("2019-03-01", 3760, 3690)))
	require.NoError(t, db.StoreDailyBar(rb("2019-03-04", 3800, 3740)))

	// 另一个合约的k线不能串
	other := rb("2019-03-01", 100, 90)
	other.ContractType = "1910"
	require.NoError(t, db.StoreDailyBar(other))

	bar, err := db.FetchDailyBar("shfe_rb_1905", "2019-03-04")
	require.NoError(t, err)
	assert.Equal(t, "2019-03-01", bar.Date)
	assert.Equal(t, 3760.0, bar.High)
	assert.Equal(t, 3690.0, bar.Low)

	bar, err = db.FetchDailyBar("shfe_rb_1905", "2019-03-05")
	require.NoError(t, err)
	assert.Equal(t, "2019-03-04", bar.Date)

	bar, err = db.FetchDailyBar("shfe_rb_1910", "2019-03-05")
	require.NoError(t, err)
	assert.Equal(t, 100.0, bar.High)
}

func TestFetchNoBar(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "bardb"))
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.StoreDailyBar(rb("2019-03-01", 3760, 3690)))

	_, err = db.FetchDailyBar("shfe_rb_1905", "2019-03-01")
	assert.ErrorIs(t, err, ErrNoBar)

	_, err = db.FetchDailyBar("dce_i_1905", "2019-03-05")
	assert.ErrorIs(t, err, ErrNoBar)
}

func TestStoreOverwrite(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "bardb"))
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.StoreDailyBar(rb("2019-03-01", 3760, 3690)))
	require.NoError(t, db.StoreDailyBar(rb("2019-03-01", 3770, 3680)))

	bar, err := db.FetchDailyBar("shfe_rb_1905", "2019-03-02")
	require.NoError(t, err)
	assert.Equal(t, 3770.0, bar.High)
	assert.Equal(t, 3680.0, bar.Low)

	assert.Error(t, db.StoreDailyBar(DailyBar{Symbol: "rb"}))
}

func TestSharedBarDB(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bardb")
	w := OpenShared(path)
	r := OpenShared(path)

	require.NoError(t, w.StoreDailyBar(rb("2019-03-01", 3760, 3690)))
	bar, err := r.FetchDailyBar("shfe_rb_1905", "2019-03-04")
	require.NoError(t, err)
	assert.Equal(t, 3760.0, bar.High)

	_, err = r.FetchDailyBar("shfe_rb_1905", "2019-03-01")
	assert.ErrorIs(t, err, ErrNoBar)
	assert.NoError(t, r.Close())
}

func TestNotBeforeStaleBar(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "bardb"))
	require.NoError(t, err)
	defer db.Close()

	// 只有3月1日的日线，3月5日的还没写进来
	require.NoError(t, db.StoreDailyBar(rb("2019-03-01", 3050, 2950)))
	fresh := NotBefore(db, "2019-03-05")

	_, err = fresh.FetchDailyBar("shfe_rb_1905", "2019-03-06")
	assert.ErrorIs(t, err, ErrStaleBar)

	_, err = fresh.FetchDailyBar("dce_i_1905", "2019-03-06")
	assert.ErrorIs(t, err, ErrNoBar)

	require.NoError(t, db.StoreDailyBar(rb("2019-03-05", 3080, 2990)))
	bar, err := fresh.FetchDailyBar("shfe_rb_1905", "2019-03-06")
	require.NoError(t, err)
	assert.Equal(t, "2019-03-05", bar.Date)
	assert.Equal(t, 3080.0, bar.High)
}
