package bardb

import (
	"time"

	"github.com/astaxie/beego/logs"
	"github.com/jpillora/backoff"
)

const MAX_OPEN_TIMES = 10

/*
 krang和stg是两个进程，leveldb同一时间只能被一个进程打开
 这里每次读写时打开，用完马上关闭，打不开就退避重试
*/
type sharedBarDB struct {
	path string
}

func OpenShared(path string) BarDB {
	return &sharedBarDB{path: path}
}

func (t *sharedBarDB) with(fn func(db BarDB) error) error {
	b := &backoff.Backoff{
		Min:    20 * time.Millisecond,
		Max:    time.Second,
		Factor: 2,
		Jitter: true,
	}

	var err error
	for i := 0; i < MAX_OPEN_TIMES; i++ {
		var db BarDB
		db, err = Open(t.path)
		if err == nil {
			defer db.Close()
			return fn(db)
		}
		d := b.Duration()
		logs.Info("bardb [%s] 打开失败，%v后重试，err[%s]", t.path, d, err.Error())
		time.Sleep(d)
	}
	return err
}

func (t *sharedBarDB) FetchDailyBar(sinfo string, before string) (DailyBar, error) {
	var bar DailyBar
	err := t.with(func(db BarDB) error {
		var e error
		bar, e = db.FetchDailyBar(sinfo, before)
		return e
	})
	return bar, err
}

func (t *sharedBarDB) StoreDailyBar(bar DailyBar) error {
	return t.with(func(db BarDB) error {
		return db.StoreDailyBar(bar)
	})
}

func (t *sharedBarDB) Close() error {
	return nil
}
