/*
 bardb --- 日K线库

 策略初始化时要用前一交易日的最高最低价，数据由stg收盘后写入，
 也可以用barload从交易所的日线文件导入
 key格式: bar/<sinfo>/<YYYY-MM-DD>，日期定长，按key排序就是按日期排序
*/
package bardb

import (
	"errors"
	"fmt"

	"github.com/adan830/vnpy/protocol"
	"github.com/adan830/vnpy/utils"
	"github.com/golang/protobuf/proto"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/util"
)

var (
	ErrNoBar    = errors.New("no daily bar")
	ErrStaleBar = errors.New("daily bar not stored yet")
)

type DailyBar struct {
	Exchange     string
	Symbol       string
	ContractType string
	Date         string // YYYY-MM-DD
	Open         float64
	High         float64
	Low          float64
	Close        float64
}

func (b DailyBar) Sinfo() string {
	return utils.MakeupSinfo(b.Exchange, b.Symbol, b.ContractType)
}

type BarDB interface {
	// 取before之前(不含)最近的一根日线
	FetchDailyBar(sinfo string, before string) (DailyBar, error)

	StoreDailyBar(bar DailyBar) error

	Close() error
}

type levelBarDB struct {
	db *leveldb.DB
}

func Open(path string) (BarDB, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("open bardb [%s]: %w", path, err)
	}
	return &levelBarDB{db: db}, nil
}

func (t *levelBarDB) FetchDailyBar(sinfo string, before string) (DailyBar, error) {
	prefix := barPrefix(sinfo)
	r := &util.Range{
		Start: []byte(prefix),
		Limit: []byte(prefix + before),
	}
	iter := t.db.NewIterator(r, nil)
	defer iter.Release()

	if !iter.Last() {
		if err := iter.Error(); err != nil {
			return DailyBar{}, fmt.Errorf("fetch bar [%s] before [%s]: %w", sinfo, before, err)
		}
		return DailyBar{}, fmt.Errorf("fetch bar [%s] before [%s]: %w", sinfo, before, ErrNoBar)
	}

	pb := &protocol.PBDailyBar{}
	if err := proto.Unmarshal(iter.Value(), pb); err != nil {
		return DailyBar{}, fmt.Errorf("bar [%s] unmarshal: %w", string(iter.Key()), err)
	}
	return fromPB(pb), nil
}

func (t *levelBarDB) StoreDailyBar(bar DailyBar) error {
	if bar.Date == "" || bar.Symbol == "" {
		return fmt.Errorf("store bar, invalid bar %+v", bar)
	}
	data, err := proto.Marshal(toPB(bar))
	if err != nil {
		return err
	}
	return t.db.Put(barKey(bar.Sinfo(), bar.Date), data, nil)
}

func (t *levelBarDB) Close() error {
	return t.db.Close()
}

////////////////////////////////////////////////////////////////////////////////////////////////////

/*
 NotBefore --- 只认日期不早于since的日线
 换交易日时前一天的日线可能还没写进库，这时库里最近的一根是更早的，
 不能拿来当前一交易日用，返回ErrStaleBar让调用方稍后重试
*/
func NotBefore(db BarDB, since string) BarDB {
	return &notBeforeBarDB{BarDB: db, since: since}
}

type notBeforeBarDB struct {
	BarDB
	since string
}

func (t *notBeforeBarDB) FetchDailyBar(sinfo string, before string) (DailyBar, error) {
	bar, err := t.BarDB.FetchDailyBar(sinfo, before)
	if err != nil {
		return DailyBar{}, err
	}
	if bar.Date < t.since {
		return DailyBar{}, fmt.Errorf("fetch bar [%s] before [%s], got [%s] want >= [%s]: %w",
			sinfo, before, bar.Date, t.since, ErrStaleBar)
	}
	return bar, nil
}

////////////////////////////////////////////////////////////////////////////////////////////////////

func barPrefix(sinfo string) string {
	return "bar/" + sinfo + "/"
}

func barKey(sinfo string, date string) []byte {
	return []byte(barPrefix(sinfo) + date)
}

func toPB(b DailyBar) *protocol.PBDailyBar {
	return &protocol.PBDailyBar{
		Exchange:     proto.String(b.Exchange),
		Symbol:       proto.String(b.Symbol),
		ContractType: proto.String(b.ContractType),
		Date:         proto.String(b.Date),
		Open:         proto.Float64(b.Open),
		High:         proto.Float64(b.High),
		Low:          proto.Float64(b.Low),
		Close:        proto.Float64(b.Close),
	}
}

func fromPB(pb *protocol.PBDailyBar) DailyBar {
	return DailyBar{
		Exchange:     pb.GetExchange(),
		Symbol:       pb.GetSymbol(),
		ContractType: pb.GetContractType(),
		Date:         pb.GetDate(),
		Open:         pb.GetOpen(),
		High:         pb.GetHigh(),
		Low:          pb.GetLow(),
		Close:        pb.GetClose(),
	}
}
