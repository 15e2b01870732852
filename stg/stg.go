package stg

import (
	"fmt"
	"time"

	"github.com/Shopify/sarama"
	"github.com/adan830/vnpy/bardb"
	"github.com/adan830/vnpy/config"
	"github.com/adan830/vnpy/protocol"
	"github.com/adan830/vnpy/utils"
	"github.com/astaxie/beego/logs"
	"github.com/golang/protobuf/proto"
	"github.com/syndtr/goleveldb/leveldb"
)

/*
 行情落地
 1. 原始报文按交易所、交易日存到leveldb，给replay回放用
    path的格式为：/usr/slash/data/
    data下是各个交易所名称，交易所下面是日期
    /usr/slash/data/shfe/2019-03-04/quote
 2. tick按合约汇总成日线，切换交易日时写到bardb，策略第二天初始化时用
*/

const (
	STG_CMD_EXIT              = 1
	STG_CMD_SWITCH_TRADINGDAY = 2
)

var dbName = "quote"
var countKey []byte = []byte("-1")

type storage struct {
	path       string
	tradingDay string
	loc        *time.Location
	dbm        map[string]*leveldb.DB
	currm      map[string]uint64
	bars       map[string]*bardb.DailyBar // 当前交易日按合约汇总的日线
	bardb      bardb.BarDB
}

func newStorage(path string, loc *time.Location, db bardb.BarDB) *storage {
	return &storage{
		path:  path,
		loc:   loc,
		dbm:   make(map[string]*leveldb.DB),
		currm: make(map[string]uint64),
		bars:  make(map[string]*bardb.DailyBar),
		bardb: db,
	}
}

func StartStorage(ch chan int, source <-chan *sarama.ConsumerMessage) error {
	loc := utils.ExchangeLocation()
	s := newStorage(config.T.StgPath, loc, bardb.OpenShared(config.T.BarDBPath))
	if err := s.open(config.T.Exchanges, utils.TradingDay(time.Now(), loc)); err != nil {
		s.close()
		return err
	}

	go stgLoop(s, ch, source)
	return nil
}

func makeDBFileName(path string, exchange string, tradingDay string) string {
	name := path + exchange + "/" + tradingDay + "/" + dbName
	return name
}

func stgLoop(s *storage, ch chan int, source <-chan *sarama.ConsumerMessage) {
	defer s.close()

	for {
		select {
		case msg, ok := <-source:
			if !ok {
				return
			}
			s.handleMsg(msg)

		case cmd, ok := <-ch:
			if !ok || cmd == STG_CMD_EXIT {
				return
			}
			if cmd == STG_CMD_SWITCH_TRADINGDAY {
				day := utils.TradingDay(time.Now(), s.loc)
				if err := s.switchTradingDay(day); err != nil {
					logs.Error("stg switch tradingday error: %s", err.Error())
					return
				}
			}
		}
	}
}

////////////////////////////////////////////////////////////////////////////////////////////////////

// 打开每个交易所当天的库，已有的记录接着往后写
func (s *storage) open(exchanges []string, day string) error {
	s.tradingDay = day
	for _, exchange := range exchanges {
		filename := makeDBFileName(s.path, exchange, day)

		db, err := leveldb.OpenFile(filename, nil)
		if err != nil {
			logs.Error("open leveldb file error [%s]", err.Error())
			return fmt.Errorf("open stg [%s]: %w", filename, err)
		}
		s.dbm[exchange] = db
		curr, err := db.Get(countKey, nil)
		if err != nil {
			s.currm[exchange] = 0
			db.Put(countKey, utils.UintTobytes(0), nil)
		} else {
			s.currm[exchange] = utils.BytesToUint(curr)
			logs.Info("open leveldb [%s], has %d records", filename, s.currm[exchange])
		}
	}
	return nil
}

func (s *storage) close() {
	if err := s.flushBars(); err != nil {
		logs.Error("stg flush bars error: %s", err.Error())
	}
	for k, v := range s.dbm {
		v.Close()
		delete(s.dbm, k)
	}
	logs.Info("stg exit, tradingDay [%s]", s.tradingDay)
}

/*
 先把旧交易日的日线写到bardb，再换库
 day不比当前交易日新的不切换
*/
func (s *storage) switchTradingDay(day string) error {
	if day <= s.tradingDay {
		return nil
	}
	if err := s.flushBars(); err != nil {
		logs.Error("stg flush bars of [%s] error: %s", s.tradingDay, err.Error())
	}
	s.bars = make(map[string]*bardb.DailyBar)

	oldTradingDay := s.tradingDay
	keys := []string{}
	for k, v := range s.dbm {
		v.Close()
		keys = append(keys, k)
	}

	for _, key := range keys {
		filename := makeDBFileName(s.path, key, day)
		db, err := leveldb.OpenFile(filename, nil)
		if err != nil {
			delete(s.dbm, key)
			return fmt.Errorf("stg switch tradingday, open [%s]: %w", filename, err)
		}
		db.Put(countKey, utils.UintTobytes(0), nil)
		s.dbm[key] = db
		s.currm[key] = 0

		logs.Info("exchange [%s] has switch tradingDay [%s] -> [%s]", key, oldTradingDay, day)
	}
	s.tradingDay = day
	return nil
}

func (s *storage) handleMsg(msg *sarama.ConsumerMessage) bool {
	msgKey := string(msg.Key)
	if _, ok := s.dbm[msgKey]; !ok {
		logs.Error("stg not supported msg, key: %s", msgKey)
		return false
	}

	// tick先汇总，跨交易日的tick写到新库里
	if err := s.aggregate(msg.Value); err != nil {
		logs.Error("stg aggregate error: %s", err.Error())
		return false
	}

	db := s.dbm[msgKey]
	key := utils.UintTobytes(s.currm[msgKey])
	err := db.Put(key, msg.Value, nil)
	if err != nil {
		filename := makeDBFileName(s.path, msgKey, s.tradingDay)
		logs.Error("stg write [%s] error [%s]", filename, err.Error())
		return false
	}

	s.currm[msgKey] += 1
	db.Put(countKey, utils.UintTobytes(s.currm[msgKey]), nil)
	return true
}

func (s *storage) aggregate(value []byte) error {
	p := &protocol.FixPackage{}
	if err := p.ParseFromArray(value); err != nil {
		return err
	}
	if p.GetTid() != protocol.FID_QUOTE_TICK {
		return nil
	}

	pb := &protocol.PBFutureTick{}
	if err := proto.Unmarshal(p.GetPayload(), pb); err != nil {
		return err
	}
	ts := pb.GetSinfo().GetTimestamp()
	last := pb.GetLast()
	if ts == 0 || utils.IsZero64(last) {
		return nil
	}

	day := utils.TradingDay(utils.MSTime(ts, s.loc), nil)
	if day > s.tradingDay {
		if err := s.switchTradingDay(day); err != nil {
			return err
		}
	}

	sinfo := utils.MakeupSinfo(pb.GetSinfo().GetExchange(), pb.GetSinfo().GetSymbol(), pb.GetSinfo().GetContractType())
	bar, ok := s.bars[sinfo]
	if !ok {
		bar = &bardb.DailyBar{
			Exchange:     pb.GetSinfo().GetExchange(),
			Symbol:       pb.GetSinfo().GetSymbol(),
			ContractType: pb.GetSinfo().GetContractType(),
			Date:         s.tradingDay,
			Open:         pb.GetOpen(),
			High:         last,
			Low:          last,
		}
		if utils.IsZero64(bar.Open) {
			bar.Open = last
		}
		s.bars[sinfo] = bar
	}

	// tick里的最高最低是当天累计的，中途启动也能拿到全天的
	bar.High = maxPrice(bar.High, last, pb.GetHigh())
	bar.Low = minPrice(bar.Low, last, pb.GetLow())
	bar.Close = last
	return nil
}

func (s *storage) flushBars() error {
	if s.bardb == nil {
		return nil
	}
	for sinfo, bar := range s.bars {
		if err := s.bardb.StoreDailyBar(*bar); err != nil {
			return fmt.Errorf("store bar [%s]: %w", sinfo, err)
		}
		logs.Info("stg [%s] 日线 [%s] 开[%v] 高[%v] 低[%v] 收[%v]", sinfo, bar.Date, bar.Open, bar.High, bar.Low, bar.Close)
	}
	return nil
}

func maxPrice(v ...float64) float64 {
	m := v[0]
	for _, f := range v[1:] {
		if f > m {
			m = f
		}
	}
	return m
}

// 0表示没有数据
func minPrice(v ...float64) float64 {
	m := 0.0
	for _, f := range v {
		if utils.IsZero64(f) {
			continue
		}
		if utils.IsZero64(m) || f < m {
			m = f
		}
	}
	return m
}
