package krang

import (
	"time"

	"github.com/adan830/vnpy/bardb"
	"github.com/adan830/vnpy/protocol"
	"github.com/adan830/vnpy/utils"
)

/*
  Context --- 是krang模块和各个strategy交互的接口
  开发策略只需要关注Context接口就好
  Tick, Order在这里重新定义也是为了不让pb这一层暴露到策略
*/
////////////////////////////////////////////////////////////////////////////////////////////////////

// 合约
type Sinfo struct {
	Exchange     string
	Symbol       string
	ContractType string
}

func (s Sinfo) String() string {
	return utils.MakeupSinfo(s.Exchange, s.Symbol, s.ContractType)
}

// 最新行情
type Tick struct {
	Sinfo
	Timestamp uint64 // 毫秒

	Open       float64 // 今日开盘价
	High       float64 // 今日最高价
	Low        float64 // 今日最低价
	Last       float64 // 最新价
	Bid        float64 // 买一价
	Ask        float64 // 卖一价
	BidVol     float64 // 买一量
	AskVol     float64 // 卖一量
	UpperLimit float64 // 涨停价
	LowerLimit float64 // 跌停价
	Vol        float64 // 今日成交量
}

func (t *Tick) Time(loc *time.Location) time.Time {
	return utils.MSTime(t.Timestamp, loc)
}

// 委托，下单时由trader生成，之后由网关回报更新
type Order struct {
	Sinfo
	Stname       string // 下单的策略名称
	OrderId      string // trader返回的句柄
	Price        float64
	TotalVolume  int32
	TradedVolume int32
	Direction    protocol.Direction
	Offset       protocol.Offset
	Status       protocol.OrderStatus
	OrderTime    string
	ErrorMsg     string
}

////////////////////////////////////////////////////////////////////////////////////////////////////

type Context interface {
	GetTrader() Trader
	GetKeeper() Keeper
	GetBarDB() bardb.BarDB

	// 当前交易日 YYYY-MM-DD
	TradingDay() string

	// 把策略的状态推送给监控，不等待
	PutEvent(name string, v interface{})
}

// 监控端
type EventSink interface {
	Publish(name string, v interface{})
}

type context struct {
}

func NewContext() Context {
	return &context{}
}

func (c *context) GetTrader() Trader {
	return kr.trader
}

func (c *context) GetKeeper() Keeper {
	return kr.keeper
}

/*
 换过交易日以后，日线至少要是切换前那天的，更早的算还没写进来
*/
func (c *context) GetBarDB() bardb.BarDB {
	if kr.prevDay == "" {
		return kr.bardb
	}
	return bardb.NotBefore(kr.bardb, kr.prevDay)
}

func (c *context) TradingDay() string {
	return kr.tradingDay
}

func (c *context) PutEvent(name string, v interface{}) {
	if kr.sink == nil {
		return
	}
	kr.sink.Publish(name, v)
}
