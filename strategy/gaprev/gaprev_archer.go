package gaprev

/*
开仓平仓操作
*/

import (
	"github.com/adan830/vnpy/krang"
	"github.com/adan830/vnpy/protocol"
	"github.com/astaxie/beego/logs"
	"github.com/shopspring/decimal"
)

var one = decimal.NewFromInt(1)

// 本tick用到的价格，都用decimal比较，避免开盘价加减跳数的浮点误差
type tickPrices struct {
	last       decimal.Decimal
	high       decimal.Decimal // 开盘价 + n跳
	low        decimal.Decimal // 开盘价 - n跳
	stopUp     decimal.Decimal // 开盘价 * (1 + 止损阈值)
	stopDown   decimal.Decimal // 开盘价 * (1 - 止损阈值)
	upperLimit decimal.Decimal
	lowerLimit decimal.Decimal
	hasUpper   bool
	hasLower   bool
}

func (t *GapRevStrategy) prices(tick *krang.Tick, ticks int) tickPrices {
	open := decimal.NewFromFloat(tick.Open)
	step := decimal.NewFromFloat(t.setting.TickPrice).Mul(decimal.NewFromInt(int64(ticks)))
	stop := decimal.NewFromFloat(t.setting.StopThreshold)

	return tickPrices{
		last:       decimal.NewFromFloat(tick.Last),
		high:       open.Add(step),
		low:        open.Sub(step),
		stopUp:     open.Mul(one.Add(stop)),
		stopDown:   open.Mul(one.Sub(stop)),
		upperLimit: decimal.NewFromFloat(tick.UpperLimit),
		lowerLimit: decimal.NewFromFloat(tick.LowerLimit),
		hasUpper:   tick.UpperLimit > 0,
		hasLower:   tick.LowerLimit > 0,
	}
}

// 今日最高价到过涨停或最低价到过跌停，没有涨跌停价的不算
func (t *GapRevStrategy) limitTouched(tick *krang.Tick) bool {
	if tick.UpperLimit > 0 && tick.High >= tick.UpperLimit {
		return true
	}
	if tick.LowerLimit > 0 && tick.Low <= tick.LowerLimit {
		return true
	}
	return false
}

/*
 开多用卖一价买，开空用买一价卖
*/
func (t *GapRevStrategy) openPosition(ctx krang.Context, tick *krang.Tick, d protocol.Direction, reason string) {
	if t.phase != PHASE_FLAT || !t.phase.can(evSendOpen) {
		return
	}

	trader := ctx.GetTrader()
	vol := t.setting.TradeVolume
	var handle string
	var price float64
	var act string
	if d == protocol.DIRECTION_LONG {
		price = tick.Ask
		handle = trader.Buy(t.name, t.sinfo, price, vol)
		act = "开多仓"
	} else {
		price = tick.Bid
		handle = trader.Short(t.name, t.sinfo, price, vol)
		act = "开空仓"
	}
	if handle == "" {
		logs.Error("[%s][%s]下单失败，合约代码：%s", t.name, act, t.setting.VtSymbol)
		return
	}

	t.fire(evSendOpen)
	t.lastHandle = handle
	logs.Info("[%s][%s]合约代码：%s，开仓价格：%v，数量：%d，原因：%s，最新价：%v",
		t.name, act, t.setting.VtSymbol, price, vol, reason, tick.Last)
}

/*
 平多用买一价卖，平空用卖一价买，数量是全部持仓
*/
func (t *GapRevStrategy) closePosition(ctx krang.Context, tick *krang.Tick, reason CloseReason, act string) bool {
	if t.pos == 0 || !t.phase.can(evSendClose) {
		return false
	}

	trader := ctx.GetTrader()
	var handle string
	var price float64
	vol := t.pos
	if t.pos > 0 {
		price = tick.Bid
		handle = trader.Sell(t.name, t.sinfo, price, vol)
	} else {
		vol = -t.pos
		price = tick.Ask
		handle = trader.Cover(t.name, t.sinfo, price, vol)
	}
	if handle == "" {
		logs.Error("[%s][%s]下单失败，合约代码：%s", t.name, act, t.setting.VtSymbol)
		return false
	}

	t.fire(evSendClose)
	t.closeReason = reason
	t.lastHandle = handle
	logs.Info("[%s][%s]合约代码：%s，平仓价格：%v，数量：%d，最新价：%v", t.name, act, t.setting.VtSymbol, price, vol, tick.Last)
	return true
}

/*
 收盘清仓，不管什么状态
 已经在平仓或者空仓时什么都不做
*/
func (t *GapRevStrategy) flatten(ctx krang.Context, tick *krang.Tick) {
	if t.phase == PHASE_OPEN_PENDING && t.pos != 0 {
		t.settleOpen()
	}
	if t.pos == 0 || t.isClosing() {
		return
	}

	act := "清空仓"
	if t.pos > 0 {
		act = "清多仓"
	}
	if t.closePosition(ctx, tick, CLOSE_REASON_NONE, act) {
		t.haltOpening("收盘清仓")
	}
}
