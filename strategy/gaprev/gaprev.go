package gaprev

import (
	"fmt"
	"time"

	"github.com/adan830/vnpy/krang"
	"github.com/adan830/vnpy/protocol"
	"github.com/adan830/vnpy/strategy"
	"github.com/astaxie/beego/logs"
)

/*
	跳空反转策略，一个合约一个实例
	1. 开盘价跳出昨日最高最低价区间，直接使用顺势策略
	2. 逆势: 最新价离开盘价3跳反向开仓，反向3跳止盈，涨跌超过止损阈值止损
	3. 逆势止盈2次后切换到顺势，逆势止损1次后不再开仓
	4. 顺势: 突破开盘价2跳顺势开仓，反向2跳止损，涨跌停止盈
	5. 顺势止盈1次或止损6次后不再开仓
	6. 收盘前清仓
*/

// 本策略名称
const THIS_STRATEGY_NAME = "gaprev"

// 策略状态名称
const (
	STATE_NAME_CONTRARIAN = "contrarian"
	STATE_NAME_TREND      = "trend"
)

type GapRevStrategy struct {
	name    string
	setting *Setting
	sinfo   krang.Sinfo
	loc     *time.Location
	fsm     *strategy.FSM

	flattenStart int // 一天中的秒数
	flattenEnd   int

	inited  bool
	trading bool

	pos         int     // 净持仓，来自keeper
	perHigh     float64 // 昨日最高价
	perLow      float64 // 昨日最低价
	gapped      bool    // 今日开盘跳空
	openCount   int     // 今日开仓次数
	winCount    int     // 止盈次数
	lossCount   int     // 止损次数
	phase       Phase
	closeReason CloseReason
	stopOpen    bool         // 停止开仓
	lastOrder   *krang.Order // 最新的未终结委托回报
	lastHandle  string       // 最近一次下单的句柄
}

// 监控用的快照
type Snapshot struct {
	Name         string  `json:"name"`
	ClassName    string  `json:"className"`
	VtSymbol     string  `json:"vtSymbol"`
	Inited       bool    `json:"inited"`
	Trading      bool    `json:"trading"`
	Pos          int     `json:"pos"`
	Regime       string  `json:"regime"`
	PerHigh      float64 `json:"perHigh"`
	PerLow       float64 `json:"perLow"`
	Gapped       bool    `json:"gapped"`
	OpenCount    int     `json:"openCount"`
	MaxOpenCount int     `json:"maxOpenCount"`
	WinCount     int     `json:"winCount"`
	LossCount    int     `json:"lossCount"`
	Phase        string  `json:"phase"`
	Opening      bool    `json:"opening"`
	Closing      bool    `json:"closing"`
	CloseReason  string  `json:"closeReason"`
	StopOpen     bool    `json:"stopOpen"`
	PendingOrder string  `json:"pendingOrder"`
	LastHandle   string  `json:"lastHandle"`
}

////////////////////////////////////////////////////////////////////////////////////////////////////

/*
 每个实例的状态都在这里新建，实例之间不共享
*/
func New(s *Setting) (*GapRevStrategy, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}

	t := &GapRevStrategy{
		name:         s.Name,
		setting:      s,
		sinfo:        s.Sinfo(),
		loc:          s.loc,
		flattenStart: s.flattenStart,
		flattenEnd:   s.flattenEnd,
	}

	t.fsm = strategy.NewFSM(s.Name)
	t.fsm.AddState(newContrarianState(t))
	t.fsm.AddState(newTrendState(t))
	t.fsm.AddHandler(newGapHandler(t))
	t.fsm.AddHandler(newOrderHandler(t))
	t.fsm.AddHandler(newPosHandler(t))
	t.reset()
	return t, nil
}

/*
	读取参数文件，每个合约注册一个策略
*/
func RegisStrategy(fn string) error {
	settings, err := LoadSettings(fn)
	if err != nil {
		return err
	}
	for _, s := range settings {
		st, err := New(s)
		if err != nil {
			return err
		}
		krang.RegisterStrategy(st.Name(), st)
	}
	return nil
}

func (t *GapRevStrategy) Name() string {
	return t.name
}

/*
	取昨日最高最低价，重置全部计数和标志
	取不到昨日数据不能交易
*/
func (t *GapRevStrategy) Init(ctx krang.Context) error {
	logs.Info("[%s]策略初始化", t.name)
	t.inited = false

	bar, err := ctx.GetBarDB().FetchDailyBar(t.sinfo.String(), ctx.TradingDay())
	if err != nil {
		logs.Error("[%s]获取昨日行情失败，err[%s]", t.name, err.Error())
		return fmt.Errorf("%s fetch previous daily bar: %w", t.sinfo.String(), err)
	}

	t.reset()
	t.perHigh = bar.High
	t.perLow = bar.Low
	t.inited = true
	logs.Info("[%s]交易日[%s]，昨日[%s]最高价[%v]，最低价[%v]", t.name, ctx.TradingDay(), bar.Date, bar.High, bar.Low)

	ctx.PutEvent(t.eventName(), t.Snapshot())
	return nil
}

func (t *GapRevStrategy) Start() {
	if !t.inited {
		logs.Error("[%s]策略没有初始化，不能启动", t.name)
		return
	}
	t.trading = true
	logs.Info("[%s]策略启动", t.name)
}

func (t *GapRevStrategy) Stop() {
	t.trading = false
	logs.Info("[%s]策略停止", t.name)
}

func (t *GapRevStrategy) AutoStart() bool {
	return t.setting.Trading
}

/*
  行情更新函数
  驱动状态机运转，最后检查收盘清仓
*/
func (t *GapRevStrategy) OnTick(ctx krang.Context, tick *krang.Tick) {
	if !t.trading || tick.Sinfo != t.sinfo {
		return
	}

	t.pos = ctx.GetKeeper().GetPos(t.sinfo.String())
	t.fsm.Call(ctx, tick)

	if t.inFlattenWindow(tick) {
		t.flatten(ctx, tick)
	}
	ctx.PutEvent(t.eventName(), t.Snapshot())
}

/*
  开仓全部成交只清掉回报，持仓由下一个tick确认
  平仓全部成交才计止盈止损次数
  其余回报留给下一个tick处理
*/
func (t *GapRevStrategy) OnOrder(ctx krang.Context, order *krang.Order) {
	t.pos = ctx.GetKeeper().GetPos(t.sinfo.String())

	switch {
	case order.Status == protocol.ORDERSTATUS_COMPLETE && order.Offset == protocol.OFFSET_OPEN:
		t.lastOrder = nil

	case order.Status == protocol.ORDERSTATUS_COMPLETE:
		t.lastOrder = nil
		t.closeFilled()

	default:
		t.lastOrder = order
	}

	logs.Info("[%s][订单回报]合约代码：%s，订单编号：%s，价格：%v，数量：%d，方向：%s，开平仓：%s，订单状态：%s，报单时间：%s",
		t.name, order.Symbol+order.ContractType, order.OrderId, order.Price, order.TotalVolume,
		order.Direction, order.Offset, order.Status, order.OrderTime)

	ctx.PutEvent(t.eventName(), t.Snapshot())
}

func (t *GapRevStrategy) Snapshot() Snapshot {
	ss := Snapshot{
		Name:         t.name,
		ClassName:    t.setting.ClassName,
		VtSymbol:     t.setting.VtSymbol,
		Inited:       t.inited,
		Trading:      t.trading,
		Pos:          t.pos,
		Regime:       t.fsm.GetState().Name(),
		PerHigh:      t.perHigh,
		PerLow:       t.perLow,
		Gapped:       t.gapped,
		OpenCount:    t.openCount,
		MaxOpenCount: t.setting.MaxOpenCount,
		WinCount:     t.winCount,
		LossCount:    t.lossCount,
		Phase:        t.phase.String(),
		Opening:      t.isOpening(),
		Closing:      t.isClosing(),
		CloseReason:  t.closeReason.String(),
		StopOpen:     t.stopOpen,
		LastHandle:   t.lastHandle,
	}
	if t.lastOrder != nil {
		ss.PendingOrder = t.lastOrder.OrderId
	}
	return ss
}

////////////////////////////////////////////////////////////////////////////////////////////////////

func (t *GapRevStrategy) reset() {
	t.pos = 0
	t.perHigh = 0
	t.perLow = 0
	t.gapped = false
	t.openCount = 0
	t.winCount = 0
	t.lossCount = 0
	t.phase = PHASE_FLAT
	t.closeReason = CLOSE_REASON_NONE
	t.stopOpen = false
	t.lastOrder = nil
	t.lastHandle = ""
	t.fsm.SetState(STATE_NAME_CONTRARIAN)
}

func (t *GapRevStrategy) eventName() string {
	return THIS_STRATEGY_NAME + "." + t.name
}

func (t *GapRevStrategy) isOpening() bool {
	return t.phase == PHASE_OPEN_PENDING
}

func (t *GapRevStrategy) isClosing() bool {
	return t.phase == PHASE_CLOSE_PENDING
}

func (t *GapRevStrategy) fire(ev phaseEvent) bool {
	next, ok := t.phase.next(ev)
	if !ok {
		logs.Error("[%s]委托阶段[%s]不能处理事件[%s]", t.name, t.phase, ev)
		return false
	}
	if t.phase == PHASE_CLOSE_PENDING && next != PHASE_CLOSE_PENDING {
		t.closeReason = CLOSE_REASON_NONE
	}
	t.phase = next
	return true
}

// 委托终结后按持仓修正阶段
func (t *GapRevStrategy) syncPhase() {
	switch {
	case t.phase == PHASE_FLAT && t.pos != 0:
		t.fire(evPosAppear)
	case t.phase == PHASE_HELD && t.pos == 0:
		t.fire(evPosGone)
	}
}

// 停止开仓，当天不再恢复
func (t *GapRevStrategy) haltOpening(reason string) {
	if t.stopOpen {
		return
	}
	t.stopOpen = true
	logs.Info("[%s][停止开仓]%s，止盈[%d]次，止损[%d]次", t.name, reason, t.winCount, t.lossCount)
}

func (t *GapRevStrategy) closeFilled() {
	if t.phase != PHASE_CLOSE_PENDING {
		logs.Error("[%s]收到平仓成交，但委托阶段是[%s]", t.name, t.phase)
		return
	}

	reason := t.closeReason
	t.fire(evCloseFilled)
	t.syncPhase()

	switch reason {
	case CLOSE_REASON_TAKE_PROFIT:
		t.winCount += 1
		logs.Info("[%s][止盈]成功", t.name)
	case CLOSE_REASON_STOP_LOSS:
		t.lossCount += 1
		logs.Info("[%s][止损]成功", t.name)
	default:
		logs.Info("[%s][清仓]成功", t.name)
	}
}

// 收盘清仓时间段(start, end]，精确到秒
func (t *GapRevStrategy) inFlattenWindow(tick *krang.Tick) bool {
	tm := tick.Time(t.loc)
	secs := tm.Hour()*3600 + tm.Minute()*60 + tm.Second()
	return secs > t.flattenStart && secs <= t.flattenEnd
}
