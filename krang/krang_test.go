package krang

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/adan830/vnpy/bardb"
	"github.com/adan830/vnpy/protocol"
	"github.com/golang/protobuf/proto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cst = time.FixedZone("CST", 8*3600)

var rb = Sinfo{Exchange: "shfe", Symbol: "rb", ContractType: "1905"}

type testStrategy struct {
	name    string
	initErr error
	auto    bool
	trading bool
	days    []string
	ticks   []*Tick
	orders  []*Order
	pos     []int // OnOrder时看到的持仓
}

func (t *testStrategy) Name() string { return t.name }

func (t *testStrategy) Init(ctx Context) error {
	t.days = append(t.days, ctx.TradingDay())
	return t.initErr
}

func (t *testStrategy) Start()          { t.trading = true }
func (t *testStrategy) Stop()           { t.trading = false }
func (t *testStrategy) AutoStart() bool { return t.auto }

func (t *testStrategy) OnTick(ctx Context, tick *Tick) {
	t.ticks = append(t.ticks, tick)
}

func (t *testStrategy) OnOrder(ctx Context, order *Order) {
	t.orders = append(t.orders, order)
	t.pos = append(t.pos, ctx.GetKeeper().GetPos(order.Sinfo.String()))
}

func setupKrang(t *testing.T, sts ...Strategy) {
	stmgr = newStrategyMgr()
	kr = newKrang()
	kr.loc = cst
	kr.tradingDay = "2019-03-04"

	db, err := bardb.Open(filepath.Join(t.TempDir(), "bardb"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	kr.bardb = db
	kr.trader = newTrader(kr.keeper, true)
	kr.ctx = NewContext()
	setupHandlers()

	for _, st := range sts {
		RegisterStrategy(st.Name(), st)
	}
	require.NoError(t, bootStrategies())
}

func tickMsg(t *testing.T, tm time.Time, last float64) []byte {
	pb := &protocol.PBFutureTick{
		Sinfo: &protocol.PBQuoteSymbol{
			Exchange:     proto.String(rb.Exchange),
			Symbol:       proto.String(rb.Symbol),
			ContractType: proto.String(rb.ContractType),
			Timestamp:    proto.Uint64(uint64(tm.UnixNano() / int64(time.Millisecond))),
		},
		Open:       proto.Float64(3000),
		High:       proto.Float64(3020),
		Low:        proto.Float64(2990),
		Last:       proto.Float64(last),
		Bid:        proto.Float64(last - 5),
		Ask:        proto.Float64(last),
		UpperLimit: proto.Float64(3210),
		LowerLimit: proto.Float64(2790),
	}
	bin, err := protocol.PackPB(protocol.FID_QUOTE_TICK, 1, pb)
	require.NoError(t, err)
	return bin
}

func rspMsg(t *testing.T, handle string, d protocol.Direction, o protocol.Offset, traded int32, status protocol.OrderStatus) []byte {
	pb := &protocol.PBRspOrder{
		OrderId:      proto.String(handle),
		Exchange:     proto.String(rb.Exchange),
		Symbol:       proto.String(rb.Symbol),
		ContractType: proto.String(rb.ContractType),
		Price:        proto.Float64(3015),
		TotalVolume:  proto.Int32(2),
		TradedVolume: proto.Int32(traded),
		Direction:    proto.Int32(int32(d)),
		Offset:       proto.Int32(int32(o)),
		Status:       proto.Int32(int32(status)),
		OrderTime:    proto.String("09:01:02"),
	}
	bin, err := protocol.PackPB(protocol.FID_RspOrder, 1, pb)
	require.NoError(t, err)
	return bin
}

func TestTickDispatch(t *testing.T) {
	st := &testStrategy{name: "st1", auto: true}
	setupKrang(t, st)
	assert.True(t, st.trading)

	tm := time.Date(2019, 3, 4, 9, 0, 1, 0, cst)
	handlemsg([]byte("shfe"), tickMsg(t, tm, 3015))

	require.Len(t, st.ticks, 1)
	tick := st.ticks[0]
	assert.Equal(t, "shfe_rb_1905", tick.Sinfo.String())
	assert.Equal(t, 3000.0, tick.Open)
	assert.Equal(t, 3015.0, tick.Last)
	assert.Equal(t, 3010.0, tick.Bid)
	assert.Equal(t, 3210.0, tick.UpperLimit)
	assert.True(t, tm.Equal(tick.Time(cst)))
	assert.Nil(t, kr.tick)

	// 解不开的包丢弃
	assert.False(t, handlemsg(nil, []byte{1, 2}))
	assert.Len(t, st.ticks, 1)
}

func TestOrderUpdatesPosBeforeOnOrder(t *testing.T) {
	st := &testStrategy{name: "st1"}
	setupKrang(t, st)

	h := kr.trader.Buy("st1", rb, 3015, 2)
	require.NotEmpty(t, h)
	require.NotNil(t, kr.keeper.GetOrderById(h))

	handlemsg([]byte("shfe"), rspMsg(t, h, protocol.DIRECTION_LONG, protocol.OFFSET_OPEN, 0, protocol.ORDERSTATUS_UNFILLED))
	handlemsg([]byte("shfe"), rspMsg(t, h, protocol.DIRECTION_LONG, protocol.OFFSET_OPEN, 1, protocol.ORDERSTATUS_PARTDONE))
	handlemsg([]byte("shfe"), rspMsg(t, h, protocol.DIRECTION_LONG, protocol.OFFSET_OPEN, 2, protocol.ORDERSTATUS_COMPLETE))

	assert.Equal(t, []int{0, 1, 2}, st.pos)
	require.Len(t, st.orders, 3)
	assert.Equal(t, protocol.ORDERSTATUS_COMPLETE, st.orders[2].Status)
	assert.Equal(t, protocol.OFFSET_OPEN, st.orders[2].Offset)
	assert.Equal(t, "st1", st.orders[2].Stname)
	assert.Nil(t, kr.keeper.GetOrderById(h))
	assert.Empty(t, kr.keeper.GetFeedBack().FindByStrategy("st1"))

	h2 := kr.trader.Sell("st1", rb, 3030, 2)
	handlemsg([]byte("shfe"), rspMsg(t, h2, protocol.DIRECTION_SHORT, protocol.OFFSET_CLOSE, 2, protocol.ORDERSTATUS_COMPLETE))
	assert.Equal(t, 0, kr.keeper.GetPos(rb.String()))
	assert.Equal(t, []int{0, 1, 2, 0}, st.pos)
}

func TestShortPosition(t *testing.T) {
	st := &testStrategy{name: "st1"}
	setupKrang(t, st)

	h := kr.trader.Short("st1", rb, 3010, 2)
	handlemsg([]byte("shfe"), rspMsg(t, h, protocol.DIRECTION_SHORT, protocol.OFFSET_OPEN, 2, protocol.ORDERSTATUS_COMPLETE))
	assert.Equal(t, -2, kr.keeper.GetPos(rb.String()))

	h = kr.trader.Cover("st1", rb, 2990, 2)
	handlemsg([]byte("shfe"), rspMsg(t, h, protocol.DIRECTION_LONG, protocol.OFFSET_CLOSE, 1, protocol.ORDERSTATUS_CANCELLED))
	assert.Equal(t, -1, kr.keeper.GetPos(rb.String()))
	assert.Equal(t, protocol.ORDERSTATUS_CANCELLED, st.orders[1].Status)
}

func TestUnknownOrderIgnored(t *testing.T) {
	st := &testStrategy{name: "st1"}
	setupKrang(t, st)

	handlemsg([]byte("shfe"), rspMsg(t, "not-ours", protocol.DIRECTION_LONG, protocol.OFFSET_OPEN, 2, protocol.ORDERSTATUS_COMPLETE))
	assert.Empty(t, st.orders)
	assert.Equal(t, 0, kr.keeper.GetPos(rb.String()))
}

func TestRejectedOrderIsUnknown(t *testing.T) {
	st := &testStrategy{name: "st1"}
	setupKrang(t, st)

	h := kr.trader.Buy("st1", rb, 3015, 1)
	handlemsg([]byte("shfe"), rspMsg(t, h, protocol.DIRECTION_LONG, protocol.OFFSET_OPEN, 0, protocol.OrderStatus(5)))
	require.Len(t, st.orders, 1)
	assert.Equal(t, protocol.ORDERSTATUS_UNKNOWN, st.orders[0].Status)
	assert.NotNil(t, kr.keeper.GetOrderById(h))
}

func TestSwitchTradingDay(t *testing.T) {
	st := &testStrategy{name: "st1", auto: true}
	setupKrang(t, st)

	handlemsg([]byte("shfe"), tickMsg(t, time.Date(2019, 3, 4, 14, 0, 0, 0, cst), 3000))
	assert.Equal(t, []string{"2019-03-04"}, st.days)

	// UTC还是3月4日，交易所时区已经是3月5日
	handlemsg([]byte("shfe"), tickMsg(t, time.Date(2019, 3, 4, 17, 30, 0, 0, time.UTC), 3000))
	assert.Equal(t, []string{"2019-03-04", "2019-03-05"}, st.days)
	assert.Equal(t, "2019-03-05", kr.ctx.TradingDay())
	assert.True(t, st.trading)
	assert.Len(t, st.ticks, 2)
}

func TestSwitchTradingDayInitFail(t *testing.T) {
	st := &testStrategy{name: "st1", auto: true}
	setupKrang(t, st)

	st.initErr = errors.New("no bar")
	handlemsg([]byte("shfe"), tickMsg(t, time.Date(2019, 3, 5, 9, 0, 0, 0, cst), 3000))
	assert.False(t, st.trading)
}

// 日线库里只有before之前最近的一根，不管日期新旧
type fakeBarDB struct {
	bars []bardb.DailyBar
}

func (f *fakeBarDB) FetchDailyBar(sinfo string, before string) (bardb.DailyBar, error) {
	for i := len(f.bars) - 1; i >= 0; i-- {
		if f.bars[i].Sinfo() == sinfo && f.bars[i].Date < before {
			return f.bars[i], nil
		}
	}
	return bardb.DailyBar{}, bardb.ErrNoBar
}

func (f *fakeBarDB) StoreDailyBar(bar bardb.DailyBar) error {
	f.bars = append(f.bars, bar)
	return nil
}

func (f *fakeBarDB) Close() error { return nil }

func rbBar(date string, high, low float64) bardb.DailyBar {
	return bardb.DailyBar{Exchange: "shfe", Symbol: "rb", ContractType: "1905", Date: date, High: high, Low: low}
}

// 初始化时取前一交易日日线的策略
type barStrategy struct {
	testStrategy
	bars []bardb.DailyBar
}

func (t *barStrategy) Init(ctx Context) error {
	t.days = append(t.days, ctx.TradingDay())
	bar, err := ctx.GetBarDB().FetchDailyBar(rb.String(), ctx.TradingDay())
	if err != nil {
		return err
	}
	t.bars = append(t.bars, bar)
	return nil
}

func setupStaleSwitch(t *testing.T) (*barStrategy, *fakeBarDB) {
	st := &barStrategy{testStrategy: testStrategy{name: "st1", auto: true}}
	setupKrang(t)
	db := &fakeBarDB{bars: []bardb.DailyBar{rbBar("2019-03-01", 3050, 2950)}}
	kr.bardb = db
	RegisterStrategy(st.Name(), st)
	require.NoError(t, bootStrategies())

	// 启动时不知道前一交易日是哪天，3月1日的就是最近的
	require.Len(t, st.bars, 1)
	assert.Equal(t, "2019-03-01", st.bars[0].Date)
	assert.True(t, st.trading)

	// 3月5日第一个tick先到krang，stg还没写3月4日的日线
	handlemsg([]byte("shfe"), tickMsg(t, time.Date(2019, 3, 5, 9, 0, 0, 0, cst), 3000))
	assert.Equal(t, []string{"2019-03-04", "2019-03-05"}, st.days)
	assert.Len(t, st.bars, 1)
	assert.False(t, st.trading)
	assert.Contains(t, kr.pending, "st1")
	return st, db
}

func TestSwitchTradingDayStaleBar(t *testing.T) {
	st, db := setupStaleSwitch(t)

	tm := time.Date(2019, 3, 5, 9, 0, 1, 0, cst)
	for i := 0; i < REINIT_INTERVAL-2; i++ {
		handlemsg([]byte("shfe"), tickMsg(t, tm.Add(time.Duration(i)*time.Second), 3000))
	}
	assert.Len(t, st.days, 2)
	assert.False(t, st.trading)

	require.NoError(t, db.StoreDailyBar(rbBar("2019-03-04", 3080, 2990)))
	handlemsg([]byte("shfe"), tickMsg(t, tm.Add(time.Minute), 3000))

	assert.Len(t, st.days, 3)
	require.Len(t, st.bars, 2)
	assert.Equal(t, "2019-03-04", st.bars[1].Date)
	assert.Equal(t, 3080.0, st.bars[1].High)
	assert.True(t, st.trading)
	assert.Empty(t, kr.pending)
}

func TestSwitchTradingDayStaleBarGiveUp(t *testing.T) {
	st, _ := setupStaleSwitch(t)

	tm := time.Date(2019, 3, 5, 9, 0, 1, 0, cst)
	for i := 0; i < REINIT_INTERVAL*MAX_REINIT_TIMES+REINIT_INTERVAL; i++ {
		handlemsg([]byte("shfe"), tickMsg(t, tm.Add(time.Duration(i)*time.Second), 3000))
	}
	assert.Len(t, st.days, 2+MAX_REINIT_TIMES)
	assert.Len(t, st.bars, 1)
	assert.False(t, st.trading)
	assert.Empty(t, kr.pending)
}

func TestBootStrategiesFail(t *testing.T) {
	st := &testStrategy{name: "st1", initErr: bardb.ErrNoBar, auto: true}
	stmgr = newStrategyMgr()
	kr = newKrang()
	kr.ctx = NewContext()
	RegisterStrategy(st.Name(), st)

	err := bootStrategies()
	assert.ErrorIs(t, err, bardb.ErrNoBar)
	assert.False(t, st.trading)
}

func TestRegisterTwicePanics(t *testing.T) {
	stmgr = newStrategyMgr()
	RegisterStrategy("st1", &testStrategy{name: "st1"})
	assert.Panics(t, func() { RegisterStrategy("st1", &testStrategy{name: "st1"}) })
	assert.Panics(t, func() { RegisterStrategy("", &testStrategy{}) })
}

func TestCheckFeedBack(t *testing.T) {
	st := &testStrategy{name: "st1"}
	setupKrang(t, st)

	h := kr.trader.Buy("st1", rb, 3015, 1)
	tm := time.Date(2019, 3, 4, 9, 0, 0, 0, cst)
	for i := 0; i < FB_MAX_CHECKTIMES; i++ {
		handlemsg([]byte("shfe"), tickMsg(t, tm.Add(time.Duration(i)*time.Second), 3015))
	}

	// 下单请求丢失，换成撤单请求等回报
	datas := kr.keeper.GetFeedBack().FindByStrategy("st1")
	require.Len(t, datas, 1)
	assert.Equal(t, h, datas[0].Handle)
	assert.Equal(t, uint32(protocol.FID_ReqCancelOrder), datas[0].Tid)
	assert.Equal(t, 0, datas[0].CheckTimes)
}
