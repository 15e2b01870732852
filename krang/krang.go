/*
 krang --- 忍者神龟里的大脑人朗格，负责下单和决策

 1. krang是一个单协程程序，所有策略都由它来执行，行情和委托回报串行送给策略
 2. 委托回报驱动keeper里的持仓，报价行情驱动策略
*/

package krang

import (
	"errors"
	"fmt"
	"time"

	"github.com/Shopify/sarama"
	"github.com/adan830/vnpy/bardb"
	"github.com/adan830/vnpy/config"
	"github.com/adan830/vnpy/kfc"
	"github.com/adan830/vnpy/protocol"
	"github.com/adan830/vnpy/replay"
	"github.com/adan830/vnpy/utils"
	"github.com/astaxie/beego/logs"
)

const (
	REINIT_INTERVAL  = 10 // 等日线的策略每隔这么多个tick重新初始化一次
	MAX_REINIT_TIMES = 30
)

type Handler interface {
	HandleMessage(protocol.Package, string) bool
}

type krang struct {
	trader     Trader
	keeper     *keeper
	handlers   []Handler
	bardb      bardb.BarDB
	stmgr      *StrategyManager
	ctx        Context
	sink       EventSink
	loc        *time.Location
	tradingDay string
	prevDay    string         // 切换前的交易日，启动当天为空
	pending    map[string]int // 等前一交易日日线的策略 -> 切换后的tick数
	tick       *Tick          // quoteHandler解好的当前tick
	exitCh     chan int
	doneCh     chan struct{}
	replay     *replay.Replay
}

var kr *krang

////////////////////////////////////////////////////////

/*
 StartKrang --- 初始化工作和启动krang协程
 策略初始化失败时直接返回错误，不进入交易
*/
func StartKrang(exitCh chan int, bReplay bool) error {
	kr.exitCh = exitCh
	kr.loc = utils.ExchangeLocation()
	kr.tradingDay = firstTradingDay(bReplay)

	if config.T.BarDBPath == "" {
		return fmt.Errorf("bardb path not configured")
	}
	kr.bardb = bardb.OpenShared(config.T.BarDBPath)
	kr.trader = newTrader(kr.keeper, bReplay)

	setupHandlers()

	// 获得注册的策略
	kr.stmgr = GetStrategyMgr()
	kr.ctx = NewContext()

	if err := bootStrategies(); err != nil {
		return err
	}

	var pumpCh <-chan *sarama.ConsumerMessage
	if bReplay {
		pumpCh = kr.replay.ReadMessages()
	} else {
		pumpCh = kfc.ReadMessages()
	}
	go krangLoop(pumpCh)
	return nil
}

/*
 如果需要回放，需要设置回放模式
*/
func SetKrangReplay(r *replay.Replay) {
	if r == nil {
		panic("SetKrangReplay param vaild")
	}
	kr.replay = r
}

/*
 监控端，可以不设置
*/
func SetEventSink(sink EventSink) {
	kr.sink = sink
}

// krang协程退出后关闭
func Done() <-chan struct{} {
	return kr.doneCh
}

////////////////////////////////////////////////////////

// 消息处理handlers,处理顺序为：trade -> quote -> strategy
func setupHandlers() {
	kr.handlers = append(kr.handlers[:0], NewTradeHandler(), NewQuoteHandler(), NewStrategyHandler())
}

func krangLoop(pumpCh <-chan *sarama.ConsumerMessage) {
	defer krangExit()

	for {
		select {
		case msg, ok := <-pumpCh:
			if !ok {
				logs.Info("krang消息源已关闭")
				return
			}
			handlemsg(msg.Key, msg.Value)

		case <-kr.exitCh:
			return
		}
	}
}

func handlemsg(key []byte, value []byte) bool {
	p := &protocol.FixPackage{}
	if err := p.ParseFromArray(value); err != nil {
		logs.Error("krang consumer msg parse fail, err[%s]", err.Error())
		return false
	}

	k := string(key)
	for _, h := range kr.handlers {
		if h.HandleMessage(p, k) {
			return true
		}
	}
	return true
}

func krangExit() {
	kr.stmgr.Each(func(name string, st Strategy) {
		st.Stop()
	})
	if kr.bardb != nil {
		kr.bardb.Close()
	}
	close(kr.doneCh)
	logs.Info("krang loop exit...")
}

////////////////////////////////////////////////////////

func firstTradingDay(bReplay bool) string {
	if bReplay && len(config.T.Replay.Days) > 0 {
		return config.T.Replay.Days[0]
	}
	return utils.TradingDay(time.Now(), kr.loc)
}

/*
 初始化全部策略，按配置自动开始交易
 任何一个策略初始化失败都返回错误
*/
func bootStrategies() error {
	var err error
	kr.stmgr.Each(func(name string, st Strategy) {
		if err != nil {
			return
		}
		if e := bootStrategy(name, st); e != nil {
			err = fmt.Errorf("strategy [%s] init: %w", name, e)
		}
	})
	return err
}

func bootStrategy(name string, st Strategy) error {
	if err := st.Init(kr.ctx); err != nil {
		return err
	}
	logs.Info("策略[%s]初始化完成，交易日[%s]", name, kr.tradingDay)

	if as, ok := st.(AutoStarter); ok && as.AutoStart() {
		st.Start()
		logs.Info("策略[%s]开始交易", name)
	}
	return nil
}

/*
 行情进入新的交易日，策略重新初始化
 初始化失败的策略停止交易，不影响其他策略
*/
func switchTradingDay(day string) {
	logs.Info("krang交易日切换 [%s] -> [%s]", kr.tradingDay, day)
	kr.prevDay = kr.tradingDay
	kr.tradingDay = day
	kr.pending = make(map[string]int)

	kr.stmgr.Each(func(name string, st Strategy) {
		st.Stop()
		err := bootStrategy(name, st)
		if err == nil {
			return
		}
		if errors.Is(err, bardb.ErrStaleBar) {
			/* stg还没把前一天的日线写进来，停着等 */
			logs.Info("策略[%s]等待[%s]的日线，err[%s]", name, kr.prevDay, err.Error())
			kr.pending[name] = 0
			return
		}
		logs.Error("策略[%s]在交易日[%s]初始化失败，停止交易，err[%s]", name, day, err.Error())
	})
}

/*
 每REINIT_INTERVAL个tick重试一次等日线的策略，
 超过MAX_REINIT_TIMES次还拿不到就放弃，策略当天不交易
*/
func retryPendingInit() {
	if len(kr.pending) == 0 {
		return
	}
	kr.stmgr.Each(func(name string, st Strategy) {
		n, ok := kr.pending[name]
		if !ok {
			return
		}
		n += 1
		kr.pending[name] = n
		if n%REINIT_INTERVAL != 0 {
			return
		}

		err := bootStrategy(name, st)
		if err == nil {
			delete(kr.pending, name)
			return
		}
		if !errors.Is(err, bardb.ErrStaleBar) || n >= REINIT_INTERVAL*MAX_REINIT_TIMES {
			logs.Error("策略[%s]在交易日[%s]初始化失败，停止交易，err[%s]", name, kr.tradingDay, err.Error())
			delete(kr.pending, name)
		}
	})
}

func newKrang() *krang {
	return &krang{
		keeper:   NewKeeper(),
		handlers: make([]Handler, 0),
		stmgr:    GetStrategyMgr(),
		pending:  make(map[string]int),
		loc:      time.Local,
		doneCh:   make(chan struct{}),
		replay:   nil,
	}
}

func init() {
	kr = newKrang()
}
