package krang

import (
	"github.com/adan830/vnpy/protocol"
	"github.com/astaxie/beego/logs"
)

type strategyHandler struct {
}

func NewStrategyHandler() Handler {
	return &strategyHandler{}
}

/*
  quoteHandler解好的tick交给每个策略
*/
func (t *strategyHandler) HandleMessage(p protocol.Package, key string) bool {
	if p.GetTid() != protocol.FID_QUOTE_TICK || kr.tick == nil {
		return false
	}
	tick := kr.tick
	kr.tick = nil

	retryPendingInit()
	kr.stmgr.Each(func(name string, st Strategy) {
		checkFeedBack(name)
		st.OnTick(kr.ctx, tick)
	})
	return true
}

/*
  检查策略之前的下单和撤单是否有回报
  长时间没有回报的请求认为丢失，撤掉该委托
*/
func checkFeedBack(stname string) {
	fb := kr.keeper.GetFeedBack()
	datas := fb.FindByStrategy(stname)
	for _, v := range datas {
		v.CheckTimes += 1
		if v.CheckTimes < FB_MAX_CHECKTIMES {
			continue
		}

		logs.Info("[%s]策略回馈中没有执行完成的命令：tid[%d], handle[%s], [%s]", stname, v.Tid, v.Handle, v.Data)
		fb.Remove(v.Handle)
		if v.Tid == protocol.FID_ReqSetOrder {
			kr.trader.CancelOrder(stname, v.Handle)
		}
	}
}
