package gaprev

import (
	"github.com/adan830/vnpy/krang"
	"github.com/adan830/vnpy/protocol"
	"github.com/astaxie/beego/logs"
)

/*
 跳空检查
 开盘价在昨日最高最低价之外，当天都按跳空处理
*/
type gapHandler struct {
	s *GapRevStrategy
}

func newGapHandler(s *GapRevStrategy) *gapHandler {
	return &gapHandler{s: s}
}

func (h *gapHandler) Name() string {
	return "gap"
}

func (h *gapHandler) OnTick(ctx krang.Context, tick *krang.Tick) {
	s := h.s
	if s.gapped {
		return
	}
	if tick.Open > s.perHigh || tick.Open < s.perLow {
		s.gapped = true
		logs.Info("[%s][跳空]开盘价[%v]，昨日最高[%v]，最低[%v]", s.name, tick.Open, s.perHigh, s.perLow)
	}
}

////////////////////////////////////////////////////////////////////////////////////////////////////

/*
 处理上一个tick之后收到的未终结委托
 未成交和未知状态的撤单，已撤销的恢复委托阶段
*/
type orderHandler struct {
	s *GapRevStrategy
}

func newOrderHandler(s *GapRevStrategy) *orderHandler {
	return &orderHandler{s: s}
}

func (h *orderHandler) Name() string {
	return "order"
}

func (h *orderHandler) OnTick(ctx krang.Context, tick *krang.Tick) {
	s := h.s
	o := s.lastOrder
	if o == nil {
		return
	}

	switch o.Status {
	case protocol.ORDERSTATUS_UNFILLED, protocol.ORDERSTATUS_UNKNOWN:
		ctx.GetTrader().CancelOrder(s.name, o.OrderId)
		s.lastOrder = nil

	case protocol.ORDERSTATUS_CANCELLED:
		s.lastOrder = nil
		switch {
		case o.Offset == protocol.OFFSET_OPEN && s.phase == PHASE_OPEN_PENDING:
		case o.Offset == protocol.OFFSET_CLOSE && s.phase == PHASE_CLOSE_PENDING:
		default:
			logs.Info("[%s]委托[%s]已撤销，委托阶段[%s]不变", s.name, o.OrderId, s.phase)
			return
		}
		s.fire(evCancelled)
		s.syncPhase()
		logs.Info("[%s][撤单]成功，委托[%s]，%s", s.name, o.OrderId, o.Offset)
	}
}

////////////////////////////////////////////////////////////////////////////////////////////////////

/*
 根据持仓确认开仓是否完成
*/
type posHandler struct {
	s *GapRevStrategy
}

func newPosHandler(s *GapRevStrategy) *posHandler {
	return &posHandler{s: s}
}

func (h *posHandler) Name() string {
	return "pos"
}

func (h *posHandler) OnTick(ctx krang.Context, tick *krang.Tick) {
	s := h.s
	if s.phase == PHASE_OPEN_PENDING && s.pos != 0 {
		s.settleOpen()
		return
	}
	s.syncPhase()
}

func (t *GapRevStrategy) settleOpen() {
	if !t.fire(evOpenSettled) {
		return
	}
	t.openCount += 1
	if t.pos > 0 {
		logs.Info("[%s][开多仓]成功，今日开仓[%d]次", t.name, t.openCount)
	} else {
		logs.Info("[%s][开空仓]成功，今日开仓[%d]次", t.name, t.openCount)
	}
}
