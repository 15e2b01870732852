package gaprev

import (
	"github.com/adan830/vnpy/krang"
	"github.com/adan830/vnpy/protocol"
	"github.com/astaxie/beego/logs"
)

/*
 逆势状态
 离开盘价amplitude跳反向开仓，回到另一侧止盈，按比例止损
*/
type contrarianState struct {
	s *GapRevStrategy
}

func newContrarianState(s *GapRevStrategy) *contrarianState {
	return &contrarianState{s: s}
}

func (t *contrarianState) Name() string {
	return STATE_NAME_CONTRARIAN
}

func (t *contrarianState) Enter(ctx krang.Context) {
}

func (t *contrarianState) Transit(ctx krang.Context, tick *krang.Tick) string {
	s := t.s
	if s.gapped {
		return STATE_NAME_TREND
	}
	if s.winCount >= 2 {
		s.winCount = 0
		logs.Info("[%s][切换到顺势策略]成功", s.name)
		return STATE_NAME_TREND
	}
	if s.lossCount >= 1 {
		s.haltOpening("逆势止损")
	}
	return STATE_NAME_CONTRARIAN
}

func (t *contrarianState) Decide(ctx krang.Context, tick *krang.Tick) {
	s := t.s
	p := s.prices(tick, s.setting.Amplitude)

	// 止损优先于止盈
	switch {
	case s.pos < 0 && !s.isClosing():
		if p.last.GreaterThanOrEqual(p.stopUp) {
			s.closePosition(ctx, tick, CLOSE_REASON_STOP_LOSS, "空仓止损")
		} else if p.last.LessThanOrEqual(p.low) {
			s.closePosition(ctx, tick, CLOSE_REASON_TAKE_PROFIT, "空仓止盈")
		}

	case s.pos > 0 && !s.isClosing():
		if p.last.LessThanOrEqual(p.stopDown) {
			s.closePosition(ctx, tick, CLOSE_REASON_STOP_LOSS, "多仓止损")
		} else if p.last.GreaterThanOrEqual(p.high) {
			s.closePosition(ctx, tick, CLOSE_REASON_TAKE_PROFIT, "多仓止盈")
		}
	}

	// 涨停跌停不开仓
	if s.limitTouched(tick) || s.lossCount >= 1 || s.winCount >= 2 || s.stopOpen {
		return
	}
	if s.isOpening() || s.isClosing() {
		return
	}

	if p.last.LessThanOrEqual(p.low) && s.pos <= 0 {
		s.openPosition(ctx, tick, protocol.DIRECTION_LONG, "逆势做多")
	} else if p.last.GreaterThanOrEqual(p.high) && s.pos >= 0 {
		s.openPosition(ctx, tick, protocol.DIRECTION_SHORT, "逆势做空")
	}
}
