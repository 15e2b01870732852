package gaprev

import (
	"github.com/adan830/vnpy/krang"
	"github.com/adan830/vnpy/protocol"
	"github.com/astaxie/beego/logs"
)

/*
 顺势状态，进入后当天不再回到逆势
 突破开盘价amplitude-1跳顺势开仓，反向突破止损，涨跌停价止盈
*/
type trendState struct {
	s *GapRevStrategy
}

func newTrendState(s *GapRevStrategy) *trendState {
	return &trendState{s: s}
}

func (t *trendState) Name() string {
	return STATE_NAME_TREND
}

func (t *trendState) Enter(ctx krang.Context) {
	logs.Info("[%s]进入顺势策略，跳空[%v]", t.s.name, t.s.gapped)
}

func (t *trendState) Transit(ctx krang.Context, tick *krang.Tick) string {
	s := t.s
	if s.winCount >= 1 {
		s.haltOpening("顺势止盈")
	} else if s.lossCount >= 6 {
		s.haltOpening("顺势止损次数过多")
	}
	return STATE_NAME_TREND
}

func (t *trendState) Decide(ctx krang.Context, tick *krang.Tick) {
	s := t.s
	p := s.prices(tick, s.setting.Amplitude-1)

	switch {
	case s.pos < 0 && !s.isClosing():
		if p.last.GreaterThanOrEqual(p.high) {
			s.closePosition(ctx, tick, CLOSE_REASON_STOP_LOSS, "空仓止损")
		} else if p.hasLower && p.last.LessThanOrEqual(p.lowerLimit) {
			s.closePosition(ctx, tick, CLOSE_REASON_TAKE_PROFIT, "空仓止盈")
		}

	case s.pos > 0 && !s.isClosing():
		if p.last.LessThanOrEqual(p.low) {
			s.closePosition(ctx, tick, CLOSE_REASON_STOP_LOSS, "多仓止损")
		} else if p.hasUpper && p.last.GreaterThanOrEqual(p.upperLimit) {
			s.closePosition(ctx, tick, CLOSE_REASON_TAKE_PROFIT, "多仓止盈")
		}
	}

	if s.limitTouched(tick) || s.lossCount >= 6 || s.winCount >= 1 || s.stopOpen {
		return
	}
	if s.isOpening() || s.isClosing() {
		return
	}

	if p.last.GreaterThanOrEqual(p.high) && s.pos <= 0 {
		s.openPosition(ctx, tick, protocol.DIRECTION_LONG, "顺势做多")
	} else if p.last.LessThanOrEqual(p.low) && s.pos >= 0 {
		s.openPosition(ctx, tick, protocol.DIRECTION_SHORT, "顺势做空")
	}
}
