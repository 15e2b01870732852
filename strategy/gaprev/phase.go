package gaprev

/*
 委托阶段
 开仓中和平仓中不可能同时存在，平仓原因只在平仓中有效
*/
type Phase int

const (
	PHASE_FLAT          Phase = iota // 空仓
	PHASE_OPEN_PENDING               // 开仓委托未完成
	PHASE_HELD                       // 持仓
	PHASE_CLOSE_PENDING              // 平仓委托未完成
)

func (p Phase) String() string {
	switch p {
	case PHASE_FLAT:
		return "FLAT"
	case PHASE_OPEN_PENDING:
		return "OPEN_PENDING"
	case PHASE_HELD:
		return "HELD"
	case PHASE_CLOSE_PENDING:
		return "CLOSE_PENDING"
	}
	return "UNKNOWN"
}

type CloseReason int

const (
	CLOSE_REASON_NONE        CloseReason = iota // 收盘清仓
	CLOSE_REASON_TAKE_PROFIT                    // 止盈
	CLOSE_REASON_STOP_LOSS                      // 止损
)

func (c CloseReason) String() string {
	switch c {
	case CLOSE_REASON_TAKE_PROFIT:
		return "TAKE_PROFIT"
	case CLOSE_REASON_STOP_LOSS:
		return "STOP_LOSS"
	}
	return "NONE"
}

type phaseEvent int

const (
	evSendOpen    phaseEvent = iota // 发出开仓委托
	evOpenSettled                   // tick看到持仓，开仓完成
	evSendClose                     // 发出平仓委托
	evCloseFilled                   // 平仓委托全部成交
	evCancelled                     // 委托已撤销
	evPosAppear                     // 空仓时看到持仓
	evPosGone                       // 持仓时看到空仓
)

func (e phaseEvent) String() string {
	switch e {
	case evSendOpen:
		return "sendOpen"
	case evOpenSettled:
		return "openSettled"
	case evSendClose:
		return "sendClose"
	case evCloseFilled:
		return "closeFilled"
	case evCancelled:
		return "cancelled"
	case evPosAppear:
		return "posAppear"
	case evPosGone:
		return "posGone"
	}
	return "unknown"
}

var phaseTable = map[Phase]map[phaseEvent]Phase{
	PHASE_FLAT: {
		evSendOpen:  PHASE_OPEN_PENDING,
		evPosAppear: PHASE_HELD,
	},
	PHASE_OPEN_PENDING: {
		evOpenSettled: PHASE_HELD,
		evCancelled:   PHASE_FLAT,
	},
	PHASE_HELD: {
		evSendClose: PHASE_CLOSE_PENDING,
		evPosGone:   PHASE_FLAT,
	},
	PHASE_CLOSE_PENDING: {
		evCloseFilled: PHASE_FLAT,
		evCancelled:   PHASE_HELD,
	},
}

func (p Phase) next(ev phaseEvent) (Phase, bool) {
	n, ok := phaseTable[p][ev]
	return n, ok
}

func (p Phase) can(ev phaseEvent) bool {
	_, ok := p.next(ev)
	return ok
}
