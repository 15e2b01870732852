package protocol

const TM_LAYOUT_STR = "2006-01-02 15:04:05"
const DAY_LAYOUT_STR = "2006-01-02"
const CLOCK_LAYOUT_STR = "15:04:05"

const (
	PRICE_ST_MARKET = 1 // 市价
	PRICE_ST_LIMIT  = 2 // 限价
)

/*
  kafka topic
  行情由行情前置发布到QUOTE_PUB, krang下单撤单发到GATEWAY_REQ,
  交易网关的委托回报发到GATEWAY_RSP
*/
const (
	TOPIC_QUOTE_PUB   = "ctp_quote_pub"
	TOPIC_GATEWAY_REQ = "ctp_gateway_req"
	TOPIC_GATEWAY_RSP = "ctp_gateway_rsp"
)

/*
  下单时的买卖方向和开平标志
  buy   = 多 + 开
  sell  = 空 + 平
  short = 空 + 开
  cover = 多 + 平
*/
type Direction int32

const (
	DIRECTION_LONG  Direction = 1 // 多
	DIRECTION_SHORT Direction = 2 // 空
)

func (d Direction) String() string {
	switch d {
	case DIRECTION_LONG:
		return "多"
	case DIRECTION_SHORT:
		return "空"
	}
	return "未知"
}

type Offset int32

const (
	OFFSET_OPEN  Offset = 1 // 开仓
	OFFSET_CLOSE Offset = 2 // 平仓
)

func (o Offset) String() string {
	switch o {
	case OFFSET_OPEN:
		return "开仓"
	case OFFSET_CLOSE:
		return "平仓"
	}
	return "未知"
}

/*
 委托状态
 网关传过来的状态码只认这五种，其余的(比如拒单)都当成未知处理
*/
type OrderStatus int32

const (
	ORDERSTATUS_UNKNOWN   OrderStatus = 0 // 未知
	ORDERSTATUS_UNFILLED  OrderStatus = 1 // 未成交
	ORDERSTATUS_PARTDONE  OrderStatus = 2 // 部分成交
	ORDERSTATUS_COMPLETE  OrderStatus = 3 // 全部成交
	ORDERSTATUS_CANCELLED OrderStatus = 4 // 已撤销
)

func ParseOrderStatus(code int32) OrderStatus {
	switch OrderStatus(code) {
	case ORDERSTATUS_UNFILLED, ORDERSTATUS_PARTDONE, ORDERSTATUS_COMPLETE, ORDERSTATUS_CANCELLED:
		return OrderStatus(code)
	}
	return ORDERSTATUS_UNKNOWN
}

func (s OrderStatus) String() string {
	switch s {
	case ORDERSTATUS_UNFILLED:
		return "未成交"
	case ORDERSTATUS_PARTDONE:
		return "部分成交"
	case ORDERSTATUS_COMPLETE:
		return "全部成交"
	case ORDERSTATUS_CANCELLED:
		return "已撤销"
	}
	return "未知"
}

// 是否是终结状态，终结后的委托不会再有回报
func (s OrderStatus) IsDone() bool {
	return s == ORDERSTATUS_COMPLETE || s == ORDERSTATUS_CANCELLED
}
