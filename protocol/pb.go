package protocol

/*
 kafka消息体和bardb存储用到的pb消息
 字段编号和gap.proto保持一致，proto2语法，字段都是optional
*/

import (
	"github.com/golang/protobuf/proto"
)

////////////////////////////////////////////////////////////////////////////////////////////////////

type PBQuoteSymbol struct {
	Exchange     *string `protobuf:"bytes,1,opt,name=exchange" json:"exchange,omitempty"`
	Symbol       *string `protobuf:"bytes,2,opt,name=symbol" json:"symbol,omitempty"`
	ContractType *string `protobuf:"bytes,3,opt,name=contractType" json:"contractType,omitempty"`
	Timestamp    *uint64 `protobuf:"varint,4,opt,name=timestamp" json:"timestamp,omitempty"` // 毫秒
}

func (m *PBQuoteSymbol) Reset()         { *m = PBQuoteSymbol{} }
func (m *PBQuoteSymbol) String() string { return proto.CompactTextString(m) }
func (*PBQuoteSymbol) ProtoMessage()    {}

func (m *PBQuoteSymbol) GetExchange() string {
	if m != nil && m.Exchange != nil {
		return *m.Exchange
	}
	return ""
}

func (m *PBQuoteSymbol) GetSymbol() string {
	if m != nil && m.Symbol != nil {
		return *m.Symbol
	}
	return ""
}

func (m *PBQuoteSymbol) GetContractType() string {
	if m != nil && m.ContractType != nil {
		return *m.ContractType
	}
	return ""
}

func (m *PBQuoteSymbol) GetTimestamp() uint64 {
	if m != nil && m.Timestamp != nil {
		return *m.Timestamp
	}
	return 0
}

////////////////////////////////////////////////////////////////////////////////////////////////////

// 期货分笔行情
type PBFutureTick struct {
	Sinfo      *PBQuoteSymbol `protobuf:"bytes,1,opt,name=sinfo" json:"sinfo,omitempty"`
	Open       *float64       `protobuf:"fixed64,2,opt,name=open" json:"open,omitempty"`     // 今日开盘价
	High       *float64       `protobuf:"fixed64,3,opt,name=high" json:"high,omitempty"`     // 今日最高价
	Low        *float64       `protobuf:"fixed64,4,opt,name=low" json:"low,omitempty"`       // 今日最低价
	Last       *float64       `protobuf:"fixed64,5,opt,name=last" json:"last,omitempty"`     // 最新价
	Bid        *float64       `protobuf:"fixed64,6,opt,name=bid" json:"bid,omitempty"`       // 买一价
	Ask        *float64       `protobuf:"fixed64,7,opt,name=ask" json:"ask,omitempty"`       // 卖一价
	BidVol     *float64       `protobuf:"fixed64,8,opt,name=bidVol" json:"bidVol,omitempty"` // 买一量
	AskVol     *float64       `protobuf:"fixed64,9,opt,name=askVol" json:"askVol,omitempty"` // 卖一量
	UpperLimit *float64       `protobuf:"fixed64,10,opt,name=upperLimit" json:"upperLimit,omitempty"`
	LowerLimit *float64       `protobuf:"fixed64,11,opt,name=lowerLimit" json:"lowerLimit,omitempty"`
	Vol        *float64       `protobuf:"fixed64,12,opt,name=vol" json:"vol,omitempty"` // 今日成交量
}

func (m *PBFutureTick) Reset()         { *m = PBFutureTick{} }
func (m *PBFutureTick) String() string { return proto.CompactTextString(m) }
func (*PBFutureTick) ProtoMessage()    {}

func (m *PBFutureTick) GetSinfo() *PBQuoteSymbol {
	if m != nil {
		return m.Sinfo
	}
	return nil
}

func (m *PBFutureTick) GetOpen() float64       { return getF64(m != nil, func() *float64 { return m.Open }) }
func (m *PBFutureTick) GetHigh() float64       { return getF64(m != nil, func() *float64 { return m.High }) }
func (m *PBFutureTick) GetLow() float64        { return getF64(m != nil, func() *float64 { return m.Low }) }
func (m *PBFutureTick) GetLast() float64       { return getF64(m != nil, func() *float64 { return m.Last }) }
func (m *PBFutureTick) GetBid() float64        { return getF64(m != nil, func() *float64 { return m.Bid }) }
func (m *PBFutureTick) GetAsk() float64        { return getF64(m != nil, func() *float64 { return m.Ask }) }
func (m *PBFutureTick) GetBidVol() float64     { return getF64(m != nil, func() *float64 { return m.BidVol }) }
func (m *PBFutureTick) GetAskVol() float64     { return getF64(m != nil, func() *float64 { return m.AskVol }) }
func (m *PBFutureTick) GetUpperLimit() float64 { return getF64(m != nil, func() *float64 { return m.UpperLimit }) }
func (m *PBFutureTick) GetLowerLimit() float64 { return getF64(m != nil, func() *float64 { return m.LowerLimit }) }
func (m *PBFutureTick) GetVol() float64        { return getF64(m != nil, func() *float64 { return m.Vol }) }

////////////////////////////////////////////////////////////////////////////////////////////////////

// 下单请求, OrderId由krang生成，网关回报时原样带回
type PBReqSetOrder struct {
	Stname       *string  `protobuf:"bytes,1,opt,name=stname" json:"stname,omitempty"`
	OrderId      *string  `protobuf:"bytes,2,opt,name=orderId" json:"orderId,omitempty"`
	Exchange     *string  `protobuf:"bytes,3,opt,name=exchange" json:"exchange,omitempty"`
	Symbol       *string  `protobuf:"bytes,4,opt,name=symbol" json:"symbol,omitempty"`
	ContractType *string  `protobuf:"bytes,5,opt,name=contractType" json:"contractType,omitempty"`
	Price        *float64 `protobuf:"fixed64,6,opt,name=price" json:"price,omitempty"`
	Volume       *int32   `protobuf:"varint,7,opt,name=volume" json:"volume,omitempty"`
	Direction    *int32   `protobuf:"varint,8,opt,name=direction" json:"direction,omitempty"`
	Offset       *int32   `protobuf:"varint,9,opt,name=offset" json:"offset,omitempty"`
	PriceSt      *int32   `protobuf:"varint,10,opt,name=priceSt" json:"priceSt,omitempty"`
}

func (m *PBReqSetOrder) Reset()         { *m = PBReqSetOrder{} }
func (m *PBReqSetOrder) String() string { return proto.CompactTextString(m) }
func (*PBReqSetOrder) ProtoMessage()    {}

func (m *PBReqSetOrder) GetStname() string       { return getStr(m != nil, func() *string { return m.Stname }) }
func (m *PBReqSetOrder) GetOrderId() string      { return getStr(m != nil, func() *string { return m.OrderId }) }
func (m *PBReqSetOrder) GetExchange() string     { return getStr(m != nil, func() *string { return m.Exchange }) }
func (m *PBReqSetOrder) GetSymbol() string       { return getStr(m != nil, func() *string { return m.Symbol }) }
func (m *PBReqSetOrder) GetContractType() string { return getStr(m != nil, func() *string { return m.ContractType }) }
func (m *PBReqSetOrder) GetPrice() float64       { return getF64(m != nil, func() *float64 { return m.Price }) }
func (m *PBReqSetOrder) GetVolume() int32        { return getI32(m != nil, func() *int32 { return m.Volume }) }
func (m *PBReqSetOrder) GetDirection() int32     { return getI32(m != nil, func() *int32 { return m.Direction }) }
func (m *PBReqSetOrder) GetOffset() int32        { return getI32(m != nil, func() *int32 { return m.Offset }) }
func (m *PBReqSetOrder) GetPriceSt() int32       { return getI32(m != nil, func() *int32 { return m.PriceSt }) }

////////////////////////////////////////////////////////////////////////////////////////////////////

// 撤单请求
type PBReqCancelOrder struct {
	Stname       *string `protobuf:"bytes,1,opt,name=stname" json:"stname,omitempty"`
	OrderId      *string `protobuf:"bytes,2,opt,name=orderId" json:"orderId,omitempty"`
	Exchange     *string `protobuf:"bytes,3,opt,name=exchange" json:"exchange,omitempty"`
	Symbol       *string `protobuf:"bytes,4,opt,name=symbol" json:"symbol,omitempty"`
	ContractType *string `protobuf:"bytes,5,opt,name=contractType" json:"contractType,omitempty"`
}

func (m *PBReqCancelOrder) Reset()         { *m = PBReqCancelOrder{} }
func (m *PBReqCancelOrder) String() string { return proto.CompactTextString(m) }
func (*PBReqCancelOrder) ProtoMessage()    {}

func (m *PBReqCancelOrder) GetStname() string  { return getStr(m != nil, func() *string { return m.Stname }) }
func (m *PBReqCancelOrder) GetOrderId() string { return getStr(m != nil, func() *string { return m.OrderId }) }

////////////////////////////////////////////////////////////////////////////////////////////////////

// 委托回报
type PBRspOrder struct {
	OrderId      *string  `protobuf:"bytes,1,opt,name=orderId" json:"orderId,omitempty"`
	Exchange     *string  `protobuf:"bytes,2,opt,name=exchange" json:"exchange,omitempty"`
	Symbol       *string  `protobuf:"bytes,3,opt,name=symbol" json:"symbol,omitempty"`
	ContractType *string  `protobuf:"bytes,4,opt,name=contractType" json:"contractType,omitempty"`
	Price        *float64 `protobuf:"fixed64,5,opt,name=price" json:"price,omitempty"`
	TotalVolume  *int32   `protobuf:"varint,6,opt,name=totalVolume" json:"totalVolume,omitempty"`
	TradedVolume *int32   `protobuf:"varint,7,opt,name=tradedVolume" json:"tradedVolume,omitempty"`
	Direction    *int32   `protobuf:"varint,8,opt,name=direction" json:"direction,omitempty"`
	Offset       *int32   `protobuf:"varint,9,opt,name=offset" json:"offset,omitempty"`
	Status       *int32   `protobuf:"varint,10,opt,name=status" json:"status,omitempty"`
	OrderTime    *string  `protobuf:"bytes,11,opt,name=orderTime" json:"orderTime,omitempty"`
	ErrorMsg     *string  `protobuf:"bytes,12,opt,name=errorMsg" json:"errorMsg,omitempty"`
}

func (m *PBRspOrder) Reset()         { *m = PBRspOrder{} }
func (m *PBRspOrder) String() string { return proto.CompactTextString(m) }
func (*PBRspOrder) ProtoMessage()    {}

func (m *PBRspOrder) GetOrderId() string      { return getStr(m != nil, func() *string { return m.OrderId }) }
func (m *PBRspOrder) GetExchange() string     { return getStr(m != nil, func() *string { return m.Exchange }) }
func (m *PBRspOrder) GetSymbol() string       { return getStr(m != nil, func() *string { return m.Symbol }) }
func (m *PBRspOrder) GetContractType() string { return getStr(m != nil, func() *string { return m.ContractType }) }
func (m *PBRspOrder) GetPrice() float64       { return getF64(m != nil, func() *float64 { return m.Price }) }
func (m *PBRspOrder) GetTotalVolume() int32   { return getI32(m != nil, func() *int32 { return m.TotalVolume }) }
func (m *PBRspOrder) GetTradedVolume() int32  { return getI32(m != nil, func() *int32 { return m.TradedVolume }) }
func (m *PBRspOrder) GetDirection() int32     { return getI32(m != nil, func() *int32 { return m.Direction }) }
func (m *PBRspOrder) GetOffset() int32        { return getI32(m != nil, func() *int32 { return m.Offset }) }
func (m *PBRspOrder) GetStatus() int32        { return getI32(m != nil, func() *int32 { return m.Status }) }
func (m *PBRspOrder) GetOrderTime() string    { return getStr(m != nil, func() *string { return m.OrderTime }) }
func (m *PBRspOrder) GetErrorMsg() string     { return getStr(m != nil, func() *string { return m.ErrorMsg }) }

////////////////////////////////////////////////////////////////////////////////////////////////////

// 日K线，bardb的value
type PBDailyBar struct {
	Exchange     *string  `protobuf:"bytes,1,opt,name=exchange" json:"exchange,omitempty"`
	Symbol       *string  `protobuf:"bytes,2,opt,name=symbol" json:"symbol,omitempty"`
	ContractType *string  `protobuf:"bytes,3,opt,name=contractType" json:"contractType,omitempty"`
	Date         *string  `protobuf:"bytes,4,opt,name=date" json:"date,omitempty"`
	Open         *float64 `protobuf:"fixed64,5,opt,name=open" json:"open,omitempty"`
	High         *float64 `protobuf:"fixed64,6,opt,name=high" json:"high,omitempty"`
	Low          *float64 `protobuf:"fixed64,7,opt,name=low" json:"low,omitempty"`
	Close        *float64 `protobuf:"fixed64,8,opt,name=close" json:"close,omitempty"`
}

func (m *PBDailyBar) Reset()         { *m = PBDailyBar{} }
func (m *PBDailyBar) String() string { return proto.CompactTextString(m) }
func (*PBDailyBar) ProtoMessage()    {}

func (m *PBDailyBar) GetExchange() string     { return getStr(m != nil, func() *string { return m.Exchange }) }
func (m *PBDailyBar) GetSymbol() string       { return getStr(m != nil, func() *string { return m.Symbol }) }
func (m *PBDailyBar) GetContractType() string { return getStr(m != nil, func() *string { return m.ContractType }) }
func (m *PBDailyBar) GetDate() string         { return getStr(m != nil, func() *string { return m.Date }) }
func (m *PBDailyBar) GetOpen() float64        { return getF64(m != nil, func() *float64 { return m.Open }) }
func (m *PBDailyBar) GetHigh() float64        { return getF64(m != nil, func() *float64 { return m.High }) }
func (m *PBDailyBar) GetLow() float64         { return getF64(m != nil, func() *float64 { return m.Low }) }
func (m *PBDailyBar) GetClose() float64       { return getF64(m != nil, func() *float64 { return m.Close }) }

////////////////////////////////////////////////////////////////////////////////////////////////////

func getStr(ok bool, f func() *string) string {
	if !ok {
		return ""
	}
	if v := f(); v != nil {
		return *v
	}
	return ""
}

func getF64(ok bool, f func() *float64) float64 {
	if !ok {
		return 0
	}
	if v := f(); v != nil {
		return *v
	}
	return 0
}

func getI32(ok bool, f func() *int32) int32 {
	if !ok {
		return 0
	}
	if v := f(); v != nil {
		return *v
	}
	return 0
}
