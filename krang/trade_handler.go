package krang

import (
	"github.com/adan830/vnpy/protocol"
	"github.com/astaxie/beego/logs"
	"github.com/golang/protobuf/proto"
)

type tradeHandler struct {
}

func NewTradeHandler() Handler {
	return &tradeHandler{}
}

/*
  委托回报先更新keeper里的委托和持仓，再交给下单的策略
  这样策略在OnOrder里看到的持仓已经包含了这次成交
*/
func (t *tradeHandler) HandleMessage(p protocol.Package, key string) bool {
	if p.GetTid() != protocol.FID_RspOrder {
		return false
	}

	pb := &protocol.PBRspOrder{}
	err := proto.Unmarshal(p.GetPayload(), pb)
	if err != nil {
		logs.Error("pb unmarshal fail, tid:%d", p.GetTid())
		return true
	}

	rsp := orderFromPB(pb)
	if rsp.Status == protocol.ORDERSTATUS_UNKNOWN && pb.GetErrorMsg() != "" {
		logs.Info("委托[%s]失败，原因：%s", rsp.OrderId, pb.GetErrorMsg())
	}

	o := kr.keeper.HandleOrder(rsp)
	if o == nil {
		return true
	}

	st := kr.stmgr.Get(o.Stname)
	if st == nil {
		logs.Error("委托[%s]的策略[%s]没有注册", o.OrderId, o.Stname)
		return true
	}
	st.OnOrder(kr.ctx, o)
	return true
}

func orderFromPB(pb *protocol.PBRspOrder) *Order {
	return &Order{
		Sinfo: Sinfo{
			Exchange:     pb.GetExchange(),
			Symbol:       pb.GetSymbol(),
			ContractType: pb.GetContractType(),
		},
		OrderId:      pb.GetOrderId(),
		Price:        pb.GetPrice(),
		TotalVolume:  pb.GetTotalVolume(),
		TradedVolume: pb.GetTradedVolume(),
		Direction:    protocol.Direction(pb.GetDirection()),
		Offset:       protocol.Offset(pb.GetOffset()),
		Status:       protocol.ParseOrderStatus(pb.GetStatus()),
		OrderTime:    pb.GetOrderTime(),
		ErrorMsg:     pb.GetErrorMsg(),
	}
}
