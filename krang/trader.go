package krang

import (
	"fmt"
	"sync/atomic"

	"github.com/adan830/vnpy/protocol"
	"github.com/adan830/vnpy/utils"
	"github.com/astaxie/beego/logs"
	"github.com/golang/protobuf/proto"
	"github.com/google/uuid"
)

/*
  Trader 下单撤单接口
  发出去就返回，结果通过OnOrder回报给策略
  buy = 买开，sell = 卖平，short = 卖开，cover = 买平
*/
type Trader interface {
	Buy(stname string, sinfo Sinfo, price float64, volume int) string
	Sell(stname string, sinfo Sinfo, price float64, volume int) string
	Short(stname string, sinfo Sinfo, price float64, volume int) string
	Cover(stname string, sinfo Sinfo, price float64, volume int) string
	CancelOrder(stname string, handle string)
}

/*
 dry模式用于回放，只记日志不发kafka，委托永远不会有回报
*/
type trader struct {
	keeper *keeper
	dry    bool
	seed   uint32
}

func newTrader(k *keeper, dry bool) Trader {
	return &trader{
		keeper: k,
		dry:    dry,
	}
}

func (t *trader) Buy(stname string, sinfo Sinfo, price float64, volume int) string {
	return t.setOrder(stname, sinfo, price, volume, protocol.DIRECTION_LONG, protocol.OFFSET_OPEN)
}

func (t *trader) Sell(stname string, sinfo Sinfo, price float64, volume int) string {
	return t.setOrder(stname, sinfo, price, volume, protocol.DIRECTION_SHORT, protocol.OFFSET_CLOSE)
}

func (t *trader) Short(stname string, sinfo Sinfo, price float64, volume int) string {
	return t.setOrder(stname, sinfo, price, volume, protocol.DIRECTION_SHORT, protocol.OFFSET_OPEN)
}

func (t *trader) Cover(stname string, sinfo Sinfo, price float64, volume int) string {
	return t.setOrder(stname, sinfo, price, volume, protocol.DIRECTION_LONG, protocol.OFFSET_CLOSE)
}

func (t *trader) CancelOrder(stname string, handle string) {
	o := t.keeper.GetOrderById(handle)
	if o == nil {
		logs.Info("[%s]撤单，委托[%s]已经终结或不存在", stname, handle)
		return
	}

	pb := &protocol.PBReqCancelOrder{
		Stname:       proto.String(stname),
		OrderId:      proto.String(handle),
		Exchange:     proto.String(o.Exchange),
		Symbol:       proto.String(o.Symbol),
		ContractType: proto.String(o.ContractType),
	}
	t.keeper.GetFeedBack().Add(stname, handle, protocol.FID_ReqCancelOrder, "cancel")
	t.send(o.Exchange, protocol.FID_ReqCancelOrder, pb)
	logs.Info("[%s]撤单[%s], [%s]", stname, handle, o.Sinfo.String())
}

////////////////////////////////////////////////////////////////////////////////////////////////////

func (t *trader) setOrder(stname string, sinfo Sinfo, price float64, volume int, d protocol.Direction, o protocol.Offset) string {
	if volume <= 0 {
		logs.Error("[%s]下单数量错误[%d]", stname, volume)
		return ""
	}

	handle := uuid.NewString()
	pb := &protocol.PBReqSetOrder{
		Stname:       proto.String(stname),
		OrderId:      proto.String(handle),
		Exchange:     proto.String(sinfo.Exchange),
		Symbol:       proto.String(sinfo.Symbol),
		ContractType: proto.String(sinfo.ContractType),
		Price:        proto.Float64(price),
		Volume:       proto.Int32(int32(volume)),
		Direction:    proto.Int32(int32(d)),
		Offset:       proto.Int32(int32(o)),
		PriceSt:      proto.Int32(protocol.PRICE_ST_LIMIT),
	}

	t.keeper.AddOrder(&Order{
		Sinfo:       sinfo,
		Stname:      stname,
		OrderId:     handle,
		Price:       price,
		TotalVolume: int32(volume),
		Direction:   d,
		Offset:      o,
		Status:      protocol.ORDERSTATUS_UNKNOWN,
	})
	desc := fmt.Sprintf("%s %s %v@%d", sinfo.String(), utils.OrderActionStr(d, o), price, volume)
	t.keeper.GetFeedBack().Add(stname, handle, protocol.FID_ReqSetOrder, desc)

	t.send(sinfo.Exchange, protocol.FID_ReqSetOrder, pb)
	logs.Info("[%s]下单[%s], %s", stname, handle, desc)
	return handle
}

func (t *trader) send(key string, tid uint32, pb proto.Message) {
	serial := atomic.AddUint32(&t.seed, 1)
	if t.dry {
		logs.Debug("dry trader, tid[%d] serial[%d] %s", tid, serial, pb.String())
		return
	}

	err := utils.PackAndSendToBroker(protocol.TOPIC_GATEWAY_REQ, key, tid, serial, pb)
	if err != nil {
		logs.Error("trader发送请求失败，tid[%d], err[%s]", tid, err.Error())
	}
}
