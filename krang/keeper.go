package krang

import (
	"github.com/adan830/vnpy/protocol"
	"github.com/astaxie/beego/logs"
)

/*
 记录委托信息
 根据委托回报的成交量推算各合约的净持仓
 记录发出去请求的状态，是否已经收到回报
 这些信息对策略有决定作用
*/

type Keeper interface {
	// 记录新发出的委托
	AddOrder(o *Order)

	// 根据网关回报更新委托和持仓，不是本进程下的单返回nil
	HandleOrder(rsp *Order) *Order

	// 根据订单id查找订单，已经终结的委托不保留
	GetOrderById(orderId string) *Order

	// 某个策略未终结的委托
	GetOrdersByStrategy(stname string) []*Order

	// 净持仓，多为正，空为负
	GetPos(sinfo string) int

	// 查找回馈信息
	GetFeedBack() FeedBack
}

type keeper struct {
	orders   map[string]*Order
	pos      map[string]int
	feedback FeedBack
}

func NewKeeper() *keeper {
	return &keeper{
		orders:   make(map[string]*Order),
		pos:      make(map[string]int),
		feedback: NewFeedBack(),
	}
}

func (k *keeper) AddOrder(o *Order) {
	if o == nil || o.OrderId == "" {
		return
	}
	k.orders[o.OrderId] = o
}

/*
 回报里的成交量是累计值，和上次的差值就是新成交的量
 多方向成交(买开，买平)持仓增加，空方向成交(卖开，卖平)持仓减少
*/
func (k *keeper) HandleOrder(rsp *Order) *Order {
	o, ok := k.orders[rsp.OrderId]
	if !ok {
		logs.Debug("keeper收到未知委托的回报[%s]", rsp.OrderId)
		return nil
	}
	k.feedback.Remove(rsp.OrderId)

	delta := rsp.TradedVolume - o.TradedVolume
	if delta > 0 {
		sinfo := o.Sinfo.String()
		if o.Direction == protocol.DIRECTION_LONG {
			k.pos[sinfo] += int(delta)
		} else {
			k.pos[sinfo] -= int(delta)
		}
		o.TradedVolume = rsp.TradedVolume
	}

	o.Status = rsp.Status
	if rsp.Price > 0 {
		o.Price = rsp.Price
	}
	if rsp.TotalVolume > 0 {
		o.TotalVolume = rsp.TotalVolume
	}
	o.OrderTime = rsp.OrderTime
	o.ErrorMsg = rsp.ErrorMsg

	if o.Status.IsDone() {
		delete(k.orders, o.OrderId)
	}

	ret := *o
	return &ret
}

func (k *keeper) GetOrderById(orderId string) *Order {
	o, ok := k.orders[orderId]
	if !ok {
		return nil
	}
	return o
}

func (k *keeper) GetOrdersByStrategy(stname string) []*Order {
	ret := []*Order{}
	for _, v := range k.orders {
		if v.Stname == stname {
			ret = append(ret, v)
		}
	}
	return ret
}

func (k *keeper) GetPos(sinfo string) int {
	return k.pos[sinfo]
}

func (k *keeper) GetFeedBack() FeedBack {
	return k.feedback
}
