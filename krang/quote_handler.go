package krang

import (
	"github.com/adan830/vnpy/protocol"
	"github.com/adan830/vnpy/utils"
	"github.com/astaxie/beego/logs"
	"github.com/golang/protobuf/proto"
)

type quoteHandler struct {
}

func NewQuoteHandler() Handler {
	return &quoteHandler{}
}

/*
  返回true表示该handler已经处理完毕，无需后面的handler处理
  返回false表示需要给后面的handler处理
  tick解包后放到kr.tick里，交给strategyHandler
*/
func (t *quoteHandler) HandleMessage(p protocol.Package, key string) bool {
	if p.GetTid() != protocol.FID_QUOTE_TICK {
		return false
	}

	pb := &protocol.PBFutureTick{}
	err := proto.Unmarshal(p.GetPayload(), pb)
	if err != nil {
		logs.Error("pb unmarshal fail, tid:%d", p.GetTid())
		return true
	}
	tick := tickFromPB(pb)
	if tick.Timestamp == 0 {
		logs.Error("tick[%s]没有时间戳，丢弃", tick.Sinfo.String())
		return true
	}

	day := utils.TradingDay(tick.Time(kr.loc), nil)
	if day > kr.tradingDay {
		switchTradingDay(day)
	}

	kr.tick = tick
	return false
}

func tickFromPB(pb *protocol.PBFutureTick) *Tick {
	return &Tick{
		Sinfo: Sinfo{
			Exchange:     pb.GetSinfo().GetExchange(),
			Symbol:       pb.GetSinfo().GetSymbol(),
			ContractType: pb.GetSinfo().GetContractType(),
		},
		Timestamp:  pb.GetSinfo().GetTimestamp(),
		Open:       pb.GetOpen(),
		High:       pb.GetHigh(),
		Low:        pb.GetLow(),
		Last:       pb.GetLast(),
		Bid:        pb.GetBid(),
		Ask:        pb.GetAsk(),
		BidVol:     pb.GetBidVol(),
		AskVol:     pb.GetAskVol(),
		UpperLimit: pb.GetUpperLimit(),
		LowerLimit: pb.GetLowerLimit(),
		Vol:        pb.GetVol(),
	}
}
