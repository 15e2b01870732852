package main

import (
	"flag"
	"fmt"
	"time"

	"github.com/adan830/vnpy/kfc"
	"github.com/adan830/vnpy/protocol"
	"github.com/golang/protobuf/proto"
)

/*
 往行情topic里灌一串假tick，用来联调krang
 最新价从开盘价开始每笔加一跳
*/
func main() {
	broker := flag.String("broker", "localhost:9092", "kafka broker")
	ex := flag.String("ex", "shfe", "exchange")
	symbol := flag.String("symbol", "rb", "symbol")
	ct := flag.String("ct", "1905", "contract")
	open := flag.Float64("open", 3000, "session open price")
	tick := flag.Float64("tick", 5, "tick price")
	n := flag.Int("n", 10, "tick count")
	flag.Parse()

	kfc.InitClient([]string{*broker})
	err := kfc.TobeProducer()
	if err != nil {
		fmt.Println("tobe error: ", err.Error())
		return
	}

	for i := 0; i < *n; i++ {
		last := *open + float64(i)**tick
		pb := &protocol.PBFutureTick{
			Sinfo: &protocol.PBQuoteSymbol{
				Exchange:     proto.String(*ex),
				Symbol:       proto.String(*symbol),
				ContractType: proto.String(*ct),
				Timestamp:    proto.Uint64(uint64(time.Now().UnixNano() / int64(time.Millisecond))),
			},
			Open:       proto.Float64(*open),
			High:       proto.Float64(last),
			Low:        proto.Float64(*open),
			Last:       proto.Float64(last),
			Bid:        proto.Float64(last - *tick),
			Ask:        proto.Float64(last),
			UpperLimit: proto.Float64(*open * 1.07),
			LowerLimit: proto.Float64(*open * 0.93),
		}
		bin, err := protocol.PackPB(protocol.FID_QUOTE_TICK, uint32(i+1), pb)
		if err != nil {
			fmt.Println("pack error: ", err.Error())
			return
		}
		kfc.SendMessage(protocol.TOPIC_QUOTE_PUB, *ex, bin)
		<-time.After(500 * time.Millisecond)
	}

	// SendMessage只是写到缓冲chan，等一下再退出
	<-time.After(time.Second)
	kfc.ExitProducer()
}
