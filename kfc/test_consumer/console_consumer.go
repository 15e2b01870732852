package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/adan830/vnpy/kfc"
	"github.com/adan830/vnpy/protocol"
)

/*
 打印krang发到网关的下单和撤单请求
*/
func main() {
	broker := flag.String("broker", "localhost:9092", "kafka broker")
	flag.Parse()

	kfc.InitClient([]string{*broker})
	err := kfc.TobeConsumer([]string{protocol.TOPIC_GATEWAY_REQ})
	if err != nil {
		fmt.Println("tobe error: ", err.Error())
		return
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt)

L:
	for {
		select {
		case msg := <-kfc.ReadMessages():
			printRequest(msg.Value)

		case <-signals:
			fmt.Println("recv a break")
			break L
		}
	}
	kfc.ExitConsumer()
}

func printRequest(data []byte) {
	p := &protocol.FixPackage{}
	if err := p.ParseFromArray(data); err != nil {
		fmt.Println("parse fail: ", err.Error())
		return
	}

	switch p.GetTid() {
	case protocol.FID_ReqSetOrder:
		pb := &protocol.PBReqSetOrder{}
		if _, err := protocol.UnpackPB(data, pb); err != nil {
			fmt.Println(err)
			return
		}
		fmt.Printf("下单 [%s] %s %s_%s_%s 价格[%v] 数量[%d] 方向[%s] 开平[%s]\n",
			pb.GetStname(), pb.GetOrderId(), pb.GetExchange(), pb.GetSymbol(), pb.GetContractType(),
			pb.GetPrice(), pb.GetVolume(), protocol.Direction(pb.GetDirection()), protocol.Offset(pb.GetOffset()))

	case protocol.FID_ReqCancelOrder:
		pb := &protocol.PBReqCancelOrder{}
		if _, err := protocol.UnpackPB(data, pb); err != nil {
			fmt.Println(err)
			return
		}
		fmt.Printf("撤单 [%s] %s\n", pb.GetStname(), pb.GetOrderId())

	default:
		fmt.Println("unknown tid: ", p.GetTid())
	}
}
