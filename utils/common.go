package utils

import (
	"fmt"
	"strconv"
	"time"

	"github.com/adan830/vnpy/kfc"
	"github.com/adan830/vnpy/protocol"
	"github.com/golang/protobuf/proto"
)

func PackAndSendToBroker(topic string, key string, tid uint32, reqSerial uint32, pb proto.Message) error {
	bin, err := protocol.PackPB(tid, reqSerial, pb)
	if err != nil {
		return err
	}
	kfc.SendMessage(topic, key, bin)
	return nil
}

// 商品信息: 交易所_品种_合约
func MakeupSinfo(ex string, symbol string, contractType string) string {
	return ex + "_" + symbol + "_" + contractType
}

func UintTobytes(i uint64) []byte {
	return []byte(fmt.Sprintf("%d", i))
}

func BytesToUint(b []byte) uint64 {
	u, err := strconv.ParseUint(string(b), 10, 64)
	if err != nil {
		u = 0
	}
	return u
}

func OrderActionStr(d protocol.Direction, o protocol.Offset) string {
	switch {
	case d == protocol.DIRECTION_LONG && o == protocol.OFFSET_OPEN:
		return "买开"
	case d == protocol.DIRECTION_SHORT && o == protocol.OFFSET_OPEN:
		return "卖开"
	case d == protocol.DIRECTION_LONG && o == protocol.OFFSET_CLOSE:
		return "买平"
	case d == protocol.DIRECTION_SHORT && o == protocol.OFFSET_CLOSE:
		return "卖平"
	}
	return "未知"
}

// 毫秒时间戳
func MSStr(ms uint64, loc *time.Location) string {
	return MSTime(ms, loc).Format(protocol.TM_LAYOUT_STR)
}

func MSTime(ms uint64, loc *time.Location) time.Time {
	t := time.Unix(int64(ms/1000), int64(ms%1000)*int64(time.Millisecond))
	if loc != nil {
		t = t.In(loc)
	}
	return t
}

// 交易日，按交易所时区取日期
func TradingDay(t time.Time, loc *time.Location) string {
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format(protocol.DAY_LAYOUT_STR)
}

func IsZero64(f float64) bool {
	return f >= -0.000001 && f <= 0.000001
}
