package protocol

import (
	"errors"
	"testing"

	"github.com/golang/protobuf/proto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPackTick(t *testing.T) {
	pb := &PBFutureTick{
		Sinfo: &PBQuoteSymbol{
			Exchange:     proto.String("shfe"),
			Symbol:       proto.String("rb"),
			ContractType: proto.String("1905"),
			Timestamp:    proto.Uint64(1551682771000),
		},
		Open: proto.Float64(3000),
		Last: proto.Float64(3015),
		Bid:  proto.Float64(3010),
		Ask:  proto.Float64(3015),
	}
	bin, err := PackPB(FID_QUOTE_TICK, 7, pb)
	require.NoError(t, err)

	out := &PBFutureTick{}
	p, err := UnpackPB(bin, out)
	require.NoError(t, err)
	assert.Equal(t, uint32(FID_QUOTE_TICK), p.GetTid())
	assert.Equal(t, uint32(7), p.GetReqSerial())
	assert.Equal(t, "rb", out.GetSinfo().GetSymbol())
	assert.Equal(t, 3015.0, out.GetLast())
	assert.Equal(t, 0.0, out.GetUpperLimit())
}

func TestParseShortPackage(t *testing.T) {
	p := &FixPackage{}
	assert.ErrorIs(t, p.ParseFromArray([]byte{0, 0, 1}), ErrShortPackage)

	bin := (&FixPackage{Tid: FID_RspOrder, Payload: []byte{1, 2, 3, 4}}).SerialToArray()
	err := p.ParseFromArray(bin[:len(bin)-2])
	assert.True(t, errors.Is(err, ErrShortPackage))
}

func TestParseOrderStatus(t *testing.T) {
	assert.Equal(t, ORDERSTATUS_COMPLETE, ParseOrderStatus(3))
	assert.Equal(t, ORDERSTATUS_UNKNOWN, ParseOrderStatus(5)) // 拒单
	assert.Equal(t, ORDERSTATUS_UNKNOWN, ParseOrderStatus(-1))
	assert.True(t, ORDERSTATUS_CANCELLED.IsDone())
	assert.False(t, ORDERSTATUS_PARTDONE.IsDone())
	assert.Equal(t, "已撤销", ORDERSTATUS_CANCELLED.String())
}

func TestNilGetters(t *testing.T) {
	var pb *PBRspOrder
	assert.Equal(t, "", pb.GetOrderId())
	assert.Equal(t, int32(0), pb.GetStatus())
	var tk *PBFutureTick
	assert.Nil(t, tk.GetSinfo())
	assert.Equal(t, 0.0, tk.GetAsk())
}
