package protocol

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/golang/protobuf/proto"
)

type Package interface {
	GetHeaderLen() int32
	ParseFromArray([]byte) error
	SerialToArray() []byte
	GetBodyLen() uint32
	GetTid() uint32
	GetReqSerial() uint32
	GetAttribute() uint32
	GetPayload() []byte
}

/*
  package protocol
  length		uint32
  tid			uint32
  reqSerial		uint32
  attribute		uint32
  payload		[]byte
*/

type FixPackage struct {
	BodyLen   uint32
	Tid       uint32
	ReqSerial uint32
	Attribute uint32
	Payload   []byte
}

const FIX_PACKAGE_HEADERLEN = 16

var ErrShortPackage = errors.New("fix package too short")

func (t *FixPackage) GetHeaderLen() int32 {
	return FIX_PACKAGE_HEADERLEN
}

func (t *FixPackage) GetBodyLen() uint32 {
	return t.BodyLen
}

func (t *FixPackage) GetTid() uint32 {
	return t.Tid
}

func (t *FixPackage) GetReqSerial() uint32 {
	return t.ReqSerial
}

func (t *FixPackage) GetAttribute() uint32 {
	return t.Attribute
}

func (t *FixPackage) GetPayload() []byte {
	return t.Payload
}

func (t *FixPackage) ParseFromArray(data []byte) error {
	ll := len(data)
	if ll < FIX_PACKAGE_HEADERLEN {
		return ErrShortPackage
	}
	t.BodyLen = binary.BigEndian.Uint32(data[0:4])
	t.Tid = binary.BigEndian.Uint32(data[4:8])
	t.ReqSerial = binary.BigEndian.Uint32(data[8:12])
	t.Attribute = binary.BigEndian.Uint32(data[12:16])
	if uint32(ll-FIX_PACKAGE_HEADERLEN) < t.BodyLen {
		return fmt.Errorf("fix package body truncated, want %d got %d: %w", t.BodyLen, ll-FIX_PACKAGE_HEADERLEN, ErrShortPackage)
	}
	t.Payload = data[FIX_PACKAGE_HEADERLEN : FIX_PACKAGE_HEADERLEN+t.BodyLen]
	return nil
}

func (t *FixPackage) SerialToArray() []byte {
	t.BodyLen = uint32(len(t.Payload))
	buf := new(bytes.Buffer)
	binary.Write(buf, binary.BigEndian, t.BodyLen)
	binary.Write(buf, binary.BigEndian, t.Tid)
	binary.Write(buf, binary.BigEndian, t.ReqSerial)
	binary.Write(buf, binary.BigEndian, t.Attribute)
	buf.Write(t.Payload)
	return buf.Bytes()
}

// 把pb打包成一个完整的FixPackage二进制
func PackPB(tid uint32, reqSerial uint32, pb proto.Message) ([]byte, error) {
	data, err := proto.Marshal(pb)
	if err != nil {
		return nil, err
	}
	p := &FixPackage{
		Tid:       tid,
		ReqSerial: reqSerial,
		Attribute: 0,
		Payload:   data,
	}
	return p.SerialToArray(), nil
}

// 解包并把payload反序列化到pb
func UnpackPB(data []byte, pb proto.Message) (*FixPackage, error) {
	p := &FixPackage{}
	if err := p.ParseFromArray(data); err != nil {
		return nil, err
	}
	if err := proto.Unmarshal(p.GetPayload(), pb); err != nil {
		return p, fmt.Errorf("pb unmarshal fail, tid:%d: %w", p.GetTid(), err)
	}
	return p, nil
}
