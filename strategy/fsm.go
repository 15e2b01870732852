package strategy

import (
	"github.com/adan830/vnpy/krang"
	"github.com/astaxie/beego/logs"
)

/*
  策略都是有限状态机
  这里是状态机的接口，具体状态机有哪些状态，由各个策略决定
*/

/*
 状态接口
 状态里有一整套决策参数，不同状态参数不一样
 Transit 依据当前数据决定跳到哪个状态，返回自己的名字表示不跳
 Decide  在状态确定后依据ticker做决策
*/
type FSMState interface {
	Name() string
	Enter(ctx krang.Context)
	Transit(ctx krang.Context, tick *krang.Tick) string
	Decide(ctx krang.Context, tick *krang.Tick)
}

/*
 处理器接口
 处理器在状态跳转前计算ticker引起的变化
*/
type FSMHandler interface {
	Name() string
	OnTick(ctx krang.Context, tick *krang.Tick)
}

/*
 状态机
 状态机只需管理handlers和各个状态的跳转
*/
type FSM struct {
	name     string
	state    FSMState // 当前状态
	handlers []FSMHandler
	states   map[string]FSMState // 全部的状态
}

func NewFSM(name string) *FSM {
	return &FSM{
		name:     name,
		state:    nil,
		handlers: make([]FSMHandler, 0),
		states:   make(map[string]FSMState),
	}
}

func (t *FSM) GetState() FSMState {
	return t.state
}

func (t *FSM) SetState(stn string) {
	st, ok := t.states[stn]
	if !ok {
		panic("SetState param invalid")
	}
	t.state = st
}

func (t *FSM) AddHandler(h FSMHandler) {
	if h == nil {
		panic("AddHandler param nil")
	}
	for _, v := range t.handlers {
		if v.Name() == h.Name() {
			panic("AddHandler repeat handler")
		}
	}
	t.handlers = append(t.handlers, h)
}

func (t *FSM) AddState(st FSMState) {
	if st == nil {
		panic("AddState param nil")
	}
	_, dup := t.states[st.Name()]
	if dup {
		panic("AddState repeat state")
	}
	t.states[st.Name()] = st
}

/*
 handlers -> 状态跳转 -> 决策
 跳到新状态后新状态也要检查一次是否继续跳，最多跳状态个数次
*/
func (t *FSM) Call(ctx krang.Context, tick *krang.Tick) {
	if t.state == nil {
		panic("FSM Call without state")
	}

	for _, v := range t.handlers {
		v.OnTick(ctx, tick)
	}

	for i := 0; i < len(t.states); i++ {
		oldst := t.state
		newStname := oldst.Transit(ctx, tick)
		if newStname == oldst.Name() {
			break
		}
		t.SetState(newStname)
		t.state.Enter(ctx)
		logs.Info("[%s]fsm 从[%s]状态跳转到[%s]状态", t.name, oldst.Name(), newStname)
	}

	t.state.Decide(ctx, tick)
}
