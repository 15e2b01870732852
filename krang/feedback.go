package krang

/*
 记录发出去还没有收到回报的请求
 key是trader返回的委托句柄
*/
type FeedBack interface {
	Add(stname string, handle string, tid uint32, data string)
	Remove(handle string)
	FindByStrategy(stname string) []*FeedData
}

type FeedData struct {
	Stname     string
	Handle     string
	Tid        uint32
	Data       string
	CheckTimes int // 已经检查过的次数
}

const FB_MAX_CHECKTIMES = 20 // 超过这么多个tick还没有回报，认为请求丢失

type feedback struct {
	m map[string]*FeedData
}

func NewFeedBack() FeedBack {
	return &feedback{
		m: make(map[string]*FeedData),
	}
}

func (t *feedback) Add(stname string, handle string, tid uint32, data string) {
	_, ok := t.m[handle]
	if ok {
		return
	}
	t.m[handle] = &FeedData{
		Stname: stname,
		Handle: handle,
		Tid:    tid,
		Data:   data,
	}
}

func (t *feedback) Remove(handle string) {
	delete(t.m, handle)
}

func (t *feedback) FindByStrategy(stname string) []*FeedData {
	ret := []*FeedData{}
	for _, v := range t.m {
		if v.Stname == stname {
			ret = append(ret, v)
		}
	}
	return ret
}
