package pkg

import "sync"

// KeyMutex 按 key（这里是 group id）分配互斥锁。
// 审批的"查人数+改状态"必须针对同一个小组串行执行，
// 不同小组之间互不竞争，锁不做回收（小组数量有限）。
type KeyMutex struct {
	locks sync.Map // key -> *sync.Mutex
}

func NewKeyMutex() *KeyMutex {
	return &KeyMutex{}
}

// Lock 锁住指定 key，返回解锁函数
func (m *KeyMutex) Lock(key uint64) func() {
	v, _ := m.locks.LoadOrStore(key, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}
