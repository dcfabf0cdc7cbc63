package world

import "sync"

// workQueue неограниченная потокобезопасная FIFO-очередь
type workQueue[T any] struct {
	mu    sync.Mutex
	items []T
}

func newWorkQueue[T any]() *workQueue[T] {
	return &workQueue[T]{items: make([]T, 0, 64)}
}

// Push добавляет элемент в конец очереди
func (q *workQueue[T]) Push(item T) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = append(q.items, item)
}

// PushAll добавляет элементы в конец очереди, сохраняя их порядок
func (q *workQueue[T]) PushAll(items []T) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = append(q.items, items...)
}

// Pop извлекает первый элемент. Возвращает false, если очередь пуста.
func (q *workQueue[T]) Pop() (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		var zero T
		return zero, false
	}
	item := q.items[0]
	var zero T
	q.items[0] = zero
	q.items = q.items[1:]
	return item, true
}

// Len количество элементов в очереди
func (q *workQueue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Snapshot копия содержимого очереди в порядке извлечения
func (q *workQueue[T]) Snapshot() []T {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]T, len(q.items))
	copy(out, q.items)
	return out
}

// Clear очищает очередь
func (q *workQueue[T]) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = q.items[:0]
}
