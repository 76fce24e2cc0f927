package engine

import (
	"container/heap"

	"github.com/Tanno-Finn/pockethero-3/internal/domain"
)

// scheduleItem обертка для элемента очереди приоритетов
type scheduleItem struct {
	Value *domain.Entity // Сама сущность
	DueAt float64        // Часы сессии, когда сущности пора действовать
	Index int            // Индекс в куче (нужен для update)
}

// dueQueue реализует heap.Interface и хранит scheduleItems
type dueQueue []*scheduleItem

func (pq dueQueue) Len() int { return len(pq) }

func (pq dueQueue) Less(i, j int) bool {
	// MinHeap: чем меньше срок, тем раньше очередь
	return pq[i].DueAt < pq[j].DueAt
}

func (pq dueQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].Index = i
	pq[j].Index = j
}

func (pq *dueQueue) Push(x interface{}) {
	n := len(*pq)
	item := x.(*scheduleItem)
	item.Index = n
	*pq = append(*pq, item)
}

func (pq *dueQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil  // избегаем утечки памяти
	item.Index = -1 // для безопасности
	*pq = old[0 : n-1]
	return item
}

// Scheduler - очередь сущностей по срокам действия (часы сессии, сек).
// Используется для NPC: каждый тик снимаются только те, чей срок настал.
type Scheduler struct {
	queue dueQueue
	items map[string]*scheduleItem // по ID сущности
}

func NewScheduler() *Scheduler {
	s := &Scheduler{items: make(map[string]*scheduleItem)}
	heap.Init(&s.queue)
	return s
}

// Add ставит сущность в очередь. Повторный Add того же ID — Update.
func (s *Scheduler) Add(e *domain.Entity, dueAt float64) {
	if item, ok := s.items[e.ID]; ok {
		item.Value = e
		item.DueAt = dueAt
		heap.Fix(&s.queue, item.Index)
		return
	}
	item := &scheduleItem{Value: e, DueAt: dueAt}
	s.items[e.ID] = item
	heap.Push(&s.queue, item)
}

// Update переносит срок сущности
func (s *Scheduler) Update(id string, dueAt float64) bool {
	item, ok := s.items[id]
	if !ok {
		return false
	}
	item.DueAt = dueAt
	heap.Fix(&s.queue, item.Index)
	return true
}

// Remove убирает сущность из очереди
func (s *Scheduler) Remove(id string) bool {
	item, ok := s.items[id]
	if !ok {
		return false
	}
	heap.Remove(&s.queue, item.Index)
	delete(s.items, id)
	return true
}

// PopDue снимает все сущности со сроком <= clock.
// Порядок — по возрастанию срока.
func (s *Scheduler) PopDue(clock float64) []*domain.Entity {
	var due []*domain.Entity
	for s.queue.Len() > 0 && s.queue[0].DueAt <= clock {
		item := heap.Pop(&s.queue).(*scheduleItem)
		delete(s.items, item.Value.ID)
		due = append(due, item.Value)
	}
	return due
}

// Clear опустошает очередь (смена зоны). Элементы зануляются, чтобы
// базовый массив не держал ссылки на сущности покинутой зоны.
func (s *Scheduler) Clear() {
	for i := range s.queue {
		s.queue[i] = nil
	}
	s.queue = s.queue[:0]
	s.items = make(map[string]*scheduleItem)
}

// Len - число сущностей в очереди
func (s *Scheduler) Len() int { return s.queue.Len() }
