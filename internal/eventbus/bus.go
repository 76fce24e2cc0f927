package eventbus

import (
	"time"

	"github.com/Tanno-Finn/pockethero-3/pkg/logger"
)

// Event - одно доставленное событие шины
type Event struct {
	Seq  uint64         `json:"seq"`
	Type string         `json:"type"`
	Data map[string]any `json:"data,omitempty"`
	At   time.Time      `json:"at"`
}

// Handler потребляет событие. Emit синхронный: обработчик исполняется
// в кадре излучателя, до возврата из Emit.
type Handler func(ev Event)

// DefaultLogCapacity - емкость диагностического кольцевого журнала
const DefaultLogCapacity = 256

type subscriber struct {
	id      int
	handler Handler
}

// Bus - внутрипроцессная шина публикации/подписки.
//
// Модель однопоточная (ядро тикается одним потоком), поэтому мьютексов
// нет намеренно. Подписчики одного типа вызываются строго в порядке
// подписки; паника одного изолируется и не мешает остальным и излучателю.
type Bus struct {
	subscribers map[string][]subscriber
	nextID      int
	seq         uint64

	// Кольцевой журнал фиксированной емкости, старое вытесняется.
	// Только диагностика: debug-эндпоинты и журнал на диске.
	log      []Event
	logStart int
	logLen   int

	metrics *Metrics // nil, если метрики не подключены
}

func New(logCapacity int) *Bus {
	if logCapacity <= 0 {
		logCapacity = DefaultLogCapacity
	}
	return &Bus{
		subscribers: make(map[string][]subscriber),
		log:         make([]Event, logCapacity),
	}
}

// AttachMetrics подключает Prometheus-счетчики (только в серверном запуске;
// тесты работают без них)
func (b *Bus) AttachMetrics(m *Metrics) {
	b.metrics = m
}

// Subscribe регистрирует обработчик и возвращает функцию отписки.
// Отписка удаляет только эту конкретную регистрацию.
func (b *Bus) Subscribe(eventType string, h Handler) func() {
	b.nextID++
	id := b.nextID
	b.subscribers[eventType] = append(b.subscribers[eventType], subscriber{id: id, handler: h})

	return func() {
		subs := b.subscribers[eventType]
		for i, s := range subs {
			if s.id == id {
				b.subscribers[eventType] = append(subs[:i], subs[i+1:]...)
				return
			}
		}
	}
}

// Emit синхронно доставляет событие всем текущим подписчикам типа
// в порядке подписки. Реализует domain.EventPublisher.
func (b *Bus) Emit(eventType string, data map[string]any) {
	b.seq++
	ev := Event{Seq: b.seq, Type: eventType, Data: data, At: time.Now()}
	b.appendLog(ev)
	if b.metrics != nil {
		b.metrics.emitted.Inc()
	}

	// Снимок списка: подписка/отписка из обработчика не влияет
	// на текущую доставку.
	subs := make([]subscriber, len(b.subscribers[eventType]))
	copy(subs, b.subscribers[eventType])

	for _, s := range subs {
		b.deliver(s, ev)
	}
}

// deliver изолирует панику обработчика: логируем и продолжаем,
// ни соседи, ни излучатель пострадать не должны
func (b *Bus) deliver(s subscriber, ev Event) {
	defer func() {
		if r := recover(); r != nil {
			if b.metrics != nil {
				b.metrics.faults.Inc()
			}
			logger.Log.WithField("event_type", ev.Type).
				WithField("subscriber", s.id).
				Errorf("Event listener panicked: %v", r)
		}
	}()

	s.handler(ev)
	if b.metrics != nil {
		b.metrics.delivered.Inc()
	}
}

func (b *Bus) appendLog(ev Event) {
	capacity := len(b.log)
	idx := (b.logStart + b.logLen) % capacity
	b.log[idx] = ev
	if b.logLen < capacity {
		b.logLen++
	} else {
		b.logStart = (b.logStart + 1) % capacity // вытесняем самое старое
	}
}

// Log возвращает журнал от старого к новому
func (b *Bus) Log() []Event {
	out := make([]Event, 0, b.logLen)
	for i := 0; i < b.logLen; i++ {
		out = append(out, b.log[(b.logStart+i)%len(b.log)])
	}
	return out
}

// SubscriberCount - число активных подписчиков типа (для debug-эндпоинта)
func (b *Bus) SubscriberCount(eventType string) int {
	return len(b.subscribers[eventType])
}
