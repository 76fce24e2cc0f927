package eventbus

import (
	"testing"
)

func TestBus_DeliveryOrder(t *testing.T) {
	b := New(0)

	var got []int
	b.Subscribe("ping", func(Event) { got = append(got, 1) })
	b.Subscribe("ping", func(Event) { got = append(got, 2) })
	b.Subscribe("ping", func(Event) { got = append(got, 3) })
	b.Subscribe("other", func(Event) { got = append(got, 99) })

	b.Emit("ping", nil)

	if len(got) != 3 {
		t.Fatalf("delivered to %d subscribers, want 3", len(got))
	}
	for i, v := range got {
		if v != i+1 {
			t.Fatalf("delivery order %v, want [1 2 3]", got)
		}
	}
}

func TestBus_SynchronousDelivery(t *testing.T) {
	b := New(0)

	delivered := false
	b.Subscribe("ping", func(ev Event) {
		delivered = true
		if ev.Type != "ping" || ev.Data["k"] != "v" {
			t.Errorf("event = %+v", ev)
		}
	})

	b.Emit("ping", map[string]any{"k": "v"})
	// Доставка обязана завершиться до возврата из Emit
	if !delivered {
		t.Fatal("emit returned before delivery")
	}
}

func TestBus_Unsubscribe(t *testing.T) {
	b := New(0)

	count := 0
	unsub := b.Subscribe("ping", func(Event) { count++ })
	b.Subscribe("ping", func(Event) {})

	b.Emit("ping", nil)
	unsub()
	b.Emit("ping", nil)

	if count != 1 {
		t.Errorf("handler called %d times, want 1", count)
	}
	if got := b.SubscriberCount("ping"); got != 1 {
		t.Errorf("SubscriberCount = %d, want 1", got)
	}

	// Повторная отписка безвредна
	unsub()
	if got := b.SubscriberCount("ping"); got != 1 {
		t.Errorf("double unsubscribe changed count to %d", got)
	}
}

func TestBus_PanicIsolation(t *testing.T) {
	b := New(0)

	var after bool
	b.Subscribe("boom", func(Event) { panic("listener bug") })
	b.Subscribe("boom", func(Event) { after = true })

	// Паника обработчика не должна дойти до излучателя
	b.Emit("boom", nil)

	if !after {
		t.Error("subscriber after the panicking one was not called")
	}
}

func TestBus_SequenceAndLog(t *testing.T) {
	b := New(3)

	for _, typ := range []string{"a", "b", "c", "d", "e"} {
		b.Emit(typ, nil)
	}

	log := b.Log()
	if len(log) != 3 {
		t.Fatalf("log len = %d, want 3 (capacity)", len(log))
	}
	// Старое вытеснено, порядок от старого к новому
	if log[0].Type != "c" || log[1].Type != "d" || log[2].Type != "e" {
		t.Errorf("log types = [%s %s %s], want [c d e]", log[0].Type, log[1].Type, log[2].Type)
	}
	if log[0].Seq != 3 || log[2].Seq != 5 {
		t.Errorf("seq = %d..%d, want 3..5", log[0].Seq, log[2].Seq)
	}
}

func TestBus_SubscribeDuringDelivery(t *testing.T) {
	b := New(0)

	lateCalled := false
	b.Subscribe("ping", func(Event) {
		// Подписка из обработчика не участвует в текущей доставке
		b.Subscribe("ping", func(Event) { lateCalled = true })
	})

	b.Emit("ping", nil)
	if lateCalled {
		t.Error("subscriber added during delivery received the same event")
	}

	b.Emit("ping", nil)
	if !lateCalled {
		t.Error("subscriber added during delivery missed the next event")
	}
}
