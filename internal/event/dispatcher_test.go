package event

import (
	"sync"
	"testing"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/blues/escrow/internal/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeJournal 进程内事件日志
type fakeJournal struct {
	mu     sync.Mutex
	events []ledger.Event
}

func (j *fakeJournal) Append(ev ledger.Event) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.events = append(j.events, ev)
	return nil
}

func (j *fakeJournal) snapshot() []ledger.Event {
	j.mu.Lock()
	defer j.mu.Unlock()
	return append([]ledger.Event(nil), j.events...)
}

func TestDispatcherJournalOrder(t *testing.T) {
	journal := &fakeJournal{}
	d, err := NewDispatcher(journal, EventBus.New())
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		d.Emit(ledger.Event{
			Type:      ledger.EventProjectFunded,
			ProjectID: 0,
			Amount:    uint64(i),
		})
	}
	d.Close()

	events := journal.snapshot()
	require.Len(t, events, 10)
	// 落库顺序与提交顺序一致
	for i, ev := range events {
		assert.Equal(t, uint64(i), ev.Amount)
	}
}

func TestDispatcherSubscribe(t *testing.T) {
	journal := &fakeJournal{}
	d, err := NewDispatcher(journal, EventBus.New())
	require.NoError(t, err)
	defer d.Close()

	received := make(chan ledger.Event, 1)
	handler := func(ev ledger.Event) { received <- ev }
	require.NoError(t, d.Subscribe(ledger.EventFundsReleased, handler))

	d.Emit(ledger.Event{
		Type:      ledger.EventFundsReleased,
		ProjectID: 3,
		Amount:    57,
		Fee:       3,
	})

	select {
	case ev := <-received:
		assert.Equal(t, uint64(3), ev.ProjectID)
		assert.Equal(t, uint64(57), ev.Amount)
	case <-time.After(2 * time.Second):
		t.Fatal("事件未送达订阅者")
	}

	// 其他类型的事件不会误投
	require.NoError(t, d.Unsubscribe(ledger.EventFundsReleased, handler))
}
