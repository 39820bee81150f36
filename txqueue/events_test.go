package txqueue

import "testing"

func TestAdmittedFeedPublishesOnSuccess(t *testing.T) {
	q, src := newTestQueue(Config{})
	a := acct(1)
	src.balances[a] = 1000

	ch := make(chan AdmittedEvent, 1)
	q.Subscribe(ch)

	tx := newFakeTx(1, a, 5, 1, 100)
	if status := q.TryAdd(tx); status != StatusPending {
		t.Fatalf("admission: got %v", status)
	}

	select {
	case ev := <-ch:
		if ev.Tx != tx {
			t.Fatalf("event carried wrong tx")
		}
	default:
		t.Fatalf("expected an AdmittedEvent to be published")
	}
}

func TestAdmittedFeedSkipsOnRejection(t *testing.T) {
	q, src := newTestQueue(Config{})
	a := acct(1)
	src.balances[a] = 50 // below the transaction's fee

	ch := make(chan AdmittedEvent, 1)
	q.Subscribe(ch)

	tx := newFakeTx(1, a, 5, 1, 100)
	if status := q.TryAdd(tx); status != StatusError {
		t.Fatalf("admission: got %v, want Error", status)
	}

	select {
	case ev := <-ch:
		t.Fatalf("unexpected event published for rejected tx: %+v", ev)
	default:
	}
}
