package events

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ping struct {
	Seq int `json:"seq"`
}

func TestBusPublishSubscribe(t *testing.T) {
	bus := NewBus(BusConfig{})
	defer bus.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	msgs, err := bus.Subscribe(ctx, "pings")
	require.NoError(t, err)

	got := make(chan ping, 1)
	go func() {
		var p ping
		if err := Decode(<-msgs, &p); err == nil {
			got <- p
		}
	}()

	require.NoError(t, bus.Publish(ctx, "pings", ping{Seq: 7}))

	select {
	case p := <-got:
		assert.Equal(t, 7, p.Seq)
	case <-time.After(time.Second):
		t.Fatal("message not delivered")
	}
}

func TestBusDeliversInPublishOrder(t *testing.T) {
	bus := NewBus(BusConfig{})
	defer bus.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	msgs, err := bus.Subscribe(ctx, "pings")
	require.NoError(t, err)

	const n = 50
	seen := make(chan []int, 1)
	go func() {
		var seqs []int
		for msg := range msgs {
			var p ping
			if err := Decode(msg, &p); err != nil {
				continue
			}
			seqs = append(seqs, p.Seq)
			if len(seqs) == n {
				seen <- seqs
				return
			}
		}
	}()

	want := make([]int, n)
	for i := 0; i < n; i++ {
		want[i] = i
		require.NoError(t, bus.Publish(ctx, "pings", ping{Seq: i}))
	}

	select {
	case got := <-seen:
		assert.Equal(t, want, got)
	case <-time.After(2 * time.Second):
		t.Fatal("messages not delivered")
	}
}

func TestBusPublishUnencodable(t *testing.T) {
	bus := NewBus(BusConfig{})
	defer bus.Close()

	err := bus.Publish(context.Background(), "pings", make(chan int))
	assert.Error(t, err)
}

func TestBusMalformedPayloadDoesNotHoldPublisher(t *testing.T) {
	bus := NewBus(BusConfig{})
	defer bus.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	msgs, err := bus.Subscribe(ctx, "pings")
	require.NoError(t, err)

	decodeErr := make(chan error, 1)
	go func() {
		var p ping
		decodeErr <- Decode(<-msgs, &p)
	}()

	published := make(chan error, 1)
	go func() { published <- bus.Publish(ctx, "pings", "not a ping") }()

	select {
	case err := <-published:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("publish blocked on a malformed payload")
	}
	assert.Error(t, <-decodeErr)
}
