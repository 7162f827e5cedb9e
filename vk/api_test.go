package vk

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/SevereCloud/vksdk/v2/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Run switches the long-poll event list to per-event goroutines. One user's
// season scan sits on the request limiter for seconds, so with sequential
// dispatch every other VK user would be frozen behind it.
func TestEventDispatchDoesNotBlockOtherUsers(t *testing.T) {
	fl := events.NewFuncList()
	fl.Goroutine(true)

	done := make(chan int, 2)
	fl.MessageEvent(func(_ context.Context, obj events.MessageEventObject) {
		time.Sleep(300 * time.Millisecond)
		done <- obj.PeerID
	})

	start := time.Now()
	for peer := 1; peer <= 2; peer++ {
		obj := json.RawMessage(fmt.Sprintf(
			`{"user_id":%d,"peer_id":%d,"event_id":"event-%d","payload":{"command":"season:2025"}}`,
			peer, peer, peer))

		err := fl.Handler(context.Background(), events.GroupEvent{
			Type:   events.EventMessageEvent,
			Object: obj,
		})
		require.NoError(t, err)
	}

	for i := 0; i < 2; i++ {
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("event handler never finished")
		}
	}

	// both slow handlers overlapped instead of running back to back
	assert.Less(t, time.Since(start), 550*time.Millisecond)
}
