package live

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradejournal/src/dto"
)

func TestHubDeliversEvents(t *testing.T) {
	hub := NewHub()
	server := httptest.NewServer(hub.Handler())
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	// wait for the subscription to register
	deadline := time.Now().Add(2 * time.Second)
	for hub.SubscriberCount() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	require.Equal(t, 1, hub.SubscriberCount())

	hub.Publish(Event{
		Type:  EventTradeCreated,
		Trade: &dto.Trade{ID: "abc", Symbol: "BTC/USDT"},
	})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))

	var received Event
	require.NoError(t, conn.ReadJSON(&received))
	assert.Equal(t, EventTradeCreated, received.Type)
	require.NotNil(t, received.Trade)
	assert.Equal(t, "abc", received.Trade.ID)
}

func TestHubPublishWithoutSubscribers(t *testing.T) {
	hub := NewHub()

	// must not block or panic
	hub.Publish(Event{Type: EventTradeDeleted, ID: "gone"})

	assert.Equal(t, 0, hub.SubscriberCount())
}
