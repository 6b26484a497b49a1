package services

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func startRealtimeServer(t *testing.T, hub *RealtimeHub) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		table := r.URL.Query().Get("table")
		if err := hub.Subscribe(w, r, table, r.URL.Query().Get("incident_id")); err != nil {
			t.Errorf("subscribe failed: %v", err)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func dialRealtime(t *testing.T, server *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/?" + query
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) (Event, bool) {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(time.Second))
	var event Event
	if err := conn.ReadJSON(&event); err != nil {
		return Event{}, false
	}
	return event, true
}

func TestHubBroadcastsToMatchingTable(t *testing.T) {
	hub := NewRealtimeHub()
	server := startRealtimeServer(t, hub)

	conn := dialRealtime(t, server, "table=crime_incidents")
	waitForClients(t, hub, 1)

	hub.Broadcast(Event{Table: TableIncidents, Action: ActionUpdate})

	event, ok := readEvent(t, conn)
	if !ok {
		t.Fatal("expected an event")
	}
	if event.Table != TableIncidents || event.Action != ActionUpdate {
		t.Errorf("unexpected event: %+v", event)
	}
}

func TestHubFiltersByTableAndIncident(t *testing.T) {
	hub := NewRealtimeHub()
	server := startRealtimeServer(t, hub)

	scoped := dialRealtime(t, server, "table=incident_comments&incident_id=abc")
	waitForClients(t, hub, 1)

	// Wrong table, then wrong incident; neither should arrive.
	hub.Broadcast(Event{Table: TableIncidents, Action: ActionUpdate})
	hub.Broadcast(Event{Table: TableComments, Action: ActionInsert, IncidentID: "xyz"})
	hub.Broadcast(Event{Table: TableComments, Action: ActionInsert, IncidentID: "abc"})

	event, ok := readEvent(t, scoped)
	if !ok {
		t.Fatal("expected the scoped event")
	}
	if event.IncidentID != "abc" {
		t.Errorf("scoped client saw the wrong event: %+v", event)
	}
}

func TestHubDropsDisconnectedClients(t *testing.T) {
	hub := NewRealtimeHub()
	server := startRealtimeServer(t, hub)

	conn := dialRealtime(t, server, "table=crime_incidents")
	waitForClients(t, hub, 1)

	conn.Close()
	waitForClients(t, hub, 0)

	// Broadcasting with no clients must not panic or block.
	hub.Broadcast(Event{Table: TableIncidents, Action: ActionUpdate})
}

func waitForClients(t *testing.T, hub *RealtimeHub, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for hub.ClientCount() != want {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %d clients, have %d", want, hub.ClientCount())
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestValidTable(t *testing.T) {
	if !ValidTable(TableIncidents) || !ValidTable(TableComments) {
		t.Error("known tables should validate")
	}
	if ValidTable("users") || ValidTable("") {
		t.Error("unknown tables should not validate")
	}
}
