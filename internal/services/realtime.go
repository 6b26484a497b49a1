package services

import (
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// Event is a change notification pushed to subscribed clients. IncidentID is
// only set for comment changes.
type Event struct {
	Table      string `json:"table"`
	Action     string `json:"action"`
	IncidentID string `json:"incident_id,omitempty"`
}

// Event actions.
const (
	ActionInsert = "INSERT"
	ActionUpdate = "UPDATE"
)

// Subscribable tables.
const (
	TableIncidents = "crime_incidents"
	TableComments  = "incident_comments"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type subscriber struct {
	conn       *websocket.Conn
	table      string
	incidentID string // empty means all rows in the table

	writeMu sync.Mutex
}

func (c *subscriber) send(event Event) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteJSON(event)
}

// RealtimeHub fans change events out to websocket subscribers. Each subscriber
// watches one table, optionally scoped to one incident's comments.
type RealtimeHub struct {
	mu      sync.Mutex
	clients map[*subscriber]bool
}

var realtimeHub *RealtimeHub

// GetRealtimeHub returns the singleton hub.
func GetRealtimeHub() *RealtimeHub {
	if realtimeHub == nil {
		realtimeHub = NewRealtimeHub()
	}
	return realtimeHub
}

func NewRealtimeHub() *RealtimeHub {
	return &RealtimeHub{clients: make(map[*subscriber]bool)}
}

// ValidTable reports whether clients may subscribe to the named table.
func ValidTable(table string) bool {
	return table == TableIncidents || table == TableComments
}

// Subscribe upgrades the request to a websocket and registers it for events on
// table. The read loop only exists to notice the peer going away.
func (h *RealtimeHub) Subscribe(w http.ResponseWriter, r *http.Request, table, incidentID string) error {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	client := &subscriber{conn: conn, table: table, incidentID: incidentID}

	h.mu.Lock()
	h.clients[client] = true
	count := len(h.clients)
	h.mu.Unlock()
	log.Printf("Realtime client subscribed to %s (%d connected)", table, count)

	go h.readPump(client)
	return nil
}

func (h *RealtimeHub) readPump(client *subscriber) {
	defer h.drop(client)
	for {
		if _, _, err := client.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *RealtimeHub) drop(client *subscriber) {
	h.mu.Lock()
	delete(h.clients, client)
	h.mu.Unlock()
	client.conn.Close()
}

// Broadcast delivers event to every subscriber watching its table. A comment
// subscriber scoped to an incident only sees that incident's events. Write
// failures drop the client.
func (h *RealtimeHub) Broadcast(event Event) {
	h.mu.Lock()
	targets := make([]*subscriber, 0, len(h.clients))
	for client := range h.clients {
		if client.table != event.Table {
			continue
		}
		if client.incidentID != "" && client.incidentID != event.IncidentID {
			continue
		}
		targets = append(targets, client)
	}
	h.mu.Unlock()

	for _, client := range targets {
		if err := client.send(event); err != nil {
			log.Printf("Realtime write failed, dropping client: %v", err)
			h.drop(client)
		}
	}
}

// ClientCount reports how many subscribers are connected.
func (h *RealtimeHub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}
