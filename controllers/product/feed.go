package productcontroller

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/tfboppong-code/joeythebrand/catalog"
	"github.com/tfboppong-code/joeythebrand/models"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Feed pushes every catalog snapshot to connected websocket clients, so the
// shop re-renders without polling.
type Feed struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]bool
	cancel  func()
}

func NewFeed(reader *catalog.Reader) *Feed {
	f := &Feed{clients: map[*websocket.Conn]bool{}}
	f.cancel = reader.OnUpdate(f.broadcast)
	return f
}

func (f *Feed) Close() {
	f.cancel()
	f.mu.Lock()
	defer f.mu.Unlock()
	for conn := range f.clients {
		conn.Close()
	}
	f.clients = map[*websocket.Conn]bool{}
}

// Handler upgrades the connection and keeps it registered until the client
// goes away.
func (f *Feed) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		f.mu.Lock()
		f.clients[conn] = true
		f.mu.Unlock()

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				f.mu.Lock()
				delete(f.clients, conn)
				f.mu.Unlock()
				break
			}
		}
	}
}

func (f *Feed) broadcast(products []models.Product) {
	data, err := json.Marshal(gin.H{"products": products})
	if err != nil {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for conn := range f.clients {
		conn.WriteMessage(websocket.TextMessage, data)
	}
}
