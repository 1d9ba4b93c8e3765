package chat

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"savora/db"
	"savora/middleware"
	"savora/models"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Client struct {
	Conn   *websocket.Conn
	Send   chan []byte
	Room   string
	UserID string
}

type broadcastMsg struct {
	Room string
	Data []byte
}

// Hub fans messages out to every client in a room. One room per chat
// document; the room name is the chat id hex.
type Hub struct {
	rooms      map[string]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan broadcastMsg
	done       chan struct{}
	mu         sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		rooms:      make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan broadcastMsg),
		done:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case <-h.done:
			h.mu.Lock()
			for room, conns := range h.rooms {
				for c := range conns {
					close(c.Send)
				}
				delete(h.rooms, room)
			}
			h.mu.Unlock()
			return

		case c := <-h.register:
			h.mu.Lock()
			if h.rooms[c.Room] == nil {
				h.rooms[c.Room] = make(map[*Client]bool)
			}
			h.rooms[c.Room][c] = true
			h.mu.Unlock()

		case c := <-h.unregister:
			h.mu.Lock()
			if conns := h.rooms[c.Room]; conns != nil && conns[c] {
				delete(conns, c)
				close(c.Send)
			}
			h.mu.Unlock()

		case m := <-h.broadcast:
			h.mu.Lock()
			for c := range h.rooms[m.Room] {
				select {
				case c.Send <- m.Data:
				default:
					close(c.Send)
					delete(h.rooms[m.Room], c)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Stop shuts the hub down and closes every client send channel.
func (h *Hub) Stop() {
	close(h.done)
}

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// inboundPayload represents what clients send us:
type inboundPayload struct {
	Action  string `json:"action"`            // "chat", "edit", "delete"
	ID      string `json:"id,omitempty"`      // for edit/delete
	Content string `json:"content,omitempty"` // for chat/edit
}

// outboundPayload is what we broadcast to every client:
type outboundPayload struct {
	Action    string `json:"action"`
	ID        string `json:"id"`
	Room      string `json:"room,omitempty"`
	SenderID  string `json:"senderId,omitempty"`
	Content   string `json:"content,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

// WebSocketHandler upgrades the connection after validating the token query
// parameter and the caller's membership in the chat.
func WebSocketHandler(hub *Hub) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		room := ps.ByName("chat_id")

		claims, err := middleware.ValidateJWT("Bearer " + r.URL.Query().Get("token"))
		if err != nil {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		userID := claims.UserID

		if !isMember(room, userID) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Println("upgrade:", err)
			return
		}
		client := &Client{
			Conn:   conn,
			Send:   make(chan []byte, 256),
			Room:   room,
			UserID: userID,
		}

		// queue the last 30 messages ahead of live traffic. The client is
		// not registered yet, so nothing else touches Send; once the hub
		// owns the client, only the hub may write to or close the channel.
		if history, err := recentMessages(room); err == nil {
			queueHistory(client, history)
		} else {
			log.Println("history:", err)
		}

		hub.register <- client
		go writePump(client)
		go readPump(client, hub)
	}
}

func recentMessages(room string) ([]models.Message, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(30)

	cur, err := db.MessageCollection.Find(ctx, bson.M{"chatid": room}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var history []models.Message
	if err := cur.All(ctx, &history); err != nil {
		return nil, err
	}
	return history, nil
}

// queueHistory pushes stored messages onto the client's send buffer oldest
// first. The store returns them newest first. Must be called before the
// client is registered with the hub.
func queueHistory(c *Client, history []models.Message) {
	for i := len(history) - 1; i >= 0; i-- {
		m := history[i]
		out := outboundPayload{
			Action:    "chat",
			ID:        m.ID.Hex(),
			Room:      m.ChatID,
			SenderID:  m.UserID,
			Content:   m.Text,
			Timestamp: m.CreatedAt.Unix(),
		}
		data, err := json.Marshal(out)
		if err != nil {
			continue
		}
		select {
		case c.Send <- data:
		default:
			return
		}
	}
}

func isMember(room, userID string) bool {
	chatID, err := primitive.ObjectIDFromHex(room)
	if err != nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	cnt, err := db.ChatCollection.CountDocuments(ctx, bson.M{"_id": chatID, "users": userID})
	return err == nil && cnt > 0
}

func writePump(c *Client) {
	defer c.Conn.Close()
	for msg := range c.Send {
		if err := c.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			break
		}
	}
}

func readPump(c *Client, hub *Hub) {
	defer func() {
		hub.unregister <- c
		c.Conn.Close()
	}()

	for {
		_, raw, err := c.Conn.ReadMessage()
		if err != nil {
			break
		}

		var in inboundPayload
		if err := json.Unmarshal(raw, &in); err != nil {
			log.Println("invalid payload:", err)
			continue
		}

		switch in.Action {
		case "chat":
			msg, err := storeMessage(c.Room, c.UserID, in.Content)
			if err != nil {
				log.Println("insert:", err)
				continue
			}
			out := outboundPayload{
				Action:    "chat",
				ID:        msg.ID.Hex(),
				Room:      msg.ChatID,
				SenderID:  msg.UserID,
				Content:   msg.Text,
				Timestamp: msg.CreatedAt.Unix(),
			}
			if data, _ := json.Marshal(out); data != nil {
				hub.broadcast <- broadcastMsg{Room: c.Room, Data: data}
			}

		case "edit":
			if err := updateMessage(c.UserID, in.ID, in.Content); err != nil {
				log.Println("edit failed:", err)
				continue
			}
			out := outboundPayload{
				Action:    "edit",
				ID:        in.ID,
				Content:   in.Content,
				Timestamp: time.Now().Unix(),
			}
			if data, _ := json.Marshal(out); data != nil {
				hub.broadcast <- broadcastMsg{Room: c.Room, Data: data}
			}

		case "delete":
			if err := deleteMessage(c.UserID, in.ID); err != nil {
				log.Println("delete failed:", err)
				continue
			}
			out := outboundPayload{Action: "delete", ID: in.ID}
			if data, _ := json.Marshal(out); data != nil {
				hub.broadcast <- broadcastMsg{Room: c.Room, Data: data}
			}

		default:
			log.Println("unknown action:", in.Action)
		}
	}
}
