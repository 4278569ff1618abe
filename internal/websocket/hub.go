package websocket

import (
	"log"
	"sync"

	"github.com/google/uuid"
)

// Hub держит все живые соединения и состав комнат.
// Комнаты именуются по имени группы; соединение состоит максимум в одной комнате.
type Hub struct {
	mu sync.RWMutex

	// Все зарегистрированные клиенты по id соединения
	clients map[uuid.UUID]*Client

	// Клиенты в комнатах
	rooms map[string]map[uuid.UUID]*Client

	// Комната каждого клиента
	memberOf map[uuid.UUID]string
}

// NewHub создает новый Hub
func NewHub() *Hub {
	return &Hub{
		clients:  make(map[uuid.UUID]*Client),
		rooms:    make(map[string]map[uuid.UUID]*Client),
		memberOf: make(map[uuid.UUID]string),
	}
}

// Register регистрирует нового клиента
func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client.ID] = client

	log.Printf("Client registered: %s", client.ID)
}

// Unregister убирает клиента из hub и его комнаты.
// Повторный вызов для уже убранного клиента безопасен.
func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.ID]; !ok {
		return
	}

	h.removeFromRoomUnsafe(client.ID)
	delete(h.clients, client.ID)
	close(client.Send)

	log.Printf("Client unregistered: %s", client.ID)
}

// JoinRoom добавляет клиента в комнату, создавая её при необходимости.
// Возвращает false, если клиент уже отключился — так завершение
// аутентификации после disconnect не воскрешает членство.
func (h *Hub) JoinRoom(room string, client *Client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.ID]; !ok {
		return false
	}

	// Соединение состоит максимум в одной комнате
	h.removeFromRoomUnsafe(client.ID)

	if _, ok := h.rooms[room]; !ok {
		h.rooms[room] = make(map[uuid.UUID]*Client)
	}
	h.rooms[room][client.ID] = client
	h.memberOf[client.ID] = room

	return true
}

// LeaveRoom удаляет клиента из его комнаты
func (h *Hub) LeaveRoom(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.removeFromRoomUnsafe(client.ID)
}

func (h *Hub) removeFromRoomUnsafe(clientID uuid.UUID) {
	room, ok := h.memberOf[clientID]
	if !ok {
		return
	}

	delete(h.memberOf, clientID)

	if members, ok := h.rooms[room]; ok {
		delete(members, clientID)
		if len(members) == 0 {
			delete(h.rooms, room)
		}
	}
}

// Broadcast доставляет событие всем участникам комнаты кроме exclude.
// Рассылка идет под write-блокировкой: порядок событий внутри комнаты
// равен порядку вызовов Broadcast. Переполненная очередь клиента не
// прерывает доставку остальным.
func (h *Hub) Broadcast(room string, message []byte, exclude uuid.UUID) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.broadcastUnsafe(room, message, exclude)
}

// BroadcastAll доставляет событие всем участникам комнаты, включая отправителя
func (h *Hub) BroadcastAll(room string, message []byte) {
	h.Broadcast(room, message, uuid.Nil)
}

func (h *Hub) broadcastUnsafe(room string, message []byte, exclude uuid.UUID) {
	for id, client := range h.rooms[room] {
		if id == exclude {
			continue
		}
		select {
		case client.Send <- message:
		default:
			log.Printf("Client %s send channel full", id)
		}
	}
}

// CloseRoom рассылает прощальное событие и распускает комнату.
// Возвращает id затронутых соединений; сами соединения остаются
// зарегистрированными и могут войти в другую группу.
func (h *Hub) CloseRoom(room string, message []byte) []uuid.UUID {
	h.mu.Lock()
	defer h.mu.Unlock()

	members, ok := h.rooms[room]
	if !ok {
		return nil
	}

	h.broadcastUnsafe(room, message, uuid.Nil)

	ids := make([]uuid.UUID, 0, len(members))
	for id := range members {
		ids = append(ids, id)
		delete(h.memberOf, id)
	}
	delete(h.rooms, room)

	return ids
}

// RenameRoom переносит состав комнаты под новое имя
func (h *Hub) RenameRoom(oldName, newName string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	members, ok := h.rooms[oldName]
	if !ok {
		return
	}

	delete(h.rooms, oldName)
	h.rooms[newName] = members

	for id := range members {
		h.memberOf[id] = newName
	}
}

// RoomCount возвращает число участников комнаты
func (h *Hub) RoomCount(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.rooms[room])
}

// Room возвращает имя комнаты клиента, если он в ней состоит
func (h *Hub) Room(clientID uuid.UUID) (string, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	room, ok := h.memberOf[clientID]
	return room, ok
}

// Stop закрывает все соединения hub
func (h *Hub) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for id, client := range h.clients {
		h.removeFromRoomUnsafe(id)
		delete(h.clients, id)
		close(client.Send)
		if client.Conn != nil {
			client.Conn.Close()
		}
	}
}
