package handlers

import (
	"context"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"group-chat-backend/internal/handlers/dto"
	"group-chat-backend/internal/models"
	"group-chat-backend/internal/session"
	"group-chat-backend/internal/websocket"
)

const (
	// Окно истории, отдаваемое при входе в группу
	historyLimit = 50

	// Максимальная длина сообщения чата
	maxMessageLength = 500
)

const (
	errFieldsRequired     = "All fields are required"
	errInvalidCredentials = "Invalid group name or password"
	errMessageTooLong     = "Message is too long"
	errSendFailed         = "Failed to send message"
)

type GroupStore interface {
	GetActiveGroupByName(name string) (*models.Group, error)
}

type MessageStore interface {
	SaveMessage(message *models.Message) error
	GetRecentMessages(groupID uuid.UUID, limit int) ([]models.Message, error)
}

// ChatHandler ведет протокол сессии: вход в группу, сообщения,
// индикацию набора и отключение
type ChatHandler struct {
	groups   GroupStore
	messages MessageStore
	hub      *websocket.Hub
	registry *session.Registry
	mirror   *session.RedisMirror
}

func NewChatHandler(groups GroupStore, messages MessageStore, hub *websocket.Hub, registry *session.Registry, mirror *session.RedisMirror) *ChatHandler {
	return &ChatHandler{
		groups:   groups,
		messages: messages,
		hub:      hub,
		registry: registry,
		mirror:   mirror,
	}
}

func (h *ChatHandler) HandleEvent(client *websocket.Client, env *websocket.Envelope) error {
	switch env.Event {
	case websocket.EventJoinGroup:
		return h.handleJoin(client, env)

	case websocket.EventSendMessage:
		return h.handleSendMessage(client, env)

	case websocket.EventTypingStart:
		return h.handleTyping(client, websocket.EventUserTyping)

	case websocket.EventTypingStop:
		return h.handleTyping(client, websocket.EventUserStopTyping)

	default:
		log.Printf("Unknown event type: %s", env.Event)
		return nil
	}
}

func (h *ChatHandler) handleJoin(client *websocket.Client, env *websocket.Envelope) error {
	var req dto.JoinGroupRequest
	if err := env.DecodeData(&req); err != nil {
		return err
	}

	groupName := strings.TrimSpace(req.GroupName)
	username := strings.TrimSpace(req.Username)

	if groupName == "" || strings.TrimSpace(req.Password) == "" || username == "" {
		return client.SendEvent(websocket.EventJoinError, errFieldsRequired)
	}

	// Несуществующая, выключенная группа и неверный пароль дают один и тот же
	// ответ, чтобы не раскрывать существование группы
	group, err := h.groups.GetActiveGroupByName(groupName)
	if err != nil {
		return client.SendEvent(websocket.EventJoinError, errInvalidCredentials)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(group.PasswordHash), []byte(req.Password)); err != nil {
		return client.SendEvent(websocket.EventJoinError, errInvalidCredentials)
	}

	// Повторный join на том же соединении заменяет старую сессию
	if old, ok := h.registry.Remove(client.ID); ok {
		h.hub.LeaveRoom(client)
		h.broadcastUserEvent(websocket.EventUserLeft, old.GroupName, old.Username, old.Username+" left the group", client.ID)
		h.mirror.Delete(context.Background(), client.ID)
	}

	// Клиент мог отключиться, пока шла проверка пароля
	if !h.hub.JoinRoom(group.Name, client) {
		return nil
	}

	sess := session.Session{
		ConnID:    client.ID,
		Username:  username,
		GroupID:   group.ID,
		GroupName: group.Name,
		JoinedAt:  time.Now(),
	}
	h.registry.Put(sess)
	h.mirror.Save(context.Background(), sess)

	if err := client.SendEvent(websocket.EventJoinSuccess, dto.JoinSuccess{
		GroupName: group.Name,
		Username:  username,
		GroupID:   group.ID,
	}); err != nil {
		return err
	}

	history := make([]dto.HistoryMessage, 0, historyLimit)
	messages, err := h.messages.GetRecentMessages(group.ID, historyLimit)
	if err != nil {
		log.Printf("Failed to load history for group %q: %v", group.Name, err)
	} else {
		for _, m := range messages {
			history = append(history, dto.HistoryMessage{
				Username:  m.Username,
				Message:   m.Body,
				Timestamp: m.CreatedAt,
			})
		}
	}

	if err := client.SendEvent(websocket.EventChatHistory, history); err != nil {
		return err
	}

	h.broadcastUserEvent(websocket.EventUserJoined, group.Name, username, username+" joined the group", client.ID)

	return nil
}

func (h *ChatHandler) handleSendMessage(client *websocket.Client, env *websocket.Envelope) error {
	sess, ok := h.registry.Get(client.ID)
	if !ok {
		// Сообщения до входа в группу молча игнорируются
		return nil
	}

	var req dto.SendMessageRequest
	if err := env.DecodeData(&req); err != nil {
		return err
	}

	text := strings.TrimSpace(req.Message)
	if text == "" {
		return nil
	}

	if utf8.RuneCountInString(text) > maxMessageLength {
		return client.SendEvent(websocket.EventMessageError, errMessageTooLong)
	}

	message := &models.Message{
		ID:        uuid.New(),
		GroupID:   sess.GroupID,
		Username:  sess.Username,
		Body:      text,
		CreatedAt: time.Now(),
	}

	if err := h.messages.SaveMessage(message); err != nil {
		log.Printf("Failed to save message: %v", err)
		return client.SendEvent(websocket.EventMessageError, errSendFailed)
	}

	// Отправитель тоже получает new-message из рассылки: у всех участников
	// комнаты один и тот же порядок сообщений
	data, err := websocket.MarshalEvent(websocket.EventNewMessage, dto.MessageResponse{
		ID:        message.ID,
		Username:  message.Username,
		Message:   message.Body,
		Timestamp: message.CreatedAt,
	})
	if err != nil {
		return err
	}

	h.hub.BroadcastAll(sess.GroupName, data)

	return nil
}

func (h *ChatHandler) handleTyping(client *websocket.Client, event websocket.Event) error {
	sess, ok := h.registry.Get(client.ID)
	if !ok {
		return nil
	}

	data, err := websocket.MarshalEvent(event, dto.TypingEvent{Username: sess.Username})
	if err != nil {
		return err
	}

	h.hub.Broadcast(sess.GroupName, data, client.ID)

	return nil
}

// HandleDisconnect разбирает сессию отключившегося соединения.
// Повторный вызов ничего не делает и ничего не рассылает.
func (h *ChatHandler) HandleDisconnect(client *websocket.Client) {
	sess, ok := h.registry.Remove(client.ID)
	if !ok {
		return
	}

	h.hub.LeaveRoom(client)
	h.broadcastUserEvent(websocket.EventUserLeft, sess.GroupName, sess.Username, sess.Username+" left the group", client.ID)
	h.mirror.Delete(context.Background(), client.ID)
}

// EvictGroup распускает живую комнату группы: каждому участнику уходит
// group-closed, сессии уничтожаются. Соединения остаются открытыми и могут
// войти в другую группу. Вызывается из административного CRUD.
func (h *ChatHandler) EvictGroup(groupName, reason string) {
	data, err := websocket.MarshalEvent(websocket.EventGroupClosed, dto.GroupClosed{Message: reason})
	if err != nil {
		return
	}

	for _, connID := range h.hub.CloseRoom(groupName, data) {
		h.registry.Remove(connID)
		h.mirror.Delete(context.Background(), connID)
	}
}

// RenameGroup переносит живую комнату и сессии под новое имя группы
func (h *ChatHandler) RenameGroup(oldName, newName string) {
	h.hub.RenameRoom(oldName, newName)
	if n := h.registry.Rename(oldName, newName); n > 0 {
		log.Printf("Group %q renamed to %q, %d live sessions updated", oldName, newName, n)
	}
}

func (h *ChatHandler) broadcastUserEvent(event websocket.Event, room, username, text string, exclude uuid.UUID) {
	data, err := websocket.MarshalEvent(event, dto.UserEvent{
		Username:  username,
		Message:   text,
		Timestamp: time.Now(),
	})
	if err != nil {
		return
	}

	h.hub.Broadcast(room, data, exclude)
}
