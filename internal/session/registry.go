package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Session - аутентифицированная привязка соединения к группе.
// Создается при успешном входе, уничтожается при отключении.
type Session struct {
	ConnID    uuid.UUID `json:"connId"`
	Username  string    `json:"username"`
	GroupID   uuid.UUID `json:"groupId"`
	GroupName string    `json:"groupName"`
	JoinedAt  time.Time `json:"joinedAt"`
}

// Registry - реестр живых сессий по id соединения
type Registry struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
}

func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[uuid.UUID]*Session),
	}
}

func (r *Registry) Get(connID uuid.UUID) (Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sessions[connID]
	if !ok {
		return Session{}, false
	}
	return *s, true
}

func (r *Registry) Put(s Session) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[s.ConnID] = &s
}

// Remove удаляет сессию и сообщает, существовала ли она.
// Повторное удаление безопасно - так disconnect остается идемпотентным.
func (r *Registry) Remove(connID uuid.UUID) (Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[connID]
	if !ok {
		return Session{}, false
	}
	delete(r.sessions, connID)
	return *s, true
}

// Rename переписывает имя группы в живых сессиях при переименовании группы
// администратором. Возвращает число затронутых сессий.
func (r *Registry) Rename(oldGroup, newGroup string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for _, s := range r.sessions {
		if s.GroupName == oldGroup {
			s.GroupName = newGroup
			n++
		}
	}
	return n
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.sessions)
}
