package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"group-chat-backend/internal/database"
	"group-chat-backend/internal/models"
	"group-chat-backend/internal/websocket"
)

const minGroupPasswordLength = 4

type GroupHandler struct {
	db   *database.Database
	hub  *websocket.Hub
	chat *ChatHandler
}

func NewGroupHandler(db *database.Database, hub *websocket.Hub, chat *ChatHandler) *GroupHandler {
	return &GroupHandler{db: db, hub: hub, chat: chat}
}

// CreateGroup создает новую группу
func (h *GroupHandler) CreateGroup(c *gin.Context) {
	var req struct {
		GroupName string `json:"groupName"`
		Password  string `json:"password"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.GroupName == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Group name and password are required"})
		return
	}

	if len(req.Password) < minGroupPasswordLength {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Password must be at least 4 characters long"})
		return
	}

	if _, err := h.db.GetGroupByName(req.GroupName); err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Group already exists"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	group := &models.Group{
		ID:           uuid.New(),
		Name:         req.GroupName,
		PasswordHash: string(hash),
		CreatedBy:    "admin",
		IsActive:     true,
		CreatedAt:    time.Now(),
	}

	if err := h.db.CreateGroup(group); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Group created successfully",
		"group": gin.H{
			"name":      group.Name,
			"createdAt": group.CreatedAt,
		},
	})
}

// UpdateGroup переименовывает группу и/или меняет её пароль.
// Переименование переносит живую комнату и сессии под новое имя.
func (h *GroupHandler) UpdateGroup(c *gin.Context) {
	groupName := c.Param("groupName")

	var req struct {
		NewGroupName string `json:"newGroupName"`
		NewPassword  string `json:"newPassword"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	group, err := h.db.GetGroupByName(groupName)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
		return
	}

	renamedFrom := ""
	if req.NewGroupName != "" && req.NewGroupName != groupName {
		if _, err := h.db.GetGroupByName(req.NewGroupName); err == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "New group name already exists"})
			return
		}
		renamedFrom = group.Name
		group.Name = req.NewGroupName
	}

	if req.NewPassword != "" {
		if len(req.NewPassword) < minGroupPasswordLength {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Password must be at least 4 characters long"})
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		group.PasswordHash = string(hash)
	}

	if err := h.db.UpdateGroup(group); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if renamedFrom != "" {
		h.chat.RenameGroup(renamedFrom, group.Name)
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Group updated successfully",
		"group": gin.H{
			"name":      group.Name,
			"updatedAt": group.UpdatedAt,
		},
	})
}

// DeleteGroup удаляет группу со всеми сообщениями и выселяет живую комнату
func (h *GroupHandler) DeleteGroup(c *gin.Context) {
	groupName := c.Param("groupName")

	if _, err := h.db.GetGroupByName(groupName); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
		return
	}

	if err := h.db.DeleteGroup(groupName); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	h.chat.EvictGroup(groupName, "This group has been deleted")

	c.JSON(http.StatusOK, gin.H{"message": "Group and all associated messages deleted successfully"})
}

// ListGroups возвращает активные группы со статистикой
func (h *GroupHandler) ListGroups(c *gin.Context) {
	groups, err := h.db.GetActiveGroups()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	response := make([]gin.H, len(groups))
	for i, group := range groups {
		messageCount, _ := h.db.CountGroupMessages(group.ID)

		response[i] = gin.H{
			"name":         group.Name,
			"createdAt":    group.CreatedAt,
			"updatedAt":    group.UpdatedAt,
			"messageCount": messageCount,
			"onlineCount":  h.hub.RoomCount(group.Name),
		}
	}

	c.JSON(http.StatusOK, response)
}

// GetStats возвращает сводную статистику
func (h *GroupHandler) GetStats(c *gin.Context) {
	totalGroups, err := h.db.CountGroups()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	totalMessages, err := h.db.CountMessages()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	recent, err := h.db.GetRecentGroups(5)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	recentGroups := make([]gin.H, len(recent))
	for i, group := range recent {
		recentGroups[i] = gin.H{
			"name":      group.Name,
			"createdAt": group.CreatedAt,
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"totalGroups":   totalGroups,
		"totalMessages": totalMessages,
		"recentGroups":  recentGroups,
	})
}
