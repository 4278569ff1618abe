package dto

import "github.com/google/uuid"

// JoinGroupRequest - payload события join-group
type JoinGroupRequest struct {
	GroupName string `json:"groupName"`
	Password  string `json:"password"`
	Username  string `json:"username"`
}

// JoinSuccess - подтверждение входа в группу
type JoinSuccess struct {
	GroupName string    `json:"groupName"`
	Username  string    `json:"username"`
	GroupID   uuid.UUID `json:"groupId"`
}
