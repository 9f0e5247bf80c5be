package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Session struct {
	Id           uuid.UUID      `gorm:"type:uuid;primaryKey"`
	UserId       string         `gorm:"type:text;not null;index"`
	Text         string         `gorm:"type:text;not null"`
	Icon         string         `gorm:"type:text"`
	Profile      int            `gorm:"not null"`
	GScore       float64        `gorm:"not null"`
	Intervention datatypes.JSON `gorm:"type:jsonb"`
	DebugLog     datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt    time.Time      `gorm:"autoCreateTime"`
}

func (Session) TableName() string {
	return "sessions"
}

type ClusterScore struct {
	Id        uint      `gorm:"primaryKey;autoIncrement"`
	SessionId uuid.UUID `gorm:"type:uuid;not null;index"`
	UserId    string    `gorm:"type:text;not null;index"`
	Cluster   string    `gorm:"type:text;not null"`
	Score     float64   `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (ClusterScore) TableName() string {
	return "cluster_scores"
}
