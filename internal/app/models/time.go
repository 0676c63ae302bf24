package models

import "time"

type TimeModel struct {
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

func (m *TimeModel) SetCreatedAtUpdatedAt() {
	currentTime := time.Now().UTC()
	m.CreatedAt = currentTime
	m.UpdatedAt = currentTime
}

func (m *TimeModel) SetUpdatedAt() {
	m.UpdatedAt = time.Now().UTC()
}

func (m *TimeModel) SetDeletedAt() {
	currentTime := time.Now().UTC()
	m.DeletedAt = &currentTime
	m.SetUpdatedAt()
}
