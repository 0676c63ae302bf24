package responses

import (
	"time"

	"carelink-service/internal/app/models"
)

type Auth struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expires_at"`
	Profile   *models.Profile `json:"profile"`
}
