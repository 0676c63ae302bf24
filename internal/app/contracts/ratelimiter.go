package contracts

import (
	"context"
	"time"
)

type ApplyResourceLimiterInput struct {
	// ResourceName is the entity being limited, e.g. a sender profile id.
	ResourceName string
	// LimiterGroupName namespaces the limiter key.
	LimiterGroupName  string
	WindowDurationSec int
	MaxQuota          int
	// NowUTC is optional; zero means time.Now().UTC().
	NowUTC time.Time
}

type ApplyResourceLimiterOutput struct {
	Allowed        bool
	RetryAfterSecs int
}

type ResourceLimiter interface {
	ApplyResourceLimiter(ctx context.Context, in *ApplyResourceLimiterInput) (*ApplyResourceLimiterOutput, error)
}
