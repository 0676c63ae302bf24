package controllers

import (
	"context"
	"net/http"
	"sort"
	"time"

	"carelink-service/internal/pkg/constvars"
	"carelink-service/internal/pkg/dto/responses"
	"carelink-service/internal/pkg/utils"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

const healthCheckTimeout = 3 * time.Second

// HealthCheck reports whether a dependency is reachable.
type HealthCheck func(ctx context.Context) error

type HealthController struct {
	Log    *zap.Logger
	Checks map[string]HealthCheck
}

func NewHealthController(logger *zap.Logger, checks map[string]HealthCheck) *HealthController {
	return &HealthController{
		Log:    logger,
		Checks: checks,
	}
}

func (ctrl *HealthController) Check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	names := make([]string, 0, len(ctrl.Checks))
	for name := range ctrl.Checks {
		names = append(names, name)
	}
	sort.Strings(names)

	healthy := true
	components := make(map[string]string, len(names))
	for _, name := range names {
		err := ctrl.Checks[name](ctx)
		if err != nil {
			healthy = false
			components[name] = "down"
			ctrl.Log.Warn("HealthController.Check component unavailable",
				zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(r.Context())),
				zap.String("component", name),
				zap.Error(err),
			)
			continue
		}
		components[name] = "up"
	}

	if !healthy {
		w.Header().Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
		w.WriteHeader(constvars.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(responses.ResponseDTO{
			Success: false,
			Message: constvars.HealthCheckDegraded,
			Data:    components,
		})
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.HealthCheckOK, components)
}
