package controllers

import (
	"net/http"
	"time"

	"carelink-service/internal/app/models"
	"carelink-service/internal/pkg/exceptions"
	"carelink-service/internal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const (
	requestTimeout = 10 * time.Second
	uploadTimeout  = 2 * time.Minute
)

func sessionFromRequest(log *zap.Logger, w http.ResponseWriter, r *http.Request) (*models.Session, bool) {
	session, err := utils.GetSessionFromContext(r.Context())
	if err != nil {
		utils.BuildErrorResponse(log, w, exceptions.ErrTokenMissing(err))
		return nil, false
	}
	return session, true
}

func urlParamID(log *zap.Logger, w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	value := chi.URLParam(r, name)
	err := utils.ValidateUrlParamID(value)
	if err != nil {
		utils.BuildErrorResponse(log, w, exceptions.ErrURLParamIDValidation(err, name))
		return "", false
	}
	return value, true
}
