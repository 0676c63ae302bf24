package controllers

import (
	"context"
	"net/http"

	"carelink-service/internal/app/contracts"
	"carelink-service/internal/pkg/constvars"
	"carelink-service/internal/pkg/dto/requests"
	"carelink-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type AuditLogController struct {
	Log             *zap.Logger
	AuditLogUsecase contracts.AuditLogUsecase
}

func NewAuditLogController(logger *zap.Logger, auditLogUsecase contracts.AuditLogUsecase) *AuditLogController {
	return &AuditLogController{
		Log:             logger,
		AuditLogUsecase: auditLogUsecase,
	}
}

func (ctrl *AuditLogController) FindAll(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromRequest(ctrl.Log, w, r)
	if !ok {
		return
	}

	request := buildAuditLogFilter(r)

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	entries, total, err := ctrl.AuditLogUsecase.FindAll(ctx, session, request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	pagination := utils.BuildPaginationResponse(total, request.Page, request.PageSize, utils.BaseURL(r))
	utils.BuildSuccessResponseWithPagination(w, constvars.StatusOK, constvars.GetAuditLogsSuccess, pagination, entries)
}

func (ctrl *AuditLogController) Export(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromRequest(ctrl.Log, w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), uploadTimeout)
	defer cancel()

	content, fileName, err := ctrl.AuditLogUsecase.Export(ctx, session, buildAuditLogFilter(r))
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildFileResponse(w, constvars.MIMEApplicationXLSX, fileName, content)
}

func buildAuditLogFilter(r *http.Request) *requests.FindAllAuditLogs {
	query := r.URL.Query()
	return &requests.FindAllAuditLogs{
		Pagination: utils.BuildPaginationRequest(r),
		ActorID:    query.Get(constvars.URLQueryParamActorID),
		EntityType: query.Get(constvars.URLQueryParamEntityType),
		EntityID:   query.Get(constvars.URLQueryParamEntityID),
		Action:     query.Get(constvars.URLQueryParamAction),
	}
}
