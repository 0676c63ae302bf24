package controllers

import (
	"context"
	"net/http"

	"carelink-service/internal/app/contracts"
	"carelink-service/internal/pkg/constvars"
	"carelink-service/internal/pkg/dto/requests"
	"carelink-service/internal/pkg/exceptions"
	"carelink-service/internal/pkg/utils"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type SwitchRequestController struct {
	Log                  *zap.Logger
	SwitchRequestUsecase contracts.SwitchRequestUsecase
}

func NewSwitchRequestController(logger *zap.Logger, switchRequestUsecase contracts.SwitchRequestUsecase) *SwitchRequestController {
	return &SwitchRequestController{
		Log:                  logger,
		SwitchRequestUsecase: switchRequestUsecase,
	}
}

func (ctrl *SwitchRequestController) Create(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromRequest(ctrl.Log, w, r)
	if !ok {
		return
	}

	request := new(requests.CreateSwitchRequest)
	err := json.NewDecoder(r.Body).Decode(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	utils.SanitizeCreateSwitchRequest(request)

	err = utils.ValidateStruct(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	detail, err := ctrl.SwitchRequestUsecase.Create(ctx, session, request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.CreateSwitchRequestSuccess, detail)
}

func (ctrl *SwitchRequestController) FindAll(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromRequest(ctrl.Log, w, r)
	if !ok {
		return
	}

	request := &requests.FindAllSwitchRequests{
		Pagination: utils.BuildPaginationRequest(r),
		Status:     r.URL.Query().Get(constvars.URLQueryParamStatus),
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	switchRequests, total, err := ctrl.SwitchRequestUsecase.FindAll(ctx, session, request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	pagination := utils.BuildPaginationResponse(total, request.Page, request.PageSize, utils.BaseURL(r))
	utils.BuildSuccessResponseWithPagination(w, constvars.StatusOK, constvars.GetSwitchRequestsSuccess, pagination, switchRequests)
}

func (ctrl *SwitchRequestController) FindByID(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromRequest(ctrl.Log, w, r)
	if !ok {
		return
	}
	switchRequestID, ok := urlParamID(ctrl.Log, w, r, constvars.URLParamSwitchRequestID)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	detail, err := ctrl.SwitchRequestUsecase.FindByID(ctx, session, switchRequestID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetSwitchRequestSuccess, detail)
}

func (ctrl *SwitchRequestController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromRequest(ctrl.Log, w, r)
	if !ok {
		return
	}
	switchRequestID, ok := urlParamID(ctrl.Log, w, r, constvars.URLParamSwitchRequestID)
	if !ok {
		return
	}

	request := new(requests.UpdateSwitchRequestStatus)
	err := json.NewDecoder(r.Body).Decode(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	err = utils.ValidateStruct(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	detail, err := ctrl.SwitchRequestUsecase.UpdateStatus(ctx, session, switchRequestID, request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.UpdateSwitchRequestStatusSuccess, detail)
}

func (ctrl *SwitchRequestController) History(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromRequest(ctrl.Log, w, r)
	if !ok {
		return
	}
	switchRequestID, ok := urlParamID(ctrl.Log, w, r, constvars.URLParamSwitchRequestID)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	history, err := ctrl.SwitchRequestUsecase.History(ctx, session, switchRequestID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetSwitchRequestHistorySuccess, history)
}
