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

type AgencyController struct {
	Log           *zap.Logger
	AgencyUsecase contracts.AgencyUsecase
}

func NewAgencyController(logger *zap.Logger, agencyUsecase contracts.AgencyUsecase) *AgencyController {
	return &AgencyController{
		Log:           logger,
		AgencyUsecase: agencyUsecase,
	}
}

func (ctrl *AgencyController) FindAll(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromRequest(ctrl.Log, w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	request := &requests.FindAllAgencies{
		Pagination: utils.BuildPaginationRequest(r),
		Name:       query.Get(constvars.URLQueryParamName),
		State:      query.Get(constvars.URLQueryParamState),
		Service:    query.Get(constvars.URLQueryParamService),
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	agencies, total, err := ctrl.AgencyUsecase.FindAll(ctx, session, request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	pagination := utils.BuildPaginationResponse(total, request.Page, request.PageSize, utils.BaseURL(r))
	utils.BuildSuccessResponseWithPagination(w, constvars.StatusOK, constvars.GetAgenciesSuccess, pagination, agencies)
}

func (ctrl *AgencyController) FindByID(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromRequest(ctrl.Log, w, r)
	if !ok {
		return
	}
	agencyID, ok := urlParamID(ctrl.Log, w, r, constvars.URLParamAgencyID)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	agency, err := ctrl.AgencyUsecase.FindByID(ctx, session, agencyID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetAgencySuccess, agency)
}

func (ctrl *AgencyController) Create(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromRequest(ctrl.Log, w, r)
	if !ok {
		return
	}

	request, ok := ctrl.bindUpsertAgency(w, r)
	if !ok {
		return
	}

	// License lookups go to an external registry, give them more room.
	ctx, cancel := context.WithTimeout(r.Context(), 3*requestTimeout)
	defer cancel()

	agency, err := ctrl.AgencyUsecase.Create(ctx, session, request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.CreateAgencySuccess, agency)
}

func (ctrl *AgencyController) Update(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromRequest(ctrl.Log, w, r)
	if !ok {
		return
	}
	agencyID, ok := urlParamID(ctrl.Log, w, r, constvars.URLParamAgencyID)
	if !ok {
		return
	}

	request, ok := ctrl.bindUpsertAgency(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	agency, err := ctrl.AgencyUsecase.Update(ctx, session, agencyID, request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.UpdateAgencySuccess, agency)
}

func (ctrl *AgencyController) Delete(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromRequest(ctrl.Log, w, r)
	if !ok {
		return
	}
	agencyID, ok := urlParamID(ctrl.Log, w, r, constvars.URLParamAgencyID)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	err := ctrl.AgencyUsecase.Delete(ctx, session, agencyID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.DeleteAgencySuccess, nil)
}

func (ctrl *AgencyController) Verify(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromRequest(ctrl.Log, w, r)
	if !ok {
		return
	}
	agencyID, ok := urlParamID(ctrl.Log, w, r, constvars.URLParamAgencyID)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*requestTimeout)
	defer cancel()

	agency, err := ctrl.AgencyUsecase.Verify(ctx, session, agencyID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.VerifyAgencySuccess, agency)
}

func (ctrl *AgencyController) ListMembers(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromRequest(ctrl.Log, w, r)
	if !ok {
		return
	}
	agencyID, ok := urlParamID(ctrl.Log, w, r, constvars.URLParamAgencyID)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	members, err := ctrl.AgencyUsecase.ListMembers(ctx, session, agencyID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetMembersSuccess, members)
}

func (ctrl *AgencyController) AddMember(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromRequest(ctrl.Log, w, r)
	if !ok {
		return
	}
	agencyID, ok := urlParamID(ctrl.Log, w, r, constvars.URLParamAgencyID)
	if !ok {
		return
	}

	request := new(requests.AddAgencyMember)
	err := json.NewDecoder(r.Body).Decode(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	utils.SanitizeAddAgencyMemberRequest(request)

	err = utils.ValidateStruct(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	member, err := ctrl.AgencyUsecase.AddMember(ctx, session, agencyID, request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.AddMemberSuccess, member)
}

func (ctrl *AgencyController) RemoveMember(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromRequest(ctrl.Log, w, r)
	if !ok {
		return
	}
	agencyID, ok := urlParamID(ctrl.Log, w, r, constvars.URLParamAgencyID)
	if !ok {
		return
	}
	memberID, ok := urlParamID(ctrl.Log, w, r, constvars.URLParamMemberID)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	err := ctrl.AgencyUsecase.RemoveMember(ctx, session, agencyID, memberID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.RemoveMemberSuccess, nil)
}

func (ctrl *AgencyController) bindUpsertAgency(w http.ResponseWriter, r *http.Request) (*requests.UpsertAgency, bool) {
	request := new(requests.UpsertAgency)
	err := json.NewDecoder(r.Body).Decode(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return nil, false
	}
	utils.SanitizeUpsertAgencyRequest(request)

	err = utils.ValidateStruct(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return nil, false
	}
	return request, true
}
