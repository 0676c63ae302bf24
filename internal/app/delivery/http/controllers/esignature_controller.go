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

type ESignatureController struct {
	Log               *zap.Logger
	ESignatureUsecase contracts.ESignatureUsecase
}

func NewESignatureController(logger *zap.Logger, esignatureUsecase contracts.ESignatureUsecase) *ESignatureController {
	return &ESignatureController{
		Log:               logger,
		ESignatureUsecase: esignatureUsecase,
	}
}

func (ctrl *ESignatureController) Sign(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromRequest(ctrl.Log, w, r)
	if !ok {
		return
	}

	request := new(requests.CreateESignature)
	err := json.NewDecoder(r.Body).Decode(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	utils.SanitizeCreateESignatureRequest(request)

	err = utils.ValidateStruct(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	// Evidence of where the signature came from, never taken from the body.
	request.IPAddress = utils.ClientIP(r)
	request.UserAgent = r.UserAgent()

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	signature, err := ctrl.ESignatureUsecase.Sign(ctx, session, request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.CreateSignatureSuccess, signature)
}

func (ctrl *ESignatureController) FindByID(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromRequest(ctrl.Log, w, r)
	if !ok {
		return
	}
	signatureID, ok := urlParamID(ctrl.Log, w, r, constvars.URLParamSignatureID)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	signature, err := ctrl.ESignatureUsecase.FindByID(ctx, session, signatureID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetSignatureSuccess, signature)
}

func (ctrl *ESignatureController) ListBySwitchRequest(w http.ResponseWriter, r *http.Request) {
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

	signatures, err := ctrl.ESignatureUsecase.ListBySwitchRequest(ctx, session, switchRequestID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetSignaturesSuccess, signatures)
}

func (ctrl *ESignatureController) Verify(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromRequest(ctrl.Log, w, r)
	if !ok {
		return
	}
	signatureID, ok := urlParamID(ctrl.Log, w, r, constvars.URLParamSignatureID)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	verification, err := ctrl.ESignatureUsecase.Verify(ctx, session, signatureID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.VerifySignatureSuccess, verification)
}
