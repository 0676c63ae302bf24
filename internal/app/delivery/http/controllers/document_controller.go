package controllers

import (
	"bufio"
	"context"
	"net/http"

	"carelink-service/internal/app/contracts"
	"carelink-service/internal/pkg/constvars"
	"carelink-service/internal/pkg/dto/requests"
	"carelink-service/internal/pkg/exceptions"
	"carelink-service/internal/pkg/utils"

	"go.uber.org/zap"
)

// sniffLength matches what http.DetectContentType inspects.
const sniffLength = 512

type DocumentController struct {
	Log             *zap.Logger
	DocumentUsecase contracts.DocumentUsecase
}

func NewDocumentController(logger *zap.Logger, documentUsecase contracts.DocumentUsecase) *DocumentController {
	return &DocumentController{
		Log:             logger,
		DocumentUsecase: documentUsecase,
	}
}

// Upload streams the multipart file part straight to object storage. The
// declared part content type is ignored in favour of the sniffed one.
func (ctrl *DocumentController) Upload(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromRequest(ctrl.Log, w, r)
	if !ok {
		return
	}
	switchRequestID, ok := urlParamID(ctrl.Log, w, r, constvars.URLParamSwitchRequestID)
	if !ok {
		return
	}

	// Fields are small, anything over 1MB of memory spills to temp files.
	err := r.ParseMultipartForm(1 << 20)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseMultipartForm(err))
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile(constvars.FormFieldFile)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseMultipartForm(err))
		return
	}
	defer file.Close()

	reader := bufio.NewReaderSize(file, sniffLength)
	head, err := reader.Peek(sniffLength)
	if err != nil && len(head) == 0 {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseMultipartForm(err))
		return
	}

	request := &requests.UploadDocument{
		SwitchRequestID: switchRequestID,
		DocumentType:    r.FormValue(constvars.FormFieldDocumentType),
		FileName:        header.Filename,
		ContentType:     http.DetectContentType(head),
		Size:            header.Size,
		File:            reader,
	}

	err = utils.ValidateStruct(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), uploadTimeout)
	defer cancel()

	document, err := ctrl.DocumentUsecase.Upload(ctx, session, request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.UploadDocumentSuccess, document)
}

func (ctrl *DocumentController) ListBySwitchRequest(w http.ResponseWriter, r *http.Request) {
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

	documents, err := ctrl.DocumentUsecase.ListBySwitchRequest(ctx, session, switchRequestID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetDocumentsSuccess, documents)
}

func (ctrl *DocumentController) FindByID(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromRequest(ctrl.Log, w, r)
	if !ok {
		return
	}
	documentID, ok := urlParamID(ctrl.Log, w, r, constvars.URLParamDocumentID)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	document, err := ctrl.DocumentUsecase.FindByID(ctx, session, documentID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetDocumentSuccess, document)
}

func (ctrl *DocumentController) Delete(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromRequest(ctrl.Log, w, r)
	if !ok {
		return
	}
	documentID, ok := urlParamID(ctrl.Log, w, r, constvars.URLParamDocumentID)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	err := ctrl.DocumentUsecase.Delete(ctx, session, documentID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.DeleteDocumentSuccess, nil)
}
