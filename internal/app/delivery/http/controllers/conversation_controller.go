package controllers

import (
	"context"
	"net/http"
	"strconv"

	"carelink-service/internal/app/config"
	"carelink-service/internal/app/contracts"
	"carelink-service/internal/pkg/constvars"
	"carelink-service/internal/pkg/dto/requests"
	"carelink-service/internal/pkg/dto/responses"
	"carelink-service/internal/pkg/exceptions"
	"carelink-service/internal/pkg/utils"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

type ConversationController struct {
	Log                 *zap.Logger
	ConversationUsecase contracts.ConversationUsecase
	RealtimeHub         contracts.RealtimeHub
	Upgrader            websocket.Upgrader
}

func NewConversationController(
	logger *zap.Logger,
	conversationUsecase contracts.ConversationUsecase,
	realtimeHub contracts.RealtimeHub,
	internalConfig *config.InternalConfig,
) *ConversationController {
	frontendDomain := internalConfig.App.FrontendDomain
	return &ConversationController{
		Log:                 logger,
		ConversationUsecase: conversationUsecase,
		RealtimeHub:         realtimeHub,
		Upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || frontendDomain == "" || frontendDomain == "*" || origin == frontendDomain
			},
		},
	}
}

func (ctrl *ConversationController) ListConversations(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromRequest(ctrl.Log, w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	conversations, err := ctrl.ConversationUsecase.ListConversations(ctx, session)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetConversationsSuccess, conversations)
}

func (ctrl *ConversationController) ListMessages(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromRequest(ctrl.Log, w, r)
	if !ok {
		return
	}
	conversationID, ok := urlParamID(ctrl.Log, w, r, constvars.URLParamConversationID)
	if !ok {
		return
	}

	query := r.URL.Query()
	before, err := utils.ParseOptionalRFC3339(query.Get(constvars.URLQueryParamBefore))
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	request := &requests.FindMessages{
		ConversationID: conversationID,
		Before:         before,
	}
	if rawLimit := query.Get(constvars.URLQueryParamLimit); rawLimit != "" {
		request.Limit, err = strconv.Atoi(rawLimit)
		if err != nil {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	messages, err := ctrl.ConversationUsecase.ListMessages(ctx, session, request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetMessagesSuccess, messages)
}

func (ctrl *ConversationController) SendMessage(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromRequest(ctrl.Log, w, r)
	if !ok {
		return
	}
	conversationID, ok := urlParamID(ctrl.Log, w, r, constvars.URLParamConversationID)
	if !ok {
		return
	}

	request := new(requests.SendMessage)
	err := json.NewDecoder(r.Body).Decode(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	utils.SanitizeSendMessageRequest(request)

	err = utils.ValidateStruct(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	message, err := ctrl.ConversationUsecase.SendMessage(ctx, session, conversationID, request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.SendMessageSuccess, message)
}

func (ctrl *ConversationController) MarkRead(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromRequest(ctrl.Log, w, r)
	if !ok {
		return
	}
	conversationID, ok := urlParamID(ctrl.Log, w, r, constvars.URLParamConversationID)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	updated, err := ctrl.ConversationUsecase.MarkRead(ctx, session, conversationID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.MarkMessagesReadSuccess, &responses.MarkedRead{Updated: updated})
}

// Subscribe upgrades to a websocket once the caller is known to be a
// participant. Errors before the upgrade are returned as regular JSON.
func (ctrl *ConversationController) Subscribe(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromRequest(ctrl.Log, w, r)
	if !ok {
		return
	}
	conversationID, ok := urlParamID(ctrl.Log, w, r, constvars.URLParamConversationID)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	conversation, err := ctrl.ConversationUsecase.Authorize(ctx, session, conversationID)
	cancel()
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	conn, err := ctrl.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the handshake error.
		ctrl.Log.Warn("ConversationController.Subscribe upgrade failed",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(r.Context())),
			zap.String(constvars.LoggingConversationIDKey, conversationID),
			zap.Error(err),
		)
		return
	}

	ctrl.RealtimeHub.Attach(r.Context(), conn, conversation.ID, session.ProfileID)
}
