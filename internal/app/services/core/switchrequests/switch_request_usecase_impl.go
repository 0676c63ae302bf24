package switchrequests

import (
	"context"
	"errors"
	"fmt"
	"time"

	"carelink-service/internal/app/config"
	"carelink-service/internal/app/contracts"
	"carelink-service/internal/app/models"
	"carelink-service/internal/app/services/shared/metrics"
	"carelink-service/internal/pkg/constvars"
	"carelink-service/internal/pkg/dto/requests"
	"carelink-service/internal/pkg/dto/responses"
	"carelink-service/internal/pkg/exceptions"
	"carelink-service/internal/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	outcomeApplied  = "applied"
	outcomeRejected = "rejected"
	outcomeConflict = "conflict"
)

type switchRequestUsecase struct {
	SwitchRequestRepository contracts.SwitchRequestRepository
	AgencyRepository        contracts.AgencyRepository
	AgencyMemberRepository  contracts.AgencyMemberRepository
	ProfileRepository       contracts.ProfileRepository
	ConversationRepository  contracts.ConversationRepository
	AccessGuard             contracts.AccessGuard
	NotificationUsecase     contracts.NotificationUsecase
	AuditLogUsecase         contracts.AuditLogUsecase
	InternalConfig          *config.InternalConfig
	Log                     *zap.Logger
}

func NewSwitchRequestUsecase(
	switchRequestRepository contracts.SwitchRequestRepository,
	agencyRepository contracts.AgencyRepository,
	agencyMemberRepository contracts.AgencyMemberRepository,
	profileRepository contracts.ProfileRepository,
	conversationRepository contracts.ConversationRepository,
	accessGuard contracts.AccessGuard,
	notificationUsecase contracts.NotificationUsecase,
	auditLogUsecase contracts.AuditLogUsecase,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.SwitchRequestUsecase {
	return &switchRequestUsecase{
		SwitchRequestRepository: switchRequestRepository,
		AgencyRepository:        agencyRepository,
		AgencyMemberRepository:  agencyMemberRepository,
		ProfileRepository:       profileRepository,
		ConversationRepository:  conversationRepository,
		AccessGuard:             accessGuard,
		NotificationUsecase:     notificationUsecase,
		AuditLogUsecase:         auditLogUsecase,
		InternalConfig:          internalConfig,
		Log:                     logger,
	}
}

func (uc *switchRequestUsecase) Create(ctx context.Context, session *models.Session, request *requests.CreateSwitchRequest) (*responses.SwitchRequestDetail, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("switchRequestUsecase.Create called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingProfileIDKey, session.ProfileID),
		zap.String(constvars.LoggingAgencyIDKey, request.NewAgencyID),
	)

	if !session.IsPatient() {
		return nil, exceptions.ErrRowAccessDenied(errors.New("only patients create switch requests"), session.ProfileID, constvars.AuditEntitySwitchRequest, "*")
	}

	patient, err := uc.ProfileRepository.FindByID(ctx, session.ProfileID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, exceptions.ErrNotFound(nil, constvars.AuditEntityProfile, session.ProfileID)
	}

	newAgency, err := uc.AgencyRepository.FindByID(ctx, request.NewAgencyID)
	if err != nil {
		return nil, err
	}
	if newAgency == nil {
		return nil, exceptions.ErrNotFound(nil, constvars.AuditEntityAgency, request.NewAgencyID)
	}
	if !newAgency.IsAvailable() {
		return nil, exceptions.ErrAgencyNotAvailable(nil, newAgency.ID)
	}

	currentAgencyID := request.CurrentAgencyID
	if currentAgencyID == "" {
		currentAgencyID = patient.CurrentAgencyID
	}
	if currentAgencyID == newAgency.ID {
		return nil, exceptions.ErrSameAgency(nil, newAgency.ID)
	}

	exists, err := uc.SwitchRequestRepository.ExistsOpenForAgency(ctx, session.ProfileID, newAgency.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, exceptions.ErrOpenSwitchRequestExists(nil, session.ProfileID, newAgency.ID)
	}

	preferredStartDate, err := utils.ParseOptionalDate(request.PreferredStartDate)
	if err != nil {
		return nil, exceptions.ErrInputValidation(err)
	}

	now := time.Now().UTC()
	sr := &models.SwitchRequest{
		ID:                 uuid.NewString(),
		PatientID:          session.ProfileID,
		CurrentAgencyID:    currentAgencyID,
		NewAgencyID:        newAgency.ID,
		Status:             constvars.SwitchRequestStatusSubmitted,
		Reason:             request.Reason,
		CareNeeds:          request.CareNeeds,
		PreferredStartDate: preferredStartDate,
		SubmittedAt:        now,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	history := &models.SwitchRequestStatusHistory{
		ID:              uuid.NewString(),
		SwitchRequestID: sr.ID,
		ToStatus:        sr.Status,
		ActorID:         session.ProfileID,
		CreatedAt:       now,
	}
	conversation := &models.Conversation{
		ID:              uuid.NewString(),
		SwitchRequestID: sr.ID,
		PatientID:       sr.PatientID,
		AgencyID:        sr.NewAgencyID,
		CreatedAt:       now,
	}

	err = uc.SwitchRequestRepository.Create(ctx, sr, history, conversation)
	if err != nil {
		uc.Log.Error("switchRequestUsecase.Create error creating switch request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	metrics.RecordSwitchRequestTransition("", sr.Status, outcomeApplied)

	uc.notifyAgency(ctx, sr, constvars.NotificationTypeSwitchRequestSubmitted,
		"New switch request",
		fmt.Sprintf("%s asked to switch their care to %s.", patient.FullName, newAgency.Name),
	)

	uc.AuditLogUsecase.Record(ctx, &models.AuditLog{
		ActorID:    session.ProfileID,
		ActorRole:  session.Role,
		Action:     constvars.AuditActionCreate,
		EntityType: constvars.AuditEntitySwitchRequest,
		EntityID:   sr.ID,
		Metadata: map[string]interface{}{
			"new_agency_id":     sr.NewAgencyID,
			"current_agency_id": sr.CurrentAgencyID,
		},
	})

	uc.Log.Info("switchRequestUsecase.Create succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSwitchRequestIDKey, sr.ID),
	)
	return &responses.SwitchRequestDetail{
		SwitchRequest:      sr,
		NewAgency:          newAgency,
		ConversationID:     conversation.ID,
		AllowedTransitions: allowedTransitions(sr, transitionActor{session: session}),
	}, nil
}

func (uc *switchRequestUsecase) FindAll(ctx context.Context, session *models.Session, request *requests.FindAllSwitchRequests) ([]models.SwitchRequest, int, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("switchRequestUsecase.FindAll called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingPageKey, request.Page),
		zap.Int(constvars.LoggingPageSizeKey, request.PageSize),
	)

	request.PatientID = ""
	request.MemberProfileID = ""
	switch {
	case session.IsPatient():
		request.PatientID = session.ProfileID
	case session.IsAgency():
		request.MemberProfileID = session.ProfileID
	}

	switchRequests, total, err := uc.SwitchRequestRepository.FindAll(ctx, request)
	if err != nil {
		uc.Log.Error("switchRequestUsecase.FindAll error fetching switch requests",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, 0, err
	}

	uc.Log.Info("switchRequestUsecase.FindAll succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingCountKey, len(switchRequests)),
	)
	return switchRequests, total, nil
}

func (uc *switchRequestUsecase) FindByID(ctx context.Context, session *models.Session, switchRequestID string) (*responses.SwitchRequestDetail, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("switchRequestUsecase.FindByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSwitchRequestIDKey, switchRequestID),
	)

	sr, err := uc.LoadVisible(ctx, session, switchRequestID)
	if err != nil {
		return nil, err
	}
	return uc.buildDetail(ctx, session, sr)
}

// UpdateStatus moves a switch request along one edge of the transition
// table. The write is guarded on the status read here, so a concurrent
// transition makes this one fail with a conflict instead of overwriting it.
func (uc *switchRequestUsecase) UpdateStatus(ctx context.Context, session *models.Session, switchRequestID string, request *requests.UpdateSwitchRequestStatus) (*responses.SwitchRequestDetail, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("switchRequestUsecase.UpdateStatus called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSwitchRequestIDKey, switchRequestID),
		zap.String(constvars.LoggingToStatusKey, request.Status),
	)

	sr, err := uc.LoadVisible(ctx, session, switchRequestID)
	if err != nil {
		return nil, err
	}

	if sr.IsTerminal() {
		metrics.RecordSwitchRequestTransition(sr.Status, request.Status, outcomeRejected)
		return nil, exceptions.ErrSwitchRequestClosed(nil, sr.ID, sr.Status)
	}

	actor, err := uc.actorFor(ctx, session, sr)
	if err != nil {
		return nil, err
	}
	if !canTransition(sr, request.Status, actor) {
		metrics.RecordSwitchRequestTransition(sr.Status, request.Status, outcomeRejected)
		return nil, exceptions.ErrSwitchRequestInvalidTransition(nil, sr.Status, request.Status, session.Role)
	}
	if requiresNote(request.Status) && request.Note == "" {
		return nil, exceptions.ErrDecisionNoteRequired(nil, request.Status)
	}

	now := time.Now().UTC()
	transition := &models.SwitchRequestTransition{
		SwitchRequestID: sr.ID,
		FromStatus:      sr.Status,
		ToStatus:        request.Status,
		ActorID:         session.ProfileID,
		Note:            request.Note,
		At:              now,
		PatientID:       sr.PatientID,
		History: &models.SwitchRequestStatusHistory{
			ID:              uuid.NewString(),
			SwitchRequestID: sr.ID,
			FromStatus:      sr.Status,
			ToStatus:        request.Status,
			ActorID:         session.ProfileID,
			Note:            request.Note,
			CreatedAt:       now,
		},
	}
	if request.Status == constvars.SwitchRequestStatusCompleted {
		transition.MovePatientToAgencyID = sr.NewAgencyID
	}

	updated, err := uc.SwitchRequestRepository.ApplyTransition(ctx, transition)
	if err != nil {
		outcome := outcomeRejected
		var customErr *exceptions.CustomError
		if errors.As(err, &customErr) && customErr.StatusCode == constvars.StatusConflict {
			outcome = outcomeConflict
		}
		metrics.RecordSwitchRequestTransition(transition.FromStatus, transition.ToStatus, outcome)
		uc.Log.Error("switchRequestUsecase.UpdateStatus error applying transition",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingFromStatusKey, transition.FromStatus),
			zap.String(constvars.LoggingToStatusKey, transition.ToStatus),
			zap.Error(err),
		)
		return nil, err
	}
	metrics.RecordSwitchRequestTransition(transition.FromStatus, transition.ToStatus, outcomeApplied)

	title := "Switch request updated"
	body := fmt.Sprintf("The switch request moved from %s to %s.", transition.FromStatus, transition.ToStatus)
	if request.Note != "" {
		body = fmt.Sprintf("%s Note: %s", body, request.Note)
	}
	if session.ProfileID != updated.PatientID {
		uc.notify(ctx, []string{updated.PatientID}, updated.ID, constvars.NotificationTypeSwitchRequestStatus, title, body)
	}
	if session.IsPatient() || session.IsAdmin() {
		uc.notifyAgency(ctx, updated, constvars.NotificationTypeSwitchRequestStatus, title, body)
	}

	uc.AuditLogUsecase.Record(ctx, &models.AuditLog{
		ActorID:    session.ProfileID,
		ActorRole:  session.Role,
		Action:     constvars.AuditActionStatusChanged,
		EntityType: constvars.AuditEntitySwitchRequest,
		EntityID:   updated.ID,
		Metadata: map[string]interface{}{
			"from": transition.FromStatus,
			"to":   transition.ToStatus,
			"note": transition.Note,
		},
	})

	uc.Log.Info("switchRequestUsecase.UpdateStatus succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSwitchRequestIDKey, updated.ID),
		zap.String(constvars.LoggingFromStatusKey, transition.FromStatus),
		zap.String(constvars.LoggingToStatusKey, transition.ToStatus),
	)
	return uc.buildDetail(ctx, session, updated)
}

func (uc *switchRequestUsecase) History(ctx context.Context, session *models.Session, switchRequestID string) ([]models.SwitchRequestStatusHistory, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("switchRequestUsecase.History called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSwitchRequestIDKey, switchRequestID),
	)

	if _, err := uc.LoadVisible(ctx, session, switchRequestID); err != nil {
		return nil, err
	}
	return uc.SwitchRequestRepository.FindHistory(ctx, switchRequestID)
}

func (uc *switchRequestUsecase) LoadVisible(ctx context.Context, session *models.Session, switchRequestID string) (*models.SwitchRequest, error) {
	sr, err := uc.SwitchRequestRepository.FindByID(ctx, switchRequestID)
	if err != nil {
		return nil, err
	}
	if sr == nil {
		return nil, exceptions.ErrNotFound(nil, constvars.AuditEntitySwitchRequest, switchRequestID)
	}

	visible, err := uc.AccessGuard.CanViewSwitchRequest(ctx, session, sr)
	if err != nil {
		return nil, err
	}
	if !visible {
		return nil, exceptions.ErrRowAccessDenied(nil, session.ProfileID, constvars.AuditEntitySwitchRequest, switchRequestID)
	}
	return sr, nil
}

func (uc *switchRequestUsecase) actorFor(ctx context.Context, session *models.Session, sr *models.SwitchRequest) (transitionActor, error) {
	actor := transitionActor{session: session}
	if session.IsAgency() {
		member, err := uc.AccessGuard.Membership(ctx, sr.NewAgencyID, session.ProfileID)
		if err != nil {
			return actor, err
		}
		actor.member = member
	}
	return actor, nil
}

func (uc *switchRequestUsecase) buildDetail(ctx context.Context, session *models.Session, sr *models.SwitchRequest) (*responses.SwitchRequestDetail, error) {
	newAgency, err := uc.AgencyRepository.FindByID(ctx, sr.NewAgencyID)
	if err != nil {
		return nil, err
	}
	conversation, err := uc.ConversationRepository.FindBySwitchRequestID(ctx, sr.ID)
	if err != nil {
		return nil, err
	}
	actor, err := uc.actorFor(ctx, session, sr)
	if err != nil {
		return nil, err
	}

	detail := &responses.SwitchRequestDetail{
		SwitchRequest:      sr,
		NewAgency:          newAgency,
		AllowedTransitions: allowedTransitions(sr, actor),
	}
	if conversation != nil {
		detail.ConversationID = conversation.ID
	}
	return detail, nil
}

func (uc *switchRequestUsecase) notifyAgency(ctx context.Context, sr *models.SwitchRequest, notificationType, title, body string) {
	memberIDs, err := uc.AgencyMemberRepository.FindProfileIDsByAgencyID(ctx, sr.NewAgencyID)
	if err != nil {
		uc.Log.Error("switchRequestUsecase.notifyAgency error fetching members",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingAgencyIDKey, sr.NewAgencyID),
			zap.Error(err),
		)
		return
	}
	uc.notify(ctx, memberIDs, sr.ID, notificationType, title, body)
}

// notify is best effort: the status change is already committed.
func (uc *switchRequestUsecase) notify(ctx context.Context, recipientIDs []string, switchRequestID, notificationType, title, body string) {
	if len(recipientIDs) == 0 {
		return
	}
	err := uc.NotificationUsecase.Notify(ctx, &requests.CreateNotification{
		RecipientIDs: recipientIDs,
		Type:         notificationType,
		Title:        title,
		Body:         body,
		Link:         fmt.Sprintf("%s/switch-requests/%s", uc.InternalConfig.App.FrontendDomain, switchRequestID),
	})
	if err != nil {
		uc.Log.Error("switchRequestUsecase.notify error sending notification",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingSwitchRequestIDKey, switchRequestID),
			zap.Error(err),
		)
	}
}
