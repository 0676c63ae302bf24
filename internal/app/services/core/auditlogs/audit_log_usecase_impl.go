package auditlogs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"carelink-service/internal/app/contracts"
	"carelink-service/internal/app/models"
	"carelink-service/internal/pkg/constvars"
	"carelink-service/internal/pkg/dto/requests"
	"carelink-service/internal/pkg/exceptions"
	"carelink-service/internal/pkg/utils"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const entityAuditLog = "audit_log"

var exportHeaders = []string{
	"Created At",
	"Actor ID",
	"Actor Role",
	"Action",
	"Entity Type",
	"Entity ID",
	"IP Address",
	"Request ID",
	"Metadata",
}

type auditLogUsecase struct {
	AuditLogRepository contracts.AuditLogRepository
	Log                *zap.Logger
}

func NewAuditLogUsecase(auditLogRepository contracts.AuditLogRepository, logger *zap.Logger) contracts.AuditLogUsecase {
	return &auditLogUsecase{
		AuditLogRepository: auditLogRepository,
		Log:                logger,
	}
}

func (uc *auditLogUsecase) Record(ctx context.Context, entry *models.AuditLog) {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	if entry.RequestID == "" {
		entry.RequestID = utils.GetRequestID(ctx)
	}
	if entry.IPAddress == "" {
		if ip, ok := ctx.Value(constvars.CONTEXT_CLIENT_IP_KEY).(string); ok {
			entry.IPAddress = ip
		}
	}

	if err := uc.AuditLogRepository.Insert(ctx, entry); err != nil {
		uc.Log.Error("auditLogUsecase.Record error",
			zap.String(constvars.LoggingRequestIDKey, entry.RequestID),
			zap.String("action", entry.Action),
			zap.String("entity_type", entry.EntityType),
			zap.String("entity_id", entry.EntityID),
			zap.Error(err),
		)
	}
}

func (uc *auditLogUsecase) FindAll(ctx context.Context, session *models.Session, request *requests.FindAllAuditLogs) ([]models.AuditLog, int, error) {
	if !session.IsAdmin() {
		return nil, 0, exceptions.ErrRowAccessDenied(errors.New("admin only"), session.ProfileID, entityAuditLog, "*")
	}
	return uc.AuditLogRepository.FindAll(ctx, request)
}

// Export renders the filtered entries, newest first, into an xlsx workbook.
func (uc *auditLogUsecase) Export(ctx context.Context, session *models.Session, request *requests.FindAllAuditLogs) ([]byte, string, error) {
	requestID := utils.GetRequestID(ctx)
	if !session.IsAdmin() {
		return nil, "", exceptions.ErrRowAccessDenied(errors.New("admin only"), session.ProfileID, entityAuditLog, "*")
	}

	request.Page = 1
	request.PageSize = constvars.AuditExportMaxRows
	entries, _, err := uc.AuditLogRepository.FindAll(ctx, request)
	if err != nil {
		return nil, "", err
	}

	content, err := buildWorkbook(entries)
	if err != nil {
		uc.Log.Error("auditLogUsecase.Export error building workbook",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, "", exceptions.ErrSpreadsheetBuild(err)
	}

	fileName := fmt.Sprintf(constvars.AuditExportFileName, time.Now().UTC().Format("20060102-150405"))
	uc.Log.Info("auditLogUsecase.Export succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingCountKey, len(entries)),
	)
	return content, fileName, nil
}

func buildWorkbook(entries []models.AuditLog) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := constvars.AuditExportSheetName
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
	})
	if err != nil {
		return nil, err
	}

	if err := f.SetSheetRow(sheet, "A1", &exportHeaders); err != nil {
		return nil, err
	}
	lastHeader, err := excelize.CoordinatesToCellName(len(exportHeaders), 1)
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(sheet, "A1", lastHeader, headerStyle); err != nil {
		return nil, err
	}

	for i, entry := range entries {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []interface{}{
			entry.CreatedAt.UTC().Format(time.RFC3339),
			entry.ActorID,
			entry.ActorRole,
			entry.Action,
			entry.EntityType,
			entry.EntityID,
			entry.IPAddress,
			entry.RequestID,
			formatMetadata(entry.Metadata),
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, err
		}
	}

	widths := []float64{22, 38, 12, 16, 16, 38, 16, 38, 60}
	for i, width := range widths {
		column, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(sheet, column, column, width); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// formatMetadata writes keys in sorted order so exports are stable.
func formatMetadata(metadata map[string]interface{}) string {
	if len(metadata) == 0 {
		return ""
	}
	keys := make([]string, 0, len(metadata))
	for key := range metadata {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		value, err := json.Marshal(metadata[key])
		if err != nil {
			value = []byte(fmt.Sprint(metadata[key]))
		}
		parts = append(parts, key+"="+string(value))
	}
	return strings.Join(parts, "; ")
}
