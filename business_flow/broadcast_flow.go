package businessflow

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/enrolld/enrolld/app/dto"
	"github.com/enrolld/enrolld/app/services"
	"github.com/enrolld/enrolld/metrics"
	"github.com/enrolld/enrolld/repository"
	"github.com/enrolld/enrolld/utils"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

// BroadcastFlow handles the admin announcement broadcast and the roster export
type BroadcastFlow interface {
	Broadcast(ctx context.Context, req *dto.BroadcastRequest, metadata *ClientMetadata) (*dto.BroadcastResponse, error)
	ExportUsers(ctx context.Context) (string, []byte, error)
}

// BroadcastFlowImpl implements the broadcast business flow
type BroadcastFlowImpl struct {
	userRepo repository.UserRepository
	mailSvc  services.MailService
}

// NewBroadcastFlow creates a new broadcast flow instance
func NewBroadcastFlow(userRepo repository.UserRepository, mailSvc services.MailService) BroadcastFlow {
	return &BroadcastFlowImpl{
		userRepo: userRepo,
		mailSvc:  mailSvc,
	}
}

// Broadcast personalizes the message for every registered student and sends
// it over SMTP. Delivery is best effort: a failed recipient is recorded and
// the run continues, so one bad address never blocks the rest of the roster.
// The flow errors out only when the roster scan fails or no recipient could
// be reached at all.
func (f *BroadcastFlowImpl) Broadcast(ctx context.Context, req *dto.BroadcastRequest, metadata *ClientMetadata) (*dto.BroadcastResponse, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return nil, NewBusinessError("BROADCAST_VALIDATION_FAILED", "Message must not be empty", ErrEmptyMessage)
	}

	users, err := f.userRepo.All(ctx)
	if err != nil {
		log.Printf("Broadcast failed: roster scan error: %v", err)
		return nil, NewBusinessError("STORE_UNAVAILABLE", "Database operation failed", ErrStoreUnavailable)
	}

	runID := uuid.New().String()
	metrics.BroadcastRunsTotal.Inc()
	log.Printf("Broadcast run %s started: %d recipient(s) ip=%s", runID, len(users), clientIP(metadata))

	resp := &dto.BroadcastResponse{
		RunID:      runID,
		Recipients: len(users),
	}

	for _, user := range users {
		body := strings.ReplaceAll(message, utils.NamePlaceholder, user.Name)
		if err := f.mailSvc.Send(user.Email, utils.BroadcastSubject, body); err != nil {
			metrics.BroadcastEmailsTotal.WithLabelValues("failure").Inc()
			log.Printf("Broadcast run %s: send to %s failed: %v", runID, user.Email, err)
			resp.Failures = append(resp.Failures, dto.BroadcastFailure{
				Email:  user.Email,
				Reason: err.Error(),
			})
			continue
		}
		metrics.BroadcastEmailsTotal.WithLabelValues("success").Inc()
		resp.Sent++
	}

	if len(users) > 0 && resp.Sent == 0 {
		log.Printf("Broadcast run %s: all %d send(s) failed", runID, len(users))
		return nil, NewBusinessError("BROADCAST_DISPATCH_FAILED", "Failed to send announcement to any recipient", ErrMailDispatch)
	}

	log.Printf("Broadcast run %s finished: sent=%d failed=%d", runID, resp.Sent, len(resp.Failures))
	return resp, nil
}

// ExportUsers renders the current roster as an xlsx workbook and returns the
// suggested download filename alongside the file bytes.
func (f *BroadcastFlowImpl) ExportUsers(ctx context.Context) (string, []byte, error) {
	users, err := f.userRepo.All(ctx)
	if err != nil {
		return "", nil, NewBusinessError("STORE_UNAVAILABLE", "Database operation failed", ErrStoreUnavailable)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })

	file := excelize.NewFile()
	defer func() {
		_ = file.Close()
	}()

	sheet := "Students"
	index, err := file.NewSheet(sheet)
	if err != nil {
		return "", nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	file.SetActiveSheet(index)
	_ = file.DeleteSheet("Sheet1")

	headers := []string{"ID", "Name", "Email"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = file.SetCellValue(sheet, cell, header)
	}

	for row, user := range users {
		_ = file.SetCellValue(sheet, fmt.Sprintf("A%d", row+2), user.ID)
		_ = file.SetCellValue(sheet, fmt.Sprintf("B%d", row+2), user.Name)
		_ = file.SetCellValue(sheet, fmt.Sprintf("C%d", row+2), user.Email)
	}

	buf, err := file.WriteToBuffer()
	if err != nil {
		return "", nil, fmt.Errorf("failed to write workbook: %w", err)
	}

	filename := fmt.Sprintf("students_%s.xlsx", utils.UTCNow().Format("20060102_150405"))
	return filename, buf.Bytes(), nil
}
