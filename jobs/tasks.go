package jobs

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskTypeSendEmail is the task type for sending transactional emails.
	TaskTypeSendEmail = "mail:send"
	// TaskTypeLowStockScan walks the catalogue looking for articles under
	// their minimum stock.
	TaskTypeLowStockScan = "stock:lowscan"
	// TaskTypeAuditRetention prunes audit entries past the retention
	// horizon.
	TaskTypeAuditRetention = "audit:retention"
)

// SendEmailPayload describes the information required to send an email.
type SendEmailPayload struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// NewSendEmailTask constructs an Asynq task.
func NewSendEmailTask(payload SendEmailPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeSendEmail, data), nil
}

// HandleSendEmailTask processes TaskTypeSendEmail tasks.
func HandleSendEmailTask(ctx context.Context, t *asynq.Task) error {
	var payload SendEmailPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	// Placeholder: integrate with SMTP once the relay is provisioned.
	fmt.Printf("[jobs] send email to %s subject=%s\n", payload.To, payload.Subject)
	return nil
}

// LowStockScanPayload configures the low-stock sweep.
type LowStockScanPayload struct {
	AlertTo   string `json:"alert_to"`
	AlertFrom string `json:"alert_from"`
}

// NewLowStockScanTask constructs the nightly stock sweep task.
func NewLowStockScanTask(alertTo, alertFrom string) (*asynq.Task, error) {
	data, err := json.Marshal(LowStockScanPayload{AlertTo: alertTo, AlertFrom: alertFrom})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeLowStockScan, data), nil
}

// AuditRetentionPayload configures the audit retention sweep.
type AuditRetentionPayload struct {
	Days int `json:"days"`
}

// NewAuditRetentionTask constructs the retention sweep task.
func NewAuditRetentionTask(days int) (*asynq.Task, error) {
	data, err := json.Marshal(AuditRetentionPayload{Days: days})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeAuditRetention, data), nil
}
