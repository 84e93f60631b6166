// Package notifications dispatches the deposit/approval SMS and keeps the
// originating registration row's notified state.
package notifications

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/2706msjk-ui/gilmo/internal/models"
	"github.com/2706msjk-ui/gilmo/internal/sms"
)

// ErrAlreadyNotified marks a dispatch attempt on a row that is already sent.
// Callers treat it as a no-op, not a failure.
var ErrAlreadyNotified = errors.New("registration already notified")

// Sender sends one message through the gateway.
type Sender interface {
	Send(ctx context.Context, to, text string) (*sms.Result, error)
}

// Store mutates a registration's notified state.
type Store interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Registration, error)
	ClaimNotified(ctx context.Context, id uuid.UUID) (bool, error)
	ReleaseNotified(ctx context.Context, id uuid.UUID) error
}

// LogStore records dispatch attempts.
type LogStore interface {
	Log(ctx context.Context, l *models.SMSLog) error
}

// Dispatcher composes, sends and books one SMS per trigger. Dispatch is keyed
// by registration id: the row is claimed (sms_sent flipped) before the send,
// and released if the send errors, so an errored dispatch always leaves the
// row unsent and retriable.
type Dispatcher struct {
	store  Store
	sender Sender
	logs   LogStore
	logger *zap.Logger
}

// NewDispatcher creates a dispatcher.
func NewDispatcher(store Store, sender Sender, logs LogStore, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{store: store, sender: sender, logs: logs, logger: logger}
}

// DepositNotice composes the approval message for an applicant.
func DepositNotice(name string) string {
	return fmt.Sprintf("[길모] %s님, 참가 신청이 승인되었습니다. 보증금 입금 안내를 확인해 주세요.", name)
}

// Dispatch claims the registration, sends the message and records the
// attempt. A second dispatch for an already-sent row returns
// ErrAlreadyNotified without touching the gateway.
func (d *Dispatcher) Dispatch(ctx context.Context, registrationID uuid.UUID, phone, text string) (*sms.Result, error) {
	claimed, err := d.store.ClaimNotified(ctx, registrationID)
	if err != nil {
		return nil, fmt.Errorf("claim registration: %w", err)
	}
	if !claimed {
		return nil, ErrAlreadyNotified
	}

	res, err := d.sender.Send(ctx, phone, text)
	if err != nil {
		if relErr := d.store.ReleaseNotified(ctx, registrationID); relErr != nil {
			d.logger.Error("release claim failed", zap.Error(relErr),
				zap.String("registration_id", registrationID.String()))
		}
		d.record(ctx, &registrationID, phone, text, sms.MessageTypeFor(text), models.SMSLogStatusFailed, err.Error())
		return nil, fmt.Errorf("send sms: %w", err)
	}

	d.record(ctx, &registrationID, phone, text, res.MessageType, models.SMSLogStatusSent, "")
	d.logger.Info("registration notified",
		zap.String("registration_id", registrationID.String()),
		zap.Int("gateway_status", res.StatusCode),
	)
	return res, nil
}

// SendDirect sends a free-form message without touching any row. Used by the
// manual trigger when no registration id is supplied.
func (d *Dispatcher) SendDirect(ctx context.Context, phone, text string) (*sms.Result, error) {
	res, err := d.sender.Send(ctx, phone, text)
	if err != nil {
		d.record(ctx, nil, phone, text, sms.MessageTypeFor(text), models.SMSLogStatusFailed, err.Error())
		return nil, fmt.Errorf("send sms: %w", err)
	}
	d.record(ctx, nil, phone, text, res.MessageType, models.SMSLogStatusSent, "")
	return res, nil
}

// record writes the attempt log; failures are logged and otherwise ignored
// so bookkeeping never blocks the caller's outcome.
func (d *Dispatcher) record(ctx context.Context, registrationID *uuid.UUID, phone, text, msgType, status, errMsg string) {
	if d.logs == nil {
		return
	}
	l := &models.SMSLog{
		RegistrationID: registrationID,
		Recipient:      phone,
		Body:           text,
		MessageType:    msgType,
		Status:         status,
		ErrorMessage:   errMsg,
	}
	if err := d.logs.Log(ctx, l); err != nil {
		d.logger.Warn("sms log write failed", zap.Error(err))
	}
}
