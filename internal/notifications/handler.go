package notifications

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/2706msjk-ui/gilmo/pkg/response"
)

// WebhookPayload is the database-insert event body: { record: { ... } }.
type WebhookPayload struct {
	Record WebhookRecord `json:"record"`
}

// WebhookRecord is the inserted registrations row as carried by the event.
type WebhookRecord struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// SendRequest is the body for the manual trigger POST /notifications/send.
type SendRequest struct {
	Phone          string `json:"phone"`
	Message        string `json:"message"`
	RegistrationID string `json:"registrationId"`
}

// Handler exposes the dispatcher over its three trigger surfaces: the
// database-insert webhook, the manual send endpoint, and admin approval.
type Handler struct {
	dispatcher *Dispatcher
	logger     *zap.Logger
}

// NewHandler creates a notifications handler.
func NewHandler(dispatcher *Dispatcher, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{dispatcher: dispatcher, logger: logger}
}

// Webhook handles POST /webhooks/registration-created.
func (h *Handler) Webhook(c *gin.Context) {
	var payload WebhookPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	rec := payload.Record
	if rec.ID == "" || rec.Phone == "" {
		response.BadRequest(c, "record.id and record.phone required")
		return
	}
	id, err := uuid.Parse(rec.ID)
	if err != nil {
		response.BadRequest(c, "invalid record.id")
		return
	}

	res, err := h.dispatcher.Dispatch(c.Request.Context(), id, rec.Phone, DepositNotice(rec.Name))
	if errors.Is(err, ErrAlreadyNotified) {
		response.OK(c, gin.H{"status": "already_sent"})
		return
	}
	if err != nil {
		h.logger.Error("webhook dispatch failed", zap.Error(err), zap.String("registration_id", rec.ID))
		response.Internal(c, err.Error())
		return
	}
	response.OK(c, res)
}

// Send handles POST /notifications/send (manual trigger).
func (h *Handler) Send(c *gin.Context) {
	var req SendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	if req.Phone == "" || req.Message == "" {
		response.BadRequest(c, "phone and message required")
		return
	}

	if req.RegistrationID == "" {
		res, err := h.dispatcher.SendDirect(c.Request.Context(), req.Phone, req.Message)
		if err != nil {
			h.logger.Error("manual send failed", zap.Error(err))
			response.Internal(c, err.Error())
			return
		}
		response.OK(c, res)
		return
	}

	id, err := uuid.Parse(req.RegistrationID)
	if err != nil {
		response.BadRequest(c, "invalid registrationId")
		return
	}
	res, err := h.dispatcher.Dispatch(c.Request.Context(), id, req.Phone, req.Message)
	if errors.Is(err, ErrAlreadyNotified) {
		response.OK(c, gin.H{"status": "already_sent"})
		return
	}
	if err != nil {
		h.logger.Error("manual dispatch failed", zap.Error(err), zap.String("registration_id", req.RegistrationID))
		response.Internal(c, err.Error())
		return
	}
	response.OK(c, res)
}

// Approve handles POST /admin/registrations/:id/approve. Composes the deposit
// notice for the applicant and dispatches it.
func (h *Handler) Approve(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid registration id")
		return
	}

	reg, err := h.dispatcher.store.GetByID(c.Request.Context(), id)
	if err != nil || reg == nil {
		response.NotFound(c, "registration not found")
		return
	}

	res, err := h.dispatcher.Dispatch(c.Request.Context(), id, reg.Phone, DepositNotice(reg.Name))
	if errors.Is(err, ErrAlreadyNotified) {
		response.OK(c, gin.H{"status": "already_sent"})
		return
	}
	if err != nil {
		h.logger.Error("approve dispatch failed", zap.Error(err), zap.String("registration_id", id.String()))
		response.Internal(c, err.Error())
		return
	}
	response.OK(c, res)
}
