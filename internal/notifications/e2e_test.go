package notifications

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2706msjk-ui/gilmo/config"
	"github.com/2706msjk-ui/gilmo/internal/models"
	"github.com/2706msjk-ui/gilmo/internal/sms"
)

// Drives the webhook trigger through the real gateway client against a stub
// gateway: one signed outbound request, then the row flips to sent.
func TestWebhookEndToEndWithRealClient(t *testing.T) {
	var gotAuth string
	var requests int
	gateway := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"groupId":"G1"}`))
	}))
	defer gateway.Close()

	id := uuid.New()
	store := newFakeStore(&models.Registration{ID: id, Name: "Kim", Phone: "01011112222"})
	client := sms.NewClient(config.SMSConfig{
		APIKey:    "key",
		APISecret: "secret",
		Sender:    "0287654321",
		SendURL:   gateway.URL,
	}, nil)

	gin.SetMode(gin.TestMode)
	h := NewHandler(NewDispatcher(store, client, &fakeLogs{}, nil), nil)
	r := gin.New()
	r.POST("/webhooks/registration-created", h.Webhook)

	body := `{"record":{"id":"` + id.String() + `","name":"Kim","phone":"010-1111-2222"}}`
	req := httptest.NewRequest(http.MethodPost, "/webhooks/registration-created", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, 1, requests)
	assert.True(t, strings.HasPrefix(gotAuth, "HMAC-SHA256 apiKey=key, "), "outbound request must be signed: %q", gotAuth)
	assert.True(t, store.rows[id].smsSent)
}
