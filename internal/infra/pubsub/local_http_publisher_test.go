package pubsub

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"jobdesk/internal/domain/service"
)

func TestLocalHTTPPublisher_Publish(t *testing.T) {
	var got PubSubPushMessage
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "req-1", r.Header.Get("X-Request-Id"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	publisher := NewLocalHTTPPublisher(srv.URL, slog.Default())

	event := &service.Event{
		RequestID: "req-1",
		Type:      service.EventTypePaymentCompleted,
		UserID:    "user-1",
		PaymentID: "pi_1",
		Amount:    4999,
	}
	assert.NoError(t, publisher.Publish(context.Background(), event))

	assert.Equal(t, service.EventTypePaymentCompleted, got.Message.Attributes["type"])
	assert.Equal(t, "req-1", got.Message.Attributes["request_id"])

	data, err := base64.StdEncoding.DecodeString(got.Message.Data)
	assert.NoError(t, err)

	var decoded service.Event
	assert.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, *event, decoded)
}

func TestLocalHTTPPublisher_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	publisher := NewLocalHTTPPublisher(srv.URL, slog.Default())

	err := publisher.Publish(context.Background(), &service.Event{Type: service.EventTypeJobApplied, UserID: "user-1"})
	assert.Error(t, err)
}

func TestNoopPublisher(t *testing.T) {
	p := &noopPublisher{logger: slog.Default()}
	assert.NoError(t, p.Publish(context.Background(), &service.Event{Type: service.EventTypeJobApplied}))
	assert.NoError(t, p.Close())
}
