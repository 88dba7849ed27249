package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BenAji/agora/internal/api/dto"
	"github.com/BenAji/agora/internal/domain/rsvp"
)

type stubRSVPService struct {
	result *rsvp.UpsertResult
	err    error
}

func (s *stubRSVPService) Upsert(ctx context.Context, userID, eventID uuid.UUID, status rsvp.Status) (*rsvp.UpsertResult, error) {
	return s.result, s.err
}

func (s *stubRSVPService) Delete(ctx context.Context, userID, eventID uuid.UUID) error {
	return nil
}

func (s *stubRSVPService) ListByUser(ctx context.Context, userID uuid.UUID) ([]rsvp.RSVP, error) {
	return nil, nil
}

func (s *stubRSVPService) SummarizeEvent(ctx context.Context, eventID uuid.UUID) (*rsvp.EventSummary, error) {
	return nil, nil
}

func performUpsert(t *testing.T, svc rsvp.Service, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	dto.RegisterValidators()

	router := gin.New()
	handler := NewRSVPHandler(svc)
	router.POST("/api/rsvp", func(c *gin.Context) {
		c.Set("user_id", uuid.New())
	}, handler.Upsert)

	req := httptest.NewRequest(http.MethodPost, "/api/rsvp", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

// Both upsert outcomes answer 200; the body says which path ran.
func TestUpsertAnswersOKOnBothPaths(t *testing.T) {
	tests := []struct {
		name    string
		created bool
		message string
	}{
		{"first write creates", true, "RSVP created"},
		{"repeat write updates", false, "RSVP updated"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubRSVPService{
				result: &rsvp.UpsertResult{RSVP: &rsvp.RSVP{Status: rsvp.StatusAccepted}, Created: tt.created},
			}
			body := `{"event_id":"` + uuid.NewString() + `","status":"ACCEPTED"}`

			rec := performUpsert(t, svc, body)
			assert.Equal(t, http.StatusOK, rec.Code)

			var resp struct {
				Message string `json:"message"`
				Created bool   `json:"created"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.message, resp.Message)
			assert.Equal(t, tt.created, resp.Created)
		})
	}
}

func TestUpsertRejectsUnknownStatus(t *testing.T) {
	svc := &stubRSVPService{}
	body := `{"event_id":"` + uuid.NewString() + `","status":"MAYBE"}`

	rec := performUpsert(t, svc, body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
