package sessions

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/skillswap/skill-exchange/pkg/api"
	"github.com/skillswap/skill-exchange/pkg/middleware"
	"github.com/skillswap/skill-exchange/pkg/models"
	"github.com/skillswap/skill-exchange/pkg/notifications"
	"github.com/skillswap/skill-exchange/pkg/storage"
	"github.com/skillswap/skill-exchange/pkg/storage/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// recordingNotifier captures notifications instead of pushing them over a
// websocket.
type recordingNotifier struct {
	recipients []string
	messages   []notifications.Message
}

func (n *recordingNotifier) Notify(_ context.Context, walletAddress string, message notifications.Message) error {
	n.recipients = append(n.recipients, walletAddress)
	n.messages = append(n.messages, message)
	return nil
}

func TestBookSession(t *testing.T) {
	newApiSession := api.NewSession{
		Tutor:           "0xtutor",
		Skill:           "go",
		RatePerHour:     10,
		DurationMinutes: 60,
	}
	bookedSession := &models.Session{
		Id:          "sess1",
		Tutor:       "0xtutor",
		Learner:     "0xlearner",
		Skill:       "go",
		TokenAmount: 10,
		Status:      models.SessionRequested,
		Version:     1,
	}

	t.Run("Success", func(t *testing.T) {
		// Arrange
		mockStorage := new(mocks.Storage)
		mockStorage.On("BookSession", mock.Anything, mock.Anything).Return(bookedSession, nil)

		notifier := &recordingNotifier{}
		h := NewSessionsHandler(mockStorage, notifier)

		body, _ := json.Marshal(newApiSession)
		req := httptest.NewRequest(http.MethodPost, "/sessions", bytes.NewReader(body))
		req.Header.Set(middleware.ActorHeader, "0xlearner")
		rr := httptest.NewRecorder()

		// Act
		h.BookSession(rr, req)

		// Assert
		assert.Equal(t, http.StatusCreated, rr.Code)

		var returned api.Session
		json.Unmarshal(rr.Body.Bytes(), &returned)
		assert.Equal(t, "sess1", returned.Id)
		assert.Equal(t, "requested", returned.Status)
		assert.Equal(t, int64(10), returned.TokenAmount)

		// The tutor is told about the new request.
		assert.Equal(t, []string{"0xtutor"}, notifier.recipients)
		assert.Equal(t, notifications.TypeSessionUpdate, notifier.messages[0].Type)

		mockStorage.AssertExpectations(t)
	})

	t.Run("Insufficient Balance", func(t *testing.T) {
		// Arrange
		mockStorage := new(mocks.Storage)
		mockStorage.On("BookSession", mock.Anything, mock.Anything).Return(nil, storage.ErrInsufficientBalance)

		h := NewSessionsHandler(mockStorage, nil)

		body, _ := json.Marshal(newApiSession)
		req := httptest.NewRequest(http.MethodPost, "/sessions", bytes.NewReader(body))
		req.Header.Set(middleware.ActorHeader, "0xlearner")
		rr := httptest.NewRecorder()

		// Act
		h.BookSession(rr, req)

		// Assert
		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
		mockStorage.AssertExpectations(t)
	})

	t.Run("Cannot Book Yourself", func(t *testing.T) {
		// Arrange
		mockStorage := new(mocks.Storage)
		h := NewSessionsHandler(mockStorage, nil)

		body, _ := json.Marshal(newApiSession)
		req := httptest.NewRequest(http.MethodPost, "/sessions", bytes.NewReader(body))
		req.Header.Set(middleware.ActorHeader, "0xtutor")
		rr := httptest.NewRecorder()

		// Act
		h.BookSession(rr, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Missing Actor Header", func(t *testing.T) {
		// Arrange
		mockStorage := new(mocks.Storage)
		h := NewSessionsHandler(mockStorage, nil)

		body, _ := json.Marshal(newApiSession)
		req := httptest.NewRequest(http.MethodPost, "/sessions", bytes.NewReader(body))
		rr := httptest.NewRecorder()

		// Act
		h.BookSession(rr, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Bad Request - Invalid JSON", func(t *testing.T) {
		// Arrange
		mockStorage := new(mocks.Storage)
		h := NewSessionsHandler(mockStorage, nil)

		req := httptest.NewRequest(http.MethodPost, "/sessions", strings.NewReader("not-json"))
		req.Header.Set(middleware.ActorHeader, "0xlearner")
		rr := httptest.NewRecorder()

		// Act
		h.BookSession(rr, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestApproveSession(t *testing.T) {
	t.Run("Success With Meeting Link", func(t *testing.T) {
		// Arrange
		mockStorage := new(mocks.Storage)
		mockStorage.On("ApproveSession", mock.Anything, "sess1", "0xtutor", "https://meet.example/abc").Return(&models.Session{
			Id:          "sess1",
			Tutor:       "0xtutor",
			Learner:     "0xlearner",
			Status:      models.SessionConfirmed,
			MeetingLink: "https://meet.example/abc",
		}, nil)

		notifier := &recordingNotifier{}
		h := NewSessionsHandler(mockStorage, notifier)

		body, _ := json.Marshal(api.ApproveSession{MeetingLink: "https://meet.example/abc"})
		req := httptest.NewRequest(http.MethodPost, "/sessions/sess1/approve", bytes.NewReader(body))
		req.Header.Set(middleware.ActorHeader, "0xtutor")
		rr := httptest.NewRecorder()

		// Act
		h.ApproveSession(rr, req, "sess1")

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)

		var returned api.Session
		json.Unmarshal(rr.Body.Bytes(), &returned)
		assert.Equal(t, "confirmed", returned.Status)
		assert.Equal(t, "https://meet.example/abc", returned.MeetingLink)
		assert.Equal(t, []string{"0xlearner"}, notifier.recipients)

		mockStorage.AssertExpectations(t)
	})

	t.Run("Success Without Body", func(t *testing.T) {
		// Arrange
		mockStorage := new(mocks.Storage)
		mockStorage.On("ApproveSession", mock.Anything, "sess1", "0xtutor", "").Return(&models.Session{
			Id:     "sess1",
			Status: models.SessionConfirmed,
		}, nil)

		h := NewSessionsHandler(mockStorage, nil)

		req := httptest.NewRequest(http.MethodPost, "/sessions/sess1/approve", nil)
		req.Header.Set(middleware.ActorHeader, "0xtutor")
		rr := httptest.NewRecorder()

		// Act
		h.ApproveSession(rr, req, "sess1")

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
		mockStorage.AssertExpectations(t)
	})

	t.Run("Learner Cannot Approve", func(t *testing.T) {
		// Arrange
		mockStorage := new(mocks.Storage)
		mockStorage.On("ApproveSession", mock.Anything, "sess1", "0xlearner", "").Return(nil, storage.ErrUnauthorized)

		h := NewSessionsHandler(mockStorage, nil)

		req := httptest.NewRequest(http.MethodPost, "/sessions/sess1/approve", nil)
		req.Header.Set(middleware.ActorHeader, "0xlearner")
		rr := httptest.NewRecorder()

		// Act
		h.ApproveSession(rr, req, "sess1")

		// Assert
		assert.Equal(t, http.StatusForbidden, rr.Code)
		mockStorage.AssertExpectations(t)
	})
}

func TestRejectSession(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// Arrange
		mockStorage := new(mocks.Storage)
		mockStorage.On("RejectSession", mock.Anything, "sess1", "0xtutor", "schedule conflict").Return(&models.Session{
			Id:           "sess1",
			Tutor:        "0xtutor",
			Learner:      "0xlearner",
			Status:       models.SessionRejected,
			RejectReason: "schedule conflict",
		}, nil)

		notifier := &recordingNotifier{}
		h := NewSessionsHandler(mockStorage, notifier)

		body, _ := json.Marshal(api.RejectSession{Reason: "schedule conflict"})
		req := httptest.NewRequest(http.MethodPost, "/sessions/sess1/reject", bytes.NewReader(body))
		req.Header.Set(middleware.ActorHeader, "0xtutor")
		rr := httptest.NewRecorder()

		// Act
		h.RejectSession(rr, req, "sess1")

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, []string{"0xlearner"}, notifier.recipients)
		mockStorage.AssertExpectations(t)
	})

	t.Run("Reason Is Required", func(t *testing.T) {
		// Arrange
		mockStorage := new(mocks.Storage)
		h := NewSessionsHandler(mockStorage, nil)

		body, _ := json.Marshal(api.RejectSession{})
		req := httptest.NewRequest(http.MethodPost, "/sessions/sess1/reject", bytes.NewReader(body))
		req.Header.Set(middleware.ActorHeader, "0xtutor")
		rr := httptest.NewRecorder()

		// Act
		h.RejectSession(rr, req, "sess1")

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestCancelSession(t *testing.T) {
	t.Run("Tutor Cancels - Learner Is Notified", func(t *testing.T) {
		// Arrange
		mockStorage := new(mocks.Storage)
		mockStorage.On("CancelSession", mock.Anything, "sess1", "0xtutor").Return(&models.Session{
			Id:      "sess1",
			Tutor:   "0xtutor",
			Learner: "0xlearner",
			Status:  models.SessionCanceled,
		}, nil)

		notifier := &recordingNotifier{}
		h := NewSessionsHandler(mockStorage, notifier)

		req := httptest.NewRequest(http.MethodPost, "/sessions/sess1/cancel", nil)
		req.Header.Set(middleware.ActorHeader, "0xtutor")
		rr := httptest.NewRecorder()

		// Act
		h.CancelSession(rr, req, "sess1")

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, []string{"0xlearner"}, notifier.recipients)
		mockStorage.AssertExpectations(t)
	})

	t.Run("Already Completed", func(t *testing.T) {
		// Arrange
		mockStorage := new(mocks.Storage)
		mockStorage.On("CancelSession", mock.Anything, "sess1", "0xlearner").Return(nil, storage.ErrInvalidTransition)

		h := NewSessionsHandler(mockStorage, nil)

		req := httptest.NewRequest(http.MethodPost, "/sessions/sess1/cancel", nil)
		req.Header.Set(middleware.ActorHeader, "0xlearner")
		rr := httptest.NewRecorder()

		// Act
		h.CancelSession(rr, req, "sess1")

		// Assert
		assert.Equal(t, http.StatusConflict, rr.Code)
		mockStorage.AssertExpectations(t)
	})
}

func TestCompleteSession(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// Arrange
		mockStorage := new(mocks.Storage)
		mockStorage.On("CompleteSession", mock.Anything, "sess1", "0xtutor").Return(
			&models.Session{
				Id:      "sess1",
				Tutor:   "0xtutor",
				Learner: "0xlearner",
				Skill:   "go",
				Status:  models.SessionCompleted,
			},
			&models.Certificate{
				Id:        "cert1",
				SessionId: "sess1",
				Recipient: "0xlearner",
				Status:    models.CertificatePending,
			},
			nil,
		)

		notifier := &recordingNotifier{}
		h := NewSessionsHandler(mockStorage, notifier)

		req := httptest.NewRequest(http.MethodPost, "/sessions/sess1/complete", nil)
		req.Header.Set(middleware.ActorHeader, "0xtutor")
		rr := httptest.NewRecorder()

		// Act
		h.CompleteSession(rr, req, "sess1")

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)

		var returned completionResponse
		json.Unmarshal(rr.Body.Bytes(), &returned)
		assert.Equal(t, "completed", returned.Session.Status)
		assert.Equal(t, "cert1", returned.Certificate.Id)
		assert.Equal(t, "pending", returned.Certificate.Status)

		// The learner hears about their certificate.
		assert.Equal(t, []string{"0xlearner"}, notifier.recipients)
		assert.Equal(t, notifications.TypeCertificateUpdate, notifier.messages[0].Type)

		mockStorage.AssertExpectations(t)
	})

	t.Run("Requirements Not Met", func(t *testing.T) {
		// Arrange
		mockStorage := new(mocks.Storage)
		mockStorage.On("CompleteSession", mock.Anything, "sess1", "0xtutor").Return(nil, nil, storage.ErrCompletionRequirements)

		h := NewSessionsHandler(mockStorage, nil)

		req := httptest.NewRequest(http.MethodPost, "/sessions/sess1/complete", nil)
		req.Header.Set(middleware.ActorHeader, "0xtutor")
		rr := httptest.NewRecorder()

		// Act
		h.CompleteSession(rr, req, "sess1")

		// Assert
		assert.Equal(t, http.StatusConflict, rr.Code)
		mockStorage.AssertExpectations(t)
	})

	t.Run("Learner Cannot Complete", func(t *testing.T) {
		// Arrange
		mockStorage := new(mocks.Storage)
		mockStorage.On("CompleteSession", mock.Anything, "sess1", "0xlearner").Return(nil, nil, storage.ErrUnauthorized)

		h := NewSessionsHandler(mockStorage, nil)

		req := httptest.NewRequest(http.MethodPost, "/sessions/sess1/complete", nil)
		req.Header.Set(middleware.ActorHeader, "0xlearner")
		rr := httptest.NewRecorder()

		// Act
		h.CompleteSession(rr, req, "sess1")

		// Assert
		assert.Equal(t, http.StatusForbidden, rr.Code)
		mockStorage.AssertExpectations(t)
	})
}

func TestUpdateMilestone(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// Arrange
		mockStorage := new(mocks.Storage)
		mockStorage.On("UpdateMilestone", mock.Anything, "sess1", "0xlearner", "m2", true, "covered goroutines").Return(&models.Session{
			Id:     "sess1",
			Status: models.SessionInProgress,
			Progress: &models.ProgressTracking{
				OverallProgress: 40,
			},
		}, nil)

		h := NewSessionsHandler(mockStorage, nil)

		body, _ := json.Marshal(api.MilestoneUpdate{MilestoneId: "m2", Completed: true, Notes: "covered goroutines"})
		req := httptest.NewRequest(http.MethodPut, "/sessions/sess1/progress/milestone", bytes.NewReader(body))
		req.Header.Set(middleware.ActorHeader, "0xlearner")
		rr := httptest.NewRecorder()

		// Act
		h.UpdateMilestone(rr, req, "sess1")

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)

		var returned api.Session
		json.Unmarshal(rr.Body.Bytes(), &returned)
		assert.Equal(t, int32(40), returned.Progress.OverallProgress)

		mockStorage.AssertExpectations(t)
	})

	t.Run("Missing Milestone Id", func(t *testing.T) {
		// Arrange
		mockStorage := new(mocks.Storage)
		h := NewSessionsHandler(mockStorage, nil)

		body, _ := json.Marshal(api.MilestoneUpdate{Completed: true})
		req := httptest.NewRequest(http.MethodPut, "/sessions/sess1/progress/milestone", bytes.NewReader(body))
		req.Header.Set(middleware.ActorHeader, "0xlearner")
		rr := httptest.NewRecorder()

		// Act
		h.UpdateMilestone(rr, req, "sess1")

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestUpdateMeetingData(t *testing.T) {
	t.Run("Attendance Rate Out Of Range", func(t *testing.T) {
		// Arrange
		mockStorage := new(mocks.Storage)
		h := NewSessionsHandler(mockStorage, nil)

		body, _ := json.Marshal(api.MeetingDataUpdate{Participants: 2, AttendanceRate: 140, DurationMinutes: 60})
		req := httptest.NewRequest(http.MethodPut, "/sessions/sess1/progress/meeting", bytes.NewReader(body))
		req.Header.Set(middleware.ActorHeader, "0xtutor")
		rr := httptest.NewRecorder()

		// Act
		h.UpdateMeetingData(rr, req, "sess1")

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Success", func(t *testing.T) {
		// Arrange
		mockStorage := new(mocks.Storage)
		mockStorage.On("UpdateMeetingData", mock.Anything, "sess1", "0xtutor", int32(2), int32(90), int32(60), "").Return(&models.Session{
			Id:     "sess1",
			Status: models.SessionInProgress,
			Progress: &models.ProgressTracking{
				AttendanceVerified: true,
			},
		}, nil)

		h := NewSessionsHandler(mockStorage, nil)

		body, _ := json.Marshal(api.MeetingDataUpdate{Participants: 2, AttendanceRate: 90, DurationMinutes: 60})
		req := httptest.NewRequest(http.MethodPut, "/sessions/sess1/progress/meeting", bytes.NewReader(body))
		req.Header.Set(middleware.ActorHeader, "0xtutor")
		rr := httptest.NewRecorder()

		// Act
		h.UpdateMeetingData(rr, req, "sess1")

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)

		var returned api.Session
		json.Unmarshal(rr.Body.Bytes(), &returned)
		assert.True(t, returned.Progress.AttendanceVerified)

		mockStorage.AssertExpectations(t)
	})
}

func TestSubmitReview(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// Arrange
		mockStorage := new(mocks.Storage)
		mockStorage.On("SubmitReview", mock.Anything, "sess1", "0xlearner", int32(5), "great session").Return(&models.Session{
			Id:     "sess1",
			Status: models.SessionCompleted,
			Reviews: []models.Review{
				{Author: "0xlearner", Rating: 5, Comment: "great session"},
			},
		}, nil)

		h := NewSessionsHandler(mockStorage, nil)

		body, _ := json.Marshal(api.NewReview{Rating: 5, Comment: "great session"})
		req := httptest.NewRequest(http.MethodPost, "/sessions/sess1/reviews", bytes.NewReader(body))
		req.Header.Set(middleware.ActorHeader, "0xlearner")
		rr := httptest.NewRecorder()

		// Act
		h.SubmitReview(rr, req, "sess1")

		// Assert
		assert.Equal(t, http.StatusCreated, rr.Code)
		mockStorage.AssertExpectations(t)
	})

	t.Run("Rating Out Of Range", func(t *testing.T) {
		// Arrange
		mockStorage := new(mocks.Storage)
		h := NewSessionsHandler(mockStorage, nil)

		body, _ := json.Marshal(api.NewReview{Rating: 6})
		req := httptest.NewRequest(http.MethodPost, "/sessions/sess1/reviews", bytes.NewReader(body))
		req.Header.Set(middleware.ActorHeader, "0xlearner")
		rr := httptest.NewRecorder()

		// Act
		h.SubmitReview(rr, req, "sess1")

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Session Not Completed", func(t *testing.T) {
		// Arrange
		mockStorage := new(mocks.Storage)
		mockStorage.On("SubmitReview", mock.Anything, "sess1", "0xlearner", int32(4), "").Return(nil, storage.ErrSessionNotCompleted)

		h := NewSessionsHandler(mockStorage, nil)

		body, _ := json.Marshal(api.NewReview{Rating: 4})
		req := httptest.NewRequest(http.MethodPost, "/sessions/sess1/reviews", bytes.NewReader(body))
		req.Header.Set(middleware.ActorHeader, "0xlearner")
		rr := httptest.NewRecorder()

		// Act
		h.SubmitReview(rr, req, "sess1")

		// Assert
		assert.Equal(t, http.StatusConflict, rr.Code)
		mockStorage.AssertExpectations(t)
	})
}
