package mapping

import (
	"github.com/skillswap/skill-exchange/pkg/api"
	"github.com/skillswap/skill-exchange/pkg/models"
)

// ToDomainNewUser converts an API NewUser into a domain User.
func ToDomainNewUser(newUser *api.NewUser) *models.User {
	return &models.User{
		WalletAddress: newUser.WalletAddress,
		DisplayName:   newUser.DisplayName,
		Balance:       100, // Seed new accounts with 100 SKL.
	}
}

// ToApiUser converts a domain User into an API User.
func ToApiUser(user *models.User) *api.User {
	return &api.User{
		WalletAddress:     user.WalletAddress,
		DisplayName:       user.DisplayName,
		Balance:           user.Balance,
		Rating:            user.Rating(),
		RatingCount:       user.RatingCount,
		SessionsCompleted: user.SessionsCompleted,
	}
}

// ToDomainNewRequest converts an API NewLearningRequest into a domain
// LearningRequest owned by the acting wallet.
func ToDomainNewRequest(newReq *api.NewLearningRequest, owner string) *models.LearningRequest {
	return &models.LearningRequest{
		Owner:           owner,
		Skill:           newReq.Skill,
		MaxBudget:       newReq.MaxBudget,
		DurationMinutes: newReq.DurationMinutes,
		Schedule:        newReq.Schedule,
	}
}

// ToApiRequest converts a domain LearningRequest into an API LearningRequest.
func ToApiRequest(req *models.LearningRequest) *api.LearningRequest {
	bids := make([]api.Bid, len(req.Bids))
	for i := range req.Bids {
		bids[i] = *ToApiBid(&req.Bids[i])
	}
	return &api.LearningRequest{
		Id:              req.Id,
		Owner:           req.Owner,
		Skill:           req.Skill,
		MaxBudget:       req.MaxBudget,
		DurationMinutes: req.DurationMinutes,
		Schedule:        req.Schedule,
		Status:          string(req.Status),
		Bids:            bids,
		CreatedAt:       req.CreatedAt,
		UpdatedAt:       req.UpdatedAt,
	}
}

// ToDomainNewBid converts an API NewBid into a domain Bid from the acting
// tutor. The total cost is derived in storage, never taken from the caller.
func ToDomainNewBid(newBid *api.NewBid, tutor string) *models.Bid {
	return &models.Bid{
		Tutor:           tutor,
		RatePerHour:     newBid.RatePerHour,
		DurationMinutes: newBid.DurationMinutes,
		Message:         newBid.Message,
		Slots:           newBid.Slots,
	}
}

// ToApiBid converts a domain Bid into an API Bid.
func ToApiBid(bid *models.Bid) *api.Bid {
	return &api.Bid{
		Id:              bid.Id,
		Tutor:           bid.Tutor,
		RatePerHour:     bid.RatePerHour,
		DurationMinutes: bid.DurationMinutes,
		TotalCost:       bid.TotalCost,
		Message:         bid.Message,
		Slots:           bid.Slots,
		Status:          string(bid.Status),
		CreatedAt:       bid.CreatedAt,
	}
}

// ToDomainNewSession converts an API NewSession into a domain Session booked
// by the acting learner.
func ToDomainNewSession(newSession *api.NewSession, learner string) *models.Session {
	return &models.Session{
		Tutor:           newSession.Tutor,
		Learner:         learner,
		Skill:           newSession.Skill,
		RatePerHour:     newSession.RatePerHour,
		DurationMinutes: newSession.DurationMinutes,
		ScheduledAt:     newSession.ScheduledAt,
	}
}

// ToApiSession converts a domain Session into an API Session.
func ToApiSession(session *models.Session) *api.Session {
	reviews := make([]api.Review, len(session.Reviews))
	for i, rv := range session.Reviews {
		reviews[i] = api.Review{
			Author:    rv.Author,
			Rating:    rv.Rating,
			Comment:   rv.Comment,
			CreatedAt: rv.CreatedAt,
		}
	}
	return &api.Session{
		Id:              session.Id,
		Tutor:           session.Tutor,
		Learner:         session.Learner,
		Skill:           session.Skill,
		TokenAmount:     session.TokenAmount,
		RatePerHour:     session.RatePerHour,
		DurationMinutes: session.DurationMinutes,
		ScheduledAt:     session.ScheduledAt,
		MeetingLink:     session.MeetingLink,
		RejectReason:    session.RejectReason,
		Status:          string(session.Status),
		TransactionId:   session.TransactionId,
		Progress:        ToApiProgress(session.Progress),
		Reviews:         reviews,
		CreatedAt:       session.CreatedAt,
		UpdatedAt:       session.UpdatedAt,
	}
}

// ToApiProgress converts a domain ProgressTracking into its API shape.
// Returns nil for sessions that have not started.
func ToApiProgress(p *models.ProgressTracking) *api.ProgressTracking {
	if p == nil {
		return nil
	}
	milestones := make([]api.Milestone, len(p.Milestones))
	for i, m := range p.Milestones {
		milestones[i] = api.Milestone{
			Id:           m.Id,
			Title:        m.Title,
			TargetMinute: m.TargetMinute,
			Completed:    m.Completed,
			CompletedAt:  m.CompletedAt,
			Notes:        m.Notes,
		}
	}
	return &api.ProgressTracking{
		Milestones:         milestones,
		Objectives:         p.Objectives,
		OverallProgress:    p.OverallProgress,
		TimeSpentMinutes:   p.TimeSpentMinutes,
		AttendanceVerified: p.AttendanceVerified,
		CanComplete:        p.CanComplete,
		RecordingUrl:       p.RecordingUrl,
	}
}

// ToApiTransaction converts a domain TokenTransaction into an API
// Transaction.
func ToApiTransaction(tx *models.TokenTransaction) *api.Transaction {
	return &api.Transaction{
		Id:        tx.Id,
		SessionId: tx.SessionId,
		From:      tx.From,
		To:        tx.To,
		Amount:    tx.Amount,
		Status:    string(tx.Status),
		CreatedAt: tx.CreatedAt,
		UpdatedAt: tx.UpdatedAt,
	}
}

// ToApiCertificate converts a domain Certificate into an API Certificate.
func ToApiCertificate(cert *models.Certificate) *api.Certificate {
	return &api.Certificate{
		Id:                  cert.Id,
		SessionId:           cert.SessionId,
		Recipient:           cert.Recipient,
		Issuer:              cert.Issuer,
		Skill:               cert.Skill,
		ProgressAchieved:    cert.ProgressAchieved,
		ObjectivesCompleted: cert.ObjectivesCompleted,
		DurationMinutes:     cert.DurationMinutes,
		Status:              string(cert.Status),
		TokenId:             cert.TokenId,
		TxHash:              cert.TxHash,
		MetadataUri:         cert.MetadataUri,
		CreatedAt:           cert.CreatedAt,
	}
}

// ToApiLedgerEntry converts a domain LedgerEntry into an API LedgerEntry.
func ToApiLedgerEntry(entry *models.LedgerEntry) *api.LedgerEntry {
	return &api.LedgerEntry{
		EntryId:       entry.EntryID,
		TransactionId: entry.TransactionID,
		AccountId:     entry.AccountID,
		Debit:         &entry.Debit,
		Credit:        &entry.Credit,
		Description:   entry.Description,
		Timestamp:     entry.Timestamp,
	}
}
