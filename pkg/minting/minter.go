// Package minting talks to the external certificate minting service. The
// platform never signs chain transactions itself; it hands the certificate
// to the minting service and records the outcome.
package minting

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/skillswap/skill-exchange/pkg/models"
	"github.com/skillswap/skill-exchange/pkg/storage"
)

// Minter defines the interface for minting a certificate token.
type Minter interface {
	// Mint issues the on-chain token for a certificate and returns the
	// token id and transaction hash.
	Mint(ctx context.Context, cert *models.Certificate) (*storage.MintResult, error)
}

// HTTPMinter calls a minting service over HTTP.
type HTTPMinter struct {
	BaseURL string
	Client  *http.Client
}

// NewHTTPMinter creates a minter pointed at the given service URL.
func NewHTTPMinter(baseURL string) *HTTPMinter {
	return &HTTPMinter{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// mintRequest is the payload sent to the minting service.
type mintRequest struct {
	CertificateId       string   `json:"certificate_id"`
	Recipient           string   `json:"recipient"`
	Skill               string   `json:"skill"`
	ProgressAchieved    int32    `json:"progress_achieved"`
	ObjectivesCompleted []string `json:"objectives_completed"`
	DurationMinutes     int32    `json:"duration_minutes"`
}

// Mint posts the certificate to the minting service and decodes the result.
func (m *HTTPMinter) Mint(ctx context.Context, cert *models.Certificate) (*storage.MintResult, error) {
	payload, err := json.Marshal(mintRequest{
		CertificateId:       cert.Id,
		Recipient:           cert.Recipient,
		Skill:               cert.Skill,
		ProgressAchieved:    cert.ProgressAchieved,
		ObjectivesCompleted: cert.ObjectivesCompleted,
		DurationMinutes:     cert.DurationMinutes,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal mint request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.BaseURL+"/mint", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build mint request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("minting service unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("minting service returned status %d", resp.StatusCode)
	}

	var result storage.MintResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode mint result: %w", err)
	}
	if result.TokenId == "" || result.TxHash == "" {
		return nil, fmt.Errorf("minting service returned an incomplete result")
	}

	return &result, nil
}
