package certificates

import (
	"net/http"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/skillswap/skill-exchange/pkg/api"
	"github.com/skillswap/skill-exchange/pkg/handlers/respond"
	"github.com/skillswap/skill-exchange/pkg/mapping"
	"github.com/skillswap/skill-exchange/pkg/storage"
)

// CertificatesHandler holds the dependencies for certificate handlers.
type CertificatesHandler struct {
	Store storage.ApiStore
}

// NewCertificatesHandler creates a new CertificatesHandler.
func NewCertificatesHandler(store storage.ApiStore) *CertificatesHandler {
	return &CertificatesHandler{Store: store}
}

// GetCertificateById handles the logic for retrieving a certificate.
func (h *CertificatesHandler) GetCertificateById(w http.ResponseWriter, r *http.Request, certificateId openapi_types.UUID) {
	cert, err := h.Store.GetCertificate(r.Context(), certificateId.String())
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, mapping.ToApiCertificate(cert))
}

// ListCertificatesByUser handles the logic for listing a user's earned
// certificates.
func (h *CertificatesHandler) ListCertificatesByUser(w http.ResponseWriter, r *http.Request, walletAddress string) {
	certs, err := h.Store.ListCertificatesByRecipient(r.Context(), walletAddress)
	if err != nil {
		respond.Error(w, err)
		return
	}

	apiCerts := make([]*api.Certificate, len(certs))
	for i := range certs {
		apiCerts[i] = mapping.ToApiCertificate(&certs[i])
	}

	respond.JSON(w, http.StatusOK, apiCerts)
}
