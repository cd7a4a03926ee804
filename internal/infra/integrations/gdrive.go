package integrations

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/agenciaturbo/turbo-ops-go/internal/domain"
	"github.com/agenciaturbo/turbo-ops-go/internal/infra/observability"
	"github.com/agenciaturbo/turbo-ops-go/internal/infra/resilience"
	"github.com/agenciaturbo/turbo-ops-go/internal/port"

	"go.uber.org/zap"
)

const driveAPIURL = "https://www.googleapis.com"

func mockDriveFiles() []domain.DriveFile {
	return []domain.DriveFile{
		{ID: "1", Name: "Contrato Social.pdf", MimeType: "application/pdf", WebViewLink: "#"},
		{ID: "2", Name: "Logo.png", MimeType: "image/png", WebViewLink: "#"},
		{ID: "3", Name: "Briefing Inicial.docx", MimeType: "application/vnd.google-apps.document", WebViewLink: "#"},
	}
}

// DriveFetcher lists files from a client's Google Drive folder.
type DriveFetcher struct {
	fetcher
	baseURL string
}

// NewDriveFetcher creates a Google Drive fetcher.
func NewDriveFetcher(httpClient *http.Client, creds port.CredentialStore, cfg resilience.Config, logger *zap.Logger, metrics *observability.Metrics) *DriveFetcher {
	return &DriveFetcher{
		fetcher: fetcher{
			httpClient: httpClient,
			creds:      creds,
			cb:         resilience.NewCircuitBreaker("google_drive"),
			cfg:        cfg,
			logger:     logger,
			metrics:    metrics,
		},
		baseURL: driveAPIURL,
	}
}

type driveListResponse struct {
	Files []domain.DriveFile `json:"files"`
}

// ListFiles lists the files in folderID, or the root when empty.
// Unconfigured yields the mock files; a failed call yields an empty list.
func (f *DriveFetcher) ListFiles(ctx context.Context, folderID string) ([]domain.DriveFile, domain.FetchMeta) {
	ctx, span := tracer.Start(ctx, "Drive.ListFiles")
	defer span.End()

	creds, ok, err := f.credentials(ctx, domain.ProviderGoogleDrive)
	if err != nil {
		return []domain.DriveFile{}, f.meta(domain.ProviderGoogleDrive, domain.SourceEmpty, err.Error())
	}
	apiKey := creds["api_key"]
	if !ok || apiKey == "" {
		return mockDriveFiles(), f.meta(domain.ProviderGoogleDrive, domain.SourceMock, "not configured")
	}

	q := url.Values{}
	q.Set("key", apiKey)
	q.Set("fields", "files(id,name,mimeType,webViewLink,iconLink)")
	if folderID != "" {
		q.Set("q", fmt.Sprintf("'%s' in parents", folderID))
	}
	endpoint := fmt.Sprintf("%s/drive/v3/files?%s", f.baseURL, q.Encode())

	body, err := f.do(ctx, http.MethodGet, endpoint, nil, nil)
	if err != nil {
		return []domain.DriveFile{}, f.meta(domain.ProviderGoogleDrive, domain.SourceEmpty, "list files: "+err.Error())
	}

	var resp driveListResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return []domain.DriveFile{}, f.meta(domain.ProviderGoogleDrive, domain.SourceEmpty, "decode files: "+err.Error())
	}
	if resp.Files == nil {
		resp.Files = []domain.DriveFile{}
	}

	return resp.Files, f.meta(domain.ProviderGoogleDrive, domain.SourceLive, "")
}
