package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// DriveServiceInterface defines the contract for customer-document storage
type DriveServiceInterface interface {
	UploadClienteDocument(ctx context.Context, curp, tipoDoc, filename string, content io.Reader) (string, error)
}

// DriveService stores customer identification documents (INE, CURP PDFs)
// in a Google Drive folder via a Service Account.
type DriveService struct {
	client   *drive.Service
	folderID string
}

// NewDriveService creates a new DriveService instance
// credentialsPath should be the path to the Service Account JSON file
func NewDriveService(credentialsPath string) (*DriveService, error) {
	folderID := os.Getenv("DRIVE_DOCS_FOLDER_ID")
	if folderID == "" {
		return nil, fmt.Errorf("DRIVE_DOCS_FOLDER_ID environment variable is not set")
	}

	ctx := context.Background()
	driveService, err := drive.NewService(ctx, option.WithCredentialsFile(credentialsPath))
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}

	return &DriveService{
		client:   driveService,
		folderID: folderID,
	}, nil
}

// Ensure DriveService implements DriveServiceInterface
var _ DriveServiceInterface = (*DriveService)(nil)

// UploadClienteDocument uploads a customer document and returns its Drive
// web link, which the cliente row stores as the document reference.
// tipoDoc is "identificacion" or "curp".
func (ds *DriveService) UploadClienteDocument(ctx context.Context, curp, tipoDoc, filename string, content io.Reader) (string, error) {
	ext := filepath.Ext(filename)
	if ext == "" {
		ext = ".pdf"
	}
	// Unique name per upload so a re-upload never overwrites the previous file.
	name := fmt.Sprintf("%s_%s_%s%s", curp, tipoDoc, uuid.NewString()[:8], ext)

	meta := &drive.File{
		Name:    name,
		Parents: []string{ds.folderID},
	}

	file, err := ds.client.Files.Create(meta).
		Media(content).
		Fields("id, webViewLink").
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("failed to upload document %s: %w", name, err)
	}

	log.Printf("✅ DriveService: Uploaded document %s (id=%s)", name, file.Id)
	return file.WebViewLink, nil
}
