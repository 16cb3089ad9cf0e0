package services

import (
	"fmt"
	"os"
	"path"

	storage_go "github.com/supabase-community/storage-go"
	supa "github.com/supabase-community/supabase-go"
)

// CloudStorage is the object-storage hand-off for uploaded PDFs.
type CloudStorage interface {
	UploadPdf(localPath, objectName string) (string, error)
}

type supabaseStorage struct {
	client *supa.Client
	bucket string
	folder string
}

func NewSupabaseStorage(client *supa.Client, bucket, folder string) CloudStorage {
	return &supabaseStorage{
		client: client,
		bucket: bucket,
		folder: folder,
	}
}

// UploadPdf pushes the local file into the bucket under the configured folder
// and returns the public URL the stored object resolves to.
func (s *supabaseStorage) UploadPdf(localPath, objectName string) (string, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("failed to open file for upload: %w", err)
	}
	defer f.Close()

	objectPath := path.Join(s.folder, objectName)
	contentType := "application/pdf"

	_, err = s.client.Storage.UploadFile(s.bucket, objectPath, f, storage_go.FileOptions{
		ContentType: &contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file to storage: %w", err)
	}

	resp := s.client.Storage.GetPublicUrl(s.bucket, objectPath)
	return resp.SignedURL, nil
}
