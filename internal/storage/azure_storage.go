package storage

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
)

// ResultStore persists encoded result images. The store is optional; a nil
// *AzureResultStore is a valid, disabled store.
type ResultStore interface {
	SaveResult(ctx context.Context, name string, png []byte) (string, error)
	Enabled() bool
}

// AzureResultStore uploads results to an Azure Blob Storage container.
type AzureResultStore struct {
	client    *azblob.Client
	container string
}

func NewAzureResultStore(accountName, accountKey, container string) (*AzureResultStore, error) {
	credential, err := azblob.NewSharedKeyCredential(accountName, accountKey)
	if err != nil {
		return nil, err
	}

	client, err := azblob.NewClientWithSharedKeyCredential(
		fmt.Sprintf("https://%s.blob.core.windows.net", accountName),
		credential,
		nil,
	)
	if err != nil {
		return nil, err
	}

	return &AzureResultStore{client: client, container: container}, nil
}

// SaveResult uploads the PNG bytes and returns the blob name.
func (s *AzureResultStore) SaveResult(ctx context.Context, name string, png []byte) (string, error) {
	if s == nil {
		return "", nil
	}

	_, err := s.client.UploadBuffer(ctx, s.container, name, png, nil)
	if err != nil {
		return "", fmt.Errorf("upload failed: %w", err)
	}
	return name, nil
}

// Enabled reports whether results actually get persisted.
func (s *AzureResultStore) Enabled() bool {
	return s != nil
}
