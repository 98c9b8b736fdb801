package storage

import "io"

// StorageService abstracts the external image store.
type StorageService interface {
	UploadImage(file io.Reader, folder string) (string, error)
	DeleteImage(publicID string) error
}
