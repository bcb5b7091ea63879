// Package media stores uploaded images and hands back stable references.
//
// The Store interface is the narrow contract the creation and admission
// flows depend on: give it image bytes (or a remote URL), get back a
// MediaRef with a content identifier and a retrieval URL. Failures are
// reported as ErrUpload-wrapped errors with no implied retry.
package media

import (
	"context"
	"errors"

	"github.com/snapgala/api/internal/model"
)

// ErrUpload indicates a transport or encoding failure while storing an image.
var ErrUpload = errors.New("media upload failed")

// Store accepts raw images and returns stable content references.
type Store interface {
	// Upload stores image bytes under a folder hint.
	Upload(ctx context.Context, data []byte, folder string) (model.MediaRef, error)

	// UploadFromURL fetches a remote image and stores it under a folder hint.
	UploadFromURL(ctx context.Context, rawURL, folder string) (model.MediaRef, error)
}
