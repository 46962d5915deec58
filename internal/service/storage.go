package service

import (
	"context"
	"io"
)

// ImageStore is the slice of the Dropbox client the content services use.
// Declared here (at the consumer) so service tests can substitute a fake
// without touching the storage package.
//
// Delete deliberately returns nothing: it is best-effort by contract — the
// implementation logs failures and the enclosing mutation proceeds.
type ImageStore interface {
	Upload(ctx context.Context, filename string, contents io.Reader) (string, error)
	SharedLink(ctx context.Context, path string) (string, error)
	Delete(ctx context.Context, fileURL string)
}

// ImageUpload is an image file received in a multipart request: the
// client-supplied filename plus a reader over the bytes.
type ImageUpload struct {
	Filename string
	Data     io.Reader
}
