package ports

import (
	"context"
	"io"
	"mime/multipart"

	"imageresizer/internal/domain/image"
)

type ImageService interface {
	Receive(ctx context.Context, fh *multipart.FileHeader) (*image.StoredImage, error)
	Upload(ctx context.Context, userID string, fh *multipart.FileHeader) (*image.Upload, error)
	Resize(ctx context.Context, userID string, fh *multipart.FileHeader, opts image.ResizeOptions) (*image.Resized, error)
	Delete(ctx context.Context, userID, filename string) error
}

// ImageStorage is the staging directory. Names are plain basenames.
type ImageStorage interface {
	Resolve(name string) (string, error)
	Write(name string, r io.Reader) (int64, error)
	Open(name string) (io.ReadCloser, error)
	Remove(name string) error
}

type ImageCodec interface {
	Resize(src io.Reader, dst io.Writer, opts image.ResizeOptions) error
	Metadata(src io.Reader) (image.Metadata, error)
}
