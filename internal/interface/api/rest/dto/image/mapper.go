package image

import (
	"path"

	"imageresizer/internal/domain/image"
)

// PublicPrefix is where stored files are served from.
const PublicPrefix = "/uploads"

func PublicPath(filename string) string { return path.Join(PublicPrefix, filename) }

func ToUploaded(u image.Upload) Uploaded {
	return Uploaded{
		Filename:     u.Image.Filename,
		Path:         PublicPath(u.Image.Filename),
		OriginalName: u.Image.OriginalName,
		Size:         u.Image.Size,
		Width:        u.Metadata.Width,
		Height:       u.Metadata.Height,
		Format:       u.Metadata.Format,
	}
}

func ToResized(r image.Resized) Resized {
	return Resized{
		Original: PublicPath(r.Source.Filename),
		Resized:  PublicPath(r.Filename),
		Width:    r.Metadata.Width,
		Height:   r.Metadata.Height,
		Format:   r.Metadata.Format,
		Size:     r.Metadata.Size,
	}
}
