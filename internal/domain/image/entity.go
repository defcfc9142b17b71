package image

const (
	DefaultQuality = 80
	OutputFormat   = "jpeg"
	ResizedPrefix  = "resized-"
)

type (
	// StoredImage is a file accepted into the storage directory.
	StoredImage struct {
		Filename     string
		OriginalName string
		MimeType     string
		Size         int64
	}

	Metadata struct {
		Width  int
		Height int
		Format string
		Size   int64
	}

	// ResizeOptions: zero Width/Height means "not set".
	ResizeOptions struct {
		Width   int
		Height  int
		Quality int
	}

	Upload struct {
		Image    StoredImage
		Metadata Metadata
	}

	Resized struct {
		Source   StoredImage
		Filename string
		Metadata Metadata
	}
)

func (o ResizeOptions) QualityOrDefault() int {
	if o.Quality == 0 {
		return DefaultQuality
	}
	return o.Quality
}
