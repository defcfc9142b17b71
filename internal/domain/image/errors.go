package image

import "errors"

// upload
var (
	ErrNoFile     = errors.New("no image file provided")
	ErrNotAnImage = errors.New("only image files are allowed")
	ErrTooLarge   = errors.New("image exceeds the upload size limit")
)

// resize
var (
	ErrInvalidDimension = errors.New("width and height must be integers between 1 and 10000")
	ErrCodecFailure     = errors.New("image codec failure")
)

// delete
var (
	ErrInvalidPath = errors.New("invalid file path")
	ErrNotFound    = errors.New("image not found")
)
