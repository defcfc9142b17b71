package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"imageresizer/internal/application/ports"
	domain "imageresizer/internal/domain/image"
	"imageresizer/internal/infrastructure/metrics"
	"imageresizer/internal/infrastructure/mq"
)

type ImageService struct {
	storage  ports.ImageStorage
	codec    ports.ImageCodec
	events   ports.EventPublisher
	mCounter *prometheus.CounterVec
	log      *zap.Logger
	names    *NameGenerator
	maxBytes int64
}

func NewImageService(
	storage ports.ImageStorage,
	codec ports.ImageCodec,
	events ports.EventPublisher,
	mCounter *prometheus.CounterVec,
	logger *zap.Logger,
	maxBytes int64,
) ports.ImageService {
	return &ImageService{
		storage:  storage,
		codec:    codec,
		events:   events,
		mCounter: mCounter,
		log:      logger,
		names:    NewNameGenerator(),
		maxBytes: maxBytes,
	}
}

// Receive validates the uploaded part and stages it under a generated name.
// Checks run in order: presence, declared content type, size.
func (is *ImageService) Receive(_ context.Context, fh *multipart.FileHeader) (*domain.StoredImage, error) {
	if fh == nil {
		return nil, domain.ErrNoFile
	}
	mimeType := fh.Header.Get("Content-Type")
	if !strings.HasPrefix(strings.ToLower(mimeType), "image/") {
		return nil, domain.ErrNotAnImage
	}
	if fh.Size > is.maxBytes {
		return nil, domain.ErrTooLarge
	}

	name, err := is.names.Generate(fh.Filename)
	if err != nil {
		return nil, err
	}

	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	n, err := is.storage.Write(name, io.LimitReader(f, is.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("stage upload: %w", err)
	}
	if n > is.maxBytes {
		_ = is.storage.Remove(name)
		return nil, domain.ErrTooLarge
	}

	return &domain.StoredImage{
		Filename:     name,
		OriginalName: fh.Filename,
		MimeType:     mimeType,
		Size:         n,
	}, nil
}

func (is *ImageService) Upload(ctx context.Context, userID string, fh *multipart.FileHeader) (*domain.Upload, error) {
	stored, err := is.Receive(ctx, fh)
	if err != nil {
		return nil, err
	}

	md, err := is.metadata(stored.Filename, stored.Size)
	if err != nil {
		// a staged file the codec can't read is never referenced
		is.discard(stored.Filename)
		return nil, err
	}

	is.events.Publish(mq.NewEvent(mq.ActionImageUploaded, userID, map[string]any{
		"filename":     stored.Filename,
		"originalName": stored.OriginalName,
		"size":         stored.Size,
	}))
	is.mCounter.WithLabelValues(metrics.ImagesUploaded).Inc()

	return &domain.Upload{Image: *stored, Metadata: md}, nil
}

// Resize stages the upload, then writes resized-<name> as JPEG next to it.
// The derived file only appears once the encode has fully succeeded.
func (is *ImageService) Resize(
	ctx context.Context,
	userID string,
	fh *multipart.FileHeader,
	opts domain.ResizeOptions,
) (*domain.Resized, error) {
	if opts.Width < 0 || opts.Height < 0 {
		return nil, domain.ErrInvalidDimension
	}

	stored, err := is.Receive(ctx, fh)
	if err != nil {
		return nil, err
	}

	src, err := is.storage.Open(stored.Filename)
	if err != nil {
		return nil, fmt.Errorf("open staged %s: %w", stored.Filename, err)
	}
	var out bytes.Buffer
	err = is.codec.Resize(src, &out, opts)
	_ = src.Close()
	if err != nil {
		is.mCounter.WithLabelValues(metrics.ImageCodecFailures).Inc()
		return nil, err
	}

	resizedName := domain.ResizedPrefix + stored.Filename
	n, err := is.storage.Write(resizedName, &out)
	if err != nil {
		return nil, fmt.Errorf("write %s: %w", resizedName, err)
	}

	md, err := is.metadata(resizedName, n)
	if err != nil {
		is.discard(resizedName)
		return nil, err
	}

	is.events.Publish(mq.NewEvent(mq.ActionImageResized, userID, map[string]any{
		"original": stored.Filename,
		"resized":  resizedName,
		"width":    md.Width,
		"height":   md.Height,
		"size":     md.Size,
	}))
	is.mCounter.WithLabelValues(metrics.ImagesResized).Inc()

	return &domain.Resized{Source: *stored, Filename: resizedName, Metadata: md}, nil
}

// Delete removes a stored file by name. Any caller holding a valid token
// may delete any file; files carry no owner.
func (is *ImageService) Delete(_ context.Context, userID, filename string) error {
	if _, err := is.storage.Resolve(filename); err != nil {
		return domain.ErrInvalidPath
	}

	if err := is.storage.Remove(filename); err != nil {
		if errors.Is(err, domain.ErrInvalidPath) {
			return err
		}
		return fmt.Errorf("%w: %w", domain.ErrNotFound, err)
	}

	is.events.Publish(mq.NewEvent(mq.ActionImageDeleted, userID, map[string]string{
		"filename": filename,
	}))
	is.mCounter.WithLabelValues(metrics.ImagesDeleted).Inc()

	return nil
}

func (is *ImageService) metadata(name string, size int64) (domain.Metadata, error) {
	f, err := is.storage.Open(name)
	if err != nil {
		return domain.Metadata{}, fmt.Errorf("open %s: %w", name, err)
	}
	defer f.Close()

	md, err := is.codec.Metadata(f)
	if err != nil {
		is.mCounter.WithLabelValues(metrics.ImageCodecFailures).Inc()
		return domain.Metadata{}, err
	}
	md.Size = size

	return md, nil
}

func (is *ImageService) discard(name string) {
	if err := is.storage.Remove(name); err != nil {
		is.log.Warn("failed to discard staged file", zap.String("filename", name), zap.Error(err))
	}
}
