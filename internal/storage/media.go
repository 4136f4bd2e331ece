package storage

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/chai2010/webp"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/image/draw"

	"github.com/pawpoint/grooming-scheduler/internal/config"
)

// MediaStore holds uploaded pet and service images in S3, re-encoded
// as webp.
type MediaStore struct {
	client  *s3.Client
	bucket  string
	region  string
	baseURL string
	log     *zap.Logger
}

func NewMediaStore(cfg *config.Config, log *zap.Logger) *MediaStore {
	opts := s3.Options{
		Region: cfg.S3Region,
		Credentials: credentials.NewStaticCredentialsProvider(
			cfg.S3AccessKey,
			cfg.S3SecretKey,
			"",
		),
	}
	if cfg.S3Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.S3Endpoint)
		opts.UsePathStyle = true
	}

	return &MediaStore{
		client:  s3.New(opts),
		bucket:  cfg.S3Bucket,
		region:  cfg.S3Region,
		baseURL: cfg.MediaBaseURL,
		log:     log,
	}
}

const maxImageDim = 1024

// SaveImage decodes the upload, downscales it to at most 1024px on the
// long edge, re-encodes as webp and pushes it under keyPrefix. Returns
// the public URL of the stored object.
func (m *MediaStore) SaveImage(ctx context.Context, keyPrefix string, r io.Reader) (string, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}

	img = downscale(img, maxImageDim)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: 80}); err != nil {
		return "", fmt.Errorf("encode webp: %w", err)
	}

	key := fmt.Sprintf("%s/%s.webp", keyPrefix, uuid.New().String())

	_, err = m.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(m.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String("image/webp"),
		ACL:         types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return "", fmt.Errorf("put object: %w", err)
	}

	m.log.Info("media stored",
		zap.String("key", key),
		zap.Int("bytes", buf.Len()),
	)

	return m.publicURL(key), nil
}

func (m *MediaStore) publicURL(key string) string {
	if m.baseURL != "" {
		return fmt.Sprintf("%s/%s", m.baseURL, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", m.bucket, m.region, key)
}

func downscale(img image.Image, max int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= max && h <= max {
		return img
	}

	if w >= h {
		h = h * max / w
		w = max
	} else {
		w = w * max / h
		h = max
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}
