// Package storage mirrors workspace-hosted attachments into the project's
// object storage bucket so image links survive the source's expiring URLs.
package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

type Client struct {
	httpClient *resty.Client
	baseURL    string
	serviceKey string
	bucket     string
	logger     *zap.Logger
}

func NewClient(baseURL, serviceKey, bucket string, logger *zap.Logger) *Client {
	httpClient := resty.New().
		SetTimeout(30 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(1 * time.Second)

	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		serviceKey: serviceKey,
		bucket:     bucket,
		logger:     logger,
	}
}

var extByContentType = map[string]string{
	"image/jpeg":    "jpg",
	"image/png":     "png",
	"image/webp":    "webp",
	"image/gif":     "gif",
	"image/svg+xml": "svg",
}

// MirrorImage downloads sourceURL and re-uploads it under a deterministic
// key, overwriting whatever is already there so re-sync stays idempotent.
// Every failure degrades to "", a missing image is never fatal to a sync.
func (c *Client) MirrorImage(ctx context.Context, ownerID, sourceURL string) string {
	if sourceURL == "" {
		return ""
	}

	res, err := c.httpClient.R().
		SetContext(ctx).
		Get(sourceURL)
	if err != nil || !res.IsSuccess() {
		c.logger.Warn("attachment download failed",
			zap.String("owner", ownerID),
			zap.Error(err),
		)
		return ""
	}

	contentType := res.Header().Get("Content-Type")
	ext, ok := extByContentType[strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))]
	if !ok {
		ext = "jpg"
	}

	path := fmt.Sprintf("items/%s.%s", ownerID, ext)
	upload, err := c.httpClient.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+c.serviceKey).
		SetHeader("Content-Type", contentType).
		SetHeader("x-upsert", "true").
		SetBody(res.Body()).
		Post(fmt.Sprintf("%s/storage/v1/object/%s/%s", c.baseURL, c.bucket, path))
	if err != nil || !upload.IsSuccess() {
		c.logger.Warn("attachment upload failed",
			zap.String("owner", ownerID),
			zap.String("path", path),
			zap.Error(err),
		)
		return ""
	}

	return c.PublicURL(path)
}

// PublicURL returns the bucket-public address of a stored object.
func (c *Client) PublicURL(path string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", c.baseURL, c.bucket, path)
}
