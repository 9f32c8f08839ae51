package media

import (
	"context"
	"errors"
	"fmt"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/halcyonpress/halcyon/internal/auth"
	"github.com/halcyonpress/halcyon/internal/metrics"
	"github.com/halcyonpress/halcyon/internal/models"
	"github.com/halcyonpress/halcyon/internal/sanitize"
)

// ErrUnsupportedType is returned for uploads with a disallowed extension.
var ErrUnsupportedType = errors.New("media: unsupported file type")

// ErrTooLarge is returned for uploads over the configured size limit.
var ErrTooLarge = errors.New("media: file too large")

var allowedExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true,
	".webp": true, ".avif": true, ".svg": true, ".ico": true,
}

// AssetStore is the backend registry of uploaded objects.
type AssetStore interface {
	ListMediaAssets(ctx context.Context) ([]map[string]any, error)
	UpsertMediaAsset(ctx context.Context, m models.MediaAsset) error
	DeleteMediaAsset(ctx context.Context, objectPath string) error
}

// ObjectStore is the bucket itself.
type ObjectStore interface {
	Put(ctx context.Context, key, contentType string, data []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}

// Service owns the media library: uploads, listings, deletions and the
// same-origin proxy reads.
type Service struct {
	assets    AssetStore
	bucket    ObjectStore
	norm      *Normalizer
	maxUpload int64
	now       func() time.Time
}

func NewService(assets AssetStore, bucket ObjectStore, norm *Normalizer, maxUpload int64) *Service {
	return &Service{
		assets:    assets,
		bucket:    bucket,
		norm:      norm,
		maxUpload: maxUpload,
		now:       time.Now,
	}
}

var unsafeNameChars = regexp.MustCompile(`[^a-z0-9._-]+`)

// objectName builds a collision-resistant object file name from the original
// upload name.
func (s *Service) objectName(fileName string) string {
	base := strings.ToLower(path.Base(fileName))
	base = unsafeNameChars.ReplaceAllString(base, "-")
	base = strings.Trim(base, "-.")
	if base == "" {
		base = "upload"
	}
	return fmt.Sprintf("%d-%s", s.now().Unix(), base)
}

// kindSegment maps a requested kind onto the object path convention; unknown
// kinds land in other/.
func kindSegment(kind string) string {
	switch models.MediaKind(kind) {
	case models.MediaKindPosts, models.MediaKindAuthors, models.MediaKindAbout:
		return kind
	default:
		return string(models.MediaKindOther)
	}
}

// Upload stores a file in the bucket under images/<kind>/<name> and
// registers it in the backend.
func (s *Service) Upload(ctx context.Context, sess *auth.Session, kind, fileName string, data []byte) (models.MediaAsset, error) {
	if err := auth.CanManageMedia(sess).Err(); err != nil {
		return models.MediaAsset{}, err
	}
	if int64(len(data)) > s.maxUpload {
		return models.MediaAsset{}, ErrTooLarge
	}
	ext := strings.ToLower(path.Ext(fileName))
	if !allowedExtensions[ext] {
		return models.MediaAsset{}, ErrUnsupportedType
	}

	objectPath := "images/" + kindSegment(kind) + "/" + s.objectName(fileName)
	if err := s.bucket.Put(ctx, objectPath, ContentTypeByExtension(objectPath), data); err != nil {
		return models.MediaAsset{}, err
	}

	asset := models.MediaAsset{
		ObjectPath: objectPath,
		PublicURL:  s.norm.PublicURL(objectPath),
		FileName:   path.Base(objectPath),
		Extension:  strings.TrimPrefix(ext, "."),
		Directory:  path.Dir(objectPath),
		Kind:       models.KindFromObjectPath(objectPath),
		SizeBytes:  int64(len(data)),
		ModifiedAt: s.now().UTC(),
	}
	if err := s.assets.UpsertMediaAsset(ctx, asset); err != nil {
		metrics.BackendErrors.WithLabelValues("media_assets").Inc()
		return models.MediaAsset{}, err
	}
	return asset, nil
}

// List returns the registered assets, newest first.
func (s *Service) List(ctx context.Context, sess *auth.Session) ([]models.MediaAsset, error) {
	if err := auth.CanManageMedia(sess).Err(); err != nil {
		return nil, err
	}
	rows, err := s.assets.ListMediaAssets(ctx)
	if err != nil {
		metrics.BackendErrors.WithLabelValues("media_assets").Inc()
		return nil, err
	}

	out := make([]models.MediaAsset, 0, len(rows))
	for _, row := range rows {
		asset, ok := sanitize.MediaAsset(row)
		if !ok {
			continue
		}
		if asset.PublicURL == "" {
			asset.PublicURL = s.norm.PublicURL(asset.ObjectPath)
		}
		out = append(out, asset)
	}
	return out, nil
}

// Delete removes an asset referenced either by object path or by any of its
// URL forms (public URL, legacy /images/ path).
func (s *Service) Delete(ctx context.Context, sess *auth.Session, ref string) error {
	if err := auth.CanManageMedia(sess).Err(); err != nil {
		return err
	}

	objectPath := ref
	if strings.Contains(ref, "://") || strings.HasPrefix(ref, "/") {
		p, err := s.norm.ObjectPathFromPublicURL(ref)
		if err != nil {
			return err
		}
		objectPath = p
	}
	if !models.SafeObjectPath(objectPath) {
		return ErrUnrecognizedMediaPath
	}

	if err := s.bucket.Delete(ctx, objectPath); err != nil {
		return err
	}
	if err := s.assets.DeleteMediaAsset(ctx, objectPath); err != nil {
		metrics.BackendErrors.WithLabelValues("media_assets").Inc()
		return err
	}
	return nil
}

// Fetch reads one object for the same-origin proxy and returns its inferred
// content type. The caller validates the path shape first.
func (s *Service) Fetch(ctx context.Context, objectPath string) ([]byte, string, error) {
	data, err := s.bucket.Get(ctx, objectPath)
	if err != nil {
		return nil, "", err
	}
	return data, ContentTypeByExtension(objectPath), nil
}
