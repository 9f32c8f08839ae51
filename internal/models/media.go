package models

import (
	"strings"
	"time"
)

// MediaKind groups stored assets by the second segment of their object path
// (images/posts/cover.jpg -> posts).
type MediaKind string

const (
	MediaKindPosts   MediaKind = "posts"
	MediaKindAuthors MediaKind = "authors"
	MediaKindAbout   MediaKind = "about"
	MediaKindOther   MediaKind = "other"
)

// KindFromObjectPath derives the asset kind from the second path segment,
// e.g. images/posts/cover.jpg -> posts.
func KindFromObjectPath(objectPath string) MediaKind {
	segments := strings.Split(strings.TrimPrefix(objectPath, "/"), "/")
	if len(segments) < 2 {
		return MediaKindOther
	}
	switch segments[1] {
	case "posts":
		return MediaKindPosts
	case "authors":
		return MediaKindAuthors
	case "about":
		return MediaKindAbout
	default:
		return MediaKindOther
	}
}

// SafeObjectPath rejects traversal attempts before a path reaches the
// bucket.
func SafeObjectPath(objectPath string) bool {
	if objectPath == "" {
		return false
	}
	if strings.Contains(objectPath, "..") || strings.Contains(objectPath, "\\") {
		return false
	}
	return true
}

// MediaAsset is a stored file in the media bucket. ObjectPath is the unique
// bucket-relative key; PublicURL is derived from it.
type MediaAsset struct {
	ObjectPath string    `json:"object_path"`
	PublicURL  string    `json:"public_url"`
	FileName   string    `json:"file_name"`
	Extension  string    `json:"extension"`
	Directory  string    `json:"directory"`
	Kind       MediaKind `json:"kind"`
	SizeBytes  int64     `json:"size_bytes"`
	ModifiedAt time.Time `json:"modified_at"`
}
