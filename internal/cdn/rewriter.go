// Reelfeed - Short-Video Feed Assembly Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

// Package cdn rewrites storage-bucket URLs into CDN URLs.
//
// Only bucket-style URLs are touched: an s3:// URL, or an http(s) URL whose
// host has an "s3" (or "s3-<region>") label. Anything else, including URLs
// that already point at the CDN, passes through unchanged, which makes the
// rewrite idempotent.
package cdn

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/tomtom215/reelfeed/internal/models"
)

// Rewriter maps bucket object keys onto a CDN base URL. The zero value and
// a Rewriter with an empty base leave every URL unchanged.
type Rewriter struct {
	base string
}

// New returns a Rewriter for base. base must be an absolute http(s) URL that
// is not itself a bucket URL; an empty base disables rewriting.
func New(base string) (*Rewriter, error) {
	if base == "" {
		return &Rewriter{}, nil
	}
	if err := ValidateBase(base); err != nil {
		return nil, err
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return &Rewriter{base: base}, nil
}

// ValidateBase reports whether base can serve as a CDN base URL.
func ValidateBase(base string) error {
	u, err := url.Parse(base)
	if err != nil {
		return fmt.Errorf("cdn base url %q is invalid: %w", base, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("cdn base url %q must use http or https", base)
	}
	if u.Host == "" {
		return fmt.Errorf("cdn base url %q must include a host", base)
	}
	if IsBucketURL(base) {
		return fmt.Errorf("cdn base url %q must not be a storage bucket url", base)
	}
	return nil
}

// Enabled reports whether the rewriter changes anything.
func (r *Rewriter) Enabled() bool {
	return r != nil && r.base != ""
}

// VideoURL returns the playback URL for v. A stored object key takes
// precedence over the stored URL.
func (r *Rewriter) VideoURL(v *models.Video) string {
	if !r.Enabled() {
		return v.URL
	}
	if v.StorageKey != "" {
		return r.base + strings.TrimPrefix(v.StorageKey, "/")
	}
	return r.AssetURL(v.URL)
}

// AssetURL rewrites raw if it is a bucket URL and returns it unchanged
// otherwise.
func (r *Rewriter) AssetURL(raw string) string {
	if !r.Enabled() || raw == "" {
		return raw
	}
	u, err := url.Parse(raw)
	if err != nil || !isBucket(u) {
		return raw
	}
	key := objectKey(u)
	if key == "" {
		return raw
	}
	if u.RawQuery != "" {
		key += "?" + u.RawQuery
	}
	return r.base + key
}

// IsBucketURL reports whether raw addresses an object in a storage bucket.
func IsBucketURL(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && isBucket(u)
}

func isBucket(u *url.URL) bool {
	switch strings.ToLower(u.Scheme) {
	case "s3":
		return u.Host != ""
	case "http", "https":
		for _, label := range strings.Split(strings.ToLower(u.Hostname()), ".") {
			if isS3Label(label) {
				return true
			}
		}
	}
	return false
}

func isS3Label(label string) bool {
	return label == "s3" || strings.HasPrefix(label, "s3-")
}

// objectKey extracts the object key. Virtual-hosted URLs carry the bucket in
// the host; path-style URLs carry it in the first path segment.
func objectKey(u *url.URL) string {
	path := strings.TrimPrefix(u.EscapedPath(), "/")
	if strings.EqualFold(u.Scheme, "s3") {
		return path
	}

	first := strings.ToLower(strings.SplitN(u.Hostname(), ".", 2)[0])
	if isS3Label(first) {
		// path-style: s3.<region>.amazonaws.com/<bucket>/<key>
		if i := strings.IndexByte(path, '/'); i >= 0 {
			return path[i+1:]
		}
		return ""
	}
	return path
}
