/*
Package storage turns asset references found in backend payloads (user avatars,
project images) into URLs the browser can load.

A reference is either an absolute http(s) URL, used as is, or an object key. Keys are
signed against the S3 bucket when one is configured, otherwise joined to the public
asset base URL. References with any other scheme resolve to "".
*/
package storage

import (
	"context"
	"net/url"
	"strings"
	"time"
)

// DownloadURLExpiration is the lifetime of a presigned asset URL.
const DownloadURLExpiration = 15 * time.Minute

// ServiceConfig holds the configuration required to resolve asset references.
type ServiceConfig struct {
	AssetBaseURL string

	S3BucketName      string
	S3Endpoint        string
	S3AccessKeyID     string
	S3SecretAccessKey string
}

// Presigner issues temporary download URLs for object keys.
type Presigner interface {
	PresignDownload(ctx context.Context, key string, duration time.Duration) (string, error)
}

// Resolver maps asset references to browser URLs. It is safe for concurrent use.
type Resolver struct {
	baseURL   string
	presigner Presigner
}

// NewResolver builds a Resolver from cfg. An S3 presigner is set up only when a
// bucket is configured.
func NewResolver(ctx context.Context, cfg ServiceConfig) (*Resolver, error) {
	r := &Resolver{baseURL: strings.TrimRight(cfg.AssetBaseURL, "/")}
	if cfg.S3BucketName == "" {
		return r, nil
	}

	p, err := newS3Presigner(ctx, cfg)
	if err != nil {
		return nil, err
	}
	r.presigner = p
	return r, nil
}

// NewStaticResolver resolves keys against baseURL only.
func NewStaticResolver(baseURL string) *Resolver {
	return &Resolver{baseURL: strings.TrimRight(baseURL, "/")}
}

// WithPresigner returns a copy of r that signs keys with p.
func (r *Resolver) WithPresigner(p Presigner) *Resolver {
	cp := *r
	cp.presigner = p
	return &cp
}

// URL returns the browser URL for ref, or "" when ref is empty or cannot be resolved.
func (r *Resolver) URL(ctx context.Context, ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	if isAbsolute(ref) {
		return ref
	}
	if u, err := url.Parse(ref); err != nil || u.Scheme != "" {
		// Only http(s) URLs and object keys are loadable by the pages.
		return ""
	}

	key := strings.TrimLeft(ref, "/")
	if r.presigner != nil {
		signed, err := r.presigner.PresignDownload(ctx, key, DownloadURLExpiration)
		if err != nil {
			return ""
		}
		return signed
	}

	if r.baseURL == "" {
		return "/" + key
	}
	return r.baseURL + "/" + key
}

func isAbsolute(ref string) bool {
	u, err := url.Parse(ref)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
