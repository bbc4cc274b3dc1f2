package domain

import "context"

const (
	// MaxPictureSize caps profile-picture uploads at 2MB.
	MaxPictureSize = 2 << 20
	// PicturePrefix namespaces picture objects inside the store.
	PicturePrefix = "profile_pics"
)

// PictureStore abstracts profile-picture byte storage. Save returns the
// reference persisted on the user row (a public URL for the bucket
// backend, a served path for the local one); Delete takes that reference
// back. Implementations cover an external object-storage bucket and a
// local upload directory.
type PictureStore interface {
	Save(ctx context.Context, name, contentType string, data []byte) (string, error)
	Delete(ctx context.Context, ref string) error
}
