package cloudinaryrepo

import (
	"context"
	"io"
)

type Repo interface {
	// Upload stores one image and returns its public URL.
	Upload(ctx context.Context, filename string, file io.Reader) (string, error)
}
