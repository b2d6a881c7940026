package uploadsvc

import (
	"context"
	"io"

	cloudinaryrepo "github.com/Kashh99/closet-backend/repository/cloudinary"
	"github.com/Kashh99/closet-backend/util/fault"
)

// MaxBatch caps multi-image uploads.
const MaxBatch = 5

type File struct {
	Name   string
	Reader io.Reader
}

type Service interface {
	Single(ctx context.Context, f File) (string, error)
	Multiple(ctx context.Context, files []File) ([]string, error)
}

type service struct{ cr cloudinaryrepo.Repo }

func New(cr cloudinaryrepo.Repo) Service { return &service{cr: cr} }

func (s *service) Single(ctx context.Context, f File) (string, error) {
	url, err := s.cr.Upload(ctx, f.Name, f.Reader)
	if err != nil {
		return "", fault.Wrap(fault.Upstream, "error uploading image", err)
	}
	return url, nil
}

func (s *service) Multiple(ctx context.Context, files []File) ([]string, error) {
	if len(files) == 0 {
		return nil, fault.New(fault.Validation, "no images provided")
	}
	if len(files) > MaxBatch {
		return nil, fault.New(fault.Validation, "too many images: at most 5 per upload")
	}
	urls := make([]string, 0, len(files))
	for _, f := range files {
		url, err := s.cr.Upload(ctx, f.Name, f.Reader)
		if err != nil {
			return nil, fault.Wrap(fault.Upstream, "error uploading images", err)
		}
		urls = append(urls, url)
	}
	return urls, nil
}
