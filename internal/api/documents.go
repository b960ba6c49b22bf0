package api

import (
	"context"
	"io"
	"net/url"

	"github.com/muynuddinr/work-management-system/internal/model"
)

// DocumentsService groups the /documents endpoints.
type DocumentsService struct {
	c *Client
}

// DocumentFilter narrows List results. Search is a free-text filter
// used by the global search fan-out.
type DocumentFilter struct {
	Category string
	Search   string
}

func (f DocumentFilter) query() string {
	v := url.Values{}
	if f.Category != "" {
		v.Set("category", f.Category)
	}
	if f.Search != "" {
		v.Set("search", f.Search)
	}
	if len(v) == 0 {
		return ""
	}
	return "?" + v.Encode()
}

// List returns document records matching the filter.
func (s *DocumentsService) List(ctx context.Context, filter DocumentFilter) ([]model.Document, error) {
	var docs []model.Document
	if err := s.c.get(ctx, "/documents"+filter.query(), &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// Get returns a single document record.
func (s *DocumentsService) Get(ctx context.Context, id string) (*model.Document, error) {
	var doc model.Document
	if err := s.c.get(ctx, "/documents/"+id, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Upload stores a new document with its metadata.
func (s *DocumentsService) Upload(
	ctx context.Context,
	fileName string,
	file io.Reader,
	title, description, category string,
) (*model.Document, error) {
	fields := map[string]string{"title": title}
	if description != "" {
		fields["description"] = description
	}
	if category != "" {
		fields["category"] = category
	}

	var doc model.Document
	err := s.c.upload(ctx, "POST", "/documents", "file", fileName, file, fields, &doc)
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// Update edits document metadata.
func (s *DocumentsService) Update(ctx context.Context, id string, payload interface{}) (*model.Document, error) {
	var doc model.Document
	if err := s.c.put(ctx, "/documents/"+id, payload, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Delete removes a document.
func (s *DocumentsService) Delete(ctx context.Context, id string) error {
	return s.c.delete(ctx, "/documents/"+id)
}

// RecordDownload bumps the server-side download counter.
func (s *DocumentsService) RecordDownload(ctx context.Context, id string) error {
	return s.c.put(ctx, "/documents/"+id+"/download", nil, nil)
}

// File fetches the document's binary content.
func (s *DocumentsService) File(ctx context.Context, id string) ([]byte, error) {
	return s.c.download(ctx, "/documents/"+id+"/file")
}
