package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"path/filepath"
	"strconv"

	"cordonbleu-backend/internal/menu"
	"cordonbleu-backend/internal/offers"
	"cordonbleu-backend/internal/upload"
)

var (
	ErrNotConfirmed = errors.New("client: bulk delete was not confirmed")
	ErrNoItems      = errors.New("client: no items selected")
)

// ConfirmFunc is asked before a destructive request is sent. n is the number
// of selected items.
type ConfirmFunc func(n int) bool

func requireSession(s *Session) error {
	if !s.LoggedIn() {
		return ErrNoSession
	}
	return nil
}

func (c *Client) CreateCategory(ctx context.Context, s *Session, req menu.CreateCategoryRequest) (*menu.CategoryResponse, error) {
	if err := requireSession(s); err != nil {
		return nil, err
	}
	var out menu.CategoryResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/categories", s, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateMenuItem(ctx context.Context, s *Session, req menu.CreateItemRequest) (*menu.ItemResponse, error) {
	if err := requireSession(s); err != nil {
		return nil, err
	}
	var out menu.ItemResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/menu-items", s, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateMenuItem(ctx context.Context, s *Session, id uint, req menu.UpdateItemRequest) (*menu.ItemResponse, error) {
	if err := requireSession(s); err != nil {
		return nil, err
	}
	var out menu.ItemResponse
	if err := c.doJSON(ctx, http.MethodPut, itemPath(id), s, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteMenuItem(ctx context.Context, s *Session, id uint) error {
	if err := requireSession(s); err != nil {
		return err
	}
	return c.doJSON(ctx, http.MethodDelete, itemPath(id), s, nil, nil)
}

// BulkUpdate applies patch to every listed item and returns how many changed.
func (c *Client) BulkUpdate(ctx context.Context, s *Session, ids []uint, patch map[string]any) (int64, error) {
	if err := requireSession(s); err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, ErrNoItems
	}
	var out menu.BulkUpdateResponse
	body := menu.BulkUpdateRequest{ItemIDs: ids, Updates: patch}
	if err := c.doJSON(ctx, http.MethodPut, "/api/menu-items/bulk-update", s, body, &out); err != nil {
		return 0, err
	}
	return out.ModifiedCount, nil
}

// BulkDelete sends nothing unless confirm returns true.
func (c *Client) BulkDelete(ctx context.Context, s *Session, ids []uint, confirm ConfirmFunc) (int64, error) {
	if err := requireSession(s); err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, ErrNoItems
	}
	if confirm == nil || !confirm(len(ids)) {
		return 0, ErrNotConfirmed
	}
	var out menu.BulkDeleteResponse
	body := menu.BulkDeleteRequest{ItemIDs: ids}
	if err := c.doJSON(ctx, http.MethodPost, "/api/menu-items/bulk-delete", s, body, &out); err != nil {
		return 0, err
	}
	return out.DeletedCount, nil
}

func (c *Client) ToggleOffer(ctx context.Context, s *Session, id uint) (*offers.OfferResponse, error) {
	if err := requireSession(s); err != nil {
		return nil, err
	}
	var out offers.OfferResponse
	path := "/api/special-offers/" + strconv.FormatUint(uint64(id), 10) + "/toggle"
	if err := c.doJSON(ctx, http.MethodPatch, path, s, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UploadImage stores an image and returns the public path the server assigned.
func (c *Client) UploadImage(ctx context.Context, s *Session, filename string, r io.Reader) (string, error) {
	if err := requireSession(s); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, upload.FormField, filepath.Base(filename)))
	if ct := mime.TypeByExtension(filepath.Ext(filename)); ct != "" {
		header.Set("Content-Type", ct)
	}
	part, err := mw.CreatePart(header)
	if err != nil {
		return "", fmt.Errorf("build upload: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return "", fmt.Errorf("build upload: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("build upload: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/api/upload/image", s, &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var out upload.ImageResponse
	if err := c.send(req, &out); err != nil {
		return "", err
	}
	return out.FilePath, nil
}
