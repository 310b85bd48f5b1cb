package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// Resource is one list-shaped collection of the backend, such as
// /api/testimonials.
type Resource[T any] struct {
	c    *Client
	path string
}

func NewResource[T any](c *Client, path string) *Resource[T] {
	return &Resource[T]{c: c, path: path}
}

func (r *Resource[T]) Path() string {
	return r.path
}

// List returns every item, published or not, in server order.
func (r *Resource[T]) List(ctx context.Context, token string) ([]T, error) {
	env, err := r.c.doJSON(ctx, "list "+r.path, http.MethodGet, r.path, token, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[T](env.Data)
}

// ListPublished returns only published items and needs no token.
func (r *Resource[T]) ListPublished(ctx context.Context) ([]T, error) {
	env, err := r.c.doJSON(ctx, "list_published "+r.path, http.MethodGet, r.path+publishedSuffix, "", nil)
	if err != nil {
		return nil, err
	}
	return decodeList[T](env.Data)
}

func (r *Resource[T]) Create(ctx context.Context, token string, draft any) error {
	_, err := r.c.doJSON(ctx, "create "+r.path, http.MethodPost, r.path, token, draft)
	return err
}

func (r *Resource[T]) Update(ctx context.Context, token, id string, draft any) error {
	_, err := r.c.doJSON(ctx, "update "+r.path, http.MethodPut, r.itemPath(id), token, draft)
	return err
}

func (r *Resource[T]) Delete(ctx context.Context, token, id string) error {
	_, err := r.c.doJSON(ctx, "delete "+r.path, http.MethodDelete, r.itemPath(id), token, nil)
	return err
}

func (r *Resource[T]) itemPath(id string) string {
	return r.path + "/" + url.PathEscape(id)
}

func decodeList[T any](data json.RawMessage) ([]T, error) {
	out := make([]T, 0)
	if len(data) == 0 || string(data) == "null" {
		return out, nil
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decode list: %w", err)
	}
	return out, nil
}
