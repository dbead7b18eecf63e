package backend

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
)

// ListCategories returns every product category.
func (c *Client) ListCategories(ctx context.Context, optFns ...RequestOption) ([]Category, error) {
	if c == nil {
		return nil, ErrNotConfigured
	}
	req, err := c.newRequest(ctx, http.MethodGet, "/categories", nil, nil, collect(optFns))
	if err != nil {
		return nil, err
	}
	return do[[]Category](c, req)
}

// ListProducts returns products matching params.
func (c *Client) ListProducts(ctx context.Context, params ProductParams, optFns ...RequestOption) ([]Product, error) {
	if c == nil {
		return nil, ErrNotConfigured
	}
	query := url.Values{}
	var err error
	add := func(name string, value any) {
		if err == nil {
			err = addQueryParam(query, name, value)
		}
	}
	if s := strings.TrimSpace(params.Search); s != "" {
		add("search", s)
	}
	if params.Category > 0 {
		add("category", params.Category)
	}
	if params.MinPrice > 0 {
		add("minPrice", params.MinPrice)
	}
	if params.MaxPrice > 0 {
		add("maxPrice", params.MaxPrice)
	}
	if params.Sort != "" {
		add("sort", params.Sort)
	}
	if params.Featured {
		add("featured", true)
	}
	if err != nil {
		return nil, err
	}
	req, err := c.newRequest(ctx, http.MethodGet, "/products", query, nil, collect(optFns))
	if err != nil {
		return nil, err
	}
	return do[[]Product](c, req)
}

// GetProduct fetches one product by id.
func (c *Client) GetProduct(ctx context.Context, id int64, optFns ...RequestOption) (Product, error) {
	if c == nil {
		return Product{}, ErrNotConfigured
	}
	idParam, err := pathParam("id", id)
	if err != nil {
		return Product{}, err
	}
	req, err := c.newRequest(ctx, http.MethodGet, "/products/"+idParam, nil, nil, collect(optFns))
	if err != nil {
		return Product{}, err
	}
	return do[Product](c, req)
}

// CreateProduct requires an admin token.
func (c *Client) CreateProduct(ctx context.Context, payload ProductPayload, optFns ...RequestOption) (Product, error) {
	if c == nil {
		return Product{}, ErrNotConfigured
	}
	req, err := c.newJSONRequest(ctx, http.MethodPost, "/products", nil, payload, collect(optFns))
	if err != nil {
		return Product{}, err
	}
	return do[Product](c, req)
}

// UpdateProduct requires an admin token.
func (c *Client) UpdateProduct(ctx context.Context, id int64, payload ProductPayload, optFns ...RequestOption) (Product, error) {
	if c == nil {
		return Product{}, ErrNotConfigured
	}
	idParam, err := pathParam("id", id)
	if err != nil {
		return Product{}, err
	}
	req, err := c.newJSONRequest(ctx, http.MethodPut, "/products/"+idParam, nil, payload, collect(optFns))
	if err != nil {
		return Product{}, err
	}
	return do[Product](c, req)
}

// DeleteProduct requires an admin token.
func (c *Client) DeleteProduct(ctx context.Context, id int64, optFns ...RequestOption) error {
	if c == nil {
		return ErrNotConfigured
	}
	idParam, err := pathParam("id", id)
	if err != nil {
		return err
	}
	req, err := c.newRequest(ctx, http.MethodDelete, "/products/"+idParam, nil, nil, collect(optFns))
	if err != nil {
		return err
	}
	_, err = do[struct{}](c, req)
	return err
}

// ImageUpload is one file sent to the product image endpoint.
type ImageUpload struct {
	Filename    string
	ContentType string
	Content     io.Reader
	AltText     string
}

// UploadProductImage posts a multipart form with fields image and alt_text.
func (c *Client) UploadProductImage(ctx context.Context, productID int64, upload ImageUpload, optFns ...RequestOption) (ProductImage, error) {
	if c == nil {
		return ProductImage{}, ErrNotConfigured
	}
	if upload.Content == nil {
		return ProductImage{}, fmt.Errorf("image content is required")
	}
	idParam, err := pathParam("id", productID)
	if err != nil {
		return ProductImage{}, err
	}

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename=%q`, upload.Filename))
	contentType := strings.TrimSpace(upload.ContentType)
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	header.Set("Content-Type", contentType)
	part, err := form.CreatePart(header)
	if err != nil {
		return ProductImage{}, fmt.Errorf("create image part: %w", err)
	}
	if _, err := io.Copy(part, upload.Content); err != nil {
		return ProductImage{}, fmt.Errorf("copy image content: %w", err)
	}
	if alt := strings.TrimSpace(upload.AltText); alt != "" {
		if err := form.WriteField("alt_text", alt); err != nil {
			return ProductImage{}, fmt.Errorf("write alt_text field: %w", err)
		}
	}
	if err := form.Close(); err != nil {
		return ProductImage{}, fmt.Errorf("close multipart body: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/products/"+idParam+"/images", nil, &body, collect(optFns))
	if err != nil {
		return ProductImage{}, err
	}
	req.Header.Set("Content-Type", form.FormDataContentType())
	return do[ProductImage](c, req)
}

// DeleteProductImage requires an admin token.
func (c *Client) DeleteProductImage(ctx context.Context, productID, imageID int64, optFns ...RequestOption) error {
	if c == nil {
		return ErrNotConfigured
	}
	productParam, err := pathParam("id", productID)
	if err != nil {
		return err
	}
	imageParam, err := pathParam("imageId", imageID)
	if err != nil {
		return err
	}
	req, err := c.newRequest(ctx, http.MethodDelete, "/products/"+productParam+"/images/"+imageParam, nil, nil, collect(optFns))
	if err != nil {
		return err
	}
	_, err = do[struct{}](c, req)
	return err
}
