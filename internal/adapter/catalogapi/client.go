package catalogapi

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

var _ port.CatalogSource = (*Client)(nil)

// Client fetches the product collection from a dummyjson-style
// endpoint: GET {base}/products?limit={n}.
type Client struct {
	http    *http.Client
	baseURL string
	limit   int
}

func New(baseURL string, limit int, timeout time.Duration) *Client {
	return &Client{
		http:    &http.Client{Timeout: timeout},
		baseURL: baseURL,
		limit:   limit,
	}
}

func (c *Client) FetchProducts(ctx context.Context) ([]domain.Product, error) {
	const op = "catalogapi.Client.FetchProducts"
	log := slog.With("op", op)

	reqURL, err := c.productsURL()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			log.Error("failed to close response body", "err", err)
		}
	}()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf(
			"%s: unexpected status %d", op, res.StatusCode,
		)
	}

	var body productsResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%s: invalid JSON data: %w", op, err)
	}

	log.Debug("fetched products", "nProducts", len(body.Products))
	return toDomain(body.Products), nil
}

func (c *Client) productsURL() (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", err
	}
	u = u.JoinPath("products")
	q := u.Query()
	q.Set("limit", strconv.Itoa(c.limit))
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func toDomain(ps []Product) (domainPs []domain.Product) {
	for _, p := range ps {
		domainPs = append(domainPs, domain.Product{
			ID:          p.ID,
			Title:       p.Title,
			Description: p.Description,
			Price:       p.Price,
			Rating:      p.Rating,
			Category:    p.Category,
			Thumbnail:   p.Thumbnail,
			Images:      p.Images,
		})
	}
	return domainPs
}
