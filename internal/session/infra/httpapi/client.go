package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	cartdomain "github.com/greencart/storefront/internal/cart/domain"
	catalogdomain "github.com/greencart/storefront/internal/catalog/domain"
	sessionapp "github.com/greencart/storefront/internal/session/app"
	sessiondomain "github.com/greencart/storefront/internal/session/domain"
)

// Client talks to the storefront backend's JSON API. It implements the
// catalog fetcher and the session controller's user, seller, and logout
// ports. A 401 from the user endpoint is a normal "guest" outcome, not an
// error; only transport and server failures are returned as errors.
type Client struct {
	base     string
	clientID string
	http     *http.Client
}

func New(baseURL, clientID string) *Client {
	return &Client{
		base:     strings.TrimRight(baseURL, "/"),
		clientID: clientID,
		http:     &http.Client{Timeout: 15 * time.Second},
	}
}

type userResponse struct {
	Success bool `json:"success"`
	User    struct {
		ID   string           `json:"_id"`
		Name string           `json:"name"`
		Cart map[string]int64 `json:"cart"`
	} `json:"user"`
}

func (c *Client) CurrentUser(ctx context.Context) (sessionapp.AuthStatus, error) {
	resp, err := c.get(ctx, "/api/user/is-auth")
	if err != nil {
		return sessionapp.AuthStatus{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return sessionapp.AuthStatus{}, nil
	}
	if resp.StatusCode != http.StatusOK {
		return sessionapp.AuthStatus{}, fmt.Errorf("user auth check: unexpected status %d", resp.StatusCode)
	}

	var body userResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return sessionapp.AuthStatus{}, fmt.Errorf("user auth check: decode: %w", err)
	}
	if !body.Success {
		return sessionapp.AuthStatus{}, nil
	}

	return sessionapp.AuthStatus{
		Authenticated: true,
		User: sessiondomain.User{
			ID:   body.User.ID,
			Name: body.User.Name,
			Cart: cartdomain.Ledger(body.User.Cart),
		},
	}, nil
}

func (c *Client) SellerAuthorized(ctx context.Context) (bool, error) {
	resp, err := c.get(ctx, "/api/seller/is-auth")
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return false, nil
	}
	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("seller auth check: unexpected status %d", resp.StatusCode)
	}

	var body struct {
		Success bool `json:"success"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return false, fmt.Errorf("seller auth check: decode: %w", err)
	}
	return body.Success, nil
}

type productResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	Products []struct {
		ID          string          `json:"_id"`
		Name        string          `json:"name"`
		Category    string          `json:"category"`
		Description string          `json:"description"`
		Price       decimal.Decimal `json:"price"`
		OfferPrice  decimal.Decimal `json:"offerPrice"`
		InStock     bool            `json:"inStock"`
	} `json:"products"`
}

func (c *Client) ListProducts(ctx context.Context) ([]catalogdomain.Product, error) {
	resp, err := c.get(ctx, "/api/product/list")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("product list: unexpected status %d", resp.StatusCode)
	}

	var body productResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("product list: decode: %w", err)
	}
	if !body.Success {
		return nil, fmt.Errorf("product list rejected: %s", body.Message)
	}

	products := make([]catalogdomain.Product, 0, len(body.Products))
	for _, p := range body.Products {
		products = append(products, catalogdomain.Product{
			ID:          p.ID,
			Name:        p.Name,
			Category:    p.Category,
			Description: p.Description,
			Price:       p.Price,
			OfferPrice:  p.OfferPrice,
			InStock:     p.InStock,
		})
	}
	return products, nil
}

func (c *Client) Logout(ctx context.Context) error {
	resp, err := c.get(ctx, "/api/user/logout")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("logout: unexpected status %d", resp.StatusCode)
	}

	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("logout: decode: %w", err)
	}
	if !body.Success {
		return fmt.Errorf("logout rejected: %s", body.Message)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path, nil)
	if err != nil {
		return nil, fmt.Errorf("build request %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Client-ID", c.clientID)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", path, err)
	}
	return resp, nil
}
