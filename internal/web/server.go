package web

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/shopspring/decimal"

	cartapp "github.com/greencart/storefront/internal/cart/app"
	catalogapp "github.com/greencart/storefront/internal/catalog/app"
	catalogdomain "github.com/greencart/storefront/internal/catalog/domain"
	"github.com/greencart/storefront/internal/pricing"
	sessionapp "github.com/greencart/storefront/internal/session/app"
)

// Server is the local HTTP facade a UI talks to. It only calls the public
// operations of the cart service, catalog snapshot, and session controller.
type Server struct {
	cart    *cartapp.Service
	catalog *catalogapp.Service
	ctrl    *sessionapp.Controller
	log     *slog.Logger
}

func NewServer(cart *cartapp.Service, catalog *catalogapp.Service, ctrl *sessionapp.Controller, log *slog.Logger) *Server {
	return &Server{cart: cart, catalog: catalog, ctrl: ctrl, log: log}
}

func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	mux.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })

	mux.HandleFunc("GET /cart", s.handleGetCart)
	mux.HandleFunc("DELETE /cart", s.handleClearCart)
	mux.HandleFunc("GET /cart/quote", s.handleQuote)
	mux.HandleFunc("POST /cart/items/{id}", s.handleAddItem)
	mux.HandleFunc("PUT /cart/items/{id}", s.handleSetQuantity)
	mux.HandleFunc("DELETE /cart/items/{id}", s.handleRemoveItem)

	mux.HandleFunc("GET /products", s.handleProducts)

	mux.HandleFunc("GET /session", s.handleSession)
	mux.HandleFunc("POST /session/logout", s.handleLogout)

	return mux
}

type cartView struct {
	Items map[string]int64 `json:"items"`
	Count int64            `json:"count"`
	Total decimal.Decimal  `json:"total"`
}

func (s *Server) handleGetCart(w http.ResponseWriter, r *http.Request) {
	items := s.cart.Snapshot()
	writeJSON(w, http.StatusOK, cartView{
		Items: items,
		Count: pricing.TotalCount(items),
		Total: pricing.TotalAmount(items, s.catalog),
	})
}

func (s *Server) handleClearCart(w http.ResponseWriter, r *http.Request) {
	s.cart.Clear(r.Context())
	s.handleGetCart(w, r)
}

func (s *Server) handleAddItem(w http.ResponseWriter, r *http.Request) {
	s.cart.Add(r.Context(), r.PathValue("id"))
	s.handleGetCart(w, r)
}

func (s *Server) handleSetQuantity(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Quantity *float64 `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Quantity == nil {
		writeError(w, http.StatusBadRequest, "INVALID_QUANTITY", "quantity must be a number")
		return
	}

	qty, err := cartapp.QuantityFromFloat(*body.Quantity)
	if errors.Is(err, cartapp.ErrInvalidQuantity) {
		s.log.Debug("rejected cart quantity", slog.Float64("quantity", *body.Quantity))
		writeError(w, http.StatusBadRequest, "INVALID_QUANTITY", "quantity must be an integer")
		return
	}

	s.cart.SetQuantity(r.Context(), r.PathValue("id"), qty)
	s.handleGetCart(w, r)
}

func (s *Server) handleRemoveItem(w http.ResponseWriter, r *http.Request) {
	s.cart.Remove(r.Context(), r.PathValue("id"))
	s.handleGetCart(w, r)
}

type quoteLineView struct {
	ProductID  string          `json:"productId"`
	Name       string          `json:"name"`
	Quantity   int64           `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unitPrice"`
	LineTotal  decimal.Decimal `json:"lineTotal"`
	OutOfStock bool            `json:"outOfStock"`
}

func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	quote := pricing.BuildQuote(s.cart.Snapshot(), s.catalog)

	lines := make([]quoteLineView, 0, len(quote.Lines))
	for _, l := range quote.Lines {
		lines = append(lines, quoteLineView{
			ProductID:  l.ProductID,
			Name:       l.Name,
			Quantity:   l.Quantity,
			UnitPrice:  l.UnitPrice,
			LineTotal:  l.LineTotal,
			OutOfStock: l.OutOfStock,
		})
	}

	writeJSON(w, http.StatusOK, struct {
		Lines []quoteLineView `json:"lines"`
		Total decimal.Decimal `json:"total"`
	}{Lines: lines, Total: quote.Total})
}

type productView struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Category   string          `json:"category"`
	Price      decimal.Decimal `json:"price"`
	OfferPrice decimal.Decimal `json:"offerPrice"`
	InStock    bool            `json:"inStock"`
}

func (s *Server) handleProducts(w http.ResponseWriter, r *http.Request) {
	products := s.catalog.Products()
	views := make([]productView, 0, len(products))
	for _, p := range products {
		views = append(views, toProductView(p))
	}
	writeJSON(w, http.StatusOK, struct {
		Products []productView `json:"products"`
	}{Products: views})
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	view := struct {
		State            string `json:"state"`
		UserName         string `json:"userName,omitempty"`
		SellerAuthorized bool   `json:"sellerAuthorized"`
	}{
		State:            s.ctrl.State().String(),
		SellerAuthorized: s.ctrl.SellerAuthorized(),
	}
	if user, ok := s.ctrl.User(); ok {
		view.UserName = user.Name
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.ctrl.Logout(r.Context())
	s.handleSession(w, r)
}

func toProductView(p catalogdomain.Product) productView {
	return productView{
		ID:         p.ID,
		Name:       p.Name,
		Category:   p.Category,
		Price:      p.Price,
		OfferPrice: p.OfferPrice,
		InStock:    p.InStock,
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, struct {
		Error errorBody `json:"error"`
	}{Error: errorBody{Code: code, Message: msg}})
}
