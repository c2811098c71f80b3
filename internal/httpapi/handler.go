package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/tfiz/storefront-go/internal/assistant"
	"github.com/tfiz/storefront-go/internal/catalog"
	"github.com/tfiz/storefront-go/internal/checkout"
	"github.com/tfiz/storefront-go/internal/discount"
	"github.com/tfiz/storefront-go/internal/session"
	"github.com/tfiz/storefront-go/internal/unlock"
)

// SessionHeader carries the visitor's session id. An empty or unknown value
// gets a fresh session; the response always echoes the resolved id back.
const SessionHeader = "X-Session-Id"

type Handler struct {
	sessions  *session.Manager
	catalog   *catalog.Store
	history   *unlock.Registry
	assistant assistant.Assistant
	adminKey  string
	validate  *validator.Validate
	logger    *zap.Logger
}

func NewHandler(sessions *session.Manager, cat *catalog.Store, history *unlock.Registry, chat assistant.Assistant, adminKey string, logger *zap.Logger) *Handler {
	if chat == nil {
		chat = assistant.Disabled{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	v := validator.New()
	// Report failures under json names, not Go field names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Handler{
		sessions:  sessions,
		catalog:   cat,
		history:   history,
		assistant: chat,
		adminKey:  adminKey,
		validate:  v,
		logger:    logger,
	}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": "storefront"})
}

// --- catalog ---

func (h *Handler) ListCatalog(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	if category == "" {
		category = string(catalog.CategoryAll)
	}

	items := h.catalog.ListByCategory(catalog.Category(category))
	catalog.SortItems(items, catalog.Sort(r.URL.Query().Get("sort")))
	writeJSON(w, http.StatusOK, items)
}

func (h *Handler) GetCatalogItem(w http.ResponseWriter, r *http.Request) {
	item, ok := h.catalog.Get(chi.URLParam(r, "itemId"))
	if !ok {
		writeError(w, http.StatusNotFound, "item not found")
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// --- admin ---

func (h *Handler) PublishItem(w http.ResponseWriter, r *http.Request) {
	var draft catalog.Item
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if strings.TrimSpace(draft.Name) == "" || draft.Price <= 0 {
		writeError(w, http.StatusBadRequest, "name and a positive price are required")
		return
	}

	item, err := h.catalog.Publish(r.Context(), draft)
	if err != nil {
		h.logger.Error("publish catalog item", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to publish item")
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (h *Handler) ToggleAvailability(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.ToggleAvailability(r.Context(), chi.URLParam(r, "itemId")); err != nil {
		h.logger.Error("toggle availability", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to update availability")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// --- cart ---

type cartLineView struct {
	ItemID        string `json:"itemId"`
	Name          string `json:"name"`
	UnitPrice     int64  `json:"unitPrice"`
	Quantity      int    `json:"quantity"`
	SelectedSize  string `json:"selectedSize,omitempty"`
	SelectedColor string `json:"selectedColor,omitempty"`
	LineTotal     int64  `json:"lineTotal"`
}

type cartView struct {
	SessionID string         `json:"sessionId"`
	Stage     checkout.Stage `json:"stage"`
	Lines     []cartLineView `json:"lines"`
	Discount  discount.State `json:"discount"`
	discount.Quote
}

// cartViewLocked builds the response body; the caller holds the session lock.
func (h *Handler) cartViewLocked(s *session.Session) cartView {
	lines := s.Cart.Lines()
	views := make([]cartLineView, 0, len(lines))
	for _, ln := range lines {
		view := cartLineView{
			ItemID:        ln.ItemID,
			Quantity:      ln.Quantity,
			SelectedSize:  ln.SelectedSize,
			SelectedColor: ln.SelectedColor,
		}
		if item, ok := h.catalog.Get(ln.ItemID); ok {
			view.Name = item.Name
			view.UnitPrice = item.Price
			view.LineTotal = item.Price * int64(ln.Quantity)
		}
		views = append(views, view)
	}

	return cartView{
		SessionID: s.ID,
		Stage:     s.Flow.Stage(),
		Lines:     views,
		Discount:  s.Roller.State(),
		Quote:     s.Roller.Apply(s.Cart.Subtotal()),
	}
}

func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	s := h.session(w, r)
	s.Lock()
	defer s.Unlock()
	writeJSON(w, http.StatusOK, h.cartViewLocked(s))
}

func (h *Handler) AddCartItem(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ItemID string `json:"itemId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.ItemID == "" {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	item, ok := h.catalog.Get(body.ItemID)
	if !ok {
		writeError(w, http.StatusNotFound, "item not found")
		return
	}

	s := h.session(w, r)
	s.Lock()
	defer s.Unlock()

	// Unavailable items are silently skipped inside Add.
	s.Cart.Add(item)
	writeJSON(w, http.StatusOK, h.cartViewLocked(s))
}

func (h *Handler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid line index")
		return
	}

	s := h.session(w, r)
	s.Lock()
	defer s.Unlock()

	s.Cart.Remove(index)
	writeJSON(w, http.StatusOK, h.cartViewLocked(s))
}

func (h *Handler) SetCartQuantity(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid line index")
		return
	}

	var body struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	s := h.session(w, r)
	s.Lock()
	defer s.Unlock()

	s.Cart.SetQuantity(index, body.Quantity)
	writeJSON(w, http.StatusOK, h.cartViewLocked(s))
}

// --- discount ---

func (h *Handler) RollDiscount(w http.ResponseWriter, r *http.Request) {
	s := h.session(w, r)
	s.Lock()
	defer s.Unlock()

	roll, _ := s.Roller.Roll()
	resp := struct {
		Roll int `json:"roll"`
		cartView
	}{roll, h.cartViewLocked(s)}
	writeJSON(w, http.StatusOK, resp)
}

// --- checkout ---

func (h *Handler) BeginCheckout(w http.ResponseWriter, r *http.Request) {
	s := h.session(w, r)
	s.Lock()
	defer s.Unlock()

	if err := s.Flow.Begin(); err != nil {
		if errors.Is(err, checkout.ErrEmptyCart) {
			writeError(w, http.StatusConflict, "cart is empty")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to begin checkout")
		return
	}
	writeJSON(w, http.StatusOK, h.cartViewLocked(s))
}

func (h *Handler) CancelCheckout(w http.ResponseWriter, r *http.Request) {
	s := h.session(w, r)
	s.Lock()
	defer s.Unlock()

	s.Flow.Cancel()
	writeJSON(w, http.StatusOK, h.cartViewLocked(s))
}

func (h *Handler) CommitCheckout(w http.ResponseWriter, r *http.Request) {
	var billing checkout.BillingDetails
	if err := json.NewDecoder(r.Body).Decode(&billing); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	if err := h.validate.Struct(billing); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fe.Field())
			}
			writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
				"error":         "invalid billing details",
				"missingFields": fields,
			})
			return
		}
		writeError(w, http.StatusBadRequest, "invalid billing details")
		return
	}

	s := h.session(w, r)
	s.Lock()
	defer s.Unlock()

	order, err := s.Flow.Commit(r.Context(), billing)
	if err != nil {
		var missing *checkout.MissingFieldsError
		switch {
		case errors.Is(err, checkout.ErrNotConfirming):
			writeError(w, http.StatusConflict, "checkout not in confirming stage")
		case errors.As(err, &missing):
			writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
				"error":         "invalid billing details",
				"missingFields": missing.Fields,
			})
		default:
			h.logger.Error("commit checkout", zap.String("sessionId", s.ID), zap.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to place order")
		}
		return
	}

	writeJSON(w, http.StatusOK, order)
}

// --- lens ---

type scanResponse struct {
	Unlocked bool          `json:"unlocked"`
	Item     *catalog.Item `json:"item,omitempty"`
}

func (h *Handler) LensScan(w http.ResponseWriter, r *http.Request) {
	item, ok := h.history.FindUnlockable(h.catalog.List())
	resp := scanResponse{Unlocked: ok}
	if ok {
		resp.Item = &item
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- assistant ---

func (h *Handler) AssistantChat(w http.ResponseWriter, r *http.Request) {
	var body struct {
		History []assistant.Message `json:"history"`
		Message string              `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || strings.TrimSpace(body.Message) == "" {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	reply, err := h.assistant.Chat(r.Context(), body.History, body.Message)
	if err != nil {
		// The chat degrades instead of failing: the client always gets a reply.
		h.logger.Warn("assistant chat", zap.Error(err))
		reply = assistant.Reply{Text: assistant.FallbackError, SuggestedIDs: []string{}}
	}
	if reply.SuggestedIDs == nil {
		reply.SuggestedIDs = []string{}
	}
	writeJSON(w, http.StatusOK, reply)
}

// --- helpers ---

func (h *Handler) session(w http.ResponseWriter, r *http.Request) *session.Session {
	s := h.sessions.GetOrCreate(r.Header.Get(SessionHeader))
	w.Header().Set(SessionHeader, s.ID)
	return s
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{
		"error": msg,
	})
}
