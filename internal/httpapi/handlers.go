package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/TemirB/figurine-cart/internal/cart"
	"github.com/TemirB/figurine-cart/internal/domain"
	"github.com/TemirB/figurine-cart/internal/observability"
	"github.com/TemirB/figurine-cart/internal/pricing"
	"github.com/TemirB/figurine-cart/internal/shopapi"
)

const (
	maxJSONBody     = 1 << 20
	maxUploadMemory = 32 << 20
	maxPhotos       = 10
	photosField     = "files"
)

type cartView struct {
	Order      *domain.Order  `json:"order"`
	Modifiable bool           `json:"modifiable"`
	Discounts  []lineDiscount `json:"discounts,omitempty"`
	Loading    bool           `json:"loading"`
	HasSession bool           `json:"hasSession"`
}

// lineDiscount is the multi-pet promotion on one line, per unit and for the
// whole line, in minor units. Amounts are zero or negative.
type lineDiscount struct {
	LineID  string `json:"lineId"`
	Percent int    `json:"percent"`
	Unit    int64  `json:"unit"`
	Total   int64  `json:"total"`
}

type productView struct {
	*domain.CatalogProduct
	// PetPrices maps a variant id to the price of the first, second, third
	// and every further pet.
	PetPrices map[string][]int64 `json:"petPrices"`
}

type addLineRequest struct {
	VariantID           string   `json:"variantId" validate:"required"`
	Quantity            int      `json:"quantity" validate:"gte=1,lte=99"`
	SpecialInstructions string   `json:"specialInstructions" validate:"max=2000"`
	PetPhotos           []string `json:"petPhotos" validate:"max=10,dive,required"`
}

type addPetsRequest struct {
	Pets []pricing.Pet `json:"pets" validate:"required,min=1,max=10,dive"`
}

type adjustLineRequest struct {
	Quantity *int `json:"quantity" validate:"required,gte=0,lte=99"`
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
	Pet   *int   `json:"pet,omitempty"`
}

func (s *Server) view() cartView {
	order := s.cart.Order()
	v := cartView{
		Order:      order,
		Loading:    s.cart.Loading(),
		HasSession: s.cart.HasSession(),
	}
	if order != nil {
		v.Modifiable = order.State.Modifiable()
		v.Discounts = lineDiscounts(order.Lines)
	}
	return v
}

func lineDiscounts(lines []domain.Line) []lineDiscount {
	var out []lineDiscount
	for _, l := range lines {
		instr := l.Annotations.SpecialInstructions
		pct, ok := pricing.DiscountPercent(instr)
		if !ok {
			continue
		}
		unit := pricing.LineDiscount(l.Variant.Price, instr)
		out = append(out, lineDiscount{
			LineID:  l.ID,
			Percent: pct,
			Unit:    unit,
			Total:   unit * int64(l.Quantity),
		})
	}
	return out
}

// cartContext keeps the request's values but not its cancellation. A cart
// operation runs to the end once started, even if the caller goes away.
func cartContext(r *http.Request) context.Context {
	return context.WithoutCancel(r.Context())
}

func (s *Server) getCart(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.view())
}

func (s *Server) refreshCart(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if err := s.cart.Refresh(cartContext(r)); err != nil {
		s.writeCartError(w, err)
		return
	}
	observability.AppendServerTiming(w, "cart", time.Since(start), "refresh")
	writeJSON(w, http.StatusOK, s.view())
}

func (s *Server) addLine(w http.ResponseWriter, r *http.Request) {
	var req addLineRequest
	if !s.decode(w, r, &req) {
		return
	}

	var ann *domain.Annotations
	if req.SpecialInstructions != "" || len(req.PetPhotos) > 0 {
		ann = &domain.Annotations{
			SpecialInstructions: strings.TrimSpace(req.SpecialInstructions),
			PetPhotos:           req.PetPhotos,
		}
	}

	start := time.Now()
	if _, err := s.cart.AddLine(cartContext(r), req.VariantID, req.Quantity, ann); err != nil {
		s.writeCartError(w, err)
		return
	}
	observability.AppendServerTiming(w, "cart", time.Since(start), "add line")
	writeJSON(w, http.StatusOK, s.view())
}

func (s *Server) addPets(w http.ResponseWriter, r *http.Request) {
	var req addPetsRequest
	if !s.decode(w, r, &req) {
		return
	}

	start := time.Now()
	if _, err := s.cart.AddPets(cartContext(r), req.Pets); err != nil {
		s.writeCartError(w, err)
		return
	}
	observability.AppendServerTiming(w, "cart", time.Since(start), "add pets")
	writeJSON(w, http.StatusOK, s.view())
}

func (s *Server) adjustLine(w http.ResponseWriter, r *http.Request) {
	lineID := chi.URLParam(r, "lineID")
	var req adjustLineRequest
	if !s.decode(w, r, &req) {
		return
	}

	start := time.Now()
	if _, err := s.cart.AdjustQuantity(cartContext(r), lineID, *req.Quantity); err != nil {
		s.writeCartError(w, err)
		return
	}
	observability.AppendServerTiming(w, "cart", time.Since(start), "adjust line")
	writeJSON(w, http.StatusOK, s.view())
}

func (s *Server) removeLine(w http.ResponseWriter, r *http.Request) {
	lineID := chi.URLParam(r, "lineID")

	start := time.Now()
	if _, err := s.cart.RemoveLine(cartContext(r), lineID); err != nil {
		s.writeCartError(w, err)
		return
	}
	observability.AppendServerTiming(w, "cart", time.Since(start), "remove line")
	writeJSON(w, http.StatusOK, s.view())
}

func (s *Server) uploadPhotos(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		writeError(w, http.StatusBadRequest, errorResponse{Error: "multipart form expected"})
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	headers := r.MultipartForm.File[photosField]
	if len(headers) == 0 {
		writeError(w, http.StatusBadRequest, errorResponse{Error: "no photos"})
		return
	}
	if len(headers) > maxPhotos {
		writeError(w, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("at most %d photos", maxPhotos)})
		return
	}

	photos, closeAll, err := openPhotos(headers)
	defer closeAll()
	if err != nil {
		s.logger.Error("Error while reading uploaded photo", zap.Error(err))
		writeError(w, http.StatusBadRequest, errorResponse{Error: "unreadable photo"})
		return
	}

	assets, err := s.cart.UploadPetPhotos(cartContext(r), photos)
	if err != nil {
		if errors.Is(err, shopapi.ErrNoPhotos) {
			writeError(w, http.StatusBadRequest, errorResponse{Error: "no photos"})
			return
		}
		s.writeCartError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"assets": assets})
}

func openPhotos(headers []*multipart.FileHeader) ([]domain.Photo, func(), error) {
	var files []io.Closer
	closeAll := func() {
		for _, f := range files {
			_ = f.Close()
		}
	}

	photos := make([]domain.Photo, 0, len(headers))
	for _, h := range headers {
		f, err := h.Open()
		if err != nil {
			return nil, closeAll, fmt.Errorf("open %s: %w", h.Filename, err)
		}
		files = append(files, f)
		photos = append(photos, domain.Photo{
			Filename:    h.Filename,
			ContentType: h.Header.Get("Content-Type"),
			Body:        f,
		})
	}
	return photos, closeAll, nil
}

func (s *Server) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := s.catalog.List(r.Context())
	if err != nil {
		s.logger.Error("Error while listing products", zap.Error(err))
		writeError(w, http.StatusBadGateway, errorResponse{Error: "try again"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": products})
}

func (s *Server) getProduct(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	p, err := s.catalog.BySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			writeError(w, http.StatusNotFound, errorResponse{Error: "no product with this slug"})
			return
		}
		s.logger.Error("Error while fetching product", zap.String("slug", slug), zap.Error(err))
		writeError(w, http.StatusBadGateway, errorResponse{Error: "try again"})
		return
	}

	view := productView{CatalogProduct: p, PetPrices: make(map[string][]int64, len(p.Variants))}
	for _, v := range p.Variants {
		view.PetPrices[v.ID] = pricing.PetPrices(v.Price)
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) invalidateProducts(w http.ResponseWriter, _ *http.Request) {
	n := s.catalog.Invalidate()
	writeJSON(w, http.StatusOK, map[string]int{"purged": n})
}

// decode reads a JSON body into dst and validates it, writing the error
// response itself when it returns false.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	ct := r.Header.Get("Content-Type")
	if !strings.HasPrefix(strings.ToLower(ct), "application/json") {
		writeError(w, http.StatusUnsupportedMediaType, errorResponse{Error: "Content-Type must be application/json"})
		return false
	}

	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		s.logger.Debug("Error while decoding JSON", zap.Error(err))
		writeError(w, http.StatusBadRequest, errorResponse{Error: "bad json"})
		return false
	}

	if err := s.validate.Struct(dst); err != nil {
		writeError(w, http.StatusBadRequest, errorResponse{Error: validationMessage(err)})
		return false
	}
	return true
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "invalid request"
	}
	fe := verrs[0]
	return fmt.Sprintf("%s failed %s", fe.Namespace(), fe.Tag())
}

// writeCartError collapses every cart failure into "try again" for the
// shopper. Only request-shape problems get a 400.
func (s *Server) writeCartError(w http.ResponseWriter, err error) {
	var pe *cart.PetError
	hasPet := errors.As(err, &pe)

	var er *domain.ErrorResult
	if errors.As(err, &er) {
		if er.Code == domain.CodeInvalidQuantity {
			writeError(w, http.StatusBadRequest, errorResponse{Error: er.Message, Code: er.Code})
			return
		}
		resp := errorResponse{Error: "try again", Code: er.Code}
		if hasPet {
			idx := pe.Index
			resp.Pet = &idx
		}
		writeError(w, http.StatusBadGateway, resp)
		return
	}

	if hasPet {
		idx := pe.Index
		writeError(w, http.StatusBadRequest, errorResponse{Error: pe.Err.Error(), Pet: &idx})
		return
	}

	s.logger.Error("Unclassified cart error", zap.Error(err))
	writeError(w, http.StatusBadGateway, errorResponse{Error: "try again"})
}

func writeError(w http.ResponseWriter, status int, resp errorResponse) {
	writeJSON(w, status, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
