package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/TemirB/figurine-cart/internal/domain"
	"github.com/TemirB/figurine-cart/internal/observability"
	"github.com/TemirB/figurine-cart/internal/pricing"
)

//go:generate mockgen -source=httpapi.go -destination=httpapi_mock_test.go -package=httpapi

type Cart interface {
	Order() *domain.Order
	Loading() bool
	HasSession() bool
	Refresh(ctx context.Context) error
	AddLine(ctx context.Context, variantID string, quantity int, ann *domain.Annotations) (*domain.Order, error)
	AddPets(ctx context.Context, pets []pricing.Pet) (*domain.Order, error)
	AdjustQuantity(ctx context.Context, lineID string, quantity int) (*domain.Order, error)
	RemoveLine(ctx context.Context, lineID string) (*domain.Order, error)
	UploadPetPhotos(ctx context.Context, photos []domain.Photo) ([]domain.UploadedAsset, error)
}

type Catalog interface {
	List(ctx context.Context) ([]domain.CatalogProduct, error)
	BySlug(ctx context.Context, slug string) (*domain.CatalogProduct, error)
	Invalidate() int
}

const shutdownTimeout = 5 * time.Second

type Server struct {
	cart     Cart
	catalog  Catalog
	router   chi.Router
	validate *validator.Validate
	logger   *zap.Logger
	metrics  observability.Metrics
	scrape   http.Handler
}

// New builds the router. scrape serves /metrics and may be nil.
func New(cart Cart, catalog Catalog, scrape http.Handler, logger *zap.Logger, metrics observability.Metrics) *Server {
	if metrics == nil {
		metrics = observability.NewNoop()
	}
	s := &Server{
		cart:     cart,
		catalog:  catalog,
		router:   chi.NewRouter(),
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger,
		metrics:  metrics,
		scrape:   scrape,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.Use(
		middleware.RequestID,
		middleware.RealIP,
		AccessLog(s.logger, s.metrics),
		middleware.Recoverer,
	)

	s.router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	if s.scrape != nil {
		s.router.Method(http.MethodGet, "/metrics", s.scrape)
	}

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/cart", s.getCart)
		r.Post("/cart/refresh", s.refreshCart)
		r.Post("/cart/lines", s.addLine)
		r.Post("/cart/pets", s.addPets)
		r.Patch("/cart/lines/{lineID}", s.adjustLine)
		r.Delete("/cart/lines/{lineID}", s.removeLine)

		r.Post("/photos", s.uploadPhotos)

		r.Get("/products", s.listProducts)
		r.Post("/products/invalidate", s.invalidateProducts)
		r.Get("/products/{slug}", s.getProduct)
	})
}

func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(sctx); err != nil {
			s.logger.Warn("HTTP shutdown", zap.Error(err))
		}
	}()

	s.logger.Info("HTTP server listening", zap.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
