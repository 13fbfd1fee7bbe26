package v1

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/monolog-ai/monolog/application/service"
	"github.com/monolog-ai/monolog/domain/catalog"
	"github.com/monolog-ai/monolog/infrastructure/api/middleware"
	"github.com/monolog-ai/monolog/infrastructure/api/v1/dto"
)

// ProductsRouter serves the pivoted product view.
type ProductsRouter struct {
	catalog *service.CatalogService
	logger  *slog.Logger
}

// NewProductsRouter creates a ProductsRouter.
func NewProductsRouter(catalog *service.CatalogService, logger *slog.Logger) *ProductsRouter {
	return &ProductsRouter{catalog: catalog, logger: logger}
}

// Routes returns the chi router for product endpoints.
func (r *ProductsRouter) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", r.List)
	router.Get("/{id}", r.Get)
	router.Get("/{id}/attributes", r.Attributes)

	return router
}

// List handles GET /api/v1/products.
func (r *ProductsRouter) List(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	params := ParsePagination(req)

	products, err := r.catalog.List(ctx, params.Limit(), params.Offset())
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	total, err := r.catalog.Count(ctx)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	data := make([]dto.Product, len(products))
	for i, p := range products {
		data[i] = productToDTO(p)
	}

	middleware.WriteJSON(w, http.StatusOK, dto.ProductListResponse{
		Data: data,
		Meta: listMeta(params, total),
	})
}

// Get handles GET /api/v1/products/{id}.
func (r *ProductsRouter) Get(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()

	id, err := strconv.ParseInt(chi.URLParam(req, "id"), 10, 64)
	if err != nil {
		middleware.WriteError(w, req, middleware.NewAPIError(http.StatusBadRequest, "invalid product id", err), r.logger)
		return
	}

	product, err := r.catalog.Get(ctx, id)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, dto.ProductResponse{Data: productToDTO(product)})
}

// Attributes handles GET /api/v1/products/{id}/attributes, serving the
// product's raw metadata rows instead of the pivoted record.
func (r *ProductsRouter) Attributes(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()

	id, err := strconv.ParseInt(chi.URLParam(req, "id"), 10, 64)
	if err != nil {
		middleware.WriteError(w, req, middleware.NewAPIError(http.StatusBadRequest, "invalid product id", err), r.logger)
		return
	}

	attrs, err := r.catalog.Attributes(ctx, id)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	data := make([]dto.Attribute, len(attrs))
	for i, a := range attrs {
		data[i] = attributeToDTO(a)
	}
	middleware.WriteJSON(w, http.StatusOK, dto.AttributeListResponse{Data: data})
}

func attributeToDTO(a catalog.Attribute) dto.Attribute {
	out := dto.Attribute{Key: a.Field().String()}
	if v, ok := a.StringValue(); ok {
		out.StringValue = &v
	}
	if v, ok := a.IntValue(); ok {
		out.IntValue = &v
	}
	return out
}

func productToDTO(p catalog.Product) dto.Product {
	out := dto.Product{ID: p.ID(), OCRText: p.OCRText()}
	if v, ok := p.Price(); ok {
		out.Price = &v
	}
	out.Name, _ = p.Name()
	out.Maker, _ = p.Maker()
	out.Category, _ = p.Category()
	out.ImagePath, _ = p.ImagePath()
	out.ProductURL, _ = p.ProductURL()
	out.ImageHash, _ = p.ImageHash()
	out.CreatedAt, _ = p.CreatedAt()
	out.UpdatedAt, _ = p.UpdatedAt()
	return out
}

func listMeta(params PaginationParams, total int64) dto.ListMeta {
	totalPages := 0
	if params.PageSize() > 0 {
		totalPages = (int(total) + params.PageSize() - 1) / params.PageSize()
	}
	return dto.ListMeta{
		Page:       params.Page(),
		PageSize:   params.PageSize(),
		TotalCount: total,
		TotalPages: totalPages,
	}
}
