package storefrontserver

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	catalogapp "github.com/Apurer/go-gin-storefront/internal/domains/catalog/application"
	catalogdomain "github.com/Apurer/go-gin-storefront/internal/domains/catalog/domain"
	catalogports "github.com/Apurer/go-gin-storefront/internal/domains/catalog/ports"
	apierrors "github.com/Apurer/go-gin-storefront/internal/shared/errors"
)

// ProductDetail is a product with its stock status and a few related products.
type ProductDetail struct {
	catalogdomain.Product
	StockStatus catalogdomain.StockStatus `json:"stock_status"`
	Related     []catalogdomain.Product   `json:"related"`
}

type CatalogAPI struct {
	catalog   catalogports.Service
	responder *apierrors.Responder
}

func NewCatalogAPI(catalog catalogports.Service, responder *apierrors.Responder) CatalogAPI {
	return CatalogAPI{catalog: catalog, responder: responder}
}

// Get /api/categories
func (api *CatalogAPI) ListCategories(c *gin.Context) {
	categories, err := api.catalog.ListCategories(c.Request.Context(), credentials(c, workspace(c)))
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

// Get /api/products
func (api *CatalogAPI) ListProducts(c *gin.Context) {
	query, err := parseProductQuery(c)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	products, err := api.catalog.ListProducts(c.Request.Context(), credentials(c, workspace(c)), query)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// Get /api/products/:id
// Related products are best effort; a failure there still returns the product.
func (api *CatalogAPI) GetProduct(c *gin.Context) {
	id, ok := parseIDParam(c, api.responder, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()
	creds := credentials(c, workspace(c))
	product, err := api.catalog.GetProduct(ctx, creds, id)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	related, err := api.catalog.RelatedProducts(ctx, creds, product, catalogapp.DefaultRelatedLimit)
	if err != nil {
		related = nil
	}
	if related == nil {
		related = []catalogdomain.Product{}
	}
	c.JSON(http.StatusOK, ProductDetail{Product: product, StockStatus: product.StockStatus(), Related: related})
}

func parseProductQuery(c *gin.Context) (catalogdomain.ProductQuery, error) {
	invalid := func(err error) (catalogdomain.ProductQuery, error) {
		return catalogdomain.ProductQuery{}, apierrors.NewValidationProblem(err.Error(), nil)
	}
	sort, err := catalogdomain.ParseSortOrder(c.Query("sort"))
	if err != nil {
		return invalid(err)
	}
	query := catalogdomain.ProductQuery{
		Search:   strings.TrimSpace(c.Query("search")),
		Sort:     sort,
		Featured: isTruthyParam(c.Query("featured")),
	}
	if raw := c.Query("category"); raw != "" {
		if query.CategoryID, err = strconv.ParseInt(raw, 10, 64); err != nil {
			return invalid(err)
		}
	}
	if raw := c.Query("minPrice"); raw != "" {
		if query.MinPrice, err = strconv.ParseFloat(raw, 64); err != nil {
			return invalid(catalogdomain.ErrInvalidPriceRange)
		}
	}
	if raw := c.Query("maxPrice"); raw != "" {
		if query.MaxPrice, err = strconv.ParseFloat(raw, 64); err != nil {
			return invalid(catalogdomain.ErrInvalidPriceRange)
		}
	}
	return query, nil
}

func isTruthyParam(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "yes":
		return true
	}
	return false
}

func parseIDParam(c *gin.Context, responder *apierrors.Responder, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		responder.BadRequest(c, name+" must be a positive integer")
		return 0, false
	}
	return id, true
}
