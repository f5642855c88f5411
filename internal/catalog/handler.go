package catalog

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"scenthub/pkg/models"
)

type Handler struct {
	Store *Store
	Log   *logrus.Logger
}

func NewHandler(store *Store, log *logrus.Logger) *Handler {
	return &Handler{Store: store, Log: log}
}

func (h *Handler) RegisterPerfumeRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.listPerfumes)        // GET /perfumes
	rg.GET("/:slug", h.perfumeBySlug) // GET /perfumes/:slug
}

func (h *Handler) RegisterBrandRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.listBrands)        // GET /brands
	rg.GET("/:slug", h.brandBySlug) // GET /brands/:slug
}

// listPerfumes loads the full catalog snapshot, normalizes it, derives
// the facet value sets and applies the selection from the query string.
// Filtering happens over the in-memory snapshot, not in SQL.
func (h *Handler) listPerfumes(c *gin.Context) {
	raws, err := h.Store.PerfumeList(c.Request.Context())
	if err != nil {
		h.Log.WithError(err).Error("perfume list fetch failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}

	perfumes := make([]models.Perfume, 0, len(raws))
	for _, r := range raws {
		perfumes = append(perfumes, NormalizePerfume(r, ProjectionList))
	}

	sel := NewSelection()
	sel.SetSearchText(c.Query("q"))
	sel.ApplyBatch(
		queryValues(c, "brands"),
		queryValues(c, "notes"),
		queryValues(c, "families"),
	)

	filtered := Filter(perfumes, sel)

	c.JSON(http.StatusOK, gin.H{
		"total":  len(filtered),
		"items":  filtered,
		"facets": BuildFacets(perfumes),
		"applied": gin.H{
			"q":        strings.TrimSpace(sel.SearchText),
			"brands":   sel.Values(FacetBrand),
			"notes":    sel.Values(FacetNote),
			"families": sel.Values(FacetFamily),
		},
	})
}

func (h *Handler) perfumeBySlug(c *gin.Context) {
	raw, err := h.Store.PerfumeBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.Log.WithError(err).Error("perfume detail fetch failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "get failed"})
		return
	}
	if raw == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	p := NormalizePerfume(*raw, ProjectionDetail)
	c.JSON(http.StatusOK, gin.H{
		"perfume":      p,
		"note_pyramid": p.NotePyramid(),
	})
}

func (h *Handler) listBrands(c *gin.Context) {
	raws, err := h.Store.BrandList(c.Request.Context())
	if err != nil {
		h.Log.WithError(err).Error("brand list fetch failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}

	brands := make([]models.Brand, 0, len(raws))
	for _, r := range raws {
		brands = append(brands, NormalizeBrand(r))
	}

	c.JSON(http.StatusOK, gin.H{
		"total": len(brands),
		"items": brands,
	})
}

func (h *Handler) brandBySlug(c *gin.Context) {
	raw, err := h.Store.BrandBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.Log.WithError(err).Error("brand detail fetch failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "get failed"})
		return
	}
	if raw == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	brand := NormalizeBrand(*raw)

	rawPerfumes, err := h.Store.PerfumesByBrand(c.Request.Context(), brand.ID)
	if err != nil {
		h.Log.WithError(err).Error("perfumes by brand fetch failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "get failed"})
		return
	}

	perfumes := make([]models.Perfume, 0, len(rawPerfumes))
	for _, r := range rawPerfumes {
		perfumes = append(perfumes, NormalizePerfume(r, ProjectionList))
	}

	c.JSON(http.StatusOK, gin.H{
		"brand":    brand,
		"perfumes": perfumes,
	})
}

// queryValues reads a multi-valued facet parameter:
// brands=Chanel,Dior or brands=Chanel&brands=Dior.
func queryValues(c *gin.Context, key string) []string {
	vals := c.QueryArray(key)
	if len(vals) == 0 {
		if s := c.Query(key); s != "" {
			vals = strings.Split(s, ",")
		}
	}

	out := make([]string, 0, len(vals))
	for _, v := range vals {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		out = append(out, v)
	}
	return out
}
