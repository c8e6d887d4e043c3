package pitches

import (
	"errors"
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ishubcg/bcg-pitchpilot-pdf/internal/pitchdeck"
	"github.com/ishubcg/bcg-pitchpilot-pdf/internal/recommend"
	"github.com/ishubcg/bcg-pitchpilot-pdf/internal/shared/server/middleware"
	"github.com/ishubcg/bcg-pitchpilot-pdf/internal/shared/server/respond"
	"github.com/ishubcg/bcg-pitchpilot-pdf/internal/shared/util"
)

// PitchFileName is the attachment name of every generated pitch.
const PitchFileName = "final_recommended_pitch.pdf"

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches pitch routes to the router group. generate runs the
// extra handlers first, typically a rate limiter.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, generate ...gin.HandlerFunc) {
	rg.GET("/catalog", h.catalog)
	rg.POST("/recommend", h.recommend)
	rg.POST("/generate", append(generate, h.generate)...)
	rg.GET("/product-pitch/:id", h.productPitch)
}

func (h *Handler) catalog(c *gin.Context) {
	respond.OK(c, toCatalogResponse(h.Svc.Catalog()))
}

func (h *Handler) recommend(c *gin.Context) {
	var req recommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", err.Error())
		return
	}
	c.Set(middleware.IndustryKey, req.Industry)

	res, err := h.Svc.Recommend(req.toRequest())
	if err != nil {
		h.recommendError(c, err)
		return
	}
	c.Set(middleware.RecommendedIDsKey, res.ProductIDs())
	respond.OK(c, toRecommendResponse(res))
}

func (h *Handler) generate(c *gin.Context) {
	var req recommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", err.Error())
		return
	}
	c.Set(middleware.IndustryKey, req.Industry)

	who := req.requester()
	who.RequestID = middleware.RequestIDFromContext(c)
	pitch, err := h.Svc.Generate(c.Request.Context(), req.toRequest(), who)
	if err != nil {
		switch {
		case errors.Is(err, ErrNoRecommendations):
			respond.Error(c, http.StatusUnprocessableEntity, "no_recommendations", "No suitable products for given inputs", nil)
		case errors.Is(err, pitchdeck.ErrNoProductDecks):
			respond.Error(c, http.StatusInternalServerError, "missing_product_decks", "No deck available for the recommended products", nil)
		case errors.Is(err, pitchdeck.ErrConfiguration):
			respond.Error(c, http.StatusInternalServerError, "skeleton_invalid", "Pitch skeleton is missing or invalid", nil)
		default:
			h.recommendError(c, err)
		}
		return
	}
	defer pitch.Close()

	c.Set(middleware.RecommendedIDsKey, pitch.Assembly.Included)
	c.Set(middleware.PitchPagesKey, pitch.Assembly.Pages)
	respond.PDFFile(c, pitch.Path, PitchFileName)
}

func (h *Handler) recommendError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, recommend.ErrInvalidRequest):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case errors.Is(err, recommend.ErrNoSegment):
		respond.Error(c, http.StatusBadRequest, "no_matching_segment", "No catalog entries for the given industry and budget", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to build recommendations", nil)
	}
}

func (h *Handler) productPitch(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	p, data, err := h.Svc.ProductDeck(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, recommend.ErrUnknownProduct):
			respond.Error(c, http.StatusNotFound, "not_found", "product not found", nil)
		case errors.Is(err, ErrDeckNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "product deck not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch product deck", nil)
		}
		return
	}

	name, err := util.SanitizeFileName(path.Base(p.PDF))
	if err != nil {
		name = p.ID + ".pdf"
	}
	respond.PDF(c, name, data)
}
