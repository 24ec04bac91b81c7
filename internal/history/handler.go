package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"ats-backend/internal/shared/server/middleware"
	"ats-backend/internal/shared/server/respond"
	"ats-backend/internal/shared/telemetry"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches history routes to the router group. Every route requires an owner.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/history", middleware.RequireIdentity())
	g.GET("", h.list)
	g.DELETE("", h.clear)
	g.GET("/export", h.export)
	g.GET("/:id", h.get)
	g.POST("/:id/favorite", h.toggleFavorite)
	g.DELETE("/:id", h.delete)
}

func (h *Handler) list(c *gin.Context) {
	items, err := h.Svc.List(c.Request.Context(), middleware.OwnerIDFromContext(c))
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, gin.H{"items": items, "count": len(items)})
}

func (h *Handler) get(c *gin.Context) {
	entry, err := h.Svc.Get(c.Request.Context(), middleware.OwnerIDFromContext(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.Set("historyId", entry.ID)
	respond.OK(c, entry)
}

func (h *Handler) toggleFavorite(c *gin.Context) {
	entry, err := h.Svc.ToggleFavorite(c.Request.Context(), middleware.OwnerIDFromContext(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.Set("historyId", entry.ID)
	respond.OK(c, entry)
}

func (h *Handler) delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.Svc.Delete(c.Request.Context(), middleware.OwnerIDFromContext(c), id); err != nil {
		writeError(c, err)
		return
	}
	c.Set("historyId", id)
	c.Status(http.StatusNoContent)
}

func (h *Handler) clear(c *gin.Context) {
	n, err := h.Svc.Clear(c.Request.Context(), middleware.OwnerIDFromContext(c))
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, gin.H{"removed": n})
}

func (h *Handler) export(c *gin.Context) {
	doc, name, err := h.Svc.Export(c.Request.Context(), middleware.OwnerIDFromContext(c))
	if err != nil {
		writeError(c, err)
		return
	}
	body, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		writeError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "History entry not found", nil)
	case errors.Is(err, ErrMissingOwner):
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "Missing identity", nil)
	case errors.Is(err, ErrInvalidAnalysis):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	default:
		telemetry.Error("history.failed", map[string]any{
			"request_id": middleware.RequestIDFromContext(c),
			"owner_id":   middleware.OwnerIDFromContext(c),
			"error":      err,
		})
		respond.Error(c, http.StatusInternalServerError, "internal", "History unavailable", nil)
	}
}
