// Service catalog HTTP handlers.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pestward/go-booking-backend/internal/domain"
)

// ListServicesResponse wraps the active catalog.
type ListServicesResponse struct {
	Services []domain.Service `json:"services"`
}

// ListServices returns the active, bookable service catalog.
func (h *Handlers) ListServices(c *gin.Context) {
	items, err := h.catalogSvc.List(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, "could not load services")
		return
	}
	ok(c, http.StatusOK, ListServicesResponse{Services: items})
}
