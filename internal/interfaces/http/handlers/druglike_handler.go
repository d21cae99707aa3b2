package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/molforge/internal/domain/molecule"
	"github.com/turtacn/molforge/internal/infrastructure/monitoring/logging"
)

// DrugLikenessHandler evaluates caller-supplied descriptors against the
// Lipinski, Ghose and Veber rules.
type DrugLikenessHandler struct {
	svc    ConversionService
	logger logging.Logger
}

// NewDrugLikenessHandler creates a new DrugLikenessHandler.
func NewDrugLikenessHandler(svc ConversionService, logger logging.Logger) *DrugLikenessHandler {
	return &DrugLikenessHandler{svc: svc, logger: logger}
}

// RegisterRoutes registers the drug-likeness routes under r.
func (h *DrugLikenessHandler) RegisterRoutes(r gin.IRoutes) {
	r.POST("/druglike/evaluate", h.Evaluate)
}

// Evaluate handles POST /api/v1/druglike/evaluate.
func (h *DrugLikenessHandler) Evaluate(c *gin.Context) {
	var d molecule.Descriptors
	if err := c.ShouldBindJSON(&d); err != nil {
		writeBindError(c, err)
		return
	}

	a, err := h.svc.Evaluate(d)
	if err != nil {
		writeAppError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

//Personal.AI order the ending
