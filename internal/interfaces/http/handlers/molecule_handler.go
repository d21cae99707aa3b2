package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/molforge/internal/domain/molecule"
	"github.com/turtacn/molforge/internal/infrastructure/monitoring/logging"
)

// ConvertRequest is the body of the conversion endpoints.
type ConvertRequest struct {
	SMILES string `json:"smiles" form:"smiles"`
}

// MoleculeHandler serves the JSON conversion API.
type MoleculeHandler struct {
	svc    ConversionService
	logger logging.Logger
}

// NewMoleculeHandler creates a new MoleculeHandler.
func NewMoleculeHandler(svc ConversionService, logger logging.Logger) *MoleculeHandler {
	return &MoleculeHandler{svc: svc, logger: logger}
}

// RegisterRoutes registers the molecule and structure routes under r.
func (h *MoleculeHandler) RegisterRoutes(r gin.IRoutes) {
	r.POST("/molecules/convert", h.Convert)
	r.POST("/molecules/pdb", h.DownloadPDB)
	r.GET("/structures/:id/pdb", h.GetStructurePDB)
}

// Convert handles POST /api/v1/molecules/convert and returns the full report.
func (h *MoleculeHandler) Convert(c *gin.Context) {
	var req ConvertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	report, err := h.svc.Convert(c.Request.Context(), req.SMILES)
	if err != nil {
		writeAppError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// DownloadPDB handles POST /api/v1/molecules/pdb and returns only the
// structure file as an attachment.
func (h *MoleculeHandler) DownloadPDB(c *gin.Context) {
	var req ConvertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	report, err := h.svc.Convert(c.Request.Context(), req.SMILES)
	if err != nil {
		writeAppError(c, h.logger, err)
		return
	}
	c.Header("X-Structure-ID", report.ID)
	writePDB(c, report.PDB())
}

// GetStructurePDB handles GET /api/v1/structures/:id/pdb.
func (h *MoleculeHandler) GetStructurePDB(c *gin.Context) {
	st, err := h.svc.Structure(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeAppError(c, h.logger, err)
		return
	}
	writePDB(c, st.PDB)
}

func writePDB(c *gin.Context, pdb []byte) {
	c.Header("Content-Disposition", `attachment; filename="`+molecule.PDBFilename+`"`)
	c.Data(http.StatusOK, molecule.PDBMIMEType, pdb)
}

//Personal.AI order the ending
