package handlers

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/molforge/internal/domain/druglike"
	"github.com/turtacn/molforge/internal/domain/molecule"
	"github.com/turtacn/molforge/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/molforge/pkg/errors"
)

const (
	pageTitle       = "SMILES to PDB Converter and 3D Visualizer"
	pageDescription = "This web-based application allows you to convert SMILES notation to PDB format " +
		"and visualize the 3D structure. It includes Lipinski's Rule of Five, Ghose's Rule, and Veber's Rule analysis."
)

//go:embed templates/index.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

type ruleView struct {
	Heading    string
	Parameters []string
	Summary    string
	Passed     bool
}

type pageView struct {
	Title       string
	Description string
	SMILES      string
	Error       string
	Success     bool
	Rules       []ruleView
	ViewerURL   string
	// DownloadHref is a data URI; html/template would otherwise rewrite it.
	DownloadHref template.URL
	Filename     string
	MIMEType     string
}

// PageHandler renders the single-page converter.
type PageHandler struct {
	svc    ConversionService
	logger logging.Logger
}

// NewPageHandler creates a new PageHandler.
func NewPageHandler(svc ConversionService, logger logging.Logger) *PageHandler {
	return &PageHandler{svc: svc, logger: logger}
}

// RegisterRoutes registers GET and POST on "/".
func (h *PageHandler) RegisterRoutes(r gin.IRoutes) {
	r.GET("/", h.Index)
	r.POST("/", h.Submit)
}

// Index renders the empty form.
func (h *PageHandler) Index(c *gin.Context) {
	h.render(c, http.StatusOK, newPageView())
}

// Submit converts the submitted SMILES and renders the outcome. Invalid Input
// shows only the error banner.
func (h *PageHandler) Submit(c *gin.Context) {
	view := newPageView()
	view.SMILES = c.PostForm("smiles")

	report, err := h.svc.Convert(c.Request.Context(), view.SMILES)
	if err != nil {
		status, resp := errorResponse(err)
		if status >= http.StatusInternalServerError {
			logging.FromContext(c.Request.Context(), h.logger).Error("conversion failed", logging.Err(err))
		}
		view.Error = resp.Message
		if errors.IsInvalidSMILES(err) {
			view.Error = errors.DefaultMessageForCode(errors.ErrCodeMoleculeInvalidSMILES)
		}
		h.render(c, status, view)
		return
	}

	view.Success = true
	view.Rules = ruleViews(report.Assessment)
	view.ViewerURL = report.ViewerURL
	view.DownloadHref = template.URL(report.DataURI())
	h.render(c, http.StatusOK, view)
}

func (h *PageHandler) render(c *gin.Context, status int, view pageView) {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, view); err != nil {
		writeAppError(c, h.logger, errors.Wrap(err, errors.ErrCodeInternal, "render page"))
		return
	}
	c.Data(status, "text/html; charset=utf-8", buf.Bytes())
}

func newPageView() pageView {
	return pageView{
		Title:       pageTitle,
		Description: pageDescription,
		Filename:    molecule.PDBFilename,
		MIMEType:    molecule.PDBMIMEType,
	}
}

func ruleViews(a druglike.Assessment) []ruleView {
	results := a.Results()
	out := make([]ruleView, 0, len(results))
	for _, r := range results {
		params := make([]string, 0, len(r.Parameters))
		for _, p := range r.Parameters {
			params = append(params, p.Label+": "+p.String())
		}
		out = append(out, ruleView{
			Heading:    r.Title + " Parameters:",
			Parameters: params,
			Summary:    r.Summary(),
			Passed:     r.Passed,
		})
	}
	return out
}

//Personal.AI order the ending
