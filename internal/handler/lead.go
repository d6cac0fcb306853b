package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/maxviazov/lead-service/internal/model"
	"github.com/maxviazov/lead-service/internal/service"
	"github.com/maxviazov/lead-service/pkg/response"
)

// maxRequestPageSize bounds page_size at the edge; the service then clamps to its configured maximum.
const maxRequestPageSize = 100

type LeadHandler struct {
	svc service.LeadService
}

func NewLeadHandler(svc service.LeadService) *LeadHandler { return &LeadHandler{svc: svc} }

func (h *LeadHandler) Register(r *gin.RouterGroup) {
	g := r.Group("/leads")
	{
		g.POST("", h.create)
		g.POST("/bulk", h.bulkCreate)
		g.GET("", h.list)
		g.GET("/:lead_id", h.getByID)
		g.PUT("/:lead_id", h.update)
		g.DELETE("/:lead_id", h.delete)
	}
}

type bulkCreateRequest struct {
	Leads []model.LeadInput `json:"leads"`
}

func (h *LeadHandler) create(c *gin.Context) {
	var req model.LeadInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, malformedBody())
		return
	}
	lead, err := h.svc.CreateLead(c.Request.Context(), req)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusCreated, lead)
}

func (h *LeadHandler) bulkCreate(c *gin.Context) {
	var req bulkCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, malformedBody())
		return
	}
	leads, err := h.svc.BulkCreateLeads(c.Request.Context(), req.Leads)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusCreated, leads)
}

func (h *LeadHandler) getByID(c *gin.Context) {
	lead, err := h.svc.GetLead(c.Request.Context(), c.Param("lead_id"))
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, lead)
}

func (h *LeadHandler) update(c *gin.Context) {
	var req model.LeadInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, malformedBody())
		return
	}
	lead, err := h.svc.UpdateLead(c.Request.Context(), c.Param("lead_id"), req)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, lead)
}

func (h *LeadHandler) delete(c *gin.Context) {
	if err := h.svc.DeleteLead(c.Request.Context(), c.Param("lead_id")); err != nil {
		response.WriteError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *LeadHandler) list(c *gin.Context) {
	params, err := parseListParams(c)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	page, err := h.svc.ListLeads(c.Request.Context(), params)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, response.FromPage(page))
}

// parseListParams reads cursor, page_size, repeated industry and the headcount bounds.
// Every malformed parameter is reported, not just the first.
func parseListParams(c *gin.Context) (service.ListParams, error) {
	var (
		p     service.ListParams
		ferrs []service.FieldError
	)
	p.Cursor = c.Query("cursor")

	if raw, ok := c.GetQuery("page_size"); ok {
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil || n < 1 || n > maxRequestPageSize {
			ferrs = append(ferrs, service.FieldError{
				Field:   "page_size",
				Message: "must be an integer between 1 and " + strconv.Itoa(maxRequestPageSize),
			})
		} else {
			p.PageSize = n
		}
	}

	for _, v := range c.QueryArray("industry") {
		if v = strings.TrimSpace(v); v != "" {
			p.Filter.Industries = append(p.Filter.Industries, v)
		}
	}

	p.Filter.MinHeadcount, ferrs = headcountParam(c, "min_headcount", ferrs)
	p.Filter.MaxHeadcount, ferrs = headcountParam(c, "max_headcount", ferrs)

	if err := service.NewInvalidInput(ferrs...); err != nil {
		return service.ListParams{}, err
	}
	return p, nil
}

func headcountParam(c *gin.Context, name string, ferrs []service.FieldError) (*int, []service.FieldError) {
	raw, ok := c.GetQuery(name)
	if !ok || strings.TrimSpace(raw) == "" {
		return nil, ferrs
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return nil, append(ferrs, service.FieldError{Field: name, Message: "must be an integer >= 1"})
	}
	return &n, ferrs
}

// malformedBody hides JSON decoding internals from clients.
func malformedBody() error {
	return service.NewInvalidInput(service.FieldError{Field: "body", Message: "must be a valid JSON object"})
}

