package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"gopower/domain/design"
	"gopower/domain/power"
	"gopower/internal/errors"
	"gopower/internal/sensitivity"
	"gopower/ports"
)

// CalculateRequest is the body of POST /api/v1/calculate.
type CalculateRequest struct {
	Design string             `json:"design" binding:"required"`
	Mode   string             `json:"mode" binding:"required"`
	Params map[string]float64 `json:"params"`
}

// ExportRequest runs a calculation and renders it in one round trip.
type ExportRequest struct {
	CalculateRequest
	Format string `json:"format" binding:"required"`
}

// DesignEffectRequest is the body of POST /api/v1/design-effect.
type DesignEffectRequest struct {
	RhoTS float64 `json:"rho_ts"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleListDesigns(c *gin.Context) {
	type entry struct {
		ID       string `json:"id"`
		Model    string `json:"model"`
		Name     string `json:"name"`
		FullName string `json:"full_name"`
		Category string `json:"category"`
	}

	byCategory := make(map[string][]entry)
	for _, cat := range design.Categories() {
		for _, spec := range design.ByCategory(cat) {
			byCategory[string(cat)] = append(byCategory[string(cat)], entry{
				ID:       string(spec.ID),
				Model:    spec.Model,
				Name:     spec.Name,
				FullName: spec.FullName,
				Category: string(spec.Category),
			})
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"count":      len(design.All()),
		"categories": byCategory,
	})
}

func (s *Server) handleGetDesign(c *gin.Context) {
	spec, err := design.Lookup(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	type paramInfo struct {
		Name    string   `json:"name"`
		Label   string   `json:"label"`
		Comment string   `json:"comment,omitempty"`
		Default *float64 `json:"default,omitempty"`
	}

	params := make([]paramInfo, 0, len(spec.ParamOrder))
	for _, name := range spec.ParamOrder {
		meta, ok := design.Meta(name)
		if !ok {
			continue
		}
		info := paramInfo{Name: name, Label: meta.Label, Comment: meta.Comment}
		if meta.HasDefault {
			def := meta.Default
			info.Default = &def
		}
		params = append(params, info)
	}

	c.JSON(http.StatusOK, gin.H{
		"id":              string(spec.ID),
		"model":           spec.Model,
		"name":            spec.Name,
		"full_name":       spec.FullName,
		"category":        string(spec.Category),
		"sample_size_for": spec.SampleSizeFor,
		"params":          params,
	})
}

func (s *Server) handleCalculate(c *gin.Context) {
	var req CalculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errors.InvalidInput(err.Error()))
		return
	}

	mode, err := power.ParseMode(req.Mode)
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := s.calc.Calculate(mode, req.Design, design.Params(req.Params))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) handleExport(c *gin.Context) {
	var req ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errors.InvalidInput(err.Error()))
		return
	}

	mode, err := power.ParseMode(req.Mode)
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := s.calc.Calculate(mode, req.Design, design.Params(req.Params))
	if err != nil {
		respondError(c, err)
		return
	}

	out, err := s.exporter.Render(result, ports.ExportFormat(req.Format))
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", out.Filename))
	c.Data(http.StatusOK, out.MIME, out.Data)
}

func (s *Server) handleSweep(c *gin.Context) {
	var req sensitivity.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errors.InvalidInput(err.Error()))
		return
	}

	curve, err := s.sweeper.Run(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, curve)
}

func (s *Server) handleDesignEffect(c *gin.Context) {
	var req DesignEffectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errors.InvalidInput(err.Error()))
		return
	}

	if req.RhoTS < 0 || req.RhoTS >= 1 {
		respondError(c, errors.InvalidInput("rho_ts must be in [0, 1)"))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"rho_ts":        req.RhoTS,
		"design_effect": design.EstimateDesignEffect(req.RhoTS),
	})
}
