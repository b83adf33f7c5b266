package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stockfeed/internal/config"
)

// UpdateConfigRequest is a partial config update. Only the fields present
// in the request are applied; nil pointers leave the current value alone.
type UpdateConfigRequest struct {
	Inputs *struct {
		ArticlesFile  *string `json:"articlesFile"`
		WarehouseFile *string `json:"warehouseFile"`
		OEMFolder     *string `json:"oemFolder"`
		BrandsFile    *string `json:"brandsFile"`
		TecdocFile    *string `json:"tecdocFile"`
		OutputFolder  *string `json:"outputFolder"`
	} `json:"inputs"`
	Tulero *struct {
		Markup   *float64          `json:"markup"`
		Shipping *float64          `json:"shipping"`
		Upload   *bool             `json:"upload"`
		FTP      *config.FTPConfig `json:"ftp"`
	} `json:"tulero"`
	Tyre24 *struct {
		MarkupIT   *float64          `json:"markupIt"`
		ShippingIT *float64          `json:"shippingIt"`
		MarkupDE   *float64          `json:"markupDe"`
		ShippingDE *float64          `json:"shippingDe"`
		Upload     *bool             `json:"upload"`
		FTP        *config.FTPConfig `json:"ftp"`
	} `json:"tyre24"`
}

// GetConfig returns the current configuration.
// GET /api/config
func (h *Handler) GetConfig(c *gin.Context) {
	h.mu.Lock()
	cp := *h.cfg
	h.mu.Unlock()

	// FTP passwords stay out of GET responses.
	cp.Tulero.FTP.Password = ""
	cp.Tyre24.FTP.Password = ""
	c.JSON(http.StatusOK, cp)
}

// UpdateConfig applies a partial update, clamps the pricing inputs and
// persists the result.
// PATCH /api/config
func (h *Handler) UpdateConfig(c *gin.Context) {
	var req UpdateConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	applyConfigUpdate(h.cfg, &req)
	h.cfg.Clamp()

	if err := config.SaveConfig(h.cfg); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save config failed"})
		return
	}

	cp := *h.cfg
	cp.Tulero.FTP.Password = ""
	cp.Tyre24.FTP.Password = ""
	c.JSON(http.StatusOK, cp)
}

func applyConfigUpdate(cfg *config.AppConfig, req *UpdateConfigRequest) {
	if in := req.Inputs; in != nil {
		setString(&cfg.Inputs.ArticlesFile, in.ArticlesFile)
		setString(&cfg.Inputs.WarehouseFile, in.WarehouseFile)
		setString(&cfg.Inputs.OEMFolder, in.OEMFolder)
		setString(&cfg.Inputs.BrandsFile, in.BrandsFile)
		setString(&cfg.Inputs.TecdocFile, in.TecdocFile)
		setString(&cfg.Inputs.OutputFolder, in.OutputFolder)
	}
	if t := req.Tulero; t != nil {
		setFloat(&cfg.Tulero.Markup, t.Markup)
		setFloat(&cfg.Tulero.Shipping, t.Shipping)
		setBool(&cfg.Tulero.Upload, t.Upload)
		if t.FTP != nil {
			cfg.Tulero.FTP = *t.FTP
		}
	}
	if t := req.Tyre24; t != nil {
		setFloat(&cfg.Tyre24.MarkupIT, t.MarkupIT)
		setFloat(&cfg.Tyre24.ShippingIT, t.ShippingIT)
		setFloat(&cfg.Tyre24.MarkupDE, t.MarkupDE)
		setFloat(&cfg.Tyre24.ShippingDE, t.ShippingDE)
		setBool(&cfg.Tyre24.Upload, t.Upload)
		if t.FTP != nil {
			cfg.Tyre24.FTP = *t.FTP
		}
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}
