package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/b3ofer/internal/domain/dto"
	"github.com/guttosm/b3ofer/internal/middleware"
	"github.com/guttosm/b3ofer/internal/offers"
	"github.com/guttosm/b3ofer/internal/service"
)

const (
	defaultRunsLimit = 20
	maxRunsLimit     = 500
)

// Handler serves the read-only run-log endpoints.
type Handler struct {
	svc service.RunsService
}

// NewHandler constructs a Handler backed by svc.
func NewHandler(svc service.RunsService) *Handler {
	return &Handler{svc: svc}
}

// ListRuns handles GET /api/v1/runs.
//
// Query Parameters:
//   - side (string, optional, repeatable): CPA or VDA. Omitted means both.
//   - limit (int, optional): 1..500, default 20.
//
// ListRuns godoc
// @Summary      List filter runs
// @Description  Returns the most recent recorded filter runs, newest session first
// @Tags         runs
// @Produce      json
// @Param        side   query     string  false  "Order-book side (CPA or VDA)" example(CPA)
// @Param        limit  query     int     false  "Maximum number of runs" example(20)
// @Success      200    {object}  dto.RunsResponse   "Success"
// @Failure      400    {object}  dto.ErrorResponse  "Bad Request"
// @Failure      500    {object}  dto.ErrorResponse  "Internal Error"
// @Router       /api/v1/runs [get]
func (h *Handler) ListRuns(c *gin.Context) {
	sides, err := parseSides(c.QueryArray("side"))
	if err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid side", err)
		return
	}

	limit := defaultRunsLimit
	if s := strings.TrimSpace(c.Query("limit")); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 || n > maxRunsLimit {
			if err == nil {
				err = errors.New("limit must be between 1 and " + strconv.Itoa(maxRunsLimit))
			}
			middleware.AbortWithError(c, http.StatusBadRequest, "invalid limit", err)
			return
		}
		limit = n
	}

	runs, err := h.svc.ListRuns(c.Request.Context(), sides, limit)
	if err != nil {
		middleware.AbortWithError(c, http.StatusInternalServerError, "failed to list runs", err)
		return
	}

	c.JSON(http.StatusOK, dto.NewRunsResponse(runs))
}

// parseSides accepts repeated or comma-separated sides and removes duplicates.
func parseSides(raw []string) ([]string, error) {
	var out []string
	seen := map[offers.Side]bool{}
	for _, r := range raw {
		for _, part := range strings.Split(r, ",") {
			if strings.TrimSpace(part) == "" {
				continue
			}
			side, err := offers.ParseSide(part)
			if err != nil {
				return nil, err
			}
			if !seen[side] {
				seen[side] = true
				out = append(out, string(side))
			}
		}
	}
	return out, nil
}
