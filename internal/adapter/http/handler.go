package httpadapter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	campaignapp "campaignmap/internal/app/campaign"
	"campaignmap/internal/app/character"
	"campaignmap/internal/app/history"
	"campaignmap/internal/app/mapview"
	"campaignmap/internal/app/movement"
	"campaignmap/internal/app/ports"
	"campaignmap/internal/domain/campaign"
	"campaignmap/internal/domain/world"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

type Handler struct {
	MovementUC  movement.UseCase
	CampaignUC  campaignapp.UseCase
	CharacterUC character.UseCase
	MapUC       mapview.UseCase
	HistoryUC   history.UseCase
	KPI         kpiSnapshotProvider

	RequestTimeout time.Duration
}

func (h Handler) RegisterRoutes(s *server.Hertz) {
	s.Use(corsMiddleware(), timeoutMiddleware(h.RequestTimeout))

	chars := s.Group("/characters")
	chars.POST("", h.registerCharacter)
	chars.POST("/:id/step", h.step)
	chars.POST("/:id/teleport", h.teleport)
	chars.POST("/:id/bind", h.bindCharacter)
	chars.GET("/:id/movements", h.movements)

	camps := s.Group("/campaigns")
	camps.POST("", h.createCampaign)
	camps.GET("", h.listCampaigns)
	camps.GET("/active", h.activeCampaign)
	camps.PUT("/:id/status", h.updateCampaignStatus)
	camps.POST("/:id/end", h.endCampaign)
	camps.GET("/:id/map", h.campaignMap)
	camps.GET("/:id/characters", h.campaignCharacters)

	s.GET("/map/preview", h.previewMap)
	s.GET("/ops/kpi", h.kpi)
}

var ErrInvalidJSON = errors.New("invalid json")

type createCampaignRequest struct {
	Name    string `json:"name"`
	MapSize int    `json:"map_size"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

type registerCharacterRequest struct {
	Name string `json:"name"`
}

func (h Handler) step(c context.Context, ctx *app.RequestContext) {
	id, err := pathID(ctx, "id")
	if err != nil {
		writeError(ctx, err)
		return
	}
	dx, dy, err := decodeStep(ctx.Request.Body())
	if err != nil {
		writeError(ctx, err)
		return
	}
	resp, err := h.MovementUC.Step(c, movement.StepRequest{CharacterID: id, DX: dx, DY: dy})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) teleport(c context.Context, ctx *app.RequestContext) {
	id, err := pathID(ctx, "id")
	if err != nil {
		writeError(ctx, err)
		return
	}
	to, err := decodeTeleport(ctx.Request.Body())
	if err != nil {
		writeError(ctx, err)
		return
	}
	resp, err := h.MovementUC.Teleport(c, movement.TeleportRequest{CharacterID: id, To: to})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) createCampaign(c context.Context, ctx *app.RequestContext) {
	var body createCampaignRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeError(ctx, ErrInvalidJSON)
		return
	}
	resp, err := h.CampaignUC.Create(c, campaignapp.CreateRequest{Name: body.Name, MapSize: body.MapSize})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) listCampaigns(c context.Context, ctx *app.RequestContext) {
	resp, err := h.CampaignUC.List(c)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) activeCampaign(c context.Context, ctx *app.RequestContext) {
	resp, err := h.CampaignUC.Active(c)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) updateCampaignStatus(c context.Context, ctx *app.RequestContext) {
	id, err := pathID(ctx, "id")
	if err != nil {
		writeError(ctx, err)
		return
	}
	var body updateStatusRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeError(ctx, ErrInvalidJSON)
		return
	}
	resp, err := h.CampaignUC.UpdateStatus(c, campaignapp.UpdateStatusRequest{ID: id, Status: body.Status})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) endCampaign(c context.Context, ctx *app.RequestContext) {
	id, err := pathID(ctx, "id")
	if err != nil {
		writeError(ctx, err)
		return
	}
	if err := h.CampaignUC.End(c, id); err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, campaignapp.UpdateStatusResponse{Changes: 1})
}

func (h Handler) campaignMap(c context.Context, ctx *app.RequestContext) {
	id, err := pathID(ctx, "id")
	if err != nil {
		writeError(ctx, err)
		return
	}
	resp, err := h.MapUC.Render(c, id)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) campaignCharacters(c context.Context, ctx *app.RequestContext) {
	id, err := pathID(ctx, "id")
	if err != nil {
		writeError(ctx, err)
		return
	}
	resp, err := h.CharacterUC.ListByCampaign(c, id)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) previewMap(c context.Context, ctx *app.RequestContext) {
	seed, err := queryInt(ctx, "seed", 0)
	if err != nil {
		writeError(ctx, err)
		return
	}
	size, err := queryInt(ctx, "map_size", 0)
	if err != nil {
		writeError(ctx, err)
		return
	}
	resp, err := h.MapUC.Preview(c, seed, int(size))
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) registerCharacter(c context.Context, ctx *app.RequestContext) {
	var body registerCharacterRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeError(ctx, ErrInvalidJSON)
		return
	}
	resp, err := h.CharacterUC.Register(c, character.RegisterRequest{Name: body.Name})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) bindCharacter(c context.Context, ctx *app.RequestContext) {
	id, err := pathID(ctx, "id")
	if err != nil {
		writeError(ctx, err)
		return
	}
	resp, err := h.CharacterUC.Bind(c, id)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) movements(c context.Context, ctx *app.RequestContext) {
	id, err := pathID(ctx, "id")
	if err != nil {
		writeError(ctx, err)
		return
	}
	limit, err := queryInt(ctx, "limit", 0)
	if err != nil {
		writeError(ctx, err)
		return
	}
	resp, err := h.HistoryUC.List(c, history.Request{CharacterID: id, Limit: int(limit)})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

type kpiSnapshotProvider interface {
	SnapshotAny() any
}

func (h Handler) kpi(_ context.Context, ctx *app.RequestContext) {
	if h.KPI == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "kpi provider not configured")
		return
	}
	ctx.JSON(consts.StatusOK, h.KPI.SnapshotAny())
}

func decodeJSON(ctx *app.RequestContext, out any) error {
	body := ctx.Request.Body()
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

// decodeStep requires dx and dy to be JSON integers; range is checked by the use case.
func decodeStep(body []byte) (int, int, error) {
	fields, err := decodeFields(body)
	if err != nil {
		return 0, 0, err
	}
	dx, err := intField(fields, "dx")
	if err != nil {
		return 0, 0, err
	}
	dy, err := intField(fields, "dy")
	if err != nil {
		return 0, 0, err
	}
	return dx, dy, nil
}

func decodeTeleport(body []byte) (world.Point, error) {
	fields, err := decodeFields(body)
	if err != nil {
		return world.Point{}, err
	}
	raw, ok := fields["to"]
	if !ok {
		return world.Point{}, fmt.Errorf("%w: to is required", campaign.ErrInvalidInput)
	}
	to, err := decodeFields(raw)
	if err != nil {
		return world.Point{}, fmt.Errorf("%w: to must be an object", campaign.ErrInvalidInput)
	}
	x, err := intField(to, "x")
	if err != nil {
		return world.Point{}, err
	}
	y, err := intField(to, "y")
	if err != nil {
		return world.Point{}, err
	}
	return world.Point{X: x, Y: y}, nil
}

func decodeFields(body []byte) (map[string]json.RawMessage, error) {
	var m map[string]json.RawMessage
	if len(body) == 0 {
		return nil, ErrInvalidJSON
	}
	if err := json.Unmarshal(body, &m); err != nil || m == nil {
		return nil, ErrInvalidJSON
	}
	return m, nil
}

// intField requires fields[key] to be a JSON number holding an integer that
// fits a stored coordinate. Quoted numerals are rejected.
func intField(fields map[string]json.RawMessage, key string) (int, error) {
	raw, ok := fields[key]
	if !ok {
		return 0, fmt.Errorf("%w: %s is required", campaign.ErrInvalidInput, key)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", campaign.ErrInvalidInput, key)
	}
	n, ok := v.(json.Number)
	if !ok {
		return 0, fmt.Errorf("%w: %s must be an integer", campaign.ErrInvalidInput, key)
	}
	i, err := strconv.ParseInt(n.String(), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a 32-bit integer", campaign.ErrInvalidInput, key)
	}
	return int(i), nil
}

func pathID(ctx *app.RequestContext, name string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(ctx.Param(name)), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid %s", campaign.ErrInvalidInput, name)
	}
	return id, nil
}

func queryInt(ctx *app.RequestContext, key string, fallback int64) (int64, error) {
	raw := strings.TrimSpace(string(ctx.Query(key)))
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", campaign.ErrInvalidInput, key)
	}
	return v, nil
}

func writeError(ctx *app.RequestContext, err error) {
	switch {
	case errors.Is(err, ErrInvalidJSON):
		writeErrorBody(ctx, consts.StatusBadRequest, err.Error())
	case errors.Is(err, ports.ErrNotFound):
		writeErrorBody(ctx, consts.StatusNotFound, "not found")
	case errors.Is(err, campaign.ErrNotLinked),
		errors.Is(err, campaign.ErrNotPlaced),
		errors.Is(err, campaign.ErrInvalidInput):
		writeErrorBody(ctx, consts.StatusBadRequest, err.Error())
	case errors.Is(err, campaign.ErrImpassable),
		errors.Is(err, campaign.ErrOutOfBounds):
		writeErrorBody(ctx, consts.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, campaign.ErrOccupied),
		errors.Is(err, campaign.ErrNoActiveCampaign),
		errors.Is(err, ports.ErrConflict):
		writeErrorBody(ctx, consts.StatusConflict, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		writeErrorBody(ctx, consts.StatusServiceUnavailable, "request timed out")
	default:
		writeErrorBody(ctx, consts.StatusInternalServerError, "internal error")
	}
}

func writeErrorBody(ctx *app.RequestContext, status int, message string) {
	ctx.JSON(status, map[string]any{
		"success": false,
		"error":   message,
	})
}
