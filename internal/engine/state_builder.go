package engine

import (
	"github.com/Tanno-Finn/pockethero-3/internal/domain"
	"github.com/Tanno-Finn/pockethero-3/pkg/api"
)

// BuildSnapshot создает полный снимок мира для клиента.
// Ядро никуда этот снимок не шлет само: транспорт забирает его
// после тика (pull, не push).
func (s *Session) BuildSnapshot(respType string) *api.ServerResponse {
	resp := &api.ServerResponse{
		Type:  respType,
		Tick:  s.Tick,
		Clock: s.Clock,
	}
	if s.Player != nil {
		resp.PlayerID = s.Player.ID
	}

	grid := s.Active.Grid
	resp.Zone = &api.ZoneMeta{
		ID:       s.Active.ID,
		Name:     s.Active.Name,
		Width:    grid.Width,
		Height:   grid.Height,
		TileSize: grid.TileSize,
	}

	resp.Tiles = make([]api.TileView, 0, grid.Width*grid.Height)
	for y := 0; y < grid.Height; y++ {
		for x := 0; x < grid.Width; x++ {
			tile := grid.Tiles[y][x]
			resp.Tiles = append(resp.Tiles, api.TileView{
				X:     x,
				Y:     y,
				Type:  string(tile.Type),
				Color: tile.Color,
				Tags:  tile.Tags.List(),
			})
		}
	}

	resp.Entities = make([]api.EntityView, 0, len(s.Active.Entities))
	for _, e := range s.Active.Entities {
		resp.Entities = append(resp.Entities, toEntityView(e))
	}

	if req, ok := s.Dialog.Active(); ok {
		resp.Dialog = &api.DialogView{Content: req.Content, Speaker: req.Speaker}
	}

	resp.Logs = make([]api.LogEntry, len(s.logs))
	copy(resp.Logs, s.logs)

	return resp
}

// toEntityView конвертирует доменную сущность в DTO для отправки клиенту
func toEntityView(e *domain.Entity) api.EntityView {
	return api.EntityView{
		ID:     e.ID,
		Type:   string(e.Type),
		Name:   e.Name,
		X:      e.Pos.X,
		Y:      e.Pos.Y,
		Facing: e.Facing.String(),
		Shape:  e.Shape,
		Color:  e.Color,
		Size:   e.Size,
	}
}
