package database

import (
	"context"

	"github.com/ReyperAutomatizacion02/Reyper-XYZ-sub000/internal/database/models"
)

// Identity maps are built by paging the whole table in fixed windows; a
// short page signals end-of-data. Rows without a workspace id are local-only
// and stay out of the map.
const idMapPageSize = 1000

func (s *service) ProjectRefs(ctx context.Context) (map[string]ProjectRef, error) {
	out := make(map[string]ProjectRef)
	for offset := 0; ; offset += idMapPageSize {
		var page []models.Project
		if err := s.db.WithContext(ctx).
			Model(&models.Project{}).
			Select("id", "notion_id", "status").
			Where("notion_id IS NOT NULL").
			Order("id").
			Limit(idMapPageSize).
			Offset(offset).
			Find(&page).Error; err != nil {
			return nil, err
		}
		for _, row := range page {
			if !row.NotionID.Valid || row.NotionID.String == "" {
				continue
			}
			out[row.NotionID.String] = ProjectRef{ID: row.ID, Status: row.Status}
		}
		if len(page) < idMapPageSize {
			return out, nil
		}
	}
}

func (s *service) OrderIDs(ctx context.Context) (map[string]uint, error) {
	out := make(map[string]uint)
	for offset := 0; ; offset += idMapPageSize {
		var page []models.ProductionOrder
		if err := s.db.WithContext(ctx).
			Model(&models.ProductionOrder{}).
			Select("id", "notion_id").
			Where("notion_id IS NOT NULL").
			Order("id").
			Limit(idMapPageSize).
			Offset(offset).
			Find(&page).Error; err != nil {
			return nil, err
		}
		for _, row := range page {
			if !row.NotionID.Valid || row.NotionID.String == "" {
				continue
			}
			out[row.NotionID.String] = row.ID
		}
		if len(page) < idMapPageSize {
			return out, nil
		}
	}
}

func (s *service) MachineNames(ctx context.Context) (map[string]bool, error) {
	var machines []models.Machine
	if err := s.db.WithContext(ctx).
		Model(&models.Machine{}).
		Select("id", "name").
		Find(&machines).Error; err != nil {
		return nil, err
	}
	out := make(map[string]bool, len(machines))
	for _, m := range machines {
		out[m.Name] = true
	}
	return out, nil
}
