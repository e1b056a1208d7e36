package database

import (
	"context"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ReyperAutomatizacion02/Reyper-XYZ-sub000/internal/database/models"
)

func TestProjectRefsSkipsEmptyExternalIDs(t *testing.T) {
	mock, s := setupMockStore(t)

	mock.ExpectQuery(`SELECT .* FROM "projects"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "notion_id", "status"}).
			AddRow(1, "proj-1", "active").
			AddRow(2, nil, "active").
			AddRow(3, "", "active").
			AddRow(4, "proj-4", "completed"))

	got, err := s.ProjectRefs(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, ProjectRef{ID: 1, Status: models.ProjectActive}, got["proj-1"])
	assert.Equal(t, ProjectRef{ID: 4, Status: models.ProjectCompleted}, got["proj-4"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderIDsPaginatesUntilShortPage(t *testing.T) {
	mock, s := setupMockStore(t)

	first := sqlmock.NewRows([]string{"id", "notion_id"})
	for i := 1; i <= idMapPageSize; i++ {
		first.AddRow(i, fmt.Sprintf("ord-%d", i))
	}
	mock.ExpectQuery(`SELECT .* FROM "production_orders"`).WillReturnRows(first)
	mock.ExpectQuery(`SELECT .* FROM "production_orders"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "notion_id"}).
			AddRow(idMapPageSize+1, "ord-last"))

	got, err := s.OrderIDs(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, idMapPageSize+1)
	assert.Equal(t, uint(1), got["ord-1"])
	assert.Equal(t, uint(idMapPageSize+1), got["ord-last"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderIDsEmptyTable(t *testing.T) {
	mock, s := setupMockStore(t)

	mock.ExpectQuery(`SELECT .* FROM "production_orders"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "notion_id"}))

	got, err := s.OrderIDs(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMachineNames(t *testing.T) {
	mock, s := setupMockStore(t)

	mock.ExpectQuery(`SELECT .* FROM "machines"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
			AddRow(1, "CNC-3").
			AddRow(2, "Torno-1"))

	got, err := s.MachineNames(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"CNC-3": true, "Torno-1": true}, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}
