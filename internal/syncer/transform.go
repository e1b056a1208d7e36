package syncer

import (
	"database/sql"

	"github.com/ReyperAutomatizacion02/Reyper-XYZ-sub000/internal/database/models"
	"github.com/ReyperAutomatizacion02/Reyper-XYZ-sub000/internal/notion"
)

// Transformers map one decoded workspace record to its local row. A false
// return means "skip": the record is counted, not errored; missing parents
// are a steady-state condition while records are mid-creation upstream.

func projectRow(rec notion.ProjectRecord) (models.Project, bool) {
	if rec.Code == "" {
		return models.Project{}, false
	}
	return models.Project{
		Code:         rec.Code,
		Name:         rec.Name,
		Company:      rec.Company,
		Requestor:    rec.Requestor,
		StartDate:    parseDate(rec.StartDate),
		DeliveryDate: parseDate(rec.DeliveryDate),
		// Applied on insert only; the conflict-update column set leaves
		// an existing categorization alone.
		Status:       models.ProjectActive,
		NotionID:     nullString(rec.NotionID),
		LastEditedAt: nullTime(rec.LastEdited),
	}, true
}

func orderRow(rec notion.OrderRecord, sctx *Context) (models.ProductionOrder, bool) {
	if rec.PartCode == "" || rec.ProjectRelationID == "" {
		return models.ProductionOrder{}, false
	}
	ref, ok := sctx.Projects[rec.ProjectRelationID]
	if !ok {
		return models.ProductionOrder{}, false
	}
	return models.ProductionOrder{
		ProjectID:     sql.NullInt64{Int64: int64(ref.ID), Valid: true},
		PartCode:      rec.PartCode,
		PartName:      rec.PartName,
		Material:      rec.Material,
		Quantity:      rec.Quantity,
		GeneralStatus: rec.GeneralStatus,
		NotionID:      nullString(rec.NotionID),
		LastEditedAt:  nullTime(rec.LastEdited),
	}, true
}

func planningRow(rec notion.PlanningRecord, sctx *Context) (models.Planning, bool) {
	if rec.OrderRelationID == "" {
		return models.Planning{}, false
	}
	orderID, ok := sctx.Orders[rec.OrderRelationID]
	if !ok {
		return models.Planning{}, false
	}
	return models.Planning{
		OrderID:      orderID,
		Machine:      rec.Machine,
		Operator:     rec.Operator,
		Register:     rec.Register,
		PlannedDate:  nullTimestamp(rec.PlannedDate),
		PlannedEnd:   nullTimestamp(rec.PlannedEnd),
		CheckIn:      nullTimestamp(rec.CheckIn),
		CheckOut:     nullTimestamp(rec.CheckOut),
		NotionID:     nullString(rec.NotionID),
		LastEditedAt: nullTime(rec.LastEdited),
	}, true
}

// reactivation applies the reactive-consistency rule: an order still in
// progress implies its project cannot stay finished. Returns the project's
// local id when the project must flip back to active, updating the cached
// status so the flip happens once per run. An unset status counts as
// reactivatable too; the orders phase may run without a projects phase, so
// it cannot rely on the projects-phase backfill having happened.
func reactivation(rec notion.OrderRecord, sctx *Context) (uint, bool) {
	if models.IsTerminalOrderStatus(rec.GeneralStatus) {
		return 0, false
	}
	ref, ok := sctx.Projects[rec.ProjectRelationID]
	if !ok || ref.Status == models.ProjectActive {
		return 0, false
	}
	ref.Status = models.ProjectActive
	sctx.Projects[rec.ProjectRelationID] = ref
	return ref.ID, true
}
