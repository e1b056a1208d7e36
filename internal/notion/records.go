package notion

import "time"

// Property names of the three workspace databases. These are part of the
// external contract; changing a column name in the workspace breaks the sync
// here, on purpose, rather than silently reading empty values.
const (
	projPropCode         = "ID"
	projPropName         = "Proyecto"
	projPropCompany      = "Empresa"
	projPropRequestor    = "Solicitante"
	projPropStartDate    = "Fecha de inicio"
	projPropDeliveryDate = "Fecha de entrega"

	orderPropPartCode = "ID de parte"
	orderPropPartName = "Nombre"
	orderPropMaterial = "Material"
	orderPropQuantity = "Cantidad"
	orderPropStatus   = "Estatus general"
	orderPropImage    = "Imagen"
	orderPropProject  = "Proyecto"

	planPropMachine  = "Máquina"
	planPropOperator = "Operador"
	planPropRegister = "Registro"
	planPropPlanned  = "Fecha planeada"
	planPropCheckIn  = "Check-in"
	planPropCheckOut = "Check-out"
	planPropOrder    = "Orden"
)

// Watermark property names. The three databases were created at different
// times and name their last-edited column differently, so each binding
// carries its own.
const (
	ProjectsWatermark = "Última edición"
	OrdersWatermark   = "Last edited time"
	PlanningWatermark = "Editado"
)

// ProjectRecord is a project page decoded into named fields.
type ProjectRecord struct {
	NotionID     string
	Code         string
	Name         string
	Company      string
	Requestor    string
	StartDate    string
	DeliveryDate string
	LastEdited   time.Time
}

// OrderRecord is a production-order page decoded into named fields.
// ProjectRelationID is the raw workspace id of the parent project, still to
// be resolved against the identity map.
type OrderRecord struct {
	NotionID          string
	PartCode          string
	PartName          string
	Material          string
	Quantity          int
	GeneralStatus     string
	ImageURL          string
	ProjectRelationID string
	LastEdited        time.Time
}

// PlanningRecord is a planning page decoded into named fields. Timestamps
// are raw workspace strings; the date normalizer runs later.
type PlanningRecord struct {
	NotionID        string
	Machine         string
	Operator        string
	Register        string
	PlannedDate     string
	PlannedEnd      string
	CheckIn         string
	CheckOut        string
	OrderRelationID string
	LastEdited      time.Time
}

func DecodeProject(p Page) ProjectRecord {
	return ProjectRecord{
		NotionID:     p.ID,
		Code:         p.prop(projPropCode).PlainText(),
		Name:         p.prop(projPropName).PlainText(),
		Company:      p.prop(projPropCompany).PlainText(),
		Requestor:    p.prop(projPropRequestor).PlainText(),
		StartDate:    p.prop(projPropStartDate).DateStart(),
		DeliveryDate: p.prop(projPropDeliveryDate).DateStart(),
		LastEdited:   p.LastEditedTime,
	}
}

func DecodeOrder(p Page) OrderRecord {
	return OrderRecord{
		NotionID:          p.ID,
		PartCode:          p.prop(orderPropPartCode).PlainText(),
		PartName:          p.prop(orderPropPartName).PlainText(),
		Material:          p.prop(orderPropMaterial).PlainText(),
		Quantity:          int(p.prop(orderPropQuantity).NumberValue()),
		GeneralStatus:     p.prop(orderPropStatus).SelectName(),
		ImageURL:          p.prop(orderPropImage).FirstFileURL(),
		ProjectRelationID: p.prop(orderPropProject).FirstRelationID(),
		LastEdited:        p.LastEditedTime,
	}
}

func DecodePlanning(p Page) PlanningRecord {
	return PlanningRecord{
		NotionID:        p.ID,
		Machine:         p.prop(planPropMachine).SelectName(),
		Operator:        p.prop(planPropOperator).PlainText(),
		Register:        p.prop(planPropRegister).SelectName(),
		PlannedDate:     p.prop(planPropPlanned).DateStart(),
		PlannedEnd:      p.prop(planPropPlanned).DateEnd(),
		CheckIn:         p.prop(planPropCheckIn).DateStart(),
		CheckOut:        p.prop(planPropCheckOut).DateStart(),
		OrderRelationID: p.prop(planPropOrder).FirstRelationID(),
		LastEdited:      p.LastEditedTime,
	}
}
