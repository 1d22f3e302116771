package entity

import "time"

// TicketStatus trạng thái phiếu cung ứng vật tư
type TicketStatus int

const (
	TicketStatusDraft          TicketStatus = 0 // bản nháp
	TicketStatusPendingLead    TicketStatus = 1 // chờ đội trưởng duyệt
	TicketStatusPendingManager TicketStatus = 2 // chờ trưởng phòng duyệt
	TicketStatusApproved       TicketStatus = 3 // đã phê duyệt
	TicketStatusRejected       TicketStatus = 4 // từ chối
)

var ticketStatusLabels = map[TicketStatus]string{
	TicketStatusDraft:          "Bản nháp",
	TicketStatusPendingLead:    "Chờ đội trưởng duyệt",
	TicketStatusPendingManager: "Chờ trưởng phòng duyệt",
	TicketStatusApproved:       "Đã phê duyệt",
	TicketStatusRejected:       "Từ chối",
}

var ticketStatusColors = map[TicketStatus]string{
	TicketStatusDraft:          "default",
	TicketStatusPendingLead:    "processing",
	TicketStatusPendingManager: "processing",
	TicketStatusApproved:       "success",
	TicketStatusRejected:       "error",
}

func (s TicketStatus) Label() string {
	if l, ok := ticketStatusLabels[s]; ok {
		return l
	}
	return "Không xác định"
}

func (s TicketStatus) Color() string {
	if c, ok := ticketStatusColors[s]; ok {
		return c
	}
	return "default"
}

// ValidTicketTransitions is the two-tier supply approval ladder.
var ValidTicketTransitions = map[TicketStatus][]TicketStatus{
	TicketStatusDraft:          {TicketStatusPendingLead},
	TicketStatusPendingLead:    {TicketStatusPendingManager, TicketStatusRejected},
	TicketStatusPendingManager: {TicketStatusApproved, TicketStatusRejected},
	TicketStatusApproved:       {},
	TicketStatusRejected:       {TicketStatusPendingLead},
}

func (s TicketStatus) CanTransition(to TicketStatus) bool {
	for _, t := range ValidTicketTransitions[s] {
		if t == to {
			return true
		}
	}
	return false
}

// NextOnApprove returns the status an approval advances to, and whether a
// next approver must be chosen.
func (s TicketStatus) NextOnApprove() (next TicketStatus, needsApprover bool, ok bool) {
	switch s {
	case TicketStatusPendingLead:
		return TicketStatusPendingManager, true, true
	case TicketStatusPendingManager:
		return TicketStatusApproved, false, true
	default:
		return s, false, false
	}
}

func (s TicketStatus) IsPending() bool {
	return s == TicketStatusPendingLead || s == TicketStatusPendingManager
}

// SupplyTicket phiếu cung ứng vật tư
type SupplyTicket struct {
	ID             string       `json:"id" gorm:"primaryKey;size:32"`
	Code           string       `json:"code" gorm:"size:32;uniqueIndex;not null"`
	ConstructionID string       `json:"construction_id" gorm:"size:32;not null;index"`
	Location       string       `json:"location" gorm:"size:300"`
	Content        string       `json:"content" gorm:"type:text"`
	RequestDate    *time.Time   `json:"request_date"`
	Status         TicketStatus `json:"status" gorm:"default:0;index"`
	StatusLabel    string       `json:"status_label" gorm:"-"`
	RejectReason   string       `json:"reject_reason" gorm:"type:text"`
	NextApproverID *string      `json:"next_approver_id" gorm:"size:32"`
	CreatedBy      string       `json:"created_by" gorm:"size:32"`
	Note           string       `json:"note" gorm:"type:text"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

func (SupplyTicket) TableName() string {
	return "supply_tickets"
}

// SupplyTicketItem dòng vật tư trên phiếu. Derived rows (is_derived) are
// sub-materials generated from a main-material row via the composition
// ratios; parent_item_id points back at that row.
type SupplyTicketItem struct {
	ID             string    `json:"id" gorm:"primaryKey;size:32"`
	TicketID       string    `json:"ticket_id" gorm:"size:32;not null;index"`
	MaterialTypeID string    `json:"material_type_id" gorm:"size:32;not null"`
	MaterialCode   string    `json:"material_code" gorm:"size:50"`
	MaterialName   string    `json:"material_name" gorm:"size:200;not null"`
	UnitName       string    `json:"unit_name" gorm:"size:50"`
	PlanMaterialID *string   `json:"plan_material_id" gorm:"size:32"`
	Quantity       float64   `json:"quantity" gorm:"type:decimal(15,3);default:0"`
	UnitPrice      float64   `json:"unit_price" gorm:"type:decimal(15,2);default:0"`
	VATRate        float64   `json:"vat_rate" gorm:"type:decimal(5,2);default:0"`
	Amount         float64   `json:"amount" gorm:"type:decimal(18,2);default:0"`
	VATAmount      float64   `json:"vat_amount" gorm:"type:decimal(18,2);default:0"`
	AmountWithVAT  float64   `json:"amount_with_vat" gorm:"type:decimal(18,2);default:0"`
	SupplierName   string    `json:"supplier_name" gorm:"size:200"`
	ParentItemID   *string   `json:"parent_item_id" gorm:"size:32;index"`
	IsDerived      bool      `json:"is_derived" gorm:"default:false"`
	Note           string    `json:"note" gorm:"type:text"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (SupplyTicketItem) TableName() string {
	return "supply_ticket_items"
}

// ComputeAmounts derives line money fields from quantity, unit price and
// VAT percent.
func ComputeAmounts(quantity, unitPrice, vatRate float64) (amount, vat, total float64) {
	amount = quantity * unitPrice
	vat = amount * vatRate / 100
	total = amount + vat
	return amount, vat, total
}
