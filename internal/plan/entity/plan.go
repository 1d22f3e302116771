package entity

import "time"

// PlanStatus trạng thái phương án thi công. The integer values are the
// wire contract the dashboard renders from.
type PlanStatus int

const (
	PlanStatusDraft           PlanStatus = 0 // bản nháp
	PlanStatusPendingLead     PlanStatus = 1 // chờ đội trưởng duyệt
	PlanStatusPendingManager  PlanStatus = 2 // chờ trưởng phòng duyệt
	PlanStatusPendingDirector PlanStatus = 3 // chờ (phó) giám đốc duyệt
	PlanStatusApproved        PlanStatus = 4 // đã phê duyệt
	PlanStatusRejected        PlanStatus = 5 // từ chối
)

var planStatusLabels = map[PlanStatus]string{
	PlanStatusDraft:           "Bản nháp",
	PlanStatusPendingLead:     "Chờ đội trưởng duyệt",
	PlanStatusPendingManager:  "Chờ trưởng phòng duyệt",
	PlanStatusPendingDirector: "Chờ giám đốc duyệt",
	PlanStatusApproved:        "Đã phê duyệt",
	PlanStatusRejected:        "Từ chối",
}

var planStatusColors = map[PlanStatus]string{
	PlanStatusDraft:           "default",
	PlanStatusPendingLead:     "processing",
	PlanStatusPendingManager:  "processing",
	PlanStatusPendingDirector: "processing",
	PlanStatusApproved:        "success",
	PlanStatusRejected:        "error",
}

func (s PlanStatus) Label() string {
	if l, ok := planStatusLabels[s]; ok {
		return l
	}
	return "Không xác định"
}

func (s PlanStatus) Color() string {
	if c, ok := planStatusColors[s]; ok {
		return c
	}
	return "default"
}

// ValidPlanTransitions is the approval ladder. Rejected plans can be
// revised and resubmitted.
var ValidPlanTransitions = map[PlanStatus][]PlanStatus{
	PlanStatusDraft:           {PlanStatusPendingLead},
	PlanStatusPendingLead:     {PlanStatusPendingManager, PlanStatusRejected},
	PlanStatusPendingManager:  {PlanStatusPendingDirector, PlanStatusRejected},
	PlanStatusPendingDirector: {PlanStatusApproved, PlanStatusRejected},
	PlanStatusApproved:        {},
	PlanStatusRejected:        {PlanStatusPendingLead},
}

// CanTransition reports whether from → to is a legal move.
func (s PlanStatus) CanTransition(to PlanStatus) bool {
	for _, t := range ValidPlanTransitions[s] {
		if t == to {
			return true
		}
	}
	return false
}

// NextOnApprove returns the status an approval advances to, and whether
// a next approver must be selected (all but the terminal step).
func (s PlanStatus) NextOnApprove() (next PlanStatus, needsApprover bool, ok bool) {
	switch s {
	case PlanStatusPendingLead:
		return PlanStatusPendingManager, true, true
	case PlanStatusPendingManager:
		return PlanStatusPendingDirector, true, true
	case PlanStatusPendingDirector:
		return PlanStatusApproved, false, true
	default:
		return s, false, false
	}
}

// IsPending reports whether the plan sits in an approval queue.
func (s PlanStatus) IsPending() bool {
	return s == PlanStatusPendingLead || s == PlanStatusPendingManager || s == PlanStatusPendingDirector
}

// Plan phương án thi công
type Plan struct {
	ID               string        `json:"id" gorm:"primaryKey;size:32"`
	Code             string        `json:"code" gorm:"size:32;uniqueIndex;not null"`
	Name             string        `json:"name" gorm:"size:300;not null"`
	ConstructionID   string        `json:"construction_id" gorm:"size:32;not null;index"`
	Construction     *Construction `json:"construction,omitempty" gorm:"foreignKey:ConstructionID"`
	ContractNo       string        `json:"contract_no" gorm:"size:50"`
	ContractValue    float64       `json:"contract_value" gorm:"type:decimal(18,2);default:0"`
	ContractSignedAt *time.Time    `json:"contract_signed_at"`
	ContractFileURL  string        `json:"contract_file_url" gorm:"size:500"`
	StartDate        *time.Time    `json:"start_date"`
	EndDate          *time.Time    `json:"end_date"`
	Status           PlanStatus    `json:"status" gorm:"default:0;index"`
	StatusLabel      string        `json:"status_label" gorm:"-"`
	RejectReason     string        `json:"reject_reason" gorm:"type:text"`
	NextApproverID   *string       `json:"next_approver_id" gorm:"size:32"`
	NextApprover     *User         `json:"next_approver,omitempty" gorm:"foreignKey:NextApproverID"`
	CreatedBy        string        `json:"created_by" gorm:"size:32"`
	Note             string        `json:"note" gorm:"type:text"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
}

func (Plan) TableName() string {
	return "plans"
}

// PlanWorkload khối lượng giao khoán
type PlanWorkload struct {
	ID         string    `json:"id" gorm:"primaryKey;size:32"`
	PlanID     string    `json:"plan_id" gorm:"size:32;not null;index"`
	WorkTypeID *string   `json:"work_type_id" gorm:"size:32"`
	WorkType   *WorkType `json:"work_type,omitempty" gorm:"foreignKey:WorkTypeID"`
	WorkItemID *string   `json:"work_item_id" gorm:"size:32"`
	WorkItem   *WorkItem `json:"work_item,omitempty" gorm:"foreignKey:WorkItemID"`
	TeamID     *string   `json:"team_id" gorm:"size:32"`
	Team       *Team     `json:"team,omitempty" gorm:"foreignKey:TeamID"`
	UnitID     *string   `json:"unit_id" gorm:"size:32"`
	Unit       *Unit     `json:"unit,omitempty" gorm:"foreignKey:UnitID"`
	Quantity   float64   `json:"quantity" gorm:"type:decimal(15,3);default:0"`
	UnitPrice  float64   `json:"unit_price" gorm:"type:decimal(15,2);default:0"`
	Amount     float64   `json:"amount" gorm:"type:decimal(18,2);default:0"`
	Note       string    `json:"note" gorm:"type:text"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (PlanWorkload) TableName() string {
	return "plan_workloads"
}

// PlanCost chi phí thi công
type PlanCost struct {
	ID         string    `json:"id" gorm:"primaryKey;size:32"`
	PlanID     string    `json:"plan_id" gorm:"size:32;not null;index"`
	WorkTypeID *string   `json:"work_type_id" gorm:"size:32"`
	WorkType   *WorkType `json:"work_type,omitempty" gorm:"foreignKey:WorkTypeID"`
	WorkItemID *string   `json:"work_item_id" gorm:"size:32"`
	WorkItem   *WorkItem `json:"work_item,omitempty" gorm:"foreignKey:WorkItemID"`
	TeamID     *string   `json:"team_id" gorm:"size:32"`
	Team       *Team     `json:"team,omitempty" gorm:"foreignKey:TeamID"`
	UnitID     *string   `json:"unit_id" gorm:"size:32"`
	Unit       *Unit     `json:"unit,omitempty" gorm:"foreignKey:UnitID"`
	Quantity   float64   `json:"quantity" gorm:"type:decimal(15,3);default:0"`
	UnitPrice  float64   `json:"unit_price" gorm:"type:decimal(15,2);default:0"`
	Amount     float64   `json:"amount" gorm:"type:decimal(18,2);default:0"`
	Note       string    `json:"note" gorm:"type:text"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (PlanCost) TableName() string {
	return "plan_costs"
}

// PlanOtherCost chi phí khác (không gắn hạng mục)
type PlanOtherCost struct {
	ID        string    `json:"id" gorm:"primaryKey;size:32"`
	PlanID    string    `json:"plan_id" gorm:"size:32;not null;index"`
	Content   string    `json:"content" gorm:"size:300;not null"`
	Amount    float64   `json:"amount" gorm:"type:decimal(18,2);default:0"`
	Note      string    `json:"note" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (PlanOtherCost) TableName() string {
	return "plan_other_costs"
}

// PlanMaterial đề xuất vật tư. Material info is denormalized from the
// supply module so the detail tabs render without cross-module joins.
type PlanMaterial struct {
	ID             string    `json:"id" gorm:"primaryKey;size:32"`
	PlanID         string    `json:"plan_id" gorm:"size:32;not null;index"`
	MaterialTypeID string    `json:"material_type_id" gorm:"size:32;not null"`
	MaterialCode   string    `json:"material_code" gorm:"size:50"`
	MaterialName   string    `json:"material_name" gorm:"size:200;not null"`
	UnitName       string    `json:"unit_name" gorm:"size:50"`
	DesignQty      float64   `json:"design_qty" gorm:"type:decimal(15,3);default:0"`
	RequestQty     float64   `json:"request_qty" gorm:"type:decimal(15,3);default:0"`
	CumulativeQty  float64   `json:"cumulative_qty" gorm:"type:decimal(15,3);default:0"`
	UnitPrice      float64   `json:"unit_price" gorm:"type:decimal(15,2);default:0"`
	Amount         float64   `json:"amount" gorm:"type:decimal(18,2);default:0"`
	IsExtra        bool      `json:"is_extra" gorm:"default:false"`
	Note           string    `json:"note" gorm:"type:text"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (PlanMaterial) TableName() string {
	return "plan_materials"
}

// ProgressLog chấm công / nhật ký khối lượng
type ProgressLog struct {
	ID         string    `json:"id" gorm:"primaryKey;size:32"`
	PlanID     string    `json:"plan_id" gorm:"size:32;not null;index"`
	TeamID     *string   `json:"team_id" gorm:"size:32"`
	Team       *Team     `json:"team,omitempty" gorm:"foreignKey:TeamID"`
	WorkItemID *string   `json:"work_item_id" gorm:"size:32"`
	WorkItem   *WorkItem `json:"work_item,omitempty" gorm:"foreignKey:WorkItemID"`
	LogDate    time.Time `json:"log_date"`
	Quantity   float64   `json:"quantity" gorm:"type:decimal(15,3);default:0"`
	Note       string    `json:"note" gorm:"type:text"`
	CreatedBy  string    `json:"created_by" gorm:"size:32"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (ProgressLog) TableName() string {
	return "progress_logs"
}
