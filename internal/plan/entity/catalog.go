package entity

import "time"

// Construction công trình
type Construction struct {
	ID         string    `json:"id" gorm:"primaryKey;size:32"`
	Code       string    `json:"code" gorm:"size:32;uniqueIndex;not null"`
	Name       string    `json:"name" gorm:"size:200;not null"`
	Address    string    `json:"address" gorm:"size:300"`
	InvestorID *string   `json:"investor_id" gorm:"size:32"`
	Investor   *Investor `json:"investor,omitempty" gorm:"foreignKey:InvestorID"`
	Note       string    `json:"note" gorm:"type:text"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (Construction) TableName() string {
	return "constructions"
}

// Investor chủ đầu tư
type Investor struct {
	ID        string    `json:"id" gorm:"primaryKey;size:32"`
	Code      string    `json:"code" gorm:"size:32;uniqueIndex;not null"`
	Name      string    `json:"name" gorm:"size:200;not null"`
	Address   string    `json:"address" gorm:"size:300"`
	TaxCode   string    `json:"tax_code" gorm:"size:20"`
	Phone     string    `json:"phone" gorm:"size:20"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Investor) TableName() string {
	return "investors"
}

// Unit đơn vị tính (m, m2, m3, kg, tấn...)
type Unit struct {
	ID        string    `json:"id" gorm:"primaryKey;size:32"`
	Code      string    `json:"code" gorm:"size:32;uniqueIndex;not null"`
	Name      string    `json:"name" gorm:"size:50;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Unit) TableName() string {
	return "units"
}

// WorkType loại công tác
type WorkType struct {
	ID        string    `json:"id" gorm:"primaryKey;size:32"`
	Code      string    `json:"code" gorm:"size:32;uniqueIndex;not null"`
	Name      string    `json:"name" gorm:"size:200;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (WorkType) TableName() string {
	return "work_types"
}

// WorkItem hạng mục công việc, thuộc một loại công tác
type WorkItem struct {
	ID         string    `json:"id" gorm:"primaryKey;size:32"`
	Code       string    `json:"code" gorm:"size:32;uniqueIndex;not null"`
	Name       string    `json:"name" gorm:"size:200;not null"`
	WorkTypeID *string   `json:"work_type_id" gorm:"size:32;index"`
	WorkType   *WorkType `json:"work_type,omitempty" gorm:"foreignKey:WorkTypeID"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (WorkItem) TableName() string {
	return "work_items"
}

// Team đội thi công
type Team struct {
	ID              string    `json:"id" gorm:"primaryKey;size:32"`
	Code            string    `json:"code" gorm:"size:32;uniqueIndex;not null"`
	Name            string    `json:"name" gorm:"size:200;not null"`
	LeaderID        *string   `json:"leader_id" gorm:"size:32"`
	Leader          *User     `json:"leader,omitempty" gorm:"foreignKey:LeaderID"`
	IsSubcontractor bool      `json:"is_subcontractor" gorm:"default:false"`
	IsInternal      bool      `json:"is_internal" gorm:"default:true"`
	HasInvoice      bool      `json:"has_invoice" gorm:"default:false"`
	Description     string    `json:"description" gorm:"type:text"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (Team) TableName() string {
	return "teams"
}
