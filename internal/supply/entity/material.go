package entity

import "time"

// MaterialType loại vật tư. Main materials (is_main) carry a composition
// of sub-materials derived by ratio on supply tickets.
type MaterialType struct {
	ID           string    `json:"id" gorm:"primaryKey;size:32"`
	Code         string    `json:"code" gorm:"size:32;uniqueIndex;not null"`
	Name         string    `json:"name" gorm:"size:200;not null"`
	UnitID       *string   `json:"unit_id" gorm:"size:32"`
	UnitName     string    `json:"unit_name" gorm:"size:50"`
	DefaultPrice float64   `json:"default_price" gorm:"type:decimal(15,2);default:0"`
	IsMain       bool      `json:"is_main" gorm:"default:false"`
	Note         string    `json:"note" gorm:"type:text"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (MaterialType) TableName() string {
	return "material_types"
}

// MaterialComposition định mức vật tư phụ theo vật tư chính.
// child_qty = parent_qty * ratio.
type MaterialComposition struct {
	ID             string        `json:"id" gorm:"primaryKey;size:32"`
	MainMaterialID string        `json:"main_material_id" gorm:"size:32;not null;index"`
	SubMaterialID  string        `json:"sub_material_id" gorm:"size:32;not null"`
	SubMaterial    *MaterialType `json:"sub_material,omitempty" gorm:"foreignKey:SubMaterialID"`
	Ratio          float64       `json:"ratio" gorm:"type:decimal(10,4);not null"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

func (MaterialComposition) TableName() string {
	return "material_compositions"
}
