package entity

import "time"

// User tài khoản người dùng
type User struct {
	ID           string     `json:"id" gorm:"primaryKey;size:32"`
	Username     string     `json:"username" gorm:"size:50;uniqueIndex;not null"`
	PasswordHash string     `json:"-" gorm:"size:100;not null"`
	Name         string     `json:"name" gorm:"size:100;not null"`
	Email        string     `json:"email" gorm:"size:100"`
	Phone        string     `json:"phone" gorm:"size:20"`
	Role         string     `json:"role" gorm:"size:30;not null;default:progress_staff"`
	Department   string     `json:"department" gorm:"size:100"`
	Status       string     `json:"status" gorm:"size:20;default:active"`
	LastLoginAt  *time.Time `json:"last_login_at"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// Vai trò trong luồng phê duyệt
const (
	RoleTeamLead      = "team_lead"      // đội trưởng
	RoleDeptManager   = "dept_manager"   // trưởng phòng
	RoleViceDirector  = "vice_director"  // phó giám đốc
	RoleDirector      = "director"       // giám đốc
	RoleSupplyStaff   = "supply_staff"   // cung ứng vật tư
	RoleProgressStaff = "progress_staff" // chấm công / tiến độ
	RoleAdmin         = "admin"
)

// User status
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)
