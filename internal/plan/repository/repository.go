package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	ErrNotFound = errors.New("record not found")
)

// Repositories gom các repository của module phương án
type Repositories struct {
	User         *UserRepository
	Construction *ConstructionRepository
	Investor     *InvestorRepository
	Unit         *UnitRepository
	WorkType     *WorkTypeRepository
	WorkItem     *WorkItemRepository
	Team         *TeamRepository
	Plan         *PlanRepository
	Notification *NotificationRepository
}

func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:         NewUserRepository(db),
		Construction: NewConstructionRepository(db),
		Investor:     NewInvestorRepository(db),
		Unit:         NewUnitRepository(db),
		WorkType:     NewWorkTypeRepository(db),
		WorkItem:     NewWorkItemRepository(db),
		Team:         NewTeamRepository(db),
		Plan:         NewPlanRepository(db),
		Notification: NewNotificationRepository(db),
	}
}

// nextCode generates sequential codes like CT-0001 per entity prefix.
func nextCode(ctx context.Context, db *gorm.DB, model interface{}, prefix string) (string, error) {
	var maxCode string
	err := db.WithContext(ctx).
		Model(model).
		Select(fmt.Sprintf("COALESCE(MAX(code), '%s-0000')", prefix)).
		Where("code LIKE ?", prefix+"-%").
		Scan(&maxCode).Error
	if err != nil {
		return "", err
	}

	var seq int
	fmt.Sscanf(maxCode, prefix+"-%04d", &seq)
	seq++
	return fmt.Sprintf("%s-%04d", prefix, seq), nil
}

func translateNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
