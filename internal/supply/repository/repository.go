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

// Repositories gom các repository của module cung ứng vật tư
type Repositories struct {
	Material *MaterialRepository
	Ticket   *TicketRepository
}

func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Material: NewMaterialRepository(db),
		Ticket:   NewTicketRepository(db),
	}
}

// nextCode generates sequential codes like VT-0001 per entity prefix.
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
