package service

import (
	"go.uber.org/zap"

	"github.com/huynhhaigiang/cadico-api/internal/supply/repository"
)

// Services bundles the supply-side services for handler wiring.
type Services struct {
	Material *MaterialService
	Ticket   *TicketService
	Export   *ExportService
}

func NewServices(repos *repository.Repositories, notifier Notifier, users UserFinder, logger *zap.Logger) *Services {
	ticketSvc := NewTicketService(repos.Ticket, repos.Material, notifier, users, logger)
	return &Services{
		Material: NewMaterialService(repos.Material),
		Ticket:   ticketSvc,
		Export:   NewExportService(ticketSvc),
	}
}
