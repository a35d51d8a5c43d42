package repository

import (
	"unifest/internal/database"
	"unifest/internal/search"
)

type Repositories struct {
	Events        *EventRepository
	EventSearch   *EventSearchRepository
	Tiers         *TierRepository
	Registrations *RegistrationRepository
	Teams         *TeamRepository
	Tickets       *TicketRepository
	Payments      *PaymentRepository
	Users         *UserRepository
	Notifications *NotificationRepository
}

func NewRepositories(db *database.DB) *Repositories {
	return &Repositories{
		Events:        NewEventRepository(db),
		Tiers:         NewTierRepository(db),
		Registrations: NewRegistrationRepository(db),
		Teams:         NewTeamRepository(db),
		Tickets:       NewTicketRepository(db),
		Payments:      NewPaymentRepository(db),
		Users:         NewUserRepository(db),
		Notifications: NewNotificationRepository(db),
	}
}

func NewRepositoriesWithSearch(db *database.DB, es *search.ElasticsearchClient) *Repositories {
	repos := NewRepositories(db)
	// A nil client means search is down; EventSearch stays nil so callers
	// take their Postgres fallback instead of hitting a dead client.
	if es != nil {
		repos.EventSearch = NewEventSearchRepository(es)
	}
	return repos
}
