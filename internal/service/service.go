package service

import (
	"unifest/internal/external"
	"unifest/internal/messaging"
	"unifest/internal/repository"
)

type Services struct {
	Events        *EventService
	Registrations *RegistrationService
	Teams         *TeamService
	Tickets       *TicketService
	Payments      *PaymentService
}

func NewServices(repos *repository.Repositories, natsClient *messaging.NATSClient, paymentClient *external.PaymentClient) *Services {
	eventService := NewEventService(repos.Events, repos.EventSearch, repos.Tiers)
	ticketService := NewTicketService(repos.Tickets, repos.Registrations, repos.Events, repos.Users, repos.Teams, natsClient)
	registrationService := NewRegistrationService(repos.Registrations, repos.Events, repos.Teams, repos.Tiers, repos.Payments, paymentClient, natsClient)
	teamService := NewTeamService(repos.Teams)
	paymentService := NewPaymentService(repos.Payments, repos.Registrations, ticketService, paymentClient, natsClient)

	return &Services{
		Events:        eventService,
		Registrations: registrationService,
		Teams:         teamService,
		Tickets:       ticketService,
		Payments:      paymentService,
	}
}
