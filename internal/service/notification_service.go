package service

import (
	"context"
	"encoding/json"
	"log"

	"agentcity-be/internal/dto"
	"agentcity-be/internal/pkg/mailer"
	"agentcity-be/internal/repository/specification"
	"agentcity-be/internal/repository/unitofwork"
	"agentcity-be/internal/websocket"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type INotificationService interface {
	Consume(ctx context.Context) error
}

// notificationService drains the plan-archival topic: for every
// persisted plan it pushes a websocket event to the owning user and
// mails them a summary.
type notificationService struct {
	pubSub       *gochannel.GoChannel
	topicName    string
	uowFactory   unitofwork.RepositoryFactory
	hub          *websocket.Hub
	emailService mailer.IEmailService
}

func NewNotificationService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	hub *websocket.Hub,
	emailService mailer.IEmailService,
) INotificationService {
	return &notificationService{
		pubSub:       pubSub,
		topicName:    topicName,
		uowFactory:   uowFactory,
		hub:          hub,
		emailService: emailService,
	}
}

func (ns *notificationService) Consume(ctx context.Context) error {
	messages, err := ns.pubSub.Subscribe(ctx, ns.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			ns.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (ns *notificationService) processMessage(ctx context.Context, msg *message.Message) {
	var payload PlanArchivalMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal archival message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	uow := ns.uowFactory.NewUnitOfWork(ctx)

	plan, err := uow.DispatchPlanRepository().FindOne(ctx, specification.ByID{ID: payload.PlanId})
	if err != nil {
		log.Printf("[ERROR] Failed to get plan %s: %v", payload.PlanId, err)
		msg.Nack()
		return
	}
	if plan == nil {
		log.Printf("[ERROR] Plan not found: %s", payload.PlanId)
		msg.Ack()
		return
	}

	ns.hub.Send(payload.UserId, "dispatch_plan", dto.PlanHistoryItem{
		Id:           plan.Id,
		ActivityList: plan.ActivityList,
		Location:     plan.Location,
		Budget:       plan.Budget,
		StartTime:    plan.StartTime,
		EndTime:      plan.EndTime,
		Preferences:  plan.Preferences,
		AgentsToCall: plan.AgentsToCall,
		Notes:        plan.Notes,
		CreatedAt:    plan.CreatedAt,
	})

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: payload.UserId})
	if err != nil {
		log.Printf("[ERROR] Failed to get user %s: %v", payload.UserId, err)
		msg.Nack()
		return
	}
	if user == nil {
		log.Printf("[ERROR] User not found: %s", payload.UserId)
		msg.Ack()
		return
	}

	if user.EmailVerified {
		if err := ns.emailService.SendPlanSummary(user.Email, plan.Location, plan.ActivityList, plan.Notes); err != nil {
			// The websocket push already went out; a lost email is not
			// worth redelivering the whole message for.
			log.Printf("[ERROR] Failed to send plan summary to %s: %v", user.Email, err)
		}
	}

	log.Printf("[SUCCESS] Plan %s delivered to user %s", plan.Id, payload.UserId)
	msg.Ack()
}
