package service

import (
	"context"
	"errors"

	"github.com/travelxplore/travelxplore-api/internal/models"
	"github.com/travelxplore/travelxplore-api/internal/repository"
)

var ErrSubscriberNotFound = errors.New("subscriber not found")

type NewsletterService interface {
	Subscribe(ctx context.Context, email string) error
	List(ctx context.Context) ([]models.NewsletterSubscriber, error)
	Delete(ctx context.Context, id uint) error
}

type newsletterService struct {
	subscribers repository.NewsletterRepository
	events      Notifier
}

func NewNewsletterService(subscribers repository.NewsletterRepository, events Notifier) NewsletterService {
	return &newsletterService{subscribers: subscribers, events: events}
}

// Subscribe upserts the subscriber; the welcome email only goes out on the
// first subscription, not on repeats.
func (s *newsletterService) Subscribe(ctx context.Context, email string) error {
	created, err := s.subscribers.Subscribe(ctx, email)
	if err != nil {
		return err
	}

	if created && s.events != nil {
		s.events.NewsletterSubscribed(ctx, email)
	}
	return nil
}

func (s *newsletterService) List(ctx context.Context) ([]models.NewsletterSubscriber, error) {
	return s.subscribers.List(ctx)
}

func (s *newsletterService) Delete(ctx context.Context, id uint) error {
	affected, err := s.subscribers.Delete(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrSubscriberNotFound
	}
	return nil
}
