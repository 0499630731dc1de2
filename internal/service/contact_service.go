package service

import (
	"context"
	"errors"

	"github.com/travelxplore/travelxplore-api/internal/dto"
	"github.com/travelxplore/travelxplore-api/internal/models"
	"github.com/travelxplore/travelxplore-api/internal/repository"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

var ErrMessageNotFound = errors.New("message not found")

type ContactService interface {
	Submit(ctx context.Context, req dto.ContactRequest) (*models.ContactMessage, error)
	List(ctx context.Context, status *models.MessageStatus, limit int) ([]models.ContactMessage, error)
	Get(ctx context.Context, id uint) (*models.ContactMessage, error)
	UpdateStatus(ctx context.Context, id uint, status models.MessageStatus) error
	Delete(ctx context.Context, id uint) error
	Stats(ctx context.Context) (dto.ContactStats, error)
}

type contactService struct {
	messages repository.ContactRepository
}

func NewContactService(messages repository.ContactRepository) ContactService {
	return &contactService{messages: messages}
}

func (s *contactService) Submit(ctx context.Context, req dto.ContactRequest) (*models.ContactMessage, error) {
	msg := &models.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
		Status:  models.MessageNew,
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

func (s *contactService) List(ctx context.Context, status *models.MessageStatus, limit int) ([]models.ContactMessage, error) {
	return s.messages.List(ctx, status, limit)
}

// Get returns the message and marks it read, so opening it in the admin
// dashboard clears it from the unread count.
func (s *contactService) Get(ctx context.Context, id uint) (*models.ContactMessage, error) {
	msg, err := s.messages.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMessageNotFound
		}
		return nil, err
	}

	if msg.Status == models.MessageNew {
		if _, err := s.messages.UpdateStatus(ctx, id, models.MessageRead); err != nil {
			return nil, err
		}
		msg.Status = models.MessageRead
	}
	return msg, nil
}

func (s *contactService) UpdateStatus(ctx context.Context, id uint, status models.MessageStatus) error {
	affected, err := s.messages.UpdateStatus(ctx, id, status)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrMessageNotFound
	}
	return nil
}

func (s *contactService) Delete(ctx context.Context, id uint) error {
	affected, err := s.messages.Delete(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrMessageNotFound
	}
	return nil
}

// Stats runs the three counts concurrently; result order is not significant.
func (s *contactService) Stats(ctx context.Context) (dto.ContactStats, error) {
	var stats dto.ContactStats

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		total, err := s.messages.Count(ctx)
		stats.Total = total
		return err
	})
	g.Go(func() error {
		newCount, err := s.messages.CountByStatus(ctx, models.MessageNew)
		stats.New = newCount
		return err
	})
	g.Go(func() error {
		replied, err := s.messages.CountByStatus(ctx, models.MessageReplied)
		stats.Replied = replied
		return err
	})

	if err := g.Wait(); err != nil {
		return dto.ContactStats{}, err
	}
	return stats, nil
}
