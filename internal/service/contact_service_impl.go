package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/contactdesk/backend/internal/model"
	"github.com/contactdesk/backend/internal/repository"
	"github.com/contactdesk/backend/internal/validate"
)

// contactServiceImpl is the production implementation of ContactService.
type contactServiceImpl struct {
	repo repository.ContactRepository
}

// NewContactService creates a ContactService backed by the given repository.
func NewContactService(repo repository.ContactRepository) ContactService {
	return &contactServiceImpl{repo: repo}
}

// List returns all contacts newest first. Never returns a nil slice.
func (s *contactServiceImpl) List(ctx context.Context) ([]model.Contact, error) {
	contacts, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if contacts == nil {
		contacts = []model.Contact{}
	}
	return contacts, nil
}

// Create runs the validate -> conflict pre-check -> insert pipeline.
//
// The pre-check and the insert are not atomic: a concurrent create with the
// same email or phone can still trip the store's unique index, which Insert
// reports as *repository.DuplicateError and gets translated into the same
// *DuplicateError shape as the pre-check path. The pre-check is only a fast
// path; correctness rests on the constraint.
func (s *contactServiceImpl) Create(ctx context.Context, in model.ContactInput) (*model.Contact, error) {
	if errs := validate.Contact(in); len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}

	norm := validate.Normalize(in)

	existing, err := s.repo.FindByEmailOrPhone(ctx, norm.Email, norm.Phone)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		fields := make(map[string]string)
		if strings.EqualFold(existing.Email, norm.Email) {
			fields["email"] = "Email already exists"
		}
		if existing.Phone == norm.Phone {
			fields["phone"] = "Phone already exists"
		}
		return nil, &DuplicateError{Fields: fields}
	}

	contact := &model.Contact{
		Name:    norm.Name,
		Email:   norm.Email,
		Phone:   norm.Phone,
		Message: norm.Message,
	}
	if err := s.repo.Insert(ctx, contact); err != nil {
		var dup *repository.DuplicateError
		if errors.As(err, &dup) {
			fields := make(map[string]string)
			if dup.Has("email") {
				fields["email"] = "Email already exists"
			}
			if dup.Has("phone") {
				fields["phone"] = "Phone already exists"
			}
			return nil, &DuplicateError{Fields: fields}
		}
		return nil, err
	}
	return contact, nil
}

// Delete removes a contact by id after checking the id is a well-formed
// UUID. Deletion is unconditional; there is no ownership check.
func (s *contactServiceImpl) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrInvalidID
	}
	return s.repo.Delete(ctx, id)
}
