package service

import (
	"context"

	"github.com/contactdesk/backend/internal/model"
)

// ContactService defines the business logic over the contact store.
type ContactService interface {
	// List returns all contacts newest first.
	List(ctx context.Context) ([]model.Contact, error)

	// Create validates and stores a new contact, returning the created
	// record with store-assigned id and timestamps. Invalid input fails
	// with *ValidationError and conflicting input with *DuplicateError;
	// neither writes to the store.
	Create(ctx context.Context, in model.ContactInput) (*model.Contact, error)

	// Delete removes a contact by id. Malformed ids fail with ErrInvalidID
	// before any store access; unknown ids with repository.ErrNotFound.
	Delete(ctx context.Context, id string) error
}
