package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/contactdesk/backend/internal/model"
	"github.com/contactdesk/backend/internal/repository"
)

// ---------------------------------------------------------------------------
// Mock ContactRepository
// ---------------------------------------------------------------------------

type mockContactRepository struct {
	insertFunc func(ctx context.Context, c *model.Contact) error
	findFunc   func(ctx context.Context, email, phone string) (*model.Contact, error)
	listFunc   func(ctx context.Context) ([]model.Contact, error)
	deleteFunc func(ctx context.Context, id string) error
}

func (m *mockContactRepository) Insert(ctx context.Context, c *model.Contact) error {
	if m.insertFunc != nil {
		return m.insertFunc(ctx, c)
	}
	return nil
}

func (m *mockContactRepository) FindByEmailOrPhone(ctx context.Context, email, phone string) (*model.Contact, error) {
	if m.findFunc != nil {
		return m.findFunc(ctx, email, phone)
	}
	return nil, repository.ErrNotFound
}

func (m *mockContactRepository) List(ctx context.Context) ([]model.Contact, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return nil, nil
}

func (m *mockContactRepository) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func (m *mockContactRepository) Ping(ctx context.Context) error { return nil }

// ---------------------------------------------------------------------------
// Create tests
// ---------------------------------------------------------------------------

func TestContactService_Create_StoresNormalizedRecord(t *testing.T) {
	var inserted *model.Contact
	mock := &mockContactRepository{
		insertFunc: func(ctx context.Context, c *model.Contact) error {
			inserted = c
			c.ID = "3f1e46c4-4f89-4f6e-9d3b-0a60a2f0f001"
			c.CreatedAt = time.Now()
			c.UpdatedAt = c.CreatedAt
			return nil
		},
	}
	svc := NewContactService(mock)

	created, err := svc.Create(context.Background(), model.ContactInput{
		Name:    "  Alice  ",
		Email:   " Alice@Test.COM ",
		Phone:   " 1112223334 ",
		Message: "  hello  ",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if inserted == nil {
		t.Fatal("expected Insert to be called")
	}
	if inserted.Name != "Alice" || inserted.Email != "alice@test.com" ||
		inserted.Phone != "1112223334" || inserted.Message != "hello" {
		t.Errorf("record not normalized before insert: %+v", inserted)
	}
	if created.ID == "" || created.CreatedAt.IsZero() {
		t.Errorf("expected store-assigned id and timestamps, got %+v", created)
	}
}

func TestContactService_Create_ValidationFailsWithoutStoreAccess(t *testing.T) {
	storeTouched := false
	mock := &mockContactRepository{
		findFunc: func(ctx context.Context, email, phone string) (*model.Contact, error) {
			storeTouched = true
			return nil, repository.ErrNotFound
		},
		insertFunc: func(ctx context.Context, c *model.Contact) error {
			storeTouched = true
			return nil
		},
	}
	svc := NewContactService(mock)

	_, err := svc.Create(context.Background(), model.ContactInput{
		Name:  "   ",
		Email: "not-an-email",
		Phone: "",
	})

	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if vErr.Fields["name"] != "Name is required" {
		t.Errorf("expected name error, got %v", vErr.Fields)
	}
	if vErr.Fields["email"] != "Invalid email format" {
		t.Errorf("expected email format error, got %v", vErr.Fields)
	}
	if vErr.Fields["phone"] != "Phone is required" {
		t.Errorf("expected phone error, got %v", vErr.Fields)
	}
	if storeTouched {
		t.Error("validation failure must not reach the store")
	}
}

func TestContactService_Create_MessageTooLong(t *testing.T) {
	svc := NewContactService(&mockContactRepository{})

	_, err := svc.Create(context.Background(), model.ContactInput{
		Name:    "Alice",
		Email:   "alice@test.com",
		Phone:   "1112223334",
		Message: strings.Repeat("x", 201),
	})

	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if vErr.Fields["message"] != "Message must be 200 characters or less" {
		t.Errorf("expected message error, got %v", vErr.Fields)
	}
	if len(vErr.Fields) != 1 {
		t.Errorf("expected only the message field flagged, got %v", vErr.Fields)
	}
}

func TestContactService_Create_DuplicateEmailCaseInsensitive(t *testing.T) {
	existing := &model.Contact{
		ID:    "6be04a36-5a30-4fd9-91aa-67c04a4b2b10",
		Name:  "Alice",
		Email: "a@b.com",
		Phone: "1112223334",
	}
	mock := &mockContactRepository{
		findFunc: func(ctx context.Context, email, phone string) (*model.Contact, error) {
			// The service must query with the normalized (lower-cased) email.
			if email != "a@b.com" {
				t.Errorf("expected normalized email in lookup, got %q", email)
			}
			return existing, nil
		},
	}
	svc := NewContactService(mock)

	_, err := svc.Create(context.Background(), model.ContactInput{
		Name:  "Other",
		Email: "A@B.COM",
		Phone: "9998887776",
	})

	var dup *DuplicateError
	if !errors.As(err, &dup) {
		t.Fatalf("expected *DuplicateError, got %v", err)
	}
	if dup.Fields["email"] != "Email already exists" {
		t.Errorf("expected email cited, got %v", dup.Fields)
	}
	if _, ok := dup.Fields["phone"]; ok {
		t.Errorf("phone must not be cited, got %v", dup.Fields)
	}
}

func TestContactService_Create_DuplicatePhone(t *testing.T) {
	existing := &model.Contact{Email: "a@b.com", Phone: "1234567890"}
	mock := &mockContactRepository{
		findFunc: func(ctx context.Context, email, phone string) (*model.Contact, error) {
			return existing, nil
		},
	}
	svc := NewContactService(mock)

	_, err := svc.Create(context.Background(), model.ContactInput{
		Name:  "Other",
		Email: "other@b.com",
		Phone: "1234567890",
	})

	var dup *DuplicateError
	if !errors.As(err, &dup) {
		t.Fatalf("expected *DuplicateError, got %v", err)
	}
	if dup.Fields["phone"] != "Phone already exists" {
		t.Errorf("expected phone cited, got %v", dup.Fields)
	}
	if _, ok := dup.Fields["email"]; ok {
		t.Errorf("email must not be cited, got %v", dup.Fields)
	}
}

func TestContactService_Create_DuplicateBothFields(t *testing.T) {
	existing := &model.Contact{Email: "a@b.com", Phone: "1234567890"}
	mock := &mockContactRepository{
		findFunc: func(ctx context.Context, email, phone string) (*model.Contact, error) {
			return existing, nil
		},
	}
	svc := NewContactService(mock)

	_, err := svc.Create(context.Background(), model.ContactInput{
		Name:  "Other",
		Email: "a@b.com",
		Phone: "1234567890",
	})

	var dup *DuplicateError
	if !errors.As(err, &dup) {
		t.Fatalf("expected *DuplicateError, got %v", err)
	}
	if len(dup.Fields) != 2 {
		t.Errorf("expected both fields cited, got %v", dup.Fields)
	}
}

// A racing create can slip between the pre-check and the insert; the
// resulting unique violation must come back as the same duplicate shape,
// not as an internal error.
func TestContactService_Create_InsertRaceBecomesDuplicate(t *testing.T) {
	mock := &mockContactRepository{
		findFunc: func(ctx context.Context, email, phone string) (*model.Contact, error) {
			return nil, repository.ErrNotFound
		},
		insertFunc: func(ctx context.Context, c *model.Contact) error {
			return &repository.DuplicateError{Fields: []string{"email"}}
		},
	}
	svc := NewContactService(mock)

	_, err := svc.Create(context.Background(), model.ContactInput{
		Name:  "Alice",
		Email: "alice@test.com",
		Phone: "1112223334",
	})

	var dup *DuplicateError
	if !errors.As(err, &dup) {
		t.Fatalf("expected *DuplicateError, got %v", err)
	}
	if dup.Fields["email"] != "Email already exists" {
		t.Errorf("expected email cited from constraint, got %v", dup.Fields)
	}
}

func TestContactService_Create_StoreErrorPassesThrough(t *testing.T) {
	boom := errors.New("connection reset")
	mock := &mockContactRepository{
		findFunc: func(ctx context.Context, email, phone string) (*model.Contact, error) {
			return nil, boom
		},
	}
	svc := NewContactService(mock)

	_, err := svc.Create(context.Background(), model.ContactInput{
		Name:  "Alice",
		Email: "alice@test.com",
		Phone: "1112223334",
	})
	if !errors.Is(err, boom) {
		t.Errorf("expected store error to propagate, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// List tests
// ---------------------------------------------------------------------------

func TestContactService_List_NeverNil(t *testing.T) {
	svc := NewContactService(&mockContactRepository{})

	contacts, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if contacts == nil {
		t.Error("expected empty slice, got nil")
	}
	if len(contacts) != 0 {
		t.Errorf("expected no contacts, got %d", len(contacts))
	}
}

func TestContactService_List_Error(t *testing.T) {
	boom := errors.New("db down")
	mock := &mockContactRepository{
		listFunc: func(ctx context.Context) ([]model.Contact, error) { return nil, boom },
	}
	svc := NewContactService(mock)

	if _, err := svc.List(context.Background()); !errors.Is(err, boom) {
		t.Errorf("expected error to propagate, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Delete tests
// ---------------------------------------------------------------------------

func TestContactService_Delete_MalformedIDSkipsStore(t *testing.T) {
	storeTouched := false
	mock := &mockContactRepository{
		deleteFunc: func(ctx context.Context, id string) error {
			storeTouched = true
			return nil
		},
	}
	svc := NewContactService(mock)

	err := svc.Delete(context.Background(), "not-an-id")
	if !errors.Is(err, ErrInvalidID) {
		t.Errorf("expected ErrInvalidID, got %v", err)
	}
	if storeTouched {
		t.Error("malformed id must not reach the store")
	}
}

func TestContactService_Delete_NotFound(t *testing.T) {
	mock := &mockContactRepository{
		deleteFunc: func(ctx context.Context, id string) error {
			return repository.ErrNotFound
		},
	}
	svc := NewContactService(mock)

	err := svc.Delete(context.Background(), "6be04a36-5a30-4fd9-91aa-67c04a4b2b10")
	if !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestContactService_Delete_Success(t *testing.T) {
	var deletedID string
	mock := &mockContactRepository{
		deleteFunc: func(ctx context.Context, id string) error {
			deletedID = id
			return nil
		},
	}
	svc := NewContactService(mock)

	id := "6be04a36-5a30-4fd9-91aa-67c04a4b2b10"
	if err := svc.Delete(context.Background(), id); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deletedID != id {
		t.Errorf("expected delete of %s, got %s", id, deletedID)
	}
}
