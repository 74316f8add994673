package client

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/contactdesk/backend/internal/model"
	"github.com/contactdesk/backend/internal/validate"
)

// SortOrder selects the display ordering of the in-memory list. It is a
// pure display transform: it never affects requests or the stored order.
type SortOrder string

const (
	SortNewest SortOrder = "newest"
	SortOldest SortOrder = "oldest"
)

// successBannerTTL is how long transient success banners stay visible.
const successBannerTTL = time.Second

// ErrSubmitInFlight is returned when Submit is called before a previous
// submission resolved. Refusing resubmission is the only backpressure the
// controller applies; requests are never canceled or retried.
var ErrSubmitInFlight = errors.New("submission already in flight")

// Controller reconciles a local in-memory contact list with the server.
// Creates and deletes are applied optimistically and rolled back when the
// server rejects them.
type Controller struct {
	api *Client

	mu          sync.Mutex
	contacts    []model.Contact
	loading     bool
	loadError   string
	deleteError string
	formError   string
	fieldErrors map[string]string
	success     string
	submitting  bool

	// Single-slot banner timer: arming a new clear stops the previous one
	// and the generation guard keeps a late-firing timer from wiping a
	// newer banner.
	bannerTTL   time.Duration
	bannerTimer *time.Timer
	bannerGen   uint64
}

// NewController creates a Controller over the given API client.
func NewController(api *Client) *Controller {
	return &Controller{api: api, bannerTTL: successBannerTTL}
}

// State is a point-in-time snapshot of the controller's UI state.
type State struct {
	Contacts    []model.Contact
	Loading     bool
	LoadError   string
	DeleteError string
	FormError   string
	FieldErrors map[string]string
	Success     string
	Submitting  bool
}

// State returns a snapshot safe to read concurrently with mutations.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	contacts := make([]model.Contact, len(c.contacts))
	copy(contacts, c.contacts)

	var fieldErrs map[string]string
	if c.fieldErrors != nil {
		fieldErrs = make(map[string]string, len(c.fieldErrors))
		for k, v := range c.fieldErrors {
			fieldErrs[k] = v
		}
	}

	return State{
		Contacts:    contacts,
		Loading:     c.loading,
		LoadError:   c.loadError,
		DeleteError: c.deleteError,
		FormError:   c.formError,
		FieldErrors: fieldErrs,
		Success:     c.success,
		Submitting:  c.submitting,
	}
}

// Load fetches the list from the server, flagging Loading while the call is
// in flight. A failure leaves a load-error banner that persists until the
// next successful fetch.
func (c *Controller) Load(ctx context.Context) error {
	c.mu.Lock()
	c.loading = true
	c.mu.Unlock()

	contacts, err := c.api.List(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false
	if err != nil {
		c.loadError = messageOf(err, "Failed to fetch contacts")
		return err
	}
	if contacts == nil {
		contacts = []model.Contact{}
	}
	c.contacts = contacts
	c.loadError = ""
	return nil
}

// Submit validates locally, then creates the contact on the server. Local
// validation failures never reach the network. Server-side field errors are
// merged into the local display; on success the created record is prepended
// optimistically (or the list re-fetched when the response carried no
// record) and a transient success banner is shown. Resetting the form
// fields is the caller's concern.
func (c *Controller) Submit(ctx context.Context, in model.ContactInput) error {
	c.mu.Lock()
	if c.submitting {
		c.mu.Unlock()
		return ErrSubmitInFlight
	}
	if errs := validate.Contact(in); len(errs) > 0 {
		c.fieldErrors = errs
		c.mu.Unlock()
		return &APIError{Message: "Validation failed", FieldErrors: errs}
	}
	c.submitting = true
	c.formError = ""
	c.fieldErrors = nil
	c.mu.Unlock()

	created, err := c.api.Create(ctx, in)
	if err != nil {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.submitting = false
		c.formError = messageOf(err, "Failed to submit contact")
		var apiErr *APIError
		if errors.As(err, &apiErr) && len(apiErr.FieldErrors) > 0 {
			merged := make(map[string]string, len(apiErr.FieldErrors))
			for k, v := range apiErr.FieldErrors {
				merged[k] = v
			}
			c.fieldErrors = merged
		}
		return err
	}

	if created != nil {
		c.mu.Lock()
		c.contacts = append([]model.Contact{*created}, c.contacts...)
		c.mu.Unlock()
	} else {
		// Server omitted the record: reconcile with a full re-fetch.
		_ = c.Load(ctx)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.submitting = false
	c.loadError = ""
	c.deleteError = ""
	c.showSuccessLocked("Contact submitted successfully.")
	return nil
}

// Delete removes the contact from the local list immediately, then calls
// the server. On failure the list is rolled back to its pre-delete snapshot
// and an error banner shown.
func (c *Controller) Delete(ctx context.Context, id string) error {
	c.mu.Lock()
	c.deleteError = ""
	snapshot := c.contacts
	next := make([]model.Contact, 0, len(snapshot))
	for _, ct := range snapshot {
		if ct.ID != id {
			next = append(next, ct)
		}
	}
	c.contacts = next
	c.mu.Unlock()

	err := c.api.Delete(ctx, id)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.contacts = snapshot
		c.deleteError = messageOf(err, "Failed to delete contact")
		return err
	}
	c.loadError = ""
	c.showSuccessLocked("Contact deleted successfully.")
	return nil
}

// Contacts returns a sorted copy of the in-memory list for display.
func (c *Controller) Contacts(order SortOrder) []model.Contact {
	c.mu.Lock()
	list := make([]model.Contact, len(c.contacts))
	copy(list, c.contacts)
	c.mu.Unlock()

	sort.SliceStable(list, func(i, j int) bool {
		if order == SortOldest {
			return list[i].CreatedAt.Before(list[j].CreatedAt)
		}
		return list[j].CreatedAt.Before(list[i].CreatedAt)
	})
	return list
}

// showSuccessLocked sets the transient success banner and (re)arms the
// auto-clear. Callers must hold mu.
func (c *Controller) showSuccessLocked(msg string) {
	c.success = msg
	if c.bannerTimer != nil {
		c.bannerTimer.Stop()
	}
	c.bannerGen++
	gen := c.bannerGen
	c.bannerTimer = time.AfterFunc(c.bannerTTL, func() {
		c.mu.Lock()
		if c.bannerGen == gen {
			c.success = ""
		}
		c.mu.Unlock()
	})
}

// messageOf extracts the server's message from an *APIError, falling back
// for transport-level failures.
func messageOf(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
