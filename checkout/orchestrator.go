package checkout

import (
	"context"
	"errors"
	"log"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/tfboppong-code/joeythebrand/cart"
	"github.com/tfboppong-code/joeythebrand/models"
)

// Currency is the store's trading currency; its minor unit is the pesewa
// (1/100).
const Currency = "GHS"

const minorUnitFactor = 100

var (
	ErrEmptyCart        = errors.New("checkout: cart is empty")
	ErrEmailRequired    = errors.New("checkout: email is required")
	ErrUnknownReference = errors.New("checkout: unknown payment reference")
)

// PaymentParams is what the hosted payment handler is invoked with.
type PaymentParams struct {
	PublicKey string
	Email     string
	Amount    int64 // minor units
	Currency  string
}

// PaymentHandler opens the gateway's hosted payment step and returns the
// page the customer completes it on, plus the transaction reference the
// success callback will carry.
type PaymentHandler interface {
	Open(ctx context.Context, p PaymentParams) (authorizationURL, reference string, err error)
}

// VerifyResult is the outcome of the server-side transaction-status lookup.
// Success false with a nil error is a well-formed "not successful" answer,
// not a fault.
type VerifyResult struct {
	Success bool                   `json:"success"`
	Data    map[string]interface{} `json:"transactionData,omitempty"`
}

// Verifier performs the server-side verification round trip for a reference.
type Verifier interface {
	Verify(ctx context.Context, reference string) (VerifyResult, error)
}

// OrderWriter persists the order record.
type OrderWriter interface {
	Create(ctx context.Context, order models.Order) error
}

// Contact is the customer-supplied info captured on the order.
type Contact struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// Orchestrator runs the checkout sequence: cart snapshot, hosted payment,
// server-side verification, order record, cart clearing. A payment that does
// not verify leaves the cart untouched and writes nothing.
type Orchestrator struct {
	publicKey string
	payments  PaymentHandler
	verifier  Verifier
	orders    OrderWriter

	mu      sync.Mutex
	pending map[string]pendingCheckout

	now func() time.Time
}

type pendingCheckout struct {
	store   *cart.Store
	contact Contact
}

func New(publicKey string, payments PaymentHandler, verifier Verifier, orders OrderWriter) *Orchestrator {
	return &Orchestrator{
		publicKey: publicKey,
		payments:  payments,
		verifier:  verifier,
		orders:    orders,
		pending:   map[string]pendingCheckout{},
		now:       time.Now,
	}
}

// MinorUnits converts a major-unit amount to the gateway's integer
// representation.
func MinorUnits(amount float64) int64 {
	return int64(math.Round(amount * minorUnitFactor))
}

// Begin validates the cart and contact email, then invokes the hosted
// payment handler with the computed minor-unit amount. A validation failure
// performs no side effect.
func (o *Orchestrator) Begin(ctx context.Context, store *cart.Store, contact Contact) (authorizationURL, reference string, err error) {
	if strings.TrimSpace(contact.Email) == "" {
		return "", "", ErrEmailRequired
	}
	if store.Count() == 0 {
		return "", "", ErrEmptyCart
	}

	url, ref, err := o.payments.Open(ctx, PaymentParams{
		PublicKey: o.publicKey,
		Email:     contact.Email,
		Amount:    MinorUnits(store.Total()),
		Currency:  Currency,
	})
	if err != nil {
		return "", "", err
	}

	o.mu.Lock()
	o.pending[ref] = pendingCheckout{store: store, contact: contact}
	o.mu.Unlock()

	return url, ref, nil
}

// Confirm is the gateway's success callback: it verifies the reference
// server-side and, only on a verified success, writes exactly one order
// record with the pre-clear cart contents and then clears the cart.
//
// ok false with a nil error is the well-formed "payment not successful"
// outcome: no order, cart unchanged.
func (o *Orchestrator) Confirm(ctx context.Context, reference string) (ok bool, err error) {
	o.mu.Lock()
	p, found := o.pending[reference]
	o.mu.Unlock()
	if !found {
		return false, ErrUnknownReference
	}

	res, err := o.verifier.Verify(ctx, reference)
	if err != nil {
		return false, err
	}
	if !res.Success {
		o.release(reference)
		return false, nil
	}

	order := models.Order{
		Reference: reference,
		Items:     p.store.Lines(),
		ItemCount: p.store.Count(),
		Amount:    p.store.Total(),
		Currency:  Currency,
		Email:     p.contact.Email,
		Name:      p.contact.Name,
		Phone:     p.contact.Phone,
		CreatedAt: o.now(),
	}
	if err := o.orders.Create(ctx, order); err != nil {
		return false, err
	}

	if err := p.store.Clear(ctx); err != nil {
		log.Printf("⚠️ order %s placed but cart clear failed: %v", reference, err)
	}
	o.release(reference)
	return true, nil
}

// Close is the gateway's close callback: it releases the processing state
// without mutating the cart.
func (o *Orchestrator) Close(reference string) {
	o.release(reference)
}

// Processing reports whether a reference has an open checkout.
func (o *Orchestrator) Processing(reference string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	_, found := o.pending[reference]
	return found
}

func (o *Orchestrator) release(reference string) {
	o.mu.Lock()
	delete(o.pending, reference)
	o.mu.Unlock()
}
