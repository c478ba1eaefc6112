package cart

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"

	"github.com/tfboppong-code/joeythebrand/models"
)

var ErrNoScope = errors.New("cart: no identity scope")

// GuestScopePrefix marks anonymous scopes. A guest cart is persisted only for
// the lifetime of its session; it is dropped when the scope ends.
const GuestScopePrefix = "guest_"

// IsGuestScope reports whether a scope belongs to an anonymous session.
func IsGuestScope(scope string) bool {
	return strings.HasPrefix(scope, GuestScopePrefix)
}

// Store holds the cart for one identity scope: an ordered sequence of lines
// with derived count and total. Every mutation persists the full line
// sequence under the scope's storage key before returning. Mutations are
// serialized; no two interleave mid-update.
type Store struct {
	mu      sync.Mutex
	scope   string
	lines   []models.CartLine
	storage Storage

	// schedule runs f on a later tick; the reset after losing the scope is
	// deferred rather than applied inside the caller's update.
	schedule func(func())
}

func NewStore(storage Storage) *Store {
	return &Store{
		storage:  storage,
		schedule: func(f func()) { go f() },
	}
}

// SetScope switches the store to a new identity scope and reloads that
// scope's persisted lines. Lines never carry over between scopes. Switching
// to the empty scope resets the cart (deferred one tick) and drops the
// persisted copy of a guest scope.
func (s *Store) SetScope(ctx context.Context, scope string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if scope == s.scope {
		return nil
	}
	prev := s.scope

	if scope == "" {
		s.scope = ""
		s.schedule(func() {
			s.mu.Lock()
			if s.scope == "" {
				s.lines = nil
			}
			s.mu.Unlock()
		})
		if IsGuestScope(prev) {
			if err := s.storage.Delete(ctx, prev); err != nil {
				log.Printf("⚠️ failed to drop guest cart %s: %v", prev, err)
			}
		}
		return nil
	}

	// The scope is committed only after its lines load, so a failed switch
	// leaves the store on its previous scope and a retry loads again.
	lines, err := s.storage.Load(ctx, scope)
	if err != nil {
		return err
	}
	s.scope = scope
	s.lines = lines
	return nil
}

func (s *Store) Scope() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scope
}

// Add puts one unit of the product in the cart: an existing line's quantity
// grows by exactly 1, otherwise a new line with quantity 1 is appended. The
// product's price is captured as the line's unit price at this moment.
func (s *Store) Add(ctx context.Context, p models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.scope == "" {
		return ErrNoScope
	}

	for i := range s.lines {
		if s.lines[i].ProductID == p.ID {
			s.lines[i].Quantity++
			return s.persist(ctx)
		}
	}

	image := ""
	if len(p.Images) > 0 {
		image = p.Images[0]
	}
	s.lines = append(s.lines, models.CartLine{
		ProductID: p.ID,
		Name:      p.Name,
		UnitPrice: p.Price,
		Image:     image,
		Quantity:  1,
	})
	return s.persist(ctx)
}

// Remove deletes the whole line for a product id. Removing an absent product
// is a no-op.
func (s *Store) Remove(ctx context.Context, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.scope == "" {
		return ErrNoScope
	}

	for i := range s.lines {
		if s.lines[i].ProductID == productID {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			return s.persist(ctx)
		}
	}
	return nil
}

// Clear empties the cart and removes its persisted representation.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.scope == "" {
		return ErrNoScope
	}
	s.lines = nil
	return s.storage.Delete(ctx, s.scope)
}

// Lines returns a copy of the current line sequence.
func (s *Store) Lines() []models.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.CloneLines(s.lines)
}

// Count is the sum of line quantities, recomputed from the lines.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.CountLines(s.lines)
}

// Total is the sum of unit price times quantity, recomputed from the lines.
func (s *Store) Total() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.TotalAmount(s.lines)
}

func (s *Store) persist(ctx context.Context) error {
	return s.storage.Save(ctx, s.scope, models.CloneLines(s.lines))
}
