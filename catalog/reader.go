package catalog

import (
	"sync"

	"github.com/tfboppong-code/joeythebrand/models"
)

// RawDoc is one product document as stored, before normalization.
type RawDoc struct {
	ID   string
	Data map[string]interface{}
}

// Source is a live, push-driven view of the product collection. Updates may
// arrive at any time until the returned cancel is called.
type Source interface {
	Subscribe(onUpdate func(docs []RawDoc), onError func(err error)) (cancel func())
}

// Reader keeps the latest normalized product snapshot from a Source. Each
// update replaces the snapshot wholesale (last write wins). A subscription
// failure leaves the reader in an error state with an empty list.
type Reader struct {
	mu       sync.RWMutex
	products []models.Product
	err      error

	subs    map[int]func([]models.Product)
	nextSub int

	cancel func()
}

func NewReader(src Source) *Reader {
	r := &Reader{subs: map[int]func([]models.Product){}}
	r.cancel = src.Subscribe(r.apply, r.fail)
	return r
}

// Close tears down the underlying subscription.
func (r *Reader) Close() {
	if r.cancel != nil {
		r.cancel()
	}
}

func (r *Reader) apply(docs []RawDoc) {
	list := make([]models.Product, 0, len(docs))
	for _, d := range docs {
		list = append(list, models.ProductFromDoc(d.ID, d.Data))
	}

	r.mu.Lock()
	r.products = list
	r.err = nil
	subs := make([]func([]models.Product), 0, len(r.subs))
	for _, fn := range r.subs {
		subs = append(subs, fn)
	}
	r.mu.Unlock()

	for _, fn := range subs {
		fn(list)
	}
}

func (r *Reader) fail(err error) {
	r.mu.Lock()
	r.products = nil
	r.err = err
	r.mu.Unlock()
}

// Products returns a copy of the current snapshot.
func (r *Reader) Products() []models.Product {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Product, len(r.products))
	copy(out, r.products)
	return out
}

// Err reports the subscription error state, if any.
func (r *Reader) Err() error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.err
}

// Product looks up one product by id in the current snapshot.
func (r *Reader) Product(id string) (models.Product, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.products {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}

// Filter returns the products matching a gender and category. Category
// matching is case and whitespace insensitive; an empty gender or category
// matches all.
func (r *Reader) Filter(gender models.Gender, category string) []models.Product {
	key := models.NormalizeKey(category)

	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []models.Product{}
	for _, p := range r.products {
		if gender != "" && p.Gender != gender {
			continue
		}
		if key != "" && models.NormalizeKey(p.Category) != key {
			continue
		}
		out = append(out, p)
	}
	return out
}

// OnUpdate registers a callback for every new snapshot. The returned cancel
// removes it; callers must cancel before their own teardown.
func (r *Reader) OnUpdate(fn func([]models.Product)) (cancel func()) {
	r.mu.Lock()
	id := r.nextSub
	r.nextSub++
	r.subs[id] = fn
	r.mu.Unlock()

	return func() {
		r.mu.Lock()
		delete(r.subs, id)
		r.mu.Unlock()
	}
}
