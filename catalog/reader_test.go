package catalog

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tfboppong-code/joeythebrand/models"
)

// fakeSource lets tests push updates and errors by hand.
type fakeSource struct {
	onUpdate func([]RawDoc)
	onError  func(error)
	canceled bool
}

func (f *fakeSource) Subscribe(onUpdate func([]RawDoc), onError func(error)) func() {
	f.onUpdate = onUpdate
	f.onError = onError
	return func() { f.canceled = true }
}

func doc(id, name, gender, category string, price float64) RawDoc {
	return RawDoc{ID: id, Data: map[string]interface{}{
		"name":     name,
		"gender":   gender,
		"category": category,
		"price":    price,
		"image":    "/products/" + id + ".jpg",
	}}
}

func TestReaderNormalizesSnapshots(t *testing.T) {
	src := &fakeSource{}
	r := NewReader(src)

	src.onUpdate([]RawDoc{doc("p1", "Shirt", "men", "Shirts", 80)})

	ps := r.Products()
	require.Len(t, ps, 1)
	assert.Equal(t, "p1", ps[0].ID)
	assert.Equal(t, []string{"/products/p1.jpg"}, ps[0].Images)
	assert.Equal(t, models.DefaultDescription, ps[0].Description)
	assert.NoError(t, r.Err())
}

func TestReaderReplacesWholesale(t *testing.T) {
	src := &fakeSource{}
	r := NewReader(src)

	src.onUpdate([]RawDoc{
		doc("p1", "Shirt", "men", "Shirts", 80),
		doc("p2", "Skirt", "women", "Skirts", 120),
	})
	src.onUpdate([]RawDoc{doc("p3", "Kaftan", "men", "Kaftans", 200)})

	ps := r.Products()
	require.Len(t, ps, 1, "later snapshot fully replaces the earlier one")
	assert.Equal(t, "p3", ps[0].ID)
}

func TestReaderErrorState(t *testing.T) {
	src := &fakeSource{}
	r := NewReader(src)

	src.onUpdate([]RawDoc{doc("p1", "Shirt", "men", "Shirts", 80)})
	src.onError(errors.New("listen failed"))

	assert.Error(t, r.Err())
	assert.Empty(t, r.Products(), "error state comes with an empty list")

	// A later snapshot recovers.
	src.onUpdate([]RawDoc{doc("p1", "Shirt", "men", "Shirts", 80)})
	assert.NoError(t, r.Err())
	assert.Len(t, r.Products(), 1)
}

func TestFilterIsCaseAndWhitespaceInsensitive(t *testing.T) {
	src := &fakeSource{}
	r := NewReader(src)
	src.onUpdate([]RawDoc{
		doc("p1", "Shirt A", "men", "Shirts", 80),
		doc("p2", "Shirt B", "men", " shirts ", 90),
		doc("p3", "Shirt C", "men", "SHIRTS", 95),
		doc("p4", "Skirt", "women", "Skirts", 120),
		doc("p5", "Trouser", "men", "Trousers", 150),
	})

	for _, key := range []string{"Shirts", " shirts ", "SHIRTS"} {
		got := r.Filter(models.GenderMen, key)
		assert.Len(t, got, 3, "filter key %q", key)
	}

	assert.Empty(t, r.Filter(models.GenderWomen, "Shirts"))
	assert.Len(t, r.Filter(models.GenderMen, ""), 4, "empty category matches the whole gender")
	assert.Len(t, r.Filter("", "Skirts"), 1, "empty gender matches across genders")
	assert.Len(t, r.Filter("", ""), 5)
}

func TestProductLookup(t *testing.T) {
	src := &fakeSource{}
	r := NewReader(src)
	src.onUpdate([]RawDoc{doc("p1", "Shirt", "men", "Shirts", 80)})

	p, ok := r.Product("p1")
	require.True(t, ok)
	assert.Equal(t, 80.0, p.Price)

	_, ok = r.Product("nope")
	assert.False(t, ok)
}

func TestOnUpdateAndClose(t *testing.T) {
	src := &fakeSource{}
	r := NewReader(src)

	var got [][]models.Product
	cancel := r.OnUpdate(func(ps []models.Product) { got = append(got, ps) })

	src.onUpdate([]RawDoc{doc("p1", "Shirt", "men", "Shirts", 80)})
	require.Len(t, got, 1)

	cancel()
	src.onUpdate([]RawDoc{doc("p2", "Skirt", "women", "Skirts", 120)})
	assert.Len(t, got, 1, "canceled subscriber no longer notified")

	r.Close()
	assert.True(t, src.canceled, "closing the reader tears the subscription down")
}
