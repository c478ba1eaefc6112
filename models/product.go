package models

import (
	"strconv"
	"strings"
)

type Gender string

const (
	GenderMen   Gender = "men"
	GenderWomen Gender = "women"
)

// DefaultDescription is shown when a stored product has no description.
const DefaultDescription = "No description available."

// Product is the canonical catalog entry served to the shop and the admin
// console. Stored product documents are heterogeneous (legacy single-image
// fields, missing gender or description); ProductFromDoc is the one place
// those shapes are unified.
type Product struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Price       float64  `json:"price"`
	Images      []string `json:"images"`
	Gender      Gender   `json:"gender"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
}

// ProductFromDoc normalizes a raw product document into a Product.
// Defaulting rules:
//   - images: "images" array if present, else a single-element slice from the
//     legacy "image" (or older "img") field, else a single empty entry
//   - gender: "women" only when stored exactly as "women", otherwise "men"
//   - description: DefaultDescription when missing
func ProductFromDoc(id string, raw map[string]interface{}) Product {
	p := Product{
		ID:          id,
		Name:        asString(raw["name"]),
		Price:       asFloat(raw["price"]),
		Category:    asString(raw["category"]),
		Description: DefaultDescription,
	}

	if imgs := asStringSlice(raw["images"]); len(imgs) > 0 {
		p.Images = imgs
	} else {
		single := asString(raw["image"])
		if single == "" {
			single = asString(raw["img"])
		}
		p.Images = []string{single}
	}

	if asString(raw["gender"]) == string(GenderWomen) {
		p.Gender = GenderWomen
	} else {
		p.Gender = GenderMen
	}

	if desc := asString(raw["description"]); desc != "" {
		p.Description = desc
	}

	return p
}

// NormalizeKey maps category (and gender) strings to their filter key:
// trimmed, lower-cased, inner whitespace collapsed to single spaces.
func NormalizeKey(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// ParseGender accepts the admin console's two-value enumeration.
func ParseGender(s string) (Gender, bool) {
	switch NormalizeKey(s) {
	case string(GenderMen):
		return GenderMen, true
	case string(GenderWomen):
		return GenderWomen, true
	}
	return "", false
}

// CoercePrice converts admin price input to a non-negative amount.
// Parse failures and negative values coerce to 0.
func CoercePrice(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

// CanonicalImagePath rewrites a bare filename into its public path.
// Absolute references are kept as-is.
func CanonicalImagePath(name string) string {
	name = strings.TrimSpace(name)
	if name == "" || strings.HasPrefix(name, "/") {
		return name
	}
	return "/products/" + name
}

func asString(v interface{}) string {
	s, _ := v.(string)
	return s
}

// Firestore decodes numbers as int64 or float64 depending on how they were
// written; accept both.
func asFloat(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	case int:
		return float64(n)
	}
	return 0
}

func asStringSlice(v interface{}) []string {
	items, ok := v.([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		if s, ok := it.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
