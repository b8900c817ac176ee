package query

import (
	"math"
	"strconv"

	"storefront/internal/apperror"
)

var productSortColumns = map[string]string{
	"name":      "name",
	"price":     "price",
	"category":  "category",
	"createdAt": "created_at",
}

// ProductFilter is a parsed product listing request.
type ProductFilter struct {
	Search      string
	Category    string
	Subcategory string
	MinPrice    *float64
	MaxPrice    *float64
	Featured    *bool
	Sort        Sort
	Page        Page
}

// ParseProductFilter validates the product listing parameters.
func ParseProductFilter(p Params) (ProductFilter, error) {
	f := ProductFilter{
		Search:      p.Get("search"),
		Category:    p.Get("category"),
		Subcategory: p.Get("subcategory"),
		Sort:        parseSort(p, productSortColumns),
		Page:        parsePage(p),
	}

	var err error
	if f.MinPrice, err = parsePrice(p.Get("minPrice"), "minPrice"); err != nil {
		return ProductFilter{}, err
	}
	if f.MaxPrice, err = parsePrice(p.Get("maxPrice"), "maxPrice"); err != nil {
		return ProductFilter{}, err
	}
	if raw := p.Get("featured"); raw != "" {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return ProductFilter{}, apperror.Validation(apperror.CodeInvalidFeatured, "Featured must be a boolean")
		}
		f.Featured = &b
	}
	return f, nil
}

func parsePrice(raw, name string) (*float64, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, apperror.Validation(apperror.CodeInvalidPriceRange, name+" must be a number")
	}
	return &v, nil
}

// Predicates returns the active product conditions.
func (f ProductFilter) Predicates() []Predicate {
	var preds []Predicate
	if f.Search != "" {
		preds = append(preds, containsAny(f.Search, "name", "category", "subcategory", "fabric"))
	}
	if f.Category != "" {
		preds = append(preds, equals("category", f.Category))
	}
	if f.Subcategory != "" {
		preds = append(preds, equals("subcategory", f.Subcategory))
	}
	if f.MinPrice != nil {
		preds = append(preds, Predicate{SQL: "price >= ?", Args: []any{*f.MinPrice}})
	}
	if f.MaxPrice != nil {
		preds = append(preds, Predicate{SQL: "price <= ?", Args: []any{*f.MaxPrice}})
	}
	if f.Featured != nil {
		preds = append(preds, equals("featured", *f.Featured))
	}
	return preds
}

func (f ProductFilter) Ordering() Sort { return f.Sort }

func (f ProductFilter) Window() Page { return f.Page }
