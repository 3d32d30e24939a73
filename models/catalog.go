package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Localized is a text value in every language the site is published in.
type Localized struct {
	En string `json:"en"`
	Et string `json:"et"`
	Ru string `json:"ru"`
}

func (l Localized) Complete() bool {
	return strings.TrimSpace(l.En) != "" &&
		strings.TrimSpace(l.Et) != "" &&
		strings.TrimSpace(l.Ru) != ""
}

func (l Localized) IsZero() bool {
	return l.En == "" && l.Et == "" && l.Ru == ""
}

type Category struct {
	ID        int64     `json:"id"`
	Slug      string    `json:"slug"`
	Name      Localized `json:"name"`
	SortOrder int       `json:"sortOrder"`
}

type CategoryRequest struct {
	Slug      string    `json:"slug" binding:"required"`
	Name      Localized `json:"name"`
	SortOrder int       `json:"sortOrder"`
}

// DefaultCategories is served when no database is configured.
func DefaultCategories() []Category {
	return []Category{
		{ID: 1, Slug: "appetizers", Name: Localized{En: "Appetizers", Et: "Eelroad", Ru: "Закуски"}, SortOrder: 1},
		{ID: 2, Slug: "wok", Name: Localized{En: "Wok Dishes", Et: "Wok road", Ru: "Вок блюда"}, SortOrder: 2},
		{ID: 3, Slug: "kebab", Name: Localized{En: "Kebab", Et: "Kebab", Ru: "Кебаб"}, SortOrder: 3},
		{ID: 4, Slug: "sides", Name: Localized{En: "Sides", Et: "Lisandid", Ru: "Гарниры"}, SortOrder: 4},
		{ID: 5, Slug: "drinks", Name: Localized{En: "Drinks", Et: "Joogid", Ru: "Напитки"}, SortOrder: 5},
	}
}

type MenuItem struct {
	ID          int64           `json:"id"`
	Name        Localized       `json:"name"`
	Description *Localized      `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Image       string          `json:"image"`
	Spicy       bool            `json:"spicy"`
	ExtraSpicy  bool            `json:"extraSpicy"`
	Vegan       bool            `json:"vegan"`
	IsActive    bool            `json:"isActive"`
	SortOrder   int             `json:"sortOrder"`
}

type MenuItemRequest struct {
	Name        Localized       `json:"name"`
	Description *Localized      `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category" binding:"required"`
	Image       string          `json:"image"`
	Spicy       bool            `json:"spicy"`
	ExtraSpicy  bool            `json:"extraSpicy"`
	Vegan       bool            `json:"vegan"`
	IsActive    *bool           `json:"isActive"`
	SortOrder   int             `json:"sortOrder"`
}

type MenuFilter struct {
	Category   string
	ActiveOnly bool
}

type Offer struct {
	ID            int64           `json:"id"`
	Title         Localized       `json:"title"`
	Description   Localized       `json:"description"`
	OriginalPrice decimal.Decimal `json:"originalPrice"`
	DiscountPrice decimal.Decimal `json:"discountPrice"`
	Type          string          `json:"type"`
	ValidFrom     string          `json:"validFrom"`
	ValidUntil    string          `json:"validUntil"`
	Image         string          `json:"image"`
	IsActive      bool            `json:"isActive"`
}

type OfferRequest struct {
	Title         Localized       `json:"title"`
	Description   Localized       `json:"description"`
	OriginalPrice decimal.Decimal `json:"originalPrice"`
	DiscountPrice decimal.Decimal `json:"discountPrice"`
	Type          string          `json:"type"`
	ValidFrom     string          `json:"validFrom"`
	ValidUntil    string          `json:"validUntil"`
	Image         string          `json:"image"`
	IsActive      *bool           `json:"isActive"`
}

type OfferFilter struct {
	ActiveOn string
	Type     string
}
