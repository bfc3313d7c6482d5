package model

import (
	"fmt"
	"time"
)

// FashionCategory enumerates the fashion product lines
type FashionCategory string

const (
	CategoryClothingMens         FashionCategory = "CLOTHING_MENS"
	CategoryClothingWomens       FashionCategory = "CLOTHING_WOMENS"
	CategoryClothingKids         FashionCategory = "CLOTHING_KIDS"
	CategoryFootwearMens         FashionCategory = "FOOTWEAR_MENS"
	CategoryFootwearWomens       FashionCategory = "FOOTWEAR_WOMENS"
	CategoryFootwearKids         FashionCategory = "FOOTWEAR_KIDS"
	CategoryAccessoriesBags      FashionCategory = "ACCESSORIES_BAGS"
	CategoryAccessoriesJewelry   FashionCategory = "ACCESSORIES_JEWELRY"
	CategoryAccessoriesWatches   FashionCategory = "ACCESSORIES_WATCHES"
	CategoryAccessoriesBelts     FashionCategory = "ACCESSORIES_BELTS"
	CategoryAccessoriesHats      FashionCategory = "ACCESSORIES_HATS"
	CategoryAccessoriesSunglass  FashionCategory = "ACCESSORIES_SUNGLASSES"
	CategoryAccessoriesScarves   FashionCategory = "ACCESSORIES_SCARVES"
)

var fashionCategoryNames = map[FashionCategory]string{
	CategoryClothingMens:        "Men's Clothing",
	CategoryClothingWomens:      "Women's Clothing",
	CategoryClothingKids:        "Kids' Clothing",
	CategoryFootwearMens:        "Men's Footwear",
	CategoryFootwearWomens:      "Women's Footwear",
	CategoryFootwearKids:        "Kids' Footwear",
	CategoryAccessoriesBags:     "Bags & Purses",
	CategoryAccessoriesJewelry:  "Jewelry",
	CategoryAccessoriesWatches:  "Watches",
	CategoryAccessoriesBelts:    "Belts",
	CategoryAccessoriesHats:     "Hats & Caps",
	CategoryAccessoriesSunglass: "Sunglasses",
	CategoryAccessoriesScarves:  "Scarves & Wraps",
}

func (c FashionCategory) Valid() bool {
	_, ok := fashionCategoryNames[c]
	return ok
}

func (c FashionCategory) DisplayName() string {
	if name, ok := fashionCategoryNames[c]; ok {
		return name
	}
	return "Fashion"
}

// Season enumerates selling seasons
type Season string

const (
	SeasonSpring    Season = "SPRING"
	SeasonSummer    Season = "SUMMER"
	SeasonAutumn    Season = "AUTUMN"
	SeasonWinter    Season = "WINTER"
	SeasonAllSeason Season = "ALL_SEASON"
)

var seasonNames = map[Season]string{
	SeasonSpring:    "Spring",
	SeasonSummer:    "Summer",
	SeasonAutumn:    "Autumn",
	SeasonWinter:    "Winter",
	SeasonAllSeason: "All Season",
}

func (s Season) Valid() bool {
	_, ok := seasonNames[s]
	return ok
}

func (s Season) DisplayName() string {
	if name, ok := seasonNames[s]; ok {
		return name
	}
	return string(s)
}

// SeasonForMonth maps a calendar month to its selling season
func SeasonForMonth(m time.Month) Season {
	switch m {
	case time.March, time.April, time.May:
		return SeasonSpring
	case time.June, time.July, time.August:
		return SeasonSummer
	case time.September, time.October, time.November:
		return SeasonAutumn
	default:
		return SeasonWinter
	}
}

// Gender enumerates target audiences
type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
	GenderUnisex Gender = "UNISEX"
	GenderKids   Gender = "KIDS"
)

var genderNames = map[Gender]string{
	GenderMale:   "Male",
	GenderFemale: "Female",
	GenderUnisex: "Unisex",
	GenderKids:   "Kids",
}

func (g Gender) Valid() bool {
	_, ok := genderNames[g]
	return ok
}

func (g Gender) DisplayName() string {
	if name, ok := genderNames[g]; ok {
		return name
	}
	return string(g)
}

// FashionProduct represents a variant-based product line
type FashionProduct struct {
	ID               uint             `json:"id" gorm:"primarykey"`
	Name             string           `json:"name" gorm:"type:varchar(255);unique;not null"`
	SKU              string           `json:"sku" gorm:"type:varchar(100);unique"`
	Description      string           `json:"description" gorm:"type:text"`
	Category         FashionCategory  `json:"category" gorm:"type:varchar(50);not null"`
	Brand            string           `json:"brand" gorm:"type:varchar(100);not null"`
	BasePrice        float64          `json:"basePrice" gorm:"not null"`
	Season           Season           `json:"season" gorm:"type:varchar(20)"`
	TargetGender     Gender           `json:"targetGender" gorm:"type:varchar(20)"`
	Material         string           `json:"material" gorm:"type:varchar(255)"`
	CareInstructions string           `json:"careInstructions" gorm:"type:text"`
	Variants         []ProductVariant `json:"variants" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt        time.Time        `json:"createdAt"`
	UpdatedAt        time.Time        `json:"updatedAt"`
}

// TotalStock sums the quantity across all variants
func (p *FashionProduct) TotalStock() int {
	total := 0
	for _, v := range p.Variants {
		total += v.Quantity
	}
	return total
}

// TotalMinStock sums the minimum stock level across all variants
func (p *FashionProduct) TotalMinStock() int {
	total := 0
	for _, v := range p.Variants {
		total += v.MinStockLevel
	}
	return total
}

func (p *FashionProduct) IsLowStock() bool {
	return p.TotalStock() <= p.TotalMinStock()
}

func (p *FashionProduct) IsOutOfStock() bool {
	return p.TotalStock() == 0
}

// GenerateFashionSKU derives a SKU from the category code and a name prefix
func GenerateFashionSKU(name string, category FashionCategory) string {
	if name == "" {
		return fmt.Sprintf("FSH-%d", time.Now().UnixMilli())
	}
	categoryPrefix := "FSH"
	if category != "" && len(category) >= 3 {
		categoryPrefix = string(category)[:3]
	}
	namePrefix := sanitizeSKUPart(name, 5)
	return fmt.Sprintf("%s-%s-%d", categoryPrefix, namePrefix, time.Now().UnixMilli()%10000)
}
