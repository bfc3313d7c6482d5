package model

import (
	"fmt"
	"time"
)

// Size enumerates variant sizes across clothing, footwear and kids lines
type Size string

const (
	SizeXXS  Size = "XXS"
	SizeXS   Size = "XS"
	SizeS    Size = "S"
	SizeM    Size = "M"
	SizeL    Size = "L"
	SizeXL   Size = "XL"
	SizeXXL  Size = "XXL"
	SizeXXXL Size = "XXXL"

	Size5   Size = "SIZE_5"
	Size55  Size = "SIZE_5_5"
	Size6   Size = "SIZE_6"
	Size65  Size = "SIZE_6_5"
	Size7   Size = "SIZE_7"
	Size75  Size = "SIZE_7_5"
	Size8   Size = "SIZE_8"
	Size85  Size = "SIZE_8_5"
	Size9   Size = "SIZE_9"
	Size95  Size = "SIZE_9_5"
	Size10  Size = "SIZE_10"
	Size105 Size = "SIZE_10_5"
	Size11  Size = "SIZE_11"
	Size115 Size = "SIZE_11_5"
	Size12  Size = "SIZE_12"
	Size13  Size = "SIZE_13"
	Size14  Size = "SIZE_14"

	SizeKids2T Size = "KIDS_2T"
	SizeKids3T Size = "KIDS_3T"
	SizeKids4T Size = "KIDS_4T"
	SizeKids5T Size = "KIDS_5T"
	SizeKidsXS Size = "KIDS_XS"
	SizeKidsS  Size = "KIDS_S"
	SizeKidsM  Size = "KIDS_M"
	SizeKidsL  Size = "KIDS_L"
	SizeKidsXL Size = "KIDS_XL"

	SizeOneSize Size = "ONE_SIZE"

	SizeSmall  Size = "SMALL"
	SizeMedium Size = "MEDIUM"
	SizeLarge  Size = "LARGE"
)

var sizeNames = map[Size]string{
	SizeXXS: "XXS", SizeXS: "XS", SizeS: "S", SizeM: "M", SizeL: "L",
	SizeXL: "XL", SizeXXL: "XXL", SizeXXXL: "XXXL",
	Size5: "5", Size55: "5.5", Size6: "6", Size65: "6.5", Size7: "7",
	Size75: "7.5", Size8: "8", Size85: "8.5", Size9: "9", Size95: "9.5",
	Size10: "10", Size105: "10.5", Size11: "11", Size115: "11.5",
	Size12: "12", Size13: "13", Size14: "14",
	SizeKids2T: "2T", SizeKids3T: "3T", SizeKids4T: "4T", SizeKids5T: "5T",
	SizeKidsXS: "Kids XS", SizeKidsS: "Kids S", SizeKidsM: "Kids M",
	SizeKidsL: "Kids L", SizeKidsXL: "Kids XL",
	SizeOneSize: "One Size",
	SizeSmall:   "Small", SizeMedium: "Medium", SizeLarge: "Large",
}

func (s Size) Valid() bool {
	_, ok := sizeNames[s]
	return ok
}

func (s Size) DisplayName() string {
	if name, ok := sizeNames[s]; ok {
		return name
	}
	return "Unknown Size"
}

// Color enumerates variant colors and patterns
type Color string

const (
	ColorBlack     Color = "BLACK"
	ColorWhite     Color = "WHITE"
	ColorGray      Color = "GRAY"
	ColorNavy      Color = "NAVY"
	ColorBrown     Color = "BROWN"
	ColorRed       Color = "RED"
	ColorBlue      Color = "BLUE"
	ColorGreen     Color = "GREEN"
	ColorYellow    Color = "YELLOW"
	ColorOrange    Color = "ORANGE"
	ColorPurple    Color = "PURPLE"
	ColorPink      Color = "PINK"
	ColorTurquoise Color = "TURQUOISE"
	ColorBeige     Color = "BEIGE"
	ColorCream     Color = "CREAM"
	ColorIvory     Color = "IVORY"
	ColorKhaki     Color = "KHAKI"
	ColorOlive     Color = "OLIVE"
	ColorBurgundy  Color = "BURGUNDY"
	ColorMaroon    Color = "MAROON"
	ColorTeal      Color = "TEAL"
	ColorCoral     Color = "CORAL"
	ColorGold      Color = "GOLD"
	ColorSilver    Color = "SILVER"
	ColorRoseGold  Color = "ROSE_GOLD"
	ColorFloral    Color = "FLORAL"
	ColorStriped   Color = "STRIPED"
	ColorPolkaDot  Color = "POLKA_DOT"
	ColorPlaid     Color = "PLAID"
	ColorLeopard   Color = "LEOPARD"
	ColorZebra     Color = "ZEBRA"
	ColorMulti     Color = "MULTICOLOR"
	ColorRainbow   Color = "RAINBOW"
)

var colorNames = map[Color]string{
	ColorBlack: "Black", ColorWhite: "White", ColorGray: "Gray",
	ColorNavy: "Navy", ColorBrown: "Brown",
	ColorRed: "Red", ColorBlue: "Blue", ColorGreen: "Green",
	ColorYellow: "Yellow", ColorOrange: "Orange", ColorPurple: "Purple",
	ColorPink: "Pink", ColorTurquoise: "Turquoise",
	ColorBeige: "Beige", ColorCream: "Cream", ColorIvory: "Ivory",
	ColorKhaki: "Khaki", ColorOlive: "Olive", ColorBurgundy: "Burgundy",
	ColorMaroon: "Maroon", ColorTeal: "Teal", ColorCoral: "Coral",
	ColorGold: "Gold", ColorSilver: "Silver", ColorRoseGold: "Rose Gold",
	ColorFloral: "Floral", ColorStriped: "Striped", ColorPolkaDot: "Polka Dot",
	ColorPlaid: "Plaid", ColorLeopard: "Leopard Print", ColorZebra: "Zebra Print",
	ColorMulti: "Multicolor", ColorRainbow: "Rainbow",
}

func (c Color) Valid() bool {
	_, ok := colorNames[c]
	return ok
}

func (c Color) DisplayName() string {
	if name, ok := colorNames[c]; ok {
		return name
	}
	return "Unknown Color"
}

// ProductVariant is a size/color combination of a fashion product with its own
// stock tracked independently of sibling variants
type ProductVariant struct {
	ID              uint      `json:"id" gorm:"primarykey"`
	ProductID       uint      `json:"productId" gorm:"index;not null"`
	Size            Size      `json:"size" gorm:"type:varchar(20);not null"`
	Color           Color     `json:"color" gorm:"type:varchar(20);not null"`
	Quantity        int       `json:"quantity" gorm:"not null;default:0"`
	MinStockLevel   int       `json:"minStockLevel" gorm:"not null;default:0"`
	PriceAdjustment float64   `json:"priceAdjustment"`
	VariantSKU      string    `json:"variantSku" gorm:"type:varchar(120);unique"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func (v *ProductVariant) IsLowStock() bool {
	return v.Quantity <= v.MinStockLevel
}

func (v *ProductVariant) IsOutOfStock() bool {
	return v.Quantity == 0
}

// FinalPrice is the parent base price plus this variant's adjustment
func (v *ProductVariant) FinalPrice(basePrice float64) float64 {
	return basePrice + v.PriceAdjustment
}

// Details renders the "Size/Color" display string used in transaction snapshots
func (v *ProductVariant) Details() string {
	return fmt.Sprintf("%s/%s", v.Size.DisplayName(), v.Color.DisplayName())
}

// GenerateVariantSKU derives the variant SKU from the parent SKU and 3-letter
// size and color codes
func GenerateVariantSKU(productSKU string, size Size, color Color) string {
	if productSKU == "" {
		productSKU = "PROD"
	}
	return fmt.Sprintf("%s-%s-%s", productSKU, enumCode(string(size)), enumCode(string(color)))
}

func enumCode(name string) string {
	if len(name) > 3 {
		return name[:3]
	}
	return name
}
