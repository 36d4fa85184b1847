package translation

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	trailingPrice = regexp.MustCompile(`\s+-?\d+\.\d{2}$`)
	separators    = regexp.MustCompile(`[^\p{L}\p{N}%.]+`)
)

// Transliterate turns receipt shorthand into a readable label without
// touching the translation memory: "BAG.PAIN GRIL.AI 2.99" becomes
// "Baguette Bread Grilled Garlic".
func Transliterate(raw string) string {
	s := trailingPrice.ReplaceAllString(strings.TrimSpace(raw), "")
	s = separators.ReplaceAllString(dotsToSpaces(s), " ")

	words := strings.Fields(s)
	title := cases.Title(language.French)

	for i, w := range words {
		if en, ok := vocabulary[strings.ToUpper(w)]; ok {
			words[i] = en
			continue
		}

		words[i] = title.String(w)
	}

	return strings.Join(words, " ")
}

// dotsToSpaces replaces abbreviation dots with spaces and keeps decimal
// points ("LAIT 3.25%").
func dotsToSpaces(s string) string {
	r := []rune(s)

	for i, c := range r {
		if c != '.' {
			continue
		}

		if i > 0 && i < len(r)-1 && unicode.IsDigit(r[i-1]) && unicode.IsDigit(r[i+1]) {
			continue
		}

		r[i] = ' '
	}

	return string(r)
}

// vocabulary maps uppercase French receipt tokens to English words.
var vocabulary = map[string]string{
	// units and packaging
	"KG":   "Kilogram",
	"LB":   "Pound",
	"GR":   "Gram",
	"ML":   "Milliliter",
	"L":    "Liter",
	"BTE":  "Box",
	"BTL":  "Bottle",
	"PKG":  "Package",
	"SAC":  "Bag",
	"PC":   "Piece",
	"DZ":   "Dozen",
	"UN":   "Unit",
	"FMT":  "Format",
	"CONS": "Canned",

	// bakery and dairy
	"BAG":     "Baguette",
	"PAIN":    "Bread",
	"LAIT":    "Milk",
	"CREME":   "Cream",
	"BEURRE":  "Butter",
	"FROMAGE": "Cheese",
	"YOGOURT": "Yogurt",
	"OEUFS":   "Eggs",
	"GATEAU":  "Cake",
	"BISC":    "Cookies",

	// meat and fish
	"POULET":  "Chicken",
	"BOEUF":   "Beef",
	"PORC":    "Pork",
	"VIANDE":  "Meat",
	"POISSON": "Fish",
	"SAUMON":  "Salmon",
	"JAMBON":  "Ham",
	"DINDE":   "Turkey",

	// produce
	"POMMES":   "Apples",
	"POMME":    "Apple",
	"BANANES":  "Bananas",
	"CAROTTES": "Carrots",
	"TOMATES":  "Tomatoes",
	"SALADE":   "Lettuce",
	"OIGNONS":  "Onions",
	"AI":       "Garlic",
	"AIL":      "Garlic",
	"LEG":      "Vegetables",
	"LEGUMES":  "Vegetables",
	"FRUITS":   "Fruits",
	"EPICE":    "Spices",

	// pantry
	"RIZ":      "Rice",
	"PATES":    "Pasta",
	"HUILE":    "Oil",
	"SUCRE":    "Sugar",
	"FARINE":   "Flour",
	"SEL":      "Salt",
	"POIVRE":   "Pepper",
	"CAFE":     "Coffee",
	"THE":      "Tea",
	"JUS":      "Juice",
	"EAU":      "Water",
	"GLACE":    "Ice Cream",
	"CHOCOLAT": "Chocolate",

	// descriptors
	"GRIL":      "Grilled",
	"FR":        "Fresh",
	"FRAIS":     "Fresh",
	"SURG":      "Frozen",
	"SURGELE":   "Frozen",
	"BIO":       "Organic",
	"HACHE":     "Ground",
	"SANS":      "Without",
	"AVEC":      "With",
	"BLANC":     "White",
	"NOIR":      "Black",
	"VERT":      "Green",
	"SELECTION": "Selection",
	"RABAIS":    "Discount",
}
