package translation

// seed holds the grocery labels every installation starts with.
var seed = []struct {
	original    string
	translation string
}{
	{"BAG.PAIN GRIL.AI", "Garlic Grilled Baguette"},
	{"SELECTION EPICE", "Spice Selection"},
	{"SELECTION LEG.C", "Canned Vegetable Selection"},
	{"RABAIS", "Discount"},
	{"PAIN BLANC", "White Bread"},
	{"PAIN COMPLET", "Whole Wheat Bread"},
	{"LAIT 2%", "2% Milk"},
	{"LAIT 3.25%", "Whole Milk"},
	{"FROMAGE CHEDDAR", "Cheddar Cheese"},
	{"FROMAGE MOZZA", "Mozzarella Cheese"},
	{"POULET FRAIS", "Fresh Chicken"},
	{"BOEUF HACHE", "Ground Beef"},
	{"PORC COTELETTE", "Pork Chops"},
	{"TOMATES CERISES", "Cherry Tomatoes"},
	{"POMMES GALA", "Gala Apples"},
	{"BANANES", "Bananas"},
	{"CAROTTES", "Carrots"},
	{"SALADE ICEBERG", "Iceberg Lettuce"},
	{"SALADE ROMAINE", "Romaine Lettuce"},
	{"RIZ BASMATI", "Basmati Rice"},
	{"PATES SPAGHETTI", "Spaghetti Pasta"},
	{"HUILE OLIVE", "Olive Oil"},
	{"HUILE CANOLA", "Canola Oil"},
	{"SEL DE TABLE", "Table Salt"},
	{"POIVRE NOIR", "Black Pepper"},
	{"SUCRE BLANC", "White Sugar"},
	{"FARINE TOUT USAGE","All-Purpose Flour"},
	{"CAFE MOULU", "Ground Coffee"},
	{"THE VERT", "Green Tea"},
	{"THE NOIR", "Black Tea"},
	{"JUS ORANGE", "Orange Juice"},
	{"JUS POMME", "Apple Juice"},
	{"EAU PETILLANTE", "Sparkling Water"},
	{"GLACE VANILLE", "Vanilla Ice Cream"},
	{"GLACE CHOCOLAT", "Chocolate Ice Cream"},
	{"CHOCOLAT NOIR", "Dark Chocolate"},
	{"CHOCOLAT LAIT", "Milk Chocolate"},
	{"BISCUITS CHOCOLAT","Chocolate Cookies"},
	{"GATEAU CHOCOLAT", "Chocolate Cake"},
	{"VIANDE HACHEE", "Ground Meat"},
	{"POISSON FRAIS", "Fresh Fish"},
	{"FRUITS FRAIS", "Fresh Fruits"},
	{"LEGUMES FRAIS", "Fresh Vegetables"},
	{"SURGELE LEGUMES", "Frozen Vegetables"},
	{"BIO TOMATES", "Organic Tomatoes"},
	{"BIO CAROTTES", "Organic Carrots"},
	{"SANS GLUTEN", "Gluten Free"},
	{"SANS LACTOSE", "Lactose Free"},
	{"AVEC FIBRES", "With Fiber"},
	{"BAG.", "Baguette"},
	{"LEG.C", "Canned Vegetables"},
	{"LEG.", "Vegetables"},
	{"GRIL.", "Grilled"},
	{"AI", "Garlic"},
	{"FR.", "Fresh"},
	{"SURG.", "Frozen"},
	{"BTE", "Box"},
	{"PKG", "Package"},
	{"SAC", "Bag"},
	{"BTL", "Bottle"},
	{"CAN", "Can"},
	{"PC", "Piece"},
	{"DZ", "Dozen"},
	{"KG", "Kilogram"},
	{"LB", "Pound"},
	{"L", "Liter"},
	{"ML", "Milliliter"},
}

// Defaults returns the built-in mappings with zero usage.
func Defaults() []Mapping {
	out := make([]Mapping, len(seed))
	for i, s := range seed {
		out[i] = Mapping{Original: s.original, Translation: s.translation}
	}

	return out
}
