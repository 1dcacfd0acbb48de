// Package dictionary maps object-detector labels and free-text input to
// canonical ingredient names, and serves the static substitution table.
// All tables are fixed at compile time; lookup order over the label table
// is insertion order, which makes substring resolution order-dependent.
package dictionary

import "strings"

type labelEntry struct {
	Label      string
	Ingredient string
}

// labelTable maps detector class names to canonical ingredients. Entries
// earlier in the table win substring matches against later ones.
var labelTable = []labelEntry{
	{"banana", "banana"},
	{"apple", "apple"},
	{"orange", "orange"},
	{"broccoli", "broccoli"},
	{"carrot", "carrot"},
	{"tomato", "tomato"},
	{"potato", "potato"},
	{"onion", "onion"},
	{"garlic", "garlic"},
	{"bell pepper", "bell pepper"},
	{"pepper", "bell pepper"},
	{"chicken", "chicken"},
	{"egg", "egg"},
	{"mushroom", "mushroom"},
	{"lemon", "lemon"},
	{"lime", "lime"},
	{"strawberry", "strawberry"},
	{"cucumber", "cucumber"},
	{"corn", "corn"},
	{"cabbage", "cabbage"},
	{"lettuce", "lettuce"},
	{"spinach", "spinach"},
	{"eggplant", "eggplant"},
	{"zucchini", "zucchini"},
	{"cauliflower", "cauliflower"},
	{"ginger", "ginger"},
	{"cheese", "cheese"},
	{"bread", "bread"},
	{"rice", "rice"},
	{"pasta", "pasta"},
	{"fish", "fish"},
	{"beef", "beef"},
	{"pizza", "pizza dough"},
	{"sandwich", "bread"},
	{"hot dog", "sausage"},
	{"donut", "flour"},
	{"cake", "flour"},
}

// nonFood labels short-circuit to "no mapping" before any substring pass,
// otherwise "cell phone" would resolve through "corn"-style accidents.
var nonFood = map[string]struct{}{
	"person":       {},
	"bottle":       {},
	"cup":          {},
	"fork":         {},
	"knife":        {},
	"spoon":        {},
	"bowl":         {},
	"chair":        {},
	"couch":        {},
	"dining table": {},
	"cell phone":   {},
	"laptop":       {},
	"tv":           {},
	"book":         {},
	"backpack":     {},
	"handbag":      {},
}

// colorAdjectives are stripped as prefixes or suffixes before retrying an
// exact match ("red bell pepper" -> "bell pepper").
var colorAdjectives = []string{
	"red", "green", "yellow", "orange", "purple", "white", "black", "brown",
}

type synonymEntry struct {
	Term       string
	Ingredient string
}

// synonyms are regional or alternate names, checked by substring containment.
var synonyms = []synonymEntry{
	{"capsicum", "bell pepper"},
	{"scallion", "onion"},
	{"spring onion", "onion"},
	{"aubergine", "eggplant"},
	{"courgette", "zucchini"},
	{"coriander", "cilantro"},
	{"maize", "corn"},
	{"brinjal", "eggplant"},
	{"curd", "yogurt"},
	{"prawn", "shrimp"},
}

// Lookup resolves a free-text label to a canonical ingredient name.
// Resolution order: non-food short-circuit, exact match, color-stripped
// exact match, substring match in table order, synonym containment.
// The second return is false when the label has no mapping.
func Lookup(label string) (string, bool) {
	normalized := strings.ToLower(strings.TrimSpace(label))
	if normalized == "" {
		return "", false
	}

	if _, ok := nonFood[normalized]; ok {
		return "", false
	}

	if ing, ok := exactMatch(normalized); ok {
		return ing, true
	}

	if stripped := stripColor(normalized); stripped != normalized {
		if ing, ok := exactMatch(stripped); ok {
			return ing, true
		}
	}

	for _, e := range labelTable {
		if strings.Contains(normalized, e.Label) || strings.Contains(e.Label, normalized) {
			return e.Ingredient, true
		}
	}

	for _, s := range synonyms {
		if strings.Contains(normalized, s.Term) || strings.Contains(s.Term, normalized) {
			return s.Ingredient, true
		}
	}

	return "", false
}

func exactMatch(label string) (string, bool) {
	for _, e := range labelTable {
		if e.Label == label {
			return e.Ingredient, true
		}
	}
	return "", false
}

func stripColor(label string) string {
	for _, color := range colorAdjectives {
		if rest, ok := strings.CutPrefix(label, color+" "); ok {
			return rest
		}
		if rest, ok := strings.CutSuffix(label, " "+color); ok {
			return rest
		}
	}
	return label
}

// Substitution lists alternatives for a common ingredient.
type Substitution struct {
	Ingredient   string   `json:"ingredient"`
	Alternatives []string `json:"alternatives"`
	Category     string   `json:"category"`
}

// substitutionTable mirrors the curated swap list shown alongside match
// results. Keys are matched by containment against user ingredients.
var substitutionTable = []Substitution{
	{"chicken", []string{"turkey", "tofu", "paneer"}, "protein"},
	{"beef", []string{"chicken", "pork", "mushrooms"}, "protein"},
	{"fish", []string{"chicken", "tofu", "tempeh"}, "protein"},
	{"butter", []string{"olive oil", "coconut oil", "margarine"}, "fat"},
	{"milk", []string{"almond milk", "soy milk", "coconut milk"}, "dairy"},
	{"cheese", []string{"nutritional yeast", "cashew cheese", "tofu"}, "dairy"},
	{"cream", []string{"coconut cream", "cashew cream", "milk"}, "dairy"},
	{"pasta", []string{"rice", "quinoa", "zucchini noodles"}, "carbs"},
	{"rice", []string{"quinoa", "cauliflower rice", "pasta"}, "carbs"},
	{"flour", []string{"almond flour", "coconut flour", "oat flour"}, "carbs"},
	{"egg", []string{"flax egg", "chia egg", "applesauce"}, "binding"},
	{"sugar", []string{"honey", "maple syrup", "stevia"}, "sweetener"},
	{"onion", []string{"shallots", "leeks", "garlic"}, "aromatic"},
	{"garlic", []string{"onion powder", "shallots", "ginger"}, "aromatic"},
	{"tomato", []string{"bell pepper", "zucchini", "eggplant"}, "vegetable"},
}

// Substitutions returns alternatives for the first table entry whose key is
// contained in the given ingredient, or false when none applies.
func Substitutions(ingredient string) (Substitution, bool) {
	normalized := strings.ToLower(strings.TrimSpace(ingredient))
	for _, s := range substitutionTable {
		if strings.Contains(normalized, s.Ingredient) {
			return s, true
		}
	}
	return Substitution{}, false
}
