package nutrition

// Record is the fixed-shape nutrient tree of a food. Every leaf is a
// non-negative amount; unknown values are stored as 0.
type Record struct {
	Calories       float64        `json:"calories"`
	EnergyKJ       float64        `json:"energyKj"`
	Water          float64        `json:"water"`
	Protein        float64        `json:"protein"`
	Carbs          Carbs          `json:"carbs"`
	Fats           Fats           `json:"fats"`
	Cholesterol    float64        `json:"cholesterol"`
	Micronutrients Micronutrients `json:"micronutrients"`
	Vitamins       Vitamins       `json:"vitamins"`
	AminoAcids     AminoAcids     `json:"aminoAcids"`
	Choline        float64        `json:"choline"`
}

type Carbs struct {
	Total      float64 `json:"total"`
	Fiber      float64 `json:"fiber"`
	Sugar      float64 `json:"sugar"`
	AddedSugar float64 `json:"addedSugar"`
}

type Fats struct {
	Total     float64 `json:"total"`
	Saturated float64 `json:"saturated"`
	Trans     float64 `json:"trans"`
	MUFA      float64 `json:"mufa"`
	PUFA      float64 `json:"pufa"`
	Omega3    Omega3  `json:"omega3"`
}

type Omega3 struct {
	ALA float64 `json:"ala"`
	EPA float64 `json:"epa"`
	DHA float64 `json:"dha"`
}

type Micronutrients struct {
	Sodium     float64 `json:"sodium"`
	Potassium  float64 `json:"potassium"`
	Calcium    float64 `json:"calcium"`
	Iron       float64 `json:"iron"`
	Magnesium  float64 `json:"magnesium"`
	Phosphorus float64 `json:"phosphorus"`
	Zinc       float64 `json:"zinc"`
	Iodine     float64 `json:"iodine"`
	Selenium   float64 `json:"selenium"`
	Copper     float64 `json:"copper"`
}

type Vitamins struct {
	A      float64 `json:"a"`
	D      float64 `json:"d"`
	E      float64 `json:"e"`
	K      float64 `json:"k"`
	B6     float64 `json:"b6"`
	B12    float64 `json:"b12"`
	Folate float64 `json:"folate"`
}

type AminoAcids struct {
	Leucine    float64 `json:"leucine"`
	Lysine     float64 `json:"lysine"`
	Methionine float64 `json:"methionine"`
	Cystine    float64 `json:"cystine"`
}

// Leaf is a single numeric value addressed by its dotted JSON path.
type Leaf struct {
	Path  string
	Value float64
}

type leafRef struct {
	path string
	ptr  *float64
}

// leafRefs is the one place that knows the shape of the tree. Map and Leaves
// are both built on it, so adding a nutrient only means adding a line here.
func (r *Record) leafRefs() []leafRef {
	return []leafRef{
		{"calories", &r.Calories},
		{"energyKj", &r.EnergyKJ},
		{"water", &r.Water},
		{"protein", &r.Protein},
		{"carbs.total", &r.Carbs.Total},
		{"carbs.fiber", &r.Carbs.Fiber},
		{"carbs.sugar", &r.Carbs.Sugar},
		{"carbs.addedSugar", &r.Carbs.AddedSugar},
		{"fats.total", &r.Fats.Total},
		{"fats.saturated", &r.Fats.Saturated},
		{"fats.trans", &r.Fats.Trans},
		{"fats.mufa", &r.Fats.MUFA},
		{"fats.pufa", &r.Fats.PUFA},
		{"fats.omega3.ala", &r.Fats.Omega3.ALA},
		{"fats.omega3.epa", &r.Fats.Omega3.EPA},
		{"fats.omega3.dha", &r.Fats.Omega3.DHA},
		{"cholesterol", &r.Cholesterol},
		{"micronutrients.sodium", &r.Micronutrients.Sodium},
		{"micronutrients.potassium", &r.Micronutrients.Potassium},
		{"micronutrients.calcium", &r.Micronutrients.Calcium},
		{"micronutrients.iron", &r.Micronutrients.Iron},
		{"micronutrients.magnesium", &r.Micronutrients.Magnesium},
		{"micronutrients.phosphorus", &r.Micronutrients.Phosphorus},
		{"micronutrients.zinc", &r.Micronutrients.Zinc},
		{"micronutrients.iodine", &r.Micronutrients.Iodine},
		{"micronutrients.selenium", &r.Micronutrients.Selenium},
		{"micronutrients.copper", &r.Micronutrients.Copper},
		{"vitamins.a", &r.Vitamins.A},
		{"vitamins.d", &r.Vitamins.D},
		{"vitamins.e", &r.Vitamins.E},
		{"vitamins.k", &r.Vitamins.K},
		{"vitamins.b6", &r.Vitamins.B6},
		{"vitamins.b12", &r.Vitamins.B12},
		{"vitamins.folate", &r.Vitamins.Folate},
		{"aminoAcids.leucine", &r.AminoAcids.Leucine},
		{"aminoAcids.lysine", &r.AminoAcids.Lysine},
		{"aminoAcids.methionine", &r.AminoAcids.Methionine},
		{"aminoAcids.cystine", &r.AminoAcids.Cystine},
		{"choline", &r.Choline},
	}
}

// Map returns a copy of the record with fn applied to every leaf. The
// receiver is a value, so the result never shares storage with r.
func (r Record) Map(fn func(float64) float64) Record {
	out := r
	for _, ref := range out.leafRefs() {
		*ref.ptr = fn(*ref.ptr)
	}
	return out
}

// Leaves lists every leaf in a stable order.
func (r Record) Leaves() []Leaf {
	refs := r.leafRefs()
	leaves := make([]Leaf, 0, len(refs))
	for _, ref := range refs {
		leaves = append(leaves, Leaf{Path: ref.path, Value: *ref.ptr})
	}
	return leaves
}

// Set assigns the leaf at path. It reports false for an unknown path.
func (r *Record) Set(path string, value float64) bool {
	for _, ref := range r.leafRefs() {
		if ref.path == path {
			*ref.ptr = value
			return true
		}
	}
	return false
}

// Scaled multiplies every leaf by ratio.
func (r Record) Scaled(ratio float64) Record {
	return r.Map(func(v float64) float64 { return v * ratio })
}
