package prospect

import "testing"

func TestLookupField(t *testing.T) {
	f, ok := LookupField(FieldBoomerScore)
	if !ok {
		t.Fatal("Expected Boomer Score to be a known field")
	}
	if f.Kind != KindScore {
		t.Errorf("Expected KindScore, got %v", f.Kind)
	}

	if _, ok := LookupField("Favourite Colour"); ok {
		t.Error("Expected unknown field lookup to fail")
	}
}

func TestColumnListsAreKnown(t *testing.T) {
	for _, id := range append(ToggleableColumns(), DefaultVisibleColumns()...) {
		if _, ok := LookupField(id); !ok {
			t.Errorf("Column %q is not in the field enumeration", id)
		}
	}

	toggleable := make(map[string]bool)
	for _, id := range ToggleableColumns() {
		toggleable[id] = true
	}
	for _, id := range DefaultVisibleColumns() {
		if !toggleable[id] {
			t.Errorf("Default column %q cannot be toggled", id)
		}
	}
}

func TestField_Display(t *testing.T) {
	p := &Prospect{
		CompanyName:              "Acme, Inc",
		CombinedAcquisitionScore: Str("80.25"),
		BoomerScore:              Num(72.5),
		EstimatedContactAge:      Num(0),
		YearsInCurrentRole:       Str("12"),
	}

	tests := []struct {
		field    string
		expected string
	}{
		{FieldCompanyName, "Acme, Inc"},
		{FieldCombinedAcquisitionScore, "80.3"},
		{FieldBoomerScore, "73"},
		{FieldBurnoutScore, "0"},
		{FieldEstimatedContactAge, "-"},
		{FieldYearsInCurrentRole, "12"},
		{FieldTotalAllContacts, "0"},
		{ColumnRating, ""},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			if got := MustField(tt.field).Display(p); got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestField_RawAndIsString(t *testing.T) {
	p := &Prospect{FullName: "Ada", BoomerScore: Num(60), BurnoutScore: Str("1,5")}

	if got := MustField(FieldFullName).Raw(p); got != "Ada" {
		t.Errorf("Expected Ada, got %q", got)
	}
	if got := MustField(FieldBoomerScore).Raw(p); got != "60" {
		t.Errorf("Expected 60, got %q", got)
	}
	if MustField(FieldBoomerScore).IsString(p) {
		t.Error("Expected numeric boomer score not to be a string")
	}
	if !MustField(FieldBurnoutScore).IsString(p) {
		t.Error("Expected string burnout score to be a string")
	}
	if got := MustField(FieldCombinedAcquisitionScore).Raw(p); got != "" {
		t.Errorf("Expected empty raw value for missing score, got %q", got)
	}
}

func TestScoreTier(t *testing.T) {
	tests := []struct {
		score    float64
		expected Tier
	}{
		{100, TierExcellent},
		{70, TierExcellent},
		{69.999, TierGood},
		{50, TierGood},
		{30, TierFair},
		{29.9, TierLow},
		{0, TierLow},
	}

	for _, tt := range tests {
		if got := ScoreTier(tt.score); got != tt.expected {
			t.Errorf("ScoreTier(%v): expected %s, got %s", tt.score, tt.expected, got)
		}
	}
}

func TestStars(t *testing.T) {
	if got := Stars(3); got != "★★★☆☆" {
		t.Errorf("Expected 3 filled stars, got %q", got)
	}
	if got := Stars(0); got != "☆☆☆☆☆" {
		t.Errorf("Expected no filled stars, got %q", got)
	}
}

func TestKeyAndIDs(t *testing.T) {
	a := Prospect{FullName: "Ada Lovelace", CompanyName: "Engines Ltd"}
	b := Prospect{FullName: "Ada Lovelace", CompanyName: "Engines Ltd", LinkedInJobTitle: "CTO"}

	if a.Key() != "Ada Lovelace-Engines Ltd" {
		t.Errorf("Unexpected key %q", a.Key())
	}
	if a.Key() != b.Key() {
		t.Error("Expected prospects with the same name and company to share a rating key")
	}

	list := []Prospect{a, b}
	AssignIDs("prospects.json", list)
	if list[0].ID == "" || list[0].ID == list[1].ID {
		t.Errorf("Expected distinct surrogate IDs, got %q and %q", list[0].ID, list[1].ID)
	}

	again := []Prospect{a, b}
	AssignIDs("prospects.json", again)
	if again[0].ID != list[0].ID {
		t.Error("Expected surrogate IDs to be deterministic")
	}
}
