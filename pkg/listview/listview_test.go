package listview

import (
	"reflect"
	"testing"
)

type row struct {
	Name     string
	Supplier string
	Stock    float64
}

func names(rows []row) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Name)
	}
	return out
}

var sample = []row{
	{"Cement Bag", "Acme Supply", 120},
	{"Rebar 12mm", "SteelCo", 40},
	{"Sand (fine)", "Acme Supply", 0},
	{"cement additive", "BuildMart", 15},
}

func sampleQuery() Query[row] {
	return Query[row]{
		SearchFields: []func(row) string{
			func(r row) string { return r.Name },
			func(r row) string { return r.Supplier },
		},
		Comparators: map[string]Comparator[row]{
			"name":  ByString(func(r row) string { return r.Name }),
			"stock": ByNumber(func(r row) float64 { return r.Stock }),
		},
	}
}

func TestDeriveSearch(t *testing.T) {
	tests := []struct {
		name   string
		search string
		want   []string
	}{
		{"case insensitive", "CEMENT", []string{"Cement Bag", "cement additive"}},
		{"matches any field", "acme", []string{"Cement Bag", "Sand (fine)"}},
		{"whitespace only means no search", "   ", []string{"Cement Bag", "Rebar 12mm", "Sand (fine)", "cement additive"}},
		{"no hits", "granite", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := sampleQuery()
			q.Search = tt.search
			got := names(Derive(sample, q))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Derive(%q) = %v, want %v", tt.search, got, tt.want)
			}
		})
	}
}

func TestDeriveFiltersAndSearchCombine(t *testing.T) {
	q := sampleQuery()
	q.Search = "acme"
	q.Filters = []func(row) bool{
		func(r row) bool { return r.Stock > 0 },
	}
	got := names(Derive(sample, q))
	want := []string{"Cement Bag"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("combined derivation = %v, want %v", got, want)
	}
}

func TestDeriveSort(t *testing.T) {
	q := sampleQuery()
	q.Sort = SortSpec{Key: "stock", Direction: Desc}
	got := names(Derive(sample, q))
	want := []string{"Cement Bag", "Rebar 12mm", "cement additive", "Sand (fine)"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("sorted derivation = %v, want %v", got, want)
	}

	// Unknown sort key keeps source order.
	q.Sort = SortSpec{Key: "bogus", Direction: Asc}
	got = names(Derive(sample, q))
	if !reflect.DeepEqual(got, names(sample)) {
		t.Errorf("unknown key reordered rows: %v", got)
	}
}

func TestDeriveIsPure(t *testing.T) {
	src := append([]row(nil), sample...)
	q := sampleQuery()
	q.Sort = SortSpec{Key: "name", Direction: Desc}
	Derive(src, q)
	if !reflect.DeepEqual(src, sample) {
		t.Errorf("Derive mutated its input: %v", src)
	}
}

func TestDeriveDeterministic(t *testing.T) {
	q := sampleQuery()
	q.Search = "a"
	q.Sort = SortSpec{Key: "stock", Direction: Asc}
	first := names(Derive(sample, q))
	second := names(Derive(sample, q))
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated derivation differs: %v vs %v", first, second)
	}
}

func TestToggle(t *testing.T) {
	tests := []struct {
		name string
		cur  SortSpec
		key  string
		want SortSpec
	}{
		{"same key flips asc to desc", SortSpec{"name", Asc}, "name", SortSpec{"name", Desc}},
		{"same key flips desc to asc", SortSpec{"name", Desc}, "name", SortSpec{"name", Asc}},
		{"new key resets to asc", SortSpec{"name", Desc}, "stock", SortSpec{"stock", Asc}},
		{"first click is asc", SortSpec{}, "name", SortSpec{"name", Asc}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Toggle(tt.cur, tt.key); got != tt.want {
				t.Errorf("Toggle(%v, %q) = %v, want %v", tt.cur, tt.key, got, tt.want)
			}
		})
	}
}

func TestByStringOrdersLocaleAware(t *testing.T) {
	cmp := ByString(func(s string) string { return s })
	if cmp("apple", "Banana") >= 0 {
		t.Error("expected apple before Banana under loose collation")
	}
	if cmp("same", "same") != 0 {
		t.Error("expected equal strings to compare 0")
	}
}
