package timesheet

import "testing"

func TestSitesNormalize(t *testing.T) {
	t.Parallel()

	sites := Sites{
		A:         Site{Name: "Mango Villas", Aliases: []string{"SiteA", "mango"}},
		B:         Site{Name: "Casa Damisela", Aliases: []string{"SiteB"}},
		OtherName: "Other",
	}

	tests := []struct {
		tag  string
		want Location
	}{
		{tag: "SiteA", want: SiteA},
		{tag: "site_a", want: SiteA},
		{tag: "Mango Villas", want: SiteA},
		{tag: " MANGO ", want: SiteA},
		{tag: "casa-damisela", want: SiteB},
		{tag: "SiteB", want: SiteB},
		{tag: "Warehouse", want: Other},
		{tag: "", want: Other},
	}

	for _, tc := range tests {
		if got := sites.Normalize(tc.tag); got != tc.want {
			t.Errorf("Normalize(%q) = %s, want %s", tc.tag, got, tc.want)
		}
	}
}

func TestSitesParseLocation(t *testing.T) {
	t.Parallel()

	sites := DefaultSites()
	tests := []struct {
		value  string
		want   Location
		wantOK bool
	}{
		{value: "other", want: Other, wantOK: true},
		{value: "SiteA", want: SiteA, wantOK: true},
		{value: "Site B", want: SiteB, wantOK: true},
		{value: "nowhere", want: Other, wantOK: false},
		{value: "", want: Other, wantOK: false},
	}

	for _, tc := range tests {
		got, ok := sites.ParseLocation(tc.value)
		if got != tc.want || ok != tc.wantOK {
			t.Errorf("ParseLocation(%q) = (%s, %v), want (%s, %v)", tc.value, got, ok, tc.want, tc.wantOK)
		}
	}
}

func TestSitesLabel(t *testing.T) {
	t.Parallel()

	sites := DefaultSites()
	if got := sites.Label(SiteA); got != "Site A" {
		t.Fatalf("unexpected SiteA label %q", got)
	}
	sites.OtherName = ""
	if got := sites.Label(Other); got != "Other" {
		t.Fatalf("expected fallback Other label, got %q", got)
	}
}
