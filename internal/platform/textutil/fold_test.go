package textutil

import "testing"

func TestFoldEqual(t *testing.T) {
	cases := []struct {
		a, b string
		want bool
	}{
		{"Fresh Mango", "fresh mango", true},
		{"  Fresh Mango  ", "fresh mango", true},
		{"STRASSE", "strasse", true},
		{"mango", "banana", false},
	}
	for _, tc := range cases {
		if got := FoldEqual(tc.a, tc.b); got != tc.want {
			t.Errorf("FoldEqual(%q, %q) = %v, want %v", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestFoldContains(t *testing.T) {
	if !FoldContains("Premium Hilsha Fish", "hilsha") {
		t.Error("expected folded substring match")
	}
	if FoldContains("Premium Hilsha Fish", "chicken") {
		t.Error("unexpected match")
	}
	if !FoldContains("anything", "") {
		t.Error("empty needle should match")
	}
}

func TestSlugify(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"Fresh Mango", "fresh-mango"},
		{"  Premium  Hilsha Fish!  ", "premium-hilsha-fish"},
		{"Rice & Lentils (5kg)", "rice-lentils-5kg"},
		{"---", ""},
	}
	for _, tc := range cases {
		if got := Slugify(tc.in); got != tc.want {
			t.Errorf("Slugify(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
