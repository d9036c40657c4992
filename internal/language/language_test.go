package language

import "testing"

func TestGet(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{in: "da", want: "Danish", ok: true},
		{in: " SV ", want: "Swedish", ok: true},
		{in: "nb", want: "Norwegian Bokmål", ok: true},
		{in: "xx", ok: false},
		{in: "", ok: false},
	}

	for _, tc := range tests {
		got, ok := Get(tc.in)
		if ok != tc.ok {
			t.Fatalf("Get(%q): ok=%v want %v", tc.in, ok, tc.ok)
		}
		if tc.ok && got.Name != tc.want {
			t.Fatalf("Get(%q): got %q want %q", tc.in, got.Name, tc.want)
		}
	}
}

func TestParse_UnknownCode(t *testing.T) {
	if _, err := Parse([]string{"da", "zz"}); err == nil {
		t.Fatal("expected error for unknown code")
	}
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		in   []Language
		want string
	}{
		{in: nil, want: "all languages"},
		{in: []Language{DA}, want: "the language Danish"},
		{in: []Language{SV, DA}, want: "the languages Danish and Swedish"},
		{in: []Language{DA, NO, SV}, want: "the languages Danish, Norwegian and Swedish"},
	}

	for _, tc := range tests {
		if got := Describe(tc.in); got != tc.want {
			t.Fatalf("Describe: got %q want %q", got, tc.want)
		}
	}
}

func TestNorwegian(t *testing.T) {
	for _, l := range []Language{NO, NB, NN} {
		if !Norwegian(l) {
			t.Fatalf("Norwegian(%s): got false", l.Code)
		}
	}
	if Norwegian(DA) {
		t.Fatal("Norwegian(da): got true")
	}
}
