package util

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{name: "lowercase and trim", input: "  Rent/Month  ", want: "rent month"},
		{name: "accents stripped", input: "Schiță Producție", want: "schita productie"},
		{name: "newline flattened", input: "Photo\nLink", want: "photo link"},
		{name: "whitespace collapsed", input: "a   b\t c", want: "a b c"},
		{name: "empty", input: "", want: ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Normalize(tc.input); got != tc.want {
				t.Fatalf("got %q want %q", got, tc.want)
			}
		})
	}
}

func TestContainsWholeWord(t *testing.T) {
	cases := []struct {
		name   string
		text   string
		phrase string
		want   bool
	}{
		{name: "whole word", text: "size (m)", phrase: "size", want: true},
		{name: "inside longer word", text: "sizeable area", phrase: "size", want: false},
		{name: "at end", text: "banner size", phrase: "size", want: true},
		{name: "multi word phrase", text: "link foto panou", phrase: "link foto", want: true},
		{name: "case and accents", text: "POZĂ panou", phrase: "poza", want: true},
		{name: "absent", text: "address", phrase: "size", want: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ContainsWholeWord(tc.text, tc.phrase); got != tc.want {
				t.Fatalf("ContainsWholeWord(%q, %q) = %v", tc.text, tc.phrase, got)
			}
		})
	}
}
