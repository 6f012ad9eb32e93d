package surveys

import "testing"

func TestMakeColorTranslucent(t *testing.T) {
	cases := map[string]string{
		"#ff8800":            "rgba(255, 136, 0, 0.2)",
		"#F80":               "rgba(255, 136, 0, 0.2)",
		"#ff880080":          "rgba(255, 136, 0, 0.2)",
		"rgb(10, 20, 30)":    "rgba(10, 20, 30, 0.2)",
		"  #000000 ":         "rgba(0, 0, 0, 0.2)",
		"":                   "",
		"red":                "",
		"#12":                "",
		"#gggggg":            "",
		"rgb(300, 0, 0)":     "",
		"rgb(1, 2)":          "",
		"rgba(1, 2, 3, 0.5)": "",
	}
	for input, expected := range cases {
		if got := MakeColorTranslucent(input); got != expected {
			t.Fatalf("MakeColorTranslucent(%q) = %q, want %q", input, got, expected)
		}
		if input != "" && MakeColorTranslucent(input) == input {
			t.Fatalf("MakeColorTranslucent(%q) returned the input verbatim", input)
		}
	}
}
