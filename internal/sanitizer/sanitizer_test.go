package sanitizer

import (
	"strings"
	"testing"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain arabic", input: "  تجربة رائعة جدا ", want: "تجربة رائعة جدا"},
		{name: "angle brackets", input: "a <b> c", want: "a b c"},
		{name: "script tag", input: "<script>alert(1)</script> تجربة جيدة", want: "alert(1)/script تجربة جيدة"},
		{name: "script tag upper case", input: "<SCRIPT>x", want: "x"},
		{name: "iframe opener", input: "<iframe src=x>", want: "src=x"},
		{name: "javascript uri", input: "JavaScript:alert(1)", want: "alert(1)"},
		{name: "event handler", input: "img onerror = steal()", want: "img  steal()"},
		{name: "eval", input: "eval(code)", want: "code)"},
		{name: "nested javascript", input: "javajavascript:script:go", want: "go"},
		{name: "nested eval", input: "evaeval(l(x", want: "x"},
		{name: "only dangerous", input: "<><>", want: ""},
		{name: "empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sanitize(tt.input)
			if got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitize_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"<script>alert(1)</script> تجربة جيدة",
		"javajavascript:script:",
		"ononclick=click= x",
		" <  > eval(eval( ",
		"oneval(click=",
		"<scr<script>ipt>",
		"onjavascript:load=",
		"د. أحمد حسين <b>مرزه</b>",
		strings.Repeat("<iframe", 10),
	}
	for _, in := range inputs {
		once := Sanitize(in)
		twice := Sanitize(once)
		if once != twice {
			t.Errorf("not idempotent for %q: %q -> %q", in, once, twice)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		min, max int
		want     bool
	}{
		{name: "empty", text: "", min: 1, max: 200, want: false},
		{name: "whitespace only", text: "   ", min: 1, max: 200, want: false},
		{name: "too short for review", text: "ok", min: ReviewMinLen, max: ReviewMaxLen, want: false},
		{name: "exactly min", text: "جيد!!", min: ReviewMinLen, max: ReviewMaxLen, want: true},
		{name: "arabic counted in characters", text: strings.Repeat("ط", 200), min: 1, max: 200, want: true},
		{name: "over max", text: strings.Repeat("a", 201), min: 1, max: 200, want: false},
		{name: "short after sanitizing", text: "<<<<<ab>>>>>", min: ReviewMinLen, max: ReviewMaxLen, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Validate(tt.text, tt.min, tt.max); got != tt.want {
				t.Errorf("Validate(%q, %d, %d) = %v, want %v", tt.text, tt.min, tt.max, got, tt.want)
			}
		})
	}
}

func TestValidateDefaultAndReview(t *testing.T) {
	if !ValidateDefault("x") {
		t.Error("single character should pass the default bounds")
	}
	if ValidateReview("x") {
		t.Error("single character should fail the review bounds")
	}
	if !ValidateReview("تجربة رائعة جدا") {
		t.Error("normal review should pass")
	}
}
