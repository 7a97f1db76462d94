package units

import (
	"strings"
	"testing"
)

func TestTranslate(t *testing.T) {
	tests := []struct {
		name   string
		ctrl   Control
		in     string
		want   string
		status Status
	}{
		{"Degrees", 0, "DEG", "deg", StatusSuccess},
		{"Plural", 0, "degrees", "deg", StatusSuccess},
		{"Standard", 0, "km/s", "km/s", StatusNoChange},
		{"BlanksOnly", 0, "  m   s-1 ", "m s-1", StatusNoChange},
		{"Operators", 0, "  KM / SEC ", "km/s", StatusSuccess},
		{"Multiplier", 0, "10**3 M", "10**3 m", StatusSuccess},
		{"Parens", 0, "( KM )", "(km)", StatusSuccess},
		{"Function", 0, "log(HZ)", "log(Hz)", StatusSuccess},
		{"Bracketed", 0, "[DEG] right ascension", "[deg] right ascension", StatusSuccess},
		{"BracketedStandard", 0, " [m] ", "[m] ", StatusNoChange},
		{"CaseSensitive", 0, "kHZ", "kHZ", StatusNoChange},
		{"WholeTokens", 0, "Msec", "Msec", StatusNoChange},
		{"Kelvin", 0, "KELVINS", "K", StatusSuccess},
		{"Pascal", 0, "kPa PASCAL", "kPa Pa", StatusSuccess},
		{"UnsafeS", 0, "S", "S", StatusUnsafeTranslation},
		{"UnsafeSApplied", TranslateS, "S", "s", StatusUnsafeTranslation},
		{"UnsafeHApplied", TranslateH, "H", "h", StatusUnsafeTranslation},
		{"UnsafeDApplied", TranslateD, "D", "d", StatusUnsafeTranslation},
		{"UnsafeDWrongBit", TranslateS, "D", "D", StatusUnsafeTranslation},
		{"UnsafeAll", TranslateAll, "KM/S", "km/s", StatusUnsafeTranslation},
		{"MissingClose", 0, "[km", "[km", StatusParserError},
		{"MissingOpen", 0, "km]", "km]", StatusParserError},
		{"Nested", 0, "[[km]", "[[km]", StatusParserError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, status, err := Translate(tt.ctrl, tt.in)
			if got != tt.want {
				t.Errorf("Translate(%d, %q) = %q, want %q", tt.ctrl, tt.in, got, tt.want)
			}
			if status != tt.status {
				t.Errorf("status = %d, want %d", status, tt.status)
			}
			wantErr := tt.status == StatusParserError || tt.status == StatusUnsafeTranslation
			if (err != nil) != wantErr {
				t.Fatalf("err = %v, want error: %v", err, wantErr)
			}
			if err != nil && StatusOf(err) != tt.status {
				t.Errorf("StatusOf(err) = %d, want %d", StatusOf(err), tt.status)
			}
		})
	}
}

func TestTranslateUnsafeMessage(t *testing.T) {
	_, _, err := Translate(0, "S H")
	if err == nil {
		t.Fatal("expected warning")
	}
	if !strings.Contains(err.Error(), "'S'") {
		t.Errorf("warning should name the first unsafe token: %v", err)
	}
}

func TestTranslateOutputParses(t *testing.T) {
	for _, in := range []string{"KM/SEC", "DEGREES", "[METERS] height", "10**6 HZ", "VOLTS / METER"} {
		out, _, err := Translate(0, in)
		if err != nil {
			t.Fatalf("Translate(%q): %v", in, err)
		}
		if _, err := Parse(out); err != nil {
			t.Errorf("Parse(Translate(%q) = %q): %v", in, out, err)
		}
	}
}

func TestAliases(t *testing.T) {
	var unsafe []string
	for _, a := range Aliases() {
		if a.Unsafe != 0 {
			unsafe = append(unsafe, a.Match+">"+a.Replace)
		}
		if _, _, ok := resolve(a.Replace); !ok {
			t.Errorf("alias %q replaces with unknown unit %q", a.Match, a.Replace)
		}
	}
	if got := strings.Join(unsafe, " "); got != "S>s H>h D>d" {
		t.Errorf("unsafe aliases = %q", got)
	}
}
