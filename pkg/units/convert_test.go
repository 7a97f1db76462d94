package units

import (
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/fitsunits/pkg/errors"
)

func TestConvert(t *testing.T) {
	tests := []struct {
		have, want string
		c          Conversion
	}{
		{"km", "m", Conversion{Scale: 1e3, Power: 1}},
		{"m", "km", Conversion{Scale: 1e-3, Power: 1}},
		{"deg", "arcsec", Conversion{Scale: 3600, Power: 1}},
		{"h", "s", Conversion{Scale: 3600, Power: 1}},
		{"yr", "d", Conversion{Scale: 365.25, Power: 1}},
		{"km/h", "m/s", Conversion{Scale: 1 / 3.6, Power: 1}},
		{"Jy", "W m-2 Hz-1", Conversion{Scale: 1e-26, Power: 1}},
		{"KM/SEC", "m/s", Conversion{Scale: 1e3, Power: 1}},
		{"[km] distance", "m", Conversion{Scale: 1e3, Power: 1}},
		{"log(Hz)", "log(kHz)", Conversion{Scale: 1, Offset: -3, Power: 1}},
		{"log(MHz)", "ln(Hz)", Conversion{Scale: math.Ln10, Offset: math.Log(1e6), Power: 1}},
		{"ln(Hz)", "log(MHz)", Conversion{Scale: 1 / math.Ln10, Offset: -6, Power: 1}},
		{"ln(km)", "ln(m)", Conversion{Scale: 1, Offset: math.Log(1e3), Power: 1}},
		{"exp(ms)", "exp(/kHz)", Conversion{Scale: 1, Power: 1}},
		{"exp(s)", "exp(ms)", Conversion{Scale: 1, Power: 1e3}},
	}
	for _, tt := range tests {
		t.Run(tt.have+"->"+tt.want, func(t *testing.T) {
			got, err := Convert(tt.have, tt.want)
			if err != nil {
				t.Fatalf("Convert: %v", err)
			}
			if diff := cmp.Diff(tt.c, got, approx); diff != "" {
				t.Errorf("Convert(%q, %q) mismatch (-want +got):\n%s", tt.have, tt.want, diff)
			}
		})
	}
}

func TestConvertStatus(t *testing.T) {
	tests := []struct {
		have, want string
		status     Status
	}{
		{"deg", "m", StatusBadUnitSpec},
		{"m/s", "m", StatusBadUnitSpec},
		{"S", "ms", StatusBadUnitSpec},
		{"m", "log(m)", StatusBadFuncs},
		{"log(m)", "m", StatusBadFuncs},
		{"exp(m)", "log(m)", StatusBadFuncs},
		{"ln(m)", "exp(m)", StatusBadFuncs},
		{"m//s", "m", StatusConsecBinops},
		{"m", "(m", StatusUnbalParen},
		{"[km", "m", StatusParserError},
		{"ym**20", "m**20", StatusBadNumMultiplier},
		{"m**20", "ym**20", StatusBadNumMultiplier},
		{"Ym**12", "ym**12", StatusBadUnitSpec},
		{"ym**12", "Ym**12", StatusBadUnitSpec},
	}
	for _, tt := range tests {
		t.Run(tt.have+"->"+tt.want, func(t *testing.T) {
			got, err := Convert(tt.have, tt.want)
			if s := StatusOf(err); s != tt.status {
				t.Fatalf("status = %d (%v), want %d", s, err, tt.status)
			}
			if got != (Conversion{Power: 1}) {
				t.Errorf("failed conversion = %+v, want {0 0 1}", got)
			}
		})
	}
}

func TestConvertKeepsTranslateCause(t *testing.T) {
	_, err := Convert("m", "[km")
	e, ok := err.(*errors.Error)
	if !ok {
		t.Fatalf("err = %T, want *errors.Error", err)
	}
	cause, ok := e.Cause.(*errors.Error)
	if !ok || cause.Function != "units.Translate" {
		t.Fatalf("cause = %+v, want the Translate record", e.Cause)
	}
	if want := "Cannot translate '[km': Unbalanced bracket in '[km'"; errors.UserMessage(err) != want {
		t.Errorf("UserMessage = %q, want %q", errors.UserMessage(err), want)
	}
}

func TestConvertMismatchMessage(t *testing.T) {
	_, err := Convert("deg", "m")
	if err == nil {
		t.Fatal("expected error")
	}
	want := "Mismatched units type 'plane angle': have 'deg', want 'm'"
	if !strings.Contains(err.Error(), want) {
		t.Errorf("error = %q, want it to contain %q", err, want)
	}
}

func TestConvertWithUnsafe(t *testing.T) {
	c, err := ConvertWith(TranslateS, "S", "ms")
	if err != nil {
		t.Fatalf("ConvertWith: %v", err)
	}
	if math.Abs(c.Scale-1e3) > 1e-9 {
		t.Errorf("scale = %g, want 1000", c.Scale)
	}
}

func TestConvertIdentity(t *testing.T) {
	for _, u := range []string{"m", "km/s", "10**-3 kg m2/s2", "log(MHz)", "ln(m)", "exp(s)", "sqrt(Hz)", "", "mag"} {
		c, err := Convert(u, u)
		if err != nil {
			t.Errorf("Convert(%q, %q): %v", u, u, err)
			continue
		}
		if !c.IsIdentity() {
			t.Errorf("Convert(%q, %q) = %+v, want identity", u, u, c)
		}
	}
}

func TestConvertRoundTrip(t *testing.T) {
	pairs := [][2]string{
		{"km", "AU"},
		{"deg", "rad"},
		{"Jy", "erg s-1 cm-2 Hz-1"},
		{"log(MHz)", "ln(Hz)"},
		{"ln(pc)", "log(lyr)"},
	}
	for _, p := range pairs {
		there, err := Convert(p[0], p[1])
		if err != nil {
			t.Fatalf("Convert(%q, %q): %v", p[0], p[1], err)
		}
		back, err := Convert(p[1], p[0])
		if err != nil {
			t.Fatalf("Convert(%q, %q): %v", p[1], p[0], err)
		}
		for _, v := range []float64{0.5, 1, 42} {
			got := back.Apply(there.Apply(v))
			if math.Abs(got-v) > 1e-9*v {
				t.Errorf("%s -> %s -> %s: %g became %g", p[0], p[1], p[0], v, got)
			}
		}
	}
}

func TestConversionApply(t *testing.T) {
	c := Conversion{Scale: 2, Offset: 1, Power: 2}
	if got := c.Apply(3); got != 49 {
		t.Errorf("Apply(3) = %g, want 49", got)
	}
}
