package units_test

import (
	"fmt"

	"github.com/matzehuels/fitsunits/pkg/units"
)

func ExampleConvert() {
	c, err := units.Convert("km/h", "m/s")
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Printf("36 km/h = %.4g m/s\n", c.Apply(36))
	// Output:
	// 36 km/h = 10 m/s
}

func ExampleConvert_functions() {
	c, _ := units.Convert("log(Hz)", "log(kHz)")
	fmt.Printf("scale=%g offset=%.4g power=%g\n", c.Scale, c.Offset, c.Power)
	// Output:
	// scale=1 offset=-3 power=1
}

func ExampleParse() {
	spec, err := units.Parse("10**-3 kg m2/s2")
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Println(spec.Func)
	fmt.Printf("%.3g\n", spec.Scale)
	fmt.Println(spec.Dims)
	// Output:
	// none
	// 0.001
	// kg m2 s-2
}

func ExampleParse_error() {
	_, err := units.Parse("km//s")
	fmt.Println(units.StatusOf(err), int(units.StatusOf(err)))
	// Output:
	// Consecutive binary operators 8
}

func ExampleTranslate() {
	out, status, _ := units.Translate(0, " KM / SEC ")
	fmt.Printf("%q %d\n", out, status)

	out, status, err := units.Translate(units.TranslateS, "S")
	fmt.Printf("%q %d %v\n", out, status, err != nil)
	// Output:
	// "km/s" 0
	// "s" 12 true
}
