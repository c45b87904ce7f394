package header_test

import (
	"fmt"

	"hdrnorm/internal/header"
)

func Example() {
	fmt.Println(header.String("M31").Kind())
	fmt.Println(header.Float(59000).Kind())
	fmt.Println(header.Nested(nil).Kind())
	fmt.Println(header.Kind(0))
	// Output:
	// KindString
	// KindFloat
	// KindNested
	// Kind(0)
}
