package cli

import (
	"fmt"
	"strings"

	"github.com/zyndor/xm"
)

// The showcase suites exercise each registration form. They register at
// package init, in source order, which is also their execution order.

var _ = xm.Test("Math", "Addition", func() {
	xm.Eq(4, 2+2)
	xm.Ne(5, 2+2)
})

var _ = xm.Test("Math", "Ordering", func() {
	xm.Lt(1, 2)
	xm.Le(2, 2)
	xm.Gt(3.14, 3.0)
	xm.InEpsilon(0.1+0.2, 0.3, 1e-9)
})

type builderFixture struct {
	sb strings.Builder
}

func (f *builderFixture) SetUp() {
	f.sb.WriteString("xm")
}

var _ = xm.TestF("Strings", "Builder", func(f *builderFixture) {
	f.sb.WriteString("!")
	xm.StrEq("xm!", f.sb.String())
})

var _ = xm.Test("Strings", "Fields", func() {
	xm.DeepEq([]string{"a", "b"}, strings.Fields(" a  b "))
	xm.Panics(func() {
		var s []string
		_ = s[3]
	}, "s[3] on a nil slice")
})

var (
	names = xm.NewSet("name", "Alice", "Bob", "Charlie")
	ages  = xm.NewSet("age", 8, 21, 50)
)

var _ = xm.TestC("People", "Greeting", xm.Space{names, ages}, func(values []any, _ uint32) {
	greeting := fmt.Sprintf("Hello %s, age %d!", values[0], values[1])
	xm.True(strings.HasPrefix(greeting, "Hello "), "greeting starts with Hello")
	xm.True(strings.HasSuffix(greeting, "!"), "greeting ends with !")
})
