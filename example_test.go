package fuzzkit_test

import (
	"fmt"
	"math/rand"

	"go.llib.dev/fuzzkit"
)

func ExampleFuzzer() {
	type Coordinate struct {
		X int
		Y int
	}

	f := fuzzkit.New()
	_ = f.AddTypeRule(fuzzkit.RuleFromValue(func() any { return rand.Int() }), fuzzkit.TypeOf[int]())

	var c Coordinate
	if err := f.Fuzz(&c); err != nil {
		panic(err)
	}
}

func ExampleFuzzer_AddPropertyRule() {
	type User struct {
		ID   string
		Name string
	}

	f := fuzzkit.New()
	_ = f.AddTypeRule(fuzzkit.RuleFromValue(func() any { return "random" }), fuzzkit.TypeOf[string]())
	// pin one property to a deterministic fixture value
	_ = f.AddPropertyRule(fuzzkit.TypeOf[User](), "ID", fuzzkit.RuleFromValue(func() any { return "user-1" }))

	u := fuzzkit.MustFuzz(f, &User{})
	fmt.Println(u.ID)
	// Output: user-1
}

func ExampleRecursiveRuleResolver() {
	type Inner struct{ N int }
	type Outer struct{ Inner Inner }

	f := fuzzkit.New()
	_ = f.SetRuleResolver(fuzzkit.RecursiveRuleResolver{Next: fuzzkit.DefaultRuleResolver})
	_ = f.AddTypeRule(fuzzkit.RuleFromValue(func() any { return rand.Int() }), fuzzkit.TypeOf[int]())

	var o Outer
	_ = f.Fuzz(&o) // o.Inner.N got a random value as well
}

func ExampleDifferentValueGenerator() {
	type Switch struct{ On bool }

	dvg := fuzzkit.NewDifferentValueGenerator(10)
	gen := dvg.Wrap(func(ctx *fuzzkit.Context) (any, error) {
		return rand.Intn(2) == 0, nil
	})

	f := fuzzkit.New()
	_ = f.AddTypeRule(fuzzkit.RuleFromGenerator(gen), fuzzkit.TypeOf[bool]())

	s := Switch{On: true}
	if err := f.Fuzz(&s); err != nil {
		panic(err)
	}
	fmt.Println(s.On)
	// Output: false
}
