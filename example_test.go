package clic_test

import (
	"context"
	"fmt"
	"log"

	"github.com/aretw0/clic"
	"github.com/aretw0/clic/pkg/domain"
)

// printer writes command output to stdout, leaving out step separators.
var printer = domain.SinkFunc(func(line string) {
	if line != domain.Separator {
		fmt.Println(line)
	}
})

// ExampleEngine_Process shows a single command and a flow chaining two steps.
func ExampleEngine_Process() {
	ctx := context.Background()
	eng, err := clic.New(ctx, clic.WithFlow("greet", "hello", "echo"))
	if err != nil {
		log.Fatal(err)
	}

	ec := eng.NewContext(printer)
	if _, err := eng.Process(ctx, "hello --name 'Ada Lovelace'", ec); err != nil {
		log.Fatal(err)
	}
	if _, err := eng.Process(ctx, "greet", ec); err != nil {
		log.Fatal(err)
	}
	// Output:
	// Hello Ada Lovelace
	// Hello world
	// Hello world
}

// ExampleEngine_Complete shows command name completion.
func ExampleEngine_Complete() {
	eng, err := clic.New(context.Background())
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(eng.Complete("he", 2))
	fmt.Println(eng.Complete("ec", 2))
	fmt.Println(eng.Complete("hello --na", 10))
	// Output:
	// hel
	// echo
	// hello --name
}
