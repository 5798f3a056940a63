package unabs_test

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/aretw0/unabs"
)

// ExampleEngine_Execute runs a program to completion, streaming its output.
func ExampleEngine_Execute() {
	eng := unabs.New()

	res, err := eng.Execute(context.Background(), "`r```````````.H.e.l.l.o. .w.o.r.l.di", os.Stdout)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("result:", res.Value)
	// Output:
	// Hello world
	// result: i
}

// ExampleEngine_Advance runs a non-terminating program a few steps at a time.
// The session can be persisted between calls and resumed later.
func ExampleEngine_Advance() {
	eng := unabs.New()
	ctx := context.Background()

	sess, err := eng.Start(ctx, "loop", "``ci`.x`ci")
	if err != nil {
		log.Fatal(err)
	}

	for i := 0; i < 3; i++ {
		sess, _, err = eng.Advance(ctx, sess, 50)
		if err != nil {
			log.Fatal(err)
		}
	}
	fmt.Println(sess.Status, sess.Steps)
	// Output:
	// suspended 150
}
