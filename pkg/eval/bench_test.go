package eval_test

import (
	"io"
	"testing"

	"github.com/agenthands/snailz/pkg/compiler/parser"
	"github.com/agenthands/snailz/pkg/eval"
	"github.com/agenthands/snailz/pkg/stdlib"
)

func BenchmarkWhileLoop(b *testing.B) {
	// i counts to 1000 through the tree walker.
	reset, _, err := parser.ParseString("i = 0")
	if err != nil {
		b.Fatal(err)
	}
	loop, _, err := parser.ParseString("while (i < 1000) i = i + 1")
	if err != nil {
		b.Fatal(err)
	}

	ev := eval.New(io.Discard)
	store := eval.NewStore()

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := ev.Evaluate(reset, store); err != nil {
			b.Fatal(err)
		}
		if _, err := ev.Evaluate(loop, store); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkShuffleSort(b *testing.B) {
	node, _, err := parser.ParseString(">>(l)")
	if err != nil {
		b.Fatal(err)
	}
	build, _, _ := parser.ParseString("l = [5, 3, 4, 1, 2]")

	ev := eval.New(io.Discard, eval.WithSorter(stdlib.NewShuffleSorter(1)))
	store := eval.NewStore()
	if _, err := ev.Evaluate(build, store); err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := ev.Evaluate(node, store); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkParse(b *testing.B) {
	src := "if (x > 1 & y < 2) z = [1, 2, 3] + [x * 2 ^ 3 % 4] else z = -x"
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, _, err := parser.ParseString(src); err != nil {
			b.Fatal(err)
		}
	}
}
