package bench

import (
	"context"
	"testing"

	"mailbox-engine/engine"
	"mailbox-engine/notation"
)

func BenchmarkStatic_Kiwipete(b *testing.B) {
	p := notation.MustParseFEN(kiwipete)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = engine.Static(p)
	}
}

func BenchmarkScore_Uncached(b *testing.B) {
	p := notation.MustParseFEN(kiwipete)
	e := engine.NewEvaluator(nil)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = e.Score(p)
	}
}

func BenchmarkBestMove_Initial_D3(b *testing.B) {
	p := notation.MustParseFEN(notation.StartFEN)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		// Fresh cache per run so every iteration does the same work.
		e := engine.New(engine.DefaultOptions())
		if _, err := e.BestMove(context.Background(), p, 3); err != nil {
			b.Fatal(err)
		}
	}
}
