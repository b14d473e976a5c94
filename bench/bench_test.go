// Package bench provides reproducible micro-benchmarks for internmint. Run
// via:
//
//	go test ./bench -bench=. -benchmem -cpu 1,4,16
//
// We measure:
//  1. InternNew      — first interning of distinct byte sequences (miss path)
//  2. InternRepeat    — repeated interning of the same sequence (hit path)
//  3. Clone           — Handle.Clone, which never touches the pool
//  4. ConcurrentIntern — highly concurrent hits (b.RunParallel)
//
// © 2025 internmint authors. MIT License.
package bench

import (
	"fmt"
	"testing"

	intern "github.com/Voskan/internmint/pkg/intern"
)

func BenchmarkInternNew(b *testing.B) {
    b.ReportAllocs()
    values := make([][]byte, b.N)
    for i := range values {
        values[i] = []byte(fmt.Sprintf("bench-new-%d", i))
    }
    handles := make([]*intern.Handle, b.N)

    b.ResetTimer()
    for i := 0; i < b.N; i++ {
        h, err := intern.New(values[i])
        if err != nil {
            b.Fatal(err)
        }
        handles[i] = h
    }
    b.StopTimer()

    for _, h := range handles {
        h.Release()
    }
}

func BenchmarkInternRepeat(b *testing.B) {
    b.ReportAllocs()
    seed, err := intern.New([]byte("bench-repeat-constant"))
    if err != nil {
        b.Fatal(err)
    }
    defer seed.Release()

    b.ResetTimer()
    for i := 0; i < b.N; i++ {
        h, err := intern.New([]byte("bench-repeat-constant"))
        if err != nil {
            b.Fatal(err)
        }
        h.Release()
    }
}

func BenchmarkClone(b *testing.B) {
    b.ReportAllocs()
    seed, err := intern.New([]byte("bench-clone-constant"))
    if err != nil {
        b.Fatal(err)
    }
    defer seed.Release()

    b.ResetTimer()
    for i := 0; i < b.N; i++ {
        c := seed.Clone()
        c.Release()
    }
}

func BenchmarkConcurrentIntern(b *testing.B) {
    b.ReportAllocs()
    seed, err := intern.New([]byte("bench-concurrent-constant"))
    if err != nil {
        b.Fatal(err)
    }
    defer seed.Release()

    b.ResetTimer()
    b.RunParallel(func(pb *testing.PB) {
        for pb.Next() {
            h, err := intern.New([]byte("bench-concurrent-constant"))
            if err != nil {
                b.Fatal(err)
            }
            h.Release()
        }
    })
}
