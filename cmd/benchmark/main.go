package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"time"

	"github.com/delaneyj/proxyparty/reactivity"
	"github.com/jamiealquiza/tachymeter"
	"github.com/jedib0t/go-pretty/v6/table"
)

func main() {
	flag.Parse()

	f, err := os.Create("default.pgo")
	if err != nil {
		log.Fatal(err)
	}
	pprof.StartCPUProfile(f)
	defer pprof.StopCPUProfile()

	log.Printf("warming up")
	benchmarkPropagate(false)
	benchmarkRecordFanout(false)

	benchmarkPropagate(true)
	benchmarkRecordFanout(true)
}

var (
	ww    = []int{1, 10, 100, 1_000}
	hh    = []int{1, 10, 100, 1_000}
	iters = 100
)

func benchmarkPropagate(shouldRender bool) {
	tbl := table.NewWriter()
	tbl.SetTitle("Proxyparty Propagate")
	tbl.SetOutputMirror(os.Stdout)
	tbl.AppendHeader(table.Row{"benchmark", "avg", "min", "p75", "p99", "max"})

	for _, w := range ww {
		for _, h := range hh {
			tach := tachymeter.New(&tachymeter.Config{Size: iters})

			rs := reactivity.CreateReactiveSystem(func(from *reactivity.Effect, err error) {
				log.Panic(err)
			})
			src := reactivity.NewRef(rs, 1)
			for i := 0; i < w; i++ {
				last := src.Value
				for j := 0; j < h; j++ {
					prev := last
					last = reactivity.NewComputed(rs, func() int {
						return prev() + 1
					}).Value
				}

				final := last
				reactivity.NewEffect(rs, func() any {
					return final()
				})
			}

			for i := 0; i < iters; i++ {
				start := time.Now()
				src.Set(src.Peek() + 1)
				tach.AddTime(time.Since(start))
			}

			calc := tach.Calc()
			tbl.AppendRows([]table.Row{
				{
					fmt.Sprintf("propagate: %d * %d", w, h),
					calc.Time.Avg,
					calc.Time.Min,
					calc.Time.P75,
					calc.Time.P99,
					calc.Time.Max,
				},
			})
		}
	}

	if shouldRender {
		tbl.Render()
	}
}

// benchmarkRecordFanout measures keyed writes on a record with one effect
// per key, which is where keyed tracking earns its keep over whole-object
// subscription.
func benchmarkRecordFanout(shouldRender bool) {
	tbl := table.NewWriter()
	tbl.SetTitle("Proxyparty Record Fanout")
	tbl.SetOutputMirror(os.Stdout)
	tbl.AppendHeader(table.Row{"benchmark", "avg", "min", "p75", "p99", "max"})

	for _, keys := range []int{10, 100, 1_000} {
		tach := tachymeter.New(&tachymeter.Config{Size: iters})

		rs := reactivity.CreateReactiveSystem(func(from *reactivity.Effect, err error) {
			log.Panic(err)
		})
		fields := map[string]any{}
		for i := 0; i < keys; i++ {
			fields[fmt.Sprintf("k%d", i)] = 0
		}
		rec := reactivity.ReactiveRecord(rs, fields)
		for i := 0; i < keys; i++ {
			key := fmt.Sprintf("k%d", i)
			reactivity.NewEffect(rs, func() any {
				return rec.Get(key)
			})
		}

		hot := "k0"
		for i := 0; i < iters; i++ {
			start := time.Now()
			rec.Set(hot, i+1)
			tach.AddTime(time.Since(start))
		}

		calc := tach.Calc()
		tbl.AppendRows([]table.Row{
			{
				fmt.Sprintf("fanout: %d keys, 1 hot", keys),
				calc.Time.Avg,
				calc.Time.Min,
				calc.Time.P75,
				calc.Time.P99,
				calc.Time.Max,
			},
		})
	}

	if shouldRender {
		tbl.Render()
	}
}
