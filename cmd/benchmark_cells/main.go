package main

import (
	"fmt"
	"log"
	"math"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/delaneyj/proxyparty/reactivity"
	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
)

func main() {
	log.Print("Starting cell-graph benchmark, please wait...")
	defer log.Print("Finished cell-graph benchmark")

	perfTestCfgs := []benchmarkTestConfig{
		{
			name:           "simple component",
			width:          10,
			staticFraction: 1,
			nSources:       2,
			totalLayers:    5,
			readFraction:   0.2,
			iterations:     60000,
		},
		{
			name:           "dynamic component",
			width:          10,
			totalLayers:    10,
			staticFraction: 0.75,
			nSources:       6,
			readFraction:   0.2,
			iterations:     15000,
		},
		{
			name:           "wide dense",
			width:          1000,
			totalLayers:    5,
			staticFraction: 1,
			nSources:       25,
			readFraction:   1,
			iterations:     3000,
		},
		{
			name:           "deep",
			width:          5,
			totalLayers:    500,
			staticFraction: 1,
			nSources:       3,
			readFraction:   1,
			iterations:     500,
		},
	}

	type results struct {
		sum      int
		count    int64
		duration time.Duration
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{
		"framework", "size", "nSources", "read%", "static%",
		"nTimes", "test", "time",
		"updateRate", "title",
	})

	testRepeats := 5
	for _, cfg := range perfTestCfgs {
		log.Printf("Running '%s' config", cfg.name)
		counter := new(int64)

		bestResult := &results{duration: time.Hour}
		for i := 0; i < testRepeats; i++ {
			log.Printf("Running '%s' config, iteration %d/%d", cfg.name, i+1, testRepeats)
			graph := benchmarkMakeGraph(&benchmarkMakeGraphConfig{
				counter:        counter,
				width:          cfg.width,
				totalLayers:    cfg.totalLayers,
				nSources:       cfg.nSources,
				staticFraction: cfg.staticFraction,
			})

			*counter = 0
			start := time.Now()
			sum := benchmarkRunGraph(&benchmarkRunGraphConfig{
				graph:        graph,
				iterations:   cfg.iterations,
				readFraction: cfg.readFraction,
			})
			duration := time.Since(start)

			if duration < bestResult.duration {
				bestResult.duration = duration
				bestResult.sum = sum
				bestResult.count = *counter
			}
		}

		makeTitle := func() string {
			sb := strings.Builder{}
			sb.WriteString(fmt.Sprintf("%dx%d %d sources", cfg.width, cfg.totalLayers, cfg.nSources))
			if cfg.staticFraction < 1 {
				sb.WriteString(" dynamic")
			}
			if cfg.readFraction < 1 {
				sb.WriteString(fmt.Sprintf(" read %0.2f%%", 100*cfg.readFraction))
			}
			return sb.String()
		}

		updateRate := float64(bestResult.count) / (float64(bestResult.duration) / float64(time.Millisecond))

		table.Append([]string{
			"proxyparty",
			fmt.Sprintf("%dx%d", cfg.width, cfg.totalLayers),
			fmt.Sprint(cfg.nSources),
			fmt.Sprint(cfg.readFraction),
			fmt.Sprint(cfg.staticFraction),
			humanize.Comma(cfg.iterations),
			cfg.name,
			fmt.Sprint(bestResult.duration),
			humanize.Comma(int64(updateRate)),
			makeTitle(),
		})
	}
	table.Render()
}

type benchmarkTestConfig struct {
	name           string  // friendly name for the test, should be unique
	width          int64   // width of dependency graph to construct
	totalLayers    int64   // depth of dependency graph to construct
	staticFraction float64 // fraction of nodes with a fixed read set
	nSources       int64   // number of sources in each node
	readFraction   float64 // fraction of the last layer to read each iteration
	iterations     int64   // number of test iterations
}

type benchmarkGraph struct {
	rs      *reactivity.ReactiveSystem
	sources []*reactivity.Ref[int]
	layers  [][]*reactivity.Computed[int]
}

type benchmarkMakeGraphConfig struct {
	counter                      *int64
	width, totalLayers, nSources int64
	staticFraction               float64
}

func benchmarkMakeGraph(cfg *benchmarkMakeGraphConfig) *benchmarkGraph {
	rs := reactivity.CreateReactiveSystem(func(from *reactivity.Effect, err error) {
		log.Panic(err)
	})
	sources := make([]*reactivity.Ref[int], cfg.width)
	for i := range sources {
		sources[i] = reactivity.NewRef(rs, i)
	}
	graph := &benchmarkGraph{rs: rs, sources: sources}

	random := rand.New(rand.NewSource(0))
	prevRow := make([]func() int, len(sources))
	for i, s := range sources {
		prevRow[i] = s.Value
	}
	for l := int64(0); l < cfg.totalLayers-1; l++ {
		row := makeBenchmarkRow(&benchmarkRowConfig{
			rs:             rs,
			sources:        prevRow,
			counter:        cfg.counter,
			staticFraction: cfg.staticFraction,
			nSources:       cfg.nSources,
			rand:           random,
		})
		graph.layers = append(graph.layers, row)
		prevRow = make([]func() int, len(row))
		for i, c := range row {
			prevRow[i] = c.Value
		}
	}
	return graph
}

type benchmarkRunGraphConfig struct {
	graph        *benchmarkGraph
	iterations   int64
	readFraction float64
}

// Write one of the sources each iteration and read some or all of the
// leaves. Returns the sum of the leaf values read last.
func benchmarkRunGraph(cfg *benchmarkRunGraphConfig) int {
	random := rand.New(rand.NewSource(0))
	leaves := cfg.graph.layers[len(cfg.graph.layers)-1]
	skipCount := int(math.Round(float64(len(leaves)) * (1 - cfg.readFraction)))
	readLeaves := benchmarkRemoveElems(leaves, skipCount, random)

	for i := 0; i < int(cfg.iterations); i++ {
		sourceDex := i % len(cfg.graph.sources)
		cfg.graph.sources[sourceDex].Set(i + sourceDex)

		for _, leaf := range readLeaves {
			leaf.Value()
		}
	}

	sum := 0
	for _, leaf := range readLeaves {
		sum += leaf.Value()
	}
	return sum
}

func benchmarkRemoveElems[T any](src []T, rmCount int, rand *rand.Rand) []T {
	copyWithRemovals := make([]T, len(src))
	copy(copyWithRemovals, src)
	for i := 0; i < rmCount; i++ {
		rmDex := rand.Intn(len(copyWithRemovals))
		copyWithRemovals[rmDex] = copyWithRemovals[len(copyWithRemovals)-1]
		copyWithRemovals = copyWithRemovals[:len(copyWithRemovals)-1]
	}
	return copyWithRemovals
}

type benchmarkRowConfig struct {
	rs             *reactivity.ReactiveSystem
	sources        []func() int
	counter        *int64
	staticFraction float64
	nSources       int64
	rand           *rand.Rand
}

func makeBenchmarkRow(cfg *benchmarkRowConfig) []*reactivity.Computed[int] {
	row := make([]*reactivity.Computed[int], len(cfg.sources))

	for myDex := range cfg.sources {
		mySources := make([]func() int, 0, cfg.nSources)
		for sourceDex := 0; sourceDex < int(cfg.nSources); sourceDex++ {
			x := (myDex + sourceDex) % len(cfg.sources)
			mySources = append(mySources, cfg.sources[x])
		}

		staticNode := cfg.rand.Float64() < cfg.staticFraction
		if staticNode {
			// static node, always reads every source
			row[myDex] = reactivity.NewComputed(cfg.rs, func() int {
				*cfg.counter++
				sum := 0
				for _, source := range mySources {
					sum += source()
				}
				return sum
			})
		} else {
			// dynamic node, sheds one source depending on its first read
			first := mySources[0]
			tail := mySources[1:]
			row[myDex] = reactivity.NewComputed(cfg.rs, func() int {
				*cfg.counter++
				sum := first()
				shouldDrop := sum&0x1 > 0
				dropDex := sum % len(tail)

				for i := 0; i < len(tail); i++ {
					if shouldDrop && i == dropDex {
						continue
					}
					sum += tail[i]()
				}
				return sum
			})
		}
	}

	return row
}
