package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"hexbattle/internal/combat"
	"hexbattle/internal/config"
)

const maxSteps = 50 * 60 // termination backstop: rounds x units

type singleResult struct {
	Winner  int              `json:"winner"`
	Rounds  int              `json:"rounds"`
	Steps   int              `json:"steps"`
	Actions []*combat.Action `json:"actions,omitempty"`
	Log     []string         `json:"log,omitempty"`
}

type batchSummary struct {
	Runs      int     `json:"runs"`
	P1Wins    int     `json:"p1_wins"`
	P2Wins    int     `json:"p2_wins"`
	Draws     int     `json:"draws"`
	P1Rate    float64 `json:"p1_rate"`
	AvgRounds float64 `json:"avg_rounds"`
}

func main() {
	var armies, out string
	var seed int64
	var n int
	var saveLog bool
	flag.StringVar(&armies, "armies", "assets/armies.yaml", "armies config file")
	flag.StringVar(&out, "out", "out.json", "output file (single) or summary file (batch)")
	flag.Int64Var(&seed, "seed", 0, "seed override (0 = use config seed)")
	flag.IntVar(&n, "n", 1, "number of battles to simulate")
	flag.BoolVar(&saveLog, "log", true, "save the action log when n==1")
	flag.Parse()

	cfg, err := config.LoadArmies(armies)
	if err != nil {
		panic(err)
	}

	if n <= 1 {
		b, err := combat.NewBattleFromConfig(cfg, seed, combat.DefaultOptions())
		if err != nil {
			panic(err)
		}
		res := runOne(b, saveLog)
		if err := os.WriteFile(out, marshalPretty(res), 0644); err != nil {
			panic(err)
		}
		fmt.Printf("Single battle finished. Winner=%d, rounds=%d, steps=%d -> %s\n",
			res.Winner, res.Rounds, res.Steps, out)
		return
	}

	baseSeed := seed
	if baseSeed == 0 {
		baseSeed = cfg.Seed
	}
	if baseSeed == 0 {
		baseSeed = 1
	}

	var mu sync.Mutex
	var sum batchSummary
	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	opts := combat.Options{ApplyEventsImmediately: true}
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			b, err := combat.NewBattleFromConfig(cfg, baseSeed+int64(i)*7919, opts)
			if err != nil {
				return err
			}
			res := runOne(b, false)
			mu.Lock()
			defer mu.Unlock()
			sum.Runs++
			switch res.Winner {
			case 1:
				sum.P1Wins++
			case 2:
				sum.P2Wins++
			default:
				sum.Draws++
			}
			sum.AvgRounds += float64(res.Rounds)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		panic(err)
	}
	sum.P1Rate = float64(sum.P1Wins) / float64(sum.Runs)
	sum.AvgRounds /= float64(sum.Runs)
	if err := os.WriteFile(out, marshalPretty(sum), 0644); err != nil {
		panic(err)
	}
	fmt.Printf("Batch %d done: P1 %d / P2 %d / draws %d -> %s\n",
		sum.Runs, sum.P1Wins, sum.P2Wins, sum.Draws, filepath.Base(out))
}

func runOne(b *combat.Battle, record bool) singleResult {
	var res singleResult
	for res.Steps < maxSteps {
		if !b.Step() {
			break
		}
		res.Steps++
		if record {
			if a := b.LastAction(); a != nil {
				res.Actions = append(res.Actions, a)
			}
		}
	}
	res.Winner, _ = b.Winner()
	res.Rounds = b.Round()
	if record {
		res.Log = b.Log()
	}
	return res
}

func marshalPretty(v any) []byte {
	b, _ := json.MarshalIndent(v, "", "  ")
	return b
}
