package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"gridverse.ai/internal/persistence/episodelog"
)

func main() {
	var (
		path    = flag.String("log", "", "episode log path (.jsonl.zst)")
		verbose = flag.Bool("v", false, "print every step record")
	)
	flag.Parse()

	logger := log.New(os.Stderr, "[replay] ", log.LstdFlags)
	if *path == "" {
		logger.Fatalf("missing -log")
	}

	r, err := episodelog.NewReader(*path)
	if err != nil {
		logger.Fatalf("open: %v", err)
	}
	defer r.Close()

	h := r.Header()
	fmt.Printf("env=%s seed=%d obs_rep=%s recorded_at=%s\n", h.Env, h.Seed, h.ObsRep, h.RecordedAt)

	episode := -1
	steps, ret := 0, 0.0
	flush := func() {
		if episode >= 0 {
			fmt.Printf("episode=%d steps=%d return=%.3f\n", episode, steps, ret)
		}
	}

	var rec episodelog.StepRecord
	for r.Next(&rec) {
		if rec.Episode != episode {
			flush()
			episode, steps, ret = rec.Episode, 0, 0
		}
		steps++
		ret += rec.Reward
		if *verbose {
			fmt.Printf("  episode=%d step=%d action=%d reward=%.3f done=%v\n",
				rec.Episode, rec.Step, rec.Action, rec.Reward, rec.Done)
		}
	}
	if err := r.Err(); err != nil {
		logger.Fatalf("read: %v", err)
	}
	flush()
}
