package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"gridverse.ai/internal/config"
	"gridverse.ai/internal/env"
	"gridverse.ai/internal/persistence/episodelog"
	"gridverse.ai/internal/persistence/indexdb"
	"gridverse.ai/internal/registry"
	"gridverse.ai/internal/repr"
)

func main() {
	var (
		list     = flag.Bool("list", false, "list known environments and exit")
		envName  = flag.String("env", "Empty-5x5", "environment name")
		envDir   = flag.String("envs", "", "directory of env config YAMLs to register (optional)")
		schema   = flag.String("schema", "./schemas/env.schema.json", "env config schema path")
		obsRep   = flag.String("obs-rep", repr.NameDefault, "observation representation name")
		seed     = flag.Int64("seed", 1337, "environment seed")
		episodes = flag.Int("episodes", 1, "number of episodes to run")
		maxSteps = flag.Int("max-steps", 200, "step cap per episode (episodes without terminations never end on their own)")
		record   = flag.String("record", "", "directory to record episode logs into (optional)")
		dbPath   = flag.String("db", "", "sqlite episode index path (optional, requires -record)")
		verbose  = flag.Bool("v", false, "print every step")
	)
	flag.Parse()

	logger := log.New(os.Stdout, "[gridverse] ", log.LstdFlags)

	reg := registry.Default()
	if *envDir != "" {
		loader, err := config.NewLoader(*schema)
		if err != nil {
			logger.Fatalf("load schema: %v", err)
		}
		if err := loader.LoadDir(*envDir, reg); err != nil {
			logger.Fatalf("load env configs: %v", err)
		}
	}

	if *list {
		for _, name := range reg.Names() {
			fmt.Println(name)
		}
		return
	}

	inner, err := reg.Build(*envName)
	if err != nil {
		logger.Fatalf("%v", err)
	}
	inner.SetSeed(*seed)

	rep, err := repr.NewObservationRepresentation(*obsRep, inner.Space().Observation)
	if err != nil {
		logger.Fatalf("%v", err)
	}
	outer := env.NewOuterEnv(inner, nil, rep)

	var writer *episodelog.Writer
	var index *indexdb.SQLiteIndex
	logPath := ""
	if *record != "" {
		logPath = filepath.Join(*record, fmt.Sprintf("%s-%d.jsonl.zst", *envName, time.Now().Unix()))
		writer, err = episodelog.NewWriter(logPath, episodelog.Header{
			Env:        *envName,
			Seed:       *seed,
			ObsRep:     *obsRep,
			RecordedAt: time.Now().UTC().Format(time.RFC3339),
		})
		if err != nil {
			logger.Fatalf("open episode log: %v", err)
		}
		defer writer.Close()

		if *dbPath != "" {
			index, err = indexdb.OpenSQLite(*dbPath)
			if err != nil {
				logger.Fatalf("open episode index: %v", err)
			}
			defer index.Close()
		}
	}

	policy := rand.New(rand.NewSource(*seed))
	for ei := 0; ei < *episodes; ei++ {
		if _, err := outer.Reset(); err != nil {
			logger.Fatalf("reset: %v", err)
		}

		steps, ret, terminated := 0, 0.0, false
		for steps < *maxSteps {
			action := policy.Intn(outer.NumActions())
			reward, done, err := outer.Step(action)
			if err != nil {
				logger.Fatalf("step: %v", err)
			}
			ret += reward
			steps++

			if *verbose {
				logger.Printf("episode=%d step=%d action=%d reward=%.3f done=%v", ei, steps, action, reward, done)
			}
			if writer != nil {
				obs, err := outer.Observation()
				if err != nil {
					logger.Fatalf("observation: %v", err)
				}
				rec := episodelog.StepRecord{
					Episode:     ei,
					Step:        steps - 1,
					Action:      action,
					Reward:      reward,
					Done:        done,
					Observation: obs,
				}
				if err := writer.Write(rec); err != nil {
					logger.Fatalf("record step: %v", err)
				}
			}
			if done {
				terminated = true
				break
			}
		}

		logger.Printf("episode=%d steps=%d return=%.3f terminated=%v", ei, steps, ret, terminated)
		if index != nil {
			_, err := index.InsertEpisode(context.Background(), indexdb.EpisodeRow{
				Env:        *envName,
				Seed:       *seed,
				Steps:      steps,
				Return:     ret,
				Terminated: terminated,
				LogPath:    logPath,
			})
			if err != nil {
				logger.Fatalf("index episode: %v", err)
			}
		}
	}
}
