// Command smoke probes the public endpoints of a running notice board and
// reports status and latency per target. Intended for post-deploy checks on
// the TV displays' read path; exits non-zero when a critical target fails.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"
)

type target struct {
	Path     string `json:"path"`
	Critical bool   `json:"critical"`
}

type result struct {
	Target   target
	Status   int
	Duration time.Duration
	Err      error
}

func defaultTargets(departments []string) []target {
	targets := []target{
		{Path: "/health", Critical: true},
		{Path: "/ready", Critical: true},
		{Path: "/api/display/all", Critical: true},
		{Path: "/api/settings/all"},
	}
	for _, dept := range departments {
		targets = append(targets,
			target{Path: "/api/display/" + dept, Critical: true},
			target{Path: "/api/notices/" + dept},
			target{Path: "/api/events/" + dept},
			target{Path: "/api/media/" + dept},
		)
	}
	return targets
}

func main() {
	var (
		base        string
		departments string
		targetsPath string
		timeout     time.Duration
	)
	flag.StringVar(&base, "base", "http://localhost:8080", "notice board base URL")
	flag.StringVar(&departments, "departments", "cse,ece", "comma-separated department codes to probe")
	flag.StringVar(&targetsPath, "targets", "", "optional JSON file overriding the probe targets")
	flag.DurationVar(&timeout, "timeout", 5*time.Second, "per-request timeout")
	flag.Parse()

	targets := defaultTargets(splitList(departments))
	if targetsPath != "" {
		loaded, err := loadTargets(targetsPath)
		if err != nil {
			log.Fatalf("load targets: %v", err)
		}
		targets = loaded
	}

	client := &http.Client{Timeout: timeout}
	results := make([]result, 0, len(targets))
	for _, tgt := range targets {
		results = append(results, probe(client, base, tgt))
	}

	criticalFailures := 0
	for _, res := range results {
		status := "ok"
		detail := fmt.Sprintf("%d in %s", res.Status, res.Duration.Round(time.Millisecond))
		if res.Err != nil {
			status = "error"
			detail = res.Err.Error()
		} else if res.Status >= 400 {
			status = "fail"
		}
		if status != "ok" && res.Target.Critical {
			criticalFailures++
		}
		fmt.Printf("%-6s %-40s %s\n", status, res.Target.Path, detail)
	}

	if criticalFailures > 0 {
		fmt.Printf("\n%d critical target(s) failing\n", criticalFailures)
		os.Exit(1)
	}
	fmt.Println("\nall critical targets healthy")
}

func probe(client *http.Client, base string, tgt target) result {
	start := time.Now()
	resp, err := client.Get(strings.TrimRight(base, "/") + tgt.Path)
	if err != nil {
		return result{Target: tgt, Err: err, Duration: time.Since(start)}
	}
	defer resp.Body.Close() //nolint:errcheck
	return result{Target: tgt, Status: resp.StatusCode, Duration: time.Since(start)}
}

func loadTargets(path string) ([]target, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var wrapper struct {
		Targets []target `json:"targets"`
	}
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return nil, err
	}
	return wrapper.Targets, nil
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
