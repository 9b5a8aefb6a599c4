// Command shadow_compare replays read endpoints against both the legacy
// Laravel API and this Go port and reports response differences. Run it with
// both services pointed at the same database before cutting traffic over.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"reflect"
	"regexp"
	"strings"
	"time"
)

type target struct {
	Method   string   `json:"method"`
	Path     string   `json:"path"`
	Critical bool     `json:"critical"`
	Ignore   []string `json:"ignore"`
}

type targetsFile struct {
	Targets []target `json:"targets"`
}

// defaultTargets covers the read surface. Timestamps are ignored everywhere
// since Laravel serializes them with microsecond precision and the Go port
// does not.
var defaultTargets = []target{
	{Method: "GET", Path: "/api/doctypes", Critical: true, Ignore: []string{"created_at", "updated_at", "deleted_at"}},
	{Method: "GET", Path: "/api/doctypes/1", Critical: true, Ignore: []string{"created_at", "updated_at", "deleted_at"}},
	{Method: "GET", Path: "/api/columns", Critical: true, Ignore: []string{"created_at", "updated_at", "deleted_at"}},
	{Method: "GET", Path: "/api/documents", Critical: true, Ignore: []string{"created_at", "updated_at", "deleted_at"}},
	{Method: "GET", Path: "/api/documents/1", Critical: true, Ignore: []string{"created_at", "updated_at", "deleted_at"}},
	{Method: "GET", Path: "/health", Critical: false},
}

type outcome struct {
	target       target
	legacyStatus int
	goStatus     int
	statusMatch  bool
	bodyMatch    bool
	err          error
	goDuration   time.Duration
	legacyDur    time.Duration
}

func main() {
	var (
		goBase      string
		legacyBase  string
		targetsPath string
		timeout     time.Duration
	)

	flag.StringVar(&goBase, "go-base", "http://localhost:8080", "Go API base URL")
	flag.StringVar(&legacyBase, "legacy-base", "http://localhost:8000", "Legacy Laravel API base URL")
	flag.StringVar(&targetsPath, "targets", "", "Optional JSON targets file, built-in read endpoints otherwise")
	flag.DurationVar(&timeout, "timeout", 5*time.Second, "HTTP client timeout")
	flag.Parse()

	targets := defaultTargets
	if targetsPath != "" {
		loaded, err := loadTargets(targetsPath)
		if err != nil {
			log.Fatalf("failed to load targets: %v", err)
		}
		targets = loaded
	}

	client := &http.Client{Timeout: timeout}
	breaking := 0
	optional := 0

	fmt.Println("Shadow Compare Report")
	fmt.Println("======================")
	for _, tgt := range targets {
		res := compare(client, goBase, legacyBase, tgt)
		report(res)
		if res.err != nil || !res.statusMatch || !res.bodyMatch {
			if tgt.Critical {
				breaking++
			} else {
				optional++
			}
		}
	}

	fmt.Printf("Breaking diffs: %d, Optional diffs: %d\n", breaking, optional)
	if breaking > 0 {
		os.Exit(1)
	}
}

func loadTargets(path string) ([]target, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var file targetsFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, err
	}
	if len(file.Targets) == 0 {
		return nil, fmt.Errorf("no targets defined in %s", path)
	}
	return file.Targets, nil
}

func compare(client *http.Client, goBase, legacyBase string, tgt target) outcome {
	res := outcome{target: tgt}

	goStatus, goBody, goDur, err := fetch(client, goBase, tgt)
	if err != nil {
		res.err = fmt.Errorf("go request failed: %w", err)
		return res
	}
	legacyStatus, legacyBody, legacyDur, err := fetch(client, legacyBase, tgt)
	if err != nil {
		res.err = fmt.Errorf("legacy request failed: %w", err)
		return res
	}

	res.goStatus = goStatus
	res.legacyStatus = legacyStatus
	res.goDuration = goDur
	res.legacyDur = legacyDur
	res.statusMatch = goStatus == legacyStatus
	res.bodyMatch = bodiesEqual(goBody, legacyBody, tgt.Ignore)
	return res
}

func fetch(client *http.Client, base string, tgt target) (int, []byte, time.Duration, error) {
	method := strings.ToUpper(strings.TrimSpace(tgt.Method))
	if method == "" {
		method = http.MethodGet
	}
	path := tgt.Path
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	req, err := http.NewRequest(method, strings.TrimRight(base, "/")+path, nil)
	if err != nil {
		return 0, nil, 0, err
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		return 0, nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, 0, err
	}
	return resp.StatusCode, body, time.Since(start), nil
}

func bodiesEqual(a, b []byte, ignore []string) bool {
	if bytes.Equal(bytes.TrimSpace(a), bytes.TrimSpace(b)) {
		return true
	}

	var aj, bj interface{}
	if err := json.Unmarshal(a, &aj); err != nil {
		return false
	}
	if err := json.Unmarshal(b, &bj); err != nil {
		return false
	}
	normalize(&aj, ignore)
	normalize(&bj, ignore)
	return reflect.DeepEqual(aj, bj)
}

var timestampPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}`)

func normalize(v *interface{}, ignore []string) {
	switch val := (*v).(type) {
	case map[string]interface{}:
		for _, key := range ignore {
			delete(val, key)
		}
		for k, v2 := range val {
			normalize(&v2, ignore)
			val[k] = v2
		}
	case []interface{}:
		for i, v2 := range val {
			normalize(&v2, ignore)
			val[i] = v2
		}
	case string:
		// Laravel emits 2024-03-01T10:00:00.000000Z, Go RFC 3339. Compare
		// timestamps on the second only.
		if timestampPattern.MatchString(val) {
			*v = val[:19]
		}
	case float64:
		if val == float64(int64(val)) {
			*v = int64(val)
		}
	}
}

func report(res outcome) {
	status := "OK"
	if res.err != nil {
		status = "ERROR"
	} else if !res.statusMatch || !res.bodyMatch {
		status = "DIFF"
	}
	fmt.Printf("[%s] %s %s\n", status, res.target.Method, res.target.Path)
	if res.err != nil {
		fmt.Printf("  Error: %v\n", res.err)
		return
	}
	fmt.Printf("  Go: %d (%s) | Legacy: %d (%s)\n", res.goStatus, res.goDuration, res.legacyStatus, res.legacyDur)
	fmt.Printf("  Status match: %t | Body match: %t | Critical: %t\n", res.statusMatch, res.bodyMatch, res.target.Critical)
}
