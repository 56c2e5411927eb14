package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

const kiwipete = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"

// step runs one command, prints its combined output and, on failure, names
// the command line that failed. It returns the exit code.
func step(name string, args ...string) int {
	cmd := exec.Command(name, args...)
	cmd.Env = os.Environ()
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	err := cmd.Run()
	fmt.Print(out.String())
	if err == nil {
		return 0
	}
	line := strings.Join(append([]string{name}, args...), " ")
	var ee *exec.ExitError
	if errors.As(err, &ee) {
		fmt.Fprintf(os.Stderr, "FAILED (exit %d): %s\n", ee.ExitCode(), line)
		return ee.ExitCode()
	}
	fmt.Fprintf(os.Stderr, "FAILED: %s: %v\n", line, err)
	return 1
}

func main() {
	short := flag.Bool("short", false, "pass -short to go test and stop perft at depth 4")
	benchtime := flag.String("benchtime", "1s", "go test -benchtime value")
	depth := flag.Int("depth", 3, "search depth for searchbench")
	flag.Parse()

	// Format: BenchmarkName  Iterations  ns/op  B/op  allocs/op
	fmt.Println("Columns: BENCHMARK  N  ns/op  B/op  allocs/op")
	testArgs := []string{"test", "./bench", "-run", "^$", "-bench", ".", "-benchmem", "-benchtime=" + *benchtime}
	if *short {
		testArgs = append(testArgs, "-short")
	}
	if code := step("go", testArgs...); code != 0 {
		os.Exit(code)
	}

	maxDepth := 5
	if *short {
		maxDepth = 4
	}
	failed := 0
	fmt.Println("\nPerft Performance:")
	fmt.Println("TEST \t\tDepth \t\tNodes \t\tTime \tNPS")
	for d := 3; d <= maxDepth; d++ {
		if step("go", "run", "./cmd/perft", "-depth", strconv.Itoa(d), "-label", "Initial") != 0 {
			failed++
		}
	}
	if step("go", "run", "./cmd/perft", "-fen", kiwipete, "-depth", "3", "-label", "Kiwipete", "-verify") != 0 {
		failed++
	}

	fmt.Println("\nSearch:")
	if step("go", "run", "./cmd/searchbench", "-depth", strconv.Itoa(*depth)) != 0 {
		failed++
	}
	if failed > 0 {
		fmt.Fprintf(os.Stderr, "%d step(s) failed\n", failed)
		os.Exit(1)
	}
}
