package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/c-coh/dead-code-opt/api"
	c "github.com/c-coh/dead-code-opt/config"
)

func ignore(entry os.DirEntry) bool {
	return !entry.IsDir() ||
		strings.HasPrefix(entry.Name(), ".") ||
		strings.HasPrefix(entry.Name(), "_")
}

// runTest runs the program in testPath with the given optimization setting
// and returns its output.
func runTest(testPath, outName string, optimize bool) (string, api.Result) {
	config := c.Default()
	config.OptimizeIR = optimize
	config.Run = true
	config.Debug = optimize
	config.OutName = outName
	config.OutFormats = map[string]bool{"ir": true, "dot": true}
	config.LogLevel = "warn"

	var out bytes.Buffer
	result := api.RunWithOutput(filepath.Join(testPath, "prog.yaml"), config, &out, os.Stderr)
	return out.String(), result
}

func main() {
	var requiredSubString string
	if len(os.Args) > 1 {
		requiredSubString = os.Args[1]
	}

	dirs, err := os.ReadDir("tests/")
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not read 'tests/' dir: %v", err)
		return
	}

	attemptedTests := 0
	perfectTests := 0
	for _, dir := range dirs {
		if ignore(dir) {
			continue
		}

		dirPath := "tests/" + dir.Name() + "/"
		tests, err := os.ReadDir(dirPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "could not read %q dir: %v", dirPath, err)
			continue
		}

		for _, test := range tests {
			if ignore(test) {
				continue
			}
			testPath := dirPath + test.Name() + "/"
			if !strings.Contains(testPath, requiredSubString) {
				continue
			}
			fmt.Printf("running test: %s\n", testPath)
			attemptedTests++

			want, err := readWant(testPath)
			if err != nil {
				fmt.Fprintf(os.Stderr, "could not read expected output: %v\n", err)
				continue
			}
			plain, plainResult := runTest(testPath, testPath+"plain", false)
			opt, optResult := runTest(testPath, testPath+test.Name(), true)

			perfect := true
			if plainResult != api.RunSuccessful || optResult != api.RunSuccessful {
				fmt.Printf("\tunoptimized run %v, optimized run %v\n", plainResult, optResult)
				perfect = false
			}
			if plain != opt {
				fmt.Printf("\toptimized output differs:\n%s\n\twant:\n%s\n", opt, plain)
				perfect = false
			}
			if want != "" && plain != want {
				fmt.Printf("\tunexpected output:\n%s\n\twant:\n%s\n", plain, want)
				perfect = false
			}
			if perfect {
				perfectTests++
			}
		}
	}
	fmt.Printf("%d/%d tests ran without warnings\n", perfectTests, attemptedTests)
	fmt.Println("done")
}

func readWant(testPath string) (string, error) {
	f, err := os.Open(filepath.Join(testPath, "want.txt"))
	if os.IsNotExist(err) {
		return "", nil
	} else if err != nil {
		return "", err
	}
	defer f.Close()

	b, err := io.ReadAll(f)
	return string(b), err
}
