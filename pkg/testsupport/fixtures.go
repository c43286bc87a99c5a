package testsupport

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// LoadFixture returns the raw bytes of a fixture file.
func LoadFixture(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// LoadFixtureLines returns the fixture split into lines with terminators removed.
func LoadFixtureLines(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lines = append(lines, strings.TrimSuffix(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}
	return lines, nil
}

// LoadGolden decodes a JSON golden file into v.
func LoadGolden(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode golden %s: %w", path, err)
	}
	return nil
}
