// Package phrases provides the text templates used to explain match scores.
// Templates are stored as JSON files and embedded at compile time.
package phrases

import (
	"embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
)

//go:embed *.json
var phraseFiles embed.FS

// InsightsFile holds the explanation templates
const InsightsFile = "insights.json"

// cache stores parsed phrase files to avoid repeated JSON parsing
var (
	cache   = make(map[string]map[string]string)
	cacheMu sync.RWMutex
)

// Get retrieves a template by filename and key.
// The filename should not include the path (e.g., "insights.json").
func Get(filename, key string) (string, error) {
	phrases, err := loadFile(filename)
	if err != nil {
		return "", err
	}

	phrase, exists := phrases[key]
	if !exists {
		return "", fmt.Errorf("phrase key %q not found in %s", key, filename)
	}

	return phrase, nil
}

// MustGet retrieves a template by filename and key, panicking if not found.
// Use this for templates that are required at initialization time.
func MustGet(filename, key string) string {
	phrase, err := Get(filename, key)
	if err != nil {
		panic(fmt.Sprintf("failed to load phrase: %v", err))
	}
	return phrase
}

// Format replaces placeholders in the form {{.Key}} with values from data
func Format(template string, data map[string]string) string {
	result := template
	for key, value := range data {
		result = strings.ReplaceAll(result, fmt.Sprintf("{{.%s}}", key), value)
	}
	return result
}

// Render looks up a template and formats it in one step, panicking on a missing key
func Render(filename, key string, data map[string]string) string {
	return Format(MustGet(filename, key), data)
}

// List returns the template keys of a file in sorted order
func List(filename string) ([]string, error) {
	phrases, err := loadFile(filename)
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(phrases))
	for key := range phrases {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}

// ClearCache clears the phrase cache. Useful for testing.
func ClearCache() {
	cacheMu.Lock()
	cache = make(map[string]map[string]string)
	cacheMu.Unlock()
}

func loadFile(filename string) (map[string]string, error) {
	cacheMu.RLock()
	if phrases, exists := cache[filename]; exists {
		cacheMu.RUnlock()
		return phrases, nil
	}
	cacheMu.RUnlock()

	data, err := phraseFiles.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read phrase file %s: %w", filename, err)
	}

	var phrases map[string]string
	if err := json.Unmarshal(data, &phrases); err != nil {
		return nil, fmt.Errorf("failed to parse phrase file %s: %w", filename, err)
	}

	cacheMu.Lock()
	cache[filename] = phrases
	cacheMu.Unlock()

	return phrases, nil
}
