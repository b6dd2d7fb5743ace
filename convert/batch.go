package convert

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// ExpandPatterns expands glob patterns to profile files.
// Supports both single-level wildcards (*) and recursive wildcards (**).
// Patterns without glob characters must name an existing file. Directories
// are skipped and duplicates are reported once, in first-seen order.
func ExpandPatterns(patterns []string) ([]string, error) {
	var resolved []string
	seen := make(map[string]bool)

	for _, pattern := range patterns {
		paths, err := expandPattern(pattern)
		if err != nil {
			return nil, fmt.Errorf("resolve pattern %q: %w", pattern, err)
		}

		for _, p := range paths {
			if !seen[p] {
				seen[p] = true
				resolved = append(resolved, p)
			}
		}
	}

	return resolved, nil
}

func expandPattern(pattern string) ([]string, error) {
	if !containsGlob(pattern) {
		info, err := os.Stat(pattern)
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			return nil, fmt.Errorf("path is a directory: %s", pattern)
		}
		return []string{filepath.Clean(pattern)}, nil
	}

	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, fmt.Errorf("glob error: %w", err)
	}

	var files []string
	for _, match := range matches {
		info, err := os.Stat(match)
		if err != nil || info.IsDir() {
			continue
		}
		files = append(files, match)
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("no files match pattern: %s", pattern)
	}
	return files, nil
}

// containsGlob checks if a pattern contains glob characters.
func containsGlob(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}

// OutputPath returns the schema path for input inside outDir:
// the input base name with its extension replaced by .yaml.
func OutputPath(input, outDir string) string {
	name := filepath.Base(input)
	name = strings.TrimSuffix(name, filepath.Ext(name)) + ".yaml"
	return filepath.Join(outDir, name)
}

// Batch converts every profile matched by patterns into outDir. An empty
// outDir uses the configured default. Profiles are converted one after the
// other, and the first failure stops the batch. The results of the
// conversions completed before a failure are returned with the error.
func (c *Converter) Batch(ctx context.Context, patterns []string, outDir string) ([]*Result, error) {
	if outDir == "" {
		outDir = c.cfg.Convert.OutDir
	}

	inputs, err := ExpandPatterns(patterns)
	if err != nil {
		return nil, err
	}

	outputs := make(map[string]string, len(inputs))
	for _, in := range inputs {
		out := OutputPath(in, outDir)
		if prev, ok := outputs[out]; ok {
			return nil, fmt.Errorf("profiles %s and %s both map to %s", prev, in, out)
		}
		outputs[out] = in
	}

	c.logger.Info("Starting batch conversion", "profiles", len(inputs), "out_dir", outDir)

	results := make([]*Result, 0, len(inputs))
	for _, in := range inputs {
		res, err := c.Convert(ctx, in, OutputPath(in, outDir))
		if err != nil {
			return results, fmt.Errorf("convert %s: %w", in, err)
		}
		results = append(results, res)
	}
	return results, nil
}
