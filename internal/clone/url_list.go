package clone

import (
	"bufio"
	"io"
	"sort"
	"strings"
)

// ReadRepositoryURLs reads newline-delimited URLs, trimming whitespace, dropping blank lines,
// and collapsing exact duplicates. The result is sorted.
func ReadRepositoryURLs(reader io.Reader) ([]string, error) {
	seen := make(map[string]struct{})
	var repositoryURLs []string

	scanner := bufio.NewScanner(reader)
	for scanner.Scan() {
		trimmed := strings.TrimSpace(scanner.Text())
		if len(trimmed) == 0 {
			continue
		}
		if _, duplicate := seen[trimmed]; duplicate {
			continue
		}
		seen[trimmed] = struct{}{}
		repositoryURLs = append(repositoryURLs, trimmed)
	}
	if scanError := scanner.Err(); scanError != nil {
		return nil, scanError
	}

	sort.Strings(repositoryURLs)
	return repositoryURLs, nil
}
