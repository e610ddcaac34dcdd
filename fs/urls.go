package fs

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/pagerow/pagerow"
)

// ReadURLList reads page URLs from a file. The format is chosen by
// extension: .csv expects a header row with a "url" column, .ndjson/.jsonl
// expects one {"url": ...} object per line, anything else is treated as
// plain text with one URL per line (commas also separate URLs, matching
// common paste formats).
func ReadURLList(path string) ([]string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return readCSV(path)
	case ".ndjson", ".jsonl":
		return readNDJSON(path)
	default:
		return readPlain(path)
	}
}

func readCSV(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, pagerow.Errorf(pagerow.EINVALID, "empty CSV file %q", path)
	}

	col := -1
	for i, h := range rows[0] {
		if strings.EqualFold(strings.TrimSpace(h), "url") {
			col = i
			break
		}
	}
	if col == -1 {
		return nil, pagerow.Errorf(pagerow.EINVALID, "CSV file %q must contain a 'url' header column", path)
	}

	var urls []string
	for _, row := range rows[1:] {
		if col < len(row) {
			if u := strings.TrimSpace(row[col]); u != "" {
				urls = append(urls, u)
			}
		}
	}
	return urls, nil
}

func readNDJSON(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var urls []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var obj struct {
			URL string `json:"url"`
		}
		if err := json.Unmarshal([]byte(line), &obj); err != nil {
			return nil, pagerow.Errorf(pagerow.EINVALID, "invalid NDJSON line in %q: %v", path, err)
		}
		if u := strings.TrimSpace(obj.URL); u != "" {
			urls = append(urls, u)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return urls, nil
}

func readPlain(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var urls []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		for _, part := range strings.Split(scanner.Text(), ",") {
			if u := strings.TrimSpace(part); u != "" {
				urls = append(urls, u)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return urls, nil
}
