package importer

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path"
	"slices"
	"strconv"
	"strings"
)

var errNoRecords = errors.New("file contains no transactions")

// ParsedData is a file flattened into a header row and string cells, before
// any column is interpreted.
type ParsedData struct {
	Headers []string
	Rows    [][]string
	Format  string
}

// ParseFile picks a decoder from the file extension.
func ParseFile(filename string, reader io.Reader) (*ParsedData, error) {
	ext := strings.ToLower(path.Ext(filename))

	var (
		data *ParsedData
		err  error
	)
	switch ext {
	case ".csv":
		data, err = decodeCSV(reader)
	case ".json":
		data, err = decodeJSON(reader)
	default:
		return nil, fmt.Errorf("unsupported file format %q: expected .csv or .json", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, err)
	}

	return data, nil
}

func decodeCSV(reader io.Reader) (*ParsedData, error) {
	r := csv.NewReader(reader)
	r.TrimLeadingSpace = true
	// rows are checked against the header below so the error names the row
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(records) < 2 {
		return nil, errNoRecords
	}

	headers := make([]string, len(records[0]))
	for i, h := range records[0] {
		headers[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}

	rows := records[1:]
	for i, row := range rows {
		if len(row) != len(headers) {
			return nil, fmt.Errorf("row %d has %d fields, header has %d", i+1, len(row), len(headers))
		}
	}

	return &ParsedData{Headers: headers, Rows: rows, Format: "csv"}, nil
}

// decodeJSON reads an array of flat objects, the shape the JSON export
// writes. Headers are the sorted union of every object's keys.
func decodeJSON(reader io.Reader) (*ParsedData, error) {
	var objects []map[string]any
	if err := json.NewDecoder(reader).Decode(&objects); err != nil {
		return nil, err
	}

	if len(objects) == 0 {
		return nil, errNoRecords
	}

	var headers []string
	for _, object := range objects {
		for key := range object {
			if !slices.Contains(headers, key) {
				headers = append(headers, key)
			}
		}
	}
	slices.Sort(headers)

	rows := make([][]string, len(objects))
	for i, object := range objects {
		rows[i] = make([]string, len(headers))
		for j, key := range headers {
			rows[i][j] = cell(object[key])
		}
	}

	return &ParsedData{Headers: headers, Rows: rows, Format: "json"}, nil
}

func cell(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	}
	return fmt.Sprint(value)
}
