package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// Frame - таблица строковых значений, прочитанная из CSV.
// Операции не изменяют исходный Frame, а возвращают новый.
type Frame struct {
	columns []string
	index   map[string]int
	rows    [][]string
}

// Row - представление одной строки Frame с доступом по имени колонки.
type Row struct {
	frame  *Frame
	values []string
}

// Get возвращает значение колонки или пустую строку, если колонки нет.
func (r Row) Get(column string) string {
	i, ok := r.frame.index[column]
	if !ok {
		return ""
	}
	return r.values[i]
}

// Int разбирает значение колонки как целое; "12.0" тоже считается целым.
func (r Row) Int(column string) (int, bool) {
	return parseInt(r.Get(column))
}

// NewFrame создает Frame из заголовка и строк. Строки не копируются.
func NewFrame(columns []string, rows [][]string) *Frame {
	index := make(map[string]int, len(columns))
	for i, c := range columns {
		index[c] = i
	}
	return &Frame{columns: columns, index: index, rows: rows}
}

// ReadCSVFile читает CSV файл с заголовком в первой строке.
func ReadCSVFile(path string) (*Frame, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	frame, err := ReadCSV(file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return frame, nil
}

// ReadCSV читает CSV из потока.
func ReadCSV(r io.Reader) (*Frame, error) {
	reader := csv.NewReader(r)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("missing header row")
	}

	header := records[0]
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	return NewFrame(header, records[1:]), nil
}

// Columns возвращает имена колонок в исходном порядке.
func (f *Frame) Columns() []string {
	return f.columns
}

// Len - число строк.
func (f *Frame) Len() int {
	return len(f.rows)
}

// HasColumn проверяет наличие колонки.
func (f *Frame) HasColumn(name string) bool {
	_, ok := f.index[name]
	return ok
}

// Row возвращает строку по номеру.
func (f *Frame) Row(i int) Row {
	return Row{frame: f, values: f.rows[i]}
}

// Filter оставляет строки, для которых keep возвращает true.
func (f *Frame) Filter(keep func(Row) bool) *Frame {
	rows := make([][]string, 0, len(f.rows))
	for _, values := range f.rows {
		if keep(Row{frame: f, values: values}) {
			rows = append(rows, values)
		}
	}
	return &Frame{columns: f.columns, index: f.index, rows: rows}
}

// DropMissing удаляет строки с пустым значением в колонке.
func (f *Frame) DropMissing(column string) (*Frame, error) {
	if !f.HasColumn(column) {
		return nil, fmt.Errorf("column %q not found", column)
	}
	return f.Filter(func(r Row) bool { return !IsMissing(r.Get(column)) }), nil
}

// DropIncompleteColumns удаляет колонки, в которых есть хотя бы одно пустое значение.
// Возвращает новый Frame и список удаленных колонок.
func (f *Frame) DropIncompleteColumns() (*Frame, []string) {
	keep := make([]int, 0, len(f.columns))
	var dropped []string
	for i, name := range f.columns {
		complete := true
		for _, values := range f.rows {
			if IsMissing(values[i]) {
				complete = false
				break
			}
		}
		if complete {
			keep = append(keep, i)
		} else {
			dropped = append(dropped, name)
		}
	}

	columns := make([]string, len(keep))
	for j, i := range keep {
		columns[j] = f.columns[i]
	}
	rows := make([][]string, len(f.rows))
	for r, values := range f.rows {
		row := make([]string, len(keep))
		for j, i := range keep {
			row[j] = values[i]
		}
		rows[r] = row
	}
	return NewFrame(columns, rows), dropped
}

// LeftJoin присоединяет колонки columns из right по равенству leftKey == rightKey.
// Строки без пары получают пустые значения. При дубликатах ключа в right берется
// первая строка. Колонки, которые уже есть в f, не перезаписываются.
func (f *Frame) LeftJoin(right *Frame, leftKey, rightKey string, columns []string) (*Frame, error) {
	if !f.HasColumn(leftKey) {
		return nil, fmt.Errorf("join key %q not found in left table", leftKey)
	}
	if !right.HasColumn(rightKey) {
		return nil, fmt.Errorf("join key %q not found in right table", rightKey)
	}

	added := make([]string, 0, len(columns))
	for _, c := range columns {
		if !right.HasColumn(c) {
			return nil, fmt.Errorf("join column %q not found in right table", c)
		}
		if c == rightKey || f.HasColumn(c) {
			continue
		}
		added = append(added, c)
	}

	lookup := make(map[string][]string, right.Len())
	for _, values := range right.rows {
		key := values[right.index[rightKey]]
		if _, exists := lookup[key]; !exists {
			lookup[key] = values
		}
	}

	outColumns := make([]string, 0, len(f.columns)+len(added))
	outColumns = append(outColumns, f.columns...)
	outColumns = append(outColumns, added...)

	keyIdx := f.index[leftKey]
	rows := make([][]string, len(f.rows))
	for r, values := range f.rows {
		row := make([]string, 0, len(outColumns))
		row = append(row, values...)
		match, ok := lookup[values[keyIdx]]
		for _, c := range added {
			if ok {
				row = append(row, match[right.index[c]])
			} else {
				row = append(row, "")
			}
		}
		rows[r] = row
	}
	return NewFrame(outColumns, rows), nil
}

// Update записывает value в колонку column для строк, где match возвращает true.
// Возвращает новый Frame и число измененных строк.
func (f *Frame) Update(column, value string, match func(Row) bool) (*Frame, int, error) {
	i, ok := f.index[column]
	if !ok {
		return nil, 0, fmt.Errorf("column %q not found", column)
	}

	changed := 0
	rows := make([][]string, len(f.rows))
	for r, values := range f.rows {
		row := append([]string(nil), values...)
		if match(Row{frame: f, values: values}) {
			row[i] = value
			changed++
		}
		rows[r] = row
	}
	return &Frame{columns: f.columns, index: f.index, rows: rows}, changed, nil
}

// ValueCounts считает количество строк для каждого непустого значения колонки.
func (f *Frame) ValueCounts(column string) (map[string]int, error) {
	i, ok := f.index[column]
	if !ok {
		return nil, fmt.Errorf("column %q not found", column)
	}
	counts := make(map[string]int)
	for _, values := range f.rows {
		if v := values[i]; !IsMissing(v) {
			counts[v]++
		}
	}
	return counts, nil
}

// WriteCSV записывает заголовок и строки в w.
func (f *Frame) WriteCSV(w io.Writer) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(f.columns); err != nil {
		return err
	}
	if err := writer.WriteAll(f.rows); err != nil {
		return err
	}
	return writer.Error()
}

// WriteCSVFile записывает Frame в файл, перезаписывая его.
func (f *Frame) WriteCSVFile(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := f.WriteCSV(file); err != nil {
		file.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return file.Close()
}

// IsMissing - пустое значение ячейки считается отсутствующим.
func IsMissing(v string) bool {
	return strings.TrimSpace(v) == ""
}
