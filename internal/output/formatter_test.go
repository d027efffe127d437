package output

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input string
		want  Format
	}{
		{"text", FormatText},
		{"TEXT", FormatText},
		{"json", FormatJSON},
		{"JSON", FormatJSON},
		{"markdown", FormatMarkdown},
		{"md", FormatMarkdown},
		{"MARKDOWN", FormatMarkdown},
		{"toon", FormatTOON},
		{"TOON", FormatTOON},
		{"", FormatText},
		{"invalid", FormatText},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := ParseFormat(tt.input)
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNewFormatter(t *testing.T) {
	tests := []struct {
		name    string
		format  Format
		output  string
		colored bool
	}{
		{"text_stdout_colored", FormatText, "", true},
		{"json_stdout_nocolor", FormatJSON, "", false},
		{"toon_stdout_colored", FormatTOON, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := NewFormatter(tt.format, tt.output, tt.colored)
			if err != nil {
				t.Fatalf("NewFormatter() error: %v", err)
			}
			defer f.Close()

			if f.Format() != tt.format {
				t.Errorf("format = %q, want %q", f.Format(), tt.format)
			}

			if f.Colored() != tt.colored {
				t.Errorf("colored = %v, want %v", f.Colored(), tt.colored)
			}

			if f.file != nil {
				t.Error("file should be nil for stdout")
			}

			if f.Writer() == nil {
				t.Error("Writer() should not be nil")
			}
		})
	}
}

func TestNewFormatterWithFile(t *testing.T) {
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "output.txt")

	f, err := NewFormatter(FormatJSON, outputPath, true)
	if err != nil {
		t.Fatalf("NewFormatter() error: %v", err)
	}

	if f.file == nil {
		t.Error("file should not be nil for file output")
	}

	if f.colored {
		t.Error("colored should be false when writing to file")
	}

	if err := f.Close(); err != nil {
		t.Errorf("Close() error: %v", err)
	}

	if _, err := os.Stat(outputPath); os.IsNotExist(err) {
		t.Error("output file should exist")
	}
}

func TestNewFormatterInvalidPath(t *testing.T) {
	_, err := NewFormatter(FormatText, "/nonexistent/directory/file.txt", false)
	if err == nil {
		t.Error("NewFormatter() should error for invalid path")
	}
}

func TestFormatterClose(t *testing.T) {
	f, err := NewFormatter(FormatText, "", false)
	if err != nil {
		t.Fatalf("NewFormatter() error: %v", err)
	}

	if err := f.Close(); err != nil {
		t.Errorf("Close() should not error for stdout: %v", err)
	}
}

func rankTable() *Table {
	return NewTable(
		"Central Files",
		[]string{"Rank", "File", "Score"},
		[][]string{
			{"1", "internal/server/server.go", "1.0000"},
			{"2", "internal/store/store.go", "0.8132"},
		},
		[]string{"", "Total", "2"},
		nil,
	)
}

func TestTableRenderText(t *testing.T) {
	var buf bytes.Buffer
	if err := rankTable().RenderText(&buf, false); err != nil {
		t.Fatalf("RenderText() error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "Central Files") {
		t.Error("output should contain title")
	}
	if !strings.Contains(out, "internal/server/server.go") {
		t.Error("output should contain row data")
	}
	if !strings.Contains(out, "Total") {
		t.Error("output should contain footer")
	}
}

func TestTableRenderMarkdown(t *testing.T) {
	var buf bytes.Buffer
	if err := rankTable().RenderMarkdown(&buf); err != nil {
		t.Fatalf("RenderMarkdown() error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "## Central Files") {
		t.Error("output should contain markdown title")
	}
	if !strings.Contains(out, "| Rank | File | Score |") {
		t.Error("output should contain header row")
	}
	if !strings.Contains(out, "| --- | --- | --- |") {
		t.Error("output should contain separator row")
	}
	if !strings.Contains(out, "| 1 | internal/server/server.go | 1.0000 |") {
		t.Error("output should contain data row")
	}
}

func TestTableRenderData(t *testing.T) {
	t.Run("explicit_data", func(t *testing.T) {
		payload := map[string]int{"nodes": 4}
		tbl := NewTable("T", []string{"A"}, [][]string{{"1"}}, nil, payload)

		got, ok := tbl.RenderData().(map[string]int)
		if !ok {
			t.Fatalf("RenderData() = %T, want map[string]int", tbl.RenderData())
		}
		if got["nodes"] != 4 {
			t.Errorf("RenderData()[nodes] = %d, want 4", got["nodes"])
		}
	})

	t.Run("rows_fallback", func(t *testing.T) {
		tbl := rankTable()
		rows, ok := tbl.RenderData().([]map[string]string)
		if !ok {
			t.Fatalf("RenderData() = %T, want []map[string]string", tbl.RenderData())
		}
		if len(rows) != 2 {
			t.Fatalf("len(rows) = %d, want 2", len(rows))
		}
		if rows[0]["File"] != "internal/server/server.go" {
			t.Errorf("rows[0][File] = %q", rows[0]["File"])
		}
		if rows[1]["Score"] != "0.8132" {
			t.Errorf("rows[1][Score] = %q", rows[1]["Score"])
		}
	})
}

func TestSectionRenderText(t *testing.T) {
	s := &Section{
		Title:   "Graph Summary",
		Content: "4 files, 6 relationships",
		Sections: []Section{
			{Title: "Strongest Pair", Content: "server.go <-> store.go"},
		},
	}

	var buf bytes.Buffer
	if err := s.RenderText(&buf, false); err != nil {
		t.Fatalf("RenderText() error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "Graph Summary") {
		t.Error("output should contain title")
	}
	if !strings.Contains(out, "====") {
		t.Error("top-level title should be underlined with =")
	}
	if !strings.Contains(out, "----") {
		t.Error("nested title should be underlined with -")
	}
	if !strings.Contains(out, "server.go <-> store.go") {
		t.Error("output should contain nested content")
	}
}

func TestSectionRenderMarkdown(t *testing.T) {
	s := &Section{
		Title:   "Graph Summary",
		Content: "4 files",
		Sections: []Section{
			{Title: "Detail", Content: "more"},
		},
	}

	var buf bytes.Buffer
	if err := s.RenderMarkdown(&buf); err != nil {
		t.Fatalf("RenderMarkdown() error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "## Graph Summary") {
		t.Error("top-level section should render at level 2")
	}
	if !strings.Contains(out, "### Detail") {
		t.Error("nested section should render one level deeper")
	}
}

func TestSectionRenderData(t *testing.T) {
	s := &Section{Title: "T", Content: "C"}
	if got, ok := s.RenderData().(*Section); !ok || got != s {
		t.Error("RenderData() should return the section itself without explicit data")
	}

	s.Data = map[string]string{"k": "v"}
	if _, ok := s.RenderData().(map[string]string); !ok {
		t.Error("RenderData() should return explicit data when set")
	}
}

func TestReportRenderText(t *testing.T) {
	r := &Report{
		Title: "Lodestone Analysis",
		Sections: []Renderable{
			&Section{Title: "Summary", Content: "ok"},
			rankTable(),
		},
	}

	var buf bytes.Buffer
	if err := r.RenderText(&buf, false); err != nil {
		t.Fatalf("RenderText() error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "Lodestone Analysis") {
		t.Error("output should contain report title")
	}
	if !strings.Contains(out, "Summary") {
		t.Error("output should contain section")
	}
	if !strings.Contains(out, "internal/store/store.go") {
		t.Error("output should contain table rows")
	}
}

func TestReportRenderMarkdown(t *testing.T) {
	r := &Report{
		Title:    "Lodestone Analysis",
		Sections: []Renderable{&Section{Title: "Summary", Content: "ok"}},
	}

	var buf bytes.Buffer
	if err := r.RenderMarkdown(&buf); err != nil {
		t.Fatalf("RenderMarkdown() error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "# Lodestone Analysis") {
		t.Error("report title should render at level 1")
	}
	if !strings.Contains(out, "## Summary") {
		t.Error("section should render at level 2")
	}
}

func TestReportRenderData(t *testing.T) {
	r := &Report{
		Title:    "R",
		Sections: []Renderable{&Section{Title: "S", Data: map[string]int{"n": 1}}},
	}

	data, ok := r.RenderData().(map[string]any)
	if !ok {
		t.Fatalf("RenderData() = %T, want map[string]any", r.RenderData())
	}
	if data["title"] != "R" {
		t.Errorf("title = %v, want R", data["title"])
	}
	parts, ok := data["sections"].([]any)
	if !ok || len(parts) != 1 {
		t.Fatalf("sections = %v", data["sections"])
	}
}

func TestFormatterOutputRenderable(t *testing.T) {
	formats := []Format{FormatText, FormatJSON, FormatMarkdown, FormatTOON}

	for _, format := range formats {
		t.Run(string(format), func(t *testing.T) {
			tmpDir := t.TempDir()
			outputPath := filepath.Join(tmpDir, "output.txt")

			f, err := NewFormatter(format, outputPath, false)
			if err != nil {
				t.Fatalf("NewFormatter() error: %v", err)
			}
			defer f.Close()

			if err := f.Output(rankTable()); err != nil {
				t.Fatalf("Output() error: %v", err)
			}

			content, err := os.ReadFile(outputPath)
			if err != nil {
				t.Fatalf("ReadFile() error: %v", err)
			}
			if len(content) == 0 {
				t.Error("output file should not be empty")
			}
		})
	}
}

func TestFormatterOutputRaw(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		data   any
	}{
		{"json_map", FormatJSON, map[string]string{"file": "main.go"}},
		{"toon_map", FormatTOON, map[string]string{"file": "main.go"}},
		{"markdown_data", FormatMarkdown, map[string]int{"count": 42}},
		{"text_default", FormatText, map[string]bool{"enabled": true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			outputPath := filepath.Join(tmpDir, "output.txt")

			f, err := NewFormatter(tt.format, outputPath, false)
			if err != nil {
				t.Fatalf("NewFormatter() error: %v", err)
			}
			defer f.Close()

			if err := f.Output(tt.data); err != nil {
				t.Fatalf("Output() error: %v", err)
			}

			content, err := os.ReadFile(outputPath)
			if err != nil {
				t.Fatalf("ReadFile() error: %v", err)
			}
			if len(content) == 0 {
				t.Error("output file should not be empty")
			}
		})
	}
}

func TestFormatterOutputJSONRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "out.json")

	f, err := NewFormatter(FormatJSON, outputPath, false)
	if err != nil {
		t.Fatalf("NewFormatter() error: %v", err)
	}

	data := map[string]any{
		"node":  "internal/server/server.go",
		"score": 0.81,
	}
	if err := f.Output(data); err != nil {
		t.Fatalf("Output() error: %v", err)
	}
	f.Close()

	content, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(content, &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded["node"] != "internal/server/server.go" {
		t.Errorf("node = %v", decoded["node"])
	}
}

func TestFormatterMarkdownRawData(t *testing.T) {
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "out.md")

	f, err := NewFormatter(FormatMarkdown, outputPath, false)
	if err != nil {
		t.Fatalf("NewFormatter() error: %v", err)
	}

	if err := f.Output(map[string]int{"edges": 3}); err != nil {
		t.Fatalf("Output() error: %v", err)
	}
	f.Close()

	content, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}

	out := string(content)
	if !strings.Contains(out, "```json") {
		t.Error("raw markdown output should be fenced")
	}
	if !strings.Contains(out, "\"edges\": 3") {
		t.Error("raw markdown output should contain the JSON body")
	}
}

func TestFormatterMessageMethods(t *testing.T) {
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "messages.txt")

	f, err := NewFormatter(FormatText, outputPath, false)
	if err != nil {
		t.Fatalf("NewFormatter() error: %v", err)
	}

	f.Success("wrote %d nodes", 4)
	f.Warning("cache miss for %s", "doc.corpus.yaml")
	f.Error("no such file: %s", "ghost.go")
	f.Info("analyzing %d documents", 2)
	f.Close()

	content, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}

	out := string(content)
	if !strings.Contains(out, "wrote 4 nodes") {
		t.Error("Success message missing")
	}
	if !strings.Contains(out, "WARNING: cache miss for doc.corpus.yaml") {
		t.Error("Warning prefix missing")
	}
	if !strings.Contains(out, "ERROR: no such file: ghost.go") {
		t.Error("Error prefix missing")
	}
	if !strings.Contains(out, "analyzing 2 documents") {
		t.Error("Info message missing")
	}
}

func TestScoreColor(t *testing.T) {
	// Color codes are disabled in tests without a TTY, so we only verify
	// pass-through of the text itself across all bands.
	for _, score := range []float64{0.05, 0.4, 0.5, 0.7, 1.0} {
		got := ScoreColor(score, "file.go")
		if !strings.Contains(got, "file.go") {
			t.Errorf("ScoreColor(%f) lost the text: %q", score, got)
		}
	}
}

func TestStrengthColor(t *testing.T) {
	for _, strength := range []string{"very_strong", "strong", "moderate", "weak", "very_weak", ""} {
		got := StrengthColor(strength, "label")
		if !strings.Contains(got, "label") {
			t.Errorf("StrengthColor(%q) lost the text: %q", strength, got)
		}
	}
}
