package entity

import (
	"sort"
	"strings"
	"testing"
	"time"
	"unicode/utf8"
)

func TestSummarize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty stays empty", "", ""},
		{"short text unchanged", "Invoice #1", "Invoice #1"},
		{"exactly 600 unchanged", strings.Repeat("a", 600), strings.Repeat("a", 600)},
		{"long text truncated", strings.Repeat("b", 601), strings.Repeat("b", 600)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Summarize(tt.in); got != tt.want {
				t.Fatalf("Summarize() length %d, want length %d", len(got), len(tt.want))
			}
		})
	}
}

func TestSummarizeCountsRunes(t *testing.T) {
	in := strings.Repeat("é", 700)
	got := Summarize(in)
	if n := utf8.RuneCountInString(got); n != 600 {
		t.Fatalf("expected 600 runes, got %d", n)
	}
	if !utf8.ValidString(got) {
		t.Fatal("truncation split a multi-byte character")
	}
}

func TestFormatUploadedAtSortsLexicographically(t *testing.T) {
	base := time.Date(2024, 3, 9, 23, 59, 59, 900e6, time.UTC)
	times := []time.Time{
		base.Add(48 * time.Hour),
		base,
		base.Add(time.Millisecond * 200), // rolls into the next day
		base.Add(-time.Hour),
	}
	formatted := make([]string, len(times))
	for i, ts := range times {
		formatted[i] = FormatUploadedAt(ts)
	}

	byString := append([]string(nil), formatted...)
	sort.Strings(byString)

	byTime := append([]time.Time(nil), times...)
	sort.Slice(byTime, func(i, j int) bool { return byTime[i].Before(byTime[j]) })
	for i, ts := range byTime {
		if byString[i] != FormatUploadedAt(ts) {
			t.Fatalf("lexicographic order diverges from chronological order at %d: %q vs %q",
				i, byString[i], FormatUploadedAt(ts))
		}
	}
}

func TestValidateRecord(t *testing.T) {
	valid := QuotationRecord{
		FileURL:              "https://storage.googleapis.com/b/quotation_files/a.txt_1",
		Filename:             "a.txt",
		MediaType:            "text/plain",
		UploadedAt:           FormatUploadedAt(time.Now()),
		ExtractedTextSummary: "hello",
	}
	if err := ValidateRecord(valid); err != nil {
		t.Fatalf("valid record rejected: %v", err)
	}

	noURL := valid
	noURL.FileURL = ""
	if err := ValidateRecord(noURL); err == nil {
		t.Fatal("record without fileUrl should be rejected")
	}

	withErr := valid
	withErr.ExtractedTextSummary = ""
	withErr.ExtractionError = "Extraction timed out"
	if err := ValidateRecord(withErr); err != nil {
		t.Fatalf("record with extraction error rejected: %v", err)
	}

	oversized := valid
	oversized.ExtractedTextSummary = strings.Repeat("x", 601)
	if err := ValidateRecord(oversized); err == nil {
		t.Fatal("oversized summary should be rejected")
	}
}
