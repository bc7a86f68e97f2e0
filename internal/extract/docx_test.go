package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"testing"
)

func buildDocx(t *testing.T, documentXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	if _, err := w.Write([]byte(documentXML)); err != nil {
		t.Fatalf("write zip entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

const docxHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
	`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`

func TestDocxConverterExtractsParagraphs(t *testing.T) {
	xmlBody := docxHeader +
		`<w:p><w:r><w:t>Quotation for services</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t>Total:</w:t></w:r><w:r><w:tab/><w:t>$1,200</w:t></w:r></w:p>` +
		`</w:body></w:document>`
	data := buildDocx(t, xmlBody)

	got, err := NewDocxConverter().ExtractRawText(context.Background(), data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "Quotation for services\nTotal:\t$1,200"
	if got != want {
		t.Fatalf("extracted text = %q, want %q", got, want)
	}
}

func TestDocxConverterSplitRuns(t *testing.T) {
	xmlBody := docxHeader +
		`<w:p><w:r><w:t>Hel</w:t></w:r><w:r><w:t>lo</w:t></w:r></w:p>` +
		`</w:body></w:document>`
	got, err := NewDocxConverter().ExtractRawText(context.Background(), buildDocx(t, xmlBody))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Hello" {
		t.Fatalf("extracted text = %q, want %q", got, "Hello")
	}
}

func TestDocxConverterEmptyBody(t *testing.T) {
	got, err := NewDocxConverter().ExtractRawText(context.Background(),
		buildDocx(t, docxHeader+`</w:body></w:document>`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "" {
		t.Fatalf("expected empty text, got %q", got)
	}
}

func TestDocxConverterRejectsGarbage(t *testing.T) {
	if _, err := NewDocxConverter().ExtractRawText(context.Background(), []byte("not a zip")); err == nil {
		t.Fatal("expected error for non-archive bytes")
	}
}

func TestDocxConverterRejectsArchiveWithoutDocument(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, _ := zw.Create("word/styles.xml")
	_, _ = w.Write([]byte("<styles/>"))
	_ = zw.Close()

	if _, err := NewDocxConverter().ExtractRawText(context.Background(), buf.Bytes()); err == nil {
		t.Fatal("expected error for archive without word/document.xml")
	}
}
