package project

import (
	"testing"

	"github.com/beevik/etree"
)

// mustParse parses content or fails the test.
func mustParse(t *testing.T, content string) *Document {
	t.Helper()
	doc, err := Parse("/test.csproj", []byte(content))
	if err != nil {
		t.Fatalf("failed to parse test document: %v", err)
	}
	return doc
}

// find returns the elements matching an etree path.
func find(t *testing.T, doc *Document, path string) []*etree.Element {
	t.Helper()
	return doc.tree.FindElements(path)
}

// reparse serializes and parses doc again, so assertions run on written output.
func reparse(t *testing.T, doc *Document) *Document {
	t.Helper()
	data, err := doc.Bytes()
	if err != nil {
		t.Fatalf("failed to serialize: %v", err)
	}
	return mustParse(t, string(data))
}
