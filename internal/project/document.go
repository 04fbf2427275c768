package project

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/beevik/etree"
	"github.com/indaco/csprojchange/internal/core"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Wrapped in a ParseError when a document is not a single rooted tree.
var (
	errNoRoot        = errors.New("root element is missing")
	errMultipleRoots = errors.New("multiple root elements")
	errTextOutside   = errors.New("text outside the root element")
)

// declarationInst is written when a document has no XML declaration of its own.
const declarationInst = `version="1.0" encoding="utf-8"`

// ParseError reports a file that could not be parsed as XML.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse XML in %q: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Document is the in-memory tree of one project file.
type Document struct {
	Path string
	tree *etree.Document
}

// Load reads and parses the file at path. A leading UTF-8 byte order mark is dropped.
func Load(ctx context.Context, fs core.FileSystem, path string) (*Document, error) {
	data, err := fs.ReadFile(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", path, err)
	}
	return Parse(path, data)
}

// Parse parses data as the contents of path.
func Parse(path string, data []byte) (*Document, error) {
	tree := etree.NewDocument()
	tree.ReadSettings.PreserveCData = true

	if err := tree.ReadFromBytes(bytes.TrimPrefix(data, utf8BOM)); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	if err := checkTopLevel(tree); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	return &Document{Path: path, tree: tree}, nil
}

// checkTopLevel rejects what etree tolerates around the root element.
func checkTopLevel(tree *etree.Document) error {
	roots := 0
	for _, tok := range tree.Child {
		switch t := tok.(type) {
		case *etree.Element:
			roots++
		case *etree.CharData:
			if strings.TrimSpace(t.Data) != "" {
				return errTextOutside
			}
		}
	}
	switch {
	case roots == 0:
		return errNoRoot
	case roots > 1:
		return errMultipleRoots
	}
	return nil
}

// Bytes serializes the document. The output always starts with an XML
// declaration on a line of its own.
func (d *Document) Bytes() ([]byte, error) {
	d.ensureDeclaration()
	data, err := d.tree.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize %q: %w", d.Path, err)
	}
	return data, nil
}

// Save serializes the document to its path, keeping the file's current permissions.
func (d *Document) Save(ctx context.Context, fs core.FileSystem) error {
	data, err := d.Bytes()
	if err != nil {
		return err
	}
	if err := fs.WriteFile(ctx, d.Path, data, filePerm(ctx, fs, d.Path)); err != nil {
		return fmt.Errorf("failed to write file %q: %w", d.Path, err)
	}
	return nil
}

// ensureDeclaration puts an xml processing instruction at the head of the
// tree when there is none, and a line break after it.
func (d *Document) ensureDeclaration() {
	if len(d.tree.Child) == 0 {
		return
	}
	if pi, ok := d.tree.Child[0].(*etree.ProcInst); !ok || pi.Target != "xml" {
		d.tree.InsertChildAt(0, etree.NewProcInst("xml", declarationInst))
	}
	if len(d.tree.Child) > 1 {
		cd, ok := d.tree.Child[1].(*etree.CharData)
		if ok && (strings.HasPrefix(cd.Data, "\n") || strings.HasPrefix(cd.Data, "\r\n")) {
			return
		}
	}
	d.tree.InsertChildAt(1, etree.NewCharData("\n"))
}

// elements returns every element of the document in document order, root included.
func (d *Document) elements() []*etree.Element {
	var out []*etree.Element
	var walk func(*etree.Element)
	walk = func(e *etree.Element) {
		out = append(out, e)
		for _, child := range e.ChildElements() {
			walk(child)
		}
	}
	walk(d.tree.Root())
	return out
}

// leaves returns the elements named name that have no child elements.
func (d *Document) leaves(name string) []*etree.Element {
	var out []*etree.Element
	for _, e := range d.elements() {
		if e.FullTag() == name && isLeaf(e) {
			out = append(out, e)
		}
	}
	return out
}

func isLeaf(e *etree.Element) bool {
	return len(e.ChildElements()) == 0
}

// filePerm returns the permission bits of path, or core.PermOwnerRW when unknown.
func filePerm(ctx context.Context, fs core.FileSystem, path string) os.FileMode {
	info, err := fs.Stat(ctx, path)
	if err != nil {
		return core.PermOwnerRW
	}
	return info.Mode().Perm()
}
