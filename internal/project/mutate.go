package project

import (
	"github.com/beevik/etree"
	"github.com/indaco/csprojchange/internal/options"
)

// Element and attribute names used by package mode.
const (
	PackageReferenceTag = "PackageReference"
	IncludeAttr         = "Include"
	VersionAttr         = "Version"
)

// Change records one value overwritten in a document.
type Change struct {
	// Element is the full tag of the updated element.
	Element string
	// Attr is the updated attribute, empty when the element text was replaced.
	Attr string
	// Old and New are the values before and after the update.
	Old string
	New string
}

// Apply runs the update strategy selected by opts.Mode.
func Apply(doc *Document, opts options.Options) []Change {
	if opts.Mode == options.ModePackage {
		return UpdatePackageVersion(doc, opts)
	}
	return UpdateTag(doc, opts)
}

// UpdateTag updates every leaf element named opts.Tag.
//
// Without a sub-tag the element content is replaced by opts.Value. With a
// sub-tag every attribute of that name on the element is set to opts.Value.
// Elements that have child elements are never touched.
func UpdateTag(doc *Document, opts options.Options) []Change {
	var changes []Change

	for _, e := range doc.leaves(opts.Tag) {
		if !opts.HasSubTag() {
			changes = append(changes, Change{Element: e.FullTag(), Old: e.Text(), New: opts.Value})
			setValue(e, opts.Value)
			continue
		}
		changes = append(changes, setAttrs(e, opts.SubTag, opts.Value)...)
	}

	return changes
}

// UpdatePackageVersion sets the Version attributes of the first leaf
// PackageReference whose first Include attribute equals opts.Tag. Later
// references to the same package are left unchanged.
func UpdatePackageVersion(doc *Document, opts options.Options) []Change {
	for _, e := range doc.leaves(PackageReferenceTag) {
		if include, ok := firstAttr(e, IncludeAttr); !ok || include != opts.Tag {
			continue
		}
		return setAttrs(e, VersionAttr, opts.Value)
	}
	return nil
}

// setValue replaces all content of e with a single text node.
func setValue(e *etree.Element, value string) {
	for len(e.Child) > 0 {
		e.RemoveChildAt(0)
	}
	e.SetText(value)
}

// setAttrs overwrites every attribute of e named key, in declaration order.
func setAttrs(e *etree.Element, key, value string) []Change {
	var changes []Change
	for i := range e.Attr {
		if e.Attr[i].FullKey() != key {
			continue
		}
		changes = append(changes, Change{Element: e.FullTag(), Attr: key, Old: e.Attr[i].Value, New: value})
		e.Attr[i].Value = value
	}
	return changes
}

// firstAttr returns the value of the first attribute of e named key.
func firstAttr(e *etree.Element, key string) (string, bool) {
	for _, a := range e.Attr {
		if a.FullKey() == key {
			return a.Value, true
		}
	}
	return "", false
}
