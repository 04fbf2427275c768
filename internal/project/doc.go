// Package project loads MSBuild project files as XML trees, rewrites element
// text, attribute values and PackageReference versions, and writes the result
// back in place.
//
// A file moves through Loaded, Mutated, Written and, for .csproj files,
// DeclarationStripped. A written file always starts with an XML declaration
// on its own line, so stripping removes only that line. Nothing is written
// when loading fails.
package project
