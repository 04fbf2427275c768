// Package semver parses the version strings found in PackageReference
// elements: semantic versions plus the four-part and two-part forms NuGet accepts.
package semver

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Version represents major.minor[.patch[.revision]][-preRelease][+build].
type Version struct {
	Major      int
	Minor      int
	Patch      int
	Revision   int
	PreRelease string
	Build      string

	// parts is the number of numeric components present in the source string.
	parts int
}

var (
	// versionRegex captures:
	//   1. Major version
	//   2. Minor version
	//   3. (optional) Patch version
	//   4. (optional) Revision
	//   5. (optional) Pre-release identifier
	//   6. (optional) Build metadata
	versionRegex = regexp.MustCompile(
		`^v?(\d+)\.(\d+)(?:\.(\d+))?(?:\.(\d+))?` + // major.minor[.patch[.revision]]
			`(?:-([0-9A-Za-z\-\.]+))?` + // optional pre-release
			`(?:\+([0-9A-Za-z\-\.]+))?$`, // optional build metadata
	)

	// ErrInvalidVersion is returned when a string is not a recognizable version.
	ErrInvalidVersion = errors.New("invalid version format")
)

// maxVersionLength bounds the input handed to the regex.
const maxVersionLength = 128

// String returns the version with the same number of numeric parts it was parsed with.
func (v Version) String() string {
	var sb strings.Builder
	sb.Grow(20)
	sb.WriteString(strconv.Itoa(v.Major))
	sb.WriteByte('.')
	sb.WriteString(strconv.Itoa(v.Minor))
	if v.parts >= 3 || v.parts == 0 {
		sb.WriteByte('.')
		sb.WriteString(strconv.Itoa(v.Patch))
	}
	if v.parts == 4 {
		sb.WriteByte('.')
		sb.WriteString(strconv.Itoa(v.Revision))
	}
	if v.PreRelease != "" {
		sb.WriteByte('-')
		sb.WriteString(v.PreRelease)
	}
	if v.Build != "" {
		sb.WriteByte('+')
		sb.WriteString(v.Build)
	}
	return sb.String()
}

// Parse parses a version string.
//
// Supported formats:
//   - "1.2" and "1.2.3" (with optional v prefix)
//   - "1.2.3.4" (NuGet revision)
//   - "1.2.3-rc.1+build.456" (pre-release and build metadata)
func Parse(s string) (Version, error) {
	trimmed := strings.TrimSpace(s)
	if len(trimmed) > maxVersionLength {
		return Version{}, fmt.Errorf("%w: version string exceeds maximum length of %d", ErrInvalidVersion, maxVersionLength)
	}

	m := versionRegex.FindStringSubmatch(trimmed)
	if m == nil {
		return Version{}, fmt.Errorf("%w: %q", ErrInvalidVersion, s)
	}

	v := Version{PreRelease: m[5], Build: m[6], parts: 2}
	nums := []*int{&v.Major, &v.Minor, &v.Patch, &v.Revision}
	for i, dst := range nums {
		if m[i+1] == "" {
			continue
		}
		n, err := strconv.Atoi(m[i+1])
		if err != nil {
			return Version{}, fmt.Errorf("%w: %s", ErrInvalidVersion, err.Error())
		}
		*dst = n
		v.parts = i + 1
	}
	return v, nil
}

// Compare returns -1 if v < other, 0 if equal and +1 if v > other.
// Missing numeric parts compare as zero. A pre-release sorts before the
// associated normal version and build metadata is ignored.
func (v Version) Compare(other Version) int {
	for _, pair := range [][2]int{
		{v.Major, other.Major},
		{v.Minor, other.Minor},
		{v.Patch, other.Patch},
		{v.Revision, other.Revision},
	} {
		if c := compareInt(pair[0], pair[1]); c != 0 {
			return c
		}
	}

	switch {
	case v.PreRelease == "" && other.PreRelease == "":
		return 0
	case v.PreRelease == "":
		return 1
	case other.PreRelease == "":
		return -1
	default:
		return comparePreRelease(v.PreRelease, other.PreRelease)
	}
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// comparePreRelease compares dot separated identifiers; NuGet treats labels
// case-insensitively.
func comparePreRelease(a, b string) int {
	aIDs := strings.Split(strings.ToLower(a), ".")
	bIDs := strings.Split(strings.ToLower(b), ".")

	n := min(len(aIDs), len(bIDs))
	for i := range n {
		if c := compareIdentifier(aIDs[i], bIDs[i]); c != 0 {
			return c
		}
	}

	return compareInt(len(aIDs), len(bIDs))
}

func compareIdentifier(a, b string) int {
	aNum, aIsNum := parseNumericIdentifier(a)
	bNum, bIsNum := parseNumericIdentifier(b)

	switch {
	case aIsNum && bIsNum:
		return compareInt(aNum, bNum)
	case aIsNum:
		return -1 // numeric < non-numeric
	case bIsNum:
		return 1
	default:
		return strings.Compare(a, b)
	}
}

func parseNumericIdentifier(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}
