// Package anchors carries block identity and structural markers through
// the plain-text editing surface. Markers are HTML comments, so a rendered
// markdown view hides them, and the source surface round-trips them as
// ordinary text. Edits made on the source surface are re-associated with
// block ids on the way back into the store by extracting the markers.
package anchors

import (
	"regexp"
	"sort"
	"strings"

	"github.com/quillworks-labs/quill-cli/internal/core/domain"
)

const (
	// BibliographyMarker flags the start of bibliography content.
	BibliographyMarker = "<!--quill:bibliography-->"

	// SeparatorMarker is the zoom/footnote separator.
	SeparatorMarker = "<!--quill:separator-->"

	markerPrefix = "<!--qid:"
	markerSuffix = "-->"
)

// idMarker matches an identity marker and captures the block id.
var idMarker = regexp.MustCompile(`<!--qid:([0-9A-Za-z-]+)-->`)

// Anchor is one extracted identity marker: the block id and the byte
// offset the marker occupied in the stripped text.
type Anchor struct {
	ID     string
	Offset int
}

// Marker returns the identity marker token for a block id.
func Marker(id string) string {
	return markerPrefix + id + markerSuffix
}

// Inject inserts an identity marker directly before each section's heading
// text, on the same line, so hiding the marker never produces a blank
// line. Each offset in bibliography additionally gets a BibliographyMarker
// on its own line above the content starting there, and the first such
// offset a SeparatorMarker line setting the bibliography region off from
// body text. Insertion proceeds from the highest offset to the lowest so
// earlier insertions cannot drift later offsets. Offsets outside the text
// are skipped.
func Inject(text string, sections []domain.Section, bibliography []int) string {
	type insertion struct {
		offset     int
		marker     string
		structural bool
	}

	ins := make([]insertion, 0, len(sections)+len(bibliography))
	for i := range sections {
		ins = append(ins, insertion{offset: sections[i].StartOffset, marker: Marker(sections[i].ID)})
	}
	bib := make([]int, len(bibliography))
	copy(bib, bibliography)
	sort.Ints(bib)
	for i, off := range bib {
		m := BibliographyMarker + "\n"
		if i == 0 {
			m = SeparatorMarker + "\n" + m
		}
		ins = append(ins, insertion{offset: off, marker: m, structural: true})
	}

	// Highest offset first. At equal offsets the identity marker goes in
	// first so the structural lines land above it, not inside it.
	sort.SliceStable(ins, func(i, j int) bool {
		if ins[i].offset != ins[j].offset {
			return ins[i].offset > ins[j].offset
		}
		return !ins[i].structural && ins[j].structural
	})

	for _, in := range ins {
		if in.offset < 0 || in.offset > len(text) {
			continue
		}
		text = text[:in.offset] + in.marker + text[in.offset:]
	}
	return text
}

// Extract removes every recognized marker from the text and returns the
// stripped text, the identity anchors found, and the stripped offsets of
// content a BibliographyMarker line flagged. Scanning is line by line; a
// line holding only a structural marker is dropped whole and its length
// never counts toward stripped offsets.
//
// Extract is the inverse of Inject: extracting injected text yields the
// original text byte for byte.
func Extract(text string) (string, []Anchor, []int) {
	var (
		out        strings.Builder
		anchors    []Anchor
		bib        []int
		pendingBib bool
		firstOut   = true
	)
	out.Grow(len(text))

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == SeparatorMarker {
			continue
		}
		if trimmed == BibliographyMarker {
			pendingBib = true
			continue
		}

		if !firstOut {
			out.WriteString("\n")
		}
		firstOut = false

		base := out.Len()
		if pendingBib {
			bib = append(bib, base)
			pendingBib = false
		}
		for {
			loc := idMarker.FindStringSubmatchIndex(line)
			if loc == nil {
				break
			}
			anchors = append(anchors, Anchor{
				ID:     line[loc[2]:loc[3]],
				Offset: base + loc[0],
			})
			line = line[:loc[0]] + line[loc[1]:]
		}
		out.WriteString(line)
	}
	return out.String(), anchors, bib
}

// StripAll removes every recognized marker kind. It is the single strip
// implementation shared by word/character counting and clipboard export.
func StripAll(text string) string {
	stripped, _, _ := Extract(text)
	return stripped
}

// CountWords counts words in the text with all markers stripped.
func CountWords(text string) int {
	return len(strings.Fields(StripAll(text)))
}

// CountCharacters counts runes in the text with all markers stripped.
func CountCharacters(text string) int {
	return len([]rune(StripAll(text)))
}
