package fts

import "sort"

// DiffKind classifies one header difference.
type DiffKind uint8

const (
	// DiffMissingBlock: the block exists only in the first header.
	DiffMissingBlock DiffKind = iota
	// DiffMissingTag: the tag exists only in the first header's block.
	DiffMissingTag
	// DiffValue: both headers define the tag with different values.
	DiffValue
)

// HeaderDiff describes one difference between two headers.
type HeaderDiff struct {
	Kind  DiffKind
	Block string
	Tag   string
	A, B  Value
}

// CompareHeaders reports the differences between two decoded headers,
// ordered by block then tag. Blocks or tags present only in b are reported
// by calling CompareHeaders(b, a).
func CompareHeaders(a, b Header) []HeaderDiff {
	var diffs []HeaderDiff

	blocks := make([]string, 0, len(a))
	for name := range a {
		blocks = append(blocks, name)
	}
	sort.Strings(blocks)

	for _, block := range blocks {
		other, ok := b[block]
		if !ok {
			diffs = append(diffs, HeaderDiff{Kind: DiffMissingBlock, Block: block})
			continue
		}

		tags := make([]string, 0, len(a[block]))
		for tag := range a[block] {
			tags = append(tags, tag)
		}
		sort.Strings(tags)

		for _, tag := range tags {
			av := a[block][tag]
			bv, ok := other[tag]
			if !ok {
				diffs = append(diffs, HeaderDiff{Kind: DiffMissingTag, Block: block, Tag: tag, A: av})
				continue
			}
			if !av.Equal(bv) {
				diffs = append(diffs, HeaderDiff{Kind: DiffValue, Block: block, Tag: tag, A: av, B: bv})
			}
		}
	}
	return diffs
}
