package wikidex

import "os"

// Region is a half-open byte range [Begin,End) aligned to a <title>
// boundary, covering a whole number of articles (spec.md §4.2).
type Region struct {
	Begin int64
	End   int64
}

const titleTag = "<title>"

// Partition splits the file at path into n byte ranges, each boundary
// landing on the first <title> occurrence at or after its target offset
// S*i/n. Every byte of the file lies in exactly one region; b_0=0 and
// e_{n-1}=size. Fails if no <title> occurs at or after some target
// offset. The number of <title> occurrences is not otherwise checked: when
// several targets resolve to the same <title>, the regions between them
// are empty.
func Partition(path string, n int) ([]Region, error) {
	if n < 1 || n > maxRegions {
		return nil, fatalf("Partition", "n=%d out of range [1,%d]", n, maxRegions)
	}

	fi, err := os.Stat(path)
	if err != nil {
		return nil, fatalf("Partition", "stat %s: %w", path, err)
	}
	size := fi.Size()

	if n == 1 {
		return []Region{{Begin: 0, End: size}}, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fatalf("Partition", "open %s: %w", path, err)
	}
	defer f.Close()

	regions := make([]Region, 0, n)
	prevBoundary := int64(0)

	for i := 1; i < n; i++ {
		target := size * int64(i) / int64(n)
		searchFrom := target
		if searchFrom < prevBoundary {
			searchFrom = prevBoundary
		}

		s, err := newRegionStream(f, false, searchFrom, size)
		if err != nil {
			return nil, err
		}

		found, err := s.ReadUntil([]byte(titleTag), false, nil)
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, fatalf("Partition", "fewer than %d <title> boundaries found for %d regions", n, n)
		}

		boundary := s.Tell()
		regions = append(regions, Region{Begin: prevBoundary, End: boundary})
		prevBoundary = boundary
	}

	regions = append(regions, Region{Begin: prevBoundary, End: size})
	return regions, nil
}
