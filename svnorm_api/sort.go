package svnorm_api

import "sort"

// SortVariants orders the accumulated output records by contig rank in
// the given contig order, then position. Records anchored at the same
// locus are disambiguated by their inserted-sequence annotation; beyond
// that the insertion order is preserved. Contigs missing from the order
// sort after all known ones.
func SortVariants(variants []*Variant, contigOrder []string, insertedSequenceKey string) {
	rank := make(map[string]int, len(contigOrder))
	for i, contig := range contigOrder {
		rank[contig] = i
	}
	contigRank := func(contig string) int {
		if r, ok := rank[contig]; ok {
			return r
		}
		return len(contigOrder)
	}

	sort.SliceStable(variants, func(i, j int) bool {
		vi, vj := variants[i], variants[j]
		ri, rj := contigRank(vi.Chromosome), contigRank(vj.Chromosome)
		if ri != rj {
			return ri < rj
		}
		if vi.Pos != vj.Pos {
			return vi.Pos < vj.Pos
		}
		return vi.InfoValue(insertedSequenceKey, "") < vj.InfoValue(insertedSequenceKey, "")
	})
}
