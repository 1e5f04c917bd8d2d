package svnorm_api

import (
	"fmt"
	"log"
	"os"
	"strings"
)

// SvType is the SV type tag of an input record
type SvType int

const (
	// SvTypeUnrecognized is the catch-all for tags this tool does not
	// know, new caller tags can always appear
	SvTypeUnrecognized SvType = iota
	SvTypeBreakend
	SvTypeDeletion
	SvTypeDuplication
	SvTypeInversion
	SvTypeUnresolved
)

func svTypeOf(tag string) SvType {
	switch tag {
	case "BND":
		return SvTypeBreakend
	case "DEL":
		return SvTypeDeletion
	case "DUP":
		return SvTypeDuplication
	case "INV":
		return SvTypeInversion
	case "UNK":
		return SvTypeUnresolved
	default:
		return SvTypeUnrecognized
	}
}

// Normalizer converts the SV calls of a single sample to breakend records
type Normalizer struct {
	profile *Profile
	ref     Reference
	sample  string
	logger  *log.Logger
}

// NewNormalizer creates a Normalizer for the given sample
func NewNormalizer(profile *Profile, ref Reference, sample string) *Normalizer {
	return &Normalizer{
		profile: profile,
		ref:     ref,
		sample:  sample,
		logger:  log.New(os.Stderr, "", 0),
	}
}

// Normalize converts one input variant to its breakend representation.
// A deletion or duplication becomes the two records of a breakend pair,
// an inversion becomes its four junction records and records that are
// already breakends (or unresolved calls) pass through with a rebuilt
// reference allele. Variants with an unknown SVTYPE are dropped with a
// diagnostic.
func (n *Normalizer) Normalize(variant *Variant) ([]*Variant, error) {
	switch svTypeOf(variant.SvType()) {
	case SvTypeBreakend:
		fields := strings.Split(variant.Id, "_")
		callSuffix := fields[len(fields)-1]
		id := fmt.Sprintf("%s_%s_BND_%s_%s", variant.Id, n.sample, variant.InfoValue("SVTYPE2", "."), callSuffix)
		bnd, err := n.passthrough(variant, id)
		if err != nil {
			return nil, err
		}
		return []*Variant{bnd}, nil
	case SvTypeDeletion:
		return n.deletion(variant)
	case SvTypeDuplication:
		return n.duplication(variant)
	case SvTypeInversion:
		return n.inversion(variant)
	case SvTypeUnresolved:
		id := fmt.Sprintf("%s_%s_UNK", variant.Id, n.sample)
		unk, err := n.passthrough(variant, id)
		if err != nil {
			return nil, err
		}
		return []*Variant{unk}, nil
	default:
		n.logger.Printf("Unknown variant type %s for variant %s, skipping", variant.SvType(), variant.Id)
		return nil, nil
	}
}

// passthrough rebuilds a variant that already encodes its junctions: the
// reference allele is replaced by the base at the variant position and
// the alternate alleles are carried through unchanged
func (n *Normalizer) passthrough(variant *Variant, id string) (*Variant, error) {
	base, err := n.ref.BaseAt(variant.Chromosome, variant.Pos)
	if err != nil {
		return nil, err
	}

	newAlleles := append([]string{string(base)}, strings.Split(variant.Alt, ",")...)
	genotype, err := variant.Genotype()
	if err != nil {
		return nil, err
	}
	genotype, err = genotype.Remap(variant.Alleles(), newAlleles)
	if err != nil {
		return nil, err
	}
	genotype.Phased = false

	return &Variant{
		Chromosome: variant.Chromosome,
		Pos:        variant.Pos,
		Id:         id,
		Ref:        string(base),
		Alt:        variant.Alt,
		Qual:       variant.Qual,
		Filter:     variant.Filter,
		Header:     variant.Header,
		Info:       copyInfo(variant.Info),
		Format: map[string][]string{
			"GT":    {genotype.String()},
			"Qual":  {variant.Qual},
			"PS":    {variant.InfoValue(n.profile.PhaseSet, ".")},
			"Pairs": {variant.InfoValue(n.profile.BreakendPairs, ".")},
			"Split": {variant.InfoValue(n.profile.BreakendSplit, ".")},
			"FT":    {strings.ReplaceAll(variant.Filter, ";", ",")},
		},
	}, nil
}

// deletion expands a symbolic deletion into its breakend pair: a forward
// junction at the start position pointing at the end position and the
// reverse junction back
func (n *Normalizer) deletion(variant *Variant) ([]*Variant, error) {
	id := fmt.Sprintf("%s_%s_DEL", variant.Id, n.sample)
	end, err := variant.End()
	if err != nil {
		return nil, err
	}
	baseAtPos, err := n.ref.BaseAt(variant.Chromosome, variant.Pos)
	if err != nil {
		return nil, err
	}
	baseAtEnd, err := n.ref.BaseAt(variant.Chromosome, end)
	if err != nil {
		return nil, err
	}

	bnd1, err := n.symbolicBreakend(variant, breakendSpec{
		id:      id + "_1",
		pos:     variant.Pos,
		base:    baseAtPos,
		alt:     BreakendAllele(baseAtPos, variant.Chromosome, end, false, false),
		svType2: "DEL",
	})
	if err != nil {
		return nil, err
	}
	bnd2, err := n.symbolicBreakend(variant, breakendSpec{
		id:        id + "_2",
		pos:       end,
		base:      baseAtEnd,
		alt:       BreakendAllele(baseAtEnd, variant.Chromosome, variant.Pos, true, true),
		svType2:   "DEL",
		ciposFrom: "CIEND",
	})
	if err != nil {
		return nil, err
	}

	return []*Variant{bnd1, bnd2}, nil
}

// duplication expands a symbolic tandem duplication into its breakend
// pair, with the junction orientations flipped relative to a deletion:
// the copied segment is re-entered from its end
func (n *Normalizer) duplication(variant *Variant) ([]*Variant, error) {
	id := fmt.Sprintf("%s_%s_DUP", variant.Id, n.sample)
	end, err := variant.End()
	if err != nil {
		return nil, err
	}
	baseAtPos, err := n.ref.BaseAt(variant.Chromosome, variant.Pos)
	if err != nil {
		return nil, err
	}
	baseAtEnd, err := n.ref.BaseAt(variant.Chromosome, end)
	if err != nil {
		return nil, err
	}

	bnd1, err := n.symbolicBreakend(variant, breakendSpec{
		id:      id + "_1",
		pos:     variant.Pos,
		base:    baseAtPos,
		alt:     BreakendAllele(baseAtPos, variant.Chromosome, end, true, true),
		svType2: "DUP",
	})
	if err != nil {
		return nil, err
	}
	bnd2, err := n.symbolicBreakend(variant, breakendSpec{
		id:        id + "_2",
		pos:       end,
		base:      baseAtEnd,
		alt:       BreakendAllele(baseAtEnd, variant.Chromosome, variant.Pos, false, false),
		svType2:   "DUP",
		ciposFrom: "CIEND",
	})
	if err != nil {
		return nil, err
	}

	return []*Variant{bnd1, bnd2}, nil
}

// inversion expands a symbolic inversion into its four junction records,
// anchored at the start, the end and the base after each
func (n *Normalizer) inversion(variant *Variant) ([]*Variant, error) {
	id := fmt.Sprintf("%s_%s_INV", variant.Id, n.sample)
	end, err := variant.End()
	if err != nil {
		return nil, err
	}
	baseAtPos, err := n.ref.BaseAt(variant.Chromosome, variant.Pos)
	if err != nil {
		return nil, err
	}
	baseAfterPos, err := n.ref.BaseAt(variant.Chromosome, variant.Pos+1)
	if err != nil {
		return nil, err
	}
	baseAtEnd, err := n.ref.BaseAt(variant.Chromosome, end)
	if err != nil {
		return nil, err
	}
	baseAfterEnd, err := n.ref.BaseAt(variant.Chromosome, end+1)
	if err != nil {
		return nil, err
	}

	specs := []breakendSpec{
		{
			id:      id + "_1",
			pos:     variant.Pos,
			base:    baseAtPos,
			alt:     BreakendAllele(baseAtPos, variant.Chromosome, end, true, false),
			svType2: "INV",
		},
		{
			id:        id + "_2",
			pos:       end,
			base:      baseAtEnd,
			alt:       BreakendAllele(baseAtEnd, variant.Chromosome, variant.Pos, true, false),
			svType2:   "DUP",
			ciposFrom: "CIEND",
		},
		{
			id:        id + "_3",
			pos:       variant.Pos + 1,
			base:      baseAfterPos,
			alt:       BreakendAllele(baseAfterPos, variant.Chromosome, end+1, false, true),
			svType2:   "INV",
			ciposFrom: "CIPOS",
		},
		{
			id:        id + "_4",
			pos:       end + 1,
			base:      baseAfterEnd,
			alt:       BreakendAllele(baseAfterEnd, variant.Chromosome, variant.Pos+1, false, true),
			svType2:   "INV",
			ciposFrom: "CIEND",
		},
	}

	bnds := make([]*Variant, 0, len(specs))
	for _, spec := range specs {
		bnd, err := n.symbolicBreakend(variant, spec)
		if err != nil {
			return nil, err
		}
		bnds = append(bnds, bnd)
	}
	return bnds, nil
}

// breakendSpec describes one breakend record of a symbolic SV expansion
type breakendSpec struct {
	// The ID of the breakend record
	id string

	// The 1-based anchor position of the breakend
	pos int64

	// The reference base at the anchor position
	base byte

	// The junction notation ALT allele
	alt string

	// The SV subtype annotation of the breakend
	svType2 string

	// The INFO key of the input to borrow the CIPOS value from, empty to
	// leave the inherited CIPOS untouched
	ciposFrom string
}

// symbolicBreakend builds one breakend record of a symbolic SV expansion
func (n *Normalizer) symbolicBreakend(variant *Variant, spec breakendSpec) (*Variant, error) {
	info := copyInfo(variant.Info)
	info["SVTYPE"] = []string{"BND"}
	info["SVTYPE2"] = []string{spec.svType2}
	// A breakend anchors a single locus, the interval annotations of the
	// symbolic record no longer apply
	delete(info, "END")
	delete(info, "SVLEN")
	delete(info, "CIEND")
	if spec.ciposFrom != "" {
		if value, ok := variant.Info[spec.ciposFrom]; ok {
			info["CIPOS"] = append([]string{}, value...)
		} else {
			delete(info, "CIPOS")
		}
	}

	genotype, err := variant.Genotype()
	if err != nil {
		return nil, err
	}
	genotype, err = genotype.Remap(variant.Alleles(), []string{string(spec.base), spec.alt})
	if err != nil {
		return nil, err
	}

	return &Variant{
		Chromosome: variant.Chromosome,
		Pos:        spec.pos,
		Id:         spec.id,
		Ref:        string(spec.base),
		Alt:        spec.alt,
		Qual:       variant.Qual,
		Filter:     variant.Filter,
		Header:     variant.Header,
		Info:       info,
		Format: map[string][]string{
			"GT":    {genotype.String()},
			"Qual":  {variant.Qual},
			"PS":    {variant.InfoValue(n.profile.PhaseSet, ".")},
			"Pairs": {variant.InfoValue(n.profile.Pairs, ".")},
			"Split": {variant.InfoValue(n.profile.Split, ".")},
		},
	}, nil
}

// copyInfo deep-copies the INFO values of a variant
func copyInfo(info map[string][]string) map[string][]string {
	copied := make(map[string][]string, len(info))
	for key, value := range info {
		copied[key] = append([]string{}, value...)
	}
	return copied
}
