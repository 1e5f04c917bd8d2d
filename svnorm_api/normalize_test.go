package svnorm_api

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeReference serves single bases from a lookup table, defaulting to N
type fakeReference struct {
	contigs []string
	bases   map[string]map[int64]byte
}

func (f *fakeReference) BaseAt(contig string, pos int64) (byte, error) {
	positions, ok := f.bases[contig]
	if !ok {
		return 0, errors.Errorf("unknown contig %s", contig)
	}
	if base, ok := positions[pos]; ok {
		return base, nil
	}
	return 'N', nil
}

func (f *fakeReference) Bases(contig string, start, end int64) (string, error) {
	bases := []byte{}
	for pos := start; pos <= end; pos++ {
		base, err := f.BaseAt(contig, pos)
		if err != nil {
			return "", err
		}
		bases = append(bases, base)
	}
	return string(bases), nil
}

func (f *fakeReference) ContigNames() []string {
	return f.contigs
}

func (f *fakeReference) ContigLength(contig string) (int64, error) {
	return 1000000, nil
}

func testNormalizer() *Normalizer {
	ref := &fakeReference{
		contigs: []string{"chr1", "chr2"},
		bases: map[string]map[int64]byte{
			"chr1": {1000: 'A', 1001: 'C', 2000: 'T', 2001: 'G'},
			"chr2": {},
		},
	}
	profile := &Profile{}
	profile.defineMissing()
	return NewNormalizer(profile, ref, "HG002")
}

func testDeletion() *Variant {
	return &Variant{
		Chromosome: "chr1",
		Pos:        1000,
		Id:         "call_42",
		Ref:        "A",
		Alt:        "<DEL>",
		Qual:       "137",
		Filter:     "PASS",
		Info: map[string][]string{
			"SVTYPE": {"DEL"},
			"END":    {"2000"},
			"SVLEN":  {"-1000"},
			"CIPOS":  {"-10", "10"},
			"CIEND":  {"-20", "20"},
			"PS":     {"7"},
			"PAIRS":  {"11"},
			"SPLIT":  {"3"},
		},
		Format: map[string][]string{"GT": {"0|1"}},
	}
}

func TestNormalizeDeletion(t *testing.T) {
	variant := testDeletion()

	bnds, err := testNormalizer().Normalize(variant)
	require.NoError(t, err)
	require.Len(t, bnds, 2)

	bnd1, bnd2 := bnds[0], bnds[1]

	assert.Equal(t, "call_42_HG002_DEL_1", bnd1.Id)
	assert.Equal(t, int64(1000), bnd1.Pos)
	assert.Equal(t, "A", bnd1.Ref)
	assert.Equal(t, "A[chr1:2000[", bnd1.Alt)
	assert.Equal(t, []string{"-10", "10"}, bnd1.Info["CIPOS"])

	assert.Equal(t, "call_42_HG002_DEL_2", bnd2.Id)
	assert.Equal(t, int64(2000), bnd2.Pos)
	assert.Equal(t, "T", bnd2.Ref)
	assert.Equal(t, "]chr1:1000]T", bnd2.Alt)
	// The end-side confidence interval becomes the position-side interval
	// at the second anchor
	assert.Equal(t, []string{"-20", "20"}, bnd2.Info["CIPOS"])

	for _, bnd := range bnds {
		assert.Equal(t, []string{"BND"}, bnd.Info["SVTYPE"])
		assert.Equal(t, []string{"DEL"}, bnd.Info["SVTYPE2"])
		assert.NotContains(t, bnd.Info, "END")
		assert.NotContains(t, bnd.Info, "SVLEN")
		assert.NotContains(t, bnd.Info, "CIEND")

		assert.Equal(t, []string{"0|1"}, bnd.Format["GT"])
		assert.Equal(t, []string{"137"}, bnd.Format["Qual"])
		assert.Equal(t, []string{"7"}, bnd.Format["PS"])
		assert.Equal(t, []string{"11"}, bnd.Format["Pairs"])
		assert.Equal(t, []string{"3"}, bnd.Format["Split"])
		assert.NotContains(t, bnd.Format, "FT")

		assert.Equal(t, "PASS", bnd.Filter)
		assert.Equal(t, "137", bnd.Qual)
	}
}

func TestNormalizeDuplication(t *testing.T) {
	variant := testDeletion()
	variant.Info["SVTYPE"] = []string{"DUP"}
	variant.Alt = "<DUP>"

	bnds, err := testNormalizer().Normalize(variant)
	require.NoError(t, err)
	require.Len(t, bnds, 2)

	assert.Equal(t, "call_42_HG002_DUP_1", bnds[0].Id)
	assert.Equal(t, int64(1000), bnds[0].Pos)
	assert.Equal(t, "]chr1:2000]A", bnds[0].Alt)

	assert.Equal(t, "call_42_HG002_DUP_2", bnds[1].Id)
	assert.Equal(t, int64(2000), bnds[1].Pos)
	assert.Equal(t, "T[chr1:1000[", bnds[1].Alt)

	for _, bnd := range bnds {
		assert.Equal(t, []string{"DUP"}, bnd.Info["SVTYPE2"])
	}
}

func TestNormalizeInversion(t *testing.T) {
	variant := testDeletion()
	variant.Info["SVTYPE"] = []string{"INV"}
	variant.Alt = "<INV>"

	bnds, err := testNormalizer().Normalize(variant)
	require.NoError(t, err)
	require.Len(t, bnds, 4)

	assert.Equal(t, int64(1000), bnds[0].Pos)
	assert.Equal(t, "A]chr1:2000]", bnds[0].Alt)
	assert.Equal(t, []string{"INV"}, bnds[0].Info["SVTYPE2"])
	assert.Equal(t, []string{"-10", "10"}, bnds[0].Info["CIPOS"])

	assert.Equal(t, int64(2000), bnds[1].Pos)
	assert.Equal(t, "T]chr1:1000]", bnds[1].Alt)
	assert.Equal(t, []string{"DUP"}, bnds[1].Info["SVTYPE2"])
	assert.Equal(t, []string{"-20", "20"}, bnds[1].Info["CIPOS"])

	assert.Equal(t, int64(1001), bnds[2].Pos)
	assert.Equal(t, "[chr1:2001[C", bnds[2].Alt)
	assert.Equal(t, []string{"INV"}, bnds[2].Info["SVTYPE2"])
	assert.Equal(t, []string{"-10", "10"}, bnds[2].Info["CIPOS"])

	assert.Equal(t, int64(2001), bnds[3].Pos)
	assert.Equal(t, "[chr1:1001[G", bnds[3].Alt)
	assert.Equal(t, []string{"INV"}, bnds[3].Info["SVTYPE2"])
	assert.Equal(t, []string{"-20", "20"}, bnds[3].Info["CIPOS"])

	for index, bnd := range bnds {
		assert.Equal(t, "call_42_HG002_INV_"+string(rune('1'+index)), bnd.Id)
		assert.NotContains(t, bnd.Info, "END")
		assert.NotContains(t, bnd.Info, "CIEND")
		assert.Equal(t, []string{"0|1"}, bnd.Format["GT"])
	}
}

func TestNormalizeBreakendPassthrough(t *testing.T) {
	variant := &Variant{
		Chromosome: "chr1",
		Pos:        1000,
		Id:         "call_77_2",
		Ref:        "N",
		Alt:        "N[chr2:500[",
		Qual:       "99",
		Filter:     "LOWQ;CNV",
		Info: map[string][]string{
			"SVTYPE":  {"BND"},
			"SVTYPE2": {"DEL"},
			"PS":      {"13"},
			"Pairs":   {"5"},
			"Split":   {"2"},
		},
		Format: map[string][]string{"GT": {"0|1"}},
	}

	bnds, err := testNormalizer().Normalize(variant)
	require.NoError(t, err)
	require.Len(t, bnds, 1)

	bnd := bnds[0]
	assert.Equal(t, "call_77_2_HG002_BND_DEL_2", bnd.Id)
	assert.Equal(t, int64(1000), bnd.Pos)
	// The reference allele is replaced by the base at the position
	assert.Equal(t, "A", bnd.Ref)
	// The alternate allele already encodes the junction and passes through
	assert.Equal(t, "N[chr2:500[", bnd.Alt)
	assert.Equal(t, []string{"BND"}, bnd.Info["SVTYPE"])

	// Passthrough records rebuild their genotype unphased
	assert.Equal(t, []string{"0/1"}, bnd.Format["GT"])
	assert.Equal(t, []string{"99"}, bnd.Format["Qual"])
	assert.Equal(t, []string{"13"}, bnd.Format["PS"])
	assert.Equal(t, []string{"5"}, bnd.Format["Pairs"])
	assert.Equal(t, []string{"2"}, bnd.Format["Split"])
	assert.Equal(t, []string{"LOWQ,CNV"}, bnd.Format["FT"])
}

func TestNormalizeUnresolved(t *testing.T) {
	variant := &Variant{
		Chromosome: "chr1",
		Pos:        2000,
		Id:         "call_9",
		Ref:        "N",
		Alt:        "<UNK>",
		Qual:       "10",
		Filter:     "PASS",
		Info: map[string][]string{
			"SVTYPE": {"UNK"},
			"END":    {"2100"},
		},
		Format: map[string][]string{"GT": {"0|1"}},
	}

	bnds, err := testNormalizer().Normalize(variant)
	require.NoError(t, err)
	require.Len(t, bnds, 1)

	bnd := bnds[0]
	assert.Equal(t, "call_9_HG002_UNK", bnd.Id)
	assert.Equal(t, "T", bnd.Ref)
	assert.Equal(t, "<UNK>", bnd.Alt)
	assert.Equal(t, []string{"0/1"}, bnd.Format["GT"])
	assert.Equal(t, []string{"."}, bnd.Format["PS"])
}

func TestNormalizeUnrecognizedType(t *testing.T) {
	normalizer := testNormalizer()

	variant := testDeletion()
	variant.Info["SVTYPE"] = []string{"XYZ"}

	bnds, err := normalizer.Normalize(variant)
	require.NoError(t, err)
	assert.Empty(t, bnds)

	// The next valid record is still processed
	bnds, err = normalizer.Normalize(testDeletion())
	require.NoError(t, err)
	assert.Len(t, bnds, 2)
}

func TestNormalizeMalformedGenotype(t *testing.T) {
	variant := testDeletion()
	variant.Format["GT"] = []string{"0/2"}

	_, err := testNormalizer().Normalize(variant)
	assert.Error(t, err)
}
