package svnorm_api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGenotype(t *testing.T) {
	tests := []struct {
		gt       string
		expected Genotype
	}{
		{"0/1", Genotype{Allele0: 0, Allele1: 1}},
		{"0|1", Genotype{Allele0: 0, Allele1: 1, Phased: true}},
		{"1|1", Genotype{Allele0: 1, Allele1: 1, Phased: true}},
		{"0/0", Genotype{Allele0: 0, Allele1: 0}},
	}

	for _, test := range tests {
		t.Run(test.gt, func(t *testing.T) {
			genotype, err := ParseGenotype(test.gt)
			require.NoError(t, err)
			assert.Equal(t, test.expected, genotype)
		})
	}
}

func TestParseGenotypeMalformed(t *testing.T) {
	for _, gt := range []string{"0", "0/1/1", "./.", ".|1", ""} {
		t.Run(gt, func(t *testing.T) {
			_, err := ParseGenotype(gt)
			assert.Error(t, err)
		})
	}
}

func TestGenotypeRemap(t *testing.T) {
	originalAlleles := []string{"A", "<DEL>"}
	newAlleles := []string{"A", "A[chr1:2000["}

	genotype, err := ParseGenotype("0|1")
	require.NoError(t, err)

	remapped, err := genotype.Remap(originalAlleles, newAlleles)
	require.NoError(t, err)
	assert.Equal(t, genotype, remapped)

	// Resolving the remapped indices against the original list gives back
	// the original allele values
	assert.Equal(t, "A", originalAlleles[remapped.Allele0])
	assert.Equal(t, "<DEL>", originalAlleles[remapped.Allele1])
}

func TestGenotypeRemapUnresolvable(t *testing.T) {
	genotype := Genotype{Allele0: 0, Allele1: 2}

	// Index beyond the original alleles
	_, err := genotype.Remap([]string{"A", "<DEL>"}, []string{"A", "A[chr1:2000["})
	assert.Error(t, err)

	// Multi-allelic genotype with no slot in the rebuilt list
	_, err = genotype.Remap([]string{"A", "<DEL>", "<DUP>"}, []string{"A", "A[chr1:2000["})
	assert.Error(t, err)
}

func TestGenotypeString(t *testing.T) {
	assert.Equal(t, "0/1", Genotype{Allele0: 0, Allele1: 1}.String())
	assert.Equal(t, "0|1", Genotype{Allele0: 0, Allele1: 1, Phased: true}.String())
}
