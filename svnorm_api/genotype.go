package svnorm_api

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// A diploid genotype as indices into the allele list of its record
type Genotype struct {
	// Index of the first allele
	Allele0 int

	// Index of the second allele
	Allele1 int

	// Whether the two alleles are phased
	Phased bool
}

// ParseGenotype parses a two-allele GT value like "0/1" or "1|1"
func ParseGenotype(gt string) (Genotype, error) {
	separator := "/"
	phased := false
	if strings.Contains(gt, "|") {
		separator = "|"
		phased = true
	}

	fields := strings.Split(gt, separator)
	if len(fields) != 2 {
		return Genotype{}, errors.Errorf("genotype '%s' is not diploid", gt)
	}

	allele0, err := strconv.Atoi(fields[0])
	if err != nil {
		return Genotype{}, errors.Errorf("genotype '%s' references an unresolvable allele", gt)
	}
	allele1, err := strconv.Atoi(fields[1])
	if err != nil {
		return Genotype{}, errors.Errorf("genotype '%s' references an unresolvable allele", gt)
	}

	return Genotype{Allele0: allele0, Allele1: allele1, Phased: phased}, nil
}

// Remap re-expresses the genotype against a rebuilt allele list. The
// reference allele keeps role 0 and the alternate keeps role 1, so the
// indices survive unchanged; the point of the remap is validating that
// every referenced allele has a slot in the new list. A genotype that
// reaches past the new list marks a multi-allelic or otherwise malformed
// record, which this tool does not support.
func (genotype Genotype) Remap(originalAlleles, newAlleles []string) (Genotype, error) {
	for _, index := range []int{genotype.Allele0, genotype.Allele1} {
		if index < 0 || index >= len(originalAlleles) {
			return Genotype{}, errors.Errorf("genotype allele index %d does not exist in the original alleles %v", index, originalAlleles)
		}
		if index >= len(newAlleles) {
			return Genotype{}, errors.Errorf("allele '%s' has no counterpart in the rebuilt alleles %v", originalAlleles[index], newAlleles)
		}
	}
	return genotype, nil
}

// Genotype returns the parsed GT field of the variant
func (v *Variant) Genotype() (Genotype, error) {
	gt, ok := v.Format["GT"]
	if !ok || len(gt) == 0 {
		return Genotype{}, errors.Errorf("variant %s has no GT field", v.Id)
	}
	return ParseGenotype(gt[0])
}

// String renders the genotype as a GT value, "|"-separated when phased
func (genotype Genotype) String() string {
	separator := "/"
	if genotype.Phased {
		separator = "|"
	}
	return fmt.Sprintf("%d%s%d", genotype.Allele0, separator, genotype.Allele1)
}
