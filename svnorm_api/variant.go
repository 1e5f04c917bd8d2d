package svnorm_api

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Alleles returns the allele list of the variant, reference allele first
func (v *Variant) Alleles() []string {
	return append([]string{v.Ref}, strings.Split(v.Alt, ",")...)
}

// InfoValue returns the raw value of an INFO field, or the given default
// when the field is absent
func (v *Variant) InfoValue(field string, missing string) string {
	value, ok := v.Info[field]
	if !ok || len(value) == 0 {
		return missing
	}
	return strings.Join(value, ",")
}

// End returns the 1-based inclusive end position of the variant from its
// END INFO field
func (v *Variant) End() (int64, error) {
	value, ok := v.Info["END"]
	if !ok || len(value) == 0 {
		return 0, errors.Errorf("variant %s has no END field", v.Id)
	}
	end, err := strconv.ParseInt(value[0], 0, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "variant %s has a non-numeric END field", v.Id)
	}
	return end, nil
}

// SvType returns the SVTYPE INFO field of the variant
func (v *Variant) SvType() string {
	return v.InfoValue("SVTYPE", "")
}

// Convert a variant to a VCF line
func (v *Variant) String() string {
	// Make sure the order of the info fields is respected
	infoSlice := []string{}

	infoKeys := make([]string, 0, len(v.Info))
	for k := range v.Info {
		infoKeys = append(infoKeys, k)
	}
	sort.Strings(infoKeys)

	for _, key := range infoKeys {
		value := v.Info[key]
		// Flags carry no value
		if len(value) == 0 {
			infoSlice = append(infoSlice, key)
			continue
		}
		if value[0] == "" && len(value) == 1 {
			continue
		}
		infoSlice = append(infoSlice, fmt.Sprintf("%s=%s", key, strings.Join(value, ",")))
	}

	// GT always leads the FORMAT column, the remaining keys are sorted
	formatKeys := []string{}
	for k := range v.Format {
		if k == "GT" {
			continue
		}
		formatKeys = append(formatKeys, k)
	}
	sort.Strings(formatKeys)
	if _, ok := v.Format["GT"]; ok {
		formatKeys = append([]string{"GT"}, formatKeys...)
	}

	sampleSlice := []string{}
	for _, key := range formatKeys {
		sampleSlice = append(sampleSlice, strings.Join(v.Format[key], ","))
	}

	return fmt.Sprintf(
		"%v\t%v\t%v\t%v\t%v\t%v\t%v\t%v\t%v\t%v",
		v.Chromosome,
		v.Pos,
		v.Id,
		v.Ref,
		v.Alt,
		v.Qual,
		v.Filter,
		strings.Join(infoSlice, ";"),
		strings.Join(formatKeys, ":"),
		strings.Join(sampleSlice, ":"),
	)
}
