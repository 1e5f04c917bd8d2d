package svnorm_api

import (
	"os"

	"github.com/pkg/errors"
	cli "github.com/urfave/cli/v2"
	"gopkg.in/yaml.v2"
)

// The struct representing the profile file
// The profile file is a YAML file mapping the normalized annotations to
// the INFO keys the caller writes them under
type Profile struct {
	// The INFO key holding the phase set of the call
	PhaseSet string `yaml:"phaseSet"`

	// The INFO key holding the supporting pair count on symbolic records
	Pairs string `yaml:"pairs"`

	// The INFO key holding the supporting split read count on symbolic records
	Split string `yaml:"split"`

	// The INFO key holding the supporting pair count on breakend records
	BreakendPairs string `yaml:"breakendPairs"`

	// The INFO key holding the supporting split read count on breakend records
	BreakendSplit string `yaml:"breakendSplit"`

	// The INFO key holding the inserted sequence at a junction
	InsertedSequence string `yaml:"insertedSequence"`

	// The FORMAT header lines to declare for the normalized genotype annotations
	Format map[string]ProfileFormatLine `yaml:"format"`
}

// A struct representing one FORMAT header line declared by the profile
type ProfileFormatLine struct {
	// The number of values in the field
	Number string `yaml:"number"`

	// The type of the field
	Type string `yaml:"type"`

	// The description of the field
	Description string `yaml:"description"`
}

// Read the profile file, cast it to its struct and fill in the defaults.
// Without a --profile flag the defaults alone are returned, which match
// the 10x Long Ranger SV VCF naming.
func ReadProfile(Cctx *cli.Context) (*Profile, error) {
	var profile Profile

	if file := Cctx.String("profile"); file != "" {
		profileFile, err := os.ReadFile(file)
		if err != nil {
			return nil, errors.Wrap(err, "failed to open the profile file")
		}
		if err := yaml.Unmarshal(profileFile, &profile); err != nil {
			return nil, errors.Wrap(err, "failed to parse the profile file")
		}
	}

	profile.defineMissing()
	return &profile, nil
}

// Define all missing mandatory fields
func (profile *Profile) defineMissing() {
	if profile.PhaseSet == "" {
		profile.PhaseSet = "PS"
	}
	if profile.Pairs == "" {
		profile.Pairs = "PAIRS"
	}
	if profile.Split == "" {
		profile.Split = "SPLIT"
	}
	// Long Ranger names the support counts differently on records that
	// are already breakends
	if profile.BreakendPairs == "" {
		profile.BreakendPairs = "Pairs"
	}
	if profile.BreakendSplit == "" {
		profile.BreakendSplit = "Split"
	}
	if profile.InsertedSequence == "" {
		profile.InsertedSequence = "INSSEQ"
	}

	if profile.Format == nil {
		profile.Format = map[string]ProfileFormatLine{}
	}
	if _, ok := profile.Format["Qual"]; !ok {
		profile.Format["Qual"] = ProfileFormatLine{
			Number:      "1",
			Type:        "Integer",
			Description: "The quality of the call (number of supporting barcodes)",
		}
	}
	if _, ok := profile.Format["PS"]; !ok {
		profile.Format["PS"] = ProfileFormatLine{
			Number:      "1",
			Type:        "Integer",
			Description: "Phase set for the breakend",
		}
	}
	if _, ok := profile.Format["Pairs"]; !ok {
		profile.Format["Pairs"] = ProfileFormatLine{
			Number:      "1",
			Type:        "Integer",
			Description: "Supporting pairs",
		}
	}
	if _, ok := profile.Format["Split"]; !ok {
		profile.Format["Split"] = ProfileFormatLine{
			Number:      "1",
			Type:        "Integer",
			Description: "Supporting split reads",
		}
	}
	if _, ok := profile.Format["FT"]; !ok {
		profile.Format["FT"] = ProfileFormatLine{
			Number:      ".",
			Type:        "String",
			Description: "Filters",
		}
	}
	if _, ok := profile.Format["GT"]; !ok {
		profile.Format["GT"] = ProfileFormatLine{
			Number:      "1",
			Type:        "String",
			Description: "Genotype",
		}
	}
}
