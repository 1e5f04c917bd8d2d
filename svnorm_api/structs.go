package svnorm_api

// The struct representing the header of the input VCF file in a parseable format
type Header struct {
	// Object containing the INFO fields with their ID, Number, Type and Description
	// The ID is the key of the map
	Info map[string]HeaderLineIdNumberTypeDescription

	// Object containing the FORMAT fields with their ID, Number, Type and Description
	// The ID is the key of the map
	Format map[string]HeaderLineIdNumberTypeDescription

	// Object containing the ALT fields with their ID and Description
	// The ID is the key of the map
	Alt map[string]HeaderLineIdDescription

	// Object containing the FILTER fields with their ID and Description
	// The ID is the key of the map
	Filter map[string]HeaderLineIdDescription

	// List of all contigs in the VCF file with their ID and Length
	Contig []HeaderLineIdLength

	// List of all other VCF fields
	Other []string

	// List of all samples in the VCF file
	Samples []string
}

// A struct representing a header line in the VCF file with its ID and Description
type HeaderLineIdDescription struct {
	// The ID of the header line
	Id string

	// The description of the header line
	Description string
}

// A struct representing a header line in the VCF file with its ID, Number, Type and Description
type HeaderLineIdNumberTypeDescription struct {
	// The ID of the header line
	Id string

	// The number of values in the header line
	// Can be any integer, "A", "G", "R" or "."
	Number string

	// The type of the header line
	// Can be "Integer", "Float", "Flag", "String" or "Character"
	Type string

	// The description of the header line
	Description string
}

// A struct representing a header line in the VCF file with its ID and Length
type HeaderLineIdLength struct {
	// The ID of the header line
	Id string

	// The length of the header line
	Length int64
}

// A struct representing a variant in the input or output VCF file
type Variant struct {
	// The chromosome of the variant
	Chromosome string

	// The 1-based position of the variant
	Pos int64

	// The ID of the variant
	Id string

	// The reference allele of the variant
	Ref string

	// The alternate allele of the variant
	Alt string

	// The Phred-scaled quality score of the variant
	Qual string

	// The filter status of the variant
	Filter string

	// A pointer to the header of the VCF that contains this variant
	Header *Header

	// The INFO values of the variant
	Info map[string][]string

	// The FORMAT values of the single sample of the variant
	Format map[string][]string
}
