package svnorm_api

import (
	"bufio"
	"bytes"
	"io"
	"log"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/biogo/hts/bgzf"
	"github.com/pkg/errors"
	cli "github.com/urfave/cli/v2"
)

// Execute runs the full normalization: read the input VCF, convert every
// SV call to breakend records, sort them and write the output VCF
func Execute(Cctx *cli.Context) (err error) {
	profile, err := ReadProfile(Cctx)
	if err != nil {
		return err
	}

	ref, err := OpenReference(Cctx.String("reference"))
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := ref.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	file := Cctx.String("input")
	inputVcf, err := os.Open(file)
	if err != nil {
		return errors.Wrap(err, "failed to open the input VCF")
	}
	defer inputVcf.Close()

	header := newHeader()
	variants := []*Variant{}
	var normalizer *Normalizer

	handleLine := func(line string) error {
		if line == "" {
			return nil
		}
		if strings.HasPrefix(line, "#") {
			return header.parse(line)
		}
		if normalizer == nil {
			if len(header.Samples) != 1 {
				return errors.Errorf("the input VCF must declare exactly one sample, found %d", len(header.Samples))
			}
			normalizer = NewNormalizer(profile, ref, header.Samples[0])
		}
		variant, err := createVariant(line, header)
		if err != nil {
			return err
		}
		bnds, err := normalizer.Normalize(variant)
		if err != nil {
			return err
		}
		variants = append(variants, bnds...)
		return nil
	}

	if strings.HasSuffix(file, ".gz") {
		bgReader, err := bgzf.NewReader(inputVcf, 1)
		if err != nil {
			return errors.Wrap(err, "failed to open the input VCF as bgzip")
		}
		defer bgReader.Close()

		for {
			b, _, err := readBgzipLine(bgReader)
			if err != nil {
				if err == io.EOF {
					break
				}
				return errors.Wrap(err, "failed to read the input VCF")
			}
			if err := handleLine(string(bytes.TrimSpace(b[:]))); err != nil {
				return err
			}
		}
	} else {
		scanner := bufio.NewScanner(inputVcf)
		const maxCapacity = 8 * 1000000 // 8 MB
		scanner.Buffer(make([]byte, maxCapacity), maxCapacity)
		for scanner.Scan() {
			if err := handleLine(scanner.Text()); err != nil {
				return err
			}
		}

		if err := scanner.Err(); err != nil {
			return errors.Wrap(err, "failed to read the input VCF")
		}
	}

	if len(header.Samples) != 1 {
		return errors.Errorf("the input VCF must declare exactly one sample, found %d", len(header.Samples))
	}

	SortVariants(variants, ref.ContigNames(), profile.InsertedSequence)

	stdout := true
	var outputFile *os.File
	if Cctx.String("output") != "" {
		stdout = false
		outputFile, err = os.Create(Cctx.String("output"))
		if err != nil {
			return errors.Wrap(err, "failed to create the output file")
		}
		defer outputFile.Close()
	}

	if err := writeHeader(profile, Cctx, header, ref, outputFile, stdout); err != nil {
		return err
	}
	for _, variant := range variants {
		writeLine(variant.String(), outputFile, stdout)
	}

	return nil
}

// readBgzipLine reads a line from a bgzip file
func readBgzipLine(r *bgzf.Reader) ([]byte, bgzf.Chunk, error) {
	tx := r.Begin()
	var (
		data []byte
		b    byte
		err  error
	)
	for {
		b, err = r.ReadByte()
		if err != nil {
			break
		}
		data = append(data, b)
		if b == '\n' {
			break
		}
	}
	chunk := tx.End()
	return data, chunk, err
}

// Parse the line and add it to the Variant struct
func createVariant(line string, header *Header) (*Variant, error) {
	variant := new(Variant)
	variant.Header = header

	data := strings.Split(line, "\t")
	if len(data) < 10 {
		return nil, errors.Errorf("truncated VCF record: %s", line)
	}
	variant.Chromosome = data[0]

	var err error
	variant.Pos, err = strconv.ParseInt(data[1], 0, 64)
	if err != nil {
		return nil, errors.Wrapf(err, "record %s has a non-numeric position", data[2])
	}
	variant.Id = data[2]
	variant.Ref = data[3]
	variant.Alt = data[4]
	variant.Qual = data[5]
	variant.Filter = data[6]

	variant.Info = map[string][]string{}
	info := strings.Split(data[7], ";")
	for _, i := range info {
		split := strings.SplitN(i, "=", 2)
		field := split[0]
		value := ""
		if len(split) > 1 {
			value = split[1]
		}
		variant.Info[field] = parseInfoFormat(field, value, variant.Header.Info)
	}

	variant.Format = map[string][]string{}
	formatHeaders := strings.Split(data[8], ":")
	for idx, val := range strings.Split(data[9], ":") {
		if idx >= len(formatHeaders) {
			return nil, errors.Errorf("record %s has more genotype values than FORMAT keys", variant.Id)
		}
		variant.Format[formatHeaders[idx]] = parseInfoFormat(formatHeaders[idx], val, variant.Header.Format)
	}

	return variant, nil
}

// Parse the value of an INFO or FORMAT field and return it as a slice of strings
func parseInfoFormat(field string, value string, headerLines map[string]HeaderLineIdNumberTypeDescription) []string {
	logger := log.New(os.Stderr, "", 0)
	headerLine, ok := headerLines[field]
	if !ok {
		logger.Printf("Field %s not found in header, defaulting to Type 'String' and Number '1'", field)
		headerLine = HeaderLineIdNumberTypeDescription{
			Id:          field,
			Number:      "1",
			Type:        "String",
			Description: "",
		}
	}

	if headerLine.Type == "Flag" {
		return []string{}
	}

	fieldNumber, err := strconv.ParseInt(headerLine.Number, 0, 64)
	if err != nil {
		fieldNumber = -1
	}
	return strings.SplitN(value, ",", int(fieldNumber))
}

// Parse a header line and add it to the Header struct
func (header *Header) parse(line string) error {
	if strings.HasPrefix(line, "#CHROM") {
		header.Samples = strings.Split(line, "\t")[9:]
		return nil
	}

	r := regexp.MustCompile(`^##(?P<headerType>[^=]*)=<(?P<content>.*)>$`)
	matches := r.FindStringSubmatch(line)

	if len(matches) == 0 {
		header.Other = append(header.Other, line)
		return nil
	}

	headerType := matches[1]
	content := matches[2]
	contentMap := convertLineToMap(content)

	switch headerType {
	case "INFO":
		header.Info[contentMap["id"]] = HeaderLineIdNumberTypeDescription{
			Id:          contentMap["id"],
			Number:      contentMap["number"],
			Type:        contentMap["type"],
			Description: contentMap["description"],
		}
	case "FORMAT":
		header.Format[contentMap["id"]] = HeaderLineIdNumberTypeDescription{
			Id:          contentMap["id"],
			Number:      contentMap["number"],
			Type:        contentMap["type"],
			Description: contentMap["description"],
		}
	case "ALT":
		header.Alt[contentMap["id"]] = HeaderLineIdDescription{
			Id:          contentMap["id"],
			Description: contentMap["description"],
		}
	case "FILTER":
		header.Filter[contentMap["id"]] = HeaderLineIdDescription{
			Id:          contentMap["id"],
			Description: contentMap["description"],
		}
	case "contig":
		length, err := strconv.ParseInt(contentMap["length"], 0, 64)
		if err != nil {
			return errors.Wrap(err, "could not convert contig length to an integer")
		}
		header.Contig = append(header.Contig, HeaderLineIdLength{
			Id:     contentMap["id"],
			Length: length,
		})
	}

	return nil
}

// convertLineToMap converts the header line contents to a map suitable to transform to a struct
func convertLineToMap(line string) map[string]string {
	data := map[string]string{}
	word := ""
	key := ""
	quote := ""
	for _, letter := range strings.Split(line, "") {
		if letter == "=" && key == "" {
			key = strings.ToLower(word)
			word = ""
			continue
		} else if letter == "," && quote == "" {
			data[key] = word
			key = ""
			word = ""
			continue
		}

		word += letter

		if letter == quote {
			quote = ""
		} else if letter == "\"" || letter == "'" {
			quote = letter
		}
	}
	data[key] = word

	return data
}

// Create a new header struct
func newHeader() *Header {
	return &Header{
		Info:    map[string]HeaderLineIdNumberTypeDescription{},
		Format:  map[string]HeaderLineIdNumberTypeDescription{},
		Alt:     map[string]HeaderLineIdDescription{},
		Filter:  map[string]HeaderLineIdDescription{},
		Contig:  []HeaderLineIdLength{},
		Other:   []string{},
		Samples: []string{},
	}
}
