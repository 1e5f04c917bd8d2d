package svnorm_api

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"
	"time"

	cli "github.com/urfave/cli/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var descriptionRegex = regexp.MustCompile(`["']?([^"']*)["']?`)

func writeHeader(profile *Profile, Cctx *cli.Context, header *Header, ref Reference, file *os.File, stdout bool) error {
	// VCF version
	writeLine("##fileformat=VCFv4.2", file, stdout)

	// Date of file creation
	if !Cctx.Bool("nodate") {
		cT := time.Now()
		dateLine := fmt.Sprintf("##fileDate=%d%02d%02d", cT.Year(), cT.Month(), cT.Day())
		writeLine(dateLine, file, stdout)
	}

	// ALT header lines
	for _, id := range sortedKeys(header.Alt) {
		description := descriptionRegex.FindStringSubmatch(header.Alt[id].Description)[1]
		altLine := fmt.Sprintf("##ALT=<ID=%s,Description=\"%s\">", id, description)
		writeLine(altLine, file, stdout)
	}

	// FILTER header lines
	for _, id := range sortedKeys(header.Filter) {
		description := descriptionRegex.FindStringSubmatch(header.Filter[id].Description)[1]
		filterLine := fmt.Sprintf("##FILTER=<ID=%s,Description=\"%s\">", id, description)
		writeLine(filterLine, file, stdout)
	}

	// INFO header lines, carried over from the input
	if _, ok := header.Info["END"]; !ok {
		writeLine("##INFO=<ID=END,Number=1,Type=Integer,Description=\"Stop position of the interval\">", file, stdout)
	}
	for _, id := range sortedKeys(header.Info) {
		info := header.Info[id]
		description := descriptionRegex.FindStringSubmatch(info.Description)[1]
		infoLine := fmt.Sprintf("##INFO=<ID=%s,Number=%s,Type=%s,Description=\"%s\">", id, info.Number, info.Type, description)
		writeLine(infoLine, file, stdout)
	}

	// FORMAT header lines of the input that the profile doesn't redeclare
	for _, id := range sortedKeys(header.Format) {
		if _, ok := profile.Format[id]; ok {
			continue
		}
		format := header.Format[id]
		description := descriptionRegex.FindStringSubmatch(format.Description)[1]
		formatLine := fmt.Sprintf("##FORMAT=<ID=%s,Number=%s,Type=%s,Description=\"%s\">", id, format.Number, format.Type, description)
		writeLine(formatLine, file, stdout)
	}

	// FORMAT header lines of the normalized genotype annotations
	for _, id := range sortedKeys(profile.Format) {
		format := profile.Format[id]
		formatType := cases.Title(language.English, cases.Compact).String(strings.ToLower(format.Type))
		formatLine := fmt.Sprintf("##FORMAT=<ID=%s,Number=%s,Type=%s,Description=\"%s\">", id, format.Number, formatType, format.Description)
		writeLine(formatLine, file, stdout)
	}

	// Contig lines follow the reference ordering
	for _, contig := range ref.ContigNames() {
		length, err := ref.ContigLength(contig)
		if err != nil {
			return err
		}
		contigLine := fmt.Sprintf("##contig=<ID=%s,length=%d>", contig, length)
		writeLine(contigLine, file, stdout)
	}

	// Write the column headers
	columnHeaders := []string{"#CHROM", "POS", "ID", "REF", "ALT", "QUAL", "FILTER", "INFO", "FORMAT"}
	columnHeaders = append(columnHeaders, header.Samples...)
	writeLine(strings.Join(columnHeaders, "\t"), file, stdout)
	return nil
}

// sortedKeys returns the keys of a map in lexicographic order
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Write a line to the output file or stdout
func writeLine(line string, file *os.File, stdout bool) {
	if stdout {
		fmt.Println(line)
	} else {
		file.WriteString(line + "\n")
	}
}
