package svnorm_api

import (
	"os"

	"github.com/grailbio/bio/encoding/fasta"
	"github.com/pkg/errors"
)

// Reference gives random access to the bases of the reference genome.
// Positions are 1-based and ranges are inclusive on both sides, the way
// VCF coordinates are written.
type Reference interface {
	// BaseAt returns the base at the given 1-based position
	BaseAt(contig string, pos int64) (byte, error)

	// Bases returns the bases in the 1-based inclusive range [start, end]
	Bases(contig string, start, end int64) (string, error)

	// ContigNames returns the contig names in the order the reference declares them
	ContigNames() []string

	// ContigLength returns the length of the given contig
	ContigLength(contig string) (int64, error)
}

// IndexedReference is a Reference backed by a faidx-indexed FASTA file
type IndexedReference struct {
	fa    fasta.Fasta
	fasta *os.File
}

// OpenReference opens the FASTA file at the given path together with its
// .fai index. The returned reference must be closed exactly once.
func OpenReference(path string) (*IndexedReference, error) {
	fastaFile, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open the reference")
	}
	indexFile, err := os.Open(path + ".fai")
	if err != nil {
		fastaFile.Close()
		return nil, errors.Wrap(err, "failed to open the reference index")
	}
	defer indexFile.Close()

	fa, err := fasta.NewIndexed(fastaFile, indexFile)
	if err != nil {
		fastaFile.Close()
		return nil, errors.Wrap(err, "failed to read the reference index")
	}

	return &IndexedReference{fa: fa, fasta: fastaFile}, nil
}

// BaseAt implements Reference.BaseAt()
func (r *IndexedReference) BaseAt(contig string, pos int64) (byte, error) {
	bases, err := r.Bases(contig, pos, pos)
	if err != nil {
		return 0, err
	}
	return bases[0], nil
}

// Bases implements Reference.Bases()
func (r *IndexedReference) Bases(contig string, start, end int64) (string, error) {
	if start < 1 || end < start {
		return "", errors.Errorf("invalid reference range %s:%d-%d", contig, start, end)
	}
	bases, err := r.fa.Get(contig, uint64(start-1), uint64(end))
	if err != nil {
		return "", errors.Wrapf(err, "failed to fetch reference bases %s:%d-%d", contig, start, end)
	}
	return bases, nil
}

// ContigNames implements Reference.ContigNames()
func (r *IndexedReference) ContigNames() []string {
	return r.fa.SeqNames()
}

// ContigLength implements Reference.ContigLength()
func (r *IndexedReference) ContigLength(contig string) (int64, error) {
	length, err := r.fa.Len(contig)
	if err != nil {
		return 0, errors.Wrapf(err, "unknown contig %s", contig)
	}
	return int64(length), nil
}

// Close releases the underlying FASTA file
func (r *IndexedReference) Close() error {
	if err := r.fasta.Close(); err != nil {
		return errors.Wrap(err, "failed to close the reference")
	}
	return nil
}
