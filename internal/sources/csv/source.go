// Package csv reads delimited text files into economic observations.
package csv

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/custodia-labs/ecoreport/internal/core/domain"
	"github.com/custodia-labs/ecoreport/internal/core/ports/driven"
	"github.com/custodia-labs/ecoreport/internal/sources/rows"
)

// Ensure Source implements the interface.
var _ driven.Source = (*Source)(nil)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Source reads header-keyed delimited text.
type Source struct {
	name       string
	comma      rune
	extensions []string
}

// Option configures a Source.
type Option func(*Source)

// WithDelimiter sets the field separator.
func WithDelimiter(r rune) Option {
	return func(s *Source) {
		s.comma = r
	}
}

// WithExtensions overrides the handled extensions.
func WithExtensions(exts ...string) Option {
	return func(s *Source) {
		s.extensions = exts
	}
}

// WithName overrides the source name.
func WithName(name string) Option {
	return func(s *Source) {
		s.name = name
	}
}

// New creates a comma-separated source for .csv and .txt files.
func New(opts ...Option) *Source {
	s := &Source{
		name:       "csv",
		comma:      ',',
		extensions: []string{".csv", ".txt"},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewTSV creates a tab-separated source for .tsv files.
func NewTSV() *Source {
	return New(WithName("tsv"), WithDelimiter('\t'), WithExtensions(".tsv"))
}

// Name returns the source name.
func (s *Source) Name() string {
	return s.name
}

// Extensions returns the handled file extensions.
func (s *Source) Extensions() []string {
	return s.extensions
}

// Read parses every data row of the file at path.
// Blank lines are skipped. A file with only a header yields no observations.
func (s *Source) Read(ctx context.Context, path string) ([]domain.Observation, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &domain.FileError{Path: path, Err: domain.ErrFileNotFound}
		}
		return nil, readErr(path, err)
	}
	defer f.Close()

	obs, err := s.decode(ctx, f)
	if err != nil {
		return nil, &domain.FileError{Path: path, Err: err}
	}
	return obs, nil
}

func (s *Source) decode(ctx context.Context, r io.Reader) ([]domain.Observation, error) {
	br := bufio.NewReader(r)
	if prefix, _ := br.Peek(len(utf8BOM)); bytes.Equal(prefix, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}

	cr := csv.NewReader(br)
	cr.Comma = s.comma
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: header: %w", domain.ErrFileRead, err)
	}

	parser := rows.NewParser(header)
	var out []domain.Observation

	for {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrFileRead, err)
		}

		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrFileRead, err)
		}

		line, _ := cr.FieldPos(0)
		o, err := parser.Parse(line, record)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}

	return out, nil
}

func readErr(path string, err error) error {
	return &domain.FileError{Path: path, Err: fmt.Errorf("%w: %w", domain.ErrFileRead, err)}
}
