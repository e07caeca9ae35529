package movie

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"go.uber.org/multierr"
)

const minFields = 5

type Movie struct {
	Title       string
	Certificate string
	Duration    int
	Genre       string
	Rating      float64
}

func (m Movie) String() string {
	return fmt.Sprintf("Title: %s, Genre: %s, Rating: %s", m.Title, m.Genre, formatRating(m.Rating))
}

type RowError struct {
	Line   int
	Reason string
}

func (e *RowError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
}

// Load reads movies from CSV, skipping the header row. Rows that cannot be
// used are skipped; their errors are combined into the returned error while
// the parsed movies are still returned. Only read failures abort the load.
func Load(r io.Reader) ([]Movie, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	if _, err := reader.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	var movies []Movie
	var rowErrs error
	for {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				rowErrs = multierr.Append(rowErrs, &RowError{Line: parseErr.Line, Reason: parseErr.Err.Error()})
				continue
			}
			return movies, fmt.Errorf("failed to read movies: %w", err)
		}

		line, _ := reader.FieldPos(0)
		// A trailing empty field does not count toward the minimum.
		if n := len(fields); n > 0 && fields[n-1] == "" {
			fields = fields[:n-1]
		}
		if len(fields) < minFields {
			rowErrs = multierr.Append(rowErrs, &RowError{
				Line:   line,
				Reason: fmt.Sprintf("not enough fields (%d)", len(fields)),
			})
			continue
		}

		movies = append(movies, Movie{
			Title:       fields[0],
			Certificate: fields[1],
			Duration:    ParseDuration(fields[2]),
			Genre:       fields[3],
			Rating:      ParseRating(fields[4]),
		})
	}

	return movies, rowErrs
}

// ParseDuration keeps only the digits of s, so "142 min" is 142. Anything
// without digits, or too large for an int, is 0.
func ParseDuration(s string) int {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
	if digits == "" {
		return 0
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0
	}
	return n
}

func ParseRating(s string) float64 {
	switch s {
	case "", "Not Rated", "N/A":
		return 0
	}
	if strings.IndexFunc(s, func(r rune) bool { return (r < '0' || r > '9') && r != '.' }) >= 0 {
		return 0
	}
	rating, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return rating
}

func TitleGenreKey(m Movie) string {
	initial := ""
	if _, size := utf8.DecodeRuneInString(m.Genre); size > 0 {
		initial = m.Genre[:size]
	}
	return m.Title + "_" + initial
}

func TitleRatingKey(m Movie) string {
	return m.Title + "_" + formatRating(m.Rating)
}

func formatRating(r float64) string {
	return strconv.FormatFloat(r, 'g', 6, 64)
}
