package bench

import (
	"fmt"
	"io"

	"github.com/valyala/bytebufferpool"
)

const separator = "----------------------------------------\n"

func WriteReport(w io.Writer, res *Result) error {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	for _, s := range res.StatsFor(SeparateChaining) {
		fmt.Fprintf(buf, "Separate Chaining Table %d: %d collisions\n", s.Index, s.Collisions)
	}
	for _, s := range res.StatsFor(OpenAddressing) {
		fmt.Fprintf(buf, "Open Addressing Table %d: %d collisions\n", s.Index, s.Collisions)
		fmt.Fprintf(buf, "Final table size: %d\n", s.Capacity)
	}

	if _, err := buf.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

func WriteDumps(w io.Writer, res *Result) error {
	for i, t := range res.Chained {
		if _, err := fmt.Fprintf(w, "Separate Chaining Table %d (Collisions: %d)\n", i, t.Collisions()); err != nil {
			return fmt.Errorf("failed to write dump header: %w", err)
		}
		if err := t.Dump(w); err != nil {
			return err
		}
		if _, err := io.WriteString(w, separator); err != nil {
			return fmt.Errorf("failed to write dump separator: %w", err)
		}
	}

	for i, t := range res.Probing {
		if _, err := fmt.Fprintf(w, "Open Addressing Table %d (Collisions: %d)\n", i, t.Collisions()); err != nil {
			return fmt.Errorf("failed to write dump header: %w", err)
		}
		if err := t.Dump(w); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "Final table size: %d\n%s", t.Capacity(), separator); err != nil {
			return fmt.Errorf("failed to write dump footer: %w", err)
		}
	}
	return nil
}
