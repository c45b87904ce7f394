package project

import (
	"fmt"
	"io"

	"github.com/apache/arrow/go/v18/arrow/ipc"
	"github.com/apache/arrow/go/v18/arrow/memory"
)

// WriteIPC writes the table to w as an Arrow IPC stream holding one record
// batch.
func (t *Table) WriteIPC(w io.Writer, mem memory.Allocator) error {
	rec, err := t.Record(mem)
	if err != nil {
		return err
	}
	defer rec.Release()

	iw := ipc.NewWriter(w, ipc.WithSchema(rec.Schema()), ipc.WithAllocator(mem))

	err = iw.Write(rec)
	if err != nil {
		_ = iw.Close()

		return fmt.Errorf("failed to write arrow record: %w", err)
	}

	if err := iw.Close(); err != nil {
		return fmt.Errorf("failed to close arrow stream: %w", err)
	}

	return nil
}
