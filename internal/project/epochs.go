package project

import (
	"hdrnorm/internal/header"
	"hdrnorm/internal/keyword"
)

const (
	// EpochStart names the column holding the MJD/START header value.
	EpochStart = "epoch_ini"
	// EpochEnd names the column holding the MJD/END header value.
	EpochEnd = "epoch_end"
	// EpochUnit tags both epoch columns.
	EpochUnit = "day"
)

// AddEpochColumns adds the observation start and end epochs of h as the
// EpochStart and EpochEnd columns. Nothing is added unless both resolve.
func AddEpochColumns(t *Table, h *header.Header, opts ...Option) error {
	start, err := Project(h, keyword.Sequence("MJD", "START"), t.rows, EpochUnit, opts...)
	if err != nil {
		return err
	}

	end, err := Project(h, keyword.Sequence("MJD", "END"), t.rows, EpochUnit, opts...)
	if err != nil {
		return err
	}

	err = t.Add(start.withName(EpochStart))
	if err != nil {
		return err
	}

	err = t.Add(end.withName(EpochEnd))
	if err != nil {
		t.Drop(EpochStart)

		return err
	}

	return nil
}
