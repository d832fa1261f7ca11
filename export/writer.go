package export

import (
	"encoding/csv"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lukehollenback/fcsapi/constants"
	"github.com/lukehollenback/fcsapi/exchange"
)

const (
	StartKey  = "Start"
	OpenKey   = "Open"
	HighKey   = "High"
	LowKey    = "Low"
	CloseKey  = "Close"
	VolumeKey = "Volume"
)

var (
	logger = logrus.WithField(constants.ComponentKey, "export")

	Header = []string{StartKey, OpenKey, HighKey, LowKey, CloseKey, VolumeKey}
)

// Writer writes candles out as CSV rows. The header row is written before the first candle, or on
// Flush if no candle was ever written.
type Writer struct {
	writer      *csv.Writer
	wroteHeader bool
	rowsWritten int
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{writer: csv.NewWriter(w)}
}

// Write appends one row per candle. Start times are written as RFC 3339 in UTC and prices in their
// exact decimal form.
func (o *Writer) Write(candles ...exchange.Candle) error {
	if err := o.header(); err != nil {
		return err
	}

	for _, c := range candles {
		err := o.writer.Write([]string{
			c.StartTime().UTC().Format(time.RFC3339),
			c.Open().String(),
			c.High().String(),
			c.Low().String(),
			c.Close().String(),
			c.Volume().String(),
		})
		if err != nil {
			return err
		}

		o.rowsWritten++
	}

	return nil
}

// Flush flushes the underlying CSV writer's buffer and reports any error it ran into.
func (o *Writer) Flush() error {
	if err := o.header(); err != nil {
		return err
	}

	o.writer.Flush()

	return o.writer.Error()
}

func (o *Writer) Rows() int {
	return o.rowsWritten
}

func (o *Writer) header() error {
	if o.wroteHeader {
		return nil
	}

	o.wroteHeader = true

	return o.writer.Write(Header)
}

// WriteCandles writes a header row followed by every candle to w.
func WriteCandles(w io.Writer, candles []exchange.Candle) error {
	o := NewWriter(w)

	if err := o.Write(candles...); err != nil {
		return err
	}

	return o.Flush()
}

// WriteFile creates (or truncates) the file at path and writes the candles to it.
func WriteFile(path string, candles []exchange.Candle) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	err = WriteCandles(f, candles)

	if closeErr := f.Close(); closeErr != nil {
		logger.WithError(closeErr).WithField("path", path).Warn("Failed to close handle on output file.")

		if err == nil {
			err = closeErr
		}
	}

	if err == nil {
		logger.WithFields(logrus.Fields{"path": path, "rows": len(candles)}).Info("Wrote candles to CSV.")
	}

	return err
}
