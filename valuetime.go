package dicom

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DatePrecision and its Time/DateTime counterparts record how much of a
// partial-precision component was actually present on the wire, so that
// conversion to a concrete calendar instant can be refused when the source
// did not carry enough information (spec.md §3 "Date / Time / DateTime").

// DatePrecision is how much of a Date was specified.
type DatePrecision int

const (
	DatePrecisionYear DatePrecision = iota
	DatePrecisionMonth
	DatePrecisionDay
)

// Date is a partial-precision calendar date (VR=DA).
type Date struct {
	Year      int
	Month     int // 1-12, valid from DatePrecisionMonth
	Day       int // 1-31, valid from DatePrecisionDay
	Precision DatePrecision
}

// EncodedLen is the DICOM DA wire length for this precision: year=4,
// month=6, day=8.
func (d Date) EncodedLen() int {
	switch d.Precision {
	case DatePrecisionYear:
		return 4
	case DatePrecisionMonth:
		return 6
	default:
		return 8
	}
}

func (d Date) String() string {
	switch d.Precision {
	case DatePrecisionYear:
		return fmt.Sprintf("%04d", d.Year)
	case DatePrecisionMonth:
		return fmt.Sprintf("%04d%02d", d.Year, d.Month)
	default:
		return fmt.Sprintf("%04d%02d%02d", d.Year, d.Month, d.Day)
	}
}

// ToTime converts to a calendar instant at midnight UTC. Only full
// day-precision dates can be converted; anything coarser fails.
func (d Date) ToTime() (time.Time, error) {
	if d.Precision != DatePrecisionDay {
		return time.Time{}, fmt.Errorf("dicom: date %v lacks day precision", d)
	}
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC), nil
}

// ParseDate parses a DA value: YYYY, YYYYMM, or YYYYMMDD.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	switch len(s) {
	case 4:
		y, err := strconv.Atoi(s)
		if err != nil {
			return Date{}, &ParseDateError{Text: s, Cause: err}
		}
		return Date{Year: y, Precision: DatePrecisionYear}, nil
	case 6:
		y, err := strconv.Atoi(s[0:4])
		if err != nil {
			return Date{}, &ParseDateError{Text: s, Cause: err}
		}
		m, err := strconv.Atoi(s[4:6])
		if err != nil {
			return Date{}, &ParseDateError{Text: s, Cause: err}
		}
		return Date{Year: y, Month: m, Precision: DatePrecisionMonth}, nil
	case 8:
		y, err := strconv.Atoi(s[0:4])
		if err != nil {
			return Date{}, &ParseDateError{Text: s, Cause: err}
		}
		m, err := strconv.Atoi(s[4:6])
		if err != nil {
			return Date{}, &ParseDateError{Text: s, Cause: err}
		}
		d, err := strconv.Atoi(s[6:8])
		if err != nil {
			return Date{}, &ParseDateError{Text: s, Cause: err}
		}
		return Date{Year: y, Month: m, Day: d, Precision: DatePrecisionDay}, nil
	default:
		return Date{}, &ParseDateError{Text: s, Cause: fmt.Errorf("unexpected length %d", len(s))}
	}
}

// TimePrecision is how much of a Time was specified.
type TimePrecision int

const (
	TimePrecisionHour TimePrecision = iota
	TimePrecisionMinute
	TimePrecisionSecond
	TimePrecisionFraction
)

// Time is a partial-precision time of day (VR=TM). FractionDigits counts
// the number of digits actually present after the decimal point (0-6).
type Time struct {
	Hour           int
	Minute         int
	Second         int
	Fraction       int // microseconds, valid at TimePrecisionFraction
	FractionDigits int
	Precision      TimePrecision
}

// EncodedLen is the DICOM TM wire length for this precision: hour=2,
// minute=4, second=6, fraction=7+fraction-digits.
func (t Time) EncodedLen() int {
	switch t.Precision {
	case TimePrecisionHour:
		return 2
	case TimePrecisionMinute:
		return 4
	case TimePrecisionSecond:
		return 6
	default:
		return 7 + t.FractionDigits
	}
}

func (t Time) String() string {
	switch t.Precision {
	case TimePrecisionHour:
		return fmt.Sprintf("%02d", t.Hour)
	case TimePrecisionMinute:
		return fmt.Sprintf("%02d%02d", t.Hour, t.Minute)
	case TimePrecisionSecond:
		return fmt.Sprintf("%02d%02d%02d", t.Hour, t.Minute, t.Second)
	default:
		frac := fmt.Sprintf("%06d", t.Fraction)[:t.FractionDigits]
		return fmt.Sprintf("%02d%02d%02d.%s", t.Hour, t.Minute, t.Second, frac)
	}
}

// ToDuration converts to a time-of-day offset from midnight. Only
// second-or-finer precision can be converted.
func (t Time) ToDuration() (time.Duration, error) {
	if t.Precision < TimePrecisionSecond {
		return 0, fmt.Errorf("dicom: time %v lacks second precision", t)
	}
	d := time.Duration(t.Hour)*time.Hour + time.Duration(t.Minute)*time.Minute + time.Duration(t.Second)*time.Second
	if t.Precision == TimePrecisionFraction {
		d += time.Duration(t.Fraction) * time.Microsecond
	}
	return d, nil
}

// ParseTime parses a TM value: HH, HHMM, HHMMSS, or HHMMSS.FFFFFF.
func ParseTime(s string) (Time, error) {
	s = strings.TrimSpace(s)
	main := s
	var fracDigits int
	var fracVal int
	if i := strings.IndexByte(s, '.'); i >= 0 {
		main = s[:i]
		fracStr := s[i+1:]
		fracDigits = len(fracStr)
		if fracDigits > 6 {
			fracStr = fracStr[:6]
			fracDigits = 6
		}
		v, err := strconv.Atoi(fracStr + strings.Repeat("0", 6-len(fracStr)))
		if err != nil {
			return Time{}, &ParseTimeError{Text: s, Cause: err}
		}
		fracVal = v
	}
	switch len(main) {
	case 2:
		h, err := strconv.Atoi(main)
		if err != nil {
			return Time{}, &ParseTimeError{Text: s, Cause: err}
		}
		return Time{Hour: h, Precision: TimePrecisionHour}, nil
	case 4:
		h, err := strconv.Atoi(main[0:2])
		if err != nil {
			return Time{}, &ParseTimeError{Text: s, Cause: err}
		}
		m, err := strconv.Atoi(main[2:4])
		if err != nil {
			return Time{}, &ParseTimeError{Text: s, Cause: err}
		}
		return Time{Hour: h, Minute: m, Precision: TimePrecisionMinute}, nil
	case 6:
		h, err := strconv.Atoi(main[0:2])
		if err != nil {
			return Time{}, &ParseTimeError{Text: s, Cause: err}
		}
		m, err := strconv.Atoi(main[2:4])
		if err != nil {
			return Time{}, &ParseTimeError{Text: s, Cause: err}
		}
		sec, err := strconv.Atoi(main[4:6])
		if err != nil {
			return Time{}, &ParseTimeError{Text: s, Cause: err}
		}
		if fracDigits > 0 {
			return Time{Hour: h, Minute: m, Second: sec, Fraction: fracVal, FractionDigits: fracDigits, Precision: TimePrecisionFraction}, nil
		}
		return Time{Hour: h, Minute: m, Second: sec, Precision: TimePrecisionSecond}, nil
	default:
		return Time{}, &ParseTimeError{Text: s, Cause: fmt.Errorf("unexpected length %d", len(main))}
	}
}

// DateTime combines a Date and Time with an optional fixed UTC offset, in
// minutes east of UTC (VR=DT).
type DateTime struct {
	Date         Date
	Time         Time
	HasOffset    bool
	OffsetMinute int
}

// EncodedLen is the combined wire length: date plus time plus, if present,
// the 5-byte &HHMM offset suffix.
func (dt DateTime) EncodedLen() int {
	n := dt.Date.EncodedLen() + dt.Time.EncodedLen()
	if dt.HasOffset {
		n += 5
	}
	return n
}

func (dt DateTime) String() string {
	s := dt.Date.String() + dt.Time.String()
	if dt.HasOffset {
		sign := "+"
		off := dt.OffsetMinute
		if off < 0 {
			sign = "-"
			off = -off
		}
		s += fmt.Sprintf("%s%02d%02d", sign, off/60, off%60)
	}
	return s
}

// ToTime converts to a concrete instant. Requires day precision on the
// date and at least second precision on the time; the offset defaults to
// UTC when absent.
func (dt DateTime) ToTime() (time.Time, error) {
	if dt.Date.Precision != DatePrecisionDay {
		return time.Time{}, fmt.Errorf("dicom: datetime %v lacks day precision on date component", dt)
	}
	if dt.Time.Precision < TimePrecisionSecond {
		return time.Time{}, fmt.Errorf("dicom: datetime %v lacks second precision on time component", dt)
	}
	loc := time.UTC
	if dt.HasOffset {
		loc = time.FixedZone("", dt.OffsetMinute*60)
	}
	nsec := 0
	if dt.Time.Precision == TimePrecisionFraction {
		nsec = dt.Time.Fraction * 1000
	}
	return time.Date(dt.Date.Year, time.Month(dt.Date.Month), dt.Date.Day,
		dt.Time.Hour, dt.Time.Minute, dt.Time.Second, nsec, loc), nil
}

// ParseDateTime parses a DT value: a date prefix, an optional time suffix
// of any Time precision, and an optional &HHMM (or -HHMM) offset suffix.
func ParseDateTime(s string) (DateTime, error) {
	orig := strings.TrimSpace(s)
	body := orig
	var hasOffset bool
	var offsetMinute int
	if i := strings.IndexAny(body, "+-"); i >= 4 {
		sign := 1
		if body[i] == '-' {
			sign = -1
		}
		offStr := body[i+1:]
		if len(offStr) != 4 {
			return DateTime{}, &ParseDateTimeError{Text: orig, Cause: fmt.Errorf("malformed UTC offset %q", offStr)}
		}
		oh, err := strconv.Atoi(offStr[0:2])
		if err != nil {
			return DateTime{}, &ParseDateTimeError{Text: orig, Cause: err}
		}
		om, err := strconv.Atoi(offStr[2:4])
		if err != nil {
			return DateTime{}, &ParseDateTimeError{Text: orig, Cause: err}
		}
		offsetMinute = sign * (oh*60 + om)
		hasOffset = true
		body = body[:i]
	}

	datePart := body
	timePart := ""
	if len(body) > 8 {
		datePart = body[:8]
		timePart = body[8:]
	} else if idx := strings.IndexByte(body, '.'); idx >= 0 {
		return DateTime{}, &ParseDateTimeError{Text: orig, Cause: fmt.Errorf("fractional time requires a full 8-digit date")}
	}

	d, err := ParseDate(datePart)
	if err != nil {
		return DateTime{}, &ParseDateTimeError{Text: orig, Cause: err}
	}
	result := DateTime{Date: d, HasOffset: hasOffset, OffsetMinute: offsetMinute}
	if timePart != "" {
		t, err := ParseTime(timePart)
		if err != nil {
			return DateTime{}, &ParseDateTimeError{Text: orig, Cause: err}
		}
		result.Time = t
	}
	return result, nil
}
