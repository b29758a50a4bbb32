package tzif

import (
	"errors"
	"fmt"
)

// Validate checks the structural constraints RFC 8536 places on each
// header and data block of d. It does not check that transition times
// are ascending.
func Validate(d Data) error {
	var errs []error
	if d.Version != d.V1Header.Version || (d.Version.Wide() && d.V1Header.Version != d.V2Header.Version) {
		errs = append(errs, fmt.Errorf("inconsistent version: file = %v, v1 header = %v, v2 header = %v", d.Version, d.V1Header.Version, d.V2Header.Version))
	}

	errs = append(errs, validateBlock("v1", d.V1Header, d.V1Data)...)
	if d.Version.Wide() {
		errs = append(errs, validateBlock("v2", d.V2Header, d.V2Data)...)
	}

	return errors.Join(errs...)
}

func validateBlock(name string, header Header, data DataBlock) []error {
	var err []error

	// Isutcnt
	if header.Isutcnt != 0 && header.Isutcnt != header.Typecnt {
		err = append(err, fmt.Errorf("invalid %s isutcnt (%d): must be 0 or equal to typecnt (%d)", name, header.Isutcnt, header.Typecnt))
	}
	if len(data.UTLocalIndicators) != int(header.Isutcnt) {
		err = append(err, fmt.Errorf("invalid %s isutcnt: header = %d, data = %d", name, header.Isutcnt, len(data.UTLocalIndicators)))
	}

	// Isstdcnt
	if header.Isstdcnt != 0 && header.Isstdcnt != header.Typecnt {
		err = append(err, fmt.Errorf("invalid %s isstdcnt (%d): must be 0 or equal to typecnt (%d)", name, header.Isstdcnt, header.Typecnt))
	}
	if len(data.StandardWallIndicators) != int(header.Isstdcnt) {
		err = append(err, fmt.Errorf("invalid %s isstdcnt: header = %d, data = %d", name, header.Isstdcnt, len(data.StandardWallIndicators)))
	}

	// Leapcnt
	if len(data.LeapSecondRecords) != int(header.Leapcnt) {
		err = append(err, fmt.Errorf("invalid %s leapcnt: header = %d, data = %d", name, header.Leapcnt, len(data.LeapSecondRecords)))
	}

	// Timecnt
	if len(data.TransitionTimes) != int(header.Timecnt) {
		err = append(err, fmt.Errorf("invalid %s timecnt: header = %d, transition times = %d", name, header.Timecnt, len(data.TransitionTimes)))
	}
	if times, types := len(data.TransitionTimes), len(data.TransitionTypes); times != types {
		err = append(err, fmt.Errorf("inconsistent %s transitions: transition times = %d, transition types = %d", name, times, types))
	}
	for i, typ := range data.TransitionTypes {
		if int(typ) >= len(data.LocalTimeTypeRecords) {
			err = append(err, fmt.Errorf("invalid %s transition type %d at index %d: typecnt = %d", name, typ, i, len(data.LocalTimeTypeRecords)))
		}
	}

	// Typecnt
	if header.Typecnt == 0 {
		err = append(err, fmt.Errorf("invalid %s typecnt: must not be zero", name))
	}
	if len(data.LocalTimeTypeRecords) != int(header.Typecnt) {
		err = append(err, fmt.Errorf("invalid %s typecnt: header = %d, data = %d", name, header.Typecnt, len(data.LocalTimeTypeRecords)))
	}

	// Charcnt
	if header.Charcnt == 0 {
		err = append(err, fmt.Errorf("invalid %s charcnt: must not be zero", name))
	}
	if len(data.TimeZoneDesignation) != int(header.Charcnt) {
		err = append(err, fmt.Errorf("invalid %s charcnt: header = %d, data = %d", name, header.Charcnt, len(data.TimeZoneDesignation)))
	}
	if header.Charcnt > 0 && len(data.TimeZoneDesignation) > 0 && data.TimeZoneDesignation[len(data.TimeZoneDesignation)-1] != 0 {
		err = append(err, fmt.Errorf("invalid %s time zone designations: missing null terminator", name))
	}
	for i, r := range data.LocalTimeTypeRecords {
		if int(r.Idx) >= len(data.TimeZoneDesignation) {
			err = append(err, fmt.Errorf("invalid %s designation index %d in local time type %d: charcnt = %d", name, r.Idx, i, len(data.TimeZoneDesignation)))
		}
	}
	return err
}
